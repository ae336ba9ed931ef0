package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	rewardEstimatesTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "rewards",
			Name:      "estimates_total",
			Help:      "Total number of pending-rewards estimates emitted",
		},
	)

	rewardSkippedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "rewards",
			Name:      "skipped_total",
			Help:      "Total number of rounds skipped without an estimate",
		},
		[]string{"reason"}, // busy, fetch, compute, cancelled
	)

	rewardLastRound = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "rewards",
			Name:      "last_round",
			Help:      "Round of the last emitted estimate",
		},
	)

	observerLastRound = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "observer",
			Name:      "last_round",
			Help:      "Last round announced by the round observer",
		},
	)

	blockCacheTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "node",
			Name:      "block_cache_total",
			Help:      "Block rewards cache lookups",
		},
		[]string{"hit"},
	)
)

// RewardMetrics serves the reward calculator, the round observer and the
// block cache.
type RewardMetrics struct{}

func NewRewardMetrics() *RewardMetrics {
	return &RewardMetrics{}
}

func (m *RewardMetrics) RecordEstimate(round uint64) {
	rewardEstimatesTotal.Inc()
	rewardLastRound.Set(float64(round))
}

func (m *RewardMetrics) RecordSkipped(reason string) {
	rewardSkippedTotal.WithLabelValues(reason).Inc()
}

func (m *RewardMetrics) SetLastRound(round uint64) {
	observerLastRound.Set(float64(round))
}

func (m *RewardMetrics) RecordBlockCache(hit bool) {
	blockCacheTotal.WithLabelValues(strconv.FormatBool(hit)).Inc()
}
