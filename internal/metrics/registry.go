package metrics

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/sirupsen/logrus"
)

// RegisterMetrics registers metrics for the specified services
func RegisterMetrics(services []string, logger *logrus.Logger) {
	// Always register Go and process metrics
	registerIfNotExists(collectors.NewGoCollector(), "go_collector", logger)
	registerIfNotExists(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}), "process_collector", logger)

	// Register service-specific metrics
	for _, service := range services {
		switch service {
		case ServiceHTTP:
			registerHTTPMetrics(logger)
		case ServiceRewards:
			registerRewardsMetrics(logger)
		case ServiceNetwork:
			registerNetworkMetrics(logger)
		default:
			logger.Warnf("Unknown service type for metrics registration: %s", service)
		}
	}
}

// registerIfNotExists registers a collector if it's not already registered
func registerIfNotExists(collector prometheus.Collector, name string, logger *logrus.Logger) {
	if err := prometheus.Register(collector); err != nil {
		var alreadyRegErr prometheus.AlreadyRegisteredError
		if errors.As(err, &alreadyRegErr) {
			// This is expected on restart/reload - just debug log
			logger.Debugf("%s already registered", name)
		} else {
			logger.Errorf("Failed to register %s: %v", name, err)
		}
	}
}

func registerHTTPMetrics(logger *logrus.Logger) {
	registerIfNotExists(httpRequestsTotal, "http_requests_total", logger)
	registerIfNotExists(httpRequestDuration, "http_request_duration", logger)
	registerIfNotExists(httpErrorsTotal, "http_errors_total", logger)
}

func registerRewardsMetrics(logger *logrus.Logger) {
	registerIfNotExists(rewardEstimatesTotal, "reward_estimates_total", logger)
	registerIfNotExists(rewardSkippedTotal, "reward_skipped_total", logger)
	registerIfNotExists(rewardLastRound, "reward_last_round", logger)
	registerIfNotExists(observerLastRound, "observer_last_round", logger)
	registerIfNotExists(blockCacheTotal, "block_cache_total", logger)
}

func registerNetworkMetrics(logger *logrus.Logger) {
	registerIfNotExists(signTotal, "sign_total", logger)
	registerIfNotExists(feeChecksTotal, "fee_checks_total", logger)
	registerIfNotExists(blockCacheTotal, "block_cache_total", logger)
}
