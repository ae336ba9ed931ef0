package metrics

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/perawallet/pera-wallet-sub032/internal/fee"
	"github.com/perawallet/pera-wallet-sub032/internal/signer"
	"github.com/perawallet/pera-wallet-sub032/internal/types"
)

var (
	signTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "network",
			Name:      "sign_total",
			Help:      "Total number of signing attempts",
		},
		[]string{"kind", "status"}, // status: success, invalid-input, sdk
	)

	feeChecksTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "network",
			Name:      "fee_checks_total",
			Help:      "Total number of fee and minimum-balance checks",
		},
		[]string{"type", "status"}, // status: success, insufficient, cannot-compute, error
	)
)

type NetworkMetrics struct{}

func NewNetworkMetrics() *NetworkMetrics {
	return &NetworkMetrics{}
}

func (m *NetworkMetrics) RecordSign(kind signer.Kind, err error) {
	signTotal.WithLabelValues(string(kind), signStatus(err)).Inc()
}

func (m *NetworkMetrics) RecordFeeCheck(txType types.TransactionType, err error) {
	feeChecksTotal.WithLabelValues(txType.String(), feeStatus(err)).Inc()
}

func signStatus(err error) string {
	if err == nil {
		return "success"
	}
	var signErr *signer.SignError
	if errors.As(err, &signErr) {
		return string(signErr.Reason)
	}
	return "error"
}

func feeStatus(err error) string {
	var insufficient *fee.InsufficientBalanceError
	switch {
	case err == nil:
		return "success"
	case errors.As(err, &insufficient):
		return "insufficient"
	case errors.Is(err, fee.ErrCannotCompute):
		return "cannot-compute"
	default:
		return "error"
	}
}
