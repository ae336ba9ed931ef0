package status

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/perawallet/pera-wallet-sub032/internal/types"
)

var ErrRejected = errors.New("transaction rejected by the pool")

type PendingProvider interface {
	PendingTransaction(ctx context.Context, txID string) (types.PendingTransaction, error)
}

type Status struct {
	caller   PendingProvider
	interval time.Duration
}

func NewStatus(caller PendingProvider) *Status {
	return &Status{
		caller:   caller,
		interval: time.Second,
	}
}

func (s *Status) WithInterval(d time.Duration) *Status {
	s.interval = d
	return s
}

// WaitConfirmed polls until the transaction lands in a block and returns
// that round.
func (s *Status) WaitConfirmed(ctx context.Context, txID string) (uint64, error) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return 0, ctx.Err()
		case <-ticker.C:
			pending, err := s.caller.PendingTransaction(ctx, txID)
			if err != nil {
				return 0, err
			}
			if pending.PoolError != "" {
				return 0, fmt.Errorf("%w: %s", ErrRejected, pending.PoolError)
			}
			if pending.ConfirmedRound > 0 {
				return pending.ConfirmedRound, nil
			}
		}
	}
}
