package round

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

const (
	defaultRetryInterval = 5 * time.Second

	// Rounds published at most per poll; older ones are skipped.
	maxBacklog = 10
)

// StatusProvider blocks until the node has seen a round after the given one
// and returns the node's last round.
type StatusProvider interface {
	StatusAfterBlock(ctx context.Context, round uint64) (uint64, error)
}

type Metrics interface {
	SetLastRound(round uint64)
}

type Handler func(ctx context.Context, round uint64)

// Observer publishes every new round the node reports to its subscribers.
type Observer struct {
	provider      StatusProvider
	retryInterval time.Duration
	metrics       Metrics
	logger        *logrus.Logger

	lastRound atomic.Uint64

	mu       sync.RWMutex
	handlers map[uuid.UUID]Handler

	wg sync.WaitGroup
}

func NewObserver(provider StatusProvider, startRound uint64, metrics Metrics, logger *logrus.Logger) *Observer {
	o := &Observer{
		provider:      provider,
		retryInterval: defaultRetryInterval,
		metrics:       metrics,
		logger:        logger,
		handlers:      make(map[uuid.UUID]Handler),
	}
	o.lastRound.Store(startRound)
	return o
}

func (o *Observer) WithRetryInterval(d time.Duration) *Observer {
	o.retryInterval = d
	return o
}

func (o *Observer) Subscribe(h Handler) uuid.UUID {
	id := uuid.New()
	o.mu.Lock()
	defer o.mu.Unlock()
	o.handlers[id] = h
	return id
}

func (o *Observer) Unsubscribe(id uuid.UUID) {
	o.mu.Lock()
	defer o.mu.Unlock()
	delete(o.handlers, id)
}

func (o *Observer) LastRound() uint64 {
	return o.lastRound.Load()
}

// Run long-polls the node until ctx is done. It returns after every handler
// it started has returned.
func (o *Observer) Run(ctx context.Context) error {
	defer o.wg.Wait()

	for {
		if ctx.Err() != nil {
			return nil
		}

		last := o.lastRound.Load()
		next, err := o.provider.StatusAfterBlock(ctx, last)
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			o.logger.WithError(err).WithField("round", last).Warn("failed to wait for next round")
			select {
			case <-ctx.Done():
				return nil
			case <-time.After(o.retryInterval):
			}
			continue
		}

		if next <= last {
			continue
		}
		o.publish(ctx, last, next)
	}
}

// publish announces every round in (last, next] in order. Handlers of one
// round run concurrently.
func (o *Observer) publish(ctx context.Context, last, next uint64) {
	// A node that fell far behind must not flood handlers with old rounds.
	from := last + 1
	if last == 0 || next-last > maxBacklog {
		from = next
	}

	for r := from; r <= next; r++ {
		o.lastRound.Store(r)
		if o.metrics != nil {
			o.metrics.SetLastRound(r)
		}

		o.mu.RLock()
		for id, h := range o.handlers {
			o.wg.Add(1)
			go func(id uuid.UUID, h Handler, r uint64) {
				defer o.wg.Done()
				defer func() {
					if rec := recover(); rec != nil {
						o.logger.WithField("subscriber", id.String()).Errorf("round handler panicked: %v", rec)
					}
				}()
				h(ctx, r)
			}(id, h, r)
		}
		o.mu.RUnlock()
	}
}
