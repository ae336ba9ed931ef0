package reward

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"

	"cosmossdk.io/math"
	"github.com/sirupsen/logrus"

	"github.com/perawallet/pera-wallet-sub032/internal/types"
)

type State int32

const (
	StateIdle State = iota
	StateFetching
	StateAggregating
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateFetching:
		return "fetching"
	case StateAggregating:
		return "aggregating"
	default:
		return fmt.Sprintf("state(%d)", int32(s))
	}
}

// Skip reasons reported to Metrics.
const (
	SkipBusy      = "busy"
	SkipFetch     = "fetch"
	SkipCompute   = "compute"
	SkipCancelled = "cancelled"
)

type Metrics interface {
	RecordEstimate(round uint64)
	RecordSkipped(reason string)
}

type nilMetrics struct{}

func (nilMetrics) RecordEstimate(uint64) {}
func (nilMetrics) RecordSkipped(string) {}

// Estimate is one pending-rewards result for an account at a round.
type Estimate struct {
	Address           string
	Round             uint64
	PendingMicroAlgos math.LegacyDec
	PendingAlgos      math.LegacyDec
}

type Listener func(Estimate)

// Calculator keeps a best-effort rewards estimate for one account. Subscribe
// HandleRound to a round observer; every successful round emits one Estimate
// to the listener, every failed round emits nothing.
type Calculator struct {
	fetcher  Fetcher
	listener Listener
	metrics  Metrics
	logger   *logrus.Logger

	state atomic.Int32

	mu      sync.RWMutex
	account types.Account
}

func NewCalculator(
	fetcher Fetcher,
	account types.Account,
	listener Listener,
	metrics Metrics,
	logger *logrus.Logger,
) *Calculator {
	if metrics == nil {
		metrics = nilMetrics{}
	}
	return &Calculator{
		fetcher:  fetcher,
		listener: listener,
		metrics:  metrics,
		logger:   logger,
		account:  account,
	}
}

func (c *Calculator) State() State {
	return State(c.state.Load())
}

func (c *Calculator) Account() types.Account {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.account
}

// UpdateAccount replaces the account used from the next round on.
func (c *Calculator) UpdateAccount(account types.Account) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.account = account
}

// HandleRound recomputes the estimate for round. A round that arrives while a
// previous one is still in flight is dropped.
func (c *Calculator) HandleRound(ctx context.Context, round uint64) {
	if !c.state.CompareAndSwap(int32(StateIdle), int32(StateFetching)) {
		c.skip(round, SkipBusy, nil)
		return
	}
	defer c.state.Store(int32(StateIdle))

	account := c.Account()

	snapshot, err := FetchSnapshot(ctx, c.fetcher, round)
	if err != nil {
		c.skip(round, SkipFetch, err)
		return
	}

	c.state.Store(int32(StateAggregating))

	estimate, err := estimateFor(account, snapshot)
	if err != nil {
		c.skip(round, SkipCompute, err)
		return
	}

	// Owner went away while we were fetching.
	if ctx.Err() != nil {
		c.skip(round, SkipCancelled, ctx.Err())
		return
	}

	c.metrics.RecordEstimate(round)
	if c.listener != nil {
		c.listener(estimate)
	}
}

// Calculate computes the estimate for round synchronously, bypassing the
// state machine and the listener.
func (c *Calculator) Calculate(ctx context.Context, round uint64) (Estimate, error) {
	snapshot, err := FetchSnapshot(ctx, c.fetcher, round)
	if err != nil {
		return Estimate{}, err
	}
	return estimateFor(c.Account(), snapshot)
}

func (c *Calculator) skip(round uint64, reason string, err error) {
	c.metrics.RecordSkipped(reason)
	if c.logger == nil {
		return
	}
	entry := c.logger.WithFields(logrus.Fields{
		"round":  round,
		"reason": reason,
	})
	if err != nil {
		entry = entry.WithError(err)
	}
	entry.Debug("reward update skipped")
}

func estimateFor(account types.Account, snapshot types.NetworkBlockSnapshot) (Estimate, error) {
	micro, err := PendingRewards(account.AmountWithoutPendingRewards, snapshot)
	if err != nil {
		return Estimate{}, err
	}
	return Estimate{
		Address:           account.Address,
		Round:             snapshot.Round,
		PendingMicroAlgos: micro,
		PendingAlgos:      ToAlgos(micro),
	}, nil
}
