package reward

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"cosmossdk.io/math"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/perawallet/pera-wallet-sub032/internal/types"
)

type mockFetcher struct {
	totalMoney uint64
	block      types.BlockRewards
	supplyErr  error
	blockErr   error
	// release, when set, blocks BlockRewards until closed
	release chan struct{}
	started chan struct{}
}

func (m *mockFetcher) TotalSupply(ctx context.Context) (uint64, error) {
	if m.supplyErr != nil {
		return 0, m.supplyErr
	}
	return m.totalMoney, nil
}

func (m *mockFetcher) BlockRewards(ctx context.Context, round uint64) (types.BlockRewards, error) {
	if m.started != nil {
		close(m.started)
	}
	if m.release != nil {
		<-m.release
	}
	if m.blockErr != nil {
		return types.BlockRewards{}, m.blockErr
	}
	b := m.block
	b.Round = round
	return b, nil
}

type mockMetrics struct {
	mu        sync.Mutex
	estimates []uint64
	skipped   []string
}

func (m *mockMetrics) RecordEstimate(round uint64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.estimates = append(m.estimates, round)
}

func (m *mockMetrics) RecordSkipped(reason string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.skipped = append(m.skipped, reason)
}

func testLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetLevel(logrus.DebugLevel)
	return logger
}

func TestPendingRewards(t *testing.T) {
	tests := []struct {
		name     string
		balance  uint64
		snapshot types.NetworkBlockSnapshot
		want     string
	}{
		{
			name:     "documented example",
			balance:  10,
			snapshot: types.NetworkBlockSnapshot{TotalMoney: 100, RewardsRate: 2, RewardsResidue: 3},
			want:     "0.5",
		},
		{
			name:     "zero balance",
			balance:  0,
			snapshot: types.NetworkBlockSnapshot{TotalMoney: 100, RewardsRate: 2, RewardsResidue: 3},
			want:     "0",
		},
		{
			name:     "no rewards",
			balance:  1_000_000,
			snapshot: types.NetworkBlockSnapshot{TotalMoney: 100},
			want:     "0",
		},
		{
			name:     "large values do not overflow",
			balance:  10_000_000_000_000_000,
			snapshot: types.NetworkBlockSnapshot{TotalMoney: 10_000_000_000_000_000, RewardsRate: 18446744073709551615, RewardsResidue: 1},
			want:     "18446744073709551616",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := PendingRewards(tt.balance, tt.snapshot)
			require.NoError(t, err)
			assert.True(t, math.LegacyMustNewDecFromStr(tt.want).Equal(got), "got %s", got)
		})
	}
}

func TestPendingRewards_ZeroSupply(t *testing.T) {
	_, err := PendingRewards(10, types.NetworkBlockSnapshot{})
	require.ErrorIs(t, err, ErrZeroSupply)
}

func TestToAlgos(t *testing.T) {
	got := ToAlgos(math.LegacyMustNewDecFromStr("0.5"))
	assert.True(t, math.LegacyMustNewDecFromStr("0.0000005").Equal(got))

	got = ToAlgos(math.LegacyNewDec(2_500_000))
	assert.True(t, math.LegacyMustNewDecFromStr("2.5").Equal(got))
}

func TestFetchSnapshot(t *testing.T) {
	fetcher := &mockFetcher{
		totalMoney: 100,
		block:      types.BlockRewards{RewardsRate: 2, RewardsResidue: 3},
	}

	got, err := FetchSnapshot(context.Background(), fetcher, 42)
	require.NoError(t, err)
	assert.Equal(t, types.NetworkBlockSnapshot{Round: 42, TotalMoney: 100, RewardsRate: 2, RewardsResidue: 3}, got)
}

func TestCalculator_HandleRound(t *testing.T) {
	account := types.Account{Address: "ADDR", AmountWithoutPendingRewards: 10}
	fetcher := &mockFetcher{
		totalMoney: 100,
		block:      types.BlockRewards{RewardsRate: 2, RewardsResidue: 3},
	}
	metrics := &mockMetrics{}

	var got []Estimate
	c := NewCalculator(fetcher, account, func(e Estimate) {
		got = append(got, e)
	}, metrics, testLogger())

	c.HandleRound(context.Background(), 7)

	require.Len(t, got, 1)
	assert.Equal(t, "ADDR", got[0].Address)
	assert.Equal(t, uint64(7), got[0].Round)
	assert.True(t, math.LegacyMustNewDecFromStr("0.5").Equal(got[0].PendingMicroAlgos))
	assert.True(t, math.LegacyMustNewDecFromStr("0.0000005").Equal(got[0].PendingAlgos))
	assert.Equal(t, []uint64{7}, metrics.estimates)
	assert.Equal(t, StateIdle, c.State())
}

func TestCalculator_FetchFailureSkipsRound(t *testing.T) {
	tests := []struct {
		name    string
		fetcher *mockFetcher
	}{
		{
			name:    "total supply fails",
			fetcher: &mockFetcher{supplyErr: errors.New("supply unavailable"), block: types.BlockRewards{RewardsRate: 1}},
		},
		{
			name:    "block fails",
			fetcher: &mockFetcher{totalMoney: 100, blockErr: errors.New("block unavailable")},
		},
		{
			name:    "both fail",
			fetcher: &mockFetcher{supplyErr: errors.New("supply"), blockErr: errors.New("block")},
		},
		{
			name:    "zero supply",
			fetcher: &mockFetcher{totalMoney: 0},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			metrics := &mockMetrics{}
			called := false
			c := NewCalculator(tt.fetcher, types.Account{AmountWithoutPendingRewards: 10}, func(Estimate) {
				called = true
			}, metrics, testLogger())

			c.HandleRound(context.Background(), 1)

			assert.False(t, called, "listener must not be called")
			assert.Empty(t, metrics.estimates)
			assert.Len(t, metrics.skipped, 1)
			assert.Equal(t, StateIdle, c.State())
		})
	}
}

func TestCalculator_DropsRoundWhileBusy(t *testing.T) {
	fetcher := &mockFetcher{
		totalMoney: 100,
		block:      types.BlockRewards{RewardsRate: 2, RewardsResidue: 3},
		release:    make(chan struct{}),
		started:    make(chan struct{}),
	}
	metrics := &mockMetrics{}

	var mu sync.Mutex
	var rounds []uint64
	c := NewCalculator(fetcher, types.Account{AmountWithoutPendingRewards: 10}, func(e Estimate) {
		mu.Lock()
		defer mu.Unlock()
		rounds = append(rounds, e.Round)
	}, metrics, testLogger())

	done := make(chan struct{})
	go func() {
		defer close(done)
		c.HandleRound(context.Background(), 1)
	}()

	<-fetcher.started
	assert.Equal(t, StateFetching, c.State())

	c.HandleRound(context.Background(), 2)

	close(fetcher.release)
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("first round did not finish")
	}

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []uint64{1}, rounds)
	assert.Equal(t, []string{SkipBusy}, metrics.skipped)
	assert.Equal(t, StateIdle, c.State())
}

func TestCalculator_CancelledContextDropsResult(t *testing.T) {
	fetcher := &mockFetcher{
		totalMoney: 100,
		block:      types.BlockRewards{RewardsRate: 2, RewardsResidue: 3},
	}
	metrics := &mockMetrics{}
	called := false
	c := NewCalculator(fetcher, types.Account{AmountWithoutPendingRewards: 10}, func(Estimate) {
		called = true
	}, metrics, testLogger())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	c.HandleRound(ctx, 3)

	assert.False(t, called)
	assert.Equal(t, []string{SkipCancelled}, metrics.skipped)
}

func TestCalculator_UpdateAccount(t *testing.T) {
	fetcher := &mockFetcher{
		totalMoney: 100,
		block:      types.BlockRewards{RewardsRate: 2, RewardsResidue: 3},
	}
	c := NewCalculator(fetcher, types.Account{Address: "OLD", AmountWithoutPendingRewards: 10}, nil, nil, nil)

	c.UpdateAccount(types.Account{Address: "NEW", AmountWithoutPendingRewards: 40})

	got, err := c.Calculate(context.Background(), 5)
	require.NoError(t, err)
	assert.Equal(t, "NEW", got.Address)
	assert.True(t, math.LegacyNewDec(2).Equal(got.PendingMicroAlgos))

	// nil listener and metrics must be tolerated
	require.NotPanics(t, func() { c.HandleRound(context.Background(), 6) })
}

func TestState_String(t *testing.T) {
	assert.Equal(t, "idle", StateIdle.String())
	assert.Equal(t, "fetching", StateFetching.String())
	assert.Equal(t, "aggregating", StateAggregating.String())
}
