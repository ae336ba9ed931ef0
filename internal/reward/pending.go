package reward

import (
	"context"
	"errors"
	"fmt"

	"cosmossdk.io/math"
	"golang.org/x/sync/errgroup"

	"github.com/perawallet/pera-wallet-sub032/internal/types"
)

// MicroAlgosPerAlgo converts base units to the display unit.
const MicroAlgosPerAlgo = 1_000_000

var ErrZeroSupply = errors.New("reward: total supply is zero")

// Fetcher is the network data a reward estimate is computed from.
type Fetcher interface {
	TotalSupply(ctx context.Context) (uint64, error)
	BlockRewards(ctx context.Context, round uint64) (types.BlockRewards, error)
}

// PendingRewards returns balance * (residue + rate) / totalMoney in microAlgos.
func PendingRewards(balanceWithoutRewards uint64, snapshot types.NetworkBlockSnapshot) (math.LegacyDec, error) {
	if snapshot.TotalMoney == 0 {
		return math.LegacyZeroDec(), ErrZeroSupply
	}

	balance := math.NewIntFromUint64(balanceWithoutRewards)
	factor := math.NewIntFromUint64(snapshot.RewardsResidue).Add(math.NewIntFromUint64(snapshot.RewardsRate))
	total := math.LegacyNewDecFromInt(math.NewIntFromUint64(snapshot.TotalMoney))

	return math.LegacyNewDecFromInt(balance.Mul(factor)).Quo(total), nil
}

// ToAlgos converts a microAlgo amount to Algos.
func ToAlgos(micro math.LegacyDec) math.LegacyDec {
	return micro.QuoInt64(MicroAlgosPerAlgo)
}

// FetchSnapshot loads the total supply and the block reward state of round
// concurrently. Either call failing fails the whole snapshot.
func FetchSnapshot(ctx context.Context, fetcher Fetcher, round uint64) (types.NetworkBlockSnapshot, error) {
	var (
		totalMoney uint64
		block      types.BlockRewards
	)

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		v, err := fetcher.TotalSupply(ctx)
		if err != nil {
			return fmt.Errorf("failed to get total supply: %w", err)
		}
		totalMoney = v
		return nil
	})

	g.Go(func() error {
		v, err := fetcher.BlockRewards(ctx, round)
		if err != nil {
			return fmt.Errorf("failed to get block %d: %w", round, err)
		}
		block = v
		return nil
	})

	if err := g.Wait(); err != nil {
		return types.NetworkBlockSnapshot{}, fmt.Errorf("reward: %w", err)
	}
	return types.NewNetworkBlockSnapshot(totalMoney, block), nil
}
