package algorand

import (
	"bytes"
	"testing"

	"github.com/algorand/go-algorand-sdk/v2/client/v2/common/models"
	sdktypes "github.com/algorand/go-algorand-sdk/v2/types"
	"github.com/stretchr/testify/assert"

	"github.com/perawallet/pera-wallet-sub032/internal/types"
)

func TestAccountFromModel(t *testing.T) {
	m := models.Account{
		Address:                     "SENDER",
		Amount:                      5_000_000,
		AmountWithoutPendingRewards: 4_999_000,
		PendingRewards:              1_000,
		AuthAddr:                    "AUTH",
		Assets: []models.AssetHolding{
			{AssetId: 31566704, Amount: 10, IsFrozen: false},
			{AssetId: 7, Amount: 0, IsFrozen: true},
		},
		TotalCreatedApps:    1,
		AppsLocalState:      []models.ApplicationLocalState{{Id: 1}, {Id: 2}},
		AppsTotalSchema:     models.ApplicationStateSchema{NumUint: 3, NumByteSlice: 4},
		AppsTotalExtraPages: 1,
		Round:               42,
	}

	got := accountFromModel(m)

	assert.Equal(t, types.Account{
		Address:                     "SENDER",
		Amount:                      5_000_000,
		AmountWithoutPendingRewards: 4_999_000,
		PendingRewards:              1_000,
		AuthAddress:                 "AUTH",
		Assets: []types.AssetHolding{
			{AssetID: 31566704, Amount: 10},
			{AssetID: 7, IsFrozen: true},
		},
		CreatedAppsCount:    1,
		AppsLocalStateCount: 2,
		TotalSchema:         types.Schema{NumUint: 3, NumByteSlice: 4},
		ExtraPages:          1,
		Round:               42,
	}, got)
	assert.True(t, got.HasAuthAccount())
}

func TestParamsRoundTrip(t *testing.T) {
	sp := sdktypes.SuggestedParams{
		Fee:              10,
		MinFee:           1000,
		FirstRoundValid:  100,
		LastRoundValid:   1100,
		GenesisID:        "mainnet-v1.0",
		GenesisHash:      bytes.Repeat([]byte{0x02}, 32),
		ConsensusVersion: "future",
	}

	params := paramsFromSDK(sp)
	assert.Equal(t, uint64(10), params.FeePerByte)
	assert.Equal(t, uint64(1000), params.MinFee)
	assert.Equal(t, uint64(100), params.FirstRound)

	assert.Equal(t, sp, paramsToSDK(params, 0))

	flat := paramsToSDK(params, 2500)
	assert.True(t, flat.FlatFee)
	assert.Equal(t, sdktypes.MicroAlgos(2500), flat.Fee)
}

func TestBlockRewardsFromSDK(t *testing.T) {
	var b sdktypes.Block
	b.BlockHeader.Round = 77
	b.BlockHeader.RewardsState.RewardsRate = 2
	b.BlockHeader.RewardsState.RewardsResidue = 3

	assert.Equal(t, types.BlockRewards{Round: 77, RewardsRate: 2, RewardsResidue: 3}, blockRewardsFromSDK(b))
}
