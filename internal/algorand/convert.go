package algorand

import (
	"github.com/algorand/go-algorand-sdk/v2/client/v2/common/models"
	sdktypes "github.com/algorand/go-algorand-sdk/v2/types"

	"github.com/perawallet/pera-wallet-sub032/internal/types"
)

func accountFromModel(m models.Account) types.Account {
	assets := make([]types.AssetHolding, 0, len(m.Assets))
	for _, a := range m.Assets {
		assets = append(assets, types.AssetHolding{
			AssetID:  a.AssetId,
			Amount:   a.Amount,
			IsFrozen: a.IsFrozen,
		})
	}

	// Totals survive exclude=all, the arrays do not.
	createdApps := max(m.TotalCreatedApps, uint64(len(m.CreatedApps)))
	localStates := max(m.TotalAppsOptedIn, uint64(len(m.AppsLocalState)))

	return types.Account{
		Address:                     m.Address,
		Amount:                      m.Amount,
		AmountWithoutPendingRewards: m.AmountWithoutPendingRewards,
		PendingRewards:              m.PendingRewards,
		AuthAddress:                 m.AuthAddr,
		Assets:                      assets,
		CreatedAppsCount:            createdApps,
		AppsLocalStateCount:         localStates,
		TotalSchema: types.Schema{
			NumUint:      m.AppsTotalSchema.NumUint,
			NumByteSlice: m.AppsTotalSchema.NumByteSlice,
		},
		ExtraPages: m.AppsTotalExtraPages,
		Round:      m.Round,
	}
}

func paramsFromSDK(sp sdktypes.SuggestedParams) types.TransactionParams {
	return types.TransactionParams{
		FeePerByte:       uint64(sp.Fee),
		MinFee:           sp.MinFee,
		FirstRound:       uint64(sp.FirstRoundValid),
		LastRound:        uint64(sp.LastRoundValid),
		GenesisID:        sp.GenesisID,
		GenesisHash:      sp.GenesisHash,
		ConsensusVersion: sp.ConsensusVersion,
	}
}

// paramsToSDK converts back for the transaction builders. A non-zero flatFee
// pins the fee instead of letting the builder derive it from the size.
func paramsToSDK(p types.TransactionParams, flatFee uint64) sdktypes.SuggestedParams {
	sp := sdktypes.SuggestedParams{
		Fee:              sdktypes.MicroAlgos(p.FeePerByte),
		MinFee:           p.MinFee,
		FirstRoundValid:  sdktypes.Round(p.FirstRound),
		LastRoundValid:   sdktypes.Round(p.LastRound),
		GenesisID:        p.GenesisID,
		GenesisHash:      p.GenesisHash,
		ConsensusVersion: p.ConsensusVersion,
	}
	if flatFee > 0 {
		sp.Fee = sdktypes.MicroAlgos(flatFee)
		sp.FlatFee = true
	}
	return sp
}

func blockRewardsFromSDK(b sdktypes.Block) types.BlockRewards {
	return types.BlockRewards{
		Round:          uint64(b.BlockHeader.Round),
		RewardsRate:    b.BlockHeader.RewardsState.RewardsRate,
		RewardsResidue: b.BlockHeader.RewardsState.RewardsResidue,
	}
}
