package types

// BlockRewards holds the monetary parameters recorded in a block header.
type BlockRewards struct {
	Round          uint64
	RewardsRate    uint64
	RewardsResidue uint64
}

// NetworkBlockSnapshot joins the total supply with one block's reward state.
type NetworkBlockSnapshot struct {
	Round          uint64
	TotalMoney     uint64
	RewardsRate    uint64
	RewardsResidue uint64
}

func NewNetworkBlockSnapshot(totalMoney uint64, block BlockRewards) NetworkBlockSnapshot {
	return NetworkBlockSnapshot{
		Round:          block.Round,
		TotalMoney:     totalMoney,
		RewardsRate:    block.RewardsRate,
		RewardsResidue: block.RewardsResidue,
	}
}
