package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTransactionType(t *testing.T) {
	tests := []struct {
		in      string
		want    TransactionType
		wantErr bool
	}{
		{in: "payment", want: TransactionTypePayment},
		{in: " Asset-Transfer ", want: TransactionTypeAssetTransfer},
		{in: "opt-in", want: TransactionTypeAssetAddition},
		{in: "optout", want: TransactionTypeAssetRemoval},
		{in: "asset-removal", want: TransactionTypeAssetRemoval},
		{in: "rekey", want: TransactionTypeRekey},
		{in: "keyreg", wantErr: true},
		{in: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseTransactionType(tt.in)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestAccount_HasAuthAccount(t *testing.T) {
	assert.False(t, Account{Address: "A"}.HasAuthAccount())
	assert.False(t, Account{Address: "A", AuthAddress: "A"}.HasAuthAccount())
	assert.True(t, Account{Address: "A", AuthAddress: "B"}.HasAuthAccount())
}

func TestAccount_IsOptedIn(t *testing.T) {
	acc := Account{Assets: []AssetHolding{{AssetID: 31566704}, {AssetID: 7, Amount: 25}}}

	assert.True(t, acc.IsOptedIn(7))
	assert.False(t, acc.IsOptedIn(8))
	assert.Equal(t, uint64(2), acc.AssetCount())

	amount, ok := acc.AssetAmount(7)
	assert.True(t, ok)
	assert.Equal(t, uint64(25), amount)

	_, ok = acc.AssetAmount(8)
	assert.False(t, ok)
}

func TestNewNetworkBlockSnapshot(t *testing.T) {
	got := NewNetworkBlockSnapshot(100, BlockRewards{Round: 9, RewardsRate: 2, RewardsResidue: 3})
	assert.Equal(t, NetworkBlockSnapshot{Round: 9, TotalMoney: 100, RewardsRate: 2, RewardsResidue: 3}, got)
}
