package types

// AssetHolding is one opted-in asset of an account.
type AssetHolding struct {
	AssetID  uint64
	Amount   uint64
	IsFrozen bool
}

// Schema is the total application state schema an account has allocated.
type Schema struct {
	NumUint      uint64
	NumByteSlice uint64
}

// Account is the slice of on-chain account state the wallet core needs.
// Amounts are in microAlgos.
type Account struct {
	Address                     string
	Amount                      uint64
	AmountWithoutPendingRewards uint64
	PendingRewards              uint64
	AuthAddress                 string
	Assets                      []AssetHolding
	CreatedAppsCount            uint64
	AppsLocalStateCount         uint64
	TotalSchema                 Schema
	ExtraPages                  uint64
	Round                       uint64
}

// HasAuthAccount reports whether signing authority was delegated (rekeyed)
// to a different address.
func (a Account) HasAuthAccount() bool {
	return a.AuthAddress != "" && a.AuthAddress != a.Address
}

// AssetCount returns the number of opted-in assets.
func (a Account) AssetCount() uint64 {
	return uint64(len(a.Assets))
}

func (a Account) IsOptedIn(assetID uint64) bool {
	_, ok := a.AssetAmount(assetID)
	return ok
}

// AssetAmount returns the units held of assetID and whether the account is
// opted in to it.
func (a Account) AssetAmount(assetID uint64) (uint64, bool) {
	for _, h := range a.Assets {
		if h.AssetID == assetID {
			return h.Amount, true
		}
	}
	return 0, false
}
