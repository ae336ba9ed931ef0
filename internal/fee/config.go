package fee

// Config holds the protocol constants the minimum-balance formula is built from.
// All values are in microAlgos.
type Config struct {
	// Fee floor used when the node reports no minimum fee
	MinimumFee uint64 `json:"minimumFee"`

	// Reserve every account holds regardless of its assets and apps
	BaseMinBalance uint64 `json:"baseMinBalance"`

	// Reserve per opted-in asset
	MinBalancePerAsset uint64 `json:"minBalancePerAsset"`

	// Reserve per created application
	MinBalancePerCreatedApp uint64 `json:"minBalancePerCreatedApp"`

	// Reserve per application the account holds local state for
	MinBalancePerAppOptIn uint64 `json:"minBalancePerAppOptIn"`

	// Reserve per allocated uint schema entry
	MinBalancePerSchemaInt uint64 `json:"minBalancePerSchemaInt"`

	// Reserve per allocated byte-slice schema entry
	MinBalancePerSchemaByteSlice uint64 `json:"minBalancePerSchemaByteSlice"`

	// Reserve per extra program page
	MinBalancePerExtraPage uint64 `json:"minBalancePerExtraPage"`
}

// DefaultConfig returns the current Algorand consensus values.
func DefaultConfig() Config {
	return Config{
		MinimumFee:                   1_000,
		BaseMinBalance:               100_000,
		MinBalancePerAsset:           100_000,
		MinBalancePerCreatedApp:      100_000,
		MinBalancePerAppOptIn:        100_000,
		MinBalancePerSchemaInt:       28_500,
		MinBalancePerSchemaByteSlice: 50_000,
		MinBalancePerExtraPage:       100_000,
	}
}
