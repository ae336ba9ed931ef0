package fee

import (
	"errors"
	"fmt"

	"github.com/perawallet/pera-wallet-sub032/internal/types"
	"github.com/perawallet/pera-wallet-sub032/internal/util"
)

// ErrCannotCompute is returned when the draft, params or signed data are missing.
var ErrCannotCompute = errors.New("fee: cannot compute without account, params and signed transaction")

// InsufficientBalanceError reports that the sender cannot cover the fee and
// the post-transaction minimum balance.
type InsufficientBalanceError struct {
	Required uint64
	Fee      uint64
	Balance  uint64
}

func (e *InsufficientBalanceError) Error() string {
	return fmt.Sprintf("fee: insufficient balance %d, minimum required %d (fee %d)", e.Balance, e.Required, e.Fee)
}

// Input groups everything one affordability check needs. A nil Draft or
// Params, or a zero SignedLength, means the data was not available yet.
type Input struct {
	Type         types.TransactionType
	Draft        *types.TransactionDraft
	SignedLength int
	Params       *types.TransactionParams
}

// Calculator computes network fees and minimum balances. It is stateless and
// safe for concurrent use.
type Calculator struct {
	config Config
}

func NewCalculator(config Config) *Calculator {
	return &Calculator{
		config: config,
	}
}

// Calculate returns the fee for the signed transaction once the sender is
// known to afford it.
func (c *Calculator) Calculate(in Input) (uint64, error) {
	if in.Draft == nil || in.Params == nil || in.SignedLength <= 0 {
		return 0, ErrCannotCompute
	}

	fee, err := c.Fee(in.SignedLength, *in.Params)
	if err != nil {
		return 0, err
	}

	draft := *in.Draft
	if in.Type != "" {
		draft.Type = in.Type
	}

	ok, required, err := c.IsValidTransactionAmount(draft, fee)
	if err != nil {
		return 0, err
	}
	if !ok {
		return 0, &InsufficientBalanceError{
			Required: required,
			Fee:      fee,
			Balance:  draft.From.Amount,
		}
	}
	return fee, nil
}

// Fee returns max(FeePerByte * signedLength, floor).
func (c *Calculator) Fee(signedLength int, params types.TransactionParams) (uint64, error) {
	if signedLength < 0 {
		return 0, fmt.Errorf("fee: negative signed length %d", signedLength)
	}
	byLength, err := util.Mul(params.FeePerByte, uint64(signedLength))
	if err != nil {
		return 0, fmt.Errorf("fee: fee per byte %d * %d bytes: %w", params.FeePerByte, signedLength, err)
	}
	return max(byLength, c.floor(params)), nil
}

func (c *Calculator) floor(params types.TransactionParams) uint64 {
	if params.MinFee > 0 {
		return params.MinFee
	}
	return c.config.MinimumFee
}

// MinimumBalance returns the balance the account must keep once a
// transaction of txType applies, fee included.
func (c *Calculator) MinimumBalance(account types.Account, txType types.TransactionType, fee uint64) (uint64, error) {
	assets := assetCountAfter(account, txType)

	terms := []struct {
		count uint64
		unit  uint64
	}{
		{assets, c.config.MinBalancePerAsset},
		{account.CreatedAppsCount, c.config.MinBalancePerCreatedApp},
		{account.AppsLocalStateCount, c.config.MinBalancePerAppOptIn},
		{account.TotalSchema.NumUint, c.config.MinBalancePerSchemaInt},
		{account.TotalSchema.NumByteSlice, c.config.MinBalancePerSchemaByteSlice},
		{account.ExtraPages, c.config.MinBalancePerExtraPage},
	}

	total, err := util.Add(c.config.BaseMinBalance, fee)
	if err != nil {
		return 0, fmt.Errorf("fee: minimum balance: %w", err)
	}
	for _, term := range terms {
		v, er := util.Mul(term.count, term.unit)
		if er != nil {
			return 0, fmt.Errorf("fee: minimum balance: %w", er)
		}
		total, er = util.Add(total, v)
		if er != nil {
			return 0, fmt.Errorf("fee: minimum balance: %w", er)
		}
	}
	return total, nil
}

func assetCountAfter(account types.Account, txType types.TransactionType) uint64 {
	count := account.AssetCount()
	switch txType {
	case types.TransactionTypeAssetAddition:
		return count + 1
	case types.TransactionTypeAssetRemoval:
		return util.SaturatingSub(count, 1)
	default:
		return count
	}
}

// IsValidTransactionAmount reports whether the sender keeps its minimum
// balance after the draft applies, and returns that minimum. Max-send drafts
// are always accepted; the caller sizes them with MaxSendableAmount.
func (c *Calculator) IsValidTransactionAmount(draft types.TransactionDraft, fee uint64) (bool, uint64, error) {
	required, err := c.MinimumBalance(draft.From, draft.Type, fee)
	if err != nil {
		return false, 0, err
	}
	if draft.IsMaxTransaction {
		return true, required, nil
	}

	// Only payments move Algos; asset amounts are in the asset's own units.
	var spend uint64
	if draft.Type == types.TransactionTypePayment {
		spend = draft.AmountOrZero()
	}

	needed, err := util.Add(spend, required)
	if err != nil {
		return false, required, nil
	}
	return draft.From.Amount >= needed, required, nil
}

// MaxSendableAmount is the largest payment that leaves the account at its
// minimum balance.
func (c *Calculator) MaxSendableAmount(account types.Account, fee uint64) (uint64, error) {
	required, err := c.MinimumBalance(account, types.TransactionTypePayment, fee)
	if err != nil {
		return 0, err
	}
	return util.SaturatingSub(account.Amount, required), nil
}
