package algorand

import (
	"bytes"
	"context"
	"crypto/ed25519"
	"errors"
	"fmt"

	"github.com/algorand/go-algorand-sdk/v2/encoding/msgpack"
	"github.com/algorand/go-algorand-sdk/v2/transaction"
	sdktypes "github.com/algorand/go-algorand-sdk/v2/types"

	"github.com/perawallet/pera-wallet-sub032/internal/signer"
	"github.com/perawallet/pera-wallet-sub032/internal/types"
)

var (
	ErrMissingSender   = errors.New("missing sender address")
	ErrMissingReceiver = errors.New("missing receiver address")
	ErrMissingAsset    = errors.New("missing asset id")
	ErrMissingCloseTo  = errors.New("missing close-to address")
	ErrMissingRekeyTo  = errors.New("missing rekey-to address")
	ErrInvalidAddress  = errors.New("invalid address")
	ErrAlreadyOptedIn  = errors.New("account already holds the asset")
	ErrNotOptedIn      = errors.New("account does not hold the asset")
)

var draftErrors = []error{
	ErrMissingSender,
	ErrMissingReceiver,
	ErrMissingAsset,
	ErrMissingCloseTo,
	ErrMissingRekeyTo,
	ErrInvalidAddress,
	ErrAlreadyOptedIn,
	ErrNotOptedIn,
}

// IsDraftError reports whether err comes from an incomplete or invalid draft
// rather than from the node.
func IsDraftError(err error) bool {
	for _, target := range draftErrors {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

// placeholderSig stands in for a device signature when sizing a transaction
// that will be signed elsewhere.
var placeholderSig = bytes.Repeat([]byte{0xff}, ed25519.SignatureSize)

type SendService struct {
	client NodeProvider
}

func NewSendService(client NodeProvider) *SendService {
	return &SendService{
		client: client,
	}
}

// Prepare refreshes the sender account and fetches the params for one
// attempt.
func (s *SendService) Prepare(ctx context.Context, draft types.TransactionDraft) (types.TransactionDraft, types.TransactionParams, error) {
	if draft.From.Address == "" {
		return draft, types.TransactionParams{}, ErrMissingSender
	}

	account, err := s.client.AccountInformation(ctx, draft.From.Address)
	if err != nil {
		return draft, types.TransactionParams{}, fmt.Errorf("failed to refresh account: %w", err)
	}
	draft.From = account

	err = checkHoldings(draft)
	if err != nil {
		return draft, types.TransactionParams{}, err
	}

	params, err := s.client.TransactionParams(ctx)
	if err != nil {
		return draft, types.TransactionParams{}, fmt.Errorf("failed to get transaction params: %w", err)
	}
	return draft, params, nil
}

// Build returns the msgpack-encoded unsigned transaction for the draft.
// A non-zero flatFee pins the fee.
func (s *SendService) Build(draft types.TransactionDraft, params types.TransactionParams, flatFee uint64) ([]byte, error) {
	tx, err := buildTransaction(draft, paramsToSDK(params, flatFee))
	if err != nil {
		return nil, err
	}
	return msgpack.Encode(tx), nil
}

// EstimateSignedLength returns the size the transaction will have once the
// sender's signature is attached, auth address included for rekeyed accounts.
func (s *SendService) EstimateSignedLength(account types.Account, unsigned []byte) (int, error) {
	signed, err := signer.NewLedgerSigner(account).Sign(unsigned, placeholderSig)
	if err != nil {
		return 0, fmt.Errorf("failed to estimate signed length: %w", err)
	}
	return len(signed), nil
}

// checkHoldings rejects opting into a held asset and moving or removing an
// asset the refreshed account does not hold.
func checkHoldings(draft types.TransactionDraft) error {
	switch draft.Type {
	case types.TransactionTypeAssetAddition:
		if draft.AssetID != 0 && draft.From.IsOptedIn(draft.AssetID) {
			return fmt.Errorf("%w: %d", ErrAlreadyOptedIn, draft.AssetID)
		}
	case types.TransactionTypeAssetTransfer, types.TransactionTypeAssetRemoval:
		if draft.AssetID != 0 && !draft.From.IsOptedIn(draft.AssetID) {
			return fmt.Errorf("%w: %d", ErrNotOptedIn, draft.AssetID)
		}
	}
	return nil
}

func buildTransaction(draft types.TransactionDraft, sp sdktypes.SuggestedParams) (sdktypes.Transaction, error) {
	from := draft.From.Address
	if from == "" {
		return sdktypes.Transaction{}, ErrMissingSender
	}
	for _, addr := range []string{from, draft.Receiver, draft.CloseTo, draft.RekeyTo} {
		if addr == "" {
			continue
		}
		if _, err := sdktypes.DecodeAddress(addr); err != nil {
			return sdktypes.Transaction{}, fmt.Errorf("%w %q", ErrInvalidAddress, addr)
		}
	}

	switch draft.Type {
	case types.TransactionTypePayment:
		if draft.Receiver == "" {
			return sdktypes.Transaction{}, ErrMissingReceiver
		}
		return transaction.MakePaymentTxn(from, draft.Receiver, draft.AmountOrZero(), draft.Note, "", sp)

	case types.TransactionTypeAssetTransfer:
		if draft.Receiver == "" {
			return sdktypes.Transaction{}, ErrMissingReceiver
		}
		if draft.AssetID == 0 {
			return sdktypes.Transaction{}, ErrMissingAsset
		}
		return transaction.MakeAssetTransferTxn(from, draft.Receiver, draft.AmountOrZero(), draft.Note, sp, "", draft.AssetID)

	case types.TransactionTypeAssetAddition:
		if draft.AssetID == 0 {
			return sdktypes.Transaction{}, ErrMissingAsset
		}
		return transaction.MakeAssetAcceptanceTxn(from, draft.Note, sp, draft.AssetID)

	case types.TransactionTypeAssetRemoval:
		if draft.AssetID == 0 {
			return sdktypes.Transaction{}, ErrMissingAsset
		}
		if draft.CloseTo == "" {
			return sdktypes.Transaction{}, ErrMissingCloseTo
		}
		// Closing sends every remaining unit to CloseTo and frees the reserve.
		return transaction.MakeAssetTransferTxn(from, draft.CloseTo, 0, draft.Note, sp, draft.CloseTo, draft.AssetID)

	case types.TransactionTypeRekey:
		if draft.RekeyTo == "" {
			return sdktypes.Transaction{}, ErrMissingRekeyTo
		}
		tx, err := transaction.MakePaymentTxn(from, from, 0, draft.Note, "", sp)
		if err != nil {
			return sdktypes.Transaction{}, err
		}
		if err := tx.Rekey(draft.RekeyTo); err != nil {
			return sdktypes.Transaction{}, fmt.Errorf("failed to rekey: %w", err)
		}
		return tx, nil

	default:
		return sdktypes.Transaction{}, fmt.Errorf("unsupported transaction type %q", draft.Type)
	}
}
