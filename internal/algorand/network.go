package algorand

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/perawallet/pera-wallet-sub032/internal/fee"
	"github.com/perawallet/pera-wallet-sub032/internal/signer"
	"github.com/perawallet/pera-wallet-sub032/internal/status"
	"github.com/perawallet/pera-wallet-sub032/internal/types"
)

type Metrics interface {
	RecordSign(kind signer.Kind, err error)
	RecordFeeCheck(txType types.TransactionType, err error)
}

type nilMetrics struct{}

func (nilMetrics) RecordSign(signer.Kind, error) {}
func (nilMetrics) RecordFeeCheck(types.TransactionType, error) {}

type SendResult struct {
	TxID           string
	Fee            uint64
	Amount         uint64
	ConfirmedRound uint64
}

// LedgerRequest is what a hardware device needs to sign one transaction.
type LedgerRequest struct {
	Account     types.Account
	Unsigned    []byte
	BytesToSign []byte
	Fee         uint64
	Amount      uint64
}

type Network struct {
	Send       *SendService
	client     NodeProvider
	calculator *fee.Calculator
	status     *status.Status
	metrics    Metrics
	logger     *logrus.Logger
}

func NewNetwork(
	client NodeProvider,
	calculator *fee.Calculator,
	st *status.Status,
	metrics Metrics,
	logger *logrus.Logger,
) *Network {
	if metrics == nil {
		metrics = nilMetrics{}
	}
	return &Network{
		Send:       NewSendService(client),
		client:     client,
		calculator: calculator,
		status:     st,
		metrics:    metrics,
		logger:     logger,
	}
}

// CheckFee sizes the draft with a placeholder signature and runs the
// affordability check against fresh account state and params.
func (n *Network) CheckFee(ctx context.Context, draft types.TransactionDraft) (uint64, uint64, error) {
	draft, params, err := n.Send.Prepare(ctx, draft)
	if err != nil {
		return 0, 0, fmt.Errorf("algorand: %w", err)
	}
	draft = n.sizeForMax(draft)

	signedLength, err := n.estimate(draft, params)
	if err != nil {
		return 0, 0, fmt.Errorf("algorand: %w", err)
	}

	txFee, err := n.checkFee(draft, params, signedLength)
	if err != nil {
		return 0, 0, err
	}

	minBalance, err := n.calculator.MinimumBalance(draft.From, draft.Type, txFee)
	if err != nil {
		return 0, 0, err
	}
	return txFee, minBalance, nil
}

// SendWithKey signs the draft with a local private key, broadcasts it and
// waits for confirmation.
func (n *Network) SendWithKey(ctx context.Context, draft types.TransactionDraft, privateKey []byte) (SendResult, error) {
	draft, params, err := n.Send.Prepare(ctx, draft)
	if err != nil {
		return SendResult{}, fmt.Errorf("algorand: %w", err)
	}

	local := signer.NewLocalSigner()
	draft = n.sizeForMax(draft)

	unsigned, err := n.Send.Build(draft, params, 0)
	if err != nil {
		return SendResult{}, fmt.Errorf("algorand: failed to build transaction: %w", err)
	}
	signed, err := n.sign(local, unsigned, privateKey)
	if err != nil {
		return SendResult{}, err
	}

	txFee, err := n.checkFee(draft, params, len(signed))
	if err != nil {
		return SendResult{}, err
	}

	draft, err = n.finalAmount(draft, txFee)
	if err != nil {
		return SendResult{}, err
	}

	unsigned, err = n.Send.Build(draft, params, txFee)
	if err != nil {
		return SendResult{}, fmt.Errorf("algorand: failed to build transaction: %w", err)
	}
	signed, err = n.sign(local, unsigned, privateKey)
	if err != nil {
		return SendResult{}, err
	}

	return n.broadcast(ctx, draft, signed, txFee)
}

// PrepareLedger returns the unsigned transaction with its fee pinned, plus
// the payload the device must sign.
func (n *Network) PrepareLedger(ctx context.Context, draft types.TransactionDraft) (LedgerRequest, error) {
	draft, params, err := n.Send.Prepare(ctx, draft)
	if err != nil {
		return LedgerRequest{}, fmt.Errorf("algorand: %w", err)
	}
	draft = n.sizeForMax(draft)

	signedLength, err := n.estimate(draft, params)
	if err != nil {
		return LedgerRequest{}, fmt.Errorf("algorand: %w", err)
	}

	txFee, err := n.checkFee(draft, params, signedLength)
	if err != nil {
		return LedgerRequest{}, err
	}

	draft, err = n.finalAmount(draft, txFee)
	if err != nil {
		return LedgerRequest{}, err
	}

	unsigned, err := n.Send.Build(draft, params, txFee)
	if err != nil {
		return LedgerRequest{}, fmt.Errorf("algorand: failed to build transaction: %w", err)
	}
	payload, err := signer.BytesToSign(unsigned)
	if err != nil {
		return LedgerRequest{}, fmt.Errorf("algorand: %w", err)
	}

	return LedgerRequest{
		Account:     draft.From,
		Unsigned:    unsigned,
		BytesToSign: payload,
		Fee:         txFee,
		Amount:      draft.AmountOrZero(),
	}, nil
}

// SubmitLedger attaches the device signature and broadcasts.
func (n *Network) SubmitLedger(ctx context.Context, req LedgerRequest, signature []byte) (SendResult, error) {
	signed, err := n.sign(signer.NewLedgerSigner(req.Account), req.Unsigned, signature)
	if err != nil {
		return SendResult{}, err
	}
	draft := types.TransactionDraft{From: req.Account}
	result, err := n.broadcast(ctx, draft, signed, req.Fee)
	if err != nil {
		return SendResult{}, err
	}
	result.Amount = req.Amount
	return result, nil
}

func (n *Network) estimate(draft types.TransactionDraft, params types.TransactionParams) (int, error) {
	unsigned, err := n.Send.Build(draft, params, 0)
	if err != nil {
		return 0, fmt.Errorf("failed to build transaction: %w", err)
	}
	return n.Send.EstimateSignedLength(draft.From, unsigned)
}

func (n *Network) checkFee(draft types.TransactionDraft, params types.TransactionParams, signedLength int) (uint64, error) {
	txFee, err := n.calculator.Calculate(fee.Input{
		Type:         draft.Type,
		Draft:        &draft,
		SignedLength: signedLength,
		Params:       &params,
	})
	n.metrics.RecordFeeCheck(draft.Type, err)
	if err != nil {
		return 0, fmt.Errorf("algorand: %w", err)
	}
	return txFee, nil
}

// sizeForMax fills a max draft with everything the sender holds. A payment
// starts from the whole balance so the size estimate never undercounts the
// amount field; finalAmount trims it to the spendable part. An asset transfer
// moves the full holding.
func (n *Network) sizeForMax(draft types.TransactionDraft) types.TransactionDraft {
	if !draft.IsMaxTransaction {
		return draft
	}
	switch draft.Type {
	case types.TransactionTypePayment:
		amount := draft.From.Amount
		draft.Amount = &amount
	case types.TransactionTypeAssetTransfer:
		amount, _ := draft.From.AssetAmount(draft.AssetID)
		draft.Amount = &amount
	}
	return draft
}

func (n *Network) finalAmount(draft types.TransactionDraft, txFee uint64) (types.TransactionDraft, error) {
	if !draft.IsMaxTransaction || draft.Type != types.TransactionTypePayment {
		return draft, nil
	}

	amount, err := n.calculator.MaxSendableAmount(draft.From, txFee)
	if err != nil {
		return draft, fmt.Errorf("algorand: %w", err)
	}
	if amount == 0 {
		required, er := n.calculator.MinimumBalance(draft.From, draft.Type, txFee)
		if er != nil {
			return draft, fmt.Errorf("algorand: %w", er)
		}
		return draft, fmt.Errorf("algorand: %w", &fee.InsufficientBalanceError{
			Required: required,
			Fee:      txFee,
			Balance:  draft.From.Amount,
		})
	}
	draft.Amount = &amount
	return draft, nil
}

func (n *Network) sign(s signer.Signer, data, keyMaterial []byte) ([]byte, error) {
	signed, err := s.Sign(data, keyMaterial)
	n.metrics.RecordSign(s.Kind(), err)
	if err != nil {
		return nil, fmt.Errorf("algorand: %w", err)
	}
	return signed, nil
}

func (n *Network) broadcast(ctx context.Context, draft types.TransactionDraft, signed []byte, txFee uint64) (SendResult, error) {
	txID, err := n.client.SendRawTransaction(ctx, signed)
	if err != nil {
		return SendResult{}, err
	}

	n.logger.WithFields(logrus.Fields{
		"tx_id": txID,
		"from":  draft.From.Address,
		"type":  draft.Type.String(),
		"fee":   txFee,
	}).Info("transaction broadcast")

	round, err := n.status.WaitConfirmed(ctx, txID)
	if err != nil {
		return SendResult{}, fmt.Errorf("algorand: failed to confirm %s: %w", txID, err)
	}

	return SendResult{
		TxID:           txID,
		Fee:            txFee,
		Amount:         draft.AmountOrZero(),
		ConfirmedRound: round,
	}, nil
}
