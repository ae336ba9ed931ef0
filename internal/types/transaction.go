package types

import (
	"fmt"
	"strings"
)

type TransactionType string

const (
	TransactionTypePayment       TransactionType = "payment"
	TransactionTypeAssetTransfer TransactionType = "asset-transfer"
	TransactionTypeAssetAddition TransactionType = "asset-addition"
	TransactionTypeAssetRemoval  TransactionType = "asset-removal"
	TransactionTypeRekey         TransactionType = "rekey"
)

var transactionTypes = []TransactionType{
	TransactionTypePayment,
	TransactionTypeAssetTransfer,
	TransactionTypeAssetAddition,
	TransactionTypeAssetRemoval,
	TransactionTypeRekey,
}

func (t TransactionType) String() string {
	return string(t)
}

// ParseTransactionType accepts the canonical names plus the opt-in/opt-out aliases.
func ParseTransactionType(s string) (TransactionType, error) {
	normalized := strings.ToLower(strings.TrimSpace(s))
	switch normalized {
	case "opt-in", "optin":
		return TransactionTypeAssetAddition, nil
	case "opt-out", "optout":
		return TransactionTypeAssetRemoval, nil
	}
	for _, t := range transactionTypes {
		if string(t) == normalized {
			return t, nil
		}
	}
	return "", fmt.Errorf("unknown transaction type: %q", s)
}

// TransactionDraft is the transient user intent a transaction is built from.
type TransactionDraft struct {
	From             Account
	Type             TransactionType
	Amount           *uint64
	IsMaxTransaction bool
	Receiver         string
	AssetID          uint64
	// CloseTo receives the remaining asset units when an asset is removed.
	CloseTo string
	RekeyTo string
	Note    []byte
}

// AmountOrZero returns the draft amount, treating a missing amount as zero.
func (d TransactionDraft) AmountOrZero() uint64 {
	if d.Amount == nil {
		return 0
	}
	return *d.Amount
}

// TransactionParams is the network-supplied fee snapshot for one attempt.
type TransactionParams struct {
	FeePerByte       uint64
	MinFee           uint64
	FirstRound       uint64
	LastRound        uint64
	GenesisID        string
	GenesisHash      []byte
	ConsensusVersion string
}

// PendingTransaction is the node's view of a submitted transaction.
type PendingTransaction struct {
	ConfirmedRound uint64
	PoolError      string
}
