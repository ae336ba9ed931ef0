package signer

import (
	"crypto/ed25519"
	"fmt"

	"github.com/algorand/go-algorand-sdk/v2/encoding/msgpack"
	sdktypes "github.com/algorand/go-algorand-sdk/v2/types"

	"github.com/perawallet/pera-wallet-sub032/internal/types"
)

type Branch string

const (
	BranchDirect  Branch = "direct"
	BranchRekeyed Branch = "rekeyed"
)

// txPrefix is prepended to a transaction before the device signs it.
var txPrefix = []byte("TX")

// LedgerSigner assembles a signed transaction from a signature produced by a
// hardware device. The device holds the key, so keyMaterial is the 64-byte
// detached signature over BytesToSign(data).
type LedgerSigner struct {
	account types.Account
}

func NewLedgerSigner(account types.Account) *LedgerSigner {
	return &LedgerSigner{
		account: account,
	}
}

func (s *LedgerSigner) Kind() Kind {
	return KindLedger
}

// Branch reports whether the device signs on behalf of an authorized
// address (rekeyed account) or holds the sender key itself.
func (s *LedgerSigner) Branch() Branch {
	if s.account.HasAuthAccount() {
		return BranchRekeyed
	}
	return BranchDirect
}

func (s *LedgerSigner) Sign(data, keyMaterial []byte) ([]byte, error) {
	tx, err := decodeTransaction(KindLedger, data)
	if err != nil {
		return nil, err
	}
	if len(keyMaterial) == 0 {
		return nil, invalidInput(KindLedger, ErrMissingKey)
	}
	if len(keyMaterial) != ed25519.SignatureSize {
		return nil, invalidInput(KindLedger, fmt.Errorf("%w: signature is %d bytes, want %d", ErrInvalidKey, len(keyMaterial), ed25519.SignatureSize))
	}

	stx := sdktypes.SignedTxn{
		Txn: tx,
	}
	copy(stx.Sig[:], keyMaterial)

	if s.Branch() == BranchRekeyed {
		auth, er := sdktypes.DecodeAddress(s.account.AuthAddress)
		if er != nil {
			return nil, sdkError(KindLedger, fmt.Errorf("failed to decode auth address: %w", er))
		}
		stx.AuthAddr = auth
	}
	return msgpack.Encode(stx), nil
}

// BytesToSign returns the payload the device has to sign for the
// msgpack-encoded transaction data.
func BytesToSign(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, ErrMissingData
	}
	out := make([]byte, 0, len(txPrefix)+len(data))
	out = append(out, txPrefix...)
	return append(out, data...), nil
}
