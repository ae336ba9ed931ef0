package signer

import (
	"fmt"

	"github.com/perawallet/pera-wallet-sub032/internal/types"
)

type Kind string

const (
	KindLocal         Kind = "local"
	KindLedger        Kind = "ledger"
	KindArbitraryData Kind = "arbitrary-data"
)

// Signer turns unsigned bytes plus key material into signed bytes.
// What keyMaterial holds depends on the Kind: a 64-byte ed25519 private key
// for local and arbitrary-data signing, the detached device signature for Ledger.
type Signer interface {
	Sign(data, keyMaterial []byte) ([]byte, error)
	Kind() Kind
}

// New returns the signer for kind. The account is only consulted by the
// Ledger signer to pick the rekeyed or direct branch.
func New(kind Kind, account types.Account) (Signer, error) {
	switch kind {
	case KindLocal:
		return NewLocalSigner(), nil
	case KindLedger:
		return NewLedgerSigner(account), nil
	case KindArbitraryData:
		return NewArbitraryDataSigner(), nil
	default:
		return nil, fmt.Errorf("signer: unknown kind %q", kind)
	}
}
