package signer

import (
	"crypto/ed25519"
	"fmt"

	"github.com/algorand/go-algorand-sdk/v2/crypto"
	"github.com/algorand/go-algorand-sdk/v2/encoding/msgpack"
	"github.com/algorand/go-algorand-sdk/v2/types"
)

// LocalSigner signs msgpack-encoded transactions with a private key held on
// the device.
type LocalSigner struct{}

func NewLocalSigner() *LocalSigner {
	return &LocalSigner{}
}

func (s *LocalSigner) Kind() Kind {
	return KindLocal
}

func (s *LocalSigner) Sign(data, keyMaterial []byte) ([]byte, error) {
	tx, err := decodeTransaction(KindLocal, data)
	if err != nil {
		return nil, err
	}
	key, err := privateKey(KindLocal, keyMaterial)
	if err != nil {
		return nil, err
	}

	_, signed, err := crypto.SignTransaction(key, tx)
	if err != nil {
		return nil, sdkError(KindLocal, err)
	}
	return signed, nil
}

func decodeTransaction(kind Kind, data []byte) (types.Transaction, error) {
	if len(data) == 0 {
		return types.Transaction{}, invalidInput(kind, ErrMissingData)
	}
	var tx types.Transaction
	if err := msgpack.Decode(data, &tx); err != nil {
		return types.Transaction{}, invalidInput(kind, fmt.Errorf("failed to decode transaction: %w", err))
	}
	return tx, nil
}

func privateKey(kind Kind, keyMaterial []byte) (ed25519.PrivateKey, error) {
	if len(keyMaterial) == 0 {
		return nil, invalidInput(kind, ErrMissingKey)
	}
	if len(keyMaterial) != ed25519.PrivateKeySize {
		return nil, invalidInput(kind, fmt.Errorf("%w: got %d bytes, want %d", ErrInvalidKey, len(keyMaterial), ed25519.PrivateKeySize))
	}
	return ed25519.PrivateKey(keyMaterial), nil
}
