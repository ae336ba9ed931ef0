package signer

import (
	"github.com/algorand/go-algorand-sdk/v2/crypto"
)

// ArbitraryDataSigner signs opaque payloads for off-chain message requests.
// The SDK domain-separates them with an "MX" prefix so a payload can never
// be replayed as a transaction.
type ArbitraryDataSigner struct{}

func NewArbitraryDataSigner() *ArbitraryDataSigner {
	return &ArbitraryDataSigner{}
}

func (s *ArbitraryDataSigner) Kind() Kind {
	return KindArbitraryData
}

func (s *ArbitraryDataSigner) Sign(data, keyMaterial []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, invalidInput(KindArbitraryData, ErrMissingData)
	}
	key, err := privateKey(KindArbitraryData, keyMaterial)
	if err != nil {
		return nil, err
	}

	sig, err := crypto.SignBytes(key, data)
	if err != nil {
		return nil, sdkError(KindArbitraryData, err)
	}
	return sig, nil
}
