package signer

import (
	"errors"
	"fmt"
)

var (
	ErrMissingData = errors.New("missing data to sign")
	ErrMissingKey  = errors.New("missing key material")
	ErrInvalidKey  = errors.New("invalid key material")
)

type Reason string

const (
	ReasonInvalidInput Reason = "invalid-input"
	ReasonSDK          Reason = "sdk"
)

// SignError is the typed failure every signer returns. Err carries the
// sentinel or the underlying SDK error.
type SignError struct {
	Kind   Kind
	Reason Reason
	Err    error
}

func (e *SignError) Error() string {
	return fmt.Sprintf("signer %s: %s: %v", e.Kind, e.Reason, e.Err)
}

func (e *SignError) Unwrap() error {
	return e.Err
}

func invalidInput(kind Kind, err error) *SignError {
	return &SignError{Kind: kind, Reason: ReasonInvalidInput, Err: err}
}

func sdkError(kind Kind, err error) *SignError {
	return &SignError{Kind: kind, Reason: ReasonSDK, Err: err}
}
