// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package types

import (
	"errors"
	"fmt"
)

var (
	// ErrMissingField a required record field is absent
	ErrMissingField = errors.New("ErrMissingField")
	// ErrUnsupportedTxType the envelope type byte is not accepted
	ErrUnsupportedTxType = errors.New("ErrUnsupportedTxType")
	// ErrDecode malformed rlp payload
	ErrDecode = errors.New("ErrDecode")
	// ErrEmptyEnvelope nothing to decode
	ErrEmptyEnvelope = errors.New("ErrEmptyEnvelope")
	// ErrInvalidSignature signature values cannot form a secp256k1 signature
	ErrInvalidSignature = errors.New("ErrInvalidSignature")
	// ErrValueOutOfRange numeric field exceeds its wire width or is negative
	ErrValueOutOfRange = errors.New("ErrValueOutOfRange")
	// ErrInvalidConfig config value cannot be parsed
	ErrInvalidConfig = errors.New("ErrInvalidConfig")
)

// MissingFieldError names the absent field
type MissingFieldError struct {
	Field string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("missing field: %s", e.Field)
}

// Is matches ErrMissingField
func (e *MissingFieldError) Is(target error) bool {
	return target == ErrMissingField
}

func missingField(name string) error {
	return &MissingFieldError{Field: name}
}

// UnsupportedTxTypeError carries the rejected type byte
type UnsupportedTxTypeError struct {
	Type byte
}

func (e *UnsupportedTxTypeError) Error() string {
	return fmt.Sprintf("unsupported transaction type: 0x%02x", e.Type)
}

// Is matches ErrUnsupportedTxType
func (e *UnsupportedTxTypeError) Is(target error) bool {
	return target == ErrUnsupportedTxType
}

// DecodeError wraps the rlp failure
type DecodeError struct {
	Err error
}

func (e *DecodeError) Error() string {
	return "decode confidential compute request: " + e.Err.Error()
}

// Is matches ErrDecode
func (e *DecodeError) Is(target error) bool {
	return target == ErrDecode
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}
