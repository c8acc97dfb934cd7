// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package types

import (
	"bytes"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
)

// SignedConfidentialComputeRequest signed request. It only exposes copies, the fields
// covered by the signature cannot change. Unsigned is the way back to an editable request.
type SignedConfidentialComputeRequest struct {
	record             *ConfidentialComputeRecord
	confidentialInputs []byte
	sig                *Signature
}

// NewSignedRequest attaches sig to a copy of req. from is the signer of record, nil when unknown.
func NewSignedRequest(req *ConfidentialComputeRequest, sig *Signature, from *common.Address) (*SignedConfidentialComputeRequest, error) {
	if sig == nil {
		return nil, missingField("signature")
	}
	if err := sig.Validate(); err != nil {
		return nil, err
	}
	cpy := req.Copy()
	cpy.record.From = nil
	if from != nil {
		addr := *from
		cpy.record.From = &addr
	}
	return &SignedConfidentialComputeRequest{
		record:             cpy.record,
		confidentialInputs: cpy.confidentialInputs,
		sig:                sig.Copy(),
	}, nil
}

// Record copy of the signed record
func (s *SignedConfidentialComputeRequest) Record() *ConfidentialComputeRecord {
	return s.record.Copy()
}

// ConfidentialInputs 机密输入
func (s *SignedConfidentialComputeRequest) ConfidentialInputs() []byte {
	return common.CopyBytes(s.confidentialInputs)
}

// Signature 签名
func (s *SignedConfidentialComputeRequest) Signature() *Signature {
	return s.sig.Copy()
}

// From locally known signer, not covered by any encoding
func (s *SignedConfidentialComputeRequest) From() (common.Address, bool) {
	if s.record.From == nil {
		return common.Address{}, false
	}
	return *s.record.From, true
}

// Sender recovers the signer from the signature. The signature is authoritative, From is only a cache.
func (s *SignedConfidentialComputeRequest) Sender() (common.Address, error) {
	digest, err := s.Digest()
	if err != nil {
		return common.Address{}, err
	}
	return s.sig.RecoverAddress(digest)
}

// Digest same pre-image the signature was produced over
func (s *SignedConfidentialComputeRequest) Digest() (common.Hash, error) {
	return s.record.Digest()
}

// Encode request wire envelope 0x43 || rlp(record, confidential inputs)
func (s *SignedConfidentialComputeRequest) Encode() ([]byte, error) {
	w, err := newCRequestRLP(s.record, s.sig, s.confidentialInputs)
	if err != nil {
		return nil, err
	}
	return encodeWithPrefix(RequestTxType, w)
}

// EncodedLen length of Encode output
func (s *SignedConfidentialComputeRequest) EncodedLen() (int, error) {
	w, err := newCRequestRLP(s.record, s.sig, s.confidentialInputs)
	if err != nil {
		return 0, err
	}
	return 1 + listLen(w.fieldsLen()), nil
}

// EncodeRecord record wire envelope 0x42 || rlp(record), without the confidential inputs
func (s *SignedConfidentialComputeRequest) EncodeRecord() ([]byte, error) {
	w, err := newCRecordRLP(s.record, s.sig)
	if err != nil {
		return nil, err
	}
	return encodeWithPrefix(RecordTxType, w)
}

// Hash keccak256 of the request envelope
func (s *SignedConfidentialComputeRequest) Hash() (common.Hash, error) {
	b, err := s.Encode()
	if err != nil {
		return common.Hash{}, err
	}
	return crypto.Keccak256Hash(b), nil
}

// Unsigned drops the signature and returns an editable request
func (s *SignedConfidentialComputeRequest) Unsigned() *ConfidentialComputeRequest {
	return &ConfidentialComputeRequest{
		record:             s.record.Copy(),
		confidentialInputs: common.CopyBytes(s.confidentialInputs),
	}
}

// Equal compares everything carried on the wire, the local From is ignored
func (s *SignedConfidentialComputeRequest) Equal(other *SignedConfidentialComputeRequest) bool {
	if s == nil || other == nil {
		return s == other
	}
	return recordEqual(s.record, other.record) &&
		bytes.Equal(s.confidentialInputs, other.confidentialInputs) &&
		s.sig.Equal(other.sig)
}

// DecodeRequest decodes a request wire envelope. Only RequestTxType is accepted.
// Hash and signature are taken from the wire as they are, Sender verifies them.
// Every call returns a fresh value, confidential inputs are not retained.
func DecodeRequest(b []byte) (*SignedConfidentialComputeRequest, error) {
	var w crequestRLP
	if err := decodeEnvelope(RequestTxType, b, &w); err != nil {
		return nil, err
	}
	record, sig, err := w.Request.toRecord()
	if err != nil {
		return nil, err
	}
	inputs := w.ConfidentialInputs
	if inputs == nil {
		inputs = []byte{}
	}
	return &SignedConfidentialComputeRequest{record: record, confidentialInputs: inputs, sig: sig}, nil
}

// DecodeRecord decodes a record wire envelope, the result carries no confidential inputs
func DecodeRecord(b []byte) (*ConfidentialComputeRecord, *Signature, error) {
	var w crecordRLP
	if err := decodeEnvelope(RecordTxType, b, &w); err != nil {
		return nil, nil, err
	}
	return w.toRecord()
}

func recordEqual(a, b *ConfidentialComputeRecord) bool {
	return uint64PtrEqual(a.Nonce, b.Nonce) &&
		uint64PtrEqual(a.ChainID, b.ChainID) &&
		bigEqual(a.Gas, b.Gas) &&
		bigEqual(a.GasPrice, b.GasPrice) &&
		a.To == b.To &&
		bigEqual(valueOrZero(a.Value), valueOrZero(b.Value)) &&
		bytes.Equal(a.Input, b.Input) &&
		addrPtrEqual(a.KettleAddress, b.KettleAddress) &&
		hashPtrEqual(a.confidentialInputsHash, b.confidentialInputsHash)
}
