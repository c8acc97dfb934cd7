// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package types

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/rlp"
)

// 三种编码视图的字段顺序是线上格式，不能调整

// crecordRLP record wire view
type crecordRLP struct {
	Nonce                  uint64
	GasPrice               *big.Int
	Gas                    *big.Int
	To                     common.Address
	Value                  *big.Int
	Input                  []byte
	KettleAddress          common.Address
	ConfidentialInputsHash common.Hash
	ChainID                uint64
	V                      uint8
	R                      *big.Int
	S                      *big.Int
}

// crequestRLP request wire view, the record followed by the raw confidential inputs
type crequestRLP struct {
	Request            crecordRLP
	ConfidentialInputs []byte
}

// crequestHashParams signing digest pre-image, no chain id and no raw confidential inputs
type crequestHashParams struct {
	KettleAddress          common.Address
	ConfidentialInputsHash common.Hash
	Nonce                  uint64
	GasPrice               *big.Int
	Gas                    *big.Int
	To                     common.Address
	Value                  *big.Int
	Input                  []byte
}

func newCRecordRLP(record *ConfidentialComputeRecord, sig *Signature) (*crecordRLP, error) {
	complete, err := record.Complete()
	if err != nil {
		return nil, err
	}
	if sig == nil {
		return nil, missingField("signature")
	}
	if err := sig.Validate(); err != nil {
		return nil, err
	}
	return &crecordRLP{
		Nonce:                  complete.Nonce,
		GasPrice:               complete.GasPrice,
		Gas:                    complete.Gas,
		To:                     complete.To,
		Value:                  complete.Value,
		Input:                  complete.Input,
		KettleAddress:          complete.KettleAddress,
		ConfidentialInputsHash: complete.ConfidentialInputsHash,
		ChainID:                *complete.ChainID,
		V:                      sig.V,
		R:                      new(big.Int).Set(sig.R),
		S:                      new(big.Int).Set(sig.S),
	}, nil
}

// toRecord structural mapping back, the signature must still form a valid secp256k1 signature.
// A legacy v of 27/28 is normalized to the parity.
func (w *crecordRLP) toRecord() (*ConfidentialComputeRecord, *Signature, error) {
	v := w.V
	if v == 27 || v == 28 {
		v -= 27
	}
	sig, err := NewSignature(v, w.R, w.S)
	if err != nil {
		return nil, nil, err
	}
	nonce, chainID := w.Nonce, w.ChainID
	kettle, hash := w.KettleAddress, w.ConfidentialInputsHash
	record := &ConfidentialComputeRecord{
		Nonce:                  &nonce,
		GasPrice:               copyBig(w.GasPrice),
		Gas:                    copyBig(w.Gas),
		ChainID:                &chainID,
		To:                     w.To,
		Value:                  copyBig(w.Value),
		Input:                  common.CopyBytes(w.Input),
		KettleAddress:          &kettle,
		confidentialInputsHash: &hash,
	}
	if record.Input == nil {
		record.Input = []byte{}
	}
	if err := checkRange("gas_price", record.GasPrice, maxGas); err != nil {
		return nil, nil, err
	}
	if err := checkRange("gas", record.Gas, maxGas); err != nil {
		return nil, nil, err
	}
	if record.Value == nil {
		record.Value = new(big.Int)
	}
	if err := checkRange("value", record.Value, maxVal); err != nil {
		return nil, nil, err
	}
	return record, sig, nil
}

func (w *crecordRLP) fieldsLen() int {
	n := uintLen(w.Nonce)
	n += bigLen(w.GasPrice)
	n += bigLen(w.Gas)
	n += stringLen(w.To[:])
	n += bigLen(w.Value)
	n += stringLen(w.Input)
	n += stringLen(w.KettleAddress[:])
	n += stringLen(w.ConfidentialInputsHash[:])
	n += uintLen(w.ChainID)
	n += uintLen(uint64(w.V))
	n += bigLen(w.R)
	n += bigLen(w.S)
	return n
}

func newCRequestRLP(record *ConfidentialComputeRecord, sig *Signature, confidentialInputs []byte) (*crequestRLP, error) {
	crecord, err := newCRecordRLP(record, sig)
	if err != nil {
		return nil, err
	}
	inputs := confidentialInputs
	if inputs == nil {
		inputs = []byte{}
	}
	return &crequestRLP{Request: *crecord, ConfidentialInputs: inputs}, nil
}

func (w *crequestRLP) fieldsLen() int {
	return listLen(w.Request.fieldsLen()) + stringLen(w.ConfidentialInputs)
}

func newCRequestHashParams(record *ConfidentialComputeRecord) (*crequestHashParams, error) {
	complete, err := record.completeForSigning()
	if err != nil {
		return nil, err
	}
	return &crequestHashParams{
		KettleAddress:          complete.KettleAddress,
		ConfidentialInputsHash: complete.ConfidentialInputsHash,
		Nonce:                  complete.Nonce,
		GasPrice:               complete.GasPrice,
		Gas:                    complete.Gas,
		To:                     complete.To,
		Value:                  complete.Value,
		Input:                  complete.Input,
	}, nil
}

func (p *crequestHashParams) fieldsLen() int {
	n := stringLen(p.KettleAddress[:])
	n += stringLen(p.ConfidentialInputsHash[:])
	n += uintLen(p.Nonce)
	n += bigLen(p.GasPrice)
	n += bigLen(p.Gas)
	n += stringLen(p.To[:])
	n += bigLen(p.Value)
	n += stringLen(p.Input)
	return n
}

func (p *crequestHashParams) digest() (common.Hash, error) {
	encoded, err := encodeWithPrefix(RecordTxType, p)
	if err != nil {
		return common.Hash{}, err
	}
	return crypto.Keccak256Hash(encoded), nil
}

// encodeWithPrefix type byte followed by the rlp encoding. Nothing is returned on failure.
func encodeWithPrefix(ty byte, val interface{}) ([]byte, error) {
	payload, err := rlp.EncodeToBytes(val)
	if err != nil {
		return nil, err
	}
	out := make([]byte, 0, len(payload)+1)
	out = append(out, ty)
	return append(out, payload...), nil
}

// decodeEnvelope checks the type byte and decodes the payload into val
func decodeEnvelope(ty byte, b []byte, val interface{}) error {
	if len(b) == 0 {
		return ErrEmptyEnvelope
	}
	if b[0] != ty {
		return &UnsupportedTxTypeError{Type: b[0]}
	}
	if err := rlp.DecodeBytes(b[1:], val); err != nil {
		return &DecodeError{Err: err}
	}
	return nil
}

// rlp 长度计算，与 rlp 编码器逐字段一致

// headLen size of a string or list header for a payload of n bytes
func headLen(n int) int {
	if n < 56 {
		return 1
	}
	return 1 + intBytes(uint64(n))
}

func listLen(contentLen int) int {
	return headLen(contentLen) + contentLen
}

func stringLen(b []byte) int {
	if len(b) == 1 && b[0] < 0x80 {
		return 1
	}
	return headLen(len(b)) + len(b)
}

func uintLen(x uint64) int {
	if x < 0x80 {
		return 1
	}
	return 1 + intBytes(x)
}

func bigLen(x *big.Int) int {
	if x == nil {
		return 1
	}
	if x.IsUint64() {
		return uintLen(x.Uint64())
	}
	n := (x.BitLen() + 7) / 8
	return headLen(n) + n
}

// intBytes minimal big endian width of x, zero for zero
func intBytes(x uint64) int {
	n := 0
	for ; x > 0; x >>= 8 {
		n++
	}
	return n
}
