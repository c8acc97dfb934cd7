// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package types

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/pkg/errors"
)

// ConfidentialComputeRecord public part of a confidential compute request.
// Numeric fee and identity fields stay nil until a collaborator fills them,
// Complete is the only place they are checked.
type ConfidentialComputeRecord struct {
	Nonce    *uint64
	Gas      *big.Int
	GasPrice *big.Int
	ChainID  *uint64

	To    common.Address
	Value *big.Int
	Input []byte

	KettleAddress *common.Address

	// From is local only and never serialized
	From *common.Address

	confidentialInputsHash *common.Hash
}

// NewRecordFromArgs copies the present fields of a generic transaction request
func NewRecordFromArgs(args *TransactionArgs, kettle common.Address) *ConfidentialComputeRecord {
	record := &ConfidentialComputeRecord{
		Value:         new(big.Int),
		Input:         []byte{},
		KettleAddress: &kettle,
	}
	if args == nil {
		return record
	}
	if args.To != nil {
		record.To = *args.To
	}
	if args.Value != nil {
		record.Value = new(big.Int).Set(args.Value.ToInt())
	}
	if input := args.data(); input != nil {
		record.Input = common.CopyBytes(input)
	}
	if args.Nonce != nil {
		nonce := uint64(*args.Nonce)
		record.Nonce = &nonce
	}
	if args.Gas != nil {
		record.Gas = new(big.Int).Set(args.Gas.ToInt())
	}
	if args.GasPrice != nil {
		record.GasPrice = new(big.Int).Set(args.GasPrice.ToInt())
	}
	if args.ChainID != nil {
		chainID := uint64(*args.ChainID)
		record.ChainID = &chainID
	}
	if args.From != nil {
		from := *args.From
		record.From = &from
	}
	return record
}

// ConfidentialInputsHash 返回机密输入哈希
func (r *ConfidentialComputeRecord) ConfidentialInputsHash() (common.Hash, bool) {
	if r.confidentialInputsHash == nil {
		return common.Hash{}, false
	}
	return *r.confidentialInputsHash, true
}

func (r *ConfidentialComputeRecord) setConfidentialInputsHash(hash common.Hash) {
	r.confidentialInputsHash = &hash
}

func (r *ConfidentialComputeRecord) setConfidentialInputsHashFromBytes(inputs []byte) {
	r.setConfidentialInputsHash(crypto.Keccak256Hash(inputs))
}

// Copy deep copy
func (r *ConfidentialComputeRecord) Copy() *ConfidentialComputeRecord {
	cpy := &ConfidentialComputeRecord{
		To:    r.To,
		Input: common.CopyBytes(r.Input),
	}
	if r.Nonce != nil {
		nonce := *r.Nonce
		cpy.Nonce = &nonce
	}
	if r.ChainID != nil {
		chainID := *r.ChainID
		cpy.ChainID = &chainID
	}
	cpy.Gas = copyBig(r.Gas)
	cpy.GasPrice = copyBig(r.GasPrice)
	cpy.Value = copyBig(r.Value)
	if r.KettleAddress != nil {
		kettle := *r.KettleAddress
		cpy.KettleAddress = &kettle
	}
	if r.From != nil {
		from := *r.From
		cpy.From = &from
	}
	if r.confidentialInputsHash != nil {
		hash := *r.confidentialInputsHash
		cpy.confidentialInputsHash = &hash
	}
	return cpy
}

// Digest signing digest over the record's public fields and stored confidential inputs hash
func (r *ConfidentialComputeRecord) Digest() (common.Hash, error) {
	params, err := newCRequestHashParams(r)
	if err != nil {
		return common.Hash{}, err
	}
	return params.digest()
}

// CompleteRecord validated record, every field required by the wire views is present
type CompleteRecord struct {
	Nonce                  uint64
	GasPrice               *big.Int
	Gas                    *big.Int
	To                     common.Address
	Value                  *big.Int
	Input                  []byte
	KettleAddress          common.Address
	ConfidentialInputsHash common.Hash
	// ChainID is nil when the record was completed for signing only
	ChainID *uint64
}

// Complete validates the record for the record wire view
func (r *ConfidentialComputeRecord) Complete() (*CompleteRecord, error) {
	return r.complete(true)
}

// completeForSigning same as Complete but the chain id does not take part in the digest
func (r *ConfidentialComputeRecord) completeForSigning() (*CompleteRecord, error) {
	return r.complete(false)
}

func (r *ConfidentialComputeRecord) complete(requireChainID bool) (*CompleteRecord, error) {
	if r.Nonce == nil {
		return nil, missingField("nonce")
	}
	if r.GasPrice == nil {
		return nil, missingField("gas_price")
	}
	if r.Gas == nil {
		return nil, missingField("gas")
	}
	if r.KettleAddress == nil {
		return nil, missingField("kettle_address")
	}
	if requireChainID && r.ChainID == nil {
		return nil, missingField("chain_id")
	}
	if err := checkRange("gas_price", r.GasPrice, maxGas); err != nil {
		return nil, err
	}
	if err := checkRange("gas", r.Gas, maxGas); err != nil {
		return nil, err
	}
	value := r.Value
	if value == nil {
		value = new(big.Int)
	}
	if err := checkRange("value", value, maxVal); err != nil {
		return nil, err
	}
	cinputsHash := EmptyConfidentialInputsHash
	if r.confidentialInputsHash != nil {
		cinputsHash = *r.confidentialInputsHash
	}
	complete := &CompleteRecord{
		Nonce:                  *r.Nonce,
		GasPrice:               new(big.Int).Set(r.GasPrice),
		Gas:                    new(big.Int).Set(r.Gas),
		To:                     r.To,
		Value:                  new(big.Int).Set(value),
		Input:                  common.CopyBytes(r.Input),
		KettleAddress:          *r.KettleAddress,
		ConfidentialInputsHash: cinputsHash,
	}
	if complete.Input == nil {
		complete.Input = []byte{}
	}
	if r.ChainID != nil {
		chainID := *r.ChainID
		complete.ChainID = &chainID
	}
	return complete, nil
}

func checkRange(name string, v *big.Int, max *big.Int) error {
	if v.Sign() < 0 || v.Cmp(max) > 0 {
		return errors.Wrapf(ErrValueOutOfRange, "%s: %s", name, v)
	}
	return nil
}

func copyBig(v *big.Int) *big.Int {
	if v == nil {
		return nil
	}
	return new(big.Int).Set(v)
}

func bigEqual(a, b *big.Int) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.Cmp(b) == 0
}

func valueOrZero(v *big.Int) *big.Int {
	if v == nil {
		return new(big.Int)
	}
	return v
}

func uint64PtrEqual(a, b *uint64) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

func addrPtrEqual(a, b *common.Address) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

func hashPtrEqual(a, b *common.Hash) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
