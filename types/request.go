// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package types

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"
)

// ConfidentialComputeRequest unsigned confidential compute request.
// The record's confidential inputs hash always equals keccak256(ConfidentialInputs()).
// Once a signature is produced the request should not change anymore,
// the signed form is SignedConfidentialComputeRequest.
type ConfidentialComputeRequest struct {
	record             *ConfidentialComputeRecord
	confidentialInputs []byte
}

// NewRequest 构造请求, the confidential inputs hash of record is recomputed
func NewRequest(record *ConfidentialComputeRecord, confidentialInputs []byte) *ConfidentialComputeRequest {
	if record == nil {
		record = &ConfidentialComputeRecord{}
	} else {
		record = record.Copy()
	}
	req := &ConfidentialComputeRequest{record: record}
	req.SetConfidentialInputs(confidentialInputs)
	return req
}

// Record the owned record, filled in place by builder collaborators
func (req *ConfidentialComputeRequest) Record() *ConfidentialComputeRecord {
	return req.record
}

// ConfidentialInputs 机密输入
func (req *ConfidentialComputeRequest) ConfidentialInputs() []byte {
	return common.CopyBytes(req.confidentialInputs)
}

// SetConfidentialInputs replaces the inputs and rehashes
func (req *ConfidentialComputeRequest) SetConfidentialInputs(confidentialInputs []byte) {
	inputs := common.CopyBytes(confidentialInputs)
	if inputs == nil {
		inputs = []byte{}
	}
	req.record.setConfidentialInputsHashFromBytes(inputs)
	req.confidentialInputs = inputs
}

// SetKettleAddress 设置执行节点地址
func (req *ConfidentialComputeRequest) SetKettleAddress(kettle common.Address) {
	req.record.KettleAddress = &kettle
}

// KettleAddress returns the zero address when unset
func (req *ConfidentialComputeRequest) KettleAddress() common.Address {
	if req.record.KettleAddress == nil {
		return common.Address{}
	}
	return *req.record.KettleAddress
}

// WithConfidentialInputs returns a copy carrying the new inputs
func (req *ConfidentialComputeRequest) WithConfidentialInputs(confidentialInputs []byte) *ConfidentialComputeRequest {
	cpy := req.Copy()
	cpy.SetConfidentialInputs(confidentialInputs)
	return cpy
}

// WithKettleAddress returns a copy
func (req *ConfidentialComputeRequest) WithKettleAddress(kettle common.Address) *ConfidentialComputeRequest {
	cpy := req.Copy()
	cpy.SetKettleAddress(kettle)
	return cpy
}

// WithNonce returns a copy
func (req *ConfidentialComputeRequest) WithNonce(nonce uint64) *ConfidentialComputeRequest {
	cpy := req.Copy()
	cpy.record.Nonce = &nonce
	return cpy
}

// WithGas returns a copy
func (req *ConfidentialComputeRequest) WithGas(gas *big.Int) *ConfidentialComputeRequest {
	cpy := req.Copy()
	cpy.record.Gas = copyBig(gas)
	return cpy
}

// WithGasPrice returns a copy
func (req *ConfidentialComputeRequest) WithGasPrice(gasPrice *big.Int) *ConfidentialComputeRequest {
	cpy := req.Copy()
	cpy.record.GasPrice = copyBig(gasPrice)
	return cpy
}

// WithChainID returns a copy
func (req *ConfidentialComputeRequest) WithChainID(chainID uint64) *ConfidentialComputeRequest {
	cpy := req.Copy()
	cpy.record.ChainID = &chainID
	return cpy
}

// WithTo returns a copy
func (req *ConfidentialComputeRequest) WithTo(to common.Address) *ConfidentialComputeRequest {
	cpy := req.Copy()
	cpy.record.To = to
	return cpy
}

// WithValue returns a copy
func (req *ConfidentialComputeRequest) WithValue(value *big.Int) *ConfidentialComputeRequest {
	cpy := req.Copy()
	cpy.record.Value = copyBig(value)
	return cpy
}

// WithInput returns a copy
func (req *ConfidentialComputeRequest) WithInput(input []byte) *ConfidentialComputeRequest {
	cpy := req.Copy()
	cpy.record.Input = common.CopyBytes(input)
	return cpy
}

// Digest signing digest keccak256(0x42 || rlp(hash params)).
// Needs nonce, gas price, gas and kettle address, the chain id is not part of it.
func (req *ConfidentialComputeRequest) Digest() (common.Hash, error) {
	return req.record.Digest()
}

// Copy deep copy, callers hand copies to concurrent signing paths
func (req *ConfidentialComputeRequest) Copy() *ConfidentialComputeRequest {
	return &ConfidentialComputeRequest{
		record:             req.record.Copy(),
		confidentialInputs: common.CopyBytes(req.confidentialInputs),
	}
}
