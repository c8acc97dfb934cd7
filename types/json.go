// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package types

import (
	"encoding/json"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/pkg/errors"
)

// RecordJSON structured projection of a record, the shape used by the rpc layer.
// The signature is flattened into v, r and s.
type RecordJSON struct {
	Type                   hexutil.Uint64  `json:"type"`
	Nonce                  *hexutil.Uint64 `json:"nonce"`
	To                     common.Address  `json:"to"`
	Gas                    *hexutil.Big    `json:"gas"`
	GasPrice               *hexutil.Big    `json:"gasPrice"`
	Value                  *hexutil.Big    `json:"value"`
	Input                  hexutil.Bytes   `json:"input"`
	KettleAddress          *common.Address `json:"kettleAddress"`
	ChainID                *hexutil.Uint64 `json:"chainId"`
	ConfidentialInputsHash *common.Hash    `json:"confidentialInputsHash,omitempty"`
	Hash                   *common.Hash    `json:"hash,omitempty"`
	V                      *hexutil.Big    `json:"v,omitempty"`
	R                      *hexutil.Big    `json:"r,omitempty"`
	S                      *hexutil.Big    `json:"s,omitempty"`
}

// NewRecordJSON projects record and its optional signature
func NewRecordJSON(record *ConfidentialComputeRecord, sig *Signature) *RecordJSON {
	res := &RecordJSON{
		Type:          hexutil.Uint64(RecordTxType),
		To:            record.To,
		Value:         (*hexutil.Big)(copyBig(valueOrZero(record.Value))),
		Input:         common.CopyBytes(record.Input),
		Gas:           (*hexutil.Big)(copyBig(record.Gas)),
		GasPrice:      (*hexutil.Big)(copyBig(record.GasPrice)),
		KettleAddress: record.KettleAddress,
	}
	if res.Input == nil {
		res.Input = hexutil.Bytes{}
	}
	if record.Nonce != nil {
		res.Nonce = (*hexutil.Uint64)(record.Nonce)
	}
	if record.ChainID != nil {
		res.ChainID = (*hexutil.Uint64)(record.ChainID)
	}
	if hash, ok := record.ConfidentialInputsHash(); ok {
		res.ConfidentialInputsHash = &hash
	}
	if sig != nil {
		res.V = (*hexutil.Big)(big.NewInt(int64(sig.V)))
		res.R = (*hexutil.Big)(new(big.Int).Set(sig.R))
		res.S = (*hexutil.Big)(new(big.Int).Set(sig.S))
	}
	return res
}

// ToRecord maps the projection back. The signature is nil when r and s are absent,
// a replay protected v is unfolded with chainId.
func (j *RecordJSON) ToRecord() (*ConfidentialComputeRecord, *Signature, error) {
	record := &ConfidentialComputeRecord{
		To:            j.To,
		Value:         new(big.Int),
		Input:         common.CopyBytes(j.Input),
		Gas:           copyBig(j.Gas.ToInt()),
		GasPrice:      copyBig(j.GasPrice.ToInt()),
		KettleAddress: j.KettleAddress,
	}
	if record.Input == nil {
		record.Input = []byte{}
	}
	if j.Value != nil {
		record.Value.Set(j.Value.ToInt())
	}
	if j.Nonce != nil {
		nonce := uint64(*j.Nonce)
		record.Nonce = &nonce
	}
	if j.ChainID != nil {
		chainID := uint64(*j.ChainID)
		record.ChainID = &chainID
	}
	if j.ConfidentialInputsHash != nil {
		record.setConfidentialInputsHash(*j.ConfidentialInputsHash)
	}
	if j.R == nil && j.S == nil {
		return record, nil, nil
	}
	if j.V == nil || j.R == nil || j.S == nil {
		return nil, nil, errors.Wrap(ErrInvalidSignature, "incomplete v, r, s")
	}
	var chainID uint64
	if record.ChainID != nil {
		chainID = *record.ChainID
	}
	sig, err := SignatureFromReplayProtectedV(j.V.ToInt(), chainID, j.R.ToInt(), j.S.ToInt())
	if err != nil {
		return nil, nil, err
	}
	return record, sig, nil
}

// MarshalJSON signed request as record projection plus confidential inputs
func (s *SignedConfidentialComputeRequest) MarshalJSON() ([]byte, error) {
	type request struct {
		Record             *RecordJSON     `json:"confidentialComputeRecord"`
		ConfidentialInputs hexutil.Bytes   `json:"confidentialInputs"`
		From               *common.Address `json:"from,omitempty"`
	}
	res := request{
		Record:             NewRecordJSON(s.record, s.sig),
		ConfidentialInputs: s.ConfidentialInputs(),
		From:               s.record.From,
	}
	if hash, err := s.Hash(); err == nil {
		res.Record.Hash = &hash
	}
	return json.Marshal(res)
}

// ConfidentialCallResponse transaction returned by the kettle, carrying the
// execution result and the record of the originating request
type ConfidentialCallResponse struct {
	Hash                      common.Hash     `json:"hash"`
	From                      *common.Address `json:"from,omitempty"`
	Type                      hexutil.Uint64  `json:"type"`
	ConfidentialComputeResult hexutil.Bytes   `json:"confidentialComputeResult"`
	RequestRecord             *RecordJSON     `json:"requestRecord"`

	// Transaction holds every field of the response as received
	Transaction map[string]json.RawMessage `json:"-"`
}

// ParseConfidentialCallResponse 解析 kettle 返回的交易
func ParseConfidentialCallResponse(data []byte) (*ConfidentialCallResponse, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return nil, err
	}
	for _, name := range []string{"confidentialComputeResult", "requestRecord"} {
		if raw, ok := fields[name]; !ok || string(raw) == "null" {
			return nil, missingField(name)
		}
	}
	res := &ConfidentialCallResponse{Transaction: fields}
	if err := json.Unmarshal(data, res); err != nil {
		return nil, err
	}
	return res, nil
}
