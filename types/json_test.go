// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package types

import (
	"encoding/json"
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testResponse = `{"blockHash":null,"blockNumber":null,"chainId":"0x1008c45","confidentialComputeResult":"0x0000000000000000000000000000000000000000000000000000000001ccb310","from":"0x19e7e376e7c213b7e7e7e46cc70a5dd086daff2a","gas":"0xf4240","gasPrice":"0x8c9aca00","hash":"0x82f636c7bd91f9895f896b044e33528a2d116c65eea4c8e18c30c4577ae20ce2","input":"0x0000000000000000000000000000000000000000000000000000000001ccb310","nonce":"0x45","r":"0x85242d1876ce1d6a655fd485346628f3df18a051be0f8efa4bfa40b9e85a3dfe","requestRecord":{"chainId":"0x1008c45","confidentialInputsHash":"0xc5d2460186f7233c927e7db2dcc703c0e500b653ca82273b7bfad8045d85a470","gas":"0xf4240","gasPrice":"0x8c9aca00","hash":"0x3d753c496bb9053c7da2cdbbe170614d3e9408ee12ba521c72c2b21e151b7ab9","input":"0x50723553000000000000000000000000000000000000000000000000000000000000002000000000000000000000000000000000000000000000000000000000000000074554485553445400","kettleAddress":"0x03493869959c866713c33669ca118e774a30a0e5","maxFeePerGas":null,"maxPriorityFeePerGas":null,"nonce":"0x45","r":"0xc1c5071f78c6f6b6380ebc4957dd4f6c74bdf5be742ad0d62d2d75f510e33660","s":"0x5de5c97f9c5ee5c5dad3bb0d591e581f48cd947e998d32500bb73de24dd7a6f9","to":"0xc803334c79650708daf3a3462ac4b48296b1352a","type":"0x42","v":"0x0","value":"0x0"},"s":"0x4f0880f42d42b1de17f97c33749d60a46bd1f493c6547f08ac2bed0c6d111861","to":"0xc803334c79650708daf3a3462ac4b48296b1352a","transactionIndex":null,"type":"0x50","v":"0x1","value":"0x0"}`

func TestParseConfidentialCallResponse(t *testing.T) {
	resp, err := ParseConfidentialCallResponse([]byte(testResponse))
	require.NoError(t, err)
	assert.Equal(t, hexutil.MustDecode("0x0000000000000000000000000000000000000000000000000000000001ccb310"), []byte(resp.ConfidentialComputeResult))
	assert.Equal(t, hexutil.Uint64(0x50), resp.Type)
	assert.Equal(t, common.HexToHash("0x82f636c7bd91f9895f896b044e33528a2d116c65eea4c8e18c30c4577ae20ce2"), resp.Hash)
	assert.Contains(t, resp.Transaction, "blockHash")

	record, sig, err := resp.RequestRecord.ToRecord()
	require.NoError(t, err)
	assert.Equal(t, uint64(0x1008c45), *record.ChainID)
	assert.Equal(t, uint64(0x45), *record.Nonce)
	assert.Equal(t, big.NewInt(0xf4240), record.Gas)
	assert.Equal(t, big.NewInt(0x8c9aca00), record.GasPrice)
	assert.Equal(t, common.HexToAddress("0x03493869959c866713c33669ca118e774a30a0e5"), *record.KettleAddress)
	assert.Equal(t, common.HexToAddress("0xc803334c79650708daf3a3462ac4b48296b1352a"), record.To)
	assert.Equal(t, hexutil.MustDecode("0x50723553000000000000000000000000000000000000000000000000000000000000002000000000000000000000000000000000000000000000000000000000000000074554485553445400"), record.Input)
	hash, ok := record.ConfidentialInputsHash()
	require.True(t, ok)
	assert.Equal(t, EmptyConfidentialInputsHash, hash)

	require.NotNil(t, sig)
	assert.Equal(t, byte(0), sig.V)
	assert.Equal(t, hexutil.MustDecodeBig("0xc1c5071f78c6f6b6380ebc4957dd4f6c74bdf5be742ad0d62d2d75f510e33660"), sig.R)
	assert.Equal(t, hexutil.MustDecodeBig("0x5de5c97f9c5ee5c5dad3bb0d591e581f48cd947e998d32500bb73de24dd7a6f9"), sig.S)
}

func TestParseConfidentialCallResponseMissing(t *testing.T) {
	var fields map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(testResponse), &fields))

	for _, name := range []string{"confidentialComputeResult", "requestRecord"} {
		cpy := make(map[string]interface{}, len(fields))
		for k, v := range fields {
			cpy[k] = v
		}
		delete(cpy, name)
		data, err := json.Marshal(cpy)
		require.NoError(t, err)
		_, err = ParseConfidentialCallResponse(data)
		var missing *MissingFieldError
		require.ErrorAs(t, err, &missing)
		assert.Equal(t, name, missing.Field)

		cpy[name] = nil
		data, err = json.Marshal(cpy)
		require.NoError(t, err)
		_, err = ParseConfidentialCallResponse(data)
		assert.ErrorIs(t, err, ErrMissingField)
	}
}

func TestRecordJSONRoundTrip(t *testing.T) {
	signed := testSigned(t)
	j := NewRecordJSON(signed.record, signed.sig)
	data, err := json.Marshal(j)
	require.NoError(t, err)

	var back RecordJSON
	require.NoError(t, json.Unmarshal(data, &back))
	record, sig, err := back.ToRecord()
	require.NoError(t, err)
	assert.True(t, recordEqual(signed.record, record))
	assert.True(t, signed.sig.Equal(sig))

	// replay protected v unfolds with the chain id
	back.V = (*hexutil.Big)(signed.sig.ReplayProtectedV(0x067932))
	_, sig, err = back.ToRecord()
	require.NoError(t, err)
	assert.True(t, signed.sig.Equal(sig))

	back.V = nil
	_, _, err = back.ToRecord()
	assert.ErrorIs(t, err, ErrInvalidSignature)

	back.R, back.S = nil, nil
	_, sig, err = back.ToRecord()
	require.NoError(t, err)
	assert.Nil(t, sig)
}
