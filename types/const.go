// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package types

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"
)

// typed envelope
const (
	// RecordTxType 记录类型, also the prefix of the signing digest pre-image
	RecordTxType = byte(0x42)
	// RequestTxType 完整请求类型, carries the confidential inputs
	RequestTxType = byte(0x43)
)

// EmptyConfidentialInputsHash keccak256 of empty bytes, used when no confidential inputs are attached.
var EmptyConfidentialInputsHash = common.Hash{
	0xc5, 0xd2, 0x46, 0x01, 0x86, 0xf7, 0x23, 0x3c,
	0x92, 0x7e, 0x7d, 0xb2, 0xdc, 0xc7, 0x03, 0xc0,
	0xe5, 0x00, 0xb6, 0x53, 0xca, 0x82, 0x27, 0x3b,
	0x7b, 0xfa, 0xd8, 0x04, 0x5d, 0x85, 0xa4, 0x70,
}

// value widths of the numeric record fields
const (
	gasBits   = 128
	valueBits = 256
)

var (
	big1   = big.NewInt(1)
	big35  = big.NewInt(35)
	maxGas = new(big.Int).Sub(new(big.Int).Lsh(big1, gasBits), big1)
	maxVal = new(big.Int).Sub(new(big.Int).Lsh(big1, valueBits), big1)
)
