// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package crypto

import (
	ethcrypto "github.com/ethereum/go-ethereum/crypto"
)

//Keccak256 以太坊哈希
func Keccak256(data ...[]byte) []byte {
	return ethcrypto.Keccak256(data...)
}
