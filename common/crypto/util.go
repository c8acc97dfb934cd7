// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package crypto

import (
	"github.com/ethereum/go-ethereum/common"
	ethcrypto "github.com/ethereum/go-ethereum/crypto"
	"github.com/pkg/errors"
)

// BasicValidation 公私钥数据签名验证基础实现
func BasicValidation(c Crypto, msg, pub, sig []byte) error {
	pubKey, err := c.PubKeyFromBytes(pub)
	if err != nil {
		return err
	}
	s, err := c.SignatureFromBytes(sig)
	if err != nil {
		return err
	}
	if !pubKey.VerifyBytes(msg, s) {
		return ErrSign
	}
	return nil
}

// PubKeyToAddress ethereum address of a 33 byte compressed or 65 byte uncompressed secp256k1 key
func PubKeyToAddress(pub []byte) (common.Address, error) {
	switch len(pub) {
	case 33:
		key, err := ethcrypto.DecompressPubkey(pub)
		if err != nil {
			return common.Address{}, errors.Wrap(ErrPubKeyFormat, err.Error())
		}
		return ethcrypto.PubkeyToAddress(*key), nil
	case 65:
		key, err := ethcrypto.UnmarshalPubkey(pub)
		if err != nil {
			return common.Address{}, errors.Wrap(ErrPubKeyFormat, err.Error())
		}
		return ethcrypto.PubkeyToAddress(*key), nil
	}
	return common.Address{}, errors.Wrapf(ErrPubKeyFormat, "length %d", len(pub))
}

// PrivKeyToAddress 私钥对应的地址
func PrivKeyToAddress(priv PrivKey) (common.Address, error) {
	return PubKeyToAddress(priv.PubKey().Bytes())
}

// RecoverAddress recovers the signer of a [R || S || V] signature over hash
func RecoverAddress(hash, sig []byte) (common.Address, error) {
	pub, err := ethcrypto.Ecrecover(hash, sig)
	if err != nil {
		return common.Address{}, errors.Wrap(ErrSign, err.Error())
	}
	return PubKeyToAddress(pub)
}
