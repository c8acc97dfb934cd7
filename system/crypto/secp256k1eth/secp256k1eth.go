// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package secp256k1eth 以太坊格式的 secp256k1 签名驱动, keccak256 哈希 + 可恢复签名
package secp256k1eth

import (
	"bytes"
	"fmt"

	"github.com/33cn/ccr/common/crypto"
	"github.com/33cn/ccr/common/log"
	secp256k1 "github.com/btcsuite/btcd/btcec/v2"
	ethcrypto "github.com/ethereum/go-ethereum/crypto"
	"github.com/pkg/errors"
)

const privKeyBytesLen = 32
const pubkeyBytesLen = 64 + 1

var elog = log.New("module", Name)

// PrivKeySecp256k1Eth PrivKey
type PrivKeySecp256k1Eth [32]byte

// Driver 驱动
type Driver struct{}

// SignatureFromBytes 字节转为签名，必须是 [R || S || V] 格式
func (d Driver) SignatureFromBytes(b []byte) (crypto.Signature, error) {
	if len(b) != ethcrypto.SignatureLength {
		return nil, errors.Wrapf(crypto.ErrSign, "signature length %d", len(b))
	}
	return SignatureSecp256k1Eth(b), nil
}

// PrivKeyFromBytes 字节转为私钥
func (d Driver) PrivKeyFromBytes(b []byte) (crypto.PrivKey, error) {
	if len(b) != privKeyBytesLen {
		return nil, crypto.ErrPrivKeyFormat
	}
	if _, err := ethcrypto.ToECDSA(b); err != nil {
		return nil, errors.Wrap(crypto.ErrPrivKeyFormat, err.Error())
	}
	privKeyBytes := new([privKeyBytesLen]byte)
	copy(privKeyBytes[:], b[:privKeyBytesLen])
	return PrivKeySecp256k1Eth(*privKeyBytes), nil
}

// PubKeyFromBytes 65 bytes uncompress key, 33 bytes compressed key is decompressed
func (d Driver) PubKeyFromBytes(b []byte) (crypto.PubKey, error) {
	if len(b) != pubkeyBytesLen && len(b) != 33 {
		return nil, errors.Wrap(crypto.ErrPubKeyFormat, "must be 65 bytes")
	}
	if len(b) == 33 {
		p, err := ethcrypto.DecompressPubkey(b)
		if err != nil {
			return nil, errors.Wrap(crypto.ErrPubKeyFormat, err.Error())
		}
		b = ethcrypto.FromECDSAPub(p)
	}
	var pubKeyBytes [pubkeyBytesLen]byte
	copy(pubKeyBytes[:], b[:])
	return PubKeySecp256k1Eth(pubKeyBytes), nil
}

// Validate check signature
func (d Driver) Validate(msg, pub, sig []byte) error {
	return crypto.BasicValidation(d, msg, pub, sig)
}

// GenKey 生成私钥
func (d Driver) GenKey() (crypto.PrivKey, error) {
	privKeyBytes := [32]byte{}
	copy(privKeyBytes[:], crypto.CRandBytes(32))
	priv, _ := secp256k1.PrivKeyFromBytes(privKeyBytes[:])
	copy(privKeyBytes[:], priv.Serialize())
	return PrivKeySecp256k1Eth(privKeyBytes), nil
}

// Bytes 字节格式
func (privKey PrivKeySecp256k1Eth) Bytes() []byte {
	s := make([]byte, 32)
	copy(s, privKey[:])
	return s
}

// Sign 签名 keccak256(msg), the produced signature is in the [R || S || V] format where V is 0 or 1.
func (privKey PrivKeySecp256k1Eth) Sign(msg []byte) crypto.Signature {
	sig, err := privKey.SignHash(ethcrypto.Keccak256(msg))
	if err != nil {
		elog.Error("Sign", "err", err)
		return nil
	}
	return SignatureSecp256k1Eth(sig)
}

// SignHash 对摘要直接签名
func (privKey PrivKeySecp256k1Eth) SignHash(hash []byte) ([]byte, error) {
	priv, err := ethcrypto.ToECDSA(privKey[:])
	if err != nil {
		return nil, errors.Wrap(crypto.ErrPrivKeyFormat, err.Error())
	}
	return ethcrypto.Sign(hash, priv)
}

// PubKey 私钥生成公钥 非压缩 65 bytes 0x04+pub.X+pub.Y
func (privKey PrivKeySecp256k1Eth) PubKey() crypto.PubKey {
	priv, err := ethcrypto.ToECDSA(privKey[:])
	if nil != err {
		return nil
	}
	var pubSecp256k1 PubKeySecp256k1Eth
	copy(pubSecp256k1[:], ethcrypto.FromECDSAPub(&priv.PublicKey))
	return pubSecp256k1
}

// Equals 私钥是否相等
func (privKey PrivKeySecp256k1Eth) Equals(other crypto.PrivKey) bool {
	if otherSecp, ok := other.(PrivKeySecp256k1Eth); ok {
		return bytes.Equal(privKey[:], otherSecp[:])
	}
	return false
}

func (privKey PrivKeySecp256k1Eth) String() string {
	return "PrivKeySecp256k1Eth{*****}"
}

// SignatureSecp256k1Eth Signature
type SignatureSecp256k1Eth []byte

// Bytes 字节格式
func (sig SignatureSecp256k1Eth) Bytes() []byte {
	s := make([]byte, len(sig))
	copy(s, sig[:])
	return s
}

// IsZero 是否是0
func (sig SignatureSecp256k1Eth) IsZero() bool { return len(sig) == 0 }

func (sig SignatureSecp256k1Eth) String() string {
	return fmt.Sprintf("/%X.../", []byte(sig))
}

// Equals 相等
func (sig SignatureSecp256k1Eth) Equals(other crypto.Signature) bool {
	if otherEth, ok := other.(SignatureSecp256k1Eth); ok {
		return bytes.Equal(sig[:], otherEth[:])
	}
	return false
}

// PubKeySecp256k1Eth uncompressed pubkey prefixed with 0x04
type PubKeySecp256k1Eth [65]byte

// Bytes 字节格式
func (pubKey PubKeySecp256k1Eth) Bytes() []byte {
	s := make([]byte, 65)
	copy(s, pubKey[:])
	return s
}

// VerifyBytes 验证字节
func (pubKey PubKeySecp256k1Eth) VerifyBytes(msg []byte, sig crypto.Signature) bool {
	if sig == nil {
		return false
	}
	hash := ethcrypto.Keccak256(msg)
	sigBytes := sig.Bytes()
	if len(sigBytes) != ethcrypto.SignatureLength {
		return false
	}
	recoverPub, err := ethcrypto.Ecrecover(hash, sigBytes)
	if err != nil {
		elog.Debug("VerifyBytes", "Ecrecover", err)
		return false
	}
	if !bytes.Equal(recoverPub, pubKey[:]) {
		elog.Debug("VerifyBytes", "pubkey not equal")
		return false
	}
	return ethcrypto.VerifySignature(pubKey[:], hash, sigBytes[:64])
}

func (pubKey PubKeySecp256k1Eth) String() string {
	return fmt.Sprintf("PubKeySecp256k1Eth{%X}", pubKey[:])
}

// KeyString Must return the full bytes in hex.
// Used for map keying, etc.
func (pubKey PubKeySecp256k1Eth) KeyString() string {
	return fmt.Sprintf("%X", pubKey[:])
}

// Equals 公钥相等
func (pubKey PubKeySecp256k1Eth) Equals(other crypto.PubKey) bool {
	if otherSecp, ok := other.(PubKeySecp256k1Eth); ok {
		return bytes.Equal(pubKey[:], otherSecp[:])
	}
	return false
}

const (
	// Name 驱动名称
	Name = "secp256k1eth"
	// ID 驱动类型
	ID = 9
)

func init() {
	crypto.Register(Name, &Driver{})
	crypto.RegisterType(Name, ID)
}
