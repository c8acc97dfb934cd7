// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package types

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/math"
	"github.com/ethereum/go-ethereum/crypto"
	lru "github.com/hashicorp/golang-lru"
	"github.com/pkg/errors"
)

// SignatureLength [R || S || V]
const SignatureLength = crypto.SignatureLength

// Signature secp256k1 recoverable signature, V is the recovery parity (0 or 1)
type Signature struct {
	V byte
	R *big.Int
	S *big.Int
}

// NewSignature 由 v r s 构造签名
func NewSignature(v byte, r, s *big.Int) (*Signature, error) {
	if r == nil || s == nil {
		return nil, ErrInvalidSignature
	}
	sig := &Signature{V: v, R: new(big.Int).Set(r), S: new(big.Int).Set(s)}
	if err := sig.Validate(); err != nil {
		return nil, err
	}
	return sig, nil
}

// SignatureFromBytes parses the 65 byte [R || S || V] format. V may be 0/1 or 27/28.
func SignatureFromBytes(b []byte) (*Signature, error) {
	if len(b) != SignatureLength {
		return nil, errors.Wrapf(ErrInvalidSignature, "wrong size for signature: got %d, want %d", len(b), SignatureLength)
	}
	v := b[64]
	if v == 27 || v == 28 {
		v -= 27
	}
	return NewSignature(v, new(big.Int).SetBytes(b[:32]), new(big.Int).SetBytes(b[32:64]))
}

// SignatureFromReplayProtectedV reverses the 2*chainID+35 fold. Plain 0/1 and 27/28 values are accepted as well.
func SignatureFromReplayProtectedV(v *big.Int, chainID uint64, r, s *big.Int) (*Signature, error) {
	if v == nil || v.Sign() < 0 {
		return nil, ErrInvalidSignature
	}
	if v.IsUint64() {
		switch x := v.Uint64(); x {
		case 0, 1:
			return NewSignature(byte(x), r, s)
		case 27, 28:
			return NewSignature(byte(x-27), r, s)
		}
	}
	parity := new(big.Int).Sub(v, ReplayProtectionBase(chainID))
	if !parity.IsUint64() || parity.Uint64() > 1 {
		return nil, errors.Wrapf(ErrInvalidSignature, "v %s does not match chain id %d", v, chainID)
	}
	return NewSignature(byte(parity.Uint64()), r, s)
}

// ReplayProtectionBase 2*chainID + 35
func ReplayProtectionBase(chainID uint64) *big.Int {
	base := new(big.Int).SetUint64(chainID)
	base.Lsh(base, 1)
	return base.Add(base, big35)
}

// Validate checks the recovery parity and that R, S lie in [1, N)
func (sig *Signature) Validate() error {
	if sig == nil || sig.R == nil || sig.S == nil {
		return ErrInvalidSignature
	}
	if !crypto.ValidateSignatureValues(sig.V, sig.R, sig.S, false) {
		return errors.Wrapf(ErrInvalidSignature, "v=%d r=%#x s=%#x", sig.V, sig.R, sig.S)
	}
	return nil
}

// Bytes [R || S || V] with V in {0, 1}
func (sig *Signature) Bytes() []byte {
	out := make([]byte, SignatureLength)
	copy(out[:32], math.PaddedBigBytes(sig.R, 32))
	copy(out[32:64], math.PaddedBigBytes(sig.S, 32))
	out[64] = sig.V
	return out
}

// ReplayProtectedV v = 2*chainID + 35 + parity
func (sig *Signature) ReplayProtectedV(chainID uint64) *big.Int {
	v := ReplayProtectionBase(chainID)
	return v.Add(v, big.NewInt(int64(sig.V)))
}

// senderKey digest and signature, no confidential bytes
type senderKey struct {
	digest common.Hash
	sig    [SignatureLength]byte
}

// senderCache recovered signers, ecrecover is the expensive step of Sender
var senderCache *lru.Cache

func init() {
	var err error
	senderCache, err = lru.New(4096)
	if err != nil {
		panic(err)
	}
}

// RecoverAddress 从签名恢复签名者地址
func (sig *Signature) RecoverAddress(digest common.Hash) (common.Address, error) {
	key := senderKey{digest: digest}
	copy(key.sig[:], sig.Bytes())
	if cached, ok := senderCache.Get(key); ok {
		return cached.(common.Address), nil
	}
	pub, err := crypto.SigToPub(digest[:], key.sig[:])
	if err != nil {
		return common.Address{}, errors.Wrap(ErrInvalidSignature, err.Error())
	}
	addr := crypto.PubkeyToAddress(*pub)
	senderCache.Add(key, addr)
	return addr, nil
}

// Copy deep copy
func (sig *Signature) Copy() *Signature {
	if sig == nil {
		return nil
	}
	return &Signature{V: sig.V, R: new(big.Int).Set(sig.R), S: new(big.Int).Set(sig.S)}
}

// Equal 比较
func (sig *Signature) Equal(other *Signature) bool {
	if sig == nil || other == nil {
		return sig == other
	}
	return sig.V == other.V && sig.R.Cmp(other.R) == 0 && sig.S.Cmp(other.S) == 0
}
