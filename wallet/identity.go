// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package wallet

import (
	"context"
	"errors"
	"time"

	"github.com/33cn/ccr/common/crypto"
	"github.com/cenkalti/backoff/v4"
	"github.com/ethereum/go-ethereum/accounts"
	"github.com/ethereum/go-ethereum/accounts/keystore"
	"github.com/ethereum/go-ethereum/common"
	pkgerr "github.com/pkg/errors"
)

// Identity signing capability bound to one address.
// SignHash returns a 65 byte [R || S || V] signature, V in {0, 1} or {27, 28}.
type Identity interface {
	Address() common.Address
	SignHash(ctx context.Context, hash common.Hash) ([]byte, error)
}

// KeyIdentity 内存私钥身份, works with any registered crypto driver
type KeyIdentity struct {
	priv crypto.PrivKey
	addr common.Address
}

// NewKeyIdentity 由私钥构造身份
func NewKeyIdentity(priv crypto.PrivKey) (*KeyIdentity, error) {
	if priv == nil {
		return nil, crypto.ErrPrivKeyFormat
	}
	addr, err := crypto.PrivKeyToAddress(priv)
	if err != nil {
		return nil, err
	}
	return &KeyIdentity{priv: priv, addr: addr}, nil
}

// Address 地址
func (k *KeyIdentity) Address() common.Address {
	return k.addr
}

// SignHash 签名
func (k *KeyIdentity) SignHash(ctx context.Context, hash common.Hash) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return k.priv.SignHash(hash[:])
}

// KeystoreIdentity account of a go-ethereum keystore.
// With an empty passphrase the account must already be unlocked.
type KeystoreIdentity struct {
	ks         *keystore.KeyStore
	account    accounts.Account
	passphrase string
}

// NewKeystoreIdentity keystore 账户身份
func NewKeystoreIdentity(ks *keystore.KeyStore, account accounts.Account, passphrase string) *KeystoreIdentity {
	return &KeystoreIdentity{ks: ks, account: account, passphrase: passphrase}
}

// Address 地址
func (k *KeystoreIdentity) Address() common.Address {
	return k.account.Address
}

// SignHash 签名
func (k *KeystoreIdentity) SignHash(ctx context.Context, hash common.Hash) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if k.passphrase == "" {
		return k.ks.SignHash(k.account, hash[:])
	}
	return k.ks.SignHashWithPassphrase(k.account, k.passphrase, hash[:])
}

// RetryIdentity retries a flaky identity, e.g. remote key material.
// Context errors, wrong passphrases and unknown accounts stop the retries.
type RetryIdentity struct {
	id         Identity
	newBackOff func() backoff.BackOff
}

// NewRetryIdentity newBackOff is called once per signature, BackOff values are stateful
func NewRetryIdentity(id Identity, newBackOff func() backoff.BackOff) *RetryIdentity {
	return &RetryIdentity{id: id, newBackOff: newBackOff}
}

// ExponentialRetry 指数退避，最多重试 retries 次
func ExponentialRetry(retries uint64) func() backoff.BackOff {
	return func() backoff.BackOff {
		eb := backoff.NewExponentialBackOff()
		eb.InitialInterval = 50 * time.Millisecond
		eb.MaxInterval = 2 * time.Second
		eb.MaxElapsedTime = 0
		return backoff.WithMaxRetries(eb, retries)
	}
}

// Address 地址
func (r *RetryIdentity) Address() common.Address {
	return r.id.Address()
}

// SignHash 签名，失败时按退避策略重试
func (r *RetryIdentity) SignHash(ctx context.Context, hash common.Hash) ([]byte, error) {
	var sig []byte
	op := func() error {
		s, err := r.id.SignHash(ctx, hash)
		if err != nil {
			if cerr := ctx.Err(); cerr != nil {
				return backoff.Permanent(pkgerr.Wrap(cerr, err.Error()))
			}
			if isPermanent(err) {
				return backoff.Permanent(err)
			}
			return err
		}
		sig = s
		return nil
	}
	notify := func(err error, next time.Duration) {
		walletlog.Debug("SignHash retry", "addr", r.id.Address(), "next", next, "err", err)
	}
	if err := backoff.RetryNotify(op, backoff.WithContext(r.newBackOff(), ctx), notify); err != nil {
		return nil, err
	}
	return sig, nil
}

func isPermanent(err error) bool {
	return errors.Is(err, context.Canceled) ||
		errors.Is(err, context.DeadlineExceeded) ||
		errors.Is(err, keystore.ErrDecrypt) ||
		errors.Is(err, keystore.ErrNoMatch) ||
		errors.Is(err, keystore.ErrLocked) ||
		errors.Is(err, crypto.ErrPrivKeyFormat)
}
