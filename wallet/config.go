// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package wallet

import (
	"strings"

	"github.com/33cn/ccr/common/crypto"
	"github.com/33cn/ccr/types"
	"github.com/ethereum/go-ethereum/accounts"
	"github.com/ethereum/go-ethereum/accounts/keystore"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	pkgerr "github.com/pkg/errors"
)

// keystore scrypt 参数，测试时可调低
var (
	scryptN = keystore.StandardScryptN
	scryptP = keystore.StandardScryptP
)

// NewFromConfig builds a wallet from the [signer] section.
// Without an explicit default the first configured identity is the default.
func NewFromConfig(cfg *types.SignerConfig) (*Wallet, error) {
	if cfg == nil {
		cfg = &types.SignerConfig{}
	}
	driver := cfg.Driver
	if driver == "" {
		driver = "secp256k1eth"
	}
	c, err := crypto.New(driver)
	if err != nil {
		return nil, pkgerr.Wrap(types.ErrInvalidConfig, err.Error())
	}

	var ids []Identity
	for i, key := range cfg.Keys {
		if !strings.HasPrefix(key, "0x") && !strings.HasPrefix(key, "0X") {
			key = "0x" + key
		}
		b, err := hexutil.Decode(key)
		if err != nil {
			return nil, pkgerr.Wrapf(types.ErrInvalidConfig, "signer key %d: %v", i, err)
		}
		priv, err := c.PrivKeyFromBytes(b)
		if err != nil {
			return nil, pkgerr.Wrapf(types.ErrInvalidConfig, "signer key %d: %v", i, err)
		}
		id, err := NewKeyIdentity(priv)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}

	if cfg.KeystoreDir != "" {
		ks := keystore.NewKeyStore(cfg.KeystoreDir, scryptN, scryptP)
		for _, a := range cfg.Accounts {
			if !common.IsHexAddress(a) {
				return nil, pkgerr.Wrapf(types.ErrInvalidConfig, "keystore account %q", a)
			}
			account, err := ks.Find(accounts.Account{Address: common.HexToAddress(a)})
			if err != nil {
				return nil, pkgerr.Wrapf(types.ErrInvalidConfig, "keystore account %s: %v", a, err)
			}
			var id Identity = NewKeystoreIdentity(ks, account, cfg.Passphrase)
			if cfg.Retries > 0 {
				id = NewRetryIdentity(id, ExponentialRetry(cfg.Retries))
			}
			ids = append(ids, id)
		}
	}

	var wallet *Wallet
	if len(ids) == 0 {
		wallet = New(nil)
	} else {
		wallet = New(ids[0], ids[1:]...)
	}
	if cfg.Default != "" {
		if !common.IsHexAddress(cfg.Default) {
			return nil, pkgerr.Wrapf(types.ErrInvalidConfig, "default signer %q", cfg.Default)
		}
		if err := wallet.SetDefault(common.HexToAddress(cfg.Default)); err != nil {
			return nil, err
		}
	}
	walletlog.Info("NewFromConfig", "driver", driver, "identities", len(ids))
	return wallet, nil
}
