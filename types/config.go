// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package types

import (
	"io/ioutil"
	"math/big"
	"strings"

	tml "github.com/BurntSushi/toml"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/common/math"
	"github.com/pkg/errors"
)

// InitCfg 读取配置文件
func InitCfg(path string) (*Config, error) {
	data, err := ReadFile(path)
	if err != nil {
		return nil, err
	}
	return InitCfgString(data)
}

// InitCfgString 解析配置字符串
func InitCfgString(cfgstring string) (*Config, error) {
	var cfg Config
	if _, err := tml.Decode(cfgstring, &cfg); err != nil {
		return nil, errors.Wrap(ErrInvalidConfig, err.Error())
	}
	if cfg.Signer == nil {
		cfg.Signer = &SignerConfig{}
	}
	if cfg.Signer.Driver == "" {
		cfg.Signer.Driver = "secp256k1eth"
	}
	return &cfg, nil
}

// ReadFile 读取文件内容
func ReadFile(path string) (string, error) {
	data, err := ioutil.ReadFile(path)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// ToRequest builds an unsigned request, unset fields stay unset
func (c *RequestConfig) ToRequest() (*ConfidentialComputeRequest, error) {
	record := &ConfidentialComputeRecord{Value: new(big.Int), Input: []byte{}}
	if c.Nonce != "" {
		nonce, ok := math.ParseUint64(c.Nonce)
		if !ok {
			return nil, errors.Wrapf(ErrInvalidConfig, "nonce %q", c.Nonce)
		}
		record.Nonce = &nonce
	}
	if c.ChainID != "" {
		chainID, ok := math.ParseUint64(c.ChainID)
		if !ok {
			return nil, errors.Wrapf(ErrInvalidConfig, "chainID %q", c.ChainID)
		}
		record.ChainID = &chainID
	}
	var err error
	if record.Gas, err = parseBig("gas", c.Gas); err != nil {
		return nil, err
	}
	if record.GasPrice, err = parseBig("gasPrice", c.GasPrice); err != nil {
		return nil, err
	}
	if c.Value != "" {
		if record.Value, err = parseBig("value", c.Value); err != nil {
			return nil, err
		}
	}
	if c.To != "" {
		if record.To, err = parseAddress("to", c.To); err != nil {
			return nil, err
		}
	}
	if c.KettleAddress != "" {
		kettle, err := parseAddress("kettleAddress", c.KettleAddress)
		if err != nil {
			return nil, err
		}
		record.KettleAddress = &kettle
	}
	if record.Input, err = parseHex("input", c.Input); err != nil {
		return nil, err
	}
	cinputs, err := parseHex("confidentialInputs", c.ConfidentialInputs)
	if err != nil {
		return nil, err
	}
	return NewRequest(record, cinputs), nil
}

func parseBig(name, s string) (*big.Int, error) {
	if s == "" {
		return nil, nil
	}
	v, ok := math.ParseBig256(s)
	if !ok {
		return nil, errors.Wrapf(ErrInvalidConfig, "%s %q", name, s)
	}
	return v, nil
}

func parseAddress(name, s string) (common.Address, error) {
	if !common.IsHexAddress(s) {
		return common.Address{}, errors.Wrapf(ErrInvalidConfig, "%s %q", name, s)
	}
	return common.HexToAddress(s), nil
}

func parseHex(name, s string) ([]byte, error) {
	if s == "" {
		return []byte{}, nil
	}
	if !strings.HasPrefix(s, "0x") && !strings.HasPrefix(s, "0X") {
		s = "0x" + s
	}
	b, err := hexutil.Decode(s)
	if err != nil {
		return nil, errors.Wrapf(ErrInvalidConfig, "%s: %v", name, err)
	}
	return b, nil
}
