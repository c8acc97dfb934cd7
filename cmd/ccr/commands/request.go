// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package commands ccr 命令行子命令
package commands

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/33cn/ccr/common/log"
	"github.com/33cn/ccr/types"
	"github.com/33cn/ccr/wallet"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/spf13/cobra"
)

// SignedResult sign 命令输出
type SignedResult struct {
	From     common.Address `json:"from"`
	Digest   common.Hash    `json:"digest"`
	Hash     common.Hash    `json:"hash"`
	Envelope hexutil.Bytes  `json:"envelope"`
	Record   hexutil.Bytes  `json:"record"`
}

// SignCmd build and sign a request from a toml file
func SignCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sign",
		Short: "Build and sign a confidential compute request",
		Run:   signRequest,
	}
	addConfigFlag(cmd)
	cmd.Flags().StringP("as", "a", "", "signer address, default signer if empty")
	return cmd
}

// DigestCmd print the signing digest
func DigestCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "digest",
		Short: "Print the signing digest of a confidential compute request",
		Run:   digestRequest,
	}
	addConfigFlag(cmd)
	return cmd
}

func addConfigFlag(cmd *cobra.Command) {
	cmd.Flags().StringP("conf", "c", "ccr.toml", "config file")
}

func loadConfig(cmd *cobra.Command) (*types.Config, *types.ConfidentialComputeRequest, error) {
	path, _ := cmd.Flags().GetString("conf")
	cfg, err := types.InitCfg(path)
	if err != nil {
		return nil, nil, err
	}
	if cfg.Log != nil {
		log.SetFileLog(cfg.Log)
	}
	if cfg.Request == nil {
		return nil, nil, fmt.Errorf("%s: missing [request] section", path)
	}
	req, err := cfg.Request.ToRequest()
	if err != nil {
		return nil, nil, err
	}
	return cfg, req, nil
}

func signRequest(cmd *cobra.Command, args []string) {
	cfg, req, err := loadConfig(cmd)
	if err != nil {
		fmt.Fprintln(cmd.ErrOrStderr(), err)
		return
	}
	w, err := wallet.NewFromConfig(cfg.Signer)
	if err != nil {
		fmt.Fprintln(cmd.ErrOrStderr(), err)
		return
	}
	var signed *types.SignedConfidentialComputeRequest
	as, _ := cmd.Flags().GetString("as")
	if as != "" {
		if !common.IsHexAddress(as) {
			fmt.Fprintln(cmd.ErrOrStderr(), "invalid signer address", as)
			return
		}
		signed, err = w.SignAs(context.Background(), common.HexToAddress(as), req)
	} else {
		signed, err = w.Sign(context.Background(), req)
	}
	if err != nil {
		fmt.Fprintln(cmd.ErrOrStderr(), err)
		return
	}
	res, err := newSignedResult(signed)
	if err != nil {
		fmt.Fprintln(cmd.ErrOrStderr(), err)
		return
	}
	printJSON(cmd, res)
}

func newSignedResult(signed *types.SignedConfidentialComputeRequest) (*SignedResult, error) {
	res := &SignedResult{}
	res.From, _ = signed.From()
	var err error
	if res.Digest, err = signed.Digest(); err != nil {
		return nil, err
	}
	if res.Hash, err = signed.Hash(); err != nil {
		return nil, err
	}
	if res.Envelope, err = signed.Encode(); err != nil {
		return nil, err
	}
	if res.Record, err = signed.EncodeRecord(); err != nil {
		return nil, err
	}
	return res, nil
}

func digestRequest(cmd *cobra.Command, args []string) {
	_, req, err := loadConfig(cmd)
	if err != nil {
		fmt.Fprintln(cmd.ErrOrStderr(), err)
		return
	}
	digest, err := req.Digest()
	if err != nil {
		fmt.Fprintln(cmd.ErrOrStderr(), err)
		return
	}
	fmt.Fprintln(cmd.OutOrStdout(), digest.Hex())
}

func printJSON(cmd *cobra.Command, v interface{}) {
	result, err := json.MarshalIndent(v, "", "    ")
	if err != nil {
		fmt.Fprintln(cmd.ErrOrStderr(), err)
		return
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(result))
}
