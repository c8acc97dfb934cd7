// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package commands

import (
	"encoding/json"
	"fmt"
	"io/ioutil"
	"strings"

	"github.com/33cn/ccr/common/crypto"
	"github.com/33cn/ccr/types"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/spf13/cobra"
)

// DecodedResult decode 命令输出
type DecodedResult struct {
	Record             *types.RecordJSON `json:"record"`
	ConfidentialInputs hexutil.Bytes     `json:"confidentialInputs,omitempty"`
	Sender             *common.Address   `json:"sender,omitempty"`
	Digest             *common.Hash      `json:"digest,omitempty"`
}

// DecodeCmd decode a hex envelope
func DecodeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "decode",
		Short: "Decode a hex format request (0x43) or record (0x42) envelope",
		Run:   decodeEnvelope,
	}
	cmd.Flags().StringP("data", "d", "", "envelope content")
	cmd.MarkFlagRequired("data")
	return cmd
}

func decodeEnvelope(cmd *cobra.Command, args []string) {
	data, _ := cmd.Flags().GetString("data")
	if !strings.HasPrefix(data, "0x") {
		data = "0x" + data
	}
	b, err := hexutil.Decode(data)
	if err != nil {
		fmt.Fprintln(cmd.ErrOrStderr(), err)
		return
	}
	res, err := decode(b)
	if err != nil {
		fmt.Fprintln(cmd.ErrOrStderr(), err)
		return
	}
	printJSON(cmd, res)
}

func decode(b []byte) (*DecodedResult, error) {
	if len(b) > 0 && b[0] == types.RecordTxType {
		record, sig, err := types.DecodeRecord(b)
		if err != nil {
			return nil, err
		}
		res := &DecodedResult{Record: types.NewRecordJSON(record, sig)}
		if digest, err := record.Digest(); err == nil {
			res.Digest = &digest
			if sender, err := sig.RecoverAddress(digest); err == nil {
				res.Sender = &sender
			}
		}
		return res, nil
	}
	signed, err := types.DecodeRequest(b)
	if err != nil {
		return nil, err
	}
	res := &DecodedResult{
		Record:             types.NewRecordJSON(signed.Record(), signed.Signature()),
		ConfidentialInputs: signed.ConfidentialInputs(),
	}
	if hash, err := signed.Hash(); err == nil {
		res.Record.Hash = &hash
	}
	if digest, err := signed.Digest(); err == nil {
		res.Digest = &digest
	}
	if sender, err := signed.Sender(); err == nil {
		res.Sender = &sender
	}
	return res, nil
}

// ResponseCmd parse a kettle response transaction
func ResponseCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "response",
		Short: "Parse a confidential call response transaction (json file)",
		Run:   parseResponse,
	}
	cmd.Flags().StringP("file", "f", "", "response json file")
	cmd.MarkFlagRequired("file")
	return cmd
}

func parseResponse(cmd *cobra.Command, args []string) {
	path, _ := cmd.Flags().GetString("file")
	data, err := ioutil.ReadFile(path)
	if err != nil {
		fmt.Fprintln(cmd.ErrOrStderr(), err)
		return
	}
	resp, err := types.ParseConfidentialCallResponse(data)
	if err != nil {
		fmt.Fprintln(cmd.ErrOrStderr(), err)
		return
	}
	out := map[string]interface{}{
		"hash":                      resp.Hash,
		"confidentialComputeResult": resp.ConfidentialComputeResult,
		"requestRecord":             resp.RequestRecord,
	}
	printJSON(cmd, out)
}

// GenKeyCmd generate a private key
func GenKeyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "genkey",
		Short: "Generate a signer private key",
		Run:   genKey,
	}
	cmd.Flags().StringP("driver", "t", "secp256k1eth", "crypto driver")
	return cmd
}

func genKey(cmd *cobra.Command, args []string) {
	driver, _ := cmd.Flags().GetString("driver")
	c, err := crypto.New(driver)
	if err != nil {
		fmt.Fprintln(cmd.ErrOrStderr(), err)
		return
	}
	priv, err := c.GenKey()
	if err != nil {
		fmt.Fprintln(cmd.ErrOrStderr(), err)
		return
	}
	addr, err := crypto.PrivKeyToAddress(priv)
	if err != nil {
		fmt.Fprintln(cmd.ErrOrStderr(), err)
		return
	}
	out := map[string]string{
		"driver":  driver,
		"privKey": hexutil.Encode(priv.Bytes()),
		"pubKey":  hexutil.Encode(priv.PubKey().Bytes()),
		"address": addr.Hex(),
	}
	raw, _ := json.MarshalIndent(out, "", "    ")
	fmt.Fprintln(cmd.OutOrStdout(), string(raw))
}
