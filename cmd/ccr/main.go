// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"os"

	"github.com/33cn/ccr/cmd/ccr/commands"
	"github.com/33cn/ccr/common/log"
	_ "github.com/33cn/ccr/system/crypto/init"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "ccr",
	Short: "confidential compute request tools",
}

func init() {
	rootCmd.AddCommand(
		commands.SignCmd(),
		commands.DigestCmd(),
		commands.DecodeCmd(),
		commands.ResponseCmd(),
		commands.GenKeyCmd(),
	)
}

func main() {
	log.SetLogLevel("error")
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
