/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

// Package main is a command line wallet for resolving DIDs, checking linked domains and inspecting
// openid-vc requests.
package main

import (
	"os"

	"github.com/spf13/cobra"
	"github.com/trustbloc/logutil-go/pkg/log"

	"github.com/trustbloc/verifiedid-go/cmd/wallet-cli/walletcmd"
	"github.com/trustbloc/verifiedid-go/internal/logfields"
)

var logger = log.New("wallet-cli")

func main() {
	rootCmd := &cobra.Command{
		Use:          "wallet-cli",
		SilenceUsage: true,
		Run: func(cmd *cobra.Command, args []string) {
			cmd.HelpFunc()(cmd, args)
		},
	}

	rootCmd.AddCommand(
		walletcmd.GetResolveDIDCmd(),
		walletcmd.GetLinkedDomainCmd(),
		walletcmd.GetRequestCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		logger.Error("Failed to run wallet-cli", logfields.WithError(err))
		os.Exit(1)
	}
}
