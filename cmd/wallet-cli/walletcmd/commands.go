/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package walletcmd

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/trustbloc/verifiedid-go/pkg/client"
	"github.com/trustbloc/verifiedid-go/pkg/service/linkeddomain"
)

var errArgument = errors.New("exactly one argument is required")

// GetResolveDIDCmd returns the command that prints the document of a DID.
func GetResolveDIDCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "resolve-did <did>",
		Short: "Resolve a DID document",
		RunE: withEnvironment(func(cmd *cobra.Command, env *environment, arg string) error {
			doc, err := env.config.DIDResolver.Resolve(cmd.Context(), arg)
			if err != nil {
				return err
			}

			return printJSON(cmd.OutOrStdout(), doc)
		}),
	}

	createFlags(cmd)

	return cmd
}

type linkedDomainOutput struct {
	Status linkeddomain.Status `json:"status"`
	Domain string              `json:"domain,omitempty"`
	Reason string              `json:"reason,omitempty"`
}

// GetLinkedDomainCmd returns the command that validates the linked domain of a DID.
func GetLinkedDomainCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "linked-domain <did>",
		Short: "Validate the linked domain of a DID",
		RunE: withEnvironment(func(cmd *cobra.Command, env *environment, arg string) error {
			result, err := env.config.LinkedDomainService.ValidateLinkedDomain(cmd.Context(), arg)
			if err != nil {
				return err
			}

			out := &linkedDomainOutput{Status: result.Status, Domain: result.Domain}
			if result.Err != nil {
				out.Reason = result.Err.Error()
			}

			return printJSON(cmd.OutOrStdout(), out)
		}),
	}

	createFlags(cmd)

	return cmd
}

// GetRequestCmd returns the command that processes a request url and prints what it asks for.
func GetRequestCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "request <url>",
		Short: "Process an openid-vc request url and print its requirements",
		RunE: withEnvironment(func(cmd *cobra.Command, env *environment, arg string) error {
			input, err := client.NewURLInput(arg)
			if err != nil {
				return err
			}

			request, err := env.client.CreateRequest(cmd.Context(), input)
			if err != nil {
				return err
			}

			return printJSON(cmd.OutOrStdout(), summarize(request))
		}),
	}

	createFlags(cmd)

	return cmd
}

func withEnvironment(run func(cmd *cobra.Command, env *environment, arg string) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		if len(args) != 1 {
			return errArgument
		}

		params, err := getParameters(cmd)
		if err != nil {
			return err
		}

		env, err := newEnvironment(cmd, params)
		if err != nil {
			return fmt.Errorf("setup: %w", err)
		}

		defer env.close()

		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}

		ctx, cancel := context.WithTimeout(ctx, requestTimeout)
		defer cancel()

		cmd.SetContext(ctx)

		return run(cmd, env, args[0])
	}
}
