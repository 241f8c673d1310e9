/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package walletcmd

import (
	"fmt"
	"strconv"
	"time"

	"github.com/samber/lo"
	"github.com/spf13/cobra"
	cmdutils "github.com/trustbloc/cmdutil-go/pkg/utils/cmd"

	"github.com/trustbloc/verifiedid-go/cmd/common"
	"github.com/trustbloc/verifiedid-go/pkg/config"
	"github.com/trustbloc/verifiedid-go/pkg/observability/tracing"
)

const (
	didResolverURLFlagName  = "did-resolver-url"
	didResolverURLFlagUsage = "URL of the DID resolver. Defaults to " + config.DefaultDIDResolverURL + "." +
		" Alternatively, this can be set with the following environment variable: " + didResolverURLEnvKey
	didResolverURLEnvKey = "WALLET_CLI_DID_RESOLVER_URL"

	didCacheTTLFlagName  = "did-cache-ttl"
	didCacheTTLFlagUsage = "Caches resolved DID documents for the given duration, for example 5m." +
		" Alternatively, this can be set with the following environment variable: " + didCacheTTLEnvKey
	didCacheTTLEnvKey = "WALLET_CLI_DID_CACHE_TTL"

	traceHTTPFlagName  = "trace-http"
	traceHTTPFlagUsage = "Dumps HTTP requests and responses to stderr. Possible values [true] [false]." +
		" Alternatively, this can be set with the following environment variable: " + traceHTTPEnvKey
	traceHTTPEnvKey = "WALLET_CLI_TRACE_HTTP"

	tracingExporterFlagName  = "tracing-exporter"
	tracingExporterFlagUsage = "Span exporter. Possible values [STDOUT] [JAEGER]. Tracing is off if not set." +
		" Alternatively, this can be set with the following environment variable: " + tracingExporterEnvKey
	tracingExporterEnvKey = "WALLET_CLI_TRACING_EXPORTER"

	metricsHostFlagName  = "metrics-host"
	metricsHostFlagUsage = "Exposes prometheus metrics on the given address while the command runs. Format: HostName:Port." +
		" Alternatively, this can be set with the following environment variable: " + metricsHostEnvKey
	metricsHostEnvKey = "WALLET_CLI_METRICS_HOST"

	localesFlagName  = "locales"
	localesFlagUsage = "Comma-separated preferred display locales, for example en-US,fr." +
		" Alternatively, this can be set with the following environment variable: " + localesEnvKey
	localesEnvKey = "WALLET_CLI_LOCALES"

	strictLinkedDomainFlagName  = "strict-linked-domain"
	strictLinkedDomainFlagUsage = "Fails requests whose linked domain cannot be verified. Possible values [true] [false]." +
		" Alternatively, this can be set with the following environment variable: " + strictLinkedDomainEnvKey
	strictLinkedDomainEnvKey = "WALLET_CLI_STRICT_LINKED_DOMAIN"

	featureFlagsFlagName  = "feature-flags"
	featureFlagsFlagUsage = "Comma-separated preview features to enable. Supported: " +
		"OpenID4VCIAccessToken, OpenID4VCIPreAuth, ProcessorExtensionSupport." +
		" Alternatively, this can be set with the following environment variable: " + featureFlagsEnvKey
	featureFlagsEnvKey = "WALLET_CLI_FEATURE_FLAGS"

	tlsSystemCertPoolFlagName  = "tls-systemcertpool"
	tlsSystemCertPoolFlagUsage = "Use system certificate pool. Possible values [true] [false]. Defaults to true." +
		" Alternatively, this can be set with the following environment variable: " + tlsSystemCertPoolEnvKey
	tlsSystemCertPoolEnvKey = "WALLET_CLI_TLS_SYSTEMCERTPOOL"

	tlsCACertsFlagName  = "tls-cacerts"
	tlsCACertsFlagUsage = "Comma-separated list of CA certs path." +
		" Alternatively, this can be set with the following environment variable: " + tlsCACertsEnvKey
	tlsCACertsEnvKey = "WALLET_CLI_TLS_CACERTS"

	holderDIDFlagName  = "holder-did"
	holderDIDFlagUsage = "DID the wallet presents itself as. A fresh signing key is generated per run." +
		" Alternatively, this can be set with the following environment variable: " + holderDIDEnvKey
	holderDIDEnvKey  = "WALLET_CLI_HOLDER_DID"
	defaultHolderDID = "did:example:wallet-cli"

	serviceName = "wallet-cli"
)

var supportedFlags = []config.Flag{ //nolint:gochecknoglobals
	config.OpenID4VCIAccessToken,
	config.OpenID4VCIPreAuth,
	config.ProcessorExtensionSupport,
}

type parameters struct {
	logLevel           string
	didResolverURL     string
	didCacheTTL        time.Duration
	traceHTTP          bool
	tracingExporter    string
	metricsHost        string
	locales            []string
	strictLinkedDomain bool
	featureFlags       []config.Flag
	holderDID          string
	tlsSystemCertPool  bool
	tlsCACerts         []string
}

func createFlags(cmd *cobra.Command) {
	cmd.Flags().StringP(common.LogLevelFlagName, common.LogLevelFlagShorthand, "", common.LogLevelPrefixFlagUsage)
	cmd.Flags().StringP(didResolverURLFlagName, "", "", didResolverURLFlagUsage)
	cmd.Flags().StringP(didCacheTTLFlagName, "", "", didCacheTTLFlagUsage)
	cmd.Flags().StringP(traceHTTPFlagName, "", "", traceHTTPFlagUsage)
	cmd.Flags().StringP(tracingExporterFlagName, "", "", tracingExporterFlagUsage)
	cmd.Flags().StringP(metricsHostFlagName, "", "", metricsHostFlagUsage)
	cmd.Flags().StringSliceP(localesFlagName, "", []string{}, localesFlagUsage)
	cmd.Flags().StringP(strictLinkedDomainFlagName, "", "", strictLinkedDomainFlagUsage)
	cmd.Flags().StringSliceP(featureFlagsFlagName, "", []string{}, featureFlagsFlagUsage)
	cmd.Flags().StringP(holderDIDFlagName, "", "", holderDIDFlagUsage)
	cmd.Flags().StringP(tlsSystemCertPoolFlagName, "", "", tlsSystemCertPoolFlagUsage)
	cmd.Flags().StringSliceP(tlsCACertsFlagName, "", []string{}, tlsCACertsFlagUsage)
}

func getParameters(cmd *cobra.Command) (*parameters, error) {
	params := &parameters{
		logLevel:        cmdutils.GetUserSetOptionalVarFromString(cmd, common.LogLevelFlagName, common.LogLevelEnvKey),
		didResolverURL:  cmdutils.GetUserSetOptionalVarFromString(cmd, didResolverURLFlagName, didResolverURLEnvKey),
		tracingExporter: cmdutils.GetUserSetOptionalVarFromString(cmd, tracingExporterFlagName, tracingExporterEnvKey),
		metricsHost:     cmdutils.GetUserSetOptionalVarFromString(cmd, metricsHostFlagName, metricsHostEnvKey),
		locales:         cmdutils.GetUserSetOptionalCSVVar(cmd, localesFlagName, localesEnvKey),
		holderDID:       cmdutils.GetUserSetOptionalVarFromString(cmd, holderDIDFlagName, holderDIDEnvKey),
		tlsCACerts:      cmdutils.GetUserSetOptionalCSVVar(cmd, tlsCACertsFlagName, tlsCACertsEnvKey),
	}

	if params.holderDID == "" {
		params.holderDID = defaultHolderDID
	}

	if !tracing.IsExporterSupported(params.tracingExporter) {
		return nil, fmt.Errorf("unsupported tracing exporter: %s", params.tracingExporter)
	}

	var err error

	if params.traceHTTP, err = getBool(cmd, traceHTTPFlagName, traceHTTPEnvKey); err != nil {
		return nil, err
	}

	if params.strictLinkedDomain, err = getBool(cmd, strictLinkedDomainFlagName, strictLinkedDomainEnvKey); err != nil {
		return nil, err
	}

	params.tlsSystemCertPool = true

	if cmdutils.GetUserSetOptionalVarFromString(cmd, tlsSystemCertPoolFlagName, tlsSystemCertPoolEnvKey) != "" {
		if params.tlsSystemCertPool, err = getBool(cmd, tlsSystemCertPoolFlagName, tlsSystemCertPoolEnvKey); err != nil {
			return nil, err
		}
	}

	if ttl := cmdutils.GetUserSetOptionalVarFromString(cmd, didCacheTTLFlagName, didCacheTTLEnvKey); ttl != "" {
		if params.didCacheTTL, err = time.ParseDuration(ttl); err != nil {
			return nil, fmt.Errorf("invalid value for %s: %w", didCacheTTLFlagName, err)
		}
	}

	for _, name := range cmdutils.GetUserSetOptionalCSVVar(cmd, featureFlagsFlagName, featureFlagsEnvKey) {
		flag := config.Flag(name)
		if !lo.Contains(supportedFlags, flag) {
			return nil, fmt.Errorf("unsupported feature flag: %s", name)
		}

		params.featureFlags = append(params.featureFlags, flag)
	}

	return params, nil
}

func getBool(cmd *cobra.Command, flagName, envKey string) (bool, error) {
	value := cmdutils.GetUserSetOptionalVarFromString(cmd, flagName, envKey)
	if value == "" {
		return false, nil
	}

	b, err := strconv.ParseBool(value)
	if err != nil {
		return false, fmt.Errorf("invalid value for %s: %w", flagName, err)
	}

	return b, nil
}
