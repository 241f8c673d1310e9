/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package walletcmd

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/spf13/cobra"
	"github.com/trustbloc/logutil-go/pkg/log"

	"github.com/trustbloc/verifiedid-go/cmd/common"
	"github.com/trustbloc/verifiedid-go/internal/logfields"
	tlsutils "github.com/trustbloc/verifiedid-go/internal/pkg/utils/tls"
	"github.com/trustbloc/verifiedid-go/pkg/client"
	"github.com/trustbloc/verifiedid-go/pkg/config"
	"github.com/trustbloc/verifiedid-go/pkg/crypto"
	"github.com/trustbloc/verifiedid-go/pkg/networking"
	"github.com/trustbloc/verifiedid-go/pkg/observability/metrics/prometheus"
	"github.com/trustbloc/verifiedid-go/pkg/observability/tracing"
	"github.com/trustbloc/verifiedid-go/pkg/walletlog"
)

var logger = log.New("wallet-cli")

const (
	holderKeyID    = "sign"
	requestTimeout = 30 * time.Second
)

// environment holds what a single command run needs.
type environment struct {
	client   *client.VerifiedIDClient
	config   *config.Configuration
	shutdown []func()
}

func (e *environment) close() {
	for i := len(e.shutdown) - 1; i >= 0; i-- {
		e.shutdown[i]()
	}
}

func newEnvironment(cmd *cobra.Command, params *parameters) (*environment, error) {
	common.SetDefaultLogLevel(logger, params.logLevel)

	env := &environment{}

	metricsProvider := prometheus.NewPrometheusProvider(params.metricsHost)
	if err := metricsProvider.Create(); err != nil {
		return nil, fmt.Errorf("create metrics provider: %w", err)
	}

	env.shutdown = append(env.shutdown, func() {
		if err := metricsProvider.Destroy(); err != nil {
			logger.Warn("Error stopping metrics provider", logfields.WithError(err))
		}
	})

	m := metricsProvider.Metrics()

	shutdownTracer, tracer, err := tracing.Initialize(params.tracingExporter, serviceName,
		tracing.WithWriter(cmd.ErrOrStderr()))
	if err != nil {
		env.close()

		return nil, fmt.Errorf("initialize tracing: %w", err)
	}

	env.shutdown = append(env.shutdown, shutdownTracer)

	rootCAs, err := tlsutils.GetCertPool(params.tlsSystemCertPool, params.tlsCACerts)
	if err != nil {
		env.close()

		return nil, err
	}

	transport := http.DefaultTransport.(*http.Transport).Clone() //nolint:forcetypeassert
	transport.TLSClientConfig = tlsutils.ClientConfig(rootCAs)

	var rt http.RoundTripper = transport
	if params.traceHTTP {
		rt = networking.NewDebugTransport(transport, cmd.ErrOrStderr())
	}

	httpOpts := []networking.Opt{
		networking.WithMetrics(m),
		networking.WithHTTPClient(&http.Client{Timeout: requestTimeout, Transport: rt}),
	}

	store := crypto.NewInMemoryKeyStore()

	keyRef, err := store.Generate()
	if err != nil {
		env.close()

		return nil, fmt.Errorf("generate holder key: %w", err)
	}

	opts := []config.Opt{
		config.WithLogger(walletlog.New(walletlog.NewZapConsumer(logger), walletlog.NewMetricsConsumer(m))),
		config.WithNetworking(networking.NewHTTPClient(httpOpts...)),
		config.WithSigner(crypto.NewSecp256k1Signer(store, m)),
		config.WithIdentifier(&config.Identifier{DID: params.holderDID, KeyID: holderKeyID, KeyRef: keyRef}),
		config.WithFeatureFlags(params.featureFlags...),
		config.WithTracer(tracer),
		config.WithMetrics(m),
		config.WithLocales(params.locales...),
		config.WithStrictLinkedDomainValidation(params.strictLinkedDomain),
		config.WithDIDCacheTTL(params.didCacheTTL),
	}

	if params.didResolverURL != "" {
		opts = append(opts, config.WithDIDResolverURL(params.didResolverURL))
	}

	env.client, err = client.NewBuilder().WithConfigOptions(opts...).Build()
	if err != nil {
		env.close()

		return nil, err
	}

	env.config = env.client.Config()

	return env, nil
}

func printJSON(w io.Writer, v interface{}) error {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal output: %w", err)
	}

	_, err = fmt.Fprintln(w, string(b))

	return err
}
