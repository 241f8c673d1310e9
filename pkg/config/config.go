/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package config

import (
	"errors"
	"time"

	"go.opentelemetry.io/otel/trace"

	"github.com/trustbloc/verifiedid-go/pkg/crypto"
	"github.com/trustbloc/verifiedid-go/pkg/did"
	"github.com/trustbloc/verifiedid-go/pkg/mapping"
	"github.com/trustbloc/verifiedid-go/pkg/networking"
	"github.com/trustbloc/verifiedid-go/pkg/observability/metrics"
	"github.com/trustbloc/verifiedid-go/pkg/observability/metrics/noop"
	"github.com/trustbloc/verifiedid-go/pkg/service/linkeddomain"
	"github.com/trustbloc/verifiedid-go/pkg/walletlog"
)

// DefaultDIDResolverURL is the identifier discovery endpoint used when none is configured.
const DefaultDIDResolverURL = "https://discover.did.msidentity.com/v1.0/identifiers"

// Identifier is the holder identity used to sign responses.
type Identifier struct {
	DID    string
	KeyID  string
	KeyRef crypto.KeyReference
}

// KeyIDURL returns the kid used in token headers: "<did>#<key id>".
func (i *Identifier) KeyIDURL() string {
	return i.DID + "#" + i.KeyID
}

// Configuration is shared by every component of the wallet engine. It is built once and not modified
// afterwards.
type Configuration struct {
	Logger              *walletlog.Logger
	Networking          networking.Networking
	Signer              crypto.Signer
	Verifier            crypto.Verifier
	Identifier          *Identifier
	FeatureFlags        *FeatureFlags
	Tracer              trace.Tracer
	Metrics             metrics.Metrics
	MapperOptions       mapping.Options
	DIDResolver         did.DocumentResolver
	LinkedDomainService *linkeddomain.Service
	Locales             []string
	PreferHeaders       []string

	didResolverURL      string
	didCacheTTL         time.Duration
	strictLinkedDomain  bool
	rootOfTrustResolver linkeddomain.RootOfTrustResolver
}

// Opt configures a Configuration.
type Opt func(c *Configuration)

func WithLogger(logger *walletlog.Logger) Opt {
	return func(c *Configuration) {
		c.Logger = logger
	}
}

func WithNetworking(n networking.Networking) Opt {
	return func(c *Configuration) {
		c.Networking = n
	}
}

func WithSigner(signer crypto.Signer) Opt {
	return func(c *Configuration) {
		c.Signer = signer
	}
}

func WithVerifier(verifier crypto.Verifier) Opt {
	return func(c *Configuration) {
		c.Verifier = verifier
	}
}

func WithIdentifier(identifier *Identifier) Opt {
	return func(c *Configuration) {
		c.Identifier = identifier
	}
}

func WithFeatureFlags(flags ...Flag) Opt {
	return func(c *Configuration) {
		c.FeatureFlags = NewFeatureFlags(flags...)
	}
}

func WithTracer(tracer trace.Tracer) Opt {
	return func(c *Configuration) {
		c.Tracer = tracer
	}
}

func WithMetrics(m metrics.Metrics) Opt {
	return func(c *Configuration) {
		c.Metrics = m
	}
}

func WithMapperOptions(opts mapping.Options) Opt {
	return func(c *Configuration) {
		c.MapperOptions = opts
	}
}

// WithDIDResolverURL sets the discovery endpoint of the default DID resolver.
func WithDIDResolverURL(url string) Opt {
	return func(c *Configuration) {
		c.didResolverURL = url
	}
}

// WithDIDResolver replaces the default DID resolver.
func WithDIDResolver(resolver did.DocumentResolver) Opt {
	return func(c *Configuration) {
		c.DIDResolver = resolver
	}
}

// WithDIDCacheTTL caches resolved DID documents for ttl. Zero disables caching.
func WithDIDCacheTTL(ttl time.Duration) Opt {
	return func(c *Configuration) {
		c.didCacheTTL = ttl
	}
}

// WithStrictLinkedDomainValidation makes domain linkage failures fatal.
func WithStrictLinkedDomainValidation(strict bool) Opt {
	return func(c *Configuration) {
		c.strictLinkedDomain = strict
	}
}

// WithRootOfTrustResolver sets a resolver consulted before linked domain validation.
func WithRootOfTrustResolver(r linkeddomain.RootOfTrustResolver) Opt {
	return func(c *Configuration) {
		c.rootOfTrustResolver = r
	}
}

// WithLocales sets the preferred display locales, most preferred first.
func WithLocales(locales ...string) Opt {
	return func(c *Configuration) {
		c.Locales = locales
	}
}

// WithPreferHeaders adds values sent in the prefer header when fetching requests.
func WithPreferHeaders(values ...string) Opt {
	return func(c *Configuration) {
		c.PreferHeaders = append(c.PreferHeaders, values...)
	}
}

// New builds a Configuration. A signer and an identifier are required; everything else has a default.
func New(opts ...Opt) (*Configuration, error) {
	c := &Configuration{
		didResolverURL: DefaultDIDResolverURL,
		Metrics:        noop.GetMetrics(),
	}

	for _, opt := range opts {
		opt(c)
	}

	if c.Signer == nil {
		return nil, errors.New("signer is required")
	}

	if c.Identifier == nil || c.Identifier.DID == "" {
		return nil, errors.New("identifier is required")
	}

	if c.Logger == nil {
		c.Logger = walletlog.New()
	}

	if c.FeatureFlags == nil {
		c.FeatureFlags = NewFeatureFlags()
	}

	if c.Tracer == nil {
		c.Tracer = trace.NewNoopTracerProvider().Tracer("")
	}

	if c.Networking == nil {
		c.Networking = networking.NewHTTPClient(networking.WithMetrics(c.Metrics))
	}

	if c.Verifier == nil {
		c.Verifier = crypto.NewMultiVerifier()
	}

	if c.MapperOptions.IdentifierDID == "" {
		c.MapperOptions.IdentifierDID = c.Identifier.DID
	}

	if c.DIDResolver == nil {
		var resolver did.DocumentResolver = did.NewResolver(c.didResolverURL, c.Networking)

		if c.didCacheTTL > 0 {
			resolver = did.NewCachingResolver(resolver, did.WithCacheTTL(c.didCacheTTL))
		}

		c.DIDResolver = resolver
	}

	ldOpts := []linkeddomain.Opt{linkeddomain.WithStrictValidation(c.strictLinkedDomain)}
	if c.rootOfTrustResolver != nil {
		ldOpts = append(ldOpts, linkeddomain.WithRootOfTrustResolver(c.rootOfTrustResolver))
	}

	c.LinkedDomainService = linkeddomain.New(c.DIDResolver, c.Networking, c.Verifier, ldOpts...)

	return c, nil
}

// IsEnabled reports whether a feature flag is on.
func (c *Configuration) IsEnabled(flag Flag) bool {
	return c.FeatureFlags.IsEnabled(flag)
}
