/*
Copyright Avast Software. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package oidc4vci

import (
	"context"
	"time"

	"github.com/tidwall/gjson"
	"github.com/trustbloc/logutil-go/pkg/log"
	"golang.org/x/sync/errgroup"

	"github.com/trustbloc/verifiedid-go/internal/logfields"
	"github.com/trustbloc/verifiedid-go/pkg/config"
	"github.com/trustbloc/verifiedid-go/pkg/processor"
	"github.com/trustbloc/verifiedid-go/pkg/requirement"
	"github.com/trustbloc/verifiedid-go/pkg/verifiedid"
	"github.com/trustbloc/verifiedid-go/pkg/walleterr"
)

var logger = log.New("oidc4vci-processor")

var _ processor.Processor = (*Processor)(nil)

const defaultScopeSuffix = "/.default"

// Processor turns a credential offer into an OpenID4VCI issuance request.
type Processor struct {
	config         *config.Configuration
	signedMetadata *SignedMetadataProcessor
	tokenResolver  tokenResolver
	extensions     []processor.Extension
}

// Opt configures a Processor.
type Opt func(p *Processor)

// WithExtensions registers extensions. They only run when ProcessorExtensionSupport is enabled.
func WithExtensions(extensions ...processor.Extension) Opt {
	return func(p *Processor) {
		p.extensions = append(p.extensions, extensions...)
	}
}

// WithTokenResolver overrides how pre-authorized codes are redeemed.
func WithTokenResolver(r tokenResolver) Opt {
	return func(p *Processor) {
		p.tokenResolver = r
	}
}

// NewProcessor creates a Processor.
func NewProcessor(cfg *config.Configuration, opts ...Opt) *Processor {
	p := &Processor{
		config:         cfg,
		signedMetadata: NewSignedMetadataProcessor(cfg.DIDResolver, cfg.Verifier, cfg.LinkedDomainService),
		tokenResolver:  NewPreAuthTokenResolver(cfg.Networking),
	}

	for _, opt := range opts {
		opt(p)
	}

	return p
}

// CanProcess reports whether raw is a credential offer.
func (p *Processor) CanProcess(raw interface{}) bool {
	return IsCredentialOffer(raw)
}

// Process validates the offer against the issuer metadata and builds the issuance request.
func (p *Processor) Process(ctx context.Context, raw interface{}) (processor.VerifiedIDRequest, error) {
	start := time.Now()
	defer func() { p.config.Metrics.ProcessRequestTime(time.Since(start)) }()

	offer, err := ParseCredentialOffer(raw)
	if err != nil {
		return nil, err
	}

	metadata, err := fetchMetadata(ctx, p.config.Networking, offer.CredentialIssuer)
	if err != nil {
		return nil, err
	}

	configuration, configurationID, err := metadata.Configuration(offer.CredentialConfigurationIDs)
	if err != nil {
		return nil, err
	}

	if err = metadata.ValidateAuthorizationServers(offer); err != nil {
		return nil, err
	}

	if metadata.SignedMetadata == "" {
		return nil, walleterr.NewMissingRequiredProperty("signed_metadata", "CredentialMetadata").
			WithComponent(walleterr.OIDC4VCIProcessorComponent)
	}

	if metadata.CredentialIssuer == "" {
		return nil, walleterr.NewMissingRequiredProperty("credential_issuer", "CredentialMetadata").
			WithComponent(walleterr.OIDC4VCIProcessorComponent)
	}

	rot, err := p.signedMetadata.Process(ctx, metadata.SignedMetadata, metadata.CredentialIssuer)
	if err != nil {
		return nil, err
	}

	style := metadata.RequesterStyle(p.config.Locales)
	vidStyle := credentialStyle(configuration, style.Requester, p.config.Locales)

	req, err := p.requirement(ctx, offer, configuration)
	if err != nil {
		return nil, err
	}

	partial := &processor.PartialRequest{
		Style:           style,
		VerifiedIDStyle: &vidStyle,
		Requirement:     req,
		RootOfTrust:     rot,
	}

	if p.config.IsEnabled(config.ProcessorExtensionSupport) && len(p.extensions) > 0 {
		claims, objErr := toObject(raw)
		if objErr == nil {
			partial = processor.ApplyExtensions(p.extensions, claims, partial)
		}
	}

	p.config.Logger.Event("OpenID4VCIRequestProcessed", map[string]string{
		"credential_issuer": offer.CredentialIssuer,
		"configuration_id":  configurationID,
	}, map[string]float64{"duration_ms": float64(time.Since(start).Milliseconds())})

	logger.Debug("credential offer processed",
		logfields.WithURL(offer.CredentialIssuer), logfields.WithDuration(time.Since(start)))

	return &Request{
		config:          p.config,
		style:           partial.Style,
		verifiedIDStyle: derefStyle(partial.VerifiedIDStyle),
		requirement:     partial.Requirement,
		rootOfTrust:     partial.RootOfTrust,
		offer:           offer,
		metadata:        metadata,
		configuration:   configuration,
		configurationID: configurationID,
	}, nil
}

// requirement builds one requirement per grant, resolving them concurrently, and reduces them in grant order.
func (p *Processor) requirement(
	ctx context.Context,
	offer *CredentialOffer,
	configuration *CredentialConfiguration,
) (requirement.Requirement, error) {
	names := sortedGrantTypes(offer)
	results := make([]requirement.Requirement, len(names))

	g, gctx := errgroup.WithContext(ctx)

	for i, name := range names {
		i, name := i, name
		grant := offer.Grants[name]

		g.Go(func() error {
			r, err := p.grantRequirement(gctx, offer, name, grant, configuration)
			if err != nil {
				return err
			}

			results[i] = r

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return requirement.Reduce(compact(results))
}

func (p *Processor) grantRequirement(
	ctx context.Context,
	offer *CredentialOffer,
	name string,
	grant Grant,
	configuration *CredentialConfiguration,
) (requirement.Requirement, error) {
	server := offer.authorizationServer(grant)

	switch name {
	case GrantTypeAuthorizationCode:
		if configuration.Scope == "" {
			return nil, walleterr.NewMalformedCredentialMetadata(
				"Credential Configuration does not contain scope value.", nil)
		}

		return &requirement.AccessToken{
			Required:      true,
			Configuration: server,
			ResourceID:    configuration.Scope,
			Scope:         configuration.Scope + defaultScopeSuffix,
		}, nil
	case GrantTypePreAuthorizedCode:
		if grant.TxCode != nil {
			return newRetryablePinRequirement(server, grant, p.tokenResolver), nil
		}

		token, err := p.tokenResolver.Resolve(ctx, server, grant, "")
		if err != nil {
			return nil, err
		}

		return &requirement.PrefilledAccessToken{Required: true, AccessToken: token}, nil
	default:
		logger.Debug("ignoring unsupported grant", logfields.WithGrantType(name))

		return nil, nil
	}
}

func credentialStyle(configuration *CredentialConfiguration, issuer string, locales []string) verifiedid.Style {
	display := verifiedid.PreferredLocalized(gjson.GetBytes(configuration.Raw(), "display"), locales)

	return verifiedid.Style{
		Name:            display.Get("name").String(),
		Issuer:          issuer,
		BackgroundColor: display.Get("background_color").String(),
		TextColor:       display.Get("text_color").String(),
		Description:     display.Get("description").String(),
		LogoURL:         display.Get("logo.uri").String(),
		LogoAltText:     display.Get("logo.alt_text").String(),
	}
}

func compact(requirements []requirement.Requirement) []requirement.Requirement {
	out := make([]requirement.Requirement, 0, len(requirements))

	for _, r := range requirements {
		if r != nil {
			out = append(out, r)
		}
	}

	return out
}

func derefStyle(s *verifiedid.Style) verifiedid.Style {
	if s == nil {
		return verifiedid.Style{}
	}

	return *s
}
