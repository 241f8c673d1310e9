/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package client

import (
	"fmt"

	"github.com/trustbloc/verifiedid-go/pkg/config"
	"github.com/trustbloc/verifiedid-go/pkg/networking"
	"github.com/trustbloc/verifiedid-go/pkg/observability/tracing/wrappers/processor"
	"github.com/trustbloc/verifiedid-go/pkg/oidc4vci"
	"github.com/trustbloc/verifiedid-go/pkg/oidc4vp"
	wallet "github.com/trustbloc/verifiedid-go/pkg/processor"
	"github.com/trustbloc/verifiedid-go/pkg/walletlog"
)

const (
	oidc4vciProcessorName = "oidc4vci"
	openIDProcessorName   = "openid"
)

// Builder assembles a VerifiedIDClient.
type Builder struct {
	configOpts      []config.Opt
	consumers       []walletlog.Consumer
	extensions      []wallet.Extension
	processors      []wallet.Processor
	resolvers       []RequestResolver
	correlationName string
}

func NewBuilder() *Builder {
	return &Builder{}
}

// WithConfigOptions appends configuration options.
func (b *Builder) WithConfigOptions(opts ...config.Opt) *Builder {
	b.configOpts = append(b.configOpts, opts...)

	return b
}

// WithLogConsumer adds a consumer to the wallet logger.
func (b *Builder) WithLogConsumer(c walletlog.Consumer) *Builder {
	b.consumers = append(b.consumers, c)

	return b
}

// WithCorrelationHeader sets the header name the default http client sends the correlation id in.
func (b *Builder) WithCorrelationHeader(name string) *Builder {
	b.correlationName = name

	return b
}

// WithExtensions registers processor extensions. They only run when ProcessorExtensionSupport is enabled.
func (b *Builder) WithExtensions(extensions ...wallet.Extension) *Builder {
	b.extensions = append(b.extensions, extensions...)

	return b
}

// WithProcessor registers an additional processor, tried after the built-in ones.
func (b *Builder) WithProcessor(p wallet.Processor) *Builder {
	b.processors = append(b.processors, p)

	return b
}

// WithResolver registers an additional input resolver, tried after the built-in ones.
func (b *Builder) WithResolver(r RequestResolver) *Builder {
	b.resolvers = append(b.resolvers, r)

	return b
}

func (b *Builder) Build() (*VerifiedIDClient, error) {
	opts := b.configOpts
	if b.correlationName != "" {
		opts = append([]config.Opt{config.WithNetworking(networking.NewHTTPClient(
			networking.WithCorrelationHeader(b.correlationName)))}, opts...)
	}

	cfg, err := config.New(opts...)
	if err != nil {
		return nil, fmt.Errorf("build configuration: %w", err)
	}

	for _, c := range b.consumers {
		cfg.Logger.Add(c)
	}

	factory := wallet.NewFactory(
		processor.Wrap(oidc4vciProcessorName,
			oidc4vci.NewProcessor(cfg, oidc4vci.WithExtensions(b.extensions...)), cfg.Tracer),
		processor.Wrap(openIDProcessorName,
			oidc4vp.NewProcessor(cfg, oidc4vp.WithExtensions(b.extensions...)), cfg.Tracer),
	)
	factory.Register(b.processors...)

	resolvers := append([]RequestResolver{
		&openIDResolver{resolver: oidc4vp.NewRequestResolver(cfg)},
	}, b.resolvers...)

	return &VerifiedIDClient{
		config:     cfg,
		resolvers:  resolvers,
		processors: factory,
	}, nil
}
