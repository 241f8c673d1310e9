/*
Copyright Avast Software. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package oidc4vp

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/trustbloc/verifiedid-go/internal/logfields"
	"github.com/trustbloc/verifiedid-go/pkg/config"
	"github.com/trustbloc/verifiedid-go/pkg/mapping"
	"github.com/trustbloc/verifiedid-go/pkg/networking"
	"github.com/trustbloc/verifiedid-go/pkg/processor"
	"github.com/trustbloc/verifiedid-go/pkg/requirement"
	"github.com/trustbloc/verifiedid-go/pkg/walleterr"
)

var _ processor.Processor = (*Processor)(nil)

// Processor turns validated presentation requests into presentation or contract issuance requests.
type Processor struct {
	config     *config.Configuration
	mapper     *mapping.Mapper
	formatter  *Formatter
	contracts  *ContractResolver
	nonce      mapping.NonceComputer
	extensions []processor.Extension
}

// Opt configures a Processor.
type Opt func(p *Processor)

// WithExtensions registers extensions. They only run when ProcessorExtensionSupport is enabled.
func WithExtensions(extensions ...processor.Extension) Opt {
	return func(p *Processor) {
		p.extensions = append(p.extensions, extensions...)
	}
}

// WithNonceComputer overrides how id token nonces are derived.
func WithNonceComputer(n mapping.NonceComputer) Opt {
	return func(p *Processor) {
		p.nonce = n
	}
}

func NewProcessor(cfg *config.Configuration, opts ...Opt) *Processor {
	p := &Processor{
		config:    cfg,
		mapper:    mapping.New(cfg.MapperOptions),
		formatter: NewFormatter(cfg.Signer, cfg.Identifier),
		contracts: NewContractResolver(NewRequestResolver(cfg)),
		nonce:     NewNonceComputer(),
	}

	for _, opt := range opts {
		opt(p)
	}

	return p
}

func (p *Processor) CanProcess(raw interface{}) bool {
	_, ok := raw.(*RawRequest)

	return ok
}

func (p *Processor) Process(ctx context.Context, raw interface{}) (processor.VerifiedIDRequest, error) {
	request, ok := raw.(*RawRequest)
	if !ok {
		return nil, walleterr.NewUnsupportedRawRequest(raw).WithComponent(walleterr.OpenIDProcessorComponent)
	}

	start := time.Now()
	defer func() { p.config.Metrics.ProcessRequestTime(time.Since(start)) }()

	content, err := p.mapper.PresentationRequest(request.Claims, request.LinkedDomain)
	if err != nil {
		return nil, err
	}

	if request.IsIssuance() {
		return p.issuanceRequest(ctx, content)
	}

	partial := &processor.PartialRequest{
		Style:       content.Style,
		Requirement: content.Requirement,
		RootOfTrust: content.RootOfTrust,
	}

	if p.config.IsEnabled(config.ProcessorExtensionSupport) && request.Primitive != nil {
		partial = processor.ApplyExtensions(p.extensions, request.Primitive, partial)
	}

	p.config.Logger.Event("PresentationRequestProcessed", map[string]string{
		"client_id": request.Claims.ClientID,
	}, map[string]float64{"duration_ms": float64(time.Since(start).Milliseconds())})

	return &PresentationRequest{
		config:      p.config,
		formatter:   p.formatter,
		raw:         request,
		style:       partial.Style,
		requirement: partial.Requirement,
		rootOfTrust: partial.RootOfTrust,
	}, nil
}

func (p *Processor) issuanceRequest(
	ctx context.Context,
	content *mapping.PresentationRequestContent,
) (processor.VerifiedIDRequest, error) {
	vid, err := issuanceRequirement(content.Requirement)
	if err != nil {
		return nil, err
	}

	if len(vid.IssuanceOptions) == 0 {
		return nil, walleterr.NewMalformedInputMessage("No issuance options available on Presentation Request.").
			WithComponent(walleterr.OpenIDProcessorComponent)
	}

	contract, err := p.contracts.Resolve(ctx, vid.IssuanceOptions[0])
	if err != nil {
		p.sendCompletion(ctx, content.CallbackURL, &IssuanceCompletionResponse{
			Code:    IssuanceFailed,
			State:   content.RequestState,
			Details: DetailsFetchContractError,
		})

		return nil, err
	}

	issuance, err := p.mapper.Contract(contract.Contract, contract.LinkedDomain)
	if err != nil {
		return nil, err
	}

	issuance.AddState(content.RequestState)
	issuance.AddCallback(content.CallbackURL)

	if nonce, nonceErr := p.nonce.Nonce(p.config.Identifier.DID); nonceErr == nil {
		issuance.AddNonce(nonce)
	} else {
		logger.Warn("unable to compute nonce", logfields.WithError(nonceErr))
	}

	issuance.AddInjectedIDToken(content.InjectedIDToken)

	return &ContractIssuanceRequest{
		config:    p.config,
		formatter: p.formatter,
		content:   issuance,
		contract:  contract,
	}, nil
}

func issuanceRequirement(r requirement.Requirement) (*requirement.VerifiedID, error) {
	switch v := r.(type) {
	case *requirement.VerifiedID:
		return v, nil
	case *requirement.PresentationExchangeVerifiedID:
		return &v.VerifiedID, nil
	default:
		return nil, walleterr.NewMalformedInputMessage(fmt.Sprintf("Unsupported requirement: %T.", r)).
			WithComponent(walleterr.OpenIDProcessorComponent)
	}
}

// sendCompletion reports an issuance outcome. Failures are only logged.
func (p *Processor) sendCompletion(ctx context.Context, callbackURL string, resp *IssuanceCompletionResponse) {
	if err := postCompletion(ctx, p.config.Networking, callbackURL, resp); err != nil {
		p.config.Logger.Errorf("Unable to send Issuance Result to callback. Error: %v", err)
	}
}

func postCompletion(ctx context.Context, n networking.Networking, callbackURL string,
	resp *IssuanceCompletionResponse) error {
	if callbackURL == "" {
		return nil
	}

	body, err := json.Marshal(resp)
	if err != nil {
		return err
	}

	_, err = n.Post(ctx, callbackURL, body, networking.ContentTypeJSON, nil)

	return err
}
