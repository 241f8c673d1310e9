/*
Copyright Avast Software. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package oidc4vp

import (
	"bytes"
	"context"
	"encoding/json"
	"net/url"
	"strings"
	"time"

	"github.com/trustbloc/logutil-go/pkg/log"
	"github.com/valyala/fastjson"

	"github.com/trustbloc/verifiedid-go/internal/logfields"
	"github.com/trustbloc/verifiedid-go/pkg/config"
	"github.com/trustbloc/verifiedid-go/pkg/jws"
	"github.com/trustbloc/verifiedid-go/pkg/mapping"
	"github.com/trustbloc/verifiedid-go/pkg/networking"
	"github.com/trustbloc/verifiedid-go/pkg/service/linkeddomain"
	"github.com/trustbloc/verifiedid-go/pkg/walleterr"
)

var logger = log.New("openid-processor")

const (
	// Scheme of request urls handled by RequestResolver.
	Scheme = "openid-vc"

	paramRequestURI         = "request_uri"
	paramCredentialOfferURI = "credential_offer_uri"
	paramCredentialOffer    = "credential_offer"

	presentationRequestType = "PresentationRequest"
)

// RawRequest is a validated presentation request.
type RawRequest struct {
	Claims *mapping.PresentationRequestClaims
	// Primitive holds the claims as generic JSON for processor extensions.
	Primitive    map[string]interface{}
	LinkedDomain *linkeddomain.Result
	Raw          string
}

// IsIssuance reports whether the verifier asks the holder to obtain the credential first.
func (r *RawRequest) IsIssuance() bool {
	return r.Claims.Prompt == promptCreate
}

// DefinitionID returns the id of the first presentation definition.
func (r *RawRequest) DefinitionID() string {
	if r.Claims.Claims == nil {
		return ""
	}

	for _, token := range r.Claims.Claims.VPToken {
		if token.PresentationDefinition != nil && token.PresentationDefinition.ID != "" {
			return token.PresentationDefinition.ID
		}
	}

	return ""
}

// RequestResolver turns an openid-vc url into a raw request: a credential offer object or a validated
// presentation request.
type RequestResolver struct {
	config    *config.Configuration
	validator *tokenValidator
}

func NewRequestResolver(cfg *config.Configuration) *RequestResolver {
	return &RequestResolver{
		config: cfg,
		validator: &tokenValidator{
			resolver:      cfg.DIDResolver,
			verifier:      cfg.Verifier,
			linkedDomains: cfg.LinkedDomainService,
			now:           time.Now,
		},
	}
}

func (r *RequestResolver) CanResolve(rawURL string) bool {
	u, err := url.Parse(rawURL)

	return err == nil && u.Scheme == Scheme
}

// Resolve fetches and decodes the request referenced by rawURL. It returns a map[string]interface{} for JSON
// objects and a *RawRequest for signed presentation requests.
func (r *RequestResolver) Resolve(ctx context.Context, rawURL string) (interface{}, error) {
	u, err := url.Parse(rawURL)
	if err != nil || u.Scheme != Scheme {
		return nil, walleterr.NewMalformedInputMessage("Request url is not an openid-vc url.").
			WithComponent(walleterr.OpenIDProcessorComponent).WithIncorrectValue(rawURL)
	}

	query := u.Query()

	if offer := query.Get(paramCredentialOffer); offer != "" {
		return r.decode(ctx, []byte(offer))
	}

	requestURI := query.Get(paramRequestURI)
	if requestURI == "" {
		requestURI = query.Get(paramCredentialOfferURI)
	}

	if requestURI == "" {
		return nil, walleterr.NewMalformedInputMessage("Request url does not contain a request uri.").
			WithComponent(walleterr.OpenIDProcessorComponent).WithIncorrectValue(rawURL)
	}

	start := time.Now()

	body, err := r.config.Networking.Fetch(ctx, requestURI, r.headers())
	if err != nil {
		return nil, err
	}

	logger.Debug("request fetched", logfields.WithURL(requestURI), logfields.WithDuration(time.Since(start)))

	return r.decode(ctx, body)
}

func (r *RequestResolver) headers() map[string]string {
	var prefer []string

	if r.config.IsEnabled(config.OpenID4VCIAccessToken) || r.config.IsEnabled(config.OpenID4VCIPreAuth) {
		prefer = append(prefer, networking.InteropProfileVersion)
	}

	if r.config.IsEnabled(config.ProcessorExtensionSupport) {
		prefer = append(prefer, r.config.PreferHeaders...)
	}

	if len(prefer) == 0 {
		return nil
	}

	return map[string]string{networking.PreferHeader: strings.Join(prefer, ", ")}
}

func (r *RequestResolver) decode(ctx context.Context, body []byte) (interface{}, error) {
	body = bytes.TrimSpace(body)

	var p fastjson.Parser

	if v, err := p.ParseBytes(body); err == nil && v.Type() == fastjson.TypeObject {
		obj := map[string]interface{}{}

		if err = json.Unmarshal(body, &obj); err != nil {
			return nil, walleterr.NewMalformedInput(err).WithComponent(walleterr.OpenIDProcessorComponent)
		}

		return obj, nil
	}

	if !jws.IsJWS(string(body)) {
		return nil, walleterr.NewMalformedInputMessage("Request is neither a JSON object nor a signed request.").
			WithComponent(walleterr.OpenIDProcessorComponent)
	}

	return r.PresentationRequest(ctx, string(body))
}

// PresentationRequest validates a signed presentation request and the linked domains of its signer.
func (r *RequestResolver) PresentationRequest(ctx context.Context, compact string) (*RawRequest, error) {
	token, err := jws.Decode[map[string]interface{}](compact)
	if err != nil {
		return nil, err
	}

	claims, err := mapping.DecodePresentationRequestClaims(token.Claims)
	if err != nil {
		return nil, err
	}

	if claims.Expiration == nil {
		return nil, walleterr.NewMissingRequiredProperty("exp", presentationRequestType).
			WithComponent(walleterr.OpenIDProcessorComponent)
	}

	result, err := validate(ctx, r.validator, token, claims.TimeClaims())
	if err != nil {
		return nil, err
	}

	logger.Debug("presentation request validated",
		logfields.WithKeyID(token.Header.KeyID), logfields.WithDomain(result.Domain))

	return &RawRequest{
		Claims:       claims,
		Primitive:    token.Claims,
		LinkedDomain: result,
		Raw:          compact,
	}, nil
}
