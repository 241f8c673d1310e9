/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

//go:generate mockgen -destination client_mocks_test.go -package client_test -source=input.go

package client

import (
	"context"
	"net/url"
	"strings"

	"github.com/trustbloc/verifiedid-go/pkg/oidc4vp"
	"github.com/trustbloc/verifiedid-go/pkg/walleterr"
)

// Input is the source a request is created from.
type Input interface {
	String() string
}

// URLInput is a request url, for example scanned from a QR code.
type URLInput struct {
	URL *url.URL
}

// NewURLInput parses raw into a URLInput.
func NewURLInput(raw string) (*URLInput, error) {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil || u.Scheme == "" {
		return nil, walleterr.NewMalformedInputMessage("Input is not a valid url.").
			WithComponent(walleterr.ClientComponent).WithIncorrectValue(raw).WithCause(err)
	}

	return &URLInput{URL: u}, nil
}

func (i *URLInput) String() string {
	return i.URL.String()
}

// RequestResolver resolves an input into a raw request a processor can handle.
type RequestResolver interface {
	CanResolve(input Input) bool
	Resolve(ctx context.Context, input Input) (interface{}, error)
}

// openIDResolver adapts the openid-vc url resolver to url inputs.
type openIDResolver struct {
	resolver *oidc4vp.RequestResolver
}

func (r *openIDResolver) CanResolve(input Input) bool {
	u, ok := input.(*URLInput)

	return ok && r.resolver.CanResolve(u.String())
}

func (r *openIDResolver) Resolve(ctx context.Context, input Input) (interface{}, error) {
	u, ok := input.(*URLInput)
	if !ok {
		return nil, walleterr.NewMalformedInputMessage("OpenID resolver only accepts url inputs.").
			WithComponent(walleterr.ClientComponent).WithIncorrectValue(input.String())
	}

	return r.resolver.Resolve(ctx, u.String())
}
