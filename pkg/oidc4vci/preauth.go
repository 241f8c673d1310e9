/*
Copyright Avast Software. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package oidc4vci

import (
	"context"
	"errors"
	"net/url"

	"github.com/trustbloc/verifiedid-go/internal/logfields"
	"github.com/trustbloc/verifiedid-go/pkg/networking"
	"github.com/trustbloc/verifiedid-go/pkg/oauth2client"
	"github.com/trustbloc/verifiedid-go/pkg/walleterr"
)

// PreAuthTokenResolver redeems a pre-authorized code for an access token.
type PreAuthTokenResolver struct {
	networking  networking.Networking
	oauthClient *oauth2client.Client
}

// NewPreAuthTokenResolver creates a PreAuthTokenResolver.
func NewPreAuthTokenResolver(n networking.Networking) *PreAuthTokenResolver {
	return &PreAuthTokenResolver{
		networking:  n,
		oauthClient: oauth2client.NewOAuth2Client(),
	}
}

// Resolve exchanges the grant's pre-authorized code, and the transaction code when not empty, at the token
// endpoint advertised by authorizationServer.
func (r *PreAuthTokenResolver) Resolve(
	ctx context.Context,
	authorizationServer string,
	grant Grant,
	txCode string,
) (string, error) {
	if grant.PreAuthorizedCode == "" {
		return "", walleterr.NewMissingRequiredProperty("pre-authorized_code", "CredentialOfferGrant").
			WithComponent(walleterr.OIDC4VCIProcessorComponent)
	}

	tokenEndpoint, err := r.tokenEndpoint(ctx, authorizationServer)
	if err != nil {
		return "", err
	}

	token, err := r.oauthClient.ExchangePreAuthorizedCode(ctx, tokenEndpoint, grant.PreAuthorizedCode, txCode,
		oauth2client.NewHTTPClient(r.networking, preferHeaders()))
	if err != nil {
		var walletErr *walleterr.Error
		if errors.As(err, &walletErr) {
			return "", walletErr
		}

		return "", walleterr.NewPreAuthError("Unable to fetch access token.").WithCause(err)
	}

	logger.Debug("pre-authorized code redeemed",
		logfields.WithURL(tokenEndpoint), logfields.WithGrantType(GrantTypePreAuthorizedCode))

	return token.AccessToken, nil
}

func (r *PreAuthTokenResolver) tokenEndpoint(ctx context.Context, authorizationServer string) (string, error) {
	if _, err := url.ParseRequestURI(authorizationServer); err != nil {
		return "", walleterr.NewInvalidProperty("authorization_server", "CredentialOfferGrant").
			WithComponent(walleterr.OIDC4VCIProcessorComponent)
	}

	cfg, err := networking.FetchJSON[oauth2client.OpenIDConfiguration](ctx, r.networking,
		oauth2client.WellKnownConfigurationURL(authorizationServer), preferHeaders())
	if err != nil {
		return "", err
	}

	if !cfg.SupportsGrantType(GrantTypePreAuthorizedCode) {
		return "", walleterr.NewPreAuthError("Grant type not included in well-known configuration.")
	}

	if _, err = url.ParseRequestURI(cfg.TokenEndpoint); err != nil {
		return "", walleterr.NewPreAuthError("Missing token endpoint in well-known configuration.")
	}

	return cfg.TokenEndpoint, nil
}
