/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package oauth2client

import (
	"strings"

	"github.com/samber/lo"
)

const (
	GrantTypeAuthorizationCode = "authorization_code"
	GrantTypePreAuthorizedCode = "urn:ietf:params:oauth:grant-type:pre-authorized_code"

	ParamGrantType         = "grant_type"
	ParamPreAuthorizedCode = "pre-authorized_code"
	ParamTxCode            = "tx_code"

	// WellKnownConfigurationPath is appended to an authorization server URL to find its metadata.
	WellKnownConfigurationPath = "/.well-known/openid-configuration"
)

// OpenIDConfiguration is the subset of authorization server metadata the wallet reads.
type OpenIDConfiguration struct {
	Issuer                string   `json:"issuer,omitempty"`
	AuthorizationEndpoint string   `json:"authorization_endpoint,omitempty"`
	TokenEndpoint         string   `json:"token_endpoint,omitempty"`
	GrantTypesSupported   []string `json:"grant_types_supported,omitempty"`
}

// SupportsGrantType reports whether grantType is listed in grant_types_supported.
func (c *OpenIDConfiguration) SupportsGrantType(grantType string) bool {
	return lo.Contains(c.GrantTypesSupported, grantType)
}

// WellKnownConfigurationURL returns the metadata URL of an authorization server. A URL that already points
// at the metadata document is returned unchanged.
func WellKnownConfigurationURL(authorizationServer string) string {
	if strings.HasSuffix(authorizationServer, WellKnownConfigurationPath) {
		return authorizationServer
	}

	return strings.TrimSuffix(authorizationServer, "/") + WellKnownConfigurationPath
}
