/*
Copyright Avast Software. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package oidc4vci

import (
	"encoding/json"
	"net/url"

	"github.com/trustbloc/verifiedid-go/pkg/jws"
)

const (
	GrantTypeAuthorizationCode = "authorization_code"
	GrantTypePreAuthorizedCode = "urn:ietf:params:oauth:grant-type:pre-authorized_code"

	// WellKnownCredentialIssuerPath is appended to credential_issuer to fetch the issuer metadata.
	WellKnownCredentialIssuerPath = "/.well-known/openid-credential-issuer"

	// ProofTypeJWT is the only supported key proof type.
	ProofTypeJWT = "jwt"
	// ProofJWTType is the typ header of key proof JWTs.
	ProofJWTType = "openid4vci-proof+jwt"

	defaultTxCodeInputMode = "alphanumeric"
)

// CredentialOffer is sent by the issuer to start an OpenID4VCI issuance.
type CredentialOffer struct {
	CredentialIssuer           string           `json:"credential_issuer"`
	IssuerSession              string           `json:"issuer_session,omitempty"`
	CredentialConfigurationIDs []string         `json:"credential_configuration_ids"`
	Grants                     map[string]Grant `json:"grants"`
}

// Grant is a grant entry of a credential offer. PreAuthorizedCode and TxCode are only set on the
// pre-authorized code grant.
type Grant struct {
	AuthorizationServer string  `json:"authorization_server,omitempty"`
	PreAuthorizedCode   string  `json:"pre-authorized_code,omitempty"`
	TxCode              *TxCode `json:"tx_code,omitempty"`
}

// TxCode describes the transaction code the holder has to enter. Length 0 means unspecified.
type TxCode struct {
	Length      int    `json:"length,omitempty"`
	InputMode   string `json:"input_mode,omitempty"`
	Description string `json:"description,omitempty"`
}

// CredentialMetadata is the credential issuer metadata.
type CredentialMetadata struct {
	CredentialIssuer                  string                     `json:"credential_issuer,omitempty"`
	AuthorizationServers              []string                   `json:"authorization_servers,omitempty"`
	CredentialEndpoint                string                     `json:"credential_endpoint,omitempty"`
	NotificationEndpoint              string                     `json:"notification_endpoint,omitempty"`
	SignedMetadata                    string                     `json:"signed_metadata,omitempty"`
	CredentialConfigurationsSupported map[string]json.RawMessage `json:"credential_configurations_supported,omitempty"`
	Display                           []IssuerDisplay            `json:"display,omitempty"`
}

// IssuerDisplay is a localized display entry of the issuer.
type IssuerDisplay struct {
	Name   string       `json:"name,omitempty"`
	Locale string       `json:"locale,omitempty"`
	Logo   *DisplayLogo `json:"logo,omitempty"`
}

// DisplayLogo is the logo of a display entry.
type DisplayLogo struct {
	URI     string `json:"uri,omitempty"`
	AltText string `json:"alt_text,omitempty"`
}

// Requester is the requester name shown to the holder.
func (d IssuerDisplay) Requester() string {
	return d.Name
}

func (d IssuerDisplay) LogoURL() string {
	if d.Logo == nil {
		return ""
	}

	return d.Logo.URI
}

func (d IssuerDisplay) LogoAltText() string {
	if d.Logo == nil {
		return ""
	}

	return d.Logo.AltText
}

// CredentialConfiguration is the part of a credential configuration the processor reads. The raw JSON is kept
// to build the credential display.
type CredentialConfiguration struct {
	Format string `json:"format,omitempty"`
	Scope  string `json:"scope,omitempty"`

	raw json.RawMessage
}

// Raw returns the configuration as it was received.
func (c *CredentialConfiguration) Raw() json.RawMessage {
	return c.raw
}

// SignedMetadataClaims are the claims of signed_metadata.
type SignedMetadataClaims struct {
	jws.TimeClaims
	Subject string `json:"sub,omitempty"`
	Issuer  string `json:"iss,omitempty"`
}

// SignedMetadata is the signed_metadata token.
type SignedMetadata = jws.Token[SignedMetadataClaims]

// CredentialRequest is posted to the credential endpoint.
type CredentialRequest struct {
	CredentialConfigurationID string `json:"credential_configuration_id"`
	IssuerSession             string `json:"issuer_session,omitempty"`
	Proof                     Proof  `json:"proof"`
}

// Proof is a key proof.
type Proof struct {
	ProofType string `json:"proof_type"`
	JWT       string `json:"jwt"`
}

// ProofClaims are the claims of the key proof JWT.
type ProofClaims struct {
	Audience        string   `json:"aud"`
	Subject         string   `json:"sub,omitempty"`
	IssuedAt        *float64 `json:"iat,omitempty"`
	Nonce           string   `json:"nonce,omitempty"`
	AccessTokenHash string   `json:"at_hash"`
}

// CredentialResponse is returned by the credential endpoint.
type CredentialResponse struct {
	Credential     string `json:"credential"`
	NotificationID string `json:"notification_id,omitempty"`
}

func hostOf(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return ""
	}

	return u.Host
}
