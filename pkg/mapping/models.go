/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package mapping

import (
	"encoding/json"

	"github.com/trustbloc/verifiedid-go/pkg/jws"
)

// PresentationRequestClaims is the claim set of a signed OpenID presentation request.
type PresentationRequestClaims struct {
	ClientID     string           `json:"client_id,omitempty"`
	RedirectURI  string           `json:"redirect_uri,omitempty"`
	ResponseType string           `json:"response_type,omitempty"`
	ResponseMode string           `json:"response_mode,omitempty"`
	IDTokenHint  string           `json:"id_token_hint,omitempty"`
	State        string           `json:"state,omitempty"`
	Nonce        string           `json:"nonce,omitempty"`
	Prompt       string           `json:"prompt,omitempty"`
	Registration *Registration    `json:"registration,omitempty"`
	IssuedAt     *float64         `json:"iat,omitempty"`
	Expiration   *float64         `json:"exp,omitempty"`
	Scope        string           `json:"scope,omitempty"`
	Claims       *RequestedClaims `json:"claims,omitempty"`
	JTI          string           `json:"jti,omitempty"`
	Pin          *PinDescriptor   `json:"pin,omitempty"`
}

// TimeClaims returns iat and exp for validation.
func (c *PresentationRequestClaims) TimeClaims() jws.TimeClaims {
	return jws.TimeClaims{IssuedAt: c.IssuedAt, Expiration: c.Expiration}
}

// Registration describes the verifier.
type Registration struct {
	ClientName                  string   `json:"client_name,omitempty"`
	ClientPurpose               string   `json:"client_purpose,omitempty"`
	LogoURI                     string   `json:"logo_uri,omitempty"`
	SubjectSyntaxTypesSupported []string `json:"subject_syntax_types_supported,omitempty"`
	VPFormats                   any      `json:"vp_formats,omitempty"`
}

// RequestedClaims carries one or more vp_token requests.
type RequestedClaims struct {
	VPToken VPTokens `json:"vp_token,omitempty"`
}

// VPTokens accepts a single object or a list on the wire.
type VPTokens []RequestedVPToken

func (v *VPTokens) UnmarshalJSON(b []byte) error {
	var list []RequestedVPToken
	if err := json.Unmarshal(b, &list); err == nil {
		*v = list

		return nil
	}

	var single RequestedVPToken
	if err := json.Unmarshal(b, &single); err != nil {
		return err
	}

	*v = VPTokens{single}

	return nil
}

// RequestedVPToken wraps a presentation definition.
type RequestedVPToken struct {
	PresentationDefinition *PresentationDefinition `json:"presentation_definition,omitempty"`
}

// PresentationDefinition lists the credentials a verifier asks for.
type PresentationDefinition struct {
	ID               string             `json:"id,omitempty"`
	InputDescriptors []*InputDescriptor `json:"input_descriptors,omitempty"`
	Issuance         []*IssuanceInfo    `json:"issuance,omitempty"`
}

// InputDescriptor describes one requested credential.
type InputDescriptor struct {
	ID                        string          `json:"id,omitempty"`
	Name                      string          `json:"name,omitempty"`
	Purpose                   string          `json:"purpose,omitempty"`
	Schema                    []*Schema       `json:"schema,omitempty"`
	Issuance                  []*IssuanceInfo `json:"issuance,omitempty"`
	Constraints               *Constraints    `json:"constraints,omitempty"`
	Format                    map[string]any  `json:"format,omitempty"`
	ExclusivePresentationWith []string        `json:"exclusive_presentation_with,omitempty"`
}

// Schema names a credential type.
type Schema struct {
	URI string `json:"uri,omitempty"`
}

// IssuanceInfo points at a contract or manifest from which a credential can be obtained.
type IssuanceInfo struct {
	Manifest string `json:"manifest,omitempty"`
	Contract string `json:"contract,omitempty"`
	DID      string `json:"did,omitempty"`
}

// URL returns the contract, falling back to the manifest.
func (i *IssuanceInfo) URL() string {
	if i.Contract != "" {
		return i.Contract
	}

	return i.Manifest
}

// Constraints restricts the content of a requested credential.
type Constraints struct {
	Fields []*Field `json:"fields,omitempty"`
}

// Field selects values by JSONPath and filters them.
type Field struct {
	Path   []string `json:"path,omitempty"`
	Filter *Filter  `json:"filter,omitempty"`
}

// Filter is a JSON schema fragment; only the pattern is evaluated.
type Filter struct {
	Type    string `json:"type,omitempty"`
	Pattern string `json:"pattern,omitempty"`
}

// PinDescriptor describes a pin delivered alongside an id token hint.
type PinDescriptor struct {
	Length int    `json:"length,omitempty"`
	Type   string `json:"type,omitempty"`
	Salt   string `json:"salt,omitempty"`
}

// Contract is an issuance contract (manifest).
type Contract struct {
	ID      string          `json:"id,omitempty"`
	Display *DisplayContent `json:"display,omitempty"`
	Input   *InputContent   `json:"input,omitempty"`
}

// DisplayContent describes how an issued credential is rendered.
type DisplayContent struct {
	Locale   string                  `json:"locale,omitempty"`
	Contract string                  `json:"contract,omitempty"`
	Card     *CardDisplay            `json:"card,omitempty"`
	Consent  *ConsentDisplay         `json:"consent,omitempty"`
	Claims   map[string]ClaimDisplay `json:"claims,omitempty"`
}

// CardDisplay is the credential card.
type CardDisplay struct {
	Title           string `json:"title,omitempty"`
	IssuedBy        string `json:"issuedBy,omitempty"`
	BackgroundColor string `json:"backgroundColor,omitempty"`
	TextColor       string `json:"textColor,omitempty"`
	Logo            *Logo  `json:"logo,omitempty"`
	Description     string `json:"description,omitempty"`
}

// Logo of a card.
type Logo struct {
	URI         string `json:"uri,omitempty"`
	Description string `json:"description,omitempty"`
}

// ConsentDisplay is shown before the holder accepts a credential.
type ConsentDisplay struct {
	Title        string `json:"title,omitempty"`
	Instructions string `json:"instructions,omitempty"`
}

// ClaimDisplay labels a claim.
type ClaimDisplay struct {
	Type  string `json:"type,omitempty"`
	Label string `json:"label,omitempty"`
}

// InputContent describes what the issuer needs from the holder.
type InputContent struct {
	ID               string        `json:"id,omitempty"`
	CredentialIssuer string        `json:"credentialIssuer,omitempty"`
	Issuer           string        `json:"issuer,omitempty"`
	Attestations     *Attestations `json:"attestations,omitempty"`
}

// Attestations lists the inputs required for issuance.
type Attestations struct {
	AccessTokens  []*AccessTokenDescriptor  `json:"accessTokens,omitempty"`
	IDTokens      []*IDTokenDescriptor      `json:"idTokens,omitempty"`
	Presentations []*PresentationDescriptor `json:"presentations,omitempty"`
	SelfIssued    *SelfIssuedDescriptor     `json:"selfIssued,omitempty"`
}

// ClaimDescriptor names a claim of an attestation.
type ClaimDescriptor struct {
	Claim    string `json:"claim"`
	Required *bool  `json:"required,omitempty"`
	Indexed  *bool  `json:"indexed,omitempty"`
}

// AccessTokenDescriptor asks for an access token.
type AccessTokenDescriptor struct {
	ID            string             `json:"id,omitempty"`
	Encrypted     *bool              `json:"encrypted,omitempty"`
	Claims        []*ClaimDescriptor `json:"claims,omitempty"`
	Required      *bool              `json:"required,omitempty"`
	Configuration string             `json:"configuration,omitempty"`
	ResourceID    string             `json:"resourceId,omitempty"`
	OBOScope      string             `json:"oboScope,omitempty"`
}

// IDTokenDescriptor asks for an id token.
type IDTokenDescriptor struct {
	Encrypted     *bool              `json:"encrypted,omitempty"`
	Claims        []*ClaimDescriptor `json:"claims,omitempty"`
	Required      *bool              `json:"required,omitempty"`
	Configuration string             `json:"configuration,omitempty"`
	ClientID      string             `json:"client_id,omitempty"`
	RedirectURI   string             `json:"redirect_uri,omitempty"`
	Scope         string             `json:"scope,omitempty"`
}

// PresentationDescriptor asks for a credential of a given type.
type PresentationDescriptor struct {
	Encrypted      *bool              `json:"encrypted,omitempty"`
	Claims         []*ClaimDescriptor `json:"claims,omitempty"`
	Required       *bool              `json:"required,omitempty"`
	CredentialType string             `json:"credentialType,omitempty"`
	Issuers        []map[string]any   `json:"issuers,omitempty"`
	Contracts      []string           `json:"contracts,omitempty"`
}

// SelfIssuedDescriptor asks for values typed in by the holder.
type SelfIssuedDescriptor struct {
	Encrypted *bool              `json:"encrypted,omitempty"`
	Claims    []*ClaimDescriptor `json:"claims,omitempty"`
	Required  *bool              `json:"required,omitempty"`
}
