/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package mapping

import (
	"net/url"

	"github.com/samber/lo"

	"github.com/trustbloc/verifiedid-go/pkg/requirement"
	"github.com/trustbloc/verifiedid-go/pkg/service/linkeddomain"
	"github.com/trustbloc/verifiedid-go/pkg/verifiedid"
	"github.com/trustbloc/verifiedid-go/pkg/walleterr"
)

// ProtocolVersion selects protocol dependent mapping behaviour.
type ProtocolVersion string

const (
	ProtocolVersionSIOPv1    ProtocolVersion = "siop-v1"
	ProtocolVersionOpenID4VP ProtocolVersion = "openid4vp"
)

// NonceComputer derives an id token nonce from the holder DID.
type NonceComputer interface {
	Nonce(did string) (string, error)
}

// Options configure a Mapper.
type Options struct {
	ProtocolVersion ProtocolVersion
	// PresentationDefinitionOperator combines the requirements of a multi descriptor presentation definition.
	// Versions without an entry use ALL.
	PresentationDefinitionOperator map[ProtocolVersion]requirement.Operator
	// IdentifierDID and NonceComputer, when both set, give id token requirements a nonce.
	IdentifierDID string
	NonceComputer NonceComputer
}

// Mapper turns wire models into requirements and request content. It holds no state besides its options.
type Mapper struct {
	opts Options
}

// New creates a Mapper.
func New(opts Options) *Mapper {
	if opts.ProtocolVersion == "" {
		opts.ProtocolVersion = ProtocolVersionOpenID4VP
	}

	return &Mapper{opts: opts}
}

func (m *Mapper) operator() requirement.Operator {
	if op, ok := m.opts.PresentationDefinitionOperator[m.opts.ProtocolVersion]; ok {
		return op
	}

	return requirement.OperatorAll
}

// PresentationDefinition maps every input descriptor to a requirement.
func (m *Mapper) PresentationDefinition(pd *PresentationDefinition) ([]requirement.Requirement, error) {
	if pd == nil || len(pd.InputDescriptors) == 0 {
		return nil, walleterr.NewMissingInputDescriptors()
	}

	requirements := make([]requirement.Requirement, 0, len(pd.InputDescriptors))

	for _, d := range pd.InputDescriptors {
		r, err := m.InputDescriptor(d)
		if err != nil {
			return nil, err
		}

		requirements = append(requirements, r)
	}

	return requirements, nil
}

// RequestedClaims maps all vp_token presentation definitions into a single requirement.
func (m *Mapper) RequestedClaims(claims *RequestedClaims) (requirement.Requirement, error) {
	if claims == nil {
		return nil, walleterr.NewMalformedInputMessage("Presentation request has no requested claims.").
			WithComponent(walleterr.MappingComponent)
	}

	var requirements []requirement.Requirement

	for _, token := range claims.VPToken {
		if token.PresentationDefinition == nil {
			continue
		}

		r, err := m.PresentationDefinition(token.PresentationDefinition)
		if err != nil {
			return nil, err
		}

		requirements = append(requirements, r...)
	}

	switch len(requirements) {
	case 0:
		return nil, walleterr.NewMalformedInputMessage("Presentation request has no presentation definition.").
			WithComponent(walleterr.MappingComponent)
	case 1:
		return requirements[0], nil
	default:
		return requirement.NewGroup(true, m.operator(), requirements...), nil
	}
}

// InputDescriptor maps a presentation exchange input descriptor.
func (m *Mapper) InputDescriptor(d *InputDescriptor) (*requirement.PresentationExchangeVerifiedID, error) {
	if d == nil {
		return nil, walleterr.NewInvalidProperty("input_descriptors", "PresentationDefinition")
	}

	types := lo.FilterMap(d.Schema, func(s *Schema, _ int) (string, bool) {
		if s == nil || s.URI == "" {
			return "", false
		}

		return s.URI, true
	})
	if len(types) == 0 {
		return nil, walleterr.NewMissingRequiredProperty("schema", "InputDescriptor")
	}

	issuanceOptions := lo.FilterMap(d.Issuance, func(i *IssuanceInfo, _ int) (string, bool) {
		if i == nil || !isURL(i.URL()) {
			return "", false
		}

		return i.URL(), true
	})

	var constraint requirement.Constraint = typeConstraint(types)

	fields, err := fieldConstraints(d.Constraints)
	if err != nil {
		return nil, walleterr.NewInvalidProperty("constraints", "InputDescriptor").WithCause(err)
	}

	if len(fields) > 0 {
		constraint = &requirement.GroupConstraint{
			Constraints: append([]requirement.Constraint{constraint}, fields...),
			Operator:    requirement.OperatorAll,
		}
	}

	return &requirement.PresentationExchangeVerifiedID{
		VerifiedID: requirement.VerifiedID{
			Required:        true,
			Types:           types,
			Purpose:         d.Purpose,
			IssuanceOptions: issuanceOptions,
			ID:              d.ID,
			Constraint:      constraint,
		},
		InputDescriptorID:         d.ID,
		Format:                    descriptorFormat(d.Format),
		ExclusivePresentationWith: d.ExclusivePresentationWith,
	}, nil
}

func typeConstraint(types []string) requirement.Constraint {
	if len(types) == 1 {
		return &requirement.VCTypeConstraint{Type: types[0]}
	}

	return &requirement.GroupConstraint{
		Constraints: lo.Map(types, func(t string, _ int) requirement.Constraint {
			return &requirement.VCTypeConstraint{Type: t}
		}),
		Operator: requirement.OperatorAny,
	}
}

func fieldConstraints(c *Constraints) ([]requirement.Constraint, error) {
	if c == nil {
		return nil, nil
	}

	constraints := make([]requirement.Constraint, 0, len(c.Fields))

	for _, f := range c.Fields {
		if f == nil {
			continue
		}

		var pattern string
		if f.Filter != nil {
			pattern = f.Filter.Pattern
		}

		fc, err := requirement.NewFieldConstraint(f.Path, pattern)
		if err != nil {
			return nil, err
		}

		constraints = append(constraints, fc)
	}

	return constraints, nil
}

const defaultFormat = "jwt_vc"

func descriptorFormat(format map[string]any) string {
	if len(format) == 1 {
		return lo.Keys(format)[0]
	}

	return defaultFormat
}

// IDTokenDescriptor maps an id token attestation.
func (m *Mapper) IDTokenDescriptor(d *IDTokenDescriptor) (*requirement.IDToken, error) {
	if d == nil {
		return nil, walleterr.NewInvalidProperty("idTokens", "Attestations")
	}

	if !isURL(d.Configuration) {
		return nil, walleterr.NewInvalidProperty("configuration", "IdTokenDescriptor")
	}

	if d.RedirectURI == "" {
		return nil, walleterr.NewMissingRequiredProperty("redirect_uri", "IdTokenDescriptor")
	}

	r := &requirement.IDToken{
		Required:      lo.FromPtr(d.Required),
		Encrypted:     lo.FromPtr(d.Encrypted),
		Configuration: d.Configuration,
		ClientID:      d.ClientID,
		RedirectURI:   d.RedirectURI,
		Scope:         d.Scope,
	}

	if m.opts.IdentifierDID != "" && m.opts.NonceComputer != nil {
		nonce, err := m.opts.NonceComputer.Nonce(m.opts.IdentifierDID)
		if err == nil {
			r.AddNonce(nonce)
		}
	}

	return r, nil
}

// AccessTokenDescriptor maps an access token attestation.
func (m *Mapper) AccessTokenDescriptor(d *AccessTokenDescriptor) (*requirement.AccessToken, error) {
	if d == nil {
		return nil, walleterr.NewInvalidProperty("accessTokens", "Attestations")
	}

	if d.Configuration == "" {
		return nil, walleterr.NewMissingRequiredProperty("configuration", "AccessTokenDescriptor")
	}

	if !isURL(d.Configuration) {
		return nil, walleterr.NewInvalidProperty("configuration", "AccessTokenDescriptor")
	}

	if d.ResourceID == "" {
		return nil, walleterr.NewMissingRequiredProperty("resourceId", "AccessTokenDescriptor")
	}

	if d.OBOScope == "" {
		return nil, walleterr.NewMissingRequiredProperty("oboScope", "AccessTokenDescriptor")
	}

	return &requirement.AccessToken{
		Required:      lo.FromPtr(d.Required),
		Encrypted:     lo.FromPtr(d.Encrypted),
		Configuration: d.Configuration,
		ResourceID:    d.ResourceID,
		Scope:         d.OBOScope,
	}, nil
}

// PresentationDescriptor maps a presentation attestation.
func (m *Mapper) PresentationDescriptor(d *PresentationDescriptor) (*requirement.VerifiedID, error) {
	if d == nil {
		return nil, walleterr.NewInvalidProperty("presentations", "Attestations")
	}

	if d.CredentialType == "" {
		return nil, walleterr.NewMissingRequiredProperty("credentialType", "PresentationDescriptor")
	}

	return &requirement.VerifiedID{
		Required:        lo.FromPtr(d.Required),
		Encrypted:       lo.FromPtr(d.Encrypted),
		Types:           []string{d.CredentialType},
		IssuanceOptions: lo.Filter(d.Contracts, func(c string, _ int) bool { return isURL(c) }),
		ID:              d.CredentialType,
		Constraint:      &requirement.VCTypeConstraint{Type: d.CredentialType},
	}, nil
}

// SelfIssuedClaimsDescriptor maps self issued claims. Null claim entries are skipped. It returns nil when no
// claims are requested.
func (m *Mapper) SelfIssuedClaimsDescriptor(d *SelfIssuedDescriptor) requirement.Requirement {
	if d == nil {
		return nil
	}

	claims := lo.Filter(d.Claims, func(c *ClaimDescriptor, _ int) bool { return c != nil })
	if len(claims) == 0 {
		return nil
	}

	groupRequired := lo.FromPtr(d.Required)
	encrypted := lo.FromPtr(d.Encrypted)

	if len(claims) == 1 {
		claim := claims[0]

		return &requirement.SelfAttestedClaim{
			Required:  groupRequired || lo.FromPtr(claim.Required),
			Encrypted: encrypted,
			Claim:     claim.Claim,
		}
	}

	children := lo.Map(claims, func(claim *ClaimDescriptor, _ int) requirement.Requirement {
		return &requirement.SelfAttestedClaim{
			Required:  lo.FromPtr(claim.Required),
			Encrypted: encrypted,
			Claim:     claim.Claim,
		}
	})

	return requirement.NewGroup(groupRequired, requirement.OperatorAll, children...)
}

// Attestations maps contract attestations in the order access tokens, id tokens, presentations, self issued.
func (m *Mapper) Attestations(a *Attestations) (requirement.Requirement, error) {
	if a == nil {
		return nil, walleterr.NewMissingRequiredProperty("attestations", "Contract")
	}

	var requirements []requirement.Requirement

	for _, d := range a.AccessTokens {
		r, err := m.AccessTokenDescriptor(d)
		if err != nil {
			return nil, err
		}

		requirements = append(requirements, r)
	}

	for _, d := range a.IDTokens {
		r, err := m.IDTokenDescriptor(d)
		if err != nil {
			return nil, err
		}

		requirements = append(requirements, r)
	}

	for _, d := range a.Presentations {
		r, err := m.PresentationDescriptor(d)
		if err != nil {
			return nil, err
		}

		requirements = append(requirements, r)
	}

	if r := m.SelfIssuedClaimsDescriptor(a.SelfIssued); r != nil {
		requirements = append(requirements, r)
	}

	if len(requirements) == 0 {
		return nil, walleterr.NewNoRequirementsPresent("Attestations")
	}

	return requirement.Reduce(requirements)
}

// PinDescriptor maps the pin protecting an injected id token.
func (m *Mapper) PinDescriptor(d *PinDescriptor) *requirement.Pin {
	return &requirement.Pin{
		Required: true,
		Length:   d.Length,
		Type:     d.Type,
		Salt:     d.Salt,
	}
}

// PresentationRequest maps a validated presentation request together with the linked domain result of its
// signer.
func (m *Mapper) PresentationRequest(
	claims *PresentationRequestClaims,
	linkedDomain *linkeddomain.Result,
) (*PresentationRequestContent, error) {
	if claims.Claims == nil || len(claims.Claims.VPToken) == 0 {
		return nil, walleterr.NewMissingRequiredProperty("claims.vp_token", "PresentationRequest")
	}

	if !isURL(claims.RedirectURI) {
		return nil, walleterr.NewInvalidProperty("redirect_uri", "PresentationRequest")
	}

	if claims.State == "" {
		return nil, walleterr.NewMissingRequiredProperty("state", "PresentationRequest")
	}

	r, err := m.RequestedClaims(claims.Claims)
	if err != nil {
		return nil, err
	}

	content := &PresentationRequestContent{
		Requirement:  r,
		RootOfTrust:  m.RootOfTrust(linkedDomain),
		RequestState: claims.State,
		CallbackURL:  claims.RedirectURI,
	}

	if claims.Registration != nil {
		content.Style = verifiedid.RequesterStyle{
			Requester: claims.Registration.ClientName,
			LogoURL:   claims.Registration.LogoURI,
		}
	}

	if claims.IDTokenHint != "" {
		content.InjectedIDToken = &InjectedIDToken{Raw: claims.IDTokenHint}

		if claims.Pin != nil {
			content.InjectedIDToken.Pin = m.PinDescriptor(claims.Pin)
		}
	}

	return content, nil
}

// Contract maps an issuance contract together with the linked domain result of its signer.
func (m *Mapper) Contract(c *Contract, linkedDomain *linkeddomain.Result) (*IssuanceRequestContent, error) {
	if c.Input == nil || c.Input.Attestations == nil {
		return nil, walleterr.NewMissingRequiredProperty("attestations", "Contract")
	}

	if c.Display == nil || c.Display.Card == nil {
		return nil, walleterr.NewMissingRequiredProperty("display.card", "Contract")
	}

	r, err := m.Attestations(c.Input.Attestations)
	if err != nil {
		return nil, err
	}

	return &IssuanceRequestContent{
		Style:           verifiedid.RequesterStyle{Requester: c.Display.Card.IssuedBy},
		VerifiedIDStyle: CardStyle(c.Display.Card),
		Requirement:     r,
		RootOfTrust:     m.RootOfTrust(linkedDomain),
	}, nil
}

// CardStyle maps a contract card to a credential style.
func CardStyle(card *CardDisplay) verifiedid.Style {
	style := verifiedid.Style{
		Name:            card.Title,
		Issuer:          card.IssuedBy,
		BackgroundColor: card.BackgroundColor,
		TextColor:       card.TextColor,
		Description:     card.Description,
	}

	if card.Logo != nil && isURL(card.Logo.URI) {
		style.LogoURL = card.Logo.URI
		style.LogoAltText = card.Logo.Description
	}

	return style
}

// RootOfTrust maps a linked domain result. A nil result has no root of trust.
func (m *Mapper) RootOfTrust(result *linkeddomain.Result) linkeddomain.RootOfTrust {
	if result == nil {
		return linkeddomain.RootOfTrust{}
	}

	return result.RootOfTrust()
}

func isURL(raw string) bool {
	u, err := url.Parse(raw)

	return err == nil && u.Scheme != "" && u.Host != ""
}
