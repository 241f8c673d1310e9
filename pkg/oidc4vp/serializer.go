/*
Copyright Avast Software. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package oidc4vp

import (
	"encoding/json"
	"fmt"
	"net/url"

	"github.com/samber/lo"

	"github.com/trustbloc/verifiedid-go/pkg/requirement"
	"github.com/trustbloc/verifiedid-go/pkg/walleterr"
)

// PresentationResponse is the form posted to the verifier's redirect_uri.
type PresentationResponse struct {
	IDToken  string
	VPTokens []string
	State    string
}

// Form encodes the response. A single vp_token is sent as is, several as a JSON array.
func (r *PresentationResponse) Form() (url.Values, error) {
	form := url.Values{"id_token": {r.IDToken}}

	switch len(r.VPTokens) {
	case 0:
	case 1:
		form.Set("vp_token", r.VPTokens[0])
	default:
		b, err := json.Marshal(r.VPTokens)
		if err != nil {
			return nil, fmt.Errorf("marshal vp tokens: %w", err)
		}

		form.Set("vp_token", string(b))
	}

	if r.State != "" {
		form.Set("state", r.State)
	}

	return form, nil
}

// partialInputDescriptor is a selected credential together with the descriptor that asked for it.
type partialInputDescriptor struct {
	raw         string
	requirement *requirement.PresentationExchangeVerifiedID
}

// compatible reports whether both may share a presentation: neither lists the other as exclusive.
func (p *partialInputDescriptor) compatible(other *partialInputDescriptor) bool {
	return !lo.Contains(p.requirement.ExclusivePresentationWith, other.requirement.InputDescriptorID) &&
		!lo.Contains(other.requirement.ExclusivePresentationWith, p.requirement.InputDescriptorID)
}

type presentationBuilder struct {
	index    int
	partials []*partialInputDescriptor
}

func (b *presentationBuilder) canInclude(p *partialInputDescriptor) bool {
	return lo.EveryBy(b.partials, func(existing *partialInputDescriptor) bool {
		return existing.compatible(p)
	})
}

func (b *presentationBuilder) descriptors() []*InputDescriptorMapping {
	return lo.Map(b.partials, func(p *partialInputDescriptor, i int) *InputDescriptorMapping {
		id := p.requirement.InputDescriptorID

		return &InputDescriptorMapping{
			ID:     id,
			Format: FormatJWTVP,
			Path:   fmt.Sprintf("$[%d]", b.index),
			PathNested: &InputDescriptorMapping{
				ID:     id,
				Format: FormatJWTVC,
				Path:   fmt.Sprintf("$[%d].verifiableCredential[%d]", b.index, i),
			},
		}
	})
}

func (b *presentationBuilder) credentials() []string {
	return lo.Map(b.partials, func(p *partialInputDescriptor, _ int) string {
		return p.raw
	})
}

// Serializer walks a fulfilled requirement and groups the selected credentials into as few presentations as
// exclusive_presentation_with allows.
type Serializer struct {
	requirement.NoopVisitor

	formatter    *Formatter
	state        string
	audience     string
	nonce        string
	definitionID string
	builders     []*presentationBuilder
}

// NewSerializer fails when the request lacks a property the response has to echo.
func NewSerializer(f *Formatter, request *RawRequest) (*Serializer, error) {
	required := []struct {
		name  string
		value string
	}{
		{name: "state", value: request.Claims.State},
		{name: "client_id", value: request.Claims.ClientID},
		{name: "nonce", value: request.Claims.Nonce},
		{name: "definitionId", value: request.DefinitionID()},
	}

	for _, p := range required {
		if p.value == "" {
			return nil, walleterr.NewMissingRequiredProperty(p.name, "PresentationRequest").
				WithComponent(walleterr.OpenIDProcessorComponent)
		}
	}

	return &Serializer{
		formatter:    f,
		state:        request.Claims.State,
		audience:     request.Claims.ClientID,
		nonce:        request.Claims.Nonce,
		definitionID: request.DefinitionID(),
	}, nil
}

// Serialize adds every selected presentation exchange credential under r.
func (s *Serializer) Serialize(r requirement.Requirement) error {
	return requirement.Walk(r, s)
}

func (s *Serializer) VisitPresentationExchangeVerifiedID(r *requirement.PresentationExchangeVerifiedID) error {
	if r.Selected == nil {
		return nil
	}

	s.add(&partialInputDescriptor{raw: r.Selected.Raw(), requirement: r})

	return nil
}

func (s *Serializer) VisitVerifiedID(r *requirement.VerifiedID) error {
	if r.Selected == nil {
		return nil
	}

	return walleterr.NewUnsupportedSerialization("VerifiedIdRequirement").
		WithComponent(walleterr.OpenIDProcessorComponent)
}

func (s *Serializer) add(p *partialInputDescriptor) {
	for _, b := range s.builders {
		if b.canInclude(p) {
			b.partials = append(b.partials, p)

			return
		}
	}

	s.builders = append(s.builders, &presentationBuilder{
		index:    len(s.builders),
		partials: []*partialInputDescriptor{p},
	})
}

// Build signs the id token and one vp_token per presentation.
func (s *Serializer) Build() (*PresentationResponse, error) {
	descriptors := lo.FlatMap(s.builders, func(b *presentationBuilder, _ int) []*InputDescriptorMapping {
		return b.descriptors()
	})

	idToken, err := s.formatter.PresentationResponse(s.audience, s.nonce, s.definitionID, descriptors)
	if err != nil {
		return nil, err
	}

	vpTokens := make([]string, 0, len(s.builders))

	for _, b := range s.builders {
		vp, vpErr := s.formatter.VerifiablePresentation(s.audience, s.nonce, b.credentials())
		if vpErr != nil {
			return nil, vpErr
		}

		vpTokens = append(vpTokens, vp)
	}

	return &PresentationResponse{
		IDToken:  idToken,
		VPTokens: vpTokens,
		State:    s.state,
	}, nil
}
