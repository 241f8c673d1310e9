/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package walletcmd

import (
	"github.com/trustbloc/verifiedid-go/pkg/processor"
	"github.com/trustbloc/verifiedid-go/pkg/requirement"
	"github.com/trustbloc/verifiedid-go/pkg/service/linkeddomain"
	"github.com/trustbloc/verifiedid-go/pkg/verifiedid"
)

const (
	requestTypeIssuance     = "issuance"
	requestTypePresentation = "presentation"
)

type requestSummary struct {
	Type            string                    `json:"type"`
	Style           verifiedid.RequesterStyle `json:"style"`
	RootOfTrust     linkeddomain.RootOfTrust  `json:"rootOfTrust"`
	VerifiedIDStyle *verifiedid.Style         `json:"verifiedIdStyle,omitempty"`
	Requirement     *requirementSummary       `json:"requirement,omitempty"`
}

type requirementSummary struct {
	Kind     requirement.Kind      `json:"kind"`
	Required bool                  `json:"required"`
	Claim    string                `json:"claim,omitempty"`
	Types    []string              `json:"types,omitempty"`
	Purpose  string                `json:"purpose,omitempty"`
	Issuance []string              `json:"issuanceOptions,omitempty"`
	PinLen   int                   `json:"pinLength,omitempty"`
	Config   string                `json:"configuration,omitempty"`
	Operator requirement.Operator  `json:"operator,omitempty"`
	Children []*requirementSummary `json:"children,omitempty"`
}

func summarize(request processor.VerifiedIDRequest) *requestSummary {
	s := &requestSummary{
		Type:        requestTypePresentation,
		Style:       request.Style(),
		RootOfTrust: request.RootOfTrust(),
		Requirement: summarizeRequirement(request.Requirement()),
	}

	if issuance, ok := request.(processor.IssuanceRequest); ok {
		style := issuance.VerifiedIDStyle()

		s.Type = requestTypeIssuance
		s.VerifiedIDStyle = &style
	}

	return s
}

func summarizeRequirement(r requirement.Requirement) *requirementSummary {
	if r == nil {
		return nil
	}

	v := &summaryVisitor{node: &requirementSummary{Kind: r.Kind(), Required: r.IsRequired()}}

	// the visitor never fails
	_ = r.Accept(v) //nolint:errcheck

	return v.node
}

type summaryVisitor struct {
	requirement.NoopVisitor

	node *requirementSummary
}

func (v *summaryVisitor) VisitSelfAttestedClaim(r *requirement.SelfAttestedClaim) error {
	v.node.Claim = r.Claim

	return nil
}

func (v *summaryVisitor) VisitPin(r *requirement.Pin) error {
	v.node.PinLen = r.Length

	return nil
}

func (v *summaryVisitor) VisitRetryablePin(r requirement.RetryablePin) error {
	v.node.PinLen = r.PinLength()

	return nil
}

func (v *summaryVisitor) VisitIDToken(r *requirement.IDToken) error {
	v.node.Config = r.Configuration

	return nil
}

func (v *summaryVisitor) VisitAccessToken(r *requirement.AccessToken) error {
	v.node.Config = r.Configuration

	return nil
}

func (v *summaryVisitor) VisitVerifiedID(r *requirement.VerifiedID) error {
	v.node.Types = r.Types
	v.node.Purpose = r.Purpose
	v.node.Issuance = r.IssuanceOptions

	return nil
}

func (v *summaryVisitor) VisitPresentationExchangeVerifiedID(r *requirement.PresentationExchangeVerifiedID) error {
	return v.VisitVerifiedID(&r.VerifiedID)
}

func (v *summaryVisitor) VisitGroup(r *requirement.Group) error {
	v.node.Operator = r.Operator

	for _, child := range r.Children() {
		v.node.Children = append(v.node.Children, summarizeRequirement(child))
	}

	return nil
}
