/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package requirement

import (
	"github.com/trustbloc/verifiedid-go/pkg/walleterr"
)

// Kind names a concrete requirement type.
type Kind string

const (
	KindSelfAttestedClaim              Kind = "selfAttestedClaim"
	KindPin                            Kind = "pin"
	KindRetryablePin                   Kind = "retryablePin"
	KindIDToken                        Kind = "idToken"
	KindAccessToken                    Kind = "accessToken"
	KindPrefilledAccessToken           Kind = "prefilledAccessToken"
	KindVerifiedID                     Kind = "verifiedId"
	KindPresentationExchangeVerifiedID Kind = "presentationExchangeVerifiedId"
	KindGroup                          Kind = "group"
)

const (
	pinNotSet               = "Pin has not been set."
	verifiedIDNotSet        = "Verified Id has not been set."
	verifiedIDNoMatch       = "Verified Id Constraints do not match."
	accessTokenNotSet       = "Access Token has not been set."
	idTokenNotSet           = "Id Token has not been set."
	selfAttestedClaimNotSet = "Self Attested Claim has not been set."
	groupNotValid           = "Group Requirement is not valid due to missing or invalid requirements."
)

// Requirement is something the holder has to provide before a request can be completed.
type Requirement interface {
	IsRequired() bool
	// Validate returns a requirement_not_met error while the requirement is unfulfilled.
	Validate() error
	Kind() Kind
	Accept(v Visitor) error
}

// Visitor dispatches on the concrete requirement type.
type Visitor interface {
	VisitSelfAttestedClaim(r *SelfAttestedClaim) error
	VisitPin(r *Pin) error
	VisitRetryablePin(r RetryablePin) error
	VisitIDToken(r *IDToken) error
	VisitAccessToken(r *AccessToken) error
	VisitPrefilledAccessToken(r *PrefilledAccessToken) error
	VisitVerifiedID(r *VerifiedID) error
	VisitPresentationExchangeVerifiedID(r *PresentationExchangeVerifiedID) error
	VisitGroup(r *Group) error
}

// NoopVisitor ignores every requirement. Embed it to handle only the variants of interest.
type NoopVisitor struct{}

func (NoopVisitor) VisitSelfAttestedClaim(*SelfAttestedClaim) error { return nil }

func (NoopVisitor) VisitPin(*Pin) error { return nil }

func (NoopVisitor) VisitRetryablePin(RetryablePin) error { return nil }

func (NoopVisitor) VisitIDToken(*IDToken) error { return nil }

func (NoopVisitor) VisitAccessToken(*AccessToken) error { return nil }

func (NoopVisitor) VisitPrefilledAccessToken(*PrefilledAccessToken) error { return nil }

func (NoopVisitor) VisitVerifiedID(*VerifiedID) error { return nil }

func (NoopVisitor) VisitPresentationExchangeVerifiedID(*PresentationExchangeVerifiedID) error {
	return nil
}

func (NoopVisitor) VisitGroup(*Group) error { return nil }

// Walk visits r and, for groups, every descendant depth first in order. It stops at the first error.
func Walk(r Requirement, v Visitor) error {
	if err := r.Accept(v); err != nil {
		return err
	}

	g, ok := r.(*Group)
	if !ok {
		return nil
	}

	for _, child := range g.Children() {
		if err := Walk(child, v); err != nil {
			return err
		}
	}

	return nil
}

// Reduce collapses requirements into one: a single requirement is returned as is, several are grouped
// under ALL.
func Reduce(requirements []Requirement) (Requirement, error) {
	switch len(requirements) {
	case 0:
		return nil, walleterr.NewUnableToReduceRequirements()
	case 1:
		return requirements[0], nil
	default:
		return NewGroup(true, OperatorAll, requirements...), nil
	}
}

func notMet(message string, errs ...error) error {
	return walleterr.NewRequirementNotMet(message, errs...)
}
