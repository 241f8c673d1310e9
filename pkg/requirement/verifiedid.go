/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package requirement

import (
	"github.com/samber/lo"

	"github.com/trustbloc/verifiedid-go/pkg/verifiedid"
)

// VerifiedID asks the holder to present a credential matching Constraint.
type VerifiedID struct {
	Required  bool
	Encrypted bool
	Types     []string
	Purpose   string
	// IssuanceOptions lists request URLs from which a matching credential can be obtained.
	IssuanceOptions []string
	ID              string
	Constraint      Constraint
	Selected        verifiedid.VerifiedID
}

func (r *VerifiedID) IsRequired() bool { return r.Required }

func (r *VerifiedID) Kind() Kind { return KindVerifiedID }

func (r *VerifiedID) Accept(v Visitor) error { return v.VisitVerifiedID(r) }

func (r *VerifiedID) Validate() error {
	if r.Selected == nil {
		return notMet(verifiedIDNotSet)
	}

	if err := r.Constraint.Matches(r.Selected); err != nil {
		return notMet(verifiedIDNoMatch, err)
	}

	return nil
}

// GetMatches filters candidates down to those satisfying the constraint.
func (r *VerifiedID) GetMatches(candidates []verifiedid.VerifiedID) []verifiedid.VerifiedID {
	return lo.Filter(candidates, func(vid verifiedid.VerifiedID, _ int) bool {
		return r.Constraint.DoesMatch(vid)
	})
}

// Fulfill selects vid. The selection is left unchanged when vid does not satisfy the constraint.
func (r *VerifiedID) Fulfill(vid verifiedid.VerifiedID) error {
	if err := r.Constraint.Matches(vid); err != nil {
		return notMet(verifiedIDNoMatch, err)
	}

	r.Selected = vid

	return nil
}

// PresentationExchangeVerifiedID is a VerifiedID requested through a presentation definition input
// descriptor.
type PresentationExchangeVerifiedID struct {
	VerifiedID
	InputDescriptorID string
	Format            string
	// ExclusivePresentationWith lists input descriptor ids that must not share a presentation with this one.
	ExclusivePresentationWith []string
}

func (r *PresentationExchangeVerifiedID) Kind() Kind { return KindPresentationExchangeVerifiedID }

func (r *PresentationExchangeVerifiedID) Accept(v Visitor) error {
	return v.VisitPresentationExchangeVerifiedID(r)
}
