/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package mapping

import (
	"github.com/trustbloc/verifiedid-go/pkg/requirement"
	"github.com/trustbloc/verifiedid-go/pkg/service/linkeddomain"
	"github.com/trustbloc/verifiedid-go/pkg/verifiedid"
)

// InjectedIDToken is an id token hint sent along with a presentation request, optionally protected by a pin.
type InjectedIDToken struct {
	Raw string
	Pin *requirement.Pin
}

// PresentationRequestContent is the protocol independent content of a presentation request.
type PresentationRequestContent struct {
	Style           verifiedid.RequesterStyle
	Requirement     requirement.Requirement
	RootOfTrust     linkeddomain.RootOfTrust
	RequestState    string
	CallbackURL     string
	InjectedIDToken *InjectedIDToken
}

// IssuanceRequestContent is the protocol independent content of an issuance request.
type IssuanceRequestContent struct {
	Style           verifiedid.RequesterStyle
	VerifiedIDStyle verifiedid.Style
	Requirement     requirement.Requirement
	RootOfTrust     linkeddomain.RootOfTrust
	RequestState    string
	CallbackURL     string
}

// AddInjectedIDToken fulfils id token requirements with the injected token and adds its pin.
func (c *IssuanceRequestContent) AddInjectedIDToken(injected *InjectedIDToken) {
	if injected == nil {
		return
	}

	switch r := c.Requirement.(type) {
	case *requirement.Group:
		fulfilled := false

		for _, child := range r.Children() {
			idToken, ok := child.(*requirement.IDToken)
			if !ok {
				continue
			}

			idToken.Fulfill(injected.Raw)

			fulfilled = true
		}

		if fulfilled && injected.Pin != nil {
			r.Append(injected.Pin)
		}
	case *requirement.IDToken:
		r.Fulfill(injected.Raw)

		if injected.Pin != nil {
			c.Requirement = requirement.NewGroup(false, requirement.OperatorAll, r, injected.Pin)
		}
	}
}

// AddNonce sets the nonce on every id token requirement.
func (c *IssuanceRequestContent) AddNonce(nonce string) {
	if c.Requirement == nil {
		return
	}

	_ = requirement.Walk(c.Requirement, &nonceSetter{nonce: nonce})
}

// AddState records the state of the originating presentation request.
func (c *IssuanceRequestContent) AddState(state string) {
	c.RequestState = state
}

// AddCallback records where the issuance result is reported.
func (c *IssuanceRequestContent) AddCallback(url string) {
	c.CallbackURL = url
}

type nonceSetter struct {
	requirement.NoopVisitor
	nonce string
}

func (s *nonceSetter) VisitIDToken(r *requirement.IDToken) error {
	r.AddNonce(s.nonce)

	return nil
}
