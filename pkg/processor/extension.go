/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package processor

import (
	"fmt"

	"github.com/trustbloc/verifiedid-go/pkg/requirement"
	"github.com/trustbloc/verifiedid-go/pkg/service/linkeddomain"
	"github.com/trustbloc/verifiedid-go/pkg/verifiedid"
)

// PartialRequest is the mutable view of a request handed to extensions before the request is built.
type PartialRequest struct {
	Style           verifiedid.RequesterStyle
	VerifiedIDStyle *verifiedid.Style
	Requirement     requirement.Requirement
	RootOfTrust     linkeddomain.RootOfTrust
}

// Extension rewrites a partial request using the primitive claims of the raw request.
type Extension interface {
	Parse(rawClaims map[string]interface{}, request *PartialRequest) *PartialRequest
}

// ApplyExtensions runs extensions in order, each on the result of the previous one.
func ApplyExtensions(extensions []Extension, rawClaims map[string]interface{}, request *PartialRequest) *PartialRequest {
	for _, ext := range extensions {
		if next := ext.Parse(rawClaims, request); next != nil {
			request = next
		}
	}

	return request
}

// ReplaceVerifiedID replaces the verified id requirement with the given id anywhere in the tree and returns
// the replacement, or nil when no requirement has that id.
func (p *PartialRequest) ReplaceVerifiedID(
	id string,
	transform func(*requirement.VerifiedID) requirement.Requirement,
) requirement.Requirement {
	tree, replaced := replaceVerifiedID(p.Requirement, id, transform)
	p.Requirement = tree

	return replaced
}

func replaceVerifiedID(
	r requirement.Requirement,
	id string,
	transform func(*requirement.VerifiedID) requirement.Requirement,
) (requirement.Requirement, requirement.Requirement) {
	switch v := r.(type) {
	case *requirement.Group:
		for i, child := range v.Children() {
			updated, replaced := replaceVerifiedID(child, id, transform)
			if replaced != nil {
				v.Replace(i, updated)

				return v, replaced
			}
		}
	case *requirement.VerifiedID:
		if v.ID == id {
			replaced := transform(v)

			return replaced, replaced
		}
	case *requirement.PresentationExchangeVerifiedID:
		if v.ID == id {
			replaced := transform(&v.VerifiedID)

			return replaced, replaced
		}
	}

	return r, nil
}

// RemoveVerifiedID removes top level verified id requirements with the given id from a group requirement.
func (p *PartialRequest) RemoveVerifiedID(id string) bool {
	g, ok := p.Requirement.(*requirement.Group)
	if !ok {
		return false
	}

	return g.Remove(func(r requirement.Requirement) bool {
		switch v := r.(type) {
		case *requirement.VerifiedID:
			return v.ID == id
		case *requirement.PresentationExchangeVerifiedID:
			return v.ID == id
		default:
			return false
		}
	})
}

func typeName(v interface{}) string {
	return fmt.Sprintf("%T", v)
}
