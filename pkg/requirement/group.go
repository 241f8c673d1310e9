/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package requirement

// Operator combines the children of a group.
type Operator string

const (
	OperatorAll Operator = "ALL"
	OperatorAny Operator = "ANY"
)

// Group owns a list of requirements combined by Operator.
type Group struct {
	Required     bool
	Operator     Operator
	requirements []Requirement
}

// NewGroup creates a group owning children.
func NewGroup(required bool, operator Operator, children ...Requirement) *Group {
	return &Group{
		Required:     required,
		Operator:     operator,
		requirements: append([]Requirement(nil), children...),
	}
}

func (g *Group) IsRequired() bool { return g.Required }

func (g *Group) Kind() Kind { return KindGroup }

func (g *Group) Accept(v Visitor) error { return v.VisitGroup(g) }

// Append adds children to the group.
func (g *Group) Append(children ...Requirement) {
	g.requirements = append(g.requirements, children...)
}

// Replace swaps the child at index i.
func (g *Group) Replace(i int, child Requirement) {
	g.requirements[i] = child
}

// Remove drops every child for which match returns true and reports whether any was removed.
func (g *Group) Remove(match func(Requirement) bool) bool {
	kept := g.requirements[:0]

	for _, child := range g.requirements {
		if !match(child) {
			kept = append(kept, child)
		}
	}

	removed := len(kept) != len(g.requirements)
	g.requirements = kept

	return removed
}

// Children returns the children in order.
func (g *Group) Children() []Requirement {
	return g.requirements
}

// Validate checks every child and reports all failures in child order. With ANY, a single valid child
// satisfies the group.
func (g *Group) Validate() error {
	var errs []error

	for _, child := range g.requirements {
		err := child.Validate()
		if err == nil {
			if g.Operator == OperatorAny {
				return nil
			}

			continue
		}

		errs = append(errs, err)
	}

	if len(errs) == 0 {
		return nil
	}

	return notMet(groupNotValid, errs...)
}
