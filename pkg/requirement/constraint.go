/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package requirement

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/PaesslerAG/jsonpath"
	"github.com/samber/lo"

	"github.com/trustbloc/verifiedid-go/pkg/verifiedid"
)

var (
	ErrNoPaths             = errors.New("no paths found on presentation exchange field")
	ErrInvalidPattern      = errors.New("invalid pattern on the presentation exchange field")
	ErrConstraintsNotMatch = errors.New("verified id does not match constraints")
)

// Constraint decides whether a verified id can fulfil a requirement.
type Constraint interface {
	DoesMatch(vid verifiedid.VerifiedID) bool
	Matches(vid verifiedid.VerifiedID) error
}

// VCTypeConstraint requires the credential to carry Type among its vc.type values.
type VCTypeConstraint struct {
	Type string
}

func (c *VCTypeConstraint) DoesMatch(vid verifiedid.VerifiedID) bool {
	return c.Matches(vid) == nil
}

func (c *VCTypeConstraint) Matches(vid verifiedid.VerifiedID) error {
	if vid == nil || !lo.Contains(vid.Types(), c.Type) {
		return fmt.Errorf("verified id does not contain type %q", c.Type)
	}

	return nil
}

// GroupConstraint combines constraints with ANY or ALL.
type GroupConstraint struct {
	Constraints []Constraint
	Operator    Operator
}

func (c *GroupConstraint) DoesMatch(vid verifiedid.VerifiedID) bool {
	return c.Matches(vid) == nil
}

func (c *GroupConstraint) Matches(vid verifiedid.VerifiedID) error {
	var errs []error

	for _, constraint := range c.Constraints {
		err := constraint.Matches(vid)
		if err == nil {
			if c.Operator == OperatorAny {
				return nil
			}

			continue
		}

		errs = append(errs, err)
	}

	if len(errs) == 0 {
		return nil
	}

	return errors.Join(errs...)
}

// FieldConstraint matches when any of its JSONPath expressions selects a string that matches the
// filter pattern.
type FieldConstraint struct {
	paths   []string
	pattern *regexp.Regexp
}

// NewFieldConstraint validates the paths and compiles the pattern. The pattern may be a plain
// expression or a literal of the form /expr/flags, where i, m and s are honoured and g is ignored.
func NewFieldConstraint(paths []string, pattern string) (*FieldConstraint, error) {
	if len(paths) == 0 {
		return nil, ErrNoPaths
	}

	for _, path := range paths {
		if _, err := jsonpath.New(path); err != nil {
			return nil, fmt.Errorf("invalid path %q: %w", path, err)
		}
	}

	re, err := compilePattern(pattern)
	if err != nil {
		return nil, err
	}

	return &FieldConstraint{paths: paths, pattern: re}, nil
}

func compilePattern(pattern string) (*regexp.Regexp, error) {
	if pattern == "" {
		return nil, ErrInvalidPattern
	}

	expr := pattern

	if strings.HasPrefix(pattern, "/") {
		end := strings.LastIndex(pattern, "/")
		if end > 0 {
			expr = pattern[1:end]

			var flags string

			for _, f := range pattern[end+1:] {
				switch f {
				case 'i', 'm', 's':
					flags += string(f)
				case 'g':
				default:
					return nil, ErrInvalidPattern
				}
			}

			if flags != "" {
				expr = "(?" + flags + ")" + expr
			}
		}
	}

	re, err := regexp.Compile(expr)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidPattern, err.Error())
	}

	return re, nil
}

func (c *FieldConstraint) DoesMatch(vid verifiedid.VerifiedID) bool {
	return c.Matches(vid) == nil
}

func (c *FieldConstraint) Matches(vid verifiedid.VerifiedID) error {
	if vid == nil || vid.Content() == nil {
		return ErrConstraintsNotMatch
	}

	content := vid.Content()

	for _, path := range c.paths {
		value, err := jsonpath.Get(path, content)
		if err != nil {
			continue
		}

		if s, ok := value.(string); ok && c.pattern.MatchString(s) {
			return nil
		}
	}

	return ErrConstraintsNotMatch
}
