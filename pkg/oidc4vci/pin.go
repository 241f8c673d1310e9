/*
Copyright Avast Software. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package oidc4vci

import (
	"context"
	"sync"

	"github.com/trustbloc/verifiedid-go/pkg/requirement"
	"github.com/trustbloc/verifiedid-go/pkg/walleterr"
)

var _ requirement.RetryablePin = (*RetryablePinRequirement)(nil)

type tokenResolver interface {
	Resolve(ctx context.Context, authorizationServer string, grant Grant, txCode string) (string, error)
}

// RetryablePinRequirement is satisfied once a transaction code has been exchanged for an access token.
// A rejected code leaves it unsatisfied so the holder can try again.
type RetryablePinRequirement struct {
	Length int
	Type   string

	authorizationServer string
	grant               Grant
	resolver            tokenResolver

	mu          sync.RWMutex
	accessToken string
}

func newRetryablePinRequirement(authorizationServer string, grant Grant, resolver tokenResolver) *RetryablePinRequirement {
	r := &RetryablePinRequirement{
		Type:                defaultTxCodeInputMode,
		authorizationServer: authorizationServer,
		grant:               grant,
		resolver:            resolver,
	}

	if grant.TxCode != nil {
		r.Length = grant.TxCode.Length

		if grant.TxCode.InputMode != "" {
			r.Type = grant.TxCode.InputMode
		}
	}

	return r
}

func (r *RetryablePinRequirement) IsRequired() bool { return true }

func (r *RetryablePinRequirement) Kind() requirement.Kind { return requirement.KindRetryablePin }

func (r *RetryablePinRequirement) Accept(v requirement.Visitor) error { return v.VisitRetryablePin(r) }

func (r *RetryablePinRequirement) PinLength() int { return r.Length }

func (r *RetryablePinRequirement) PinType() string { return r.Type }

func (r *RetryablePinRequirement) Validate() error {
	if r.AccessToken() == "" {
		return walleterr.NewRequirementNotMet("Pin has not been set.").
			WithComponent(walleterr.RequirementComponent)
	}

	return nil
}

// FulfillPin exchanges pin for an access token.
func (r *RetryablePinRequirement) FulfillPin(ctx context.Context, pin string) error {
	token, err := r.resolver.Resolve(ctx, r.authorizationServer, r.grant, pin)
	if err != nil {
		return walleterr.NewRequirementNotMet("Unable to fetch access token using pin.", err).
			WithComponent(walleterr.RequirementComponent)
	}

	r.mu.Lock()
	r.accessToken = token
	r.mu.Unlock()

	return nil
}

// AccessToken returns the token obtained with the pin, or an empty string.
func (r *RetryablePinRequirement) AccessToken() string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.accessToken
}
