/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package requirement

import (
	"context"
)

// SelfAttestedClaim is a value the holder types in.
type SelfAttestedClaim struct {
	Required  bool
	Encrypted bool
	Claim     string
	Value     *string
}

func (r *SelfAttestedClaim) IsRequired() bool { return r.Required }

func (r *SelfAttestedClaim) Kind() Kind { return KindSelfAttestedClaim }

func (r *SelfAttestedClaim) Accept(v Visitor) error { return v.VisitSelfAttestedClaim(r) }

func (r *SelfAttestedClaim) Validate() error {
	if r.Value == nil {
		return notMet(selfAttestedClaimNotSet)
	}

	return nil
}

func (r *SelfAttestedClaim) Fulfill(value string) {
	r.Value = &value
}

// Pin is a one-time code delivered to the holder out of band.
type Pin struct {
	Required  bool
	Encrypted bool
	Length    int
	Type      string
	Salt      string
	Pin       *string
}

func (r *Pin) IsRequired() bool { return r.Required }

func (r *Pin) Kind() Kind { return KindPin }

func (r *Pin) Accept(v Visitor) error { return v.VisitPin(r) }

func (r *Pin) Validate() error {
	if r.Pin == nil {
		return notMet(pinNotSet)
	}

	return nil
}

func (r *Pin) Fulfill(pin string) {
	r.Pin = &pin
}

// RetryablePin is a pin that is exchanged with the issuer as soon as it is entered; a wrong pin can be
// retried.
type RetryablePin interface {
	Requirement
	PinLength() int
	PinType() string
	FulfillPin(ctx context.Context, pin string) error
}

// IDToken is obtained by the caller from an identity provider.
type IDToken struct {
	Required      bool
	Encrypted     bool
	Configuration string
	ClientID      string
	RedirectURI   string
	Scope         string
	Nonce         string
	IDToken       *string
}

func (r *IDToken) IsRequired() bool { return r.Required }

func (r *IDToken) Kind() Kind { return KindIDToken }

func (r *IDToken) Accept(v Visitor) error { return v.VisitIDToken(r) }

func (r *IDToken) Validate() error {
	if r.IDToken == nil {
		return notMet(idTokenNotSet)
	}

	return nil
}

func (r *IDToken) Fulfill(token string) {
	r.IDToken = &token
}

// AddNonce sets the nonce the caller passes to the identity provider.
func (r *IDToken) AddNonce(nonce string) {
	r.Nonce = nonce
}

// AccessToken is obtained by the caller from an authorization server.
type AccessToken struct {
	Required      bool
	Encrypted     bool
	Configuration string
	ClientID      string
	ResourceID    string
	Scope         string
	AccessToken   *string
}

func (r *AccessToken) IsRequired() bool { return r.Required }

func (r *AccessToken) Kind() Kind { return KindAccessToken }

func (r *AccessToken) Accept(v Visitor) error { return v.VisitAccessToken(r) }

func (r *AccessToken) Validate() error {
	if r.AccessToken == nil {
		return notMet(accessTokenNotSet)
	}

	return nil
}

func (r *AccessToken) Fulfill(token string) {
	r.AccessToken = &token
}

// PrefilledAccessToken carries a token the library already obtained; it needs no input.
type PrefilledAccessToken struct {
	Required    bool
	AccessToken string
}

func (r *PrefilledAccessToken) IsRequired() bool { return r.Required }

func (r *PrefilledAccessToken) Kind() Kind { return KindPrefilledAccessToken }

func (r *PrefilledAccessToken) Accept(v Visitor) error { return v.VisitPrefilledAccessToken(r) }

func (r *PrefilledAccessToken) Validate() error { return nil }
