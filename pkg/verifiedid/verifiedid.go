/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package verifiedid

import (
	"time"
)

// VerifiedID is a credential held by the wallet.
type VerifiedID interface {
	ID() string
	IssuedOn() time.Time
	// ExpiresOn is nil when the credential does not expire.
	ExpiresOn() *time.Time
	Types() []string
	Style() Style
	Claims() []Claim
	// Raw returns the compact JWS of the credential.
	Raw() string
	// Content returns the decoded JWT claims; field constraints evaluate JSONPath against it.
	Content() map[string]interface{}
}

// Claim is a credential subject attribute with its display label.
type Claim struct {
	ID    string      `json:"id"`
	Label string      `json:"label,omitempty"`
	Type  string      `json:"type,omitempty"`
	Value interface{} `json:"value"`
}

// Style describes how a credential card is rendered.
type Style struct {
	Name            string `json:"name"`
	Issuer          string `json:"issuer"`
	BackgroundColor string `json:"backgroundColor,omitempty"`
	TextColor       string `json:"textColor,omitempty"`
	Description     string `json:"description,omitempty"`
	LogoURL         string `json:"logoUrl,omitempty"`
	LogoAltText     string `json:"logoAltText,omitempty"`
}

// RequesterStyle describes the party asking for or issuing a credential.
type RequesterStyle struct {
	Requester   string `json:"requester"`
	Locale      string `json:"locale,omitempty"`
	LogoURL     string `json:"logoUrl,omitempty"`
	LogoAltText string `json:"logoAltText,omitempty"`
}
