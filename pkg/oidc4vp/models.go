/*
Copyright Avast Software. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package oidc4vp

import (
	"github.com/trustbloc/verifiedid-go/pkg/jws"
)

const (
	// SelfIssued is the issuer of contract issuance responses and the id token configuration that marks an
	// id token hint.
	SelfIssued = "https://self-issued.me"
	// SelfIssuedV2 is the issuer of presentation response id tokens.
	SelfIssuedV2 = "https://self-issued.me/v2/openid-vc"

	FormatJWTVP = "jwt_vp"
	FormatJWTVC = "jwt_vc"

	credentialsContext     = "https://www.w3.org/2018/credentials/v1"
	verifiablePresentation = "VerifiablePresentation"

	promptCreate = "create"
)

// Issuance completion codes and details reported to the issuance callback.
const (
	IssuanceSuccessful = "issuance_successful"
	IssuanceFailed     = "issuance_failed"

	DetailsUserCanceled       = "user_canceled"
	DetailsFetchContractError = "fetch_contract_error"
)

// PresentationResponseClaims are the claims of the id token sent back to a verifier.
type PresentationResponseClaims struct {
	Issuer   string               `json:"iss"`
	Subject  string               `json:"sub"`
	Audience string               `json:"aud"`
	Nonce    string               `json:"nonce,omitempty"`
	VPToken  []VPTokenDescription `json:"_vp_token"`
	jws.TimeClaims
}

type VPTokenDescription struct {
	PresentationSubmission *PresentationSubmission `json:"presentation_submission"`
}

// PresentationSubmission maps input descriptors to the credentials inside the vp_token.
type PresentationSubmission struct {
	ID            string                    `json:"id"`
	DefinitionID  string                    `json:"definition_id"`
	DescriptorMap []*InputDescriptorMapping `json:"descriptor_map"`
}

type InputDescriptorMapping struct {
	ID         string                  `json:"id"`
	Format     string                  `json:"format"`
	Path       string                  `json:"path"`
	PathNested *InputDescriptorMapping `json:"path_nested,omitempty"`
}

// VerifiablePresentationClaims are the claims of a vp_token.
type VerifiablePresentationClaims struct {
	JTI      string                           `json:"jti"`
	VP       VerifiablePresentationDescriptor `json:"vp"`
	Issuer   string                           `json:"iss"`
	Audience string                           `json:"aud"`
	Nonce    string                           `json:"nonce,omitempty"`
	jws.TimeClaims
}

type VerifiablePresentationDescriptor struct {
	Context              []string `json:"@context"`
	Type                 []string `json:"type"`
	VerifiableCredential []string `json:"verifiableCredential"`
}

// IssuanceResponseClaims are the claims of the token posted to a contract's credential issuer.
type IssuanceResponseClaims struct {
	Issuer       string                `json:"iss"`
	Subject      string                `json:"sub"`
	Audience     string                `json:"aud"`
	DID          string                `json:"did"`
	SubJWK       *jws.JWK              `json:"sub_jwk,omitempty"`
	Contract     string                `json:"contract"`
	JTI          string                `json:"jti"`
	Attestations *AttestationResponses `json:"attestations,omitempty"`
	Pin          *PinHash              `json:"pin,omitempty"`
	jws.TimeClaims
}

// AttestationResponses holds the fulfilled attestations keyed by configuration, input id or claim name.
type AttestationResponses struct {
	AccessTokens  map[string]string `json:"accessTokens,omitempty"`
	IDTokens      map[string]string `json:"idTokens,omitempty"`
	Presentations map[string]string `json:"presentations,omitempty"`
	SelfIssued    map[string]string `json:"selfIssued,omitempty"`
}

func (a *AttestationResponses) isEmpty() bool {
	return len(a.AccessTokens) == 0 && len(a.IDTokens) == 0 && len(a.Presentations) == 0 && len(a.SelfIssued) == 0
}

type PinHash struct {
	Hash string `json:"hash"`
	Salt string `json:"salt,omitempty"`
}

// ExchangeRequestClaims transfer a credential to a new owner DID.
type ExchangeRequestClaims struct {
	Issuer    string   `json:"iss"`
	Subject   string   `json:"sub"`
	Audience  string   `json:"aud"`
	DID       string   `json:"did"`
	SubJWK    *jws.JWK `json:"sub_jwk,omitempty"`
	JTI       string   `json:"jti"`
	VC        string   `json:"vc"`
	Recipient string   `json:"recipient"`
	jws.TimeClaims
}

// IssuanceCompletionResponse reports the outcome of a contract issuance to the request callback.
type IssuanceCompletionResponse struct {
	Code    string `json:"code"`
	State   string `json:"state"`
	Details string `json:"details,omitempty"`
}

type issuanceServiceResponse struct {
	VC string `json:"vc"`
}
