/*
Copyright Avast Software. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package oidc4vp

import (
	"context"
	"encoding/json"

	"github.com/trustbloc/verifiedid-go/internal/logfields"
	"github.com/trustbloc/verifiedid-go/pkg/config"
	"github.com/trustbloc/verifiedid-go/pkg/mapping"
	"github.com/trustbloc/verifiedid-go/pkg/processor"
	"github.com/trustbloc/verifiedid-go/pkg/requirement"
	"github.com/trustbloc/verifiedid-go/pkg/service/linkeddomain"
	"github.com/trustbloc/verifiedid-go/pkg/verifiedid"
	"github.com/trustbloc/verifiedid-go/pkg/walleterr"
)

const contentTypeText = "text/plain"

var _ processor.IssuanceRequest = (*ContractIssuanceRequest)(nil)

// IssuanceResponse holds everything the holder sends to the issuance service of a contract.
type IssuanceResponse struct {
	ContractURL  string
	Audience     string
	IssuerDID    string
	AccessTokens map[string]string
	IDTokens     map[string]string
	SelfIssued   map[string]string
	// Presentations maps requirement ids to raw credentials.
	Presentations map[string]string
	IDTokenHint   string
	Pin           *PinHash
}

// ContractIssuanceRequest is an issuance request described by a contract.
type ContractIssuanceRequest struct {
	config    *config.Configuration
	formatter *Formatter
	content   *mapping.IssuanceRequestContent
	contract  *Contract
}

func (r *ContractIssuanceRequest) Style() verifiedid.RequesterStyle { return r.content.Style }

func (r *ContractIssuanceRequest) VerifiedIDStyle() verifiedid.Style { return r.content.VerifiedIDStyle }

func (r *ContractIssuanceRequest) Requirement() requirement.Requirement { return r.content.Requirement }

func (r *ContractIssuanceRequest) RootOfTrust() linkeddomain.RootOfTrust { return r.content.RootOfTrust }

func (r *ContractIssuanceRequest) IsSatisfied() bool {
	return r.content.Requirement.Validate() == nil
}

// Complete sends the collected attestations to the issuance service and returns the issued verified id.
func (r *ContractIssuanceRequest) Complete(ctx context.Context) (verifiedid.VerifiedID, error) {
	if err := r.content.Requirement.Validate(); err != nil {
		return nil, err
	}

	response, err := r.issuanceResponse()
	if err != nil {
		return nil, err
	}

	token, err := r.formatter.IssuanceResponse(response)
	if err != nil {
		return nil, err
	}

	issuanceURL := r.contract.Input.CredentialIssuer

	body, err := r.config.Networking.Post(ctx, issuanceURL, []byte(token), contentTypeText, nil)
	if err != nil {
		return nil, err
	}

	var resp issuanceServiceResponse
	if err = json.Unmarshal(body, &resp); err != nil {
		return nil, walleterr.NewMalformedInput(err).WithComponent(walleterr.OpenIDProcessorComponent)
	}

	if resp.VC == "" {
		return nil, walleterr.NewMissingRequiredProperty("vc", "IssuanceResponse").
			WithComponent(walleterr.OpenIDProcessorComponent)
	}

	vid, err := verifiedid.NewFromContract(resp.VC, r.contract.Raw)
	if err != nil {
		return nil, err
	}

	r.config.Logger.Event("ContractIssuanceCompleted", map[string]string{
		"contract": r.contract.URL,
	}, nil)

	logger.Debug("verified id issued", logfields.WithURL(issuanceURL))

	return vid, nil
}

// Cancel reports the cancellation to the callback of the originating presentation request.
func (r *ContractIssuanceRequest) Cancel(ctx context.Context, message string) error {
	r.config.Logger.Event("ContractIssuanceCanceled", map[string]string{
		"contract": r.contract.URL,
		"message":  message,
	}, nil)

	return postCompletion(ctx, r.config.Networking, r.content.CallbackURL, &IssuanceCompletionResponse{
		Code:    IssuanceFailed,
		State:   r.content.RequestState,
		Details: DetailsUserCanceled,
	})
}

func (r *ContractIssuanceRequest) issuanceResponse() (*IssuanceResponse, error) {
	collector := &attestationCollector{
		response: &IssuanceResponse{
			ContractURL: r.contract.URL,
			Audience:    r.contract.Input.CredentialIssuer,
			IssuerDID:   r.contract.Input.Issuer,
		},
	}

	if err := requirement.Walk(r.content.Requirement, collector); err != nil {
		return nil, err
	}

	return collector.response, nil
}

// attestationCollector gathers fulfilled requirement values into an IssuanceResponse.
type attestationCollector struct {
	requirement.NoopVisitor
	response *IssuanceResponse
}

func (c *attestationCollector) VisitIDToken(r *requirement.IDToken) error {
	if r.IDToken == nil {
		return nil
	}

	if r.Configuration == SelfIssued {
		c.response.IDTokenHint = *r.IDToken

		return nil
	}

	c.response.IDTokens = put(c.response.IDTokens, r.Configuration, *r.IDToken)

	return nil
}

func (c *attestationCollector) VisitAccessToken(r *requirement.AccessToken) error {
	if r.AccessToken != nil {
		c.response.AccessTokens = put(c.response.AccessTokens, r.Configuration, *r.AccessToken)
	}

	return nil
}

func (c *attestationCollector) VisitVerifiedID(r *requirement.VerifiedID) error {
	if r.Selected != nil {
		c.response.Presentations = put(c.response.Presentations, r.ID, r.Selected.Raw())
	}

	return nil
}

func (c *attestationCollector) VisitPresentationExchangeVerifiedID(
	r *requirement.PresentationExchangeVerifiedID,
) error {
	return c.VisitVerifiedID(&r.VerifiedID)
}

func (c *attestationCollector) VisitSelfAttestedClaim(r *requirement.SelfAttestedClaim) error {
	if r.Value != nil {
		c.response.SelfIssued = put(c.response.SelfIssued, r.Claim, *r.Value)
	}

	return nil
}

func (c *attestationCollector) VisitPin(r *requirement.Pin) error {
	if r.Pin != nil {
		c.response.Pin = pinHash(*r.Pin, r.Salt)
	}

	return nil
}

func put(m map[string]string, key, value string) map[string]string {
	if m == nil {
		m = map[string]string{}
	}

	m[key] = value

	return m
}
