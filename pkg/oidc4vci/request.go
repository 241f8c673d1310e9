/*
Copyright Avast Software. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package oidc4vci

import (
	"context"
	"crypto/sha256"
	"time"

	"github.com/trustbloc/verifiedid-go/internal/logfields"
	"github.com/trustbloc/verifiedid-go/pkg/config"
	"github.com/trustbloc/verifiedid-go/pkg/jws"
	"github.com/trustbloc/verifiedid-go/pkg/networking"
	"github.com/trustbloc/verifiedid-go/pkg/processor"
	"github.com/trustbloc/verifiedid-go/pkg/requirement"
	"github.com/trustbloc/verifiedid-go/pkg/service/linkeddomain"
	"github.com/trustbloc/verifiedid-go/pkg/verifiedid"
	"github.com/trustbloc/verifiedid-go/pkg/walleterr"
)

var _ processor.IssuanceRequest = (*Request)(nil)

// Request is an issuance request started by a credential offer.
type Request struct {
	config          *config.Configuration
	style           verifiedid.RequesterStyle
	verifiedIDStyle verifiedid.Style
	requirement     requirement.Requirement
	rootOfTrust     linkeddomain.RootOfTrust
	offer           *CredentialOffer
	metadata        *CredentialMetadata
	configuration   *CredentialConfiguration
	configurationID string
}

func (r *Request) Style() verifiedid.RequesterStyle { return r.style }

func (r *Request) VerifiedIDStyle() verifiedid.Style { return r.verifiedIDStyle }

func (r *Request) Requirement() requirement.Requirement { return r.requirement }

func (r *Request) RootOfTrust() linkeddomain.RootOfTrust { return r.rootOfTrust }

func (r *Request) IsSatisfied() bool {
	return r.requirement.Validate() == nil
}

// Complete redeems the access token at the credential endpoint and returns the issued verified id.
func (r *Request) Complete(ctx context.Context) (verifiedid.VerifiedID, error) {
	if err := r.requirement.Validate(); err != nil {
		return nil, err
	}

	accessToken, err := findAccessToken(r.requirement)
	if err != nil {
		return nil, err
	}

	if !isHTTPURL(r.metadata.CredentialEndpoint) {
		return nil, walleterr.NewMissingRequiredProperty("credential_endpoint", "CredentialMetadata").
			WithComponent(walleterr.OIDC4VCIProcessorComponent)
	}

	request, err := r.credentialRequest(accessToken)
	if err != nil {
		return nil, err
	}

	headers := preferHeaders()
	headers["Authorization"] = "Bearer " + accessToken

	resp, err := networking.PostJSON[CredentialRequest, CredentialResponse](ctx, r.config.Networking,
		r.metadata.CredentialEndpoint, request, headers)
	if err != nil {
		return nil, err
	}

	if resp.Credential == "" {
		return nil, walleterr.NewMissingRequiredProperty("credential", "CredentialResponse").
			WithComponent(walleterr.OIDC4VCIProcessorComponent)
	}

	vc, err := verifiedid.NewFromOpenID4VCI(resp.Credential, r.style.Requester, r.configuration.Raw(),
		r.config.Locales...)
	if err != nil {
		return nil, err
	}

	r.config.Logger.Event("OpenID4VCIRequestCompleted", map[string]string{
		"credential_issuer": r.offer.CredentialIssuer,
		"configuration_id":  r.configurationID,
	}, nil)

	logger.Debug("credential issued", logfields.WithURL(r.metadata.CredentialEndpoint))

	return vc, nil
}

// Cancel ends the request locally; the issuer has no cancellation endpoint.
func (r *Request) Cancel(_ context.Context, message string) error {
	r.config.Logger.Event("OpenID4VCIRequestCanceled", map[string]string{
		"credential_issuer": r.offer.CredentialIssuer,
		"message":           message,
	}, nil)

	return nil
}

func (r *Request) credentialRequest(accessToken string) (*CredentialRequest, error) {
	proof, err := r.proof(accessToken)
	if err != nil {
		return nil, walleterr.NewRequestCreationError("Unable to format the Proof Token.", err).
			WithComponent(walleterr.OIDC4VCIProcessorComponent)
	}

	return &CredentialRequest{
		CredentialConfigurationID: r.offer.CredentialConfigurationIDs[0],
		IssuerSession:             r.offer.IssuerSession,
		Proof:                     Proof{ProofType: ProofTypeJWT, JWT: proof},
	}, nil
}

func (r *Request) proof(accessToken string) (string, error) {
	identifier := r.config.Identifier
	timeClaims := jws.NewTimeClaims(time.Now(), jws.DefaultLifetime)

	token, err := jws.New(jws.Header{
		Type:      ProofJWTType,
		Algorithm: jws.AlgorithmES256K,
		KeyID:     identifier.KeyIDURL(),
	}, ProofClaims{
		Audience:        r.metadata.CredentialEndpoint,
		Subject:         identifier.DID,
		IssuedAt:        timeClaims.IssuedAt,
		AccessTokenHash: AccessTokenHash(accessToken),
	})
	if err != nil {
		return "", err
	}

	if err = token.Sign(r.config.Signer, identifier.KeyRef); err != nil {
		return "", err
	}

	return token.Serialize()
}

// AccessTokenHash is the base64url encoding of the left-most half of the SHA-256 digest of the token.
func AccessTokenHash(accessToken string) string {
	sum := sha256.Sum256([]byte(accessToken))

	return jws.EncodeSegment(sum[:len(sum)/2])
}

type accessTokenFinder struct {
	requirement.NoopVisitor
	token string
}

func (f *accessTokenFinder) set(token string) {
	if f.token == "" {
		f.token = token
	}
}

func (f *accessTokenFinder) VisitAccessToken(r *requirement.AccessToken) error {
	if r.AccessToken != nil {
		f.set(*r.AccessToken)
	}

	return nil
}

func (f *accessTokenFinder) VisitPrefilledAccessToken(r *requirement.PrefilledAccessToken) error {
	f.set(r.AccessToken)

	return nil
}

func (f *accessTokenFinder) VisitRetryablePin(r requirement.RetryablePin) error {
	if pin, ok := r.(*RetryablePinRequirement); ok {
		f.set(pin.AccessToken())
	}

	return nil
}

func findAccessToken(r requirement.Requirement) (string, error) {
	finder := &accessTokenFinder{}

	if err := requirement.Walk(r, finder); err != nil {
		return "", err
	}

	if finder.token == "" {
		return "", walleterr.NewRequirementNotMet("Access Token has not been set.").
			WithComponent(walleterr.OIDC4VCIProcessorComponent)
	}

	return finder.token, nil
}
