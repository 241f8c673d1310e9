/*
Copyright Avast Software. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package oidc4vp

import (
	"crypto/sha256"
	"encoding/base64"
	"time"

	"github.com/google/uuid"

	"github.com/trustbloc/verifiedid-go/pkg/config"
	"github.com/trustbloc/verifiedid-go/pkg/crypto"
	"github.com/trustbloc/verifiedid-go/pkg/jws"
	"github.com/trustbloc/verifiedid-go/pkg/verifiedid"
	"github.com/trustbloc/verifiedid-go/pkg/walleterr"
)

const (
	presentationLifetime     = 3000 * time.Second
	issuanceResponseLifetime = 3000 * time.Second
	exchangeRequestLifetime  = 5 * time.Second
)

// Formatter builds and signs the tokens the holder sends back, using the configured identifier.
type Formatter struct {
	signer     crypto.Signer
	identifier *config.Identifier
	now        func() time.Time
}

func NewFormatter(signer crypto.Signer, identifier *config.Identifier) *Formatter {
	return &Formatter{
		signer:     signer,
		identifier: identifier,
		now:        time.Now,
	}
}

// PresentationResponse builds the id token describing where each requested credential sits in the vp_token.
func (f *Formatter) PresentationResponse(
	audience, nonce, definitionID string,
	descriptors []*InputDescriptorMapping,
) (string, error) {
	return sign(f, PresentationResponseClaims{
		Issuer:   SelfIssuedV2,
		Subject:  f.identifier.DID,
		Audience: audience,
		Nonce:    nonce,
		VPToken: []VPTokenDescription{{
			PresentationSubmission: &PresentationSubmission{
				ID:            uuid.NewString(),
				DefinitionID:  definitionID,
				DescriptorMap: descriptors,
			},
		}},
		TimeClaims: jws.NewTimeClaims(f.now(), jws.DefaultLifetime),
	})
}

// VerifiablePresentation wraps serialized credentials in a presentation addressed to audience.
func (f *Formatter) VerifiablePresentation(audience, nonce string, credentials []string) (string, error) {
	return sign(f, VerifiablePresentationClaims{
		JTI: uuid.NewString(),
		VP: VerifiablePresentationDescriptor{
			Context:              []string{credentialsContext},
			Type:                 []string{verifiablePresentation},
			VerifiableCredential: credentials,
		},
		Issuer:     f.identifier.DID,
		Audience:   audience,
		Nonce:      nonce,
		TimeClaims: jws.NewTimeClaims(f.now(), presentationLifetime).WithNotBefore(),
	})
}

// IssuanceResponse signs the attestations collected for a contract.
func (f *Formatter) IssuanceResponse(r *IssuanceResponse) (string, error) {
	publicKey, thumbprint, err := f.publicKey()
	if err != nil {
		return "", err
	}

	claims := IssuanceResponseClaims{
		Issuer:     SelfIssued,
		Subject:    thumbprint,
		Audience:   r.Audience,
		DID:        f.identifier.DID,
		SubJWK:     publicKey,
		Contract:   r.ContractURL,
		JTI:        uuid.NewString(),
		TimeClaims: jws.NewTimeClaims(f.now(), issuanceResponseLifetime),
	}

	attestations, err := f.attestations(r)
	if err != nil {
		return "", err
	}

	if !attestations.isEmpty() {
		claims.Attestations = attestations
	}

	// The pin only protects the id token hint.
	if r.IDTokenHint != "" && r.Pin != nil {
		claims.Pin = r.Pin
	}

	return sign(f, claims)
}

func (f *Formatter) attestations(r *IssuanceResponse) (*AttestationResponses, error) {
	a := &AttestationResponses{
		AccessTokens: r.AccessTokens,
		IDTokens:     r.IDTokens,
		SelfIssued:   r.SelfIssued,
	}

	if r.IDTokenHint != "" {
		if a.IDTokens == nil {
			a.IDTokens = map[string]string{}
		}

		a.IDTokens[SelfIssued] = r.IDTokenHint
	}

	for id, raw := range r.Presentations {
		vp, err := f.VerifiablePresentation(r.IssuerDID, "", []string{raw})
		if err != nil {
			return nil, err
		}

		if a.Presentations == nil {
			a.Presentations = map[string]string{}
		}

		a.Presentations[id] = vp
	}

	return a, nil
}

// ExchangeRequest asks the issuer to reissue vid to recipient.
func (f *Formatter) ExchangeRequest(audience, recipient string, vid verifiedid.VerifiedID) (string, error) {
	subject, _ := vid.Content()["sub"].(string)
	if subject == "" {
		return "", walleterr.NewMissingRequiredProperty("sub", "VerifiableCredential").
			WithComponent(walleterr.OpenIDProcessorComponent)
	}

	publicKey, thumbprint, err := f.publicKey()
	if err != nil {
		return "", err
	}

	return sign(f, ExchangeRequestClaims{
		Issuer:     SelfIssued,
		Subject:    thumbprint,
		Audience:   audience,
		DID:        subject,
		SubJWK:     publicKey,
		JTI:        uuid.NewString(),
		VC:         vid.Raw(),
		Recipient:  recipient,
		TimeClaims: jws.NewTimeClaims(f.now(), exchangeRequestLifetime),
	})
}

func (f *Formatter) publicKey() (*jws.JWK, string, error) {
	publicKey, err := f.signer.PublicJWK(f.identifier.KeyRef, f.identifier.KeyID)
	if err != nil {
		return nil, "", walleterr.NewRequestCreationError("Unable to get the public key of the identifier.", err).
			WithComponent(walleterr.OpenIDProcessorComponent)
	}

	thumbprint, err := crypto.Thumbprint(publicKey)
	if err != nil {
		return nil, "", walleterr.NewRequestCreationError("Unable to compute the key thumbprint.", err).
			WithComponent(walleterr.OpenIDProcessorComponent)
	}

	return publicKey, thumbprint, nil
}

func sign[C any](f *Formatter, claims C) (string, error) {
	token, err := jws.New(jws.Header{
		Type:      jws.TypeJWT,
		Algorithm: jws.AlgorithmES256K,
		KeyID:     f.identifier.KeyIDURL(),
	}, claims)
	if err != nil {
		return "", walleterr.NewRequestCreationError("Unable to create token.", err).
			WithComponent(walleterr.OpenIDProcessorComponent)
	}

	if err = token.Sign(f.signer, f.identifier.KeyRef); err != nil {
		return "", walleterr.NewRequestCreationError("Unable to sign token.", err).
			WithComponent(walleterr.OpenIDProcessorComponent)
	}

	return token.Serialize()
}

// HashPin returns base64(sha256(salt + pin)).
func HashPin(pin, salt string) string {
	sum := sha256.Sum256([]byte(salt + pin))

	return base64.StdEncoding.EncodeToString(sum[:])
}

func pinHash(pin, salt string) *PinHash {
	return &PinHash{Hash: HashPin(pin, salt), Salt: salt}
}
