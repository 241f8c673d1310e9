/*
Copyright Avast Software. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package oidc4vci

import (
	"context"
	"time"

	"github.com/trustbloc/verifiedid-go/internal/logfields"
	"github.com/trustbloc/verifiedid-go/pkg/did"
	"github.com/trustbloc/verifiedid-go/pkg/jws"
	"github.com/trustbloc/verifiedid-go/pkg/service/linkeddomain"
	"github.com/trustbloc/verifiedid-go/pkg/walleterr"
)

type linkedDomainService interface {
	ValidateDocument(ctx context.Context, doc *did.Document) (*linkeddomain.Result, error)
}

// SignedMetadataProcessor validates signed_metadata and resolves the issuer's root of trust from the DID that
// signed it.
type SignedMetadataProcessor struct {
	resolver      did.DocumentResolver
	verifier      jws.Verifier
	linkedDomains linkedDomainService
	now           func() time.Time
}

// NewSignedMetadataProcessor creates a SignedMetadataProcessor.
func NewSignedMetadataProcessor(
	resolver did.DocumentResolver,
	verifier jws.Verifier,
	linkedDomains linkedDomainService,
) *SignedMetadataProcessor {
	return &SignedMetadataProcessor{
		resolver:      resolver,
		verifier:      verifier,
		linkedDomains: linkedDomains,
		now:           time.Now,
	}
}

// Process validates signedMetadata against credentialIssuer and returns the root of trust of its signer.
func (p *SignedMetadataProcessor) Process(
	ctx context.Context,
	signedMetadata string,
	credentialIssuer string,
) (linkeddomain.RootOfTrust, error) {
	token, err := jws.Decode[SignedMetadataClaims](signedMetadata)
	if err != nil {
		return linkeddomain.RootOfTrust{}, walleterr.NewMalformedSignedMetadata(
			"Signed Metadata is not a JSON Web Token.", err)
	}

	issuerDID, fragment, err := did.SplitKeyID(token.Header.KeyID)
	if err != nil {
		return linkeddomain.RootOfTrust{}, walleterr.NewMalformedSignedMetadata(
			"Unable to extract Key Id from Signed Metadata Token.", err)
	}

	doc, err := p.resolver.Resolve(ctx, issuerDID)
	if err != nil {
		return linkeddomain.RootOfTrust{}, err
	}

	key, ok := doc.JWK(fragment)
	if !ok {
		return linkeddomain.RootOfTrust{}, walleterr.NewMalformedSignedMetadata(
			"Key Id not defined in Identifier Document.", nil)
	}

	if err = p.validate(token, key, issuerDID, credentialIssuer); err != nil {
		return linkeddomain.RootOfTrust{}, walleterr.NewMalformedSignedMetadata("Signed metadata is not valid.", err)
	}

	result, err := p.linkedDomains.ValidateDocument(ctx, doc)
	if err != nil {
		return linkeddomain.RootOfTrust{}, err
	}

	logger.Debug("signed metadata validated",
		logfields.WithDID(issuerDID), logfields.WithDomain(result.Domain))

	return result.RootOfTrust(), nil
}

func (p *SignedMetadataProcessor) validate(
	token *SignedMetadata,
	key *jws.JWK,
	expectedIssuer string,
	expectedSubject string,
) error {
	claims := token.Claims

	if claims.Issuer != expectedIssuer {
		return walleterr.NewInvalidTokenProperty("iss", &claims.Issuer, expectedIssuer)
	}

	if claims.Subject != expectedSubject {
		return walleterr.NewInvalidTokenProperty("sub", &claims.Subject, expectedSubject)
	}

	if err := jws.ValidateTimeClaims(claims.TimeClaims, p.now()); err != nil {
		return err
	}

	valid, err := token.Verify(p.verifier, key)
	if err != nil {
		return err
	}

	if !valid {
		return walleterr.NewInvalidSignature()
	}

	return nil
}
