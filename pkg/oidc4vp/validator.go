/*
Copyright Avast Software. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package oidc4vp

import (
	"context"
	"time"

	"github.com/trustbloc/verifiedid-go/pkg/did"
	"github.com/trustbloc/verifiedid-go/pkg/jws"
	"github.com/trustbloc/verifiedid-go/pkg/service/linkeddomain"
	"github.com/trustbloc/verifiedid-go/pkg/walleterr"
)

type linkedDomainService interface {
	ValidateDocument(ctx context.Context, doc *did.Document) (*linkeddomain.Result, error)
}

// tokenValidator checks tokens signed by a DID: the kid resolves to a key of the signer's document and the
// signature matches.
type tokenValidator struct {
	resolver      did.DocumentResolver
	verifier      jws.Verifier
	linkedDomains linkedDomainService
	now           func() time.Time
}

func (v *tokenValidator) signer(ctx context.Context, header jws.Header) (*did.Document, *jws.JWK, error) {
	if header.KeyID == "" {
		return nil, nil, walleterr.NewTokenMalformed("No Key Id in token header.", nil).
			WithComponent(walleterr.OpenIDProcessorComponent)
	}

	signerDID, fragment, err := did.SplitKeyID(header.KeyID)
	if err != nil {
		return nil, nil, walleterr.NewTokenMalformed("Key Id in token header is malformed.", err).
			WithComponent(walleterr.OpenIDProcessorComponent)
	}

	doc, err := v.resolver.Resolve(ctx, signerDID)
	if err != nil {
		return nil, nil, err
	}

	if !doc.HasKeys() {
		return nil, nil, walleterr.NewNoKeysInDocument().WithComponent(walleterr.OpenIDProcessorComponent)
	}

	key, ok := doc.JWK(fragment)
	if !ok {
		return nil, nil, walleterr.NewTokenMalformed("Key Id not defined in Identifier Document.", nil).
			WithComponent(walleterr.OpenIDProcessorComponent)
	}

	return doc, key, nil
}

// validate verifies token and its time claims, then validates the signer's linked domains.
func validate[C any](
	ctx context.Context,
	v *tokenValidator,
	token *jws.Token[C],
	timeClaims jws.TimeClaims,
) (*linkeddomain.Result, error) {
	doc, key, err := v.signer(ctx, token.Header)
	if err != nil {
		return nil, err
	}

	if err = jws.ValidateTimeClaims(timeClaims, v.now()); err != nil {
		return nil, err
	}

	valid, err := token.Verify(v.verifier, key)
	if err != nil {
		return nil, walleterr.NewInvalidSignature().WithCause(err)
	}

	if !valid {
		return nil, walleterr.NewInvalidSignature()
	}

	return v.linkedDomains.ValidateDocument(ctx, doc)
}
