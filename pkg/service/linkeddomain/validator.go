/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package linkeddomain

import (
	"net/url"
	"strings"
	"time"

	"github.com/trustbloc/verifiedid-go/pkg/did"
	"github.com/trustbloc/verifiedid-go/pkg/jws"
)

// Credential is a decoded JWT domain linkage credential.
type Credential = jws.Token[DomainLinkageCredentialClaims]

// Validator checks a domain linkage credential against an identifier document.
type Validator struct {
	verifier jws.Verifier
	now      func() time.Time
}

// NewValidator creates a Validator.
func NewValidator(verifier jws.Verifier) *Validator {
	return &Validator{
		verifier: verifier,
		now:      time.Now,
	}
}

// Validate runs every check in order and returns the first failure.
func (v *Validator) Validate(credential *Credential, doc *did.Document, sourceDomainURL string) error {
	subject := credential.Claims.VC.CredentialSubject

	if credential.Claims.Issuer != subject.ID {
		return doNotMatch(CredentialSubject, subject.ID, TokenIssuer, credential.Claims.Issuer)
	}

	if credential.Claims.Subject != subject.ID {
		return doNotMatch(CredentialSubject, subject.ID, TokenSubject, credential.Claims.Subject)
	}

	if doc.ID != subject.ID {
		return doNotMatch(IdentifierDocumentDID, doc.ID, CredentialSubject, subject.ID)
	}

	if origin(sourceDomainURL) != origin(subject.Origin) {
		return doNotMatch(SourceDomainURL, sourceDomainURL, WellKnownDocumentDomainURL, subject.Origin)
	}

	if err := jws.ValidateExpiration(credential.Claims.TimeClaims, v.now()); err != nil {
		return err
	}

	kid := credential.Header.KeyID
	if kid == "" {
		return errNoKeyID()
	}

	kidDID, fragment, found := strings.Cut(kid, "#")
	if kidDID != doc.ID {
		return doNotMatch(KeyIDDID, kid, IdentifierDocumentDID, doc.ID)
	}

	if !found || fragment == "" || strings.Contains(fragment, "#") {
		return errKeyIDMalformed()
	}

	if !doc.HasKeys() {
		return errNoPublicKeys()
	}

	key, ok := doc.JWK(fragment)
	if !ok {
		return errInvalidSignature()
	}

	valid, err := credential.Verify(v.verifier, key)
	if err != nil || !valid {
		return errInvalidSignature().WithCause(err)
	}

	return nil
}

// origin reduces a URL to scheme and host so that trailing slashes and paths do not matter.
// Values without a scheme are compared as given.
func origin(raw string) string {
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" {
		return strings.TrimSuffix(strings.ToLower(raw), "/")
	}

	return strings.ToLower(u.Scheme + "://" + u.Host)
}
