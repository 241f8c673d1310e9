/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package linkeddomain

import (
	"fmt"

	"github.com/trustbloc/verifiedid-go/pkg/walleterr"
)

// Value names one side of a failed equality check.
type Value string

const (
	CredentialSubject          Value = "credentialSubject"
	TokenIssuer                Value = "tokenIssuer"
	TokenSubject               Value = "tokenSubject"
	IdentifierDocumentDID      Value = "identifierDocumentDid"
	SourceDomainURL            Value = "sourceDomainUrl"
	WellKnownDocumentDomainURL Value = "wellKnownDocumentDomainUrl"
	KeyIDDID                   Value = "keyIdDid"
)

// DoNotMatchError names the two values that were expected to be equal.
type DoNotMatchError struct {
	First       Value
	FirstValue  string
	Second      Value
	SecondValue string
}

func (e *DoNotMatchError) Error() string {
	return fmt.Sprintf("%s %q does not match %s %q", e.First, e.FirstValue, e.Second, e.SecondValue)
}

func doNotMatch(first Value, firstValue string, second Value, secondValue string) *walleterr.Error {
	cause := &DoNotMatchError{
		First:       first,
		FirstValue:  firstValue,
		Second:      second,
		SecondValue: secondValue,
	}

	return walleterr.Newf(walleterr.LinkedDomainDoNotMatch, "Values do not match: %s and %s.", first, second).
		WithComponent(walleterr.LinkedDomainComponent).
		WithCause(cause)
}

func invalid(message string) *walleterr.Error {
	return walleterr.New(walleterr.LinkedDomainInvalid, message).WithComponent(walleterr.LinkedDomainComponent)
}

func errNoKeyID() *walleterr.Error {
	return invalid("No key id in domain linkage credential header.")
}

func errKeyIDMalformed() *walleterr.Error {
	return invalid("Key id in domain linkage credential header is malformed.")
}

func errNoPublicKeys() *walleterr.Error {
	return invalid("No public keys found in identifier document.")
}

func errInvalidSignature() *walleterr.Error {
	return invalid("Domain linkage credential signature is not valid.")
}
