/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package walleterr

import (
	"fmt"
)

func NewMalformedInput(err error) *Error {
	return New(MalformedInputError, "Malformed Input.").WithCause(err)
}

func NewMalformedInputMessage(message string) *Error {
	return New(MalformedInputError, message)
}

func NewNetworkingError(message string, statusCode int, retryable bool, err error) *Error {
	e := New(NetworkingError, message).WithCause(err).WithComponent(NetworkingComponent)
	e.StatusCode = statusCode
	e.Retryable = retryable

	return e
}

// NewRequirementNotMet creates a validation error. Nested errors are kept in order.
func NewRequirementNotMet(message string, errs ...error) *Error {
	return New(RequirementNotMet, message).WithComponent(RequirementComponent).WithErrors(errs...)
}

func NewUnspecified(err error) *Error {
	return New(UnspecifiedError, "Unspecified Error.").WithCause(err)
}

func NewUserCanceled(message string) *Error {
	return New(UserCanceled, message)
}

// NewMissingRequiredProperty names the absent wire field and the type it was expected in.
func NewMissingRequiredProperty(property, sourceType string) *Error {
	return Newf(MissingRequiredProperty, "Missing required property: %s in %s.", property, sourceType).
		WithComponent(MappingComponent).
		WithIncorrectValue(property)
}

// NewInvalidProperty names the malformed wire field and the type it was found in.
func NewInvalidProperty(property, sourceType string) *Error {
	return Newf(InvalidProperty, "Invalid property: %s in %s.", property, sourceType).
		WithComponent(MappingComponent).
		WithIncorrectValue(property)
}

// NewInvalidTokenProperty reports a claim that does not carry the expected value.
func NewInvalidTokenProperty(property string, actual *string, expected string) *Error {
	if actual != nil {
		return Newf(InvalidProperty, "Invalid String for property: %s. Expected: %s, Actual: %s.",
			property, expected, *actual).WithComponent(TokenCodecComponent)
	}

	return Newf(InvalidProperty, "Property %s is not present. Expected: %s.", property, expected).
		WithComponent(TokenCodecComponent)
}

func NewTokenExpired() *Error {
	return New(TokenExpired, "Token has expired.").WithComponent(TokenCodecComponent)
}

func NewIatHasNotOccurred() *Error {
	return New(TokenInvalid, "Token iat has not occurred.").WithComponent(TokenCodecComponent)
}

func NewInvalidSignature() *Error {
	return New(TokenInvalid, "Signature is not valid.").WithComponent(TokenCodecComponent)
}

func NewTokenMalformed(message string, err error) *Error {
	return New(TokenMalformed, message).WithCause(err).WithComponent(TokenCodecComponent)
}

func NewMalformedCredentialMetadata(message string, err error) *Error {
	return New(CredentialMetadataMalformed, message).WithCause(err).WithComponent(OIDC4VCIProcessorComponent)
}

func NewMalformedSignedMetadata(message string, err error) *Error {
	return New(SignedMetadataTokenMalformed, message).WithCause(err).WithComponent(OIDC4VCIProcessorComponent)
}

func NewRequestCreationError(message string, err error) *Error {
	return New(RequestCreationError, message).WithCause(err)
}

func NewPreAuthError(message string) *Error {
	return New(PreAuthIssuanceError, message).WithComponent(OIDC4VCIProcessorComponent)
}

func NewNoKeysInDocument() *Error {
	return New(NoKeysFoundInDocument, "No keys found in Identifier document.")
}

func NewUnsupportedRawRequest(raw interface{}) *Error {
	return Newf(UnsupportedRawRequest, "Unsupported raw request of type: %T.", raw).
		WithComponent(ProcessorFactoryComponent)
}

func NewUnableToReduceRequirements() *Error {
	return New(UnableToReduceRequirements, "Unable to reduce an empty list of requirements.").
		WithComponent(RequirementComponent)
}

func NewUnsupportedSerialization(what string) *Error {
	return New(UnsupportedSerialization, fmt.Sprintf("Serialization not enabled for %s.", what))
}

func NewMissingInputDescriptors() *Error {
	return New(MissingInputDescriptors, "Missing input descriptors in presentation definition.").
		WithComponent(MappingComponent)
}

func NewNoRequirementsPresent(sourceType string) *Error {
	return Newf(NoRequirementsPresent, "No requirements present in %s.", sourceType).WithComponent(MappingComponent)
}
