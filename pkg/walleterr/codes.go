/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package walleterr

// Code is a stable error code surfaced to library callers.
type Code string

//nolint:gosec
const (
	MalformedInputError          Code = "malformed_input_error"
	NetworkingError              Code = "networking_error"
	RequirementNotMet            Code = "requirement_not_met"
	UnspecifiedError             Code = "unspecified_error"
	UserCanceled                 Code = "user_canceled"
	MissingRequiredProperty      Code = "missing_required_property"
	InvalidProperty              Code = "invalid_property"
	CredentialMetadataMalformed  Code = "credential_metadata_malformed"
	SignedMetadataTokenMalformed Code = "signed_metadata_token_malformed"
	RequestCreationError         Code = "request_creation_error"
	PreAuthIssuanceError         Code = "preauth_issuance_error"
	TokenExpired                 Code = "token_expired"
	TokenInvalid                 Code = "token_invalid"
	TokenMalformed               Code = "token_malformed"
	NoKeysFoundInDocument        Code = "no_keys_found_in_document"
	VerifiedIDCreationError      Code = "verified_id_creation_error"
	UnableToReduceRequirements   Code = "unable_to_reduce_requirements"
	MissingInputDescriptors      Code = "missing_input_descriptors"
	NoRequirementsPresent        Code = "no_requirements_present"
	UnsupportedRawRequest        Code = "unsupported_raw_request"
	UnsupportedSerialization     Code = "unsupported_serialization_method"
	LinkedDomainDoNotMatch       Code = "linked_domain_do_not_match"
	LinkedDomainInvalid          Code = "linked_domain_invalid"
)

// Component identifies the part of the library that produced an error.
type Component string

//nolint:gosec
const (
	TokenCodecComponent        Component = "token-codec"
	DIDResolverComponent       Component = "did-resolver"
	LinkedDomainComponent      Component = "linked-domain-service"
	RequirementComponent       Component = "requirement"
	MappingComponent           Component = "mapping"
	ProcessorFactoryComponent  Component = "processor-factory"
	OIDC4VCIProcessorComponent Component = "oidc4vci-processor"
	OpenIDProcessorComponent   Component = "openid-processor"
	NetworkingComponent        Component = "networking"
	VerifiedIDComponent        Component = "verified-id"
	ClientComponent            Component = "client"
)
