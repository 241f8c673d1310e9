/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package linkeddomain

import (
	"encoding/json"
	"fmt"

	"github.com/xeipuuv/gojsonschema"

	"github.com/trustbloc/verifiedid-go/pkg/jws"
	"github.com/trustbloc/verifiedid-go/pkg/walleterr"
)

const (
	didConfigurationContextURL    = "https://identity.foundation/.well-known/did-configuration/v1" //nolint:gosec
	w3CredentialsURL              = "https://www.w3.org/2018/credentials/v1"                       //nolint:gosec
	vcTypeVerifiableCredential    = "VerifiableCredential"                                         //nolint:gosec
	vcTypeDomainLinkageCredential = "DomainLinkageCredential"                                      //nolint:gosec

	// WellKnownPath is where a domain publishes its DID configuration.
	WellKnownPath = "/.well-known/did-configuration.json"
)

const configurationSchema = `{
  "type": "object",
  "required": ["linked_dids"],
  "properties": {
    "@context": {"type": "string"},
    "linked_dids": {
      "type": "array",
      "minItems": 1,
      "items": {"type": "string"}
    }
  }
}`

// Configuration is the well-known DID configuration document of a domain.
type Configuration struct {
	Context    string   `json:"@context"`
	LinkedDIDs []string `json:"linked_dids"`
}

// DomainLinkageCredentialClaims is the claim set of a JWT domain linkage credential.
type DomainLinkageCredentialClaims struct {
	jws.TimeClaims
	Subject string                  `json:"sub"`
	Issuer  string                  `json:"iss"`
	VC      DomainLinkageCredential `json:"vc"`
}

// DomainLinkageCredential is the vc member of the domain linkage credential.
type DomainLinkageCredential struct {
	Context           []string                       `json:"@context,omitempty"`
	Type              []string                       `json:"type,omitempty"`
	CredentialSubject DomainLinkageCredentialSubject `json:"credentialSubject"`
	IssuanceDate      string                         `json:"issuanceDate,omitempty"`
	ExpirationDate    string                         `json:"expirationDate,omitempty"`
}

// DomainLinkageCredentialSubject binds a DID to an origin.
type DomainLinkageCredentialSubject struct {
	ID     string `json:"id"`
	Origin string `json:"origin"`
}

// NewDomainLinkageCredentialClaims returns the claims linking did to origin.
func NewDomainLinkageCredentialClaims(did, origin string, timeClaims jws.TimeClaims) DomainLinkageCredentialClaims {
	return DomainLinkageCredentialClaims{
		TimeClaims: timeClaims,
		Subject:    did,
		Issuer:     did,
		VC: DomainLinkageCredential{
			Context: []string{w3CredentialsURL, didConfigurationContextURL},
			Type:    []string{vcTypeVerifiableCredential, vcTypeDomainLinkageCredential},
			CredentialSubject: DomainLinkageCredentialSubject{
				ID:     did,
				Origin: origin,
			},
		},
	}
}

// NewConfiguration wraps compact domain linkage credentials in a configuration document.
func NewConfiguration(linkedDIDs ...string) *Configuration {
	return &Configuration{
		Context:    didConfigurationContextURL,
		LinkedDIDs: linkedDIDs,
	}
}

// ParseConfiguration validates raw against the configuration schema and decodes it.
func ParseConfiguration(raw []byte) (*Configuration, error) {
	result, err := gojsonschema.Validate(
		gojsonschema.NewStringLoader(configurationSchema),
		gojsonschema.NewBytesLoader(raw),
	)
	if err != nil {
		return nil, walleterr.NewMalformedInput(fmt.Errorf("loader error: %w", err)).
			WithComponent(walleterr.LinkedDomainComponent)
	}

	if !result.Valid() {
		return nil, walleterr.NewMalformedInput(
			fmt.Errorf("validation error: %w", validationErrors(result.Errors()))).
			WithComponent(walleterr.LinkedDomainComponent)
	}

	var config Configuration
	if err = json.Unmarshal(raw, &config); err != nil {
		return nil, walleterr.NewMalformedInput(err).WithComponent(walleterr.LinkedDomainComponent)
	}

	return &config, nil
}

type validationErrors []gojsonschema.ResultError

func (e validationErrors) Error() string {
	var errMsg string

	for i, msg := range e {
		errMsg += msg.String()
		if i+1 < len(e) {
			errMsg += "; "
		}
	}

	return fmt.Sprintf("[%s]", errMsg)
}
