/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package did

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/samber/lo"

	"github.com/trustbloc/verifiedid-go/pkg/jws"
)

// LinkedDomainsServiceType is the service type pointing at the domains a DID controls.
const LinkedDomainsServiceType = "LinkedDomains"

// Document is a resolved DID document.
type Document struct {
	Context            interface{}          `json:"@context,omitempty"`
	ID                 string               `json:"id"`
	VerificationMethod []VerificationMethod `json:"verificationMethod,omitempty"`
	Service            []Service            `json:"service,omitempty"`
	Authentication     []string             `json:"authentication,omitempty"`
}

// VerificationMethod is a public key listed in a DID document.
type VerificationMethod struct {
	ID           string   `json:"id"`
	Type         string   `json:"type"`
	Controller   string   `json:"controller,omitempty"`
	PublicKeyJWK *jws.JWK `json:"publicKeyJwk,omitempty"`
	Purposes     []string `json:"purposes,omitempty"`
}

// Service is a service endpoint entry.
type Service struct {
	ID              string          `json:"id"`
	Type            string          `json:"type"`
	ServiceEndpoint ServiceEndpoint `json:"serviceEndpoint"`
}

// ServiceEndpoint holds the origins of a service. On the wire it is either a URL,
// a list of URLs or an object with an origins list.
type ServiceEndpoint struct {
	Origins []string `json:"origins"`
}

func (s *ServiceEndpoint) UnmarshalJSON(b []byte) error {
	var single string
	if err := json.Unmarshal(b, &single); err == nil {
		s.Origins = []string{single}

		return nil
	}

	var list []string
	if err := json.Unmarshal(b, &list); err == nil {
		s.Origins = list

		return nil
	}

	var obj struct {
		Origins []string `json:"origins"`
	}

	if err := json.Unmarshal(b, &obj); err != nil {
		return fmt.Errorf("unsupported service endpoint: %w", err)
	}

	s.Origins = obj.Origins

	return nil
}

// JWK returns the key of the first verification method whose id ends with keyID.
// Both fragment ("#key-1", "key-1") and absolute ("did:x:y#key-1") forms match.
func (d *Document) JWK(keyID string) (*jws.JWK, bool) {
	if keyID == "" {
		return nil, false
	}

	fragment := keyID
	if i := strings.LastIndex(keyID, "#"); i >= 0 {
		fragment = keyID[i+1:]
	}

	vm, ok := lo.Find(d.VerificationMethod, func(vm VerificationMethod) bool {
		return strings.HasSuffix(vm.ID, "#"+fragment) || vm.ID == fragment
	})
	if !ok || vm.PublicKeyJWK == nil {
		return nil, false
	}

	return vm.PublicKeyJWK, true
}

// HasKeys reports whether the document carries any public key.
func (d *Document) HasKeys() bool {
	return lo.ContainsBy(d.VerificationMethod, func(vm VerificationMethod) bool {
		return vm.PublicKeyJWK != nil
	})
}

// LinkedDomainsService returns the first LinkedDomains service.
func (d *Document) LinkedDomainsService() (*Service, bool) {
	svc, ok := lo.Find(d.Service, func(s Service) bool {
		return s.Type == LinkedDomainsServiceType
	})
	if !ok {
		return nil, false
	}

	return &svc, true
}
