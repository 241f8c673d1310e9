/*
Copyright Avast Software. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package oidc4vci_test

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trustbloc/verifiedid-go/pkg/config"
	"github.com/trustbloc/verifiedid-go/pkg/jws"
	"github.com/trustbloc/verifiedid-go/pkg/networking"
	"github.com/trustbloc/verifiedid-go/pkg/oidc4vci"
	"github.com/trustbloc/verifiedid-go/pkg/processor"
	"github.com/trustbloc/verifiedid-go/pkg/requirement"
	"github.com/trustbloc/verifiedid-go/pkg/walleterr"
)

func TestProcessor_CanProcess(t *testing.T) {
	s := newIssuerServer(t)
	cfg, _ := s.configuration(t)
	p := oidc4vci.NewProcessor(cfg)

	assert.True(t, p.CanProcess(s.offer(map[string]interface{}{
		oidc4vci.GrantTypeAuthorizationCode: map[string]interface{}{},
	})))
	assert.True(t, p.CanProcess([]byte(`{"credential_issuer":"https://issuer.example.com",
		"credential_configuration_ids":["a"],"grants":{"authorization_code":{}}}`)))
	assert.False(t, p.CanProcess(map[string]interface{}{"credential_issuer": "https://issuer.example.com"}))
	assert.False(t, p.CanProcess("not json"))
	assert.False(t, p.CanProcess(42))
}

func TestProcessor_AuthorizationCode(t *testing.T) {
	s := newIssuerServer(t)
	cfg, _ := s.configuration(t)

	req, err := oidc4vci.NewProcessor(cfg).Process(context.Background(), s.offer(map[string]interface{}{
		oidc4vci.GrantTypeAuthorizationCode: map[string]interface{}{"authorization_server": s.url()},
	}))
	require.NoError(t, err)

	issuance, ok := req.(processor.IssuanceRequest)
	require.True(t, ok)

	assert.Equal(t, "Contoso Ltd.", issuance.Style().Requester)
	assert.Equal(t, "https://contoso.com/logo.png", issuance.Style().LogoURL)
	assert.Equal(t, "Employee", issuance.VerifiedIDStyle().Name)
	assert.Equal(t, "Contoso Ltd.", issuance.VerifiedIDStyle().Issuer)
	assert.False(t, issuance.RootOfTrust().Verified)

	token, ok := issuance.Requirement().(*requirement.AccessToken)
	require.True(t, ok)
	assert.True(t, token.Required)
	assert.Equal(t, s.url(), token.Configuration)
	assert.Equal(t, "employee", token.ResourceID)
	assert.Equal(t, "employee/.default", token.Scope)
	assert.False(t, issuance.IsSatisfied())

	_, err = issuance.Complete(context.Background())
	assert.True(t, walleterr.HasCode(err, walleterr.RequirementNotMet))

	token.Fulfill(accessToken)
	assert.True(t, issuance.IsSatisfied())

	vid, err := issuance.Complete(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "urn:uuid:credential-1", vid.ID())
	assert.Equal(t, "Employee", vid.Style().Name)

	require.Len(t, vid.Claims(), 1)
	assert.Equal(t, "First name", vid.Claims()[0].Label)

	require.Len(t, s.credentialCalls, 1)
	call := s.credentialCalls[0]
	assert.Equal(t, "Bearer "+accessToken, call.authorization)
	assert.Equal(t, networking.InteropProfileVersion, call.prefer)
	assert.Equal(t, configurationID, call.request.CredentialConfigurationID)
	assert.Equal(t, "session-1", call.request.IssuerSession)
	assert.Equal(t, oidc4vci.ProofTypeJWT, call.request.Proof.ProofType)

	proof, err := jws.Decode[oidc4vci.ProofClaims](call.request.Proof.JWT)
	require.NoError(t, err)
	assert.Equal(t, oidc4vci.ProofJWTType, proof.Header.Type)
	assert.Equal(t, holderDID+"#sign", proof.Header.KeyID)
	assert.Equal(t, s.url()+"/credential", proof.Claims.Audience)
	assert.Equal(t, holderDID, proof.Claims.Subject)
	assert.Equal(t, oidc4vci.AccessTokenHash(accessToken), proof.Claims.AccessTokenHash)
	assert.NotNil(t, proof.Claims.IssuedAt)

	require.NoError(t, issuance.Cancel(context.Background(), "declined"))
}

func TestProcessor_PreAuthorizedWithoutTxCode(t *testing.T) {
	s := newIssuerServer(t)
	cfg, _ := s.configuration(t)

	req, err := oidc4vci.NewProcessor(cfg).Process(context.Background(), s.offer(map[string]interface{}{
		oidc4vci.GrantTypePreAuthorizedCode: map[string]interface{}{"pre-authorized_code": preAuthCode},
	}))
	require.NoError(t, err)

	prefilled, ok := req.Requirement().(*requirement.PrefilledAccessToken)
	require.True(t, ok)
	assert.Equal(t, accessToken, prefilled.AccessToken)
	assert.True(t, req.IsSatisfied())

	require.Len(t, s.tokenRequests, 1)
	assert.Equal(t, oidc4vci.GrantTypePreAuthorizedCode, s.tokenRequests[0]["grant_type"])
	assert.Empty(t, s.tokenRequests[0]["tx_code"])

	vid, err := req.(processor.IssuanceRequest).Complete(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"VerifiableCredential", "EmployeeCredential"}, vid.Types())
}

func TestProcessor_PreAuthorizedWithTxCode(t *testing.T) {
	s := newIssuerServer(t)
	cfg, _ := s.configuration(t)

	req, err := oidc4vci.NewProcessor(cfg).Process(context.Background(), s.offer(map[string]interface{}{
		oidc4vci.GrantTypePreAuthorizedCode: map[string]interface{}{
			"pre-authorized_code": preAuthCode,
			"tx_code":             map[string]interface{}{"length": 5, "input_mode": "numeric"},
		},
	}))
	require.NoError(t, err)
	assert.Empty(t, s.tokenRequests)

	pin, ok := req.Requirement().(*oidc4vci.RetryablePinRequirement)
	require.True(t, ok)
	assert.Equal(t, 5, pin.PinLength())
	assert.Equal(t, "numeric", pin.PinType())
	assert.True(t, pin.IsRequired())
	assert.Equal(t, requirement.KindRetryablePin, pin.Kind())

	err = pin.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Pin has not been set.")

	err = pin.FulfillPin(context.Background(), "00000")
	require.Error(t, err)
	assert.True(t, walleterr.HasCode(err, walleterr.RequirementNotMet))
	assert.False(t, req.IsSatisfied())

	require.NoError(t, pin.FulfillPin(context.Background(), validTxCode))
	require.NoError(t, pin.Validate())
	assert.Equal(t, accessToken, pin.AccessToken())

	require.Len(t, s.tokenRequests, 2)
	assert.Equal(t, validTxCode, s.tokenRequests[1]["tx_code"])

	_, err = req.(processor.IssuanceRequest).Complete(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Bearer "+accessToken, s.credentialCalls[0].authorization)
}

func TestProcessor_BothGrants(t *testing.T) {
	s := newIssuerServer(t)
	cfg, _ := s.configuration(t)

	req, err := oidc4vci.NewProcessor(cfg).Process(context.Background(), s.offer(map[string]interface{}{
		oidc4vci.GrantTypePreAuthorizedCode: map[string]interface{}{"pre-authorized_code": preAuthCode},
		oidc4vci.GrantTypeAuthorizationCode: map[string]interface{}{},
	}))
	require.NoError(t, err)

	group, ok := req.Requirement().(*requirement.Group)
	require.True(t, ok)
	assert.Equal(t, requirement.OperatorAll, group.Operator)
	require.Len(t, group.Children(), 2)
	assert.Equal(t, requirement.KindAccessToken, group.Children()[0].Kind())
	assert.Equal(t, requirement.KindPrefilledAccessToken, group.Children()[1].Kind())
}

func TestProcessor_Errors(t *testing.T) {
	authorizationCode := map[string]interface{}{oidc4vci.GrantTypeAuthorizationCode: map[string]interface{}{}}

	tests := []struct {
		name    string
		offer   func(s *issuerServer) map[string]interface{}
		mutate  func(s *issuerServer, m map[string]interface{})
		code    walleterr.Code
		message string
	}{
		{
			name: "unknown configuration",
			offer: func(s *issuerServer) map[string]interface{} {
				o := s.offer(authorizationCode)
				o["credential_configuration_ids"] = []interface{}{"unknown"}

				return o
			},
			code:    walleterr.CredentialMetadataMalformed,
			message: "Request does not contain expected credential configuration.",
		},
		{
			name: "authorization server not listed",
			offer: func(s *issuerServer) map[string]interface{} {
				return s.offer(map[string]interface{}{
					oidc4vci.GrantTypeAuthorizationCode: map[string]interface{}{
						"authorization_server": "https://login.other.com",
					},
				})
			},
			code:    walleterr.CredentialMetadataMalformed,
			message: "Authorization servers in Credential Metadata does not contain https://login.other.com",
		},
		{
			name:   "missing signed metadata",
			mutate: func(_ *issuerServer, m map[string]interface{}) { delete(m, "signed_metadata") },
			code:   walleterr.MissingRequiredProperty,
		},
		{
			name: "signed metadata not a token",
			mutate: func(_ *issuerServer, m map[string]interface{}) {
				m["signed_metadata"] = "not-a-token"
			},
			code:    walleterr.SignedMetadataTokenMalformed,
			message: "Signed Metadata is not a JSON Web Token.",
		},
		{
			name: "signed metadata subject mismatch",
			mutate: func(s *issuerServer, m map[string]interface{}) {
				claims := s.validSignedMetadataClaims()
				claims.Subject = "https://evil.com"
				m["signed_metadata"] = s.signedMetadata(s.t, claims)
			},
			code:    walleterr.SignedMetadataTokenMalformed,
			message: "Signed metadata is not valid.",
		},
		{
			name: "missing scope",
			mutate: func(_ *issuerServer, m map[string]interface{}) {
				configs := m["credential_configurations_supported"].(map[string]interface{})
				delete(configs[configurationID].(map[string]interface{}), "scope")
			},
			code:    walleterr.CredentialMetadataMalformed,
			message: "Credential Configuration does not contain scope value.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newIssuerServer(t)
			cfg, _ := s.configuration(t)

			if tt.mutate != nil {
				s.setMetadata(func(m map[string]interface{}) { tt.mutate(s, m) })
			}

			offer := s.offer(authorizationCode)
			if tt.offer != nil {
				offer = tt.offer(s)
			}

			_, err := oidc4vci.NewProcessor(cfg).Process(context.Background(), offer)
			require.Error(t, err)
			assert.True(t, walleterr.HasCode(err, tt.code), err.Error())

			if tt.message != "" {
				assert.True(t, strings.Contains(err.Error(), tt.message), err.Error())
			}
		})
	}

	t.Run("metadata not found", func(t *testing.T) {
		s := newIssuerServer(t)
		cfg, _ := s.configuration(t)
		s.mu.Lock()
		s.metadata = nil
		s.mu.Unlock()

		_, err := oidc4vci.NewProcessor(cfg).Process(context.Background(), s.offer(authorizationCode))
		require.Error(t, err)
		assert.True(t, walleterr.HasCode(err, walleterr.NetworkingError))
	})

	t.Run("pre-authorized code rejected", func(t *testing.T) {
		s := newIssuerServer(t)
		cfg, _ := s.configuration(t)

		_, err := oidc4vci.NewProcessor(cfg).Process(context.Background(), s.offer(map[string]interface{}{
			oidc4vci.GrantTypePreAuthorizedCode: map[string]interface{}{"pre-authorized_code": "wrong"},
		}))
		require.Error(t, err)
		assert.True(t, walleterr.HasCode(err, walleterr.NetworkingError))
	})
}

type styleExtension struct{}

func (styleExtension) Parse(claims map[string]interface{}, r *processor.PartialRequest) *processor.PartialRequest {
	if session, ok := claims["issuer_session"].(string); ok {
		r.Style.Requester = "extended " + session
	}

	return r
}

func TestProcessor_Extensions(t *testing.T) {
	offer := func(s *issuerServer) map[string]interface{} {
		return s.offer(map[string]interface{}{oidc4vci.GrantTypeAuthorizationCode: map[string]interface{}{}})
	}

	t.Run("disabled", func(t *testing.T) {
		s := newIssuerServer(t)
		cfg, _ := s.configuration(t)

		req, err := oidc4vci.NewProcessor(cfg, oidc4vci.WithExtensions(styleExtension{})).
			Process(context.Background(), offer(s))
		require.NoError(t, err)
		assert.Equal(t, "Contoso Ltd.", req.Style().Requester)
	})

	t.Run("enabled", func(t *testing.T) {
		s := newIssuerServer(t)
		cfg, _ := s.configuration(t, config.WithFeatureFlags(config.ProcessorExtensionSupport))

		req, err := oidc4vci.NewProcessor(cfg, oidc4vci.WithExtensions(styleExtension{})).
			Process(context.Background(), offer(s))
		require.NoError(t, err)
		assert.Equal(t, "extended session-1", req.Style().Requester)
	})
}
