/*
Copyright Avast Software. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package oidc4vci_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"

	"github.com/trustbloc/verifiedid-go/pkg/config"
	"github.com/trustbloc/verifiedid-go/pkg/crypto"
	"github.com/trustbloc/verifiedid-go/pkg/did"
	"github.com/trustbloc/verifiedid-go/pkg/jws"
	"github.com/trustbloc/verifiedid-go/pkg/networking"
	"github.com/trustbloc/verifiedid-go/pkg/oidc4vci"
	"github.com/trustbloc/verifiedid-go/pkg/walleterr"
)

const (
	issuerDID       = "did:ion:issuer"
	holderDID       = "did:ion:holder"
	configurationID = "EmployeeCredential_jwt_vc_json"
	preAuthCode     = "pre-auth-code"
	validTxCode     = "12345"
	accessToken     = "access-token-1"
)

type staticResolver struct {
	docs map[string]*did.Document
}

func (r *staticResolver) Resolve(_ context.Context, d string) (*did.Document, error) {
	doc, ok := r.docs[d]
	if !ok {
		return nil, walleterr.NewNetworkingError("not found", http.StatusNotFound, false, nil)
	}

	return doc, nil
}

type keyPair struct {
	signer *crypto.Secp256k1Signer
	keyRef crypto.KeyReference
	jwk    *jws.JWK
}

func newKeyPair(t *testing.T, keyID string) *keyPair {
	t.Helper()

	store := crypto.NewInMemoryKeyStore()

	ref, err := store.Generate()
	require.NoError(t, err)

	signer := crypto.NewSecp256k1Signer(store, nil)

	jwk, err := signer.PublicJWK(ref, keyID)
	require.NoError(t, err)

	return &keyPair{signer: signer, keyRef: ref, jwk: jwk}
}

func (k *keyPair) sign(t *testing.T, header jws.Header, claims interface{}) string {
	t.Helper()

	token, err := jws.New(header, claims)
	require.NoError(t, err)
	require.NoError(t, token.Sign(k.signer, k.keyRef))

	compact, err := token.Serialize()
	require.NoError(t, err)

	return compact
}

// issuerServer plays credential issuer and authorization server.
type issuerServer struct {
	t   *testing.T
	srv *httptest.Server
	key *keyPair

	mu              sync.Mutex
	metadata        map[string]interface{}
	openIDConfig    map[string]interface{}
	tokenRequests   []map[string]string
	credentialCalls []credentialCall
}

type credentialCall struct {
	authorization string
	prefer        string
	request       oidc4vci.CredentialRequest
}

func newIssuerServer(t *testing.T) *issuerServer {
	t.Helper()

	s := &issuerServer{t: t, key: newKeyPair(t, "sig_1")}

	e := echo.New()
	e.GET(oidc4vci.WellKnownCredentialIssuerPath, func(c echo.Context) error {
		s.mu.Lock()
		defer s.mu.Unlock()

		if s.metadata == nil {
			return c.NoContent(http.StatusNotFound)
		}

		return c.JSON(http.StatusOK, s.metadata)
	})
	e.GET("/.well-known/openid-configuration", func(c echo.Context) error {
		s.mu.Lock()
		defer s.mu.Unlock()

		return c.JSON(http.StatusOK, s.openIDConfig)
	})
	e.POST("/token", func(c echo.Context) error {
		form := map[string]string{
			"grant_type":          c.FormValue("grant_type"),
			"pre-authorized_code": c.FormValue("pre-authorized_code"),
			"tx_code":             c.FormValue("tx_code"),
		}

		s.mu.Lock()
		s.tokenRequests = append(s.tokenRequests, form)
		s.mu.Unlock()

		if form["pre-authorized_code"] != preAuthCode {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid_grant"})
		}

		if form["tx_code"] != "" && form["tx_code"] != validTxCode {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid_grant"})
		}

		return c.JSON(http.StatusOK, map[string]interface{}{
			"access_token": accessToken,
			"token_type":   "Bearer",
			"expires_in":   3600,
		})
	})
	e.POST("/credential", func(c echo.Context) error {
		call := credentialCall{
			authorization: c.Request().Header.Get("Authorization"),
			prefer:        c.Request().Header.Get(networking.PreferHeader),
		}

		if err := json.NewDecoder(c.Request().Body).Decode(&call.request); err != nil {
			return c.NoContent(http.StatusBadRequest)
		}

		s.mu.Lock()
		s.credentialCalls = append(s.credentialCalls, call)
		s.mu.Unlock()

		return c.JSON(http.StatusOK, map[string]string{"credential": s.credential(t)})
	})

	s.srv = httptest.NewServer(e)
	t.Cleanup(s.srv.Close)

	s.openIDConfig = map[string]interface{}{
		"issuer":                s.srv.URL,
		"token_endpoint":        s.srv.URL + "/token",
		"grant_types_supported": []string{oidc4vci.GrantTypePreAuthorizedCode, oidc4vci.GrantTypeAuthorizationCode},
	}
	s.metadata = s.defaultMetadata(t)

	return s
}

func (s *issuerServer) url() string {
	return s.srv.URL
}

func (s *issuerServer) doc() *did.Document {
	return &did.Document{
		ID: issuerDID,
		VerificationMethod: []did.VerificationMethod{
			{ID: "#sig_1", Type: "EcdsaSecp256k1VerificationKey2019", PublicKeyJWK: s.key.jwk},
		},
	}
}

func (s *issuerServer) signedMetadata(t *testing.T, claims oidc4vci.SignedMetadataClaims) string {
	t.Helper()

	return s.key.sign(t, jws.Header{Algorithm: jws.AlgorithmES256K, KeyID: issuerDID + "#sig_1", Type: jws.TypeJWT},
		claims)
}

func (s *issuerServer) validSignedMetadataClaims() oidc4vci.SignedMetadataClaims {
	return oidc4vci.SignedMetadataClaims{
		TimeClaims: jws.NewTimeClaims(time.Now(), time.Hour),
		Subject:    s.srv.URL,
		Issuer:     issuerDID,
	}
}

func (s *issuerServer) defaultMetadata(t *testing.T) map[string]interface{} {
	t.Helper()

	return map[string]interface{}{
		"credential_issuer":     s.srv.URL,
		"authorization_servers": []string{s.srv.URL},
		"credential_endpoint":   s.srv.URL + "/credential",
		"signed_metadata":       s.signedMetadata(t, s.validSignedMetadataClaims()),
		"display": []map[string]interface{}{
			{"name": "Contoso Ltd.", "locale": "en-US", "logo": map[string]string{"uri": "https://contoso.com/logo.png"}},
			{"name": "Contoso GmbH", "locale": "de-DE"},
		},
		"credential_configurations_supported": map[string]interface{}{
			configurationID: map[string]interface{}{
				"format": "jwt_vc_json",
				"scope":  "employee",
				"display": []map[string]interface{}{
					{"name": "Employee", "locale": "en-US", "background_color": "#000000"},
				},
				"credential_definition": map[string]interface{}{
					"type": []string{"VerifiableCredential", "EmployeeCredential"},
					"credential_subject": map[string]interface{}{
						"vc.credentialSubject.firstName": map[string]interface{}{
							"display": []map[string]string{{"name": "First name", "locale": "en-US"}},
						},
					},
				},
			},
		},
	}
}

func (s *issuerServer) setMetadata(mutate func(m map[string]interface{})) {
	s.mu.Lock()
	defer s.mu.Unlock()

	mutate(s.metadata)
}

func (s *issuerServer) credential(t *testing.T) string {
	t.Helper()

	timeClaims := jws.NewTimeClaims(time.Now(), time.Hour)

	return s.key.sign(t, jws.Header{Algorithm: jws.AlgorithmES256K, KeyID: issuerDID + "#sig_1", Type: jws.TypeJWT},
		map[string]interface{}{
			"jti": "urn:uuid:credential-1",
			"iss": issuerDID,
			"sub": holderDID,
			"iat": *timeClaims.IssuedAt,
			"exp": *timeClaims.Expiration,
			"vc": map[string]interface{}{
				"type":              []string{"VerifiableCredential", "EmployeeCredential"},
				"credentialSubject": map[string]string{"firstName": "Alice"},
			},
		})
}

func (s *issuerServer) offer(grants map[string]interface{}) map[string]interface{} {
	return map[string]interface{}{
		"credential_issuer":            s.srv.URL,
		"issuer_session":               "session-1",
		"credential_configuration_ids": []interface{}{configurationID},
		"grants":                       grants,
	}
}

func (s *issuerServer) configuration(t *testing.T, opts ...config.Opt) (*config.Configuration, *keyPair) {
	t.Helper()

	holder := newKeyPair(t, "sign")

	cfg, err := config.New(append([]config.Opt{
		config.WithSigner(holder.signer),
		config.WithIdentifier(&config.Identifier{DID: holderDID, KeyID: "sign", KeyRef: holder.keyRef}),
		config.WithNetworking(networking.NewHTTPClient(networking.WithRetry(0, 0))),
		config.WithDIDResolver(&staticResolver{docs: map[string]*did.Document{issuerDID: s.doc()}}),
		config.WithLocales("en-US"),
	}, opts...)...)
	require.NoError(t, err)

	return cfg, holder
}
