/*
Copyright Avast Software. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package oidc4vp_test

import (
	"context"
	"encoding/json"
	"io"
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
	"github.com/trustbloc/verifiedid-go/pkg/oidc4vp"
	"github.com/trustbloc/verifiedid-go/pkg/verifiedid"
	"github.com/trustbloc/verifiedid-go/pkg/walleterr"
)

const (
	verifierDID  = "did:ion:verifier"
	issuerDID    = "did:ion:issuer"
	holderDID    = "did:ion:holder"
	employeeType = "VerifiedEmployee"
	requestState = "state-1"
	requestNonce = "nonce-1"
	definitionID = "definition-1"
	idTokenHint  = "header.payload.signature"
	pinSalt      = "salt"
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

func (k *keyPair) sign(t *testing.T, kid string, claims interface{}) string {
	t.Helper()

	token, err := jws.New(jws.Header{Algorithm: jws.AlgorithmES256K, KeyID: kid, Type: jws.TypeJWT}, claims)
	require.NoError(t, err)
	require.NoError(t, token.Sign(k.signer, k.keyRef))

	compact, err := token.Serialize()
	require.NoError(t, err)

	return compact
}

func (k *keyPair) doc(id string) *did.Document {
	return &did.Document{
		ID: id,
		VerificationMethod: []did.VerificationMethod{
			{ID: "#sig_1", Type: "EcdsaSecp256k1VerificationKey2019", PublicKeyJWK: k.jwk},
		},
	}
}

// verifierServer plays verifier, contract host and issuance service.
type verifierServer struct {
	srv    *httptest.Server
	key    *keyPair
	issuer *keyPair

	mu            sync.Mutex
	request       string
	requestPrefer string
	contract      string
	presentations []map[string][]string
	issuances     []issuanceCall
	completions   []oidc4vp.IssuanceCompletionResponse
}

type issuanceCall struct {
	contentType string
	token       string
}

func newVerifierServer(t *testing.T) *verifierServer {
	t.Helper()

	s := &verifierServer{key: newKeyPair(t, "sig_1"), issuer: newKeyPair(t, "sig_1")}

	e := echo.New()
	e.GET("/request", func(c echo.Context) error {
		s.mu.Lock()
		defer s.mu.Unlock()

		s.requestPrefer = c.Request().Header.Get(networking.PreferHeader)

		return c.String(http.StatusOK, s.request)
	})
	e.POST("/callback", func(c echo.Context) error {
		form, err := c.FormParams()
		if err != nil {
			return c.NoContent(http.StatusBadRequest)
		}

		s.mu.Lock()
		s.presentations = append(s.presentations, form)
		s.mu.Unlock()

		return c.NoContent(http.StatusOK)
	})
	e.GET("/contract", func(c echo.Context) error {
		s.mu.Lock()
		defer s.mu.Unlock()

		if s.contract == "" {
			return c.NoContent(http.StatusNotFound)
		}

		return c.String(http.StatusOK, s.contract)
	})
	e.POST("/issue", func(c echo.Context) error {
		body, err := io.ReadAll(c.Request().Body)
		if err != nil {
			return c.NoContent(http.StatusBadRequest)
		}

		s.mu.Lock()
		s.issuances = append(s.issuances, issuanceCall{
			contentType: c.Request().Header.Get(echo.HeaderContentType),
			token:       string(body),
		})
		s.mu.Unlock()

		return c.JSON(http.StatusOK, map[string]string{"vc": s.credential(t, "urn:uuid:issued-1", employeeType)})
	})
	e.POST("/completion", func(c echo.Context) error {
		var resp oidc4vp.IssuanceCompletionResponse
		if err := json.NewDecoder(c.Request().Body).Decode(&resp); err != nil {
			return c.NoContent(http.StatusBadRequest)
		}

		s.mu.Lock()
		s.completions = append(s.completions, resp)
		s.mu.Unlock()

		return c.NoContent(http.StatusOK)
	})

	s.srv = httptest.NewServer(e)
	t.Cleanup(s.srv.Close)

	return s
}

func (s *verifierServer) url(path string) string {
	return s.srv.URL + path
}

func (s *verifierServer) requestURL() string {
	return oidc4vp.Scheme + "://?request_uri=" + s.url("/request")
}

func (s *verifierServer) setRequest(t *testing.T, claims map[string]interface{}) {
	t.Helper()

	s.mu.Lock()
	defer s.mu.Unlock()

	s.request = s.key.sign(t, verifierDID+"#sig_1", claims)
}

func (s *verifierServer) setContract(contract string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.contract = contract
}

func (s *verifierServer) presentationCalls() []map[string][]string {
	s.mu.Lock()
	defer s.mu.Unlock()

	return append([]map[string][]string(nil), s.presentations...)
}

func (s *verifierServer) issuanceCalls() []issuanceCall {
	s.mu.Lock()
	defer s.mu.Unlock()

	return append([]issuanceCall(nil), s.issuances...)
}

func (s *verifierServer) completionCalls() []oidc4vp.IssuanceCompletionResponse {
	s.mu.Lock()
	defer s.mu.Unlock()

	return append([]oidc4vp.IssuanceCompletionResponse(nil), s.completions...)
}

func (s *verifierServer) credential(t *testing.T, id, credentialType string) string {
	t.Helper()

	timeClaims := jws.NewTimeClaims(time.Now(), time.Hour)

	return s.issuer.sign(t, issuerDID+"#sig_1", map[string]interface{}{
		"jti": id,
		"iss": issuerDID,
		"sub": holderDID,
		"iat": *timeClaims.IssuedAt,
		"exp": *timeClaims.Expiration,
		"vc": map[string]interface{}{
			"type":              []string{"VerifiableCredential", credentialType},
			"credentialSubject": map[string]string{"firstName": "Alice"},
		},
	})
}

func (s *verifierServer) verifiedID(t *testing.T, id, credentialType string) verifiedid.VerifiedID {
	t.Helper()

	vid, err := verifiedid.NewFromContract(s.credential(t, id, credentialType), []byte(contractJSON(s)))
	require.NoError(t, err)

	return vid
}

func (s *verifierServer) presentationClaims(descriptors ...map[string]interface{}) map[string]interface{} {
	timeClaims := jws.NewTimeClaims(time.Now(), time.Hour)

	return map[string]interface{}{
		"client_id":     verifierDID,
		"redirect_uri":  s.url("/callback"),
		"response_type": "id_token",
		"response_mode": "post",
		"state":         requestState,
		"nonce":         requestNonce,
		"iat":           *timeClaims.IssuedAt,
		"exp":           *timeClaims.Expiration,
		"registration":  map[string]interface{}{"client_name": "Contoso Verifier", "logo_uri": "https://l"},
		"claims": map[string]interface{}{
			"vp_token": map[string]interface{}{
				"presentation_definition": map[string]interface{}{
					"id":                definitionID,
					"input_descriptors": descriptors,
				},
			},
		},
	}
}

func (s *verifierServer) issuanceClaims() map[string]interface{} {
	claims := s.presentationClaims(descriptor("employee", employeeType, s.url("/contract")))
	claims["prompt"] = "create"
	claims["redirect_uri"] = s.url("/completion")
	claims["id_token_hint"] = idTokenHint
	claims["pin"] = map[string]interface{}{"length": 4, "type": "numeric", "salt": pinSalt}

	return claims
}

func descriptor(id, credentialType string, contracts ...string) map[string]interface{} {
	issuance := make([]map[string]string, 0, len(contracts))
	for _, c := range contracts {
		issuance = append(issuance, map[string]string{"manifest": c})
	}

	return map[string]interface{}{
		"id":       id,
		"schema":   []map[string]string{{"uri": credentialType}},
		"issuance": issuance,
	}
}

func contractJSON(s *verifierServer) string {
	b, _ := json.Marshal(map[string]interface{}{
		"id": "contract-1",
		"display": map[string]interface{}{
			"card": map[string]interface{}{
				"title":           "Verified Employee",
				"issuedBy":        "Contoso",
				"backgroundColor": "#000000",
			},
			"claims": map[string]interface{}{
				"vc.credentialSubject.firstName": map[string]string{"type": "String", "label": "First name"},
			},
		},
		"input": map[string]interface{}{
			"id":               "input-1",
			"credentialIssuer": s.url("/issue"),
			"issuer":           issuerDID,
			"attestations": map[string]interface{}{
				"idTokens": []map[string]interface{}{{
					"configuration": oidc4vp.SelfIssued,
					"client_id":     "client",
					"redirect_uri":  "https://redirect",
					"required":      true,
				}},
				"selfIssued": map[string]interface{}{
					"claims": []map[string]interface{}{{"claim": "name", "required": true}},
				},
			},
		},
	})

	return string(b)
}

func (s *verifierServer) configuration(t *testing.T, opts ...config.Opt) (*config.Configuration, *keyPair) {
	t.Helper()

	holder := newKeyPair(t, "sign")

	cfg, err := config.New(append([]config.Opt{
		config.WithSigner(holder.signer),
		config.WithIdentifier(&config.Identifier{DID: holderDID, KeyID: "sign", KeyRef: holder.keyRef}),
		config.WithNetworking(networking.NewHTTPClient(networking.WithRetry(0, 0))),
		config.WithDIDResolver(&staticResolver{docs: map[string]*did.Document{
			verifierDID: s.key.doc(verifierDID),
			issuerDID:   s.issuer.doc(issuerDID),
		}}),
	}, opts...)...)
	require.NoError(t, err)

	return cfg, holder
}
