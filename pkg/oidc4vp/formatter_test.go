/*
Copyright Avast Software. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package oidc4vp_test

import (
	"crypto/sha512"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trustbloc/verifiedid-go/pkg/config"
	"github.com/trustbloc/verifiedid-go/pkg/jws"
	"github.com/trustbloc/verifiedid-go/pkg/mapping"
	"github.com/trustbloc/verifiedid-go/pkg/oidc4vp"
	"github.com/trustbloc/verifiedid-go/pkg/requirement"
	"github.com/trustbloc/verifiedid-go/pkg/walleterr"
)

func TestHashPin(t *testing.T) {
	assert.Equal(t, "6jKWHb1XnvVpfDZ/kmeSHuB/FNd/stT7lQDUIh1hVpU=", oidc4vp.HashPin("1234", "salt"))
}

func TestNonceComputer(t *testing.T) {
	n := oidc4vp.NewNonceComputer()

	first, err := n.Nonce(holderDID)
	require.NoError(t, err)

	second, err := n.Nonce(holderDID)
	require.NoError(t, err)

	assert.NotEqual(t, first, second)

	parts := strings.Split(first, ".")
	require.Len(t, parts, 2)

	sum := sha512.Sum512([]byte(holderDID))
	assert.Equal(t, jws.EncodeSegment(sum[:]), parts[1])

	random, err := jws.DecodeSegment(parts[0])
	require.NoError(t, err)
	assert.Len(t, random, 32)
}

func TestFormatter(t *testing.T) {
	s := newVerifierServer(t)
	_, holder := s.configuration(t)

	f := oidc4vp.NewFormatter(holder.signer, &config.Identifier{DID: holderDID, KeyID: "sign", KeyRef: holder.keyRef})

	t.Run("issuance response without attestations", func(t *testing.T) {
		compact, err := f.IssuanceResponse(&oidc4vp.IssuanceResponse{
			ContractURL: "https://contract",
			Audience:    "https://issue",
			Pin:         &oidc4vp.PinHash{Hash: "h", Salt: "s"},
		})
		require.NoError(t, err)

		token, err := jws.Decode[oidc4vp.IssuanceResponseClaims](compact)
		require.NoError(t, err)
		assert.Nil(t, token.Claims.Attestations)
		assert.Nil(t, token.Claims.Pin, "pin is only sent with an id token hint")
		assert.NotEmpty(t, token.Claims.Subject)
		assert.NotEmpty(t, token.Claims.JTI)
	})

	t.Run("issuance response wraps presentations", func(t *testing.T) {
		compact, err := f.IssuanceResponse(&oidc4vp.IssuanceResponse{
			Audience:      "https://issue",
			IssuerDID:     issuerDID,
			Presentations: map[string]string{employeeType: s.credential(t, "urn:uuid:1", employeeType)},
			AccessTokens:  map[string]string{"https://login": "at"},
		})
		require.NoError(t, err)

		token, err := jws.Decode[oidc4vp.IssuanceResponseClaims](compact)
		require.NoError(t, err)
		require.NotNil(t, token.Claims.Attestations)
		assert.Equal(t, "at", token.Claims.Attestations.AccessTokens["https://login"])

		vp, err := jws.Decode[oidc4vp.VerifiablePresentationClaims](token.Claims.Attestations.Presentations[employeeType])
		require.NoError(t, err)
		assert.Equal(t, issuerDID, vp.Claims.Audience)
		assert.Len(t, vp.Claims.VP.VerifiableCredential, 1)
	})

	t.Run("exchange request", func(t *testing.T) {
		compact, err := f.ExchangeRequest("https://exchange", "did:ion:recipient", s.verifiedID(t, "urn:uuid:2",
			employeeType))
		require.NoError(t, err)

		token, err := jws.Decode[oidc4vp.ExchangeRequestClaims](compact)
		require.NoError(t, err)
		assert.Equal(t, holderDID, token.Claims.DID)
		assert.Equal(t, "did:ion:recipient", token.Claims.Recipient)
		assert.NotEmpty(t, token.Claims.VC)
	})
}

func TestSerializer(t *testing.T) {
	s := newVerifierServer(t)
	_, holder := s.configuration(t)

	f := oidc4vp.NewFormatter(holder.signer, &config.Identifier{DID: holderDID, KeyID: "sign", KeyRef: holder.keyRef})

	raw := func(claims *mapping.PresentationRequestClaims) *oidc4vp.RawRequest {
		return &oidc4vp.RawRequest{Claims: claims}
	}

	complete := &mapping.PresentationRequestClaims{
		ClientID: verifierDID,
		State:    requestState,
		Nonce:    requestNonce,
		Claims: &mapping.RequestedClaims{VPToken: mapping.VPTokens{{
			PresentationDefinition: &mapping.PresentationDefinition{ID: definitionID},
		}}},
	}

	t.Run("missing properties", func(t *testing.T) {
		noNonce := *complete
		noNonce.Nonce = ""

		_, err := oidc4vp.NewSerializer(f, raw(&noNonce))
		assert.True(t, walleterr.HasCode(err, walleterr.MissingRequiredProperty))

		noDefinition := *complete
		noDefinition.Claims = nil

		_, err = oidc4vp.NewSerializer(f, raw(&noDefinition))
		assert.True(t, walleterr.HasCode(err, walleterr.MissingRequiredProperty))
	})

	t.Run("plain verified id is not serializable", func(t *testing.T) {
		serializer, err := oidc4vp.NewSerializer(f, raw(complete))
		require.NoError(t, err)

		err = serializer.Serialize(&requirement.VerifiedID{Selected: s.verifiedID(t, "urn:uuid:3", employeeType)})
		assert.True(t, walleterr.HasCode(err, walleterr.UnsupportedSerialization))
	})

	t.Run("form", func(t *testing.T) {
		form, err := (&oidc4vp.PresentationResponse{IDToken: "id", VPTokens: []string{"a", "b"}}).Form()
		require.NoError(t, err)
		assert.Equal(t, `["a","b"]`, form.Get("vp_token"))
		assert.False(t, form.Has("state"))
	})
}
