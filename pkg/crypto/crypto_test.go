/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package crypto

import (
	gocrypto "crypto"
	"crypto/ecdsa"
	"crypto/ed25519"
	"crypto/elliptic"
	"crypto/rand"
	"strings"
	"testing"
	"time"

	"github.com/go-jose/go-jose/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trustbloc/verifiedid-go/pkg/jws"
)

type countingMetrics struct {
	calls int
}

func (m *countingMetrics) SignTime(time.Duration) {
	m.calls++
}

func TestSecp256k1_SignVerify(t *testing.T) {
	store := NewInMemoryKeyStore()

	ref, err := store.Generate()
	require.NoError(t, err)

	m := &countingMetrics{}
	signer := NewSecp256k1Signer(store, m)

	message := []byte("header.claims")

	signature, err := signer.Sign(message, ref)
	require.NoError(t, err)
	require.Len(t, signature, 64)
	require.Equal(t, 1, m.calls)

	jwk, err := signer.PublicJWK(ref, "did:test:holder#key-1")
	require.NoError(t, err)
	require.Equal(t, CurveSecp256k1, jwk.Curve)
	require.Equal(t, "did:test:holder#key-1", jwk.KeyID)
	require.Len(t, jwk.X, 32)
	require.Len(t, jwk.Y, 32)
	require.Nil(t, jwk.D)

	verifier := &Secp256k1Verifier{}

	ok, err := verifier.Verify(signature, message, jwk)
	require.NoError(t, err)
	require.True(t, ok)

	ok, err = verifier.Verify(signature, []byte("header.other"), jwk)
	require.NoError(t, err)
	require.False(t, ok)

	ok, err = verifier.Verify(signature[:10], message, jwk)
	require.NoError(t, err)
	require.False(t, ok)

	t.Run("through token codec", func(t *testing.T) {
		token, err := jws.New(jws.Header{Algorithm: jws.AlgorithmES256K, KeyID: jwk.KeyID}, map[string]string{"sub": "a"})
		require.NoError(t, err)
		require.NoError(t, token.Sign(signer, ref))

		compact, err := token.Serialize()
		require.NoError(t, err)

		decoded, err := jws.Decode[map[string]string](compact)
		require.NoError(t, err)

		ok, err := decoded.Verify(NewMultiVerifier(), jwk)
		require.NoError(t, err)
		require.True(t, ok)
	})
}

func TestSecp256k1_Errors(t *testing.T) {
	store := NewInMemoryKeyStore()
	signer := NewSecp256k1Signer(store, nil)

	_, err := signer.Sign([]byte("msg"), "unknown")
	require.ErrorContains(t, err, "not found")

	_, err = signer.PublicJWK("unknown", "kid")
	require.ErrorContains(t, err, "not found")

	verifier := &Secp256k1Verifier{}

	_, err = verifier.Verify(make([]byte, 64), []byte("msg"), nil)
	require.Error(t, err)

	_, err = verifier.Verify(make([]byte, 64), []byte("msg"), &jws.JWK{Curve: CurveP256})
	require.ErrorContains(t, err, "unsupported curve")

	_, err = verifier.Verify(make([]byte, 64), []byte("msg"), &jws.JWK{Curve: CurveSecp256k1, X: []byte{1}, Y: []byte{2}})
	require.ErrorContains(t, err, "parse secp256k1 public key")
}

func TestInMemoryKeyStore_Import(t *testing.T) {
	store := NewInMemoryKeyStore()
	store.Import("imported", []byte{
		0x1d, 0x2c, 0x3b, 0x4a, 0x59, 0x68, 0x77, 0x86, 0x95, 0xa4, 0xb3, 0xc2, 0xd1, 0xe0, 0xf1, 0x02,
		0x13, 0x24, 0x35, 0x46, 0x57, 0x68, 0x79, 0x8a, 0x9b, 0xac, 0xbd, 0xce, 0xdf, 0xe1, 0xf2, 0x03,
	})

	signer := NewSecp256k1Signer(store, nil)

	first, err := signer.PublicJWK("imported", "")
	require.NoError(t, err)

	second, err := signer.PublicJWK("imported", "")
	require.NoError(t, err)
	require.Equal(t, first, second)
}

func TestJOSEVerifier(t *testing.T) {
	t.Run("ES256", func(t *testing.T) {
		priv, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
		require.NoError(t, err)

		message, signature := signWithJOSE(t, jose.ES256, priv)

		jwk := &jws.JWK{KeyType: KeyTypeEC, Curve: CurveP256, X: priv.X.Bytes(), Y: priv.Y.Bytes()}

		ok, err := NewMultiVerifier().Verify(signature, message, jwk)
		require.NoError(t, err)
		require.True(t, ok)

		signature[0] ^= 0xff

		ok, err = NewMultiVerifier().Verify(signature, message, jwk)
		require.NoError(t, err)
		require.False(t, ok)
	})

	t.Run("EdDSA", func(t *testing.T) {
		pub, priv, err := ed25519.GenerateKey(rand.Reader)
		require.NoError(t, err)

		message, signature := signWithJOSE(t, jose.EdDSA, priv)

		ok, err := (&JOSEVerifier{}).Verify(signature, message, &jws.JWK{KeyType: KeyTypeOKP, Curve: CurveEd25519, X: pub})
		require.NoError(t, err)
		require.True(t, ok)
	})

	t.Run("errors", func(t *testing.T) {
		_, err := (&JOSEVerifier{}).Verify([]byte{1}, []byte("a.b"), &jws.JWK{Curve: CurveEd25519, X: []byte{1}})
		require.ErrorContains(t, err, "invalid Ed25519 key size")

		_, err = (&JOSEVerifier{}).Verify([]byte{1}, []byte("a.b"), &jws.JWK{Curve: "X448"})
		require.ErrorContains(t, err, "unsupported curve")

		_, err = NewMultiVerifier().Verify([]byte{1}, []byte("a.b"), &jws.JWK{Curve: "X448"})
		require.ErrorContains(t, err, "unsupported curve")

		_, err = NewMultiVerifier().Verify([]byte{1}, []byte("a.b"), nil)
		require.Error(t, err)
	})
}

func TestThumbprint(t *testing.T) {
	store := NewInMemoryKeyStore()

	ref, err := store.Generate()
	require.NoError(t, err)

	jwk, err := NewSecp256k1Signer(store, nil).PublicJWK(ref, "kid-is-not-part-of-thumbprint")
	require.NoError(t, err)

	tp1, err := Thumbprint(jwk)
	require.NoError(t, err)
	assert.Len(t, tp1, 43)

	jwk.KeyID = "other"

	tp2, err := Thumbprint(jwk)
	require.NoError(t, err)
	assert.Equal(t, tp1, tp2)

	priv, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	require.NoError(t, err)

	expected, err := (&jose.JSONWebKey{Key: &priv.PublicKey}).Thumbprint(gocrypto.SHA256)
	require.NoError(t, err)

	tp3, err := Thumbprint(&jws.JWK{KeyType: KeyTypeEC, Curve: CurveP256, X: priv.X.Bytes(), Y: priv.Y.Bytes()})
	require.NoError(t, err)
	assert.Equal(t, jws.EncodeSegment(expected), tp3)

	_, err = Thumbprint(nil)
	require.Error(t, err)
}

func signWithJOSE(t *testing.T, alg jose.SignatureAlgorithm, key interface{}) ([]byte, []byte) {
	t.Helper()

	signer, err := jose.NewSigner(jose.SigningKey{Algorithm: alg, Key: key}, nil)
	require.NoError(t, err)

	obj, err := signer.Sign([]byte(`{"sub":"test"}`))
	require.NoError(t, err)

	compact, err := obj.CompactSerialize()
	require.NoError(t, err)

	i := strings.LastIndex(compact, ".")

	signature, err := jws.DecodeSegment(compact[i+1:])
	require.NoError(t, err)

	return []byte(compact[:i]), signature
}
