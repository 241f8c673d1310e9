/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package crypto

import (
	"crypto/sha256"
	"errors"
	"fmt"
	"math/big"
	"time"

	"github.com/btcsuite/btcd/btcec"

	"github.com/trustbloc/verifiedid-go/pkg/jws"
	"github.com/trustbloc/verifiedid-go/pkg/observability/metrics/noop"
)

const secp256k1CoordinateSize = 32

type metricsProvider interface {
	SignTime(value time.Duration)
}

// Secp256k1Signer produces ES256K signatures (SHA-256, 64 byte r||s).
type Secp256k1Signer struct {
	store   KeyStore
	metrics metricsProvider
}

// NewSecp256k1Signer creates a signer backed by store. A nil metrics provider disables timing.
func NewSecp256k1Signer(store KeyStore, metrics metricsProvider) *Secp256k1Signer {
	if metrics == nil {
		metrics = noop.GetMetrics()
	}

	return &Secp256k1Signer{
		store:   store,
		metrics: metrics,
	}
}

func (s *Secp256k1Signer) Sign(message []byte, keyRef KeyReference) ([]byte, error) {
	startTime := time.Now()

	defer func() {
		s.metrics.SignTime(time.Since(startTime))
	}()

	key, err := s.store.PrivateKey(keyRef)
	if err != nil {
		return nil, err
	}

	digest := sha256.Sum256(message)

	sig, err := key.Sign(digest[:])
	if err != nil {
		return nil, fmt.Errorf("sign message: %w", err)
	}

	return append(copyPadded(sig.R.Bytes(), secp256k1CoordinateSize),
		copyPadded(sig.S.Bytes(), secp256k1CoordinateSize)...), nil
}

// PublicJWK returns the public half of the referenced key as an EC JWK.
func (s *Secp256k1Signer) PublicJWK(keyRef KeyReference, keyID string) (*jws.JWK, error) {
	key, err := s.store.PrivateKey(keyRef)
	if err != nil {
		return nil, err
	}

	pub := key.PubKey()

	return &jws.JWK{
		KeyType: KeyTypeEC,
		KeyID:   keyID,
		Use:     "sig",
		Curve:   CurveSecp256k1,
		X:       copyPadded(pub.X.Bytes(), secp256k1CoordinateSize),
		Y:       copyPadded(pub.Y.Bytes(), secp256k1CoordinateSize),
	}, nil
}

// Secp256k1Verifier checks ES256K signatures.
type Secp256k1Verifier struct{}

func (v *Secp256k1Verifier) Verify(signature, message []byte, publicKey *jws.JWK) (bool, error) {
	if publicKey == nil {
		return false, errors.New("public key is required")
	}

	if publicKey.Curve != CurveSecp256k1 {
		return false, fmt.Errorf("unsupported curve %q", publicKey.Curve)
	}

	if len(signature) != 2*secp256k1CoordinateSize {
		return false, nil
	}

	raw := make([]byte, 0, 1+2*secp256k1CoordinateSize)
	raw = append(raw, 0x04)
	raw = append(raw, copyPadded(publicKey.X, secp256k1CoordinateSize)...)
	raw = append(raw, copyPadded(publicKey.Y, secp256k1CoordinateSize)...)

	pub, err := btcec.ParsePubKey(raw, btcec.S256())
	if err != nil {
		return false, fmt.Errorf("parse secp256k1 public key: %w", err)
	}

	sig := &btcec.Signature{
		R: new(big.Int).SetBytes(signature[:secp256k1CoordinateSize]),
		S: new(big.Int).SetBytes(signature[secp256k1CoordinateSize:]),
	}

	digest := sha256.Sum256(message)

	return sig.Verify(digest[:], pub), nil
}

func copyPadded(source []byte, size int) []byte {
	if len(source) >= size {
		return source[len(source)-size:]
	}

	dest := make([]byte, size)
	copy(dest[size-len(source):], source)

	return dest
}
