/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package crypto

import (
	"crypto/ecdsa"
	"crypto/ed25519"
	"crypto/elliptic"
	"errors"
	"fmt"
	"math/big"

	"github.com/go-jose/go-jose/v3"

	"github.com/trustbloc/verifiedid-go/pkg/jws"
)

// JOSEVerifier checks ES256, ES384 and EdDSA signatures with go-jose.
type JOSEVerifier struct{}

func (v *JOSEVerifier) Verify(signature, message []byte, publicKey *jws.JWK) (bool, error) {
	key, err := toJOSEKey(publicKey)
	if err != nil {
		return false, err
	}

	sig, err := jose.ParseSigned(string(message) + "." + jws.EncodeSegment(signature))
	if err != nil {
		return false, fmt.Errorf("parse signed message: %w", err)
	}

	if _, err = sig.Verify(key.Key); err != nil {
		return false, nil
	}

	return true, nil
}

func toJOSEKey(key *jws.JWK) (*jose.JSONWebKey, error) {
	if key == nil {
		return nil, errors.New("public key is required")
	}

	var pub interface{}

	switch key.Curve {
	case CurveP256:
		pub = &ecdsa.PublicKey{Curve: elliptic.P256(), X: new(big.Int).SetBytes(key.X), Y: new(big.Int).SetBytes(key.Y)}
	case CurveP384:
		pub = &ecdsa.PublicKey{Curve: elliptic.P384(), X: new(big.Int).SetBytes(key.X), Y: new(big.Int).SetBytes(key.Y)}
	case CurveEd25519:
		if len(key.X) != ed25519.PublicKeySize {
			return nil, fmt.Errorf("invalid Ed25519 key size %d", len(key.X))
		}

		pub = ed25519.PublicKey(key.X)
	default:
		return nil, fmt.Errorf("unsupported curve %q", key.Curve)
	}

	return &jose.JSONWebKey{Key: pub, KeyID: key.KeyID, Use: key.Use}, nil
}
