/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package crypto

import (
	"fmt"

	"github.com/trustbloc/verifiedid-go/pkg/jws"
)

// MultiVerifier dispatches on the curve of the public key.
type MultiVerifier struct {
	verifiers map[string]Verifier
}

// NewMultiVerifier returns a verifier for secp256k1, P-256, P-384 and Ed25519 keys.
func NewMultiVerifier() *MultiVerifier {
	joseVerifier := &JOSEVerifier{}

	return &MultiVerifier{
		verifiers: map[string]Verifier{
			CurveSecp256k1: &Secp256k1Verifier{},
			CurveP256:      joseVerifier,
			CurveP384:      joseVerifier,
			CurveEd25519:   joseVerifier,
		},
	}
}

func (m *MultiVerifier) Verify(signature, message []byte, publicKey *jws.JWK) (bool, error) {
	if publicKey == nil {
		return false, fmt.Errorf("public key is required")
	}

	v, ok := m.verifiers[publicKey.Curve]
	if !ok {
		return false, fmt.Errorf("unsupported curve %q", publicKey.Curve)
	}

	return v.Verify(signature, message, publicKey)
}
