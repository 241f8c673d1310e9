/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package crypto

import (
	"github.com/trustbloc/verifiedid-go/pkg/jws"
)

// KeyReference is an opaque handle to a private key held by a key store.
type KeyReference = string

// Key types and curves.
const (
	KeyTypeEC  = "EC"
	KeyTypeOKP = "OKP"

	CurveSecp256k1 = "secp256k1"
	CurveP256      = "P-256"
	CurveP384      = "P-384"
	CurveEd25519   = "Ed25519"
)

// Signer signs with a referenced private key and exposes the matching public JWK.
type Signer interface {
	Sign(message []byte, keyRef KeyReference) ([]byte, error)
	PublicJWK(keyRef KeyReference, keyID string) (*jws.JWK, error)
}

// Verifier checks a signature against a public JWK.
type Verifier interface {
	Verify(signature, message []byte, publicKey *jws.JWK) (bool, error)
}

var (
	_ jws.Signer   = (Signer)(nil)
	_ jws.Verifier = (Verifier)(nil)
)
