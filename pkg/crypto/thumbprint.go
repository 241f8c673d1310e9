/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package crypto

import (
	gocrypto "crypto"
	"crypto/sha256"
	"fmt"

	"github.com/trustbloc/verifiedid-go/pkg/jws"
)

// Thumbprint returns the base64url SHA-256 JWK thumbprint (RFC 7638).
func Thumbprint(key *jws.JWK) (string, error) {
	if key == nil {
		return "", fmt.Errorf("public key is required")
	}

	// go-jose has no secp256k1 support, so the canonical members are hashed directly.
	if key.Curve == CurveSecp256k1 {
		canonical := fmt.Sprintf(`{"crv":"%s","kty":"%s","x":"%s","y":"%s"}`,
			key.Curve, key.KeyType, jws.EncodeSegment(key.X), jws.EncodeSegment(key.Y))

		sum := sha256.Sum256([]byte(canonical))

		return jws.EncodeSegment(sum[:]), nil
	}

	joseKey, err := toJOSEKey(key)
	if err != nil {
		return "", err
	}

	sum, err := joseKey.Thumbprint(gocrypto.SHA256)
	if err != nil {
		return "", fmt.Errorf("compute thumbprint: %w", err)
	}

	return jws.EncodeSegment(sum), nil
}
