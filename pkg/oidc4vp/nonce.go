/*
Copyright Avast Software. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package oidc4vp

import (
	"crypto/rand"
	"crypto/sha512"
	"fmt"
	"io"

	"github.com/trustbloc/verifiedid-go/pkg/jws"
	"github.com/trustbloc/verifiedid-go/pkg/mapping"
)

const nonceSize = 32

var _ mapping.NonceComputer = (*NonceComputer)(nil)

// NonceComputer derives id token nonces bound to the holder DID: b64url(random) "." b64url(sha512(did)).
type NonceComputer struct {
	random io.Reader
}

func NewNonceComputer() *NonceComputer {
	return &NonceComputer{random: rand.Reader}
}

func (c *NonceComputer) Nonce(did string) (string, error) {
	random := make([]byte, nonceSize)

	if _, err := io.ReadFull(c.random, random); err != nil {
		return "", fmt.Errorf("read random bytes: %w", err)
	}

	hash := sha512.Sum512([]byte(did))

	return jws.EncodeSegment(random) + "." + jws.EncodeSegment(hash[:]), nil
}
