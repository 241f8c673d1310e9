/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package jws

// Header is the protected JOSE header of a token.
type Header struct {
	Type             string `json:"typ,omitempty"`
	Algorithm        string `json:"alg,omitempty"`
	EncryptionMethod string `json:"enc,omitempty"`
	JWK              *JWK   `json:"jwk,omitempty"`
	KeyID            string `json:"kid,omitempty"`
	ContentType      string `json:"cty,omitempty"`
	PBES2SaltInput   string `json:"p2s,omitempty"`
	PBES2Count       int    `json:"p2c,omitempty"`
}

// Algorithms and types used by the wallet.
const (
	AlgorithmES256K = "ES256K"
	AlgorithmES256  = "ES256"
	AlgorithmEdDSA  = "EdDSA"

	TypeJWT = "JWT"
)
