/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package jws

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/trustbloc/verifiedid-go/pkg/walleterr"
)

// Signer computes a signature over message bytes with the key behind keyRef.
type Signer interface {
	Sign(message []byte, keyRef string) ([]byte, error)
}

// Verifier checks a signature over message bytes against a public key.
type Verifier interface {
	Verify(signature, message []byte, publicKey *JWK) (bool, error)
}

// Token is a JWS compact token over a claim set of type C.
//
// When RawValue is set it is authoritative for serialization, so a decoded token re-encodes byte for byte.
type Token[C any] struct {
	Header           Header
	Claims           C
	ProtectedMessage string
	Signature        []byte
	RawValue         string
}

// New creates an unsigned token.
func New[C any](header Header, claims C) (*Token[C], error) {
	headerBytes, err := json.Marshal(header)
	if err != nil {
		return nil, fmt.Errorf("marshal header: %w", err)
	}

	claimsBytes, err := json.Marshal(claims)
	if err != nil {
		return nil, fmt.Errorf("marshal claims: %w", err)
	}

	return &Token[C]{
		Header:           header,
		Claims:           claims,
		ProtectedMessage: EncodeSegment(headerBytes) + "." + EncodeSegment(claimsBytes),
	}, nil
}

// Decode parses a compact serialized token.
func Decode[C any](compact string) (*Token[C], error) {
	parts := strings.Split(compact, ".")
	if len(parts) != 2 && len(parts) != 3 {
		return nil, walleterr.NewTokenMalformed(
			fmt.Sprintf("Invalid number of token segments: %d.", len(parts)), nil)
	}

	headerBytes, err := DecodeSegment(parts[0])
	if err != nil {
		return nil, walleterr.NewTokenMalformed("Unable to decode token header.", err)
	}

	claimsBytes, err := DecodeSegment(parts[1])
	if err != nil {
		return nil, walleterr.NewTokenMalformed("Unable to decode token claims.", err)
	}

	token := &Token[C]{
		ProtectedMessage: parts[0] + "." + parts[1],
		RawValue:         compact,
	}

	if err = json.Unmarshal(headerBytes, &token.Header); err != nil {
		return nil, walleterr.NewTokenMalformed("Unable to parse token header.", err)
	}

	if err = json.Unmarshal(claimsBytes, &token.Claims); err != nil {
		return nil, walleterr.NewTokenMalformed("Unable to parse token claims.", err)
	}

	if len(parts) == 3 && parts[2] != "" {
		token.Signature, err = DecodeSegment(parts[2])
		if err != nil {
			return nil, walleterr.NewTokenMalformed("Unable to decode token signature.", err)
		}
	}

	return token, nil
}

// Encode serializes a token. A preserved raw value is returned unchanged.
func Encode[C any](token *Token[C]) (string, error) {
	return token.Serialize()
}

// Serialize returns the compact form of the token.
func (t *Token[C]) Serialize() (string, error) {
	if t.RawValue != "" {
		return t.RawValue, nil
	}

	if t.ProtectedMessage == "" {
		return "", errors.New("token has no protected message")
	}

	if len(t.Signature) == 0 {
		return t.ProtectedMessage, nil
	}

	return t.ProtectedMessage + "." + EncodeSegment(t.Signature), nil
}

// Sign computes the signature over the protected message. The token is left untouched on failure.
// A preserved raw value is discarded because it no longer matches the new signature.
func (t *Token[C]) Sign(signer Signer, keyRef string) error {
	message, err := t.messageBytes()
	if err != nil {
		return err
	}

	signature, err := signer.Sign(message, keyRef)
	if err != nil {
		return fmt.Errorf("sign token: %w", err)
	}

	t.Signature = signature
	t.RawValue = ""

	return nil
}

// Verify checks the token signature. It returns false without error when the token is unsigned.
func (t *Token[C]) Verify(verifier Verifier, publicKey *JWK) (bool, error) {
	if len(t.Signature) == 0 {
		return false, nil
	}

	message, err := t.messageBytes()
	if err != nil {
		return false, err
	}

	return verifier.Verify(t.Signature, message, publicKey)
}

func (t *Token[C]) messageBytes() ([]byte, error) {
	for i := 0; i < len(t.ProtectedMessage); i++ {
		if t.ProtectedMessage[i] > 127 {
			return nil, walleterr.NewTokenMalformed("Protected message is not ASCII encodable.", nil)
		}
	}

	return []byte(t.ProtectedMessage), nil
}
