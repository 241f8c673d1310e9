/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package jws

import (
	"encoding/json"
	"fmt"
)

// JWK is a JSON Web Key. Key material is kept as raw bytes in memory and base64url encoded on the wire.
type JWK struct {
	KeyType string
	KeyID   string
	Use     string
	Curve   string
	X       []byte
	Y       []byte
	D       []byte
	K       []byte
}

type jwkJSON struct {
	KeyType string `json:"kty"`
	KeyID   string `json:"kid,omitempty"`
	Use     string `json:"use,omitempty"`
	Curve   string `json:"crv,omitempty"`
	X       string `json:"x,omitempty"`
	Y       string `json:"y,omitempty"`
	D       string `json:"d,omitempty"`
	K       string `json:"k,omitempty"`
}

func (k JWK) MarshalJSON() ([]byte, error) {
	return json.Marshal(&jwkJSON{
		KeyType: k.KeyType,
		KeyID:   k.KeyID,
		Use:     k.Use,
		Curve:   k.Curve,
		X:       EncodeSegment(k.X),
		Y:       EncodeSegment(k.Y),
		D:       EncodeSegment(k.D),
		K:       EncodeSegment(k.K),
	})
}

func (k *JWK) UnmarshalJSON(b []byte) error {
	var data jwkJSON

	if err := json.Unmarshal(b, &data); err != nil {
		return err
	}

	fields := []struct {
		name string
		in   string
		out  *[]byte
	}{
		{"x", data.X, &k.X},
		{"y", data.Y, &k.Y},
		{"d", data.D, &k.D},
		{"k", data.K, &k.K},
	}

	for _, f := range fields {
		if f.in == "" {
			*f.out = nil

			continue
		}

		raw, err := DecodeSegment(f.in)
		if err != nil {
			return fmt.Errorf("decode jwk %s: %w", f.name, err)
		}

		*f.out = raw
	}

	k.KeyType = data.KeyType
	k.KeyID = data.KeyID
	k.Use = data.Use
	k.Curve = data.Curve

	return nil
}

// Public returns a copy of the key without private material.
func (k *JWK) Public() *JWK {
	return &JWK{
		KeyType: k.KeyType,
		KeyID:   k.KeyID,
		Use:     k.Use,
		Curve:   k.Curve,
		X:       k.X,
		Y:       k.Y,
	}
}
