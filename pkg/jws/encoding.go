/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package jws

import (
	"encoding/base64"
	"strings"
)

// EncodeSegment encodes bytes as base64url without padding.
func EncodeSegment(b []byte) string {
	return base64.RawURLEncoding.EncodeToString(b)
}

// DecodeSegment decodes a base64url segment. Trailing padding is tolerated.
func DecodeSegment(s string) ([]byte, error) {
	return base64.RawURLEncoding.DecodeString(strings.TrimRight(s, "="))
}

// IsJWS reports whether s looks like a compact serialized token with two or three base64url segments.
func IsJWS(s string) bool {
	parts := strings.Split(s, ".")
	if len(parts) != 2 && len(parts) != 3 {
		return false
	}

	for i, part := range parts {
		if part == "" && i == 2 {
			continue
		}

		if _, err := DecodeSegment(part); err != nil || (part == "" && i < 2) {
			return false
		}
	}

	return true
}
