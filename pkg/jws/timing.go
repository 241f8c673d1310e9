/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package jws

import (
	"math"
	"time"

	"github.com/trustbloc/verifiedid-go/pkg/walleterr"
)

// ClockSkew is the tolerance applied when checking iat and exp.
const ClockSkew = 300 * time.Second

// DefaultLifetime is the validity window of tokens produced by the wallet.
const DefaultLifetime = 300 * time.Second

// TimeClaims are the registered time claims, in Unix seconds. Absent claims stay nil.
type TimeClaims struct {
	IssuedAt   *float64 `json:"iat,omitempty"`
	Expiration *float64 `json:"exp,omitempty"`
	NotBefore  *float64 `json:"nbf,omitempty"`
}

// NewTimeClaims returns iat and exp floored to whole seconds.
func NewTimeClaims(now time.Time, lifetime time.Duration) TimeClaims {
	iat := math.Floor(float64(now.Unix()))
	exp := math.Floor(float64(now.Add(lifetime).Unix()))

	return TimeClaims{
		IssuedAt:   &iat,
		Expiration: &exp,
	}
}

// WithNotBefore sets nbf to iat.
func (c TimeClaims) WithNotBefore() TimeClaims {
	c.NotBefore = c.IssuedAt

	return c
}

// ValidateTimeClaims checks iat and exp when present.
func ValidateTimeClaims(claims TimeClaims, now time.Time) error {
	if err := ValidateIssuedAt(claims, now); err != nil {
		return err
	}

	return ValidateExpiration(claims, now)
}

// ValidateIssuedAt rejects tokens issued further in the future than the skew allows.
func ValidateIssuedAt(claims TimeClaims, now time.Time) error {
	if claims.IssuedAt == nil {
		return nil
	}

	if *claims.IssuedAt > unix(now)+ClockSkew.Seconds() {
		return walleterr.NewIatHasNotOccurred()
	}

	return nil
}

// ValidateExpiration rejects tokens that expired before the skew window.
func ValidateExpiration(claims TimeClaims, now time.Time) error {
	if claims.Expiration == nil {
		return nil
	}

	if unix(now)-ClockSkew.Seconds() > *claims.Expiration {
		return walleterr.NewTokenExpired()
	}

	return nil
}

func unix(t time.Time) float64 {
	return float64(t.UnixNano()) / float64(time.Second)
}
