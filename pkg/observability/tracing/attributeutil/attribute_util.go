/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package attributeutil

import (
	"encoding/json"
	"strings"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
	"go.opentelemetry.io/otel/attribute"

	"github.com/trustbloc/verifiedid-go/pkg/jws"
)

const redacted = "[REDACTED]"

// JSON returns attribute with the value marshaled to JSON. Value can be redacted using WithRedacted option.
func JSON(key string, value interface{}, opts ...Opt) attribute.KeyValue {
	b, err := json.Marshal(value)
	if err != nil {
		return attribute.KeyValue{
			Key:   attribute.Key(key),
			Value: attribute.Value{},
		}
	}

	return attribute.String(key, string(redact(b, opts)))
}

// Token returns attribute with the claims of a compact JWS. The signature is never exported and claims can be
// redacted using WithRedacted option. Values that are not tokens are exported as [REDACTED].
func Token(key, compact string, opts ...Opt) attribute.KeyValue {
	if !jws.IsJWS(compact) {
		return attribute.String(key, redacted)
	}

	claims, err := jws.DecodeSegment(strings.Split(compact, ".")[1])
	if err != nil || !gjson.ValidBytes(claims) {
		return attribute.String(key, redacted)
	}

	return attribute.String(key, string(redact(claims, opts)))
}

func redact(b []byte, opts []Opt) []byte {
	op := &options{}

	for _, opt := range opts {
		opt(op)
	}

	for _, path := range op.redacted {
		if gjson.GetBytes(b, path).Exists() {
			b, _ = sjson.SetBytes(b, path, redacted)
		}
	}

	return b
}

type options struct {
	redacted []string
}

type Opt func(*options)

// WithRedacted returns option that replaces value with [REDACTED] for the given path.
// Refer to https://github.com/tidwall/gjson/blob/master/SYNTAX.md for path syntax.
func WithRedacted(path string) Opt {
	return func(o *options) {
		o.redacted = append(o.redacted, path)
	}
}
