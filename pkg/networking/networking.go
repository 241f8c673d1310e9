/*
Copyright Avast Software. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package networking

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/trustbloc/verifiedid-go/pkg/walleterr"
)

// Content types.
const (
	ContentTypeJSON = "application/json"
	ContentTypeForm = "application/x-www-form-urlencoded"
	ContentTypeJWT  = "application/jwt"
)

// Networking is the transport the wallet engine consumes. Retry and timeout policy belong to implementations.
type Networking interface {
	Fetch(ctx context.Context, url string, headers map[string]string) ([]byte, error)
	Post(ctx context.Context, url string, body []byte, contentType string, headers map[string]string) ([]byte, error)
}

// FetchJSON fetches url and decodes the JSON body into V.
func FetchJSON[V any](ctx context.Context, n Networking, url string, headers map[string]string) (*V, error) {
	body, err := n.Fetch(ctx, url, headers)
	if err != nil {
		return nil, err
	}

	return decodeJSON[V](body)
}

// PostJSON posts request as JSON and decodes the JSON response into V.
func PostJSON[T any, V any](ctx context.Context, n Networking, url string, request *T, headers map[string]string) (*V, error) {
	var body []byte

	if request != nil {
		b, err := json.Marshal(request)
		if err != nil {
			return nil, walleterr.NewMalformedInput(fmt.Errorf("marshal request: %w", err))
		}

		body = b
	}

	resp, err := n.Post(ctx, url, body, ContentTypeJSON, headers)
	if err != nil {
		return nil, err
	}

	return decodeJSON[V](resp)
}

func decodeJSON[V any](body []byte) (*V, error) {
	var final V

	if err := json.Unmarshal(body, &final); err != nil {
		return nil, walleterr.NewMalformedInput(fmt.Errorf("decode response: %w", err))
	}

	return &final, nil
}
