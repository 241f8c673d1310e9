/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package oauth2client

import (
	"bytes"
	"fmt"
	"io"
	"net/http"

	"github.com/trustbloc/verifiedid-go/pkg/networking"
)

type networkingTransport struct {
	client  networking.Networking
	headers map[string]string
}

// NewHTTPClient returns an *http.Client whose requests go through n, so token calls share its headers,
// retries and correlation id. headers are added to every request.
func NewHTTPClient(n networking.Networking, headers map[string]string) *http.Client {
	return &http.Client{Transport: &networkingTransport{client: n, headers: headers}}
}

func (t *networkingTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	headers := map[string]string{}

	for name, value := range t.headers {
		headers[name] = value
	}

	for name := range req.Header {
		if name == "Content-Type" {
			continue
		}

		headers[name] = req.Header.Get(name)
	}

	var (
		body []byte
		err  error
	)

	switch req.Method {
	case http.MethodGet:
		body, err = t.client.Fetch(req.Context(), req.URL.String(), headers)
	case http.MethodPost:
		var reqBody []byte

		if req.Body != nil {
			reqBody, err = io.ReadAll(req.Body)
			if err != nil {
				return nil, fmt.Errorf("read request body: %w", err)
			}

			_ = req.Body.Close()
		}

		body, err = t.client.Post(req.Context(), req.URL.String(), reqBody, req.Header.Get("Content-Type"), headers)
	default:
		return nil, fmt.Errorf("unsupported method %s", req.Method)
	}

	if err != nil {
		return nil, err
	}

	return &http.Response{
		Status:     http.StatusText(http.StatusOK),
		StatusCode: http.StatusOK,
		Header:     http.Header{"Content-Type": []string{networking.ContentTypeJSON}},
		Body:       io.NopCloser(bytes.NewReader(body)),
		Request:    req,
	}, nil
}
