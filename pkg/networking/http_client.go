/*
Copyright Avast Software. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package networking

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/google/uuid"
	"github.com/henvic/httpretty"
	"github.com/trustbloc/logutil-go/pkg/log"

	"github.com/trustbloc/verifiedid-go/internal/logfields"
	"github.com/trustbloc/verifiedid-go/pkg/observability/metrics/noop"
	"github.com/trustbloc/verifiedid-go/pkg/walleterr"
)

var logger = log.New("networking")

const (
	// DefaultCorrelationHeader carries the per request correlation id.
	DefaultCorrelationHeader = "ms-cv"

	// PreferHeader selects the OpenID4VCI interop profile on issuer endpoints.
	PreferHeader = "prefer"
	// InteropProfileVersion is the value sent in PreferHeader.
	InteropProfileVersion = "oid4vci-interop-profile-version=0.0.1"

	defaultMaxRetries      = 3
	defaultInitialInterval = 200 * time.Millisecond
	defaultTimeout         = 30 * time.Second
	maxResponseBody        = 1e+7
)

type httpClient interface {
	Do(req *http.Request) (*http.Response, error)
}

type metricsProvider interface {
	NetworkRequestTime(value time.Duration)
}

// HTTPClient is the default Networking implementation over net/http.
type HTTPClient struct {
	client            httpClient
	metrics           metricsProvider
	headers           map[string]string
	correlationHeader string
	maxRetries        uint64
	initialInterval   time.Duration
	retryPost         bool

	mu            sync.RWMutex
	correlationID string
}

// Opt configures HTTPClient.
type Opt func(c *HTTPClient)

// WithHTTPClient sets the underlying client.
func WithHTTPClient(client httpClient) Opt {
	return func(c *HTTPClient) {
		c.client = client
	}
}

// WithMetrics records call durations.
func WithMetrics(m metricsProvider) Opt {
	return func(c *HTTPClient) {
		c.metrics = m
	}
}

// WithHeader adds a header to every request.
func WithHeader(name, value string) Opt {
	return func(c *HTTPClient) {
		c.headers[name] = value
	}
}

// WithCorrelationHeader overrides the correlation header name.
func WithCorrelationHeader(name string) Opt {
	return func(c *HTTPClient) {
		c.correlationHeader = name
	}
}

// WithRetry sets the retry budget for retryable failures. Zero disables retries.
func WithRetry(maxRetries uint64, initialInterval time.Duration) Opt {
	return func(c *HTTPClient) {
		c.maxRetries = maxRetries
		c.initialInterval = initialInterval
	}
}

// WithPostRetry lets retryable POST failures be retried too. POST bodies submit responses to relying parties and
// issuers, so a retried POST may be delivered twice.
func WithPostRetry() Opt {
	return func(c *HTTPClient) {
		c.retryPost = true
	}
}

// NewHTTPClient creates a client with exponential retry for retryable GET failures.
func NewHTTPClient(opts ...Opt) *HTTPClient {
	c := &HTTPClient{
		client:            &http.Client{Timeout: defaultTimeout},
		metrics:           noop.GetMetrics(),
		headers:           map[string]string{},
		correlationHeader: DefaultCorrelationHeader,
		maxRetries:        defaultMaxRetries,
		initialInterval:   defaultInitialInterval,
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// NewDebugTransport wraps rt with an httpretty dump of requests and responses.
func NewDebugTransport(rt http.RoundTripper, w io.Writer) http.RoundTripper {
	if rt == nil {
		rt = http.DefaultTransport
	}

	httpLogger := &httpretty.Logger{
		RequestHeader:   true,
		RequestBody:     true,
		ResponseHeader:  true,
		ResponseBody:    true,
		SkipSanitize:    true,
		Colors:          false,
		SkipRequestInfo: true,
		Formatters:      []httpretty.Formatter{&httpretty.JSONFormatter{}, &JWTFormatter{}},
		MaxResponseBody: maxResponseBody,
	}

	httpLogger.SetOutput(w)

	return httpLogger.RoundTripper(rt)
}

// ResetCorrelationID starts a new correlation id and returns it.
func (c *HTTPClient) ResetCorrelationID() string {
	id := uuid.NewString()

	c.mu.Lock()
	c.correlationID = id
	c.mu.Unlock()

	return id
}

// CorrelationID returns the current correlation id.
func (c *HTTPClient) CorrelationID() string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return c.correlationID
}

func (c *HTTPClient) Fetch(ctx context.Context, url string, headers map[string]string) ([]byte, error) {
	return c.send(ctx, http.MethodGet, url, nil, "", headers)
}

func (c *HTTPClient) Post(
	ctx context.Context,
	url string,
	body []byte,
	contentType string,
	headers map[string]string,
) ([]byte, error) {
	return c.send(ctx, http.MethodPost, url, body, contentType, headers)
}

func (c *HTTPClient) send(
	ctx context.Context,
	method, url string,
	body []byte,
	contentType string,
	headers map[string]string,
) ([]byte, error) {
	var result []byte

	maxRetries := c.maxRetries
	if method != http.MethodGet && !c.retryPost {
		maxRetries = 0
	}

	b := backoff.NewExponentialBackOff()
	b.InitialInterval = c.initialInterval

	err := backoff.RetryNotify(
		func() error {
			resp, err := c.do(ctx, method, url, body, contentType, headers)
			if err != nil {
				if IsRetryable(err) {
					return err
				}

				return backoff.Permanent(err)
			}

			result = resp

			return nil
		},
		backoff.WithContext(backoff.WithMaxRetries(b, maxRetries), ctx),
		func(retryErr error, t time.Duration) {
			logger.Warn("Request failed, will sleep before trying again.",
				logfields.WithURL(url), logfields.WithDuration(t), logfields.WithError(retryErr))
		},
	)
	if err != nil {
		return nil, err
	}

	return result, nil
}

func (c *HTTPClient) do(
	ctx context.Context,
	method, url string,
	body []byte,
	contentType string,
	headers map[string]string,
) ([]byte, error) {
	startTime := time.Now()

	defer func() {
		c.metrics.NetworkRequestTime(time.Since(startTime))
	}()

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return nil, walleterr.NewNetworkingError("Unable to create request.", 0, false, err)
	}

	for k, v := range c.headers {
		req.Header.Set(k, v)
	}

	if id := c.CorrelationID(); id != "" {
		req.Header.Set(c.correlationHeader, id)
	}

	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, walleterr.NewNetworkingError("Request failed.", 0, ctx.Err() == nil, err).
			WithCorrelationID(c.CorrelationID())
	}

	defer func() {
		if closeErr := resp.Body.Close(); closeErr != nil {
			logger.Debug("failed to close response body", logfields.WithError(closeErr))
		}
	}()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, walleterr.NewNetworkingError("Unable to read response body.", resp.StatusCode, true, err).
			WithCorrelationID(c.CorrelationID())
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		logger.Debug("unexpected response status",
			logfields.WithURL(url), logfields.WithHTTPStatus(resp.StatusCode))

		return nil, NewStatusError(resp.StatusCode, respBody).WithCorrelationID(c.CorrelationID())
	}

	return respBody, nil
}

