/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package client

import (
	"context"
	"errors"
	"time"

	"github.com/trustbloc/logutil-go/pkg/log"

	"github.com/trustbloc/verifiedid-go/internal/logfields"
	"github.com/trustbloc/verifiedid-go/pkg/config"
	"github.com/trustbloc/verifiedid-go/pkg/processor"
	"github.com/trustbloc/verifiedid-go/pkg/verifiedid"
	"github.com/trustbloc/verifiedid-go/pkg/walleterr"
)

var logger = log.New("verifiedid-client")

type correlationResetter interface {
	ResetCorrelationID() string
}

type correlationProvider interface {
	CorrelationID() string
}

// VerifiedIDClient turns request inputs into verified id requests and handles verified id persistence encoding.
type VerifiedIDClient struct {
	config     *config.Configuration
	resolvers  []RequestResolver
	processors *processor.Factory
}

// Config returns the configuration the client was built with.
func (c *VerifiedIDClient) Config() *config.Configuration {
	return c.config
}

// CreateRequest resolves input into a raw request and processes it. Every call starts a new correlation id.
// Returned errors are always *walleterr.Error.
func (c *VerifiedIDClient) CreateRequest(ctx context.Context, input Input) (processor.VerifiedIDRequest, error) {
	if r, ok := c.config.Networking.(correlationResetter); ok {
		r.ResetCorrelationID()
	}

	start := time.Now()

	request, err := c.createRequest(ctx, input)
	if err != nil {
		logger.Warn("create request failed", logfields.WithError(err))
		c.config.Logger.Errorf("create request failed: %v", err)

		return nil, c.wrap(err)
	}

	logger.Debug("request created", logfields.WithDuration(time.Since(start)))

	return request, nil
}

func (c *VerifiedIDClient) createRequest(ctx context.Context, input Input) (processor.VerifiedIDRequest, error) {
	if input == nil {
		return nil, walleterr.NewMalformedInputMessage("Input is required.").WithComponent(walleterr.ClientComponent)
	}

	resolver, err := c.resolver(input)
	if err != nil {
		return nil, err
	}

	raw, err := resolver.Resolve(ctx, input)
	if err != nil {
		return nil, err
	}

	p, err := c.processors.Processor(raw)
	if err != nil {
		return nil, err
	}

	return p.Process(ctx, raw)
}

func (c *VerifiedIDClient) resolver(input Input) (RequestResolver, error) {
	for _, r := range c.resolvers {
		if r.CanResolve(input) {
			return r, nil
		}
	}

	return nil, walleterr.NewMalformedInputMessage("No resolver can resolve input.").
		WithComponent(walleterr.ClientComponent).WithIncorrectValue(input.String())
}

// Encode serializes vid for storage by the caller.
func (c *VerifiedIDClient) Encode(vid verifiedid.VerifiedID) ([]byte, error) {
	b, err := verifiedid.Encode(vid)
	if err != nil {
		return nil, c.wrap(walleterr.NewMalformedInput(err).WithComponent(walleterr.ClientComponent))
	}

	return b, nil
}

// Decode restores a verified id previously produced by Encode.
func (c *VerifiedIDClient) Decode(raw []byte) (verifiedid.VerifiedID, error) {
	vid, err := verifiedid.Decode(raw)
	if err != nil {
		return nil, c.wrap(walleterr.NewMalformedInput(err).WithComponent(walleterr.ClientComponent))
	}

	return vid, nil
}

func (c *VerifiedIDClient) wrap(err error) error {
	err = walleterr.Wrap(err)

	var e *walleterr.Error
	if !errors.As(err, &e) || e.CorrelationID != "" {
		return err
	}

	if p, ok := c.config.Networking.(correlationProvider); ok {
		e.CorrelationID = p.CorrelationID()
	}

	return e
}
