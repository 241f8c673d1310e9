/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package did

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/bluele/gcache"

	"github.com/trustbloc/verifiedid-go/internal/logfields"
)

const (
	defaultCacheSize = 100
	defaultCacheTTL  = 5 * time.Minute
)

// CachingResolver memoizes documents of another resolver in an LRU cache with expiry.
type CachingResolver struct {
	next  DocumentResolver
	cache gcache.Cache
	ttl   time.Duration
}

// CacheOpt configures CachingResolver.
type CacheOpt func(o *cacheOpts)

type cacheOpts struct {
	size int
	ttl  time.Duration
}

// WithCacheSize sets the maximum number of cached documents.
func WithCacheSize(size int) CacheOpt {
	return func(o *cacheOpts) {
		o.size = size
	}
}

// WithCacheTTL sets how long a document stays cached.
func WithCacheTTL(ttl time.Duration) CacheOpt {
	return func(o *cacheOpts) {
		o.ttl = ttl
	}
}

// NewCachingResolver wraps next.
func NewCachingResolver(next DocumentResolver, opts ...CacheOpt) *CachingResolver {
	o := &cacheOpts{size: defaultCacheSize, ttl: defaultCacheTTL}

	for _, opt := range opts {
		opt(o)
	}

	return &CachingResolver{
		next:  next,
		cache: gcache.New(o.size).LRU().Build(),
		ttl:   o.ttl,
	}
}

func (c *CachingResolver) Resolve(ctx context.Context, did string) (*Document, error) {
	cached, err := c.cache.Get(did)
	if err == nil {
		return cached.(*Document), nil //nolint:forcetypeassert
	}

	if !errors.Is(err, gcache.KeyNotFoundError) {
		return nil, fmt.Errorf("read did cache: %w", err)
	}

	doc, err := c.next.Resolve(ctx, did)
	if err != nil {
		return nil, err
	}

	if err = c.cache.SetWithExpire(did, doc, c.ttl); err != nil {
		logger.Warn("failed to cache did document", logfields.WithDID(did), logfields.WithError(err))
	}

	return doc, nil
}
