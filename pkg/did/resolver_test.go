/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package did_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trustbloc/verifiedid-go/pkg/did"
	"github.com/trustbloc/verifiedid-go/pkg/networking"
	"github.com/trustbloc/verifiedid-go/pkg/walleterr"
)

func newResolverServer(t *testing.T) *httptest.Server {
	t.Helper()

	e := echo.New()
	e.GET("/identifiers/:did", func(c echo.Context) error {
		switch c.Param("did") {
		case "did:ion:test":
			return c.String(http.StatusOK, sampleDocument)
		case "did:ion:wrapped":
			return c.String(http.StatusOK, `{"@context":"https://w3id.org/did-resolution/v1","didDocument":`+
				sampleDocument+`,"didDocumentMetadata":{}}`)
		case "did:ion:noid":
			return c.String(http.StatusOK, `{"verificationMethod":[]}`)
		case "did:ion:garbage":
			return c.String(http.StatusOK, `<html>`)
		default:
			return c.NoContent(http.StatusNotFound)
		}
	})

	srv := httptest.NewServer(e)
	t.Cleanup(srv.Close)

	return srv
}

func TestResolver_Resolve(t *testing.T) {
	srv := newResolverServer(t)
	resolver := did.NewResolver(srv.URL+"/identifiers/", networking.NewHTTPClient(networking.WithRetry(0, 0)))

	t.Run("bare document", func(t *testing.T) {
		doc, err := resolver.Resolve(context.Background(), "did:ion:test")
		require.NoError(t, err)
		assert.Equal(t, "did:ion:test", doc.ID)
		assert.Len(t, doc.VerificationMethod, 2)
	})

	t.Run("resolution result", func(t *testing.T) {
		doc, err := resolver.Resolve(context.Background(), "did:ion:wrapped")
		require.NoError(t, err)
		assert.Equal(t, "did:ion:test", doc.ID)
	})

	t.Run("errors", func(t *testing.T) {
		tests := []struct {
			did  string
			code walleterr.Code
		}{
			{did: "not-a-did", code: walleterr.MalformedInputError},
			{did: "did:ion:noid", code: walleterr.MissingRequiredProperty},
			{did: "did:ion:garbage", code: walleterr.MalformedInputError},
			{did: "did:ion:unknown", code: walleterr.NetworkingError},
		}

		for _, tt := range tests {
			_, err := resolver.Resolve(context.Background(), tt.did)
			require.Error(t, err, tt.did)
			assert.True(t, walleterr.HasCode(err, tt.code), tt.did)
		}
	})
}

type countingResolver struct {
	calls int32
	err   error
}

func (r *countingResolver) Resolve(_ context.Context, d string) (*did.Document, error) {
	atomic.AddInt32(&r.calls, 1)

	if r.err != nil {
		return nil, r.err
	}

	return &did.Document{ID: d}, nil
}

func TestCachingResolver(t *testing.T) {
	t.Run("caches documents", func(t *testing.T) {
		next := &countingResolver{}
		resolver := did.NewCachingResolver(next, did.WithCacheSize(10), did.WithCacheTTL(time.Minute))

		for i := 0; i < 3; i++ {
			doc, err := resolver.Resolve(context.Background(), "did:ion:a")
			require.NoError(t, err)
			require.Equal(t, "did:ion:a", doc.ID)
		}

		_, err := resolver.Resolve(context.Background(), "did:ion:b")
		require.NoError(t, err)

		require.EqualValues(t, 2, atomic.LoadInt32(&next.calls))
	})

	t.Run("expired entries are refetched", func(t *testing.T) {
		next := &countingResolver{}
		resolver := did.NewCachingResolver(next, did.WithCacheTTL(time.Millisecond))

		_, err := resolver.Resolve(context.Background(), "did:ion:a")
		require.NoError(t, err)

		time.Sleep(5 * time.Millisecond)

		_, err = resolver.Resolve(context.Background(), "did:ion:a")
		require.NoError(t, err)

		require.EqualValues(t, 2, atomic.LoadInt32(&next.calls))
	})

	t.Run("errors are not cached", func(t *testing.T) {
		next := &countingResolver{err: errors.New("resolver down")}
		resolver := did.NewCachingResolver(next)

		for i := 0; i < 2; i++ {
			_, err := resolver.Resolve(context.Background(), "did:ion:a")
			require.ErrorContains(t, err, "resolver down")
		}

		require.EqualValues(t, 2, atomic.LoadInt32(&next.calls))
	})
}
