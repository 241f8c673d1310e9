/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package did

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"

	"github.com/tidwall/gjson"
	"github.com/trustbloc/logutil-go/pkg/log"

	"github.com/trustbloc/verifiedid-go/internal/logfields"
	"github.com/trustbloc/verifiedid-go/pkg/networking"
	"github.com/trustbloc/verifiedid-go/pkg/walleterr"
)

var logger = log.New("did-resolver")

// DocumentResolver resolves a DID to its document.
type DocumentResolver interface {
	Resolve(ctx context.Context, did string) (*Document, error)
}

// Resolver fetches documents from a universal resolver style endpoint: GET <resolverURL>/<did>.
// Documents are fetched fresh on every call.
type Resolver struct {
	resolverURL string
	client      networking.Networking
}

// NewResolver creates a Resolver.
func NewResolver(resolverURL string, client networking.Networking) *Resolver {
	return &Resolver{
		resolverURL: strings.TrimSuffix(resolverURL, "/"),
		client:      client,
	}
}

// Resolve fetches and decodes the document of did. Both a bare document and a
// resolution result wrapping it in didDocument are accepted.
func (r *Resolver) Resolve(ctx context.Context, did string) (*Document, error) {
	if !strings.HasPrefix(did, "did:") {
		return nil, walleterr.NewMalformedInputMessage(fmt.Sprintf("Invalid DID: %s.", did)).
			WithComponent(walleterr.DIDResolverComponent)
	}

	body, err := r.client.Fetch(ctx, r.resolverURL+"/"+url.PathEscape(did), nil)
	if err != nil {
		return nil, err
	}

	raw := body
	if wrapped := gjson.GetBytes(body, "didDocument"); wrapped.Exists() && wrapped.IsObject() {
		raw = []byte(wrapped.Raw)
	}

	var doc Document
	if err = json.Unmarshal(raw, &doc); err != nil {
		return nil, walleterr.NewMalformedInput(fmt.Errorf("decode did document: %w", err)).
			WithComponent(walleterr.DIDResolverComponent)
	}

	if doc.ID == "" {
		return nil, walleterr.NewMissingRequiredProperty("id", "IdentifierDocument").
			WithComponent(walleterr.DIDResolverComponent)
	}

	logger.Debug("did resolved", logfields.WithDID(doc.ID))

	return &doc, nil
}
