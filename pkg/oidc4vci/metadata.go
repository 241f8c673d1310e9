/*
Copyright Avast Software. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package oidc4vci

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/jinzhu/copier"
	"github.com/samber/lo"

	"github.com/trustbloc/verifiedid-go/internal/logfields"
	"github.com/trustbloc/verifiedid-go/pkg/networking"
	"github.com/trustbloc/verifiedid-go/pkg/verifiedid"
	"github.com/trustbloc/verifiedid-go/pkg/walleterr"
)

// MetadataURL returns the well-known metadata URL of a credential issuer.
func MetadataURL(credentialIssuer string) string {
	if strings.HasSuffix(credentialIssuer, WellKnownCredentialIssuerPath) {
		return credentialIssuer
	}

	return strings.TrimSuffix(credentialIssuer, "/") + WellKnownCredentialIssuerPath
}

func fetchMetadata(ctx context.Context, n networking.Networking, credentialIssuer string) (*CredentialMetadata, error) {
	if !isHTTPURL(credentialIssuer) {
		return nil, walleterr.NewInvalidProperty("credential_issuer", credentialOfferType).
			WithComponent(walleterr.OIDC4VCIProcessorComponent)
	}

	return networking.FetchJSON[CredentialMetadata](ctx, n, MetadataURL(credentialIssuer), preferHeaders())
}

// Configuration returns the first supported configuration among ids, in the order of ids.
func (m *CredentialMetadata) Configuration(ids []string) (*CredentialConfiguration, string, error) {
	for _, id := range ids {
		raw, ok := m.CredentialConfigurationsSupported[id]
		if !ok {
			continue
		}

		config := &CredentialConfiguration{raw: raw}

		if err := json.Unmarshal(raw, config); err != nil {
			return nil, "", walleterr.NewMalformedCredentialMetadata(
				fmt.Sprintf("Credential configuration %s is malformed.", id), err)
		}

		return config, id, nil
	}

	return nil, "", walleterr.NewMalformedCredentialMetadata(
		"Request does not contain expected credential configuration.", nil)
}

// ValidateAuthorizationServers checks that the authorization server of every grant in offer is listed in the
// metadata. Hosts are compared. Without authorization_servers the credential issuer is the only authorization
// server.
func (m *CredentialMetadata) ValidateAuthorizationServers(offer *CredentialOffer) error {
	servers := m.AuthorizationServers
	if len(servers) == 0 {
		servers = []string{offer.CredentialIssuer}
	}

	hosts := lo.FilterMap(servers, func(s string, _ int) (string, bool) {
		h := hostOf(s)

		return h, h != ""
	})

	for _, name := range sortedGrantTypes(offer) {
		server := offer.authorizationServer(offer.Grants[name])

		if h := hostOf(server); h == "" || !lo.Contains(hosts, h) {
			return walleterr.NewMalformedCredentialMetadata(
				fmt.Sprintf("Authorization servers in Credential Metadata does not contain %s", server), nil)
		}
	}

	return nil
}

// RequesterStyle returns the issuer display for the first matching locale, else the first entry.
func (m *CredentialMetadata) RequesterStyle(locales []string) verifiedid.RequesterStyle {
	style := verifiedid.RequesterStyle{}

	display, ok := preferredDisplay(m.Display, locales)
	if !ok {
		return style
	}

	if err := copier.Copy(&style, &display); err != nil {
		logger.Debug("failed to copy issuer display", logfields.WithError(err))

		style.Requester = display.Name
	}

	return style
}

func preferredDisplay(displays []IssuerDisplay, locales []string) (IssuerDisplay, bool) {
	if len(displays) == 0 {
		return IssuerDisplay{}, false
	}

	for _, locale := range locales {
		for _, d := range displays {
			if d.Locale != "" && strings.EqualFold(d.Locale, locale) {
				return d, true
			}
		}
	}

	return displays[0], true
}

func sortedGrantTypes(offer *CredentialOffer) []string {
	// authorization_code first, then pre-authorized, then anything else in name order.
	known := []string{GrantTypeAuthorizationCode, GrantTypePreAuthorizedCode}

	names := lo.Filter(known, func(n string, _ int) bool {
		_, ok := offer.Grants[n]

		return ok
	})

	others := lo.Without(lo.Keys(offer.Grants), known...)
	sort.Strings(others)

	return append(names, others...)
}

func isHTTPURL(raw string) bool {
	return strings.HasPrefix(raw, "https://") || strings.HasPrefix(raw, "http://")
}

func preferHeaders() map[string]string {
	return map[string]string{networking.PreferHeader: networking.InteropProfileVersion}
}
