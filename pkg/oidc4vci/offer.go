/*
Copyright Avast Software. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package oidc4vci

import (
	"encoding/json"
	"fmt"

	"github.com/valyala/fastjson"

	"github.com/trustbloc/verifiedid-go/pkg/mapping"
	"github.com/trustbloc/verifiedid-go/pkg/walleterr"
)

const credentialOfferType = "CredentialOffer"

// ParseCredentialOffer decodes a credential offer given as a generic JSON object, raw JSON bytes or a JSON
// string.
func ParseCredentialOffer(raw interface{}) (*CredentialOffer, error) {
	obj, err := toObject(raw)
	if err != nil {
		return nil, err
	}

	offer := &CredentialOffer{}

	if err = mapping.Decode(obj, offer); err != nil {
		return nil, err
	}

	applyGrantAliases(obj, offer)

	if err = offer.validate(); err != nil {
		return nil, err
	}

	return offer, nil
}

// IsCredentialOffer is a cheap structural check: the fields a credential offer requires are present with the
// right JSON types.
func IsCredentialOffer(raw interface{}) bool {
	var data []byte

	switch v := raw.(type) {
	case []byte:
		data = v
	case json.RawMessage:
		data = v
	case string:
		data = []byte(v)
	case map[string]interface{}:
		b, err := json.Marshal(v)
		if err != nil {
			return false
		}

		data = b
	default:
		return false
	}

	var p fastjson.Parser

	v, err := p.ParseBytes(data)
	if err != nil || v.Type() != fastjson.TypeObject {
		return false
	}

	if v.GetStringBytes("credential_issuer") == nil {
		return false
	}

	ids := v.Get("credential_configuration_ids")
	if ids == nil || ids.Type() != fastjson.TypeArray {
		return false
	}

	grants := v.GetObject("grants")

	return grants != nil && grants.Len() > 0
}

func (o *CredentialOffer) validate() error {
	if o.CredentialIssuer == "" {
		return walleterr.NewMissingRequiredProperty("credential_issuer", credentialOfferType).
			WithComponent(walleterr.OIDC4VCIProcessorComponent)
	}

	if len(o.CredentialConfigurationIDs) == 0 {
		return walleterr.NewMissingRequiredProperty("credential_configuration_ids", credentialOfferType).
			WithComponent(walleterr.OIDC4VCIProcessorComponent)
	}

	if len(o.Grants) == 0 {
		return walleterr.NewMissingRequiredProperty("grants", credentialOfferType).
			WithComponent(walleterr.OIDC4VCIProcessorComponent)
	}

	if g, ok := o.Grants[GrantTypePreAuthorizedCode]; ok && g.PreAuthorizedCode == "" {
		return walleterr.NewMissingRequiredProperty("pre-authorized_code", credentialOfferType).
			WithComponent(walleterr.OIDC4VCIProcessorComponent)
	}

	return nil
}

// authorizationServer returns the authorization server of a grant; the credential issuer acts as one when the
// grant names none.
func (o *CredentialOffer) authorizationServer(g Grant) string {
	if g.AuthorizationServer != "" {
		return g.AuthorizationServer
	}

	return o.CredentialIssuer
}

func toObject(raw interface{}) (map[string]interface{}, error) {
	var data []byte

	switch v := raw.(type) {
	case map[string]interface{}:
		return v, nil
	case []byte:
		data = v
	case json.RawMessage:
		data = v
	case string:
		data = []byte(v)
	default:
		return nil, walleterr.NewMalformedInputMessage(
			fmt.Sprintf("Credential offer of type %T is not in the correct format.", raw)).
			WithComponent(walleterr.OIDC4VCIProcessorComponent)
	}

	obj := map[string]interface{}{}

	if err := json.Unmarshal(data, &obj); err != nil {
		return nil, walleterr.NewMalformedInput(err).WithComponent(walleterr.OIDC4VCIProcessorComponent)
	}

	return obj, nil
}

// applyGrantAliases accepts pre_authorized_code as an alias of pre-authorized_code.
func applyGrantAliases(obj map[string]interface{}, offer *CredentialOffer) {
	grants, ok := obj["grants"].(map[string]interface{})
	if !ok {
		return
	}

	for name, g := range offer.Grants {
		if g.PreAuthorizedCode != "" {
			continue
		}

		rawGrant, ok := grants[name].(map[string]interface{})
		if !ok {
			continue
		}

		if code, ok := rawGrant["pre_authorized_code"].(string); ok {
			g.PreAuthorizedCode = code
			offer.Grants[name] = g
		}
	}
}
