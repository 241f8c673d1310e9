/*
Copyright Avast Software. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package oidc4vp

import (
	"bytes"
	"context"
	"encoding/json"

	"github.com/tidwall/gjson"

	"github.com/trustbloc/verifiedid-go/pkg/jws"
	"github.com/trustbloc/verifiedid-go/pkg/mapping"
	"github.com/trustbloc/verifiedid-go/pkg/service/linkeddomain"
	"github.com/trustbloc/verifiedid-go/pkg/walleterr"
)

const contractType = "Contract"

// Contract is a resolved issuance contract.
type Contract struct {
	*mapping.Contract
	URL string
	// Raw is the contract JSON, kept for rendering the issued credential.
	Raw          []byte
	LinkedDomain *linkeddomain.Result
}

// ContractResolver fetches issuance contracts. Signed contracts, bare or wrapped as {"token": ...}, are
// validated like presentation requests; plain JSON contracts carry no linked domain result.
type ContractResolver struct {
	resolver *RequestResolver
}

func NewContractResolver(r *RequestResolver) *ContractResolver {
	return &ContractResolver{resolver: r}
}

func (c *ContractResolver) Resolve(ctx context.Context, contractURL string) (*Contract, error) {
	body, err := c.resolver.config.Networking.Fetch(ctx, contractURL, nil)
	if err != nil {
		return nil, err
	}

	body = bytes.TrimSpace(body)

	if token := gjson.GetBytes(body, "token"); token.Type == gjson.String {
		body = []byte(token.String())
	}

	contract := &Contract{URL: contractURL}

	if jws.IsJWS(string(body)) {
		if err = c.signed(ctx, string(body), contract); err != nil {
			return nil, err
		}
	} else {
		contract.Raw = body
	}

	contract.Contract = &mapping.Contract{}

	if err = json.Unmarshal(contract.Raw, contract.Contract); err != nil {
		return nil, walleterr.NewMalformedInput(err).WithComponent(walleterr.OpenIDProcessorComponent)
	}

	if contract.Input == nil || contract.Input.CredentialIssuer == "" {
		return nil, walleterr.NewMissingRequiredProperty("input.credentialIssuer", contractType).
			WithComponent(walleterr.OpenIDProcessorComponent)
	}

	return contract, nil
}

func (c *ContractResolver) signed(ctx context.Context, compact string, contract *Contract) error {
	token, err := jws.Decode[json.RawMessage](compact)
	if err != nil {
		return err
	}

	var timeClaims jws.TimeClaims

	if err = json.Unmarshal(token.Claims, &timeClaims); err != nil {
		return walleterr.NewMalformedInput(err).WithComponent(walleterr.OpenIDProcessorComponent)
	}

	result, err := validate(ctx, c.resolver.validator, token, timeClaims)
	if err != nil {
		return err
	}

	contract.Raw = token.Claims
	contract.LinkedDomain = result

	return nil
}
