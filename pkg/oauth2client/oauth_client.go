/*
Copyright Avast Software. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package oauth2client

import (
	"context"
	"net/http"

	"golang.org/x/oauth2"
)

type Client struct {
}

func NewOAuth2Client() *Client {
	return &Client{}
}

func (c *Client) Exchange(
	ctx context.Context,
	cfg oauth2.Config,
	code string,
	client *http.Client,
	opts ...AuthCodeOption,
) (*oauth2.Token, error) {
	return (&cfg).Exchange(
		context.WithValue(ctx, oauth2.HTTPClient, client),
		code,
		c.convertOptions(opts...)...,
	)
}

// ExchangePreAuthorizedCode redeems a pre-authorized code at tokenURL. txCode is sent only when not empty.
func (c *Client) ExchangePreAuthorizedCode(
	ctx context.Context,
	tokenURL string,
	preAuthorizedCode string,
	txCode string,
	client *http.Client,
	opts ...AuthCodeOption,
) (*oauth2.Token, error) {
	cfg := oauth2.Config{
		Endpoint: oauth2.Endpoint{
			TokenURL:  tokenURL,
			AuthStyle: oauth2.AuthStyleInParams,
		},
	}

	opts = append([]AuthCodeOption{
		SetAuthURLParam(ParamGrantType, GrantTypePreAuthorizedCode),
		SetAuthURLParam(ParamPreAuthorizedCode, preAuthorizedCode),
	}, opts...)

	if txCode != "" {
		opts = append(opts, SetAuthURLParam(ParamTxCode, txCode))
	}

	return c.Exchange(ctx, cfg, preAuthorizedCode, client, opts...)
}
