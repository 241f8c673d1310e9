/*
Copyright Avast Software. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package oauth2client

import (
	"golang.org/x/oauth2"
)

type setParam struct{ k, v string }

type AuthCodeOption interface {
	param() setParam
}

func (p setParam) param() setParam { return p }

func SetAuthURLParam(key, value string) AuthCodeOption {
	return setParam{key, value}
}

func (c *Client) convertOptions(opt ...AuthCodeOption) []oauth2.AuthCodeOption {
	var res []oauth2.AuthCodeOption

	for _, o := range opt {
		p := o.param()
		res = append(res, oauth2.SetAuthURLParam(p.k, p.v))
	}

	return res
}
