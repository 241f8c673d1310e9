/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package verifiedid

import (
	"fmt"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"

	"github.com/trustbloc/verifiedid-go/pkg/walleterr"
)

// Encode serializes a verified id so that the caller can persist it.
//
// Contract credentials:   {"type":"VerifiableCredential","raw":"<jws>","contract":{...}}
// OpenID4VCI credentials: {"type":"OpenID4VCI","raw":"<jws>","issuerName":"...","configuration":{...},"locales":[...]}
func Encode(vid VerifiedID) ([]byte, error) {
	vc, ok := vid.(*VerifiableCredential)
	if !ok {
		return nil, walleterr.NewUnsupportedSerialization(fmt.Sprintf("%T", vid)).
			WithComponent(walleterr.VerifiedIDComponent)
	}

	out := []byte(`{}`)

	var err error

	set := func(path string, value interface{}) {
		if err != nil {
			return
		}

		out, err = sjson.SetBytes(out, path, value)
	}

	setRaw := func(path string, value []byte) {
		if err != nil || len(value) == 0 {
			return
		}

		out, err = sjson.SetRawBytes(out, path, value)
	}

	set("type", string(vc.kind))
	set("raw", vc.Raw())

	switch vc.kind {
	case KindContract:
		setRaw("contract", vc.display)
	case KindOpenID4VCI:
		set("issuerName", vc.issuerName)
		setRaw("configuration", vc.display)

		if len(vc.locales) > 0 {
			set("locales", vc.locales)
		}
	}

	if err != nil {
		return nil, walleterr.NewUnsupportedSerialization("verified id").WithCause(err)
	}

	return out, nil
}

// Decode restores a verified id produced by Encode.
func Decode(data []byte) (VerifiedID, error) {
	if !gjson.ValidBytes(data) {
		return nil, walleterr.NewMalformedInputMessage("Encoded verified id is not valid JSON.").
			WithComponent(walleterr.VerifiedIDComponent)
	}

	doc := gjson.ParseBytes(data)

	raw := doc.Get("raw")
	if !raw.Exists() {
		return nil, walleterr.NewMissingRequiredProperty("raw", "EncodedVerifiedId").
			WithComponent(walleterr.VerifiedIDComponent)
	}

	switch Kind(doc.Get("type").String()) {
	case KindContract:
		return NewFromContract(raw.String(), rawBytes(doc.Get("contract")))
	case KindOpenID4VCI:
		locales := make([]string, 0)
		for _, l := range doc.Get("locales").Array() {
			locales = append(locales, l.String())
		}

		return NewFromOpenID4VCI(raw.String(), doc.Get("issuerName").String(),
			rawBytes(doc.Get("configuration")), locales...)
	default:
		return nil, walleterr.NewUnsupportedSerialization(doc.Get("type").String()).
			WithComponent(walleterr.VerifiedIDComponent)
	}
}

func rawBytes(r gjson.Result) []byte {
	if !r.Exists() {
		return nil
	}

	return []byte(r.Raw)
}
