/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package mapping

import (
	"github.com/mitchellh/mapstructure"

	"github.com/trustbloc/verifiedid-go/pkg/walleterr"
)

// Decode converts a generic JSON value (as produced by encoding/json into interface{}) into a wire model.
// Field names follow the json tags; single objects are accepted where a list is expected.
func Decode(input interface{}, out interface{}) error {
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName:          "json",
		WeaklyTypedInput: true,
		Result:           out,
	})
	if err != nil {
		return err
	}

	if err = decoder.Decode(input); err != nil {
		return walleterr.NewMalformedInput(err).WithComponent(walleterr.MappingComponent)
	}

	return nil
}

// DecodePresentationRequestClaims decodes presentation request claims from a generic JSON object.
func DecodePresentationRequestClaims(raw map[string]interface{}) (*PresentationRequestClaims, error) {
	claims := &PresentationRequestClaims{}

	if err := Decode(raw, claims); err != nil {
		return nil, err
	}

	return claims, nil
}
