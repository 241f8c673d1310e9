/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package did

import (
	"fmt"
	"strings"
)

// SplitKeyID splits a key id of the form "<did>#<fragment>".
func SplitKeyID(keyID string) (string, string, error) {
	parts := strings.Split(keyID, "#")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", "", fmt.Errorf("key id %q is not of the form did#fragment", keyID)
	}

	return parts[0], parts[1], nil
}
