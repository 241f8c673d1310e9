/*
Copyright Avast Software. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package networking

import (
	"fmt"
	"io"
	"strings"
)

// JWTFormatter prints compact tokens as they are in httpretty dumps.
type JWTFormatter struct{}

// Match JWT media type.
func (j *JWTFormatter) Match(mediatype string) bool {
	return strings.HasPrefix(mediatype, ContentTypeJWT)
}

// Format JWT content.
func (j *JWTFormatter) Format(w io.Writer, src []byte) error {
	_, err := w.Write(src)
	if err != nil {
		return fmt.Errorf("unable to write JWT: %w", err)
	}

	return nil
}
