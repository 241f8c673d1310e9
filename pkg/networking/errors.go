/*
Copyright Avast Software. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package networking

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/trustbloc/verifiedid-go/pkg/walleterr"
)

// NewStatusError maps an unexpected HTTP status to a networking error.
// Server errors, 408 and 429 are retryable.
func NewStatusError(statusCode int, body []byte) *walleterr.Error {
	return walleterr.NewNetworkingError(
		fmt.Sprintf("Unexpected status code %d.", statusCode),
		statusCode,
		isRetryableStatus(statusCode),
		fmt.Errorf("response body: %s", body),
	)
}

// IsRetryable reports whether err is a networking error marked retryable.
func IsRetryable(err error) bool {
	var e *walleterr.Error
	if !errors.As(err, &e) {
		return false
	}

	return e.ErrorCode == walleterr.NetworkingError && e.Retryable
}

// StatusCode returns the HTTP status of a networking error, or 0.
func StatusCode(err error) int {
	var e *walleterr.Error
	if !errors.As(err, &e) {
		return 0
	}

	return e.StatusCode
}

func isRetryableStatus(statusCode int) bool {
	return statusCode >= http.StatusInternalServerError ||
		statusCode == http.StatusTooManyRequests ||
		statusCode == http.StatusRequestTimeout
}
