/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package metrics

import (
	"time"

	"github.com/trustbloc/logutil-go/pkg/log"
)

// Logger used by different metrics provider.
var Logger = log.New("metrics-provider")

// Constants used by different metrics provider.
const (
	// Namespace Organization namespace.
	Namespace = "verifiedid"

	// Crypto plain crypto operations.
	Crypto               = "crypto"
	CryptoSignTimeMetric = "crypto_sign_seconds"

	// Processor request processing.
	Processor                = "processor"
	ProcessRequestTimeMetric = "processor_process_request_seconds"

	// Networking outbound calls.
	Networking               = "networking"
	NetworkRequestTimeMetric = "networking_request_seconds"

	// Wallet events reported through the wallet logger.
	Wallet             = "wallet"
	WalletEventsMetric = "wallet_events_total"
	WalletEventLabel   = "event"
)

// Provider is an interface for metrics provider.
type Provider interface {
	// Create creates a metrics provider instance
	Create() error
	// Destroy destroys the metrics provider instance
	Destroy() error
	// Metrics providers metrics
	Metrics() Metrics
}

// Metrics is an interface for the metrics to be supported by the provider.
type Metrics interface {
	SignTime(value time.Duration)
	ProcessRequestTime(value time.Duration)
	NetworkRequestTime(value time.Duration)
	WalletEvent(name string)
}
