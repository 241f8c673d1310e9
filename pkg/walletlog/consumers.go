/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package walletlog

import (
	"github.com/trustbloc/logutil-go/pkg/log"

	"github.com/trustbloc/verifiedid-go/internal/logfields"
)

const walletModule = "wallet"

// ZapConsumer writes wallet entries to a structured logutil logger.
type ZapConsumer struct {
	logger *log.Log
}

// NewZapConsumer creates a consumer logging under the "wallet" module, or to logger when given.
func NewZapConsumer(logger *log.Log) *ZapConsumer {
	if logger == nil {
		logger = log.New(walletModule)
	}

	return &ZapConsumer{logger: logger}
}

func (c *ZapConsumer) Log(level Level, message, location string) {
	field := logfields.WithLocation(location)

	switch level {
	case Verbose, Debug:
		c.logger.Debug(message, field)
	case Info:
		c.logger.Info(message, field)
	case Warn:
		c.logger.Warn(message, field)
	default:
		c.logger.Error(message, field)
	}
}

func (c *ZapConsumer) Event(name string, properties map[string]string, measurements map[string]float64) {
	c.logger.Info("wallet event",
		logfields.WithEvent(name),
		logfields.WithProperties(properties),
		logfields.WithMeasurements(measurements),
	)
}

type eventMetrics interface {
	WalletEvent(name string)
}

// MetricsConsumer counts events in the metrics provider and ignores log entries.
type MetricsConsumer struct {
	metrics eventMetrics
}

// NewMetricsConsumer creates a MetricsConsumer.
func NewMetricsConsumer(m eventMetrics) *MetricsConsumer {
	return &MetricsConsumer{metrics: m}
}

func (c *MetricsConsumer) Log(Level, string, string) {}

func (c *MetricsConsumer) Event(name string, _ map[string]string, _ map[string]float64) {
	c.metrics.WalletEvent(name)
}
