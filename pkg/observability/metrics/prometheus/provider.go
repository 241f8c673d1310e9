/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package prometheus

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/trustbloc/verifiedid-go/internal/logfields"
	"github.com/trustbloc/verifiedid-go/pkg/observability/metrics"
)

var logger = metrics.Logger

var (
	createOnce sync.Once       //nolint:gochecknoglobals
	instance   metrics.Metrics //nolint:gochecknoglobals
)

type promProvider struct {
	httpServer *http.Server
}

// NewPrometheusProvider creates new instance of Prometheus Metrics Provider.
// When addr is empty metrics are collected but not exposed.
func NewPrometheusProvider(addr string) metrics.Provider {
	if addr == "" {
		return &promProvider{}
	}

	mux := http.NewServeMux()
	h := NewHandler()
	mux.Handle(h.Path(), h.Handler())

	return &promProvider{
		httpServer: &http.Server{
			Addr:              addr,
			Handler:           mux,
			ReadHeaderTimeout: 5 * time.Second,
		},
	}
}

// Create creates/initializes the prometheus metrics provider.
func (pp *promProvider) Create() error {
	if pp.httpServer == nil {
		return nil
	}

	go func() {
		if err := pp.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("metrics HTTP server stopped", logfields.WithError(err))
		}
	}()

	return nil
}

// Metrics returns supported metrics.
func (pp *promProvider) Metrics() metrics.Metrics {
	return GetMetrics()
}

// Destroy destroys the prometheus metrics provider.
func (pp *promProvider) Destroy() error {
	if pp.httpServer != nil {
		return pp.httpServer.Shutdown(context.Background())
	}

	return nil
}

// GetMetrics returns metrics implementation.
func GetMetrics() metrics.Metrics {
	createOnce.Do(func() {
		instance = NewMetrics()
	})

	return instance
}

// PromMetrics manages the metrics for the wallet engine.
type PromMetrics struct {
	signTime           prometheus.Histogram
	processRequestTime prometheus.Histogram
	networkRequestTime prometheus.Histogram
	walletEvents       *prometheus.CounterVec
}

// NewMetrics creates instance of prometheus metrics.
func NewMetrics() metrics.Metrics {
	pm := &PromMetrics{
		signTime:           newSignTime(),
		processRequestTime: newProcessRequestTime(),
		networkRequestTime: newNetworkRequestTime(),
		walletEvents:       newWalletEvents(),
	}

	registerMetrics(pm)

	return pm
}

// SignTime records the time for sign.
func (pm *PromMetrics) SignTime(value time.Duration) {
	pm.signTime.Observe(value.Seconds())

	logger.Debug("crypto sign time", logfields.WithDuration(value))
}

// ProcessRequestTime records the time it takes a processor to build a request.
func (pm *PromMetrics) ProcessRequestTime(value time.Duration) {
	pm.processRequestTime.Observe(value.Seconds())

	logger.Debug("process request time", logfields.WithDuration(value))
}

// NetworkRequestTime records the time of an outbound call.
func (pm *PromMetrics) NetworkRequestTime(value time.Duration) {
	pm.networkRequestTime.Observe(value.Seconds())

	logger.Debug("network request time", logfields.WithDuration(value))
}

// WalletEvent counts a named wallet event.
func (pm *PromMetrics) WalletEvent(name string) {
	pm.walletEvents.WithLabelValues(name).Inc()
}

func registerMetrics(pm *PromMetrics) {
	prometheus.MustRegister(
		pm.signTime, pm.processRequestTime, pm.networkRequestTime, pm.walletEvents,
	)
}

func newCounter(subsystem, name, help string, labels prometheus.Labels) prometheus.Counter {
	return prometheus.NewCounter(prometheus.CounterOpts{
		Namespace:   metrics.Namespace,
		Subsystem:   subsystem,
		Name:        name,
		Help:        help,
		ConstLabels: labels,
	})
}

func newHistogram(subsystem, name, help string, labels prometheus.Labels) prometheus.Histogram {
	return prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace:   metrics.Namespace,
		Subsystem:   subsystem,
		Name:        name,
		Help:        help,
		ConstLabels: labels,
	})
}

func newSignTime() prometheus.Histogram {
	return newHistogram(
		metrics.Crypto, metrics.CryptoSignTimeMetric,
		"The time (in seconds) it takes to run crypto sign.",
		nil,
	)
}

func newProcessRequestTime() prometheus.Histogram {
	return newHistogram(
		metrics.Processor, metrics.ProcessRequestTimeMetric,
		"The time (in seconds) it takes a processor to turn a raw request into a verified id request.",
		nil,
	)
}

func newNetworkRequestTime() prometheus.Histogram {
	return newHistogram(
		metrics.Networking, metrics.NetworkRequestTimeMetric,
		"The time (in seconds) it takes to complete an outbound HTTP call.",
		nil,
	)
}

func newWalletEvents() *prometheus.CounterVec {
	return prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: metrics.Namespace,
		Subsystem: metrics.Wallet,
		Name:      metrics.WalletEventsMetric,
		Help:      "The number of wallet events by name.",
	}, []string{metrics.WalletEventLabel})
}
