package observability

import (
	"encoding/hex"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

type donationMetrics struct {
	collected  *prometheus.CounterVec
	skipped    *prometheus.CounterVec
	rateWrites prometheus.Counter
}

var (
	donationMetricsOnce sync.Once
	donationRegistry    *donationMetrics
)

// Donations returns the metrics registry tracking hook activity.
func Donations() *donationMetrics {
	donationMetricsOnce.Do(func() {
		donationRegistry = &donationMetrics{
			collected: prometheus.NewCounterVec(prometheus.CounterOpts{
				Namespace: "tithe",
				Subsystem: "hook",
				Name:      "donations_total",
				Help:      "Count of materialized donations segmented by asset.",
			}, []string{"asset"}),
			skipped: prometheus.NewCounterVec(prometheus.CounterOpts{
				Namespace: "tithe",
				Subsystem: "hook",
				Name:      "skipped_total",
				Help:      "Count of swaps that produced no donation, segmented by reason.",
			}, []string{"reason"}),
			rateWrites: prometheus.NewCounter(prometheus.CounterOpts{
				Namespace: "tithe",
				Subsystem: "governance",
				Name:      "rate_updates_total",
				Help:      "Count of accepted per-pool rate updates.",
			}),
		}
		prometheus.MustRegister(donationRegistry.collected, donationRegistry.skipped, donationRegistry.rateWrites)
	})
	return donationRegistry
}

// RecordCollected increments the donation counter for the supplied asset.
func (m *donationMetrics) RecordCollected(asset [20]byte) {
	if m == nil {
		return
	}
	m.collected.WithLabelValues(hex.EncodeToString(asset[:])).Inc()
}

// RecordSkipped increments the skip counter for the supplied reason.
func (m *donationMetrics) RecordSkipped(reason string) {
	if m == nil {
		return
	}
	if reason == "" {
		reason = "unknown"
	}
	m.skipped.WithLabelValues(reason).Inc()
}

// RecordRateUpdate increments the accepted rate update counter.
func (m *donationMetrics) RecordRateUpdate() {
	if m == nil {
		return
	}
	m.rateWrites.Inc()
}
