// Package metrics exposes dispatcher counters and latency histograms to prometheus.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "thurgood"

// Outcome labels
const (
	OutcomeOK         = "ok"
	OutcomeInvalid    = "invalid"
	OutcomeNotFound   = "not_found"
	OutcomeNoCapacity = "no_capacity"
	OutcomePublishErr = "publish_error"
	OutcomeReleaseErr = "release_error"
	OutcomeStoreErr   = "store_error"
)

// Metrics holds dispatcher collectors. A nil *Metrics is valid and records nothing.
type Metrics struct {
	submitTotal   *prometheus.CounterVec
	completeTotal *prometheus.CounterVec
	publishTotal  *prometheus.CounterVec
	submitLatency *prometheus.HistogramVec
	reservedGauge prometheus.Gauge
}

// New creates dispatcher collectors
func New() *Metrics {
	return &Metrics{
		submitTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "submit_total",
			Help:      "Number of job submissions by outcome",
		}, []string{"outcome"}),
		completeTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "complete_total",
			Help:      "Number of job completions by outcome",
		}, []string{"outcome"}),
		publishTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "publish_total",
			Help:      "Number of work queue publications by kind and outcome",
		}, []string{"kind", "outcome"}),
		submitLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name: prometheus.BuildFQName(namespace, "", "submit_latency_seconds"),
			Help: "Histogram represents latency of job submission",
		}, []string{"outcome"}),
		reservedGauge: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "reservations_inflight",
			Help:      "Reservations made minus servers released by this process",
		}),
	}
}

// Collectors returns all collectors
func (m *Metrics) Collectors() []prometheus.Collector {
	if m == nil {
		return nil
	}
	return []prometheus.Collector{m.submitTotal, m.completeTotal, m.publishTotal, m.submitLatency, m.reservedGauge}
}

// Register registers collectors with registerer
func (m *Metrics) Register(registerer prometheus.Registerer) error {
	for _, collector := range m.Collectors() {
		if err := registerer.Register(collector); err != nil {
			return err
		}
	}
	return nil
}

// ObserveSubmit records a submission outcome and its latency
func (m *Metrics) ObserveSubmit(outcome string, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.submitTotal.WithLabelValues(outcome).Inc()
	m.submitLatency.WithLabelValues(outcome).Observe(elapsed.Seconds())
}

// CountComplete records a completion outcome
func (m *Metrics) CountComplete(outcome string) {
	if m == nil {
		return
	}
	m.completeTotal.WithLabelValues(outcome).Inc()
}

// CountPublish records a queue publication; kind is "dispatch" or "relay"
func (m *Metrics) CountPublish(kind, outcome string) {
	if m == nil {
		return
	}
	m.publishTotal.WithLabelValues(kind, outcome).Inc()
}

// Reserved records a server reservation
func (m *Metrics) Reserved() {
	if m == nil {
		return
	}
	m.reservedGauge.Inc()
}

// Released records a server release
func (m *Metrics) Released() {
	if m == nil {
		return
	}
	m.reservedGauge.Dec()
}
