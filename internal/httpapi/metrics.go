// SPDX-License-Identifier: MIT

package httpapi

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Result label values of subspaces_computations_total.
const (
	resultOK               = "ok"
	resultInvalidInput     = "invalid_input"
	resultNumericalFailure = "numerical_failure"
)

// Metrics holds the server's Prometheus collectors on a private registry, so
// several servers (and tests) can coexist in one process.
type Metrics struct {
	registry *prometheus.Registry

	Computations    *prometheus.CounterVec
	ComputeDuration prometheus.Histogram
	Rank            prometheus.Histogram
	Requests        *prometheus.CounterVec
}

// NewMetrics creates and registers all collectors.
func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),

		Computations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "subspaces_computations_total",
				Help: "Subspace computations by outcome",
			},
			[]string{"result"},
		),

		ComputeDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "subspaces_compute_duration_seconds",
				Help:    "Wall time of one four-subspace computation",
				Buckets: []float64{0.00001, 0.00005, 0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1},
			},
		),

		Rank: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "subspaces_matrix_rank",
				Help:    "Rank of successfully processed matrices",
				Buckets: []float64{0, 1, 2, 3, 5, 8, 13},
			},
		),

		Requests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "subspaces_http_requests_total",
				Help: "HTTP requests by route template and status code",
			},
			[]string{"route", "code"},
		),
	}

	m.registry.MustRegister(m.Computations, m.ComputeDuration, m.Rank, m.Requests)

	return m
}

// Registry exposes the private registry (for tests and embedding).
func (m *Metrics) Registry() *prometheus.Registry { return m.registry }

// Handler serves the exposition format for this registry only.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
