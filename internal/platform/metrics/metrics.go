// Package metrics exposes Prometheus metrics for the crew availability
// engine and its HTTP surface.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Registry is the application's own prometheus registry, kept separate from
// the default one so tests can register freely.
var Registry = prometheus.NewRegistry()

var factory = promauto.With(Registry)

// EvaluationsTotal counts single-request eligibility evaluations by
// recommendation.
var EvaluationsTotal = factory.NewCounterVec(prometheus.CounterOpts{
	Namespace: "eligibility",
	Name:      "evaluations_total",
	Help:      "Single leave request evaluations by recommendation",
}, []string{"recommendation"})

// BulkRunsTotal counts roster-period bulk evaluations.
var BulkRunsTotal = factory.NewCounter(prometheus.CounterOpts{
	Namespace: "eligibility",
	Name:      "bulk_runs_total",
	Help:      "Bulk roster period evaluations executed",
})

// BulkRequestsClassified counts requests classified per bulk run, by outcome.
var BulkRequestsClassified = factory.NewCounterVec(prometheus.CounterOpts{
	Namespace: "eligibility",
	Name:      "bulk_requests_classified_total",
	Help:      "Pending requests classified during bulk evaluation, by recommendation",
}, []string{"recommendation"})

// BulkDurationSeconds tracks time to evaluate a full roster period.
var BulkDurationSeconds = factory.NewHistogram(prometheus.HistogramOpts{
	Namespace: "eligibility",
	Name:      "bulk_duration_seconds",
	Help:      "Time taken to evaluate all pending requests of a roster period",
	Buckets:   []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0},
})

// DeficitDays gauges days with a crew deficit seen by the most recent
// availability computation, by role.
var DeficitDays = factory.NewGaugeVec(prometheus.GaugeOpts{
	Namespace: "availability",
	Name:      "deficit_days",
	Help:      "Days in deficit in the last computed availability window, by role",
}, []string{"role"})

// HTTPRequestsTotal counts handled HTTP requests by method and status class.
var HTTPRequestsTotal = factory.NewCounterVec(prometheus.CounterOpts{
	Namespace: "http",
	Name:      "requests_total",
	Help:      "HTTP requests by method and status",
}, []string{"method", "status"})

// HTTPDurationSeconds tracks request handling latency.
var HTTPDurationSeconds = factory.NewHistogram(prometheus.HistogramOpts{
	Namespace: "http",
	Name:      "request_duration_seconds",
	Help:      "HTTP request latency",
	Buckets:   []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.25, 0.5, 1.0, 2.5},
})
