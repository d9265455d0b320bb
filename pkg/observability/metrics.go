// Package observability provides Prometheus metrics for monitoring the
// rubric classification engine.
package observability

import "github.com/prometheus/client_golang/prometheus"

// LLMBuckets defines histogram buckets suited for LLM inference latencies,
// ranging from 100ms to 120s.
var LLMBuckets = []float64{0.1, 0.5, 1, 2, 5, 10, 30, 60, 120}

var (
	// ProviderRequestsTotal counts completion requests sent to backend
	// LLM providers by outcome.
	ProviderRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "rubric_provider_requests_total",
			Help: "Provider requests",
		},
		[]string{"provider", "model", "status"},
	)

	// ProviderLatency records backend provider latency in seconds.
	ProviderLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "rubric_provider_latency_seconds",
			Help:    "Provider latency",
			Buckets: LLMBuckets,
		},
		[]string{"provider", "model"},
	)

	// ProviderTokensTotal counts tokens processed by direction (input/output).
	ProviderTokensTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "rubric_provider_tokens_total",
			Help: "Token count",
		},
		[]string{"provider", "model", "direction"},
	)

	// RetryAttemptsTotal counts completion retries after a failed attempt.
	RetryAttemptsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "rubric_retry_attempts_total",
			Help: "Completion retries",
		},
		[]string{"provider", "model"},
	)

	// BatchesTotal counts processed classification batches.
	BatchesTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "rubric_batches_total",
			Help: "Processed batches",
		},
	)

	// ParseOutcomesTotal counts parsed responses by recovery stage
	// (direct, repaired, fallback).
	ParseOutcomesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "rubric_parse_outcomes_total",
			Help: "Response parse outcomes",
		},
		[]string{"stage"},
	)

	// DefaultedAssignmentsTotal counts items that received the fallback
	// category because no valid assignment could be recovered.
	DefaultedAssignmentsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "rubric_defaulted_assignments_total",
			Help: "Defaulted assignments",
		},
	)
)

func init() {
	prometheus.MustRegister(
		ProviderRequestsTotal,
		ProviderLatency,
		ProviderTokensTotal,
		RetryAttemptsTotal,
		BatchesTotal,
		ParseOutcomesTotal,
		DefaultedAssignmentsTotal,
	)
}
