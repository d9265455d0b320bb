package observability

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
)

// TestMetricsRegistered verifies that all metrics are registered in the
// default registry without panicking.
func TestMetricsRegistered(t *testing.T) {
	expected := map[string]bool{
		"rubric_provider_requests_total":     false,
		"rubric_provider_latency_seconds":    false,
		"rubric_provider_tokens_total":       false,
		"rubric_retry_attempts_total":        false,
		"rubric_batches_total":               false,
		"rubric_parse_outcomes_total":        false,
		"rubric_defaulted_assignments_total": false,
	}

	// Counters and histograms only appear in gather output after their
	// first observation, so seed every metric before gathering.
	ProviderRequestsTotal.WithLabelValues("mock", "test", "ok").Inc()
	ProviderLatency.WithLabelValues("mock", "test").Observe(0.1)
	ProviderTokensTotal.WithLabelValues("mock", "test", "input").Add(10)
	RetryAttemptsTotal.WithLabelValues("mock", "test").Inc()
	BatchesTotal.Inc()
	ParseOutcomesTotal.WithLabelValues("direct").Inc()
	DefaultedAssignmentsTotal.Inc()

	families, err := prometheus.DefaultGatherer.Gather()
	if err != nil {
		t.Fatalf("unexpected gather error: %v", err)
	}

	for _, mf := range families {
		if _, ok := expected[mf.GetName()]; ok {
			expected[mf.GetName()] = true
		}
	}

	for name, found := range expected {
		if !found {
			t.Errorf("metric %q not found in default registry", name)
		}
	}
}

// TestCounterIncrements verifies that label lookups and increments work
// for the vector metrics the engine drives.
func TestCounterIncrements(t *testing.T) {
	before := counterValue(t, ProviderRequestsTotal, "mock", "test-model", "error")

	ProviderRequestsTotal.WithLabelValues("mock", "test-model", "error").Inc()

	after := counterValue(t, ProviderRequestsTotal, "mock", "test-model", "error")
	if after-before != 1 {
		t.Errorf("expected counter to increase by 1, got delta=%f", after-before)
	}
}

// TestHistogramObserves verifies latency observations are recorded.
func TestHistogramObserves(t *testing.T) {
	before := histogramCount(t, ProviderLatency, "mock", "test-model")

	ProviderLatency.WithLabelValues("mock", "test-model").Observe(0.25)

	after := histogramCount(t, ProviderLatency, "mock", "test-model")
	if after-before != 1 {
		t.Errorf("expected histogram sample count to increase by 1, got delta=%d", after-before)
	}
}

// counterValue reads the current value of a CounterVec for the given labels.
func counterValue(t *testing.T, cv *prometheus.CounterVec, labels ...string) float64 {
	t.Helper()
	m := &dto.Metric{}
	c, err := cv.GetMetricWithLabelValues(labels...)
	if err != nil {
		t.Fatalf("getting counter metric: %v", err)
	}
	if err := c.(prometheus.Metric).Write(m); err != nil {
		t.Fatalf("writing counter metric: %v", err)
	}
	return m.GetCounter().GetValue()
}

// histogramCount reads the observation count from a HistogramVec.
func histogramCount(t *testing.T, hv *prometheus.HistogramVec, labels ...string) uint64 {
	t.Helper()
	m := &dto.Metric{}
	obs, err := hv.GetMetricWithLabelValues(labels...)
	if err != nil {
		t.Fatalf("getting histogram metric: %v", err)
	}
	if err := obs.(prometheus.Metric).Write(m); err != nil {
		t.Fatalf("writing histogram metric: %v", err)
	}
	return m.GetHistogram().GetSampleCount()
}
