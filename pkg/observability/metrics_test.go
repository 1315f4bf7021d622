package observability

import (
	"errors"
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
)

// TestMetricsRegistered verifies that all metrics are registered in the
// default registry without panicking.
func TestMetricsRegistered(t *testing.T) {
	expected := map[string]bool{
		"strom_completions_total":              false,
		"strom_completion_duration_seconds":    false,
		"strom_streams_active":                 false,
		"strom_tokens_total":                   false,
		"strom_http_requests_total":            false,
		"strom_http_request_duration_seconds":  false,
		"strom_estimated_prompt_tokens":        false,
	}

	// Counters and histograms only appear in gather output after their
	// first observation, so seed every metric.
	CompletionsTotal.WithLabelValues("test-model", "ok").Inc()
	CompletionDuration.WithLabelValues("test-model").Observe(0.1)
	TokensTotal.WithLabelValues("test-model", "input").Add(10)
	HTTPRequestsTotal.WithLabelValues("POST", "2xx").Inc()
	HTTPRequestDuration.WithLabelValues("POST").Observe(0.1)
	EstimatedPromptTokens.WithLabelValues("test-model").Observe(512)

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

// roundTripperFunc adapts a function for test transports.
type roundTripperFunc func(*http.Request) (*http.Response, error)

func (f roundTripperFunc) RoundTrip(req *http.Request) (*http.Response, error) {
	return f(req)
}

// TestInstrumentRecordsRequestCount verifies that the instrumented transport
// increments the request counter with the status class label.
func TestInstrumentRecordsRequestCount(t *testing.T) {
	before := counterValue(t, HTTPRequestsTotal, "POST", "2xx")

	rt := Instrument()(roundTripperFunc(func(req *http.Request) (*http.Response, error) {
		return &http.Response{
			StatusCode: http.StatusOK,
			Body:       io.NopCloser(strings.NewReader("")),
		}, nil
	}))

	req, _ := http.NewRequest("POST", "http://backend/v1/messages", nil)
	resp, err := rt.RoundTrip(req)
	if err != nil {
		t.Fatalf("RoundTrip: %v", err)
	}
	resp.Body.Close()

	after := counterValue(t, HTTPRequestsTotal, "POST", "2xx")
	if after-before != 1 {
		t.Errorf("expected request count to increase by 1, got delta=%f", after-before)
	}
}

// TestInstrumentRecordsTransportError verifies that transport failures count
// under the "error" status class.
func TestInstrumentRecordsTransportError(t *testing.T) {
	before := counterValue(t, HTTPRequestsTotal, "POST", "error")

	rt := Instrument()(roundTripperFunc(func(req *http.Request) (*http.Response, error) {
		return nil, errors.New("connection refused")
	}))

	req, _ := http.NewRequest("POST", "http://backend/v1/messages", nil)
	if _, err := rt.RoundTrip(req); err == nil {
		t.Fatal("expected transport error")
	}

	after := counterValue(t, HTTPRequestsTotal, "POST", "error")
	if after-before != 1 {
		t.Errorf("expected error count to increase by 1, got delta=%f", after-before)
	}
}

// TestInstrumentRecordsDuration verifies that the instrumented transport
// records a duration observation per request.
func TestInstrumentRecordsDuration(t *testing.T) {
	before := histogramCount(t, HTTPRequestDuration, "GET")

	rt := Instrument()(roundTripperFunc(func(req *http.Request) (*http.Response, error) {
		return &http.Response{
			StatusCode: http.StatusOK,
			Body:       io.NopCloser(strings.NewReader("")),
		}, nil
	}))

	req, _ := http.NewRequest("GET", "http://backend/healthz", nil)
	resp, err := rt.RoundTrip(req)
	if err != nil {
		t.Fatalf("RoundTrip: %v", err)
	}
	resp.Body.Close()

	after := histogramCount(t, HTTPRequestDuration, "GET")
	if after-before != 1 {
		t.Errorf("expected histogram sample count to increase by 1, got delta=%d", after-before)
	}
}

// TestStreamsActiveGauge verifies the gauge moves in both directions.
func TestStreamsActiveGauge(t *testing.T) {
	baseline := gaugeValue(t, StreamsActive)

	StreamsActive.Inc()
	if got := gaugeValue(t, StreamsActive); got != baseline+1 {
		t.Errorf("expected gauge=%f after Inc, got %f", baseline+1, got)
	}

	StreamsActive.Dec()
	if got := gaugeValue(t, StreamsActive); got != baseline {
		t.Errorf("expected gauge=%f after Dec, got %f", baseline, got)
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

// gaugeValue reads the current value of a Gauge.
func gaugeValue(t *testing.T, g prometheus.Gauge) float64 {
	t.Helper()
	m := &dto.Metric{}
	if err := g.Write(m); err != nil {
		t.Fatalf("writing gauge metric: %v", err)
	}
	return m.GetGauge().GetValue()
}
