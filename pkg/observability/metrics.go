// Package observability provides Prometheus metrics and outbound HTTP
// instrumentation for the strom adapter.
package observability

import "github.com/prometheus/client_golang/prometheus"

// LLMBuckets defines histogram buckets suited for LLM inference latencies,
// ranging from 100ms to 120s.
var LLMBuckets = []float64{0.1, 0.5, 1, 2, 5, 10, 30, 60, 120}

// TokenBuckets defines histogram buckets for prompt token estimates,
// ranging from 64 tokens to beyond a 200k context window.
var TokenBuckets = prometheus.ExponentialBuckets(64, 4, 8)

var (
	// CompletionsTotal counts completion requests by model and outcome.
	CompletionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "strom_completions_total",
			Help: "Completion requests",
		},
		[]string{"model", "status"},
	)

	// CompletionDuration records completion duration in seconds by model,
	// measured from submission to the end of the event stream.
	CompletionDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "strom_completion_duration_seconds",
			Help:    "Completion duration",
			Buckets: LLMBuckets,
		},
		[]string{"model"},
	)

	// StreamsActive tracks the number of event streams currently open.
	StreamsActive = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "strom_streams_active",
			Help: "Active event streams",
		},
	)

	// TokensTotal counts tokens reported by the provider, by direction
	// (input, output, cache_write, cache_read).
	TokensTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "strom_tokens_total",
			Help: "Token count",
		},
		[]string{"model", "direction"},
	)

	// HTTPRequestsTotal counts outbound HTTP requests by method and status class.
	HTTPRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "strom_http_requests_total",
			Help: "Outbound HTTP requests",
		},
		[]string{"method", "status"},
	)

	// HTTPRequestDuration records outbound HTTP request duration in seconds.
	// For streaming requests this covers submission to response headers.
	HTTPRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "strom_http_request_duration_seconds",
			Help:    "Outbound HTTP request duration",
			Buckets: LLMBuckets,
		},
		[]string{"method"},
	)

	// EstimatedPromptTokens records advisory prompt-size estimates by model.
	EstimatedPromptTokens = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "strom_estimated_prompt_tokens",
			Help:    "Estimated prompt tokens",
			Buckets: TokenBuckets,
		},
		[]string{"model"},
	)
)

func init() {
	prometheus.MustRegister(
		CompletionsTotal,
		CompletionDuration,
		StreamsActive,
		TokensTotal,
		HTTPRequestsTotal,
		HTTPRequestDuration,
		EstimatedPromptTokens,
	)
}
