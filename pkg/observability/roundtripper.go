package observability

import (
	"net/http"
	"strconv"
	"time"
)

// Instrument returns client middleware that records outbound request
// metrics. The returned function satisfies transport.Middleware.
//
// It captures:
//   - strom_http_requests_total (counter): per request, with method and status class labels
//   - strom_http_request_duration_seconds (histogram): submission to response headers
//
// Transport errors count with status class "error".
func Instrument() func(http.RoundTripper) http.RoundTripper {
	return func(next http.RoundTripper) http.RoundTripper {
		return instrumentedTransport{next: next}
	}
}

type instrumentedTransport struct {
	next http.RoundTripper
}

func (t instrumentedTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	start := time.Now()

	resp, err := t.next.RoundTrip(req)

	HTTPRequestDuration.WithLabelValues(req.Method).Observe(time.Since(start).Seconds())

	if err != nil {
		HTTPRequestsTotal.WithLabelValues(req.Method, "error").Inc()
		return nil, err
	}

	// Status class label like "2xx", "4xx", "5xx".
	statusStr := strconv.Itoa(resp.StatusCode/100) + "xx"
	HTTPRequestsTotal.WithLabelValues(req.Method, statusStr).Inc()
	return resp, nil
}
