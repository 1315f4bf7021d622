package transport

import (
	"log/slog"
	"net/http"
	"time"
)

// Logging returns middleware that emits a structured log entry for each
// outbound request. The entry includes method, URL, status, duration, and
// the request ID from the context. Successful requests log at debug level
// so a quiet client stays quiet; failures log at error level.
func Logging(logger *slog.Logger) Middleware {
	if logger == nil {
		logger = slog.Default()
	}
	return func(next http.RoundTripper) http.RoundTripper {
		return RoundTripperFunc(func(req *http.Request) (*http.Response, error) {
			start := time.Now()

			resp, err := next.RoundTrip(req)

			attrs := []slog.Attr{
				slog.String("request_id", RequestIDFromContext(req.Context())),
				slog.String("method", req.Method),
				slog.String("url", req.URL.String()),
				slog.Duration("duration", time.Since(start)),
			}

			if err != nil {
				attrs = append(attrs, slog.String("error", err.Error()))
				logger.LogAttrs(req.Context(), slog.LevelError, "request failed", attrs...)
				return nil, err
			}

			attrs = append(attrs, slog.Int("status", resp.StatusCode))
			logger.LogAttrs(req.Context(), slog.LevelDebug, "request completed", attrs...)
			return resp, nil
		})
	}
}
