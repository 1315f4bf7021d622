package transport

import (
	"crypto/rand"
	"encoding/hex"
	"net/http"
)

// RequestID returns middleware that stamps each outbound request with an
// X-Request-ID header. If the request context already carries a request ID
// (set with ContextWithRequestID), that value is used. Otherwise, a new
// unique ID is generated.
//
// The chosen ID is also stored in the request context so downstream
// middleware can retrieve it with RequestIDFromContext.
func RequestID() Middleware {
	return func(next http.RoundTripper) http.RoundTripper {
		return RoundTripperFunc(func(req *http.Request) (*http.Response, error) {
			id := RequestIDFromContext(req.Context())
			if id == "" {
				id = generateRequestID()
			}
			// RoundTrippers must not mutate the caller's request.
			r := req.Clone(ContextWithRequestID(req.Context(), id))
			r.Header.Set("X-Request-ID", id)
			return next.RoundTrip(r)
		})
	}
}

// generateRequestID creates a new unique request ID as a hex string.
func generateRequestID() string {
	b := make([]byte, 16)
	rand.Read(b)
	return hex.EncodeToString(b)
}
