package transport

import "net/http"

// Bearer returns middleware that attaches the session token to every
// outbound request as an Authorization bearer header. The token is opaque
// to this package; the authenticator that derived it owns its meaning.
func Bearer(token string) Middleware {
	return func(next http.RoundTripper) http.RoundTripper {
		return RoundTripperFunc(func(req *http.Request) (*http.Response, error) {
			r := req.Clone(req.Context())
			r.Header.Set("Authorization", "Bearer "+token)
			return next.RoundTrip(r)
		})
	}
}
