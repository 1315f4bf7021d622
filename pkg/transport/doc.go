// Package transport provides the outbound HTTP client plumbing for the
// strom adapter.
//
// Cross-cutting concerns of outbound requests are expressed as middleware
// over http.RoundTripper: request ID stamping (X-Request-ID), structured
// request logging via log/slog, bearer token injection, and metrics
// instrumentation supplied by pkg/observability. Middleware compose with
// [Chain] and are attached to a client with [NewClient].
//
// Clients built here carry no timeout. Streaming responses stay open for
// the lifetime of the consuming context, so request lifetimes are bounded
// by context cancellation rather than a wall clock.
package transport
