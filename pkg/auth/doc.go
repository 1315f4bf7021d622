// Package auth provides pluggable session authentication for strom.
//
// An [Authenticator] turns a key/secret [Credential] into a [Session]: an
// opaque bearer token bound to the HTTP client that presents it. The default
// implementation in pkg/auth/token derives the token by signing the key with
// the secret; substituting a real provider auth flow means implementing the
// one-method interface.
//
// Authentication is eager: a handler authenticates once at construction and
// either holds a complete session afterwards or failed construction
// entirely. Credential shape problems surface as authentication errors
// before any I/O; derivation failures surface as authentication transport
// errors. There is no lazy or partial state in between.
package auth
