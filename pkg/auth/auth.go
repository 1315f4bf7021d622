package auth

import (
	"context"
	"net/http"

	"github.com/rhuss/strom/pkg/api"
)

// Credential is a key/secret pair identifying a caller. Immutable once
// constructed; validation never mutates it.
type Credential struct {
	Key    string
	Secret string
}

// Validate checks the credential shape before any token derivation.
// It returns an authentication error naming the first missing half,
// or nil. No I/O is involved.
func (c Credential) Validate() *api.Error {
	if c.Key == "" {
		return api.NewAuthenticationError("credential key is required")
	}
	if c.Secret == "" {
		return api.NewAuthenticationError("credential secret is required")
	}
	return nil
}

// Session is an authenticated session: an opaque bearer token bound to the
// HTTP client that presents it. Both fields are set together or not at all;
// a partially authenticated session is never observable.
type Session struct {
	Token  string
	Client *http.Client
}

// Authenticator derives a Session from a Credential. Implementations are
// pluggable so a real provider auth flow can replace the built-in token
// derivation. A handler runs its authenticator exactly once, eagerly at
// construction.
type Authenticator interface {
	Authenticate(ctx context.Context, cred Credential) (*Session, error)
}
