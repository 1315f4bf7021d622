// Package token derives opaque session tokens from key/secret credentials.
//
// The token is an HS256-signed claim set naming the credential key, signed
// with the credential secret. The same credential always yields the same
// token. The scheme is an opaque correlation handle, not a proof of
// identity; it carries no security guarantees.
package token

import (
	"context"
	"log/slog"
	"net/http"

	jwtlib "github.com/golang-jwt/jwt/v5"

	"github.com/rhuss/strom/pkg/api"
	"github.com/rhuss/strom/pkg/auth"
	"github.com/rhuss/strom/pkg/debug"
	"github.com/rhuss/strom/pkg/observability"
	"github.com/rhuss/strom/pkg/transport"
)

const issuer = "strom"

// Config holds the token authenticator configuration.
type Config struct {
	// Base is the transport the session client wraps.
	// If nil, http.DefaultTransport is used.
	Base http.RoundTripper

	// Logger receives outbound request logs. If nil, slog.Default() is used.
	Logger *slog.Logger
}

// Authenticator derives sessions by signing the credential key with the
// credential secret.
type Authenticator struct {
	config Config
}

// New creates a token authenticator.
func New(config Config) *Authenticator {
	return &Authenticator{config: config}
}

// Authenticate validates the credential shape, derives the bearer token,
// and builds the HTTP client that presents it. No network traffic occurs.
func (a *Authenticator) Authenticate(_ context.Context, cred auth.Credential) (*auth.Session, error) {
	if err := cred.Validate(); err != nil {
		return nil, err
	}

	tok, err := deriveToken(cred)
	if err != nil {
		return nil, api.NewAuthenticationTransportError("deriving session token", err)
	}

	client := transport.NewClient(a.config.Base,
		transport.RequestID(),
		transport.Logging(a.config.Logger),
		observability.Instrument(),
		transport.Bearer(tok),
	)

	debug.Log("auth", "session established", "key", cred.Key)
	return &auth.Session{Token: tok, Client: client}, nil
}

// deriveToken signs a claim set naming the credential key with the secret.
// No time-dependent claims are included, keeping derivation deterministic.
func deriveToken(cred auth.Credential) (string, error) {
	claims := jwtlib.MapClaims{
		"iss": issuer,
		"sub": cred.Key,
	}
	t := jwtlib.NewWithClaims(jwtlib.SigningMethodHS256, claims)
	return t.SignedString([]byte(cred.Secret))
}
