// Package noop provides a static authenticator that returns a fixed
// session. Used for development and tests that exercise the adapter
// without real token derivation.
package noop

import (
	"context"
	"net/http"

	"github.com/rhuss/strom/pkg/auth"
)

// Authenticator returns a fixed session for any well-formed credential.
// Zero-value fields fall back to a "noop" token and http.DefaultClient.
type Authenticator struct {
	Token  string
	Client *http.Client
}

func (a *Authenticator) Authenticate(_ context.Context, cred auth.Credential) (*auth.Session, error) {
	if err := cred.Validate(); err != nil {
		return nil, err
	}

	token := a.Token
	if token == "" {
		token = "noop"
	}
	client := a.Client
	if client == nil {
		client = http.DefaultClient
	}
	return &auth.Session{Token: token, Client: client}, nil
}
