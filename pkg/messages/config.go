package messages

import "strings"

// DefaultBaseURL is the production Messages API endpoint.
const DefaultBaseURL = "https://api.anthropic.com"

// DefaultAPIVersion is the Messages API revision this adapter speaks.
const DefaultAPIVersion = "2023-06-01"

// DefaultBeta enables prompt caching on backends that gate it behind a
// beta header.
const DefaultBeta = "prompt-caching-2024-07-31"

const (
	headerAPIVersion = "anthropic-version"
	headerBeta       = "anthropic-beta"
)

// Config holds Messages client configuration.
type Config struct {
	// BaseURL is the backend endpoint without a trailing slash.
	// Empty selects DefaultBaseURL.
	BaseURL string

	// APIVersion is sent as the anthropic-version header on every request.
	// Empty selects DefaultAPIVersion.
	APIVersion string

	// Beta is sent as the anthropic-beta header on every request.
	// Empty selects DefaultBeta.
	Beta string
}

func (c *Config) applyDefaults() {
	if c.BaseURL == "" {
		c.BaseURL = DefaultBaseURL
	}
	c.BaseURL = strings.TrimRight(c.BaseURL, "/")
	if c.APIVersion == "" {
		c.APIVersion = DefaultAPIVersion
	}
	if c.Beta == "" {
		c.Beta = DefaultBeta
	}
}
