package config

import (
	"errors"
	"fmt"
	"strings"
)

// Validate checks the configuration for required fields and valid values.
// It runs after file references are resolved, so _file variants count as
// having provided their value. Returns an error with a descriptive field
// path on failure.
func (c *Config) Validate() error {
	var errs []error

	// credentials.key and credentials.secret are required.
	if c.Credentials.Key == "" {
		errs = append(errs, fmt.Errorf("credentials.key or credentials.key_file is required"))
	}
	if c.Credentials.Secret == "" {
		errs = append(errs, fmt.Errorf("credentials.secret or credentials.secret_file is required"))
	}

	// api.timeout must not be negative.
	if c.API.Timeout < 0 {
		errs = append(errs, fmt.Errorf("api.timeout must not be negative, got %v", c.API.Timeout))
	}

	// tokenizer.cache_size must not be negative.
	if c.Tokenizer.CacheSize < 0 {
		errs = append(errs, fmt.Errorf("tokenizer.cache_size must not be negative, got %d", c.Tokenizer.CacheSize))
	}

	// metrics.addr is required when the endpoint is enabled.
	if c.Metrics.Enabled && c.Metrics.Addr == "" {
		errs = append(errs, fmt.Errorf("metrics.addr is required when metrics.enabled is true"))
	}

	// debug.level must be a known level if set.
	switch strings.ToUpper(strings.TrimSpace(c.Debug.Level)) {
	case "", "TRACE", "DEBUG", "INFO", "WARN", "WARNING", "ERROR":
		// valid
	default:
		errs = append(errs, fmt.Errorf("debug.level must be one of TRACE, DEBUG, INFO, WARN, ERROR, got %q", c.Debug.Level))
	}

	return errors.Join(errs...)
}
