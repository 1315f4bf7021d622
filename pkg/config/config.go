// Package config provides unified configuration for the strom adapter.
//
// Configuration is loaded with a layered approach:
//  1. Built-in defaults
//  2. YAML config file (discovered or explicitly specified)
//  3. Environment variable overrides (STROM_ prefix)
//  4. File reference resolution (_file suffix fields)
//  5. Validation
package config

import "time"

// Config holds all configuration for the strom adapter.
type Config struct {
	Credentials CredentialsConfig `yaml:"credentials"`
	API         APIConfig         `yaml:"api"`
	Model       string            `yaml:"model"`
	Tokenizer   TokenizerConfig   `yaml:"tokenizer"`
	Metrics     MetricsConfig     `yaml:"metrics"`
	Debug       DebugConfig       `yaml:"debug"`
}

// CredentialsConfig holds the key/secret pair presented at authentication.
type CredentialsConfig struct {
	Key        string `yaml:"key"`         // required (directly or via key_file)
	KeyFile    string `yaml:"key_file"`    // _file variant for key
	Secret     string `yaml:"secret"`      // required (directly or via secret_file)
	SecretFile string `yaml:"secret_file"` // _file variant for secret
}

// APIConfig holds backend endpoint settings.
type APIConfig struct {
	BaseURL string        `yaml:"base_url"` // empty selects the production endpoint
	Timeout time.Duration `yaml:"timeout"`  // per-completion deadline, 0 disables
}

// TokenizerConfig holds prompt-size estimation settings.
type TokenizerConfig struct {
	Enabled   bool  `yaml:"enabled"`    // default: true
	CacheSize int64 `yaml:"cache_size"` // estimate cache budget in bytes, default: 64MiB
}

// MetricsConfig holds Prometheus metrics endpoint settings. Serving
// metrics is opt-in; the adapter itself always records them.
type MetricsConfig struct {
	Enabled bool   `yaml:"enabled"` // default: false
	Addr    string `yaml:"addr"`    // default: ":9090"
	Path    string `yaml:"path"`    // default: "/metrics"
}

// DebugConfig holds debug logging settings.
type DebugConfig struct {
	Categories string `yaml:"categories"` // comma-separated, see package debug
	Level      string `yaml:"level"`      // ERROR, WARN, INFO, DEBUG, TRACE
}

// Defaults returns a Config with all default values filled in.
func Defaults() Config {
	return Config{
		Tokenizer: TokenizerConfig{
			Enabled:   true,
			CacheSize: 64 << 20,
		},
		Metrics: MetricsConfig{
			Enabled: false,
			Addr:    ":9090",
			Path:    "/metrics",
		},
	}
}
