package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Load loads configuration from a layered set of sources.
//
// The loading order is:
//  1. Built-in defaults
//  2. YAML config file (explicit path, STROM_CONFIG env, ./strom.yaml, /etc/strom/config.yaml)
//  3. Environment variable overrides
//  4. File reference resolution (_file suffix)
//  5. Validation
func Load(configPath string) (*Config, error) {
	// Start with defaults.
	cfg := Defaults()

	// Discover and load YAML config file.
	filePath := discoverConfigFile(configPath)
	if filePath != "" {
		if err := loadYAMLFile(filePath, &cfg); err != nil {
			return nil, fmt.Errorf("loading config file %s: %w", filePath, err)
		}
	}

	// Apply environment variable overrides.
	applyEnvOverrides(&cfg)

	// Resolve _file references.
	if err := resolveFileReferences(&cfg); err != nil {
		return nil, fmt.Errorf("resolving file references: %w", err)
	}

	// Validate.
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}

	return &cfg, nil
}

// discoverConfigFile finds the config file path using the discovery order:
// 1. Explicit configPath argument
// 2. STROM_CONFIG environment variable
// 3. ./strom.yaml in the current directory
// 4. /etc/strom/config.yaml
//
// Returns empty string if no config file is found.
func discoverConfigFile(configPath string) string {
	// Explicit path takes priority.
	if configPath != "" {
		return configPath
	}

	// Check STROM_CONFIG env var.
	if envPath := os.Getenv("STROM_CONFIG"); envPath != "" {
		return envPath
	}

	// Check common locations.
	candidates := []string{
		"strom.yaml",
		"/etc/strom/config.yaml",
	}
	for _, path := range candidates {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}

	return ""
}

// loadYAMLFile reads and parses a YAML file into the Config struct.
// Fields not present in the YAML retain their current (default) values.
func loadYAMLFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(data, cfg)
}

// applyEnvOverrides maps environment variables to config fields.
// Environment always wins over file values.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("STROM_KEY"); v != "" {
		cfg.Credentials.Key = v
	}
	if v := os.Getenv("STROM_SECRET"); v != "" {
		cfg.Credentials.Secret = v
	}
	if v := os.Getenv("STROM_BASE_URL"); v != "" {
		cfg.API.BaseURL = v
	}
	if v := os.Getenv("STROM_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.API.Timeout = d
		}
	}
	if v := os.Getenv("STROM_MODEL"); v != "" {
		cfg.Model = v
	}
	if v := os.Getenv("STROM_METRICS_ADDR"); v != "" {
		cfg.Metrics.Addr = v
	}
	// STROM_DEBUG and STROM_LOG_LEVEL are read by the debug package
	// directly; mirroring them here keeps the config dump complete.
	if v := os.Getenv("STROM_DEBUG"); v != "" {
		cfg.Debug.Categories = v
	}
	if v := os.Getenv("STROM_LOG_LEVEL"); v != "" {
		cfg.Debug.Level = v
	}
}

// resolveFileReferences reads _file fields and populates the corresponding
// value fields. For each field ending in _file, if the value field is empty
// and the file field is set, the file is read, whitespace is trimmed, and
// the value field is populated.
func resolveFileReferences(cfg *Config) error {
	// credentials.key_file -> credentials.key
	if cfg.Credentials.KeyFile != "" && cfg.Credentials.Key == "" {
		val, err := readSecretFile(cfg.Credentials.KeyFile)
		if err != nil {
			return fmt.Errorf("credentials.key_file: %w", err)
		}
		cfg.Credentials.Key = val
	}

	// credentials.secret_file -> credentials.secret
	if cfg.Credentials.SecretFile != "" && cfg.Credentials.Secret == "" {
		val, err := readSecretFile(cfg.Credentials.SecretFile)
		if err != nil {
			return fmt.Errorf("credentials.secret_file: %w", err)
		}
		cfg.Credentials.Secret = val
	}

	return nil
}

// readSecretFile reads a file and returns its content with surrounding whitespace trimmed.
func readSecretFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(data)), nil
}
