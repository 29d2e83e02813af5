// Package config provides configuration management.
package config

import (
	"encoding/json"
	"os"
	"path/filepath"

	"compliance-cost/internal/logging"
)

// Config is the main application configuration
type Config struct {
	// Version is the configuration version
	Version string `json:"version"`

	// Extraction contains driver extraction settings
	Extraction ExtractionConfig `json:"extraction"`

	// Model contains generative-model settings
	Model ModelConfig `json:"model"`

	// Storage contains estimate store settings
	Storage StorageConfig `json:"storage"`

	// Output contains output configuration
	Output OutputConfig `json:"output"`

	// Logging contains logging configuration
	Logging logging.Config `json:"logging"`
}

// ExtractionConfig contains driver extraction settings
type ExtractionConfig struct {
	// RulesFile is an optional HCL file overriding or extending the
	// built-in deterministic rule table
	RulesFile string `json:"rules_file,omitempty"`

	// CacheEnabled enables extraction memoization
	CacheEnabled bool `json:"cache_enabled"`
}

// ModelConfig contains generative-model settings.
// Extraction and allocation enrichment only run the model path when
// Enabled is true; every model failure degrades to the deterministic
// path, never to a caller-visible error.
type ModelConfig struct {
	// Enabled turns the generative-model path on
	Enabled bool `json:"enabled"`

	// BaseURL is the messages API endpoint
	BaseURL string `json:"base_url"`

	// Model is the model identifier
	Model string `json:"model"`

	// APIKeyEnv names the environment variable holding the API key
	APIKeyEnv string `json:"api_key_env"`

	// MaxTokens bounds the response size
	MaxTokens int `json:"max_tokens"`

	// TimeoutSeconds bounds each HTTP attempt
	TimeoutSeconds int `json:"timeout_seconds"`

	// RetryAttempts caps retries; backoff starts at 1s and doubles
	RetryAttempts int `json:"retry_attempts"`
}

// StorageConfig contains estimate store settings
type StorageConfig struct {
	// Backend selects the store implementation (memory, postgres)
	Backend string `json:"backend"`

	// DSN is the PostgreSQL connection string (postgres backend only)
	DSN string `json:"dsn,omitempty"`
}

// OutputConfig contains output-related settings
type OutputConfig struct {
	// DefaultFormat is the default output format (cli, json)
	DefaultFormat string `json:"default_format"`

	// ShowDrivers shows the per-driver breakdown
	ShowDrivers bool `json:"show_drivers"`

	// ShowConfidence shows confidence scores
	ShowConfidence bool `json:"show_confidence"`

	// NoColor disables colored CLI output
	NoColor bool `json:"no_color"`
}

// Default returns a default configuration
func Default() *Config {
	return &Config{
		Version: "1.0",
		Extraction: ExtractionConfig{
			CacheEnabled: true,
		},
		Model: ModelConfig{
			Enabled:        false,
			BaseURL:        "https://api.anthropic.com/v1/messages",
			Model:          "claude-sonnet-4-20250514",
			APIKeyEnv:      "ANTHROPIC_API_KEY",
			MaxTokens:      2048,
			TimeoutSeconds: 30,
			RetryAttempts:  3,
		},
		Storage: StorageConfig{
			Backend: "memory",
		},
		Output: OutputConfig{
			DefaultFormat:  "cli",
			ShowDrivers:    true,
			ShowConfidence: false,
		},
		Logging: logging.DefaultConfig(),
	}
}

// Load loads configuration from a file
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return nil, err
	}

	config := Default()
	if err := json.Unmarshal(data, config); err != nil {
		return nil, err
	}

	return config, nil
}

// Save saves configuration to a file
func (c *Config) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// Global configuration instance
var globalConfig = Default()

// Get returns the global configuration
func Get() *Config {
	return globalConfig
}

// Set sets the global configuration
func Set(config *Config) {
	globalConfig = config
}
