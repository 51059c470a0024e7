package config

import (
	"fmt"
	"os"
	"time"

	"github.com/pelletier/go-toml/v2"
)

// Config represents the application configuration.
type Config struct {
	// HTTP server configuration
	Server ServerConfig `toml:"server"`

	// Dataset configuration
	Data DataConfig `toml:"data"`
}

// ServerConfig contains HTTP server settings.
type ServerConfig struct {
	Port           int      `toml:"port"`            // Listen port
	RequestTimeout string   `toml:"request_timeout"` // Per-request timeout (e.g., "15s")
	RateLimit      float64  `toml:"rate_limit"`      // Requests per second per client IP
	RateBurst      int      `toml:"rate_burst"`      // Burst allowance per client IP
	AllowedOrigins []string `toml:"allowed_origins"` // CORS origins for the JSON API (empty = all)
}

// DataConfig contains dataset loading settings.
type DataConfig struct {
	FilePath string `toml:"file_path"` // Path to the arcs JSON document
	LoadMode string `toml:"load_mode"` // "eager" (parse once at startup) or "lazy" (re-read per request)
}

// Load modes.
const (
	LoadEager = "eager"
	LoadLazy  = "lazy"
)

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Port:           8080,
			RequestTimeout: "15s",
			RateLimit:      10,
			RateBurst:      20,
			AllowedOrigins: nil,
		},
		Data: DataConfig{
			FilePath: "data/arcs.json",
			LoadMode: LoadEager,
		},
	}
}

// Load loads the configuration from path. Returns default config if the
// file doesn't exist.
func Load(path string) (*Config, error) {
	// If file doesn't exist, return default config
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return DefaultConfig(), nil
	}

	// Read file
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	// Parse TOML
	var config Config
	if err := toml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("parse config file: %w", err)
	}

	return &config, nil
}

// Validate validates the configuration values.
func (c *Config) Validate() error {
	// Validate listen port
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid port: %d", c.Server.Port)
	}

	// Validate request timeout
	if _, err := time.ParseDuration(c.Server.RequestTimeout); err != nil {
		return fmt.Errorf("invalid request timeout %q: %w", c.Server.RequestTimeout, err)
	}

	// Validate rate limiter settings
	if c.Server.RateLimit <= 0 {
		return fmt.Errorf("rate limit must be positive: %v", c.Server.RateLimit)
	}
	if c.Server.RateBurst < 1 {
		return fmt.Errorf("rate burst must be at least 1: %d", c.Server.RateBurst)
	}

	// Validate dataset settings
	if c.Data.FilePath == "" {
		return fmt.Errorf("data file path cannot be empty")
	}
	if c.Data.LoadMode != LoadEager && c.Data.LoadMode != LoadLazy {
		return fmt.Errorf("invalid load mode %q: want %q or %q", c.Data.LoadMode, LoadEager, LoadLazy)
	}

	return nil
}

// GetRequestTimeout returns the request timeout as a duration.
func (c *Config) GetRequestTimeout() (time.Duration, error) {
	return time.ParseDuration(c.Server.RequestTimeout)
}
