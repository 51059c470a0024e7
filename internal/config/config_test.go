package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	if err != nil {
		t.Fatalf("Load() unexpected error: %v", err)
	}

	want := DefaultConfig()
	if cfg.Server.Port != want.Server.Port {
		t.Errorf("Port = %d, want %d", cfg.Server.Port, want.Server.Port)
	}
	if cfg.Data.LoadMode != LoadEager {
		t.Errorf("LoadMode = %q, want %q", cfg.Data.LoadMode, LoadEager)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config does not validate: %v", err)
	}
}

func TestLoadFromFile(t *testing.T) {
	content := `
[server]
port = 9090
request_timeout = "30s"
rate_limit = 5.0
rate_burst = 10
allowed_origins = ["https://tracker.example"]

[data]
file_path = "/srv/arcs.json"
load_mode = "lazy"
`
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() unexpected error: %v", err)
	}

	if cfg.Server.Port != 9090 {
		t.Errorf("Port = %d, want 9090", cfg.Server.Port)
	}
	if cfg.Server.RateLimit != 5.0 || cfg.Server.RateBurst != 10 {
		t.Errorf("rate = %v/%d, want 5/10", cfg.Server.RateLimit, cfg.Server.RateBurst)
	}
	if len(cfg.Server.AllowedOrigins) != 1 || cfg.Server.AllowedOrigins[0] != "https://tracker.example" {
		t.Errorf("AllowedOrigins = %v", cfg.Server.AllowedOrigins)
	}
	if cfg.Data.FilePath != "/srv/arcs.json" || cfg.Data.LoadMode != LoadLazy {
		t.Errorf("data = %q/%q, want /srv/arcs.json/lazy", cfg.Data.FilePath, cfg.Data.LoadMode)
	}

	timeout, err := cfg.GetRequestTimeout()
	if err != nil {
		t.Fatalf("GetRequestTimeout() unexpected error: %v", err)
	}
	if timeout != 30*time.Second {
		t.Errorf("GetRequestTimeout() = %v, want 30s", timeout)
	}
}

func TestLoadMalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("[server\nport ="), 0o644); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}

	if _, err := Load(path); err == nil {
		t.Fatal("Load() = nil error, want parse failure")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{
			name:   "Defaults are valid",
			mutate: func(c *Config) {},
		},
		{
			name:    "Port zero",
			mutate:  func(c *Config) { c.Server.Port = 0 },
			wantErr: true,
		},
		{
			name:    "Port too large",
			mutate:  func(c *Config) { c.Server.Port = 70000 },
			wantErr: true,
		},
		{
			name:    "Bad timeout",
			mutate:  func(c *Config) { c.Server.RequestTimeout = "soon" },
			wantErr: true,
		},
		{
			name:    "Zero rate limit",
			mutate:  func(c *Config) { c.Server.RateLimit = 0 },
			wantErr: true,
		},
		{
			name:    "Zero burst",
			mutate:  func(c *Config) { c.Server.RateBurst = 0 },
			wantErr: true,
		},
		{
			name:    "Empty data path",
			mutate:  func(c *Config) { c.Data.FilePath = "" },
			wantErr: true,
		},
		{
			name:    "Unknown load mode",
			mutate:  func(c *Config) { c.Data.LoadMode = "hot" },
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)

			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
