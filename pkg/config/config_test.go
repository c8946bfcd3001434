package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/opscart/hardware-cost-compare/pkg/models"
)

func TestNewConfigDefaults(t *testing.T) {
	for _, key := range []string{"TCO_LISTEN_ADDR", "TCO_DEFAULT_CPU", "TCO_SIZING_HEADROOM", "TCO_OUTPUT_FORMAT", "PROMETHEUS_URL"} {
		t.Setenv(key, "")
	}

	cfg := NewConfig()

	if cfg.ListenAddr != ":8080" {
		t.Errorf("Expected default listen address :8080, got %s", cfg.ListenAddr)
	}
	if cfg.DefaultSpec != models.DefaultSpec() {
		t.Errorf("Expected default spec %v, got %v", models.DefaultSpec(), cfg.DefaultSpec)
	}
	if cfg.SizingHeadroom != 1.2 {
		t.Errorf("Expected headroom 1.2, got %.1f", cfg.SizingHeadroom)
	}
	if cfg.SizingCacheTTL != 5*time.Minute {
		t.Errorf("Expected cache TTL 5m, got %v", cfg.SizingCacheTTL)
	}
	if cfg.OutputFormat != "text" {
		t.Errorf("Expected output format text, got %s", cfg.OutputFormat)
	}
	if cfg.PrometheusURL != "" {
		t.Errorf("Expected Prometheus disabled by default, got %s", cfg.PrometheusURL)
	}
}

func TestConfigFromEnvironment(t *testing.T) {
	t.Setenv("TCO_DEFAULT_CPU", "16")
	t.Setenv("TCO_DEFAULT_MEMORY", "64")
	t.Setenv("TCO_SIZING_HEADROOM", "1.5")
	t.Setenv("TCO_SIZING_CACHE_TTL", "30s")
	t.Setenv("PROMETHEUS_URL", "http://prometheus:9090")
	t.Setenv("TCO_OUTPUT_FORMAT", "yaml")

	cfg := NewConfig()

	if cfg.DefaultSpec.CPUCores != 16 || cfg.DefaultSpec.MemoryGB != 64 {
		t.Errorf("Expected 16 CPU / 64 GB from env, got %v", cfg.DefaultSpec)
	}
	if cfg.DefaultSpec.StorageGB != 500 {
		t.Errorf("Storage should keep default 500, got %d", cfg.DefaultSpec.StorageGB)
	}
	if cfg.SizingHeadroom != 1.5 {
		t.Errorf("Expected headroom 1.5 from env, got %.1f", cfg.SizingHeadroom)
	}
	if cfg.SizingCacheTTL != 30*time.Second {
		t.Errorf("Expected TTL 30s from env, got %v", cfg.SizingCacheTTL)
	}
	if cfg.PrometheusURL != "http://prometheus:9090" {
		t.Errorf("Expected custom Prometheus URL, got %s", cfg.PrometheusURL)
	}
	if cfg.OutputFormat != "yaml" {
		t.Errorf("Expected yaml output, got %s", cfg.OutputFormat)
	}
}

func TestInvalidEnvValues(t *testing.T) {
	t.Setenv("TCO_DEFAULT_CPU", "invalid")
	t.Setenv("TCO_SIZING_HEADROOM", "lots")
	t.Setenv("TCO_SIZING_CACHE_TTL", "soon")

	cfg := NewConfig()

	if cfg.DefaultSpec.CPUCores != 4 {
		t.Errorf("Expected fallback to default 4, got %d", cfg.DefaultSpec.CPUCores)
	}
	if cfg.SizingHeadroom != 1.2 {
		t.Errorf("Expected fallback headroom 1.2, got %.1f", cfg.SizingHeadroom)
	}
	if cfg.SizingCacheTTL != 5*time.Minute {
		t.Errorf("Expected fallback TTL 5m, got %v", cfg.SizingCacheTTL)
	}
}

func TestValidation(t *testing.T) {
	tests := []struct {
		name          string
		setupConfig   func(*Config)
		expectError   bool
		errorContains string
	}{
		{
			name:        "valid default config",
			setupConfig: func(c *Config) {},
			expectError: false,
		},
		{
			name: "unknown output format",
			setupConfig: func(c *Config) {
				c.OutputFormat = "xml"
			},
			expectError:   true,
			errorContains: "output format",
		},
		{
			name: "zero default cpu",
			setupConfig: func(c *Config) {
				c.DefaultSpec.CPUCores = 0
			},
			expectError:   true,
			errorContains: "cpu must be at least 1",
		},
		{
			name: "headroom too low",
			setupConfig: func(c *Config) {
				c.SizingHeadroom = 0.8
			},
			expectError:   true,
			errorContains: "must be >= 1.0",
		},
		{
			name: "negative ttl",
			setupConfig: func(c *Config) {
				c.SizingCacheTTL = -time.Second
			},
			expectError:   true,
			errorContains: "must not be negative",
		},
		{
			name: "zero lookback",
			setupConfig: func(c *Config) {
				c.SizingLookback = 0
			},
			expectError:   true,
			errorContains: "lookback",
		},
		{
			name: "percentile above 100",
			setupConfig: func(c *Config) {
				c.SizingPercentile = 101
			},
			expectError:   true,
			errorContains: "percentile",
		},
		{
			name: "valid edge case - headroom 1.0",
			setupConfig: func(c *Config) {
				c.SizingHeadroom = 1.0
			},
			expectError: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := NewConfig()
			cfg.OutputFormat = "text"
			cfg.ListenAddr = ":8080"
			cfg.DefaultSpec = models.DefaultSpec()
			cfg.SizingHeadroom = 1.2
			cfg.SizingCacheTTL = time.Minute
			cfg.SizingPercentile = 95
			tt.setupConfig(cfg)

			err := cfg.Validate()

			if tt.expectError && err == nil {
				t.Errorf("Expected error but got none")
			}
			if !tt.expectError && err != nil {
				t.Errorf("Expected no error but got: %v", err)
			}
			if tt.expectError && err != nil && !strings.Contains(err.Error(), tt.errorContains) {
				t.Errorf("Expected error containing '%s', got '%s'", tt.errorContains, err.Error())
			}
		})
	}
}

func TestLoadDotEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.env")
	if err := os.WriteFile(path, []byte("TCO_DOTENV_PROBE=from-file\n"), 0o600); err != nil {
		t.Fatalf("Failed to write env file: %v", err)
	}
	t.Setenv("TCO_DOTENV_PROBE", "")
	os.Unsetenv("TCO_DOTENV_PROBE")

	if err := LoadDotEnv(path); err != nil {
		t.Fatalf("LoadDotEnv failed: %v", err)
	}
	if got := os.Getenv("TCO_DOTENV_PROBE"); got != "from-file" {
		t.Errorf("Expected value from .env file, got %q", got)
	}

	if err := LoadDotEnv(filepath.Join(dir, "missing.env")); err != nil {
		t.Errorf("Missing .env should be ignored, got %v", err)
	}
}
