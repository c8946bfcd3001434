package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"k8s.io/client-go/util/homedir"

	"github.com/opscart/hardware-cost-compare/pkg/models"
)

// Config holds application configuration
type Config struct {
	// Server
	ListenAddr string

	// Pricing
	RateCardPath string
	DefaultSpec  models.HardwareSpec

	// Sizing
	PrometheusURL    string
	Kubeconfig       string
	SizingHeadroom   float64 // e.g., 1.2 = 20% above observed usage
	SizingCacheTTL   time.Duration
	SizingTimeout    time.Duration
	SizingLookback   time.Duration // usage window for Prometheus sizing
	SizingPercentile float64       // 95 sizes from P95 usage, 100 from the peak

	// Output
	OutputFormat string // text, json, yaml
	LogLevel     string
	LogFormat    string // console, json
}

// LoadDotEnv reads .env files into the environment. Missing files are not an error.
func LoadDotEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	var existing []string
	for _, f := range files {
		if _, err := os.Stat(f); err == nil {
			existing = append(existing, f)
		}
	}
	if len(existing) == 0 {
		return nil
	}
	if err := godotenv.Load(existing...); err != nil {
		return fmt.Errorf("failed to load %v: %w", existing, err)
	}
	return nil
}

// NewConfig creates a new configuration with defaults
func NewConfig() *Config {
	defaults := models.DefaultSpec()

	return &Config{
		ListenAddr:   getEnv("TCO_LISTEN_ADDR", ":8080"),
		RateCardPath: getEnv("TCO_RATE_CARD", ""),
		DefaultSpec: models.HardwareSpec{
			CPUCores:  getEnvInt("TCO_DEFAULT_CPU", defaults.CPUCores),
			MemoryGB:  getEnvInt("TCO_DEFAULT_MEMORY", defaults.MemoryGB),
			StorageGB: getEnvInt("TCO_DEFAULT_STORAGE", defaults.StorageGB),
		},
		PrometheusURL:    getEnv("PROMETHEUS_URL", ""),
		Kubeconfig:       getEnv("KUBECONFIG", defaultKubeconfig()),
		SizingHeadroom:   getEnvFloat("TCO_SIZING_HEADROOM", 1.2),
		SizingCacheTTL:   getEnvDuration("TCO_SIZING_CACHE_TTL", 5*time.Minute),
		SizingTimeout:    getEnvDuration("TCO_SIZING_TIMEOUT", 10*time.Second),
		SizingLookback:   getEnvDuration("TCO_SIZING_LOOKBACK", 7*24*time.Hour),
		SizingPercentile: getEnvFloat("TCO_SIZING_PERCENTILE", 95),
		OutputFormat:     getEnv("TCO_OUTPUT_FORMAT", "text"),
		LogLevel:         getEnv("LOG_LEVEL", "info"),
		LogFormat:        getEnv("LOG_FORMAT", "console"),
	}
}

func defaultKubeconfig() string {
	if home := homedir.HomeDir(); home != "" {
		return filepath.Join(home, ".kube", "config")
	}
	return ""
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseFloat(value, 64); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if parsed, err := time.ParseDuration(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

// Validate checks if configuration is valid
func (c *Config) Validate() error {
	switch c.OutputFormat {
	case "text", "json", "yaml":
	default:
		return fmt.Errorf("output format must be text, json, or yaml, got %q", c.OutputFormat)
	}
	if err := c.DefaultSpec.Validate(); err != nil {
		return fmt.Errorf("default specification: %w", err)
	}
	if c.SizingHeadroom < 1.0 {
		return fmt.Errorf("sizing headroom must be >= 1.0")
	}
	if c.SizingCacheTTL < 0 {
		return fmt.Errorf("sizing cache TTL must not be negative")
	}
	if c.SizingLookback <= 0 {
		return fmt.Errorf("sizing lookback must be positive")
	}
	if c.SizingPercentile <= 0 || c.SizingPercentile > 100 {
		return fmt.Errorf("sizing percentile must be in (0, 100], got %.1f", c.SizingPercentile)
	}
	if c.ListenAddr == "" {
		return fmt.Errorf("TCO_LISTEN_ADDR must not be empty")
	}
	return nil
}
