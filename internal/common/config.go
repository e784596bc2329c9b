// Package common provides shared utilities for Stockpilot
package common

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	toml "github.com/pelletier/go-toml/v2"
)

// Config holds all configuration for Stockpilot
type Config struct {
	Environment string        `toml:"environment"`
	Server      ServerConfig  `toml:"server"`
	Storage     StorageConfig `toml:"storage"`
	Pricing     PricingConfig `toml:"pricing"`
	Clients     ClientsConfig `toml:"clients"`
	Ingest      IngestConfig  `toml:"ingest"`
	Logging     LoggingConfig `toml:"logging"`
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Host      string `toml:"host"`
	Port      int    `toml:"port"`
	StaticDir string `toml:"static_dir"` // frontend assets, served at /
}

// StorageConfig holds document store configuration
type StorageConfig struct {
	Path string `toml:"path"`
}

// PricingConfig selects the price resolution strategy.
type PricingConfig struct {
	Mode            string `toml:"mode"`             // "simulated" (default) or "live"
	RefreshInterval string `toml:"refresh_interval"` // held-symbol refresh cadence; empty disables
}

// GetRefreshInterval parses the refresh interval, zero when disabled.
func (c *PricingConfig) GetRefreshInterval() time.Duration {
	if c.RefreshInterval == "" {
		return 0
	}
	d, err := time.ParseDuration(c.RefreshInterval)
	if err != nil {
		return 0
	}
	return d
}

// ClientsConfig holds API client configurations
type ClientsConfig struct {
	EODHD EODHDConfig `toml:"eodhd"`
}

// EODHDConfig holds EODHD API configuration
type EODHDConfig struct {
	BaseURL   string `toml:"base_url"`
	APIKey    string `toml:"api_key"`
	RateLimit int    `toml:"rate_limit"`
	Timeout   string `toml:"timeout"`
}

// GetTimeout parses and returns the timeout duration
func (c *EODHDConfig) GetTimeout() time.Duration {
	d, err := time.ParseDuration(c.Timeout)
	if err != nil {
		return 30 * time.Second
	}
	return d
}

// IngestConfig holds price-updater job configuration
type IngestConfig struct {
	UniverseCSV string `toml:"universe_csv"` // symbol universe file
	Schedule    string `toml:"schedule"`     // cron spec; empty means single run
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level string `toml:"level"`
}

// NewDefaultConfig returns a Config with sensible defaults
func NewDefaultConfig() *Config {
	return &Config{
		Environment: "development",
		Server: ServerConfig{
			Host:      "0.0.0.0",
			Port:      8080,
			StaticDir: "frontend",
		},
		Storage: StorageConfig{
			Path: "data/store",
		},
		Pricing: PricingConfig{
			Mode: "simulated",
		},
		Clients: ClientsConfig{
			EODHD: EODHDConfig{
				BaseURL:   "https://eodhd.com/api",
				RateLimit: 2,
				Timeout:   "30s",
			},
		},
		Ingest: IngestConfig{
			UniverseCSV: "nse_symbols.csv",
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// LoadConfig loads configuration from files with environment overrides
func LoadConfig(paths ...string) (*Config, error) {
	config := NewDefaultConfig()

	// Load and merge each config file in order (later files override earlier)
	for _, path := range paths {
		if path == "" {
			continue
		}

		if _, err := os.Stat(path); os.IsNotExist(err) {
			continue // Skip missing files
		}

		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}

		if err := toml.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	}

	applyEnvOverrides(config)
	validatePricingMode(config)

	return config, nil
}

// applyEnvOverrides applies environment variable overrides to config
func applyEnvOverrides(config *Config) {
	if env := os.Getenv("STOCKPILOT_ENV"); env != "" {
		config.Environment = env
	}

	if host := os.Getenv("STOCKPILOT_HOST"); host != "" {
		config.Server.Host = host
	}

	if port := os.Getenv("STOCKPILOT_PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			config.Server.Port = p
		}
	}

	if level := os.Getenv("STOCKPILOT_LOG_LEVEL"); level != "" {
		config.Logging.Level = level
	}

	if path := os.Getenv("STOCKPILOT_DATA_PATH"); path != "" {
		config.Storage.Path = path
	}

	if mode := os.Getenv("STOCKPILOT_PRICING_MODE"); mode != "" {
		config.Pricing.Mode = mode
	}

	if key := os.Getenv("EODHD_API_KEY"); key != "" {
		config.Clients.EODHD.APIKey = key
	}

	if csv := os.Getenv("STOCKPILOT_UNIVERSE_CSV"); csv != "" {
		config.Ingest.UniverseCSV = csv
	}
}

// IsProduction returns true if running in production mode
func (c *Config) IsProduction() bool {
	env := strings.ToLower(strings.TrimSpace(c.Environment))
	return env == "production" || env == "prod"
}

// IsLivePricing returns true when the live-feed price strategy is configured.
func (c *Config) IsLivePricing() bool {
	return strings.EqualFold(strings.TrimSpace(c.Pricing.Mode), "live")
}

// validatePricingMode ensures Pricing.Mode is "simulated" or "live", defaulting to "simulated".
func validatePricingMode(config *Config) {
	mode := strings.ToLower(strings.TrimSpace(config.Pricing.Mode))
	if mode != "simulated" && mode != "live" {
		mode = "simulated"
	}
	config.Pricing.Mode = mode
}
