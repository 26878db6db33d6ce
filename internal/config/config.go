// Vinoscope - Wine Tasting Journal Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/vinoscope

// Package config provides koanf-based configuration for Vinoscope.
//
// Configuration is resolved in three layers, later layers overriding earlier:
//
//  1. Struct defaults (defaultConfig)
//  2. YAML config file (config.yaml, or CONFIG_PATH)
//  3. Environment variables (VINOSCOPE_ prefix, e.g. VINOSCOPE_SERVER_PORT)
package config

import (
	"fmt"
	"time"
)

// Config is the root configuration for the Vinoscope server.
type Config struct {
	Server  ServerConfig  `koanf:"server"`
	Journal JournalConfig `koanf:"journal"`
	Cache   CacheConfig   `koanf:"cache"`
	Summary SummaryConfig `koanf:"summary"`
	Logging LoggingConfig `koanf:"logging"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host            string        `koanf:"host"`
	Port            int           `koanf:"port"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`

	// CORSAllowedOrigins lists origins permitted by the CORS middleware.
	CORSAllowedOrigins []string `koanf:"cors_allowed_origins"`

	// RateLimitRequests is the per-IP request allowance per RateLimitWindow.
	// 0 disables rate limiting.
	RateLimitRequests int           `koanf:"rate_limit_requests"`
	RateLimitWindow   time.Duration `koanf:"rate_limit_window"`
}

// JournalConfig holds settings for the remote journal record store.
// When URL is empty the server runs in standalone mode with an in-memory
// store, which is only useful for development and tests.
type JournalConfig struct {
	URL     string        `koanf:"url"`
	APIKey  string        `koanf:"api_key"`
	Timeout time.Duration `koanf:"timeout"`

	// BatchSize is the page size for cursor-paginated record fetches.
	BatchSize int `koanf:"batch_size"`

	// RequestsPerSecond paces outgoing requests to the journal API.
	// 0 disables client-side pacing.
	RequestsPerSecond float64 `koanf:"requests_per_second"`
	Burst             int     `koanf:"burst"`
}

// CacheConfig holds snapshot cache settings.
type CacheConfig struct {
	// TTL is how long a computed statistics snapshot stays servable.
	TTL time.Duration `koanf:"ttl"`
}

// SummaryConfig holds year-summary archive settings.
type SummaryConfig struct {
	// ArchivePath is the badger directory for persisted year summaries.
	// Empty disables the archive; summaries are then always recomputed.
	ArchivePath string `koanf:"archive_path"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
	Caller bool   `koanf:"caller"`
}

// defaultConfig returns a Config with all default values. Defaults are
// applied first, then overridden by the config file and environment.
func defaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Host:               "0.0.0.0",
			Port:               3860,
			ShutdownTimeout:    10 * time.Second,
			CORSAllowedOrigins: []string{"*"},
			RateLimitRequests:  120,
			RateLimitWindow:    time.Minute,
		},
		Journal: JournalConfig{
			URL:               "",
			APIKey:            "",
			Timeout:           30 * time.Second,
			BatchSize:         500,
			RequestsPerSecond: 10,
			Burst:             20,
		},
		Cache: CacheConfig{
			TTL: 30 * time.Minute,
		},
		Summary: SummaryConfig{
			ArchivePath: "",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
			Caller: false,
		},
	}
}

// Validate checks the configuration for invalid combinations.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be between 1 and 65535, got %d", c.Server.Port)
	}
	if c.Journal.BatchSize < 1 || c.Journal.BatchSize > 500 {
		return fmt.Errorf("journal.batch_size must be between 1 and 500, got %d", c.Journal.BatchSize)
	}
	if c.Journal.URL != "" && c.Journal.APIKey == "" {
		return fmt.Errorf("journal.api_key is required when journal.url is set")
	}
	if c.Journal.Timeout <= 0 {
		return fmt.Errorf("journal.timeout must be positive, got %s", c.Journal.Timeout)
	}
	if c.Cache.TTL <= 0 {
		return fmt.Errorf("cache.ttl must be positive, got %s", c.Cache.TTL)
	}
	if c.Server.RateLimitRequests < 0 {
		return fmt.Errorf("server.rate_limit_requests must not be negative, got %d", c.Server.RateLimitRequests)
	}
	return nil
}

// StandaloneMode reports whether the server runs without a remote journal
// store (in-memory records only).
func (c *Config) StandaloneMode() bool {
	return c.Journal.URL == ""
}
