// Vitrina - Content Discovery Feed Composition for Creator Analytics
// Copyright 2026 Vitrina contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/vitrina-app/vitrina

package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// DefaultConfigPaths lists the paths where config files are searched in
// order of priority. The first file found wins.
var DefaultConfigPaths = []string{
	"config.yaml",
	"config.yml",
	"/etc/vitrina/config.yaml",
	"/etc/vitrina/config.yml",
}

// ConfigPathEnvVar is the environment variable that can override the config file path.
const ConfigPathEnvVar = "CONFIG_PATH"

// defaultConfig returns a Config struct with all sensible default values.
// These defaults are applied first, then overridden by config file and env vars.
func defaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Host:        "0.0.0.0",
			Port:        8474,
			Timeout:     30 * time.Second,
			Environment: "development",
		},
		Archive: ArchiveConfig{
			BaseURL:            "",
			APIKey:             "",
			Timeout:            5 * time.Second,
			PageSize:           100,
			RateLimitPerSecond: 20,
			RateLimitBurst:     40,

			BreakerMaxRequests:  3,
			BreakerInterval:     1 * time.Minute,
			BreakerTimeout:      2 * time.Minute,
			BreakerMinRequests:  10,
			BreakerFailureRatio: 0.6,
		},
		Signals: SignalsConfig{
			BaseURL: "", // Empty disables personalization
			APIKey:  "",
			Timeout: 2 * time.Second,
		},
		Taxonomy: TaxonomyConfig{
			BaseURL:  "", // Empty keeps raw label ids
			APIKey:   "",
			Timeout:  5 * time.Second,
			CacheTTL: 1 * time.Hour,
		},
		Feed: FeedConfig{
			// Zero values defer to the engine defaults; see EngineConfig.
		},
		Security: SecurityConfig{
			AuthMode:          "jwt",
			JWTSecret:         "",
			CORSOrigins:       []string{"*"},
			RateLimitReqs:     100,
			RateLimitWindow:   1 * time.Minute,
			RateLimitDisabled: false,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
			Caller: false,
		},
	}
}

// Load loads configuration using Koanf v2 with layered sources:
//  1. Defaults: Built-in sensible defaults
//  2. Config File: Optional YAML config file (if exists)
//  3. Environment Variables: Override any setting
//
// Precedence is ENV > File > Defaults.
func Load() (*Config, error) {
	k := koanf.New(".")

	// Layer 1: Load defaults from struct
	defaults := defaultConfig()
	if err := k.Load(structs.Provider(defaults, "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	// Layer 2: Load config file (optional)
	configPath := findConfigFile()
	if configPath != "" {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
	}

	// Layer 3: Load environment variables (highest priority)
	// Transform environment variable names to koanf paths:
	// ARCHIVE_BASE_URL -> archive.base_url
	// HTTP_PORT -> server.port
	envProvider := env.Provider("", ".", envTransformFunc)
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	// Post-process slice fields from comma-separated strings
	if err := processSliceFields(k); err != nil {
		return nil, fmt.Errorf("failed to process slice fields: %w", err)
	}

	// Unmarshal into Config struct
	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	// Validate the configuration
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// findConfigFile searches for a config file in the default paths.
// Returns the path to the first file found, or empty string if none found.
func findConfigFile() string {
	// Check environment variable first
	if envPath := os.Getenv(ConfigPathEnvVar); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath
		}
	}

	// Search default paths
	for _, path := range DefaultConfigPaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}

	return ""
}

// sliceConfigPaths defines which config paths should be parsed as comma-separated slices
var sliceConfigPaths = []string{
	"security.cors_origins",
}

// processSliceFields converts comma-separated string values to slices for known slice fields.
// This is necessary because env vars come in as strings, but the config expects slices.
func processSliceFields(k *koanf.Koanf) error {
	for _, path := range sliceConfigPaths {
		val := k.Get(path)
		if val == nil {
			continue
		}

		// If it's already a slice (from YAML file), skip
		if _, ok := val.([]interface{}); ok {
			continue
		}
		if _, ok := val.([]string); ok {
			continue
		}

		// If it's a string, split by comma
		if strVal, ok := val.(string); ok {
			if strVal == "" {
				continue
			}
			parts := strings.Split(strVal, ",")
			trimmed := make([]string, 0, len(parts))
			for _, p := range parts {
				p = strings.TrimSpace(p)
				if p != "" {
					trimmed = append(trimmed, p)
				}
			}
			if len(trimmed) > 0 {
				if err := k.Set(path, trimmed); err != nil {
					return fmt.Errorf("failed to set %s: %w", path, err)
				}
			}
		}
	}
	return nil
}

// envTransformFunc transforms environment variable names to koanf config paths.
// Known variables map through envMappings; everything else is ignored so
// unrelated environment noise never lands in the config tree.
//
// Examples:
//   - ARCHIVE_BASE_URL -> archive.base_url
//   - HTTP_PORT -> server.port
//   - JWT_SECRET -> security.jwt_secret
func envTransformFunc(key string) string {
	key = strings.ToLower(key)

	envMappings := map[string]string{
		// Server mappings
		"http_host":    "server.host",
		"http_port":    "server.port",
		"http_timeout": "server.timeout",
		"environment":  "server.environment",

		// Content archive mappings
		"archive_base_url":              "archive.base_url",
		"archive_api_key":               "archive.api_key",
		"archive_timeout":               "archive.timeout",
		"archive_page_size":             "archive.page_size",
		"archive_rate_limit_per_second": "archive.rate_limit_per_second",
		"archive_rate_limit_burst":      "archive.rate_limit_burst",
		"archive_breaker_max_requests":  "archive.breaker_max_requests",
		"archive_breaker_interval":      "archive.breaker_interval",
		"archive_breaker_timeout":       "archive.breaker_timeout",
		"archive_breaker_min_requests":  "archive.breaker_min_requests",
		"archive_breaker_failure_ratio": "archive.breaker_failure_ratio",

		// Signals mappings
		"signals_base_url": "signals.base_url",
		"signals_api_key":  "signals.api_key",
		"signals_timeout":  "signals.timeout",

		// Taxonomy mappings
		"taxonomy_base_url":  "taxonomy.base_url",
		"taxonomy_api_key":   "taxonomy.api_key",
		"taxonomy_timeout":   "taxonomy.timeout",
		"taxonomy_cache_ttl": "taxonomy.cache_ttl",

		// Feed engine mappings
		"feed_recency_half_life_days":   "feed.recency_half_life_days",
		"feed_missing_publish_age_days": "feed.missing_publish_age_days",
		"feed_context_boost":            "feed.context_boost",
		"feed_proposal_boost":           "feed.proposal_boost",
		"feed_cache_ttl":                "feed.cache_ttl",
		"feed_default_max_items":        "feed.default_max_items",
		"feed_max_candidates":           "feed.max_candidates",
		"feed_format_quota":             "feed.format_quota",
		"feed_shelf_timeout":            "feed.shelf_timeout",

		// Security mappings
		"auth_mode":           "security.auth_mode",
		"jwt_secret":          "security.jwt_secret",
		"cors_origins":        "security.cors_origins",
		"rate_limit_requests": "security.rate_limit_reqs",
		"rate_limit_window":   "security.rate_limit_window",
		"disable_rate_limit":  "security.rate_limit_disabled",

		// Logging mappings
		"log_level":  "logging.level",
		"log_format": "logging.format",
		"log_caller": "logging.caller",
	}

	if mapped, ok := envMappings[key]; ok {
		return mapped
	}

	// Unknown variables are dropped
	return ""
}
