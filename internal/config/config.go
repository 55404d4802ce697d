// Vitrina - Content Discovery Feed Composition for Creator Analytics
// Copyright 2026 Vitrina contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/vitrina-app/vitrina

// Package config provides layered configuration for Vitrina.
//
// Configuration is loaded with Koanf v2 from three layers in increasing
// precedence:
//
//  1. Built-in defaults
//  2. Optional YAML config file (CONFIG_PATH or the default search paths)
//  3. Environment variables
//
// Sections map to the services the feed server talks to (the content
// archive, the signals service, the taxonomy service) plus the HTTP
// server, security and engine tunables.
package config

import (
	"time"

	"github.com/vitrina-app/vitrina/internal/feed"
)

// Config is the root configuration for the feed server.
type Config struct {
	Server   ServerConfig   `koanf:"server"`
	Archive  ArchiveConfig  `koanf:"archive"`
	Signals  SignalsConfig  `koanf:"signals"`
	Taxonomy TaxonomyConfig `koanf:"taxonomy"`
	Feed     FeedConfig     `koanf:"feed"`
	Security SecurityConfig `koanf:"security"`
	Logging  LoggingConfig  `koanf:"logging"`
}

// ServerConfig holds the HTTP server settings.
type ServerConfig struct {
	Host        string        `koanf:"host"`
	Port        int           `koanf:"port"`
	Timeout     time.Duration `koanf:"timeout"`     // Read/write timeout for the HTTP server
	Environment string        `koanf:"environment"` // development or production
}

// ArchiveConfig configures the content-archive client, the upstream that
// serves opted-in creator posts with their engagement statistics.
type ArchiveConfig struct {
	BaseURL            string        `koanf:"base_url"`
	APIKey             string        `koanf:"api_key"`
	Timeout            time.Duration `koanf:"timeout"`
	PageSize           int           `koanf:"page_size"`
	RateLimitPerSecond float64       `koanf:"rate_limit_per_second"`
	RateLimitBurst     int           `koanf:"rate_limit_burst"`

	// Circuit breaker settings; a tripped breaker fails shelf builds fast
	// instead of queueing on a struggling upstream.
	BreakerMaxRequests  uint32        `koanf:"breaker_max_requests"`  // Half-open probe budget
	BreakerInterval     time.Duration `koanf:"breaker_interval"`     // Closed-state count reset window
	BreakerTimeout      time.Duration `koanf:"breaker_timeout"`      // Open -> half-open cooldown
	BreakerMinRequests  uint32        `koanf:"breaker_min_requests"` // Minimum samples before tripping
	BreakerFailureRatio float64       `koanf:"breaker_failure_ratio"`
}

// SignalsConfig configures the personalization-signals client. The
// service is optional: an empty base URL disables personalization.
type SignalsConfig struct {
	BaseURL string        `koanf:"base_url"`
	APIKey  string        `koanf:"api_key"`
	Timeout time.Duration `koanf:"timeout"`
}

// TaxonomyConfig configures the label-taxonomy client used to resolve
// raw label identifiers into display labels.
type TaxonomyConfig struct {
	BaseURL  string        `koanf:"base_url"`
	APIKey   string        `koanf:"api_key"`
	Timeout  time.Duration `koanf:"timeout"`
	CacheTTL time.Duration `koanf:"cache_ttl"` // Label map refresh interval
}

// FeedConfig holds the composition engine tunables. Zero values fall
// back to the engine defaults at bridge time.
type FeedConfig struct {
	RecencyHalfLifeDays   float64       `koanf:"recency_half_life_days"`
	MissingPublishAgeDays float64       `koanf:"missing_publish_age_days"`
	ContextBoost          float64       `koanf:"context_boost"`
	ProposalBoost         float64       `koanf:"proposal_boost"`
	CacheTTL              time.Duration `koanf:"cache_ttl"`
	DefaultMaxItems       int           `koanf:"default_max_items"`
	MaxCandidates         int           `koanf:"max_candidates"`
	FormatQuota           int           `koanf:"format_quota"`
	ShelfTimeout          time.Duration `koanf:"shelf_timeout"`
}

// SecurityConfig holds authentication, CORS and rate limit settings.
type SecurityConfig struct {
	AuthMode          string        `koanf:"auth_mode"`  // "jwt" or "none"
	JWTSecret         string        `koanf:"jwt_secret"` // Required when auth_mode is jwt
	CORSOrigins       []string      `koanf:"cors_origins"`
	RateLimitReqs     int           `koanf:"rate_limit_reqs"`
	RateLimitWindow   time.Duration `koanf:"rate_limit_window"`
	RateLimitDisabled bool          `koanf:"rate_limit_disabled"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `koanf:"level"`  // trace, debug, info, warn, error
	Format string `koanf:"format"` // json or console
	Caller bool   `koanf:"caller"`
}

// EngineConfig bridges the feed section into the engine's own config
// type. Fields left at zero keep the engine defaults, so a partial feed
// section in YAML overrides only what it names.
func (c *Config) EngineConfig() *feed.Config {
	engine := feed.DefaultConfig()
	f := &c.Feed

	if f.RecencyHalfLifeDays > 0 {
		engine.RecencyHalfLifeDays = f.RecencyHalfLifeDays
	}
	if f.MissingPublishAgeDays > 0 {
		engine.MissingPublishAgeDays = f.MissingPublishAgeDays
	}
	if f.ContextBoost > 0 {
		engine.ContextBoost = f.ContextBoost
	}
	if f.ProposalBoost > 0 {
		engine.ProposalBoost = f.ProposalBoost
	}
	if f.CacheTTL > 0 {
		engine.CacheTTL = f.CacheTTL
	}
	if f.DefaultMaxItems > 0 {
		engine.DefaultMaxItems = f.DefaultMaxItems
	}
	if f.MaxCandidates > 0 {
		engine.MaxCandidates = f.MaxCandidates
	}
	if f.FormatQuota > 0 {
		engine.FormatQuota = f.FormatQuota
	}
	if f.ShelfTimeout > 0 {
		engine.ShelfTimeout = f.ShelfTimeout
	}
	return engine
}
