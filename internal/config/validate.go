// Vitrina - Content Discovery Feed Composition for Creator Analytics
// Copyright 2026 Vitrina contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/vitrina-app/vitrina

package config

import (
	"fmt"
	"net/url"
	"strings"
)

// Validate checks the configuration for invalid or inconsistent values.
// It is called by Load after all layers are merged, so it sees the final
// effective configuration.
func (c *Config) Validate() error {
	if err := c.validateServer(); err != nil {
		return err
	}
	if err := c.validateArchive(); err != nil {
		return err
	}
	if err := c.validateUpstreams(); err != nil {
		return err
	}
	if err := c.validateSecurity(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validateServer() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be between 1 and 65535, got %d", c.Server.Port)
	}
	if c.Server.Timeout <= 0 {
		return fmt.Errorf("server.timeout must be positive, got %v", c.Server.Timeout)
	}
	switch c.Server.Environment {
	case "development", "production":
	default:
		return fmt.Errorf("server.environment must be development or production, got %q", c.Server.Environment)
	}
	return nil
}

func (c *Config) validateArchive() error {
	if c.Archive.BaseURL == "" {
		return fmt.Errorf("archive.base_url is required")
	}
	if err := validateHTTPURL("archive.base_url", c.Archive.BaseURL); err != nil {
		return err
	}
	if c.Archive.Timeout <= 0 {
		return fmt.Errorf("archive.timeout must be positive, got %v", c.Archive.Timeout)
	}
	if c.Archive.PageSize < 1 || c.Archive.PageSize > 1000 {
		return fmt.Errorf("archive.page_size must be between 1 and 1000, got %d", c.Archive.PageSize)
	}
	if c.Archive.RateLimitPerSecond <= 0 {
		return fmt.Errorf("archive.rate_limit_per_second must be positive, got %v", c.Archive.RateLimitPerSecond)
	}
	if c.Archive.RateLimitBurst < 1 {
		return fmt.Errorf("archive.rate_limit_burst must be at least 1, got %d", c.Archive.RateLimitBurst)
	}
	if c.Archive.BreakerFailureRatio <= 0 || c.Archive.BreakerFailureRatio > 1 {
		return fmt.Errorf("archive.breaker_failure_ratio must be in (0, 1], got %v", c.Archive.BreakerFailureRatio)
	}
	if c.Archive.BreakerMinRequests < 1 {
		return fmt.Errorf("archive.breaker_min_requests must be at least 1, got %d", c.Archive.BreakerMinRequests)
	}
	return nil
}

// validateUpstreams checks the optional signals and taxonomy services.
// Both are disabled when their base URL is empty, so only non-empty URLs
// are validated.
func (c *Config) validateUpstreams() error {
	if c.Signals.BaseURL != "" {
		if err := validateHTTPURL("signals.base_url", c.Signals.BaseURL); err != nil {
			return err
		}
		if c.Signals.Timeout <= 0 {
			return fmt.Errorf("signals.timeout must be positive, got %v", c.Signals.Timeout)
		}
	}
	if c.Taxonomy.BaseURL != "" {
		if err := validateHTTPURL("taxonomy.base_url", c.Taxonomy.BaseURL); err != nil {
			return err
		}
		if c.Taxonomy.Timeout <= 0 {
			return fmt.Errorf("taxonomy.timeout must be positive, got %v", c.Taxonomy.Timeout)
		}
		if c.Taxonomy.CacheTTL <= 0 {
			return fmt.Errorf("taxonomy.cache_ttl must be positive, got %v", c.Taxonomy.CacheTTL)
		}
	}
	return nil
}

func (c *Config) validateSecurity() error {
	switch c.Security.AuthMode {
	case "jwt":
		if c.Security.JWTSecret == "" {
			return fmt.Errorf("security.jwt_secret is required when security.auth_mode is jwt")
		}
		if len(c.Security.JWTSecret) < 32 {
			return fmt.Errorf("security.jwt_secret must be at least 32 characters, got %d", len(c.Security.JWTSecret))
		}
	case "none":
		if c.Server.Environment == "production" {
			return fmt.Errorf("security.auth_mode none is not allowed in production")
		}
	default:
		return fmt.Errorf("security.auth_mode must be jwt or none, got %q", c.Security.AuthMode)
	}

	if !c.Security.RateLimitDisabled {
		if c.Security.RateLimitReqs < 1 {
			return fmt.Errorf("security.rate_limit_reqs must be at least 1, got %d", c.Security.RateLimitReqs)
		}
		if c.Security.RateLimitWindow <= 0 {
			return fmt.Errorf("security.rate_limit_window must be positive, got %v", c.Security.RateLimitWindow)
		}
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch strings.ToLower(c.Logging.Level) {
	case "trace", "debug", "info", "warn", "warning", "error", "fatal", "panic", "disabled":
	default:
		return fmt.Errorf("logging.level must be a valid log level, got %q", c.Logging.Level)
	}
	switch c.Logging.Format {
	case "json", "console":
	default:
		return fmt.Errorf("logging.format must be json or console, got %q", c.Logging.Format)
	}
	return nil
}

// validateHTTPURL checks that a value parses as an absolute http(s) URL.
func validateHTTPURL(field, value string) error {
	u, err := url.Parse(value)
	if err != nil {
		return fmt.Errorf("%s is not a valid URL: %w", field, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("%s must use http or https, got %q", field, value)
	}
	if u.Host == "" {
		return fmt.Errorf("%s must include a host, got %q", field, value)
	}
	return nil
}
