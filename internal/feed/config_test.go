// Vitrina - Content Discovery Feed Composition for Creator Analytics
// Copyright 2026 Vitrina contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/vitrina-app/vitrina

package feed

import "testing"

// TestConfig_DefaultsValid verifies the production defaults pass their own
// validation.
func TestConfig_DefaultsValid(t *testing.T) {
	if err := DefaultConfig().Validate(); err != nil {
		t.Errorf("default config invalid: %v", err)
	}
}

// TestConfig_ValidateRejects covers the invalid-value checks.
func TestConfig_ValidateRejects(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero half-life", func(c *Config) { c.RecencyHalfLifeDays = 0 }},
		{"negative missing-age", func(c *Config) { c.MissingPublishAgeDays = -1 }},
		{"context boost >= 1", func(c *Config) { c.ContextBoost = 1 }},
		{"negative proposal boost", func(c *Config) { c.ProposalBoost = -0.1 }},
		{"zero epsilon", func(c *Config) { c.Epsilon = 0 }},
		{"zero cache ttl", func(c *Config) { c.CacheTTL = 0 }},
		{"zero max items", func(c *Config) { c.DefaultMaxItems = 0 }},
		{"zero max candidates", func(c *Config) { c.MaxCandidates = 0 }},
		{"zero format quota", func(c *Config) { c.FormatQuota = 0 }},
		{"zero shelf timeout", func(c *Config) { c.ShelfTimeout = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("expected validation error, got nil")
			}
		})
	}
}

// TestConfig_Clone verifies clones are independent.
func TestConfig_Clone(t *testing.T) {
	cfg := DefaultConfig()
	cp := cfg.Clone()
	cp.DefaultMaxItems = 99
	if cfg.DefaultMaxItems == 99 {
		t.Error("Clone shares state with the original")
	}
}
