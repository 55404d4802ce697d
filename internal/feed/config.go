// Vitrina - Content Discovery Feed Composition for Creator Analytics
// Copyright 2026 Vitrina contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/vitrina-app/vitrina

package feed

import (
	"fmt"
	"time"
)

// Config contains the engine tunables. The recency half-life and the boost
// multipliers are undocumented product constants carried over from the
// original ranking experiments; they are configuration, not derived values.
type Config struct {
	// RecencyHalfLifeDays controls the exponential recency decay.
	// recency = exp(-ageDays / RecencyHalfLifeDays). Default: 14.
	RecencyHalfLifeDays float64 `json:"recency_half_life_days"`

	// MissingPublishAgeDays is the age assigned to candidates without a
	// publish timestamp. Old enough that recency is effectively zero, but
	// never an error. Default: 999.
	MissingPublishAgeDays float64 `json:"missing_publish_age_days"`

	// ContextBoost is the multiplicative boost for a preferred-context
	// label match. Default: 0.15.
	ContextBoost float64 `json:"context_boost"`

	// ProposalBoost is the multiplicative boost for a preferred-proposal
	// label match. Default: 0.10.
	ProposalBoost float64 `json:"proposal_boost"`

	// Epsilon floors per-metric maxima before normalization so a
	// degenerate pool never divides by zero. Default: 1e-9.
	Epsilon float64 `json:"epsilon"`

	// ExploreWeights is the fixed recency-dominant profile used to
	// re-rank the exploration tail.
	ExploreWeights Weights `json:"explore_weights"`

	// CacheTTL is the lifetime of cached candidate pools. Invalidation is
	// purely TTL-based. Default: 7 minutes.
	CacheTTL time.Duration `json:"cache_ttl"`

	// DefaultMaxItems is the shelf size used when a spec leaves MaxItems
	// at 0. Default: 12.
	DefaultMaxItems int `json:"default_max_items"`

	// MaxCandidates caps how many candidates one retrieval pulls.
	// Default: 500.
	MaxCandidates int `json:"max_candidates"`

	// FormatQuota is the minimum representation per canonical format when
	// a shelf balances formats. Default: 1.
	FormatQuota int `json:"format_quota"`

	// ShelfTimeout bounds one shelf's build including retrieval.
	// Default: 10s.
	ShelfTimeout time.Duration `json:"shelf_timeout"`
}

// DefaultConfig returns production defaults.
func DefaultConfig() *Config {
	return &Config{
		RecencyHalfLifeDays:   14,
		MissingPublishAgeDays: 999,
		ContextBoost:          0.15,
		ProposalBoost:         0.10,
		Epsilon:               1e-9,
		ExploreWeights: Weights{
			Recency:   0.7,
			Comments:  0.1,
			Shares:    0.1,
			SavedRate: 0.1,
		},
		CacheTTL:        7 * time.Minute,
		DefaultMaxItems: 12,
		MaxCandidates:   500,
		FormatQuota:     1,
		ShelfTimeout:    10 * time.Second,
	}
}

// Validate checks the configuration for invalid values.
func (c *Config) Validate() error {
	if c.RecencyHalfLifeDays <= 0 {
		return fmt.Errorf("recency_half_life_days must be positive, got %v", c.RecencyHalfLifeDays)
	}
	if c.MissingPublishAgeDays <= 0 {
		return fmt.Errorf("missing_publish_age_days must be positive, got %v", c.MissingPublishAgeDays)
	}
	if c.ContextBoost < 0 || c.ContextBoost >= 1 {
		return fmt.Errorf("context_boost must be in [0, 1), got %v", c.ContextBoost)
	}
	if c.ProposalBoost < 0 || c.ProposalBoost >= 1 {
		return fmt.Errorf("proposal_boost must be in [0, 1), got %v", c.ProposalBoost)
	}
	if c.Epsilon <= 0 {
		return fmt.Errorf("epsilon must be positive, got %v", c.Epsilon)
	}
	if c.CacheTTL <= 0 {
		return fmt.Errorf("cache_ttl must be positive, got %v", c.CacheTTL)
	}
	if c.DefaultMaxItems <= 0 {
		return fmt.Errorf("default_max_items must be positive, got %d", c.DefaultMaxItems)
	}
	if c.MaxCandidates <= 0 {
		return fmt.Errorf("max_candidates must be positive, got %d", c.MaxCandidates)
	}
	if c.FormatQuota <= 0 {
		return fmt.Errorf("format_quota must be positive, got %d", c.FormatQuota)
	}
	if c.ShelfTimeout <= 0 {
		return fmt.Errorf("shelf_timeout must be positive, got %v", c.ShelfTimeout)
	}
	return nil
}

// Clone returns a deep copy of the configuration.
func (c *Config) Clone() *Config {
	cp := *c
	return &cp
}
