// Vitrina - Content Discovery Feed Composition for Creator Analytics
// Copyright 2026 Vitrina contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/vitrina-app/vitrina

package feed

import (
	"context"
	"time"

	"github.com/rs/zerolog"
)

// Composer orchestrates one shelf's pipeline:
//
//	RETRIEVE -> FILTER -> SCORE -> EXPLORE-SPLIT -> [FORMAT-BALANCE] -> DIVERSITY-CAP
//
// It owns no shared mutable state besides the injected cache, so one
// Composer instance serves all concurrent shelf builds.
type Composer struct {
	cfg    *Config
	source CandidateSource
	cache  CandidateCache
	scorer *Scorer
	logger zerolog.Logger
}

// NewComposer creates a shelf composer. cache may be nil to disable pool
// caching entirely (tests, one-shot tools).
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewComposer(cfg *Config, source CandidateSource, cache CandidateCache, logger zerolog.Logger) *Composer {
	return &Composer{
		cfg:    cfg,
		source: source,
		cache:  cache,
		scorer: NewScorer(cfg),
		logger: logger.With().Str("component", "composer").Logger(),
	}
}

// Compose builds one shelf's ranked candidate list. A nil, nil return means
// the shelf had zero eligible candidates (EmptyResult — not an error).
// Retrieval and transform errors are classified for the shelf boundary.
func (c *Composer) Compose(ctx context.Context, spec *ShelfSpec, boosts Boosts, now time.Time) ([]ScoredCandidate, error) {
	maxItems := spec.MaxItems
	if maxItems <= 0 {
		maxItems = c.cfg.DefaultMaxItems
	}

	candidates, err := c.retrieve(ctx, spec)
	if err != nil {
		return nil, retrievalFailure(err)
	}

	eligible := c.filterEligible(candidates)
	if len(eligible) == 0 {
		return nil, nil
	}

	scored := make([]ScoredCandidate, len(eligible))
	for i := range eligible {
		scored[i] = ScoredCandidate{
			Candidate: eligible[i],
			Metrics:   ComputeMetrics(&eligible[i], now, c.cfg),
		}
	}

	effective := boosts
	if !spec.Personalized {
		effective = Boosts{}
	}
	scored = c.scorer.Score(scored, spec.Weights, effective)
	scored = c.scorer.SplitExplore(scored, spec.ExplorationRatio, maxItems)

	if spec.BalanceFormats {
		scored = BalanceFormats(scored, maxItems, c.cfg.FormatQuota)
	}

	scored = ApplyDiversityCaps(scored, spec.Caps, maxItems)
	return scored, nil
}

// retrieve pulls the shelf's candidate pool, cache-backed when the spec
// marks it filter-independent. A duplicate compute on a cold entry is
// acceptable; both writers store equivalent pools.
func (c *Composer) retrieve(ctx context.Context, spec *ShelfSpec) ([]Candidate, error) {
	cacheable := spec.CacheKey != "" && c.cache != nil
	if cacheable {
		if pool, ok := c.cache.Get(spec.CacheKey); ok {
			c.logger.Debug().Str("shelf", spec.Key).Str("cache_key", spec.CacheKey).Msg("candidate pool cache hit")
			return pool, nil
		}
	}

	filter := spec.Filter
	if filter.Limit <= 0 {
		filter.Limit = c.cfg.MaxCandidates
	}

	pool, err := c.source.FetchCandidates(ctx, filter)
	if err != nil {
		return nil, err
	}

	if cacheable {
		c.cache.Set(spec.CacheKey, pool)
	}
	return pool, nil
}

// filterEligible applies the minimum-signal filter: a candidate must have a
// cover/preview asset and at least one positive engagement counter.
func (c *Composer) filterEligible(candidates []Candidate) []Candidate {
	eligible := make([]Candidate, 0, len(candidates))
	for i := range candidates {
		if candidates[i].CoverURL == "" {
			continue
		}
		if !candidates[i].Stats.HasEngagement() {
			continue
		}
		eligible = append(eligible, candidates[i])
	}
	return eligible
}
