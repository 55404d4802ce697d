// Vitrina - Content Discovery Feed Composition for Creator Analytics
// Copyright 2026 Vitrina contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/vitrina-app/vitrina

package feed

import (
	"sort"
	"strings"
)

// Scorer computes one scalar score per candidate from a weight vector,
// derived metric values and optional personalization boosts, then sorts
// candidates descending by score.
//
// Determinism: each metric is normalized by the pool maximum (floored at
// epsilon), terms are accumulated in a fixed order, and the final sort is
// stable, so the same input always produces the same output order.
type Scorer struct {
	cfg *Config
}

// NewScorer creates a scorer with the given engine config.
func NewScorer(cfg *Config) *Scorer {
	return &Scorer{cfg: cfg}
}

// Score scores and ranks the candidates in place and returns the slice.
// An empty input returns the empty slice without error. Boost lists are a
// soft signal: a match multiplies the score, it never filters.
func (s *Scorer) Score(candidates []ScoredCandidate, weights Weights, boosts Boosts) []ScoredCandidate {
	if len(candidates) == 0 {
		return candidates
	}

	terms := weights.Normalize().terms()
	maxima := s.poolMaxima(candidates, terms)

	preferredContexts := lowerSet(boosts.Contexts)
	preferredProposals := lowerSet(boosts.Proposals)

	for i := range candidates {
		score := 0.0
		for t, term := range terms {
			if term.weight <= 0 {
				continue
			}
			score += term.weight * (term.extract(candidates[i].Metrics) / maxima[t])
		}

		if len(preferredContexts) > 0 || len(preferredProposals) > 0 {
			mult := 1.0
			if matchesAny(candidates[i].Candidate.Labels.Contexts, preferredContexts) {
				mult += s.cfg.ContextBoost
			}
			if matchesAny(candidates[i].Candidate.Labels.Proposals, preferredProposals) {
				mult += s.cfg.ProposalBoost
			}
			score *= mult
		}

		candidates[i].Score = score
	}

	// Stable sort: ties keep input order so repeated composition of an
	// unchanged pool is idempotent.
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].Score > candidates[j].Score
	})

	return candidates
}

// poolMaxima computes the per-term maximum across the pool, floored at
// epsilon so normalization never divides by zero.
func (s *Scorer) poolMaxima(candidates []ScoredCandidate, terms []metricTerm) []float64 {
	maxima := make([]float64, len(terms))
	for t := range terms {
		maxima[t] = s.cfg.Epsilon
	}
	for i := range candidates {
		for t, term := range terms {
			if v := term.extract(candidates[i].Metrics); v > maxima[t] {
				maxima[t] = v
			}
		}
	}
	return maxima
}

// lowerSet builds a lookup set of trimmed, lowercased ids.
func lowerSet(ids []string) map[string]struct{} {
	if len(ids) == 0 {
		return nil
	}
	set := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		id = strings.ToLower(strings.TrimSpace(id))
		if id == "" {
			continue
		}
		set[id] = struct{}{}
	}
	return set
}

// matchesAny reports whether any label is in the preferred set.
func matchesAny(labels []string, preferred map[string]struct{}) bool {
	if len(preferred) == 0 {
		return false
	}
	for _, l := range labels {
		if _, ok := preferred[strings.ToLower(strings.TrimSpace(l))]; ok {
			return true
		}
	}
	return false
}
