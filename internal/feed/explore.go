// Vitrina - Content Discovery Feed Composition for Creator Analytics
// Copyright 2026 Vitrina contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/vitrina-app/vitrina

package feed

import "math"

// SplitExplore divides a ranked list into an exploitation head and a
// freshness-biased exploration tail. The head keeps the top of the primary
// ranking; the tail re-ranks the remaining candidates with the fixed
// recency-dominant profile from the engine config and appends the best of
// them. This guarantees fresh content surfaces even when it can't win on
// raw engagement, without dominating the shelf.
//
// With ratio r and target size n:
//
//	exploreCount = floor(n*r)
//	baseCount    = max(1, n-exploreCount)
//
// r = 0 returns the primary ranking truncated to n. The output never
// exceeds n items.
func (s *Scorer) SplitExplore(ranked []ScoredCandidate, ratio float64, n int) []ScoredCandidate {
	if n <= 0 || len(ranked) == 0 {
		return nil
	}
	if ratio < 0 {
		ratio = 0
	}
	if ratio > 1 {
		ratio = 1
	}

	exploreCount := int(math.Floor(float64(n) * ratio))
	if exploreCount == 0 {
		if len(ranked) > n {
			return ranked[:n]
		}
		return ranked
	}

	baseCount := n - exploreCount
	if baseCount < 1 {
		baseCount = 1
	}
	if baseCount > len(ranked) {
		baseCount = len(ranked)
	}

	head := ranked[:baseCount]
	remaining := ranked[baseCount:]
	if len(remaining) == 0 {
		return head
	}

	// Re-rank the remainder on the exploration profile. Copy first: the
	// primary order of `ranked` must not be disturbed.
	tailPool := make([]ScoredCandidate, len(remaining))
	copy(tailPool, remaining)
	tailPool = s.Score(tailPool, s.cfg.ExploreWeights, Boosts{})

	tailCount := exploreCount
	if max := n - len(head); tailCount > max {
		tailCount = max
	}
	if tailCount > len(tailPool) {
		tailCount = len(tailPool)
	}

	out := make([]ScoredCandidate, 0, len(head)+tailCount)
	out = append(out, head...)
	out = append(out, tailPool[:tailCount]...)
	return out
}
