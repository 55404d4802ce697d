// Vitrina - Content Discovery Feed Composition for Creator Analytics
// Copyright 2026 Vitrina contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/vitrina-app/vitrina

package feed

import "strings"

// ApplyDiversityCaps enforces per-creator/context/proposal repetition
// ceilings on a ranked list, preserving rank order.
//
// Pass 1 walks the list in order and accepts an item only if none of its
// applicable counters is at its cap, stopping at maxItems. Pass 2
// (backfill) runs only if pass 1 under-fills: it re-walks the full ranked
// list excluding already-chosen identifiers with fresh counters under the
// same cap values, so a shelf short on distinct keys still fills up as far
// as the pool allows.
//
// Keys are case-insensitive and trimmed; an item with an empty key on a
// dimension is never counted against that dimension. A cap of 0 disables
// capping on that dimension.
func ApplyDiversityCaps(ranked []ScoredCandidate, caps DiversityCaps, maxItems int) []ScoredCandidate {
	if maxItems <= 0 || len(ranked) == 0 {
		return nil
	}
	if caps.MaxPerCreator <= 0 && caps.MaxPerContext <= 0 && caps.MaxPerProposal <= 0 {
		if len(ranked) > maxItems {
			return ranked[:maxItems]
		}
		return ranked
	}

	chosen := make(map[string]struct{}, maxItems)
	out := make([]ScoredCandidate, 0, maxItems)
	out = capPass(ranked, caps, maxItems, chosen, out)

	if len(out) < maxItems {
		out = capPass(ranked, caps, maxItems, chosen, out)
	}

	return out
}

// capPass performs one selection walk with fresh counters, skipping
// already-chosen identifiers and marking new picks in chosen.
func capPass(ranked []ScoredCandidate, caps DiversityCaps, maxItems int, chosen map[string]struct{}, out []ScoredCandidate) []ScoredCandidate {
	creatorCounts := make(map[string]int)
	contextCounts := make(map[string]int)
	proposalCounts := make(map[string]int)

	for i := range ranked {
		if len(out) >= maxItems {
			break
		}
		if _, taken := chosen[ranked[i].Candidate.ID]; taken {
			continue
		}

		creatorKey := diversityKey(ranked[i].Candidate.CreatorID)
		contextKey := firstLabelKey(ranked[i].Candidate.Labels.Contexts)
		proposalKey := firstLabelKey(ranked[i].Candidate.Labels.Proposals)

		if atCap(creatorCounts, creatorKey, caps.MaxPerCreator) ||
			atCap(contextCounts, contextKey, caps.MaxPerContext) ||
			atCap(proposalCounts, proposalKey, caps.MaxPerProposal) {
			continue
		}

		bump(creatorCounts, creatorKey)
		bump(contextCounts, contextKey)
		bump(proposalCounts, proposalKey)
		chosen[ranked[i].Candidate.ID] = struct{}{}
		out = append(out, ranked[i])
	}

	return out
}

// diversityKey normalizes one key: trimmed and case-insensitive.
func diversityKey(raw string) string {
	return strings.ToLower(strings.TrimSpace(raw))
}

// firstLabelKey takes the first label on an axis as that item's key.
func firstLabelKey(labels []string) string {
	if len(labels) == 0 {
		return ""
	}
	return diversityKey(labels[0])
}

// atCap reports whether the counter for key has reached cap. Empty keys and
// disabled caps never block.
func atCap(counts map[string]int, key string, cap int) bool {
	if cap <= 0 || key == "" {
		return false
	}
	return counts[key] >= cap
}

// bump increments the counter for key; empty keys are never counted.
func bump(counts map[string]int, key string) {
	if key == "" {
		return
	}
	counts[key]++
}
