// Vitrina - Content Discovery Feed Composition for Creator Analytics
// Copyright 2026 Vitrina contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/vitrina-app/vitrina

package feed

import "strings"

// Canonical content formats in fixed priority order. The balancer pulls
// minimum representation for each before falling back to global rank
// order.
const (
	FormatReel     = "reel"
	FormatPhoto    = "photo"
	FormatCarousel = "carousel"
	FormatVideo    = "video"
)

// CanonicalFormats is the fixed canonical format set in priority order.
var CanonicalFormats = []string{FormatReel, FormatPhoto, FormatCarousel, FormatVideo}

// formatAliases maps raw format labels to their canonical key. Raw labels
// arrive from several upstream taggers with inconsistent naming.
var formatAliases = map[string]string{
	"reel":            FormatReel,
	"reels":           FormatReel,
	"short":           FormatReel,
	"short_video":     FormatReel,
	"photo":           FormatPhoto,
	"image":           FormatPhoto,
	"picture":         FormatPhoto,
	"static":          FormatPhoto,
	"carousel":        FormatCarousel,
	"album":           FormatCarousel,
	"gallery":         FormatCarousel,
	"video":           FormatVideo,
	"long_form_video": FormatVideo,
	"longform":        FormatVideo,
	"igtv":            FormatVideo,
}

// CanonicalFormat maps a raw format label to its canonical key. Returns ""
// for labels outside the canonical set.
func CanonicalFormat(raw string) string {
	return formatAliases[strings.ToLower(strings.TrimSpace(raw))]
}

// candidateFormat resolves a candidate's canonical format from its first
// mappable format label.
func candidateFormat(c *Candidate) string {
	for _, raw := range c.Labels.Formats {
		if key := CanonicalFormat(raw); key != "" {
			return key
		}
	}
	return ""
}

// BalanceFormats guarantees minimum representation across the canonical
// format set before falling back to global rank order.
//
// Candidates are bucketed by canonical format (unmappable labels go to an
// unbucketed pool). The canonical set is iterated in fixed priority order
// pulling up to quota items per bucket, preserving bucket-internal rank
// order; remaining slots are then filled from the overall ranked order
// (any bucket, including unbucketed), skipping already-chosen ids, until
// maxItems or exhaustion.
func BalanceFormats(ranked []ScoredCandidate, maxItems, quota int) []ScoredCandidate {
	if maxItems <= 0 || len(ranked) == 0 {
		return nil
	}
	if quota <= 0 {
		quota = 1
	}

	buckets := make(map[string][]int, len(CanonicalFormats))
	for i := range ranked {
		key := candidateFormat(&ranked[i].Candidate)
		if key == "" {
			continue
		}
		buckets[key] = append(buckets[key], i)
	}

	chosen := make(map[string]struct{}, maxItems)
	out := make([]ScoredCandidate, 0, maxItems)

	for _, key := range CanonicalFormats {
		taken := 0
		for _, idx := range buckets[key] {
			if taken >= quota || len(out) >= maxItems {
				break
			}
			if _, ok := chosen[ranked[idx].Candidate.ID]; ok {
				continue
			}
			chosen[ranked[idx].Candidate.ID] = struct{}{}
			out = append(out, ranked[idx])
			taken++
		}
	}

	for i := range ranked {
		if len(out) >= maxItems {
			break
		}
		if _, ok := chosen[ranked[i].Candidate.ID]; ok {
			continue
		}
		chosen[ranked[i].Candidate.ID] = struct{}{}
		out = append(out, ranked[i])
	}

	return out
}
