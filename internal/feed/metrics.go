// Vitrina - Content Discovery Feed Composition for Creator Analytics
// Copyright 2026 Vitrina contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/vitrina-app/vitrina

package feed

import (
	"math"
	"time"
)

// ComputeMetrics converts a candidate's raw counters into bounded derived
// metrics relative to now. It is a pure function: every ratio is 0 (never
// NaN or Inf) when its denominator is 0, and a missing publish date is
// treated as very old content, never an error.
//
// Metrics are recomputed per shelf build because the candidate pool and
// "now" differ per shelf.
func ComputeMetrics(c *Candidate, now time.Time, cfg *Config) Metrics {
	m := Metrics{
		RawInteractions: float64(c.Stats.Interactions),
		RawComments:     float64(c.Stats.Comments),
		RawShares:       float64(c.Stats.Shares),
		RawSaved:        float64(c.Stats.Saved),
	}

	// interactionRate uses the largest available audience denominator.
	audience := maxInt64(c.Stats.Reach, c.Stats.Views, c.Stats.Impressions)
	if audience > 0 {
		m.InteractionRate = float64(c.Stats.Interactions) / float64(audience)
	}

	if c.Stats.Views > 0 {
		m.SavedRate = float64(c.Stats.Saved) / float64(c.Stats.Views)
	}

	ageDays := cfg.MissingPublishAgeDays
	if c.PublishedAt != nil {
		ageDays = now.Sub(*c.PublishedAt).Hours() / 24
		if ageDays < 0 {
			// Scheduled posts with future timestamps count as brand new.
			ageDays = 0
		}
	}
	m.Recency = math.Exp(-ageDays / cfg.RecencyHalfLifeDays)

	return m
}

func maxInt64(values ...int64) int64 {
	var m int64
	for _, v := range values {
		if v > m {
			m = v
		}
	}
	return m
}
