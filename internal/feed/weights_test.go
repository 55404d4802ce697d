// Vitrina - Content Discovery Feed Composition for Creator Analytics
// Copyright 2026 Vitrina contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/vitrina-app/vitrina

package feed

import (
	"math"
	"testing"
)

func weightsSum(w Weights) float64 {
	return w.InteractionRate + w.SavedRate + w.Recency +
		w.Interactions + w.Comments + w.Shares + w.Saved
}

// TestWeights_Normalize verifies scaling to a unit sum and the degenerate
// zero-sum passthrough.
func TestWeights_Normalize(t *testing.T) {
	w := Weights{InteractionRate: 2, Recency: 1, Shares: 1}
	n := w.Normalize()
	if math.Abs(weightsSum(n)-1) > 1e-12 {
		t.Errorf("normalized sum = %v, want 1", weightsSum(n))
	}
	if math.Abs(n.InteractionRate-0.5) > 1e-12 {
		t.Errorf("InteractionRate = %v, want 0.5", n.InteractionRate)
	}

	// Zero vector is returned unmodified, never divided.
	zero := Weights{}
	if got := zero.Normalize(); got != zero {
		t.Errorf("zero vector changed by Normalize: %+v", got)
	}
}

// TestArchetypeProfiles verifies every archetype profile has a positive
// weight sum so normalization is well-defined.
func TestArchetypeProfiles(t *testing.T) {
	profiles := map[string]Weights{
		"trending":     TrendingWeights(),
		"rising":       RisingWeights(),
		"top-saved":    TopSavedWeights(),
		"personalized": PersonalizedWeights(),
		"showcase":     ShowcaseWeights(),
	}
	for name, w := range profiles {
		if weightsSum(w) <= 0 {
			t.Errorf("profile %s has non-positive weight sum", name)
		}
	}
}

// TestReweightForFormat verifies the format shift favors freshness and
// reduces the saved-rate share.
func TestReweightForFormat(t *testing.T) {
	base := TrendingWeights()

	// Empty format is a no-op.
	if got := ReweightForFormat(base, ""); got != base {
		t.Errorf("empty format changed weights: %+v", got)
	}

	shifted := ReweightForFormat(base, FormatReel)
	if math.Abs(weightsSum(shifted)-1) > 1e-12 {
		t.Errorf("reweighted sum = %v, want 1", weightsSum(shifted))
	}

	baseNorm := base.Normalize()
	if shifted.Recency <= baseNorm.Recency {
		t.Errorf("recency share did not grow: %v <= %v", shifted.Recency, baseNorm.Recency)
	}
}
