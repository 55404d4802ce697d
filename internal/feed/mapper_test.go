// Vitrina - Content Discovery Feed Composition for Creator Analytics
// Copyright 2026 Vitrina contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/vitrina-app/vitrina

package feed

import (
	"testing"

	"github.com/vitrina-app/vitrina/internal/models"
)

// TestCandidateFromRaw_MissingID verifies unusable records are dropped, not
// errored.
func TestCandidateFromRaw_MissingID(t *testing.T) {
	raw := models.RawPost{CreatorID: "c1"}
	if _, ok := CandidateFromRaw(&raw); ok {
		t.Error("record without id should be unusable")
	}

	raw.ID = "   "
	if _, ok := CandidateFromRaw(&raw); ok {
		t.Error("whitespace-only id should be unusable")
	}
}

// TestCandidateFromRaw_NegativeCountersClamped verifies negative counters
// default to zero.
func TestCandidateFromRaw_NegativeCountersClamped(t *testing.T) {
	raw := models.RawPost{
		ID: "p1",
		Stats: models.RawPostStats{
			Interactions:     -5,
			Views:            -1,
			VideoDurationSec: -2.5,
			Likes:            10,
		},
	}
	c, ok := CandidateFromRaw(&raw)
	if !ok {
		t.Fatal("mapping failed")
	}
	if c.Stats.Views != 0 || c.Stats.VideoDurationSec != 0 {
		t.Errorf("negative counters not clamped: %+v", c.Stats)
	}
	// Clamped aggregate is rebuilt from parts.
	if c.Stats.Interactions != 10 {
		t.Errorf("Interactions = %d, want rebuilt 10", c.Stats.Interactions)
	}
}

// TestCandidateFromRaw_AggregateRebuilt verifies a missing interactions
// aggregate is reconstructed from its parts.
func TestCandidateFromRaw_AggregateRebuilt(t *testing.T) {
	raw := models.RawPost{
		ID: "p1",
		Stats: models.RawPostStats{
			Likes:    5,
			Comments: 3,
			Shares:   2,
			Saved:    1,
		},
	}
	c, _ := CandidateFromRaw(&raw)
	if c.Stats.Interactions != 11 {
		t.Errorf("Interactions = %d, want 11", c.Stats.Interactions)
	}

	// An explicit aggregate wins over the parts.
	raw.Stats.Interactions = 42
	c, _ = CandidateFromRaw(&raw)
	if c.Stats.Interactions != 42 {
		t.Errorf("Interactions = %d, want explicit 42", c.Stats.Interactions)
	}
}

// TestCandidateFromRaw_LabelCleaning verifies empty label ids are dropped
// and order preserved.
func TestCandidateFromRaw_LabelCleaning(t *testing.T) {
	raw := models.RawPost{
		ID:       "p1",
		Formats:  []string{" reel ", "", "  "},
		Contexts: []string{"fitness", "travel"},
		Tones:    []string{""},
	}
	c, _ := CandidateFromRaw(&raw)

	if len(c.Labels.Formats) != 1 || c.Labels.Formats[0] != "reel" {
		t.Errorf("Formats = %v, want [reel]", c.Labels.Formats)
	}
	if len(c.Labels.Contexts) != 2 {
		t.Errorf("Contexts = %v, want 2 entries", c.Labels.Contexts)
	}
	if c.Labels.Tones != nil {
		t.Errorf("Tones = %v, want nil", c.Labels.Tones)
	}
}

// TestCandidatesFromRaw verifies page mapping drops only unusable records.
func TestCandidatesFromRaw(t *testing.T) {
	raws := []models.RawPost{
		{ID: "a"},
		{},
		{ID: "b"},
	}
	out := CandidatesFromRaw(raws)
	if len(out) != 2 {
		t.Fatalf("got %d candidates, want 2", len(out))
	}
	if out[0].ID != "a" || out[1].ID != "b" {
		t.Errorf("ids = %v", []string{out[0].ID, out[1].ID})
	}
}
