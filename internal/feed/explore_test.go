// Vitrina - Content Discovery Feed Composition for Creator Analytics
// Copyright 2026 Vitrina contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/vitrina-app/vitrina

package feed

import (
	"fmt"
	"testing"
)

// rankedPool builds n candidates already in primary rank order, with
// recency inverted so exploration prefers the bottom of the list.
func rankedPool(n int) []ScoredCandidate {
	pool := make([]ScoredCandidate, n)
	for i := 0; i < n; i++ {
		pool[i] = ScoredCandidate{
			Candidate: Candidate{ID: fmt.Sprintf("c%02d", i)},
			Metrics:   Metrics{Recency: float64(i) / float64(n)},
			Score:     float64(n - i),
		}
	}
	return pool
}

// TestSplitExplore_Counts verifies the head/tail split arithmetic.
func TestSplitExplore_Counts(t *testing.T) {
	s := NewScorer(DefaultConfig())

	tests := []struct {
		name      string
		poolSize  int
		ratio     float64
		n         int
		wantTotal int
		wantHead  int
	}{
		{"ratio 0.2 of 10", 20, 0.2, 10, 10, 8},
		{"ratio 0 truncates", 20, 0, 10, 10, 10},
		{"ratio 1 keeps one exploit slot", 20, 1, 10, 10, 1},
		{"pool smaller than n", 5, 0.2, 10, 5, 5},
		{"n zero", 20, 0.2, 0, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := s.SplitExplore(rankedPool(tt.poolSize), tt.ratio, tt.n)
			if len(out) != tt.wantTotal {
				t.Fatalf("total = %d, want %d", len(out), tt.wantTotal)
			}
			// The head preserves the primary ranking prefix.
			for i := 0; i < tt.wantHead && i < len(out); i++ {
				want := fmt.Sprintf("c%02d", i)
				if out[i].Candidate.ID != want {
					t.Errorf("head position %d = %s, want %s", i, out[i].Candidate.ID, want)
				}
			}
		})
	}
}

// TestSplitExplore_TailIsRecencyBiased verifies the exploration slots go to
// the freshest remaining candidates, not the next-best by primary score.
func TestSplitExplore_TailIsRecencyBiased(t *testing.T) {
	s := NewScorer(DefaultConfig())
	pool := rankedPool(20)

	out := s.SplitExplore(pool, 0.2, 10)
	if len(out) != 10 {
		t.Fatalf("total = %d, want 10", len(out))
	}

	// rankedPool gives the last candidates the highest recency, so the
	// two exploration slots should come from deep in the list.
	tail := out[8:]
	for _, sc := range tail {
		if sc.Candidate.ID == "c08" || sc.Candidate.ID == "c09" {
			t.Errorf("tail slot %s follows primary ranking, want recency-ranked", sc.Candidate.ID)
		}
	}
}

// TestSplitExplore_NoDuplicates verifies head and tail never share an id.
func TestSplitExplore_NoDuplicates(t *testing.T) {
	s := NewScorer(DefaultConfig())
	out := s.SplitExplore(rankedPool(30), 0.3, 12)

	seen := make(map[string]struct{}, len(out))
	for _, sc := range out {
		if _, dup := seen[sc.Candidate.ID]; dup {
			t.Errorf("duplicate id %s in split output", sc.Candidate.ID)
		}
		seen[sc.Candidate.ID] = struct{}{}
	}
}

// TestSplitExplore_PrimaryOrderUntouched verifies the input slice's primary
// order survives the tail re-rank.
func TestSplitExplore_PrimaryOrderUntouched(t *testing.T) {
	s := NewScorer(DefaultConfig())
	pool := rankedPool(20)

	_ = s.SplitExplore(pool, 0.2, 10)

	for i := range pool {
		want := fmt.Sprintf("c%02d", i)
		if pool[i].Candidate.ID != want {
			t.Fatalf("input order disturbed at %d: %s", i, pool[i].Candidate.ID)
		}
	}
}
