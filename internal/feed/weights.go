// Vitrina - Content Discovery Feed Composition for Creator Analytics
// Copyright 2026 Vitrina contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/vitrina-app/vitrina

package feed

// Weights is a per-metric weight vector for one shelf profile. Weights are
// normalized at scoring time, so profiles don't need to sum to 1.0.
type Weights struct {
	// InteractionRate weights engagement relative to audience size.
	InteractionRate float64 `json:"interaction_rate"`

	// SavedRate weights saves relative to views.
	SavedRate float64 `json:"saved_rate"`

	// Recency weights the exponential freshness decay.
	Recency float64 `json:"recency"`

	// Interactions, Comments, Shares and Saved weight absolute volume.
	Interactions float64 `json:"interactions"`
	Comments     float64 `json:"comments"`
	Shares       float64 `json:"shares"`
	Saved        float64 `json:"saved"`
}

// Normalize returns a copy with weights scaled to sum to 1.0. When the
// positive-weight sum is zero the vector is returned unmodified, so a
// degenerate profile never divides by zero.
//
//nolint:gocritic // value receiver is intentional for immutable semantics
func (w Weights) Normalize() Weights {
	sum := w.InteractionRate + w.SavedRate + w.Recency +
		w.Interactions + w.Comments + w.Shares + w.Saved
	if sum <= 0 {
		return w
	}
	return Weights{
		InteractionRate: w.InteractionRate / sum,
		SavedRate:       w.SavedRate / sum,
		Recency:         w.Recency / sum,
		Interactions:    w.Interactions / sum,
		Comments:        w.Comments / sum,
		Shares:          w.Shares / sum,
		Saved:           w.Saved / sum,
	}
}

// metricTerm binds one weight component to its metric extractor. Scoring
// iterates terms in this fixed order so float accumulation is identical
// across runs.
type metricTerm struct {
	name    string
	weight  float64
	extract func(Metrics) float64
}

// terms expands the vector into its ordered term list.
//
//nolint:gocritic // value receiver is intentional for immutable semantics
func (w Weights) terms() []metricTerm {
	return []metricTerm{
		{"interaction_rate", w.InteractionRate, func(m Metrics) float64 { return m.InteractionRate }},
		{"saved_rate", w.SavedRate, func(m Metrics) float64 { return m.SavedRate }},
		{"recency", w.Recency, func(m Metrics) float64 { return m.Recency }},
		{"interactions", w.Interactions, func(m Metrics) float64 { return m.RawInteractions }},
		{"comments", w.Comments, func(m Metrics) float64 { return m.RawComments }},
		{"shares", w.Shares, func(m Metrics) float64 { return m.RawShares }},
		{"saved", w.Saved, func(m Metrics) float64 { return m.RawSaved }},
	}
}

// Shelf archetype profiles. One named vector per shelf archetype; specs
// reference these and may be reweighted when a format filter is active.

// TrendingWeights favors audience-relative engagement with a freshness
// floor.
func TrendingWeights() Weights {
	return Weights{
		InteractionRate: 0.45,
		Recency:         0.20,
		Comments:        0.10,
		Shares:          0.15,
		SavedRate:       0.10,
	}
}

// RisingWeights favors recent posts that are accelerating.
func RisingWeights() Weights {
	return Weights{
		Recency:         0.45,
		InteractionRate: 0.30,
		Shares:          0.15,
		Comments:        0.10,
	}
}

// TopSavedWeights favors save behavior over raw reach.
func TopSavedWeights() Weights {
	return Weights{
		SavedRate:       0.40,
		Saved:           0.20,
		InteractionRate: 0.25,
		Recency:         0.15,
	}
}

// PersonalizedWeights is the balanced profile the boost multipliers act on.
func PersonalizedWeights() Weights {
	return Weights{
		InteractionRate: 0.35,
		SavedRate:       0.20,
		Recency:         0.25,
		Shares:          0.20,
	}
}

// ShowcaseWeights ranks a single-format showcase shelf.
func ShowcaseWeights() Weights {
	return Weights{
		InteractionRate: 0.45,
		Recency:         0.30,
		SavedRate:       0.25,
	}
}

// ReweightForFormat adapts a profile when a format filter is active.
// Single-format pools lose the cross-format contrast the rate metrics rely
// on, so freshness gains share and save behavior differentiates instead of
// dominating.
//
//nolint:gocritic // value receiver is intentional for immutable semantics
func ReweightForFormat(w Weights, format string) Weights {
	if format == "" {
		return w
	}
	w.Recency += 0.15
	if w.SavedRate > 0.10 {
		w.SavedRate -= 0.10
	}
	return w.Normalize()
}
