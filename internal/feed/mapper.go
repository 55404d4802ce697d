// Vitrina - Content Discovery Feed Composition for Creator Analytics
// Copyright 2026 Vitrina contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/vitrina-app/vitrina

package feed

import (
	"strings"

	"github.com/vitrina-app/vitrina/internal/models"
)

// CandidateFromRaw maps one loosely-typed retrieval record into a typed
// candidate. This is the boundary validation point: unknown or missing
// fields default safely and the mapping never fails — records that are
// unusable (no id) are signaled by the second return value instead.
func CandidateFromRaw(raw *models.RawPost) (Candidate, bool) {
	id := strings.TrimSpace(raw.ID)
	if id == "" {
		return Candidate{}, false
	}

	c := Candidate{
		ID:               id,
		CreatorID:        strings.TrimSpace(raw.CreatorID),
		CreatorName:      raw.Creator.Name,
		CreatorAvatarURL: raw.Creator.AvatarURL,
		Caption:          raw.Caption,
		CoverURL:         strings.TrimSpace(raw.CoverURL),
		MediaURL:         raw.MediaURL,
		Permalink:        raw.Permalink,
		PublishedAt:      raw.Published,
		Stats: RawStats{
			Interactions:     nonNegative(raw.Stats.Interactions),
			Likes:            nonNegative(raw.Stats.Likes),
			Comments:         nonNegative(raw.Stats.Comments),
			Shares:           nonNegative(raw.Stats.Shares),
			Views:            nonNegative(raw.Stats.Views),
			Reach:            nonNegative(raw.Stats.Reach),
			Impressions:      nonNegative(raw.Stats.Impressions),
			Saved:            nonNegative(raw.Stats.Saved),
			VideoDurationSec: nonNegativeFloat(raw.Stats.VideoDurationSec),
		},
		Labels: Labels{
			Formats:    cleanLabels(raw.Formats),
			Proposals:  cleanLabels(raw.Proposals),
			Contexts:   cleanLabels(raw.Contexts),
			Tones:      cleanLabels(raw.Tones),
			References: cleanLabels(raw.References),
		},
	}

	// Upstream sometimes omits the aggregate; rebuild it from parts so
	// the minimum-signal filter and raw-volume metrics stay meaningful.
	if c.Stats.Interactions == 0 {
		c.Stats.Interactions = c.Stats.Likes + c.Stats.Comments + c.Stats.Shares + c.Stats.Saved
	}

	return c, true
}

// CandidatesFromRaw maps a page of raw records, dropping unusable ones.
func CandidatesFromRaw(raws []models.RawPost) []Candidate {
	out := make([]Candidate, 0, len(raws))
	for i := range raws {
		if c, ok := CandidateFromRaw(&raws[i]); ok {
			out = append(out, c)
		}
	}
	return out
}

// cleanLabels drops empty label ids and trims whitespace, keeping order.
func cleanLabels(labels []string) []string {
	if len(labels) == 0 {
		return nil
	}
	out := make([]string, 0, len(labels))
	for _, l := range labels {
		l = strings.TrimSpace(l)
		if l == "" {
			continue
		}
		out = append(out, l)
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

func nonNegative(v int64) int64 {
	if v < 0 {
		return 0
	}
	return v
}

func nonNegativeFloat(v float64) float64 {
	if v < 0 {
		return 0
	}
	return v
}
