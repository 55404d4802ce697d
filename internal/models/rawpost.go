// Vitrina - Content Discovery Feed Composition for Creator Analytics
// Copyright 2026 Vitrina contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/vitrina-app/vitrina

package models

import "time"

// RawPost is one post record as returned by the candidate-retrieval store.
// Every field is optional on the wire; unknown or missing fields decode to
// zero values and are defaulted safely during mapping, never rejected.
type RawPost struct {
	ID        string `json:"id"`
	CreatorID string `json:"creator_id"`

	Creator struct {
		Name      string `json:"name"`
		AvatarURL string `json:"avatar_url"`
	} `json:"creator"`

	Caption   string     `json:"caption"`
	CoverURL  string     `json:"cover_url"`
	MediaURL  string     `json:"media_url"`
	Permalink string     `json:"permalink"`
	Published *time.Time `json:"published_at"`

	Stats RawPostStats `json:"stats"`

	// Labels per taxonomy axis, raw label ids.
	Formats    []string `json:"formats"`
	Proposals  []string `json:"proposals"`
	Contexts   []string `json:"contexts"`
	Tones      []string `json:"tones"`
	References []string `json:"references"`
}

// RawPostStats is the counter bag of a RawPost. Counters the store doesn't
// track for a given media type are simply absent and decode to 0.
type RawPostStats struct {
	Interactions     int64   `json:"interactions"`
	Likes            int64   `json:"likes"`
	Comments         int64   `json:"comments"`
	Shares           int64   `json:"shares"`
	Views            int64   `json:"views"`
	Reach            int64   `json:"reach"`
	Impressions      int64   `json:"impressions"`
	Saved            int64   `json:"saved"`
	VideoDurationSec float64 `json:"video_duration_sec"`
}

// RawPostPage is one page of the retrieval store's list response.
type RawPostPage struct {
	Posts   []RawPost `json:"posts"`
	Total   int       `json:"total"`
	HasMore bool      `json:"has_more"`
}

// TopCategoriesResponse is the personalization-signal service's answer for
// one user: their historically best-performing categories per axis.
type TopCategoriesResponse struct {
	UserID    string   `json:"user_id"`
	Contexts  []string `json:"contexts"`
	Proposals []string `json:"proposals"`
}

// LabelBatch is the taxonomy service's label resolution response.
type LabelBatch struct {
	Labels []Label `json:"labels"`
}

// Label is one taxonomy label with its canonical display form.
type Label struct {
	ID      string `json:"id"`
	Axis    string `json:"axis"`
	Display string `json:"display"`
}
