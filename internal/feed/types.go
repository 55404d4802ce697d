// Vitrina - Content Discovery Feed Composition for Creator Analytics
// Copyright 2026 Vitrina contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/vitrina-app/vitrina

package feed

import (
	"context"
	"time"
)

// RawStats is the unprocessed counter bag attached to a candidate post.
// Counters are absolute totals as reported by the retrieval collaborator;
// zero means "none observed or not reported".
type RawStats struct {
	// Interactions is the total engagement count (likes + comments + shares
	// + saves, as aggregated upstream).
	Interactions int64 `json:"interactions"`

	// Likes is the like count.
	Likes int64 `json:"likes"`

	// Comments is the comment count.
	Comments int64 `json:"comments"`

	// Shares is the share count.
	Shares int64 `json:"shares"`

	// Views is the view/play count.
	Views int64 `json:"views"`

	// Reach is the unique-accounts-reached count.
	Reach int64 `json:"reach"`

	// Impressions is the total-impressions count.
	Impressions int64 `json:"impressions"`

	// Saved is the save/bookmark count.
	Saved int64 `json:"saved"`

	// VideoDurationSec is the video duration in seconds, 0 for non-video.
	VideoDurationSec float64 `json:"video_duration_sec"`
}

// HasEngagement reports whether at least one positive engagement counter is
// present. Used by the minimum-signal filter.
func (s RawStats) HasEngagement() bool {
	return s.Interactions > 0 || s.Comments > 0 || s.Shares > 0 ||
		s.Views > 0 || s.Saved > 0
}

// Labels holds the multi-valued taxonomy labels of a candidate, one slice
// per axis. Values are raw label ids; display resolution happens at the
// response boundary, never inside ranking.
type Labels struct {
	Formats    []string `json:"formats,omitempty"`
	Proposals  []string `json:"proposals,omitempty"`
	Contexts   []string `json:"contexts,omitempty"`
	Tones      []string `json:"tones,omitempty"`
	References []string `json:"references,omitempty"`
}

// Candidate is one post eligible for ranking. Candidates are immutable:
// they are created fresh per retrieval call (or materialized from cache)
// and discarded at the end of the request or cache TTL.
type Candidate struct {
	// ID is the opaque unique post identifier.
	ID string `json:"id"`

	// CreatorID identifies the post's creator.
	CreatorID string `json:"creator_id"`

	// CreatorName is the creator display name (rendering only).
	CreatorName string `json:"creator_name,omitempty"`

	// CreatorAvatarURL is the creator avatar (rendering only).
	CreatorAvatarURL string `json:"creator_avatar_url,omitempty"`

	// Caption is the post caption (rendering only).
	Caption string `json:"caption,omitempty"`

	// CoverURL is the cover/preview asset. Candidates without one are
	// filtered out before scoring.
	CoverURL string `json:"cover_url,omitempty"`

	// MediaURL is the primary media reference.
	MediaURL string `json:"media_url,omitempty"`

	// Permalink is the canonical public URL of the post.
	Permalink string `json:"permalink,omitempty"`

	// PublishedAt is the publish timestamp. Nil is not an error; recency
	// treats it as very old content.
	PublishedAt *time.Time `json:"published_at,omitempty"`

	// Stats is the raw counter bag.
	Stats RawStats `json:"stats"`

	// Labels holds the taxonomy labels per axis.
	Labels Labels `json:"labels"`
}

// Metrics holds the bounded per-item metrics derived from RawStats.
// They are recomputed per shelf build since the pool and "now" differ per
// shelf.
type Metrics struct {
	// InteractionRate is interactions over the best available audience
	// denominator (reach, views or impressions). 0 when no denominator.
	InteractionRate float64 `json:"interaction_rate"`

	// SavedRate is saves over views. 0 when views is 0.
	SavedRate float64 `json:"saved_rate"`

	// Recency is exp(-ageDays/halfLife), in [0, 1].
	Recency float64 `json:"recency"`

	// RawInteractions, RawComments, RawShares and RawSaved carry the raw
	// counters into the scorer for profiles that weight absolute volume.
	RawInteractions float64 `json:"raw_interactions"`
	RawComments     float64 `json:"raw_comments"`
	RawShares       float64 `json:"raw_shares"`
	RawSaved        float64 `json:"raw_saved"`
}

// ScoredCandidate pairs a candidate with its per-shelf derived metrics and
// combined score. The shelf pipeline operates on slices of these.
type ScoredCandidate struct {
	Candidate Candidate `json:"candidate"`
	Metrics   Metrics   `json:"metrics"`
	Score     float64   `json:"score"`
}

// CandidateFilter describes one shelf's retrieval filter. It is passed to
// the candidate store verbatim; the engine always re-ranks regardless of
// any sort hint the store honors.
type CandidateFilter struct {
	// WindowDays restricts candidates to posts published in the last N
	// days. 0 means no time window.
	WindowDays int `json:"window_days,omitempty"`

	// Categories is a category allow-list. Empty means all categories.
	Categories []string `json:"categories,omitempty"`

	// MinInteractions drops posts below this interaction count at the
	// store. 0 disables the threshold.
	MinInteractions int `json:"min_interactions,omitempty"`

	// OptInOnly restricts to creators who opted into discovery surfaces.
	OptInOnly bool `json:"opt_in_only,omitempty"`

	// MediaTypes is a media-type allow-list (raw format labels). Empty
	// means all types.
	MediaTypes []string `json:"media_types,omitempty"`

	// SortHint is forwarded to the store; results are re-ranked anyway.
	SortHint string `json:"sort_hint,omitempty"`

	// Limit caps how many candidates to pull. 0 means the engine default.
	Limit int `json:"limit,omitempty"`
}

// DiversityCaps holds per-key repetition ceilings for one shelf.
// A value of 0 disables capping on that dimension.
type DiversityCaps struct {
	MaxPerCreator  int `json:"max_per_creator,omitempty"`
	MaxPerContext  int `json:"max_per_context,omitempty"`
	MaxPerProposal int `json:"max_per_proposal,omitempty"`
}

// ShelfSpec fully describes one shelf archetype: what to retrieve, how to
// weight it and which post-processing to apply.
type ShelfSpec struct {
	// Key is the stable shelf identifier (e.g. "trending-now").
	Key string `json:"key"`

	// Title is the display title.
	Title string `json:"title"`

	// Filter is the candidate retrieval filter.
	Filter CandidateFilter `json:"filter"`

	// Weights is the scoring profile for this shelf.
	Weights Weights `json:"weights"`

	// Caps are the diversity ceilings applied after ranking.
	Caps DiversityCaps `json:"caps"`

	// ExplorationRatio is the fraction of slots reserved for the
	// recency-biased exploration tail, in [0, 1].
	ExplorationRatio float64 `json:"exploration_ratio"`

	// BalanceFormats enables the minimum-representation pass across the
	// canonical format set.
	BalanceFormats bool `json:"balance_formats,omitempty"`

	// AllowDuplicates exempts this shelf from cross-shelf deduplication.
	// Deliberate product choice: personalized and format-specific shelves
	// must not end up empty just because earlier shelves claimed their
	// items.
	AllowDuplicates bool `json:"allow_duplicates,omitempty"`

	// Personalized applies the user's boost lists during scoring.
	Personalized bool `json:"personalized,omitempty"`

	// MaxItems is the target shelf size. 0 means the engine default.
	MaxItems int `json:"max_items"`

	// CacheKey, when non-empty, marks the shelf's candidate pool as
	// filter-independent and cacheable under that key.
	CacheKey string `json:"cache_key,omitempty"`
}

// Boosts holds a user's historically best-performing categories, used as a
// soft scoring signal. Empty lists mean no personalization.
type Boosts struct {
	Contexts  []string `json:"contexts,omitempty"`
	Proposals []string `json:"proposals,omitempty"`
}

// Empty reports whether no boost signal is present.
func (b Boosts) Empty() bool {
	return len(b.Contexts) == 0 && len(b.Proposals) == 0
}

// Experience identifies a predefined shelf set. The catalog is a closed
// enum resolved once per request.
type Experience int

const (
	// ExperienceDefault builds the full configured shelf list.
	ExperienceDefault Experience = iota
	// ExperienceSingleShelf builds exactly one shelf selected by key.
	ExperienceSingleShelf
)

// String returns a human-readable experience name.
func (e Experience) String() string {
	switch e {
	case ExperienceDefault:
		return "default"
	case ExperienceSingleShelf:
		return "single_shelf"
	default:
		return "unknown"
	}
}

// Request describes one feed composition request.
type Request struct {
	// Experience selects the shelf set to build.
	Experience Experience `json:"experience"`

	// ShelfKey selects a single shelf when Experience is
	// ExperienceSingleShelf. An unknown key yields an empty shelf list,
	// not an error.
	ShelfKey string `json:"shelf_key,omitempty"`

	// UserID enables personalization boosts when non-empty.
	UserID string `json:"user_id,omitempty"`

	// Format restricts shelves to one media format and triggers profile
	// reweighting. Empty means no restriction.
	Format string `json:"format,omitempty"`

	// Now fixes the composition timestamp. Zero means time.Now().UTC();
	// tests pin it for deterministic recency.
	Now time.Time `json:"-"`

	// RequestID is a unique identifier for tracing.
	RequestID string `json:"request_id,omitempty"`
}

// Item is the rendering view of one ranked candidate in a shelf.
type Item struct {
	ID               string     `json:"id"`
	CreatorID        string     `json:"creator_id"`
	CreatorName      string     `json:"creator_name,omitempty"`
	CreatorAvatarURL string     `json:"creator_avatar_url,omitempty"`
	Caption          string     `json:"caption,omitempty"`
	CoverURL         string     `json:"cover_url,omitempty"`
	MediaURL         string     `json:"media_url,omitempty"`
	Permalink        string     `json:"permalink,omitempty"`
	PublishedAt      *time.Time `json:"published_at,omitempty"`

	// Stats subset surfaced to the UI.
	Interactions     int64   `json:"interactions"`
	Comments         int64   `json:"comments"`
	Shares           int64   `json:"shares"`
	Saved            int64   `json:"saved"`
	Views            int64   `json:"views"`
	VideoDurationSec float64 `json:"video_duration_sec,omitempty"`

	// Display labels per axis, resolved via the taxonomy collaborator.
	Formats   []string `json:"formats,omitempty"`
	Proposals []string `json:"proposals,omitempty"`
	Contexts  []string `json:"contexts,omitempty"`
	Tones     []string `json:"tones,omitempty"`

	// Score is the final combined score, exposed for debugging surfaces.
	Score float64 `json:"score"`
}

// Shelf is one named, independently ranked row of the composed feed.
type Shelf struct {
	Key   string `json:"key"`
	Title string `json:"title"`
	Items []Item `json:"items"`
}

// Capabilities summarizes UI affordances supported by the returned items.
type Capabilities struct {
	HasReels    bool `json:"has_reels"`
	HasDuration bool `json:"has_duration"`
	HasSaved    bool `json:"has_saved"`
}

// Response is the assembled multi-shelf feed.
type Response struct {
	Shelves                []Shelf      `json:"shelves"`
	PersonalizationApplied bool         `json:"personalization_applied"`
	Capabilities           Capabilities `json:"capabilities"`
	GeneratedAt            time.Time    `json:"generated_at"`
	RequestID              string       `json:"request_id,omitempty"`
}

// CandidateSource retrieves raw candidate pools. Implemented by the
// retrieval collaborator client; honoring context cancellation on the wire
// call is its responsibility.
type CandidateSource interface {
	FetchCandidates(ctx context.Context, filter CandidateFilter) ([]Candidate, error)
}

// CandidateCache is the ephemeral, short-TTL store for expensive,
// filter-independent candidate pools. Implementations must be safe for
// concurrent use. A duplicate compute on a cold entry is acceptable; no
// single-flight suppression is required.
type CandidateCache interface {
	Get(key string) ([]Candidate, bool)
	Set(key string, candidates []Candidate)
}

// SignalProvider returns a user's top categories for boost seeding.
// Optional: the engine degrades to empty boosts when unavailable.
type SignalProvider interface {
	TopCategories(ctx context.Context, userID string) (Boosts, error)
}

// LabelResolver maps raw taxonomy label ids to canonical display labels.
// Presentation only; ranking always operates on raw ids.
type LabelResolver interface {
	Display(axis, rawID string) string
}

// Label axes understood by LabelResolver implementations.
const (
	AxisFormat    = "format"
	AxisProposal  = "proposal"
	AxisContext   = "context"
	AxisTone      = "tone"
	AxisReference = "reference"
)
