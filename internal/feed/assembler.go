// Vitrina - Content Discovery Feed Composition for Creator Analytics
// Copyright 2026 Vitrina contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/vitrina-app/vitrina

package feed

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Shelf build outcomes reported to the Observer.
const (
	OutcomeOK      = "ok"
	OutcomeEmpty   = "empty"
	OutcomeFailure = "failure"
)

// Observer receives shelf build telemetry. Implemented by the metrics
// package; a nil observer disables instrumentation.
type Observer interface {
	ShelfBuilt(shelf, outcome string, duration time.Duration)
}

// Assembler runs the requested shelves concurrently, deduplicates
// candidate identifiers across shelves and computes response-level
// capability flags. Partial failures are tolerated by design: a failed or
// empty shelf is omitted, the rest of the response is unaffected.
type Assembler struct {
	cfg      *Config
	composer *Composer
	catalog  *Catalog
	signals  SignalProvider
	resolver LabelResolver
	observer Observer
	logger   zerolog.Logger
}

// AssemblerOption configures optional collaborators.
type AssemblerOption func(*Assembler)

// WithSignals wires the personalization-signal provider.
func WithSignals(p SignalProvider) AssemblerOption {
	return func(a *Assembler) { a.signals = p }
}

// WithLabelResolver wires the taxonomy display resolver.
func WithLabelResolver(r LabelResolver) AssemblerOption {
	return func(a *Assembler) { a.resolver = r }
}

// WithObserver wires shelf build telemetry.
func WithObserver(o Observer) AssemblerOption {
	return func(a *Assembler) { a.observer = o }
}

// NewAssembler creates a feed assembler.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewAssembler(cfg *Config, composer *Composer, catalog *Catalog, logger zerolog.Logger, opts ...AssemblerOption) (*Assembler, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	if composer == nil {
		return nil, fmt.Errorf("composer is required")
	}
	if catalog == nil {
		catalog = DefaultCatalog(cfg)
	}

	a := &Assembler{
		cfg:      cfg,
		composer: composer,
		catalog:  catalog,
		logger:   logger.With().Str("component", "assembler").Logger(),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a, nil
}

// shelfOutcome is one shelf build's result, indexed by spec position.
type shelfOutcome struct {
	items    []ScoredCandidate
	err      error
	duration time.Duration
}

// Compose builds the feed for one request. The only request-level failure
// is context cancellation; everything below the shelf boundary degrades to
// omitted shelves.
func (a *Assembler) Compose(ctx context.Context, req Request) (*Response, error) {
	now := req.Now
	if now.IsZero() {
		now = time.Now().UTC()
	}
	if req.RequestID == "" {
		req.RequestID = uuid.New().String()
	}

	logger := a.logger.With().
		Str("request_id", req.RequestID).
		Str("experience", req.Experience.String()).
		Logger()

	specs := a.catalog.Resolve(&req)
	boosts := a.lookupBoosts(ctx, &req, logger)

	resp := &Response{
		Shelves:                []Shelf{},
		PersonalizationApplied: !boosts.Empty(),
		GeneratedAt:            now,
		RequestID:              req.RequestID,
	}
	if len(specs) == 0 {
		logger.Debug().Str("shelf_key", req.ShelfKey).Msg("no shelves resolved for request")
		return resp, nil
	}

	outcomes := a.buildShelves(ctx, specs, boosts, now, logger)

	// Cancelled requests return nothing rather than a partial feed.
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	a.pack(resp, specs, outcomes)

	logger.Debug().
		Int("shelves_requested", len(specs)).
		Int("shelves_returned", len(resp.Shelves)).
		Bool("personalized", resp.PersonalizationApplied).
		Msg("feed composition complete")

	return resp, nil
}

// lookupBoosts fetches the user's top categories. Personalization is a
// soft signal: any failure degrades to empty boosts without surfacing an
// error.
func (a *Assembler) lookupBoosts(ctx context.Context, req *Request, logger zerolog.Logger) Boosts {
	if a.signals == nil || req.UserID == "" {
		return Boosts{}
	}
	boosts, err := a.signals.TopCategories(ctx, req.UserID)
	if err != nil {
		logger.Debug().Err(err).Str("user_id", req.UserID).Msg("personalization signals unavailable")
		return Boosts{}
	}
	return boosts
}

// buildShelves fans out one goroutine per shelf and waits for all of them,
// success or failure. No shelf build blocks another; each owns its own
// retrieval call and transform pipeline.
func (a *Assembler) buildShelves(ctx context.Context, specs []ShelfSpec, boosts Boosts, now time.Time, logger zerolog.Logger) []shelfOutcome {
	outcomes := make([]shelfOutcome, len(specs))
	var wg sync.WaitGroup

	for i := range specs {
		wg.Add(1)
		go func(idx int, spec *ShelfSpec) {
			defer wg.Done()
			outcomes[idx] = a.buildShelf(ctx, spec, boosts, now, logger)
		}(i, &specs[i])
	}

	wg.Wait()
	return outcomes
}

// buildShelf runs one shelf pipeline behind the failure boundary: panics
// and errors are captured here, logged with shelf id and timing, and
// reported as an omitted shelf.
func (a *Assembler) buildShelf(ctx context.Context, spec *ShelfSpec, boosts Boosts, now time.Time, logger zerolog.Logger) (outcome shelfOutcome) {
	start := time.Now()
	defer func() {
		outcome.duration = time.Since(start)
		if r := recover(); r != nil {
			outcome.items = nil
			outcome.err = transformFailure(fmt.Errorf("panic: %v", r))
		}
		a.reportShelf(spec.Key, &outcome, logger)
	}()

	shelfCtx, cancel := context.WithTimeout(ctx, a.cfg.ShelfTimeout)
	defer cancel()

	items, err := a.composer.Compose(shelfCtx, spec, boosts, now)
	outcome.items = items
	outcome.err = err
	return outcome
}

// reportShelf logs and instruments one shelf build result.
func (a *Assembler) reportShelf(key string, outcome *shelfOutcome, logger zerolog.Logger) {
	result := OutcomeOK
	switch {
	case outcome.err != nil:
		result = OutcomeFailure
		logger.Error().
			Err(outcome.err).
			Str("shelf", key).
			Int64("duration_ms", outcome.duration.Milliseconds()).
			Msg("shelf build failed")
	case len(outcome.items) == 0:
		result = OutcomeEmpty
		logger.Debug().
			Str("shelf", key).
			Int64("duration_ms", outcome.duration.Milliseconds()).
			Msg("shelf has no eligible candidates")
	default:
		logger.Debug().
			Str("shelf", key).
			Int("items", len(outcome.items)).
			Int64("duration_ms", outcome.duration.Milliseconds()).
			Msg("shelf build complete")
	}
	if a.observer != nil {
		a.observer.ShelfBuilt(key, result, outcome.duration)
	}
}

// pack deduplicates identifiers across shelves in fixed spec order and
// materializes the rendering view. One seen-set spans the whole response;
// a shelf in the allow-duplicates set keeps contested items and does not
// claim ids, so it never starves later shelves. Shelves that end up empty
// after dedup are dropped. Capability flags are computed in the same
// single pass over kept items, each short-circuiting once an example is
// found.
func (a *Assembler) pack(resp *Response, specs []ShelfSpec, outcomes []shelfOutcome) {
	seen := make(map[string]struct{})
	caps := &resp.Capabilities

	for i := range specs {
		spec := &specs[i]
		if outcomes[i].err != nil || len(outcomes[i].items) == 0 {
			continue
		}

		maxItems := spec.MaxItems
		if maxItems <= 0 {
			maxItems = a.cfg.DefaultMaxItems
		}

		items := make([]Item, 0, maxItems)
		for j := range outcomes[i].items {
			if len(items) >= maxItems {
				break
			}
			sc := &outcomes[i].items[j]
			if !spec.AllowDuplicates {
				if _, dup := seen[sc.Candidate.ID]; dup {
					continue
				}
			}
			items = append(items, a.itemView(sc))
			updateCapabilities(caps, &sc.Candidate)
			if !spec.AllowDuplicates {
				seen[sc.Candidate.ID] = struct{}{}
			}
		}

		if len(items) == 0 {
			continue
		}
		resp.Shelves = append(resp.Shelves, Shelf{
			Key:   spec.Key,
			Title: spec.Title,
			Items: items,
		})
	}
}

// itemView converts a scored candidate into its rendering view, resolving
// display labels through the taxonomy collaborator when wired.
func (a *Assembler) itemView(sc *ScoredCandidate) Item {
	c := &sc.Candidate
	return Item{
		ID:               c.ID,
		CreatorID:        c.CreatorID,
		CreatorName:      c.CreatorName,
		CreatorAvatarURL: c.CreatorAvatarURL,
		Caption:          c.Caption,
		CoverURL:         c.CoverURL,
		MediaURL:         c.MediaURL,
		Permalink:        c.Permalink,
		PublishedAt:      c.PublishedAt,
		Interactions:     c.Stats.Interactions,
		Comments:         c.Stats.Comments,
		Shares:           c.Stats.Shares,
		Saved:            c.Stats.Saved,
		Views:            c.Stats.Views,
		VideoDurationSec: c.Stats.VideoDurationSec,
		Formats:          a.displayLabels(AxisFormat, c.Labels.Formats),
		Proposals:        a.displayLabels(AxisProposal, c.Labels.Proposals),
		Contexts:         a.displayLabels(AxisContext, c.Labels.Contexts),
		Tones:            a.displayLabels(AxisTone, c.Labels.Tones),
		Score:            sc.Score,
	}
}

// displayLabels resolves raw label ids to display labels, passing raw ids
// through when no resolver is wired.
func (a *Assembler) displayLabels(axis string, raw []string) []string {
	if len(raw) == 0 {
		return nil
	}
	if a.resolver == nil {
		out := make([]string, len(raw))
		copy(out, raw)
		return out
	}
	out := make([]string, len(raw))
	for i, id := range raw {
		out[i] = a.resolver.Display(axis, id)
	}
	return out
}

// updateCapabilities folds one kept candidate into the capability summary.
// Each flag is checked only until its first example.
func updateCapabilities(caps *Capabilities, c *Candidate) {
	if !caps.HasReels && candidateFormat(c) == FormatReel {
		caps.HasReels = true
	}
	if !caps.HasDuration && c.Stats.VideoDurationSec > 0 {
		caps.HasDuration = true
	}
	if !caps.HasSaved && c.Stats.Saved > 0 {
		caps.HasSaved = true
	}
}
