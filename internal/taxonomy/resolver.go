// Vitrina - Content Discovery Feed Composition for Creator Analytics
// Copyright 2026 Vitrina contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/vitrina-app/vitrina

// Package taxonomy resolves raw label identifiers into canonical display
// labels using the label-taxonomy service.
//
// The full label map is small and changes rarely, so the resolver holds
// it in memory and refreshes it periodically under the supervisor instead
// of resolving per request. Lookups never block on the network: an
// unknown or not-yet-loaded label falls back to its raw identifier.
package taxonomy

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"

	"github.com/vitrina-app/vitrina/internal/config"
	"github.com/vitrina-app/vitrina/internal/feed"
	"github.com/vitrina-app/vitrina/internal/metrics"
	"github.com/vitrina-app/vitrina/internal/models"
)

// Resolver caches the taxonomy label map and serves display lookups from
// memory. It implements feed.LabelResolver for lookups and
// suture.Service for the periodic refresh.
type Resolver struct {
	baseURL string
	apiKey  string
	http    *http.Client
	ttl     time.Duration
	logger  zerolog.Logger

	mu     sync.RWMutex
	labels map[string]string // axis + "\x00" + id -> display
}

// NewResolver creates a taxonomy resolver from configuration. The label
// map starts empty; Serve populates it on startup and keeps it fresh.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewResolver(cfg *config.TaxonomyConfig, logger zerolog.Logger) *Resolver {
	ttl := cfg.CacheTTL
	if ttl < time.Minute {
		ttl = time.Minute
	}
	return &Resolver{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:  cfg.APIKey,
		http: &http.Client{
			Timeout: cfg.Timeout,
		},
		ttl:    ttl,
		labels: make(map[string]string),
		logger: logger.With().Str("component", "taxonomy").Logger(),
	}
}

// Display returns the canonical display label for a raw id, or the raw
// id itself when the taxonomy doesn't know it. Missing labels are a
// rendering concern, never an error.
func (r *Resolver) Display(axis, rawID string) string {
	r.mu.RLock()
	display, ok := r.labels[labelKey(axis, rawID)]
	r.mu.RUnlock()

	if !ok || display == "" {
		return rawID
	}
	return display
}

// Refresh fetches the full label map and swaps it in atomically. A
// failed refresh keeps the previous map.
func (r *Resolver) Refresh(ctx context.Context) error {
	reqURL := fmt.Sprintf("%s/api/v1/labels", r.baseURL)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, http.NoBody)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if r.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+r.apiKey)
	}

	resp, err := r.http.Do(req)
	if err != nil {
		metrics.RecordTaxonomyRefresh(0, err)
		return fmt.Errorf("taxonomy request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		err := fmt.Errorf("taxonomy returned HTTP %d", resp.StatusCode)
		metrics.RecordTaxonomyRefresh(0, err)
		return err
	}

	var batch models.LabelBatch
	if err := json.NewDecoder(resp.Body).Decode(&batch); err != nil {
		metrics.RecordTaxonomyRefresh(0, err)
		return fmt.Errorf("failed to decode taxonomy response: %w", err)
	}

	labels := make(map[string]string, len(batch.Labels))
	for i := range batch.Labels {
		l := &batch.Labels[i]
		if l.ID == "" {
			continue
		}
		labels[labelKey(l.Axis, l.ID)] = l.Display
	}

	r.mu.Lock()
	r.labels = labels
	r.mu.Unlock()

	metrics.RecordTaxonomyRefresh(len(labels), nil)
	r.logger.Debug().Int("labels", len(labels)).Msg("taxonomy label map refreshed")
	return nil
}

// Serve refreshes the label map on startup and then on every TTL tick
// until the context is cancelled. Refresh failures are logged and
// retried on the next tick; the resolver keeps serving the last good
// map in between.
func (r *Resolver) Serve(ctx context.Context) error {
	if err := r.Refresh(ctx); err != nil {
		r.logger.Warn().Err(err).Msg("initial taxonomy refresh failed")
	}

	ticker := time.NewTicker(r.ttl)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if err := r.Refresh(ctx); err != nil {
				r.logger.Warn().Err(err).Msg("taxonomy refresh failed")
			}
		}
	}
}

// String names the service in supervisor logs.
func (r *Resolver) String() string {
	return "taxonomy-resolver"
}

// Size returns the number of cached labels.
func (r *Resolver) Size() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.labels)
}

// labelKey builds the composite cache key for one axis/id pair. Axes are
// case-insensitive, raw ids are not.
func labelKey(axis, id string) string {
	return strings.ToLower(axis) + "\x00" + id
}

// Ensure Resolver satisfies the engine's resolver contract.
var _ feed.LabelResolver = (*Resolver)(nil)
