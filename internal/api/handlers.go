// Vitrina - Content Discovery Feed Composition for Creator Analytics
// Copyright 2026 Vitrina contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/vitrina-app/vitrina

package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/vitrina-app/vitrina/internal/feed"
	"github.com/vitrina-app/vitrina/internal/metrics"
	"github.com/vitrina-app/vitrina/internal/middleware"
	"github.com/vitrina-app/vitrina/internal/models"
	"github.com/vitrina-app/vitrina/internal/validation"
)

// FeedComposer is the assembler's surface consumed by the HTTP handlers.
// Satisfied by *feed.Assembler; mocked in handler tests.
type FeedComposer interface {
	Compose(ctx context.Context, req feed.Request) (*feed.Response, error)
}

// Handler holds the HTTP handlers' collaborators.
type Handler struct {
	composer  FeedComposer
	logger    zerolog.Logger
	startTime time.Time
}

// NewHandler creates the API handler set.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewHandler(composer FeedComposer, logger zerolog.Logger) *Handler {
	return &Handler{
		composer:  composer,
		logger:    logger.With().Str("component", "api").Logger(),
		startTime: time.Now(),
	}
}

// feedQueryRequest carries the validated query parameters of the feed
// endpoints.
type feedQueryRequest struct {
	Format string `validate:"omitempty,oneof=reel reels short photo image carousel album gallery video igtv"`
	Shelf  string `validate:"omitempty,max=64"`
}

// Feed handles GET /api/v1/feed: the full default experience.
func (h *Handler) Feed(w http.ResponseWriter, r *http.Request) {
	h.composeFeed(w, r, feed.Request{
		Experience: feed.ExperienceDefault,
	})
}

// FeedShelf handles GET /api/v1/feed/{shelf}: exactly one shelf by key.
// An unknown key returns 200 with an empty shelf list, mirroring the
// engine's contract.
func (h *Handler) FeedShelf(w http.ResponseWriter, r *http.Request) {
	h.composeFeed(w, r, feed.Request{
		Experience: feed.ExperienceSingleShelf,
		ShelfKey:   chi.URLParam(r, "shelf"),
	})
}

// composeFeed runs one composition request and writes the response
// envelope.
func (h *Handler) composeFeed(w http.ResponseWriter, r *http.Request, req feed.Request) {
	ctx := r.Context()

	q := feedQueryRequest{
		Format: r.URL.Query().Get("format"),
		Shelf:  req.ShelfKey,
	}
	if verr := validation.ValidateStruct(&q); verr != nil {
		apiErr := verr.ToAPIError()
		respondError(w, http.StatusBadRequest, apiErr.Code, apiErr.Message, nil)
		return
	}

	req.Format = q.Format
	req.UserID = UserIDFromContext(ctx)
	req.RequestID = middleware.GetRequestID(ctx)

	start := time.Now()
	resp, err := h.composer.Compose(ctx, req)
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			// Client went away or the request ran out of time; there is
			// nobody left to render a partial feed for.
			respondError(w, http.StatusServiceUnavailable, "COMPOSITION_TIMEOUT", "Feed composition timed out", err)
			return
		}
		respondError(w, http.StatusInternalServerError, "COMPOSITION_ERROR", "Failed to compose feed", err)
		return
	}

	metrics.RecordFeedComposition(req.Experience.String(), resp.PersonalizationApplied)

	respondJSON(w, http.StatusOK, &models.APIResponse{
		Status: "success",
		Data:   resp,
		Metadata: models.Metadata{
			Timestamp:     time.Now().UTC(),
			ComposeTimeMS: time.Since(start).Milliseconds(),
			RequestID:     req.RequestID,
		},
	})
}

// HealthLive handles GET /api/v1/health/live. Liveness means the process
// is serving requests; it carries no dependency checks.
func (h *Handler) HealthLive(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, &models.APIResponse{
		Status: "success",
		Data: map[string]interface{}{
			"status": "alive",
			"uptime": time.Since(h.startTime).String(),
		},
		Metadata: models.Metadata{Timestamp: time.Now().UTC()},
	})
}

// HealthReady handles GET /api/v1/health/ready. The feed degrades shelf
// by shelf rather than failing whole, so readiness tracks liveness; a
// broken archive surfaces through shelf outcome metrics instead.
func (h *Handler) HealthReady(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, &models.APIResponse{
		Status: "success",
		Data: map[string]interface{}{
			"status": "ready",
		},
		Metadata: models.Metadata{Timestamp: time.Now().UTC()},
	})
}
