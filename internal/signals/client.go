// Vitrina - Content Discovery Feed Composition for Creator Analytics
// Copyright 2026 Vitrina contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/vitrina-app/vitrina

// Package signals implements the personalization-signals client. It
// answers one question per user: which contexts and proposals have
// historically performed best for them.
//
// The service is a soft dependency. The assembler treats any failure
// here as "no personalization", so the client returns plain errors and
// never retries; a slow signals service must not slow the feed down.
package signals

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"

	"github.com/vitrina-app/vitrina/internal/config"
	"github.com/vitrina-app/vitrina/internal/feed"
	"github.com/vitrina-app/vitrina/internal/metrics"
	"github.com/vitrina-app/vitrina/internal/models"
)

// Client fetches per-user top categories from the signals service.
//
// Thread Safety: safe for concurrent use.
type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
	logger  zerolog.Logger
}

// NewClient creates a signals client from configuration.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewClient(cfg *config.SignalsConfig, logger zerolog.Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:  cfg.APIKey,
		http: &http.Client{
			Timeout: cfg.Timeout,
		},
		logger: logger.With().Str("component", "signals").Logger(),
	}
}

// TopCategories returns the user's preferred contexts and proposals.
// Errors surface to the caller, which degrades to unpersonalized boosts.
func (c *Client) TopCategories(ctx context.Context, userID string) (feed.Boosts, error) {
	reqURL := fmt.Sprintf("%s/api/v1/users/%s/top-categories", c.baseURL, url.PathEscape(userID))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, http.NoBody)
	if err != nil {
		return feed.Boosts{}, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		metrics.RecordSignalsLookup(err)
		return feed.Boosts{}, fmt.Errorf("signals request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		// Unknown user: a valid empty answer, not a failure.
		metrics.RecordSignalsLookup(nil)
		return feed.Boosts{}, nil
	}
	if resp.StatusCode != http.StatusOK {
		err := fmt.Errorf("signals returned HTTP %d", resp.StatusCode)
		metrics.RecordSignalsLookup(err)
		return feed.Boosts{}, err
	}

	var body models.TopCategoriesResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		metrics.RecordSignalsLookup(err)
		return feed.Boosts{}, fmt.Errorf("failed to decode signals response: %w", err)
	}

	metrics.RecordSignalsLookup(nil)
	c.logger.Debug().
		Str("user_id", userID).
		Int("contexts", len(body.Contexts)).
		Int("proposals", len(body.Proposals)).
		Dur("elapsed", time.Since(start)).
		Msg("top categories resolved")

	return feed.Boosts{
		Contexts:  body.Contexts,
		Proposals: body.Proposals,
	}, nil
}

// Ensure Client satisfies the engine's signal contract.
var _ feed.SignalProvider = (*Client)(nil)
