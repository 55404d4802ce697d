// Vitrina - Content Discovery Feed Composition for Creator Analytics
// Copyright 2026 Vitrina contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/vitrina-app/vitrina

package retrieval

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"
	gobreaker "github.com/sony/gobreaker/v2"
	"golang.org/x/time/rate"

	"github.com/vitrina-app/vitrina/internal/config"
	"github.com/vitrina-app/vitrina/internal/feed"
	"github.com/vitrina-app/vitrina/internal/metrics"
	"github.com/vitrina-app/vitrina/internal/models"
)

// maxErrorBodySize limits the amount of response body read for error
// reporting, preventing unbounded allocation on large error responses.
const maxErrorBodySize = 64 * 1024 // 64KB

// defaultFetchLimit bounds a fetch whose filter carries no limit. The
// composer normally sets one; this is the safety net.
const defaultFetchLimit = 500

// Client fetches candidate posts from the content archive.
//
// Thread Safety: safe for concurrent use. Each shelf build issues its own
// requests; the limiter and breaker are shared across all of them.
type Client struct {
	baseURL  string
	apiKey   string
	http     *http.Client
	limiter  *rate.Limiter
	breaker  *gobreaker.CircuitBreaker[*models.RawPostPage]
	pageSize int
	logger   zerolog.Logger
}

// NewClient creates a content-archive client from configuration.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewClient(cfg *config.ArchiveConfig, logger zerolog.Logger) *Client {
	cbName := "content-archive"
	componentLogger := logger.With().Str("component", "retrieval").Logger()

	// Initialize circuit breaker state metrics
	metrics.CircuitBreakerState.WithLabelValues(cbName).Set(0) // 0 = closed
	metrics.CircuitBreakerConsecutiveFailures.WithLabelValues(cbName).Set(0)

	breaker := gobreaker.NewCircuitBreaker[*models.RawPostPage](gobreaker.Settings{
		Name:        cbName,
		MaxRequests: cfg.BreakerMaxRequests,
		Interval:    cfg.BreakerInterval,
		Timeout:     cfg.BreakerTimeout,

		// Opens when the failure rate reaches the configured ratio with a
		// minimum sample count for statistical significance.
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < cfg.BreakerMinRequests {
				return false
			}

			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			shouldTrip := failureRatio >= cfg.BreakerFailureRatio

			if shouldTrip {
				componentLogger.Warn().
					Uint32("failures", counts.TotalFailures).
					Float64("failure_rate", failureRatio*100).
					Msg("opening archive circuit")
			}

			return shouldTrip
		},

		OnStateChange: func(name string, from, to gobreaker.State) {
			fromStr := stateToString(from)
			toStr := stateToString(to)

			componentLogger.Info().
				Str("from", fromStr).
				Str("to", toStr).
				Msg("archive circuit state transition")

			metrics.CircuitBreakerState.WithLabelValues(name).Set(stateToFloat(to))
			metrics.CircuitBreakerTransitions.WithLabelValues(name, fromStr, toStr).Inc()

			if to == gobreaker.StateClosed {
				metrics.CircuitBreakerConsecutiveFailures.WithLabelValues(name).Set(0)
			}
		},
	})

	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:  cfg.APIKey,
		http: &http.Client{
			Timeout: cfg.Timeout,
		},
		limiter:  rate.NewLimiter(rate.Limit(cfg.RateLimitPerSecond), cfg.RateLimitBurst),
		breaker:  breaker,
		pageSize: cfg.PageSize,
		logger:   componentLogger,
	}
}

// FetchCandidates pulls candidate posts matching the filter, paging
// through the archive until the filter limit is reached or the archive
// reports no more pages. The returned order is the archive's; callers
// always re-rank.
func (c *Client) FetchCandidates(ctx context.Context, filter feed.CandidateFilter) ([]feed.Candidate, error) {
	limit := filter.Limit
	if limit <= 0 {
		limit = defaultFetchLimit
	}

	raws := make([]models.RawPost, 0, min(limit, c.pageSize))
	offset := 0

	for len(raws) < limit {
		pageLimit := min(c.pageSize, limit-len(raws))

		page, err := c.fetchPage(ctx, &filter, offset, pageLimit)
		if err != nil {
			return nil, err
		}

		raws = append(raws, page.Posts...)
		offset += len(page.Posts)

		// A short or final page ends pagination. An empty page does too,
		// whatever has_more claims, to rule out infinite loops.
		if !page.HasMore || len(page.Posts) == 0 {
			break
		}
	}

	if len(raws) > limit {
		raws = raws[:limit]
	}

	candidates := feed.CandidatesFromRaw(raws)

	metrics.ArchiveCandidatesFetched.Add(float64(len(candidates)))
	c.logger.Debug().
		Int("fetched", len(raws)).
		Int("mapped", len(candidates)).
		Int("window_days", filter.WindowDays).
		Msg("candidate fetch complete")

	return candidates, nil
}

// fetchPage retrieves one page through the rate limiter and circuit
// breaker.
func (c *Client) fetchPage(ctx context.Context, filter *feed.CandidateFilter, offset, limit int) (*models.RawPostPage, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter wait: %w", err)
	}

	start := time.Now()
	page, err := c.breaker.Execute(func() (*models.RawPostPage, error) {
		return c.doFetchPage(ctx, filter, offset, limit)
	})
	metrics.RecordArchiveRequest(time.Since(start), err)

	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			metrics.CircuitBreakerRequests.WithLabelValues("content-archive", "rejected").Inc()
			return nil, fmt.Errorf("archive unavailable: %w", err)
		}
		metrics.CircuitBreakerRequests.WithLabelValues("content-archive", "failure").Inc()
		counts := c.breaker.Counts()
		metrics.CircuitBreakerConsecutiveFailures.WithLabelValues("content-archive").Set(float64(counts.ConsecutiveFailures))
		return nil, err
	}

	metrics.CircuitBreakerRequests.WithLabelValues("content-archive", "success").Inc()
	metrics.ArchivePagesFetched.Inc()
	return page, nil
}

// doFetchPage performs the raw HTTP request and decode.
func (c *Client) doFetchPage(ctx context.Context, filter *feed.CandidateFilter, offset, limit int) (*models.RawPostPage, error) {
	reqURL := fmt.Sprintf("%s/api/v1/posts?%s", c.baseURL, buildQuery(filter, offset, limit).Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("archive request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body := readBodyForError(resp.Body)
		return nil, fmt.Errorf("archive returned HTTP %d: %s", resp.StatusCode, string(body))
	}

	var page models.RawPostPage
	if err := json.NewDecoder(resp.Body).Decode(&page); err != nil {
		return nil, fmt.Errorf("failed to decode archive response: %w", err)
	}

	return &page, nil
}

// buildQuery translates a candidate filter into the archive's list
// parameters.
func buildQuery(filter *feed.CandidateFilter, offset, limit int) url.Values {
	params := url.Values{}
	params.Set("offset", strconv.Itoa(offset))
	params.Set("limit", strconv.Itoa(limit))

	if filter.WindowDays > 0 {
		params.Set("window_days", strconv.Itoa(filter.WindowDays))
	}
	if len(filter.Categories) > 0 {
		params.Set("categories", strings.Join(filter.Categories, ","))
	}
	if filter.MinInteractions > 0 {
		params.Set("min_interactions", strconv.Itoa(filter.MinInteractions))
	}
	if filter.OptInOnly {
		params.Set("opt_in", "true")
	}
	if len(filter.MediaTypes) > 0 {
		params.Set("media_types", strings.Join(filter.MediaTypes, ","))
	}
	if filter.SortHint != "" {
		params.Set("sort", filter.SortHint)
	}

	return params
}

// readBodyForError reads the response body for error reporting (max 64KB).
// Returns the body content or a placeholder message if reading fails.
func readBodyForError(r io.Reader) []byte {
	limitedReader := io.LimitReader(r, maxErrorBodySize)
	body, err := io.ReadAll(limitedReader)
	if err != nil {
		return []byte("(failed to read response body)")
	}
	if len(body) == maxErrorBodySize {
		return append(body, []byte("\n... (truncated)")...)
	}
	return body
}

// stateToString converts a gobreaker state to its metric label.
func stateToString(state gobreaker.State) string {
	switch state {
	case gobreaker.StateClosed:
		return "closed"
	case gobreaker.StateHalfOpen:
		return "half-open"
	case gobreaker.StateOpen:
		return "open"
	default:
		return "unknown"
	}
}

// stateToFloat converts a gobreaker state to its gauge value.
func stateToFloat(state gobreaker.State) float64 {
	switch state {
	case gobreaker.StateClosed:
		return 0
	case gobreaker.StateHalfOpen:
		return 1
	case gobreaker.StateOpen:
		return 2
	default:
		return -1
	}
}

// Ensure Client satisfies the engine's source contract.
var _ feed.CandidateSource = (*Client)(nil)
