// Vitrina - Content Discovery Feed Composition for Creator Analytics
// Copyright 2026 Vitrina contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/vitrina-app/vitrina

package taxonomy

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"

	"github.com/vitrina-app/vitrina/internal/config"
	"github.com/vitrina-app/vitrina/internal/feed"
	"github.com/vitrina-app/vitrina/internal/models"
)

func testResolver(baseURL string) *Resolver {
	return NewResolver(&config.TaxonomyConfig{
		BaseURL:  baseURL,
		Timeout:  5 * time.Second,
		CacheTTL: time.Hour,
	}, zerolog.Nop())
}

func labelServer(t *testing.T, labels ...models.Label) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v1/labels" {
			http.NotFound(w, r)
			return
		}
		_ = json.NewEncoder(w).Encode(models.LabelBatch{Labels: labels})
	}))
}

// TestResolver_DisplayFallback verifies unknown labels fall back to the raw
// id, before and after a refresh.
func TestResolver_DisplayFallback(t *testing.T) {
	srv := labelServer(t,
		models.Label{ID: "ctx-fitness", Axis: "context", Display: "Fitness & Health"},
		models.Label{ID: "fmt-reel", Axis: "Format", Display: "Reel"},
		models.Label{ID: "empty-display", Axis: "tone"},
	)
	defer srv.Close()

	r := testResolver(srv.URL)

	// Empty map: everything falls back.
	if got := r.Display(feed.AxisContext, "ctx-fitness"); got != "ctx-fitness" {
		t.Errorf("pre-refresh Display = %q, want raw id", got)
	}

	if err := r.Refresh(context.Background()); err != nil {
		t.Fatalf("Refresh failed: %v", err)
	}

	if got := r.Display(feed.AxisContext, "ctx-fitness"); got != "Fitness & Health" {
		t.Errorf("Display = %q, want resolved label", got)
	}
	// Axis matching is case-insensitive.
	if got := r.Display(feed.AxisFormat, "fmt-reel"); got != "Reel" {
		t.Errorf("Display = %q, want Reel", got)
	}
	// Empty display text falls back too.
	if got := r.Display(feed.AxisTone, "empty-display"); got != "empty-display" {
		t.Errorf("Display = %q, want raw id", got)
	}
	// Unknown id on a known axis.
	if got := r.Display(feed.AxisContext, "ctx-unknown"); got != "ctx-unknown" {
		t.Errorf("Display = %q, want raw id", got)
	}
}

// TestResolver_FailedRefreshKeepsLastGoodMap verifies a refresh failure
// never wipes the served map.
func TestResolver_FailedRefreshKeepsLastGoodMap(t *testing.T) {
	healthy := true
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !healthy {
			http.Error(w, "down", http.StatusServiceUnavailable)
			return
		}
		_ = json.NewEncoder(w).Encode(models.LabelBatch{Labels: []models.Label{
			{ID: "ctx-a", Axis: "context", Display: "Alpha"},
		}})
	}))
	defer srv.Close()

	r := testResolver(srv.URL)
	if err := r.Refresh(context.Background()); err != nil {
		t.Fatalf("Refresh failed: %v", err)
	}
	if r.Size() != 1 {
		t.Fatalf("Size = %d, want 1", r.Size())
	}

	healthy = false
	if err := r.Refresh(context.Background()); err == nil {
		t.Fatal("expected refresh error")
	}
	if got := r.Display(feed.AxisContext, "ctx-a"); got != "Alpha" {
		t.Errorf("Display after failed refresh = %q, want Alpha", got)
	}
}

// TestResolver_ServeStopsOnCancel verifies the refresh loop honors context
// cancellation.
func TestResolver_ServeStopsOnCancel(t *testing.T) {
	srv := labelServer(t)
	defer srv.Close()

	r := testResolver(srv.URL)
	if r.String() != "taxonomy-resolver" {
		t.Errorf("String() = %q", r.String())
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- r.Serve(ctx) }()

	cancel()
	select {
	case err := <-done:
		if err != context.Canceled {
			t.Errorf("Serve returned %v, want context.Canceled", err)
		}
	case <-time.After(time.Second):
		t.Fatal("resolver did not stop on cancellation")
	}
}

// TestResolver_TTLFloor verifies sub-minute TTLs are raised.
func TestResolver_TTLFloor(t *testing.T) {
	r := NewResolver(&config.TaxonomyConfig{
		BaseURL:  "http://localhost:1",
		CacheTTL: time.Second,
	}, zerolog.Nop())
	if r.ttl != time.Minute {
		t.Errorf("ttl = %v, want 1m floor", r.ttl)
	}
}
