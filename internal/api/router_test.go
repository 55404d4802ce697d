// Vitrina - Content Discovery Feed Composition for Creator Analytics
// Copyright 2026 Vitrina contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/vitrina-app/vitrina

package api

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/vitrina-app/vitrina/internal/config"
)

func testRouter(authMode string) http.Handler {
	cfg := &config.SecurityConfig{
		AuthMode:        authMode,
		JWTSecret:       testSecret,
		CORSOrigins:     []string{"*"},
		RateLimitReqs:   100,
		RateLimitWindow: time.Minute,
	}
	handler := NewHandler(&mockComposer{resp: okResponse()}, zerolog.Nop())
	return NewRouter(handler, NewAuthenticator(cfg), cfg).Setup()
}

// TestRouter_Routes verifies every route is mounted and protected as
// configured.
func TestRouter_Routes(t *testing.T) {
	router := testRouter("none")

	tests := []struct {
		name       string
		method     string
		path       string
		wantStatus int
	}{
		{"feed", http.MethodGet, "/api/v1/feed", http.StatusOK},
		{"single shelf", http.MethodGet, "/api/v1/feed/trending-now", http.StatusOK},
		{"liveness", http.MethodGet, "/api/v1/health/live", http.StatusOK},
		{"readiness", http.MethodGet, "/api/v1/health/ready", http.StatusOK},
		{"metrics", http.MethodGet, "/metrics", http.StatusOK},
		{"unknown route", http.MethodGet, "/api/v1/nope", http.StatusNotFound},
		{"wrong method", http.MethodPost, "/api/v1/feed", http.StatusMethodNotAllowed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.path, nil)
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)
			if rec.Code != tt.wantStatus {
				t.Errorf("%s %s = %d, want %d", tt.method, tt.path, rec.Code, tt.wantStatus)
			}
		})
	}
}

// TestRouter_FeedRequiresAuth verifies feed endpoints enforce jwt mode
// while health stays open.
func TestRouter_FeedRequiresAuth(t *testing.T) {
	router := testRouter("jwt")

	req := httptest.NewRequest(http.MethodGet, "/api/v1/feed", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("unauthenticated feed = %d, want 401", rec.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/api/v1/health/live", nil)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Errorf("health behind auth = %d, want 200", rec.Code)
	}
}

// TestRouter_RequestIDHeader verifies every response carries a request id.
func TestRouter_RequestIDHeader(t *testing.T) {
	router := testRouter("none")

	req := httptest.NewRequest(http.MethodGet, "/api/v1/feed", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Header().Get("X-Request-ID") == "" {
		t.Error("missing X-Request-ID header")
	}

	// A caller-provided id is honored.
	req = httptest.NewRequest(http.MethodGet, "/api/v1/feed", nil)
	req.Header.Set("X-Request-ID", "caller-id")
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if got := rec.Header().Get("X-Request-ID"); got != "caller-id" {
		t.Errorf("X-Request-ID = %q, want caller-id", got)
	}
}
