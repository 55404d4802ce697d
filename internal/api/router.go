// Vitrina - Content Discovery Feed Composition for Creator Analytics
// Copyright 2026 Vitrina contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/vitrina-app/vitrina

package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/vitrina-app/vitrina/internal/config"
	"github.com/vitrina-app/vitrina/internal/metrics"
	"github.com/vitrina-app/vitrina/internal/middleware"
)

// Router assembles the HTTP routing tree.
type Router struct {
	handler *Handler
	auth    *Authenticator
	cfg     *config.SecurityConfig
}

// NewRouter creates a router from the handler set and security
// configuration.
func NewRouter(handler *Handler, auth *Authenticator, cfg *config.SecurityConfig) *Router {
	return &Router{
		handler: handler,
		auth:    auth,
		cfg:     cfg,
	}
}

// Setup configures all HTTP routes.
func (router *Router) Setup() http.Handler {
	r := chi.NewRouter()

	// ========================
	// Global Middleware Stack
	// ========================
	// Applied to ALL routes in order
	r.Use(middleware.RequestID)    // X-Request-ID header plus logging context
	r.Use(chimiddleware.RealIP)    // Extract real IP from X-Forwarded-For
	r.Use(chimiddleware.Recoverer) // Recover from panics
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: router.cfg.CORSOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		ExposedHeaders: []string{"X-Request-ID"},
		MaxAge:         300,
	}))

	// ========================
	// Health Endpoints
	// ========================
	// Permissive rate limiting so monitors can poll frequently
	r.Route("/api/v1/health", func(r chi.Router) {
		r.Use(httprate.LimitByIP(1000, time.Minute))
		r.Get("/live", router.handler.HealthLive)
		r.Get("/ready", router.handler.HealthReady)
	})

	// ========================
	// Feed Endpoints
	// ========================
	r.Route("/api/v1/feed", func(r chi.Router) {
		r.Use(router.rateLimit())
		r.Use(middleware.PrometheusMetrics)
		r.Use(middleware.Compression)
		r.Use(router.auth.Middleware)

		r.Get("/", router.handler.Feed)
		r.Get("/{shelf}", router.handler.FeedShelf)
	})

	// ========================
	// Prometheus Metrics
	// ========================
	r.Get("/metrics", promhttp.Handler().ServeHTTP)

	return r
}

// rateLimit builds the feed endpoints' IP rate limiter, or a no-op when
// disabled.
func (router *Router) rateLimit() func(http.Handler) http.Handler {
	if router.cfg.RateLimitDisabled {
		return func(next http.Handler) http.Handler {
			return next
		}
	}

	return httprate.Limit(
		router.cfg.RateLimitReqs,
		router.cfg.RateLimitWindow,
		httprate.WithKeyFuncs(httprate.KeyByIP),
		httprate.WithLimitHandler(func(w http.ResponseWriter, r *http.Request) {
			metrics.APIRateLimitHits.WithLabelValues(r.URL.Path).Inc()
			respondError(w, http.StatusTooManyRequests, "RATE_LIMIT_EXCEEDED", "Too many requests", nil)
		}),
	)
}
