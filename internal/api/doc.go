// Vitrina - Content Discovery Feed Composition for Creator Analytics
// Copyright 2026 Vitrina contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/vitrina-app/vitrina

// Package api provides the HTTP surface of the feed server, built on the
// Chi router.
//
// Endpoints:
//
//   - GET /api/v1/feed           — the full default feed experience
//   - GET /api/v1/feed/{shelf}   — exactly one shelf by key
//   - GET /api/v1/health/live    — liveness probe
//   - GET /api/v1/health/ready   — readiness probe
//   - GET /metrics               — Prometheus metrics
//
// All feed endpoints sit behind the shared middleware stack (request ID,
// real IP, panic recovery, CORS, rate limiting, Prometheus
// instrumentation, gzip) and, when auth_mode is jwt, bearer-token
// authentication. Responses use the models.APIResponse envelope.
package api
