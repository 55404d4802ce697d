// Vitrina - Content Discovery Feed Composition for Creator Analytics
// Copyright 2026 Vitrina contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/vitrina-app/vitrina

// Package middleware provides HTTP middleware shared by the API routes:
// request ID propagation, Prometheus instrumentation and gzip
// compression. Router-level concerns (CORS, rate limiting, panic
// recovery) use the chi ecosystem middleware directly in the api
// package.
package middleware
