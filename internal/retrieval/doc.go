// Vitrina - Content Discovery Feed Composition for Creator Analytics
// Copyright 2026 Vitrina contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/vitrina-app/vitrina

// Package retrieval implements the content-archive client, the upstream
// source of opted-in creator posts with their engagement statistics.
//
// The client implements feed.CandidateSource and layers three resilience
// mechanisms over plain HTTP:
//
//   - Client-side rate limiting (golang.org/x/time/rate) so concurrent
//     shelf builds never stampede the archive
//   - A circuit breaker (sony/gobreaker) that fails shelf builds fast
//     while the archive is unhealthy
//   - Bounded pagination with a hard candidate cap per fetch
//
// The archive's responses are decoded into models.RawPost and mapped to
// engine candidates through feed.CandidatesFromRaw, which defaults
// missing fields instead of rejecting records.
package retrieval
