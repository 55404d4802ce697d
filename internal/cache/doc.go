// Vitrina - Content Discovery Feed Composition for Creator Analytics
// Copyright 2026 Vitrina contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/vitrina-app/vitrina

// Package cache provides the process-local, short-TTL store for expensive,
// filter-independent candidate pools. It is an explicit, injectable
// component owned by the composition wiring — never a hidden singleton —
// so tests can substitute a fake through the feed.CandidateCache
// interface.
package cache
