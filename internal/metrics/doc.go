// Vitrina - Content Discovery Feed Composition for Creator Analytics
// Copyright 2026 Vitrina contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/vitrina-app/vitrina

// Package metrics provides Prometheus instrumentation for the feed
// server. All collectors are registered at package load via promauto and
// exposed on the /metrics endpoint.
package metrics
