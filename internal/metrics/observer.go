// Vitrina - Content Discovery Feed Composition for Creator Analytics
// Copyright 2026 Vitrina contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/vitrina-app/vitrina

package metrics

import (
	"time"

	"github.com/vitrina-app/vitrina/internal/feed"
)

// ShelfObserver bridges the assembler's telemetry callback into
// Prometheus. It carries no state; the collectors are package-level.
type ShelfObserver struct{}

// NewShelfObserver returns the Prometheus-backed shelf observer.
func NewShelfObserver() *ShelfObserver {
	return &ShelfObserver{}
}

// ShelfBuilt records one shelf build.
func (o *ShelfObserver) ShelfBuilt(shelf, outcome string, duration time.Duration) {
	RecordShelfBuild(shelf, outcome, duration)
}

var _ feed.Observer = (*ShelfObserver)(nil)
