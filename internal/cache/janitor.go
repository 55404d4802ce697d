// Vitrina - Content Discovery Feed Composition for Creator Analytics
// Copyright 2026 Vitrina contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/vitrina-app/vitrina

package cache

import (
	"context"
	"time"
)

// Janitor periodically sweeps expired entries from a PoolCache. It
// implements suture.Service so the supervisor owns its lifecycle.
type Janitor struct {
	cache    *PoolCache
	interval time.Duration
}

// NewJanitor creates a janitor sweeping at the given interval. Intervals
// below one second are raised to one second to avoid busy loops from
// misconfiguration.
func NewJanitor(cache *PoolCache, interval time.Duration) *Janitor {
	if interval < time.Second {
		interval = time.Second
	}
	return &Janitor{cache: cache, interval: interval}
}

// Serve sweeps until the context is cancelled.
func (j *Janitor) Serve(ctx context.Context) error {
	ticker := time.NewTicker(j.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			j.cache.Cleanup()
		}
	}
}

// String names the service in supervisor logs.
func (j *Janitor) String() string {
	return "cache-janitor"
}
