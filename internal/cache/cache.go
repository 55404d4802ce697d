// Vitrina - Content Discovery Feed Composition for Creator Analytics
// Copyright 2026 Vitrina contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/vitrina-app/vitrina

package cache

import (
	"sync"
	"time"

	"github.com/vitrina-app/vitrina/internal/feed"
	"github.com/vitrina-app/vitrina/internal/metrics"
)

// PoolCache is the ephemeral, short-TTL store for materialized candidate
// pools. It is safe for concurrent use; entries are invalidated purely by
// TTL, never by underlying data changes. A duplicate compute racing on a
// cold key is acceptable — both writers store equivalent pools.
//
// It implements feed.CandidateCache and is injected into the composer, so
// tests can swap it for a fake.
type PoolCache struct {
	mu      sync.RWMutex
	entries map[string]entry
	ttl     time.Duration
	stats   Stats
}

// entry is one cached candidate pool with its expiry.
type entry struct {
	pool      []feed.Candidate
	expiresAt time.Time
}

// Stats tracks cache performance for monitoring.
type Stats struct {
	mu          sync.RWMutex
	Hits        int64
	Misses      int64
	Evictions   int64
	TotalKeys   int64
	LastCleanup time.Time
}

// New creates a pool cache with the given default TTL. The cache does not
// start its own cleanup goroutine; run a Janitor under the supervisor to
// sweep expired entries (expired entries are also dropped lazily on Get).
func New(ttl time.Duration) *PoolCache {
	return &PoolCache{
		entries: make(map[string]entry),
		ttl:     ttl,
		stats:   Stats{LastCleanup: time.Now()},
	}
}

// Get returns the cached pool for key, or (nil, false) on a miss or
// expired entry. Expired entries are removed on access.
func (c *PoolCache) Get(key string) ([]feed.Candidate, bool) {
	c.mu.RLock()
	e, ok := c.entries[key]
	c.mu.RUnlock()

	if !ok {
		c.recordMiss()
		return nil, false
	}

	if time.Now().After(e.expiresAt) {
		c.mu.Lock()
		delete(c.entries, key)
		c.mu.Unlock()
		c.recordMiss()
		c.recordEviction()
		return nil, false
	}

	c.recordHit()
	return e.pool, true
}

// Set stores a pool under key with the default TTL, overwriting any
// existing entry.
func (c *PoolCache) Set(key string, pool []feed.Candidate) {
	c.SetWithTTL(key, pool, c.ttl)
}

// SetWithTTL stores a pool with a custom TTL.
func (c *PoolCache) SetWithTTL(key string, pool []feed.Candidate, ttl time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[key] = entry{
		pool:      pool,
		expiresAt: time.Now().Add(ttl),
	}
	size := len(c.entries)

	c.stats.mu.Lock()
	c.stats.TotalKeys = int64(size)
	c.stats.mu.Unlock()
	metrics.SetPoolCacheEntries(size)
}

// Delete removes one entry. Safe to call with a non-existent key.
func (c *PoolCache) Delete(key string) {
	c.mu.Lock()
	delete(c.entries, key)
	size := len(c.entries)
	c.mu.Unlock()

	c.stats.mu.Lock()
	c.stats.TotalKeys = int64(size)
	c.stats.mu.Unlock()
	metrics.SetPoolCacheEntries(size)

	c.recordEviction()
}

// Clear removes all entries in one atomic map swap.
func (c *PoolCache) Clear() {
	c.mu.Lock()
	evictions := int64(len(c.entries))
	c.entries = make(map[string]entry)
	c.mu.Unlock()

	c.stats.mu.Lock()
	c.stats.Evictions += evictions
	c.stats.TotalKeys = 0
	c.stats.mu.Unlock()
	metrics.SetPoolCacheEntries(0)
}

// Cleanup removes all expired entries. Called by the Janitor.
func (c *PoolCache) Cleanup() {
	now := time.Now()
	c.mu.Lock()
	defer c.mu.Unlock()

	evictions := int64(0)
	for key, e := range c.entries {
		if now.After(e.expiresAt) {
			delete(c.entries, key)
			evictions++
		}
	}

	size := len(c.entries)

	c.stats.mu.Lock()
	c.stats.Evictions += evictions
	c.stats.TotalKeys = int64(size)
	c.stats.LastCleanup = now
	c.stats.mu.Unlock()
	metrics.SetPoolCacheEntries(size)
}

// GetStats returns a snapshot of the cache statistics.
func (c *PoolCache) GetStats() Stats {
	c.stats.mu.RLock()
	defer c.stats.mu.RUnlock()

	return Stats{
		Hits:        c.stats.Hits,
		Misses:      c.stats.Misses,
		Evictions:   c.stats.Evictions,
		TotalKeys:   c.stats.TotalKeys,
		LastCleanup: c.stats.LastCleanup,
	}
}

// HitRate returns the hit rate as a percentage.
func (c *PoolCache) HitRate() float64 {
	stats := c.GetStats()
	total := stats.Hits + stats.Misses
	if total == 0 {
		return 0.0
	}
	return float64(stats.Hits) / float64(total) * 100.0
}

func (c *PoolCache) recordHit() {
	c.stats.mu.Lock()
	c.stats.Hits++
	c.stats.mu.Unlock()
	metrics.RecordPoolCacheAccess(true)
}

func (c *PoolCache) recordMiss() {
	c.stats.mu.Lock()
	c.stats.Misses++
	c.stats.mu.Unlock()
	metrics.RecordPoolCacheAccess(false)
}

func (c *PoolCache) recordEviction() {
	c.stats.mu.Lock()
	c.stats.Evictions++
	c.stats.mu.Unlock()
}

// Ensure PoolCache satisfies the engine's cache contract.
var _ feed.CandidateCache = (*PoolCache)(nil)
