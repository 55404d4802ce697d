// Vitrina - Content Discovery Feed Composition for Creator Analytics
// Copyright 2026 Vitrina contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/vitrina-app/vitrina

package cache

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/vitrina-app/vitrina/internal/feed"
	"github.com/vitrina-app/vitrina/internal/metrics"
)

func testPool(ids ...string) []feed.Candidate {
	pool := make([]feed.Candidate, len(ids))
	for i, id := range ids {
		pool[i] = feed.Candidate{ID: id}
	}
	return pool
}

// TestPoolCache_SetGet verifies basic storage and retrieval.
func TestPoolCache_SetGet(t *testing.T) {
	c := New(time.Minute)

	c.Set("pool:trending", testPool("a", "b"))

	got, ok := c.Get("pool:trending")
	if !ok {
		t.Fatal("expected cache hit")
	}
	if len(got) != 2 || got[0].ID != "a" {
		t.Errorf("got %d candidates, want the stored pool", len(got))
	}

	if _, ok := c.Get("pool:unknown"); ok {
		t.Error("expected miss for unknown key")
	}
}

// TestPoolCache_Expiry verifies expired entries miss and are evicted on
// access.
func TestPoolCache_Expiry(t *testing.T) {
	c := New(time.Minute)
	c.SetWithTTL("short", testPool("a"), 10*time.Millisecond)

	if _, ok := c.Get("short"); !ok {
		t.Fatal("expected hit before expiry")
	}

	time.Sleep(20 * time.Millisecond)

	if _, ok := c.Get("short"); ok {
		t.Error("expected miss after expiry")
	}

	stats := c.GetStats()
	if stats.Evictions == 0 {
		t.Error("expired entry was not counted as eviction")
	}
}

// TestPoolCache_Cleanup verifies the sweep removes only expired entries.
func TestPoolCache_Cleanup(t *testing.T) {
	c := New(time.Minute)
	c.SetWithTTL("expired", testPool("a"), time.Millisecond)
	c.Set("fresh", testPool("b"))

	time.Sleep(5 * time.Millisecond)
	c.Cleanup()

	if _, ok := c.Get("fresh"); !ok {
		t.Error("cleanup removed a fresh entry")
	}
	stats := c.GetStats()
	if stats.TotalKeys != 1 {
		t.Errorf("TotalKeys = %d, want 1", stats.TotalKeys)
	}
}

// TestPoolCache_DeleteAndClear verifies explicit invalidation.
func TestPoolCache_DeleteAndClear(t *testing.T) {
	c := New(time.Minute)
	c.Set("a", testPool("1"))
	c.Set("b", testPool("2"))

	c.Delete("a")
	if _, ok := c.Get("a"); ok {
		t.Error("deleted entry still present")
	}

	c.Clear()
	if _, ok := c.Get("b"); ok {
		t.Error("cleared entry still present")
	}
	if stats := c.GetStats(); stats.TotalKeys != 0 {
		t.Errorf("TotalKeys after clear = %d, want 0", stats.TotalKeys)
	}
}

// TestPoolCache_HitRate verifies the hit-rate computation including the
// zero-traffic case.
func TestPoolCache_HitRate(t *testing.T) {
	c := New(time.Minute)
	if rate := c.HitRate(); rate != 0 {
		t.Errorf("idle hit rate = %v, want 0", rate)
	}

	c.Set("k", testPool("a"))
	c.Get("k")
	c.Get("k")
	c.Get("missing")

	if rate := c.HitRate(); rate < 66 || rate > 67 {
		t.Errorf("hit rate = %v, want ~66.7", rate)
	}
}

// TestPoolCache_ConcurrentAccess verifies the cache under concurrent
// readers and writers. Run with -race.
func TestPoolCache_ConcurrentAccess(t *testing.T) {
	c := New(time.Minute)
	var wg sync.WaitGroup

	for i := 0; i < 10; i++ {
		wg.Add(2)
		go func(n int) {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				c.Set(fmt.Sprintf("key-%d", n), testPool("a"))
			}
		}(i)
		go func(n int) {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				c.Get(fmt.Sprintf("key-%d", n))
			}
		}(i)
	}
	wg.Wait()
}

// TestPoolCache_PrometheusBridge verifies lookups and entry counts reach
// the exported collectors, not just the private stats. Deltas are used
// since the collectors are process-global.
func TestPoolCache_PrometheusBridge(t *testing.T) {
	hitsBefore := testutil.ToFloat64(metrics.PoolCacheHits)
	missesBefore := testutil.ToFloat64(metrics.PoolCacheMisses)

	c := New(time.Minute)
	c.Set("pool:trending", testPool("a"))
	c.Get("pool:trending")
	c.Get("pool:trending")
	c.Get("pool:absent")

	if got := testutil.ToFloat64(metrics.PoolCacheHits) - hitsBefore; got != 2 {
		t.Errorf("hit counter delta = %v, want 2", got)
	}
	if got := testutil.ToFloat64(metrics.PoolCacheMisses) - missesBefore; got != 1 {
		t.Errorf("miss counter delta = %v, want 1", got)
	}

	c.Set("pool:rising", testPool("b"))
	if got := testutil.ToFloat64(metrics.PoolCacheEntries); got != 2 {
		t.Errorf("entries gauge = %v, want 2", got)
	}
	c.Delete("pool:trending")
	if got := testutil.ToFloat64(metrics.PoolCacheEntries); got != 1 {
		t.Errorf("entries gauge after delete = %v, want 1", got)
	}
	c.Clear()
	if got := testutil.ToFloat64(metrics.PoolCacheEntries); got != 0 {
		t.Errorf("entries gauge after clear = %v, want 0", got)
	}
}

// TestJanitor_Sweeps verifies the janitor removes expired entries on its
// interval and stops on context cancellation.
func TestJanitor_Sweeps(t *testing.T) {
	c := New(time.Minute)
	c.SetWithTTL("expired", testPool("a"), time.Millisecond)

	j := NewJanitor(c, time.Second)
	if j.interval != time.Second {
		t.Errorf("interval = %v, want 1s", j.interval)
	}
	if j.String() != "cache-janitor" {
		t.Errorf("String() = %q", j.String())
	}

	// Sub-second intervals are clamped.
	if clamped := NewJanitor(c, time.Millisecond); clamped.interval != time.Second {
		t.Errorf("clamped interval = %v, want 1s", clamped.interval)
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- j.Serve(ctx) }()

	cancel()
	select {
	case err := <-done:
		if err != context.Canceled {
			t.Errorf("Serve returned %v, want context.Canceled", err)
		}
	case <-time.After(time.Second):
		t.Fatal("janitor did not stop on cancellation")
	}
}
