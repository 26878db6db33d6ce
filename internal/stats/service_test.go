// Vinoscope - Wine Tasting Journal Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/vinoscope

package stats

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/tomtom215/vinoscope/internal/cache"
	"github.com/tomtom215/vinoscope/internal/models"
	"github.com/tomtom215/vinoscope/internal/store"
)

// countingStore wraps MemoryStore and counts QueryRecords calls so tests
// can observe how many fetch passes the service performed.
type countingStore struct {
	*store.MemoryStore
	mu    sync.Mutex
	calls int
	fail  bool
}

func (c *countingStore) QueryRecords(ctx context.Context, userID, cursor string, limit int) (*store.RecordPage, error) {
	c.mu.Lock()
	c.calls++
	fail := c.fail
	c.mu.Unlock()

	if fail {
		return nil, errors.New("journal unavailable")
	}
	return c.MemoryStore.QueryRecords(ctx, userID, cursor, limit)
}

func (c *countingStore) callCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.calls
}

func newTestService(t *testing.T, backing *countingStore) *Service {
	t.Helper()
	fetcher := store.NewFetcher(backing, 100)
	return NewService(fetcher, NewEngine(time.Hour), cache.New(time.Hour))
}

func seededStore(n int) *countingStore {
	mem := store.NewMemoryStore()
	var records []models.TastingRecord
	for i := 0; i < n; i++ {
		records = append(records, record(string(rune('a'+i)), withRating(8.0)))
	}
	mem.Seed("user-1", records)
	return &countingStore{MemoryStore: mem}
}

func TestServiceCachesSnapshot(t *testing.T) {
	backing := seededStore(3)
	svc := newTestService(t, backing)
	ctx := context.Background()

	first, err := svc.GetStatistics(ctx, "user-1", false)
	if err != nil {
		t.Fatalf("GetStatistics: %v", err)
	}
	if first.TotalRecords != 3 {
		t.Errorf("TotalRecords = %d, want 3", first.TotalRecords)
	}

	second, err := svc.GetStatistics(ctx, "user-1", false)
	if err != nil {
		t.Fatalf("GetStatistics (cached): %v", err)
	}
	if second != first {
		t.Error("expected the cached snapshot pointer on the second call")
	}
	if got := backing.callCount(); got != 1 {
		t.Errorf("store queried %d times, want 1", got)
	}
}

func TestServiceForceRefresh(t *testing.T) {
	backing := seededStore(3)
	svc := newTestService(t, backing)
	ctx := context.Background()

	if _, err := svc.GetStatistics(ctx, "user-1", false); err != nil {
		t.Fatalf("GetStatistics: %v", err)
	}
	before := backing.callCount()

	refreshed, err := svc.GetStatistics(ctx, "user-1", true)
	if err != nil {
		t.Fatalf("GetStatistics (refresh): %v", err)
	}
	if refreshed == nil {
		t.Fatal("refresh returned nil snapshot")
	}
	if got := backing.callCount(); got <= before {
		t.Errorf("refresh should hit the store again, calls %d -> %d", before, got)
	}
}

func TestServiceFetchFailureLeavesCacheUntouched(t *testing.T) {
	backing := seededStore(3)
	svc := newTestService(t, backing)
	ctx := context.Background()

	cached, err := svc.GetStatistics(ctx, "user-1", false)
	if err != nil {
		t.Fatalf("GetStatistics: %v", err)
	}

	backing.mu.Lock()
	backing.fail = true
	backing.mu.Unlock()

	if _, err := svc.GetStatistics(ctx, "user-1", true); err == nil {
		t.Fatal("expected error when the store is failing")
	}

	// The previously cached snapshot must still be servable.
	got, err := svc.GetStatistics(ctx, "user-1", false)
	if err != nil {
		t.Fatalf("GetStatistics after failure: %v", err)
	}
	if got != cached {
		t.Error("failed refresh must not replace or drop the cached snapshot")
	}
}

func TestServiceInvalidation(t *testing.T) {
	backing := seededStore(2)
	svc := newTestService(t, backing)
	ctx := context.Background()

	if _, err := svc.GetStatistics(ctx, "user-1", false); err != nil {
		t.Fatalf("GetStatistics: %v", err)
	}

	svc.InvalidateCache("user-1")
	if _, err := svc.GetStatistics(ctx, "user-1", false); err != nil {
		t.Fatalf("GetStatistics after invalidate: %v", err)
	}
	if got := backing.callCount(); got != 2 {
		t.Errorf("store queried %d times, want 2 after invalidation", got)
	}

	svc.InvalidateAll()
	if _, err := svc.GetStatistics(ctx, "user-1", false); err != nil {
		t.Fatalf("GetStatistics after invalidate all: %v", err)
	}
	if got := backing.callCount(); got != 3 {
		t.Errorf("store queried %d times, want 3 after full invalidation", got)
	}
}

func TestServiceCoalescesConcurrentMisses(t *testing.T) {
	mem := store.NewMemoryStore()
	mem.Seed("user-1", []models.TastingRecord{record("1")})
	backing := &countingStore{MemoryStore: mem}
	svc := newTestService(t, backing)

	const goroutines = 8
	var wg sync.WaitGroup
	start := make(chan struct{})
	for i := 0; i < goroutines; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			<-start
			if _, err := svc.GetStatistics(context.Background(), "user-1", false); err != nil {
				t.Errorf("GetStatistics: %v", err)
			}
		}()
	}
	close(start)
	wg.Wait()

	// Coalescing keeps concurrent misses well below one fetch each. The
	// exact count depends on scheduling, but it must not be one per caller.
	if got := backing.callCount(); got >= goroutines {
		t.Errorf("store queried %d times for %d concurrent requests", got, goroutines)
	}
}
