// Vinoscope - Wine Tasting Journal Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/vinoscope

// Package cache provides the per-user snapshot cache. Entries expire
// lazily on read; there is no background sweeper, so memory for expired
// entries is reclaimed the next time the key is touched or the cache is
// cleared.
package cache

import (
	"sync"
	"time"

	"github.com/tomtom215/vinoscope/internal/metrics"
	"github.com/tomtom215/vinoscope/internal/models"
)

// DefaultTTL is the snapshot lifetime used when the config does not set one.
const DefaultTTL = 30 * time.Minute

type entry struct {
	snapshot  *models.StatisticsSnapshot
	expiresAt time.Time
}

// SnapshotCache is a TTL cache of computed snapshots keyed by user ID.
// Safe for concurrent use.
type SnapshotCache struct {
	mu      sync.RWMutex
	entries map[string]entry
	ttl     time.Duration
	now     func() time.Time

	hits      int64
	misses    int64
	evictions int64
}

// New creates a cache whose entries live for ttl. A non-positive ttl
// falls back to DefaultTTL.
func New(ttl time.Duration) *SnapshotCache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &SnapshotCache{
		entries: make(map[string]entry),
		ttl:     ttl,
		now:     time.Now,
	}
}

// Get returns the cached snapshot for userID, or nil on a miss. An entry
// past its expiry counts as a miss and is evicted in place.
func (c *SnapshotCache) Get(userID string) *models.StatisticsSnapshot {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[userID]
	if !ok {
		c.misses++
		metrics.CacheMisses.Inc()
		return nil
	}
	if c.now().After(e.expiresAt) {
		delete(c.entries, userID)
		c.misses++
		c.evictions++
		metrics.CacheMisses.Inc()
		metrics.CacheEvictions.Inc()
		metrics.CacheEntries.Set(float64(len(c.entries)))
		return nil
	}

	c.hits++
	metrics.CacheHits.Inc()
	return e.snapshot
}

// Set stores a snapshot for userID, replacing any existing entry and
// restarting its TTL.
func (c *SnapshotCache) Set(userID string, snapshot *models.StatisticsSnapshot) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[userID] = entry{snapshot: snapshot, expiresAt: c.now().Add(c.ttl)}
	metrics.CacheEntries.Set(float64(len(c.entries)))
}

// Delete removes a single user's entry. Removing an absent key is a no-op.
func (c *SnapshotCache) Delete(userID string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.entries[userID]; ok {
		delete(c.entries, userID)
		c.evictions++
		metrics.CacheEvictions.Inc()
		metrics.CacheEntries.Set(float64(len(c.entries)))
	}
}

// Clear removes every entry.
func (c *SnapshotCache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	evicted := len(c.entries)
	c.entries = make(map[string]entry)
	c.evictions += int64(evicted)
	metrics.CacheEvictions.Add(float64(evicted))
	metrics.CacheEntries.Set(0)
}

// Stats returns a point-in-time view of the cache counters.
func (c *SnapshotCache) Stats() models.CacheStats {
	c.mu.RLock()
	defer c.mu.RUnlock()

	stats := models.CacheStats{
		Hits:      c.hits,
		Misses:    c.misses,
		Evictions: c.evictions,
		Entries:   len(c.entries),
	}
	if total := stats.Hits + stats.Misses; total > 0 {
		stats.HitRate = float64(stats.Hits) / float64(total)
	}
	return stats
}
