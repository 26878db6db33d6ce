// Vinoscope - Wine Tasting Journal Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/vinoscope

package stats

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/tomtom215/vinoscope/internal/cache"
	"github.com/tomtom215/vinoscope/internal/logging"
	"github.com/tomtom215/vinoscope/internal/metrics"
	"github.com/tomtom215/vinoscope/internal/models"
	"github.com/tomtom215/vinoscope/internal/store"
)

// Service answers snapshot requests. Cached snapshots are served
// directly; on a miss the full history is fetched and recomputed, with
// concurrent misses for the same user coalesced into one computation.
type Service struct {
	fetcher *store.Fetcher
	engine  *Engine
	cache   *cache.SnapshotCache
	group   singleflight.Group
}

// NewService wires the fetch, compute, and cache layers together.
func NewService(fetcher *store.Fetcher, engine *Engine, snapshots *cache.SnapshotCache) *Service {
	return &Service{
		fetcher: fetcher,
		engine:  engine,
		cache:   snapshots,
	}
}

// GetStatistics returns the user's snapshot, computing it if the cache
// has no live entry. forceRefresh bypasses the cache read but still
// stores the recomputed result. A failed computation leaves any prior
// cache state untouched.
func (s *Service) GetStatistics(ctx context.Context, userID string, forceRefresh bool) (*models.StatisticsSnapshot, error) {
	if !forceRefresh {
		if snapshot := s.cache.Get(userID); snapshot != nil {
			return snapshot, nil
		}
	}

	trigger := "miss"
	if forceRefresh {
		trigger = "refresh"
	}

	result, err, shared := s.group.Do(userID, func() (any, error) {
		return s.compute(ctx, userID, trigger)
	})
	if err != nil {
		return nil, err
	}
	if shared {
		logging.Ctx(ctx).Debug().Str("user_id", userID).Msg("snapshot request coalesced")
	}
	return result.(*models.StatisticsSnapshot), nil
}

func (s *Service) compute(ctx context.Context, userID, trigger string) (*models.StatisticsSnapshot, error) {
	start := time.Now()
	records, err := s.fetcher.FetchAll(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("fetch history for %s: %w", userID, err)
	}

	snapshot := s.engine.Compute(records)
	s.cache.Set(userID, snapshot)
	metrics.SnapshotComputations.WithLabelValues(trigger).Inc()

	logging.Ctx(ctx).Info().
		Str("user_id", userID).
		Str("trigger", trigger).
		Int("records", len(records)).
		Dur("elapsed", time.Since(start)).
		Msg("snapshot computed")
	return snapshot, nil
}

// InvalidateCache drops one user's cached snapshot.
func (s *Service) InvalidateCache(userID string) {
	s.cache.Delete(userID)
}

// InvalidateAll drops every cached snapshot.
func (s *Service) InvalidateAll() {
	s.cache.Clear()
}

// CacheStats exposes the cache counters for the health endpoint.
func (s *Service) CacheStats() models.CacheStats {
	return s.cache.Stats()
}
