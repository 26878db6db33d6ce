// Vinoscope - Wine Tasting Journal Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/vinoscope

// Package stats turns a user's complete tasting history into a
// StatisticsSnapshot. Each analysis family (basic, time series,
// categorical, price, rating, trends) computes independently from the
// same immutable record slice, so the engine fans them out in parallel
// and assembles the result.
package stats

import (
	"sync"
	"time"

	"github.com/tomtom215/vinoscope/internal/metrics"
	"github.com/tomtom215/vinoscope/internal/models"
)

// Engine computes statistics snapshots.
type Engine struct {
	cacheTTL time.Duration
	now      func() time.Time
}

// NewEngine creates an engine whose snapshots expire after cacheTTL.
func NewEngine(cacheTTL time.Duration) *Engine {
	return &Engine{cacheTTL: cacheTTL, now: time.Now}
}

// Compute builds a full snapshot from the given records. The record slice
// is treated as immutable; none of the analysis modules mutate it, which
// is what makes the parallel fan-out safe.
func (e *Engine) Compute(records []models.TastingRecord) *models.StatisticsSnapshot {
	start := e.now()
	snapshot := &models.StatisticsSnapshot{}

	var wg sync.WaitGroup
	run := func(fn func()) {
		wg.Add(1)
		go func() {
			defer wg.Done()
			fn()
		}()
	}

	run(func() {
		basic := ComputeBasic(records)
		snapshot.TotalRecords = basic.TotalRecords
		snapshot.AverageRating = basic.AverageRating
		snapshot.TotalSpent = basic.TotalSpent
		snapshot.UniqueWines = basic.UniqueWines
		snapshot.UniqueProducers = basic.UniqueProducers
	})
	run(func() { snapshot.MonthlyStats = ComputeMonthly(records) })
	run(func() { snapshot.YearlyStats = ComputeYearly(records) })
	run(func() { snapshot.CountryAnalysis = ComputeCountries(records) })
	run(func() { snapshot.TypeAnalysis = ComputeTypes(records) })
	run(func() { snapshot.PriceAnalysis = ComputePrice(records) })
	run(func() { snapshot.RatingAnalysis = ComputeRating(records, start) })
	run(func() { snapshot.Trends = ComputeTrends(records) })
	wg.Wait()

	now := e.now()
	snapshot.GeneratedAt = now
	snapshot.CacheExpiry = now.Add(e.cacheTTL)

	metrics.SnapshotComputeDuration.Observe(e.now().Sub(start).Seconds())
	return snapshot
}
