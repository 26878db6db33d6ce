// Vinoscope - Wine Tasting Journal Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/vinoscope

// Package summary builds the condensed Wrapped-style annual report from a
// single calendar year of tasting records. Summaries of completed years
// never change, so they are archived and regenerated only on request.
package summary

import (
	"context"
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/tomtom215/vinoscope/internal/logging"
	"github.com/tomtom215/vinoscope/internal/metrics"
	"github.com/tomtom215/vinoscope/internal/models"
	"github.com/tomtom215/vinoscope/internal/stats"
	"github.com/tomtom215/vinoscope/internal/store"
)

// Generator produces year summaries.
type Generator struct {
	fetcher *store.Fetcher
	archive *Archive
	now     func() time.Time
}

// NewGenerator creates a generator. archive may be nil, in which case
// every request recomputes from the journal.
func NewGenerator(fetcher *store.Fetcher, archive *Archive) *Generator {
	return &Generator{
		fetcher: fetcher,
		archive: archive,
		now:     time.Now,
	}
}

// Generate builds the summary for one user and calendar year. Completed
// years are served from the archive when available; force bypasses the
// archive read and overwrites the stored copy. Summaries for the current
// (still accumulating) year are never archived.
func (g *Generator) Generate(ctx context.Context, userID string, year int, force bool) (*models.YearSummary, error) {
	completed := year < g.now().UTC().Year()

	if completed && !force {
		archived, err := g.archive.Get(userID, year)
		if err != nil {
			logging.Ctx(ctx).Warn().Err(err).
				Str("user_id", userID).Int("year", year).
				Msg("summary archive read failed, recomputing")
		} else if archived != nil {
			metrics.SummaryGenerations.WithLabelValues("archive").Inc()
			return archived, nil
		}
	}

	records, err := g.fetcher.FetchYear(ctx, userID, year)
	if err != nil {
		return nil, fmt.Errorf("fetch year %d for %s: %w", year, userID, err)
	}

	summary := g.build(userID, year, records)

	if completed {
		if err := g.archive.Put(summary); err != nil {
			logging.Ctx(ctx).Warn().Err(err).
				Str("user_id", userID).Int("year", year).
				Msg("summary archive write failed")
		}
	}

	metrics.SummaryGenerations.WithLabelValues("computed").Inc()
	logging.Ctx(ctx).Info().
		Str("user_id", userID).Int("year", year).
		Int("records", len(records)).Bool("archived", completed).
		Msg("year summary generated")
	return summary, nil
}

func (g *Generator) build(userID string, year int, records []models.TastingRecord) *models.YearSummary {
	basic := stats.ComputeBasic(records)

	summary := &models.YearSummary{
		ID:            uuid.NewString(),
		Year:          year,
		UserID:        userID,
		GeneratedAt:   g.now().UTC(),
		TotalRecords:  basic.TotalRecords,
		AverageRating: basic.AverageRating,
		TotalSpent:    basic.TotalSpent,
		UniqueWines:   basic.UniqueWines,

		MonthlyBreakdown: monthlyAscending(records),
		Achievements:     evaluateAchievements(records, basic.AverageRating, basic.TotalSpent),
	}

	var countries, types []string
	for i := range records {
		countries = append(countries, records[i].Country)
		types = append(types, records[i].Type)
	}
	summary.FavoriteCountry = modal(countries)
	summary.FavoriteType = modal(types)

	summary.HighestRated, summary.LowestRated = ratingExtremes(records)
	summary.MostExpensive = mostExpensive(records)
	summary.BestValue = bestValue(records)

	return summary
}

// monthlyAscending reuses the snapshot's monthly grouping but presents a
// calendar year in January-first order.
func monthlyAscending(records []models.TastingRecord) []models.MonthlyStats {
	monthly := stats.ComputeMonthly(records)
	sort.Slice(monthly, func(i, j int) bool {
		return monthly[i].Label < monthly[j].Label
	})
	return monthly
}

// modal picks the most frequent non-empty value, first seen winning ties.
func modal(values []string) string {
	counts := make(map[string]int, len(values))
	var order []string
	for _, v := range values {
		if v == "" {
			continue
		}
		if counts[v] == 0 {
			order = append(order, v)
		}
		counts[v]++
	}

	best, bestCount := "", 0
	for _, v := range order {
		if counts[v] > bestCount {
			best, bestCount = v, counts[v]
		}
	}
	return best
}

func ratingExtremes(records []models.TastingRecord) (highest, lowest *models.TastingRecord) {
	for i := range records {
		r := &records[i]
		if highest == nil || r.Rating > highest.Rating {
			highest = r
		}
		if lowest == nil || r.Rating < lowest.Rating {
			lowest = r
		}
	}
	if highest != nil {
		h, l := *highest, *lowest
		return &h, &l
	}
	return nil, nil
}

func mostExpensive(records []models.TastingRecord) *models.TastingRecord {
	var best *models.TastingRecord
	for i := range records {
		r := &records[i]
		if !r.HasPrice() {
			continue
		}
		if best == nil || r.PriceValue() > best.PriceValue() {
			best = r
		}
	}
	if best == nil {
		return nil
	}
	b := *best
	return &b
}

func bestValue(records []models.TastingRecord) *models.ValueEntry {
	var best *models.ValueEntry
	for i := range records {
		r := records[i]
		if !r.HasPrice() || r.PriceValue() <= 0 {
			continue
		}
		score := r.Rating / (r.PriceValue() / 1000)
		if best == nil || score > best.ValueScore {
			best = &models.ValueEntry{Record: r, ValueScore: score}
		}
	}
	if best != nil {
		best.ValueScore = math.Round(best.ValueScore*100) / 100
	}
	return best
}
