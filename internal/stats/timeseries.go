// Vinoscope - Wine Tasting Journal Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/vinoscope

package stats

import (
	"fmt"
	"sort"
	"time"

	"github.com/tomtom215/vinoscope/internal/models"
)

// ComputeMonthly groups records by calendar month and derives per-month
// aggregates. Months with no records are omitted. The result is ordered
// most recent month first.
func ComputeMonthly(records []models.TastingRecord) []models.MonthlyStats {
	type monthKey struct {
		year  int
		month time.Month
	}

	buckets := make(map[monthKey][]models.TastingRecord)
	for i := range records {
		t := records[i].TastedAt
		key := monthKey{year: t.Year(), month: t.Month()}
		buckets[key] = append(buckets[key], records[i])
	}

	monthly := make([]models.MonthlyStats, 0, len(buckets))
	for key, group := range buckets {
		var countries, types []string
		for i := range group {
			countries = append(countries, group[i].Country)
			types = append(types, group[i].Type)
		}

		monthly = append(monthly, models.MonthlyStats{
			Year:          key.year,
			Month:         int(key.month),
			Label:         fmt.Sprintf("%04d-%02d", key.year, key.month),
			Count:         len(group),
			AverageRating: averageRating(group),
			TotalSpent:    totalSpent(group),
			UniqueWines:   ComputeBasic(group).UniqueWines,
			TopCountry:    modalValue(countries),
			TopType:       modalValue(types),
		})
	}

	sort.Slice(monthly, func(i, j int) bool {
		return monthly[i].Label > monthly[j].Label
	})
	return monthly
}

// ComputeYearly groups records by calendar year and derives per-year
// aggregates including year-over-year growth. Growth is a percentage
// relative to the previous year's count; a missing or empty previous
// year yields 0 rather than an undefined ratio. Ordered most recent
// year first.
func ComputeYearly(records []models.TastingRecord) []models.YearlyStats {
	buckets := make(map[int][]models.TastingRecord)
	for i := range records {
		year := records[i].TastedAt.Year()
		buckets[year] = append(buckets[year], records[i])
	}

	years := make([]int, 0, len(buckets))
	for year := range buckets {
		years = append(years, year)
	}
	sort.Ints(years)

	yearly := make([]models.YearlyStats, 0, len(years))
	for _, year := range years {
		group := buckets[year]
		entry := models.YearlyStats{
			Year:          year,
			Count:         len(group),
			AverageRating: averageRating(group),
			TotalSpent:    totalSpent(group),
			UniqueWines:   ComputeBasic(group).UniqueWines,
		}
		if prev, ok := buckets[year-1]; ok && len(prev) > 0 {
			entry.Growth = round2(float64(entry.Count-len(prev)) / float64(len(prev)) * 100)
		}
		yearly = append(yearly, entry)
	}

	// Most recent first for presentation.
	sort.Slice(yearly, func(i, j int) bool {
		return yearly[i].Year > yearly[j].Year
	})
	return yearly
}
