// Vinoscope - Wine Tasting Journal Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/vinoscope

package stats

import (
	"sort"

	"github.com/tomtom215/vinoscope/internal/models"
)

// unknownCategory labels records whose country or type field is empty so
// they still participate in categorical breakdowns.
const unknownCategory = "Unknown"

// ComputeCountries groups records by country of origin. Ordered by record
// count descending, then alphabetically for a stable layout.
func ComputeCountries(records []models.TastingRecord) []models.CountryStats {
	buckets := make(map[string][]models.TastingRecord)
	for i := range records {
		country := records[i].Country
		if country == "" {
			country = unknownCategory
		}
		buckets[country] = append(buckets[country], records[i])
	}

	total := len(records)
	countries := make([]models.CountryStats, 0, len(buckets))
	for country, group := range buckets {
		entry := models.CountryStats{
			Country:       country,
			Count:         len(group),
			Percentage:    percentage(len(group), total),
			AverageRating: averageRating(group),
			TotalSpent:    totalSpent(group),
			FavoriteTypes: topTypes(group, 3),
		}
		if priced := pricedRecords(group); len(priced) > 0 {
			entry.AveragePrice = round2(totalSpent(priced) / float64(len(priced)))
		}
		countries = append(countries, entry)
	}

	sort.Slice(countries, func(i, j int) bool {
		if countries[i].Count != countries[j].Count {
			return countries[i].Count > countries[j].Count
		}
		return countries[i].Country < countries[j].Country
	})
	return countries
}

// ComputeTypes groups records by wine type. Ordered by record count
// descending, then alphabetically.
func ComputeTypes(records []models.TastingRecord) []models.TypeStats {
	buckets := make(map[string][]models.TastingRecord)
	for i := range records {
		wineType := records[i].Type
		if wineType == "" {
			wineType = unknownCategory
		}
		buckets[wineType] = append(buckets[wineType], records[i])
	}

	total := len(records)
	types := make([]models.TypeStats, 0, len(buckets))
	for wineType, group := range buckets {
		entry := models.TypeStats{
			Type:          wineType,
			Count:         len(group),
			Percentage:    percentage(len(group), total),
			AverageRating: averageRating(group),
			TotalSpent:    totalSpent(group),
		}
		if priced := pricedRecords(group); len(priced) > 0 {
			entry.AveragePrice = round2(totalSpent(priced) / float64(len(priced)))
		}
		types = append(types, entry)
	}

	sort.Slice(types, func(i, j int) bool {
		if types[i].Count != types[j].Count {
			return types[i].Count > types[j].Count
		}
		return types[i].Type < types[j].Type
	})
	return types
}

// topTypes returns the n most tasted wine types within a group, most
// frequent first.
func topTypes(records []models.TastingRecord, n int) []string {
	counts := make(map[string]int)
	var order []string
	for i := range records {
		wineType := records[i].Type
		if wineType == "" {
			continue
		}
		if counts[wineType] == 0 {
			order = append(order, wineType)
		}
		counts[wineType]++
	}

	sort.SliceStable(order, func(i, j int) bool {
		return counts[order[i]] > counts[order[j]]
	})
	if len(order) > n {
		order = order[:n]
	}
	return order
}

// pricedRecords filters to records carrying a price.
func pricedRecords(records []models.TastingRecord) []models.TastingRecord {
	var priced []models.TastingRecord
	for i := range records {
		if records[i].HasPrice() {
			priced = append(priced, records[i])
		}
	}
	return priced
}

// percentage returns the exact share so the bucket shares of a group still
// sum to 100 when the total does not divide evenly.
func percentage(count, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(count) / float64(total) * 100
}
