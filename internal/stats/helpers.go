// Vinoscope - Wine Tasting Journal Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/vinoscope

package stats

import (
	"math"

	"github.com/tomtom215/vinoscope/internal/models"
)

// modalValue returns the most frequent non-empty value in order of first
// appearance. Ties resolve to whichever value was seen first.
func modalValue(values []string) string {
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

	best := ""
	bestCount := 0
	for _, v := range order {
		if counts[v] > bestCount {
			best = v
			bestCount = counts[v]
		}
	}
	return best
}

// countUnique counts distinct non-empty keys produced by keyFn.
func countUnique(records []models.TastingRecord, keyFn func(*models.TastingRecord) string) int {
	seen := make(map[string]struct{}, len(records))
	for i := range records {
		key := keyFn(&records[i])
		if key == "" {
			continue
		}
		seen[key] = struct{}{}
	}
	return len(seen)
}

// round2 rounds to two decimal places for stable JSON output.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// averageRating computes the mean rating across records, 0 when empty.
func averageRating(records []models.TastingRecord) float64 {
	if len(records) == 0 {
		return 0
	}
	var sum float64
	for i := range records {
		sum += records[i].Rating
	}
	return round2(sum / float64(len(records)))
}

// totalSpent sums the price of every priced record.
func totalSpent(records []models.TastingRecord) float64 {
	var sum float64
	for i := range records {
		if records[i].HasPrice() {
			sum += records[i].PriceValue()
		}
	}
	return round2(sum)
}

// valueScore rates quality per unit of price. Records without a positive
// price have no meaningful score and return 0.
func valueScore(rating, price float64) float64 {
	if price <= 0 {
		return 0
	}
	return round2(rating / (price / 1000))
}
