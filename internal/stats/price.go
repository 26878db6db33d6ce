// Vinoscope - Wine Tasting Journal Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/vinoscope

package stats

import (
	"sort"

	"github.com/tomtom215/vinoscope/internal/models"
)

// priceBuckets are the five fixed price ranges every snapshot reports.
// Min is inclusive, Max exclusive; max == 0 marks the open-ended bucket.
var priceBuckets = []models.PriceRange{
	{Label: "0-3000", Min: 0, Max: 3000},
	{Label: "3000-5000", Min: 3000, Max: 5000},
	{Label: "5000-10000", Min: 5000, Max: 10000},
	{Label: "10000-20000", Min: 10000, Max: 20000},
	{Label: "20000+", Min: 20000, Max: 0},
}

const topListSize = 10

// ComputePrice derives every price-based aggregate. Only records with a
// price participate; with no priced records all fields come back present
// but empty.
func ComputePrice(records []models.TastingRecord) models.PriceAnalysis {
	priced := pricedRecords(records)

	analysis := models.PriceAnalysis{
		Ranges:                computeRanges(priced),
		AveragePriceByCountry: averagePriceBy(priced, func(r *models.TastingRecord) string { return r.Country }),
		AveragePriceByType:    averagePriceBy(priced, func(r *models.TastingRecord) string { return r.Type }),
		PricePoints:           make([]models.PricePoint, 0, len(priced)),
		MostExpensive:         []models.TastingRecord{},
		BestValue:             []models.ValueEntry{},
	}

	for i := range priced {
		analysis.PricePoints = append(analysis.PricePoints, models.PricePoint{
			Price:  priced[i].PriceValue(),
			Rating: priced[i].Rating,
		})
	}

	byPrice := make([]models.TastingRecord, len(priced))
	copy(byPrice, priced)
	sort.SliceStable(byPrice, func(i, j int) bool {
		return byPrice[i].PriceValue() > byPrice[j].PriceValue()
	})
	if len(byPrice) > topListSize {
		byPrice = byPrice[:topListSize]
	}
	analysis.MostExpensive = byPrice

	values := make([]models.ValueEntry, 0, len(priced))
	for i := range priced {
		score := valueScore(priced[i].Rating, priced[i].PriceValue())
		values = append(values, models.ValueEntry{Record: priced[i], ValueScore: score})
	}
	sort.SliceStable(values, func(i, j int) bool {
		return values[i].ValueScore > values[j].ValueScore
	})
	if len(values) > topListSize {
		values = values[:topListSize]
	}
	analysis.BestValue = values

	return analysis
}

// computeRanges assigns every priced record to exactly one bucket.
func computeRanges(priced []models.TastingRecord) []models.PriceRange {
	ranges := make([]models.PriceRange, len(priceBuckets))
	copy(ranges, priceBuckets)

	sums := make([]float64, len(ranges))
	for i := range priced {
		idx := bucketIndex(priced[i].PriceValue())
		ranges[idx].Count++
		sums[idx] += priced[i].Rating
	}

	for i := range ranges {
		ranges[i].Percentage = percentage(ranges[i].Count, len(priced))
		if ranges[i].Count > 0 {
			ranges[i].AverageRating = round2(sums[i] / float64(ranges[i].Count))
		}
	}
	return ranges
}

// bucketIndex finds the bucket for a price. The final bucket is unbounded
// so every non-negative price lands somewhere.
func bucketIndex(price float64) int {
	for i := range priceBuckets {
		if priceBuckets[i].Max == 0 || price < priceBuckets[i].Max {
			return i
		}
	}
	return len(priceBuckets) - 1
}

// averagePriceBy computes the mean price per category key. Empty keys
// fall into the "Unknown" bucket.
func averagePriceBy(priced []models.TastingRecord, keyFn func(*models.TastingRecord) string) map[string]float64 {
	sums := make(map[string]float64)
	counts := make(map[string]int)
	for i := range priced {
		key := keyFn(&priced[i])
		if key == "" {
			key = unknownCategory
		}
		sums[key] += priced[i].PriceValue()
		counts[key]++
	}

	averages := make(map[string]float64, len(sums))
	for key, sum := range sums {
		averages[key] = round2(sum / float64(counts[key]))
	}
	return averages
}
