// Vinoscope - Wine Tasting Journal Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/vinoscope

package stats

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/tomtom215/vinoscope/internal/models"
)

const (
	topRatedThreshold = 9.0
	topRatedLimit     = 20
	trendWindow       = 6 * 30 * 24 * time.Hour // ~6 months
)

// ComputeRating derives every rating-based aggregate. The improvement
// trend compares the trailing six months against the six months before
// that, relative to now.
func ComputeRating(records []models.TastingRecord, now time.Time) models.RatingAnalysis {
	analysis := models.RatingAnalysis{
		Distribution:     ratingDistribution(records),
		AverageByPrice:   ratingByPriceBucket(records),
		AverageByCountry: ratingByCategory(records, func(r *models.TastingRecord) string { return r.Country }),
		AverageByType:    ratingByCategory(records, func(r *models.TastingRecord) string { return r.Type }),
		TopRated:         topRated(records),
		ImprovementTrend: improvementTrend(records, now),
	}
	return analysis
}

// ratingDistribution counts records per integer rating bucket, keyed
// "n-(n+1)" by the rating's integer part. Empty buckets are omitted.
func ratingDistribution(records []models.TastingRecord) map[string]int {
	distribution := make(map[string]int)
	for i := range records {
		floor := int(math.Floor(records[i].Rating))
		key := fmt.Sprintf("%d-%d", floor, floor+1)
		distribution[key]++
	}
	return distribution
}

// ratingByPriceBucket averages ratings per price range, priced records only.
func ratingByPriceBucket(records []models.TastingRecord) map[string]float64 {
	sums := make(map[string]float64)
	counts := make(map[string]int)
	for i := range records {
		if !records[i].HasPrice() {
			continue
		}
		label := priceBuckets[bucketIndex(records[i].PriceValue())].Label
		sums[label] += records[i].Rating
		counts[label]++
	}

	averages := make(map[string]float64, len(sums))
	for label, sum := range sums {
		averages[label] = round2(sum / float64(counts[label]))
	}
	return averages
}

// ratingByCategory averages ratings per category key, empty keys under
// "Unknown".
func ratingByCategory(records []models.TastingRecord, keyFn func(*models.TastingRecord) string) map[string]float64 {
	sums := make(map[string]float64)
	counts := make(map[string]int)
	for i := range records {
		key := keyFn(&records[i])
		if key == "" {
			key = unknownCategory
		}
		sums[key] += records[i].Rating
		counts[key]++
	}

	averages := make(map[string]float64, len(sums))
	for key, sum := range sums {
		averages[key] = round2(sum / float64(counts[key]))
	}
	return averages
}

// topRated returns the highest-rated records at or above the threshold,
// rating descending, capped at topRatedLimit.
func topRated(records []models.TastingRecord) []models.TastingRecord {
	top := make([]models.TastingRecord, 0)
	for i := range records {
		if records[i].Rating >= topRatedThreshold {
			top = append(top, records[i])
		}
	}

	sort.SliceStable(top, func(i, j int) bool {
		return top[i].Rating > top[j].Rating
	})
	if len(top) > topRatedLimit {
		top = top[:topRatedLimit]
	}
	return top
}

// improvementTrend is the percentage change of the trailing six-month
// mean rating versus the preceding six months. Either window being empty
// yields 0.
func improvementTrend(records []models.TastingRecord, now time.Time) float64 {
	recentStart := now.Add(-trendWindow)
	priorStart := now.Add(-2 * trendWindow)

	var recentSum, priorSum float64
	var recentCount, priorCount int
	for i := range records {
		t := records[i].TastedAt
		switch {
		case !t.Before(recentStart) && t.Before(now):
			recentSum += records[i].Rating
			recentCount++
		case !t.Before(priorStart) && t.Before(recentStart):
			priorSum += records[i].Rating
			priorCount++
		}
	}

	if recentCount == 0 || priorCount == 0 {
		return 0
	}
	recentMean := recentSum / float64(recentCount)
	priorMean := priorSum / float64(priorCount)
	if priorMean == 0 {
		return 0
	}
	return round2((recentMean - priorMean) / priorMean * 100)
}
