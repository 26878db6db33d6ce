// Vinoscope - Wine Tasting Journal Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/vinoscope

package stats

import "github.com/tomtom215/vinoscope/internal/models"

// BasicStats holds the headline counters for a user's tasting history.
type BasicStats struct {
	TotalRecords    int
	AverageRating   float64
	TotalSpent      float64
	UniqueWines     int
	UniqueProducers int
}

// ComputeBasic derives the headline counters. Unique wines are counted by
// wine fingerprint (name, producer, vintage); records without a vintage
// share the empty vintage slot and group together.
func ComputeBasic(records []models.TastingRecord) BasicStats {
	stats := BasicStats{
		TotalRecords:  len(records),
		AverageRating: averageRating(records),
		TotalSpent:    totalSpent(records),
	}

	stats.UniqueWines = countUnique(records, func(r *models.TastingRecord) string {
		return r.Fingerprint()
	})

	stats.UniqueProducers = countUnique(records, func(r *models.TastingRecord) string {
		return r.Producer
	})

	return stats
}
