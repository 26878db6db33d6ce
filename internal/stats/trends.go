// Vinoscope - Wine Tasting Journal Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/vinoscope

package stats

import "github.com/tomtom215/vinoscope/internal/models"

// ComputeTrends returns the trend-analysis section of the snapshot. The
// series are currently always empty; the typed structure keeps the JSON
// shape stable for clients while the forecasting work lands.
//
// TODO: populate the monthly series from ComputeMonthly output once the
// smoothing window is settled.
func ComputeTrends(_ []models.TastingRecord) models.TrendAnalysis {
	return models.TrendAnalysis{
		RatingTrend:         []models.TrendPoint{},
		PriceTrend:          []models.TrendPoint{},
		VolumeTrend:         []models.TrendPoint{},
		DiversityTrend:      []models.TrendPoint{},
		PreferenceEvolution: []models.PreferenceShift{},
	}
}
