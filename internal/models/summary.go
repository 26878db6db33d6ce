// Vinoscope - Wine Tasting Journal Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/vinoscope

// This file contains models for the Year Summary - a condensed, Wrapped-style
// annual report over a single calendar year of tasting records.
package models

import (
	"time"
)

// YearSummary is the condensed annual report for one user and one calendar
// year. Unlike the full StatisticsSnapshot it is scoped to records whose
// tasting date falls within [Jan 1 of year, Jan 1 of year+1).
type YearSummary struct {
	ID          string    `json:"id"`
	Year        int       `json:"year"`
	UserID      string    `json:"user_id"`
	GeneratedAt time.Time `json:"generated_at"`

	// Core statistics
	TotalRecords  int     `json:"total_records"`
	AverageRating float64 `json:"average_rating"`
	TotalSpent    float64 `json:"total_spent"`
	UniqueWines   int     `json:"unique_wines"`

	// Favorites (modal values over the year)
	FavoriteCountry string `json:"favorite_country"`
	FavoriteType    string `json:"favorite_type"`

	// Superlatives. Nil when the year has no qualifying record.
	HighestRated  *TastingRecord `json:"highest_rated,omitempty"`
	LowestRated   *TastingRecord `json:"lowest_rated,omitempty"`
	MostExpensive *TastingRecord `json:"most_expensive,omitempty"`
	BestValue     *ValueEntry    `json:"best_value,omitempty"`

	MonthlyBreakdown []MonthlyStats `json:"monthly_breakdown"`

	Achievements []Achievement `json:"achievements"`
}

// Achievement represents an earned badge in the year summary.
type Achievement struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
}

// Achievement IDs for the year summary.
const (
	AchievementDedicatedTaster = "dedicated_taster"
	AchievementFinePalate      = "fine_palate"
	AchievementWorldExplorer   = "world_explorer"
	AchievementBigSpender      = "big_spender"
)

// Achievement thresholds. Monetary thresholds are in the record's native
// price unit (currency-minor-unit-agnostic).
const (
	AchievementRecordThreshold  = 50
	AchievementRatingThreshold  = 8.0
	AchievementCountryThreshold = 10
	AchievementSpentThreshold   = 100000.0
)

// DefaultAchievements returns the full set of achievements that a year
// summary can award, in display order.
func DefaultAchievements() []Achievement {
	return []Achievement{
		{ID: AchievementDedicatedTaster, Name: "Dedicated Taster", Description: "Recorded 50+ tastings in a year", Icon: "wine"},
		{ID: AchievementFinePalate, Name: "Fine Palate", Description: "Average rating of 8.0 or higher", Icon: "star"},
		{ID: AchievementWorldExplorer, Name: "World Explorer", Description: "Tasted wines from 10+ countries", Icon: "globe"},
		{ID: AchievementBigSpender, Name: "Big Spender", Description: "Spent 100,000+ on wine in a year", Icon: "credit-card"},
	}
}
