// Vinoscope - Wine Tasting Journal Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/vinoscope

package models

import (
	"time"
)

// StatisticsSnapshot is the aggregate root produced by a full statistics
// computation. It is built once by the aggregation engine, handed to the
// cache, and never mutated in place. A new computation always produces a
// fresh snapshot with a new GeneratedAt.
type StatisticsSnapshot struct {
	TotalRecords    int     `json:"total_records"`
	AverageRating   float64 `json:"average_rating"`
	TotalSpent      float64 `json:"total_spent"`
	UniqueWines     int     `json:"unique_wines"`
	UniqueProducers int     `json:"unique_producers"`

	MonthlyStats []MonthlyStats `json:"monthly_stats"`
	YearlyStats  []YearlyStats  `json:"yearly_stats"`

	CountryAnalysis []CountryStats `json:"country_analysis"`
	TypeAnalysis    []TypeStats    `json:"type_analysis"`

	PriceAnalysis  PriceAnalysis  `json:"price_analysis"`
	RatingAnalysis RatingAnalysis `json:"rating_analysis"`
	Trends         TrendAnalysis  `json:"trends"`

	GeneratedAt time.Time `json:"generated_at"`
	CacheExpiry time.Time `json:"cache_expiry"`
}

// MonthlyStats holds aggregates for one observed (year, month) group.
// Months with no activity produce no entry; the series has no synthetic
// zero-filled gaps.
type MonthlyStats struct {
	Year          int     `json:"year"`
	Month         int     `json:"month"` // 1-12
	Label         string  `json:"label"` // "2025-03"
	Count         int     `json:"count"`
	AverageRating float64 `json:"average_rating"`
	TotalSpent    float64 `json:"total_spent"`
	UniqueWines   int     `json:"unique_wines"`
	TopCountry    string  `json:"top_country"` // modal country within the month
	TopType       string  `json:"top_type"`    // modal type within the month
}

// YearlyStats holds aggregates for one observed year.
// Growth is the percentage change in record count versus the previous
// calendar year; the earliest year in the series always has Growth == 0.
type YearlyStats struct {
	Year          int     `json:"year"`
	Count         int     `json:"count"`
	AverageRating float64 `json:"average_rating"`
	TotalSpent    float64 `json:"total_spent"`
	UniqueWines   int     `json:"unique_wines"`
	Growth        float64 `json:"growth"`
}

// CountryStats holds aggregates for one country bucket. Records with no
// country are grouped under the literal "Unknown" bucket.
type CountryStats struct {
	Country       string   `json:"country"`
	Count         int      `json:"count"`
	Percentage    float64  `json:"percentage"`
	AverageRating float64  `json:"average_rating"`
	AveragePrice  float64  `json:"average_price"` // priced subset only; 0 if none priced
	TotalSpent    float64  `json:"total_spent"`
	FavoriteTypes []string `json:"favorite_types"` // top 3 types by frequency
}

// TypeStats holds aggregates for one wine-type bucket.
type TypeStats struct {
	Type          string  `json:"type"`
	Count         int     `json:"count"`
	Percentage    float64 `json:"percentage"`
	AverageRating float64 `json:"average_rating"`
	AveragePrice  float64 `json:"average_price"`
	TotalSpent    float64 `json:"total_spent"`
}

// PriceRange is one of the five fixed, contiguous price buckets.
// Min is inclusive and Max exclusive; the open-ended top bucket has Max == 0.
// Together the buckets partition the priced subset exactly once.
type PriceRange struct {
	Label         string  `json:"label"` // "0-3000" ... "20000+"
	Min           float64 `json:"min"`
	Max           float64 `json:"max,omitempty"` // 0 means unbounded
	Count         int     `json:"count"`
	Percentage    float64 `json:"percentage"`     // of the priced subset
	AverageRating float64 `json:"average_rating"` // 0 if the bucket is empty
}

// PricePoint is one (price, rating) pair for external scatter plotting.
type PricePoint struct {
	Price  float64 `json:"price"`
	Rating float64 `json:"rating"`
}

// ValueEntry ranks a record by its value score (rating per 1000 spent).
type ValueEntry struct {
	Record     TastingRecord `json:"record"`
	ValueScore float64       `json:"value_score"`
}

// PriceAnalysis covers all price-derived aggregates. With zero priced
// records every field is present but empty/zeroed, never omitted.
type PriceAnalysis struct {
	Ranges                []PriceRange       `json:"ranges"`
	AveragePriceByCountry map[string]float64 `json:"average_price_by_country"`
	AveragePriceByType    map[string]float64 `json:"average_price_by_type"`
	PricePoints           []PricePoint       `json:"price_points"`
	MostExpensive         []TastingRecord    `json:"most_expensive"` // top 10 by price desc
	BestValue             []ValueEntry       `json:"best_value"`     // top 10 by value score desc
}

// RatingAnalysis covers all rating-derived aggregates.
type RatingAnalysis struct {
	// Distribution counts records per integer rating bucket, keyed "n-(n+1)"
	// by floor(rating). Zero-count buckets are omitted.
	Distribution     map[string]int     `json:"distribution"`
	AverageByPrice   map[string]float64 `json:"average_by_price"` // keyed by price bucket label
	AverageByCountry map[string]float64 `json:"average_by_country"`
	AverageByType    map[string]float64 `json:"average_by_type"`
	TopRated         []TastingRecord    `json:"top_rated"` // rating >= 9.0, max 20, desc
	// ImprovementTrend is the percentage change of the trailing 6-month mean
	// rating versus the preceding 6 months. 0 when the prior window is empty.
	ImprovementTrend float64 `json:"improvement_trend"`
}

// TrendPoint is one value in a time-ordered trend series.
type TrendPoint struct {
	Period string  `json:"period"` // "2025-03"
	Value  float64 `json:"value"`
}

// PreferenceShift describes a change in dominant country/type per period.
type PreferenceShift struct {
	Period  string `json:"period"`
	Country string `json:"country"`
	Type    string `json:"type"`
}

// TrendAnalysis holds long-horizon trend series. These are an extension
// point that is not yet computed: every series is always empty.
type TrendAnalysis struct {
	RatingTrend         []TrendPoint      `json:"rating_trend"`
	PriceTrend          []TrendPoint      `json:"price_trend"`
	VolumeTrend         []TrendPoint      `json:"volume_trend"`
	DiversityTrend      []TrendPoint      `json:"diversity_trend"`
	PreferenceEvolution []PreferenceShift `json:"preference_evolution"`
}

// CacheStats is a read-only view of snapshot-cache performance counters,
// exposed on the health endpoint.
type CacheStats struct {
	Hits      int64   `json:"hits"`
	Misses    int64   `json:"misses"`
	Evictions int64   `json:"evictions"`
	Entries   int     `json:"entries"`
	HitRate   float64 `json:"hit_rate"`
}

// HealthStatus represents the health check response.
type HealthStatus struct {
	Status         string     `json:"status"`
	Mode           string     `json:"mode"` // "standalone" (in-memory store) or "journal"
	Version        string     `json:"version"`
	StoreConnected bool       `json:"store_connected"`
	Cache          CacheStats `json:"cache"`
	Uptime         float64    `json:"uptime_seconds"`
}
