// Vinoscope - Wine Tasting Journal Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/vinoscope

package summary

import "github.com/tomtom215/vinoscope/internal/models"

// evaluateAchievements awards each badge whose threshold the year's
// records clear. The result preserves display order and is empty, not
// nil, when nothing was earned.
func evaluateAchievements(records []models.TastingRecord, avgRating, totalSpent float64) []models.Achievement {
	countries := make(map[string]struct{})
	for i := range records {
		if records[i].Country != "" {
			countries[records[i].Country] = struct{}{}
		}
	}

	earned := make(map[string]bool, 4)
	earned[models.AchievementDedicatedTaster] = len(records) >= models.AchievementRecordThreshold
	earned[models.AchievementFinePalate] = len(records) > 0 && avgRating >= models.AchievementRatingThreshold
	earned[models.AchievementWorldExplorer] = len(countries) >= models.AchievementCountryThreshold
	earned[models.AchievementBigSpender] = totalSpent >= models.AchievementSpentThreshold

	achievements := make([]models.Achievement, 0, 4)
	for _, a := range models.DefaultAchievements() {
		if earned[a.ID] {
			achievements = append(achievements, a)
		}
	}
	return achievements
}
