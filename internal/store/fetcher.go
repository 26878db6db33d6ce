// Vinoscope - Wine Tasting Journal Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/vinoscope

package store

import (
	"context"
	"time"

	"github.com/tomtom215/vinoscope/internal/logging"
	"github.com/tomtom215/vinoscope/internal/metrics"
	"github.com/tomtom215/vinoscope/internal/models"
)

// Fetcher drives the cursor-paginated retrieval loops over a Store.
//
// FetchAll materializes a user's complete tasting history in memory before
// any aggregation runs, so every aggregation module observes the exact same
// immutable record list. There is no record cap: very large histories
// complete at the cost of first-call latency.
type Fetcher struct {
	store     Store
	batchSize int
}

// NewFetcher creates a Fetcher with the given page size. Sizes outside
// [1, DefaultBatchSize] fall back to DefaultBatchSize.
func NewFetcher(s Store, batchSize int) *Fetcher {
	if batchSize < 1 || batchSize > DefaultBatchSize {
		batchSize = DefaultBatchSize
	}
	return &Fetcher{store: s, batchSize: batchSize}
}

// FetchAll retrieves the complete set of a user's records, ordered by
// tasting date descending. Any batch failure aborts the whole fetch and
// surfaces a FetchError; the caller never receives a partial list.
func (f *Fetcher) FetchAll(ctx context.Context, userID string) ([]models.TastingRecord, error) {
	return f.fetchLoop(ctx, userID, func(cursor string) (*RecordPage, error) {
		return f.store.QueryRecords(ctx, userID, cursor, f.batchSize)
	})
}

// FetchYear retrieves a user's records whose tasting date falls within
// [Jan 1 of year, Jan 1 of year+1), ordered by tasting date descending.
func (f *Fetcher) FetchYear(ctx context.Context, userID string, year int) ([]models.TastingRecord, error) {
	start := time.Date(year, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(year+1, 1, 1, 0, 0, 0, 0, time.UTC)

	return f.fetchLoop(ctx, userID, func(cursor string) (*RecordPage, error) {
		return f.store.QueryRecordsByDateRange(ctx, userID, start, end, cursor, f.batchSize)
	})
}

// fetchLoop runs the shared pagination loop: request batches, thread the
// cursor, stop on an empty or short page. The context is checked before
// every batch so cancellation never leaves a half-admitted fetch running.
func (f *Fetcher) fetchLoop(ctx context.Context, userID string, query func(cursor string) (*RecordPage, error)) ([]models.TastingRecord, error) {
	started := time.Now()
	var all []models.TastingRecord
	cursor := ""

	for {
		if err := ctx.Err(); err != nil {
			return nil, &FetchError{Op: "query", Cursor: cursor, Err: err}
		}

		page, err := query(cursor)
		if err != nil {
			metrics.FetchErrors.WithLabelValues("query").Inc()
			if _, ok := err.(*FetchError); ok {
				return nil, err
			}
			return nil, &FetchError{Op: "query", Cursor: cursor, Err: err}
		}

		metrics.FetchPages.Inc()
		metrics.FetchRecords.Add(float64(len(page.Records)))
		all = append(all, page.Records...)

		// Exhausted: empty page, short page, or no continuation cursor.
		if len(page.Records) == 0 || len(page.Records) < f.batchSize || page.NextCursor == "" {
			break
		}
		cursor = page.NextCursor
	}

	metrics.FetchDuration.Observe(time.Since(started).Seconds())
	logging.Debug().Str("user", userID).Int("records", len(all)).Dur("elapsed", time.Since(started)).Msg("Record fetch complete")

	return all, nil
}
