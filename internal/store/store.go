// Vinoscope - Wine Tasting Journal Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/vinoscope

// Package store provides read-only access to the external journal record
// store. The store owns the tasting records; this engine only queries them.
//
// Two implementations exist:
//   - JournalClient: HTTP client for the remote journal API, with
//     client-side pacing, 429 backoff, and circuit breaker protection
//     (wrap with NewBreakerClient).
//   - MemoryStore: in-memory implementation for tests and standalone mode.
//
// The Fetcher drives either implementation through the cursor-paginated
// full-scan and date-range-scan loops the aggregation engine needs.
package store

import (
	"context"
	"fmt"
	"time"

	"github.com/tomtom215/vinoscope/internal/models"
)

// DefaultBatchSize is the maximum page size for record queries.
const DefaultBatchSize = 500

// RecordPage is one page of a cursor-paginated record query.
// NextCursor identifies the last record of this page; passing it to the
// next query resumes after that record. An empty NextCursor or a page
// shorter than the requested limit signals exhaustion.
type RecordPage struct {
	Records    []models.TastingRecord `json:"records"`
	NextCursor string                 `json:"next_cursor,omitempty"`
}

// Store is the read-only interface to the journal record store.
//
// Both query methods return records ordered by tasting date descending
// (most recent first). Implementations must honor context cancellation.
type Store interface {
	// QueryRecords returns one page of a user's records.
	QueryRecords(ctx context.Context, userID, cursor string, limit int) (*RecordPage, error)

	// QueryRecordsByDateRange returns one page of a user's records whose
	// tasting date falls within [start, end).
	QueryRecordsByDateRange(ctx context.Context, userID string, start, end time.Time, cursor string, limit int) (*RecordPage, error)

	// Ping verifies connectivity to the store.
	Ping(ctx context.Context) error
}

// FetchError wraps a store failure. Any batch failure aborts the whole
// fetch: the caller never sees a partial record list and nothing partial
// is ever cached.
type FetchError struct {
	Op     string // "query", "query_range", "decode"
	Cursor string // cursor of the failing batch, empty for the first
	Err    error
}

// Error implements the error interface.
func (e *FetchError) Error() string {
	if e.Cursor != "" {
		return fmt.Sprintf("record fetch failed (%s, cursor %s): %v", e.Op, e.Cursor, e.Err)
	}
	return fmt.Sprintf("record fetch failed (%s): %v", e.Op, e.Err)
}

// Unwrap returns the underlying error.
func (e *FetchError) Unwrap() error {
	return e.Err
}
