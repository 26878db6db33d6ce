// Vinoscope - Wine Tasting Journal Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/vinoscope

package store

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/tomtom215/vinoscope/internal/models"
)

// MemoryStore is an in-memory Store used in tests and in standalone mode
// (no journal URL configured). It reproduces the journal API's pagination
// contract exactly: tasting date descending, opaque record-ID cursors,
// empty/short pages signalling exhaustion.
type MemoryStore struct {
	mu      sync.RWMutex
	records map[string][]models.TastingRecord // userID -> records, tasted_at desc
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{records: make(map[string][]models.TastingRecord)}
}

// Seed replaces a user's records. The input is copied and sorted by
// tasting date descending.
func (m *MemoryStore) Seed(userID string, records []models.TastingRecord) {
	sorted := make([]models.TastingRecord, len(records))
	copy(sorted, records)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].TastedAt.After(sorted[j].TastedAt)
	})

	m.mu.Lock()
	m.records[userID] = sorted
	m.mu.Unlock()
}

// Add appends a single record to a user's history.
func (m *MemoryStore) Add(record models.TastingRecord) {
	m.mu.Lock()
	defer m.mu.Unlock()

	records := append(m.records[record.UserID], record)
	sort.SliceStable(records, func(i, j int) bool {
		return records[i].TastedAt.After(records[j].TastedAt)
	})
	m.records[record.UserID] = records
}

// QueryRecords implements Store.
func (m *MemoryStore) QueryRecords(ctx context.Context, userID, cursor string, limit int) (*RecordPage, error) {
	return m.page(ctx, userID, cursor, limit, nil)
}

// QueryRecordsByDateRange implements Store.
func (m *MemoryStore) QueryRecordsByDateRange(ctx context.Context, userID string, start, end time.Time, cursor string, limit int) (*RecordPage, error) {
	return m.page(ctx, userID, cursor, limit, func(r *models.TastingRecord) bool {
		return !r.TastedAt.Before(start) && r.TastedAt.Before(end)
	})
}

// Ping implements Store. The in-memory store is always reachable.
func (m *MemoryStore) Ping(_ context.Context) error {
	return nil
}

// page returns one page of the (optionally filtered) record list, resuming
// after the record identified by cursor.
func (m *MemoryStore) page(ctx context.Context, userID, cursor string, limit int, keep func(*models.TastingRecord) bool) (*RecordPage, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if limit < 1 {
		limit = DefaultBatchSize
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	var filtered []models.TastingRecord
	for i := range m.records[userID] {
		r := m.records[userID][i]
		if keep == nil || keep(&r) {
			filtered = append(filtered, r)
		}
	}

	start := 0
	if cursor != "" {
		for i := range filtered {
			if filtered[i].ID == cursor {
				start = i + 1
				break
			}
		}
	}

	end := start + limit
	if end > len(filtered) {
		end = len(filtered)
	}

	page := &RecordPage{Records: filtered[start:end]}
	if len(page.Records) > 0 && end < len(filtered) {
		page.NextCursor = page.Records[len(page.Records)-1].ID
	}

	return page, nil
}
