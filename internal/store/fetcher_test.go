// Vinoscope - Wine Tasting Journal Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/vinoscope

package store

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/tomtom215/vinoscope/internal/models"
)

func seedRecords(n int, base time.Time) []models.TastingRecord {
	records := make([]models.TastingRecord, 0, n)
	for i := 0; i < n; i++ {
		records = append(records, models.TastingRecord{
			ID:       fmt.Sprintf("rec-%03d", i),
			UserID:   "user-1",
			WineName: fmt.Sprintf("Wine %d", i),
			Rating:   7.5,
			TastedAt: base.Add(-time.Duration(i) * 24 * time.Hour),
		})
	}
	return records
}

func TestMemoryStorePagination(t *testing.T) {
	mem := NewMemoryStore()
	mem.Seed("user-1", seedRecords(7, time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)))

	ctx := context.Background()

	page1, err := mem.QueryRecords(ctx, "user-1", "", 3)
	if err != nil {
		t.Fatalf("QueryRecords: %v", err)
	}
	if len(page1.Records) != 3 {
		t.Fatalf("page 1 size = %d, want 3", len(page1.Records))
	}
	if page1.NextCursor == "" {
		t.Fatal("page 1 should carry a cursor")
	}

	page2, err := mem.QueryRecords(ctx, "user-1", page1.NextCursor, 3)
	if err != nil {
		t.Fatalf("QueryRecords page 2: %v", err)
	}
	if len(page2.Records) != 3 {
		t.Fatalf("page 2 size = %d, want 3", len(page2.Records))
	}
	if page2.Records[0].ID == page1.Records[0].ID {
		t.Error("page 2 repeats page 1 records")
	}

	page3, err := mem.QueryRecords(ctx, "user-1", page2.NextCursor, 3)
	if err != nil {
		t.Fatalf("QueryRecords page 3: %v", err)
	}
	if len(page3.Records) != 1 {
		t.Errorf("page 3 size = %d, want 1", len(page3.Records))
	}
	if page3.NextCursor != "" {
		t.Errorf("final short page should carry no cursor, got %q", page3.NextCursor)
	}
}

func TestMemoryStoreSortsDescending(t *testing.T) {
	mem := NewMemoryStore()
	base := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	// Seed out of order.
	mem.Seed("user-1", []models.TastingRecord{
		{ID: "old", UserID: "user-1", TastedAt: base.AddDate(0, -2, 0)},
		{ID: "new", UserID: "user-1", TastedAt: base},
		{ID: "mid", UserID: "user-1", TastedAt: base.AddDate(0, -1, 0)},
	})

	page, err := mem.QueryRecords(context.Background(), "user-1", "", 10)
	if err != nil {
		t.Fatalf("QueryRecords: %v", err)
	}
	want := []string{"new", "mid", "old"}
	for i, id := range want {
		if page.Records[i].ID != id {
			t.Errorf("records[%d].ID = %q, want %q", i, page.Records[i].ID, id)
		}
	}
}

func TestMemoryStoreDateRange(t *testing.T) {
	mem := NewMemoryStore()
	mem.Seed("user-1", []models.TastingRecord{
		{ID: "in-2024", UserID: "user-1", TastedAt: time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC)},
		{ID: "jan-1-2025", UserID: "user-1", TastedAt: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)},
		{ID: "in-2025", UserID: "user-1", TastedAt: time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC)},
	})

	start := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(1, 0, 0)

	page, err := mem.QueryRecordsByDateRange(context.Background(), "user-1", start, end, "", 10)
	if err != nil {
		t.Fatalf("QueryRecordsByDateRange: %v", err)
	}
	if len(page.Records) != 2 {
		t.Fatalf("got %d records, want 2 (start inclusive, end exclusive)", len(page.Records))
	}
	for _, r := range page.Records {
		if r.ID == "in-2024" {
			t.Error("record outside the range leaked into the page")
		}
	}
}

func TestFetchAllWalksEveryPage(t *testing.T) {
	mem := NewMemoryStore()
	mem.Seed("user-1", seedRecords(12, time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)))

	fetcher := NewFetcher(mem, 5)
	records, err := fetcher.FetchAll(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("FetchAll: %v", err)
	}
	if len(records) != 12 {
		t.Errorf("fetched %d records, want 12", len(records))
	}

	seen := make(map[string]bool, len(records))
	for _, r := range records {
		if seen[r.ID] {
			t.Errorf("record %s fetched twice", r.ID)
		}
		seen[r.ID] = true
	}
}

func TestFetchAllEmptyHistory(t *testing.T) {
	fetcher := NewFetcher(NewMemoryStore(), 5)
	records, err := fetcher.FetchAll(context.Background(), "nobody")
	if err != nil {
		t.Fatalf("FetchAll: %v", err)
	}
	if len(records) != 0 {
		t.Errorf("fetched %d records for an unknown user, want 0", len(records))
	}
}

func TestFetchYearBounds(t *testing.T) {
	mem := NewMemoryStore()
	mem.Seed("user-1", []models.TastingRecord{
		{ID: "dec-31-2024", UserID: "user-1", TastedAt: time.Date(2024, 12, 31, 23, 59, 59, 0, time.UTC)},
		{ID: "jan-1-2025", UserID: "user-1", TastedAt: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)},
		{ID: "dec-31-2025", UserID: "user-1", TastedAt: time.Date(2025, 12, 31, 23, 59, 59, 0, time.UTC)},
		{ID: "jan-1-2026", UserID: "user-1", TastedAt: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)},
	})

	fetcher := NewFetcher(mem, 10)
	records, err := fetcher.FetchYear(context.Background(), "user-1", 2025)
	if err != nil {
		t.Fatalf("FetchYear: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("fetched %d records for 2025, want 2", len(records))
	}
	for _, r := range records {
		if r.TastedAt.Year() != 2025 {
			t.Errorf("record %s from %d leaked into 2025", r.ID, r.TastedAt.Year())
		}
	}
}

type failingStore struct{}

func (failingStore) QueryRecords(context.Context, string, string, int) (*RecordPage, error) {
	return nil, errors.New("boom")
}

func (failingStore) QueryRecordsByDateRange(context.Context, string, time.Time, time.Time, string, int) (*RecordPage, error) {
	return nil, errors.New("boom")
}

func (failingStore) Ping(context.Context) error { return nil }

func TestFetchAllWrapsStoreErrors(t *testing.T) {
	fetcher := NewFetcher(failingStore{}, 5)
	_, err := fetcher.FetchAll(context.Background(), "user-1")
	if err == nil {
		t.Fatal("expected an error from a failing store")
	}

	var fetchErr *FetchError
	if !errors.As(err, &fetchErr) {
		t.Errorf("error %v is not a *FetchError", err)
	}
}

func TestFetchAllHonorsContext(t *testing.T) {
	mem := NewMemoryStore()
	mem.Seed("user-1", seedRecords(10, time.Now().UTC()))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	fetcher := NewFetcher(mem, 2)
	if _, err := fetcher.FetchAll(ctx, "user-1"); !errors.Is(err, context.Canceled) {
		t.Errorf("err = %v, want context.Canceled", err)
	}
}
