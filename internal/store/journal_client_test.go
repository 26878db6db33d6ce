// Vinoscope - Wine Tasting Journal Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/vinoscope

package store

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/tomtom215/vinoscope/internal/config"
)

func testClient(t *testing.T, handler http.Handler) (*JournalClient, *httptest.Server) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client := NewJournalClient(&config.JournalConfig{
		URL:     server.URL,
		APIKey:  "test-key",
		Timeout: 5 * time.Second,
	})
	client.retryBaseDelay = time.Millisecond
	return client, server
}

func TestQueryRecordsRequestShape(t *testing.T) {
	var gotQuery, gotAuth string
	client, _ := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v1/records" {
			t.Errorf("path = %q, want /api/v1/records", r.URL.Path)
		}
		gotQuery = r.URL.RawQuery
		gotAuth = r.Header.Get("Authorization")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"records":[{"id":"r1","user_id":"user-1","wine_name":"Barolo","rating":9.1,"tasted_at":"2025-06-01T12:00:00Z"}],"next_cursor":"r1"}`))
	}))

	page, err := client.QueryRecords(context.Background(), "user-1", "abc", 500)
	if err != nil {
		t.Fatalf("QueryRecords: %v", err)
	}

	if gotAuth != "Bearer test-key" {
		t.Errorf("Authorization = %q, want Bearer test-key", gotAuth)
	}
	for _, want := range []string{"user_id=user-1", "limit=500", "order=tasted_at.desc", "cursor=abc"} {
		if !strings.Contains(gotQuery, want) {
			t.Errorf("query %q missing %q", gotQuery, want)
		}
	}

	if len(page.Records) != 1 || page.Records[0].ID != "r1" {
		t.Errorf("unexpected page records: %+v", page.Records)
	}
	if page.NextCursor != "r1" {
		t.Errorf("NextCursor = %q, want r1", page.NextCursor)
	}
}

func TestQueryRecordsByDateRangeParams(t *testing.T) {
	var gotQuery string
	client, _ := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		_, _ = w.Write([]byte(`{"records":[],"next_cursor":""}`))
	}))

	start := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(1, 0, 0)
	if _, err := client.QueryRecordsByDateRange(context.Background(), "user-1", start, end, "", 100); err != nil {
		t.Fatalf("QueryRecordsByDateRange: %v", err)
	}

	for _, want := range []string{"start=2025-01-01T00%3A00%3A00Z", "end=2026-01-01T00%3A00%3A00Z"} {
		if !strings.Contains(gotQuery, want) {
			t.Errorf("query %q missing %q", gotQuery, want)
		}
	}
}

func TestQueryRecordsServerErrorWrapsFetchError(t *testing.T) {
	client, _ := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "internal", http.StatusInternalServerError)
	}))

	_, err := client.QueryRecords(context.Background(), "user-1", "cur-5", 10)
	if err == nil {
		t.Fatal("expected error on HTTP 500")
	}

	var fetchErr *FetchError
	if !errors.As(err, &fetchErr) {
		t.Fatalf("error %v is not a *FetchError", err)
	}
	if fetchErr.Cursor != "cur-5" {
		t.Errorf("FetchError.Cursor = %q, want cur-5", fetchErr.Cursor)
	}
}

func TestQueryRecordsRetriesOn429(t *testing.T) {
	var attempts atomic.Int32
	client, _ := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if attempts.Add(1) <= 2 {
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		_, _ = w.Write([]byte(`{"records":[],"next_cursor":""}`))
	}))

	if _, err := client.QueryRecords(context.Background(), "user-1", "", 10); err != nil {
		t.Fatalf("QueryRecords: %v", err)
	}
	if got := attempts.Load(); got != 3 {
		t.Errorf("attempts = %d, want 3 (two 429s then success)", got)
	}
}

func TestParseRetryAfter(t *testing.T) {
	tests := []struct {
		in     string
		want   time.Duration
		wantOK bool
	}{
		{"2", 2 * time.Second, true},
		{"0", 0, true},
		{"-1", 0, false},
		{"garbage", 0, false},
	}
	for _, tt := range tests {
		got, ok := parseRetryAfter(tt.in)
		if got != tt.want || ok != tt.wantOK {
			t.Errorf("parseRetryAfter(%q) = (%v, %v), want (%v, %v)", tt.in, got, ok, tt.want, tt.wantOK)
		}
	}

	// HTTP-date form yields the remaining time until that instant.
	at := time.Now().Add(3 * time.Second).UTC().Format(http.TimeFormat)
	got, ok := parseRetryAfter(at)
	if !ok || got <= 0 || got > 3*time.Second {
		t.Errorf("parseRetryAfter(%q) = (%v, %v), want a positive duration under 3s", at, got, ok)
	}

	// A date in the past is not usable as a delay.
	past := time.Now().Add(-time.Minute).UTC().Format(http.TimeFormat)
	if _, ok := parseRetryAfter(past); ok {
		t.Errorf("parseRetryAfter(%q) accepted a past date", past)
	}
}

func TestQueryRecordsGivesUpAfterMaxRetries(t *testing.T) {
	client, _ := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))

	_, err := client.QueryRecords(context.Background(), "user-1", "", 10)
	if err == nil {
		t.Fatal("expected error after exhausting retries")
	}
}

func TestPing(t *testing.T) {
	client, _ := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v1/ping" {
			t.Errorf("path = %q, want /api/v1/ping", r.URL.Path)
		}
		w.WriteHeader(http.StatusOK)
	}))

	if err := client.Ping(context.Background()); err != nil {
		t.Errorf("Ping: %v", err)
	}
}

func TestPingFailure(t *testing.T) {
	client, _ := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))

	if err := client.Ping(context.Background()); err == nil {
		t.Error("expected error on HTTP 503")
	}
}
