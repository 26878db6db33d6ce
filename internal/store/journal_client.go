// Vinoscope - Wine Tasting Journal Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/vinoscope

package store

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/goccy/go-json"
	"golang.org/x/time/rate"

	"github.com/tomtom215/vinoscope/internal/config"
	"github.com/tomtom215/vinoscope/internal/models"
)

// maxErrorBodySize limits the response body read for error reporting.
// Prevents unbounded allocation when a failing endpoint returns a large body.
const maxErrorBodySize = 64 * 1024 // 64KB

// readBodyForError reads the response body for error reporting (max 64KB).
// Returns the body content or a placeholder if reading fails.
func readBodyForError(r io.Reader) []byte {
	body, err := io.ReadAll(io.LimitReader(r, maxErrorBodySize))
	if err != nil {
		return []byte("(failed to read response body)")
	}
	if len(body) == maxErrorBodySize {
		return append(body, []byte("\n... (truncated)")...)
	}
	return body
}

// JournalClient handles communication with the journal record API.
//
// The journal API exposes the user's tasting records through a single
// cursor-paginated endpoint ordered by tasting date descending:
//
//	GET {base}/api/v1/records?user_id=&limit=&cursor=&start=&end=
//
// Resilience:
//   - Client-side pacing via a token-bucket rate limiter
//   - Exponential backoff on HTTP 429 (1s, 2s, 4s, 8s, 16s), honoring
//     Retry-After
//   - Context cancellation checked before every attempt and during backoff
//
// Thread Safety: safe for concurrent use; each request is independent.
type JournalClient struct {
	baseURL        string
	apiKey         string
	client         *http.Client
	limiter        *rate.Limiter
	maxRetries     int
	retryBaseDelay time.Duration
}

// NewJournalClient creates a journal API client from configuration.
func NewJournalClient(cfg *config.JournalConfig) *JournalClient {
	limiter := rate.NewLimiter(rate.Inf, 0)
	if cfg.RequestsPerSecond > 0 {
		burst := cfg.Burst
		if burst < 1 {
			burst = 1
		}
		limiter = rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), burst)
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	return &JournalClient{
		baseURL: cfg.URL,
		apiKey:  cfg.APIKey,
		client: &http.Client{
			Timeout: timeout,
		},
		limiter:        limiter,
		maxRetries:     5,
		retryBaseDelay: 1 * time.Second,
	}
}

// QueryRecords returns one page of a user's records, newest first.
func (c *JournalClient) QueryRecords(ctx context.Context, userID, cursor string, limit int) (*RecordPage, error) {
	params := url.Values{}
	params.Set("user_id", userID)
	params.Set("limit", fmt.Sprintf("%d", limit))
	params.Set("order", "tasted_at.desc")
	if cursor != "" {
		params.Set("cursor", cursor)
	}

	return c.doRecordsRequest(ctx, params, cursor, "query")
}

// QueryRecordsByDateRange returns one page of a user's records whose
// tasting date falls within [start, end), newest first.
func (c *JournalClient) QueryRecordsByDateRange(ctx context.Context, userID string, start, end time.Time, cursor string, limit int) (*RecordPage, error) {
	params := url.Values{}
	params.Set("user_id", userID)
	params.Set("limit", fmt.Sprintf("%d", limit))
	params.Set("order", "tasted_at.desc")
	params.Set("start", start.UTC().Format(time.RFC3339))
	params.Set("end", end.UTC().Format(time.RFC3339))
	if cursor != "" {
		params.Set("cursor", cursor)
	}

	return c.doRecordsRequest(ctx, params, cursor, "query_range")
}

// Ping verifies connectivity to the journal API.
func (c *JournalClient) Ping(ctx context.Context) error {
	reqURL := fmt.Sprintf("%s/api/v1/ping", c.baseURL)

	resp, err := c.doRequestWithRateLimit(ctx, reqURL)
	if err != nil {
		return fmt.Errorf("failed to ping journal API: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("journal ping failed with status: %d", resp.StatusCode)
	}

	return nil
}

// journalRecordsResponse is the wire shape of the records endpoint.
type journalRecordsResponse struct {
	Records    []models.TastingRecord `json:"records"`
	NextCursor string                 `json:"next_cursor"`
}

// doRecordsRequest performs a records request with common error handling.
// Failures are wrapped in FetchError so the aggregation layer can surface
// them unchanged.
func (c *JournalClient) doRecordsRequest(ctx context.Context, params url.Values, cursor, op string) (*RecordPage, error) {
	reqURL := fmt.Sprintf("%s/api/v1/records?%s", c.baseURL, params.Encode())

	resp, err := c.doRequestWithRateLimit(ctx, reqURL)
	if err != nil {
		return nil, &FetchError{Op: op, Cursor: cursor, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body := readBodyForError(resp.Body)
		return nil, &FetchError{
			Op:     op,
			Cursor: cursor,
			Err:    fmt.Errorf("records request failed with status %d: %s", resp.StatusCode, string(body)),
		}
	}

	var page journalRecordsResponse
	if err := json.NewDecoder(resp.Body).Decode(&page); err != nil {
		return nil, &FetchError{Op: "decode", Cursor: cursor, Err: err}
	}

	return &RecordPage{Records: page.Records, NextCursor: page.NextCursor}, nil
}

// doRequestWithRateLimit performs an HTTP request with client-side pacing
// and automatic rate limit handling. HTTP 429 responses are retried with
// exponential backoff (1s, 2s, 4s, 8s, 16s), honoring Retry-After.
// The context cancels both the pacing wait and the backoff wait.
func (c *JournalClient) doRequestWithRateLimit(ctx context.Context, reqURL string) (*http.Response, error) {
	var lastErr error

	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, err
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, http.NoBody)
		if err != nil {
			return nil, fmt.Errorf("failed to create request: %w", err)
		}
		req.Header.Set("Authorization", "Bearer "+c.apiKey)

		resp, err := c.client.Do(req)
		if err != nil {
			return nil, fmt.Errorf("HTTP request failed: %w", err)
		}

		if resp.StatusCode != http.StatusTooManyRequests {
			return resp, nil
		}

		// Rate limited - close body and retry with backoff
		_ = resp.Body.Close()

		if attempt == c.maxRetries {
			lastErr = fmt.Errorf("rate limit exceeded after %d retries (HTTP 429)", c.maxRetries)
			break
		}

		delay := c.retryBaseDelay * time.Duration(1<<uint(attempt))
		if retryAfter := resp.Header.Get("Retry-After"); retryAfter != "" {
			if d, ok := parseRetryAfter(retryAfter); ok {
				delay = d
			}
		}

		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	return nil, lastErr
}

// parseRetryAfter handles both Retry-After forms: delta-seconds and HTTP-date.
func parseRetryAfter(value string) (time.Duration, bool) {
	if seconds, err := strconv.Atoi(value); err == nil && seconds >= 0 {
		return time.Duration(seconds) * time.Second, true
	}
	if at, err := http.ParseTime(value); err == nil {
		if d := time.Until(at); d > 0 {
			return d, true
		}
	}
	return 0, false
}
