// Vinoscope - Wine Tasting Journal Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/vinoscope

package store

import (
	"context"
	"errors"
	"time"

	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/tomtom215/vinoscope/internal/logging"
	"github.com/tomtom215/vinoscope/internal/metrics"
)

// BreakerClient wraps a Store with the circuit breaker pattern, preventing
// cascading failures when the journal API is unavailable or slow.
//
// DETERMINISM NOTE: the breaker uses real time (via sony/gobreaker) for its
// interval and timeout calculations. The timing determines when to recover
// from failures, not data integrity. For unit tests, test the wrapped store
// directly rather than mocking the breaker.
type BreakerClient struct {
	inner Store
	cb    *gobreaker.CircuitBreaker[*RecordPage]
	name  string
}

// NewBreakerClient wraps a Store with a circuit breaker.
// Configuration:
//   - Max 3 concurrent requests in half-open state
//   - 1 minute measurement window in closed state
//   - 2 minute open period before attempting recovery
//   - Opens at >=60% failure rate with a minimum of 10 requests
func NewBreakerClient(inner Store) *BreakerClient {
	cbName := "journal-api"

	metrics.CircuitBreakerState.WithLabelValues(cbName).Set(0) // 0 = closed

	cb := gobreaker.NewCircuitBreaker[*RecordPage](gobreaker.Settings{
		Name:        cbName,
		MaxRequests: 3,
		Interval:    time.Minute,
		Timeout:     2 * time.Minute,

		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < 10 {
				return false // need statistical significance before tripping
			}

			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			shouldTrip := failureRatio >= 0.6

			if shouldTrip {
				logging.Warn().Uint32("failures", counts.TotalFailures).Float64("failure_rate", failureRatio*100).Msg("[CIRCUIT BREAKER] Opening circuit")
			}

			return shouldTrip
		},

		OnStateChange: func(name string, from, to gobreaker.State) {
			fromStr := stateToString(from)
			toStr := stateToString(to)

			logging.Info().Str("from", fromStr).Str("to", toStr).Msg("[CIRCUIT BREAKER] State transition")

			metrics.CircuitBreakerState.WithLabelValues(name).Set(stateToFloat(to))
			metrics.CircuitBreakerTransitions.WithLabelValues(name, fromStr, toStr).Inc()
		},
	})

	return &BreakerClient{inner: inner, cb: cb, name: cbName}
}

// QueryRecords implements Store through the circuit breaker.
func (b *BreakerClient) QueryRecords(ctx context.Context, userID, cursor string, limit int) (*RecordPage, error) {
	return b.execute(func() (*RecordPage, error) {
		return b.inner.QueryRecords(ctx, userID, cursor, limit)
	})
}

// QueryRecordsByDateRange implements Store through the circuit breaker.
func (b *BreakerClient) QueryRecordsByDateRange(ctx context.Context, userID string, start, end time.Time, cursor string, limit int) (*RecordPage, error) {
	return b.execute(func() (*RecordPage, error) {
		return b.inner.QueryRecordsByDateRange(ctx, userID, start, end, cursor, limit)
	})
}

// Ping bypasses the breaker: health checks must observe the real store
// state even while the circuit is open.
func (b *BreakerClient) Ping(ctx context.Context) error {
	return b.inner.Ping(ctx)
}

// execute wraps a store call with circuit breaker protection and metrics.
func (b *BreakerClient) execute(fn func() (*RecordPage, error)) (*RecordPage, error) {
	page, err := b.cb.Execute(fn)
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			metrics.CircuitBreakerRequests.WithLabelValues(b.name, "rejected").Inc()
			logging.Warn().Err(err).Msg("[CIRCUIT BREAKER] Request rejected")
			return nil, &FetchError{Op: "query", Err: err}
		}
		metrics.CircuitBreakerRequests.WithLabelValues(b.name, "failure").Inc()
		return nil, err
	}

	metrics.CircuitBreakerRequests.WithLabelValues(b.name, "success").Inc()
	return page, nil
}

// stateToString converts a gobreaker state to its metric label.
func stateToString(state gobreaker.State) string {
	switch state {
	case gobreaker.StateClosed:
		return "closed"
	case gobreaker.StateHalfOpen:
		return "half-open"
	case gobreaker.StateOpen:
		return "open"
	default:
		return "unknown"
	}
}

// stateToFloat converts a gobreaker state to its metric gauge value.
func stateToFloat(state gobreaker.State) float64 {
	switch state {
	case gobreaker.StateClosed:
		return 0
	case gobreaker.StateHalfOpen:
		return 1
	case gobreaker.StateOpen:
		return 2
	default:
		return -1
	}
}
