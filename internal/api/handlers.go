// Vinoscope - Wine Tasting Journal Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/vinoscope

package api

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/tomtom215/vinoscope/internal/logging"
	"github.com/tomtom215/vinoscope/internal/models"
	"github.com/tomtom215/vinoscope/internal/stats"
	"github.com/tomtom215/vinoscope/internal/summary"
)

// Version is stamped at build time via -ldflags.
var Version = "dev"

// Pinger reports upstream journal reachability for the health endpoint.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Server holds the handler dependencies.
type Server struct {
	stats     *stats.Service
	summaries *summary.Generator
	store     Pinger
	mode      string
	validate  *validator.Validate
	startedAt time.Time
}

// summaryParams carries the validated path parameters of the year
// summary endpoint.
type summaryParams struct {
	UserID string `validate:"required,max=128"`
	Year   int    `validate:"required,gte=2000,lte=2100"`
}

// NewServer creates the handler set. mode is "journal" or "standalone"
// and is surfaced on /health.
func NewServer(statsService *stats.Service, summaries *summary.Generator, pinger Pinger, mode string) *Server {
	return &Server{
		stats:     statsService,
		summaries: summaries,
		store:     pinger,
		mode:      mode,
		validate:  validator.New(),
		startedAt: time.Now(),
	}
}

// handleGetStatistics serves GET /api/v1/stats/{userID}.
// ?refresh=true recomputes even when a live cached snapshot exists.
func (s *Server) handleGetStatistics(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")
	if userID == "" {
		WriteError(w, r, http.StatusBadRequest, CodeInvalidRequest, "user ID is required")
		return
	}

	forceRefresh := r.URL.Query().Get("refresh") == "true"

	snapshot, err := s.stats.GetStatistics(r.Context(), userID, forceRefresh)
	if err != nil {
		logging.Ctx(r.Context()).Error().Err(err).Str("user_id", userID).Msg("statistics request failed")
		WriteError(w, r, http.StatusBadGateway, CodeUpstreamError, "failed to compute statistics")
		return
	}
	WriteSuccess(w, r, snapshot)
}

// handleInvalidateUser serves POST /api/v1/stats/{userID}/invalidate.
func (s *Server) handleInvalidateUser(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")
	if userID == "" {
		WriteError(w, r, http.StatusBadRequest, CodeInvalidRequest, "user ID is required")
		return
	}

	s.stats.InvalidateCache(userID)
	WriteSuccess(w, r, map[string]string{"invalidated": userID})
}

// handleInvalidateAll serves POST /api/v1/stats/invalidate.
func (s *Server) handleInvalidateAll(w http.ResponseWriter, r *http.Request) {
	s.stats.InvalidateAll()
	WriteSuccess(w, r, map[string]string{"invalidated": "all"})
}

// handleYearSummary serves GET /api/v1/wrapped/{userID}/{year}.
// ?refresh=true regenerates a summary even if an archived copy exists.
func (s *Server) handleYearSummary(w http.ResponseWriter, r *http.Request) {
	year, err := strconv.Atoi(chi.URLParam(r, "year"))
	if err != nil {
		WriteError(w, r, http.StatusBadRequest, CodeInvalidRequest, "year must be an integer")
		return
	}

	params := summaryParams{
		UserID: chi.URLParam(r, "userID"),
		Year:   year,
	}
	if err := s.validate.Struct(&params); err != nil {
		WriteError(w, r, http.StatusBadRequest, CodeInvalidRequest, "year must be between 2000 and 2100 and user ID non-empty")
		return
	}

	force := r.URL.Query().Get("refresh") == "true"

	result, err := s.summaries.Generate(r.Context(), params.UserID, params.Year, force)
	if err != nil {
		logging.Ctx(r.Context()).Error().Err(err).
			Str("user_id", params.UserID).Int("year", params.Year).
			Msg("year summary request failed")
		WriteError(w, r, http.StatusBadGateway, CodeUpstreamError, "failed to generate year summary")
		return
	}
	WriteSuccess(w, r, result)
}

// handleHealth serves GET /health. The service reports degraded rather
// than failing when the journal is unreachable, since cached snapshots
// remain servable.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	status := models.HealthStatus{
		Status:         "ok",
		Mode:           s.mode,
		Version:        Version,
		StoreConnected: true,
		Cache:          s.stats.CacheStats(),
		Uptime:         time.Since(s.startedAt).Seconds(),
	}
	if err := s.store.Ping(ctx); err != nil {
		status.Status = "degraded"
		status.StoreConnected = false
	}

	WriteSuccess(w, r, status)
}
