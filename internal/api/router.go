// Vinoscope - Wine Tasting Journal Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/vinoscope

package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/tomtom215/vinoscope/internal/config"
)

// NewRouter builds the full route tree with middleware applied.
func NewRouter(server *Server, cfg config.ServerConfig) http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.RealIP)
	r.Use(RequestID)
	r.Use(RequestLogger)
	r.Use(chimiddleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: cfg.CORSAllowedOrigins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type", "X-Request-ID"},
		MaxAge:         86400,
	}))

	r.Get("/health", server.handleHealth)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		if cfg.RateLimitRequests > 0 {
			r.Use(httprate.Limit(
				cfg.RateLimitRequests,
				time.Minute,
				httprate.WithKeyFuncs(httprate.KeyByIP),
			))
		}

		r.Get("/stats/{userID}", server.handleGetStatistics)
		r.Post("/stats/invalidate", server.handleInvalidateAll)
		r.Post("/stats/{userID}/invalidate", server.handleInvalidateUser)
		r.Get("/wrapped/{userID}/{year}", server.handleYearSummary)
	})

	return r
}
