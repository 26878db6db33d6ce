// Vinoscope - Wine Tasting Journal Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/vinoscope

// Command server runs the Vinoscope statistics service: it fetches
// tasting records from the configured journal API, computes cached
// statistics snapshots and year summaries, and serves them over HTTP.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/tomtom215/vinoscope/internal/api"
	"github.com/tomtom215/vinoscope/internal/cache"
	"github.com/tomtom215/vinoscope/internal/config"
	"github.com/tomtom215/vinoscope/internal/logging"
	"github.com/tomtom215/vinoscope/internal/stats"
	"github.com/tomtom215/vinoscope/internal/store"
	"github.com/tomtom215/vinoscope/internal/summary"
	"github.com/tomtom215/vinoscope/internal/supervisor"
)

func main() {
	if err := run(); err != nil {
		logging.Error().Err(err).Msg("server exited with error")
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logging.Init(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Caller: cfg.Logging.Caller,
	})

	mode := "journal"
	var journalStore store.Store
	if cfg.StandaloneMode() {
		mode = "standalone"
		journalStore = store.NewMemoryStore()
		logging.Warn().Msg("no journal URL configured, running standalone with an empty in-memory store")
	} else {
		journalStore = store.NewBreakerClient(store.NewJournalClient(&cfg.Journal))
	}

	fetcher := store.NewFetcher(journalStore, cfg.Journal.BatchSize)
	engine := stats.NewEngine(cfg.Cache.TTL)
	snapshots := cache.New(cfg.Cache.TTL)
	statsService := stats.NewService(fetcher, engine, snapshots)

	archive, err := summary.OpenArchive(cfg.Summary.ArchivePath)
	if err != nil {
		return fmt.Errorf("open summary archive: %w", err)
	}
	defer func() {
		if err := archive.Close(); err != nil {
			logging.Error().Err(err).Msg("failed to close summary archive")
		}
	}()
	summaries := summary.NewGenerator(fetcher, archive)

	handlers := api.NewServer(statsService, summaries, journalStore, mode)
	router := api.NewRouter(handlers, cfg.Server)

	httpServer := &http.Server{
		Addr:              fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	treeConfig := supervisor.DefaultTreeConfig()
	treeConfig.ShutdownTimeout = cfg.Server.ShutdownTimeout

	slogger := slog.New(logging.NewSlogHandler())
	tree := supervisor.NewTree(slogger, treeConfig)
	tree.Add(supervisor.NewHTTPService(httpServer, cfg.Server.ShutdownTimeout))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logging.Info().
		Str("addr", httpServer.Addr).
		Str("mode", mode).
		Str("version", api.Version).
		Msg("vinoscope starting")

	err = tree.Serve(ctx)
	if err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("supervisor: %w", err)
	}

	logging.Info().Msg("vinoscope stopped")
	return nil
}
