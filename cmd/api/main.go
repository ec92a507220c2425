// Command api is the Six Picks Stream Finder API server.
//
// Usage:
//
//	streamfinder-api
//	API_PORT=8080 DATABASE_URL=postgres://... streamfinder-api

// @title Six Picks Stream Finder API
// @version 1.0.0
// @description Builds Stream Finder priority configs from Ottoneu Six Picks rosters. Players are resolved to MLB ids and prepended to an operator-supplied base config.
// @host localhost:8000
// @BasePath /api/v1
// @schemes http https
// @contact.name Six Picks Stream Finder
// @license.name MIT
package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/joho/godotenv"

	"github.com/alex-monroe/six-picks-stream-finder/internal/api"
	"github.com/alex-monroe/six-picks-stream-finder/internal/api/handler"
	"github.com/alex-monroe/six-picks-stream-finder/internal/baseconfig"
	"github.com/alex-monroe/six-picks-stream-finder/internal/cache"
	"github.com/alex-monroe/six-picks-stream-finder/internal/config"
	"github.com/alex-monroe/six-picks-stream-finder/internal/db"
	"github.com/alex-monroe/six-picks-stream-finder/internal/maintenance"
	"github.com/alex-monroe/six-picks-stream-finder/internal/metrics"
	"github.com/alex-monroe/six-picks-stream-finder/internal/notifications"
	"github.com/alex-monroe/six-picks-stream-finder/internal/provider/mlb"
	"github.com/alex-monroe/six-picks-stream-finder/internal/roster"
	"github.com/alex-monroe/six-picks-stream-finder/internal/session"
	"github.com/alex-monroe/six-picks-stream-finder/internal/store"
	"github.com/alex-monroe/six-picks-stream-finder/internal/streamfinder"
	"github.com/alex-monroe/six-picks-stream-finder/internal/workflow"

	_ "github.com/alex-monroe/six-picks-stream-finder/docs" // swagger docs
)

func main() {
	// Load .env if present
	_ = godotenv.Load(".env")

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	level := slog.LevelInfo
	if cfg.Debug {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	metrics.Init()

	// Context with signal handling
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	// Storage: Postgres when configured, otherwise process memory
	var (
		kv     store.KV
		pinger handler.Pinger
	)
	if cfg.HasDatabase() {
		logger.Info("Connecting to database...")
		pool, err := db.New(ctx, cfg)
		if err != nil {
			logger.Error("Failed to connect to database", "error", err)
			os.Exit(1)
		}
		defer pool.Close()
		logger.Info("Database connected",
			"min_conns", cfg.DBPoolMinConns,
			"max_conns", cfg.DBPoolMaxConns)
		kv = store.NewPostgres(pool.Pool)
		pinger = pool
	} else {
		if cfg.IsProduction() {
			logger.Warn("No DATABASE_URL set in production: pending context and saved base config will not survive a restart")
		} else {
			logger.Info("No DATABASE_URL set, using in-memory store")
		}
		kv = store.NewMemory()
	}

	// Initialize cache
	appCache := cache.New(cfg.CacheEnabled)
	defer appCache.Close()
	logger.Info("Cache initialized", "enabled", cfg.CacheEnabled)

	// Notifications go to the log and to live SSE subscribers
	broker := notifications.NewBroker(0, logger)
	sink := notifications.Multi(notifications.NewLogSink(logger), broker)

	// Workflow
	slot := session.NewSlot(kv, logger)
	lookup := mlb.NewClient(cfg.MLBAPIBaseURL, cfg.HTTPTimeout, logger)
	gen := streamfinder.NewGenerator(lookup, sink, logger)
	fetcher := roster.NewFetcher(cfg.ScraperUserAgent, cfg.HTTPTimeout, logger)
	coord := workflow.New(slot, gen, fetcher, cfg.PagePrefixes, sink, logger)

	// Drop pending contexts nobody consumed
	go maintenance.Start(ctx, slot, maintenance.Config{
		SweepInterval: cfg.ContextSweepInterval,
		ContextTTL:    cfg.ContextTTL,
	}, logger)

	// Create router
	router := api.NewRouter(handler.Deps{
		Coordinator: coord,
		Saved:       baseconfig.NewRepository(kv, logger),
		Resolver:    lookup,
		Broker:      broker,
		Cache:       appCache,
		DB:          pinger,
		Config:      cfg,
		Logger:      logger,
	}, cfg)

	// Create HTTP server. The event stream clears its own write deadline.
	addr := fmt.Sprintf("%s:%d", cfg.APIHost, cfg.APIPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in background
	go func() {
		logger.Info("Starting Six Picks Stream Finder API",
			"addr", addr,
			"environment", cfg.Environment,
			"docs", fmt.Sprintf("http://localhost:%d/docs/", cfg.APIPort))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("Server failed", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt
	<-ctx.Done()
	logger.Info("Shutting down...")

	// Graceful shutdown with timeout
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Shutdown error", "error", err)
	}
	logger.Info("Server stopped")
}
