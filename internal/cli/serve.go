// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"topictree/internal/ai"
	"topictree/internal/cache"
	"topictree/internal/database"
	"topictree/internal/generator"
	"topictree/internal/handlers"
	"topictree/internal/jobs"
	"topictree/internal/middleware"
	"topictree/internal/retry"
	"topictree/internal/router"
	"topictree/internal/storage"
	"topictree/internal/store"
)

// shutdownTimeout bounds draining requests and running builds on exit.
const shutdownTimeout = 30 * time.Second

func newServeCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Long:  "Connects to PostgreSQL, Valkey and (optionally) S3, then serves the JSON API until SIGINT or SIGTERM.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.serve(cmd.Context())
		},
	}
}

func (a *app) serve(ctx context.Context) error {
	cfg := a.cfg
	slog.Info("configuration loaded", "env", cfg.Env, "addr", cfg.Addr())

	// Connect to PostgreSQL and apply migrations.
	db, err := database.Connect(cfg.DSN())
	if err != nil {
		return err
	}
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		return err
	}

	treeStore := store.NewTreeStore(db)
	eventStore := store.NewJobEventStore(db)

	// Valkey holds job snapshots and rendered outlines. Without it, jobs are
	// tracked in memory and outlines are rendered on every request.
	var (
		jobCache jobs.JobCache
		outlines handlers.OutlineCache
	)
	valkeyClient, err := cache.ConnectValkey(cfg.ValkeyHost, cfg.ValkeyPort, cfg.ValkeyPassword)
	if err != nil {
		slog.Warn("valkey unavailable, tracking jobs in memory", "error", err)
		jobCache = jobs.NewMemoryCache()
	} else {
		defer valkeyClient.Close()
		jobCache = cache.NewJobCache(valkeyClient, cache.DefaultJobTTL)
		outlineCache := cache.NewOutlineCache(valkeyClient, cache.DefaultOutlineTTL)
		// Renderings from a previous binary may differ.
		outlineCache.InvalidateAll(ctx)
		outlines = outlineCache
	}

	// Initialize the AI provider registry with all configured providers.
	aiRegistry := ai.NewRegistry(cfg.AIProvider, cfg.ProviderConfigs())
	if len(aiRegistry.Available()) == 0 {
		slog.Warn("no ai provider configured, builds will fail until an API key is set")
	}
	slog.Info("ai providers initialized",
		"active", aiRegistry.ActiveName(),
		"available", aiRegistry.Available(),
	)

	mode, err := generator.ParseMode(cfg.GenMode)
	if err != nil {
		return err
	}
	gen := generator.New(aiRegistry,
		generator.WithRetryPolicy(retry.Policy{
			MaxAttempts: cfg.GenMaxAttempts,
			BaseDelay:   cfg.GenBaseDelay,
			MaxDelay:    cfg.GenMaxDelay,
			Retryable:   ai.IsTransient,
		}),
		generator.WithTemperature(cfg.GenTemperature),
		generator.WithMaxTokens(cfg.GenMaxTokens),
		generator.WithDefaultMode(mode),
	)

	runnerOpts := []jobs.Option{
		jobs.WithEventLog(eventStore),
		jobs.WithDefaultMode(mode),
		jobs.WithBuildTimeout(cfg.GenBuildTimeout),
		jobs.WithMaxConcurrent(cfg.GenMaxConcurrent),
	}

	// S3 export is optional; the service works without it.
	deps := handlers.Deps{
		Trees:     treeStore,
		Providers: aiRegistry,
		Events:    eventStore,
		Outlines:  outlines,
	}
	storageClient, err := storage.New(
		cfg.S3Endpoint, cfg.S3Region, cfg.S3AccessKey, cfg.S3SecretKey,
		cfg.S3Bucket, cfg.S3Prefix,
	)
	if err != nil {
		return fmt.Errorf("initialize s3 storage: %w", err)
	}
	if storageClient != nil {
		slog.Info("s3 export enabled", "endpoint", cfg.S3Endpoint, "bucket", storageClient.Bucket())
		runnerOpts = append(runnerOpts, jobs.WithExporter(storageClient))
		deps.Exports = storageClient
	} else {
		slog.Warn("s3 storage not configured, export disabled")
	}

	runner := jobs.NewRunner(gen, jobCache, treeStore, runnerOpts...)
	deps.Jobs = runner

	limiter := middleware.NewRateLimiter(cfg.RateLimitRequests, cfg.RateLimitWindow)
	defer limiter.Stop()

	r := router.New(handlers.NewAPI(deps), limiter)

	// Builds run in the background, so requests themselves are short.
	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      r,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		slog.Info("server starting", "addr", cfg.Addr())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		slog.Info("shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			slog.Error("server forced to shutdown", "error", err)
		}
		if err := runner.Shutdown(shutdownCtx); err != nil {
			slog.Error("builds did not stop in time", "error", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return err
	}
	slog.Info("server stopped gracefully")
	return nil
}
