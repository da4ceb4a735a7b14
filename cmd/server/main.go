// Grocerec - Grocery Product Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/grocerec

package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/tomtom215/grocerec/internal/api"
	"github.com/tomtom215/grocerec/internal/config"
	"github.com/tomtom215/grocerec/internal/logging"
	"github.com/tomtom215/grocerec/internal/middleware"
	"github.com/tomtom215/grocerec/internal/supervisor"
	"github.com/tomtom215/grocerec/internal/supervisor/services"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logging.Init(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Caller: cfg.Logging.Caller,
	})

	if err := run(cfg); err != nil {
		logging.Error().Err(err).Msg("Server stopped with error")
		os.Exit(1)
	}
}

func run(cfg *config.Config) error {
	logger := logging.Logger()
	logger.Info().
		Str("version", version).
		Str("data_dir", cfg.Data.Dir).
		Str("backend", cfg.Data.Backend).
		Bool("cache_enabled", cfg.Recommend.Cache.Enabled).
		Msg("Starting Grocerec")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	source, closeSource, err := buildSource(cfg, logger)
	if err != nil {
		return err
	}
	defer closeSource()

	engine, err := buildEngine(cfg, source, logger)
	if err != nil {
		return err
	}
	defer engine.Close()

	// A broken source is logged but not fatal: the readiness probe and
	// every request report it until the files are fixed.
	inspectCtx, cancel := context.WithTimeout(ctx, cfg.Recommend.RequestTimeout)
	report, err := engine.Inspect(inspectCtx)
	cancel()
	if err != nil {
		logger.Error().Err(err).Msg("Catalog check failed; serving with an unavailable data source")
	} else {
		logger.Info().
			Int("products", report.Products).
			Int("duplicate_names", len(report.DuplicateNames)).
			Str("data_version", report.DataVersion).
			Msg("Catalog loaded")
	}

	monitor := middleware.NewPerformanceMonitor(1000, middleware.DefaultSlowThreshold, logger)
	handler := api.NewHandler(engine, monitor, version)
	router := api.NewRouter(handler, api.NewChiMiddleware(api.ChiMiddlewareConfigFromSecurity(&cfg.Security)))

	server := &http.Server{
		Addr:              cfg.Server.Addr(),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       cfg.Server.Timeout,
		WriteTimeout:      cfg.Server.Timeout + cfg.Recommend.RequestTimeout,
		IdleTimeout:       2 * time.Minute,
	}

	tree := supervisor.NewSupervisorTree(logging.NewSlogLogger("supervisor"), supervisor.DefaultTreeConfig())
	if engine.CacheEnabled() {
		tree.AddDataService(services.NewRefreshService(engine, cfg.Recommend.Cache.RefreshInterval, logger))
	}
	tree.AddAPIService(services.NewHTTPServerService(server, cfg.Server.Timeout))

	logger.Info().Str("addr", server.Addr).Msg("HTTP server listening")
	errCh := tree.ServeBackground(ctx)

	err = <-errCh
	if unstopped, reportErr := tree.UnstoppedServiceReport(); reportErr == nil && len(unstopped) > 0 {
		for _, svc := range unstopped {
			logger.Warn().Str("service", svc.Name).Msg("Service did not stop in time")
		}
	}

	if err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	logger.Info().Msg("Shutdown complete")
	return nil
}
