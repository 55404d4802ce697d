// Vitrina - Content Discovery Feed Composition for Creator Analytics
// Copyright 2026 Vitrina contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/vitrina-app/vitrina

// Package main is the entry point for the Vitrina feed server.
//
// Vitrina composes multi-shelf content discovery feeds for a creator
// analytics platform: it retrieves opted-in creator posts from the
// content archive, normalizes their engagement statistics, scores and
// ranks them per shelf archetype, and assembles the shelves into one
// deduplicated feed response.
//
// # Application Architecture
//
// The server initializes components in the following order:
//
//  1. Logging: zerolog, configured from environment before anything else
//  2. Configuration: layered Koanf v2 (defaults, YAML file, environment)
//  3. Upstream clients: content archive, signals, taxonomy
//  4. Feed engine: scorer, composer, catalog, assembler
//  5. Supervisor tree: HTTP server plus maintenance services
//
// # Configuration
//
// Configuration is loaded via Koanf v2 with layered sources (highest
// priority wins):
//   - Environment variables
//   - Config file (config.yaml, or CONFIG_PATH)
//   - Built-in defaults
//
// Required settings:
//   - ARCHIVE_BASE_URL: content archive endpoint
//   - JWT_SECRET: 32+ character secret (unless AUTH_MODE=none)
//
// Optional upstreams:
//   - SIGNALS_BASE_URL: personalization signals (empty disables boosts)
//   - TAXONOMY_BASE_URL: label display resolution (empty keeps raw ids)
//
// # Signal Handling
//
// The server handles graceful shutdown on SIGINT and SIGTERM:
//   - Stops accepting new connections
//   - Waits for in-flight requests to complete (10s timeout)
//   - Stops the maintenance services
//
// # Example Usage
//
// Development without auth:
//
//	export ARCHIVE_BASE_URL=http://localhost:9200
//	export AUTH_MODE=none
//	./vitrina
//
// Production:
//
//	export ARCHIVE_BASE_URL=http://archive:9200
//	export SIGNALS_BASE_URL=http://signals:9300
//	export TAXONOMY_BASE_URL=http://taxonomy:9400
//	export JWT_SECRET=$(openssl rand -base64 32)
//	./vitrina
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/vitrina-app/vitrina/internal/api"
	"github.com/vitrina-app/vitrina/internal/cache"
	"github.com/vitrina-app/vitrina/internal/config"
	"github.com/vitrina-app/vitrina/internal/feed"
	"github.com/vitrina-app/vitrina/internal/logging"
	"github.com/vitrina-app/vitrina/internal/metrics"
	"github.com/vitrina-app/vitrina/internal/retrieval"
	"github.com/vitrina-app/vitrina/internal/signals"
	"github.com/vitrina-app/vitrina/internal/supervisor"
	"github.com/vitrina-app/vitrina/internal/supervisor/services"
	"github.com/vitrina-app/vitrina/internal/taxonomy"
)

func main() {
	// Logging first, from environment, so config loading itself is logged.
	logging.Init(logging.Config{
		Level:  os.Getenv("LOG_LEVEL"),
		Format: os.Getenv("LOG_FORMAT"),
	})

	cfg, err := config.Load()
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	// Reconfigure logging with the effective config.
	logging.Init(logging.Config{
		Level:     cfg.Logging.Level,
		Format:    cfg.Logging.Format,
		Caller:    cfg.Logging.Caller,
		Timestamp: true,
	})

	logging.Info().
		Str("environment", cfg.Server.Environment).
		Int("port", cfg.Server.Port).
		Msg("Starting Vitrina feed server")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	logger := logging.Logger()
	engineCfg := cfg.EngineConfig()

	// === UPSTREAM CLIENTS ===

	archive := retrieval.NewClient(&cfg.Archive, logger)

	var signalProvider feed.SignalProvider
	if cfg.Signals.BaseURL != "" {
		signalProvider = signals.NewClient(&cfg.Signals, logger)
		logging.Info().Str("base_url", cfg.Signals.BaseURL).Msg("Personalization signals enabled")
	} else {
		logging.Info().Msg("Personalization signals disabled (no SIGNALS_BASE_URL)")
	}

	var resolver *taxonomy.Resolver
	if cfg.Taxonomy.BaseURL != "" {
		resolver = taxonomy.NewResolver(&cfg.Taxonomy, logger)
		logging.Info().Str("base_url", cfg.Taxonomy.BaseURL).Msg("Taxonomy resolution enabled")
	} else {
		logging.Info().Msg("Taxonomy resolution disabled (raw label ids pass through)")
	}

	// === FEED ENGINE ===

	poolCache := cache.New(engineCfg.CacheTTL)
	composer := feed.NewComposer(engineCfg, archive, poolCache, logger)
	catalog := feed.DefaultCatalog(engineCfg)

	opts := []feed.AssemblerOption{
		feed.WithObserver(metrics.NewShelfObserver()),
	}
	if signalProvider != nil {
		opts = append(opts, feed.WithSignals(signalProvider))
	}
	if resolver != nil {
		opts = append(opts, feed.WithLabelResolver(resolver))
	}

	assembler, err := feed.NewAssembler(engineCfg, composer, catalog, logger, opts...)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to create feed assembler")
	}

	// === HTTP SERVER ===

	handler := api.NewHandler(assembler, logger)
	auth := api.NewAuthenticator(&cfg.Security)
	router := api.NewRouter(handler, auth, &cfg.Security)

	server := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      router.Setup(),
		ReadTimeout:  cfg.Server.Timeout,
		WriteTimeout: cfg.Server.Timeout,
		IdleTimeout:  60 * time.Second,
	}

	// === SUPERVISOR TREE ===

	tree := supervisor.NewTree(logging.NewSlogLogger(), supervisor.DefaultTreeConfig())

	tree.AddAPIService(services.NewHTTPServerService(server, 10*time.Second))
	logging.Info().Str("addr", server.Addr).Msg("HTTP server service added")

	tree.AddMaintenanceService(cache.NewJanitor(poolCache, engineCfg.CacheTTL))
	if resolver != nil {
		tree.AddMaintenanceService(resolver)
	}

	// Setup signal handling
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logging.Info().Str("signal", sig.String()).Msg("Received shutdown signal")
		cancel()
	}()

	logging.Info().Msg("Starting supervisor tree...")
	errCh := tree.ServeBackground(ctx)

	// Wait for supervisor to finish (either from signal or error)
	select {
	case <-ctx.Done():
		logging.Info().Msg("Context canceled, waiting for supervisor to finish...")
	case err := <-errCh:
		if err != nil && !errors.Is(err, context.Canceled) {
			logging.Error().Err(err).Msg("Supervisor tree error")
		}
	}

	// Wait for the error channel to close (supervisor finished)
	for err := range errCh {
		if err != nil && !errors.Is(err, context.Canceled) {
			logging.Error().Err(err).Msg("Supervisor shutdown error")
		}
	}

	// Report any services that failed to stop within timeout
	unstopped, _ := tree.UnstoppedServiceReport()
	if len(unstopped) > 0 {
		logging.Warn().Int("count", len(unstopped)).Msg("Services failed to stop within timeout")
		for _, svc := range unstopped {
			logging.Warn().Str("service", svc.Name).Msg("Service failed to stop")
		}
	}

	logging.Info().Msg("Feed server stopped gracefully")
}
