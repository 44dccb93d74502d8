package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"

	"github.com/tamilstream/tamilstream/internal/api"
	"github.com/tamilstream/tamilstream/internal/cache"
	"github.com/tamilstream/tamilstream/internal/config"
	"github.com/tamilstream/tamilstream/internal/metrics"
	"github.com/tamilstream/tamilstream/internal/models"
	"github.com/tamilstream/tamilstream/internal/pipeline"
	"github.com/tamilstream/tamilstream/internal/provider"
	"github.com/tamilstream/tamilstream/internal/providers/tamilmv"
	"github.com/tamilstream/tamilstream/internal/providers/tamilyogi"
	"github.com/tamilstream/tamilstream/internal/scrape"
	"github.com/tamilstream/tamilstream/internal/store"
	"github.com/tamilstream/tamilstream/internal/tmdb"
)

func main() {
	cfg := config.GetConfig()
	logger := config.GetLogger()

	if cfg.SentryDSN != "" {
		if err := sentry.Init(sentry.ClientOptions{Dsn: cfg.SentryDSN}); err != nil {
			logger.Warn().Err(err).Msg("Failed to initialize Sentry, continuing without error reporting")
		} else {
			defer sentry.Flush(2 * time.Second)
		}
	}

	// Catalog response cache
	cacheTTL := 6 * time.Hour
	if parsed, err := time.ParseDuration(cfg.Cache.TTL); err == nil {
		cacheTTL = parsed
	}
	responseCache, err := cache.New(cfg.Cache.Provider, cache.Options{
		Size:          cfg.Cache.Size,
		TTL:           cacheTTL,
		RedisAddress:  cfg.Cache.RedisAddress,
		RedisPassword: cfg.Cache.RedisPassword,
		RedisDB:       cfg.Cache.RedisDB,
		Group:         "tmdb",
	})
	if err != nil {
		logger.Fatal().Err(err).Str("provider", cfg.Cache.Provider).Msg("Failed to create cache")
	}
	defer responseCache.Close()

	catalog := tmdb.NewHTTPClient(cfg, nil, responseCache)

	// Provider registry: one bad provider never aborts startup.
	registry := provider.NewRegistry()
	scrapeClient := scrape.NewClient(cfg)
	for _, p := range []provider.Provider{
		tamilmv.New(cfg, scrapeClient),
		tamilyogi.New(cfg, scrapeClient),
	} {
		if err := registry.Register(p); err != nil {
			logger.Warn().Err(err).Msg("Provider registration failed, continuing")
			sentry.CaptureException(err)
		}
	}
	aggregator := provider.NewAggregator(registry)

	contentPipeline := pipeline.New(catalog, store.NopStore{}, pipeline.Options{
		GateMatches:    cfg.Pipeline.GateMatches,
		IsDubbedSource: dubbedSourceCheck(registry),
	})

	// Periodic provider health checks
	healthInterval := 10 * time.Minute
	if parsed, err := time.ParseDuration(cfg.HealthCheckInterval); err == nil {
		healthInterval = parsed
	}
	healthCtx, stopHealth := context.WithCancel(context.Background())
	defer stopHealth()
	go func() {
		ticker := time.NewTicker(healthInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				registry.RunHealthCheck(healthCtx)
			case <-healthCtx.Done():
				return
			}
		}
	}()

	// Prometheus metrics HTTP server
	if cfg.Metrics.Enabled {
		metricsServer := metrics.NewHTTPServer(cfg.Server.Address, cfg.Metrics.Port)
		go func() {
			logger.Info().Str("address", metricsServer.Addr).Msg("Starting Prometheus metrics HTTP server")
			if err := metricsServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				logger.Fatal().Err(err).Msg("Failed to serve metrics")
			}
		}()
		defer func() {
			if err := metricsServer.Shutdown(context.Background()); err != nil {
				logger.Error().Err(err).Msg("Failed to shutdown metrics server")
			}
		}()
	}

	apiServer := api.NewServer(cfg, aggregator, contentPipeline)

	// Handle graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		sig := <-sigChan
		logger.Info().Str("signal", sig.String()).Msg("Received shutdown signal")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := apiServer.Shutdown(shutdownCtx); err != nil {
			logger.Error().Err(err).Msg("Failed to shutdown API server")
		}
	}()

	logger.Info().Str("address", apiServer.Addr).Msg("Starting API server")
	if err := apiServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		sentry.CaptureException(err)
		logger.Fatal().Err(err).Msg("Failed to serve API")
	}

	logger.Info().Msg("Server stopped gracefully")
}

// dubbedSourceCheck reports whether a registered provider serves only the
// TamilDubbed variant.
func dubbedSourceCheck(registry *provider.Registry) func(string) bool {
	return func(providerID string) bool {
		descriptor, ok := registry.Descriptor(providerID)
		if !ok {
			return false
		}
		for _, language := range descriptor.Languages {
			if language != models.LanguageTamilDubbed {
				return false
			}
		}
		return len(descriptor.Languages) > 0
	}
}
