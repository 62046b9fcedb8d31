package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/rs/zerolog"

	"github.com/FNXDOOM/AniMind/internal/config"
	"github.com/FNXDOOM/AniMind/internal/metrics"
	"github.com/FNXDOOM/AniMind/internal/prefs"
	"github.com/FNXDOOM/AniMind/internal/progress"
	"github.com/FNXDOOM/AniMind/internal/server"
	"github.com/FNXDOOM/AniMind/internal/store"
	"github.com/FNXDOOM/AniMind/internal/subtitles"
)

const shutdownTimeout = 10 * time.Second

// storeLogger adapts zerolog to the store error reporting interface.
type storeLogger struct {
	logger zerolog.Logger
}

func (l storeLogger) Error(msg string, err error) {
	l.logger.Error().Err(err).Msg(msg)
}

func main() {
	cfg := config.GetConfig()
	logger := config.GetLogger()

	logger.Info().
		Str("store_provider", cfg.Store.Provider).
		Int("server_port", cfg.Server.Port).
		Str("server_address", cfg.Server.Address).
		Int("track_count", len(cfg.Subtitles.Tracks)).
		Msg("Application started with configuration")

	// Error reporting is optional; without a DSN failures are log-only.
	var reporter progress.Reporter
	if cfg.SentryDSN != "" {
		if err := sentry.Init(sentry.ClientOptions{Dsn: cfg.SentryDSN}); err != nil {
			logger.Warn().Err(err).Msg("Sentry init failed, continuing without error reporting")
		} else {
			defer sentry.Flush(2 * time.Second)
			reporter = func(err error) {
				sentry.CaptureException(err)
			}
		}
	}

	storeTTL := config.ParseDuration(cfg.Store.TTL, 0)
	newStore := func(group, namespace string) store.Store {
		s, err := store.New(cfg.Store.Provider, store.ProviderConfig{
			Size:          cfg.Store.Size,
			TTL:           storeTTL,
			Logger:        storeLogger{logger: logger},
			RedisAddress:  cfg.Store.RedisAddress,
			RedisPassword: cfg.Store.RedisPassword,
			RedisDB:       cfg.Store.RedisDB,
			Namespace:     namespace,
			Group:         group,
		})
		if err != nil {
			logger.Fatal().Err(err).Str("provider", cfg.Store.Provider).Msg("Failed to create store")
		}
		return s
	}

	progressStore := newStore("progress", "animind:progress")
	defer progressStore.Close()
	prefsStore := newStore("prefs", "animind:prefs")
	defer prefsStore.Close()

	records := progress.NewRecords(progressStore, logger, reporter)
	preferences := prefs.New(prefsStore, logger)

	// Load the configured subtitle track set up front; unavailable sources
	// are skipped so the service still comes up with partial coverage.
	fetcher := subtitles.NewFetcher(config.ParseDuration(cfg.Subtitles.ClientTimeout, 30*time.Second), logger)
	loadCtx, cancelLoad := context.WithTimeout(context.Background(), time.Minute)
	tracks := fetcher.LoadAll(loadCtx, cfg.Subtitles.Tracks)
	cancelLoad()
	logger.Info().Int("loaded", len(tracks)).Int("configured", len(cfg.Subtitles.Tracks)).Msg("Subtitle tracks loaded")

	library := subtitles.NewLibrary(
		tracks,
		cfg.Subtitles.CacheSize,
		config.ParseDuration(cfg.Subtitles.CacheTTL, time.Hour),
		logger,
	)

	handler := server.NewHandler(library, records, preferences, logger)

	// Start Prometheus metrics HTTP server
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

	address := fmt.Sprintf("%s:%d", cfg.Server.Address, cfg.Server.Port)
	srv := &http.Server{Addr: address, Handler: handler.Router()}

	go func() {
		logger.Info().Str("address", address).Msg("Starting HTTP server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("Failed to serve HTTP")
		}
	}()

	// Handle graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	sig := <-sigChan
	logger.Info().Str("signal", sig.String()).Msg("Received shutdown signal")

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error().Err(err).Msg("Failed to shutdown HTTP server")
	}

	logger.Info().Msg("Server stopped gracefully")
}
