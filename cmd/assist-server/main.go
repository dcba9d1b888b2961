// cmd/assist-server/main.go
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"assist-server/internal/assist"
	"assist-server/internal/clients/forecast"
	"assist-server/internal/clients/geocode"
	"assist-server/internal/clients/search"
	"assist-server/internal/common/cache"
	"assist-server/internal/common/config"
	"assist-server/internal/common/logger"
	"assist-server/internal/common/observability"
	"assist-server/internal/server"
)

// retryWithBackoff attempts to execute a function with exponential backoff
func retryWithBackoff(operation func() error, maxRetries int, initialDelay time.Duration, log *zap.Logger, operationName string) error {
	var err error
	delay := initialDelay

	for i := 0; i < maxRetries; i++ {
		err = operation()
		if err == nil {
			return nil
		}

		if i < maxRetries-1 {
			log.Warn(fmt.Sprintf("%s failed, retrying...", operationName),
				zap.Error(err),
				zap.Int("attempt", i+1),
				zap.Int("maxRetries", maxRetries),
				zap.Duration("nextRetryIn", delay),
			)
			time.Sleep(delay)
			delay *= 2 // Exponential backoff
		}
	}

	return fmt.Errorf("%s failed after %d attempts: %w", operationName, maxRetries, err)
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config load failed: %v\n", err)
		os.Exit(1)
	}

	zapLog := logger.New(cfg.Logging.Level, cfg.Logging.Format)
	defer zapLog.Sync()

	// Wrap zap logger with our logger interface
	log := logger.NewZapAdapter(zapLog)

	zapLog.Info("Starting assist server...",
		zap.String("environment", cfg.App.Environment),
		zap.Int("port", cfg.Server.Port),
	)

	obs := observability.New(cfg.App.Name)
	defer obs.Shutdown()

	ctx := context.Background()

	// --- Optional geocode cache ---
	var geocodeCache *cache.RedisCache
	if cfg.Cache.Enabled {
		err = retryWithBackoff(func() error {
			var err error
			geocodeCache, err = cache.NewRedis(cfg.Cache)
			if err != nil {
				return err
			}
			return geocodeCache.Ping(ctx)
		}, 5, 2*time.Second, zapLog, "Redis connection")

		if err != nil {
			// Degrade to uncached lookups rather than refusing to start.
			zapLog.Warn("redis unavailable, geocode cache disabled", zap.Error(err))
			geocodeCache = nil
		} else {
			defer geocodeCache.Close()
			zapLog.Info("Redis geocode cache connected")
		}
	}

	// --- Collaborator clients ---
	geocoder := geocode.NewClient(&geocode.Config{
		BaseURL: cfg.Weather.GeocodeBaseURL,
		Timeout: time.Duration(cfg.Weather.GeocodeTimeout) * time.Millisecond,
	}, geocodeCache, log)

	forecaster := forecast.NewClient(&forecast.Config{
		BaseURL: cfg.Weather.ForecastBaseURL,
		Timeout: time.Duration(cfg.Weather.ForecastTimeout) * time.Millisecond,
	}, log)

	searcher := search.NewClient(&search.Config{
		BaseURL:    cfg.Search.BaseURL,
		Key:        cfg.Search.Key,
		MaxResults: cfg.Search.MaxResults,
		Freshness:  cfg.Search.Freshness,
		Timeout:    time.Duration(cfg.Search.Timeout) * time.Millisecond,
	}, log)

	service := assist.NewService(&assist.Config{
		SourceURL: cfg.Weather.SourceURL,
	}, geocoder, forecaster, searcher, obs, log)

	srv := server.New(cfg, service, log)
	httpServer := srv.HTTPServer()

	go func() {
		zapLog.Info("HTTP server listening", zap.String("addr", httpServer.Addr))
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			zapLog.Fatal("http server failed", zap.Error(err))
		}
	}()

	// --- Graceful shutdown ---
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	zapLog.Info("Shutting down...")
	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		zapLog.Error("shutdown error", zap.Error(err))
	}
	zapLog.Info("Server stopped")
}
