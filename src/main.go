package main

// Weather service stand-in for developing and demoing weather-cli.
// Configuration comes from the environment, as for the service it replaces:
// PORT, JWT_SECRET, WEATHER_API_KEY and WEATHER_API_URL.

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/apimgr/weather-cli/src/fakeapi"
)

const (
	// shutdownTimeout bounds graceful shutdown
	shutdownTimeout = 5 * time.Second
	// authRateLimit is the login and register budget per client IP per minute
	authRateLimit = 30
)

func main() {
	level := new(slog.LevelVar)
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})).
		With("app", "weather-fakeapi")

	addr := fakeapi.DefaultAddr
	if port := os.Getenv("PORT"); port != "" {
		addr = ":" + port
	}

	cfg := fakeapi.Config{
		Secret:        []byte(os.Getenv("JWT_SECRET")),
		Logger:        logger,
		AuthRateLimit: authRateLimit,
	}
	if len(cfg.Secret) == 0 {
		logger.Warn("JWT_SECRET not set, tokens will not survive a restart")
	}
	if key := os.Getenv("WEATHER_API_KEY"); key != "" {
		cfg.Provider = fakeapi.NewOpenWeatherMap(key, os.Getenv("WEATHER_API_URL"))
	} else {
		logger.Warn("WEATHER_API_KEY not set, serving sample data")
	}

	srv := &http.Server{
		Addr:           addr,
		Handler:        fakeapi.New(cfg).Handler(),
		ReadTimeout:    30 * time.Second,
		WriteTimeout:   30 * time.Second,
		IdleTimeout:    120 * time.Second,
		MaxHeaderBytes: 1 << 20,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("failed to start server", "error", err)
			os.Exit(1)
		}
	}()
	logger.Info("listening", "addr", addr, "version", GetVersionString())

	sigChan := make(chan os.Signal, 1)
	baseSignals := []os.Signal{syscall.SIGTERM, syscall.SIGINT}
	allSignals := make([]os.Signal, 0, len(baseSignals)+len(platformSignals))
	allSignals = append(allSignals, baseSignals...)
	for _, sig := range platformSignals {
		allSignals = append(allSignals, sig)
	}
	signal.Notify(sigChan, allSignals...)

	for sig := range sigChan {
		switch sig {
		case syscall.SIGTERM, syscall.SIGINT:
			logger.Info("received shutdown signal, shutting down gracefully")

			ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			if err := srv.Shutdown(ctx); err != nil {
				logger.Error("server forced to shutdown", "error", err)
			}
			cancel()

			logger.Info("server exited gracefully")
			return

		default:
			handlePlatformSignal(sig, level, logger)
		}
	}
}
