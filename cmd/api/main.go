package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gamedayhq/gameday/internal/app"
	"github.com/gamedayhq/gameday/internal/config"
	"github.com/gamedayhq/gameday/internal/observability"
	"github.com/gamedayhq/gameday/internal/platform/logging"
)

const warmOnStartTimeout = 2 * time.Minute

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	logger := logging.NewJSON(cfg.LogLevel)
	logging.SetDefault(logger)
	defer func() { _ = logger.Sync() }()

	edgeLogger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slogLevel(cfg.LogLevel),
	}))
	slog.SetDefault(edgeLogger)

	shutdownUptrace, err := observability.InitUptrace(cfg, logger)
	if err != nil {
		logger.Error("init uptrace", "error", err)
		os.Exit(1)
	}

	stopPyroscope, err := observability.InitPyroscope(cfg, edgeLogger)
	if err != nil {
		logger.Error("init pyroscope", "error", err)
		os.Exit(1)
	}

	stopDebug := observability.StartDebugServer(cfg, edgeLogger)

	srv, services, cleanup, err := app.NewHTTPServer(cfg, logger, edgeLogger)
	if err != nil {
		logger.Error("build app", "error", err)
		os.Exit(1)
	}

	if cfg.WarmOnStart {
		go warmCaches(services, logger)
	}

	go func() {
		logger.Info("http server starting", "addr", cfg.HTTPAddr, "store", cfg.StoreBackend)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server failed", "error", err)
			os.Exit(1)
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", "error", err)
	}

	if err := stopDebug(shutdownCtx); err != nil {
		logger.Error("stop pprof server", "error", err)
	}
	if stopPyroscope != nil {
		if err := stopPyroscope(); err != nil {
			logger.Error("stop pyroscope", "error", err)
		}
	}
	if shutdownUptrace != nil {
		if err := shutdownUptrace(shutdownCtx); err != nil {
			logger.Error("shutdown uptrace", "error", err)
		}
	}
	if err := cleanup(); err != nil {
		logger.Error("close store", "error", err)
	}

	logger.Info("http server stopped")
}

func warmCaches(services *app.Services, logger *logging.Logger) {
	ctx, cancel := context.WithTimeout(context.Background(), warmOnStartTimeout)
	defer cancel()

	results, err := services.Games.WarmAll(ctx)
	if err != nil {
		logger.Warn("warm on start failed", "error", err)
		return
	}
	for _, res := range results {
		if res.Error != "" {
			logger.Warn("warm on start: sport failed", "sport", string(res.Sport), "error", res.Error)
			continue
		}
		logger.Info("warm on start: sport ready", "sport", string(res.Sport), "games", res.Games)
	}
}

func slogLevel(level logging.Level) slog.Level {
	switch {
	case level <= logging.LevelDebug:
		return slog.LevelDebug
	case level == logging.LevelInfo:
		return slog.LevelInfo
	case level == logging.LevelWarn:
		return slog.LevelWarn
	default:
		return slog.LevelError
	}
}
