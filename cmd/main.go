package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/chartkeep/chartkeep/internal/cache"
	cachemem "github.com/chartkeep/chartkeep/internal/cache/memory"
	cacheredis "github.com/chartkeep/chartkeep/internal/cache/redis"
	"github.com/chartkeep/chartkeep/internal/chart"
	"github.com/chartkeep/chartkeep/internal/config"
	"github.com/chartkeep/chartkeep/internal/httpapi"
	"github.com/chartkeep/chartkeep/internal/remote"
	remotemem "github.com/chartkeep/chartkeep/internal/remote/memory"
	"github.com/chartkeep/chartkeep/internal/remote/postgres"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// .env is a dev convenience; absence is fine.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "err", err)
		os.Exit(1)
	}

	logger := buildLogger(cfg.App)
	slog.SetDefault(logger)

	var readyChecks []httpapi.ReadyChecker

	// Snapshot cache: redis when configured, in-process otherwise.
	var snaps cache.Cache
	if cfg.Redis.URL != "" {
		rc, err := cacheredis.New(ctx, cacheredis.Options{
			URL:          cfg.Redis.URL,
			DialTimeout:  cfg.Redis.DialTimeout,
			ReadTimeout:  cfg.Redis.ReadTimeout,
			WriteTimeout: cfg.Redis.WriteTimeout,
		})
		if err != nil {
			logger.Error("failed to connect to redis", "err", err)
			os.Exit(1)
		}
		defer func() { _ = rc.Close() }()
		snaps = rc
		readyChecks = append(readyChecks, rc)
		logger.Info("snapshot cache: redis")
	} else {
		snaps = cachemem.New()
		logger.Info("snapshot cache: memory")
	}

	// Remote store: postgres when configured, in-memory dev store otherwise.
	var rs remote.Store
	if cfg.DB.URL != "" {
		pg, err := postgres.Open(ctx, cfg.DB.URL, cfg.App.CompanyID)
		if err != nil {
			logger.Error("failed to connect to postgres", "err", err)
			os.Exit(1)
		}
		defer pg.Close()
		rs = pg
		readyChecks = append(readyChecks, pg)
		logger.Info("remote store: postgres", "company_id", cfg.App.CompanyID)
	} else {
		rs = remotemem.New()
		logger.Info("remote store: memory")
	}

	store := chart.New(chart.Config{
		Cache:         snaps,
		Remote:        rs,
		Logger:        logger,
		RemoteTimeout: cfg.Remote.Timeout,
	})
	store.Init(ctx)
	defer store.Close()

	token := store.AddListener(func() {
		logger.Debug("chart changed", "accounts", len(store.AccountsFlat()))
	})
	defer store.RemoveListener(token)

	srv := &http.Server{
		Addr:              ":" + cfg.App.Port,
		Handler:           httpapi.New(store, logger, readyChecks...).Handler(),
		ReadTimeout:       5 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      10 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("chartkeep service listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		ctxShutdown, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(ctxShutdown); err != nil {
			logger.Error("server shutdown error", "err", err)
		}
	case err := <-errCh:
		logger.Error("server error", "err", err)
	}
}

// parseLogLevel maps config values to slog.Leveler.
func parseLogLevel(s string) slog.Leveler {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error", "err":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func buildLogger(app config.AppConfig) *slog.Logger {
	level := parseLogLevel(app.LogLevel)
	if strings.ToLower(strings.TrimSpace(app.LogFormat)) == "text" {
		return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
	}
	// default to JSON
	return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
}
