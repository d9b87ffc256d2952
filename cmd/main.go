package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	httpadapter "ad-rotator/internal/adapter/http"

	"ad-rotator/internal/adapter/corpus"
	"ad-rotator/internal/adapter/postgres"
	"ad-rotator/internal/adapter/snapchat"
	"ad-rotator/internal/adapter/usecase"
	"ad-rotator/internal/config"
	"ad-rotator/internal/db"
)

// main is the entry point of the ad-rotator service. It loads configuration,
// optionally runs database migrations, initializes the outcome store and the
// rotation pipeline, then starts the sweep timer and the admin HTTP server.
// On receiving a termination signal it lets the in-flight sweep finish and
// gracefully shuts down the server.
func main() {
	exitCode := 1
	defer func() {
		if r := recover(); r != nil {
			panic(r)
		} else {
			os.Exit(exitCode)
		}
	}()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", slog.Any("error", err))
		os.Exit(1)
	}

	var logger *slog.Logger
	{
		var handler slog.Handler
		level := cfg.Log.SlogLevel()
		switch cfg.Log.SlogFormat() {
		case "json":
			handler = slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level})
		default:
			handler = slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: level})
		}
		logger = slog.New(handler)
	}

	if cfg.Psql.RunMigrations {
		if err = db.Migrate(cfg.Psql.Addr.String()); err != nil {
			logger.Error("migration error", slog.Any("error", err))
		} else {
			logger.Info("migrations applied successfully")
		}
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	pool, err := db.NewPostgresPool(ctx, cfg.Psql)
	if err != nil {
		logger.Error("database connection error", slog.Any("error", err))
		os.Exit(1)
	}
	defer pool.Close()

	store := postgres.NewOutcomeRepository(pool)
	recreated, err := store.EnsureSchema(ctx)
	if err != nil {
		logger.Error("outcome store init error", slog.Any("error", err))
		os.Exit(1)
	}
	if recreated {
		logger.Warn("outcome store was not a valid store and has been recreated empty")
	}

	client := snapchat.NewClient(cfg.Snap, logger)
	selector := usecase.NewSelector(corpus.NewFileSource(cfg.Rotation.CorpusPath), store, logger)
	filter := usecase.NewFilter(client, cfg.Snap.CreativeDefaults(), logger)
	transactor := usecase.NewTransactor(client, selector, cfg.Snap.AdAccountID, logger)
	cycle := usecase.NewCycle(client, filter, transactor, store,
		cfg.Snap.AdAccountID, cfg.Rotation.UpdatePause, logger)

	handler := httpadapter.NewHandler(cycle, store, logger)
	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.HTTP.Port),
		Handler: handler.Router(),
	}

	go func() {
		logger.Info("admin server listening", slog.Int("port", int(cfg.HTTP.Port)))
		if err = srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", slog.Any("error", err))
		}
	}()

	// The sweep schedule lives here, not in the pipeline: RunCycle is a
	// single-shot operation invoked on a fixed interval, one cycle fully
	// completing before the next begins.
	go func() {
		if cfg.Rotation.RunOnStart {
			if err := cycle.RunCycle(ctx); err != nil {
				logger.Error("cycle error", slog.Any("error", err))
			}
		}
		ticker := time.NewTicker(cfg.Rotation.CycleInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if err := cycle.RunCycle(ctx); err != nil {
					logger.Error("cycle error", slog.Any("error", err))
				}
			}
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	value := <-quit
	exitCode = 128 + int(value.(syscall.Signal))

	ctxShutdown, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelShutdown()
	if err = srv.Shutdown(ctxShutdown); err != nil {
		logger.Error("server shutdown error", slog.Any("error", err))
	} else {
		logger.Info("server gracefully stopped")
	}
}
