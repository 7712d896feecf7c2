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

	httpadapter "funding-pool/internal/adapter/http"
	"funding-pool/internal/adapter/postgres"
	"funding-pool/internal/adapter/usecase"
	"funding-pool/internal/config"
	"funding-pool/internal/core/domain"
	"funding-pool/internal/db"
)

// main is the entry point of the funding-pool service. It loads
// configuration, optionally runs database migrations and seeds demo
// treasury accounts, wires the escrow engine to the postgres treasury and
// starts the HTTP server. On receiving a termination signal it gracefully
// shuts down the server.
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

	if cfg.Pool.SeedDemo {
		if err = db.Seed(ctx, pool, cfg.Pool.Admin, cfg.Pool.Authority, cfg.Pool.EscrowAccount); err != nil {
			logger.Error("seed error", slog.Any("error", err))
		} else {
			logger.Info("demo treasury accounts seeded")
		}
	}

	treasury := postgres.NewTreasury(pool)
	engine := usecase.NewPoolUseCase(treasury, usecase.Options{
		Admin:         domain.Principal(cfg.Pool.Admin),
		Authority:     domain.Principal(cfg.Pool.Authority),
		EscrowAccount: domain.Principal(cfg.Pool.EscrowAccount),
		MaxCampaigns:  cfg.Pool.MaxCampaigns,
		MinRelease:    cfg.Pool.MinRelease,
		MaxRelease:    cfg.Pool.MaxRelease,
		FeeRate:       cfg.Pool.FeeRate,
	})

	handler := httpadapter.NewHandler(engine, treasury, logger)
	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.HTTP.Port),
		Handler: handler.Router(),
	}

	go func() {
		logger.Info("server listening", slog.Int("port", int(cfg.HTTP.Port)))
		if err = srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", slog.Any("error", err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	value := <-quit
	exitCode = 128 + int(value.(syscall.Signal))

	ctx, cancel = context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err = srv.Shutdown(ctx); err != nil {
		logger.Error("server shutdown error", slog.Any("error", err))
	} else {
		logger.Info("server gracefully stopped")
	}
}
