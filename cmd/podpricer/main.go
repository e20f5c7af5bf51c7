package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"podpricer/internal/config"
	"podpricer/internal/notify"
	"podpricer/internal/pricing"
	"podpricer/internal/server"
	"podpricer/internal/storage"
	"podpricer/pkg/api"
	"podpricer/pkg/logger"
	"podpricer/pkg/redis"
)

// ENTRY POINT

func main() {
	zapLogger, err := logger.New()
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
	defer zapLogger.Sync()

	cfg, err := config.Load()
	if err != nil {
		zapLogger.Fatal("Failed to load config", zap.Error(err))
	}

	ctx, cancel := signal.NotifyContext(
		context.Background(),
		os.Interrupt,
		syscall.SIGTERM,
	)
	defer cancel()

	// Price table: file if configured, built-in defaults otherwise. An
	// incomplete table aborts startup here, never mid-quote.
	table := pricing.DefaultTable()
	if cfg.Pricing.TablePath != "" {
		table, err = pricing.LoadTable(cfg.Pricing.TablePath)
		if err != nil {
			zapLogger.Fatal("Failed to load price table", zap.Error(err))
		}
		zapLogger.Info("Loaded price table", zap.String("path", cfg.Pricing.TablePath))
	}

	engine, err := pricing.NewEngine(table, zapLogger)
	if err != nil {
		zapLogger.Fatal("Failed to init pricing engine", zap.Error(err))
	}

	redisClient := redis.New(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB, cfg.Redis.TTL)
	defer redisClient.Close()

	pgStorage, err := storage.NewPostgresStorage(ctx, cfg.Database, redisClient, zapLogger)
	if err != nil {
		zapLogger.Fatal("Failed to init PostgreSQL storage", zap.Error(err))
	}
	defer pgStorage.Close()

	if err := storage.RunMigrations(ctx, pgStorage.DB(), zapLogger); err != nil {
		zapLogger.Fatal("Failed to run migrations", zap.Error(err))
	}

	var catalogClient *api.Client
	if cfg.Catalog.BaseURL != "" {
		catalogClient = api.NewClient(cfg.Catalog.BaseURL, cfg.Catalog.APIKey, cfg.HTTP.RequestTimeout, zapLogger)
	}

	notifier, err := notify.New(cfg.Admin, zapLogger)
	if err != nil {
		zapLogger.Fatal("Failed to init notifier", zap.Error(err))
	}

	srv := server.New(engine, pgStorage, redisClient, catalogClient, notifier, cfg, zapLogger)

	if err := srv.Run(ctx); err != nil {
		zapLogger.Fatal("Server stopped with error", zap.Error(err))
	}

	zapLogger.Info("Server shutdown gracefully")
}
