package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"

	"stash/internal/amqp"
	"stash/internal/config"
	"stash/internal/export"
	exportfile "stash/internal/export/file"
	exportgoogle "stash/internal/export/google"
	applog "stash/internal/log"
	"stash/internal/storage"
	"stash/internal/worker"
)

func main() {
	// Load .env file for local development (ignore errors in production/docker)
	_ = godotenv.Load()

	// Setup structured logging
	logCfg := applog.DefaultConfig()
	logCfg.Component = applog.ComponentWorker
	logger := applog.New(logCfg)
	applog.SetDefault(logger)

	logger.Info("Starting stash-worker")

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logger.Error("Configuration validation failed", "error", err)
		os.Exit(1)
	}

	// SQLite repository holds the export queue
	repo, err := storage.NewSQLiteRepository(cfg.SQLiteDBPath)
	if err != nil {
		logger.Error("Failed to initialize SQLite repository", "error", err, "path", cfg.SQLiteDBPath)
		os.Exit(1)
	}
	defer repo.Close()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	target, err := newExportTarget(ctx, cfg)
	if err != nil {
		logger.Error("Failed to initialize export target", "error", err, "target", cfg.ExportTarget)
		os.Exit(1)
	}
	logger.Info("Export target initialized", "target", cfg.ExportTarget)

	exportWorker := worker.NewExportWorker(repo, target, cfg.ExportBatch)

	// On startup, process any pending transactions that might have been missed
	logger.Info("Performing startup export check...")
	if err := exportWorker.StartupCheck(ctx); err != nil {
		logger.Error("Failed startup export check", "error", err)
		// Don't exit - continue with normal operation
	}

	g, ctx := errgroup.WithContext(ctx)

	// Consume ledger events when an event bus is configured
	if cfg.AMQPURL != "" {
		amqpClient, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
		if err != nil {
			logger.Error("Failed to initialize AMQP client", "error", err)
			os.Exit(1)
		}
		defer amqpClient.Close()

		g.Go(func() error {
			if err := amqpClient.ConsumeEvents(ctx, exportWorker.HandleEvent); err != nil && !errors.Is(err, context.Canceled) {
				return err
			}
			return nil
		})
	} else {
		logger.Info("AMQP disabled - relying on periodic export sweep only")
	}

	// Periodic sweep catches anything the event path missed
	g.Go(func() error {
		ticker := time.NewTicker(cfg.ExportInterval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return nil
			case <-ticker.C:
				if err := exportWorker.ProcessPending(ctx); err != nil {
					logger.Error("Periodic export failed", "error", err)
				}
			}
		}
	})

	if err := g.Wait(); err != nil {
		logger.Error("Worker stopped with error", "error", err)
		os.Exit(1)
	}
	logger.Info("Worker shutdown complete")
}

func newExportTarget(ctx context.Context, cfg *config.Config) (export.TransactionAppender, error) {
	switch cfg.ExportTarget {
	case "sheets":
		return exportgoogle.NewFromEnv(ctx)
	default:
		return exportfile.New(cfg.ExportFilePath)
	}
}
