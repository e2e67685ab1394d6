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

	"fintrack/internal/amqp"
	"fintrack/internal/backend"
	"fintrack/internal/config"
	"fintrack/internal/export/google"
	"fintrack/internal/log"
	"fintrack/internal/worker"
)

func main() {
	// Load .env file for local development (ignore errors in production/docker)
	_ = godotenv.Load()

	cfg := config.Load()

	logger := log.New(log.Config{
		Level:     log.ParseLevel(cfg.LogLevel),
		Component: log.ComponentWorker,
	})
	log.SetDefault(logger)

	logger.Info("Starting fintrack-worker")

	if err := cfg.Validate(); err != nil {
		logger.Error("Configuration validation failed", log.FieldError, err)
		os.Exit(1)
	}

	if !cfg.SheetsExportEnabled() {
		logger.Info("Spreadsheet mirroring disabled, set GOOGLE_SPREADSHEET_ID and GOOGLE_SHEET_NAME to enable")
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	store, err := backend.Build(cfg)
	if err != nil {
		logger.Error("Failed to build storage backend", log.FieldError, err, "backend", cfg.DataBackend)
		os.Exit(1)
	}
	if store.Cleanup != nil {
		defer func() {
			if err := store.Cleanup(); err != nil {
				logger.Error("Storage cleanup failed", log.FieldError, err)
			}
		}()
	}

	appender, err := google.NewAppender(ctx, google.Config{
		SpreadsheetID:   cfg.GoogleSpreadsheetID,
		SheetName:       cfg.GoogleSheetName,
		CredentialsFile: cfg.GoogleCredentialsFile,
		CredentialsJSON: cfg.GoogleCredentialsJSON,
	})
	if err != nil {
		logger.Error("Failed to initialize Google Sheets appender", log.FieldError, err)
		os.Exit(1)
	}

	client, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
	if err != nil {
		logger.Error("Failed to initialize AMQP client", log.FieldError, err)
		os.Exit(1)
	}
	defer client.Close()

	mirror := worker.NewMirrorWorker(store.Store, appender)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return client.ConsumeRecordChanges(ctx, func(msg *amqp.RecordChangeMessage) error {
			return mirror.HandleChange(ctx, msg)
		})
	})
	g.Go(func() error {
		ticker := time.NewTicker(time.Minute)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-ticker.C:
				logger.Debug("Worker heartbeat", "queue", cfg.AMQPQueue)
			}
		}
	})

	logger.Info("Worker running",
		"queue", cfg.AMQPQueue,
		"spreadsheet_id", cfg.GoogleSpreadsheetID,
		"sheet", cfg.GoogleSheetName)

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("Worker stopped with error", log.FieldError, err)
		os.Exit(1)
	}
	logger.Info("Worker stopped gracefully")
}
