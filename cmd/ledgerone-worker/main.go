package main

import (
	"context"
	"errors"
	"os"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/Claipousse/LedgerOne/internal/amqp"
	"github.com/Claipousse/LedgerOne/internal/backend"
	"github.com/Claipousse/LedgerOne/internal/cli"
	"github.com/Claipousse/LedgerOne/internal/log"
	"github.com/Claipousse/LedgerOne/internal/services"
	"github.com/Claipousse/LedgerOne/internal/sheets"
	gsheet "github.com/Claipousse/LedgerOne/internal/sheets/google"
	"github.com/Claipousse/LedgerOne/internal/worker"
)

func main() {
	cli.LoadEnvFile()

	logger := cli.SetupLogger(log.ComponentWorker, os.Getenv("LOG_LEVEL"))
	cfg := cli.LoadAndValidateConfig(logger)

	logger.Info("Starting ledgerone-worker")

	backendCfg, err := backend.FromAppConfig(cfg)
	if err != nil {
		logger.Error("Invalid backend configuration", log.FieldError, err)
		os.Exit(1)
	}
	// The worker only consumes; the publishing side lives in the server.
	backendCfg.AMQPURL = ""

	factory := backend.NewFactory(logger.Logger)
	result, err := factory.CreateBackend(context.Background(), backendCfg)
	if err != nil {
		logger.Error("Failed to initialize backend", log.FieldError, err, "backend", cfg.DataBackend)
		os.Exit(1)
	}
	defer func() {
		if result.Cleanup != nil {
			_ = result.Cleanup()
		}
	}()

	// Google Sheets export is optional.
	var summaryWriter sheets.SummaryWriter
	if cfg.SheetsExportEnabled() {
		client, err := gsheet.NewFromEnv(context.Background())
		if err != nil {
			logger.Error("Failed to initialize Google Sheets client", log.FieldError, err)
			os.Exit(1)
		}
		summaryWriter = client
		logger.Info("Google Sheets export enabled", "spreadsheet_id", cfg.GoogleSpreadsheetID)
	} else {
		logger.Info("Google Sheets export disabled - no GOOGLE_SPREADSHEET_ID provided")
	}

	amqpClient, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
	if err != nil {
		logger.Error("Failed to initialize AMQP client", log.FieldError, err)
		os.Exit(1)
	}
	defer amqpClient.Close()

	insights := services.NewInsightsService(result.Store)
	alerts := services.NewAlertService(result.Store, insights)
	watcher := worker.NewBudgetWatcher(alerts, insights, summaryWriter)

	ctx, done := cli.GracefulShutdown(logger, 30*time.Second, nil)

	group, groupCtx := errgroup.WithContext(ctx)

	group.Go(func() error {
		return amqpClient.ConsumeMonthChanged(groupCtx, func(msg *amqp.MonthChangedMessage) error {
			return watcher.HandleMonthChanged(groupCtx, msg)
		})
	})

	group.Go(func() error {
		watcher.RunPeriodicCheck(groupCtx, cfg.CheckInterval)
		return nil
	})

	logger.Info("Worker running",
		"queue", cfg.AMQPQueue,
		"check_interval", cfg.CheckInterval.String())

	if err := group.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("Worker stopped with error", log.FieldError, err)
		os.Exit(1)
	}

	cli.WaitForShutdown(ctx, done)
	logger.Info("Worker shutdown complete")
}
