package main

import (
	"context"
	"net/http"
	"os"
	"time"

	"github.com/Claipousse/LedgerOne/internal/backend"
	"github.com/Claipousse/LedgerOne/internal/cli"
	apphttp "github.com/Claipousse/LedgerOne/internal/http"
	"github.com/Claipousse/LedgerOne/internal/log"
	"github.com/Claipousse/LedgerOne/internal/services"
)

func main() {
	cli.LoadEnvFile()

	logger := cli.SetupLogger(log.ComponentHTTP, os.Getenv("LOG_LEVEL"))
	cfg := cli.LoadAndValidateConfig(logger)

	backendCfg, err := backend.FromAppConfig(cfg)
	if err != nil {
		logger.Error("Invalid backend configuration", log.FieldError, err)
		os.Exit(1)
	}

	factory := backend.NewFactory(logger.Logger)
	result, err := factory.CreateBackend(context.Background(), backendCfg)
	if err != nil {
		logger.Error("Failed to initialize backend", log.FieldError, err, "backend", cfg.DataBackend)
		os.Exit(1)
	}

	// A nil *amqp.Client must stay a nil interface so services skip publishing.
	var publisher services.MonthChangedPublisher
	if result.AMQP != nil {
		publisher = result.AMQP
	}

	insights := services.NewInsightsService(result.Store)
	deps := apphttp.Services{
		Transactions: services.NewTransactionService(result.Store, publisher),
		Categories:   services.NewCategoryService(result.Store, publisher),
		Settings:     services.NewSettingsService(result.Store, publisher),
		Insights:     insights,
		Alerts:       services.NewAlertService(result.Store, insights),
		Importer:     services.NewImportService(result.Store, publisher),
	}

	srv := apphttp.NewServer(":"+cfg.Port, deps)

	// Configure server timeouts and limits
	srv.ReadTimeout = 10 * time.Second
	srv.WriteTimeout = 10 * time.Second
	srv.IdleTimeout = 60 * time.Second
	srv.MaxHeaderBytes = 1 << 16 // 64KB

	ctx, done := cli.GracefulShutdown(logger, 30*time.Second, func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("Server shutdown error", log.FieldError, err)
		}
		if result.Cleanup != nil {
			if err := result.Cleanup(); err != nil {
				logger.Error("Backend cleanup error", log.FieldError, err)
			}
		}
	})

	logger.Info("Starting ledgerone server", "port", cfg.Port, "backend", cfg.DataBackend)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error("Server error", log.FieldError, err, "port", cfg.Port)
		os.Exit(1)
	}

	cli.WaitForShutdown(ctx, done)
	logger.Info("Server stopped gracefully")
}
