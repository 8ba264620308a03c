// Package cli provides the initialization steps of the budget command.
package cli

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"budget/internal/amqp"
	"budget/internal/config"
	"budget/internal/log"
	"budget/internal/services"
	"budget/internal/sheets"
	"budget/internal/sheets/google"
	"budget/internal/storage"
)

// SetupLogger builds the application logger from cfg and makes it the slog
// default. An invalid level falls back to warn.
func SetupLogger(cfg *config.Config) *log.Logger {
	logCfg := log.DefaultConfig()
	if level, err := log.ParseLevel(cfg.LogLevel); err == nil {
		logCfg.Level = level
	}
	logger := log.New(logCfg)
	log.SetDefault(logger)
	return logger
}

// LoadEnvFile loads the .env file for local development.
// Errors are ignored silently as the file is optional.
func LoadEnvFile() {
	_ = godotenv.Load()
}

// LoadAndValidateConfig loads configuration and validates it.
// Returns the config or exits the process on validation failure.
func LoadAndValidateConfig(logger *log.Logger) *config.Config {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logger.Error("Configuration validation failed", log.FieldError, err)
		os.Exit(1)
	}
	return cfg
}

// Adapters holds the optional outbound adapters opened for a session.
type Adapters struct {
	Mirrors  []sheets.Mirror
	Notifier services.Notifier
	closers  []func() error
}

// OpenAdapters connects every adapter enabled in cfg. An adapter that fails
// to start is logged and left out; the ledger file still works without it.
func OpenAdapters(ctx context.Context, logger *log.Logger, cfg *config.Config) *Adapters {
	a := &Adapters{}

	if cfg.SQLiteEnabled() {
		repo, err := storage.NewSQLiteRepository(cfg.SQLiteDBPath)
		if err != nil {
			logger.WithComponent(log.ComponentStorage).Warn("SQLite mirror disabled",
				log.FieldError, err, log.FieldPath, cfg.SQLiteDBPath)
		} else {
			a.Mirrors = append(a.Mirrors, repo)
			a.closers = append(a.closers, repo.Close)
		}
	}

	if cfg.SheetsEnabled() {
		client, err := google.New(ctx, google.Config{
			SpreadsheetID:   cfg.GoogleSpreadsheetID,
			SheetName:       cfg.GoogleSheetName,
			CredentialsJSON: cfg.GoogleServiceAccountJSON,
			CredentialsFile: cfg.GoogleServiceAccountFile,
		})
		if err != nil {
			logger.WithComponent(log.ComponentSheets).Warn("Google Sheets mirror disabled", log.FieldError, err)
		} else {
			a.Mirrors = append(a.Mirrors, client)
		}
	}

	if cfg.AMQPEnabled() {
		client, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
		if err != nil {
			logger.WithComponent(log.ComponentAMQP).Warn("Save notifications disabled", log.FieldError, err)
		} else {
			a.Notifier = client
			a.closers = append(a.closers, client.Close)
		}
	}

	return a
}

// Close releases every opened adapter, logging failures.
func (a *Adapters) Close(logger *log.Logger) {
	for _, c := range a.closers {
		if err := c(); err != nil {
			logger.Warn("Failed to close adapter", log.FieldOperation, log.OpShutdown, log.FieldError, err)
		}
	}
	a.closers = nil
}

// ExitOnSignal closes the adapters and exits when SIGINT or SIGTERM arrives.
// The shell blocks on stdin, so the signal cannot be delivered through a
// context alone.
func ExitOnSignal(logger *log.Logger, cleanup func()) {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigChan
		logger.Info("Shutdown signal received", "signal", sig.String())
		if cleanup != nil {
			cleanup()
		}
		os.Exit(130)
	}()
}
