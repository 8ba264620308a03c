package main

import (
	"context"
	"os"

	"budget/internal/cli"
	"budget/internal/core"
	"budget/internal/log"
	"budget/internal/services"
	"budget/internal/shell"
)

func main() {
	cli.LoadEnvFile()
	cfg := cli.LoadAndValidateConfig(log.New(log.DefaultConfig()))
	logger := cli.SetupLogger(cfg)

	ctx := log.WithContext(context.Background(), logger)

	adapters := cli.OpenAdapters(ctx, logger, cfg)
	cli.ExitOnSignal(logger, func() { adapters.Close(logger) })

	ledger := core.NewLedger(cfg.BudgetLimit())
	saver := services.NewSaveService(adapters.Mirrors, adapters.Notifier, cfg.MirrorTimeout)

	logger.Info("Starting budget shell",
		log.FieldOperation, log.OpStartup,
		log.FieldPath, cfg.CSVPath,
		log.FieldLimit, ledger.BudgetLimit().String(),
		"mirrors", len(adapters.Mirrors))

	err := shell.New(os.Stdin, os.Stdout, ledger, saver, cfg.CSVPath).Run(ctx)
	adapters.Close(logger)
	if err != nil {
		logger.Error("Shell stopped", log.FieldError, err)
		os.Exit(1)
	}
}
