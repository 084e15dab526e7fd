package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"folio/internal/api"
	"folio/internal/cli"
	"folio/internal/config"
	"folio/internal/log"
	gsheet "folio/internal/sheets/google"
	"folio/internal/storage"
)

func main() {
	if err := run(context.Background()); err != nil {
		os.Exit(1)
	}
}

// run wires folioctl from the same configuration as the server. Errors
// from commands are printed by cobra; setup errors are printed here.
func run(ctx context.Context) error {
	cli.LoadEnvFile()

	logger := log.Discard()
	if os.Getenv("FOLIO_DEBUG") != "" {
		logger = log.New(log.Config{Level: slog.LevelDebug, Component: log.ComponentCLI, Output: os.Stderr})
	}

	app, cleanup, err := newApp(ctx, logger)
	if err != nil {
		fmt.Fprintln(os.Stderr, "folioctl:", err)
		return err
	}
	defer cleanup()

	return cli.NewRootCmd(app).ExecuteContext(ctx)
}

func newApp(ctx context.Context, logger *log.Logger) (*cli.App, func(), error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}

	repo, err := storage.NewSQLiteRepository(cfg.SQLiteDBPath)
	if err != nil {
		return nil, nil, err
	}
	cleanup := func() { _ = repo.Close() }

	client, err := api.New(cfg.APIBaseURL, api.WithTimeout(cfg.HTTPTimeout), api.WithLogger(logger))
	if err != nil {
		cleanup()
		return nil, nil, err
	}

	app := &cli.App{
		API:        client,
		Tokens:     repo,
		SessionKey: cfg.CLISessionKey,
		Logger:     logger,
		Activity:   repo,
	}

	if cfg.ExportEnabled() {
		exporter, err := gsheet.New(ctx, gsheet.Config{
			SpreadsheetID:   cfg.GoogleSpreadsheetID,
			SheetName:       cfg.GoogleSheetName,
			CredentialsFile: cfg.GoogleCredentialsFile,
		}, logger)
		if err != nil {
			cleanup()
			return nil, nil, fmt.Errorf("google sheets: %w", err)
		}
		app.Exporter = exporter
	}
	return app, cleanup, nil
}
