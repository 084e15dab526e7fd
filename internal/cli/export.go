package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"folio/internal/sheets"
	"folio/internal/sheets/memory"
)

var (
	errExportDisabled   = errors.New("spreadsheet export is not configured: set GOOGLE_SPREADSHEET_ID and GOOGLE_CREDENTIALS_FILE")
	errActivityDisabled = errors.New("no local activity database")
)

func newExportCmd(app *App) *cobra.Command {
	var dryRun bool
	cmd := &cobra.Command{
		Use:   "export <month-id>",
		Short: "Write a month and its breakdown to Google Sheets",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			var exporter sheets.MonthExporter = app.Exporter
			if dryRun {
				exporter = memory.New()
			}
			if exporter == nil {
				return errExportDisabled
			}

			m, err := app.client.Month(cmd.Context(), id)
			if err != nil {
				return err
			}
			ref, err := exporter.ExportMonth(cmd.Context(), m)
			if err != nil {
				return fmt.Errorf("export month %d: %w", id, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Exported %s %d to %s\n", m.Month, m.Year, ref)
			return nil
		},
	}
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "export to memory instead of the spreadsheet")
	return cmd
}

func newActivityCmd(app *App) *cobra.Command {
	var (
		all   bool
		limit int
	)
	cmd := &cobra.Command{
		Use:   "activity",
		Short: "Show recent changes recorded by folio-worker",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if app.Activity == nil {
				return errActivityDisabled
			}
			userID := ""
			if !all {
				if err := app.requireLogin(); err != nil {
					return err
				}
				u := app.store.User()
				if u == nil || u.ID == "" {
					return errors.New("stored token carries no user id")
				}
				userID = u.ID
			}
			entries, err := app.Activity.RecentActivity(cmd.Context(), userID, limit)
			if err != nil {
				return err
			}
			renderActivity(cmd.OutOrStdout(), entries)
			return nil
		},
	}
	cmd.Flags().BoolVar(&all, "all", false, "include every user")
	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "number of entries")
	return cmd
}
