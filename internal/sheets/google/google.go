package google

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"

	"folio/internal/core"
	"folio/internal/log"
	ports "folio/internal/sheets"

	goption "google.golang.org/api/option"
	gsheet "google.golang.org/api/sheets/v4"
)

type Client struct {
	svc           *gsheet.Service
	spreadsheetID string
	// Base tab name; each month gets its own "<base> YYYY-MM" tab.
	sheetBase string
	logger    *log.Logger
}

var _ ports.MonthExporter = (*Client)(nil)

type Config struct {
	SpreadsheetID   string
	SheetName       string
	CredentialsFile string
}

// New creates a Sheets client authenticated with a service account file.
func New(ctx context.Context, cfg Config, logger *log.Logger) (*Client, error) {
	if strings.TrimSpace(cfg.SpreadsheetID) == "" {
		return nil, errors.New("missing spreadsheet id")
	}
	if cfg.CredentialsFile == "" {
		return nil, errors.New("missing service account credentials file")
	}
	base := strings.TrimSpace(cfg.SheetName)
	if base == "" {
		base = "Months"
	}

	logger = logger.WithComponent(log.ComponentSheets)
	logger.InfoContext(ctx, "Creating Google Sheets service", "credentials_file", cfg.CredentialsFile)

	svc, err := gsheet.NewService(ctx,
		goption.WithCredentialsFile(cfg.CredentialsFile),
		goption.WithScopes(gsheet.SpreadsheetsScope))
	if err != nil {
		return nil, fmt.Errorf("create sheets service: %w", err)
	}

	return &Client{
		svc:           svc,
		spreadsheetID: cfg.SpreadsheetID,
		sheetBase:     base,
		logger:        logger,
	}, nil
}

// ExportMonth replaces the month's tab with a summary, the bill list and
// the category breakdown. Exporting the same month twice overwrites it.
func (c *Client) ExportMonth(ctx context.Context, m core.FinancialMonth) (string, error) {
	if c.svc == nil {
		return "", errors.New("sheets service not initialized")
	}
	title := monthSheetName(c.sheetBase, m.Year, m.Month)

	if err := c.ensureSheet(ctx, title); err != nil {
		return "", err
	}

	rng := quoteSheet(title)
	if _, err := c.svc.Spreadsheets.Values.Clear(c.spreadsheetID, rng, &gsheet.ClearValuesRequest{}).
		Context(ctx).Do(); err != nil {
		return "", fmt.Errorf("clear sheet %s: %w", title, err)
	}

	rows := monthRows(m)
	vr := &gsheet.ValueRange{Values: rows}
	if _, err := c.svc.Spreadsheets.Values.Update(c.spreadsheetID, rng+"!A1", vr).
		ValueInputOption("USER_ENTERED").Context(ctx).Do(); err != nil {
		return "", fmt.Errorf("write sheet %s: %w", title, err)
	}

	ref := fmt.Sprintf("%s!A1:D%d", rng, len(rows))
	c.logger.InfoContext(ctx, "Exported month",
		log.FieldMonthID, m.ID,
		log.FieldYear, m.Year,
		log.FieldMonth, m.Month,
		"rows", len(rows))
	return ref, nil
}

// ensureSheet adds the tab when the spreadsheet does not have it yet.
func (c *Client) ensureSheet(ctx context.Context, title string) error {
	ss, err := c.svc.Spreadsheets.Get(c.spreadsheetID).Fields("sheets.properties.title").Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("read spreadsheet: %w", err)
	}
	titles := make([]string, 0, len(ss.Sheets))
	for _, s := range ss.Sheets {
		if s.Properties != nil {
			titles = append(titles, s.Properties.Title)
		}
	}
	if slices.Contains(titles, title) {
		return nil
	}

	req := &gsheet.BatchUpdateSpreadsheetRequest{
		Requests: []*gsheet.Request{{
			AddSheet: &gsheet.AddSheetRequest{
				Properties: &gsheet.SheetProperties{Title: title},
			},
		}},
	}
	if _, err := c.svc.Spreadsheets.BatchUpdate(c.spreadsheetID, req).Context(ctx).Do(); err != nil {
		return fmt.Errorf("add sheet %s: %w", title, err)
	}
	c.logger.InfoContext(ctx, "Created sheet", "title", title)
	return nil
}
