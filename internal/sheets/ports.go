package sheets

import (
	"context"

	"folio/internal/core"
)

// MonthExporter writes one budget month to an external spreadsheet and
// returns a reference to what it wrote.
type MonthExporter interface {
	ExportMonth(ctx context.Context, m core.FinancialMonth) (ref string, err error)
}
