package memory

import (
	"context"
	"testing"

	"folio/internal/core"
)

func TestExporterKeepsLatestCopy(t *testing.T) {
	e := New()
	ctx := context.Background()

	ref, err := e.ExportMonth(ctx, core.FinancialMonth{ID: 2, Month: "March"})
	if err != nil || ref != "memory:2" {
		t.Fatalf("ExportMonth = %q, %v", ref, err)
	}
	e.ExportMonth(ctx, core.FinancialMonth{ID: 1, Month: "April"})
	e.ExportMonth(ctx, core.FinancialMonth{ID: 2, Month: "May"})

	got := e.Exported()
	if len(got) != 2 {
		t.Fatalf("expected 2 months, got %d", len(got))
	}
	if got[0].ID != 2 || got[0].Month != "May" {
		t.Errorf("first export = %+v, want id 2 overwritten with May", got[0])
	}
}
