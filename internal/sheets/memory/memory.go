// Package memory is an in-process MonthExporter used by tests and by
// folioctl when no spreadsheet is configured and --dry-run is given.
package memory

import (
	"context"
	"fmt"
	"sync"

	"folio/internal/core"
)

type Exporter struct {
	mu     sync.Mutex
	months map[int64]core.FinancialMonth
	order  []int64
}

func New() *Exporter {
	return &Exporter{months: make(map[int64]core.FinancialMonth)}
}

// ExportMonth keeps the latest copy of each month.
func (e *Exporter) ExportMonth(_ context.Context, m core.FinancialMonth) (string, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if _, ok := e.months[m.ID]; !ok {
		e.order = append(e.order, m.ID)
	}
	e.months[m.ID] = m
	return fmt.Sprintf("memory:%d", m.ID), nil
}

// Exported returns the stored months in first-export order.
func (e *Exporter) Exported() []core.FinancialMonth {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make([]core.FinancialMonth, 0, len(e.order))
	for _, id := range e.order {
		out = append(out, e.months[id])
	}
	return out
}
