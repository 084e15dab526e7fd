package google

import (
	"fmt"
	"strings"

	"folio/internal/core"
)

// monthSheetName builds "<base> YYYY-MM". Unknown month names keep the
// name itself so nothing is silently merged.
func monthSheetName(base string, year int, month string) string {
	if i := core.MonthIndex(month); i >= 0 {
		return fmt.Sprintf("%s %04d-%02d", base, year, i+1)
	}
	return fmt.Sprintf("%s %04d %s", base, year, month)
}

// quoteSheet wraps a tab title for A1 notation.
func quoteSheet(title string) string {
	return "'" + strings.ReplaceAll(title, "'", "''") + "'"
}

// monthRows lays out the export: summary block, bills, then the breakdown
// with percentages of the chart's base.
func monthRows(m core.FinancialMonth) [][]any {
	b := core.BuildBreakdown(m)

	rows := [][]any{
		{"Year", m.Year},
		{"Month", m.Month},
		{"Total Income", m.TotalIncome.InexactFloat64()},
		{"Total Expenses", b.TotalExpenses.InexactFloat64()},
		{"Remaining Balance", m.RemainingBalance.InexactFloat64()},
		{},
		{"Category", "Description", "Amount", "Color"},
	}
	for _, bill := range m.Bills {
		rows = append(rows, []any{bill.Type, bill.Description, bill.Amount.InexactFloat64(), bill.Color})
	}

	rows = append(rows, []any{}, []any{"Breakdown", "Amount", "Percent"})
	for _, s := range b.Slices {
		rows = append(rows, []any{s.Name, s.Value.InexactFloat64(), b.Percent(s).InexactFloat64()})
	}
	return rows
}
