package core

import (
	"slices"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/shopspring/decimal"
)

// RemainingBalanceLabel names the synthetic slice appended for a positive
// remainder.
const RemainingBalanceLabel = "Remaining Balance"

// RemainingBalanceColor is the fixed teal of the remainder slice.
const RemainingBalanceColor = "#10b981"

// FallbackColors is cycled by bucket creation order for bills without an
// explicit color.
var FallbackColors = [8]string{
	"#818cf8", "#f472b6", "#34d399", "#fbbf24",
	"#60a5fa", "#c084fc", "#f87171", "#2dd4bf",
}

var hundred = decimal.NewFromInt(100)

// Slice is one ring-chart segment and legend row.
type Slice struct {
	Name  string
	Value decimal.Decimal
	Color string
}

// Breakdown is the expense chart aggregate of one month.
type Breakdown struct {
	Slices         []Slice
	TotalExpenses  decimal.Decimal
	TotalIncome    decimal.Decimal
	PercentageBase decimal.Decimal
	IsOverBudget   bool
}

// NormalizeCategory upper-cases the first rune and lower-cases the rest.
// Multi-word labels are not title-cased: "eating out" becomes "Eating out".
func NormalizeCategory(label string) string {
	r, size := utf8.DecodeRuneInString(label)
	if r == utf8.RuneError && size <= 1 {
		return strings.ToLower(label)
	}
	return string(unicode.ToUpper(r)) + strings.ToLower(label[size:])
}

// BuildBreakdown groups the month's bills by normalized category and
// computes the percentage base. Total expenses are recomputed from the bills;
// the month's stored TotalExpenses is not consulted. The color of a bucket
// is decided by the bill that created it. A month without bills has no
// chart, so its slice list is empty even when a remainder exists.
func BuildBreakdown(m FinancialMonth) Breakdown {
	b := Breakdown{
		Slices:      []Slice{},
		TotalIncome: m.TotalIncome,
	}
	if len(m.Bills) == 0 {
		b.PercentageBase = m.TotalIncome
		return b
	}
	for _, bill := range m.Bills {
		b.TotalExpenses = b.TotalExpenses.Add(bill.Amount)
	}
	b.IsOverBudget = b.TotalExpenses.GreaterThan(m.TotalIncome)
	b.PercentageBase = m.TotalIncome
	if b.IsOverBudget {
		b.PercentageBase = b.TotalExpenses
	}

	index := make(map[string]int)
	for _, bill := range m.Bills {
		name := NormalizeCategory(bill.Type)
		i, ok := index[name]
		if !ok {
			color := bill.Color
			if color == "" {
				color = FallbackColors[len(b.Slices)%len(FallbackColors)]
			}
			i = len(b.Slices)
			index[name] = i
			b.Slices = append(b.Slices, Slice{Name: name, Color: color})
		}
		b.Slices[i].Value = b.Slices[i].Value.Add(bill.Amount)
	}

	if m.RemainingBalance.IsPositive() {
		b.Slices = append(b.Slices, Slice{
			Name:  RemainingBalanceLabel,
			Value: m.RemainingBalance,
			Color: RemainingBalanceColor,
		})
	}

	slices.SortStableFunc(b.Slices, func(x, y Slice) int {
		return y.Value.Cmp(x.Value)
	})
	return b
}

// Percent is the slice's share of the percentage base, rounded to one
// decimal. A zero base yields zero instead of an undefined value.
func (b Breakdown) Percent(s Slice) decimal.Decimal {
	if b.PercentageBase.IsZero() {
		return decimal.Zero
	}
	return s.Value.Div(b.PercentageBase).Mul(hundred).Round(1)
}

// CategoryTotal sums the category slices, leaving out the remainder slice.
func (b Breakdown) CategoryTotal() decimal.Decimal {
	total := decimal.Zero
	for _, s := range b.Slices {
		if s.Name == RemainingBalanceLabel {
			continue
		}
		total = total.Add(s.Value)
	}
	return total
}

// CenterLabel returns the caption and compact amount shown inside the ring.
func (b Breakdown) CenterLabel() (string, string) {
	if b.IsOverBudget {
		return "Total Expenses", CompactAmount(b.TotalExpenses)
	}
	return "Total Income", CompactAmount(b.TotalIncome)
}
