package http

import (
	"fmt"
	"regexp"

	"github.com/shopspring/decimal"

	"folio/internal/core"
)

var colorPattern = regexp.MustCompile(`^#(?:[0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)

// The ring is drawn with stroke dashes on a circle whose circumference is
// 100, so a segment's dash length is its share of the ring.
const (
	ringRadius = "15.9155"
	ringStart  = 25.0
)

type ringSegment struct {
	Name   string
	Amount string
	Color  string
	Dash   string
	Gap    string
	Offset string
}

type legendRow struct {
	Name    string
	Color   string
	Amount  string
	Percent string
}

type chartView struct {
	Radius     string
	Segments   []ringSegment
	Legend     []legendRow
	CenterKey  string
	CenterText string
	OverBudget bool
}

func buildChart(b core.Breakdown) chartView {
	v := chartView{
		Radius:     ringRadius,
		OverBudget: b.IsOverBudget,
		CenterKey:  "money.income",
	}
	_, v.CenterText = b.CenterLabel()
	if b.IsOverBudget {
		v.CenterKey = "money.expenses"
	}

	// Arcs share the ring by value so they always close the circle, even
	// when the stored remaining balance disagrees with the bills. The legend
	// keeps the percentage of the breakdown base.
	total := decimal.Zero
	for _, sl := range b.Slices {
		if sl.Value.IsPositive() {
			total = total.Add(sl.Value)
		}
	}

	hundred := decimal.NewFromInt(100)
	cumulative := 0.0
	for _, sl := range b.Slices {
		color := sl.Color
		if !colorPattern.MatchString(color) {
			color = core.FallbackColors[0]
		}
		v.Legend = append(v.Legend, legendRow{
			Name:    sl.Name,
			Color:   color,
			Amount:  core.FormatAmount(sl.Value),
			Percent: b.Percent(sl).StringFixed(1) + "%",
		})

		if total.IsZero() || !sl.Value.IsPositive() {
			continue
		}
		share := sl.Value.Div(total).Mul(hundred).InexactFloat64()
		v.Segments = append(v.Segments, ringSegment{
			Name:   sl.Name,
			Amount: core.CompactAmount(sl.Value),
			Color:  color,
			Dash:   fmt.Sprintf("%.3f", share),
			Gap:    fmt.Sprintf("%.3f", 100-share),
			Offset: fmt.Sprintf("%.3f", ringStart-cumulative),
		})
		cumulative += share
	}
	return v
}
