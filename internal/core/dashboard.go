package core

import (
	"slices"
	"sort"
)

// DashboardGroups is the dashboard list grouped by year. Years is unique and
// descending; every ByYear slice is in calendar order.
type DashboardGroups struct {
	Years  []int
	ByYear map[int][]DashboardItem
}

// GroupDashboard groups items by year and sorts them for display. Months
// with an unknown name sort before January (index -1). The input slice is
// not modified.
func GroupDashboard(items []DashboardItem) DashboardGroups {
	g := DashboardGroups{
		Years:  []int{},
		ByYear: make(map[int][]DashboardItem),
	}
	for _, it := range items {
		if _, ok := g.ByYear[it.Year]; !ok {
			g.Years = append(g.Years, it.Year)
		}
		g.ByYear[it.Year] = append(g.ByYear[it.Year], it)
	}

	sort.Sort(sort.Reverse(sort.IntSlice(g.Years)))
	for _, year := range g.Years {
		months := g.ByYear[year]
		slices.SortStableFunc(months, func(a, b DashboardItem) int {
			return MonthIndex(a.Month) - MonthIndex(b.Month)
		})
	}
	return g
}

// Flatten returns the grouped items in display order.
func (g DashboardGroups) Flatten() []DashboardItem {
	var out []DashboardItem
	for _, year := range g.Years {
		out = append(out, g.ByYear[year]...)
	}
	return out
}

// Count returns the number of items listed under year.
func (g DashboardGroups) Count(year int) int {
	return len(g.ByYear[year])
}
