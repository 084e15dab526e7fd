package core

import (
	"reflect"
	"testing"
)

func TestGroupDashboardOrdersYearsAndMonths(t *testing.T) {
	items := []DashboardItem{
		{ID: 1, Year: 2025, Month: "March"},
		{ID: 2, Year: 2024, Month: "December"},
		{ID: 3, Year: 2025, Month: "January"},
	}
	g := GroupDashboard(items)

	if !reflect.DeepEqual(g.Years, []int{2025, 2024}) {
		t.Fatalf("years = %v, want [2025 2024]", g.Years)
	}
	got := []string{g.ByYear[2025][0].Month, g.ByYear[2025][1].Month}
	if !reflect.DeepEqual(got, []string{"January", "March"}) {
		t.Fatalf("2025 months = %v", got)
	}
	if g.Count(2024) != 1 {
		t.Fatalf("expected one month in 2024")
	}
	if items[0].Month != "March" {
		t.Fatalf("input must not be reordered")
	}
}

func TestGroupDashboardEmpty(t *testing.T) {
	g := GroupDashboard(nil)
	if len(g.Years) != 0 || len(g.ByYear) != 0 {
		t.Fatalf("expected empty grouping, got %+v", g)
	}
}

func TestGroupDashboardUnknownMonthSortsFirst(t *testing.T) {
	g := GroupDashboard([]DashboardItem{
		{ID: 1, Year: 2025, Month: "January"},
		{ID: 2, Year: 2025, Month: "Janvier"},
	})
	if g.ByYear[2025][0].Month != "Janvier" {
		t.Fatalf("unknown month should sort before January, got %+v", g.ByYear[2025])
	}
}

func TestGroupDashboardRegroupIsIdempotent(t *testing.T) {
	items := []DashboardItem{
		{ID: 1, Year: 2023, Month: "May"},
		{ID: 2, Year: 2025, Month: "December"},
		{ID: 3, Year: 2023, Month: "February"},
		{ID: 4, Year: 2025, Month: "April"},
		{ID: 5, Year: 2024, Month: "July"},
	}
	first := GroupDashboard(items)
	second := GroupDashboard(first.Flatten())
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("regrouping changed structure:\n%+v\n%+v", first, second)
	}
	if !reflect.DeepEqual(GroupDashboard(items), first) {
		t.Fatalf("grouping is not deterministic")
	}
}

func TestMonthPicker(t *testing.T) {
	year, month, err := MonthFromPicker("2026-02")
	if err != nil || year != 2026 || month != "February" {
		t.Fatalf("MonthFromPicker = %d %q %v", year, month, err)
	}
	if PickerValue(2026, "February") != "2026-02" {
		t.Fatalf("PickerValue = %q", PickerValue(2026, "February"))
	}
	for _, bad := range []string{"", "2026", "2026-13", "abcd-01", "2026-00"} {
		if _, _, err := MonthFromPicker(bad); err == nil {
			t.Fatalf("%q expected error", bad)
		}
	}
}
