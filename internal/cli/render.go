package cli

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"folio/internal/core"
	"folio/internal/storage"
)

var (
	titleStyle   = lipgloss.NewStyle().Bold(true)
	mutedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#828282"))
	incomeStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color(core.RemainingBalanceColor))
	expenseStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#f87171"))
	cardStyle    = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 2)
	cellStyle    = lipgloss.NewStyle().Padding(0, 1)
	numberStyle  = cellStyle.Align(lipgloss.Right)
)

// newTable returns a bordered table whose columns listed in numeric are
// right aligned.
func newTable(headers []string, numeric ...int) *table.Table {
	right := make(map[int]bool, len(numeric))
	for _, col := range numeric {
		right[col] = true
	}
	return table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(mutedStyle).
		Headers(headers...).
		StyleFunc(func(row, col int) lipgloss.Style {
			style := cellStyle
			if right[col] {
				style = numberStyle
			}
			if row == table.HeaderRow {
				return style.Bold(true)
			}
			return style
		})
}

func swatch(color string) string {
	if !colorPattern.MatchString(color) {
		color = core.FallbackColors[0]
	}
	return lipgloss.NewStyle().Foreground(lipgloss.Color(color)).Render("■")
}

func renderDashboard(w io.Writer, g core.DashboardGroups) {
	if len(g.Years) == 0 {
		fmt.Fprintln(w, mutedStyle.Render("No months yet. Create your first month."))
		return
	}
	for _, year := range g.Years {
		fmt.Fprintln(w, titleStyle.Render(fmt.Sprintf("%d (%d)", year, g.Count(year))))
		t := newTable([]string{"ID", "Month", "Income"}, 2)
		for _, it := range g.ByYear[year] {
			t.Row(strconv.FormatInt(it.ID, 10), it.Month, core.FormatAmount(it.TotalIncome))
		}
		fmt.Fprintln(w, t.Render())
	}
}

func renderMonthSummaries(w io.Writer, months []core.FinancialMonth) {
	if len(months) == 0 {
		fmt.Fprintln(w, mutedStyle.Render("No months yet. Create your first month."))
		return
	}
	t := newTable([]string{"ID", "Month", "Income", "Expenses", "Remaining", "Bills"}, 2, 3, 4, 5)
	for _, m := range months {
		remaining := core.FormatAmount(m.RemainingBalance)
		if m.RemainingBalance.IsNegative() {
			remaining = expenseStyle.Render(remaining)
		}
		t.Row(
			strconv.FormatInt(m.ID, 10),
			fmt.Sprintf("%s %d", m.Month, m.Year),
			core.FormatAmount(m.TotalIncome),
			core.FormatAmount(m.TotalExpenses),
			remaining,
			strconv.Itoa(len(m.Bills)),
		)
	}
	fmt.Fprintln(w, t.Render())
}

func summaryCard(label, value string, style lipgloss.Style) string {
	return cardStyle.Render(mutedStyle.Render(label) + "\n" + style.Render(value))
}

// renderMonth prints the summary cards, the category breakdown and the
// bills of m.
func renderMonth(w io.Writer, m core.FinancialMonth, b core.Breakdown) {
	fmt.Fprintln(w, titleStyle.Render(fmt.Sprintf("%s %d", m.Month, m.Year)))

	remainingStyle := incomeStyle
	if b.IsOverBudget {
		remainingStyle = expenseStyle
	}
	fmt.Fprintln(w, lipgloss.JoinHorizontal(lipgloss.Top,
		summaryCard("Total Income", core.FormatAmount(m.TotalIncome), incomeStyle),
		summaryCard("Total Expenses", core.FormatAmount(m.TotalExpenses), expenseStyle),
		summaryCard("Remaining Balance", core.FormatAmount(m.RemainingBalance), remainingStyle),
	))

	if len(m.Bills) == 0 {
		fmt.Fprintln(w, mutedStyle.Render("No bills yet."))
		return
	}

	caption, value := b.CenterLabel()
	line := fmt.Sprintf("Breakdown · %s %s", caption, value)
	if b.IsOverBudget {
		line += " · " + expenseStyle.Render("Over budget")
	}
	fmt.Fprintln(w, titleStyle.Render(line))

	breakdown := newTable([]string{"", "Category", "Amount", "Share"}, 2, 3)
	for _, s := range b.Slices {
		breakdown.Row(swatch(s.Color), s.Name, core.FormatAmount(s.Value), b.Percent(s).StringFixed(1)+"%")
	}
	fmt.Fprintln(w, breakdown.Render())

	bills := newTable([]string{"ID", "Category", "Description", "Amount"}, 3)
	for _, bill := range m.Bills {
		bills.Row(strconv.FormatInt(bill.ID, 10), bill.Type, bill.Description, core.FormatAmount(bill.Amount))
	}
	fmt.Fprintln(w, bills.Render())
}

func renderComments(w io.Writer, comments []core.Comment) {
	if len(comments) == 0 {
		fmt.Fprintln(w, mutedStyle.Render("No comments yet."))
		return
	}
	for _, c := range comments {
		head := fmt.Sprintf("#%d %s", c.ID, c.User.FullName())
		if !c.CreatedAt.IsZero() {
			head += " " + mutedStyle.Render(c.CreatedAt.Local().Format("2006-01-02 15:04"))
		}
		fmt.Fprintln(w, titleStyle.Render(head))
		fmt.Fprintln(w, lipgloss.NewStyle().PaddingLeft(2).Render(c.Content))
	}
}

func renderUsers(w io.Writer, users []core.AdminUser) {
	if len(users) == 0 {
		fmt.Fprintln(w, mutedStyle.Render("No users found."))
		return
	}
	t := newTable([]string{"ID", "Name", "Email", "Status"})
	for _, u := range users {
		status := incomeStyle.Render("Active")
		if u.IsBanned {
			status = expenseStyle.Render("Banned")
		}
		name := strings.TrimSpace(u.FirstName + " " + u.LastName)
		t.Row(u.ID, name, u.Email, status)
	}
	fmt.Fprintln(w, t.Render())
}

func renderActivity(w io.Writer, entries []storage.Activity) {
	if len(entries) == 0 {
		fmt.Fprintln(w, mutedStyle.Render("No activity recorded."))
		return
	}
	t := newTable([]string{"When", "Event", "Subject", "Summary"})
	for _, a := range entries {
		subject := ""
		if a.SubjectID != 0 {
			subject = strconv.FormatInt(a.SubjectID, 10)
		}
		t.Row(a.OccurredAt.Local().Format("2006-01-02 15:04"), a.Kind, subject, a.Summary)
	}
	fmt.Fprintln(w, t.Render())
}

func renderUser(w io.Writer, u *core.User) {
	if u == nil {
		fmt.Fprintln(w, mutedStyle.Render("Token could not be decoded"))
		return
	}
	role := u.Role
	if role == "" {
		role = "-"
	}
	fmt.Fprintf(w, "%s\n%s %s\n%s %s\n%s %s\n",
		titleStyle.Render(u.DisplayName()),
		mutedStyle.Render("id:   "), u.ID,
		mutedStyle.Render("email:"), u.Email,
		mutedStyle.Render("role: "), role,
	)
}

func renderCV(w io.Writer, cv core.CV) {
	fmt.Fprintln(w, titleStyle.Render(cv.Profile.FullName))
	if cv.Profile.Title != "" {
		fmt.Fprintln(w, mutedStyle.Render(cv.Profile.Title))
	}
	if cv.Summary != "" {
		fmt.Fprintln(w)
		fmt.Fprintln(w, lipgloss.NewStyle().Width(72).Render(cv.Summary))
	}
	for _, job := range cv.WorkExperience {
		fmt.Fprintln(w)
		fmt.Fprintln(w, titleStyle.Render(job.Title+" · "+job.Company))
		fmt.Fprintln(w, mutedStyle.Render(job.Period))
	}
}
