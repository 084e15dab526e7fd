package http

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"folio/internal/core"
)

// idParam parses a positive integer route parameter.
func idParam(r *http.Request, name string) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, name), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// queryID parses an optional positive id from the query string, 0 if absent.
func queryID(r *http.Request, name string) int64 {
	id, err := strconv.ParseInt(r.URL.Query().Get(name), 10, 64)
	if err != nil || id < 0 {
		return 0
	}
	return id
}

// monthForm is the create/edit month form.
type monthForm struct {
	Picker string
	Income string
}

func readMonthForm(r *http.Request) (monthForm, core.CreateMonthRequest, error) {
	f := monthForm{
		Picker: sanitizeInput(r.PostFormValue("month")),
		Income: sanitizeInput(r.PostFormValue("income")),
	}
	year, month, err := core.MonthFromPicker(f.Picker)
	if err != nil {
		return f, core.CreateMonthRequest{}, err
	}
	income, err := core.ParseAmount(f.Income)
	if err != nil {
		return f, core.CreateMonthRequest{}, err
	}
	req := core.CreateMonthRequest{Year: year, Month: month, TotalIncome: income}
	if err := core.ValidateMonth(req); err != nil {
		return f, req, err
	}
	return f, req, nil
}

// billForm is the add/edit bill form. Color defaults to the picker's
// initial blue.
type billForm struct {
	Type        string
	Amount      string
	Description string
	Color       string
}

const defaultBillColor = "#60a5fa"

func readBillForm(r *http.Request, monthID int64) (billForm, core.CreateBillRequest, error) {
	f := billForm{
		Type:        sanitizeInput(r.PostFormValue("type")),
		Amount:      sanitizeInput(r.PostFormValue("amount")),
		Description: sanitizeInput(r.PostFormValue("description")),
		Color:       sanitizeInput(r.PostFormValue("color")),
	}
	if !colorPattern.MatchString(f.Color) {
		f.Color = defaultBillColor
	}

	req := core.CreateBillRequest{
		FinancialMonthID: monthID,
		Type:             f.Type,
		Description:      f.Description,
		Color:            f.Color,
	}
	amount, err := core.ParseAmount(f.Amount)
	if err != nil {
		return f, req, err
	}
	req.Amount = amount
	if err := core.ValidateBill(&req); err != nil {
		return f, req, err
	}
	return f, req, nil
}

func billFormFrom(b core.Bill) billForm {
	color := b.Color
	if color == "" {
		color = defaultBillColor
	}
	return billForm{
		Type:        b.Type,
		Amount:      b.Amount.String(),
		Description: b.Description,
		Color:       color,
	}
}

func monthFormFrom(m core.DashboardItem) monthForm {
	return monthForm{Picker: core.PickerValue(m.Year, m.Month), Income: m.TotalIncome.String()}
}
