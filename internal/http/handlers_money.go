package http

import (
	"fmt"
	"net/http"
	"time"

	"folio/internal/core"
	"folio/internal/log"
)

type yearGroup struct {
	Year   int
	Months []core.DashboardItem
}

type dashboardView struct {
	Years  []yearGroup
	Count  int
	EditID int64
	Form   monthForm
	// EditForm prefills the inline edit row of EditID.
	EditForm monthForm
}

type monthView struct {
	Month      core.FinancialMonth
	Chart      chartView
	EditBillID int64
	Form       billForm
	EditForm   billForm
}

func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	now := time.Now()
	view := dashboardView{
		EditID: queryID(r, "edit"),
		Form:   monthForm{Picker: core.PickerValue(now.Year(), now.Month().String())},
	}
	s.renderDashboard(w, r, http.StatusOK, view, "")
}

func (s *Server) renderDashboard(w http.ResponseWriter, r *http.Request, status int, view dashboardView, formErr string) {
	ctx := r.Context()
	items, err := s.client(r).Dashboard(ctx)
	if err != nil {
		log.FromContext(ctx).ErrorContext(ctx, "Failed to load dashboard", log.FieldError, err)
		s.render(w, r, statusFor(err), "money.html", page{Title: "money.title", Error: userMessage(err), Data: view})
		return
	}

	groups := core.GroupDashboard(items)
	for _, year := range groups.Years {
		view.Years = append(view.Years, yearGroup{Year: year, Months: groups.ByYear[year]})
	}
	view.Count = len(items)
	if view.EditID > 0 && view.EditForm == (monthForm{}) {
		for _, it := range items {
			if it.ID == view.EditID {
				view.EditForm = monthFormFrom(it)
				break
			}
		}
	}
	s.render(w, r, status, "money.html", page{Title: "money.title", Error: formErr, Data: view})
}

func (s *Server) handleCreateMonth(w http.ResponseWriter, r *http.Request) {
	form, req, err := readMonthForm(r)
	if err != nil {
		s.renderDashboard(w, r, http.StatusUnprocessableEntity, dashboardView{Form: form}, sentence(err))
		return
	}
	if err := s.client(r).CreateMonth(r.Context(), req); err != nil {
		s.renderDashboard(w, r, statusFor(err), dashboardView{Form: form}, userMessage(err))
		return
	}
	http.Redirect(w, r, "/money", http.StatusSeeOther)
}

func (s *Server) handleUpdateMonth(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r, "id")
	if !ok {
		http.NotFound(w, r)
		return
	}
	form, req, err := readMonthForm(r)
	view := dashboardView{EditID: id, EditForm: form}
	if err != nil {
		s.renderDashboard(w, r, http.StatusUnprocessableEntity, view, sentence(err))
		return
	}
	if err := s.client(r).UpdateMonth(r.Context(), id, req); err != nil {
		s.renderDashboard(w, r, statusFor(err), view, userMessage(err))
		return
	}
	http.Redirect(w, r, "/money", http.StatusSeeOther)
}

func (s *Server) handleDeleteMonth(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r, "id")
	if !ok {
		http.NotFound(w, r)
		return
	}
	if err := s.client(r).DeleteMonth(r.Context(), id); err != nil {
		s.renderDashboard(w, r, statusFor(err), dashboardView{}, userMessage(err))
		return
	}
	http.Redirect(w, r, "/money", http.StatusSeeOther)
}

func (s *Server) handleMonth(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r, "id")
	if !ok {
		http.NotFound(w, r)
		return
	}
	view := monthView{
		EditBillID: queryID(r, "editBill"),
		Form:       billForm{Color: defaultBillColor},
	}
	s.renderMonth(w, r, http.StatusOK, id, view, "")
}

// renderMonth loads month id and renders its detail page. A failed load
// replaces the page with the error; formErr is shown above the forms.
func (s *Server) renderMonth(w http.ResponseWriter, r *http.Request, status int, id int64, view monthView, formErr string) {
	ctx := r.Context()
	m, err := s.client(r).Month(ctx, id)
	if err != nil {
		log.FromContext(ctx).ErrorContext(ctx, "Failed to load month", log.FieldMonthID, id, log.FieldError, err)
		s.render(w, r, statusFor(err), "month.html", page{Title: "money.month", Error: userMessage(err), Data: view})
		return
	}

	view.Month = m
	view.Chart = buildChart(core.BuildBreakdown(m))
	if view.EditBillID > 0 && view.EditForm == (billForm{}) {
		for _, b := range m.Bills {
			if b.ID == view.EditBillID {
				view.EditForm = billFormFrom(b)
				break
			}
		}
	}
	s.render(w, r, status, "month.html", page{Title: "money.month", Error: formErr, Data: view})
}

func monthPath(id int64) string {
	return fmt.Sprintf("/money/%d", id)
}

func (s *Server) handleAddBill(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r, "id")
	if !ok {
		http.NotFound(w, r)
		return
	}
	form, req, err := readBillForm(r, id)
	if err != nil {
		s.renderMonth(w, r, http.StatusUnprocessableEntity, id, monthView{Form: form}, sentence(err))
		return
	}
	if err := s.client(r).AddBill(r.Context(), req); err != nil {
		s.renderMonth(w, r, statusFor(err), id, monthView{Form: form}, userMessage(err))
		return
	}
	http.Redirect(w, r, monthPath(id), http.StatusSeeOther)
}

func (s *Server) handleUpdateBill(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r, "id")
	billID, billOK := idParam(r, "billID")
	if !ok || !billOK {
		http.NotFound(w, r)
		return
	}
	form, req, err := readBillForm(r, id)
	view := monthView{EditBillID: billID, EditForm: form, Form: billForm{Color: defaultBillColor}}
	if err != nil {
		s.renderMonth(w, r, http.StatusUnprocessableEntity, id, view, sentence(err))
		return
	}
	if err := s.client(r).UpdateBill(r.Context(), billID, req); err != nil {
		s.renderMonth(w, r, statusFor(err), id, view, userMessage(err))
		return
	}
	http.Redirect(w, r, monthPath(id), http.StatusSeeOther)
}

func (s *Server) handleDeleteBill(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r, "id")
	billID, billOK := idParam(r, "billID")
	if !ok || !billOK {
		http.NotFound(w, r)
		return
	}
	if err := s.client(r).DeleteBill(r.Context(), billID); err != nil {
		s.renderMonth(w, r, statusFor(err), id, monthView{Form: billForm{Color: defaultBillColor}}, userMessage(err))
		return
	}
	http.Redirect(w, r, monthPath(id), http.StatusSeeOther)
}
