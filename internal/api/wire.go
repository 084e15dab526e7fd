package api

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"folio/internal/core"
)

// Wire types mirror the backend JSON with pointer fields so a missing
// required field can be told apart from a zero value. Each converts itself
// to the core entity or fails with ErrMalformedResponse.

type wireDashboardItem struct {
	ID          *int64           `json:"id"`
	Year        *int             `json:"year"`
	Month       *string          `json:"month"`
	TotalIncome *decimal.Decimal `json:"totalIncome"`
}

func (w wireDashboardItem) toCore() (core.DashboardItem, error) {
	switch {
	case w.ID == nil:
		return core.DashboardItem{}, malformed("dashboard item: missing id")
	case w.Year == nil:
		return core.DashboardItem{}, malformed("dashboard item %d: missing year", *w.ID)
	case w.Month == nil:
		return core.DashboardItem{}, malformed("dashboard item %d: missing month", *w.ID)
	case w.TotalIncome == nil:
		return core.DashboardItem{}, malformed("dashboard item %d: missing totalIncome", *w.ID)
	}
	return core.DashboardItem{ID: *w.ID, Year: *w.Year, Month: *w.Month, TotalIncome: *w.TotalIncome}, nil
}

type wireBill struct {
	ID          *int64           `json:"id"`
	Type        *string          `json:"type"`
	Amount      *decimal.Decimal `json:"amount"`
	Description *string          `json:"description"`
	Color       *string          `json:"color"`
}

func (w wireBill) toCore() (core.Bill, error) {
	switch {
	case w.ID == nil:
		return core.Bill{}, malformed("bill: missing id")
	case w.Type == nil:
		return core.Bill{}, malformed("bill %d: missing type", *w.ID)
	case w.Amount == nil:
		return core.Bill{}, malformed("bill %d: missing amount", *w.ID)
	}
	b := core.Bill{ID: *w.ID, Type: *w.Type, Amount: *w.Amount}
	if w.Description != nil {
		b.Description = *w.Description
	}
	if w.Color != nil {
		b.Color = *w.Color
	}
	return b, nil
}

type wireMonth struct {
	ID               *int64           `json:"id"`
	Year             *int             `json:"year"`
	Month            *string          `json:"month"`
	TotalIncome      *decimal.Decimal `json:"totalIncome"`
	TotalExpenses    *decimal.Decimal `json:"totalExpenses"`
	RemainingBalance *decimal.Decimal `json:"remainingBalance"`
	Bills            *[]wireBill      `json:"bills"`
}

func (w wireMonth) toCore() (core.FinancialMonth, error) {
	switch {
	case w.ID == nil:
		return core.FinancialMonth{}, malformed("month: missing id")
	case w.Year == nil, w.Month == nil:
		return core.FinancialMonth{}, malformed("month %d: missing year or month", *w.ID)
	case w.TotalIncome == nil, w.TotalExpenses == nil, w.RemainingBalance == nil:
		return core.FinancialMonth{}, malformed("month %d: missing totals", *w.ID)
	case w.Bills == nil:
		return core.FinancialMonth{}, malformed("month %d: missing bills", *w.ID)
	}
	m := core.FinancialMonth{
		ID:               *w.ID,
		Year:             *w.Year,
		Month:            *w.Month,
		TotalIncome:      *w.TotalIncome,
		TotalExpenses:    *w.TotalExpenses,
		RemainingBalance: *w.RemainingBalance,
		Bills:            make([]core.Bill, 0, len(*w.Bills)),
	}
	for _, wb := range *w.Bills {
		b, err := wb.toCore()
		if err != nil {
			return core.FinancialMonth{}, err
		}
		m.Bills = append(m.Bills, b)
	}
	return m, nil
}

type wireAuthor struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Initial   string `json:"initial"`
}

type wireComment struct {
	ID        *int64      `json:"id"`
	Content   *string     `json:"content"`
	CreatedAt *string     `json:"createdAt"`
	UserID    *string     `json:"userId"`
	User      *wireAuthor `json:"user"`
}

func (w wireComment) toCore() (core.Comment, error) {
	switch {
	case w.ID == nil:
		return core.Comment{}, malformed("comment: missing id")
	case w.Content == nil:
		return core.Comment{}, malformed("comment %d: missing content", *w.ID)
	case w.CreatedAt == nil:
		return core.Comment{}, malformed("comment %d: missing createdAt", *w.ID)
	}
	created, err := parseTimestamp(*w.CreatedAt)
	if err != nil {
		return core.Comment{}, malformed("comment %d: createdAt %q", *w.ID, *w.CreatedAt)
	}
	c := core.Comment{ID: *w.ID, Content: *w.Content, CreatedAt: created}
	if w.UserID != nil {
		c.UserID = *w.UserID
	}
	if w.User != nil {
		c.User = core.Author(*w.User)
	}
	if c.User.Initial == "" && c.User.FirstName != "" {
		c.User.Initial = strings.ToUpper(string([]rune(c.User.FirstName)[:1]))
	}
	return c, nil
}

type wireAdminUser struct {
	ID        *string `json:"id"`
	FirstName string  `json:"firstName"`
	LastName  string  `json:"lastName"`
	Email     *string `json:"email"`
	IsBanned  *bool   `json:"isBanned"`
}

func (w wireAdminUser) toCore() (core.AdminUser, error) {
	switch {
	case w.ID == nil:
		return core.AdminUser{}, malformed("user: missing id")
	case w.Email == nil:
		return core.AdminUser{}, malformed("user %s: missing email", *w.ID)
	case w.IsBanned == nil:
		return core.AdminUser{}, malformed("user %s: missing isBanned", *w.ID)
	}
	return core.AdminUser{
		ID:        *w.ID,
		FirstName: w.FirstName,
		LastName:  w.LastName,
		Email:     *w.Email,
		IsBanned:  *w.IsBanned,
	}, nil
}

type wireToken struct {
	AccessToken *string `json:"accessToken"`
}

func (w wireToken) toCore() (string, error) {
	if w.AccessToken == nil || *w.AccessToken == "" {
		return "", malformed("auth: missing accessToken")
	}
	return *w.AccessToken, nil
}

// timestampLayouts accepts RFC 3339 and the zone-less form ASP.NET emits
// for unspecified DateTime kinds, which is read as UTC.
var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
}

func parseTimestamp(s string) (time.Time, error) {
	var lastErr error
	for _, layout := range timestampLayouts {
		t, err := time.Parse(layout, s)
		if err == nil {
			return t, nil
		}
		lastErr = err
	}
	return time.Time{}, lastErr
}

func decodeOne[W interface{ toCore() (T, error) }, T any](raw []byte, what string) (T, error) {
	var zero T
	var w W
	if err := json.Unmarshal(raw, &w); err != nil {
		return zero, malformed("%s: %v", what, err)
	}
	return w.toCore()
}

func decodeList[W interface{ toCore() (T, error) }, T any](raw []byte, what string) ([]T, error) {
	var ws []W
	if err := json.Unmarshal(raw, &ws); err != nil {
		return nil, malformed("%s: %v", what, err)
	}
	out := make([]T, 0, len(ws))
	for _, w := range ws {
		v, err := w.toCore()
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

// Request bodies carry amounts as JSON numbers; the decimal package quotes
// them by default.

type wireMonthRequest struct {
	Year        int         `json:"year"`
	Month       string      `json:"month"`
	TotalIncome json.Number `json:"totalIncome"`
}

func monthRequest(r core.CreateMonthRequest) wireMonthRequest {
	return wireMonthRequest{Year: r.Year, Month: r.Month, TotalIncome: json.Number(r.TotalIncome.String())}
}

type wireBillRequest struct {
	FinancialMonthID int64       `json:"financialMonthId"`
	Type             string      `json:"type"`
	Amount           json.Number `json:"amount"`
	Description      string      `json:"description,omitempty"`
	Color            string      `json:"color,omitempty"`
}

func billRequest(r core.CreateBillRequest) wireBillRequest {
	return wireBillRequest{
		FinancialMonthID: r.FinancialMonthID,
		Type:             r.Type,
		Amount:           json.Number(r.Amount.String()),
		Description:      r.Description,
		Color:            r.Color,
	}
}
