package core

import (
	"time"

	"github.com/shopspring/decimal"
)

// AdminRole is the role claim value that unlocks the admin pages.
const AdminRole = "Admin"

type (
	// User is the identity projection decoded from a bearer token.
	User struct {
		ID        string
		Email     string
		FirstName string
		Role      string
	}

	// DashboardItem summarises one budget month for listing and navigation.
	DashboardItem struct {
		ID          int64           `json:"id"`
		Year        int             `json:"year"`
		Month       string          `json:"month"`
		TotalIncome decimal.Decimal `json:"totalIncome"`
	}

	// FinancialMonth is the full month record. TotalExpenses and
	// RemainingBalance are computed by the backend and trusted as-is.
	FinancialMonth struct {
		ID               int64           `json:"id"`
		Year             int             `json:"year"`
		Month            string          `json:"month"`
		TotalIncome      decimal.Decimal `json:"totalIncome"`
		TotalExpenses    decimal.Decimal `json:"totalExpenses"`
		RemainingBalance decimal.Decimal `json:"remainingBalance"`
		Bills            []Bill          `json:"bills"`
	}

	// Bill belongs to exactly one FinancialMonth. Type is free text.
	Bill struct {
		ID          int64           `json:"id"`
		Type        string          `json:"type"`
		Amount      decimal.Decimal `json:"amount"`
		Description string          `json:"description,omitempty"`
		Color       string          `json:"color,omitempty"`
	}

	// Author is the public part of a comment's user.
	Author struct {
		FirstName string `json:"firstName"`
		LastName  string `json:"lastName"`
		Initial   string `json:"initial"`
	}

	// Comment is one entry of the community wall.
	Comment struct {
		ID        int64     `json:"id"`
		Content   string    `json:"content"`
		CreatedAt time.Time `json:"createdAt"`
		UserID    string    `json:"userId"`
		User      Author    `json:"user"`
	}

	// AdminUser is a row of the admin user list.
	AdminUser struct {
		ID        string `json:"id"`
		FirstName string `json:"firstName"`
		LastName  string `json:"lastName"`
		Email     string `json:"email"`
		IsBanned  bool   `json:"isBanned"`
	}
)

type (
	CreateMonthRequest struct {
		Year        int             `json:"year"`
		Month       string          `json:"month"`
		TotalIncome decimal.Decimal `json:"totalIncome"`
	}

	CreateBillRequest struct {
		FinancialMonthID int64           `json:"financialMonthId"`
		Type             string          `json:"type"`
		Amount           decimal.Decimal `json:"amount"`
		Description      string          `json:"description,omitempty"`
		Color            string          `json:"color,omitempty"`
	}

	LoginRequest struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}

	RegisterRequest struct {
		Email     string `json:"email"`
		Password  string `json:"password"`
		FirstName string `json:"firstName"`
		LastName  string `json:"lastName"`
	}

	GoogleLoginRequest struct {
		Credential string `json:"credential"`
	}

	CommentRequest struct {
		Content string `json:"content"`
	}
)

// IsAdmin reports whether the decoded role grants admin access.
func (u *User) IsAdmin() bool {
	return u != nil && u.Role == AdminRole
}

// DisplayName returns the first name, falling back to the email.
func (u *User) DisplayName() string {
	if u == nil {
		return ""
	}
	if u.FirstName != "" {
		return u.FirstName
	}
	return u.Email
}

// FullName joins the author's names.
func (a Author) FullName() string {
	switch {
	case a.FirstName == "":
		return a.LastName
	case a.LastName == "":
		return a.FirstName
	}
	return a.FirstName + " " + a.LastName
}
