package core

import (
	"errors"
	"regexp"
	"strings"
	"unicode/utf8"
)

var (
	ErrCategoryLength     = errors.New("category name must be between 2 and 30 characters")
	ErrCategoryChars      = errors.New("invalid characters: use only letters and numbers (e.g. Food, Gym)")
	ErrInvalidAmount      = errors.New("invalid amount")
	ErrDescriptionTooLong = errors.New("description too long (max 150 characters)")
	ErrInvalidYear        = errors.New("invalid year")
	ErrInvalidMonth       = errors.New("invalid month")
	ErrEmptyComment       = errors.New("comment cannot be empty")
	ErrCommentTooLong     = errors.New("comment too long (max 1000 characters)")
	ErrMissingCredentials = errors.New("email and password are required")
)

const (
	minCategoryLen    = 2
	maxCategoryLen    = 30
	maxDescriptionLen = 150
	maxCommentLen     = 1000
)

// categoryPattern mirrors the backend rule: word characters, whitespace and
// the Arabic block.
var categoryPattern = regexp.MustCompile(`^[\w\s\x{0600}-\x{06FF}]+$`)

// ValidateBill trims the free-text fields in place and checks them against
// the same rules the backend applies.
func ValidateBill(req *CreateBillRequest) error {
	req.Type = strings.TrimSpace(req.Type)
	req.Description = strings.TrimSpace(req.Description)

	n := utf8.RuneCountInString(req.Type)
	if n < minCategoryLen || n > maxCategoryLen {
		return ErrCategoryLength
	}
	if !categoryPattern.MatchString(req.Type) {
		return ErrCategoryChars
	}
	if req.Amount.IsNegative() {
		return ErrInvalidAmount
	}
	if utf8.RuneCountInString(req.Description) > maxDescriptionLen {
		return ErrDescriptionTooLong
	}
	return nil
}

func ValidateMonth(req CreateMonthRequest) error {
	if req.Year < 1 || req.Year > 9999 {
		return ErrInvalidYear
	}
	if MonthIndex(req.Month) < 0 {
		return ErrInvalidMonth
	}
	if req.TotalIncome.IsNegative() {
		return ErrInvalidAmount
	}
	return nil
}

// ValidateComment returns the trimmed content.
func ValidateComment(content string) (string, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return "", ErrEmptyComment
	}
	if utf8.RuneCountInString(content) > maxCommentLen {
		return "", ErrCommentTooLong
	}
	return content, nil
}

func ValidateLogin(req LoginRequest) error {
	if strings.TrimSpace(req.Email) == "" || req.Password == "" {
		return ErrMissingCredentials
	}
	return nil
}
