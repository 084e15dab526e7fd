// Package core holds the money manager domain: entities, client-side
// validation and the dashboard and chart aggregates.
//
// This file contains amount parsing and display helpers.
package core

import (
	"strings"
	"unicode"

	"github.com/shopspring/decimal"
)

// Currency is appended to every displayed amount.
const Currency = "kr"

var thousand = decimal.NewFromInt(1000)

// ParseAmount converts a user-entered amount to a decimal rounded to two
// places.
//
// It accepts both dot (12.34) and comma (12,34) decimal separators. Signs,
// empty input and anything but digits with at most one separator are
// rejected with ErrInvalidAmount. Zero is accepted.
//
// Examples:
//
//	ParseAmount("12.34")  -> 12.34
//	ParseAmount("12,345") -> 12.35 (half-up)
//	ParseAmount("-1")     -> ErrInvalidAmount
func ParseAmount(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero, ErrInvalidAmount
	}
	s = strings.ReplaceAll(s, ",", ".")
	if strings.Count(s, ".") > 1 {
		return decimal.Zero, ErrInvalidAmount
	}
	for _, r := range s {
		if r != '.' && !unicode.IsDigit(r) {
			return decimal.Zero, ErrInvalidAmount
		}
	}
	if strings.HasPrefix(s, ".") {
		s = "0" + s
	}
	d, err := decimal.NewFromString(strings.TrimSuffix(s, "."))
	if err != nil {
		return decimal.Zero, ErrInvalidAmount
	}
	return d.Round(2), nil
}

// FormatAmount renders an amount with thousands grouping and the currency,
// e.g. "12,345.5 kr". Trailing zero decimals are dropped.
func FormatAmount(d decimal.Decimal) string {
	return groupThousands(d.String()) + " " + Currency
}

// CompactAmount renders amounts of 1000 and more as thousands with one
// decimal ("1.5k"); smaller values are printed as-is.
func CompactAmount(d decimal.Decimal) string {
	if d.GreaterThanOrEqual(thousand) {
		return d.Div(thousand).StringFixed(1) + "k"
	}
	return d.String()
}

func groupThousands(s string) string {
	neg := strings.HasPrefix(s, "-")
	s = strings.TrimPrefix(s, "-")
	intPart, frac, hasFrac := strings.Cut(s, ".")

	var b strings.Builder
	if neg {
		b.WriteByte('-')
	}
	for i, r := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	if hasFrac {
		b.WriteByte('.')
		b.WriteString(frac)
	}
	return b.String()
}
