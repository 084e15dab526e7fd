package core

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// MonthNames is the calendar order used for sorting and for the month picker.
var MonthNames = [12]string{
	"January", "February", "March", "April", "May", "June",
	"July", "August", "September", "October", "November", "December",
}

var ErrInvalidPicker = errors.New("please select a valid month and year")

// MonthIndex returns the 0-based calendar index of name, or -1 when the
// name is not an exact match.
func MonthIndex(name string) int {
	for i, m := range MonthNames {
		if m == name {
			return i
		}
	}
	return -1
}

// MonthFromPicker splits a "YYYY-MM" month input value into a year and an
// English month name.
func MonthFromPicker(value string) (int, string, error) {
	yearStr, monthStr, ok := strings.Cut(strings.TrimSpace(value), "-")
	if !ok {
		return 0, "", ErrInvalidPicker
	}
	year, err := strconv.Atoi(yearStr)
	if err != nil || year < 1 || year > 9999 {
		return 0, "", ErrInvalidPicker
	}
	month, err := strconv.Atoi(monthStr)
	if err != nil || month < 1 || month > 12 {
		return 0, "", ErrInvalidPicker
	}
	return year, MonthNames[month-1], nil
}

// PickerValue is the inverse of MonthFromPicker. Unknown month names map
// to month 00, the same way the edit form did.
func PickerValue(year int, month string) string {
	return fmt.Sprintf("%d-%02d", year, MonthIndex(month)+1)
}
