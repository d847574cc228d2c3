// file: internal/ui/validate.go
// version: 1.0.0
// guid: 8d0f2b4c-6e8a-4d0f-b2c4-6e8a0d2f4b6c

package ui

import (
	"strings"
	"unicode"
)

// Validation messages shown before the catalog is touched.
const (
	MsgEmptyID      = "Book ID cannot be empty!"
	MsgYearNotDigit = "Publication year must be a number!"
	MsgEmptyKeyword = "Keyword cannot be empty!"
)

// IsNonEmpty reports whether s has any characters.
func IsNonEmpty(s string) bool {
	return s != ""
}

// IsNumericYear reports whether s is non-empty and made only of digits.
func IsNumericYear(s string) bool {
	return s != "" && strings.IndexFunc(s, func(r rune) bool { return !unicode.IsDigit(r) }) < 0
}

// ValidateBook checks the fields the shell and CLI collect for add and
// update. An empty year is allowed; a non-empty one must be numeric.
func ValidateBook(id, year string) string {
	if !IsNonEmpty(id) {
		return MsgEmptyID
	}
	if year != "" && !IsNumericYear(year) {
		return MsgYearNotDigit
	}
	return ""
}
