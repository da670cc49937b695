// Package cpf handles the two representations of a Brazilian CPF number:
// the canonical digit-only form used for comparison and the display form
// XXX.XXX.XXX-XX.
package cpf

import (
	"strings"

	"github.com/sakif/roster-lookup/internal/apperror"
)

// Length is the number of digits in a canonical CPF.
const Length = 11

var separators = strings.NewReplacer(".", "", "-", "")

// Normalize removes every literal '.' and '-' from raw. Nothing else is
// touched: stray spaces or letters survive, and the digit count is not checked.
func Normalize(raw string) string {
	return separators.Replace(raw)
}

// Unformat is the inverse of Format.
func Unformat(formatted string) string {
	return Normalize(formatted)
}

// IsCanonical reports whether id is exactly 11 ASCII digits.
func IsCanonical(id string) bool {
	if len(id) != Length {
		return false
	}
	for i := 0; i < len(id); i++ {
		if id[i] < '0' || id[i] > '9' {
			return false
		}
	}
	return true
}

// Format renders a canonical id as XXX.XXX.XXX-XX. Anything that is not
// exactly 11 digits is rejected instead of being sliced.
func Format(id string) (string, error) {
	if !IsCanonical(id) {
		return "", apperror.ValidationFailed("cpf", "cpf must have exactly 11 digits")
	}

	var b strings.Builder
	b.Grow(Length + 3)
	b.WriteString(id[0:3])
	b.WriteByte('.')
	b.WriteString(id[3:6])
	b.WriteByte('.')
	b.WriteString(id[6:9])
	b.WriteByte('-')
	b.WriteString(id[9:11])
	return b.String(), nil
}
