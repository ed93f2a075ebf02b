package aggregates

import (
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"
)

// RequireText trims value and rejects it when blank or longer than max runes.
// A max of zero disables the length check.
func RequireText(op, label, value string, max int) (string, error) {
	v := strings.TrimSpace(value)
	if v == "" {
		return "", Validationf(op, "%s cannot be empty", label)
	}
	if max > 0 && utf8.RuneCountInString(v) > max {
		return "", Validationf(op, "%s cannot exceed %d characters", label, max)
	}
	return v, nil
}

// OptionalText is RequireText that lets blank values through as "".
func OptionalText(op, label, value string, max int) (string, error) {
	v := strings.TrimSpace(value)
	if v == "" {
		return "", nil
	}
	return RequireText(op, label, v, max)
}

func RequireID(op, label string, id uuid.UUID) error {
	if id == uuid.Nil {
		return Validationf(op, "%s cannot be empty", label)
	}
	return nil
}
