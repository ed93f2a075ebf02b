package valueobject

import (
	"database/sql/driver"
	"regexp"
	"strings"

	domainagg "github.com/yungbote/cleanarch-backend/internal/domain/aggregates"
)

var (
	slugDisallowed = regexp.MustCompile(`[^a-z0-9\s-]`)
	slugSpaces     = regexp.MustCompile(`\s+`)
	slugDashes     = regexp.MustCompile(`-+`)
)

// Slug is the URL-safe form of a wiki page title.
type Slug struct {
	value string
}

// NewSlug derives a slug from free text.
func NewSlug(text string) (Slug, error) {
	const op = "valueobject.slug"
	if strings.TrimSpace(text) == "" {
		return Slug{}, domainagg.Validation(op, "Slug cannot be empty")
	}
	s := strings.ToLower(strings.TrimSpace(text))
	s = slugDisallowed.ReplaceAllString(s, "")
	s = slugSpaces.ReplaceAllString(s, "-")
	s = slugDashes.ReplaceAllString(s, "-")
	s = strings.Trim(s, "-")
	switch {
	case len(s) < 3:
		return Slug{}, domainagg.Validation(op, "Slug must have at least 3 characters")
	case len(s) > 100:
		return Slug{}, domainagg.Validation(op, "Slug cannot exceed 100 characters")
	}
	return Slug{value: s}, nil
}

func (s Slug) String() string { return s.value }
func (s Slug) IsZero() bool   { return s.value == "" }

func (s Slug) Value() (driver.Value, error) { return stringValue(s.value) }

func (s *Slug) Scan(src any) error {
	v, _, err := scanString(src)
	if err != nil {
		return err
	}
	s.value = v
	return nil
}

func (s Slug) MarshalText() ([]byte, error) { return []byte(s.value), nil }

func (s *Slug) UnmarshalText(b []byte) error {
	parsed, err := NewSlug(string(b))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}
