package valueobject

import (
	"database/sql/driver"
	"regexp"
	"strings"

	domainagg "github.com/yungbote/cleanarch-backend/internal/domain/aggregates"
)

const (
	projectCodeMinLen = 3
	projectCodeMaxLen = 30
)

var projectCodePattern = regexp.MustCompile(`^[A-Z0-9_.\-]+$`)

// ProjectCode is an uppercased project identifier such as "PRJ-2024-001".
type ProjectCode struct {
	value string
}

func NewProjectCode(raw string) (ProjectCode, error) {
	const op = "valueobject.project_code"
	code := strings.ToUpper(strings.TrimSpace(raw))
	switch {
	case code == "":
		return ProjectCode{}, domainagg.Validation(op, "Project code cannot be empty")
	case len(code) < projectCodeMinLen:
		return ProjectCode{}, domainagg.Validation(op, "Project code must have at least 3 characters")
	case len(code) > projectCodeMaxLen:
		return ProjectCode{}, domainagg.Validation(op, "Project code length cannot exceed 30 characters")
	case !projectCodePattern.MatchString(code):
		return ProjectCode{}, domainagg.Validation(op, "Project code can only contain letters, numbers, hyphens, underscores and dots")
	}
	return ProjectCode{value: code}, nil
}

func (c ProjectCode) String() string { return c.value }
func (c ProjectCode) IsZero() bool   { return c.value == "" }

func (c ProjectCode) Equal(other ProjectCode) bool { return c.value == other.value }

func (c ProjectCode) Value() (driver.Value, error) { return stringValue(c.value) }

func (c *ProjectCode) Scan(src any) error {
	s, _, err := scanString(src)
	if err != nil {
		return err
	}
	c.value = s
	return nil
}

func (c ProjectCode) MarshalText() ([]byte, error) { return []byte(c.value), nil }

func (c *ProjectCode) UnmarshalText(b []byte) error {
	parsed, err := NewProjectCode(string(b))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}
