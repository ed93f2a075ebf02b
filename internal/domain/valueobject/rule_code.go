package valueobject

import (
	"database/sql/driver"
	"regexp"
	"strings"

	domainagg "github.com/yungbote/cleanarch-backend/internal/domain/aggregates"
)

var ruleCodePattern = regexp.MustCompile(`^[A-Z0-9\-]+$`)

// RuleCode identifies a business rule, e.g. "BR-VAL-001".
type RuleCode struct {
	value string
}

func NewRuleCode(raw string) (RuleCode, error) {
	const op = "valueobject.rule_code"
	code := strings.ToUpper(strings.TrimSpace(raw))
	switch {
	case code == "":
		return RuleCode{}, domainagg.Validation(op, "Rule code cannot be empty")
	case len(code) < 5:
		return RuleCode{}, domainagg.Validation(op, "Rule code must have at least 5 characters")
	case len(code) > 20:
		return RuleCode{}, domainagg.Validation(op, "Rule code length cannot exceed 20 characters")
	case !ruleCodePattern.MatchString(code):
		return RuleCode{}, domainagg.Validation(op, "Rule code can only contain letters, numbers, and hyphens")
	}
	return RuleCode{value: code}, nil
}

func (c RuleCode) String() string { return c.value }
func (c RuleCode) IsZero() bool   { return c.value == "" }

func (c RuleCode) Value() (driver.Value, error) { return stringValue(c.value) }

func (c *RuleCode) Scan(src any) error {
	s, _, err := scanString(src)
	if err != nil {
		return err
	}
	c.value = s
	return nil
}

func (c RuleCode) MarshalText() ([]byte, error) { return []byte(c.value), nil }

func (c *RuleCode) UnmarshalText(b []byte) error {
	parsed, err := NewRuleCode(string(b))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}
