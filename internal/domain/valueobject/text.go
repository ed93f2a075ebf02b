package valueobject

import (
	"database/sql/driver"
	"fmt"
)

// scanString reads a string-ish column value.
func scanString(src any) (string, bool, error) {
	switch v := src.(type) {
	case nil:
		return "", false, nil
	case string:
		return v, true, nil
	case []byte:
		return string(v), true, nil
	default:
		return "", false, fmt.Errorf("valueobject: cannot scan %T", src)
	}
}

func stringValue(s string) (driver.Value, error) {
	if s == "" {
		return nil, nil
	}
	return s, nil
}
