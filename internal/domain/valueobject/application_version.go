package valueobject

import (
	"database/sql/driver"
	"fmt"
	"strconv"
	"strings"

	"github.com/Masterminds/semver/v3"

	domainagg "github.com/yungbote/cleanarch-backend/internal/domain/aggregates"
)

// ApplicationVersion is a strict MAJOR.MINOR.PATCH version. Prerelease and
// build metadata are not accepted.
type ApplicationVersion struct {
	v *semver.Version
}

func NewApplicationVersion(raw string) (ApplicationVersion, error) {
	const op = "valueobject.application_version"
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ApplicationVersion{}, domainagg.Validation(op, "Version cannot be empty")
	}
	v, err := parseTriple(raw)
	if err != nil {
		return ApplicationVersion{}, domainagg.NewError(domainagg.CodeValidation, op, "Version must follow SemVer format: MAJOR.MINOR.PATCH", err)
	}
	return ApplicationVersion{v: v}, nil
}

// parseTriple accepts exactly three unsigned decimal parts. Leading zeros are
// allowed and dropped, so "1.02.3" is 1.2.3.
func parseTriple(raw string) (*semver.Version, error) {
	parts := strings.Split(raw, ".")
	if len(parts) != 3 {
		return nil, fmt.Errorf("version %q: want 3 parts, got %d", raw, len(parts))
	}
	var nums [3]uint64
	for i, p := range parts {
		n, err := strconv.ParseUint(p, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("version %q: %w", raw, err)
		}
		nums[i] = n
	}
	return semver.New(nums[0], nums[1], nums[2], "", ""), nil
}

// InitialVersion is 1.0.0.
func InitialVersion() ApplicationVersion {
	return ApplicationVersion{v: semver.New(1, 0, 0, "", "")}
}

func (a ApplicationVersion) version() *semver.Version {
	if a.v == nil {
		return semver.New(0, 0, 0, "", "")
	}
	return a.v
}

func (a ApplicationVersion) Major() uint64 { return a.version().Major() }
func (a ApplicationVersion) Minor() uint64 { return a.version().Minor() }
func (a ApplicationVersion) Patch() uint64 { return a.version().Patch() }

func (a ApplicationVersion) IsZero() bool { return a.v == nil }

// Compare returns -1, 0 or 1 ordering by major, then minor, then patch.
func (a ApplicationVersion) Compare(other ApplicationVersion) int {
	return a.version().Compare(other.version())
}

func (a ApplicationVersion) GreaterThan(other ApplicationVersion) bool {
	return a.Compare(other) > 0
}

func (a ApplicationVersion) IncrementMajor() ApplicationVersion {
	next := a.version().IncMajor()
	return ApplicationVersion{v: &next}
}

func (a ApplicationVersion) IncrementMinor() ApplicationVersion {
	next := a.version().IncMinor()
	return ApplicationVersion{v: &next}
}

func (a ApplicationVersion) IncrementPatch() ApplicationVersion {
	next := a.version().IncPatch()
	return ApplicationVersion{v: &next}
}

func (a ApplicationVersion) String() string { return a.version().String() }

func (a ApplicationVersion) Value() (driver.Value, error) {
	if a.v == nil {
		return nil, nil
	}
	return a.v.String(), nil
}

func (a *ApplicationVersion) Scan(src any) error {
	s, ok, err := scanString(src)
	if err != nil || !ok || s == "" {
		a.v = nil
		return err
	}
	v, err := parseTriple(s)
	if err != nil {
		return err
	}
	a.v = v
	return nil
}

func (a ApplicationVersion) MarshalText() ([]byte, error) { return []byte(a.String()), nil }

func (a *ApplicationVersion) UnmarshalText(b []byte) error {
	parsed, err := NewApplicationVersion(string(b))
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}
