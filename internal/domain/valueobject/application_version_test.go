package valueobject

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewApplicationVersionAcceptsStrictTriples(t *testing.T) {
	for _, raw := range []string{"1.0.0", "2.1.0", "10.20.30", "0.0.1"} {
		v, err := NewApplicationVersion(raw)
		require.NoError(t, err, raw)
		assert.Equal(t, raw, v.String())
	}
}

func TestNewApplicationVersionDropsLeadingZeros(t *testing.T) {
	cases := map[string]string{
		"1.02.3": "1.2.3",
		"01.0.0": "1.0.0",
		"1.0.00": "1.0.0",
	}
	for raw, want := range cases {
		v, err := NewApplicationVersion(raw)
		require.NoError(t, err, raw)
		assert.Equal(t, want, v.String())
	}
}

func TestNewApplicationVersionRejects(t *testing.T) {
	for _, raw := range []string{"", "   ", "1.0", "1", "v1.0.0", "1.0.0.0", "1.a.0", "-1.0.0", "1.0.0-beta", "1.0.0+build", "1..0", "+1.0.0", "1.0. 0"} {
		_, err := NewApplicationVersion(raw)
		assert.Error(t, err, raw)
	}
}

func TestApplicationVersionCompare(t *testing.T) {
	mustVersion := func(raw string) ApplicationVersion {
		v, err := NewApplicationVersion(raw)
		require.NoError(t, err)
		return v
	}
	cases := []struct {
		a, b string
		want int
	}{
		{"1.0.0", "1.0.0", 0},
		{"2.0.0", "1.9.9", 1},
		{"1.2.0", "1.10.0", -1},
		{"1.2.3", "1.2.4", -1},
		{"0.10.0", "0.9.99", 1},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, mustVersion(tc.a).Compare(mustVersion(tc.b)), "%s vs %s", tc.a, tc.b)
	}
}

func TestApplicationVersionIncrements(t *testing.T) {
	v, err := NewApplicationVersion("1.2.3")
	require.NoError(t, err)

	assert.Equal(t, "2.0.0", v.IncrementMajor().String())
	assert.Equal(t, "1.3.0", v.IncrementMinor().String())
	assert.Equal(t, "1.2.4", v.IncrementPatch().String())
	assert.Equal(t, "1.2.3", v.String(), "increments must not mutate the receiver")
}

func TestApplicationVersionScan(t *testing.T) {
	var v ApplicationVersion
	require.NoError(t, v.Scan([]byte("3.4.5")))
	assert.Equal(t, uint64(3), v.Major())
	assert.Equal(t, uint64(4), v.Minor())
	assert.Equal(t, uint64(5), v.Patch())
}
