package commands

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(y, m, d int) time.Time {
	return time.Date(y, time.Month(m), d, 0, 0, 0, 0, time.UTC)
}

func TestParsePeriod(t *testing.T) {
	tests := []struct {
		in   string
		from time.Time
		to   time.Time
	}{
		{"2025-01", day(2025, 1, 1), day(2025, 1, 31)},
		{"2024-02", day(2024, 2, 1), day(2024, 2, 29)},
		{"2025-Q1", day(2025, 1, 1), day(2025, 3, 31)},
		{"2025-q2", day(2025, 4, 1), day(2025, 6, 30)},
		{"2025-Q4", day(2025, 10, 1), day(2025, 12, 31)},
		{"2025", day(2025, 1, 1), day(2025, 12, 31)},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			p, err := parsePeriod(tt.in)
			require.NoError(t, err)
			assert.True(t, tt.from.Equal(p.From), "from: got %s", p.From)
			assert.True(t, tt.to.Equal(p.To), "to: got %s", p.To)
		})
	}
}

func TestParsePeriod_Invalid(t *testing.T) {
	for _, in := range []string{"", "2025-13", "2025-Q5", "2025-Q0", "25-Q1", "abcd", "Q1-2025", "2025-01-01"} {
		_, err := parsePeriod(in)
		assert.Error(t, err, "input %q", in)
	}
}

func TestResolvePeriod(t *testing.T) {
	p, err := resolvePeriod("", "2025-01-10", "2025-02-05")
	require.NoError(t, err)
	assert.Equal(t, "2025-01-10--2025-02-05", p.String())

	p, err = resolvePeriod("2025-03", "", "")
	require.NoError(t, err)
	assert.Equal(t, "2025-03-01--2025-03-31", p.String())

	tests := []struct {
		name        string
		p, from, to string
	}{
		{"both forms", "2025-03", "2025-01-01", ""},
		{"nothing", "", "", ""},
		{"only from", "", "2025-01-01", ""},
		{"reversed", "", "2025-02-01", "2025-01-01"},
		{"bad from", "", "2025/01/01", "2025-01-31"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := resolvePeriod(tt.p, tt.from, tt.to)
			assert.Error(t, err)
		})
	}
}
