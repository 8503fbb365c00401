package id

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatVoucherID(t *testing.T) {
	tests := []struct {
		series           string
		year, month, seq int
		want             string
	}{
		{"A", 2025, 1, 1, "A-2025-01-001"},
		{"A", 2025, 12, 99, "A-2025-12-099"},
		{"B", 2025, 1, 123, "B-2025-01-123"},
	}
	for _, tt := range tests {
		got := FormatVoucherID(tt.series, tt.year, tt.month, tt.seq)
		assert.Equal(t, tt.want, got)
	}
}

func TestFormatLegID(t *testing.T) {
	tests := []struct {
		voucherID string
		leg       int
		want      string
	}{
		{"A-2025-01-001", 0, "A-2025-01-001a"},
		{"A-2025-01-001", 1, "A-2025-01-001b"},
		{"A-2025-01-001", 2, "A-2025-01-001c"},
	}
	for _, tt := range tests {
		got := FormatLegID(tt.voucherID, tt.leg)
		assert.Equal(t, tt.want, got)
	}
}

func TestParseVoucherID(t *testing.T) {
	tests := []struct {
		input string
		want  Voucher
	}{
		{"A-2025-01-001", Voucher{"A", 2025, 1, 1}},
		{"A-2025-12-099", Voucher{"A", 2025, 12, 99}},
		{"A-2025-01-001a", Voucher{"A", 2025, 1, 1}},
		{"B-2025-01-001b", Voucher{"B", 2025, 1, 1}},
	}
	for _, tt := range tests {
		got, err := ParseVoucherID(tt.input)
		require.NoError(t, err, "input: %s", tt.input)
		assert.Equal(t, tt.want, got)
		assert.Equal(t, EntryGroup(tt.input), got.String())
	}
}

func TestParseVoucherID_Errors(t *testing.T) {
	badInputs := []string{
		"",
		"not-valid",
		"A-2025-01",
		"2025-01-001",
		"a-2025-01-001",
		"A-xxxx-01-001",
		"A-2025-13-001",
		"A-2025-01-0x1",
	}
	for _, input := range badInputs {
		_, err := ParseVoucherID(input)
		assert.Error(t, err, "expected error for input: %s", input)
	}
}

func TestEntryGroup(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"A-2025-01-001a", "A-2025-01-001"},
		{"A-2025-01-001b", "A-2025-01-001"},
		{"A-2025-01-001", "A-2025-01-001"},
		{"", ""},
	}
	for _, tt := range tests {
		got := EntryGroup(tt.input)
		assert.Equal(t, tt.want, got)
	}
}
