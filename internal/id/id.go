// Package id formats and parses voucher (verifikation) numbers.
package id

import (
	"fmt"
	"strconv"
	"strings"
)

// DefaultSeries is the voucher series used for everything the engine posts.
const DefaultSeries = "A"

// Voucher is a parsed voucher number.
type Voucher struct {
	Series string
	Year   int
	Month  int
	Seq    int
}

// String formats the voucher number.
func (v Voucher) String() string {
	return FormatVoucherID(v.Series, v.Year, v.Month, v.Seq)
}

// FormatVoucherID returns a voucher number like "A-2025-01-001".
func FormatVoucherID(series string, year, month, seq int) string {
	return fmt.Sprintf("%s-%04d-%02d-%03d", series, year, month, seq)
}

// FormatLegID returns a leg ID like "A-2025-01-001a" (leg 0='a', 1='b', etc.).
func FormatLegID(voucherID string, leg int) string {
	return voucherID + string(rune('a'+leg))
}

// ParseVoucherID parses "A-2025-01-001", with or without a leg suffix.
func ParseVoucherID(s string) (Voucher, error) {
	base := EntryGroup(s)

	parts := strings.SplitN(base, "-", 4)
	if len(parts) != 4 {
		return Voucher{}, fmt.Errorf("invalid voucher ID format: %q", s)
	}
	if !validSeries(parts[0]) {
		return Voucher{}, fmt.Errorf("invalid series in voucher ID %q", s)
	}

	v := Voucher{Series: parts[0]}
	var err error
	if v.Year, err = strconv.Atoi(parts[1]); err != nil {
		return Voucher{}, fmt.Errorf("invalid year in voucher ID %q: %w", s, err)
	}
	if v.Month, err = strconv.Atoi(parts[2]); err != nil {
		return Voucher{}, fmt.Errorf("invalid month in voucher ID %q: %w", s, err)
	}
	if v.Month < 1 || v.Month > 12 {
		return Voucher{}, fmt.Errorf("invalid month in voucher ID %q", s)
	}
	if v.Seq, err = strconv.Atoi(parts[3]); err != nil {
		return Voucher{}, fmt.Errorf("invalid sequence in voucher ID %q: %w", s, err)
	}
	return v, nil
}

// EntryGroup strips the leg suffix from a leg ID.
// "A-2025-01-001a" -> "A-2025-01-001"
func EntryGroup(legID string) string {
	i := len(legID)
	for i > 0 && legID[i-1] >= 'a' && legID[i-1] <= 'z' {
		i--
	}
	return legID[:i]
}

func validSeries(s string) bool {
	if s == "" {
		return false
	}
	for _, c := range s {
		if c < 'A' || c > 'Z' {
			return false
		}
	}
	return true
}
