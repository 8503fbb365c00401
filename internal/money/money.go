// Package money holds the single rounding policy and amount parsing used by
// every calculation in the engine. Derived quantities (VAT, deductions,
// totals) are rounded once, through Policy.Round, and nowhere else.
package money

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// RoundingMode selects how a derived amount is brought to Policy.Places.
type RoundingMode int

const (
	// HalfUp rounds half away from zero (1.005 -> 1.01, -1.005 -> -1.01).
	HalfUp RoundingMode = iota
	// HalfEven is banker's rounding (1.005 -> 1.00, 1.015 -> 1.02).
	HalfEven
	// Truncate drops digits beyond Places.
	Truncate
)

func (m RoundingMode) String() string {
	switch m {
	case HalfUp:
		return "half_up"
	case HalfEven:
		return "half_even"
	case Truncate:
		return "truncate"
	}
	return fmt.Sprintf("RoundingMode(%d)", int(m))
}

// ParseRoundingMode parses the config spelling of a RoundingMode.
func ParseRoundingMode(s string) (RoundingMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "half_up", "halfup":
		return HalfUp, nil
	case "half_even", "halfeven", "bank":
		return HalfEven, nil
	case "truncate":
		return Truncate, nil
	}
	return HalfUp, fmt.Errorf("unknown rounding mode %q", s)
}

// Policy is the rounding policy applied to derived amounts.
type Policy struct {
	Mode   RoundingMode
	Places int32
}

// DefaultPolicy rounds half-up to öre (two decimals).
func DefaultPolicy() Policy {
	return Policy{Mode: HalfUp, Places: 2}
}

// Round applies the policy to d.
func (p Policy) Round(d decimal.Decimal) decimal.Decimal {
	switch p.Mode {
	case HalfEven:
		return d.RoundBank(p.Places)
	case Truncate:
		return d.Truncate(p.Places)
	default:
		return d.Round(p.Places)
	}
}

var (
	// Tolerance is the largest debit/credit difference still considered
	// balanced: one öre.
	Tolerance = decimal.New(1, -2)

	// MaxGross is the upper bound for a single gross amount in SEK.
	MaxGross = decimal.NewFromInt(999_999_999)

	// ErrEmptyAmount is returned by ParseAmount for blank input.
	ErrEmptyAmount = errors.New("empty amount")
)

// ParseAmount parses a SEK amount as typed by a user. Both "1250.50" and the
// Swedish "1 250,50" are accepted; spaces (including non-breaking) are
// treated as digit grouping.
func ParseAmount(s string) (decimal.Decimal, error) {
	clean := strings.Map(func(r rune) rune {
		if r == ' ' || r == '\u00a0' || r == '\u202f' {
			return -1
		}
		return r
	}, strings.TrimSpace(s))
	if clean == "" {
		return decimal.Zero, ErrEmptyAmount
	}

	if strings.Contains(clean, ",") {
		// "1.250,50": dots are grouping, the comma is the decimal mark.
		clean = strings.ReplaceAll(clean, ".", "")
		clean = strings.Replace(clean, ",", ".", 1)
	}

	d, err := decimal.NewFromString(clean)
	if err != nil {
		return decimal.Zero, fmt.Errorf("parsing amount %q: %w", s, err)
	}
	return d, nil
}

// ParseRate parses a VAT or deduction rate. It accepts "0.25", "0,25" and
// "25%". Blank means zero.
func ParseRate(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero, nil
	}
	pct := strings.HasSuffix(s, "%")
	d, err := ParseAmount(strings.TrimSuffix(s, "%"))
	if err != nil {
		return decimal.Zero, err
	}
	if pct {
		d = d.Shift(-2)
	}
	if d.IsNegative() || d.GreaterThan(decimal.NewFromInt(1)) {
		return decimal.Zero, fmt.Errorf("rate %q out of range", s)
	}
	return d, nil
}

// HasAtMostPlaces reports whether d has no more than n decimal places.
func HasAtMostPlaces(d decimal.Decimal, n int32) bool {
	return d.Equal(d.Truncate(n))
}

// WithinTolerance reports whether |a - b| <= Tolerance.
func WithinTolerance(a, b decimal.Decimal) bool {
	return a.Sub(b).Abs().LessThanOrEqual(Tolerance)
}

// Max returns the larger of a and b.
func Max(a, b decimal.Decimal) decimal.Decimal {
	if a.GreaterThan(b) {
		return a
	}
	return b
}
