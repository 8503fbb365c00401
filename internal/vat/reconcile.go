package vat

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// DivergenceError is returned when the derived box 49 differs from an
// independently recorded figure by more than the tolerance.
type DivergenceError struct {
	Derived   decimal.Decimal
	Recorded  decimal.Decimal
	Tolerance decimal.Decimal
}

func (e *DivergenceError) Error() string {
	return fmt.Sprintf("box 49 diverges: derived %s, recorded %s (tolerance %s)",
		e.Derived.StringFixed(2), e.Recorded.StringFixed(2), e.Tolerance.StringFixed(2))
}

// Difference returns derived minus recorded.
func (e *DivergenceError) Difference() decimal.Decimal {
	return e.Derived.Sub(e.Recorded)
}

// Reconcile compares the derived box 49 with a recorded figure.
func Reconcile(report Report, recorded, tolerance decimal.Decimal) error {
	derived := report.Box49()
	if derived.Sub(recorded).Abs().GreaterThan(tolerance) {
		return &DivergenceError{Derived: derived, Recorded: recorded, Tolerance: tolerance}
	}
	return nil
}
