package posting

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

var (
	// ErrInvalidInput is matched by every *ValidationError.
	ErrInvalidInput = errors.New("invalid posting input")

	// ErrUnbalanced is matched by every *BalanceError.
	ErrUnbalanced = errors.New("transaction does not balance")
)

// ValidationError is a caller-correctable problem with the input. No
// computation has been performed when it is returned.
type ValidationError struct {
	Field   string
	Value   any
	Message string
	// Err is an optional sentinel such as ErrEmptyTemplate.
	Err error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s (%v): %s", e.Field, e.Value, e.Message)
}

// Unwrap lets errors.Is match ErrInvalidInput and Err.
func (e *ValidationError) Unwrap() []error {
	if e.Err != nil {
		return []error{ErrInvalidInput, e.Err}
	}
	return []error{ErrInvalidInput}
}

// BalanceError is returned when the assembled postings do not balance
// within one öre. The result must not be persisted.
type BalanceError struct {
	SumDebit  decimal.Decimal
	SumCredit decimal.Decimal
}

func (e *BalanceError) Error() string {
	return fmt.Sprintf("transaction does not balance: debit %s != credit %s (diff %s)",
		e.SumDebit.StringFixed(2), e.SumCredit.StringFixed(2), e.Difference().StringFixed(2))
}

// Difference returns debit minus credit.
func (e *BalanceError) Difference() decimal.Decimal {
	return e.SumDebit.Sub(e.SumCredit)
}

// Unwrap lets errors.Is(err, ErrUnbalanced) match.
func (e *BalanceError) Unwrap() error {
	return ErrUnbalanced
}
