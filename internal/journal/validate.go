package journal

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/verifikat-dev/verifikat/internal/id"
	"github.com/verifikat-dev/verifikat/internal/model"
	"github.com/verifikat-dev/verifikat/internal/money"
)

// ValidationError describes a single invariant violation.
type ValidationError struct {
	Invariant   int
	EntryID     string
	Description string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("invariant %d [%s]: %s", e.Invariant, e.EntryID, e.Description)
}

// AccountChecker tests whether an account code exists in the chart of accounts.
type AccountChecker interface {
	Exists(code string) bool
}

// ValidateLegs enforces the ledger invariants on the legs of one month:
//
//  1. each voucher balances within money.Tolerance
//  2. each leg has exactly one positive side
//  3. accounts exist in the chart
//  4. dates fall in the month
//  5. voucher numbers are valid and contiguous 1..N per series
//  6. amounts have at most two decimals
//  7. status is known
func ValidateLegs(legs []model.Leg, accounts AccountChecker, year, month int) []ValidationError {
	var errs []ValidationError

	// Group legs by voucher.
	groups := make(map[string][]model.Leg)
	var groupOrder []string
	for _, leg := range legs {
		g := leg.EntryGroup()
		if _, seen := groups[g]; !seen {
			groupOrder = append(groupOrder, g)
		}
		groups[g] = append(groups[g], leg)
	}

	for _, g := range groupOrder {
		totalDebit := decimal.Zero
		totalCredit := decimal.Zero
		for _, leg := range groups[g] {
			totalDebit = totalDebit.Add(leg.Debit)
			totalCredit = totalCredit.Add(leg.Credit)
		}
		if !money.WithinTolerance(totalDebit, totalCredit) {
			errs = append(errs, ValidationError{
				Invariant:   1,
				EntryID:     g,
				Description: fmt.Sprintf("debits (%s) != credits (%s)", totalDebit.StringFixed(2), totalCredit.StringFixed(2)),
			})
		}
	}

	for _, leg := range legs {
		hasDebit := !leg.Debit.IsZero()
		hasCredit := !leg.Credit.IsZero()
		if hasDebit == hasCredit {
			errs = append(errs, ValidationError{
				Invariant:   2,
				EntryID:     leg.EntryID,
				Description: "leg must have exactly one of debit or credit",
			})
		} else if leg.Debit.IsNegative() || leg.Credit.IsNegative() {
			errs = append(errs, ValidationError{
				Invariant:   2,
				EntryID:     leg.EntryID,
				Description: "amounts must be positive",
			})
		}

		if !accounts.Exists(leg.AccountCode) {
			errs = append(errs, ValidationError{
				Invariant:   3,
				EntryID:     leg.EntryID,
				Description: fmt.Sprintf("unknown account %s", leg.AccountCode),
			})
		}

		if leg.Date.Year() != year || int(leg.Date.Month()) != month {
			errs = append(errs, ValidationError{
				Invariant:   4,
				EntryID:     leg.EntryID,
				Description: fmt.Sprintf("date %s not in %04d-%02d", leg.Date.Format(dateFormat), year, month),
			})
		}

		if !money.HasAtMostPlaces(leg.Debit, 2) {
			errs = append(errs, ValidationError{
				Invariant:   6,
				EntryID:     leg.EntryID,
				Description: fmt.Sprintf("debit %s has more than 2 decimal places", leg.Debit),
			})
		}
		if !money.HasAtMostPlaces(leg.Credit, 2) {
			errs = append(errs, ValidationError{
				Invariant:   6,
				EntryID:     leg.EntryID,
				Description: fmt.Sprintf("credit %s has more than 2 decimal places", leg.Credit),
			})
		}

		switch leg.Status {
		case model.StatusPosted, model.StatusCorrection:
		default:
			errs = append(errs, ValidationError{
				Invariant:   7,
				EntryID:     leg.EntryID,
				Description: fmt.Sprintf("unknown status %q", leg.Status),
			})
		}
	}

	// Legs of one voucher share a sequence number, so collect per series.
	seqSeen := make(map[string]map[int]bool)
	var seriesOrder []string
	for _, leg := range legs {
		v, err := id.ParseVoucherID(leg.EntryID)
		if err != nil {
			errs = append(errs, ValidationError{
				Invariant:   5,
				EntryID:     leg.EntryID,
				Description: fmt.Sprintf("invalid voucher ID: %v", err),
			})
			continue
		}
		if v.Year != year || v.Month != month {
			errs = append(errs, ValidationError{
				Invariant:   5,
				EntryID:     leg.EntryID,
				Description: fmt.Sprintf("voucher number not in %04d-%02d", year, month),
			})
		}
		if seqSeen[v.Series] == nil {
			seqSeen[v.Series] = make(map[int]bool)
			seriesOrder = append(seriesOrder, v.Series)
		}
		seqSeen[v.Series][v.Seq] = true
	}
	for _, series := range seriesOrder {
		seen := seqSeen[series]
		for i := 1; i <= len(seen); i++ {
			if !seen[i] {
				errs = append(errs, ValidationError{
					Invariant:   5,
					EntryID:     fmt.Sprintf("%s seq %d", series, i),
					Description: fmt.Sprintf("missing sequence %d in 1..%d", i, len(seen)),
				})
			}
		}
	}

	return errs
}
