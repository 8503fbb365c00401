package vat

import (
	"fmt"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/verifikat-dev/verifikat/internal/model"
)

// Box 49 is the output VAT boxes minus box 48.
var outputBoxes = []string{"10", "11", "12", "30", "31", "32", "60", "61", "62"}

const inputBox = "48"

// Report is the classification of one period.
type Report struct {
	// Boxes holds every box that received a contribution, plus box 49.
	Boxes map[string]decimal.Decimal
	// Entries are the boxes in declaration order.
	Entries []model.VatBoxEntry
	// Unmapped and Excluded list the distinct account codes that fed no
	// box, sorted.
	Unmapped []string
	Excluded []string
}

// Box returns the amount of a box, zero when it received nothing.
func (r Report) Box(code string) decimal.Decimal {
	if v, ok := r.Boxes[code]; ok {
		return v
	}
	return decimal.Zero
}

// Box49 returns the derived VAT to pay (positive) or reclaim (negative).
func (r Report) Box49() decimal.Decimal {
	return r.Box(Box49)
}

// Classify accumulates every row into the boxes it feeds and derives box 49.
// Codes the rule table does not recognize, malformed ones included, feed no
// box and are listed in Unmapped. A row with a negative amount fails the
// whole period; there is no partial report.
func Classify(rows []model.PostedRow) (Report, error) {
	boxes := map[string]decimal.Decimal{}
	unmapped := map[string]bool{}
	excl := map[string]bool{}

	for i, row := range rows {
		if row.Debit.IsNegative() || row.Credit.IsNegative() {
			return Report{}, fmt.Errorf("row %d: account %s: negative amount", i+1, row.AccountCode)
		}

		matched, m := Lookup(row.AccountCode)
		switch m {
		case Excluded:
			excl[row.AccountCode] = true
			continue
		case Unmapped:
			unmapped[row.AccountCode] = true
			continue
		case Mapped:
		}
		for _, r := range matched {
			boxes[r.Box] = boxes[r.Box].Add(contribution(r.Direction, row))
		}
	}

	box49 := decimal.Zero
	for _, b := range outputBoxes {
		box49 = box49.Add(boxes[b])
	}
	box49 = box49.Sub(boxes[inputBox])
	boxes[Box49] = box49

	return Report{
		Boxes:    boxes,
		Entries:  entries(boxes),
		Unmapped: sortedKeys(unmapped),
		Excluded: sortedKeys(excl),
	}, nil
}

// SignConventionTotal sums credit minus debit over every VAT account. Input
// VAT is debit-normal, so the total equals box 49 computed box by box.
func SignConventionTotal(rows []model.PostedRow) decimal.Decimal {
	total := decimal.Zero
	for _, row := range rows {
		if IsVatAccount(row.AccountCode) {
			total = total.Add(row.Credit.Sub(row.Debit))
		}
	}
	return total
}

func contribution(dir Direction, row model.PostedRow) decimal.Decimal {
	if dir == DebitMinusCredit {
		return row.Debit.Sub(row.Credit)
	}
	return row.Credit.Sub(row.Debit)
}

func entries(boxes map[string]decimal.Decimal) []model.VatBoxEntry {
	out := make([]model.VatBoxEntry, 0, len(boxes))
	for box, amt := range boxes {
		out = append(out, model.VatBoxEntry{BoxCode: box, Label: Label(box), Amount: amt})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].BoxCode < out[j].BoxCode })
	return out
}

func sortedKeys(m map[string]bool) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
