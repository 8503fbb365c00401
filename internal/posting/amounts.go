package posting

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/verifikat-dev/verifikat/internal/accounts"
	"github.com/verifikat-dev/verifikat/internal/model"
	"github.com/verifikat-dev/verifikat/internal/money"
)

// Amounts are the three figures a row can post, derived once per
// transaction.
type Amounts struct {
	Gross decimal.Decimal
	Net   decimal.Decimal
	Vat   decimal.Decimal
}

// SplitGross extracts VAT from a gross amount: vat = round(gross*rate/(1+rate)),
// net = gross - vat. VAT is the only rounded figure, so net+vat == gross
// exactly.
func SplitGross(gross, rate decimal.Decimal, policy money.Policy) Amounts {
	vat := decimal.Zero
	if rate.IsPositive() {
		vat = policy.Round(gross.Mul(rate).Div(decimal.NewFromInt(1).Add(rate)))
	}
	return Amounts{Gross: gross, Net: gross.Sub(vat), Vat: vat}
}

// CalculateRowAmount returns the amount a row posts on side, for an account code that
// has already been substituted.
//
//	clearing accounts          gross
//	class 1                    net on debit, gross on credit
//	class 2                    vat
//	class 3, classes 4-8       net
//
// Any other code posts zero and is dropped by the assembler.
func CalculateRowAmount(code string, side model.Side, a Amounts) decimal.Decimal {
	if accounts.IsClearing(code) {
		return a.Gross
	}
	switch model.ClassOf(code) {
	case model.ClassAsset:
		if side == model.Debit {
			return a.Net
		}
		return a.Gross
	case model.ClassLiability:
		return a.Vat
	case model.ClassRevenue, model.ClassCost:
		return a.Net
	case model.ClassOther, model.ClassUnknown:
		return decimal.Zero
	}
	return decimal.Zero
}

// invertible reports whether a row follows the sale sign inversion: revenue
// accounts and VAT accounts (26xx).
func invertible(code string) bool {
	return model.ClassOf(code) == model.ClassRevenue || strings.HasPrefix(code, "26")
}
