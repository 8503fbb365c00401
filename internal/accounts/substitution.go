package accounts

import "github.com/verifikat-dev/verifikat/internal/model"

// BAS accounts the engine treats specially.
const (
	// Clearing is the placeholder presets use for "where the money goes":
	// the business bank account. Non-cash modes replace it.
	Clearing = "1930"
	// Receivable is kundfordringar.
	Receivable = "1510"
	// Payable is leverantörsskulder.
	Payable = "2440"
	// EmployeeLiability holds unsettled employee expense claims (utlägg).
	EmployeeLiability = "2890"
)

// Substitute translates the clearing placeholder into the balance-sheet
// account required by mode. Every other code, known or not, is returned
// unchanged.
func Substitute(code string, mode model.RecordingMode, isSale bool) string {
	if code != Clearing {
		return code
	}
	switch mode {
	case model.ModeCash:
		return code
	case model.ModeExpenseClaim:
		return EmployeeLiability
	case model.ModeCustomerInvoice:
		return Receivable
	case model.ModeSupplierInvoice:
		if isSale {
			return Receivable
		}
		return Payable
	}
	return code
}

// IsClearing reports whether code is the placeholder or one of the accounts
// it can be substituted with.
func IsClearing(code string) bool {
	switch code {
	case Clearing, Receivable, Payable, EmployeeLiability:
		return true
	}
	return false
}

// DesignatedSide returns the side a substituted clearing account always
// posts on. The placeholder itself has none: in cash mode the preset's own
// flags decide.
func DesignatedSide(code string) (model.Side, bool) {
	switch code {
	case Receivable:
		return model.Debit, true
	case Payable, EmployeeLiability:
		return model.Credit, true
	}
	return model.Debit, false
}
