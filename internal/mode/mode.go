// Package mode derives the recording mode of a bookkeeping invocation.
package mode

import "github.com/verifikat-dev/verifikat/internal/model"

// Flags are the workflow flags supplied by the caller. At most one is
// expected to be set.
type Flags struct {
	IsExpenseClaim        bool
	IsCustomerInvoiceFlow bool
	IsSupplierInvoiceFlow bool
}

// Resolution is the derived mode plus the sale heuristic, computed once per
// invocation and reused by the row calculator.
type Resolution struct {
	Mode   model.RecordingMode
	IsSale bool
}

// Resolve derives the recording mode. Exactly one set flag selects its mode;
// no flag, or an ambiguous combination, resolves to cash.
func Resolve(flags Flags, preset model.Preset) Resolution {
	return Resolution{Mode: modeOf(flags), IsSale: IsSale(preset)}
}

func modeOf(f Flags) model.RecordingMode {
	set := 0
	for _, b := range []bool{f.IsExpenseClaim, f.IsCustomerInvoiceFlow, f.IsSupplierInvoiceFlow} {
		if b {
			set++
		}
	}
	if set != 1 {
		return model.ModeCash
	}
	switch {
	case f.IsExpenseClaim:
		return model.ModeExpenseClaim
	case f.IsCustomerInvoiceFlow:
		return model.ModeCustomerInvoice
	default:
		return model.ModeSupplierInvoice
	}
}

// IsSale reports whether the preset books revenue: at least one class 3
// account and no cost account (class 4-8). A preset with both is not a sale.
func IsSale(preset model.Preset) bool {
	return preset.HasClass(model.ClassRevenue) && !preset.HasClass(model.ClassCost)
}
