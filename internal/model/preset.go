package model

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// RecordingMode is how a transaction is being recorded. It is derived per
// invocation and never persisted.
type RecordingMode int

const (
	ModeCash RecordingMode = iota
	ModeExpenseClaim
	ModeCustomerInvoice
	ModeSupplierInvoice
)

func (m RecordingMode) String() string {
	switch m {
	case ModeCash:
		return "cash"
	case ModeExpenseClaim:
		return "expense_claim"
	case ModeCustomerInvoice:
		return "customer_invoice"
	case ModeSupplierInvoice:
		return "supplier_invoice"
	}
	return fmt.Sprintf("RecordingMode(%d)", int(m))
}

// TemplateRow is one account line of a preset (förval).
type TemplateRow struct {
	AccountCode string `yaml:"account"`
	IsDebitRow  bool   `yaml:"debit,omitempty"`
	IsCreditRow bool   `yaml:"credit,omitempty"`
	Label       string `yaml:"label,omitempty"`
}

// Preset is a reusable bookkeeping template. Presets are supplied by the
// preset repository and treated as read-only.
type Preset struct {
	ID       string          `yaml:"id"`
	Name     string          `yaml:"name"`
	Category string          `yaml:"category,omitempty"`
	VatRate  decimal.Decimal `yaml:"vat_rate"`
	Rows     []TemplateRow   `yaml:"rows"`
}

// HasClass reports whether any row's account is of class c.
func (p Preset) HasClass(c AccountClass) bool {
	for _, r := range p.Rows {
		if ClassOf(r.AccountCode) == c {
			return true
		}
	}
	return false
}
