// Package rotrut computes the ROT/RUT tax deduction on a customer invoice.
package rotrut

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/verifikat-dev/verifikat/internal/model"
	"github.com/verifikat-dev/verifikat/internal/money"
)

// DefaultRate returns the share of labor cost, VAT included, that is deducted
// when no rate is configured.
func DefaultRate() decimal.Decimal {
	return decimal.New(5, -1)
}

// ValidateRate rejects a configured deduction rate outside (0, 1]. An
// explicit zero is an error; leave the rate unset to get DefaultRate.
func ValidateRate(rate decimal.Decimal) error {
	if !rate.IsPositive() || rate.GreaterThan(decimal.NewFromInt(1)) {
		return fmt.Errorf("deduction rate %s must be above 0 and at most 1", rate)
	}
	return nil
}

// Options configure a calculation.
type Options struct {
	// Rate is the deduction share. The zero value means unset and
	// DefaultRate applies.
	Rate   decimal.Decimal
	Policy money.Policy
}

// DefaultOptions returns a 50 % rate with the default rounding policy.
func DefaultOptions() Options {
	return Options{Rate: DefaultRate(), Policy: money.DefaultPolicy()}
}

// Deduction is the result of a calculation. Every amount is rounded once.
type Deduction struct {
	LaborNet     decimal.Decimal
	LaborVat     decimal.Decimal
	LaborGross   decimal.Decimal
	MaterialNet  decimal.Decimal
	InvoiceGross decimal.Decimal
	// Amount is the deduction the buyer claims; Payable is what the buyer
	// pays after it, never negative.
	Amount  decimal.Decimal
	Payable decimal.Decimal
	// ByType is labor gross per ROT/RUT type, before rounding of the total.
	ByType map[model.RotRutType]decimal.Decimal
}

// Calculate partitions the lines by role and computes the deduction. Lines
// that are neither labor nor material count toward the invoice total only.
// There are no error conditions: no labor gives a zero deduction.
func Calculate(lines []model.ArticleLine, opts Options) Deduction {
	rate := opts.Rate
	if rate.IsZero() {
		rate = DefaultRate()
	}
	p := opts.Policy

	var laborNet, laborVat, materialNet, invoiceNet, invoiceVat decimal.Decimal
	byType := map[model.RotRutType]decimal.Decimal{}

	for _, l := range lines {
		net, vat := l.Net(), l.Vat()
		invoiceNet = invoiceNet.Add(net)
		invoiceVat = invoiceVat.Add(vat)

		switch l.EffectiveRole() {
		case model.RoleLabor:
			laborNet = laborNet.Add(net)
			laborVat = laborVat.Add(vat)
			byType[l.RotRut] = byType[l.RotRut].Add(net).Add(vat)
		case model.RoleMaterial:
			materialNet = materialNet.Add(net)
		case model.RoleNone, model.RoleUnset:
		}
	}

	d := Deduction{
		LaborNet:     p.Round(laborNet),
		LaborVat:     p.Round(laborVat),
		MaterialNet:  p.Round(materialNet),
		InvoiceGross: p.Round(invoiceNet).Add(p.Round(invoiceVat)),
		ByType:       byType,
	}
	d.LaborGross = d.LaborNet.Add(d.LaborVat)
	d.Amount = p.Round(rate.Mul(d.LaborGross))
	d.Payable = money.Max(d.InvoiceGross.Sub(d.Amount), decimal.Zero)
	return d
}
