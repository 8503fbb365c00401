package presets

import (
	"github.com/shopspring/decimal"

	"github.com/verifikat-dev/verifikat/internal/model"
)

func dr(code, label string) model.TemplateRow {
	return model.TemplateRow{AccountCode: code, IsDebitRow: true, Label: label}
}

func cr(code, label string) model.TemplateRow {
	return model.TemplateRow{AccountCode: code, IsCreditRow: true, Label: label}
}

func rate(pct int64) decimal.Decimal {
	return decimal.New(pct, -2)
}

// Default returns the starter presets written by init. Every template is
// authored against the bank account 1930.
func Default() []model.Preset {
	return []model.Preset{
		{ID: "sale-25", Name: "Försäljning 25 % moms", Category: "Försäljning", VatRate: rate(25),
			Rows: []model.TemplateRow{dr("1930", "Inbetalning"), cr("3001", "Försäljning"), cr("2610", "Utgående moms")}},
		{ID: "sale-12", Name: "Försäljning 12 % moms", Category: "Försäljning", VatRate: rate(12),
			Rows: []model.TemplateRow{dr("1930", "Inbetalning"), cr("3002", "Försäljning"), cr("2620", "Utgående moms")}},
		{ID: "sale-6", Name: "Försäljning 6 % moms", Category: "Försäljning", VatRate: rate(6),
			Rows: []model.TemplateRow{dr("1930", "Inbetalning"), cr("3003", "Försäljning"), cr("2630", "Utgående moms")}},
		{ID: "sale-exempt", Name: "Försäljning momsfri", Category: "Försäljning", VatRate: rate(0),
			Rows: []model.TemplateRow{dr("1930", "Inbetalning"), cr("3004", "Försäljning")}},
		{ID: "office-supplies", Name: "Kontorsmateriel", Category: "Inköp", VatRate: rate(25),
			Rows: []model.TemplateRow{cr("1930", "Betalning"), dr("6110", "Kontorsmateriel"), dr("2640", "Ingående moms")}},
		{ID: "equipment", Name: "Förbrukningsinventarier", Category: "Inköp", VatRate: rate(25),
			Rows: []model.TemplateRow{cr("1930", "Betalning"), dr("5410", "Inventarier"), dr("2640", "Ingående moms")}},
		{ID: "consumables", Name: "Förbrukningsmaterial", Category: "Inköp", VatRate: rate(25),
			Rows: []model.TemplateRow{cr("1930", "Betalning"), dr("5460", "Material"), dr("2640", "Ingående moms")}},
		{ID: "materials", Name: "Inköp material och varor", Category: "Inköp", VatRate: rate(25),
			Rows: []model.TemplateRow{cr("1930", "Betalning"), dr("4010", "Material"), dr("2640", "Ingående moms")}},
		{ID: "fuel", Name: "Drivmedel", Category: "Resor", VatRate: rate(25),
			Rows: []model.TemplateRow{cr("1930", "Betalning"), dr("5611", "Drivmedel"), dr("2640", "Ingående moms")}},
		{ID: "travel", Name: "Resekostnader", Category: "Resor", VatRate: rate(6),
			Rows: []model.TemplateRow{cr("1930", "Betalning"), dr("5800", "Resa"), dr("2640", "Ingående moms")}},
		{ID: "representation", Name: "Representation", Category: "Övrigt", VatRate: rate(12),
			Rows: []model.TemplateRow{cr("1930", "Betalning"), dr("6071", "Representation"), dr("2640", "Ingående moms")}},
		{ID: "phone", Name: "Mobiltelefon", Category: "Övrigt", VatRate: rate(25),
			Rows: []model.TemplateRow{cr("1930", "Betalning"), dr("6212", "Telefoni"), dr("2640", "Ingående moms")}},
		{ID: "it-services", Name: "IT-tjänster", Category: "Övrigt", VatRate: rate(25),
			Rows: []model.TemplateRow{cr("1930", "Betalning"), dr("6540", "IT-tjänster"), dr("2640", "Ingående moms")}},
		{ID: "bank-fees", Name: "Bankkostnader", Category: "Övrigt", VatRate: rate(0),
			Rows: []model.TemplateRow{cr("1930", "Betalning"), dr("6570", "Bankavgift")}},
		{ID: "rent", Name: "Lokalhyra", Category: "Övrigt", VatRate: rate(0),
			Rows: []model.TemplateRow{cr("1930", "Betalning"), dr("5010", "Hyra")}},
	}
}
