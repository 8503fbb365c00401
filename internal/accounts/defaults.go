package accounts

import "github.com/verifikat-dev/verifikat/internal/model"

// Company forms with a default chart.
const (
	FormAktiebolag   = "aktiebolag"
	FormEnskildFirma = "enskild_firma"
)

// DefaultChart returns a BAS 2025 subset for a company form. Unknown forms
// fall back to aktiebolag.
func DefaultChart(companyForm string) []model.Account {
	switch companyForm {
	case FormEnskildFirma:
		return append(commonChart(), enskildEquity()...)
	default:
		return append(commonChart(), aktiebolagEquity()...)
	}
}

func commonChart() []model.Account {
	return []model.Account{
		{Code: "1510", Name: "Kundfordringar", Description: "Receivable from customer invoices"},
		{Code: "1630", Name: "Skattekonto", Description: "Tax account at Skatteverket"},
		{Code: "1910", Name: "Kassa"},
		{Code: Clearing, Name: "Företagskonto", Description: "Business bank account"},
		{Code: Payable, Name: "Leverantörsskulder", Description: "Payable from supplier invoices"},
		{Code: "2610", Name: "Utgående moms 25 %", VatBox: "10"},
		{Code: "2614", Name: "Utgående moms omvänd skattskyldighet 25 %", VatBox: "30"},
		{Code: "2615", Name: "Utgående moms import av varor 25 %", VatBox: "60"},
		{Code: "2620", Name: "Utgående moms 12 %", VatBox: "11"},
		{Code: "2624", Name: "Utgående moms omvänd skattskyldighet 12 %", VatBox: "31"},
		{Code: "2630", Name: "Utgående moms 6 %", VatBox: "12"},
		{Code: "2634", Name: "Utgående moms omvänd skattskyldighet 6 %", VatBox: "32"},
		{Code: "2640", Name: "Ingående moms", VatBox: "48"},
		{Code: "2645", Name: "Beräknad ingående moms på förvärv från utlandet", VatBox: "48"},
		{Code: "2650", Name: "Redovisningskonto för moms", Description: "Settlement account, not reported"},
		{Code: EmployeeLiability, Name: "Övriga kortfristiga skulder", Description: "Outstanding employee expense claims"},
		{Code: "3001", Name: "Försäljning inom Sverige, 25 % moms", VatBox: "05"},
		{Code: "3002", Name: "Försäljning inom Sverige, 12 % moms", VatBox: "05"},
		{Code: "3003", Name: "Försäljning inom Sverige, 6 % moms", VatBox: "05"},
		{Code: "3004", Name: "Försäljning inom Sverige, momsfri", VatBox: "42"},
		{Code: "3105", Name: "Försäljning varor till land utanför EU", VatBox: "36"},
		{Code: "3106", Name: "Försäljning varor till annat EU-land, momsfri", VatBox: "35"},
		{Code: "3308", Name: "Försäljning tjänster till annat EU-land", VatBox: "39"},
		{Code: "3305", Name: "Försäljning tjänster till land utanför EU", VatBox: "40"},
		{Code: "4010", Name: "Inköp material och varor"},
		{Code: "4515", Name: "Inköp av varor från annat EU-land, 25 %", VatBox: "20"},
		{Code: "4531", Name: "Import tjänster land utanför EU, 25 %", VatBox: "22"},
		{Code: "4535", Name: "Inköp av tjänster från annat EU-land, 25 %", VatBox: "21"},
		{Code: "4545", Name: "Import av varor, 25 % moms", VatBox: "50"},
		{Code: "5010", Name: "Lokalhyra"},
		{Code: "5410", Name: "Förbrukningsinventarier"},
		{Code: "5460", Name: "Förbrukningsmaterial"},
		{Code: "5611", Name: "Drivmedel för personbilar"},
		{Code: "5800", Name: "Resekostnader"},
		{Code: "6071", Name: "Representation, avdragsgill"},
		{Code: "6110", Name: "Kontorsmateriel"},
		{Code: "6212", Name: "Mobiltelefon"},
		{Code: "6540", Name: "IT-tjänster"},
		{Code: "6570", Name: "Bankkostnader"},
		{Code: "7010", Name: "Löner till kollektivanställda"},
		{Code: "8410", Name: "Räntekostnader för långfristiga skulder"},
	}
}

func aktiebolagEquity() []model.Account {
	return []model.Account{
		{Code: "2081", Name: "Aktiekapital"},
		{Code: "2091", Name: "Balanserad vinst eller förlust"},
		{Code: "2893", Name: "Skulder till närstående personer, kortfristig del"},
	}
}

func enskildEquity() []model.Account {
	return []model.Account{
		{Code: "2010", Name: "Eget kapital"},
		{Code: "2013", Name: "Övriga egna uttag"},
		{Code: "2018", Name: "Övriga egna insättningar"},
	}
}
