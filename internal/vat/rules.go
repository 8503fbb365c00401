// Package vat classifies posted ledger rows into momsdeklaration boxes
// (SKV 4700) and derives box 49.
package vat

import "sort"

// Direction selects how a row's debit and credit contribute to a box.
type Direction int

const (
	// CreditMinusDebit is used by sales bases and output VAT.
	CreditMinusDebit Direction = iota
	// DebitMinusCredit is used by purchase bases and input VAT (box 48).
	DebitMinusCredit
)

// Kind separates VAT amounts from the bases they are computed on.
type Kind int

const (
	KindBase Kind = iota
	KindOutputVat
	KindInputVat
)

// Membership is the result of looking up an account in the rule table.
type Membership int

const (
	// Unmapped accounts feed no box and are not known to be irrelevant.
	Unmapped Membership = iota
	// Mapped accounts feed at least one box.
	Mapped
	// Excluded accounts deliberately feed no box.
	Excluded
)

func (m Membership) String() string {
	switch m {
	case Mapped:
		return "mapped"
	case Excluded:
		return "excluded"
	default:
		return "unmapped"
	}
}

// Box49 is the derived box: VAT to pay or to be refunded.
const Box49 = "49"

const box49Label = "Moms att betala eller få tillbaka"

type codeRange struct {
	from, to string
}

func (r codeRange) contains(code string) bool {
	return code >= r.from && code <= r.to
}

// Rule maps a set of BAS accounts to one box.
type Rule struct {
	Box       string
	Label     string
	Kind      Kind
	Direction Direction
	ranges    []codeRange
}

// Matches reports whether code feeds the rule's box.
func (r Rule) Matches(code string) bool {
	if !numeric(code) {
		return false
	}
	for _, cr := range r.ranges {
		if cr.contains(code) {
			return true
		}
	}
	return false
}

func span(from, to string) codeRange { return codeRange{from, to} }
func one(code string) codeRange      { return codeRange{code, code} }

var rules = []Rule{
	{"05", "Momspliktig försäljning som inte ingår i annan ruta", KindBase, CreditMinusDebit, []codeRange{span("3000", "3003"), span("3010", "3099")}},
	{"06", "Momspliktiga uttag", KindBase, CreditMinusDebit, []codeRange{span("3401", "3409")}},
	{"07", "Beskattningsunderlag vid vinstmarginalbeskattning", KindBase, CreditMinusDebit, []codeRange{span("3200", "3209")}},
	{"08", "Hyresinkomster vid frivillig skattskyldighet", KindBase, CreditMinusDebit, []codeRange{span("3911", "3913")}},
	{"10", "Utgående moms 25 %", KindOutputVat, CreditMinusDebit, []codeRange{span("2610", "2613")}},
	{"11", "Utgående moms 12 %", KindOutputVat, CreditMinusDebit, []codeRange{span("2620", "2623")}},
	{"12", "Utgående moms 6 %", KindOutputVat, CreditMinusDebit, []codeRange{span("2630", "2633")}},
	{"20", "Inköp av varor från ett annat EU-land", KindBase, DebitMinusCredit, []codeRange{span("4515", "4517")}},
	{"21", "Inköp av tjänster från ett annat EU-land", KindBase, DebitMinusCredit, []codeRange{span("4535", "4537")}},
	{"22", "Inköp av tjänster från ett land utanför EU", KindBase, DebitMinusCredit, []codeRange{span("4531", "4533")}},
	{"23", "Inköp av varor i Sverige som köparen är skattskyldig för", KindBase, DebitMinusCredit, []codeRange{span("4415", "4417")}},
	{"24", "Övriga inköp av tjänster", KindBase, DebitMinusCredit, []codeRange{span("4425", "4427")}},
	{"30", "Utgående moms 25 % på inköp", KindOutputVat, CreditMinusDebit, []codeRange{one("2614")}},
	{"31", "Utgående moms 12 % på inköp", KindOutputVat, CreditMinusDebit, []codeRange{one("2624")}},
	{"32", "Utgående moms 6 % på inköp", KindOutputVat, CreditMinusDebit, []codeRange{one("2634")}},
	{"35", "Försäljning av varor till ett annat EU-land", KindBase, CreditMinusDebit, []codeRange{one("3106"), one("3108")}},
	{"36", "Försäljning av varor utanför EU", KindBase, CreditMinusDebit, []codeRange{one("3105")}},
	{"37", "Mellanmans inköp av varor vid trepartshandel", KindBase, DebitMinusCredit, []codeRange{one("4519")}},
	{"38", "Mellanmans försäljning av varor vid trepartshandel", KindBase, CreditMinusDebit, []codeRange{one("3109")}},
	{"39", "Försäljning av tjänster till näringsidkare i annat EU-land", KindBase, CreditMinusDebit, []codeRange{one("3308")}},
	{"40", "Övrig försäljning av tjänster omsatta utanför Sverige", KindBase, CreditMinusDebit, []codeRange{one("3305")}},
	{"41", "Försäljning när köparen är skattskyldig i Sverige", KindBase, CreditMinusDebit, []codeRange{one("3231")}},
	{"42", "Övrig försäljning m.m.", KindBase, CreditMinusDebit, []codeRange{one("3004")}},
	{"48", "Ingående moms att dra av", KindInputVat, DebitMinusCredit, []codeRange{span("2640", "2649")}},
	{"50", "Beskattningsunderlag vid import", KindBase, DebitMinusCredit, []codeRange{span("4545", "4547")}},
	{"60", "Utgående moms 25 % vid import", KindOutputVat, CreditMinusDebit, []codeRange{one("2615")}},
	{"61", "Utgående moms 12 % vid import", KindOutputVat, CreditMinusDebit, []codeRange{one("2625")}},
	{"62", "Utgående moms 6 % vid import", KindOutputVat, CreditMinusDebit, []codeRange{one("2635")}},
}

// excluded accounts are known to be irrelevant to the declaration: the
// settlement account, clearing accounts and the tax account.
var excluded = map[string]bool{
	"1510": true,
	"1630": true,
	"1930": true,
	"2440": true,
	"2650": true,
	"2890": true,
}

// Rules returns a copy of the rule table, ordered by box code.
func Rules() []Rule {
	out := make([]Rule, len(rules))
	copy(out, rules)
	sort.Slice(out, func(i, j int) bool { return out[i].Box < out[j].Box })
	return out
}

// Lookup returns the rules an account feeds and its membership.
func Lookup(code string) ([]Rule, Membership) {
	if excluded[code] {
		return nil, Excluded
	}
	var matched []Rule
	for _, r := range rules {
		if r.Matches(code) {
			matched = append(matched, r)
		}
	}
	if len(matched) == 0 {
		return nil, Unmapped
	}
	return matched, Mapped
}

// Label returns the label of a box, including the derived box 49.
func Label(box string) string {
	if box == Box49 {
		return box49Label
	}
	for _, r := range rules {
		if r.Box == box {
			return r.Label
		}
	}
	return ""
}

// IsVatAccount reports whether code carries output or input VAT.
func IsVatAccount(code string) bool {
	matched, m := Lookup(code)
	if m != Mapped {
		return false
	}
	for _, r := range matched {
		if r.Kind != KindBase {
			return true
		}
	}
	return false
}

// numeric reports whether code has the four-digit shape of a BAS account.
func numeric(code string) bool {
	if len(code) != 4 {
		return false
	}
	for _, c := range code {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}
