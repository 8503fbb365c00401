package model

import "fmt"

// AccountClass is the BAS account class, given by the first digit of the
// account code.
type AccountClass int

const (
	ClassUnknown   AccountClass = iota // empty or non-numeric code
	ClassAsset                         // 1xxx tillgångar
	ClassLiability                     // 2xxx eget kapital och skulder, incl. moms
	ClassRevenue                       // 3xxx rörelsens inkomster
	ClassCost                          // 4xxx-8xxx kostnader
	ClassOther                         // 0xxx, 9xxx
)

func (c AccountClass) String() string {
	switch c {
	case ClassUnknown:
		return "unknown"
	case ClassAsset:
		return "asset"
	case ClassLiability:
		return "liability"
	case ClassRevenue:
		return "revenue"
	case ClassCost:
		return "cost"
	case ClassOther:
		return "other"
	}
	return fmt.Sprintf("AccountClass(%d)", int(c))
}

// ClassOf returns the class of a BAS account code.
func ClassOf(code string) AccountClass {
	if code == "" {
		return ClassUnknown
	}
	for i := 0; i < len(code); i++ {
		if code[i] < '0' || code[i] > '9' {
			return ClassUnknown
		}
	}
	switch code[0] {
	case '1':
		return ClassAsset
	case '2':
		return ClassLiability
	case '3':
		return ClassRevenue
	case '4', '5', '6', '7', '8':
		return ClassCost
	default:
		return ClassOther
	}
}

// Account represents a row in chart-of-accounts.csv.
type Account struct {
	Code        string
	Name        string
	VatBox      string // momsdeklaration box this account reports to, informational
	Description string
}

// Class returns the account's BAS class.
func (a Account) Class() AccountClass {
	return ClassOf(a.Code)
}

// Side is one side of a double entry.
type Side int

const (
	Debit Side = iota
	Credit
)

func (s Side) String() string {
	switch s {
	case Debit:
		return "debit"
	case Credit:
		return "credit"
	}
	return fmt.Sprintf("Side(%d)", int(s))
}

// Opposite returns the other side.
func (s Side) Opposite() Side {
	if s == Debit {
		return Credit
	}
	return Debit
}
