package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Posting is one line of an assembled transaction. Exactly one of Debit and
// Credit is non-zero.
type Posting struct {
	AccountCode string
	Debit       decimal.Decimal
	Credit      decimal.Decimal
}

// Side returns the side the posting is on.
func (p Posting) Side() Side {
	if p.Debit.IsZero() {
		return Credit
	}
	return Debit
}

// Amount returns the non-zero amount of the posting.
func (p Posting) Amount() decimal.Decimal {
	if p.Debit.IsZero() {
		return p.Credit
	}
	return p.Debit
}

// Transaction is an assembled verifikat, ready for the ledger store.
type Transaction struct {
	ID       string // assigned by the ledger store on post
	Date     time.Time
	Comment  string
	Fields   map[string]string // free-text fields, e.g. counterparty, reference
	PresetID string
	Mode     RecordingMode
	Postings []Posting
}

// SumDebit returns the total of all debit amounts.
func (t Transaction) SumDebit() decimal.Decimal {
	sum := decimal.Zero
	for _, p := range t.Postings {
		sum = sum.Add(p.Debit)
	}
	return sum
}

// SumCredit returns the total of all credit amounts.
func (t Transaction) SumCredit() decimal.Decimal {
	sum := decimal.Zero
	for _, p := range t.Postings {
		sum = sum.Add(p.Credit)
	}
	return sum
}

// IsBalanced reports whether debits and credits differ by at most tolerance.
func (t Transaction) IsBalanced(tolerance decimal.Decimal) bool {
	return t.SumDebit().Sub(t.SumCredit()).Abs().LessThanOrEqual(tolerance)
}

// PostedRow is the minimal shape of a persisted ledger line, as consumed by
// the VAT box classifier.
type PostedRow struct {
	AccountCode string
	Debit       decimal.Decimal
	Credit      decimal.Decimal
}

// VatBoxEntry is one field of a momsdeklaration.
type VatBoxEntry struct {
	BoxCode string
	Label   string
	Amount  decimal.Decimal
}
