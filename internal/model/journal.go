package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// EntryStatus represents the lifecycle state of a voucher in the ledger.
type EntryStatus string

const (
	StatusPosted     EntryStatus = "posted"
	StatusCorrection EntryStatus = "correction" // rättelseverifikat
)

// Leg is a single row in journal.csv (one posting of a voucher).
type Leg struct {
	EntryID      string          // "A-2025-01-001x" where x = a,b,c...
	Date         time.Time
	AccountCode  string
	Description  string
	Debit        decimal.Decimal // zero if credit side
	Credit       decimal.Decimal // zero if debit side
	PresetID     string
	Mode         string
	Counterparty string
	Reference    string
	Status       EntryStatus
	Notes        string
}

// EntryGroup returns the voucher ID (without leg suffix).
// "A-2025-01-001a" -> "A-2025-01-001"
func (l Leg) EntryGroup() string {
	id := l.EntryID
	i := len(id)
	for i > 0 && id[i-1] >= 'a' && id[i-1] <= 'z' {
		i--
	}
	return id[:i]
}

// Posted returns the leg in the shape the VAT classifier consumes.
func (l Leg) Posted() PostedRow {
	return PostedRow{AccountCode: l.AccountCode, Debit: l.Debit, Credit: l.Credit}
}
