package journal

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/verifikat-dev/verifikat/internal/model"
)

// Header is the CSV header for journal.csv.
const Header = "entry_id,date,account_code,description,debit,credit,preset_id,mode,counterparty,reference,status,notes"

const (
	numFields  = 12
	dateFormat = "2006-01-02"
	colEntryID = 0
	colDate    = 1
	colAccount = 2
	colDesc    = 3
	colDebit   = 4
	colCredit  = 5
	colPreset  = 6
	colMode    = 7
	colCparty  = 8
	colRef     = 9
	colStatus  = 10
	colNotes   = 11
)

// ReadLegs reads all legs from a journal.csv reader.
func ReadLegs(r io.Reader) ([]model.Leg, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = numFields

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading journal CSV: %w", err)
	}

	if len(records) == 0 {
		return nil, nil
	}

	// Skip header row.
	var legs []model.Leg
	for i, rec := range records[1:] {
		leg, err := UnmarshalLeg(rec)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		legs = append(legs, leg)
	}
	return legs, nil
}

// WriteLegs writes legs to a journal.csv writer (including header).
func WriteLegs(w io.Writer, legs []model.Leg) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	if err := cw.Write(strings.Split(Header, ",")); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	for i, leg := range legs {
		if err := cw.Write(MarshalLeg(leg)); err != nil {
			return fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// AppendLegs appends legs to an existing journal.csv writer (no header).
func AppendLegs(w io.Writer, legs []model.Leg) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	for i, leg := range legs {
		if err := cw.Write(MarshalLeg(leg)); err != nil {
			return fmt.Errorf("writing row %d: %w", i, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// MarshalLeg converts a Leg to a CSV row ([]string).
func MarshalLeg(leg model.Leg) []string {
	row := make([]string, numFields)
	row[colEntryID] = leg.EntryID
	row[colDate] = leg.Date.Format(dateFormat)
	row[colAccount] = leg.AccountCode
	row[colDesc] = leg.Description

	if !leg.Debit.IsZero() {
		row[colDebit] = leg.Debit.StringFixed(2)
	}
	if !leg.Credit.IsZero() {
		row[colCredit] = leg.Credit.StringFixed(2)
	}

	row[colPreset] = leg.PresetID
	row[colMode] = leg.Mode
	row[colCparty] = leg.Counterparty
	row[colRef] = leg.Reference
	row[colStatus] = string(leg.Status)
	row[colNotes] = leg.Notes

	return row
}

// UnmarshalLeg converts a CSV row to a Leg.
func UnmarshalLeg(record []string) (model.Leg, error) {
	if len(record) != numFields {
		return model.Leg{}, fmt.Errorf("expected %d fields, got %d", numFields, len(record))
	}

	date, err := time.Parse(dateFormat, record[colDate])
	if err != nil {
		return model.Leg{}, fmt.Errorf("parsing date %q: %w", record[colDate], err)
	}

	if record[colAccount] == "" {
		return model.Leg{}, fmt.Errorf("missing account_code")
	}

	var debit, credit decimal.Decimal

	if record[colDebit] != "" {
		debit, err = decimal.NewFromString(record[colDebit])
		if err != nil {
			return model.Leg{}, fmt.Errorf("parsing debit %q: %w", record[colDebit], err)
		}
	}

	if record[colCredit] != "" {
		credit, err = decimal.NewFromString(record[colCredit])
		if err != nil {
			return model.Leg{}, fmt.Errorf("parsing credit %q: %w", record[colCredit], err)
		}
	}

	return model.Leg{
		EntryID:      record[colEntryID],
		Date:         date,
		AccountCode:  record[colAccount],
		Description:  record[colDesc],
		Debit:        debit,
		Credit:       credit,
		PresetID:     record[colPreset],
		Mode:         record[colMode],
		Counterparty: record[colCparty],
		Reference:    record[colRef],
		Status:       model.EntryStatus(record[colStatus]),
		Notes:        record[colNotes],
	}, nil
}
