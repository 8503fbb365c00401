package accounts

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/verifikat-dev/verifikat/internal/model"
)

const (
	numFields = 4
	colCode   = 0
	colName   = 1
	colVatBox = 2
	colDesc   = 3
)

// ReadAccounts reads chart-of-accounts.csv.
func ReadAccounts(r io.Reader) ([]model.Account, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = numFields

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading accounts CSV: %w", err)
	}

	if len(records) == 0 {
		return nil, nil
	}

	var accounts []model.Account
	for i, rec := range records[1:] {
		acct, err := UnmarshalAccount(rec)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		accounts = append(accounts, acct)
	}
	return accounts, nil
}

// WriteAccounts writes chart-of-accounts.csv.
func WriteAccounts(w io.Writer, accounts []model.Account) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	if err := cw.Write([]string{"account_code", "account_name", "vat_box", "description"}); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	for i, acct := range accounts {
		if err := cw.Write(MarshalAccount(acct)); err != nil {
			return fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// MarshalAccount converts an Account to a CSV row.
func MarshalAccount(acct model.Account) []string {
	row := make([]string, numFields)
	row[colCode] = acct.Code
	row[colName] = acct.Name
	row[colVatBox] = acct.VatBox
	row[colDesc] = acct.Description
	return row
}

// UnmarshalAccount converts a CSV row to an Account. The code must be a
// four-digit BAS account.
func UnmarshalAccount(record []string) (model.Account, error) {
	if len(record) != numFields {
		return model.Account{}, fmt.Errorf("expected %d fields, got %d", numFields, len(record))
	}

	code := record[colCode]
	if len(code) != 4 || model.ClassOf(code) == model.ClassUnknown {
		return model.Account{}, fmt.Errorf("invalid account code %q", code)
	}

	return model.Account{
		Code:        code,
		Name:        record[colName],
		VatBox:      record[colVatBox],
		Description: record[colDesc],
	}, nil
}
