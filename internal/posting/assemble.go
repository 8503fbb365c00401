// Package posting turns a preset template and a gross amount into a balanced
// list of debit/credit postings. Nothing here performs I/O; every result must
// pass through Assemble or AssembleRows before it is written to the ledger.
package posting

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"

	"github.com/verifikat-dev/verifikat/internal/accounts"
	"github.com/verifikat-dev/verifikat/internal/mode"
	"github.com/verifikat-dev/verifikat/internal/model"
	"github.com/verifikat-dev/verifikat/internal/money"
)

// ErrEmptyTemplate is wrapped by the ValidationError returned when there are
// no rows to post.
var ErrEmptyTemplate = errors.New("template has no rows")

// Request is one bookkeeping invocation.
type Request struct {
	Preset model.Preset
	// ExtraRows are ad-hoc rows appended after the preset rows. They go
	// through the same substitution and amount rules.
	ExtraRows []model.TemplateRow
	Flags     mode.Flags
	Gross     decimal.Decimal
	// VatRate overrides Preset.VatRate when valid.
	VatRate decimal.NullDecimal
	Date    time.Time
	Comment string
	Fields  map[string]string
}

// Rows returns the preset rows followed by the extra rows.
func (r Request) Rows() []model.TemplateRow {
	rows := make([]model.TemplateRow, 0, len(r.Preset.Rows)+len(r.ExtraRows))
	rows = append(rows, r.Preset.Rows...)
	return append(rows, r.ExtraRows...)
}

// Rate returns the VAT rate in effect for the request.
func (r Request) Rate() decimal.Decimal {
	if r.VatRate.Valid {
		return r.VatRate.Decimal
	}
	return r.Preset.VatRate
}

// Assemble resolves the recording mode for the request and builds the
// transaction. The returned transaction has no ID; the ledger assigns one.
func Assemble(req Request, policy money.Policy) (model.Transaction, error) {
	res := mode.Resolve(req.Flags, req.Preset)
	postings, err := AssembleRows(req.Rows(), res.Mode, res.IsSale, req.Gross, req.Rate(), policy)
	if err != nil {
		return model.Transaction{}, err
	}
	return model.Transaction{
		Date:     req.Date,
		Comment:  req.Comment,
		Fields:   req.Fields,
		PresetID: req.Preset.ID,
		Mode:     res.Mode,
		Postings: postings,
	}, nil
}

// AssembleRows applies substitution and the row amount rules to every row,
// strips zero postings and checks the result balances within money.Tolerance.
// It never adjusts an amount to force balance.
func AssembleRows(rows []model.TemplateRow, m model.RecordingMode, isSale bool, gross, rate decimal.Decimal, policy money.Policy) ([]model.Posting, error) {
	if err := validate(rows, gross, rate); err != nil {
		return nil, err
	}

	amounts := SplitGross(gross, rate, policy)
	invert := inverted(rows, m, isSale)

	var postings []model.Posting
	for _, row := range rows {
		code := accounts.Substitute(row.AccountCode, m, isSale)
		for _, side := range sidesFor(row, code, invert) {
			amt := CalculateRowAmount(code, side, amounts)
			if amt.IsZero() {
				continue
			}
			p := model.Posting{AccountCode: code}
			if side == model.Debit {
				p.Debit = amt
			} else {
				p.Credit = amt
			}
			postings = append(postings, p)
		}
	}

	var debit, credit decimal.Decimal
	for _, p := range postings {
		debit = debit.Add(p.Debit)
		credit = credit.Add(p.Credit)
	}
	if !money.WithinTolerance(debit, credit) {
		return nil, &BalanceError{SumDebit: debit, SumCredit: credit}
	}
	return postings, nil
}

func validate(rows []model.TemplateRow, gross, rate decimal.Decimal) error {
	switch {
	case gross.IsZero():
		return &ValidationError{Field: "gross", Value: gross, Message: "missing or zero"}
	case gross.IsNegative():
		return &ValidationError{Field: "gross", Value: gross, Message: "must be positive"}
	case gross.GreaterThan(money.MaxGross):
		return &ValidationError{Field: "gross", Value: gross, Message: "exceeds " + money.MaxGross.String()}
	case !money.HasAtMostPlaces(gross, 2):
		return &ValidationError{Field: "gross", Value: gross, Message: "more than 2 decimal places"}
	}
	if rate.IsNegative() || rate.GreaterThan(decimal.NewFromInt(1)) {
		return &ValidationError{Field: "vat_rate", Value: rate, Message: "must be between 0 and 1"}
	}
	if len(rows) == 0 {
		return &ValidationError{Field: "rows", Value: 0, Message: "nothing to post", Err: ErrEmptyTemplate}
	}
	return nil
}
