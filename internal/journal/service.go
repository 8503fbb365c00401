package journal

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/verifikat-dev/verifikat/internal/id"
	"github.com/verifikat-dev/verifikat/internal/logger"
	"github.com/verifikat-dev/verifikat/internal/model"
	"github.com/verifikat-dev/verifikat/internal/money"
	"github.com/verifikat-dev/verifikat/internal/posting"
)

// maxLegs is the number of leg suffixes a..z.
const maxLegs = 26

// ErrUnknownVoucher is returned by Reverse when no such voucher exists.
var ErrUnknownVoucher = errors.New("unknown voucher")

// Service stores vouchers in one journal.csv per month. Writes and snapshot
// reads are serialized so a snapshot never sees half a voucher.
type Service struct {
	repoRoot string
	accounts AccountChecker
	series   string
	log      zerolog.Logger
	mu       sync.RWMutex
}

// NewService creates a journal Service.
func NewService(repoRoot string, accounts AccountChecker) *Service {
	return &Service{
		repoRoot: repoRoot,
		accounts: accounts,
		series:   id.DefaultSeries,
		log:      logger.WithComponent("journal"),
	}
}

// Post numbers an assembled transaction and appends its legs to the month's
// journal.csv. The balance guard is re-checked; nothing is written when any
// ledger invariant fails. Returns the voucher ID.
func (s *Service) Post(tx model.Transaction) (string, error) {
	return s.post(tx, model.StatusPosted, "")
}

// Reverse posts a correction voucher (rättelseverifikat) that cancels
// voucherID, dated date. The original voucher is left untouched.
func (s *Service) Reverse(voucherID string, date time.Time) (string, error) {
	v, err := id.ParseVoucherID(voucherID)
	if err != nil {
		return "", err
	}
	legs, err := s.ReadMonth(v.Year, v.Month)
	if err != nil {
		return "", err
	}

	var tx model.Transaction
	for _, leg := range legs {
		if leg.EntryGroup() != voucherID {
			continue
		}
		if tx.Postings == nil {
			tx.Comment = "Rättelse av " + voucherID + ": " + leg.Description
			tx.PresetID = leg.PresetID
			tx.Fields = map[string]string{"counterparty": leg.Counterparty, "reference": leg.Reference}
		}
		tx.Postings = append(tx.Postings, model.Posting{
			AccountCode: leg.AccountCode,
			Debit:       leg.Credit,
			Credit:      leg.Debit,
		})
	}
	if tx.Postings == nil {
		return "", fmt.Errorf("%w: %s", ErrUnknownVoucher, voucherID)
	}
	tx.Date = date
	return s.post(tx, model.StatusCorrection, "reverses "+voucherID)
}

func (s *Service) post(tx model.Transaction, status model.EntryStatus, notes string) (string, error) {
	if tx.Date.IsZero() {
		return "", fmt.Errorf("transaction has no date")
	}
	if len(tx.Postings) == 0 {
		return "", posting.ErrEmptyTemplate
	}
	if len(tx.Postings) > maxLegs {
		return "", fmt.Errorf("transaction has %d postings, at most %d allowed", len(tx.Postings), maxLegs)
	}
	if !tx.IsBalanced(money.Tolerance) {
		return "", &posting.BalanceError{SumDebit: tx.SumDebit(), SumCredit: tx.SumCredit()}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	year := tx.Date.Year()
	month := int(tx.Date.Month())

	existing, err := s.ReadMonth(year, month)
	if err != nil {
		return "", err
	}
	voucherID := id.FormatVoucherID(s.series, year, month, nextSeq(existing, s.series))

	if notes == "" {
		notes = tx.Fields["notes"]
	}
	newLegs := make([]model.Leg, 0, len(tx.Postings))
	for i, p := range tx.Postings {
		newLegs = append(newLegs, model.Leg{
			EntryID:      id.FormatLegID(voucherID, i),
			Date:         tx.Date,
			AccountCode:  p.AccountCode,
			Description:  tx.Comment,
			Debit:        p.Debit,
			Credit:       p.Credit,
			PresetID:     tx.PresetID,
			Mode:         tx.Mode.String(),
			Counterparty: tx.Fields["counterparty"],
			Reference:    tx.Fields["reference"],
			Status:       status,
			Notes:        notes,
		})
	}

	// Validate ALL legs together.
	allLegs := append(existing, newLegs...)
	if verrs := ValidateLegs(allLegs, s.accounts, year, month); len(verrs) > 0 {
		msgs := make([]string, len(verrs))
		for i, ve := range verrs {
			msgs[i] = ve.Error()
		}
		return "", fmt.Errorf("validation failed: %s", strings.Join(msgs, "; "))
	}

	// Append to journal file (create dir + header if new).
	journalPath := s.monthPath(year, month)
	if err := os.MkdirAll(filepath.Dir(journalPath), 0o755); err != nil {
		return "", fmt.Errorf("creating journal dir: %w", err)
	}

	isNew := false
	if _, err := os.Stat(journalPath); errors.Is(err, fs.ErrNotExist) {
		isNew = true
	}

	f, err := os.OpenFile(journalPath, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0o644)
	if err != nil {
		return "", fmt.Errorf("opening journal: %w", err)
	}
	defer f.Close()

	if isNew {
		if _, err := fmt.Fprintln(f, Header); err != nil {
			return "", fmt.Errorf("writing header: %w", err)
		}
	}

	if err := AppendLegs(f, newLegs); err != nil {
		return "", fmt.Errorf("appending legs: %w", err)
	}

	s.log.Debug().
		Str("voucher", voucherID).
		Str("status", string(status)).
		Int("legs", len(newLegs)).
		Str("amount", tx.SumDebit().StringFixed(2)).
		Msg("voucher posted")
	return voucherID, nil
}

// ReadMonth reads all legs for a given year/month.
func (s *Service) ReadMonth(year, month int) ([]model.Leg, error) {
	path := s.monthPath(year, month)
	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("opening journal %s: %w", path, err)
	}
	defer f.Close()

	legs, err := ReadLegs(f)
	if err != nil {
		return nil, fmt.Errorf("reading journal %s: %w", path, err)
	}
	return legs, nil
}

// ReadPeriod reads the legs dated from..to, both days inclusive.
func (s *Service) ReadPeriod(from, to time.Time) ([]model.Leg, error) {
	from = truncateDay(from)
	to = truncateDay(to)
	if to.Before(from) {
		return nil, fmt.Errorf("period end %s before start %s", to.Format(dateFormat), from.Format(dateFormat))
	}

	var out []model.Leg
	for m := time.Date(from.Year(), from.Month(), 1, 0, 0, 0, 0, time.UTC); !m.After(to); m = m.AddDate(0, 1, 0) {
		legs, err := s.ReadMonth(m.Year(), int(m.Month()))
		if err != nil {
			return nil, err
		}
		for _, leg := range legs {
			d := truncateDay(leg.Date)
			if d.Before(from) || d.After(to) {
				continue
			}
			out = append(out, leg)
		}
	}
	return out, nil
}

// Snapshot returns the posted rows of a period as one consistent read: no
// voucher is half-written while it runs.
func (s *Service) Snapshot(from, to time.Time) ([]model.PostedRow, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	legs, err := s.ReadPeriod(from, to)
	if err != nil {
		return nil, err
	}
	rows := make([]model.PostedRow, 0, len(legs))
	for _, leg := range legs {
		rows = append(rows, leg.Posted())
	}
	s.log.Debug().
		Str("from", from.Format(dateFormat)).
		Str("to", to.Format(dateFormat)).
		Int("rows", len(rows)).
		Msg("snapshot read")
	return rows, nil
}

// NextEntrySeq returns the next available sequence number for a month.
func (s *Service) NextEntrySeq(year, month int) (int, error) {
	legs, err := s.ReadMonth(year, month)
	if err != nil {
		return 0, err
	}
	return nextSeq(legs, s.series), nil
}

func nextSeq(legs []model.Leg, series string) int {
	maxSeq := 0
	for _, leg := range legs {
		v, err := id.ParseVoucherID(leg.EntryID)
		if err != nil || v.Series != series {
			continue
		}
		if v.Seq > maxSeq {
			maxSeq = v.Seq
		}
	}
	return maxSeq + 1
}

func (s *Service) monthPath(year, month int) string {
	return filepath.Join(s.repoRoot, fmt.Sprintf("%04d", year), fmt.Sprintf("%02d", month), "journal.csv")
}

func truncateDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
