// Package auditlog keeps the processing history (behandlingshistorik) of a
// ledger repo in logs/audit-log.csv. Rows are only ever appended.
package auditlog

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/verifikat-dev/verifikat/internal/id"
)

// Action names a command that touched the ledger.
type Action string

const (
	ActionPost      Action = "post"
	ActionReverse   Action = "reverse"
	ActionVatReport Action = "vat-report"
	ActionRotRut    Action = "rotrut"
)

// ErrUnknownAction is returned for an action outside the declared set.
var ErrUnknownAction = errors.New("unknown action")

// ParseAction returns the declared action named s.
func ParseAction(s string) (Action, error) {
	switch a := Action(s); a {
	case ActionPost, ActionReverse, ActionVatReport, ActionRotRut:
		return a, nil
	case "":
		return "", errors.New("missing action")
	default:
		return "", fmt.Errorf("%w %q", ErrUnknownAction, s)
	}
}

// WritesVoucher reports whether the action adds a voucher to the journal.
// Such entries must name the voucher they wrote.
func (a Action) WritesVoucher() bool {
	return a == ActionPost || a == ActionReverse
}

// Entry is one row in the audit log.
type Entry struct {
	Timestamp time.Time
	RunID     string
	Action    Action
	Details   string
	VoucherID string
	// Reverses is the voucher a reverse entry cancels.
	Reverses   string
	CommitHash string
}

// Validate checks the entry against its action: voucher-writing actions
// carry a well-formed voucher number, a reversal names its original, and
// report actions touch no voucher.
func (e Entry) Validate() error {
	if _, err := ParseAction(string(e.Action)); err != nil {
		return err
	}
	if e.Timestamp.IsZero() {
		return errors.New("missing timestamp")
	}
	if !e.Action.WritesVoucher() {
		if e.VoucherID != "" || e.Reverses != "" {
			return fmt.Errorf("%s: must not reference a voucher", e.Action)
		}
		return nil
	}
	if _, err := id.ParseVoucherID(e.VoucherID); err != nil {
		return fmt.Errorf("%s: %w", e.Action, err)
	}
	switch {
	case e.Action == ActionReverse && e.Reverses == "":
		return errors.New("reverse: missing original voucher")
	case e.Action == ActionReverse:
		if _, err := id.ParseVoucherID(e.Reverses); err != nil {
			return fmt.Errorf("reverse: %w", err)
		}
	case e.Reverses != "":
		return fmt.Errorf("%s: only a reversal names an original voucher", e.Action)
	}
	return nil
}

// Header is the CSV header for audit-log.csv.
const Header = "timestamp,run_id,action,details,voucher_id,reverses,commit_hash"

const (
	numFields     = 7
	logDir        = "logs"
	logFile       = "logs/audit-log.csv"
	colTimestamp  = 0
	colRunID      = 1
	colAction     = 2
	colDetails    = 3
	colVoucherID  = 4
	colReverses   = 5
	colCommitHash = 6
)

// MarshalEntry converts an Entry to a CSV row.
func MarshalEntry(e Entry) []string {
	row := make([]string, numFields)
	row[colTimestamp] = e.Timestamp.UTC().Format(time.RFC3339)
	row[colRunID] = e.RunID
	row[colAction] = string(e.Action)
	row[colDetails] = e.Details
	row[colVoucherID] = e.VoucherID
	row[colReverses] = e.Reverses
	row[colCommitHash] = e.CommitHash
	return row
}

// UnmarshalEntry converts a CSV row to an Entry and validates it.
func UnmarshalEntry(record []string) (Entry, error) {
	if len(record) != numFields {
		return Entry{}, fmt.Errorf("expected %d fields, got %d", numFields, len(record))
	}

	ts, err := time.Parse(time.RFC3339, record[colTimestamp])
	if err != nil {
		return Entry{}, fmt.Errorf("parsing timestamp %q: %w", record[colTimestamp], err)
	}
	action, err := ParseAction(record[colAction])
	if err != nil {
		return Entry{}, err
	}

	e := Entry{
		Timestamp:  ts,
		RunID:      record[colRunID],
		Action:     action,
		Details:    record[colDetails],
		VoucherID:  record[colVoucherID],
		Reverses:   record[colReverses],
		CommitHash: record[colCommitHash],
	}
	if err := e.Validate(); err != nil {
		return Entry{}, err
	}
	return e, nil
}

// Path returns the audit log location inside a ledger repo.
func Path(repoRoot string) string {
	return filepath.Join(repoRoot, logFile)
}

// Append writes entries to <repoRoot>/logs/audit-log.csv, creating the file and header if needed.
// Nothing is written unless every entry is valid.
func Append(repoRoot string, entries []Entry) error {
	for i, e := range entries {
		if err := e.Validate(); err != nil {
			return fmt.Errorf("entry %d: %w", i, err)
		}
	}

	dir := filepath.Join(repoRoot, logDir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating logs dir: %w", err)
	}

	path := Path(repoRoot)
	needsHeader := false
	if _, err := os.Stat(path); os.IsNotExist(err) {
		needsHeader = true
	}

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("opening audit log: %w", err)
	}
	defer f.Close()

	cw := csv.NewWriter(f)
	if needsHeader {
		if err := cw.Write(strings.Split(Header, ",")); err != nil {
			return fmt.Errorf("writing header: %w", err)
		}
	}

	for i, e := range entries {
		if err := cw.Write(MarshalEntry(e)); err != nil {
			return fmt.Errorf("writing entry %d: %w", i, err)
		}
	}

	cw.Flush()
	return cw.Error()
}

// Read returns all entries from <repoRoot>/logs/audit-log.csv.
// Returns nil if the file does not exist.
func Read(repoRoot string) ([]Entry, error) {
	f, err := os.Open(Path(repoRoot))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("opening audit log: %w", err)
	}
	defer f.Close()

	return readEntries(f)
}

// ForVoucher returns the entries that wrote or reversed voucherID, oldest
// first.
func ForVoucher(repoRoot, voucherID string) ([]Entry, error) {
	all, err := Read(repoRoot)
	if err != nil {
		return nil, err
	}
	var out []Entry
	for _, e := range all {
		if e.VoucherID == voucherID || e.Reverses == voucherID {
			out = append(out, e)
		}
	}
	return out, nil
}

func readEntries(r io.Reader) ([]Entry, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = numFields

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading audit log CSV: %w", err)
	}

	if len(records) <= 1 {
		return nil, nil
	}

	var entries []Entry
	for i, rec := range records[1:] {
		e, err := UnmarshalEntry(rec)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		entries = append(entries, e)
	}
	return entries, nil
}
