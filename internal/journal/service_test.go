package journal

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/verifikat-dev/verifikat/internal/accounts"
	"github.com/verifikat-dev/verifikat/internal/mode"
	"github.com/verifikat-dev/verifikat/internal/model"
	"github.com/verifikat-dev/verifikat/internal/money"
	"github.com/verifikat-dev/verifikat/internal/posting"
)

var salePreset = model.Preset{
	ID:      "sale-25",
	Name:    "Försäljning 25 % moms",
	VatRate: dec("0.25"),
	Rows: []model.TemplateRow{
		{AccountCode: "1930", IsDebitRow: true},
		{AccountCode: "3001", IsCreditRow: true},
		{AccountCode: "2610", IsCreditRow: true},
	},
}

func newTestService(t *testing.T) *Service {
	t.Helper()
	chart := accounts.NewService(accounts.DefaultChart(accounts.FormAktiebolag))
	return NewService(t.TempDir(), chart)
}

func sale(t *testing.T, d time.Time, gross string) model.Transaction {
	t.Helper()
	tx, err := posting.Assemble(posting.Request{
		Preset:  salePreset,
		Gross:   dec(gross),
		Date:    d,
		Comment: "Försäljning",
		Fields:  map[string]string{"counterparty": "Café Nord", "reference": "kvitto 1"},
	}, money.DefaultPolicy())
	require.NoError(t, err)
	return tx
}

func TestPost_NewMonth(t *testing.T) {
	svc := newTestService(t)

	voucherID, err := svc.Post(sale(t, date(2025, 1, 15), "1250"))
	require.NoError(t, err)
	assert.Equal(t, "A-2025-01-001", voucherID)

	path := filepath.Join(svc.repoRoot, "2025", "01", "journal.csv")
	_, err = os.Stat(path)
	require.NoError(t, err)

	legs, err := svc.ReadMonth(2025, 1)
	require.NoError(t, err)
	require.Len(t, legs, 3)

	assert.Equal(t, "A-2025-01-001a", legs[0].EntryID)
	assert.Equal(t, "1930", legs[0].AccountCode)
	assert.True(t, legs[0].Debit.Equal(dec("1250.00")))
	assert.Equal(t, "A-2025-01-001b", legs[1].EntryID)
	assert.True(t, legs[1].Credit.Equal(dec("1000.00")))
	assert.Equal(t, "A-2025-01-001c", legs[2].EntryID)
	assert.True(t, legs[2].Credit.Equal(dec("250.00")))

	for _, leg := range legs {
		assert.Equal(t, "sale-25", leg.PresetID)
		assert.Equal(t, "cash", leg.Mode)
		assert.Equal(t, "Café Nord", leg.Counterparty)
		assert.Equal(t, "kvitto 1", leg.Reference)
		assert.Equal(t, model.StatusPosted, leg.Status)
	}
}

func TestPost_Sequential(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.Post(sale(t, date(2025, 1, 10), "100"))
	require.NoError(t, err)

	voucherID, err := svc.Post(sale(t, date(2025, 1, 20), "200"))
	require.NoError(t, err)
	assert.Equal(t, "A-2025-01-002", voucherID)

	legs, err := svc.ReadMonth(2025, 1)
	require.NoError(t, err)
	require.Len(t, legs, 6, "two vouchers x 3 legs")
}

func TestPost_CustomerInvoiceMode(t *testing.T) {
	svc := newTestService(t)

	tx, err := posting.Assemble(posting.Request{
		Preset: salePreset,
		Flags:  mode.Flags{IsCustomerInvoiceFlow: true},
		Gross:  dec("5000"),
		Date:   date(2025, 1, 28),
	}, money.DefaultPolicy())
	require.NoError(t, err)

	_, err = svc.Post(tx)
	require.NoError(t, err)

	legs, err := svc.ReadMonth(2025, 1)
	require.NoError(t, err)
	require.NotEmpty(t, legs)
	assert.Equal(t, "1510", legs[0].AccountCode)
	assert.Equal(t, "customer_invoice", legs[0].Mode)
}

func TestPost_ValidationFailureWritesNothing(t *testing.T) {
	dir := t.TempDir()
	svc := NewService(dir, newMockAccounts("1930", "2610"))

	_, err := svc.Post(sale(t, date(2025, 1, 15), "1250"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown account 3001")

	_, statErr := os.Stat(filepath.Join(dir, "2025", "01", "journal.csv"))
	assert.True(t, os.IsNotExist(statErr), "journal file should not be created")
}

func TestPost_Unbalanced(t *testing.T) {
	svc := newTestService(t)

	tx := model.Transaction{
		Date: date(2025, 1, 15),
		Postings: []model.Posting{
			{AccountCode: "5410", Debit: dec("100.00")},
			{AccountCode: "1930", Credit: dec("90.00")},
		},
	}
	_, err := svc.Post(tx)
	require.Error(t, err)

	var be *posting.BalanceError
	require.True(t, errors.As(err, &be))
	assert.True(t, be.Difference().Equal(dec("10.00")))
	assert.ErrorIs(t, err, posting.ErrUnbalanced)
}

func TestPost_Rejects(t *testing.T) {
	many := make([]model.Posting, 0, 28)
	for i := 0; i < 14; i++ {
		many = append(many,
			model.Posting{AccountCode: "5410", Debit: dec("1.00")},
			model.Posting{AccountCode: "1930", Credit: dec("1.00")},
		)
	}

	tests := []struct {
		name string
		tx   model.Transaction
		is   error
	}{
		{"no date", model.Transaction{Postings: []model.Posting{{AccountCode: "5410", Debit: dec("1")}}}, nil},
		{"no postings", model.Transaction{Date: date(2025, 1, 1)}, posting.ErrEmptyTemplate},
		{"too many postings", model.Transaction{Date: date(2025, 1, 1), Postings: many}, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := newTestService(t)
			_, err := svc.Post(tt.tx)
			require.Error(t, err)
			if tt.is != nil {
				assert.ErrorIs(t, err, tt.is)
			}
			legs, err := svc.ReadMonth(2025, 1)
			require.NoError(t, err)
			assert.Empty(t, legs)
		})
	}
}

func TestReverse(t *testing.T) {
	svc := newTestService(t)

	orig, err := svc.Post(sale(t, date(2025, 1, 15), "1250"))
	require.NoError(t, err)

	corr, err := svc.Reverse(orig, date(2025, 2, 3))
	require.NoError(t, err)
	assert.Equal(t, "A-2025-02-001", corr)

	legs, err := svc.ReadMonth(2025, 2)
	require.NoError(t, err)
	require.Len(t, legs, 3)

	assert.Equal(t, "1930", legs[0].AccountCode)
	assert.True(t, legs[0].Credit.Equal(dec("1250.00")))
	assert.True(t, legs[0].Debit.IsZero())
	assert.True(t, legs[1].Debit.Equal(dec("1000.00")))
	assert.True(t, legs[2].Debit.Equal(dec("250.00")))
	for _, leg := range legs {
		assert.Equal(t, model.StatusCorrection, leg.Status)
		assert.Equal(t, "reverses "+orig, leg.Notes)
		assert.Contains(t, leg.Description, orig)
	}

	// The original voucher is untouched.
	jan, err := svc.ReadMonth(2025, 1)
	require.NoError(t, err)
	require.Len(t, jan, 3)
	assert.Equal(t, model.StatusPosted, jan[0].Status)
}

func TestReverse_Unknown(t *testing.T) {
	svc := newTestService(t)
	_, err := svc.Post(sale(t, date(2025, 1, 15), "100"))
	require.NoError(t, err)

	_, err = svc.Reverse("A-2025-01-009", date(2025, 1, 20))
	assert.ErrorIs(t, err, ErrUnknownVoucher)

	_, err = svc.Reverse("not-a-voucher", date(2025, 1, 20))
	assert.Error(t, err)
}

func TestReadPeriod_AcrossMonths(t *testing.T) {
	svc := newTestService(t)

	for _, d := range []time.Time{date(2025, 1, 5), date(2025, 1, 31), date(2025, 2, 1), date(2025, 2, 20)} {
		_, err := svc.Post(sale(t, d, "125"))
		require.NoError(t, err)
	}

	legs, err := svc.ReadPeriod(date(2025, 1, 31), date(2025, 2, 1))
	require.NoError(t, err)
	require.Len(t, legs, 6)
	assert.Equal(t, "A-2025-01-002a", legs[0].EntryID)
	assert.Equal(t, "A-2025-02-001a", legs[3].EntryID)

	all, err := svc.ReadPeriod(date(2025, 1, 1), date(2025, 3, 31))
	require.NoError(t, err)
	assert.Len(t, all, 12)

	_, err = svc.ReadPeriod(date(2025, 2, 1), date(2025, 1, 1))
	assert.Error(t, err)
}

func TestSnapshot(t *testing.T) {
	svc := newTestService(t)
	_, err := svc.Post(sale(t, date(2025, 3, 10), "1250"))
	require.NoError(t, err)

	rows, err := svc.Snapshot(date(2025, 3, 1), date(2025, 3, 31))
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "2610", rows[2].AccountCode)
	assert.True(t, rows[2].Credit.Equal(dec("250.00")))

	empty, err := svc.Snapshot(date(2025, 4, 1), date(2025, 4, 30))
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestPost_Concurrent(t *testing.T) {
	svc := newTestService(t)

	const n = 10
	txs := make([]model.Transaction, n)
	for i := range txs {
		txs[i] = sale(t, date(2025, 5, 1+i), "100")
	}
	ids := make([]string, n)
	errs := make([]error, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			ids[i], errs[i] = svc.Post(txs[i])
		}(i)
	}
	wg.Wait()

	seen := make(map[string]bool)
	for i := 0; i < n; i++ {
		require.NoError(t, errs[i])
		seen[ids[i]] = true
	}
	assert.Len(t, seen, n)
	for seq := 1; seq <= n; seq++ {
		assert.True(t, seen[fmt.Sprintf("A-2025-05-%03d", seq)], "missing seq %d", seq)
	}

	legs, err := svc.ReadMonth(2025, 5)
	require.NoError(t, err)
	assert.Empty(t, ValidateLegs(legs, svc.accounts, 2025, 5))
}

func TestNextEntrySeq(t *testing.T) {
	svc := newTestService(t)

	seq, err := svc.NextEntrySeq(2025, 1)
	require.NoError(t, err)
	assert.Equal(t, 1, seq)

	_, err = svc.Post(sale(t, date(2025, 1, 15), "10"))
	require.NoError(t, err)

	seq, err = svc.NextEntrySeq(2025, 1)
	require.NoError(t, err)
	assert.Equal(t, 2, seq)
}

func TestReadMonth_NonExistent(t *testing.T) {
	svc := newTestService(t)
	legs, err := svc.ReadMonth(2099, 12)
	require.NoError(t, err)
	assert.Nil(t, legs)
}
