package commands_test

import (
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/verifikat-dev/verifikat/internal/accounts"
	"github.com/verifikat-dev/verifikat/internal/auditlog"
	"github.com/verifikat-dev/verifikat/internal/journal"
	"github.com/verifikat-dev/verifikat/internal/presets"
)

var binaryPath string

func TestMain(m *testing.M) {
	// Build the binary once for all tests.
	tmpDir, err := os.MkdirTemp("", "verifikat-test-*")
	if err != nil {
		panic(err)
	}

	binaryPath = filepath.Join(tmpDir, "verifikat")
	cmd := exec.Command("go", "build", "-o", binaryPath, "../../cmd/verifikat")
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		os.RemoveAll(tmpDir)
		panic("failed to build binary: " + err.Error())
	}

	code := m.Run()
	os.RemoveAll(tmpDir)
	os.Exit(code)
}

func runVerifikat(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := exec.Command(binaryPath, args...)
	out, err := cmd.CombinedOutput()
	return string(out), err
}

// newLedger initializes a ledger without git.
func newLedger(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	out, err := runVerifikat(t, "init", dir, "--name", "Test AB", "--no-git")
	require.NoError(t, err, out)
	return dir
}

func TestInit_CreatesStructure(t *testing.T) {
	dir := newLedger(t)

	for _, d := range []string{"accounts", "logs", "exports"} {
		info, err := os.Stat(filepath.Join(dir, d))
		require.NoError(t, err, "directory %s should exist", d)
		assert.True(t, info.IsDir(), "%s should be a directory", d)
	}
	for _, f := range []string{"verifikat.yaml", "presets.yaml", ".gitignore", filepath.Join("accounts", "chart-of-accounts.csv")} {
		_, err := os.Stat(filepath.Join(dir, f))
		require.NoError(t, err, "file %s should exist", f)
	}
	assert.False(t, isDir(filepath.Join(dir, ".git")), "--no-git should not create a repository")
}

func TestInit_Config(t *testing.T) {
	dir := t.TempDir()
	_, err := runVerifikat(t, "init", dir, "--name", "Snickeri Nord AB", "--org-number", "556677-8899", "--no-git")
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(dir, "verifikat.yaml"))
	require.NoError(t, err)
	contents := string(data)

	assert.Contains(t, contents, "name: Snickeri Nord AB")
	assert.Contains(t, contents, "org_number: 556677-8899")
	assert.Contains(t, contents, "company_form: aktiebolag")
	assert.Contains(t, contents, "mode: half_up")
}

func TestInit_AccountsAndPresets(t *testing.T) {
	dir := newLedger(t)

	chart, err := accounts.Load(dir)
	require.NoError(t, err)
	assert.Len(t, chart.All(), len(accounts.DefaultChart(accounts.FormAktiebolag)))

	repo, err := presets.Load(filepath.Join(dir, presets.FileName))
	require.NoError(t, err)
	assert.Equal(t, len(presets.Default()), repo.Len())
}

func TestInit_EnskildFirma(t *testing.T) {
	dir := t.TempDir()
	_, err := runVerifikat(t, "init", dir, "--name", "Anna Andersson", "--company-form", "enskild_firma", "--no-git")
	require.NoError(t, err)

	chart, err := accounts.Load(dir)
	require.NoError(t, err)
	assert.Len(t, chart.All(), len(accounts.DefaultChart(accounts.FormEnskildFirma)))
}

func TestInit_GitRepo(t *testing.T) {
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git not installed")
	}
	dir := t.TempDir()
	_, err := runVerifikat(t, "init", dir, "--name", "Test AB")
	require.NoError(t, err)

	assert.True(t, isDir(filepath.Join(dir, ".git")), ".git should exist")

	log := exec.Command("git", "log", "--format=%s", "-1")
	log.Dir = dir
	out, err := log.Output()
	require.NoError(t, err)
	assert.Contains(t, string(out), "init: Initialize Test AB")

	authorLog := exec.Command("git", "log", "--format=%an <%ae>", "-1")
	authorLog.Dir = dir
	out, err = authorLog.Output()
	require.NoError(t, err)
	assert.Contains(t, string(out), "verifikat <bokforing@verifikat.local>")

	// A post is committed on its own.
	_, err = runVerifikat(t, "post", "-C", dir, "--preset", "sale-25", "--amount", "1250", "--date", "2025-01-15")
	require.NoError(t, err)

	log = exec.Command("git", "log", "--format=%s", "-1")
	log.Dir = dir
	out, err = log.Output()
	require.NoError(t, err)
	assert.Contains(t, string(out), "post: A-2025-01-001 sale-25 1250.00")

	entries, err := auditlog.Read(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.NotEmpty(t, entries[0].CommitHash)
}

func TestInit_Gitignore(t *testing.T) {
	dir := newLedger(t)

	data, err := os.ReadFile(filepath.Join(dir, ".gitignore"))
	require.NoError(t, err)
	for _, pattern := range []string{"exports/", ".env"} {
		assert.Contains(t, string(data), pattern, ".gitignore should contain %s", pattern)
	}
}

func TestInit_Rejects(t *testing.T) {
	dir := t.TempDir()
	_, err := runVerifikat(t, "init", dir)
	require.Error(t, err, "init without --name should fail")

	_, err = runVerifikat(t, "init", dir, "--name", "X", "--company-form", "handelsbolag", "--no-git")
	require.Error(t, err)

	dir = newLedger(t)
	out, err := runVerifikat(t, "init", dir, "--name", "Again", "--no-git")
	require.Error(t, err)
	assert.Contains(t, out, "already exists")
}

func TestPost_CashSale(t *testing.T) {
	dir := newLedger(t)

	out, err := runVerifikat(t, "post", "-C", dir, "--preset", "sale-25", "--amount", "1 250,00",
		"--date", "2025-01-15", "--counterparty", "Café Nord", "--reference", "kvitto 1")
	require.NoError(t, err, out)
	assert.Contains(t, out, "A-2025-01-001")
	assert.Contains(t, out, "1250.00")

	svc := journal.NewService(dir, accounts.NewService(accounts.DefaultChart(accounts.FormAktiebolag)))
	legs, err := svc.ReadMonth(2025, 1)
	require.NoError(t, err)
	require.Len(t, legs, 3)
	assert.Equal(t, "1930", legs[0].AccountCode)
	assert.Equal(t, "Café Nord", legs[0].Counterparty)
	assert.Equal(t, "Försäljning 25 % moms", legs[0].Description)

	entries, err := auditlog.Read(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, auditlog.ActionPost, entries[0].Action)
	assert.Equal(t, "A-2025-01-001", entries[0].VoucherID)
	assert.NotEmpty(t, entries[0].RunID)
}

func TestPost_ExpenseClaim(t *testing.T) {
	dir := newLedger(t)

	out, err := runVerifikat(t, "post", "-C", dir, "--preset", "equipment", "--amount", "500",
		"--date", "2025-02-03", "--expense-claim")
	require.NoError(t, err, out)
	assert.Contains(t, out, "expense_claim")
	assert.Contains(t, out, "2890")
	assert.NotContains(t, out, "1930")
}

func TestPost_DryRunWritesNothing(t *testing.T) {
	dir := newLedger(t)

	out, err := runVerifikat(t, "post", "-C", dir, "--preset", "sale-25", "--amount", "100",
		"--date", "2025-01-15", "--dry-run")
	require.NoError(t, err, out)
	assert.Contains(t, out, "A-2025-01-001 (dry run)")

	assert.False(t, isDir(filepath.Join(dir, "2025")))
	entries, err := auditlog.Read(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestPost_Rejects(t *testing.T) {
	dir := newLedger(t)

	tests := []struct {
		name string
		args []string
	}{
		{"unknown preset", []string{"--preset", "nope", "--amount", "100"}},
		{"bad amount", []string{"--preset", "sale-25", "--amount", "abc"}},
		{"negative amount", []string{"--preset", "sale-25", "--amount", "-100"}},
		{"three decimals", []string{"--preset", "sale-25", "--amount", "100.005"}},
		{"bad date", []string{"--preset", "sale-25", "--amount", "100", "--date", "15/01/2025"}},
		{"bad vat rate", []string{"--preset", "sale-25", "--amount", "100", "--vat-rate", "125%"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := runVerifikat(t, append([]string{"post", "-C", dir}, tt.args...)...)
			assert.Error(t, err, out)
		})
	}
	assert.False(t, isDir(filepath.Join(dir, "2025")))
}

func TestPost_NotALedger(t *testing.T) {
	out, err := runVerifikat(t, "post", "-C", t.TempDir(), "--preset", "sale-25", "--amount", "100")
	require.Error(t, err)
	assert.Contains(t, out, "verifikat init")
}

func TestReverse(t *testing.T) {
	dir := newLedger(t)
	_, err := runVerifikat(t, "post", "-C", dir, "--preset", "sale-25", "--amount", "1250", "--date", "2025-01-15")
	require.NoError(t, err)

	out, err := runVerifikat(t, "reverse", "-C", dir, "A-2025-01-001", "--date", "2025-01-20")
	require.NoError(t, err, out)
	assert.Contains(t, out, "A-2025-01-002 reverses A-2025-01-001")

	out, err = runVerifikat(t, "history", "-C", dir, "A-2025-01-001")
	require.NoError(t, err, out)
	assert.Contains(t, out, "reverses A-2025-01-001")

	out, err = runVerifikat(t, "vat", "report", "-C", dir, "--period", "2025-01")
	require.NoError(t, err, out)
	assert.Contains(t, out, "0.00")

	_, err = runVerifikat(t, "reverse", "-C", dir, "A-2025-01-042", "--date", "2025-01-20")
	assert.Error(t, err)
}

func TestVatReport(t *testing.T) {
	dir := newLedger(t)
	for _, args := range [][]string{
		{"--preset", "sale-25", "--amount", "1250", "--date", "2025-01-15"},
		{"--preset", "office-supplies", "--amount", "200", "--date", "2025-02-10", "--supplier-invoice"},
		{"--preset", "sale-25", "--amount", "999", "--date", "2025-04-01"},
	} {
		out, err := runVerifikat(t, append([]string{"post", "-C", dir}, args...)...)
		require.NoError(t, err, out)
	}

	// Q1: output 250, input 40.
	out, err := runVerifikat(t, "vat", "report", "-C", dir, "--period", "2025-Q1")
	require.NoError(t, err, out)
	assert.Contains(t, out, "250.00")
	assert.Contains(t, out, "40.00")
	assert.Contains(t, out, "210.00")

	_, err = runVerifikat(t, "vat", "report", "-C", dir, "--from", "2025-01-01", "--to", "2025-03-31", "--recorded", "210")
	require.NoError(t, err)

	out, err = runVerifikat(t, "vat", "report", "-C", dir, "--period", "2025-Q1", "--recorded", "300")
	require.Error(t, err)
	assert.Contains(t, out, "box 49 diverges")

	xlsx := filepath.Join(dir, "exports", "moms.xlsx")
	_, err = runVerifikat(t, "vat", "report", "-C", dir, "--period", "2025-Q1", "--xlsx", xlsx)
	require.NoError(t, err)
	info, err := os.Stat(xlsx)
	require.NoError(t, err)
	assert.Positive(t, info.Size())

	entries, err := auditlog.Read(dir)
	require.NoError(t, err)
	var reports int
	for _, e := range entries {
		if e.Action == auditlog.ActionVatReport {
			reports++
		}
	}
	assert.Equal(t, 4, reports)

	_, err = runVerifikat(t, "vat", "report", "-C", dir)
	assert.Error(t, err, "a period is required")
}

func TestRotRut(t *testing.T) {
	dir := newLedger(t)
	lines := `lines:
  - description: Snickeriarbete
    quantity: "10"
    unit_price: "500"
    vat_rate: 25%
    kind: service
    rot_rut: rot
`
	path := filepath.Join(dir, "faktura.yaml")
	require.NoError(t, os.WriteFile(path, []byte(lines), 0o644))

	out, err := runVerifikat(t, "rotrut", "-C", dir, path)
	require.NoError(t, err, out)
	assert.Contains(t, out, "6250.00")
	assert.Contains(t, out, "3125.00")

	out, err = runVerifikat(t, "rotrut", "-C", dir, path, "--rate", "30%")
	require.NoError(t, err, out)
	assert.Contains(t, out, "1875.00")
	assert.Contains(t, out, "4375.00")

	_, err = runVerifikat(t, "rotrut", "-C", dir, filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)

	out, err = runVerifikat(t, "rotrut", "-C", dir, path, "--rate", "0")
	require.Error(t, err)
	assert.Contains(t, out, "--rate")
}

func TestList(t *testing.T) {
	dir := newLedger(t)

	out, err := runVerifikat(t, "presets", "list", "-C", dir)
	require.NoError(t, err, out)
	assert.Contains(t, out, "sale-25")
	assert.Contains(t, out, "office-supplies")

	out, err = runVerifikat(t, "presets", "list", "-C", dir, "--search", "resor")
	require.NoError(t, err, out)
	assert.Contains(t, out, "fuel")
	assert.NotContains(t, out, "sale-25")

	out, err = runVerifikat(t, "accounts", "list", "-C", dir)
	require.NoError(t, err, out)
	assert.Contains(t, out, "1930")
	assert.Contains(t, out, "Utgående moms 25 %")
}

func TestHistory(t *testing.T) {
	dir := newLedger(t)

	out, err := runVerifikat(t, "history", "-C", dir)
	require.NoError(t, err, out)
	assert.Contains(t, out, "No history.")

	_, err = runVerifikat(t, "post", "-C", dir, "--preset", "sale-25", "--amount", "100", "--date", "2025-01-15")
	require.NoError(t, err)
	_, err = runVerifikat(t, "post", "-C", dir, "--preset", "rent", "--amount", "8000", "--date", "2025-01-25")
	require.NoError(t, err)

	out, err = runVerifikat(t, "history", "-C", dir, "A-2025-01-002")
	require.NoError(t, err, out)
	assert.Contains(t, out, "rent cash 8000.00")
	assert.NotContains(t, out, "sale-25")
}

func TestAccountsList_Class(t *testing.T) {
	dir := newLedger(t)

	out, err := runVerifikat(t, "accounts", "list", "-C", dir, "--class", "3")
	require.NoError(t, err, out)
	assert.Contains(t, out, "3001")
	assert.NotContains(t, out, "1930")

	_, err = runVerifikat(t, "accounts", "list", "-C", dir, "--class", "9")
	assert.Error(t, err)
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
