package accounts

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/verifikat-dev/verifikat/internal/model"
)

// Service provides in-memory lookup over the chart of accounts.
type Service struct {
	accounts []model.Account
	byCode   map[string]model.Account
}

// NewService creates a Service from a slice of accounts. The slice is kept
// sorted by code.
func NewService(accounts []model.Account) *Service {
	sorted := make([]model.Account, len(accounts))
	copy(sorted, accounts)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Code < sorted[j].Code })

	byCode := make(map[string]model.Account, len(sorted))
	for _, a := range sorted {
		byCode[a.Code] = a
	}
	return &Service{accounts: sorted, byCode: byCode}
}

// Load reads chart-of-accounts.csv from a ledger root and returns a Service.
func Load(repoRoot string) (*Service, error) {
	path := filepath.Join(repoRoot, "accounts", "chart-of-accounts.csv")
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening chart of accounts: %w", err)
	}
	defer f.Close()

	accts, err := ReadAccounts(f)
	if err != nil {
		return nil, fmt.Errorf("reading chart of accounts: %w", err)
	}
	return NewService(accts), nil
}

// All returns all accounts ordered by code.
func (s *Service) All() []model.Account {
	return s.accounts
}

// Get returns an account by code.
func (s *Service) Get(code string) (model.Account, bool) {
	a, ok := s.byCode[code]
	return a, ok
}

// Exists reports whether an account code exists.
func (s *Service) Exists(code string) bool {
	_, ok := s.byCode[code]
	return ok
}

// ByClass returns all accounts of the given BAS class.
func (s *Service) ByClass(class model.AccountClass) []model.Account {
	var result []model.Account
	for _, a := range s.accounts {
		if a.Class() == class {
			result = append(result, a)
		}
	}
	return result
}

// Save writes the chart of accounts to accounts/chart-of-accounts.csv.
func (s *Service) Save(repoRoot string) error {
	dir := filepath.Join(repoRoot, "accounts")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating accounts dir: %w", err)
	}

	path := filepath.Join(dir, "chart-of-accounts.csv")
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating chart of accounts file: %w", err)
	}
	defer f.Close()

	if err := WriteAccounts(f, s.accounts); err != nil {
		return fmt.Errorf("writing chart of accounts: %w", err)
	}
	return nil
}
