package commands

import (
	"fmt"
	"io"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/verifikat-dev/verifikat/internal/accounts"
	"github.com/verifikat-dev/verifikat/internal/auditlog"
	"github.com/verifikat-dev/verifikat/internal/config"
	"github.com/verifikat-dev/verifikat/internal/gitops"
	"github.com/verifikat-dev/verifikat/internal/journal"
	"github.com/verifikat-dev/verifikat/internal/logger"
	"github.com/verifikat-dev/verifikat/internal/money"
	"github.com/verifikat-dev/verifikat/internal/presets"
)

// ledger is everything one command invocation needs from a ledger repo.
type ledger struct {
	root    string
	cfg     *config.Config
	policy  money.Policy
	chart   *accounts.Service
	presets *presets.Repository
	journal *journal.Service
	runID   string
	log     zerolog.Logger
	closer  io.Closer
}

func ledgerDir(cmd *cobra.Command) (string, error) {
	dir, _ := cmd.Flags().GetString("dir")
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("resolving path: %w", err)
	}
	return abs, nil
}

// openLedger loads config, sets up logging and opens the stores of the
// ledger the command points at.
func openLedger(cmd *cobra.Command, component string) (*ledger, error) {
	root, err := ledgerDir(cmd)
	if err != nil {
		return nil, err
	}

	cfg, err := config.Load(filepath.Join(root, config.FileName))
	if err != nil {
		return nil, fmt.Errorf("not a verifikat ledger (run verifikat init): %w", err)
	}
	policy, err := cfg.Policy()
	if err != nil {
		return nil, err
	}

	closer, err := logger.Setup(cfg.LogConfig())
	if err != nil {
		return nil, err
	}

	chart, err := accounts.Load(root)
	if err != nil {
		closer.Close()
		return nil, err
	}
	repo, err := presets.Load(filepath.Join(root, presets.FileName))
	if err != nil {
		closer.Close()
		return nil, err
	}

	runID := uuid.NewString()
	l := &ledger{
		root:    root,
		cfg:     cfg,
		policy:  policy,
		chart:   chart,
		presets: repo,
		journal: journal.NewService(root, chart),
		runID:   runID,
		log:     logger.WithRunID(logger.WithComponent(component), runID),
		closer:  closer,
	}
	l.log.Debug().
		Str("root", root).
		Str("rounding", policy.Mode.String()).
		Int("accounts", len(chart.All())).
		Int("presets", repo.Len()).
		Msg("ledger opened")
	return l, nil
}

func (l *ledger) Close() error {
	return l.closer.Close()
}

// commit records the working tree in git when auto-commit is on. It returns
// an empty hash when nothing was committed.
func (l *ledger) commit(message string) (string, error) {
	if !l.cfg.Git.AutoCommit || !gitops.IsRepo(l.root) {
		return "", nil
	}
	changed, err := gitops.HasChanges(l.root)
	if err != nil || !changed {
		return "", err
	}
	author := gitops.Author{Name: l.cfg.Git.AuthorName, Email: l.cfg.Git.AuthorEmail}
	hash, err := gitops.CommitAll(l.root, message, author)
	if err != nil {
		return "", err
	}
	l.log.Debug().Str("commit", hash).Msg("ledger committed")
	return hash, nil
}

// audit stamps e with the time and run id and appends it to the audit log.
// A failure is logged, not returned: the ledger change it describes has
// already happened.
func (l *ledger) audit(e auditlog.Entry) {
	e.Timestamp = time.Now()
	e.RunID = l.runID
	if err := auditlog.Append(l.root, []auditlog.Entry{e}); err != nil {
		l.log.Error().Err(err).Str("action", string(e.Action)).Msg("writing audit log")
	}
}
