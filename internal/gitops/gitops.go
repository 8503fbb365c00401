// Package gitops versions a ledger repo with the git binary. Every posted
// voucher becomes one commit so the history of the books cannot be rewritten
// silently.
package gitops

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/shopspring/decimal"
)

// Author is the identity commits are made under.
type Author struct {
	Name  string
	Email string
}

func (a Author) String() string {
	return fmt.Sprintf("%s <%s>", a.Name, a.Email)
}

// env sets the committer to the author so commits work on machines without
// a global git identity.
func (a Author) env() []string {
	return append(os.Environ(),
		"GIT_AUTHOR_NAME="+a.Name,
		"GIT_AUTHOR_EMAIL="+a.Email,
		"GIT_COMMITTER_NAME="+a.Name,
		"GIT_COMMITTER_EMAIL="+a.Email,
	)
}

// Init initializes a new git repository at dir.
func Init(dir string) error {
	cmd := exec.Command("git", "init", "--quiet")
	cmd.Dir = dir
	if out, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("git init: %s: %w", out, err)
	}
	return nil
}

// HasChanges reports whether the working tree differs from HEAD, untracked
// files included.
func HasChanges(dir string) (bool, error) {
	cmd := exec.Command("git", "status", "--porcelain")
	cmd.Dir = dir
	out, err := cmd.Output()
	if err != nil {
		return false, fmt.Errorf("git status: %w", err)
	}
	return len(strings.TrimSpace(string(out))) > 0, nil
}

// CommitAll stages all files and creates a commit. Returns the short commit hash.
func CommitAll(dir, message string, author Author) (string, error) {
	add := exec.Command("git", "add", "-A")
	add.Dir = dir
	if out, err := add.CombinedOutput(); err != nil {
		return "", fmt.Errorf("git add: %s: %w", out, err)
	}

	commit := exec.Command("git", "commit", "--quiet", "-m", message, "--author", author.String())
	commit.Dir = dir
	commit.Env = author.env()
	if out, err := commit.CombinedOutput(); err != nil {
		return "", fmt.Errorf("git commit: %s: %w", out, err)
	}

	return Head(dir)
}

// Head returns the short hash of HEAD.
func Head(dir string) (string, error) {
	rev := exec.Command("git", "rev-parse", "--short", "HEAD")
	rev.Dir = dir
	out, err := rev.Output()
	if err != nil {
		return "", fmt.Errorf("git rev-parse: %w", err)
	}
	return strings.TrimSpace(string(out)), nil
}

// IsRepo reports whether dir is the root of a git repository.
func IsRepo(dir string) bool {
	_, err := os.Stat(filepath.Join(dir, ".git"))
	return err == nil
}

// PostMessage is the commit message for a posted voucher.
func PostMessage(voucherID, presetID string, amount decimal.Decimal) string {
	if presetID == "" {
		return fmt.Sprintf("post: %s %s", voucherID, amount.StringFixed(2))
	}
	return fmt.Sprintf("post: %s %s %s", voucherID, presetID, amount.StringFixed(2))
}

// ReverseMessage is the commit message for a correction voucher.
func ReverseMessage(correctionID, originalID string) string {
	return fmt.Sprintf("reverse: %s cancels %s", correctionID, originalID)
}
