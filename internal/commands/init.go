package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/verifikat-dev/verifikat/internal/accounts"
	"github.com/verifikat-dev/verifikat/internal/config"
	"github.com/verifikat-dev/verifikat/internal/gitops"
	"github.com/verifikat-dev/verifikat/internal/presets"
)

type initOptions struct {
	name        string
	orgNumber   string
	companyForm string
	noGit       bool
}

func newInitCommand() *cobra.Command {
	var opts initOptions

	cmd := &cobra.Command{
		Use:   "init [directory]",
		Short: "Create a new ledger",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := ledgerDir(cmd)
			if err != nil {
				return err
			}
			if len(args) > 0 {
				if dir, err = filepath.Abs(args[0]); err != nil {
					return fmt.Errorf("resolving path: %w", err)
				}
			}
			return runInit(cmd, dir, opts)
		},
	}

	cmd.Flags().StringVar(&opts.name, "name", "", "business name (required)")
	_ = cmd.MarkFlagRequired("name")
	cmd.Flags().StringVar(&opts.orgNumber, "org-number", "", "organisationsnummer")
	cmd.Flags().StringVar(&opts.companyForm, "company-form", accounts.FormAktiebolag, "aktiebolag or enskild_firma")
	cmd.Flags().BoolVar(&opts.noGit, "no-git", false, "do not create a git repository")

	return cmd
}

func runInit(cmd *cobra.Command, dir string, opts initOptions) error {
	switch opts.companyForm {
	case accounts.FormAktiebolag, accounts.FormEnskildFirma:
	default:
		return fmt.Errorf("unknown company form %q", opts.companyForm)
	}

	if _, err := os.Stat(filepath.Join(dir, config.FileName)); err == nil {
		return fmt.Errorf("%s already exists in %s", config.FileName, dir)
	}

	for _, d := range []string{"accounts", "logs", "exports"} {
		if err := os.MkdirAll(filepath.Join(dir, d), 0o755); err != nil {
			return fmt.Errorf("creating directory %s: %w", d, err)
		}
	}

	cfg := config.Default(opts.name, opts.companyForm)
	cfg.Business.OrgNumber = opts.orgNumber
	if err := config.Save(filepath.Join(dir, config.FileName), cfg); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	chart := accounts.NewService(accounts.DefaultChart(opts.companyForm))
	if err := chart.Save(dir); err != nil {
		return fmt.Errorf("writing chart of accounts: %w", err)
	}

	repo, err := presets.NewRepository(presets.Default())
	if err != nil {
		return err
	}
	if err := repo.Save(filepath.Join(dir, presets.FileName)); err != nil {
		return fmt.Errorf("writing presets: %w", err)
	}

	gitignore := "exports/\n.env\n*.log\n"
	if err := os.WriteFile(filepath.Join(dir, ".gitignore"), []byte(gitignore), 0o644); err != nil {
		return fmt.Errorf("writing .gitignore: %w", err)
	}

	out := cmd.OutOrStdout()
	if opts.noGit {
		fmt.Fprintf(out, "Initialized ledger for %s at %s\n", opts.name, dir)
		return nil
	}

	if err := gitops.Init(dir); err != nil {
		return err
	}
	author := gitops.Author{Name: cfg.Git.AuthorName, Email: cfg.Git.AuthorEmail}
	hash, err := gitops.CommitAll(dir, "init: Initialize "+opts.name, author)
	if err != nil {
		return fmt.Errorf("initial commit: %w", err)
	}

	fmt.Fprintf(out, "Initialized ledger for %s at %s (%s)\n", opts.name, dir, hash)
	return nil
}
