// Package commands wires the verifikat CLI.
package commands

import (
	"github.com/spf13/cobra"

	"github.com/verifikat-dev/verifikat/internal/buildinfo"
)

// NewRootCommand creates the root CLI command with all subcommands registered.
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "verifikat",
		Short: "Bookkeeping calculations for Swedish small businesses",
		Long: `verifikat books transactions from presets (förval) into a plain-text
ledger, derives the momsdeklaration boxes for a period and computes
ROT/RUT deductions for customer invoices.

The ledger is a directory with verifikat.yaml at its root, versioned in git.`,
		Version: buildinfo.String(),
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringP("dir", "C", ".", "ledger directory")

	rootCmd.AddCommand(newInitCommand())
	rootCmd.AddCommand(newPostCommand())
	rootCmd.AddCommand(newReverseCommand())
	rootCmd.AddCommand(newPresetsCommand())
	rootCmd.AddCommand(newAccountsCommand())
	rootCmd.AddCommand(newVatCommand())
	rootCmd.AddCommand(newRotRutCommand())
	rootCmd.AddCommand(newHistoryCommand())

	return rootCmd
}
