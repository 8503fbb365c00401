package commands

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/verifikat-dev/verifikat/internal/auditlog"
)

func newHistoryCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "history [voucher]",
		Short: "Show the processing history of the ledger or of one voucher",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			root, err := ledgerDir(cmd)
			if err != nil {
				return err
			}

			var entries []auditlog.Entry
			if len(args) == 1 {
				entries, err = auditlog.ForVoucher(root, args[0])
			} else {
				entries, err = auditlog.Read(root)
			}
			if err != nil {
				return err
			}
			if len(entries) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No history.")
				return nil
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(tw, "TID\tÅTGÄRD\tVERIFIKAT\tCOMMIT\tDETALJER")
			for _, e := range entries {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n",
					e.Timestamp.Local().Format(time.DateTime), e.Action, e.VoucherID, e.CommitHash, e.Details)
			}
			return tw.Flush()
		},
	}
}
