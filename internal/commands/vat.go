package commands

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/verifikat-dev/verifikat/internal/auditlog"
	"github.com/verifikat-dev/verifikat/internal/money"
	"github.com/verifikat-dev/verifikat/internal/vat"
)

type vatReportOptions struct {
	period   string
	from     string
	to       string
	xlsx     string
	recorded string
}

func newVatCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "vat",
		Short: "Momsdeklaration",
	}

	var opts vatReportOptions
	report := &cobra.Command{
		Use:   "report",
		Short: "Derive the momsdeklaration boxes for a period",
		Example: `  verifikat vat report --period 2025-Q1
  verifikat vat report --from 2025-01-01 --to 2025-01-31 --xlsx exports/moms-2025-01.xlsx
  verifikat vat report --period 2025-03 --recorded 4210`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runVatReport(cmd, opts)
		},
	}
	f := report.Flags()
	f.StringVar(&opts.period, "period", "", "YYYY-MM, YYYY-Qn or YYYY")
	f.StringVar(&opts.from, "from", "", "first day YYYY-MM-DD")
	f.StringVar(&opts.to, "to", "", "last day YYYY-MM-DD")
	f.StringVar(&opts.xlsx, "xlsx", "", "also write the report to this .xlsx file")
	f.StringVar(&opts.recorded, "recorded", "", "box 49 as recorded elsewhere; fail if it diverges")

	cmd.AddCommand(report)
	return cmd
}

func runVatReport(cmd *cobra.Command, opts vatReportOptions) error {
	p, err := resolvePeriod(opts.period, opts.from, opts.to)
	if err != nil {
		return err
	}

	l, err := openLedger(cmd, "vat")
	if err != nil {
		return err
	}
	defer l.Close()

	rows, err := l.journal.Snapshot(p.From, p.To)
	if err != nil {
		return err
	}
	report, err := vat.Classify(rows)
	if err != nil {
		return fmt.Errorf("classifying %s: %w", p, err)
	}
	if total := vat.SignConventionTotal(rows); !total.Equal(report.Box49()) {
		return fmt.Errorf("box 49 %s does not match VAT account total %s",
			report.Box49().StringFixed(2), total.StringFixed(2))
	}
	l.log.Info().
		Str("period", p.String()).
		Int("rows", len(rows)).
		Str("box49", report.Box49().StringFixed(2)).
		Strs("unmapped", report.Unmapped).
		Msg("vat report derived")

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Momsdeklaration %s\n\n", p)
	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', tabwriter.AlignRight)
	for _, e := range report.Entries {
		fmt.Fprintf(tw, "%s\t%s\t%s\t\n", e.BoxCode, e.Label, e.Amount.StringFixed(2))
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	if len(report.Unmapped) > 0 {
		fmt.Fprintf(out, "\nKonton utan ruta: %s\n", strings.Join(report.Unmapped, ", "))
	}

	if opts.xlsx != "" {
		if err := writeXLSX(opts.xlsx, report, p.String()); err != nil {
			return err
		}
		fmt.Fprintf(out, "\nWrote %s\n", opts.xlsx)
	}

	details := fmt.Sprintf("%s box49=%s", p, report.Box49().StringFixed(2))
	if opts.recorded != "" {
		recorded, err := money.ParseAmount(opts.recorded)
		if err != nil {
			return fmt.Errorf("--recorded: %w", err)
		}
		if err := vat.Reconcile(report, recorded, l.cfg.VatTolerance()); err != nil {
			var de *vat.DivergenceError
			if errors.As(err, &de) {
				l.log.Warn().
					Str("derived", de.Derived.StringFixed(2)).
					Str("recorded", de.Recorded.StringFixed(2)).
					Msg("box 49 divergence")
			}
			l.audit(auditlog.Entry{
				Action:  auditlog.ActionVatReport,
				Details: details + " diverges from " + recorded.StringFixed(2),
			})
			return err
		}
		details += " reconciled"
	}
	l.audit(auditlog.Entry{Action: auditlog.ActionVatReport, Details: details})
	return nil
}

func writeXLSX(path string, report vat.Report, title string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	if err := vat.ExportXLSX(f, report, title); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
