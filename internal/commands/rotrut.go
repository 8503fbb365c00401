package commands

import (
	"fmt"
	"os"
	"sort"

	"github.com/spf13/cobra"

	"github.com/verifikat-dev/verifikat/internal/auditlog"
	"github.com/verifikat-dev/verifikat/internal/model"
	"github.com/verifikat-dev/verifikat/internal/money"
	"github.com/verifikat-dev/verifikat/internal/rotrut"
)

func newRotRutCommand() *cobra.Command {
	var rate string

	cmd := &cobra.Command{
		Use:   "rotrut <lines.yaml>",
		Short: "Compute the ROT/RUT deduction of a customer invoice",
		Long: `Compute the ROT/RUT deduction of a customer invoice.

The file lists the invoice lines:

  lines:
    - description: Snickeriarbete
      quantity: "10"
      unit_price: "500"
      vat_rate: 25%
      kind: service
      rot_rut: rot
    - description: Virke
      quantity: "1"
      unit_price: "2 000"
      vat_rate: 25%
      role: material

Service lines count as labor unless given another role.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			l, err := openLedger(cmd, "rotrut")
			if err != nil {
				return err
			}
			defer l.Close()

			opts, err := l.cfg.RotRutOptions()
			if err != nil {
				return err
			}
			if rate != "" {
				if opts.Rate, err = money.ParseRate(rate); err != nil {
					return fmt.Errorf("--rate: %w", err)
				}
				if err := rotrut.ValidateRate(opts.Rate); err != nil {
					return fmt.Errorf("--rate: %w", err)
				}
			}

			f, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("opening lines: %w", err)
			}
			defer f.Close()

			lines, err := rotrut.ReadLines(f)
			if err != nil {
				return err
			}

			d := rotrut.Calculate(lines, opts)
			l.log.Info().
				Int("lines", len(lines)).
				Str("labor_gross", d.LaborGross.StringFixed(2)).
				Str("deduction", d.Amount.StringFixed(2)).
				Msg("rot/rut computed")

			printDeduction(cmd, d)
			l.audit(auditlog.Entry{
				Action:  auditlog.ActionRotRut,
				Details: fmt.Sprintf("%s deduction=%s payable=%s", args[0], d.Amount.StringFixed(2), d.Payable.StringFixed(2)),
			})
			return nil
		},
	}
	cmd.Flags().StringVar(&rate, "rate", "", `deduction rate, e.g. "30%" (default from verifikat.yaml)`)
	return cmd
}

func printDeduction(cmd *cobra.Command, d rotrut.Deduction) {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Arbetskostnad exkl. moms  %12s\n", d.LaborNet.StringFixed(2))
	fmt.Fprintf(out, "Moms på arbete            %12s\n", d.LaborVat.StringFixed(2))
	fmt.Fprintf(out, "Arbetskostnad inkl. moms  %12s\n", d.LaborGross.StringFixed(2))
	fmt.Fprintf(out, "Material exkl. moms       %12s\n", d.MaterialNet.StringFixed(2))
	fmt.Fprintf(out, "Fakturabelopp             %12s\n", d.InvoiceGross.StringFixed(2))
	fmt.Fprintf(out, "Skattereduktion           %12s\n", d.Amount.StringFixed(2))
	fmt.Fprintf(out, "Att betala                %12s\n", d.Payable.StringFixed(2))

	types := make([]model.RotRutType, 0, len(d.ByType))
	for t := range d.ByType {
		types = append(types, t)
	}
	sort.Slice(types, func(i, j int) bool { return types[i] < types[j] })
	for _, t := range types {
		fmt.Fprintf(out, "  %-4s arbete inkl. moms   %12s\n", t, d.ByType[t].StringFixed(2))
	}
}
