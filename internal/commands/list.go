package commands

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/verifikat-dev/verifikat/internal/model"
	"github.com/verifikat-dev/verifikat/internal/vat"
)

func newPresetsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "presets",
		Short: "Inspect bookkeeping presets",
	}

	var search string
	list := &cobra.Command{
		Use:   "list",
		Short: "List presets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			l, err := openLedger(cmd, "presets")
			if err != nil {
				return err
			}
			defer l.Close()

			all := l.presets.All()
			if search != "" {
				all = l.presets.Search(search)
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tNAMN\tKATEGORI\tMOMS\tKONTON")
			for _, p := range all {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s%%\t%s\n",
					p.ID, p.Name, p.Category, p.VatRate.Shift(2).String(), presetAccounts(p))
			}
			return tw.Flush()
		},
	}
	list.Flags().StringVarP(&search, "search", "s", "", "filter by name or category")

	cmd.AddCommand(list)
	return cmd
}

func presetAccounts(p model.Preset) string {
	codes := make([]string, 0, len(p.Rows))
	for _, r := range p.Rows {
		side := "D"
		switch {
		case r.IsDebitRow && r.IsCreditRow:
			side = "D/K"
		case r.IsCreditRow:
			side = "K"
		}
		codes = append(codes, r.AccountCode+" "+side)
	}
	return strings.Join(codes, ", ")
}

func newAccountsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "accounts",
		Short: "Inspect the chart of accounts",
	}

	var class int
	list := &cobra.Command{
		Use:   "list",
		Short: "List accounts with their momsdeklaration boxes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			l, err := openLedger(cmd, "accounts")
			if err != nil {
				return err
			}
			defer l.Close()

			all := l.chart.All()
			if class != 0 {
				c, err := accountClass(class)
				if err != nil {
					return err
				}
				all = l.chart.ByClass(c)
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(tw, "KONTO\tNAMN\tKLASS\tRUTA")
			for _, a := range all {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", a.Code, a.Name, a.Class(), vatBoxes(a.Code))
			}
			return tw.Flush()
		},
	}

	list.Flags().IntVar(&class, "class", 0, "only accounts of this BAS class (1-8)")

	cmd.AddCommand(list)
	return cmd
}

// accountClass maps the leading digit of a BAS code to its class.
func accountClass(digit int) (model.AccountClass, error) {
	if digit < 1 || digit > 8 {
		return model.ClassUnknown, fmt.Errorf("--class %d: must be 1-8", digit)
	}
	return model.ClassOf(fmt.Sprintf("%d000", digit)), nil
}

// vatBoxes renders the box membership the classifier will apply.
func vatBoxes(code string) string {
	rules, membership := vat.Lookup(code)
	switch membership {
	case vat.Excluded:
		return "-"
	case vat.Unmapped:
		return ""
	}
	boxes := make([]string, 0, len(rules))
	for _, r := range rules {
		boxes = append(boxes, r.Box)
	}
	return strings.Join(boxes, ",")
}
