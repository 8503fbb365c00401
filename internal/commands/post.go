package commands

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/verifikat-dev/verifikat/internal/auditlog"
	"github.com/verifikat-dev/verifikat/internal/gitops"
	"github.com/verifikat-dev/verifikat/internal/id"
	"github.com/verifikat-dev/verifikat/internal/mode"
	"github.com/verifikat-dev/verifikat/internal/model"
	"github.com/verifikat-dev/verifikat/internal/money"
	"github.com/verifikat-dev/verifikat/internal/posting"
)

const dateFormat = "2006-01-02"

type postOptions struct {
	preset          string
	amount          string
	date            string
	comment         string
	vatRate         string
	counterparty    string
	reference       string
	notes           string
	expenseClaim    bool
	customerInvoice bool
	supplierInvoice bool
	dryRun          bool
}

func newPostCommand() *cobra.Command {
	var opts postOptions

	cmd := &cobra.Command{
		Use:   "post",
		Short: "Book a transaction from a preset",
		Long: `Book a transaction from a preset (förval).

The preset rows are written against the bank account 1930. The workflow
flags move that leg to 1510 (customer invoice), 2440 (supplier invoice)
or 2890 (expense claim). Without a flag the transaction is a cash
transaction through the bank.`,
		Example: `  # Cash sale of 1 250 kr incl. 25 % moms
  verifikat post --preset sale-25 --amount 1250 --date 2025-01-15

  # Supplier invoice for office supplies
  verifikat post --preset office-supplies --amount "2 500,00" --supplier-invoice --reference F-2231

  # Show the postings without writing them
  verifikat post --preset travel --amount 840 --expense-claim --dry-run`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPost(cmd, opts)
		},
	}

	f := cmd.Flags()
	f.StringVarP(&opts.preset, "preset", "p", "", "preset id (required)")
	_ = cmd.MarkFlagRequired("preset")
	f.StringVarP(&opts.amount, "amount", "a", "", "gross amount incl. VAT (required)")
	_ = cmd.MarkFlagRequired("amount")
	f.StringVarP(&opts.date, "date", "d", "", "transaction date YYYY-MM-DD (default: today)")
	f.StringVarP(&opts.comment, "comment", "m", "", "voucher text (default: preset name)")
	f.StringVar(&opts.vatRate, "vat-rate", "", `override the preset VAT rate, e.g. "12%" or 0.12`)
	f.StringVar(&opts.counterparty, "counterparty", "", "customer or supplier")
	f.StringVar(&opts.reference, "reference", "", "receipt or invoice number")
	f.StringVar(&opts.notes, "notes", "", "free-text notes")
	f.BoolVar(&opts.expenseClaim, "expense-claim", false, "paid privately, owed to the owner or employee (utlägg)")
	f.BoolVar(&opts.customerInvoice, "customer-invoice", false, "book as an issued customer invoice (kundfaktura)")
	f.BoolVar(&opts.supplierInvoice, "supplier-invoice", false, "book as a received supplier invoice (leverantörsfaktura)")
	f.BoolVar(&opts.dryRun, "dry-run", false, "print the postings without writing them")

	return cmd
}

func runPost(cmd *cobra.Command, opts postOptions) error {
	l, err := openLedger(cmd, "post")
	if err != nil {
		return err
	}
	defer l.Close()

	preset, err := l.presets.Get(opts.preset)
	if err != nil {
		return err
	}

	gross, err := money.ParseAmount(opts.amount)
	if err != nil {
		return fmt.Errorf("--amount: %w", err)
	}

	date, err := parseDate(opts.date)
	if err != nil {
		return fmt.Errorf("--date: %w", err)
	}

	req := posting.Request{
		Preset: preset,
		Flags: mode.Flags{
			IsExpenseClaim:        opts.expenseClaim,
			IsCustomerInvoiceFlow: opts.customerInvoice,
			IsSupplierInvoiceFlow: opts.supplierInvoice,
		},
		Gross:   gross,
		Date:    date,
		Comment: opts.comment,
		Fields: map[string]string{
			"counterparty": opts.counterparty,
			"reference":    opts.reference,
			"notes":        opts.notes,
		},
	}
	if req.Comment == "" {
		req.Comment = preset.Name
	}
	if opts.vatRate != "" {
		rate, err := money.ParseRate(opts.vatRate)
		if err != nil {
			return fmt.Errorf("--vat-rate: %w", err)
		}
		req.VatRate = decimal.NewNullDecimal(rate)
	}

	tx, err := posting.Assemble(req, l.policy)
	if err != nil {
		return err
	}
	l.log.Info().
		Str("preset", preset.ID).
		Str("mode", tx.Mode.String()).
		Str("gross", gross.StringFixed(2)).
		Int("postings", len(tx.Postings)).
		Msg("transaction assembled")

	out := cmd.OutOrStdout()
	if opts.dryRun {
		seq, err := l.journal.NextEntrySeq(date.Year(), int(date.Month()))
		if err != nil {
			return err
		}
		next := id.FormatVoucherID(id.DefaultSeries, date.Year(), int(date.Month()), seq)
		printTransaction(out, next+" (dry run)", tx)
		return nil
	}

	voucherID, err := l.journal.Post(tx)
	if err != nil {
		return err
	}
	tx.ID = voucherID

	hash, err := l.commit(gitops.PostMessage(voucherID, preset.ID, tx.SumDebit()))
	if err != nil {
		l.log.Error().Err(err).Str("voucher", voucherID).Msg("git commit failed")
	}
	l.audit(auditlog.Entry{
		Action:     auditlog.ActionPost,
		Details:    fmt.Sprintf("%s %s %s", preset.ID, tx.Mode, tx.SumDebit().StringFixed(2)),
		VoucherID:  voucherID,
		CommitHash: hash,
	})

	printTransaction(out, voucherID, tx)
	return nil
}

func newReverseCommand() *cobra.Command {
	var date string

	cmd := &cobra.Command{
		Use:   "reverse <voucher>",
		Short: "Post a correction voucher that cancels a posted voucher",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			l, err := openLedger(cmd, "reverse")
			if err != nil {
				return err
			}
			defer l.Close()

			d, err := parseDate(date)
			if err != nil {
				return fmt.Errorf("--date: %w", err)
			}

			original := strings.TrimSpace(args[0])
			correctionID, err := l.journal.Reverse(original, d)
			if err != nil {
				return err
			}

			hash, err := l.commit(gitops.ReverseMessage(correctionID, original))
			if err != nil {
				l.log.Error().Err(err).Str("voucher", correctionID).Msg("git commit failed")
			}
			l.audit(auditlog.Entry{
				Action:     auditlog.ActionReverse,
				Details:    "reverses " + original,
				VoucherID:  correctionID,
				Reverses:   original,
				CommitHash: hash,
			})

			fmt.Fprintf(cmd.OutOrStdout(), "%s reverses %s\n", correctionID, original)
			return nil
		},
	}
	cmd.Flags().StringVarP(&date, "date", "d", "", "correction date YYYY-MM-DD (default: today)")
	return cmd
}

func parseDate(s string) (time.Time, error) {
	if s == "" {
		now := time.Now()
		return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC), nil
	}
	return time.Parse(dateFormat, s)
}

func printTransaction(w io.Writer, title string, tx model.Transaction) {
	fmt.Fprintf(w, "%s  %s  %s  [%s]\n", title, tx.Date.Format(dateFormat), tx.Comment, tx.Mode)
	for _, p := range tx.Postings {
		debit, credit := "", ""
		if p.Side() == model.Debit {
			debit = p.Amount().StringFixed(2)
		} else {
			credit = p.Amount().StringFixed(2)
		}
		fmt.Fprintf(w, "  %-6s %12s %12s\n", p.AccountCode, debit, credit)
	}
	fmt.Fprintf(w, "  %-6s %12s %12s\n", "", tx.SumDebit().StringFixed(2), tx.SumCredit().StringFixed(2))
}
