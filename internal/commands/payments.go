package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"household/internal/config"
	"household/internal/exitcode"
	"household/internal/household"
	"household/internal/output"
	"household/internal/service"
)

func init() {
	Register(&PaymentsCmd{})
}

// PaymentsCmd implements the payments screen.
type PaymentsCmd struct {
	filter string
}

// SetFilter sets the payment filter name (for testing).
func (c *PaymentsCmd) SetFilter(filter string) {
	c.filter = filter
}

func (c *PaymentsCmd) Name() string      { return "payments" }
func (c *PaymentsCmd) Aliases() []string { return nil }
func (c *PaymentsCmd) Synopsis() string  { return "List shared payments" }
func (c *PaymentsCmd) Usage() string     { return "household payments [--filter all|pending|paid]" }
func (c *PaymentsCmd) NeedsAuth() bool   { return true }
func (c *PaymentsCmd) Tab() bool         { return true }

func (c *PaymentsCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.filter, "filter", string(household.PaymentFilterAll), "")
	fs.StringVar(&c.filter, "f", string(household.PaymentFilterAll), "")
}

func (c *PaymentsCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	if len(args) > 0 {
		fmt.Fprintf(errOut, "error: unexpected argument: %s\n", args[0])
		return exitcode.UserError
	}

	filter := household.PaymentFilterAll
	if c.filter != "" {
		f, err := household.ParsePaymentFilter(c.filter)
		if err != nil {
			fmt.Fprintf(errOut, "error: %v\n", err)
			return exitcode.UserError
		}
		filter = f
	}

	payments, err := svc.ListPayments(ctx)
	if err != nil {
		return reportError(errOut, err)
	}

	payments = household.FilterPayments(payments, filter)
	if len(payments) == 0 {
		if !cfg.Quiet {
			fmt.Fprintln(out, "no payments")
		}
		return exitcode.Success
	}
	for _, p := range payments {
		output.FormatPayment(out, p)
	}
	return exitcode.Success
}
