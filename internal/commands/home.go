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

// DefaultTab is the screen shown when no command is given.
const DefaultTab = "home"

func init() {
	Register(&HomeCmd{})
}

// HomeCmd implements the home screen: today's tasks, pending payments
// and active polls under a header with the unread badge.
type HomeCmd struct{}

func (c *HomeCmd) Name() string      { return DefaultTab }
func (c *HomeCmd) Aliases() []string { return nil }
func (c *HomeCmd) Synopsis() string  { return "Show the household overview" }
func (c *HomeCmd) Usage() string     { return "household home" }
func (c *HomeCmd) NeedsAuth() bool   { return true }
func (c *HomeCmd) Tab() bool         { return true }

func (c *HomeCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *HomeCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	tasks, err := svc.ListTasks(ctx)
	if err != nil {
		return reportError(errOut, err)
	}
	payments, err := svc.ListPayments(ctx)
	if err != nil {
		return reportError(errOut, err)
	}
	polls, err := svc.ListPolls(ctx)
	if err != nil {
		return reportError(errOut, err)
	}
	ns, err := svc.ListNotifications(ctx)
	if err != nil {
		return reportError(errOut, err)
	}

	title := "Home Sweet Home"
	if n := len(household.Unread(ns)); n > 0 {
		title = fmt.Sprintf("%s (%d unread)", title, n)
	}
	fmt.Fprintln(out, title)

	output.FormatHeader(out, "Today's Tasks")
	if len(tasks) == 0 {
		fmt.Fprintln(out, output.EmptyTasks)
	}
	for _, t := range tasks {
		output.FormatTaskLine(out, t)
	}

	output.FormatHeader(out, "Pending Payments")
	pending := household.FilterPayments(payments, household.PaymentFilterPending)
	if len(pending) == 0 {
		fmt.Fprintln(out, "no payments")
	}
	for _, p := range pending {
		output.FormatPayment(out, p)
	}

	output.FormatHeader(out, "Active Polls")
	if len(polls) == 0 {
		fmt.Fprintln(out, "no active polls")
	}
	for _, p := range polls {
		output.FormatPoll(out, p)
	}
	return exitcode.Success
}
