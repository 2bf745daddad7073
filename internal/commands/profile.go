package commands

import (
	"context"
	"flag"
	"io"

	"household/internal/config"
	"household/internal/exitcode"
	"household/internal/household"
	"household/internal/output"
	"household/internal/service"
)

func init() {
	Register(&ProfileCmd{})
}

// ProfileCmd implements the profile screen.
type ProfileCmd struct{}

func (c *ProfileCmd) Name() string      { return "profile" }
func (c *ProfileCmd) Aliases() []string { return []string{"me"} }
func (c *ProfileCmd) Synopsis() string  { return "Show your profile and stats" }
func (c *ProfileCmd) Usage() string     { return "household profile" }
func (c *ProfileCmd) NeedsAuth() bool   { return true }
func (c *ProfileCmd) Tab() bool         { return true }

func (c *ProfileCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *ProfileCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	profile, err := svc.Profile(ctx)
	if err != nil {
		return reportError(errOut, err)
	}
	tasks, err := svc.ListTasks(ctx)
	if err != nil {
		return reportError(errOut, err)
	}
	payments, err := svc.ListPayments(ctx)
	if err != nil {
		return reportError(errOut, err)
	}
	menu, err := svc.MenuItems(ctx)
	if err != nil {
		return reportError(errOut, err)
	}

	profile.Stats = household.Summarize(tasks, payments, cfg.User)
	output.FormatProfile(out, profile)
	output.FormatHeader(out, "Settings")
	for _, m := range menu {
		output.FormatMenuItem(out, m)
	}
	return exitcode.Success
}
