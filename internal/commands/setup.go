package commands

import (
	"context"
	"flag"
	"fmt"
	"io"
	"time"

	"household/internal/config"
	"household/internal/exitcode"
	"household/internal/household"
	"household/internal/service"
)

func init() {
	Register(&SetupCmd{})
}

// SetupCmd provisions backend storage with the sample household tasks.
type SetupCmd struct{}

func (c *SetupCmd) Name() string      { return "setup" }
func (c *SetupCmd) Aliases() []string { return nil }
func (c *SetupCmd) Synopsis() string  { return "Create the household task list" }
func (c *SetupCmd) Usage() string     { return "household setup [--backend google]" }
func (c *SetupCmd) NeedsAuth() bool   { return true }

func (c *SetupCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *SetupCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	p, ok := svc.(service.Provisioner)
	if !ok {
		if !cfg.Quiet {
			fmt.Fprintf(out, "nothing to set up for the %s backend\n", cfg.Backend)
		}
		return exitcode.Success
	}

	created, err := p.Provision(ctx, household.Seed(time.Now()).Tasks)
	if err != nil {
		return reportError(errOut, err)
	}

	if !cfg.Quiet {
		if created {
			fmt.Fprintf(out, "created list: %s\n", cfg.GoogleList)
		} else {
			fmt.Fprintf(out, "list already exists: %s\n", cfg.GoogleList)
		}
	}
	return exitcode.Success
}
