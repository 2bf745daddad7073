package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"household/internal/config"
	"household/internal/exitcode"
	"household/internal/output"
	"household/internal/service"
)

func init() {
	Register(&PollsCmd{})
}

// PollsCmd lists active polls.
type PollsCmd struct{}

func (c *PollsCmd) Name() string      { return "polls" }
func (c *PollsCmd) Aliases() []string { return nil }
func (c *PollsCmd) Synopsis() string  { return "List active polls" }
func (c *PollsCmd) Usage() string     { return "household polls" }
func (c *PollsCmd) NeedsAuth() bool   { return true }
func (c *PollsCmd) Tab() bool         { return true }

func (c *PollsCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *PollsCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	polls, err := svc.ListPolls(ctx)
	if err != nil {
		return reportError(errOut, err)
	}
	if len(polls) == 0 {
		if !cfg.Quiet {
			fmt.Fprintln(out, "no active polls")
		}
		return exitcode.Success
	}
	for _, p := range polls {
		output.FormatPoll(out, p)
	}
	return exitcode.Success
}
