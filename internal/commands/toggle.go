package commands

import (
	"context"
	"flag"
	"fmt"
	"io"
	"strings"

	"household/internal/config"
	"household/internal/exitcode"
	"household/internal/output"
	"household/internal/service"
)

func init() {
	Register(&ToggleCmd{})
}

// ToggleCmd flips the completion state of a task.
type ToggleCmd struct{}

func (c *ToggleCmd) Name() string      { return "toggle" }
func (c *ToggleCmd) Aliases() []string { return []string{"done"} }
func (c *ToggleCmd) Synopsis() string  { return "Mark a task done or open again" }
func (c *ToggleCmd) Usage() string     { return "household toggle <task-id>" }
func (c *ToggleCmd) NeedsAuth() bool   { return true }

func (c *ToggleCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *ToggleCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	if len(args) == 0 {
		fmt.Fprintln(errOut, "error: task id required")
		return exitcode.UserError
	}
	if len(args) > 1 {
		fmt.Fprintf(errOut, "error: unexpected argument: %s\n", args[1])
		return exitcode.UserError
	}
	id := strings.TrimSpace(args[0])

	task, err := svc.ToggleTask(ctx, id)
	if err != nil {
		return reportError(errOut, err)
	}

	if !cfg.Quiet {
		output.FormatTaskLine(out, task)
	}
	return exitcode.Success
}
