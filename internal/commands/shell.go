package commands

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"

	"household/internal/config"
	"household/internal/exitcode"
	"household/internal/service"
)

// Prompt is printed to stderr before each shell line.
const Prompt = "household> "

func init() {
	Register(&ShellCmd{})
}

// ShellCmd reads command lines and runs them against one service, so
// changes such as toggles last for the whole session. "open <tab> [args]"
// switches to a screen; exit, quit or end of input leave. Signing out
// closes the shell.
type ShellCmd struct {
	env Env
}

func (c *ShellCmd) Name() string      { return "shell" }
func (c *ShellCmd) Aliases() []string { return []string{"sh"} }
func (c *ShellCmd) Synopsis() string  { return "Start an interactive session" }
func (c *ShellCmd) Usage() string     { return "household shell" }
func (c *ShellCmd) NeedsAuth() bool   { return true }

func (c *ShellCmd) SetEnv(env Env) { c.env = env }

func (c *ShellCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *ShellCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	if c.env.Exec == nil {
		fmt.Fprintln(errOut, "error: shell is not available")
		return exitcode.UserError
	}
	in := c.env.In
	if in == nil {
		in = os.Stdin
	}

	scanner := bufio.NewScanner(in)
	for {
		if !cfg.Quiet {
			fmt.Fprint(errOut, Prompt)
		}
		if !scanner.Scan() {
			break
		}
		if ctx.Err() != nil {
			return exitcode.Success
		}

		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}

		switch fields[0] {
		case "exit", "quit":
			return exitcode.Success
		case c.Name(), "sh":
			fmt.Fprintln(errOut, "error: already in a shell")
			continue
		case "open":
			if len(fields) < 2 {
				fmt.Fprintln(errOut, "error: tab name required")
				continue
			}
			if !c.env.Exec.Tab(fields[1]) {
				fmt.Fprintf(errOut, "error: unknown tab: %s (tabs: %s)\n", fields[1], strings.Join(c.env.Exec.Tabs(), ", "))
				continue
			}
			fields = fields[1:]
		}

		code := c.env.Exec.Exec(ctx, cfg, svc, fields, out, errOut)
		if c.env.Log != nil {
			c.env.Log.WithFields(logrus.Fields{
				"command": fields[0],
				"code":    code,
			}).Debug("shell command finished")
		}

		if c.env.Boot != nil && !c.env.Boot.Present() {
			if !cfg.Quiet {
				fmt.Fprintln(out, "signed out")
			}
			return exitcode.Success
		}
	}

	if err := scanner.Err(); err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.UserError
	}
	return exitcode.Success
}
