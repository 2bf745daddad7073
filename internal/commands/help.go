package commands

import (
	"context"
	"flag"
	"fmt"
	"io"
	"strings"

	"household/internal/config"
	"household/internal/exitcode"
	"household/internal/service"
)

func init() {
	Register(&HelpCmd{})
}

// HelpCmd prints usage built from the registered commands.
type HelpCmd struct {
	// Registry defaults to DefaultRegistry.
	Registry *Registry
}

func (c *HelpCmd) Name() string      { return "help" }
func (c *HelpCmd) Aliases() []string { return nil }
func (c *HelpCmd) Synopsis() string  { return "Print usage" }
func (c *HelpCmd) Usage() string     { return "household help" }
func (c *HelpCmd) NeedsAuth() bool   { return false }

func (c *HelpCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *HelpCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	r := c.Registry
	if r == nil {
		r = DefaultRegistry
	}

	fmt.Fprintln(out, "Usage:")
	fmt.Fprintf(out, "  %-52s %s\n", "household", "Show the "+DefaultTab+" screen")
	for _, cmd := range r.All() {
		synopsis := cmd.Synopsis()
		if aliases := cmd.Aliases(); len(aliases) > 0 {
			synopsis += " (alias: " + strings.Join(aliases, ", ") + ")"
		}
		fmt.Fprintf(out, "  %-52s %s\n", cmd.Usage(), synopsis)
	}

	fmt.Fprintf(out, helpText, strings.Join(r.Tabs(), ", "))
	return exitcode.Success
}

const helpText = `
Task filters:
  all, mine, pending

Task sorts:
  urgency-desc (urgencyHigh), urgency-asc (urgencyLow),
  due-desc (recent), due-asc (oldest),
  completed-first (completed), incomplete-first (incomplete)

Shell:
  open <tab> [args]   Switch to a tab: %s
  <command> [args]    Run any command, e.g. toggle 1
  exit, quit          Leave the shell

Common flags:
  --config <dir>      Override config directory
  --backend <name>    memory or google
  --quiet             Suppress informational output
  --debug             Print debug logs to stderr
`
