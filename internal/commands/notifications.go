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
	"household/internal/output"
	"household/internal/service"
)

func init() {
	Register(&NotificationsCmd{})
}

// NotificationsCmd implements the notifications screen.
type NotificationsCmd struct {
	unread bool
}

// SetUnread limits output to unread notifications (for testing).
func (c *NotificationsCmd) SetUnread(unread bool) {
	c.unread = unread
}

func (c *NotificationsCmd) Name() string      { return "notifications" }
func (c *NotificationsCmd) Aliases() []string { return []string{"inbox"} }
func (c *NotificationsCmd) Synopsis() string  { return "Show household activity" }
func (c *NotificationsCmd) Usage() string     { return "household notifications [--unread]" }
func (c *NotificationsCmd) NeedsAuth() bool   { return true }
func (c *NotificationsCmd) Tab() bool         { return true }

func (c *NotificationsCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.BoolVar(&c.unread, "unread", false, "")
	fs.BoolVar(&c.unread, "u", false, "")
}

func (c *NotificationsCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	ns, err := svc.ListNotifications(ctx)
	if err != nil {
		return reportError(errOut, err)
	}

	unread := household.Unread(ns)
	if c.unread {
		ns = unread
	}
	if len(ns) == 0 {
		if !cfg.Quiet {
			fmt.Fprintln(out, "no notifications")
		}
		return exitcode.Success
	}

	if !cfg.Quiet {
		fmt.Fprintf(out, "%d unread\n", len(unread))
	}
	now := time.Now()
	for _, n := range ns {
		output.FormatNotification(out, n, now)
	}
	return exitcode.Success
}
