package commands

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"

	"household/internal/config"
	"household/internal/exitcode"
	"household/internal/service"
	"household/internal/session"
)

func init() {
	Register(&StatusCmd{})
}

// StatusCmd prints the resolved session and the selected backend.
type StatusCmd struct {
	env Env
}

func (c *StatusCmd) Name() string      { return "status" }
func (c *StatusCmd) Aliases() []string { return []string{"whoami"} }
func (c *StatusCmd) Synopsis() string  { return "Show who is signed in" }
func (c *StatusCmd) Usage() string     { return "household status" }
func (c *StatusCmd) NeedsAuth() bool   { return false }

func (c *StatusCmd) SetEnv(env Env) { c.env = env }

func (c *StatusCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *StatusCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	var s *session.Session
	if c.env.Boot != nil {
		s = c.env.Boot.Session()
	} else {
		got, err := sessionStore(c.env, cfg).GetSession(ctx)
		if errors.Is(err, session.ErrTokenExpired) {
			fmt.Fprintf(out, "backend: %s\n", cfg.Backend)
			fmt.Fprintln(out, "session: expired (run: household login)")
			return exitcode.Success
		}
		if err != nil {
			fmt.Fprintf(errOut, "error: %v\n", err)
			return exitcode.AuthError
		}
		s = got
	}

	fmt.Fprintf(out, "backend: %s\n", cfg.Backend)
	if s == nil {
		fmt.Fprintln(out, "session: none")
		return exitcode.Success
	}
	fmt.Fprintf(out, "session: %s (%s)\n", s.User, s.Provider)
	fmt.Fprintf(out, "since: %s\n", s.CreatedAt.Format("2006-01-02 15:04 MST"))
	return exitcode.Success
}
