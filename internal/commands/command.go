// Package commands provides the command interface and implementations.
package commands

import (
	"context"
	"flag"
	"io"

	"github.com/sirupsen/logrus"

	"household/internal/config"
	"household/internal/service"
	"household/internal/session"
)

// Command defines the interface for CLI commands.
type Command interface {
	// Name returns the primary command name.
	Name() string

	// Aliases returns alternative names for the command.
	Aliases() []string

	// Synopsis returns a short description for help output.
	Synopsis() string

	// Usage returns the usage string for help output.
	Usage() string

	// NeedsAuth returns true if the command requires a session.
	// Commands like help, version, login, logout return false.
	NeedsAuth() bool

	// RegisterFlags registers command-specific flags.
	RegisterFlags(fs *flag.FlagSet)

	// Run executes the command.
	// cfg is always provided (config dir, paths, settings).
	// svc is nil if NeedsAuth() returns false.
	// args contains positional arguments after flag parsing.
	// Returns exit code.
	Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int
}

// SessionStore is the session provider that login and logout write to.
type SessionStore interface {
	session.Provider
	SignIn(s *session.Session) error
	SignOut() (bool, error)
}

// Executor runs a command line against an existing service.
type Executor interface {
	Exec(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int

	// Tab reports whether name is a screen command.
	Tab(name string) bool

	// Tabs lists the screen command names, sorted.
	Tabs() []string
}

// Env carries what session and shell commands need beyond Run's
// arguments. Fields may be nil when the dispatcher has nothing to offer.
type Env struct {
	Sessions SessionStore
	Boot     *session.Bootstrap
	Exec     Executor
	In       io.Reader
	Log      logrus.FieldLogger
}

// EnvCommand is implemented by commands that need an Env.
// The dispatcher calls SetEnv before Run.
type EnvCommand interface {
	SetEnv(env Env)
}
