// Package cli parses the command line and dispatches to commands.
package cli

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"

	"household/internal/commands"
	"household/internal/config"
	"household/internal/exitcode"
	"household/internal/logging"
	"household/internal/service"
	"household/internal/session"
)

// DefaultCommand runs when no command is given.
const DefaultCommand = commands.DefaultTab

// ServiceFactory creates a Service for the signed-in session.
// Used to inject the backend during dispatch.
type ServiceFactory func(ctx context.Context, cfg *config.Config, sess *session.Session) (service.Service, error)

// ProviderFactory creates the session store for a config.
type ProviderFactory func(cfg *config.Config) (commands.SessionStore, error)

// Dispatcher handles command-line parsing and dispatch.
type Dispatcher struct {
	registry  *commands.Registry
	factory   ServiceFactory
	providers ProviderFactory
	in        io.Reader
}

// Option configures a Dispatcher.
type Option func(*Dispatcher)

// WithProviders overrides how the session store is created.
func WithProviders(f ProviderFactory) Option {
	return func(d *Dispatcher) { d.providers = f }
}

// WithInput sets the reader the shell command reads lines from.
func WithInput(r io.Reader) Option {
	return func(d *Dispatcher) { d.in = r }
}

// NewDispatcher creates a new dispatcher with the given registry and service factory.
// Sessions default to a file in the config directory.
func NewDispatcher(registry *commands.Registry, factory ServiceFactory, opts ...Option) *Dispatcher {
	d := &Dispatcher{
		registry:  registry,
		factory:   factory,
		providers: FileProviders,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// FileProviders stores the session as a file in the config directory.
func FileProviders(cfg *config.Config) (commands.SessionStore, error) {
	return session.NewFileProvider(cfg.SessionPath()), nil
}

// Run parses arguments and dispatches to the appropriate command.
// Returns the exit code.
func (d *Dispatcher) Run(ctx context.Context, args []string, out, errOut io.Writer) int {
	// No args -> the home screen
	if len(args) == 0 {
		cmd, ok := d.registry.Find(DefaultCommand)
		if !ok {
			fmt.Fprintf(errOut, "error: unknown command: %s\n", DefaultCommand)
			return exitcode.UserError
		}
		return d.dispatchCommand(ctx, cmd, nil, out, errOut)
	}

	cmdName := args[0]

	// If first token starts with -, it's an error (flags require a command)
	if strings.HasPrefix(cmdName, "-") {
		fmt.Fprintf(errOut, "error: unknown command: %s\n", cmdName)
		return exitcode.UserError
	}

	cmd, ok := d.registry.Find(cmdName)
	if !ok {
		fmt.Fprintf(errOut, "error: unknown command: %s\n", cmdName)
		return exitcode.UserError
	}
	return d.dispatchCommand(ctx, cmd, args[1:], out, errOut)
}

func (d *Dispatcher) dispatchCommand(ctx context.Context, cmd commands.Command, args []string, out, errOut io.Writer) int {
	fs := flag.NewFlagSet(cmd.Name(), flag.ContinueOnError)
	fs.SetOutput(io.Discard) // We handle errors ourselves

	// Common flags
	var configDir, backend string
	var quiet, debug bool
	fs.StringVar(&configDir, "config", "", "")
	fs.StringVar(&backend, "backend", "", "")
	fs.BoolVar(&quiet, "quiet", false, "")
	fs.BoolVar(&debug, "debug", false, "")

	cmd.RegisterFlags(fs)

	positionalArgs, ok := parseFlags(fs, args, errOut)
	if !ok {
		return exitcode.UserError
	}

	cfg, err := config.New(configDir)
	if err != nil {
		fmt.Fprintf(errOut, "error: %s\n", err)
		return exitcode.UserError
	}
	cfg.Quiet = quiet
	cfg.Debug = debug
	if backend != "" {
		if err := cfg.SetBackend(backend); err != nil {
			fmt.Fprintf(errOut, "error: %s\n", err)
			return exitcode.UserError
		}
	}

	log := logging.New(errOut, debug)
	env := commands.Env{In: d.in, Log: log}

	// Session commands get the store; only commands behind the session
	// gate resolve the session up front.
	envCmd, wantsEnv := cmd.(commands.EnvCommand)
	if cmd.NeedsAuth() || wantsEnv {
		store, err := d.providers(cfg)
		if err != nil {
			fmt.Fprintf(errOut, "error: %s\n", err)
			return exitcode.AuthError
		}
		env.Sessions = store
		if cmd.NeedsAuth() {
			boot := session.NewBootstrap(store, log)
			boot.Start(ctx)
			defer boot.Close()
			env.Boot = boot
		}
	}

	var svc service.Service
	if cmd.NeedsAuth() {
		sess := env.Boot.Session()
		if sess == nil {
			fmt.Fprintln(errOut, "error: not logged in (run: household login)")
			return exitcode.AuthError
		}
		if sess.User != "" {
			cfg.User = sess.User
		}

		if d.factory == nil {
			fmt.Fprintln(errOut, "error: no backend configured")
			return exitcode.BackendError
		}
		svc, err = d.factory(ctx, cfg, sess)
		if err != nil {
			if errors.Is(err, service.ErrUnauthorized) || errors.Is(err, session.ErrTokenExpired) {
				fmt.Fprintf(errOut, "error: auth error: %s\n", err)
				return exitcode.AuthError
			}
			fmt.Fprintf(errOut, "error: backend error: %s\n", err)
			return exitcode.BackendError
		}
	}

	if wantsEnv {
		env.Exec = &executor{registry: d.registry, env: env}
		envCmd.SetEnv(env)
	}

	return cmd.Run(ctx, cfg, svc, positionalArgs, out, errOut)
}

// parseFlags parses args and reports flag errors the way the CLI words
// them. It returns the positional arguments.
func parseFlags(fs *flag.FlagSet, args []string, errOut io.Writer) ([]string, bool) {
	if err := fs.Parse(args); err != nil {
		errStr := err.Error()

		// Check for missing flag value
		if _, name, ok := strings.Cut(errStr, "flag needs an argument: "); ok {
			fmt.Fprintf(errOut, "error: flag needs an argument: %s\n", name)
			return nil, false
		}

		// Check for unknown flag
		if strings.HasPrefix(errStr, "flag provided but not defined:") {
			flagName := strings.TrimPrefix(errStr, "flag provided but not defined: ")
			fmt.Fprintf(errOut, "error: unknown flag: %s\n", flagName)
			return nil, false
		}

		fmt.Fprintf(errOut, "error: %s\n", errStr)
		return nil, false
	}

	// Check if first positional arg starts with - (should have been parsed as flag)
	positionalArgs := fs.Args()
	if len(positionalArgs) > 0 && strings.HasPrefix(positionalArgs[0], "-") {
		fmt.Fprintf(errOut, "error: unknown flag: %s\n", positionalArgs[0])
		return nil, false
	}
	return positionalArgs, true
}

// executor runs shell lines against the shell's service and session.
// Common flags are not accepted inside the shell.
type executor struct {
	registry *commands.Registry
	env      commands.Env
}

func (e *executor) Tab(name string) bool {
	_, ok := e.registry.FindTab(name)
	return ok
}

func (e *executor) Tabs() []string { return e.registry.Tabs() }

func (e *executor) Exec(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	if len(args) == 0 {
		return exitcode.Success
	}
	cmd, ok := e.registry.Find(args[0])
	if !ok {
		fmt.Fprintf(errOut, "error: unknown command: %s\n", args[0])
		return exitcode.UserError
	}

	fs := flag.NewFlagSet(cmd.Name(), flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	cmd.RegisterFlags(fs)
	positionalArgs, ok := parseFlags(fs, args[1:], errOut)
	if !ok {
		return exitcode.UserError
	}

	if ec, ok := cmd.(commands.EnvCommand); ok {
		ec.SetEnv(e.env)
	}
	code := cmd.Run(ctx, cfg, svc, positionalArgs, out, errOut)

	if e.env.Boot == nil {
		return code
	}
	if s := e.env.Boot.Session(); s != nil && s.User != "" {
		cfg.User = s.User
	}
	return code
}
