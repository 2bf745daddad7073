// Package main is the entry point for the household CLI.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"household/internal/backend/googletasks"
	"household/internal/backend/memory"
	"household/internal/cli"
	"household/internal/commands"
	"household/internal/config"
	"household/internal/service"
	"household/internal/session"
)

func main() {
	// Create context that cancels on interrupt
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	dispatcher := cli.NewDispatcher(commands.DefaultRegistry, newService,
		cli.WithProviders(newProvider),
		cli.WithInput(os.Stdin),
	)

	code := dispatcher.Run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	cancel()
	os.Exit(code)
}

// newService picks the backend named in the config. The memory store is
// shared with the Google backend for the records Google Tasks lacks.
func newService(ctx context.Context, cfg *config.Config, sess *session.Session) (service.Service, error) {
	records := memory.NewSeeded(time.Now())
	if cfg.Backend == config.BackendGoogle {
		return googletasks.New(ctx, cfg, sess, googletasks.WithRecords(records))
	}
	return records, nil
}

// newProvider stores sessions in the config directory and refreshes
// Google tokens when OAuth credentials are present.
func newProvider(cfg *config.Config) (commands.SessionStore, error) {
	var opts []session.Option
	if cfg.HasOAuthClient() {
		oauthConfig, err := cfg.OAuthConfig()
		if err != nil {
			return nil, err
		}
		opts = append(opts, session.WithOAuthConfig(oauthConfig))
	}
	return session.NewFileProvider(cfg.SessionPath(), opts...), nil
}
