// Package service defines the backend-agnostic interface for household records.
package service

import (
	"context"
	"errors"

	"household/internal/household"
)

var (
	// ErrNotFound is returned when a record does not exist.
	ErrNotFound = errors.New("not found")

	// ErrUnauthorized is returned when the backend rejects the session.
	ErrUnauthorized = errors.New("unauthorized")
)

// Service defines the interface for household backend operations.
// Commands never import a backend package directly.
type Service interface {
	// ListTasks returns every task in backend order.
	ListTasks(ctx context.Context) ([]household.Task, error)

	// ToggleTask flips the completion flag of a task and returns the
	// updated task. Returns ErrNotFound for an unknown id.
	ToggleTask(ctx context.Context, id string) (household.Task, error)

	// ListPayments returns every shared payment.
	ListPayments(ctx context.Context) ([]household.Payment, error)

	// ListPolls returns the active polls.
	ListPolls(ctx context.Context) ([]household.Poll, error)

	// ListNotifications returns the activity feed, newest first.
	ListNotifications(ctx context.Context) ([]household.Notification, error)

	// Profile returns the signed-in member's profile without stats.
	Profile(ctx context.Context) (household.Profile, error)

	// MenuItems returns the profile menu.
	MenuItems(ctx context.Context) ([]household.MenuItem, error)
}

// Provisioner is implemented by backends that must create their storage
// before first use.
type Provisioner interface {
	// Provision creates the storage and fills it with tasks unless it
	// already exists. It reports whether anything was created.
	Provision(ctx context.Context, tasks []household.Task) (bool, error)
}
