// Package memory implements service.Service over an in-memory copy of the
// household records. Nothing is persisted.
package memory

import (
	"context"
	"fmt"
	"slices"
	"sync"
	"time"

	"household/internal/household"
	"household/internal/service"
)

// Store implements service.Service.
type Store struct {
	mu   sync.RWMutex
	data household.Data
}

// New creates a store owning a copy of data.
func New(data household.Data) *Store {
	return &Store{data: household.Data{
		Tasks:         slices.Clone(data.Tasks),
		Payments:      slices.Clone(data.Payments),
		Polls:         slices.Clone(data.Polls),
		Notifications: slices.Clone(data.Notifications),
		Menu:          slices.Clone(data.Menu),
		Profile:       data.Profile,
	}}
}

// NewSeeded creates a store holding the sample household.
func NewSeeded(now time.Time) *Store {
	return New(household.Seed(now))
}

// ListTasks implements service.Service.
func (s *Store) ListTasks(ctx context.Context) ([]household.Task, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.data.Tasks), nil
}

// ToggleTask implements service.Service.
func (s *Store) ToggleTask(ctx context.Context, id string) (household.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	tasks, ok := household.ToggleCompletion(s.data.Tasks, id)
	if !ok {
		return household.Task{}, fmt.Errorf("task %s: %w", id, service.ErrNotFound)
	}
	s.data.Tasks = tasks
	i := slices.IndexFunc(tasks, func(t household.Task) bool { return t.ID == id })
	return tasks[i], nil
}

// ListPayments implements service.Service.
func (s *Store) ListPayments(ctx context.Context) ([]household.Payment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.data.Payments), nil
}

// ListPolls implements service.Service.
func (s *Store) ListPolls(ctx context.Context) ([]household.Poll, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.data.Polls), nil
}

// ListNotifications implements service.Service.
func (s *Store) ListNotifications(ctx context.Context) ([]household.Notification, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ns := slices.Clone(s.data.Notifications)
	slices.SortStableFunc(ns, func(a, b household.Notification) int { return b.At.Compare(a.At) })
	return ns, nil
}

// Profile implements service.Service.
func (s *Store) Profile(ctx context.Context) (household.Profile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.data.Profile, nil
}

// MenuItems implements service.Service.
func (s *Store) MenuItems(ctx context.Context) ([]household.MenuItem, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.data.Menu), nil
}

var _ service.Service = (*Store)(nil)
