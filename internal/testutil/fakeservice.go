// Package testutil provides testing utilities.
package testutil

import (
	"context"
	"fmt"
	"slices"
	"sync"
	"time"

	"household/internal/household"
	"household/internal/service"
	"household/internal/session"
)

// FakeService is an in-memory implementation of service.Service for testing.
type FakeService struct {
	mu   sync.RWMutex
	data household.Data

	// Toggled records toggled task IDs in call order.
	Toggled []string

	// Error injection for testing
	ListTasksErr         error
	ToggleTaskErr        error
	ListPaymentsErr      error
	ListPollsErr         error
	ListNotificationsErr error
	ProfileErr           error
	MenuItemsErr         error
}

// NewFakeService creates an empty FakeService.
func NewFakeService() *FakeService {
	return &FakeService{}
}

// NewSeededFakeService creates a FakeService holding the sample household
// with notification times relative to now.
func NewSeededFakeService(now time.Time) *FakeService {
	return &FakeService{data: household.Seed(now)}
}

// AddTask appends a task.
func (f *FakeService) AddTask(t household.Task) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.data.Tasks = append(f.data.Tasks, t)
}

// AddPayment appends a payment.
func (f *FakeService) AddPayment(p household.Payment) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.data.Payments = append(f.data.Payments, p)
}

// AddNotification appends a notification.
func (f *FakeService) AddNotification(n household.Notification) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.data.Notifications = append(f.data.Notifications, n)
}

// Tasks returns the current tasks.
func (f *FakeService) Tasks() []household.Task {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return slices.Clone(f.data.Tasks)
}

// ListTasks implements service.Service.
func (f *FakeService) ListTasks(ctx context.Context) ([]household.Task, error) {
	if f.ListTasksErr != nil {
		return nil, f.ListTasksErr
	}
	return f.Tasks(), nil
}

// ToggleTask implements service.Service.
func (f *FakeService) ToggleTask(ctx context.Context, id string) (household.Task, error) {
	if f.ToggleTaskErr != nil {
		return household.Task{}, f.ToggleTaskErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()

	tasks, ok := household.ToggleCompletion(f.data.Tasks, id)
	if !ok {
		return household.Task{}, fmt.Errorf("task %s: %w", id, service.ErrNotFound)
	}
	f.data.Tasks = tasks
	f.Toggled = append(f.Toggled, id)
	return tasks[slices.IndexFunc(tasks, func(t household.Task) bool { return t.ID == id })], nil
}

// ListPayments implements service.Service.
func (f *FakeService) ListPayments(ctx context.Context) ([]household.Payment, error) {
	if f.ListPaymentsErr != nil {
		return nil, f.ListPaymentsErr
	}
	f.mu.RLock()
	defer f.mu.RUnlock()
	return slices.Clone(f.data.Payments), nil
}

// ListPolls implements service.Service.
func (f *FakeService) ListPolls(ctx context.Context) ([]household.Poll, error) {
	if f.ListPollsErr != nil {
		return nil, f.ListPollsErr
	}
	f.mu.RLock()
	defer f.mu.RUnlock()
	return slices.Clone(f.data.Polls), nil
}

// ListNotifications implements service.Service.
func (f *FakeService) ListNotifications(ctx context.Context) ([]household.Notification, error) {
	if f.ListNotificationsErr != nil {
		return nil, f.ListNotificationsErr
	}
	f.mu.RLock()
	defer f.mu.RUnlock()
	return slices.Clone(f.data.Notifications), nil
}

// Profile implements service.Service.
func (f *FakeService) Profile(ctx context.Context) (household.Profile, error) {
	if f.ProfileErr != nil {
		return household.Profile{}, f.ProfileErr
	}
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.data.Profile, nil
}

// MenuItems implements service.Service.
func (f *FakeService) MenuItems(ctx context.Context) ([]household.MenuItem, error) {
	if f.MenuItemsErr != nil {
		return nil, f.MenuItemsErr
	}
	f.mu.RLock()
	defer f.mu.RUnlock()
	return slices.Clone(f.data.Menu), nil
}

var _ service.Service = (*FakeService)(nil)

// FakeSessions is an in-memory session store.
type FakeSessions struct {
	session.Broadcaster

	mu      sync.Mutex
	current *session.Session

	// GetErr is returned by GetSession when set.
	GetErr error
	// GetCalls counts GetSession calls.
	GetCalls int
}

// NewFakeSessions creates a store holding s, which may be nil.
func NewFakeSessions(s *session.Session) *FakeSessions {
	return &FakeSessions{current: s}
}

// GetSession implements session.Provider.
func (f *FakeSessions) GetSession(ctx context.Context) (*session.Session, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.GetCalls++
	if f.GetErr != nil {
		return nil, f.GetErr
	}
	return f.current, nil
}

// OnChange implements session.Provider.
func (f *FakeSessions) OnChange(l session.Listener) session.Subscription {
	return f.Subscribe(l)
}

// SignIn stores s and announces it.
func (f *FakeSessions) SignIn(s *session.Session) error {
	f.mu.Lock()
	f.current = s
	f.mu.Unlock()
	f.Notify(session.EventSignedIn, s)
	return nil
}

// SignOut clears the session and announces it.
func (f *FakeSessions) SignOut() (bool, error) {
	f.mu.Lock()
	had := f.current != nil
	f.current = nil
	f.mu.Unlock()
	if had {
		f.Notify(session.EventSignedOut, nil)
	}
	return had, nil
}
