// Package googletasks implements service.Service with household tasks kept
// in a Google Tasks list. Other records come from the in-memory store.
package googletasks

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/cenkalti/backoff/v4"
	"golang.org/x/oauth2"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
	tasks "google.golang.org/api/tasks/v1"

	"household/internal/backend/memory"
	"household/internal/config"
	"household/internal/household"
	"household/internal/service"
	"household/internal/session"
)

const (
	// PageSize is the number of tasks per API page.
	PageSize = 100

	// APITimeout is the timeout for a single API call.
	APITimeout = 5 * time.Second

	// MaxRetries bounds retries of transient API failures.
	MaxRetries = 3

	statusCompleted   = "completed"
	statusNeedsAction = "needsAction"
)

// Client implements service.Service using Google Tasks API.
type Client struct {
	svc        *tasks.Service
	listTitle  string
	records    *memory.Store
	newBackOff func() backoff.BackOff

	mu     sync.Mutex
	listID string
}

// Option configures a Client.
type Option func(*clientOptions)

type clientOptions struct {
	endpoint   string
	records    *memory.Store
	newBackOff func() backoff.BackOff
}

// WithEndpoint overrides the API base URL.
func WithEndpoint(url string) Option {
	return func(o *clientOptions) { o.endpoint = url }
}

// WithRecords sets the store serving payments, polls, notifications and
// the profile.
func WithRecords(s *memory.Store) Option {
	return func(o *clientOptions) { o.records = s }
}

// WithBackOff sets the retry policy factory.
func WithBackOff(f func() backoff.BackOff) Option {
	return func(o *clientOptions) { o.newBackOff = f }
}

// New creates a client authenticated with the session's Google token.
func New(ctx context.Context, cfg *config.Config, sess *session.Session, opts ...Option) (*Client, error) {
	if sess == nil || sess.Provider != session.ProviderGoogle || sess.Token == nil {
		return nil, fmt.Errorf("%w: google backend needs a google session (run: household login)", service.ErrUnauthorized)
	}

	oauthConfig, err := cfg.OAuthConfig()
	if err != nil {
		return nil, err
	}

	// Create HTTP client with a token source that auto-refreshes
	httpClient := oauth2.NewClient(ctx, oauthConfig.TokenSource(ctx, sess.Token))

	return NewWithHTTPClient(ctx, httpClient, cfg.GoogleList, opts...)
}

// NewWithHTTPClient creates a client with a custom HTTP client.
func NewWithHTTPClient(ctx context.Context, httpClient *http.Client, listTitle string, opts ...Option) (*Client, error) {
	o := clientOptions{}
	for _, opt := range opts {
		opt(&o)
	}

	apiOpts := []option.ClientOption{option.WithHTTPClient(httpClient)}
	if o.endpoint != "" {
		apiOpts = append(apiOpts, option.WithEndpoint(o.endpoint))
	}
	svc, err := tasks.NewService(ctx, apiOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create tasks service: %w", err)
	}

	if o.records == nil {
		o.records = memory.NewSeeded(time.Now())
	}
	if o.newBackOff == nil {
		o.newBackOff = defaultBackOff
	}

	return &Client{
		svc:        svc,
		listTitle:  listTitle,
		records:    o.records,
		newBackOff: o.newBackOff,
	}, nil
}

func defaultBackOff() backoff.BackOff {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = 200 * time.Millisecond
	b.MaxElapsedTime = 10 * time.Second
	return b
}

// ListTasks implements service.Service.
func (c *Client) ListTasks(ctx context.Context) ([]household.Task, error) {
	listID, err := c.resolveList(ctx)
	if err != nil {
		return nil, err
	}

	var result []household.Task
	err = c.call(ctx, func(ctx context.Context) error {
		result = result[:0]
		return c.svc.Tasks.List(listID).
			MaxResults(PageSize).
			ShowCompleted(true).
			ShowHidden(true).
			ShowDeleted(false).
			Pages(ctx, func(resp *tasks.Tasks) error {
				for _, t := range resp.Items {
					result = append(result, fromAPI(t))
				}
				return nil
			})
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// ToggleTask implements service.Service.
func (c *Client) ToggleTask(ctx context.Context, id string) (household.Task, error) {
	listID, err := c.resolveList(ctx)
	if err != nil {
		return household.Task{}, err
	}

	var current *tasks.Task
	err = c.call(ctx, func(ctx context.Context) error {
		t, err := c.svc.Tasks.Get(listID, id).Context(ctx).Do()
		current = t
		return err
	})
	if err != nil {
		return household.Task{}, fmt.Errorf("task %s: %w", id, err)
	}

	patch := &tasks.Task{Status: statusCompleted}
	if current.Status == statusCompleted {
		// Reopening requires clearing the completion timestamp.
		patch = &tasks.Task{Status: statusNeedsAction, NullFields: []string{"Completed"}}
	}

	var updated *tasks.Task
	err = c.call(ctx, func(ctx context.Context) error {
		t, err := c.svc.Tasks.Patch(listID, id, patch).Context(ctx).Do()
		updated = t
		return err
	})
	if err != nil {
		return household.Task{}, fmt.Errorf("task %s: %w", id, err)
	}
	return fromAPI(updated), nil
}

// Provision creates the household list and fills it with tasks when no
// list with that title exists yet. It reports whether anything was created.
// Tasks are inserted in reverse since the API puts new tasks on top.
func (c *Client) Provision(ctx context.Context, ts []household.Task) (bool, error) {
	_, err := c.resolveList(ctx)
	if err == nil {
		return false, nil
	}
	if !errors.Is(err, service.ErrNotFound) {
		return false, err
	}

	var list *tasks.TaskList
	err = c.callOnce(ctx, func(ctx context.Context) error {
		l, err := c.svc.Tasklists.Insert(&tasks.TaskList{Title: c.listTitle}).Context(ctx).Do()
		list = l
		return err
	})
	if err != nil {
		return false, err
	}

	for i := len(ts) - 1; i >= 0; i-- {
		t := toAPI(ts[i])
		err := c.callOnce(ctx, func(ctx context.Context) error {
			_, err := c.svc.Tasks.Insert(list.Id, t).Context(ctx).Do()
			return err
		})
		if err != nil {
			return true, fmt.Errorf("failed to create task %q: %w", ts[i].Title, err)
		}
	}

	c.mu.Lock()
	c.listID = list.Id
	c.mu.Unlock()
	return true, nil
}

// ListPayments implements service.Service.
func (c *Client) ListPayments(ctx context.Context) ([]household.Payment, error) {
	return c.records.ListPayments(ctx)
}

// ListPolls implements service.Service.
func (c *Client) ListPolls(ctx context.Context) ([]household.Poll, error) {
	return c.records.ListPolls(ctx)
}

// ListNotifications implements service.Service.
func (c *Client) ListNotifications(ctx context.Context) ([]household.Notification, error) {
	return c.records.ListNotifications(ctx)
}

// Profile implements service.Service.
func (c *Client) Profile(ctx context.Context) (household.Profile, error) {
	return c.records.Profile(ctx)
}

// MenuItems implements service.Service.
func (c *Client) MenuItems(ctx context.Context) ([]household.MenuItem, error) {
	return c.records.MenuItems(ctx)
}

// resolveList finds the household list by title (case-insensitive,
// trimmed) and caches its ID.
func (c *Client) resolveList(ctx context.Context) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.listID != "" {
		return c.listID, nil
	}

	want := strings.ToLower(strings.TrimSpace(c.listTitle))
	var matches []string
	err := c.call(ctx, func(ctx context.Context) error {
		matches = matches[:0]
		return c.svc.Tasklists.List().MaxResults(100).Pages(ctx, func(resp *tasks.TaskLists) error {
			for _, list := range resp.Items {
				if strings.ToLower(strings.TrimSpace(list.Title)) == want {
					matches = append(matches, list.Id)
				}
			}
			return nil
		})
	})
	if err != nil {
		return "", err
	}

	switch len(matches) {
	case 0:
		return "", fmt.Errorf("task list %q: %w", c.listTitle, service.ErrNotFound)
	case 1:
		c.listID = matches[0]
		return c.listID, nil
	default:
		return "", fmt.Errorf("ambiguous list name: %s", c.listTitle)
	}
}

// call runs op with a per-attempt timeout, retrying transient failures.
func (c *Client) call(ctx context.Context, op func(ctx context.Context) error) error {
	policy := backoff.WithContext(backoff.WithMaxRetries(c.newBackOff(), MaxRetries), ctx)
	err := backoff.Retry(func() error {
		attemptCtx, cancel := context.WithTimeout(ctx, APITimeout)
		defer cancel()

		err := op(attemptCtx)
		if err != nil && !retryable(err) {
			return backoff.Permanent(err)
		}
		return err
	}, policy)
	return wrapError(err)
}

// callOnce runs a non-idempotent op without retries.
func (c *Client) callOnce(ctx context.Context, op func(ctx context.Context) error) error {
	attemptCtx, cancel := context.WithTimeout(ctx, APITimeout)
	defer cancel()
	return wrapError(op(attemptCtx))
}

// retryable reports whether err is worth another attempt: rate limits,
// server errors and per-attempt timeouts.
func retryable(err error) bool {
	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) {
		return apiErr.Code == http.StatusTooManyRequests || apiErr.Code >= 500
	}
	return errors.Is(err, context.DeadlineExceeded)
}

// wrapError wraps API errors with user-friendly messages.
func wrapError(err error) error {
	if err == nil {
		return nil
	}

	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) {
		switch apiErr.Code {
		case http.StatusUnauthorized, http.StatusForbidden:
			return fmt.Errorf("%w: token expired or revoked (run: household login)", service.ErrUnauthorized)
		case http.StatusNotFound:
			return service.ErrNotFound
		}
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("request timed out")
	}

	return err
}

var _ service.Service = (*Client)(nil)
var _ service.Provisioner = (*Client)(nil)
