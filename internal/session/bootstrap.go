package session

import (
	"context"
	"errors"
	"sync"

	"github.com/sirupsen/logrus"
)

// Bootstrap resolves the session once at startup and keeps it current
// from change events until Close.
type Bootstrap struct {
	provider Provider
	log      logrus.FieldLogger

	mu      sync.RWMutex
	session *Session
	loading bool
	started bool
	events  int
	sub     Subscription
}

// NewBootstrap creates a Bootstrap in the loading state.
func NewBootstrap(p Provider, log logrus.FieldLogger) *Bootstrap {
	return &Bootstrap{
		provider: p,
		log:      log,
		loading:  true,
	}
}

// Start subscribes to session changes and fetches the current session.
// A fetch error is logged and treated as no session. An expired token is
// logged at debug level only. If a change event arrives while the fetch
// is in flight, the event wins.
func (b *Bootstrap) Start(ctx context.Context) {
	b.mu.Lock()
	if b.started {
		b.mu.Unlock()
		return
	}
	b.started = true
	seen := b.events
	b.mu.Unlock()

	sub := b.provider.OnChange(b.handle)

	b.mu.Lock()
	b.sub = sub
	b.mu.Unlock()

	s, err := b.provider.GetSession(ctx)
	switch {
	case errors.Is(err, ErrTokenExpired):
		b.log.WithError(err).Debug("session expired")
		s = nil
	case err != nil:
		b.log.WithError(err).Error("failed to fetch session")
		s = nil
	default:
		b.log.WithFields(logrus.Fields{
			"event":   string(EventInitialSession),
			"present": s != nil,
		}).Debug("session resolved")
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	if b.events == seen {
		b.session = s
	}
	b.loading = false
}

func (b *Bootstrap) handle(event Event, s *Session) {
	b.log.WithFields(logrus.Fields{
		"event":   string(event),
		"present": s != nil,
	}).Debug("session changed")

	b.mu.Lock()
	defer b.mu.Unlock()
	b.events++
	if event == EventSignedOut {
		s = nil
	}
	b.session = s
}

// Loading reports whether Start has not finished yet.
func (b *Bootstrap) Loading() bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.loading
}

// Present reports whether a session is available.
func (b *Bootstrap) Present() bool {
	return b.Session() != nil
}

// Session returns the current session or nil.
func (b *Bootstrap) Session() *Session {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.session
}

// Close releases the change subscription. Safe to call more than once.
func (b *Bootstrap) Close() {
	b.mu.Lock()
	sub := b.sub
	b.sub = nil
	b.mu.Unlock()
	if sub != nil {
		sub.Unsubscribe()
	}
}
