// Package session resolves the signed-in member's session at startup and
// tracks changes to it for as long as the caller stays subscribed.
package session

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/oauth2"
)

// Event names a session change.
type Event string

const (
	EventInitialSession Event = "INITIAL_SESSION"
	EventSignedIn       Event = "SIGNED_IN"
	EventSignedOut      Event = "SIGNED_OUT"
	EventTokenRefreshed Event = "TOKEN_REFRESHED"
)

// Session providers.
const (
	ProviderLocal  = "local"
	ProviderGoogle = "google"
)

// ErrTokenExpired is returned when a Google session can no longer be
// refreshed.
var ErrTokenExpired = errors.New("token expired or revoked")

// Session is the credential bundle of the signed-in member.
type Session struct {
	ID        string        `json:"id"`
	User      string        `json:"user"`
	Provider  string        `json:"provider"`
	Token     *oauth2.Token `json:"token,omitempty"`
	CreatedAt time.Time     `json:"created_at"`
}

// New creates a session with a fresh ID.
func New(user, provider string, token *oauth2.Token) *Session {
	return &Session{
		ID:        uuid.NewString(),
		User:      user,
		Provider:  provider,
		Token:     token,
		CreatedAt: time.Now().UTC(),
	}
}

// Listener receives session changes. s is nil after EventSignedOut.
type Listener func(event Event, s *Session)

// Subscription is a registered Listener. Unsubscribe may be called more
// than once.
type Subscription interface {
	Unsubscribe()
}

// Provider is the authentication boundary.
type Provider interface {
	// GetSession returns the current session, or nil if there is none.
	GetSession(ctx context.Context) (*Session, error)

	// OnChange registers l until the returned Subscription is released.
	OnChange(l Listener) Subscription
}

// Broadcaster fans session events out to registered listeners in
// registration order. The zero value is ready to use.
type Broadcaster struct {
	mu        sync.Mutex
	nextID    int
	listeners []registered
}

type registered struct {
	id int
	fn Listener
}

// Subscribe registers l.
func (b *Broadcaster) Subscribe(l Listener) Subscription {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.nextID++
	b.listeners = append(b.listeners, registered{id: b.nextID, fn: l})
	return &subscription{b: b, id: b.nextID}
}

// Notify calls every listener with the event. Listeners run outside the
// lock and may unsubscribe themselves.
func (b *Broadcaster) Notify(event Event, s *Session) {
	b.mu.Lock()
	ls := make([]registered, len(b.listeners))
	copy(ls, b.listeners)
	b.mu.Unlock()

	for _, l := range ls {
		l.fn(event, s)
	}
}

// Len returns the number of registered listeners.
func (b *Broadcaster) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.listeners)
}

func (b *Broadcaster) remove(id int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for i, l := range b.listeners {
		if l.id == id {
			b.listeners = append(b.listeners[:i], b.listeners[i+1:]...)
			return
		}
	}
}

type subscription struct {
	b    *Broadcaster
	id   int
	once sync.Once
}

func (s *subscription) Unsubscribe() {
	s.once.Do(func() { s.b.remove(s.id) })
}
