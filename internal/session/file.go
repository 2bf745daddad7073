package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"golang.org/x/oauth2"
)

// FileProvider keeps the current session as a JSON file.
type FileProvider struct {
	path   string
	oauth  *oauth2.Config
	events Broadcaster
}

// Option configures a FileProvider.
type Option func(*FileProvider)

// WithOAuthConfig lets the provider refresh expired Google tokens.
func WithOAuthConfig(c *oauth2.Config) Option {
	return func(p *FileProvider) { p.oauth = c }
}

// NewFileProvider creates a provider backed by the file at path.
func NewFileProvider(path string, opts ...Option) *FileProvider {
	p := &FileProvider{path: path}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// GetSession implements Provider. A missing file means no session.
// Google sessions are refreshed through the OAuth token source when
// expired; a changed token is saved and announced as EventTokenRefreshed.
func (p *FileProvider) GetSession(ctx context.Context) (*Session, error) {
	s, err := p.read()
	if err != nil || s == nil {
		return nil, err
	}
	if s.Provider != ProviderGoogle {
		return s, nil
	}
	return p.refresh(ctx, s)
}

// OnChange implements Provider.
func (p *FileProvider) OnChange(l Listener) Subscription {
	return p.events.Subscribe(l)
}

// SignIn stores s as the current session.
func (p *FileProvider) SignIn(s *Session) error {
	if err := p.write(s); err != nil {
		return err
	}
	p.events.Notify(EventSignedIn, s)
	return nil
}

// SignOut removes the stored session. It reports false when there was
// none.
func (p *FileProvider) SignOut() (bool, error) {
	if err := os.Remove(p.path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return false, nil
		}
		return false, fmt.Errorf("failed to remove session: %w", err)
	}
	p.events.Notify(EventSignedOut, nil)
	return true, nil
}

func (p *FileProvider) refresh(ctx context.Context, s *Session) (*Session, error) {
	if s.Token == nil {
		return nil, ErrTokenExpired
	}
	if s.Token.Valid() {
		return s, nil
	}
	if s.Token.RefreshToken == "" || p.oauth == nil {
		return nil, ErrTokenExpired
	}

	tok, err := p.oauth.TokenSource(ctx, s.Token).Token()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTokenExpired, err)
	}
	if tok.AccessToken == s.Token.AccessToken {
		return s, nil
	}

	refreshed := *s
	refreshed.Token = tok
	if err := p.write(&refreshed); err != nil {
		return nil, err
	}
	p.events.Notify(EventTokenRefreshed, &refreshed)
	return &refreshed, nil
}

func (p *FileProvider) read() (*Session, error) {
	data, err := os.ReadFile(p.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read session: %w", err)
	}
	var s Session
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("invalid session file: %w", err)
	}
	return &s, nil
}

// write saves the session with mode 0600.
func (p *FileProvider) write(s *Session) error {
	if err := os.MkdirAll(filepath.Dir(p.path), 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return err
	}
	if err := os.WriteFile(p.path, data, 0600); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}
	return nil
}
