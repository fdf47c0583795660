// Package session owns the access-token lifecycle: hydration from the
// persisted state store, login/logout, the expired-session prompt state
// machine, and silent refresh. It is the only writer of the API
// client's default authorization header.
package session

import (
	"context"
	"errors"
	"sync"
	"time"
)

// ErrRefreshFailed indicates a silent refresh could not produce a new
// token. The store has already cleared the session; callers should
// return the user to the auth screen.
var ErrRefreshFailed = errors.New("session: refresh failed")

// TokenAPI is the slice of the API client the store drives.
type TokenAPI interface {
	SetAuthToken(token string)
	RefreshToken(ctx context.Context) (string, error)
}

// TokenStorage persists the access token across runs.
type TokenStorage interface {
	Token() (string, error)
	SetToken(token string) error
	ClearToken() error
}

// Snapshot is a consistent read of the session state for rendering.
type Snapshot struct {
	Ready         bool
	Authenticated bool
	PromptVisible bool
	Refreshing    bool
	Claims        *Claims
}

// CanRenderProtected is the route-guard derivation: protected content
// may render only once hydration finished and the user is signed in.
func (s Snapshot) CanRenderProtected() bool {
	return s.Ready && s.Authenticated
}

// Store holds the tab-scoped session state.
type Store struct {
	api     TokenAPI
	storage TokenStorage
	now     func() time.Time

	mu            sync.Mutex
	token         string
	claims        *Claims
	ready         bool
	authenticated bool
	promptVisible bool
	refreshing    bool

	// Concurrent ContinueSession calls share one in-flight refresh.
	inflight *refreshFlight
}

// refreshFlight carries the outcome of one refresh cycle. The error is
// written before done closes, so followers of this flight can never
// observe the outcome of a later cycle.
type refreshFlight struct {
	done chan struct{}
	err  error
}

// NewStore creates a session store bound to an API client and a token
// storage. Call Hydrate before reading state.
func NewStore(api TokenAPI, storage TokenStorage) *Store {
	return &Store{api: api, storage: storage, now: time.Now}
}

// Hydrate loads the persisted token, drops it if it is expired or
// undecodable, and marks the store ready. Storage read failures are
// treated as an absent token.
func (s *Store) Hydrate() {
	s.mu.Lock()
	defer s.mu.Unlock()

	defer func() { s.ready = true }()

	token, err := s.storage.Token()
	if err != nil || token == "" {
		return
	}

	claims, err := DecodeClaims(token)
	if err != nil || claims.Expired(s.now()) {
		_ = s.storage.ClearToken()
		s.api.SetAuthToken("")
		return
	}

	s.token = token
	s.claims = claims
	s.authenticated = true
	s.api.SetAuthToken(token)
}

// Login installs a freshly issued token: persists it, sets the default
// authorization header, and decodes identity claims. An undecodable
// token still authenticates; the backend issued it, claims are only
// display data.
func (s *Store) Login(token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.install(token)
}

// install assumes s.mu is held.
func (s *Store) install(token string) {
	_ = s.storage.SetToken(token)
	s.api.SetAuthToken(token)

	claims, err := DecodeClaims(token)
	if err != nil {
		claims = nil
	}

	s.token = token
	s.claims = claims
	s.authenticated = true
	s.promptVisible = false
}

// Logout clears the session. Callers navigate back to the auth screen
// afterwards; SilentLogout is the same clearing without that
// expectation.
func (s *Store) Logout() {
	s.SilentLogout()
}

// SilentLogout clears the persisted token, the default header, the
// claims, and all flags.
func (s *Store) SilentLogout() {
	s.mu.Lock()
	defer s.mu.Unlock()

	_ = s.storage.ClearToken()
	s.api.SetAuthToken("")
	s.token = ""
	s.claims = nil
	s.authenticated = false
	s.promptVisible = false
}

// ShowExpiredPrompt flips the blocking prompt visible. Page views
// short-circuit to a waiting state while it shows.
func (s *Store) ShowExpiredPrompt() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.promptVisible = true
}

// ContinueSession performs a silent refresh. Concurrent calls coalesce
// into a single network request whose outcome all callers share. On
// success the new token replaces the old and the prompt hides; on
// failure the session is cleared and ErrRefreshFailed (or the transport
// error) is returned.
func (s *Store) ContinueSession(ctx context.Context) error {
	s.mu.Lock()
	if f := s.inflight; f != nil {
		s.mu.Unlock()
		select {
		case <-f.done:
			return f.err
		case <-ctx.Done():
			return ctx.Err()
		}
	}

	flight := &refreshFlight{done: make(chan struct{})}
	s.inflight = flight
	s.refreshing = true
	s.mu.Unlock()

	err := s.refreshOnce(ctx)

	s.mu.Lock()
	s.refreshing = false
	s.inflight = nil
	s.mu.Unlock()

	flight.err = err
	close(flight.done)

	return err
}

func (s *Store) refreshOnce(ctx context.Context) error {
	token, err := s.api.RefreshToken(ctx)
	if err != nil || token == "" {
		s.SilentLogout()
		if err == nil {
			err = ErrRefreshFailed
		}
		return err
	}

	s.mu.Lock()
	s.install(token)
	s.mu.Unlock()
	return nil
}

// Snapshot returns a consistent copy of the session state.
func (s *Store) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Snapshot{
		Ready:         s.ready,
		Authenticated: s.authenticated,
		PromptVisible: s.promptVisible,
		Refreshing:    s.refreshing,
		Claims:        s.claims,
	}
}

// Token returns the current access token, or "" when signed out.
func (s *Store) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token
}
