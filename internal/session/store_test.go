package session

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

type fakeAPI struct {
	mu           sync.Mutex
	authToken    string
	refreshCalls int32
	refreshToken string
	refreshErr   error
	refreshDelay time.Duration
	refreshGate  chan struct{}
}

func (f *fakeAPI) SetAuthToken(token string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.authToken = token
}

func (f *fakeAPI) AuthToken() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.authToken
}

func (f *fakeAPI) RefreshToken(_ context.Context) (string, error) {
	atomic.AddInt32(&f.refreshCalls, 1)
	if f.refreshDelay > 0 {
		time.Sleep(f.refreshDelay)
	}
	if f.refreshGate != nil {
		<-f.refreshGate
	}
	return f.refreshToken, f.refreshErr
}

type fakeStorage struct {
	mu    sync.Mutex
	token string
	err   error
}

func (f *fakeStorage) Token() (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.token, f.err
}

func (f *fakeStorage) SetToken(token string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.token = token
	return nil
}

func (f *fakeStorage) ClearToken() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.token = ""
	return nil
}

func mintToken(t *testing.T, email string, exp time.Time) string {
	t.Helper()
	claims := Claims{
		Email:    email,
		FullName: "Test User",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(exp),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	if err != nil {
		t.Fatalf("minting token: %v", err)
	}
	return token
}

func TestHydrate_ValidToken(t *testing.T) {
	api := &fakeAPI{}
	token := mintToken(t, "ana@example.com", time.Now().Add(time.Hour))
	storage := &fakeStorage{token: token}

	s := NewStore(api, storage)
	s.Hydrate()

	snap := s.Snapshot()
	if !snap.Ready {
		t.Fatal("store not ready after Hydrate")
	}
	if !snap.Authenticated {
		t.Fatal("valid persisted token did not authenticate")
	}
	if snap.Claims == nil || snap.Claims.Email != "ana@example.com" {
		t.Fatalf("claims = %+v, want email ana@example.com", snap.Claims)
	}
	if api.AuthToken() != token {
		t.Fatal("auth header not set from persisted token")
	}
	if !snap.CanRenderProtected() {
		t.Fatal("CanRenderProtected() = false, want true")
	}
}

func TestHydrate_ExpiredTokenCleared(t *testing.T) {
	api := &fakeAPI{}
	storage := &fakeStorage{token: mintToken(t, "ana@example.com", time.Now().Add(-time.Hour))}

	s := NewStore(api, storage)
	s.Hydrate()

	snap := s.Snapshot()
	if !snap.Ready {
		t.Fatal("store not ready after Hydrate")
	}
	if snap.Authenticated {
		t.Fatal("expired token must not authenticate")
	}
	if got, _ := storage.Token(); got != "" {
		t.Fatalf("expired token left in storage: %q", got)
	}
}

func TestHydrate_UndecodableTokenCleared(t *testing.T) {
	api := &fakeAPI{}
	storage := &fakeStorage{token: "not-a-jwt"}

	s := NewStore(api, storage)
	s.Hydrate()

	if s.Snapshot().Authenticated {
		t.Fatal("garbage token must not authenticate")
	}
	if got, _ := storage.Token(); got != "" {
		t.Fatalf("garbage token left in storage: %q", got)
	}
}

func TestHydrate_StorageErrorTreatedAsAbsent(t *testing.T) {
	api := &fakeAPI{}
	storage := &fakeStorage{err: errors.New("disk gone")}

	s := NewStore(api, storage)
	s.Hydrate()

	snap := s.Snapshot()
	if !snap.Ready || snap.Authenticated {
		t.Fatalf("snapshot = %+v, want ready and unauthenticated", snap)
	}
}

func TestLogin_PersistsAndSetsHeader(t *testing.T) {
	api := &fakeAPI{}
	storage := &fakeStorage{}
	s := NewStore(api, storage)
	s.Hydrate()

	token := mintToken(t, "ana@example.com", time.Now().Add(time.Hour))
	s.Login(token)

	if got, _ := storage.Token(); got != token {
		t.Fatal("token not persisted on login")
	}
	if api.AuthToken() != token {
		t.Fatal("auth header not set on login")
	}
	snap := s.Snapshot()
	if !snap.Authenticated || snap.Claims == nil {
		t.Fatalf("snapshot = %+v, want authenticated with claims", snap)
	}
}

func TestLogin_UndecodableTokenStillAuthenticates(t *testing.T) {
	api := &fakeAPI{}
	s := NewStore(api, &fakeStorage{})
	s.Hydrate()

	s.Login("opaque-server-token")

	snap := s.Snapshot()
	if !snap.Authenticated {
		t.Fatal("backend-issued token must authenticate even if undecodable")
	}
	if snap.Claims != nil {
		t.Fatalf("claims = %+v, want nil for undecodable token", snap.Claims)
	}
}

func TestLogout_ClearsEverything(t *testing.T) {
	api := &fakeAPI{}
	storage := &fakeStorage{}
	s := NewStore(api, storage)
	s.Hydrate()
	s.Login(mintToken(t, "ana@example.com", time.Now().Add(time.Hour)))
	s.ShowExpiredPrompt()

	s.Logout()

	snap := s.Snapshot()
	if snap.Authenticated || snap.PromptVisible || snap.Claims != nil {
		t.Fatalf("snapshot after logout = %+v, want cleared", snap)
	}
	if got, _ := storage.Token(); got != "" {
		t.Fatalf("token left in storage after logout: %q", got)
	}
	if api.AuthToken() != "" {
		t.Fatal("auth header not cleared on logout")
	}
	if s.Token() != "" {
		t.Fatal("Token() not empty after logout")
	}
}

func TestContinueSession_Success(t *testing.T) {
	fresh := mintToken(t, "ana@example.com", time.Now().Add(time.Hour))
	api := &fakeAPI{refreshToken: fresh}
	storage := &fakeStorage{}
	s := NewStore(api, storage)
	s.Hydrate()
	s.Login(mintToken(t, "ana@example.com", time.Now().Add(time.Minute)))
	s.ShowExpiredPrompt()

	if err := s.ContinueSession(context.Background()); err != nil {
		t.Fatalf("ContinueSession() = %v, want nil", err)
	}

	snap := s.Snapshot()
	if snap.PromptVisible {
		t.Fatal("prompt still visible after successful refresh")
	}
	if s.Token() != fresh {
		t.Fatal("refreshed token not installed")
	}
	if got, _ := storage.Token(); got != fresh {
		t.Fatal("refreshed token not persisted")
	}
}

func TestContinueSession_FailureClearsSession(t *testing.T) {
	api := &fakeAPI{refreshErr: errors.New("401")}
	storage := &fakeStorage{}
	s := NewStore(api, storage)
	s.Hydrate()
	s.Login(mintToken(t, "ana@example.com", time.Now().Add(time.Minute)))

	if err := s.ContinueSession(context.Background()); err == nil {
		t.Fatal("ContinueSession() = nil, want error")
	}

	snap := s.Snapshot()
	if snap.Authenticated {
		t.Fatal("session not cleared after failed refresh")
	}
	if got, _ := storage.Token(); got != "" {
		t.Fatalf("token left in storage after failed refresh: %q", got)
	}
}

func TestContinueSession_EmptyTokenIsFailure(t *testing.T) {
	api := &fakeAPI{refreshToken: ""}
	s := NewStore(api, &fakeStorage{})
	s.Hydrate()
	s.Login(mintToken(t, "ana@example.com", time.Now().Add(time.Minute)))

	err := s.ContinueSession(context.Background())
	if !errors.Is(err, ErrRefreshFailed) {
		t.Fatalf("ContinueSession() = %v, want ErrRefreshFailed", err)
	}
	if s.Snapshot().Authenticated {
		t.Fatal("session not cleared after empty refresh token")
	}
}

func TestContinueSession_CoalescesConcurrentCalls(t *testing.T) {
	fresh := mintToken(t, "ana@example.com", time.Now().Add(time.Hour))
	api := &fakeAPI{refreshToken: fresh, refreshDelay: 50 * time.Millisecond}
	s := NewStore(api, &fakeStorage{})
	s.Hydrate()
	s.Login(mintToken(t, "ana@example.com", time.Now().Add(time.Minute)))

	const callers = 8
	var wg sync.WaitGroup
	errs := make([]error, callers)
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			errs[i] = s.ContinueSession(context.Background())
		}(i)
	}
	wg.Wait()

	if n := atomic.LoadInt32(&api.refreshCalls); n != 1 {
		t.Fatalf("refresh requests = %d, want 1", n)
	}
	for i, err := range errs {
		if err != nil {
			t.Fatalf("caller %d got %v, want nil", i, err)
		}
	}
	if s.Token() != fresh {
		t.Fatal("refreshed token not installed after coalesced refresh")
	}
}

func TestContinueSession_FollowerGetsOwnFlightOutcome(t *testing.T) {
	gate := make(chan struct{})
	api := &fakeAPI{refreshErr: errors.New("401"), refreshGate: gate}
	s := NewStore(api, &fakeStorage{})
	s.Hydrate()
	s.Login(mintToken(t, "ana@example.com", time.Now().Add(time.Minute)))

	leaderErr := make(chan error, 1)
	followerErr := make(chan error, 1)
	go func() { leaderErr <- s.ContinueSession(context.Background()) }()
	for atomic.LoadInt32(&api.refreshCalls) == 0 {
		time.Sleep(time.Millisecond)
	}
	go func() { followerErr <- s.ContinueSession(context.Background()) }()
	time.Sleep(20 * time.Millisecond) // let the follower join the flight
	close(gate)

	if err := <-leaderErr; err == nil {
		t.Fatal("leader of the failing flight got nil, want error")
	}
	if err := <-followerErr; err == nil {
		t.Fatal("follower of the failing flight got nil, want error")
	}
	if n := atomic.LoadInt32(&api.refreshCalls); n != 1 {
		t.Fatalf("refresh requests = %d, want 1", n)
	}

	// A later cycle with a different outcome stays its own flight's.
	fresh := mintToken(t, "ana@example.com", time.Now().Add(time.Hour))
	api.refreshErr = nil
	api.refreshToken = fresh
	api.refreshGate = nil
	s.Login(mintToken(t, "ana@example.com", time.Now().Add(time.Minute)))
	if err := s.ContinueSession(context.Background()); err != nil {
		t.Fatalf("ContinueSession() = %v, want nil", err)
	}
	if s.Token() != fresh {
		t.Fatal("refreshed token not installed")
	}
}

func TestShowExpiredPrompt(t *testing.T) {
	s := NewStore(&fakeAPI{}, &fakeStorage{})
	s.Hydrate()
	s.Login(mintToken(t, "ana@example.com", time.Now().Add(time.Minute)))

	s.ShowExpiredPrompt()
	if !s.Snapshot().PromptVisible {
		t.Fatal("prompt not visible after ShowExpiredPrompt")
	}

	s.Login(mintToken(t, "ana@example.com", time.Now().Add(time.Hour)))
	if s.Snapshot().PromptVisible {
		t.Fatal("prompt still visible after fresh login")
	}
}
