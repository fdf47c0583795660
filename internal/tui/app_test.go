package tui

import (
	"context"
	"testing"
	"time"

	"github.com/A1anTm/spendsmart/internal/api"
	"github.com/A1anTm/spendsmart/internal/config"
	"github.com/A1anTm/spendsmart/internal/session"

	"github.com/charmbracelet/lipgloss"
	"github.com/golang-jwt/jwt/v5"
)

func TestLoginFiresSingleDashboardFetch(t *testing.T) {
	store := session.NewStore(&stubTokenAPI{}, &memTokenStorage{})
	store.Hydrate()

	a := NewApp(api.NewClient("http://127.0.0.1:1"), store, nil, config.DefaultConfig())
	a.width, a.height = 120, 40

	_, cmd := a.Update(authDoneMsg{token: signToken(t, time.Now().Add(time.Hour))})

	if !store.Snapshot().Authenticated {
		t.Fatal("successful login did not authenticate the session")
	}
	if cmd == nil {
		t.Fatal("login emitted no fetch command")
	}
	if a.activeTab != 0 {
		t.Fatalf("activeTab = %d, want 0", a.activeTab)
	}
	if a.fetchID != 1 {
		t.Fatalf("fetch commands issued = %d, want 1", a.fetchID)
	}
	if a.overview.seq != 1 {
		t.Fatalf("overview.seq = %d, want 1", a.overview.seq)
	}
}

func TestPromptHideRefetchesActiveTab(t *testing.T) {
	fresh := signToken(t, time.Now().Add(time.Hour))
	store := session.NewStore(
		&stubTokenAPI{token: fresh},
		&memTokenStorage{token: signToken(t, time.Now().Add(time.Minute))},
	)
	store.Hydrate()

	a := NewApp(api.NewClient("http://127.0.0.1:1"), store, nil, config.DefaultConfig())
	a.width, a.height = 120, 40
	a.activeTab = 2

	store.ShowExpiredPrompt()
	if cmd := a.syncPrompt(); cmd != nil {
		t.Fatal("prompt becoming visible must not fetch")
	}
	if !a.promptVisible {
		t.Fatal("prompt not visible after sync")
	}

	if err := store.ContinueSession(context.Background()); err != nil {
		t.Fatalf("ContinueSession: %v", err)
	}

	before := a.fetchID
	_, cmd := a.Update(continueDoneMsg{})

	if a.promptVisible {
		t.Fatal("prompt still visible after successful refresh")
	}
	if cmd == nil {
		t.Fatal("prompt hiding emitted no fetch command")
	}
	if got := a.fetchID - before; got != 1 {
		t.Fatalf("fetch commands issued = %d, want 1", got)
	}
	if a.budgets.seq != a.fetchID {
		t.Fatalf("budgets.seq = %d, want %d (active tab not re-fetched)", a.budgets.seq, a.fetchID)
	}
}

func TestPadRightCountsDisplayWidth(t *testing.T) {
	for _, key := range []string{"← →", "tab", "q"} {
		if w := lipgloss.Width(padRight(key, 10)); w != 10 {
			t.Fatalf("padRight(%q, 10) renders %d cells, want 10", key, w)
		}
	}
}

type stubTokenAPI struct {
	token string
	err   error
}

func (s *stubTokenAPI) SetAuthToken(string) {}

func (s *stubTokenAPI) RefreshToken(context.Context) (string, error) {
	return s.token, s.err
}

type memTokenStorage struct {
	token string
}

func (m *memTokenStorage) Token() (string, error) { return m.token, nil }

func (m *memTokenStorage) SetToken(token string) error {
	m.token = token
	return nil
}

func (m *memTokenStorage) ClearToken() error {
	m.token = ""
	return nil
}

func signToken(t *testing.T, exp time.Time) string {
	t.Helper()
	claims := session.Claims{
		Email:    "ana@example.com",
		FullName: "Ana Pérez",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(exp),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	if err != nil {
		t.Fatalf("signing token: %v", err)
	}
	return token
}
