package state

import (
	"path/filepath"
	"testing"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "state.db"))
	if err != nil {
		t.Fatalf("Open() = %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestTokenRoundtrip(t *testing.T) {
	s := openTestStore(t)

	got, err := s.Token()
	if err != nil {
		t.Fatalf("Token() = %v", err)
	}
	if got != "" {
		t.Fatalf("Token() on empty store = %q, want empty", got)
	}

	if err := s.SetToken("abc123"); err != nil {
		t.Fatalf("SetToken() = %v", err)
	}
	got, err = s.Token()
	if err != nil {
		t.Fatalf("Token() = %v", err)
	}
	if got != "abc123" {
		t.Fatalf("Token() = %q, want %q", got, "abc123")
	}

	if err := s.SetToken("def456"); err != nil {
		t.Fatalf("SetToken() overwrite = %v", err)
	}
	got, _ = s.Token()
	if got != "def456" {
		t.Fatalf("Token() after overwrite = %q, want %q", got, "def456")
	}

	if err := s.ClearToken(); err != nil {
		t.Fatalf("ClearToken() = %v", err)
	}
	got, err = s.Token()
	if err != nil {
		t.Fatalf("Token() after clear = %v", err)
	}
	if got != "" {
		t.Fatalf("Token() after clear = %q, want empty", got)
	}
}

func TestThemeRoundtrip(t *testing.T) {
	s := openTestStore(t)

	got, err := s.Theme()
	if err != nil {
		t.Fatalf("Theme() = %v", err)
	}
	if got != "" {
		t.Fatalf("Theme() on empty store = %q, want empty", got)
	}

	if err := s.SetTheme("catppuccin-mocha"); err != nil {
		t.Fatalf("SetTheme() = %v", err)
	}
	got, _ = s.Theme()
	if got != "catppuccin-mocha" {
		t.Fatalf("Theme() = %q, want %q", got, "catppuccin-mocha")
	}
}

func TestOpenCreatesDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "deeper", "state.db")
	s, err := Open(path)
	if err != nil {
		t.Fatalf("Open() with missing parent dirs = %v", err)
	}
	defer func() { _ = s.Close() }()

	if err := s.SetToken("x"); err != nil {
		t.Fatalf("SetToken() = %v", err)
	}
}
