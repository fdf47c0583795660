package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(srv.URL)
}

func TestLogin_PrefersAccessToken(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/users/auth/login" {
			t.Errorf("path = %q, want /api/users/auth/login", r.URL.Path)
		}
		if r.Method != http.MethodPost {
			t.Errorf("method = %q, want POST", r.Method)
		}
		var body map[string]string
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Errorf("decoding request body: %v", err)
		}
		if body["email"] != "ana@example.com" || body["password"] != "Abcd123!" {
			t.Errorf("request body = %v", body)
		}
		_, _ = w.Write([]byte(`{"token":"legacy","accessToken":"fresh"}`))
	})

	token, err := c.Login(context.Background(), "ana@example.com", "Abcd123!")
	if err != nil {
		t.Fatalf("Login() = %v", err)
	}
	if token != "fresh" {
		t.Fatalf("token = %q, want %q", token, "fresh")
	}
}

func TestRefreshToken_FallsBackToToken(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"token":"legacy"}`))
	})

	token, err := c.RefreshToken(context.Background())
	if err != nil {
		t.Fatalf("RefreshToken() = %v", err)
	}
	if token != "legacy" {
		t.Fatalf("token = %q, want %q", token, "legacy")
	}
}

func TestSetAuthToken(t *testing.T) {
	var gotAuth string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		_, _ = w.Write([]byte(`{}`))
	})

	c.SetAuthToken("abc123")
	if _, err := c.RefreshToken(context.Background()); err != nil {
		t.Fatalf("RefreshToken() = %v", err)
	}
	if gotAuth != "Bearer abc123" {
		t.Fatalf("Authorization = %q, want %q", gotAuth, "Bearer abc123")
	}

	c.SetAuthToken("")
	if _, err := c.RefreshToken(context.Background()); err != nil {
		t.Fatalf("RefreshToken() = %v", err)
	}
	if gotAuth != "" {
		t.Fatalf("Authorization after clear = %q, want empty", gotAuth)
	}
}

func TestSkipPrompt_SetsHeader(t *testing.T) {
	var gotHeader string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotHeader = r.Header.Get(SkipPromptHeader)
		_, _ = w.Write([]byte(`{}`))
	})

	err := c.do(context.Background(), http.MethodPost, "/users/change-password", map[string]string{}, nil, SkipPrompt())
	if err != nil {
		t.Fatalf("do() = %v", err)
	}
	if gotHeader != "1" {
		t.Fatalf("%s = %q, want %q", SkipPromptHeader, gotHeader, "1")
	}
}

func TestUnauthorizedHook(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"message":"Token expired"}`))
	})

	var got FailedResponse
	var fired int
	c.OnUnauthorized(func(fr FailedResponse) {
		fired++
		got = fr
	})

	_, err := c.RefreshToken(context.Background())
	if err == nil {
		t.Fatal("expected error from 401 response")
	}
	if fired != 1 {
		t.Fatalf("hook fired %d times, want 1", fired)
	}
	if got.Status != 401 {
		t.Errorf("hook status = %d, want 401", got.Status)
	}
	if string(got.Body) != `{"message":"Token expired"}` {
		t.Errorf("hook body = %q", got.Body)
	}
	if got.SkipPrompt {
		t.Error("SkipPrompt = true for a request without the option")
	}
}

func TestUnauthorizedHook_CarriesSkipFlag(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})

	var got FailedResponse
	c.OnUnauthorized(func(fr FailedResponse) { got = fr })

	err := c.do(context.Background(), http.MethodPost, "/users/change-password", nil, nil, SkipPrompt())
	if err == nil {
		t.Fatal("expected error from 401 response")
	}
	if !got.SkipPrompt {
		t.Error("SkipPrompt not carried through to the hook")
	}
}

func TestErrorDecoding(t *testing.T) {
	tests := []struct {
		name        string
		status      int
		body        string
		wantCode    string
		wantMessage string
	}{
		{"message field", 409, `{"message":"Budget already exists"}`, "", "Budget already exists"},
		{"error field fallback", 400, `{"error":"bad input"}`, "", "bad input"},
		{"code and message", 401, `{"code":"INVALID_CREDENTIALS","message":"nope"}`, "INVALID_CREDENTIALS", "nope"},
		{"non-JSON body", 500, `Internal Server Error`, "", ""},
		{"empty body", 503, ``, "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			})

			err := c.do(context.Background(), http.MethodGet, "/summary", nil, nil)
			var apiErr *Error
			if !errors.As(err, &apiErr) {
				t.Fatalf("do() = %v, want *Error", err)
			}
			if apiErr.Status != tt.status {
				t.Errorf("Status = %d, want %d", apiErr.Status, tt.status)
			}
			if apiErr.Code != tt.wantCode {
				t.Errorf("Code = %q, want %q", apiErr.Code, tt.wantCode)
			}
			if apiErr.Message != tt.wantMessage {
				t.Errorf("Message = %q, want %q", apiErr.Message, tt.wantMessage)
			}
		})
	}
}

func TestUnreachableServer(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	c := NewClient(url)
	_, err := c.RefreshToken(context.Background())
	if !errors.Is(err, ErrUnreachable) {
		t.Fatalf("RefreshToken() = %v, want ErrUnreachable", err)
	}
}
