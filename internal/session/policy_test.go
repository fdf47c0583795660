package session

import "testing"

func TestShouldPromptExpired(t *testing.T) {
	tests := []struct {
		name       string
		status     int
		skipPrompt bool
		path       string
		body       string
		want       bool
	}{
		{
			name:   "plain expiry prompts",
			status: 401,
			path:   "/dashboard",
			body:   `{"message":"Token expired"}`,
			want:   true,
		},
		{
			name:   "empty body prompts",
			status: 401,
			path:   "/dashboard",
			want:   true,
		},
		{
			name:       "skip flag suppresses",
			status:     401,
			skipPrompt: true,
			path:       "/dashboard",
			body:       `{"message":"Token expired"}`,
			want:       false,
		},
		{
			name:   "non-401 never prompts",
			status: 500,
			path:   "/dashboard",
			body:   `{"message":"boom"}`,
			want:   false,
		},
		{
			name:   "login screen suppresses",
			status: 401,
			path:   "/login",
			body:   `{"message":"Token expired"}`,
			want:   false,
		},
		{
			name:   "root path suppresses",
			status: 401,
			path:   "/",
			want:   false,
		},
		{
			name:   "structured mismatch code suppresses",
			status: 401,
			path:   "/dashboard",
			body:   `{"code":"INVALID_CREDENTIALS"}`,
			want:   false,
		},
		{
			name:   "current password code suppresses",
			status: 401,
			path:   "/profile",
			body:   `{"code":"INVALID_CURRENT_PASSWORD","message":"nope"}`,
			want:   false,
		},
		{
			name:   "spanish message suppresses",
			status: 401,
			path:   "/dashboard",
			body:   `{"message":"La contraseña actual es incorrecta"}`,
			want:   false,
		},
		{
			name:   "english message suppresses",
			status: 401,
			path:   "/dashboard",
			body:   `{"message":"Wrong password provided"}`,
			want:   false,
		},
		{
			name:   "bare string body suppresses on match",
			status: 401,
			path:   "/dashboard",
			body:   `"invalid credentials"`,
			want:   false,
		},
		{
			name:   "plain text body suppresses on match",
			status: 401,
			path:   "/dashboard",
			body:   `bad credentials`,
			want:   false,
		},
		{
			name:   "unrelated message still prompts",
			status: 401,
			path:   "/dashboard",
			body:   `{"message":"jwt malformed"}`,
			want:   true,
		},
		{
			name:   "unknown code with expiry message prompts",
			status: 401,
			path:   "/dashboard",
			body:   `{"code":"TOKEN_EXPIRED","message":"Token expired"}`,
			want:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ShouldPromptExpired(tt.status, tt.skipPrompt, tt.path, []byte(tt.body))
			if got != tt.want {
				t.Errorf("ShouldPromptExpired(%d, %v, %q, %q) = %v, want %v",
					tt.status, tt.skipPrompt, tt.path, tt.body, got, tt.want)
			}
		})
	}
}

func TestIsAuthPath(t *testing.T) {
	tests := []struct {
		path string
		want bool
	}{
		{"/", true},
		{"/auth", true},
		{"/auth/forgot", true},
		{"/login", true},
		{"/register", true},
		{"/users/auth", true},
		{"/api/auth/login", true},
		{"/dashboard", false},
		{"/profile", false},
		{"", false},
	}

	for _, tt := range tests {
		if got := IsAuthPath(tt.path); got != tt.want {
			t.Errorf("IsAuthPath(%q) = %v, want %v", tt.path, got, tt.want)
		}
	}
}
