package session

import (
	"encoding/json"
	"regexp"
	"strings"
)

// Error codes the backend uses for wrong-credential failures. A 401
// carrying one of these means the user typed a bad password, not that
// the session expired.
var credentialMismatchCodes = map[string]struct{}{
	"INVALID_CURRENT_PASSWORD": {},
	"INVALID_CREDENTIALS":      {},
	"WRONG_PASSWORD":           {},
	"BAD_CREDENTIALS":          {},
}

// Message fragments that signal a credential mismatch on backends that
// answer without a structured code. The backend's messages mix Spanish
// and English.
var credentialMismatchPattern = regexp.MustCompile(
	`(?i)contraseñ|wrong password|invalid password|invalid credentials|credenciales inv[áa]lidas|bad credentials`,
)

// Screen paths where a 401 is part of the normal flow (failed login,
// bad register input) and must never raise the expired prompt.
var authPathPrefixes = []string{"/auth", "/login", "/register", "/users/auth", "/api/auth"}

// IsAuthPath reports whether path is an authentication screen.
func IsAuthPath(path string) bool {
	if path == "/" {
		return true
	}
	for _, prefix := range authPathPrefixes {
		if strings.HasPrefix(path, prefix) {
			return true
		}
	}
	return false
}

// ShouldPromptExpired decides whether a failed response warrants the
// blocking expired-session prompt. Suppression rules, in order: the
// request opted out, the user is on an auth screen, the status is not
// 401, or the body signals a credential mismatch rather than expiry.
func ShouldPromptExpired(status int, skipPrompt bool, path string, body []byte) bool {
	if skipPrompt {
		return false
	}
	if IsAuthPath(path) {
		return false
	}
	if status != 401 {
		return false
	}
	if isCredentialMismatch(body) {
		return false
	}
	return true
}

// isCredentialMismatch inspects the error body for wrong-credential
// indicators. The body may be a JSON object, a bare JSON string, or
// arbitrary text; all shapes are tolerated.
func isCredentialMismatch(body []byte) bool {
	if len(body) == 0 {
		return false
	}

	var parsed struct {
		Message string `json:"message"`
		Code    string `json:"code"`
	}
	if err := json.Unmarshal(body, &parsed); err == nil {
		if _, ok := credentialMismatchCodes[parsed.Code]; ok {
			return true
		}
		if parsed.Message != "" {
			return credentialMismatchPattern.MatchString(parsed.Message)
		}
		return false
	}

	var plain string
	if err := json.Unmarshal(body, &plain); err == nil {
		return credentialMismatchPattern.MatchString(plain)
	}

	return credentialMismatchPattern.MatchString(string(body))
}
