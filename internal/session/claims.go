package session

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims are the identity fields carried in a SpendSmart access token.
// Tokens are decoded without signature verification: the trust boundary
// is the backend, the client only reads identity and expiry.
type Claims struct {
	UserID   string `json:"_id"`
	Email    string `json:"email"`
	FullName string `json:"full_name"`
	jwt.RegisteredClaims
}

// DecodeClaims parses the token payload without verifying the signature.
func DecodeClaims(token string) (*Claims, error) {
	claims := &Claims{}
	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(token, claims); err != nil {
		return nil, fmt.Errorf("session: decoding token: %w", err)
	}
	return claims, nil
}

// Expired reports whether the token's exp claim is in the past.
// Tokens without an exp claim never expire locally.
func (c *Claims) Expired(now time.Time) bool {
	if c.ExpiresAt == nil {
		return false
	}
	return c.ExpiresAt.Before(now)
}
