package api

import (
	"context"
	"net/http"
)

type tokenResponse struct {
	Token       string `json:"token"`
	AccessToken string `json:"accessToken"`
}

func (r tokenResponse) value() string {
	if r.AccessToken != "" {
		return r.AccessToken
	}
	return r.Token
}

// Login exchanges credentials for an access token.
func (c *Client) Login(ctx context.Context, email, password string) (string, error) {
	body := map[string]string{"email": email, "password": password}
	var resp tokenResponse
	if err := c.do(ctx, http.MethodPost, "/users/auth/login", body, &resp); err != nil {
		return "", err
	}
	return resp.value(), nil
}

// Register creates an account and returns the access token.
func (c *Client) Register(ctx context.Context, fullName, email, password string) (string, error) {
	body := map[string]string{"full_name": fullName, "email": email, "password": password}
	var resp tokenResponse
	if err := c.do(ctx, http.MethodPost, "/users/auth/register", body, &resp); err != nil {
		return "", err
	}
	return resp.value(), nil
}

// ForgotPassword requests a password-reset code for the given email.
func (c *Client) ForgotPassword(ctx context.Context, email string) error {
	return c.do(ctx, http.MethodPost, "/users/auth/forgot-password", map[string]string{"email": email}, nil)
}

// ResetPassword redeems a reset code for a new password.
func (c *Client) ResetPassword(ctx context.Context, code, password string) error {
	body := map[string]string{"code": code, "password": password}
	return c.do(ctx, http.MethodPost, "/users/auth/reset-password", body, nil)
}

// RefreshToken obtains a fresh access token for the current session.
// The backend answers with either accessToken or token depending on
// version; both are accepted.
func (c *Client) RefreshToken(ctx context.Context) (string, error) {
	var resp tokenResponse
	if err := c.do(ctx, http.MethodPost, "/users/auth/refresh-token", nil, &resp); err != nil {
		return "", err
	}
	return resp.value(), nil
}
