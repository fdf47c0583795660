package api

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/A1anTm/spendsmart/internal/model"
)

// Profile fetches the current user's profile. The backend wraps the
// user in an envelope on some versions and sends it bare on others.
func (c *Client) Profile(ctx context.Context) (model.UserProfile, error) {
	var raw json.RawMessage
	if err := c.do(ctx, http.MethodGet, "/users", nil, &raw); err != nil {
		return model.UserProfile{}, err
	}
	return unwrapUser(raw)
}

// UpdateProfile saves the profile and returns the server's copy.
func (c *Client) UpdateProfile(ctx context.Context, p model.UserProfile) (model.UserProfile, error) {
	var raw json.RawMessage
	if err := c.do(ctx, http.MethodPut, "/users", p, &raw); err != nil {
		return model.UserProfile{}, err
	}
	return unwrapUser(raw)
}

func unwrapUser(raw json.RawMessage) (model.UserProfile, error) {
	var envelope struct {
		User *model.UserProfile `json:"user"`
	}
	if err := json.Unmarshal(raw, &envelope); err == nil && envelope.User != nil {
		return *envelope.User, nil
	}

	var profile model.UserProfile
	if err := json.Unmarshal(raw, &profile); err != nil {
		return model.UserProfile{}, err
	}
	return profile, nil
}

// ChangePassword updates the password. The request opts out of the
// expired-session prompt: a 401 here means the current password was
// wrong, not that the session expired.
func (c *Client) ChangePassword(ctx context.Context, current, next string) (string, error) {
	body := map[string]string{"currentPassword": current, "newPassword": next}
	var resp struct {
		Message string `json:"message"`
	}
	if err := c.do(ctx, http.MethodPut, "/users/change-password", body, &resp, SkipPrompt()); err != nil {
		return "", err
	}
	return resp.Message, nil
}
