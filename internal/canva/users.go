package canva

import (
	"context"
	"encoding/json"
)

// GetCurrentUser returns the authenticated user's identifiers.
func (c *Client) GetCurrentUser(ctx context.Context) (*User, error) {
	raw, err := c.Get(ctx, "/users/me", nil)
	if err != nil {
		return nil, err
	}
	var envelope struct {
		TeamUser User `json:"team_user"`
	}
	if err := decodeInto(raw, &envelope, "user"); err != nil {
		return nil, err
	}
	return &envelope.TeamUser, nil
}

// GetUserProfile returns the authenticated user's display profile.
func (c *Client) GetUserProfile(ctx context.Context) (json.RawMessage, error) {
	return c.Get(ctx, "/users/profile", nil)
}

// GetUserCapabilities returns the API capabilities available to the user's
// plan.
func (c *Client) GetUserCapabilities(ctx context.Context) (json.RawMessage, error) {
	return c.Get(ctx, "/users/capabilities", nil)
}
