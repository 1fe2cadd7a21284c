package client

import (
	"context"
	"fmt"

	"github.com/aulaschool/aula/pkg/domain"
)

// Login exchanges credentials for a token and the user profile. It does not
// touch the session: the caller decides whether to SetToken with the result.
func (c *Client) Login(ctx context.Context, email, password string) (*domain.LoginResponse, error) {
	var resp domain.LoginResponse
	body := map[string]string{"email": email, "password": password}
	if err := c.post(ctx, "api/auth/login", body, &resp); err != nil {
		return nil, fmt.Errorf("client.Login: %w", err)
	}
	return &resp, nil
}

// Me returns the authenticated user's profile.
func (c *Client) Me(ctx context.Context) (*domain.User, error) {
	var u domain.User
	if err := c.get(ctx, "api/auth/me", nil, &u); err != nil {
		return nil, fmt.Errorf("client.Me: %w", err)
	}
	return &u, nil
}

// ChangePassword changes the authenticated user's password.
func (c *Client) ChangePassword(ctx context.Context, current, next string) error {
	body := map[string]string{"currentPassword": current, "newPassword": next}
	if err := c.post(ctx, "api/auth/change-password", body, nil); err != nil {
		return fmt.Errorf("client.ChangePassword: %w", err)
	}
	return nil
}

// GetSchool fetches a school by ID.
func (c *Client) GetSchool(ctx context.Context, id int64) (*domain.School, error) {
	var s domain.School
	if err := c.get(ctx, fmt.Sprintf("api/schools/%d", id), nil, &s); err != nil {
		return nil, fmt.Errorf("client.GetSchool: %w", err)
	}
	return &s, nil
}
