package client

import (
	"context"
	"fmt"

	"github.com/aulaschool/aula/pkg/domain"
)

// CreateUserRequest is the payload for creating a user.
type CreateUserRequest struct {
	SchoolID  int64  `json:"schoolId" validate:"required"`
	RoleID    int64  `json:"roleId" validate:"required"`
	FirstName string `json:"firstName" validate:"required"`
	LastName  string `json:"lastName" validate:"required"`
	Email     string `json:"email" validate:"required,email"`
	Phone     string `json:"phone,omitempty"`
	Document  string `json:"document,omitempty"`
	Password  string `json:"password,omitempty"`
}

// ListUsers returns every user of a school.
func (c *Client) ListUsers(ctx context.Context, schoolID int64) ([]domain.User, error) {
	var users []domain.User
	if err := c.get(ctx, "api/users", Params{"schoolId": schoolID}, &users); err != nil {
		return nil, fmt.Errorf("client.ListUsers: %w", err)
	}
	return users, nil
}

// ListTeachers returns the users of a school whose role is a teacher role.
// The filtering happens locally, in server order.
func (c *Client) ListTeachers(ctx context.Context, schoolID int64) ([]domain.User, error) {
	users, err := c.ListUsers(ctx, schoolID)
	if err != nil {
		return nil, fmt.Errorf("client.ListTeachers: %w", err)
	}
	return c.roles.Teachers(users), nil
}

// ListStudents returns the users of a school whose role is a student role.
func (c *Client) ListStudents(ctx context.Context, schoolID int64) ([]domain.User, error) {
	users, err := c.ListUsers(ctx, schoolID)
	if err != nil {
		return nil, fmt.Errorf("client.ListStudents: %w", err)
	}
	return c.roles.Students(users), nil
}

// GetUser fetches a single user by ID.
func (c *Client) GetUser(ctx context.Context, id int64) (*domain.User, error) {
	var u domain.User
	if err := c.get(ctx, fmt.Sprintf("api/users/%d", id), nil, &u); err != nil {
		return nil, fmt.Errorf("client.GetUser: %w", err)
	}
	return &u, nil
}

// CreateUser creates a user.
func (c *Client) CreateUser(ctx context.Context, req CreateUserRequest) (*domain.User, error) {
	var created domain.User
	if err := c.post(ctx, "api/users", req, &created); err != nil {
		return nil, fmt.Errorf("client.CreateUser: %w", err)
	}
	return &created, nil
}

// UpdateUser replaces a user's editable fields.
func (c *Client) UpdateUser(ctx context.Context, u domain.User) (*domain.User, error) {
	var updated domain.User
	if err := c.put(ctx, fmt.Sprintf("api/users/%d", u.ID), u, &updated); err != nil {
		return nil, fmt.Errorf("client.UpdateUser: %w", err)
	}
	return &updated, nil
}

// DeleteUser deletes a user.
func (c *Client) DeleteUser(ctx context.Context, id int64) error {
	if err := c.delete(ctx, fmt.Sprintf("api/users/%d", id)); err != nil {
		return fmt.Errorf("client.DeleteUser: %w", err)
	}
	return nil
}

// ListRoles returns the backend role catalogue.
func (c *Client) ListRoles(ctx context.Context) ([]domain.Role, error) {
	var roles []domain.Role
	if err := c.get(ctx, "api/roles", nil, &roles); err != nil {
		return nil, fmt.Errorf("client.ListRoles: %w", err)
	}
	return roles, nil
}
