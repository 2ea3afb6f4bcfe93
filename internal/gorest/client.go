// Package gorest implements domain.UserRepository against a GoREST-style
// users collection.
package gorest

import (
	"context"
	"log/slog"
	"strconv"

	"github.com/mmcdole/roster/internal/domain"
	"github.com/mmcdole/roster/internal/transport"
)

const (
	usersRoute = "users"

	// New users are always created with these values
	defaultGender = "male"
	defaultStatus = "active"
)

// Client implements domain.UserRepository. It holds no state beyond the
// transport and is safe for concurrent use.
type Client struct {
	transport transport.Transport
	logger    *slog.Logger
}

// NewClient creates a users client over t
func NewClient(t transport.Transport, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{transport: t, logger: logger}
}

// ListLatest returns the users on the last page of the collection
func (c *Client) ListLatest(ctx context.Context) (domain.Result[[]domain.User], error) {
	result, err := transport.FetchLastPage[[]UserResponse](ctx, c.transport, usersRoute)
	if err != nil {
		return domain.Result[[]domain.User]{}, err
	}
	if kind, failed := result.Kind(); failed {
		c.logger.Warn("list users failed", "kind", kind)
	}
	return mapResult(result, MapUsers), nil
}

// Create creates a user with the fixed gender and status
func (c *Client) Create(ctx context.Context, name, email string) (domain.Result[domain.User], error) {
	body := CreateUserRequest{
		Name:   name,
		Email:  email,
		Gender: defaultGender,
		Status: defaultStatus,
	}

	result, err := transport.Post[UserResponse](ctx, c.transport, usersRoute, body)
	if err != nil {
		return domain.Result[domain.User]{}, err
	}
	if kind, failed := result.Kind(); failed {
		c.logger.Warn("create user failed", "kind", kind)
	} else {
		c.logger.Debug("created user", "email", email)
	}
	return mapResult(result, MapUser), nil
}

// Delete removes a user by ID
func (c *Client) Delete(ctx context.Context, id int64) (domain.Result[domain.Unit], error) {
	route := usersRoute + "/" + strconv.FormatInt(id, 10)

	result, err := transport.Delete[domain.Unit](ctx, c.transport, route)
	if err != nil {
		return result, err
	}
	if kind, failed := result.Kind(); failed {
		c.logger.Warn("delete user failed", "id", id, "kind", kind)
	}
	return result, nil
}

var _ domain.UserRepository = (*Client)(nil)
