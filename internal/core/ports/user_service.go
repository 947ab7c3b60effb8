package ports

import (
	"context"
	"time"

	"github.com/tot/reservations-api/internal/core/domain"
)

// CreateUserInput carries the data needed to register a new user.
type CreateUserInput struct {
	Name    string
	Surname string
	Email   string
}

// UpdateUserInput carries the replacement values for an existing user.
type UpdateUserInput struct {
	Name    string
	Surname string
	Email   string
}

// UserDetail is the user view returned by the service.
type UserDetail struct {
	ID        string
	Name      string
	Surname   string
	Email     string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// ListUsersInput carries all parameters for the user list endpoint.
type ListUsersInput struct {
	Search string
	Page   int
	Limit  int
}

// ListUsersResult is returned by List.
type ListUsersResult struct {
	Items      []UserDetail
	Total      int64
	Page       int
	Limit      int
	TotalPages int
}

// UserService defines the user directory use cases.
type UserService interface {
	Create(ctx context.Context, input CreateUserInput) (*UserDetail, error)
	Get(ctx context.Context, id string) (*UserDetail, error)
	Update(ctx context.Context, id string, input UpdateUserInput) (*UserDetail, error)
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, input ListUsersInput) (*ListUsersResult, error)
	// CheckExists resolves a user by email, failing with domain.ErrUserNotFound
	// when the email is unknown. The admission engine uses it to resolve the
	// reservation owner.
	CheckExists(ctx context.Context, email string) (*domain.User, error)
}
