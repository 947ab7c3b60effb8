package ports

import (
	"context"

	"github.com/tot/reservations-api/internal/core/domain"
)

// ListUsersFilter carries the query parameters for listing users.
type ListUsersFilter struct {
	Search string // optional: case-insensitive substring on name, surname, or email
	Page   int    // 1-based
	Limit  int
}

// UserRepository defines persistence operations for users.
type UserRepository interface {
	// Create inserts a new user. A duplicate email must surface as
	// domain.ErrUserExists even when the caller's lookup raced another insert.
	Create(ctx context.Context, u *domain.User) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	Update(ctx context.Context, u *domain.User) (*domain.User, error)
	// Delete removes the user and, as a persistence concern, any
	// reservations they own.
	Delete(ctx context.Context, id string) error
	// List returns a page of users matching filter and the total count.
	List(ctx context.Context, filter ListUsersFilter) ([]*domain.User, int64, error)
}
