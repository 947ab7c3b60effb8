package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/tot/reservations-api/internal/core/domain"
	"github.com/tot/reservations-api/internal/core/ports"
)

const (
	defaultPageSize = 10
	maxPageSize     = 100
)

// UserService implements the user directory use cases.
type UserService struct {
	repo   ports.UserRepository
	logger zerolog.Logger
}

func NewUserService(repo ports.UserRepository, logger zerolog.Logger) *UserService {
	return &UserService{repo: repo, logger: logger}
}

// Create registers a new user after checking the email is free. The lookup
// can race a concurrent create; the repository's uniqueness constraint is the
// final arbiter and reports the loser as domain.ErrUserExists.
func (s *UserService) Create(ctx context.Context, in ports.CreateUserInput) (*ports.UserDetail, error) {
	_, err := s.repo.FindByEmail(ctx, in.Email)
	if err == nil {
		return nil, domain.ErrUserExists
	}
	if !errors.Is(err, domain.ErrUserNotFound) {
		return nil, fmt.Errorf("check existing user: %w", err)
	}

	now := time.Now().UTC()
	user := &domain.User{
		Name:      in.Name,
		Surname:   in.Surname,
		Email:     in.Email,
		CreatedAt: now,
		UpdatedAt: now,
	}

	created, err := s.repo.Create(ctx, user)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("user_id", created.ID).Str("email", created.Email).Msg("user created")
	return toUserDetail(created), nil
}

func (s *UserService) Get(ctx context.Context, id string) (*ports.UserDetail, error) {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return toUserDetail(user), nil
}

// Update overwrites name, surname, and email. The new email is not
// re-checked against existing users here; the storage-level uniqueness
// constraint still applies.
func (s *UserService) Update(ctx context.Context, id string, in ports.UpdateUserInput) (*ports.UserDetail, error) {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	user.Name = in.Name
	user.Surname = in.Surname
	user.Email = in.Email
	user.UpdatedAt = time.Now().UTC()

	updated, err := s.repo.Update(ctx, user)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("user_id", updated.ID).Msg("user updated")
	return toUserDetail(updated), nil
}

// Delete removes the user. Deleting an unknown or already-removed id fails
// with domain.ErrUserNotFound.
func (s *UserService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info().Str("user_id", id).Msg("user deleted")
	return nil
}

func (s *UserService) List(ctx context.Context, in ports.ListUsersInput) (*ports.ListUsersResult, error) {
	page, limit := normalizePage(in.Page, in.Limit)

	users, total, err := s.repo.List(ctx, ports.ListUsersFilter{
		Search: in.Search,
		Page:   page,
		Limit:  limit,
	})
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}

	items := make([]ports.UserDetail, len(users))
	for i, u := range users {
		items[i] = *toUserDetail(u)
	}

	return &ports.ListUsersResult{
		Items:      items,
		Total:      total,
		Page:       page,
		Limit:      limit,
		TotalPages: totalPages(total, limit),
	}, nil
}

// CheckExists resolves a user by email for the admission engine.
func (s *UserService) CheckExists(ctx context.Context, email string) (*domain.User, error) {
	return s.repo.FindByEmail(ctx, email)
}

func toUserDetail(u *domain.User) *ports.UserDetail {
	return &ports.UserDetail{
		ID:        u.ID,
		Name:      u.Name,
		Surname:   u.Surname,
		Email:     u.Email,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

func normalizePage(page, limit int) (int, int) {
	if page < 1 {
		page = 1
	}
	if limit <= 0 {
		limit = defaultPageSize
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}
	return page, limit
}

func totalPages(total int64, limit int) int {
	if total == 0 {
		return 0
	}
	return int((total + int64(limit) - 1) / int64(limit))
}
