package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/tot/reservations-api/internal/core/domain"
	"github.com/tot/reservations-api/internal/core/ports"
)

// ---------------------------------------------------------------------------
// In-memory stub repository
// ---------------------------------------------------------------------------

type stubUserRepo struct {
	byID      map[string]*domain.User
	seq       int
	createErr error // if set, Create returns this error
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{byID: make(map[string]*domain.User)}
}

func (r *stubUserRepo) Create(_ context.Context, u *domain.User) (*domain.User, error) {
	if r.createErr != nil {
		return nil, r.createErr
	}
	r.seq++
	clone := *u
	clone.ID = fmt.Sprintf("user_%d", r.seq)
	r.byID[clone.ID] = &clone
	out := clone
	return &out, nil
}

func (r *stubUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	u, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	clone := *u
	return &clone, nil
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, u := range r.byID {
		if u.Email == email {
			clone := *u
			return &clone, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) Update(_ context.Context, u *domain.User) (*domain.User, error) {
	if _, ok := r.byID[u.ID]; !ok {
		return nil, domain.ErrUserNotFound
	}
	clone := *u
	r.byID[u.ID] = &clone
	out := clone
	return &out, nil
}

func (r *stubUserRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.byID[id]; !ok {
		return domain.ErrUserNotFound
	}
	delete(r.byID, id)
	return nil
}

func (r *stubUserRepo) List(_ context.Context, f ports.ListUsersFilter) ([]*domain.User, int64, error) {
	var matched []*domain.User
	for _, u := range r.byID {
		if f.Search != "" {
			q := strings.ToLower(f.Search)
			if !strings.Contains(strings.ToLower(u.Name), q) &&
				!strings.Contains(strings.ToLower(u.Surname), q) &&
				!strings.Contains(strings.ToLower(u.Email), q) {
				continue
			}
		}
		clone := *u
		matched = append(matched, &clone)
	}

	total := int64(len(matched))
	skip := (f.Page - 1) * f.Limit
	if skip > len(matched) {
		return nil, total, nil
	}
	end := skip + f.Limit
	if end > len(matched) {
		end = len(matched)
	}
	return matched[skip:end], total, nil
}

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

func seedUser(repo *stubUserRepo, name, email string) *domain.User {
	repo.seq++
	u := &domain.User{
		ID:      fmt.Sprintf("user_%d", repo.seq),
		Name:    name,
		Surname: "Torres",
		Email:   email,
	}
	repo.byID[u.ID] = u
	return u
}

// ---------------------------------------------------------------------------
// Create tests
// ---------------------------------------------------------------------------

func TestUserService_Create_Success(t *testing.T) {
	repo := newStubUserRepo()
	svc := NewUserService(repo, discardLogger)

	detail, err := svc.Create(context.Background(), ports.CreateUserInput{
		Name:    "Ana",
		Surname: "Torres",
		Email:   "ana@example.com",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if detail.ID == "" {
		t.Error("expected a user id")
	}
	if detail.Email != "ana@example.com" {
		t.Errorf("email: expected %q, got %q", "ana@example.com", detail.Email)
	}
	if detail.CreatedAt.IsZero() {
		t.Error("CreatedAt must not be zero")
	}
}

func TestUserService_Create_DuplicateEmail(t *testing.T) {
	repo := newStubUserRepo()
	svc := NewUserService(repo, discardLogger)

	seedUser(repo, "Ana", "ana@example.com")

	_, err := svc.Create(context.Background(), ports.CreateUserInput{
		Name:    "Other",
		Surname: "Person",
		Email:   "ana@example.com",
	})
	if !errors.Is(err, domain.ErrUserExists) {
		t.Errorf("expected ErrUserExists, got %v", err)
	}
	if len(repo.byID) != 1 {
		t.Errorf("expected 1 stored user, got %d", len(repo.byID))
	}
}

func TestUserService_Create_RaceBackstop(t *testing.T) {
	// The email lookup found nothing, but a concurrent insert won the race:
	// the repository's uniqueness constraint reports ErrUserExists and the
	// service passes it through.
	repo := newStubUserRepo()
	repo.createErr = domain.ErrUserExists
	svc := NewUserService(repo, discardLogger)

	_, err := svc.Create(context.Background(), ports.CreateUserInput{
		Name:    "Ana",
		Surname: "Torres",
		Email:   "ana@example.com",
	})
	if !errors.Is(err, domain.ErrUserExists) {
		t.Errorf("expected ErrUserExists, got %v", err)
	}
}

// ---------------------------------------------------------------------------
// Get / Update / Delete tests
// ---------------------------------------------------------------------------

func TestUserService_Get(t *testing.T) {
	repo := newStubUserRepo()
	svc := NewUserService(repo, discardLogger)

	seeded := seedUser(repo, "Ana", "ana@example.com")

	detail, err := svc.Get(context.Background(), seeded.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if detail.Name != "Ana" {
		t.Errorf("name: expected %q, got %q", "Ana", detail.Name)
	}

	if _, err := svc.Get(context.Background(), "user_missing"); !errors.Is(err, domain.ErrUserNotFound) {
		t.Errorf("expected ErrUserNotFound, got %v", err)
	}
}

func TestUserService_Update_Success(t *testing.T) {
	repo := newStubUserRepo()
	svc := NewUserService(repo, discardLogger)

	seeded := seedUser(repo, "Ana", "ana@example.com")

	detail, err := svc.Update(context.Background(), seeded.ID, ports.UpdateUserInput{
		Name:    "Anna",
		Surname: "Torres",
		Email:   "anna@example.com",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if detail.Name != "Anna" {
		t.Errorf("name: expected %q, got %q", "Anna", detail.Name)
	}
	if detail.Email != "anna@example.com" {
		t.Errorf("email: expected %q, got %q", "anna@example.com", detail.Email)
	}
	if detail.UpdatedAt.IsZero() {
		t.Error("UpdatedAt must not be zero")
	}
}

func TestUserService_Update_NotFound(t *testing.T) {
	repo := newStubUserRepo()
	svc := NewUserService(repo, discardLogger)

	_, err := svc.Update(context.Background(), "user_missing", ports.UpdateUserInput{
		Name: "Ana", Surname: "Torres", Email: "ana@example.com",
	})
	if !errors.Is(err, domain.ErrUserNotFound) {
		t.Errorf("expected ErrUserNotFound, got %v", err)
	}
}

func TestUserService_Update_EmailNotRecheckedInService(t *testing.T) {
	// The service does not re-run the free-email lookup on update; the
	// storage-level uniqueness constraint is the only guard there.
	repo := newStubUserRepo()
	svc := NewUserService(repo, discardLogger)

	seedUser(repo, "Ana", "ana@example.com")
	second := seedUser(repo, "Pedro", "pedro@example.com")

	_, err := svc.Update(context.Background(), second.ID, ports.UpdateUserInput{
		Name: "Pedro", Surname: "García", Email: "ana@example.com",
	})
	if err != nil {
		t.Errorf("service-level update must not pre-check the email, got %v", err)
	}
}

func TestUserService_Delete(t *testing.T) {
	repo := newStubUserRepo()
	svc := NewUserService(repo, discardLogger)

	seeded := seedUser(repo, "Ana", "ana@example.com")

	if err := svc.Delete(context.Background(), seeded.ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(repo.byID) != 0 {
		t.Error("user not removed")
	}

	if err := svc.Delete(context.Background(), seeded.ID); !errors.Is(err, domain.ErrUserNotFound) {
		t.Errorf("expected ErrUserNotFound, got %v", err)
	}
}

// ---------------------------------------------------------------------------
// List tests
// ---------------------------------------------------------------------------

func TestUserService_List_Search(t *testing.T) {
	repo := newStubUserRepo()
	svc := NewUserService(repo, discardLogger)

	seedUser(repo, "Ana", "ana@example.com")
	seedUser(repo, "Pedro", "pedro@example.com")

	res, err := svc.List(context.Background(), ports.ListUsersInput{Search: "pedro", Page: 1, Limit: 10})
	if err != nil {
		t.Fatal(err)
	}
	if res.Total != 1 {
		t.Errorf("search: expected 1, got %d", res.Total)
	}
	if res.Items[0].Name != "Pedro" {
		t.Errorf("expected Pedro, got %q", res.Items[0].Name)
	}
}

func TestUserService_List_PaginationMath(t *testing.T) {
	repo := newStubUserRepo()
	svc := NewUserService(repo, discardLogger)

	for i := 0; i < 7; i++ {
		seedUser(repo, "Guest", fmt.Sprintf("guest%d@example.com", i))
	}

	res, err := svc.List(context.Background(), ports.ListUsersInput{Page: 1, Limit: 3})
	if err != nil {
		t.Fatal(err)
	}
	if res.Total != 7 {
		t.Errorf("total: expected 7, got %d", res.Total)
	}
	if res.TotalPages != 3 {
		t.Errorf("total_pages: expected 3, got %d", res.TotalPages)
	}
	if len(res.Items) != 3 {
		t.Errorf("items: expected 3, got %d", len(res.Items))
	}
}

func TestUserService_List_LimitCappedAt100(t *testing.T) {
	repo := newStubUserRepo()
	svc := NewUserService(repo, discardLogger)

	res, err := svc.List(context.Background(), ports.ListUsersInput{Page: 1, Limit: 999})
	if err != nil {
		t.Fatal(err)
	}
	if res.Limit != 100 {
		t.Errorf("expected limit 100, got %d", res.Limit)
	}
}

func TestUserService_List_Defaults(t *testing.T) {
	repo := newStubUserRepo()
	svc := NewUserService(repo, discardLogger)

	res, err := svc.List(context.Background(), ports.ListUsersInput{Page: 0, Limit: 0})
	if err != nil {
		t.Fatal(err)
	}
	if res.Page != 1 {
		t.Errorf("page: expected 1, got %d", res.Page)
	}
	if res.Limit != 10 {
		t.Errorf("limit: expected default 10, got %d", res.Limit)
	}
}

// ---------------------------------------------------------------------------
// CheckExists tests
// ---------------------------------------------------------------------------

func TestUserService_CheckExists(t *testing.T) {
	repo := newStubUserRepo()
	svc := NewUserService(repo, discardLogger)

	seeded := seedUser(repo, "Ana", "ana@example.com")

	u, err := svc.CheckExists(context.Background(), "ana@example.com")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if u.ID != seeded.ID {
		t.Errorf("id: expected %q, got %q", seeded.ID, u.ID)
	}

	if _, err := svc.CheckExists(context.Background(), "nobody@example.com"); !errors.Is(err, domain.ErrUserNotFound) {
		t.Errorf("expected ErrUserNotFound, got %v", err)
	}
}
