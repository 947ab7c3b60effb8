package ports

import (
	"context"

	"github.com/tot/reservations-api/internal/core/domain"
)

// ListReservationsFilter carries the query parameters for listing
// reservations. Date bounds are inclusive; an empty bound applies no
// constraint.
type ListReservationsFilter struct {
	StartDate string // optional: reservation_date >= StartDate
	EndDate   string // optional: reservation_date <= EndDate
	Search    string // optional: case-insensitive substring on the owner's name, surname, or email
	Page      int    // 1-based
	Limit     int
}

// ReservationRepository defines persistence operations for reservations.
type ReservationRepository interface {
	// Create inserts a new reservation. A second reservation for the same
	// (owner, date) must surface as domain.ErrDuplicateReservation.
	Create(ctx context.Context, r *domain.Reservation) (*domain.Reservation, error)
	FindByID(ctx context.Context, id string) (*domain.Reservation, error)
	// FindByDate returns every reservation on the given calendar date.
	FindByDate(ctx context.Context, date string) ([]*domain.Reservation, error)
	// FindByUserAndDate returns the reservation the user holds on date, or
	// domain.ErrReservationNotFound when there is none.
	FindByUserAndDate(ctx context.Context, email, date string) (*domain.Reservation, error)
	Update(ctx context.Context, r *domain.Reservation) (*domain.Reservation, error)
	Delete(ctx context.Context, id string) error
	// List returns a page of reservations matching filter and the total count.
	List(ctx context.Context, filter ListReservationsFilter) ([]*domain.Reservation, int64, error)
}
