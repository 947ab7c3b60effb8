package ports

import (
	"context"
	"time"

	"github.com/tot/reservations-api/internal/core/domain"
)

// CreateReservationInput carries all data needed to request a reservation.
type CreateReservationInput struct {
	UserEmail      string
	NumberOfGuests int
	TablesReserved int
	Date           string // calendar date, restaurant-local
	Time           domain.TimeOfDay
}

// UpdateReservationInput carries the replacement values for an existing
// reservation. The owner is not changeable.
type UpdateReservationInput struct {
	NumberOfGuests int
	TablesReserved int
	Date           string
	Time           domain.TimeOfDay
}

// ReservationDetail is the reservation view returned by the service.
type ReservationDetail struct {
	ID             string
	UserEmail      string
	NumberOfGuests int
	TablesReserved int
	Date           string
	Time           string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// ListReservationsInput carries all parameters for the reservation list
// endpoint.
type ListReservationsInput struct {
	StartDate string
	EndDate   string
	Search    string
	Page      int
	Limit     int
}

// ListReservationsResult is returned by List.
type ListReservationsResult struct {
	Items      []ReservationDetail
	Total      int64
	Page       int
	Limit      int
	TotalPages int
}

// ReservationService defines the admission-controlled reservation use cases.
type ReservationService interface {
	Create(ctx context.Context, input CreateReservationInput) (*ReservationDetail, error)
	Get(ctx context.Context, id string) (*ReservationDetail, error)
	Update(ctx context.Context, id string, input UpdateReservationInput) (*ReservationDetail, error)
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, input ListReservationsInput) (*ListReservationsResult, error)
}
