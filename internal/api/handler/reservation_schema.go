package handler

import (
	"time"

	"github.com/tot/reservations-api/internal/core/ports"
)

type createReservationRequest struct {
	UserEmail      string `json:"user_email"       validate:"required,email"`
	NumberOfGuests int    `json:"number_of_guests" validate:"required,min=1"`
	TablesReserved int    `json:"tables_reserved"  validate:"required,min=1,max=5"`
	Date           string `json:"reservation_date" validate:"required,datetime=2006-01-02"`
	Time           string `json:"reservation_time" validate:"required,datetime=15:04"`
}

// updateReservationRequest carries the replacement values; the owner is not
// changeable, so there is no user_email field.
type updateReservationRequest struct {
	NumberOfGuests int    `json:"number_of_guests" validate:"required,min=1"`
	TablesReserved int    `json:"tables_reserved"  validate:"required,min=1,max=5"`
	Date           string `json:"reservation_date" validate:"required,datetime=2006-01-02"`
	Time           string `json:"reservation_time" validate:"required,datetime=15:04"`
}

type reservationResponse struct {
	ID             string    `json:"id"`
	UserEmail      string    `json:"user_email"`
	NumberOfGuests int       `json:"number_of_guests"`
	TablesReserved int       `json:"tables_reserved"`
	Date           string    `json:"reservation_date"`
	Time           string    `json:"reservation_time"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

type listReservationsResponse struct {
	Data       []reservationResponse `json:"data"`
	Pagination paginationResponse    `json:"pagination"`
}

func toReservationResponse(d *ports.ReservationDetail) reservationResponse {
	return reservationResponse{
		ID:             d.ID,
		UserEmail:      d.UserEmail,
		NumberOfGuests: d.NumberOfGuests,
		TablesReserved: d.TablesReserved,
		Date:           d.Date,
		Time:           d.Time,
		CreatedAt:      d.CreatedAt.UTC(),
		UpdatedAt:      d.UpdatedAt.UTC(),
	}
}

func toListReservationsResponse(r *ports.ListReservationsResult) listReservationsResponse {
	items := make([]reservationResponse, len(r.Items))
	for i := range r.Items {
		items[i] = toReservationResponse(&r.Items[i])
	}
	return listReservationsResponse{
		Data: items,
		Pagination: paginationResponse{
			Total:      r.Total,
			Page:       r.Page,
			Limit:      r.Limit,
			TotalPages: r.TotalPages,
		},
	}
}
