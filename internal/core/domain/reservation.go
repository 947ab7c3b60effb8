package domain

import (
	"errors"
	"time"
)

var ErrReservationNotFound = errors.New("reservation not found")
var ErrDuplicateReservation = errors.New("user can only have one reservation per date")
var ErrInvalidReservationTime = errors.New("invalid reservation time, please choose a future time within operating hours")
var ErrTableSeatMismatch = errors.New("table count does not match the party size")
var ErrNoTablesAvailable = errors.New("no available tables for the selected time")

// Reservation is the core aggregate: a table booking owned by exactly one
// user. The owner's name, surname and email are denormalized onto the record
// so reservation search does not need a second lookup.
type Reservation struct {
	ID             string    `json:"id"`
	UserID         string    `json:"user_id"`
	UserEmail      string    `json:"user_email"`
	UserName       string    `json:"user_name"`
	UserSurname    string    `json:"user_surname"`
	NumberOfGuests int       `json:"number_of_guests"`
	TablesReserved int       `json:"tables_reserved"`
	Date           string    `json:"reservation_date"` // calendar date, restaurant-local
	Time           TimeOfDay `json:"reservation_time"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}
