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

// ReservationService is the admission engine: it validates reservation
// requests against the restaurant profile and commits them. All state lives
// in the repository; the service itself is stateless between calls.
type ReservationService struct {
	repo     ports.ReservationRepository
	users    ports.UserService
	locker   ports.AdmissionLocker
	settings domain.Settings
	logger   zerolog.Logger
	now      func() time.Time // restaurant-local clock, overridable in tests
}

func NewReservationService(
	repo ports.ReservationRepository,
	users ports.UserService,
	locker ports.AdmissionLocker,
	settings domain.Settings,
	logger zerolog.Logger,
) *ReservationService {
	return &ReservationService{
		repo:     repo,
		users:    users,
		locker:   locker,
		settings: settings,
		logger:   logger,
		now:      time.Now,
	}
}

// Create runs the admission check and commits the reservation. The
// one-per-date lookup, the availability sum, and the insert all happen under
// the per-date lock so concurrent requests for the same date serialize; the
// storage-level (owner, date) uniqueness constraint backstops the lock.
func (s *ReservationService) Create(ctx context.Context, in ports.CreateReservationInput) (*ports.ReservationDetail, error) {
	user, err := s.users.CheckExists(ctx, in.UserEmail)
	if err != nil {
		return nil, err
	}

	release, err := s.locker.Lock(ctx, in.Date)
	if err != nil {
		return nil, fmt.Errorf("acquire admission lock: %w", err)
	}
	defer release()

	// One reservation per owner per date, regardless of time.
	_, err = s.repo.FindByUserAndDate(ctx, in.UserEmail, in.Date)
	if err == nil {
		return nil, domain.ErrDuplicateReservation
	}
	if !errors.Is(err, domain.ErrReservationNotFound) {
		return nil, fmt.Errorf("check existing reservation: %w", err)
	}

	if err := s.validate(ctx, in.NumberOfGuests, in.TablesReserved, in.Date, in.Time); err != nil {
		return nil, err
	}

	now := s.now().UTC()
	reservation := &domain.Reservation{
		UserID:         user.ID,
		UserEmail:      user.Email,
		UserName:       user.Name,
		UserSurname:    user.Surname,
		NumberOfGuests: in.NumberOfGuests,
		TablesReserved: in.TablesReserved,
		Date:           in.Date,
		Time:           in.Time,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	created, err := s.repo.Create(ctx, reservation)
	if err != nil {
		s.logger.Error().Err(err).Str("email", in.UserEmail).Str("date", in.Date).Msg("failed to create reservation")
		return nil, err
	}

	s.logger.Info().
		Str("reservation_id", created.ID).
		Str("email", created.UserEmail).
		Str("date", created.Date).
		Str("time", created.Time.String()).
		Int("tables", created.TablesReserved).
		Msg("reservation created")

	return toReservationDetail(created), nil
}

func (s *ReservationService) Get(ctx context.Context, id string) (*ports.ReservationDetail, error) {
	reservation, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return toReservationDetail(reservation), nil
}

// Update re-runs the timing, ratio, and availability checks against the new
// values, then overwrites the reservation in place. The availability sum is
// computed the same way as on create and does not exclude this reservation's
// own footprint, so moving or shrinking a reservation within an almost-full
// window can be rejected.
func (s *ReservationService) Update(ctx context.Context, id string, in ports.UpdateReservationInput) (*ports.ReservationDetail, error) {
	reservation, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	release, err := s.locker.Lock(ctx, in.Date)
	if err != nil {
		return nil, fmt.Errorf("acquire admission lock: %w", err)
	}
	defer release()

	if err := s.validate(ctx, in.NumberOfGuests, in.TablesReserved, in.Date, in.Time); err != nil {
		return nil, err
	}

	reservation.NumberOfGuests = in.NumberOfGuests
	reservation.TablesReserved = in.TablesReserved
	reservation.Date = in.Date
	reservation.Time = in.Time
	reservation.UpdatedAt = s.now().UTC()

	updated, err := s.repo.Update(ctx, reservation)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("reservation_id", updated.ID).Str("date", updated.Date).Msg("reservation updated")
	return toReservationDetail(updated), nil
}

// Delete removes the reservation unconditionally once it is found. No other
// reservation is re-validated.
func (s *ReservationService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info().Str("reservation_id", id).Msg("reservation deleted")
	return nil
}

func (s *ReservationService) List(ctx context.Context, in ports.ListReservationsInput) (*ports.ListReservationsResult, error) {
	page, limit := normalizePage(in.Page, in.Limit)

	reservations, total, err := s.repo.List(ctx, ports.ListReservationsFilter{
		StartDate: in.StartDate,
		EndDate:   in.EndDate,
		Search:    in.Search,
		Page:      page,
		Limit:     limit,
	})
	if err != nil {
		return nil, fmt.Errorf("list reservations: %w", err)
	}

	items := make([]ports.ReservationDetail, len(reservations))
	for i, r := range reservations {
		items[i] = *toReservationDetail(r)
	}

	return &ports.ListReservationsResult{
		Items:      items,
		Total:      total,
		Page:       page,
		Limit:      limit,
		TotalPages: totalPages(total, limit),
	}, nil
}

// validate applies the admission rules in order, short-circuiting on the
// first failure: timing, guest/table ratio, table availability.
func (s *ReservationService) validate(ctx context.Context, guests, tables int, date string, t domain.TimeOfDay) error {
	if !s.isValidReservationTime(date, t) {
		return domain.ErrInvalidReservationTime
	}

	if s.settings.TablesFor(guests) != tables {
		return domain.ErrTableSeatMismatch
	}

	available, err := s.isTableAvailable(ctx, tables, date, t)
	if err != nil {
		return err
	}
	if !available {
		return domain.ErrNoTablesAvailable
	}
	return nil
}

// isValidReservationTime rejects past date/times and starts outside the
// operating window.
func (s *ReservationService) isValidReservationTime(date string, t domain.TimeOfDay) bool {
	clock := s.now()
	today := domain.ClockDate(clock)

	if date < today || (date == today && t < domain.ClockTimeOfDay(clock)) {
		return false
	}
	return s.settings.WithinOperatingHours(t)
}

// isTableAvailable sums the tables of every same-date reservation whose
// occupancy window overlaps the requested one and checks the remainder.
func (s *ReservationService) isTableAvailable(ctx context.Context, requested int, date string, t domain.TimeOfDay) (bool, error) {
	if requested > s.settings.MaxTables {
		return false, nil
	}

	reservations, err := s.repo.FindByDate(ctx, date)
	if err != nil {
		return false, fmt.Errorf("load reservations for %s: %w", date, err)
	}

	reserved := 0
	for _, r := range reservations {
		if s.settings.Overlaps(r.Time, t) {
			reserved += r.TablesReserved
		}
	}
	return s.settings.MaxTables-reserved >= requested, nil
}

func toReservationDetail(r *domain.Reservation) *ports.ReservationDetail {
	return &ports.ReservationDetail{
		ID:             r.ID,
		UserEmail:      r.UserEmail,
		NumberOfGuests: r.NumberOfGuests,
		TablesReserved: r.TablesReserved,
		Date:           r.Date,
		Time:           r.Time.String(),
		CreatedAt:      r.CreatedAt,
		UpdatedAt:      r.UpdatedAt,
	}
}
