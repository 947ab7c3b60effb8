package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/tot/reservations-api/internal/core/domain"
	"github.com/tot/reservations-api/internal/core/ports"
)

type stubReservationService struct {
	createFn func(ctx context.Context, in ports.CreateReservationInput) (*ports.ReservationDetail, error)
	getFn    func(ctx context.Context, id string) (*ports.ReservationDetail, error)
	updateFn func(ctx context.Context, id string, in ports.UpdateReservationInput) (*ports.ReservationDetail, error)
	deleteFn func(ctx context.Context, id string) error
	listFn   func(ctx context.Context, in ports.ListReservationsInput) (*ports.ListReservationsResult, error)
}

func (s *stubReservationService) Create(ctx context.Context, in ports.CreateReservationInput) (*ports.ReservationDetail, error) {
	return s.createFn(ctx, in)
}

func (s *stubReservationService) Get(ctx context.Context, id string) (*ports.ReservationDetail, error) {
	return s.getFn(ctx, id)
}

func (s *stubReservationService) Update(ctx context.Context, id string, in ports.UpdateReservationInput) (*ports.ReservationDetail, error) {
	return s.updateFn(ctx, id, in)
}

func (s *stubReservationService) Delete(ctx context.Context, id string) error {
	return s.deleteFn(ctx, id)
}

func (s *stubReservationService) List(ctx context.Context, in ports.ListReservationsInput) (*ports.ListReservationsResult, error) {
	return s.listFn(ctx, in)
}

const validReservationBody = `{
	"user_email": "ana@example.com",
	"number_of_guests": 4,
	"tables_reserved": 1,
	"reservation_date": "2026-03-15",
	"reservation_time": "20:00"
}`

func TestReservationHandler_Create_Success(t *testing.T) {
	stub := &stubReservationService{
		createFn: func(_ context.Context, in ports.CreateReservationInput) (*ports.ReservationDetail, error) {
			if in.UserEmail != "ana@example.com" || in.Date != "2026-03-15" {
				t.Fatalf("unexpected input: %+v", in)
			}
			if in.Time != 20*60 {
				t.Fatalf("expected parsed time 20:00, got %v", in.Time)
			}
			return &ports.ReservationDetail{
				ID:             "res_1",
				UserEmail:      in.UserEmail,
				NumberOfGuests: in.NumberOfGuests,
				TablesReserved: in.TablesReserved,
				Date:           in.Date,
				Time:           in.Time.String(),
			}, nil
		},
	}
	h := NewReservationHandler(stub)

	c, rec := newTestContext(http.MethodPost, "/api/reservations", validReservationBody)

	if err := h.Create(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["id"] != "res_1" || resp["reservation_time"] != "20:00" {
		t.Fatalf("unexpected payload: %+v", resp)
	}
}

func TestReservationHandler_Create_ValidationFailure(t *testing.T) {
	stub := &stubReservationService{
		createFn: func(context.Context, ports.CreateReservationInput) (*ports.ReservationDetail, error) {
			t.Fatal("service must not be called for an invalid request")
			return nil, nil
		},
	}
	h := NewReservationHandler(stub)

	cases := []struct {
		name  string
		body  string
		field string
	}{
		{"missing email", `{"number_of_guests":4,"tables_reserved":1,"reservation_date":"2026-03-15","reservation_time":"20:00"}`, "useremail"},
		{"zero guests", `{"user_email":"a@b.com","number_of_guests":0,"tables_reserved":1,"reservation_date":"2026-03-15","reservation_time":"20:00"}`, "numberofguests"},
		{"too many tables", `{"user_email":"a@b.com","number_of_guests":24,"tables_reserved":6,"reservation_date":"2026-03-15","reservation_time":"20:00"}`, "tablesreserved"},
		{"bad date format", `{"user_email":"a@b.com","number_of_guests":4,"tables_reserved":1,"reservation_date":"15/03/2026","reservation_time":"20:00"}`, "date"},
		{"bad time format", `{"user_email":"a@b.com","number_of_guests":4,"tables_reserved":1,"reservation_date":"2026-03-15","reservation_time":"8pm"}`, "time"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c, _ := newTestContext(http.MethodPost, "/api/reservations", tc.body)

			err := h.Create(c)
			var ve *ValidationError
			if !errors.As(err, &ve) {
				t.Fatalf("expected ValidationError, got %v", err)
			}
			if _, ok := ve.Fields[tc.field]; !ok {
				t.Errorf("expected a message for field %q, got %+v", tc.field, ve.Fields)
			}
		})
	}
}

func TestReservationHandler_Create_AdmissionErrorPassesThrough(t *testing.T) {
	stub := &stubReservationService{
		createFn: func(context.Context, ports.CreateReservationInput) (*ports.ReservationDetail, error) {
			return nil, domain.ErrNoTablesAvailable
		},
	}
	h := NewReservationHandler(stub)

	c, _ := newTestContext(http.MethodPost, "/api/reservations", validReservationBody)

	if err := h.Create(c); !errors.Is(err, domain.ErrNoTablesAvailable) {
		t.Fatalf("expected ErrNoTablesAvailable, got %v", err)
	}
}

func TestReservationHandler_Get_NotFoundPassesThrough(t *testing.T) {
	stub := &stubReservationService{
		getFn: func(context.Context, string) (*ports.ReservationDetail, error) {
			return nil, domain.ErrReservationNotFound
		},
	}
	h := NewReservationHandler(stub)

	c, _ := newTestContext(http.MethodGet, "/api/reservations/res_missing", "")
	c.SetParamNames("id")
	c.SetParamValues("res_missing")

	if err := h.Get(c); !errors.Is(err, domain.ErrReservationNotFound) {
		t.Fatalf("expected ErrReservationNotFound, got %v", err)
	}
}

func TestReservationHandler_List_PassesFilters(t *testing.T) {
	stub := &stubReservationService{
		listFn: func(_ context.Context, in ports.ListReservationsInput) (*ports.ListReservationsResult, error) {
			if in.StartDate != "2026-03-01" || in.EndDate != "2026-03-31" || in.Search != "ana" {
				t.Fatalf("unexpected input: %+v", in)
			}
			return &ports.ListReservationsResult{Items: []ports.ReservationDetail{}, Page: 1, Limit: 10}, nil
		},
	}
	h := NewReservationHandler(stub)

	c, rec := newTestContext(http.MethodGet,
		"/api/reservations?start=2026-03-01&end=2026-03-31&search=ana", "")

	if err := h.List(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestReservationHandler_List_RejectsMalformedDate(t *testing.T) {
	stub := &stubReservationService{
		listFn: func(context.Context, ports.ListReservationsInput) (*ports.ListReservationsResult, error) {
			t.Fatal("service must not be called for a malformed date")
			return nil, nil
		},
	}
	h := NewReservationHandler(stub)

	c, _ := newTestContext(http.MethodGet, "/api/reservations?start=03-15-2026", "")

	err := h.List(c)
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 HTTPError, got %v", err)
	}
}

func TestReservationHandler_Update_Success(t *testing.T) {
	stub := &stubReservationService{
		updateFn: func(_ context.Context, id string, in ports.UpdateReservationInput) (*ports.ReservationDetail, error) {
			if id != "res_1" {
				t.Fatalf("unexpected id: %s", id)
			}
			return &ports.ReservationDetail{
				ID:             id,
				NumberOfGuests: in.NumberOfGuests,
				TablesReserved: in.TablesReserved,
				Date:           in.Date,
				Time:           in.Time.String(),
			}, nil
		},
	}
	h := NewReservationHandler(stub)

	c, rec := newTestContext(http.MethodPut, "/api/reservations/res_1",
		`{"number_of_guests":8,"tables_reserved":2,"reservation_date":"2026-03-15","reservation_time":"21:00"}`)
	c.SetParamNames("id")
	c.SetParamValues("res_1")

	if err := h.Update(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestReservationHandler_Delete_NoContent(t *testing.T) {
	stub := &stubReservationService{
		deleteFn: func(_ context.Context, id string) error {
			if id != "res_1" {
				t.Fatalf("unexpected id: %s", id)
			}
			return nil
		},
	}
	h := NewReservationHandler(stub)

	c, rec := newTestContext(http.MethodDelete, "/api/reservations/res_1", "")
	c.SetParamNames("id")
	c.SetParamValues("res_1")

	if err := h.Delete(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rec.Code)
	}
}

func TestRejectionReason(t *testing.T) {
	cases := []struct {
		err  error
		want string
	}{
		{domain.ErrDuplicateReservation, "duplicate_date"},
		{domain.ErrInvalidReservationTime, "invalid_time"},
		{domain.ErrTableSeatMismatch, "table_mismatch"},
		{domain.ErrNoTablesAvailable, "no_tables"},
		{domain.ErrUserNotFound, ""},
		{errors.New("db down"), ""},
	}

	for _, tc := range cases {
		if got := rejectionReason(tc.err); got != tc.want {
			t.Errorf("rejectionReason(%v): expected %q, got %q", tc.err, tc.want, got)
		}
	}
}
