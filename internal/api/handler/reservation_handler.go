package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/tot/reservations-api/internal/api/metrics"
	"github.com/tot/reservations-api/internal/core/domain"
	"github.com/tot/reservations-api/internal/core/ports"
)

// ReservationHandler handles HTTP requests for reservation operations.
type ReservationHandler struct {
	service ports.ReservationService
}

func NewReservationHandler(service ports.ReservationService) *ReservationHandler {
	return &ReservationHandler{service: service}
}

// Create handles POST /api/reservations.
//
// @Summary      Create a new reservation
// @Tags         reservations
// @Accept       json
// @Produce      json
// @Param        body  body      createReservationRequest  true  "Reservation request"
// @Success      201   {object}  reservationResponse
// @Failure      400   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /api/reservations [post]
func (h *ReservationHandler) Create(c echo.Context) error {
	var req createReservationRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	reservationTime, err := domain.ParseTimeOfDay(req.Time)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid reservation time")
	}

	start := time.Now()
	detail, err := h.service.Create(c.Request().Context(), ports.CreateReservationInput{
		UserEmail:      req.UserEmail,
		NumberOfGuests: req.NumberOfGuests,
		TablesReserved: req.TablesReserved,
		Date:           req.Date,
		Time:           reservationTime,
	})
	if err != nil {
		observeAdmission(start, err)
		return err
	}

	metrics.ReservationsCreatedTotal.Inc()
	metrics.AdmissionDuration.WithLabelValues("accepted").Observe(time.Since(start).Seconds())
	return c.JSON(http.StatusCreated, toReservationResponse(detail))
}

// Get handles GET /api/reservations/:id.
//
// @Summary      Get a reservation by id
// @Tags         reservations
// @Produce      json
// @Param        id  path      string  true  "Reservation id"
// @Success      200  {object}  reservationResponse
// @Failure      404  {object}  map[string]string
// @Router       /api/reservations/{id} [get]
func (h *ReservationHandler) Get(c echo.Context) error {
	detail, err := h.service.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toReservationResponse(detail))
}

// List handles GET /api/reservations.
//
// @Summary      List reservations
// @Tags         reservations
// @Produce      json
// @Param        start   query     string  false  "Inclusive start date (2006-01-02)"
// @Param        end     query     string  false  "Inclusive end date (2006-01-02)"
// @Param        search  query     string  false  "Substring match on the owner's name, surname, or email"
// @Param        page    query     int     false  "1-based page number"
// @Param        limit   query     int     false  "Page size"
// @Success      200     {object}  listReservationsResponse
// @Failure      400     {object}  map[string]string
// @Router       /api/reservations [get]
func (h *ReservationHandler) List(c echo.Context) error {
	startDate, err := queryDate(c, "start")
	if err != nil {
		return err
	}
	endDate, err := queryDate(c, "end")
	if err != nil {
		return err
	}
	page, limit := queryPage(c)

	result, err := h.service.List(c.Request().Context(), ports.ListReservationsInput{
		StartDate: startDate,
		EndDate:   endDate,
		Search:    c.QueryParam("search"),
		Page:      page,
		Limit:     limit,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toListReservationsResponse(result))
}

// Update handles PUT /api/reservations/:id.
//
// @Summary      Update a reservation
// @Tags         reservations
// @Accept       json
// @Produce      json
// @Param        id    path      string                    true  "Reservation id"
// @Param        body  body      updateReservationRequest  true  "Replacement reservation values"
// @Success      200   {object}  reservationResponse
// @Failure      400   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /api/reservations/{id} [put]
func (h *ReservationHandler) Update(c echo.Context) error {
	var req updateReservationRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	reservationTime, err := domain.ParseTimeOfDay(req.Time)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid reservation time")
	}

	start := time.Now()
	detail, err := h.service.Update(c.Request().Context(), c.Param("id"), ports.UpdateReservationInput{
		NumberOfGuests: req.NumberOfGuests,
		TablesReserved: req.TablesReserved,
		Date:           req.Date,
		Time:           reservationTime,
	})
	if err != nil {
		observeAdmission(start, err)
		return err
	}

	metrics.AdmissionDuration.WithLabelValues("accepted").Observe(time.Since(start).Seconds())
	return c.JSON(http.StatusOK, toReservationResponse(detail))
}

// Delete handles DELETE /api/reservations/:id.
//
// @Summary      Delete a reservation
// @Tags         reservations
// @Param        id  path  string  true  "Reservation id"
// @Success      204
// @Failure      404  {object}  map[string]string
// @Router       /api/reservations/{id} [delete]
func (h *ReservationHandler) Delete(c echo.Context) error {
	if err := h.service.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// queryDate reads an optional date query parameter, rejecting malformed values.
func queryDate(c echo.Context, name string) (string, error) {
	v := c.QueryParam(name)
	if v == "" {
		return "", nil
	}
	if _, err := time.Parse(domain.DateLayout, v); err != nil {
		return "", echo.NewHTTPError(http.StatusBadRequest, "invalid "+name+" date")
	}
	return v, nil
}

// observeAdmission records rejection metrics for admission-rule failures.
// Infrastructure errors are left to the error handler's logging.
func observeAdmission(start time.Time, err error) {
	reason := rejectionReason(err)
	if reason == "" {
		return
	}
	metrics.AdmissionRejectedTotal.WithLabelValues(reason).Inc()
	metrics.AdmissionDuration.WithLabelValues("rejected").Observe(time.Since(start).Seconds())
}

func rejectionReason(err error) string {
	switch {
	case errors.Is(err, domain.ErrDuplicateReservation):
		return "duplicate_date"
	case errors.Is(err, domain.ErrInvalidReservationTime):
		return "invalid_time"
	case errors.Is(err, domain.ErrTableSeatMismatch):
		return "table_mismatch"
	case errors.Is(err, domain.ErrNoTablesAvailable):
		return "no_tables"
	}
	return ""
}
