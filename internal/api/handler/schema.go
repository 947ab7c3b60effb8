package handler

import (
	"strconv"

	"github.com/labstack/echo/v4"
)

// paginationResponse is the envelope shared by all list endpoints.
type paginationResponse struct {
	Total      int64 `json:"total"`
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	TotalPages int   `json:"total_pages"`
}

// queryPage reads the page/limit query parameters, falling back to the first
// page of ten. Range clamping happens in the service layer.
func queryPage(c echo.Context) (page, limit int) {
	page = 1
	limit = 10
	if v, err := strconv.Atoi(c.QueryParam("page")); err == nil {
		page = v
	}
	if v, err := strconv.Atoi(c.QueryParam("limit")); err == nil {
		limit = v
	}
	return page, limit
}
