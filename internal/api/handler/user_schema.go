package handler

import (
	"time"

	"github.com/tot/reservations-api/internal/core/ports"
)

type createUserRequest struct {
	Name    string `json:"name"    validate:"required,max=50"`
	Surname string `json:"surname" validate:"required,max=50"`
	Email   string `json:"email"   validate:"required,email"`
}

type updateUserRequest struct {
	Name    string `json:"name"    validate:"required,max=50"`
	Surname string `json:"surname" validate:"required,max=50"`
	Email   string `json:"email"   validate:"required,email"`
}

type userResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Surname   string    `json:"surname"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type listUsersResponse struct {
	Data       []userResponse     `json:"data"`
	Pagination paginationResponse `json:"pagination"`
}

func toUserResponse(d *ports.UserDetail) userResponse {
	return userResponse{
		ID:        d.ID,
		Name:      d.Name,
		Surname:   d.Surname,
		Email:     d.Email,
		CreatedAt: d.CreatedAt.UTC(),
		UpdatedAt: d.UpdatedAt.UTC(),
	}
}

func toListUsersResponse(r *ports.ListUsersResult) listUsersResponse {
	items := make([]userResponse, len(r.Items))
	for i := range r.Items {
		items[i] = toUserResponse(&r.Items[i])
	}
	return listUsersResponse{
		Data: items,
		Pagination: paginationResponse{
			Total:      r.Total,
			Page:       r.Page,
			Limit:      r.Limit,
			TotalPages: r.TotalPages,
		},
	}
}
