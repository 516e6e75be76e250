package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taskfolio/taskfolio/internal/adapters/http/dto"
	"github.com/taskfolio/taskfolio/internal/app/users"
	"github.com/taskfolio/taskfolio/internal/bus"
	"github.com/taskfolio/taskfolio/internal/platform/config"
	"github.com/taskfolio/taskfolio/internal/ports"
)

// UserHandler handles HTTP requests for the Users bounded context.
type UserHandler struct {
	bus    ports.Bus
	paging config.PaginationConfig
}

// NewUserHandler creates a UserHandler dispatching over the given bus.
func NewUserHandler(b ports.Bus, paging config.PaginationConfig) *UserHandler {
	return &UserHandler{bus: b, paging: paging}
}

// Register handles POST /api/v1/users.
func (h *UserHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req dto.RegisterUserRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	account, err := bus.Invoke[users.RegisterUser, users.Account](r.Context(), h.bus,
		users.RegisterUser{Email: req.Email, UserName: req.UserName})
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, dto.ToUserResponse(account))
}

// Get handles GET /api/v1/users/{userId}.
func (h *UserHandler) Get(w http.ResponseWriter, r *http.Request) {
	account, err := bus.Invoke[users.GetUser, users.Account](r.Context(), h.bus,
		users.GetUser{UserID: chi.URLParam(r, "userId")})
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.ToUserResponse(account))
}

// Rename handles PATCH /api/v1/users/{userId}.
func (h *UserHandler) Rename(w http.ResponseWriter, r *http.Request) {
	var req dto.RenameUserRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	account, err := bus.Invoke[users.RenameUser, users.Account](r.Context(), h.bus,
		users.RenameUser{UserID: chi.URLParam(r, "userId"), UserName: req.UserName})
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.ToUserResponse(account))
}

// Delete handles DELETE /api/v1/users/{userId}. Deleting an account also
// removes every list the user owned, via the UserDeleted subscriber.
func (h *UserHandler) Delete(w http.ResponseWriter, r *http.Request) {
	_, err := bus.Invoke[users.DeleteUser, struct{}](r.Context(), h.bus,
		users.DeleteUser{UserID: chi.URLParam(r, "userId")})
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// List handles GET /api/v1/users.
func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	page, limit, sort, err := pagingParams(r, h.paging.DefaultLimit)
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	result, err := bus.Invoke[users.ListUsers, users.AccountPage](r.Context(), h.bus,
		users.ListUsers{
			Page:          page,
			Limit:         limit,
			Sort:          sort,
			EmailContains: r.URL.Query().Get("email_contains"),
		})
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.ToUserListResponse(result))
}
