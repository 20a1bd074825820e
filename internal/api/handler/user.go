package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/quotehub/quotehub/internal/api/middleware"
	"github.com/quotehub/quotehub/internal/api/request"
	"github.com/quotehub/quotehub/internal/api/response"
	"github.com/quotehub/quotehub/internal/core"
	"github.com/quotehub/quotehub/internal/db"
	"github.com/quotehub/quotehub/internal/model"
)

type User struct {
	svc *core.UserService
}

func NewUser(svc *core.UserService) *User {
	return &User{svc: svc}
}

// List returns the users in the caller's company. Supports ?limit=.
func (h *User) List(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetClaims(r.Context())
	page := request.ParsePagination(r)

	users, err := h.svc.ListByCompany(r.Context(), claims.CompanyID, page.Limit)
	if err != nil {
		response.WriteServiceError(w, r, err)
		return
	}

	if users == nil {
		users = []model.User{}
	}
	response.WriteJSON(w, http.StatusOK, map[string]any{"items": users})
}

type createUserRequest struct {
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required,min=8"`
	FirstName string `json:"first_name" validate:"required"`
	LastName  string `json:"last_name" validate:"required"`
	IsAdmin   bool   `json:"is_admin"`
}

// Create adds a user to the caller's company.
func (h *User) Create(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetClaims(r.Context())

	var req createUserRequest
	if err := request.Decode(r, &req); err != nil {
		response.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	user, err := h.svc.Create(r.Context(), claims.CompanyID, core.CreateUserParams{
		Email:     req.Email,
		Password:  req.Password,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		IsAdmin:   req.IsAdmin,
	})
	if err != nil {
		response.WriteServiceError(w, r, err)
		return
	}

	response.WriteJSON(w, http.StatusCreated, user)
}

// Get returns a single user in the caller's company.
func (h *User) Get(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetClaims(r.Context())

	id, err := request.RequireID(chi.URLParam(r, "id"))
	if err != nil {
		response.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	user, err := h.svc.GetByID(r.Context(), claims.CompanyID, id)
	if err != nil {
		response.WriteServiceError(w, r, err)
		return
	}

	response.WriteJSON(w, http.StatusOK, user)
}

type updateUserRequest struct {
	FirstName *string `json:"first_name"`
	LastName  *string `json:"last_name"`
	Email     *string `json:"email" validate:"omitempty,email"`
	IsAdmin   *bool   `json:"is_admin"`
}

// Update applies a partial update to a user. Only admins may change the
// admin flag; a non-admin setting it on their own record is rejected.
func (h *User) Update(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetClaims(r.Context())

	id, err := request.RequireID(chi.URLParam(r, "id"))
	if err != nil {
		response.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	var req updateUserRequest
	if err := request.Decode(r, &req); err != nil {
		response.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	if req.IsAdmin != nil && !claims.IsAdmin {
		response.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var fields []db.Field
	if req.FirstName != nil {
		fields = append(fields, db.Field{Name: "firstName", Value: *req.FirstName})
	}
	if req.LastName != nil {
		fields = append(fields, db.Field{Name: "lastName", Value: *req.LastName})
	}
	if req.Email != nil {
		fields = append(fields, db.Field{Name: "email", Value: *req.Email})
	}
	if req.IsAdmin != nil {
		fields = append(fields, db.Field{Name: "isAdmin", Value: *req.IsAdmin})
	}

	user, err := h.svc.Update(r.Context(), claims.CompanyID, id, fields)
	if err != nil {
		response.WriteServiceError(w, r, err)
		return
	}

	response.WriteJSON(w, http.StatusOK, user)
}

// Delete removes a user from the caller's company.
func (h *User) Delete(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetClaims(r.Context())

	id, err := request.RequireID(chi.URLParam(r, "id"))
	if err != nil {
		response.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.svc.Delete(r.Context(), claims.CompanyID, id); err != nil {
		response.WriteServiceError(w, r, err)
		return
	}

	response.WriteJSON(w, http.StatusOK, map[string]string{"deleted": id})
}
