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

type Customer struct {
	svc *core.CustomerService
}

func NewCustomer(svc *core.CustomerService) *Customer {
	return &Customer{svc: svc}
}

// List returns the caller's company's customers. Supports ?search= and ?limit=.
func (h *Customer) List(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetClaims(r.Context())
	page := request.ParsePagination(r)

	customers, err := h.svc.ListByCompany(r.Context(), claims.CompanyID, r.URL.Query().Get("search"), page.Limit)
	if err != nil {
		response.WriteServiceError(w, r, err)
		return
	}

	if customers == nil {
		customers = []model.Customer{}
	}
	response.WriteJSON(w, http.StatusOK, map[string]any{"items": customers})
}

type createCustomerRequest struct {
	Name        string  `json:"name" validate:"required"`
	ContactName *string `json:"contact_name"`
	Email       *string `json:"email" validate:"omitempty,email"`
	Phone       *string `json:"phone"`
	Address     *string `json:"address"`
}

func (h *Customer) Create(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetClaims(r.Context())

	var req createCustomerRequest
	if err := request.Decode(r, &req); err != nil {
		response.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	customer, err := h.svc.Create(r.Context(), claims.CompanyID, core.CreateCustomerParams{
		Name:        req.Name,
		ContactName: req.ContactName,
		Email:       req.Email,
		Phone:       req.Phone,
		Address:     req.Address,
	})
	if err != nil {
		response.WriteServiceError(w, r, err)
		return
	}

	response.WriteJSON(w, http.StatusCreated, customer)
}

func (h *Customer) Get(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetClaims(r.Context())

	id, err := request.RequireID(chi.URLParam(r, "id"))
	if err != nil {
		response.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	customer, err := h.svc.GetByID(r.Context(), claims.CompanyID, id)
	if err != nil {
		response.WriteServiceError(w, r, err)
		return
	}

	response.WriteJSON(w, http.StatusOK, customer)
}

type updateCustomerRequest struct {
	Name        *string `json:"name"`
	ContactName *string `json:"contact_name"`
	Email       *string `json:"email" validate:"omitempty,email"`
	Phone       *string `json:"phone"`
	Address     *string `json:"address"`
}

func (h *Customer) Update(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetClaims(r.Context())

	id, err := request.RequireID(chi.URLParam(r, "id"))
	if err != nil {
		response.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	var req updateCustomerRequest
	if err := request.Decode(r, &req); err != nil {
		response.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	var fields []db.Field
	if req.Name != nil {
		fields = append(fields, db.Field{Name: "name", Value: *req.Name})
	}
	if req.ContactName != nil {
		fields = append(fields, db.Field{Name: "contactName", Value: req.ContactName})
	}
	if req.Email != nil {
		fields = append(fields, db.Field{Name: "email", Value: req.Email})
	}
	if req.Phone != nil {
		fields = append(fields, db.Field{Name: "phone", Value: req.Phone})
	}
	if req.Address != nil {
		fields = append(fields, db.Field{Name: "address", Value: req.Address})
	}

	customer, err := h.svc.Update(r.Context(), claims.CompanyID, id, fields)
	if err != nil {
		response.WriteServiceError(w, r, err)
		return
	}

	response.WriteJSON(w, http.StatusOK, customer)
}

func (h *Customer) Delete(w http.ResponseWriter, r *http.Request) {
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
