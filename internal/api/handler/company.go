package handler

import (
	"net/http"

	"github.com/quotehub/quotehub/internal/api/middleware"
	"github.com/quotehub/quotehub/internal/api/request"
	"github.com/quotehub/quotehub/internal/api/response"
	"github.com/quotehub/quotehub/internal/core"
	"github.com/quotehub/quotehub/internal/db"
)

type Company struct {
	svc *core.CompanyService
}

func NewCompany(svc *core.CompanyService) *Company {
	return &Company{svc: svc}
}

// Get returns the caller's company.
func (h *Company) Get(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetClaims(r.Context())

	company, err := h.svc.GetByID(r.Context(), claims.CompanyID)
	if err != nil {
		response.WriteServiceError(w, r, err)
		return
	}

	response.WriteJSON(w, http.StatusOK, company)
}

type updateCompanyRequest struct {
	Name    *string `json:"name"`
	Address *string `json:"address"`
	Phone   *string `json:"phone"`
}

// Update applies a partial update to the caller's company.
func (h *Company) Update(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetClaims(r.Context())

	var req updateCompanyRequest
	if err := request.Decode(r, &req); err != nil {
		response.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	var fields []db.Field
	if req.Name != nil {
		fields = append(fields, db.Field{Name: "name", Value: *req.Name})
	}
	if req.Address != nil {
		fields = append(fields, db.Field{Name: "address", Value: req.Address})
	}
	if req.Phone != nil {
		fields = append(fields, db.Field{Name: "phone", Value: req.Phone})
	}

	company, err := h.svc.Update(r.Context(), claims.CompanyID, fields)
	if err != nil {
		response.WriteServiceError(w, r, err)
		return
	}

	response.WriteJSON(w, http.StatusOK, company)
}

// Delete removes the caller's company and everything under it.
func (h *Company) Delete(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetClaims(r.Context())

	if err := h.svc.Delete(r.Context(), claims.CompanyID); err != nil {
		response.WriteServiceError(w, r, err)
		return
	}

	response.WriteJSON(w, http.StatusOK, map[string]string{"deleted": claims.CompanyID})
}
