package handler

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/quotehub/quotehub/internal/api/middleware"
	"github.com/quotehub/quotehub/internal/api/request"
	"github.com/quotehub/quotehub/internal/api/response"
	"github.com/quotehub/quotehub/internal/core"
	"github.com/quotehub/quotehub/internal/db"
	"github.com/quotehub/quotehub/internal/model"
)

type RFQ struct {
	svc *core.RFQService
}

func NewRFQ(svc *core.RFQService) *RFQ {
	return &RFQ{svc: svc}
}

// List returns the company's RFQs. Supports ?status= and ?limit=.
func (h *RFQ) List(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetClaims(r.Context())
	page := request.ParsePagination(r)

	rfqs, err := h.svc.ListByCompany(r.Context(), claims.CompanyID, r.URL.Query().Get("status"), page.Limit)
	if err != nil {
		response.WriteServiceError(w, r, err)
		return
	}

	if rfqs == nil {
		rfqs = []model.RFQ{}
	}
	response.WriteJSON(w, http.StatusOK, map[string]any{"items": rfqs})
}

type rfqLineRequest struct {
	ItemID   string  `json:"item_id" validate:"required"`
	Quantity float64 `json:"quantity" validate:"required,gt=0"`
	Notes    *string `json:"notes"`
}

type createRFQRequest struct {
	CustomerID string           `json:"customer_id" validate:"required"`
	Reference  string           `json:"reference" validate:"required"`
	Notes      *string          `json:"notes"`
	DueDate    *time.Time       `json:"due_date"`
	Lines      []rfqLineRequest `json:"lines" validate:"required,min=1,dive"`
}

func (h *RFQ) Create(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetClaims(r.Context())

	var req createRFQRequest
	if err := request.Decode(r, &req); err != nil {
		response.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	params := core.CreateRFQParams{
		CustomerID: req.CustomerID,
		Reference:  req.Reference,
		Notes:      req.Notes,
		DueDate:    req.DueDate,
	}
	for _, line := range req.Lines {
		params.Lines = append(params.Lines, core.CreateRFQLineParams{
			ItemID:   line.ItemID,
			Quantity: line.Quantity,
			Notes:    line.Notes,
		})
	}

	rfq, err := h.svc.Create(r.Context(), claims.CompanyID, params)
	if err != nil {
		response.WriteServiceError(w, r, err)
		return
	}

	response.WriteJSON(w, http.StatusCreated, rfq)
}

func (h *RFQ) Get(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetClaims(r.Context())

	id, err := request.RequireID(chi.URLParam(r, "id"))
	if err != nil {
		response.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	rfq, err := h.svc.GetByID(r.Context(), claims.CompanyID, id)
	if err != nil {
		response.WriteServiceError(w, r, err)
		return
	}

	response.WriteJSON(w, http.StatusOK, rfq)
}

type updateRFQRequest struct {
	Status  *string    `json:"status" validate:"omitempty,oneof=open quoted closed cancelled"`
	Notes   *string    `json:"notes"`
	DueDate *time.Time `json:"due_date"`
}

func (h *RFQ) Update(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetClaims(r.Context())

	id, err := request.RequireID(chi.URLParam(r, "id"))
	if err != nil {
		response.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	var req updateRFQRequest
	if err := request.Decode(r, &req); err != nil {
		response.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	var fields []db.Field
	if req.Status != nil {
		fields = append(fields, db.Field{Name: "status", Value: *req.Status})
	}
	if req.Notes != nil {
		fields = append(fields, db.Field{Name: "notes", Value: req.Notes})
	}
	if req.DueDate != nil {
		fields = append(fields, db.Field{Name: "dueDate", Value: req.DueDate})
	}

	rfq, err := h.svc.Update(r.Context(), claims.CompanyID, id, fields)
	if err != nil {
		response.WriteServiceError(w, r, err)
		return
	}

	response.WriteJSON(w, http.StatusOK, rfq)
}

func (h *RFQ) Delete(w http.ResponseWriter, r *http.Request) {
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
