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

type Item struct {
	svc *core.ItemService
}

func NewItem(svc *core.ItemService) *Item {
	return &Item{svc: svc}
}

// List returns the caller's company's catalog. Supports ?search= and ?limit=.
func (h *Item) List(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetClaims(r.Context())
	page := request.ParsePagination(r)

	items, err := h.svc.ListByCompany(r.Context(), claims.CompanyID, r.URL.Query().Get("search"), page.Limit)
	if err != nil {
		response.WriteServiceError(w, r, err)
		return
	}

	if items == nil {
		items = []model.Item{}
	}
	response.WriteJSON(w, http.StatusOK, map[string]any{"items": items})
}

type createItemRequest struct {
	SKU         string  `json:"sku" validate:"required"`
	Name        string  `json:"name" validate:"required"`
	Description *string `json:"description"`
	Unit        string  `json:"unit" validate:"required"`
	UnitCost    float64 `json:"unit_cost" validate:"gte=0"`
}

func (h *Item) Create(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetClaims(r.Context())

	var req createItemRequest
	if err := request.Decode(r, &req); err != nil {
		response.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	item, err := h.svc.Create(r.Context(), claims.CompanyID, core.CreateItemParams{
		SKU:         req.SKU,
		Name:        req.Name,
		Description: req.Description,
		Unit:        req.Unit,
		UnitCost:    req.UnitCost,
	})
	if err != nil {
		response.WriteServiceError(w, r, err)
		return
	}

	response.WriteJSON(w, http.StatusCreated, item)
}

func (h *Item) Get(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetClaims(r.Context())

	id, err := request.RequireID(chi.URLParam(r, "id"))
	if err != nil {
		response.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	item, err := h.svc.GetByID(r.Context(), claims.CompanyID, id)
	if err != nil {
		response.WriteServiceError(w, r, err)
		return
	}

	response.WriteJSON(w, http.StatusOK, item)
}

type updateItemRequest struct {
	SKU         *string  `json:"sku"`
	Name        *string  `json:"name"`
	Description *string  `json:"description"`
	Unit        *string  `json:"unit"`
	UnitCost    *float64 `json:"unit_cost" validate:"omitempty,gte=0"`
}

func (h *Item) Update(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetClaims(r.Context())

	id, err := request.RequireID(chi.URLParam(r, "id"))
	if err != nil {
		response.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	var req updateItemRequest
	if err := request.Decode(r, &req); err != nil {
		response.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	var fields []db.Field
	if req.SKU != nil {
		fields = append(fields, db.Field{Name: "sku", Value: *req.SKU})
	}
	if req.Name != nil {
		fields = append(fields, db.Field{Name: "name", Value: *req.Name})
	}
	if req.Description != nil {
		fields = append(fields, db.Field{Name: "description", Value: req.Description})
	}
	if req.Unit != nil {
		fields = append(fields, db.Field{Name: "unit", Value: *req.Unit})
	}
	if req.UnitCost != nil {
		fields = append(fields, db.Field{Name: "unitCost", Value: *req.UnitCost})
	}

	item, err := h.svc.Update(r.Context(), claims.CompanyID, id, fields)
	if err != nil {
		response.WriteServiceError(w, r, err)
		return
	}

	response.WriteJSON(w, http.StatusOK, item)
}

func (h *Item) Delete(w http.ResponseWriter, r *http.Request) {
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
