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

type Quote struct {
	svc *core.QuoteService
}

func NewQuote(svc *core.QuoteService) *Quote {
	return &Quote{svc: svc}
}

// List returns the company's quotes. Supports ?status= and ?limit=.
func (h *Quote) List(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetClaims(r.Context())
	page := request.ParsePagination(r)

	quotes, err := h.svc.ListByCompany(r.Context(), claims.CompanyID, r.URL.Query().Get("status"), page.Limit)
	if err != nil {
		response.WriteServiceError(w, r, err)
		return
	}

	if quotes == nil {
		quotes = []model.Quote{}
	}
	response.WriteJSON(w, http.StatusOK, map[string]any{"items": quotes})
}

type quoteLineRequest struct {
	ItemID    string  `json:"item_id" validate:"required"`
	Quantity  float64 `json:"quantity" validate:"required,gt=0"`
	UnitPrice float64 `json:"unit_price" validate:"gte=0"`
}

type createQuoteRequest struct {
	Reference  string             `json:"reference" validate:"required"`
	ValidUntil *time.Time         `json:"valid_until"`
	Notes      *string            `json:"notes"`
	Lines      []quoteLineRequest `json:"lines" validate:"required,min=1,dive"`
}

// CreateFromRFQ creates a quote for the RFQ in the URL and moves the
// RFQ to quoted. Routed as POST /rfqs/{id}/quotes.
func (h *Quote) CreateFromRFQ(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetClaims(r.Context())

	rfqID, err := request.RequireID(chi.URLParam(r, "id"))
	if err != nil {
		response.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	var req createQuoteRequest
	if err := request.Decode(r, &req); err != nil {
		response.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	params := core.CreateQuoteParams{
		Reference:  req.Reference,
		ValidUntil: req.ValidUntil,
		Notes:      req.Notes,
	}
	for _, line := range req.Lines {
		params.Lines = append(params.Lines, core.CreateQuoteLineParams{
			ItemID:    line.ItemID,
			Quantity:  line.Quantity,
			UnitPrice: line.UnitPrice,
		})
	}

	quote, err := h.svc.CreateFromRFQ(r.Context(), claims.CompanyID, rfqID, params)
	if err != nil {
		response.WriteServiceError(w, r, err)
		return
	}

	response.WriteJSON(w, http.StatusCreated, quote)
}

func (h *Quote) Get(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetClaims(r.Context())

	id, err := request.RequireID(chi.URLParam(r, "id"))
	if err != nil {
		response.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	quote, err := h.svc.GetByID(r.Context(), claims.CompanyID, id)
	if err != nil {
		response.WriteServiceError(w, r, err)
		return
	}

	response.WriteJSON(w, http.StatusOK, quote)
}

type updateQuoteRequest struct {
	Status     *string    `json:"status" validate:"omitempty,oneof=draft sent accepted rejected"`
	Reference  *string    `json:"reference"`
	ValidUntil *time.Time `json:"valid_until"`
	Notes      *string    `json:"notes"`
}

func (h *Quote) Update(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetClaims(r.Context())

	id, err := request.RequireID(chi.URLParam(r, "id"))
	if err != nil {
		response.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	var req updateQuoteRequest
	if err := request.Decode(r, &req); err != nil {
		response.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	var fields []db.Field
	if req.Status != nil {
		fields = append(fields, db.Field{Name: "status", Value: *req.Status})
	}
	if req.Reference != nil {
		fields = append(fields, db.Field{Name: "reference", Value: *req.Reference})
	}
	if req.ValidUntil != nil {
		fields = append(fields, db.Field{Name: "validUntil", Value: req.ValidUntil})
	}
	if req.Notes != nil {
		fields = append(fields, db.Field{Name: "notes", Value: req.Notes})
	}

	quote, err := h.svc.Update(r.Context(), claims.CompanyID, id, fields)
	if err != nil {
		response.WriteServiceError(w, r, err)
		return
	}

	response.WriteJSON(w, http.StatusOK, quote)
}

func (h *Quote) Delete(w http.ResponseWriter, r *http.Request) {
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
