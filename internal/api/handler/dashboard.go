package handler

import (
	"net/http"

	"github.com/quotehub/quotehub/internal/api/middleware"
	"github.com/quotehub/quotehub/internal/api/response"
	"github.com/quotehub/quotehub/internal/core"
)

type Dashboard struct {
	svc *core.DashboardService
}

func NewDashboard(svc *core.DashboardService) *Dashboard {
	return &Dashboard{svc: svc}
}

// Get returns activity counts for the caller's company.
func (h *Dashboard) Get(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetClaims(r.Context())

	dashboard, err := h.svc.Get(r.Context(), claims.CompanyID)
	if err != nil {
		response.WriteServiceError(w, r, err)
		return
	}

	response.WriteJSON(w, http.StatusOK, dashboard)
}
