package handlers

import (
	"net/http"

	"github.com/Sabbir999/Team-budget/middleware"
	"github.com/Sabbir999/Team-budget/services"
)

type DashboardHandler struct {
	dashboardService services.DashboardService
}

func NewDashboardHandler(dashboardService services.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboardService: dashboardService}
}

// GetStats aggregates the account dashboard. An optional ?teamId= query
// narrows the numbers to one team; without it the whole account is summed.
func (h *DashboardHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserIDFromContext(r.Context())
	if err != nil {
		unauthorizedResponse(w, r, err.Error())
		return
	}

	stats, err := h.dashboardService.GetStats(r.Context(), userID, r.URL.Query().Get("teamId"))
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, stats, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
