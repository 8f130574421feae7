package handler

import (
	"net/http"
	"strconv"

	"fundihub/internal/usecase"
	"fundihub/pkg/response"
)

const defaultAdminActionsLimit = 50

type DashboardHandler struct {
	dashboardUsecase usecase.DashboardUsecase
}

func NewDashboardHandler(dashboardUsecase usecase.DashboardUsecase) *DashboardHandler {
	return &DashboardHandler{dashboardUsecase: dashboardUsecase}
}

// GetDashboard handles the admin overview aggregates
// @Summary Admin dashboard
// @Tags Admin
// @Security BearerAuth
// @Produce json
// @Success 200 {object} response.Response
// @Router /admin/dashboard [get]
func (h *DashboardHandler) GetDashboard(w http.ResponseWriter, r *http.Request) {
	dashboard, err := h.dashboardUsecase.GetDashboard(r.Context())
	if err != nil {
		response.InternalServerError(w, "Failed to get dashboard")
		return
	}

	response.Success(w, http.StatusOK, "Dashboard retrieved successfully", dashboard)
}

// ListAdminActions handles the admin audit trail listing
func (h *DashboardHandler) ListAdminActions(w http.ResponseWriter, r *http.Request) {
	limit := defaultAdminActionsLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			limit = n
		}
	}

	actions, err := h.dashboardUsecase.ListAdminActions(r.Context(), limit)
	if err != nil {
		response.InternalServerError(w, "Failed to list admin actions")
		return
	}

	response.Success(w, http.StatusOK, "Admin actions retrieved successfully", actions)
}
