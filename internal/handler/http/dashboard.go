package http

import (
	"net/http"

	"github.com/attendly/attendance-backend-go/internal/domain/dashboard"
	"github.com/attendly/attendance-backend-go/internal/handler/http/response"
)

type DashboardHandler interface {
	Overview(w http.ResponseWriter, r *http.Request)
	EmployeeOverview(w http.ResponseWriter, r *http.Request)
}

type DashboardHandlerImpl struct {
	dashboardService dashboard.DashboardService
}

func NewDashboardHandler(dashboardService dashboard.DashboardService) DashboardHandler {
	return &DashboardHandlerImpl{dashboardService: dashboardService}
}

// Overview implements DashboardHandler.
func (h *DashboardHandlerImpl) Overview(w http.ResponseWriter, r *http.Request) {
	scope, err := scopeFromRequest(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	overview, err := h.dashboardService.Overview(r.Context(), scope)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, overview)
}

// EmployeeOverview implements DashboardHandler. The acting user's own
// attendance snapshot.
func (h *DashboardHandlerImpl) EmployeeOverview(w http.ResponseWriter, r *http.Request) {
	scope, err := scopeFromRequest(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	overview, err := h.dashboardService.EmployeeOverview(r.Context(), scope)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, overview)
}
