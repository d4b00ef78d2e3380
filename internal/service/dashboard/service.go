package dashboard

import (
	"context"
	"time"

	"github.com/attendly/attendance-backend-go/internal/domain/dashboard"
	"github.com/attendly/attendance-backend-go/internal/domain/user"
)

type DashboardServiceImpl struct {
	dashboard.DashboardRepository

	now func() time.Time
}

func NewDashboardService(dashboardRepository dashboard.DashboardRepository) dashboard.DashboardService {
	return &DashboardServiceImpl{
		DashboardRepository: dashboardRepository,
		now:                 time.Now,
	}
}

// Overview implements dashboard.DashboardService. Management roles only;
// employees are redirected to their own overview.
func (s *DashboardServiceImpl) Overview(ctx context.Context, scope user.Scope) (dashboard.Overview, error) {
	if scope.SelfOnly() {
		return dashboard.Overview{}, user.ErrHRAccessRequired
	}
	return s.DashboardRepository.GetOverview(ctx, scope, s.now())
}

// EmployeeOverview implements dashboard.DashboardService.
func (s *DashboardServiceImpl) EmployeeOverview(ctx context.Context, scope user.Scope) (dashboard.EmployeeOverview, error) {
	return s.DashboardRepository.GetEmployeeOverview(ctx, scope.UserID, s.now())
}
