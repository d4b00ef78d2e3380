package dashboard

import (
	"context"

	"github.com/attendly/attendance-backend-go/internal/domain/user"
)

type DashboardService interface {
	Overview(ctx context.Context, scope user.Scope) (Overview, error)
	EmployeeOverview(ctx context.Context, scope user.Scope) (EmployeeOverview, error)
}
