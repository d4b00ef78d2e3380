package dashboard

import (
	"context"
	"time"

	"github.com/attendly/attendance-backend-go/internal/domain/user"
)

type DashboardRepository interface {
	GetOverview(ctx context.Context, scope user.Scope, today time.Time) (Overview, error)
	GetEmployeeOverview(ctx context.Context, userID string, today time.Time) (EmployeeOverview, error)
}
