package report

import (
	"context"
	"time"

	"github.com/attendly/attendance-backend-go/internal/domain/user"
)

type ReportRepository interface {
	// GetAttendanceRows aggregates daily summaries per employee over the
	// period, restricted by the acting user's scope filters.
	GetAttendanceRows(ctx context.Context, scope user.Scope, from time.Time, to time.Time, departmentID *string, employeeID *string) ([]EmployeeAttendanceRow, error)
}
