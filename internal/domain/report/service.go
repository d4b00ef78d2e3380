package report

import (
	"context"
	"io"

	"github.com/attendly/attendance-backend-go/internal/domain/user"
)

type ReportService interface {
	GenerateAttendanceReport(ctx context.Context, scope user.Scope, req AttendanceReportRequest) (AttendanceReport, error)
	// WriteAttendanceCSV streams the same report as CSV rows.
	WriteAttendanceCSV(ctx context.Context, scope user.Scope, req AttendanceReportRequest, w io.Writer) error
}
