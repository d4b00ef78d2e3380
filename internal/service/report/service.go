package report

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"strconv"
	"time"

	"github.com/attendly/attendance-backend-go/internal/domain/report"
	"github.com/attendly/attendance-backend-go/internal/domain/user"
)

type ReportServiceImpl struct {
	report.ReportRepository

	now func() time.Time
}

func NewReportService(reportRepository report.ReportRepository) report.ReportService {
	return &ReportServiceImpl{
		ReportRepository: reportRepository,
		now:              time.Now,
	}
}

// countWorkingDays counts Monday through Friday in the inclusive range.
func countWorkingDays(from, to time.Time) int {
	days := 0
	for d := from; !d.After(to); d = d.AddDate(0, 0, 1) {
		if wd := d.Weekday(); wd != time.Saturday && wd != time.Sunday {
			days++
		}
	}
	return days
}

// GenerateAttendanceReport implements report.ReportService.
func (s *ReportServiceImpl) GenerateAttendanceReport(ctx context.Context, scope user.Scope, req report.AttendanceReportRequest) (report.AttendanceReport, error) {
	if err := req.Validate(); err != nil {
		return report.AttendanceReport{}, err
	}
	if scope.SelfOnly() {
		// Employees get a report over their own records only.
		req.EmployeeID = &scope.UserID
	}

	from, to := req.Period()
	rows, err := s.ReportRepository.GetAttendanceRows(ctx, scope, from, to, req.DepartmentID, req.EmployeeID)
	if err != nil {
		return report.AttendanceReport{}, err
	}

	workingDays := countWorkingDays(from, to)
	for i := range rows {
		if workingDays > 0 {
			rate := float64(rows[i].DaysPresent) / float64(workingDays) * 100
			rows[i].AttendanceRate = math.Round(rate*100) / 100
		}
	}

	return report.AttendanceReport{
		PeriodStart:    req.StartDate,
		PeriodEnd:      req.EndDate,
		WorkingDays:    workingDays,
		GeneratedAt:    s.now().Format(time.RFC3339),
		TotalEmployees: len(rows),
		Employees:      rows,
	}, nil
}

// WriteAttendanceCSV implements report.ReportService.
func (s *ReportServiceImpl) WriteAttendanceCSV(ctx context.Context, scope user.Scope, req report.AttendanceReportRequest, w io.Writer) error {
	data, err := s.GenerateAttendanceReport(ctx, scope, req)
	if err != nil {
		return err
	}

	cw := csv.NewWriter(w)
	header := []string{"employee_code", "full_name", "branch", "department", "days_present", "days_late", "total_hours", "total_checkins", "attendance_rate"}
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("failed to write csv header: %w", err)
	}

	for _, row := range data.Employees {
		record := []string{
			deref(row.EmployeeCode),
			row.FullName,
			deref(row.BranchName),
			deref(row.DepartmentName),
			strconv.Itoa(row.DaysPresent),
			strconv.Itoa(row.DaysLate),
			fmt.Sprintf("%.2f", float64(row.TotalMinutes)/60),
			strconv.Itoa(row.TotalCheckIns),
			fmt.Sprintf("%.2f", row.AttendanceRate),
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("failed to write csv row: %w", err)
		}
	}

	cw.Flush()
	return cw.Error()
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
