package report

import (
	"time"

	"github.com/attendly/attendance-backend-go/internal/pkg/validator"
)

// AttendanceReportRequest represents the request structure for the
// attendance report.
type AttendanceReportRequest struct {
	StartDate    string  `json:"start_date"` // "YYYY-MM-DD"
	EndDate      string  `json:"end_date"`   // "YYYY-MM-DD"
	DepartmentID *string `json:"department_id,omitempty"`
	EmployeeID   *string `json:"employee_id,omitempty"`
}

func (r *AttendanceReportRequest) Validate() error {
	var errs validator.ValidationErrors

	start, startOK := validator.IsValidDate(r.StartDate)
	if !startOK {
		errs = append(errs, validator.ValidationError{Field: "start_date", Message: "start_date must be in YYYY-MM-DD format"})
	}
	end, endOK := validator.IsValidDate(r.EndDate)
	if !endOK {
		errs = append(errs, validator.ValidationError{Field: "end_date", Message: "end_date must be in YYYY-MM-DD format"})
	}
	if startOK && endOK && end.Before(start) {
		errs = append(errs, validator.ValidationError{Field: "end_date", Message: "end_date must not be before start_date"})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// Period returns the parsed report date range. Validate must have passed.
func (r *AttendanceReportRequest) Period() (time.Time, time.Time) {
	start, _ := time.Parse("2006-01-02", r.StartDate)
	end, _ := time.Parse("2006-01-02", r.EndDate)
	return start, end
}

// EmployeeAttendanceRow is one employee's aggregate over the report period.
type EmployeeAttendanceRow struct {
	UserID         string  `json:"user_id"`
	FullName       string  `json:"full_name"`
	EmployeeCode   *string `json:"employee_code,omitempty"`
	BranchName     *string `json:"branch_name,omitempty"`
	DepartmentName *string `json:"department_name,omitempty"`
	DaysPresent    int     `json:"days_present"`
	DaysLate       int     `json:"days_late"`
	TotalMinutes   int     `json:"total_minutes"`
	TotalCheckIns  int     `json:"total_checkins"`
	AttendanceRate float64 `json:"attendance_rate"`
}

// AttendanceReport is the full report payload.
type AttendanceReport struct {
	PeriodStart    string                  `json:"period_start"`
	PeriodEnd      string                  `json:"period_end"`
	WorkingDays    int                     `json:"working_days"`
	GeneratedAt    string                  `json:"generated_at"`
	TotalEmployees int                     `json:"total_employees"`
	Employees      []EmployeeAttendanceRow `json:"employees"`
}
