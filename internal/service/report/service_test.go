package report

import (
	"bytes"
	"context"
	"encoding/csv"
	"testing"
	"time"

	"github.com/attendly/attendance-backend-go/internal/domain/report"
	"github.com/attendly/attendance-backend-go/internal/domain/user"
	"github.com/attendly/attendance-backend-go/internal/pkg/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeReportRepo struct {
	rows []report.EmployeeAttendanceRow

	gotEmployeeID *string
}

func (f *fakeReportRepo) GetAttendanceRows(ctx context.Context, scope user.Scope, from, to time.Time, departmentID, employeeID *string) ([]report.EmployeeAttendanceRow, error) {
	f.gotEmployeeID = employeeID
	return f.rows, nil
}

func newTestService(repo *fakeReportRepo) *ReportServiceImpl {
	return &ReportServiceImpl{
		ReportRepository: repo,
		now:              func() time.Time { return time.Date(2024, 1, 22, 12, 0, 0, 0, time.UTC) },
	}
}

func strPtr(s string) *string { return &s }

func TestCountWorkingDays(t *testing.T) {
	tests := []struct {
		name string
		from string
		to   string
		want int
	}{
		{"single monday", "2024-01-15", "2024-01-15", 1},
		{"full week", "2024-01-15", "2024-01-21", 5},
		{"weekend only", "2024-01-20", "2024-01-21", 0},
		{"two weeks", "2024-01-08", "2024-01-21", 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			from, _ := time.Parse("2006-01-02", tt.from)
			to, _ := time.Parse("2006-01-02", tt.to)
			assert.Equal(t, tt.want, countWorkingDays(from, to))
		})
	}
}

func TestGenerateAttendanceReport(t *testing.T) {
	managerScope := user.Scope{UserID: "m1", Role: user.RoleCompanyManager, CompanyID: strPtr("c1")}

	t.Run("computes attendance rate over working days", func(t *testing.T) {
		repo := &fakeReportRepo{rows: []report.EmployeeAttendanceRow{
			{UserID: "u1", FullName: "Eko Pratama", DaysPresent: 4, DaysLate: 1, TotalMinutes: 1920, TotalCheckIns: 8},
		}}
		svc := newTestService(repo)

		// Mon 2024-01-15 through Sun 2024-01-21: 5 working days.
		data, err := svc.GenerateAttendanceReport(context.Background(), managerScope, report.AttendanceReportRequest{
			StartDate: "2024-01-15",
			EndDate:   "2024-01-21",
		})
		require.NoError(t, err)

		assert.Equal(t, 5, data.WorkingDays)
		assert.Equal(t, 1, data.TotalEmployees)
		assert.InDelta(t, 80.0, data.Employees[0].AttendanceRate, 0.001)
	})

	t.Run("employee scope is pinned to own records", func(t *testing.T) {
		repo := &fakeReportRepo{}
		svc := newTestService(repo)
		employeeScope := user.Scope{UserID: "u1", Role: user.RoleEmployee, CompanyID: strPtr("c1")}

		_, err := svc.GenerateAttendanceReport(context.Background(), employeeScope, report.AttendanceReportRequest{
			StartDate: "2024-01-15",
			EndDate:   "2024-01-21",
		})
		require.NoError(t, err)
		require.NotNil(t, repo.gotEmployeeID)
		assert.Equal(t, "u1", *repo.gotEmployeeID)
	})

	t.Run("rejects inverted date range", func(t *testing.T) {
		svc := newTestService(&fakeReportRepo{})

		_, err := svc.GenerateAttendanceReport(context.Background(), managerScope, report.AttendanceReportRequest{
			StartDate: "2024-01-21",
			EndDate:   "2024-01-15",
		})
		var verrs validator.ValidationErrors
		require.ErrorAs(t, err, &verrs)
	})
}

func TestWriteAttendanceCSV(t *testing.T) {
	repo := &fakeReportRepo{rows: []report.EmployeeAttendanceRow{
		{
			UserID:         "u1",
			FullName:       "Eko Pratama",
			EmployeeCode:   strPtr("0001-0010"),
			BranchName:     strPtr("Headquarters"),
			DepartmentName: strPtr("Engineering"),
			DaysPresent:    5,
			DaysLate:       0,
			TotalMinutes:   2400,
			TotalCheckIns:  10,
		},
		{UserID: "u2", FullName: "Dewi Lestari", DaysPresent: 3, DaysLate: 2, TotalMinutes: 1350, TotalCheckIns: 6},
	}}
	svc := newTestService(repo)
	scope := user.Scope{UserID: "m1", Role: user.RoleCompanyManager, CompanyID: strPtr("c1")}

	var buf bytes.Buffer
	err := svc.WriteAttendanceCSV(context.Background(), scope, report.AttendanceReportRequest{
		StartDate: "2024-01-15",
		EndDate:   "2024-01-19",
	}, &buf)
	require.NoError(t, err)

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)

	assert.Equal(t, []string{"employee_code", "full_name", "branch", "department", "days_present", "days_late", "total_hours", "total_checkins", "attendance_rate"}, records[0])
	assert.Equal(t, []string{"0001-0010", "Eko Pratama", "Headquarters", "Engineering", "5", "0", "40.00", "10", "100.00"}, records[1])
	// Missing branch and department come through as empty cells.
	assert.Equal(t, "", records[2][2])
	assert.Equal(t, "22.50", records[2][6])
	assert.Equal(t, "60.00", records[2][8])
}
