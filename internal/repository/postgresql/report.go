package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/attendly/attendance-backend-go/internal/domain/report"
	"github.com/attendly/attendance-backend-go/internal/domain/user"
	"github.com/attendly/attendance-backend-go/internal/pkg/database"
)

type reportRepositoryImpl struct {
	db *database.DB
}

func NewReportRepository(db *database.DB) report.ReportRepository {
	return &reportRepositoryImpl{db: db}
}

// GetAttendanceRows implements report.ReportRepository. One row per active
// employee in scope, with zeroes when no summary exists in the period. The
// attendance rate is computed against working days by the service, so only
// raw aggregates come back here.
func (r *reportRepositoryImpl) GetAttendanceRows(ctx context.Context, scope user.Scope, from time.Time, to time.Time, departmentID *string, employeeID *string) ([]report.EmployeeAttendanceRow, error) {
	q := GetQuerier(ctx, r.db)

	where := ` WHERE u.is_active = TRUE AND u.role != 'SUPER_ADMIN'`
	args := []interface{}{from, to}
	argIdx := 3

	if companyID := scope.CompanyFilter(); companyID != nil {
		where += fmt.Sprintf(" AND u.company_id = $%d", argIdx)
		args = append(args, *companyID)
		argIdx++
	}
	if branchID := scope.BranchFilter(); branchID != nil {
		where += fmt.Sprintf(" AND u.branch_id = $%d", argIdx)
		args = append(args, *branchID)
		argIdx++
	}
	if scope.SelfOnly() {
		where += fmt.Sprintf(" AND u.id = $%d", argIdx)
		args = append(args, scope.UserID)
		argIdx++
	}
	if departmentID != nil {
		where += fmt.Sprintf(` AND EXISTS (
			SELECT 1 FROM department_memberships dm
			WHERE dm.user_id = u.id AND dm.department_id = $%d AND dm.left_at IS NULL
		)`, argIdx)
		args = append(args, *departmentID)
		argIdx++
	}
	if employeeID != nil {
		where += fmt.Sprintf(" AND u.id = $%d", argIdx)
		args = append(args, *employeeID)
		argIdx++
	}

	query := `
		SELECT u.id, u.full_name, u.employee_code,
		       b.name AS branch_name,
		       (
		           SELECT d.name FROM department_memberships dm
		           JOIN departments d ON d.id = dm.department_id
		           WHERE dm.user_id = u.id AND dm.left_at IS NULL
		           ORDER BY dm.joined_at DESC LIMIT 1
		       ) AS department_name,
		       COALESCE(agg.days_present, 0) AS days_present,
		       COALESCE(agg.days_late, 0) AS days_late,
		       COALESCE(agg.total_minutes, 0) AS total_minutes,
		       COALESCE(agg.total_checkins, 0) AS total_checkins
		FROM users u
		LEFT JOIN branches b ON b.id = u.branch_id
		LEFT JOIN LATERAL (
			SELECT
				COUNT(DISTINCT s.date) FILTER (WHERE s.is_present) AS days_present,
				COUNT(DISTINCT s.date) FILTER (WHERE s.is_late) AS days_late,
				COALESCE(SUM(s.total_minutes), 0)::int AS total_minutes,
				COALESCE(SUM(s.total_checkins), 0)::int AS total_checkins
			FROM attendance_summaries s
			WHERE s.user_id = u.id AND s.date BETWEEN $1::date AND $2::date
		) agg ON TRUE
	` + where + ` ORDER BY u.full_name ASC`

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query attendance rows: %w", err)
	}
	defer rows.Close()

	var result []report.EmployeeAttendanceRow
	for rows.Next() {
		var row report.EmployeeAttendanceRow
		err := rows.Scan(
			&row.UserID,
			&row.FullName,
			&row.EmployeeCode,
			&row.BranchName,
			&row.DepartmentName,
			&row.DaysPresent,
			&row.DaysLate,
			&row.TotalMinutes,
			&row.TotalCheckIns,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan attendance row: %w", err)
		}
		result = append(result, row)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return result, nil
}
