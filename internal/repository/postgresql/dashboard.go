package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/attendly/attendance-backend-go/internal/domain/dashboard"
	"github.com/attendly/attendance-backend-go/internal/domain/user"
	"github.com/attendly/attendance-backend-go/internal/pkg/database"
)

type dashboardRepositoryImpl struct {
	db *database.DB
}

func NewDashboardRepository(db *database.DB) dashboard.DashboardRepository {
	return &dashboardRepositoryImpl{db: db}
}

// GetOverview implements dashboard.DashboardRepository. The scope filters
// narrow every count the same way listing endpoints are narrowed.
func (r *dashboardRepositoryImpl) GetOverview(ctx context.Context, scope user.Scope, today time.Time) (dashboard.Overview, error) {
	q := GetQuerier(ctx, r.db)

	args := []interface{}{today}
	argIdx := 2

	userWhere := `u.is_active = TRUE AND u.role != 'SUPER_ADMIN'`
	groupWhere := `TRUE`
	branchWhere := `TRUE`

	if companyID := scope.CompanyFilter(); companyID != nil {
		p := fmt.Sprintf("$%d", argIdx)
		userWhere += ` AND u.company_id = ` + p
		groupWhere += ` AND g.company_id = ` + p
		branchWhere += ` AND b.company_id = ` + p
		args = append(args, *companyID)
		argIdx++
	}
	if branchID := scope.BranchFilter(); branchID != nil {
		p := fmt.Sprintf("$%d", argIdx)
		userWhere += ` AND u.branch_id = ` + p
		groupWhere += ` AND g.branch_id = ` + p
		branchWhere += ` AND b.id = ` + p
		args = append(args, *branchID)
		argIdx++
	}

	query := fmt.Sprintf(`
		SELECT
			(SELECT COUNT(*) FROM users u WHERE %[1]s)::int AS total_employees,
			(SELECT COUNT(*) FROM branches b WHERE %[3]s)::int AS total_branches,
			(SELECT COUNT(*) FROM attendance_groups g WHERE %[2]s)::int AS total_groups,
			(SELECT COUNT(*) FROM checkins ci JOIN attendance_groups g ON g.id = ci.group_id
				WHERE %[2]s AND ci.recorded_at::date = $1::date)::int AS checkins_today,
			(SELECT COUNT(DISTINCT s.user_id) FROM attendance_summaries s JOIN attendance_groups g ON g.id = s.group_id
				WHERE %[2]s AND s.date = $1::date AND s.is_present)::int AS present_today,
			(SELECT COUNT(DISTINCT s.user_id) FROM attendance_summaries s JOIN attendance_groups g ON g.id = s.group_id
				WHERE %[2]s AND s.date = $1::date AND s.is_late)::int AS late_today,
			(SELECT COUNT(*) FROM checkins ci JOIN attendance_groups g ON g.id = ci.group_id
				WHERE %[2]s AND ci.recorded_at::date = $1::date
				  AND ci.status IN ('INVALID_LOCATION', 'INVALID_TIME'))::int AS invalid_today,
			(SELECT COUNT(*) FROM periods p JOIN attendance_groups g ON g.id = p.group_id
				WHERE %[2]s AND p.is_active)::int AS active_periods,
			(SELECT COUNT(DISTINCT s.user_id) FROM attendance_summaries s JOIN attendance_groups g ON g.id = s.group_id
				WHERE %[2]s AND s.date = $1::date AND s.first_in IS NOT NULL AND s.last_out IS NULL)::int AS pending_checkout
	`, userWhere, groupWhere, branchWhere)

	var o dashboard.Overview
	err := q.QueryRow(ctx, query, args...).Scan(
		&o.TotalEmployees,
		&o.TotalBranches,
		&o.TotalGroups,
		&o.CheckInsToday,
		&o.PresentToday,
		&o.LateToday,
		&o.InvalidToday,
		&o.ActivePeriods,
		&o.PendingCheckOut,
	)
	if err != nil {
		return dashboard.Overview{}, fmt.Errorf("failed to get dashboard overview: %w", err)
	}

	return o, nil
}

// GetEmployeeOverview implements dashboard.DashboardRepository.
func (r *dashboardRepositoryImpl) GetEmployeeOverview(ctx context.Context, userID string, today time.Time) (dashboard.EmployeeOverview, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT
			EXISTS (SELECT 1 FROM attendance_summaries s WHERE s.user_id = $1 AND s.date = $2::date AND s.first_in IS NOT NULL) AS checked_in_today,
			EXISTS (SELECT 1 FROM attendance_summaries s WHERE s.user_id = $1 AND s.date = $2::date AND s.last_out IS NOT NULL) AS checked_out_today,
			(SELECT COUNT(DISTINCT s.date) FROM attendance_summaries s
				WHERE s.user_id = $1 AND s.date >= date_trunc('week', $2::date)::date AND s.date <= $2::date AND s.is_present)::int AS week_days_present,
			(SELECT COUNT(DISTINCT s.date) FROM attendance_summaries s
				WHERE s.user_id = $1 AND s.date >= date_trunc('week', $2::date)::date AND s.date <= $2::date AND s.is_late)::int AS week_days_late,
			(SELECT COUNT(DISTINCT s.date) FROM attendance_summaries s
				WHERE s.user_id = $1 AND s.date >= date_trunc('month', $2::date)::date AND s.date <= $2::date AND s.is_present)::int AS month_days_present,
			(SELECT COUNT(DISTINCT s.date) FROM attendance_summaries s
				WHERE s.user_id = $1 AND s.date >= date_trunc('month', $2::date)::date AND s.date <= $2::date AND s.is_late)::int AS month_days_late,
			(SELECT COALESCE(SUM(s.total_minutes), 0) FROM attendance_summaries s
				WHERE s.user_id = $1 AND s.date >= date_trunc('month', $2::date)::date AND s.date <= $2::date)::int AS month_minutes
	`

	var o dashboard.EmployeeOverview
	err := q.QueryRow(ctx, query, userID, today).Scan(
		&o.CheckedInToday,
		&o.CheckedOutToday,
		&o.WeekDaysPresent,
		&o.WeekDaysLate,
		&o.MonthDaysPresent,
		&o.MonthDaysLate,
		&o.MonthMinutes,
	)
	if err != nil {
		return dashboard.EmployeeOverview{}, fmt.Errorf("failed to get employee overview: %w", err)
	}

	if o.MonthDaysPresent > 0 {
		o.AvgDailyMinutes = float64(o.MonthMinutes) / float64(o.MonthDaysPresent)
	}

	groupsQuery := `
		SELECT g.name
		FROM attendance_groups g
		JOIN attendance_group_members m ON m.group_id = g.id AND m.user_id = $1 AND m.removed_at IS NULL
		WHERE g.is_active = TRUE
		ORDER BY g.name ASC
	`

	rows, err := q.Query(ctx, groupsQuery, userID)
	if err != nil {
		return dashboard.EmployeeOverview{}, fmt.Errorf("failed to list member groups: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return dashboard.EmployeeOverview{}, fmt.Errorf("failed to scan group name: %w", err)
		}
		o.GroupNames = append(o.GroupNames, name)
	}

	if err = rows.Err(); err != nil {
		return dashboard.EmployeeOverview{}, fmt.Errorf("rows iteration error: %w", err)
	}

	return o, nil
}
