package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/attendly/attendance-backend-go/internal/domain/attendance"
	"github.com/attendly/attendance-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type periodRepositoryImpl struct {
	db *database.DB
}

func NewPeriodRepository(db *database.DB) attendance.PeriodRepository {
	return &periodRepositoryImpl{db: db}
}

// Periods store start and end as TIME columns. They travel as HH24:MI text
// and are parsed back into wall-clock time.Time values on scan.
const periodSelectColumns = `
	p.id, p.group_id, p.name,
	to_char(p.start_time, 'HH24:MI') AS start_time,
	to_char(p.end_time, 'HH24:MI') AS end_time,
	p.weekdays, p.late_grace_minutes, p.early_leave_grace_minutes,
	p.is_active, p.created_at, p.updated_at
`

func scanPeriod(row pgx.Row) (attendance.Period, error) {
	var p attendance.Period
	var startStr, endStr string
	err := row.Scan(
		&p.ID,
		&p.GroupID,
		&p.Name,
		&startStr,
		&endStr,
		&p.Weekdays,
		&p.LateGraceMinutes,
		&p.EarlyLeaveGraceMinutes,
		&p.IsActive,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		return attendance.Period{}, err
	}

	if p.StartTime, err = time.Parse("15:04", startStr); err != nil {
		return attendance.Period{}, fmt.Errorf("invalid start_time %q: %w", startStr, err)
	}
	if p.EndTime, err = time.Parse("15:04", endStr); err != nil {
		return attendance.Period{}, fmt.Errorf("invalid end_time %q: %w", endStr, err)
	}

	return p, nil
}

// Create implements attendance.PeriodRepository.
func (r *periodRepositoryImpl) Create(ctx context.Context, p attendance.Period) (attendance.Period, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO periods (id, group_id, name, start_time, end_time, weekdays, late_grace_minutes, early_leave_grace_minutes, is_active, created_at, updated_at)
		VALUES (uuidv7(), $1, $2, $3::time, $4::time, $5, $6, $7, TRUE, NOW(), NOW())
		RETURNING
			id, group_id, name,
			to_char(start_time, 'HH24:MI') AS start_time,
			to_char(end_time, 'HH24:MI') AS end_time,
			weekdays, late_grace_minutes, early_leave_grace_minutes,
			is_active, created_at, updated_at
	`

	result, err := scanPeriod(q.QueryRow(ctx, query,
		p.GroupID, p.Name,
		p.StartTime.Format("15:04"), p.EndTime.Format("15:04"),
		p.Weekdays, p.LateGraceMinutes, p.EarlyLeaveGraceMinutes,
	))
	if err != nil {
		return attendance.Period{}, fmt.Errorf("failed to create period: %w", err)
	}

	return result, nil
}

// GetByID implements attendance.PeriodRepository.
func (r *periodRepositoryImpl) GetByID(ctx context.Context, id string) (attendance.Period, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + periodSelectColumns + ` FROM periods p WHERE p.id = $1`

	p, err := scanPeriod(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.Period{}, attendance.ErrPeriodNotFound
		}
		return attendance.Period{}, fmt.Errorf("failed to get period: %w", err)
	}

	return p, nil
}

// ListByGroupID implements attendance.PeriodRepository. Periods come back in
// start-time order so the first match wins during validation.
func (r *periodRepositoryImpl) ListByGroupID(ctx context.Context, groupID string) ([]attendance.Period, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + periodSelectColumns + ` FROM periods p WHERE p.group_id = $1 ORDER BY p.start_time ASC`

	rows, err := q.Query(ctx, query, groupID)
	if err != nil {
		return nil, fmt.Errorf("failed to list periods: %w", err)
	}
	defer rows.Close()

	var periods []attendance.Period
	for rows.Next() {
		p, err := scanPeriod(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan period: %w", err)
		}
		periods = append(periods, p)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return periods, nil
}

// Update implements attendance.PeriodRepository.
func (r *periodRepositoryImpl) Update(ctx context.Context, req attendance.UpdatePeriodRequest) error {
	q := GetQuerier(ctx, r.db)

	// Build dynamic update query
	query := `UPDATE periods SET updated_at = NOW()`
	args := []interface{}{}
	argIdx := 1

	if req.Name != nil {
		query += fmt.Sprintf(", name = $%d", argIdx)
		args = append(args, *req.Name)
		argIdx++
	}
	if req.StartTime != nil {
		query += fmt.Sprintf(", start_time = $%d::time", argIdx)
		args = append(args, *req.StartTime)
		argIdx++
	}
	if req.EndTime != nil {
		query += fmt.Sprintf(", end_time = $%d::time", argIdx)
		args = append(args, *req.EndTime)
		argIdx++
	}
	if req.Weekdays != nil {
		query += fmt.Sprintf(", weekdays = $%d", argIdx)
		args = append(args, *req.Weekdays)
		argIdx++
	}
	if req.LateGraceMinutes != nil {
		query += fmt.Sprintf(", late_grace_minutes = $%d", argIdx)
		args = append(args, *req.LateGraceMinutes)
		argIdx++
	}
	if req.EarlyLeaveGraceMinutes != nil {
		query += fmt.Sprintf(", early_leave_grace_minutes = $%d", argIdx)
		args = append(args, *req.EarlyLeaveGraceMinutes)
		argIdx++
	}
	if req.IsActive != nil {
		query += fmt.Sprintf(", is_active = $%d", argIdx)
		args = append(args, *req.IsActive)
		argIdx++
	}

	query += fmt.Sprintf(" WHERE id = $%d", argIdx)
	args = append(args, req.ID)

	commandTag, err := q.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to update period: %w", err)
	}

	if commandTag.RowsAffected() == 0 {
		return attendance.ErrPeriodNotFound
	}

	return nil
}

// Delete implements attendance.PeriodRepository.
func (r *periodRepositoryImpl) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	query := `DELETE FROM periods WHERE id = $1`

	commandTag, err := q.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete period: %w", err)
	}

	if commandTag.RowsAffected() == 0 {
		return attendance.ErrPeriodNotFound
	}

	return nil
}
