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

type summaryRepositoryImpl struct {
	db *database.DB
}

func NewSummaryRepository(db *database.DB) attendance.SummaryRepository {
	return &summaryRepositoryImpl{db: db}
}

// GetByUserGroupDate implements attendance.SummaryRepository.
func (r *summaryRepositoryImpl) GetByUserGroupDate(ctx context.Context, userID string, groupID string, date time.Time) (attendance.Summary, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, user_id, group_id, date, first_in, last_out, total_minutes, total_checkins, is_present, is_late, created_at, updated_at
		FROM attendance_summaries
		WHERE user_id = $1 AND group_id = $2 AND date = $3::date
	`

	var s attendance.Summary
	err := q.QueryRow(ctx, query, userID, groupID, date).Scan(
		&s.ID,
		&s.UserID,
		&s.GroupID,
		&s.Date,
		&s.FirstIn,
		&s.LastOut,
		&s.TotalMinutes,
		&s.TotalCheckIns,
		&s.IsPresent,
		&s.IsLate,
		&s.CreatedAt,
		&s.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.Summary{}, attendance.ErrSummaryNotFound
		}
		return attendance.Summary{}, fmt.Errorf("failed to get summary: %w", err)
	}

	return s, nil
}

// Upsert implements attendance.SummaryRepository. One row exists per user,
// group and date; repeated check-ins on the same day fold into it.
func (r *summaryRepositoryImpl) Upsert(ctx context.Context, s attendance.Summary) (attendance.Summary, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO attendance_summaries (id, user_id, group_id, date, first_in, last_out, total_minutes, total_checkins, is_present, is_late, created_at, updated_at)
		VALUES (uuidv7(), $1, $2, $3::date, $4, $5, $6, $7, $8, $9, NOW(), NOW())
		ON CONFLICT (user_id, group_id, date)
		DO UPDATE SET
			first_in = LEAST(COALESCE(attendance_summaries.first_in, EXCLUDED.first_in), EXCLUDED.first_in),
			last_out = GREATEST(COALESCE(attendance_summaries.last_out, EXCLUDED.last_out), EXCLUDED.last_out),
			total_minutes = EXCLUDED.total_minutes,
			total_checkins = attendance_summaries.total_checkins + 1,
			is_present = attendance_summaries.is_present OR EXCLUDED.is_present,
			is_late = attendance_summaries.is_late OR EXCLUDED.is_late,
			updated_at = NOW()
		RETURNING id, user_id, group_id, date, first_in, last_out, total_minutes, total_checkins, is_present, is_late, created_at, updated_at
	`

	var result attendance.Summary
	err := q.QueryRow(ctx, query,
		s.UserID, s.GroupID, s.Date, s.FirstIn, s.LastOut,
		s.TotalMinutes, s.TotalCheckIns, s.IsPresent, s.IsLate,
	).Scan(
		&result.ID,
		&result.UserID,
		&result.GroupID,
		&result.Date,
		&result.FirstIn,
		&result.LastOut,
		&result.TotalMinutes,
		&result.TotalCheckIns,
		&result.IsPresent,
		&result.IsLate,
		&result.CreatedAt,
		&result.UpdatedAt,
	)

	if err != nil {
		return attendance.Summary{}, fmt.Errorf("failed to upsert summary: %w", err)
	}

	return result, nil
}

// ListForUser implements attendance.SummaryRepository.
func (r *summaryRepositoryImpl) ListForUser(ctx context.Context, userID string, from time.Time, to time.Time) ([]attendance.Summary, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT s.id, s.user_id, s.group_id, s.date, s.first_in, s.last_out, s.total_minutes, s.total_checkins, s.is_present, s.is_late, s.created_at, s.updated_at,
		       u.full_name AS user_name
		FROM attendance_summaries s
		JOIN users u ON u.id = s.user_id
		WHERE s.user_id = $1 AND s.date BETWEEN $2::date AND $3::date
		ORDER BY s.date DESC
	`

	rows, err := q.Query(ctx, query, userID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to list summaries: %w", err)
	}
	defer rows.Close()

	var summaries []attendance.Summary
	for rows.Next() {
		var s attendance.Summary
		err := rows.Scan(
			&s.ID,
			&s.UserID,
			&s.GroupID,
			&s.Date,
			&s.FirstIn,
			&s.LastOut,
			&s.TotalMinutes,
			&s.TotalCheckIns,
			&s.IsPresent,
			&s.IsLate,
			&s.CreatedAt,
			&s.UpdatedAt,
			&s.UserName,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan summary: %w", err)
		}
		summaries = append(summaries, s)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return summaries, nil
}
