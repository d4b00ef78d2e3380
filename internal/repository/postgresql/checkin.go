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

type checkInRepositoryImpl struct {
	db *database.DB
}

func NewCheckInRepository(db *database.DB) attendance.CheckInRepository {
	return &checkInRepositoryImpl{db: db}
}

const checkInSelectColumns = `
	ci.id, ci.user_id, ci.group_id, ci.period_id, ci.type, ci.recorded_at,
	ci.latitude, ci.longitude, ci.distance_meters, ci.status, ci.notes,
	ci.ip_address, ci.user_agent, ci.created_at,
	u.full_name AS user_name, g.name AS group_name
`

func scanCheckIn(row pgx.Row) (attendance.CheckIn, error) {
	var c attendance.CheckIn
	err := row.Scan(
		&c.ID,
		&c.UserID,
		&c.GroupID,
		&c.PeriodID,
		&c.Type,
		&c.RecordedAt,
		&c.Latitude,
		&c.Longitude,
		&c.DistanceMeters,
		&c.Status,
		&c.Notes,
		&c.IPAddress,
		&c.UserAgent,
		&c.CreatedAt,
		&c.UserName,
		&c.GroupName,
	)
	return c, err
}

// Create implements attendance.CheckInRepository.
func (r *checkInRepositoryImpl) Create(ctx context.Context, c attendance.CheckIn) (attendance.CheckIn, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO checkins (id, user_id, group_id, period_id, type, recorded_at, latitude, longitude, distance_meters, status, notes, ip_address, user_agent, created_at)
		VALUES (uuidv7(), $1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, NOW())
		RETURNING id, user_id, group_id, period_id, type, recorded_at, latitude, longitude, distance_meters, status, notes, ip_address, user_agent, created_at
	`

	var result attendance.CheckIn
	err := q.QueryRow(ctx, query,
		c.UserID, c.GroupID, c.PeriodID, c.Type, c.RecordedAt,
		c.Latitude, c.Longitude, c.DistanceMeters, c.Status, c.Notes,
		c.IPAddress, c.UserAgent,
	).Scan(
		&result.ID,
		&result.UserID,
		&result.GroupID,
		&result.PeriodID,
		&result.Type,
		&result.RecordedAt,
		&result.Latitude,
		&result.Longitude,
		&result.DistanceMeters,
		&result.Status,
		&result.Notes,
		&result.IPAddress,
		&result.UserAgent,
		&result.CreatedAt,
	)

	if err != nil {
		return attendance.CheckIn{}, fmt.Errorf("failed to create checkin: %w", err)
	}

	return result, nil
}

// GetByID implements attendance.CheckInRepository.
func (r *checkInRepositoryImpl) GetByID(ctx context.Context, id string) (attendance.CheckIn, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + checkInSelectColumns + `
		FROM checkins ci
		JOIN users u ON u.id = ci.user_id
		JOIN attendance_groups g ON g.id = ci.group_id
		WHERE ci.id = $1
	`

	c, err := scanCheckIn(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.CheckIn{}, attendance.ErrCheckInNotFound
		}
		return attendance.CheckIn{}, fmt.Errorf("failed to get checkin: %w", err)
	}

	return c, nil
}

// HasCheckInOn implements attendance.CheckInRepository. Only records with a
// valid status count; an INVALID_LOCATION attempt does not burn the day.
func (r *checkInRepositoryImpl) HasCheckInOn(ctx context.Context, userID string, groupID string, date time.Time, typ attendance.CheckInType) (bool, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT EXISTS (
			SELECT 1 FROM checkins
			WHERE user_id = $1 AND group_id = $2 AND type = $3
			  AND recorded_at::date = $4::date
			  AND status NOT IN ('INVALID_LOCATION', 'INVALID_TIME')
		)
	`

	var exists bool
	if err := q.QueryRow(ctx, query, userID, groupID, typ, date).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check existing checkin: %w", err)
	}

	return exists, nil
}

// ListForUser implements attendance.CheckInRepository.
func (r *checkInRepositoryImpl) ListForUser(ctx context.Context, userID string, from time.Time, to time.Time) ([]attendance.CheckIn, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + checkInSelectColumns + `
		FROM checkins ci
		JOIN users u ON u.id = ci.user_id
		JOIN attendance_groups g ON g.id = ci.group_id
		WHERE ci.user_id = $1 AND ci.recorded_at::date BETWEEN $2::date AND $3::date
		ORDER BY ci.recorded_at DESC
	`

	rows, err := q.Query(ctx, query, userID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to list checkins: %w", err)
	}
	defer rows.Close()

	var checkins []attendance.CheckIn
	for rows.Next() {
		c, err := scanCheckIn(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan checkin: %w", err)
		}
		checkins = append(checkins, c)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return checkins, nil
}

// ListByCompanyID implements attendance.CheckInRepository.
func (r *checkInRepositoryImpl) ListByCompanyID(ctx context.Context, companyID string, branchID *string, filter attendance.ListCheckInsFilter) ([]attendance.CheckIn, int64, error) {
	q := GetQuerier(ctx, r.db)

	where := ` WHERE g.company_id = $1`
	args := []interface{}{companyID}
	argIdx := 2

	if branchID != nil {
		where += fmt.Sprintf(" AND g.branch_id = $%d", argIdx)
		args = append(args, *branchID)
		argIdx++
	}
	if filter.UserID != nil {
		where += fmt.Sprintf(" AND ci.user_id = $%d", argIdx)
		args = append(args, *filter.UserID)
		argIdx++
	}
	if filter.GroupID != nil {
		where += fmt.Sprintf(" AND ci.group_id = $%d", argIdx)
		args = append(args, *filter.GroupID)
		argIdx++
	}
	if filter.Type != nil {
		where += fmt.Sprintf(" AND ci.type = $%d", argIdx)
		args = append(args, *filter.Type)
		argIdx++
	}
	if filter.Date != nil {
		where += fmt.Sprintf(" AND ci.recorded_at::date = $%d::date", argIdx)
		args = append(args, *filter.Date)
		argIdx++
	}

	countQuery := `
		SELECT COUNT(*)
		FROM checkins ci
		JOIN attendance_groups g ON g.id = ci.group_id
	` + where
	var total int64
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count checkins: %w", err)
	}

	query := `
		SELECT ` + checkInSelectColumns + `
		FROM checkins ci
		JOIN users u ON u.id = ci.user_id
		JOIN attendance_groups g ON g.id = ci.group_id
	` + where + fmt.Sprintf(" ORDER BY ci.recorded_at DESC LIMIT $%d OFFSET $%d", argIdx, argIdx+1)
	args = append(args, filter.Limit, (filter.Page-1)*filter.Limit)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list checkins: %w", err)
	}
	defer rows.Close()

	var checkins []attendance.CheckIn
	for rows.Next() {
		c, err := scanCheckIn(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan checkin: %w", err)
		}
		checkins = append(checkins, c)
	}

	if err = rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("rows iteration error: %w", err)
	}

	return checkins, total, nil
}
