package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/attendly/attendance-backend-go/internal/domain/attendance"
	"github.com/attendly/attendance-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

type groupRepositoryImpl struct {
	db *database.DB
}

func NewGroupRepository(db *database.DB) attendance.GroupRepository {
	return &groupRepositoryImpl{db: db}
}

// Create implements attendance.GroupRepository.
func (r *groupRepositoryImpl) Create(ctx context.Context, g attendance.Group) (attendance.Group, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO attendance_groups (id, company_id, branch_id, name, description, latitude, longitude, radius_meters, is_active, created_at, updated_at)
		VALUES (uuidv7(), $1, $2, $3, $4, $5, $6, $7, TRUE, NOW(), NOW())
		RETURNING id, company_id, branch_id, name, description, latitude, longitude, radius_meters, is_active, created_at, updated_at
	`

	var result attendance.Group
	err := q.QueryRow(ctx, query,
		g.CompanyID, g.BranchID, g.Name, g.Description, g.Latitude, g.Longitude, g.RadiusMeters,
	).Scan(
		&result.ID,
		&result.CompanyID,
		&result.BranchID,
		&result.Name,
		&result.Description,
		&result.Latitude,
		&result.Longitude,
		&result.RadiusMeters,
		&result.IsActive,
		&result.CreatedAt,
		&result.UpdatedAt,
	)

	if err != nil {
		return attendance.Group{}, fmt.Errorf("failed to create attendance group: %w", err)
	}

	return result, nil
}

// GetByID implements attendance.GroupRepository.
func (r *groupRepositoryImpl) GetByID(ctx context.Context, id string) (attendance.Group, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT g.id, g.company_id, g.branch_id, g.name, g.description, g.latitude, g.longitude,
		       g.radius_meters, g.is_active, g.created_at, g.updated_at,
		       b.name AS branch_name,
		       (SELECT COUNT(*) FROM attendance_group_members m WHERE m.group_id = g.id AND m.removed_at IS NULL)::int AS member_count
		FROM attendance_groups g
		LEFT JOIN branches b ON b.id = g.branch_id
		WHERE g.id = $1
	`

	var result attendance.Group
	err := q.QueryRow(ctx, query, id).Scan(
		&result.ID,
		&result.CompanyID,
		&result.BranchID,
		&result.Name,
		&result.Description,
		&result.Latitude,
		&result.Longitude,
		&result.RadiusMeters,
		&result.IsActive,
		&result.CreatedAt,
		&result.UpdatedAt,
		&result.BranchName,
		&result.MemberCount,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.Group{}, attendance.ErrGroupNotFound
		}
		return attendance.Group{}, fmt.Errorf("failed to get attendance group: %w", err)
	}

	return result, nil
}

// ListByCompanyID implements attendance.GroupRepository.
func (r *groupRepositoryImpl) ListByCompanyID(ctx context.Context, companyID string, branchID *string) ([]attendance.Group, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT g.id, g.company_id, g.branch_id, g.name, g.description, g.latitude, g.longitude,
		       g.radius_meters, g.is_active, g.created_at, g.updated_at,
		       b.name AS branch_name,
		       (SELECT COUNT(*) FROM attendance_group_members m WHERE m.group_id = g.id AND m.removed_at IS NULL)::int AS member_count
		FROM attendance_groups g
		LEFT JOIN branches b ON b.id = g.branch_id
		WHERE g.company_id = $1 AND ($2::uuid IS NULL OR g.branch_id = $2)
		ORDER BY g.name ASC
	`

	rows, err := q.Query(ctx, query, companyID, branchID)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance groups: %w", err)
	}
	defer rows.Close()

	return scanGroups(rows)
}

// ListForUser implements attendance.GroupRepository. Only groups the user is
// an active member of are returned.
func (r *groupRepositoryImpl) ListForUser(ctx context.Context, userID string) ([]attendance.Group, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT g.id, g.company_id, g.branch_id, g.name, g.description, g.latitude, g.longitude,
		       g.radius_meters, g.is_active, g.created_at, g.updated_at,
		       b.name AS branch_name,
		       NULL::int AS member_count
		FROM attendance_groups g
		LEFT JOIN branches b ON b.id = g.branch_id
		JOIN attendance_group_members m ON m.group_id = g.id AND m.user_id = $1 AND m.removed_at IS NULL
		WHERE g.is_active = TRUE
		ORDER BY g.name ASC
	`

	rows, err := q.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list user attendance groups: %w", err)
	}
	defer rows.Close()

	return scanGroups(rows)
}

func scanGroups(rows pgx.Rows) ([]attendance.Group, error) {
	var groups []attendance.Group
	for rows.Next() {
		var g attendance.Group
		err := rows.Scan(
			&g.ID,
			&g.CompanyID,
			&g.BranchID,
			&g.Name,
			&g.Description,
			&g.Latitude,
			&g.Longitude,
			&g.RadiusMeters,
			&g.IsActive,
			&g.CreatedAt,
			&g.UpdatedAt,
			&g.BranchName,
			&g.MemberCount,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan attendance group: %w", err)
		}
		groups = append(groups, g)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return groups, nil
}

// Update implements attendance.GroupRepository.
func (r *groupRepositoryImpl) Update(ctx context.Context, req attendance.UpdateGroupRequest) error {
	q := GetQuerier(ctx, r.db)

	// Build dynamic update query
	query := `UPDATE attendance_groups SET updated_at = NOW()`
	args := []interface{}{}
	argIdx := 1

	if req.Name != nil {
		query += fmt.Sprintf(", name = $%d", argIdx)
		args = append(args, *req.Name)
		argIdx++
	}
	if req.Description != nil {
		query += fmt.Sprintf(", description = $%d", argIdx)
		args = append(args, *req.Description)
		argIdx++
	}
	if req.Latitude != nil {
		query += fmt.Sprintf(", latitude = $%d", argIdx)
		args = append(args, *req.Latitude)
		argIdx++
	}
	if req.Longitude != nil {
		query += fmt.Sprintf(", longitude = $%d", argIdx)
		args = append(args, *req.Longitude)
		argIdx++
	}
	if req.RadiusMeters != nil {
		query += fmt.Sprintf(", radius_meters = $%d", argIdx)
		args = append(args, *req.RadiusMeters)
		argIdx++
	}
	if req.IsActive != nil {
		query += fmt.Sprintf(", is_active = $%d", argIdx)
		args = append(args, *req.IsActive)
		argIdx++
	}

	query += fmt.Sprintf(" WHERE id = $%d AND company_id = $%d", argIdx, argIdx+1)
	args = append(args, req.ID, req.CompanyID)

	commandTag, err := q.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to update attendance group: %w", err)
	}

	if commandTag.RowsAffected() == 0 {
		return attendance.ErrGroupNotFound
	}

	return nil
}

// Delete implements attendance.GroupRepository. Deleting a group with recorded
// check-ins is refused so history stays intact.
func (r *groupRepositoryImpl) Delete(ctx context.Context, id string, companyID string) error {
	q := GetQuerier(ctx, r.db)

	query := `DELETE FROM attendance_groups WHERE id = $1 AND company_id = $2`

	commandTag, err := q.Exec(ctx, query, id, companyID)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" {
			return attendance.ErrGroupHasCheckIns
		}
		return fmt.Errorf("failed to delete attendance group: %w", err)
	}

	if commandTag.RowsAffected() == 0 {
		return attendance.ErrGroupNotFound
	}

	return nil
}

// AssignMember implements attendance.GroupRepository. Re-assigning a removed
// member reactivates the existing row.
func (r *groupRepositoryImpl) AssignMember(ctx context.Context, groupID string, userID string) (attendance.GroupMember, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO attendance_group_members (id, group_id, user_id, is_active, assigned_at)
		VALUES (uuidv7(), $1, $2, TRUE, NOW())
		ON CONFLICT (group_id, user_id)
		DO UPDATE SET is_active = TRUE, assigned_at = NOW(), removed_at = NULL
		RETURNING id, group_id, user_id, is_active, assigned_at, removed_at
	`

	var result attendance.GroupMember
	err := q.QueryRow(ctx, query, groupID, userID).Scan(
		&result.ID,
		&result.GroupID,
		&result.UserID,
		&result.IsActive,
		&result.AssignedAt,
		&result.RemovedAt,
	)

	if err != nil {
		return attendance.GroupMember{}, fmt.Errorf("failed to assign group member: %w", err)
	}

	return result, nil
}

// RemoveMember implements attendance.GroupRepository.
func (r *groupRepositoryImpl) RemoveMember(ctx context.Context, groupID string, userID string) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE attendance_group_members
		SET is_active = FALSE, removed_at = NOW()
		WHERE group_id = $1 AND user_id = $2 AND removed_at IS NULL
	`

	commandTag, err := q.Exec(ctx, query, groupID, userID)
	if err != nil {
		return fmt.Errorf("failed to remove group member: %w", err)
	}

	if commandTag.RowsAffected() == 0 {
		return attendance.ErrNotGroupMember
	}

	return nil
}

// ListMembers implements attendance.GroupRepository.
func (r *groupRepositoryImpl) ListMembers(ctx context.Context, groupID string) ([]attendance.GroupMember, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT m.id, m.group_id, m.user_id, m.is_active, m.assigned_at, m.removed_at,
		       u.full_name AS user_name, u.email AS user_email
		FROM attendance_group_members m
		JOIN users u ON u.id = m.user_id
		WHERE m.group_id = $1 AND m.removed_at IS NULL
		ORDER BY u.full_name ASC
	`

	rows, err := q.Query(ctx, query, groupID)
	if err != nil {
		return nil, fmt.Errorf("failed to list group members: %w", err)
	}
	defer rows.Close()

	var members []attendance.GroupMember
	for rows.Next() {
		var m attendance.GroupMember
		err := rows.Scan(
			&m.ID,
			&m.GroupID,
			&m.UserID,
			&m.IsActive,
			&m.AssignedAt,
			&m.RemovedAt,
			&m.UserName,
			&m.UserEmail,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan group member: %w", err)
		}
		members = append(members, m)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return members, nil
}

// IsActiveMember implements attendance.GroupRepository.
func (r *groupRepositoryImpl) IsActiveMember(ctx context.Context, groupID string, userID string) (bool, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT EXISTS (SELECT 1 FROM attendance_group_members WHERE group_id = $1 AND user_id = $2 AND removed_at IS NULL)`

	var exists bool
	if err := q.QueryRow(ctx, query, groupID, userID).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check group membership: %w", err)
	}

	return exists, nil
}
