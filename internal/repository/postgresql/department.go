package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/attendly/attendance-backend-go/internal/domain/department"
	"github.com/attendly/attendance-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

type departmentRepositoryImpl struct {
	db *database.DB
}

func NewDepartmentRepository(db *database.DB) department.DepartmentRepository {
	return &departmentRepositoryImpl{db: db}
}

// Create implements department.DepartmentRepository.
func (r *departmentRepositoryImpl) Create(ctx context.Context, d department.Department) (department.Department, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO departments (id, branch_id, name, code, description, head_user_id, is_active, created_at, updated_at)
		VALUES (uuidv7(), $1, $2, $3, $4, $5, TRUE, NOW(), NOW())
		RETURNING id, branch_id, name, code, description, head_user_id, is_active, created_at, updated_at
	`

	var result department.Department
	err := q.QueryRow(ctx, query,
		d.BranchID, d.Name, d.Code, d.Description, d.HeadUserID,
	).Scan(
		&result.ID,
		&result.BranchID,
		&result.Name,
		&result.Code,
		&result.Description,
		&result.HeadUserID,
		&result.IsActive,
		&result.CreatedAt,
		&result.UpdatedAt,
	)

	if err != nil {
		return department.Department{}, fmt.Errorf("failed to create department: %w", err)
	}

	return result, nil
}

// GetByID implements department.DepartmentRepository. The owning company is
// joined in so services can check scope without a second query.
func (r *departmentRepositoryImpl) GetByID(ctx context.Context, id string) (department.Department, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT d.id, d.branch_id, d.name, d.code, d.description, d.head_user_id, d.is_active, d.created_at, d.updated_at,
		       b.company_id, b.name AS branch_name,
		       (SELECT COUNT(*) FROM department_memberships dm WHERE dm.department_id = d.id AND dm.left_at IS NULL)::int AS member_count
		FROM departments d
		JOIN branches b ON b.id = d.branch_id
		WHERE d.id = $1
	`

	var result department.Department
	err := q.QueryRow(ctx, query, id).Scan(
		&result.ID,
		&result.BranchID,
		&result.Name,
		&result.Code,
		&result.Description,
		&result.HeadUserID,
		&result.IsActive,
		&result.CreatedAt,
		&result.UpdatedAt,
		&result.CompanyID,
		&result.BranchName,
		&result.MemberCount,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return department.Department{}, department.ErrDepartmentNotFound
		}
		return department.Department{}, fmt.Errorf("failed to get department: %w", err)
	}

	return result, nil
}

// ListByBranchID implements department.DepartmentRepository.
func (r *departmentRepositoryImpl) ListByBranchID(ctx context.Context, branchID string) ([]department.Department, error) {
	return r.list(ctx, ` WHERE d.branch_id = $1`, branchID)
}

// ListByCompanyID implements department.DepartmentRepository.
func (r *departmentRepositoryImpl) ListByCompanyID(ctx context.Context, companyID string, branchID *string) ([]department.Department, error) {
	if branchID != nil {
		return r.list(ctx, ` WHERE b.company_id = $1 AND d.branch_id = $2`, companyID, *branchID)
	}
	return r.list(ctx, ` WHERE b.company_id = $1`, companyID)
}

func (r *departmentRepositoryImpl) list(ctx context.Context, where string, args ...interface{}) ([]department.Department, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT d.id, d.branch_id, d.name, d.code, d.description, d.head_user_id, d.is_active, d.created_at, d.updated_at,
		       b.company_id, b.name AS branch_name,
		       (SELECT COUNT(*) FROM department_memberships dm WHERE dm.department_id = d.id AND dm.left_at IS NULL)::int AS member_count
		FROM departments d
		JOIN branches b ON b.id = d.branch_id
	` + where + ` ORDER BY d.name ASC`

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list departments: %w", err)
	}
	defer rows.Close()

	var departments []department.Department
	for rows.Next() {
		var d department.Department
		err := rows.Scan(
			&d.ID,
			&d.BranchID,
			&d.Name,
			&d.Code,
			&d.Description,
			&d.HeadUserID,
			&d.IsActive,
			&d.CreatedAt,
			&d.UpdatedAt,
			&d.CompanyID,
			&d.BranchName,
			&d.MemberCount,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan department: %w", err)
		}
		departments = append(departments, d)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return departments, nil
}

// Update implements department.DepartmentRepository.
func (r *departmentRepositoryImpl) Update(ctx context.Context, req department.UpdateDepartmentRequest) error {
	q := GetQuerier(ctx, r.db)

	// Build dynamic update query
	query := `UPDATE departments SET updated_at = NOW()`
	args := []interface{}{}
	argIdx := 1

	if req.Name != nil {
		query += fmt.Sprintf(", name = $%d", argIdx)
		args = append(args, *req.Name)
		argIdx++
	}
	if req.Code != nil {
		query += fmt.Sprintf(", code = $%d", argIdx)
		args = append(args, *req.Code)
		argIdx++
	}
	if req.Description != nil {
		query += fmt.Sprintf(", description = $%d", argIdx)
		args = append(args, *req.Description)
		argIdx++
	}
	if req.HeadUserID != nil {
		query += fmt.Sprintf(", head_user_id = $%d", argIdx)
		args = append(args, *req.HeadUserID)
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
		return fmt.Errorf("failed to update department: %w", err)
	}

	if commandTag.RowsAffected() == 0 {
		return department.ErrDepartmentNotFound
	}

	return nil
}

// Delete implements department.DepartmentRepository.
func (r *departmentRepositoryImpl) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	query := `DELETE FROM departments WHERE id = $1`

	commandTag, err := q.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete department: %w", err)
	}

	if commandTag.RowsAffected() == 0 {
		return department.ErrDepartmentNotFound
	}

	return nil
}

// CodeExists implements department.DepartmentRepository. Codes are unique
// within a branch only.
func (r *departmentRepositoryImpl) CodeExists(ctx context.Context, branchID string, code string, excludeID *string) (bool, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT EXISTS (SELECT 1 FROM departments WHERE branch_id = $1 AND code = $2 AND ($3::uuid IS NULL OR id != $3))`

	var exists bool
	if err := q.QueryRow(ctx, query, branchID, code, excludeID).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check department code: %w", err)
	}

	return exists, nil
}

// AddMember implements department.DepartmentRepository.
func (r *departmentRepositoryImpl) AddMember(ctx context.Context, m department.Membership) (department.Membership, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO department_memberships (id, user_id, department_id, position, is_active, joined_at)
		VALUES (uuidv7(), $1, $2, $3, TRUE, NOW())
		RETURNING id, user_id, department_id, position, is_active, joined_at, left_at
	`

	var result department.Membership
	err := q.QueryRow(ctx, query, m.UserID, m.DepartmentID, m.Position).Scan(
		&result.ID,
		&result.UserID,
		&result.DepartmentID,
		&result.Position,
		&result.IsActive,
		&result.JoinedAt,
		&result.LeftAt,
	)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return department.Membership{}, department.ErrAlreadyMember
		}
		return department.Membership{}, fmt.Errorf("failed to add department member: %w", err)
	}

	return result, nil
}

// EndMembership implements department.DepartmentRepository. The row is kept
// for history; left_at marks the end of the active period.
func (r *departmentRepositoryImpl) EndMembership(ctx context.Context, departmentID string, userID string) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE department_memberships
		SET is_active = FALSE, left_at = NOW()
		WHERE department_id = $1 AND user_id = $2 AND left_at IS NULL
	`

	commandTag, err := q.Exec(ctx, query, departmentID, userID)
	if err != nil {
		return fmt.Errorf("failed to end membership: %w", err)
	}

	if commandTag.RowsAffected() == 0 {
		return department.ErrMembershipNotFound
	}

	return nil
}

// ListMembers implements department.DepartmentRepository.
func (r *departmentRepositoryImpl) ListMembers(ctx context.Context, departmentID string) ([]department.Membership, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT dm.id, dm.user_id, dm.department_id, dm.position, dm.is_active, dm.joined_at, dm.left_at,
		       u.full_name AS user_name, u.email AS user_email, d.name AS department_name
		FROM department_memberships dm
		JOIN users u ON u.id = dm.user_id
		JOIN departments d ON d.id = dm.department_id
		WHERE dm.department_id = $1 AND dm.left_at IS NULL
		ORDER BY u.full_name ASC
	`

	rows, err := q.Query(ctx, query, departmentID)
	if err != nil {
		return nil, fmt.Errorf("failed to list department members: %w", err)
	}
	defer rows.Close()

	var members []department.Membership
	for rows.Next() {
		var m department.Membership
		err := rows.Scan(
			&m.ID,
			&m.UserID,
			&m.DepartmentID,
			&m.Position,
			&m.IsActive,
			&m.JoinedAt,
			&m.LeftAt,
			&m.UserName,
			&m.UserEmail,
			&m.DepartmentName,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan membership: %w", err)
		}
		members = append(members, m)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return members, nil
}

// HasActiveMembership implements department.DepartmentRepository.
func (r *departmentRepositoryImpl) HasActiveMembership(ctx context.Context, departmentID string, userID string) (bool, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT EXISTS (SELECT 1 FROM department_memberships WHERE department_id = $1 AND user_id = $2 AND left_at IS NULL)`

	var exists bool
	if err := q.QueryRow(ctx, query, departmentID, userID).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check membership: %w", err)
	}

	return exists, nil
}
