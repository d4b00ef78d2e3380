package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/attendly/attendance-backend-go/internal/domain/branch"
	"github.com/attendly/attendance-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type branchRepositoryImpl struct {
	db *database.DB
}

func NewBranchRepository(db *database.DB) branch.BranchRepository {
	return &branchRepositoryImpl{db: db}
}

// Create implements branch.BranchRepository.
func (r *branchRepositoryImpl) Create(ctx context.Context, b branch.Branch) (branch.Branch, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO branches (id, company_id, name, code, address, phone_number, email, manager_user_id, latitude, longitude, is_active, created_at, updated_at)
		VALUES (uuidv7(), $1, $2, $3, $4, $5, $6, $7, $8, $9, TRUE, NOW(), NOW())
		RETURNING id, company_id, name, code, address, phone_number, email, manager_user_id, latitude, longitude, is_active, created_at, updated_at
	`

	var result branch.Branch
	err := q.QueryRow(ctx, query,
		b.CompanyID, b.Name, b.Code, b.Address, b.PhoneNumber, b.Email, b.ManagerUserID, b.Latitude, b.Longitude,
	).Scan(
		&result.ID,
		&result.CompanyID,
		&result.Name,
		&result.Code,
		&result.Address,
		&result.PhoneNumber,
		&result.Email,
		&result.ManagerUserID,
		&result.Latitude,
		&result.Longitude,
		&result.IsActive,
		&result.CreatedAt,
		&result.UpdatedAt,
	)

	if err != nil {
		return branch.Branch{}, fmt.Errorf("failed to create branch: %w", err)
	}

	return result, nil
}

// GetByID implements branch.BranchRepository.
func (r *branchRepositoryImpl) GetByID(ctx context.Context, id string, companyID *string) (branch.Branch, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT b.id, b.company_id, b.name, b.code, b.address, b.phone_number, b.email, b.manager_user_id,
		       b.latitude, b.longitude, b.is_active, b.created_at, b.updated_at,
		       (SELECT COUNT(*) FROM departments d WHERE d.branch_id = b.id)::int AS department_count,
		       (SELECT COUNT(*) FROM users u WHERE u.branch_id = b.id AND u.is_active = TRUE)::int AS employee_count
		FROM branches b
		WHERE b.id = $1 AND ($2::uuid IS NULL OR b.company_id = $2)
	`

	var result branch.Branch
	err := q.QueryRow(ctx, query, id, companyID).Scan(
		&result.ID,
		&result.CompanyID,
		&result.Name,
		&result.Code,
		&result.Address,
		&result.PhoneNumber,
		&result.Email,
		&result.ManagerUserID,
		&result.Latitude,
		&result.Longitude,
		&result.IsActive,
		&result.CreatedAt,
		&result.UpdatedAt,
		&result.DepartmentCount,
		&result.EmployeeCount,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return branch.Branch{}, branch.ErrBranchNotFound
		}
		return branch.Branch{}, fmt.Errorf("failed to get branch: %w", err)
	}

	return result, nil
}

// GetByCompanyID implements branch.BranchRepository.
func (r *branchRepositoryImpl) GetByCompanyID(ctx context.Context, companyID string) ([]branch.Branch, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, company_id, name, code, address, phone_number, email, manager_user_id,
		       latitude, longitude, is_active, created_at, updated_at
		FROM branches
		WHERE company_id = $1
		ORDER BY name ASC
	`

	rows, err := q.Query(ctx, query, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to list branches: %w", err)
	}
	defer rows.Close()

	var branches []branch.Branch
	for rows.Next() {
		var b branch.Branch
		err := rows.Scan(
			&b.ID,
			&b.CompanyID,
			&b.Name,
			&b.Code,
			&b.Address,
			&b.PhoneNumber,
			&b.Email,
			&b.ManagerUserID,
			&b.Latitude,
			&b.Longitude,
			&b.IsActive,
			&b.CreatedAt,
			&b.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan branch: %w", err)
		}
		branches = append(branches, b)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return branches, nil
}

// Update implements branch.BranchRepository.
func (r *branchRepositoryImpl) Update(ctx context.Context, req branch.UpdateBranchRequest) error {
	q := GetQuerier(ctx, r.db)

	// Build dynamic update query
	query := `UPDATE branches SET updated_at = NOW()`
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
	if req.Address != nil {
		query += fmt.Sprintf(", address = $%d", argIdx)
		args = append(args, *req.Address)
		argIdx++
	}
	if req.PhoneNumber != nil {
		query += fmt.Sprintf(", phone_number = $%d", argIdx)
		args = append(args, *req.PhoneNumber)
		argIdx++
	}
	if req.Email != nil {
		query += fmt.Sprintf(", email = $%d", argIdx)
		args = append(args, *req.Email)
		argIdx++
	}
	if req.ManagerUserID != nil {
		query += fmt.Sprintf(", manager_user_id = $%d", argIdx)
		args = append(args, *req.ManagerUserID)
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
	if req.IsActive != nil {
		query += fmt.Sprintf(", is_active = $%d", argIdx)
		args = append(args, *req.IsActive)
		argIdx++
	}

	query += fmt.Sprintf(" WHERE id = $%d AND company_id = $%d", argIdx, argIdx+1)
	args = append(args, req.ID, req.CompanyID)

	commandTag, err := q.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to update branch: %w", err)
	}

	if commandTag.RowsAffected() == 0 {
		return branch.ErrBranchNotFound
	}

	return nil
}

// Delete implements branch.BranchRepository.
func (r *branchRepositoryImpl) Delete(ctx context.Context, id string, companyID *string) error {
	q := GetQuerier(ctx, r.db)

	query := `DELETE FROM branches WHERE id = $1 AND ($2::uuid IS NULL OR company_id = $2)`

	commandTag, err := q.Exec(ctx, query, id, companyID)
	if err != nil {
		return fmt.Errorf("failed to delete branch: %w", err)
	}

	if commandTag.RowsAffected() == 0 {
		return branch.ErrBranchNotFound
	}

	return nil
}

// CodeExists implements branch.BranchRepository. Codes are unique within a
// company only.
func (r *branchRepositoryImpl) CodeExists(ctx context.Context, companyID string, code string, excludeID *string) (bool, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT EXISTS (SELECT 1 FROM branches WHERE company_id = $1 AND code = $2 AND ($3::uuid IS NULL OR id != $3))`

	var exists bool
	if err := q.QueryRow(ctx, query, companyID, code, excludeID).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check branch code: %w", err)
	}

	return exists, nil
}
