package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/attendly/attendance-backend-go/internal/domain/user"
	"github.com/attendly/attendance-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

type userRepositoryImpl struct {
	db *database.DB
}

func NewUserRepository(db *database.DB) user.UserRepository {
	return &userRepositoryImpl{db: db}
}

const userSelectColumns = `
	u.id, u.company_id, u.branch_id, u.email, u.password_hash, u.full_name, u.role,
	u.employee_code, u.phone_number, u.is_active, u.created_at, u.updated_at,
	c.name AS company_name, b.name AS branch_name
`

func scanUser(row pgx.Row) (user.User, error) {
	var u user.User
	err := row.Scan(
		&u.ID,
		&u.CompanyID,
		&u.BranchID,
		&u.Email,
		&u.PasswordHash,
		&u.FullName,
		&u.Role,
		&u.EmployeeCode,
		&u.PhoneNumber,
		&u.IsActive,
		&u.CreatedAt,
		&u.UpdatedAt,
		&u.CompanyName,
		&u.BranchName,
	)
	return u, err
}

// Create implements user.UserRepository.
func (r *userRepositoryImpl) Create(ctx context.Context, u user.User) (user.User, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO users (id, company_id, branch_id, email, password_hash, full_name, role, employee_code, phone_number, is_active, created_at, updated_at)
		VALUES (uuidv7(), $1, $2, $3, $4, $5, $6, $7, $8, TRUE, NOW(), NOW())
		RETURNING id, company_id, branch_id, email, password_hash, full_name, role, employee_code, phone_number, is_active, created_at, updated_at
	`

	var result user.User
	err := q.QueryRow(ctx, query,
		u.CompanyID, u.BranchID, u.Email, u.PasswordHash, u.FullName, u.Role, u.EmployeeCode, u.PhoneNumber,
	).Scan(
		&result.ID,
		&result.CompanyID,
		&result.BranchID,
		&result.Email,
		&result.PasswordHash,
		&result.FullName,
		&result.Role,
		&result.EmployeeCode,
		&result.PhoneNumber,
		&result.IsActive,
		&result.CreatedAt,
		&result.UpdatedAt,
	)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			switch pgErr.ConstraintName {
			case "users_email_key":
				return user.User{}, user.ErrUserEmailExists
			case "users_company_employee_code_key":
				return user.User{}, user.ErrEmployeeCodeExists
			}
		}
		return user.User{}, fmt.Errorf("failed to create user: %w", err)
	}

	return result, nil
}

// GetByID implements user.UserRepository.
func (r *userRepositoryImpl) GetByID(ctx context.Context, id string) (user.User, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + userSelectColumns + `
		FROM users u
		LEFT JOIN companies c ON c.id = u.company_id
		LEFT JOIN branches b ON b.id = u.branch_id
		WHERE u.id = $1
	`

	u, err := scanUser(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return user.User{}, user.ErrUserNotFound
		}
		return user.User{}, fmt.Errorf("failed to get user: %w", err)
	}

	return u, nil
}

// GetByEmail implements user.UserRepository.
func (r *userRepositoryImpl) GetByEmail(ctx context.Context, email string) (user.User, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + userSelectColumns + `
		FROM users u
		LEFT JOIN companies c ON c.id = u.company_id
		LEFT JOIN branches b ON b.id = u.branch_id
		WHERE LOWER(u.email) = LOWER($1)
	`

	u, err := scanUser(q.QueryRow(ctx, query, email))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return user.User{}, user.ErrUserNotFound
		}
		return user.User{}, fmt.Errorf("failed to get user by email: %w", err)
	}

	return u, nil
}

// List implements user.UserRepository. The WHERE clause is derived from the
// caller's scope first, then narrowed by the optional filter fields.
func (r *userRepositoryImpl) List(ctx context.Context, scope user.Scope, filter user.ListUsersFilter) ([]user.User, int64, error) {
	q := GetQuerier(ctx, r.db)

	where := ` WHERE 1=1`
	args := []interface{}{}
	argIdx := 1

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

	if filter.BranchID != nil {
		where += fmt.Sprintf(" AND u.branch_id = $%d", argIdx)
		args = append(args, *filter.BranchID)
		argIdx++
	}
	if filter.DepartmentID != nil {
		where += fmt.Sprintf(` AND EXISTS (
			SELECT 1 FROM department_memberships dm
			WHERE dm.user_id = u.id AND dm.department_id = $%d AND dm.left_at IS NULL
		)`, argIdx)
		args = append(args, *filter.DepartmentID)
		argIdx++
	}
	if filter.Role != nil {
		where += fmt.Sprintf(" AND u.role = $%d", argIdx)
		args = append(args, string(*filter.Role))
		argIdx++
	}
	if filter.Search != nil {
		where += fmt.Sprintf(" AND (u.full_name ILIKE $%d OR u.email ILIKE $%d OR u.employee_code ILIKE $%d)", argIdx, argIdx, argIdx)
		args = append(args, "%"+*filter.Search+"%")
		argIdx++
	}

	countQuery := `SELECT COUNT(*) FROM users u` + where
	var total int64
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count users: %w", err)
	}

	query := `
		SELECT ` + userSelectColumns + `
		FROM users u
		LEFT JOIN companies c ON c.id = u.company_id
		LEFT JOIN branches b ON b.id = u.branch_id
	` + where + fmt.Sprintf(" ORDER BY u.full_name ASC LIMIT $%d OFFSET $%d", argIdx, argIdx+1)
	args = append(args, filter.Limit, (filter.Page-1)*filter.Limit)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list users: %w", err)
	}
	defer rows.Close()

	var users []user.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan user: %w", err)
		}
		users = append(users, u)
	}

	if err = rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("rows iteration error: %w", err)
	}

	return users, total, nil
}

// Update implements user.UserRepository.
func (r *userRepositoryImpl) Update(ctx context.Context, req user.UpdateUserRequest) error {
	q := GetQuerier(ctx, r.db)

	// Build dynamic update query
	query := `UPDATE users SET updated_at = NOW()`
	args := []interface{}{}
	argIdx := 1

	if req.BranchID != nil {
		query += fmt.Sprintf(", branch_id = $%d", argIdx)
		args = append(args, *req.BranchID)
		argIdx++
	}
	if req.FullName != nil {
		query += fmt.Sprintf(", full_name = $%d", argIdx)
		args = append(args, *req.FullName)
		argIdx++
	}
	if req.Role != nil {
		query += fmt.Sprintf(", role = $%d", argIdx)
		args = append(args, *req.Role)
		argIdx++
	}
	if req.EmployeeCode != nil {
		query += fmt.Sprintf(", employee_code = $%d", argIdx)
		args = append(args, *req.EmployeeCode)
		argIdx++
	}
	if req.PhoneNumber != nil {
		query += fmt.Sprintf(", phone_number = $%d", argIdx)
		args = append(args, *req.PhoneNumber)
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
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" && pgErr.ConstraintName == "users_company_employee_code_key" {
			return user.ErrEmployeeCodeExists
		}
		return fmt.Errorf("failed to update user: %w", err)
	}

	if commandTag.RowsAffected() == 0 {
		return user.ErrUserNotFound
	}

	return nil
}

// Deactivate implements user.UserRepository.
func (r *userRepositoryImpl) Deactivate(ctx context.Context, id string, companyID string) error {
	q := GetQuerier(ctx, r.db)

	query := `UPDATE users SET is_active = FALSE, updated_at = NOW() WHERE id = $1 AND company_id = $2`

	commandTag, err := q.Exec(ctx, query, id, companyID)
	if err != nil {
		return fmt.Errorf("failed to deactivate user: %w", err)
	}

	if commandTag.RowsAffected() == 0 {
		return user.ErrUserNotFound
	}

	return nil
}

// CountActiveByCompanyID implements user.UserRepository.
func (r *userRepositoryImpl) CountActiveByCompanyID(ctx context.Context, companyID string) (int, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT COUNT(*)::int FROM users WHERE company_id = $1 AND is_active = TRUE`

	var count int
	if err := q.QueryRow(ctx, query, companyID).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count active users: %w", err)
	}

	return count, nil
}
