package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/attendly/attendance-backend-go/internal/domain/company"
	"github.com/attendly/attendance-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type companyRepositoryImpl struct {
	db *database.DB
}

func NewCompanyRepository(db *database.DB) company.CompanyRepository {
	return &companyRepositoryImpl{db: db}
}

// Create implements company.CompanyRepository.
func (r *companyRepositoryImpl) Create(ctx context.Context, c company.Company) (company.Company, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO companies (id, name, owner_user_id, description, website, phone_number, email, address, subscription_plan, max_employees, is_active, created_at, updated_at)
		VALUES (uuidv7(), $1, $2, $3, $4, $5, $6, $7, COALESCE($8, 'basic'), COALESCE($9, 50), TRUE, NOW(), NOW())
		RETURNING id, name, owner_user_id, description, website, phone_number, email, address, subscription_plan, max_employees, is_active, created_at, updated_at
	`

	var plan *string
	if c.SubscriptionPlan != "" {
		plan = &c.SubscriptionPlan
	}
	var maxEmployees *int
	if c.MaxEmployees > 0 {
		maxEmployees = &c.MaxEmployees
	}

	var result company.Company
	err := q.QueryRow(ctx, query,
		c.Name, c.OwnerUserID, c.Description, c.Website, c.PhoneNumber, c.Email, c.Address, plan, maxEmployees,
	).Scan(
		&result.ID,
		&result.Name,
		&result.OwnerUserID,
		&result.Description,
		&result.Website,
		&result.PhoneNumber,
		&result.Email,
		&result.Address,
		&result.SubscriptionPlan,
		&result.MaxEmployees,
		&result.IsActive,
		&result.CreatedAt,
		&result.UpdatedAt,
	)

	if err != nil {
		return company.Company{}, fmt.Errorf("failed to create company: %w", err)
	}

	return result, nil
}

// GetByID implements company.CompanyRepository.
func (r *companyRepositoryImpl) GetByID(ctx context.Context, id string) (company.Company, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT c.id, c.name, c.owner_user_id, c.description, c.website, c.phone_number, c.email, c.address,
		       c.subscription_plan, c.max_employees, c.is_active, c.created_at, c.updated_at,
		       (SELECT COUNT(*) FROM users u WHERE u.company_id = c.id AND u.is_active = TRUE)::int AS employee_count,
		       (SELECT COUNT(*) FROM branches b WHERE b.company_id = c.id)::int AS branch_count
		FROM companies c
		WHERE c.id = $1
	`

	var result company.Company
	err := q.QueryRow(ctx, query, id).Scan(
		&result.ID,
		&result.Name,
		&result.OwnerUserID,
		&result.Description,
		&result.Website,
		&result.PhoneNumber,
		&result.Email,
		&result.Address,
		&result.SubscriptionPlan,
		&result.MaxEmployees,
		&result.IsActive,
		&result.CreatedAt,
		&result.UpdatedAt,
		&result.EmployeeCount,
		&result.BranchCount,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return company.Company{}, company.ErrCompanyNotFound
		}
		return company.Company{}, fmt.Errorf("failed to get company: %w", err)
	}

	return result, nil
}

// List implements company.CompanyRepository.
func (r *companyRepositoryImpl) List(ctx context.Context) ([]company.Company, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, name, owner_user_id, description, website, phone_number, email, address,
		       subscription_plan, max_employees, is_active, created_at, updated_at
		FROM companies
		ORDER BY name ASC
	`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list companies: %w", err)
	}
	defer rows.Close()

	var companies []company.Company
	for rows.Next() {
		var c company.Company
		err := rows.Scan(
			&c.ID,
			&c.Name,
			&c.OwnerUserID,
			&c.Description,
			&c.Website,
			&c.PhoneNumber,
			&c.Email,
			&c.Address,
			&c.SubscriptionPlan,
			&c.MaxEmployees,
			&c.IsActive,
			&c.CreatedAt,
			&c.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan company: %w", err)
		}
		companies = append(companies, c)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return companies, nil
}

// Update implements company.CompanyRepository.
func (r *companyRepositoryImpl) Update(ctx context.Context, req company.UpdateCompanyRequest) error {
	q := GetQuerier(ctx, r.db)

	// Build dynamic update query
	query := `UPDATE companies SET updated_at = NOW()`
	args := []interface{}{}
	argIdx := 1

	if req.OwnerUserID != nil {
		query += fmt.Sprintf(", owner_user_id = $%d", argIdx)
		args = append(args, *req.OwnerUserID)
		argIdx++
	}
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
	if req.Website != nil {
		query += fmt.Sprintf(", website = $%d", argIdx)
		args = append(args, *req.Website)
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
	if req.Address != nil {
		query += fmt.Sprintf(", address = $%d", argIdx)
		args = append(args, *req.Address)
		argIdx++
	}
	if req.SubscriptionPlan != nil {
		query += fmt.Sprintf(", subscription_plan = $%d", argIdx)
		args = append(args, *req.SubscriptionPlan)
		argIdx++
	}
	if req.MaxEmployees != nil {
		query += fmt.Sprintf(", max_employees = $%d", argIdx)
		args = append(args, *req.MaxEmployees)
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
		return fmt.Errorf("failed to update company: %w", err)
	}

	if commandTag.RowsAffected() == 0 {
		return company.ErrCompanyNotFound
	}

	return nil
}

// Delete implements company.CompanyRepository.
func (r *companyRepositoryImpl) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	query := `DELETE FROM companies WHERE id = $1`

	commandTag, err := q.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete company: %w", err)
	}

	if commandTag.RowsAffected() == 0 {
		return company.ErrCompanyNotFound
	}

	return nil
}
