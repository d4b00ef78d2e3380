package branch

import "context"

type BranchRepository interface {
	Create(ctx context.Context, b Branch) (Branch, error)
	// GetByID restricts by company when companyID is set; nil means any
	// company (super admin scope).
	GetByID(ctx context.Context, id string, companyID *string) (Branch, error)
	GetByCompanyID(ctx context.Context, companyID string) ([]Branch, error)
	Update(ctx context.Context, req UpdateBranchRequest) error
	Delete(ctx context.Context, id string, companyID *string) error
	CodeExists(ctx context.Context, companyID string, code string, excludeID *string) (bool, error)
}
