package department

import "context"

type DepartmentRepository interface {
	Create(ctx context.Context, d Department) (Department, error)
	GetByID(ctx context.Context, id string) (Department, error)
	ListByBranchID(ctx context.Context, branchID string) ([]Department, error)
	ListByCompanyID(ctx context.Context, companyID string, branchID *string) ([]Department, error)
	Update(ctx context.Context, req UpdateDepartmentRequest) error
	Delete(ctx context.Context, id string) error
	CodeExists(ctx context.Context, branchID string, code string, excludeID *string) (bool, error)

	AddMember(ctx context.Context, m Membership) (Membership, error)
	EndMembership(ctx context.Context, departmentID string, userID string) error
	ListMembers(ctx context.Context, departmentID string) ([]Membership, error)
	HasActiveMembership(ctx context.Context, departmentID string, userID string) (bool, error)
}
