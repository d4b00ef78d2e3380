package user

import "context"

type ListUsersFilter struct {
	BranchID     *string
	DepartmentID *string
	Role         *Role
	Search       *string
	Page         int
	Limit        int
}

type UserRepository interface {
	Create(ctx context.Context, u User) (User, error)
	GetByID(ctx context.Context, id string) (User, error)
	GetByEmail(ctx context.Context, email string) (User, error)
	List(ctx context.Context, scope Scope, filter ListUsersFilter) ([]User, int64, error)
	Update(ctx context.Context, req UpdateUserRequest) error
	Deactivate(ctx context.Context, id string, companyID string) error
	CountActiveByCompanyID(ctx context.Context, companyID string) (int, error)
}
