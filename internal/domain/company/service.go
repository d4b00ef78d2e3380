package company

import (
	"context"

	"github.com/attendly/attendance-backend-go/internal/domain/user"
)

type CompanyService interface {
	Create(ctx context.Context, scope user.Scope, req CreateCompanyRequest) (CompanyResponse, error)
	Get(ctx context.Context, scope user.Scope, id string) (CompanyResponse, error)
	List(ctx context.Context, scope user.Scope) ([]CompanyResponse, error)
	Update(ctx context.Context, scope user.Scope, req UpdateCompanyRequest) error
	Delete(ctx context.Context, scope user.Scope, id string) error
}
