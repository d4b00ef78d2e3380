package company

import (
	"context"

	"github.com/attendly/attendance-backend-go/internal/domain/company"
	"github.com/attendly/attendance-backend-go/internal/domain/user"
)

type CompanyServiceImpl struct {
	company.CompanyRepository
}

func NewCompanyService(companyRepository company.CompanyRepository) company.CompanyService {
	return &CompanyServiceImpl{
		CompanyRepository: companyRepository,
	}
}

// Create implements company.CompanyService. Only the platform administrator
// can create companies directly; everyone else goes through signup.
func (s *CompanyServiceImpl) Create(ctx context.Context, scope user.Scope, req company.CreateCompanyRequest) (company.CompanyResponse, error) {
	if scope.Role != user.RoleSuperAdmin {
		return company.CompanyResponse{}, user.ErrAdminAccessRequired
	}
	if err := req.Validate(); err != nil {
		return company.CompanyResponse{}, err
	}

	c := company.Company{
		Name:        req.Name,
		OwnerUserID: req.OwnerUserID,
		Description: req.Description,
		Website:     req.Website,
		Email:       req.Email,
		Address:     req.Address,
	}
	if req.SubscriptionPlan != nil {
		c.SubscriptionPlan = *req.SubscriptionPlan
	}
	if req.MaxEmployees != nil {
		c.MaxEmployees = *req.MaxEmployees
	}

	created, err := s.CompanyRepository.Create(ctx, c)
	if err != nil {
		return company.CompanyResponse{}, err
	}

	return company.ToResponse(created), nil
}

// Get implements company.CompanyService.
func (s *CompanyServiceImpl) Get(ctx context.Context, scope user.Scope, id string) (company.CompanyResponse, error) {
	if !scope.AllowsCompany(id) {
		return company.CompanyResponse{}, company.ErrUnauthorizedAccess
	}

	c, err := s.CompanyRepository.GetByID(ctx, id)
	if err != nil {
		return company.CompanyResponse{}, err
	}

	return company.ToResponse(c), nil
}

// List implements company.CompanyService. Non-admins see only their own
// company.
func (s *CompanyServiceImpl) List(ctx context.Context, scope user.Scope) ([]company.CompanyResponse, error) {
	if scope.Role == user.RoleSuperAdmin {
		companies, err := s.CompanyRepository.List(ctx)
		if err != nil {
			return nil, err
		}
		responses := make([]company.CompanyResponse, 0, len(companies))
		for _, c := range companies {
			responses = append(responses, company.ToResponse(c))
		}
		return responses, nil
	}

	if scope.CompanyID == nil {
		return nil, user.ErrCompanyIDRequired
	}
	c, err := s.CompanyRepository.GetByID(ctx, *scope.CompanyID)
	if err != nil {
		return nil, err
	}
	return []company.CompanyResponse{company.ToResponse(c)}, nil
}

// Update implements company.CompanyService.
func (s *CompanyServiceImpl) Update(ctx context.Context, scope user.Scope, req company.UpdateCompanyRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}
	if !scope.CanWriteCompany(req.ID) {
		return company.ErrUnauthorizedAccess
	}

	// Plan and limit changes stay with the platform administrator.
	if scope.Role != user.RoleSuperAdmin {
		req.SubscriptionPlan = nil
		req.MaxEmployees = nil
	}

	return s.CompanyRepository.Update(ctx, req)
}

// Delete implements company.CompanyService. Super admin only; the cascade
// removes everything the tenant owns.
func (s *CompanyServiceImpl) Delete(ctx context.Context, scope user.Scope, id string) error {
	if scope.Role != user.RoleSuperAdmin {
		return user.ErrAdminAccessRequired
	}
	return s.CompanyRepository.Delete(ctx, id)
}
