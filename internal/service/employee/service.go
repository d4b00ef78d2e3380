package employee

import (
	"context"
	"fmt"

	"github.com/attendly/attendance-backend-go/internal/domain/company"
	"github.com/attendly/attendance-backend-go/internal/domain/user"
	"github.com/attendly/attendance-backend-go/internal/pkg/database"
	"github.com/attendly/attendance-backend-go/internal/repository/postgresql"
	"github.com/jackc/pgx/v5"
	"golang.org/x/crypto/bcrypt"
)

// EmployeeService manages employee accounts within a company.
type EmployeeService interface {
	Create(ctx context.Context, scope user.Scope, req user.CreateEmployeeRequest) (user.UserResponse, error)
	Get(ctx context.Context, scope user.Scope, id string) (user.UserResponse, error)
	List(ctx context.Context, scope user.Scope, filter user.ListUsersFilter) ([]user.UserResponse, int64, error)
	Update(ctx context.Context, scope user.Scope, req user.UpdateUserRequest) error
	Deactivate(ctx context.Context, scope user.Scope, id string) error
}

type EmployeeServiceImpl struct {
	db *database.DB
	user.UserRepository
	company.CompanyRepository
}

func NewEmployeeService(db *database.DB, userRepository user.UserRepository, companyRepository company.CompanyRepository) EmployeeService {
	return &EmployeeServiceImpl{
		db:                db,
		UserRepository:    userRepository,
		CompanyRepository: companyRepository,
	}
}

// Create implements EmployeeService. The subscription employee limit is
// checked inside the same transaction as the insert so concurrent creates
// cannot slip past it.
func (s *EmployeeServiceImpl) Create(ctx context.Context, scope user.Scope, req user.CreateEmployeeRequest) (user.UserResponse, error) {
	if err := req.Validate(); err != nil {
		return user.UserResponse{}, err
	}
	if !scope.CanWriteCompany(req.CompanyID) && scope.Role != user.RoleHREmployee {
		return user.UserResponse{}, user.ErrAccessDenied
	}

	// HR can only create regular employees inside their own branch.
	if scope.Role == user.RoleHREmployee {
		if user.Role(req.Role) != user.RoleEmployee {
			return user.UserResponse{}, user.ErrAccessDenied
		}
		if req.BranchID == nil || scope.BranchID == nil || *req.BranchID != *scope.BranchID {
			return user.UserResponse{}, user.ErrAccessDenied
		}
	}
	// Nobody creates platform administrators through this endpoint.
	if user.Role(req.Role) == user.RoleSuperAdmin {
		return user.UserResponse{}, user.ErrAccessDenied
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return user.UserResponse{}, fmt.Errorf("failed to hash password: %w", err)
	}
	passwordHash := string(hash)

	var created user.User
	err = postgresql.WithTransaction(ctx, s.db, func(tx pgx.Tx) error {
		txCtx := postgresql.WithTxContext(ctx, tx)

		companyData, err := s.CompanyRepository.GetByID(txCtx, req.CompanyID)
		if err != nil {
			return err
		}
		count, err := s.UserRepository.CountActiveByCompanyID(txCtx, req.CompanyID)
		if err != nil {
			return err
		}
		if !companyData.CanAddEmployee(count) {
			return user.ErrEmployeeLimitReached
		}

		created, err = s.UserRepository.Create(txCtx, user.User{
			CompanyID:    &req.CompanyID,
			BranchID:     req.BranchID,
			Email:        req.Email,
			PasswordHash: &passwordHash,
			FullName:     req.FullName,
			Role:         user.Role(req.Role),
			EmployeeCode: req.EmployeeCode,
			PhoneNumber:  req.PhoneNumber,
		})
		return err
	})
	if err != nil {
		return user.UserResponse{}, err
	}

	return user.ToResponse(created), nil
}

// Get implements EmployeeService.
func (s *EmployeeServiceImpl) Get(ctx context.Context, scope user.Scope, id string) (user.UserResponse, error) {
	target, err := s.UserRepository.GetByID(ctx, id)
	if err != nil {
		return user.UserResponse{}, err
	}
	if !scope.AllowsUser(target) {
		return user.UserResponse{}, user.ErrAccessDenied
	}
	return user.ToResponse(target), nil
}

// List implements EmployeeService. Scope narrowing happens in the repository.
func (s *EmployeeServiceImpl) List(ctx context.Context, scope user.Scope, filter user.ListUsersFilter) ([]user.UserResponse, int64, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 || filter.Limit > 100 {
		filter.Limit = 20
	}

	users, total, err := s.UserRepository.List(ctx, scope, filter)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]user.UserResponse, 0, len(users))
	for _, u := range users {
		responses = append(responses, user.ToResponse(u))
	}
	return responses, total, nil
}

// Update implements EmployeeService.
func (s *EmployeeServiceImpl) Update(ctx context.Context, scope user.Scope, req user.UpdateUserRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}

	target, err := s.UserRepository.GetByID(ctx, req.ID)
	if err != nil {
		return err
	}
	if !scope.AllowsUser(target) {
		return user.ErrAccessDenied
	}
	// Only managers change roles, and never to super admin.
	if req.Role != nil {
		if scope.Role != user.RoleSuperAdmin && scope.Role != user.RoleCompanyManager {
			return user.ErrManagerAccessRequired
		}
		if user.Role(*req.Role) == user.RoleSuperAdmin {
			return user.ErrAccessDenied
		}
	}
	// Employees may touch only their own contact fields.
	if scope.SelfOnly() {
		req.BranchID = nil
		req.Role = nil
		req.EmployeeCode = nil
		req.IsActive = nil
	}

	if target.CompanyID == nil {
		return user.ErrCompanyIDRequired
	}
	req.CompanyID = *target.CompanyID

	return s.UserRepository.Update(ctx, req)
}

// Deactivate implements EmployeeService. Accounts are never deleted; their
// attendance history must survive.
func (s *EmployeeServiceImpl) Deactivate(ctx context.Context, scope user.Scope, id string) error {
	target, err := s.UserRepository.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if !scope.AllowsUser(target) || scope.SelfOnly() {
		return user.ErrAccessDenied
	}
	if scope.Role == user.RoleHREmployee && target.Role != user.RoleEmployee {
		return user.ErrAccessDenied
	}
	if target.CompanyID == nil {
		return user.ErrCompanyIDRequired
	}

	return s.UserRepository.Deactivate(ctx, id, *target.CompanyID)
}
