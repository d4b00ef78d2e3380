package master

import (
	"context"

	"github.com/attendly/attendance-backend-go/internal/domain/branch"
	"github.com/attendly/attendance-backend-go/internal/domain/department"
	"github.com/attendly/attendance-backend-go/internal/domain/user"
)

// MasterService manages the organizational structure below a company:
// branches, departments and department memberships.
type MasterService interface {
	CreateBranch(ctx context.Context, scope user.Scope, req branch.CreateBranchRequest) (branch.BranchResponse, error)
	GetBranch(ctx context.Context, scope user.Scope, id string) (branch.BranchResponse, error)
	ListBranches(ctx context.Context, scope user.Scope) ([]branch.BranchResponse, error)
	UpdateBranch(ctx context.Context, scope user.Scope, req branch.UpdateBranchRequest) error
	DeleteBranch(ctx context.Context, scope user.Scope, id string) error

	CreateDepartment(ctx context.Context, scope user.Scope, req department.CreateDepartmentRequest) (department.DepartmentResponse, error)
	GetDepartment(ctx context.Context, scope user.Scope, id string) (department.DepartmentResponse, error)
	ListDepartments(ctx context.Context, scope user.Scope, branchID *string) ([]department.DepartmentResponse, error)
	UpdateDepartment(ctx context.Context, scope user.Scope, req department.UpdateDepartmentRequest) error
	DeleteDepartment(ctx context.Context, scope user.Scope, id string) error

	AddDepartmentMember(ctx context.Context, scope user.Scope, req department.AddMemberRequest) (department.MembershipResponse, error)
	RemoveDepartmentMember(ctx context.Context, scope user.Scope, departmentID string, userID string) error
	ListDepartmentMembers(ctx context.Context, scope user.Scope, departmentID string) ([]department.MembershipResponse, error)
}

type MasterServiceImpl struct {
	branch.BranchRepository
	department.DepartmentRepository
	user.UserRepository
}

func NewMasterService(branchRepository branch.BranchRepository, departmentRepository department.DepartmentRepository, userRepository user.UserRepository) MasterService {
	return &MasterServiceImpl{
		BranchRepository:     branchRepository,
		DepartmentRepository: departmentRepository,
		UserRepository:       userRepository,
	}
}

// CreateBranch implements MasterService.
func (s *MasterServiceImpl) CreateBranch(ctx context.Context, scope user.Scope, req branch.CreateBranchRequest) (branch.BranchResponse, error) {
	if err := req.Validate(); err != nil {
		return branch.BranchResponse{}, err
	}
	if !scope.CanWriteCompany(req.CompanyID) {
		return branch.BranchResponse{}, branch.ErrUnauthorizedAccess
	}

	exists, err := s.BranchRepository.CodeExists(ctx, req.CompanyID, req.Code, nil)
	if err != nil {
		return branch.BranchResponse{}, err
	}
	if exists {
		return branch.BranchResponse{}, branch.ErrBranchCodeExists
	}

	created, err := s.BranchRepository.Create(ctx, branch.Branch{
		CompanyID:     req.CompanyID,
		Name:          req.Name,
		Code:          req.Code,
		Address:       req.Address,
		PhoneNumber:   req.PhoneNumber,
		Email:         req.Email,
		ManagerUserID: req.ManagerUserID,
		Latitude:      req.Latitude,
		Longitude:     req.Longitude,
	})
	if err != nil {
		return branch.BranchResponse{}, err
	}

	return branch.ToResponse(created), nil
}

// GetBranch implements MasterService.
func (s *MasterServiceImpl) GetBranch(ctx context.Context, scope user.Scope, id string) (branch.BranchResponse, error) {
	b, err := s.BranchRepository.GetByID(ctx, id, scope.CompanyFilter())
	if err != nil {
		return branch.BranchResponse{}, err
	}
	if !scope.AllowsBranch(b.CompanyID, b.ID) {
		return branch.BranchResponse{}, branch.ErrUnauthorizedAccess
	}

	return branch.ToResponse(b), nil
}

// ListBranches implements MasterService. HR employees see only their
// assigned branch.
func (s *MasterServiceImpl) ListBranches(ctx context.Context, scope user.Scope) ([]branch.BranchResponse, error) {
	if scope.CompanyID == nil {
		return nil, user.ErrCompanyIDRequired
	}

	branches, err := s.BranchRepository.GetByCompanyID(ctx, *scope.CompanyID)
	if err != nil {
		return nil, err
	}

	responses := make([]branch.BranchResponse, 0, len(branches))
	for _, b := range branches {
		if !scope.AllowsBranch(b.CompanyID, b.ID) {
			continue
		}
		responses = append(responses, branch.ToResponse(b))
	}
	return responses, nil
}

// UpdateBranch implements MasterService.
func (s *MasterServiceImpl) UpdateBranch(ctx context.Context, scope user.Scope, req branch.UpdateBranchRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}
	if !scope.CanWriteCompany(req.CompanyID) {
		return branch.ErrUnauthorizedAccess
	}

	if req.Code != nil {
		exists, err := s.BranchRepository.CodeExists(ctx, req.CompanyID, *req.Code, &req.ID)
		if err != nil {
			return err
		}
		if exists {
			return branch.ErrBranchCodeExists
		}
	}

	return s.BranchRepository.Update(ctx, req)
}

// DeleteBranch implements MasterService.
func (s *MasterServiceImpl) DeleteBranch(ctx context.Context, scope user.Scope, id string) error {
	b, err := s.BranchRepository.GetByID(ctx, id, scope.CompanyFilter())
	if err != nil {
		return err
	}
	if !scope.CanWriteCompany(b.CompanyID) {
		return branch.ErrUnauthorizedAccess
	}
	return s.BranchRepository.Delete(ctx, id, scope.CompanyFilter())
}

// CreateDepartment implements MasterService.
func (s *MasterServiceImpl) CreateDepartment(ctx context.Context, scope user.Scope, req department.CreateDepartmentRequest) (department.DepartmentResponse, error) {
	if err := req.Validate(); err != nil {
		return department.DepartmentResponse{}, err
	}

	b, err := s.BranchRepository.GetByID(ctx, req.BranchID, scope.CompanyFilter())
	if err != nil {
		return department.DepartmentResponse{}, err
	}
	if !scope.CanWriteBranch(b.CompanyID, b.ID) {
		return department.DepartmentResponse{}, department.ErrUnauthorizedAccess
	}

	exists, err := s.DepartmentRepository.CodeExists(ctx, req.BranchID, req.Code, nil)
	if err != nil {
		return department.DepartmentResponse{}, err
	}
	if exists {
		return department.DepartmentResponse{}, department.ErrDepartmentCodeExists
	}

	created, err := s.DepartmentRepository.Create(ctx, department.Department{
		BranchID:    req.BranchID,
		Name:        req.Name,
		Code:        req.Code,
		Description: req.Description,
		HeadUserID:  req.HeadUserID,
	})
	if err != nil {
		return department.DepartmentResponse{}, err
	}

	return department.ToResponse(created), nil
}

// GetDepartment implements MasterService.
func (s *MasterServiceImpl) GetDepartment(ctx context.Context, scope user.Scope, id string) (department.DepartmentResponse, error) {
	d, err := s.DepartmentRepository.GetByID(ctx, id)
	if err != nil {
		return department.DepartmentResponse{}, err
	}
	if d.CompanyID == nil || !scope.AllowsBranch(*d.CompanyID, d.BranchID) {
		return department.DepartmentResponse{}, department.ErrUnauthorizedAccess
	}

	return department.ToResponse(d), nil
}

// ListDepartments implements MasterService.
func (s *MasterServiceImpl) ListDepartments(ctx context.Context, scope user.Scope, branchID *string) ([]department.DepartmentResponse, error) {
	if scope.CompanyID == nil {
		return nil, user.ErrCompanyIDRequired
	}

	// HR scope pins the branch regardless of the requested filter.
	if scopedBranch := scope.BranchFilter(); scopedBranch != nil {
		branchID = scopedBranch
	}

	departments, err := s.DepartmentRepository.ListByCompanyID(ctx, *scope.CompanyID, branchID)
	if err != nil {
		return nil, err
	}

	responses := make([]department.DepartmentResponse, 0, len(departments))
	for _, d := range departments {
		responses = append(responses, department.ToResponse(d))
	}
	return responses, nil
}

// UpdateDepartment implements MasterService.
func (s *MasterServiceImpl) UpdateDepartment(ctx context.Context, scope user.Scope, req department.UpdateDepartmentRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}

	d, err := s.DepartmentRepository.GetByID(ctx, req.ID)
	if err != nil {
		return err
	}
	if d.CompanyID == nil || !scope.CanWriteBranch(*d.CompanyID, d.BranchID) {
		return department.ErrUnauthorizedAccess
	}

	if req.Code != nil {
		exists, err := s.DepartmentRepository.CodeExists(ctx, d.BranchID, *req.Code, &req.ID)
		if err != nil {
			return err
		}
		if exists {
			return department.ErrDepartmentCodeExists
		}
	}

	return s.DepartmentRepository.Update(ctx, req)
}

// DeleteDepartment implements MasterService.
func (s *MasterServiceImpl) DeleteDepartment(ctx context.Context, scope user.Scope, id string) error {
	d, err := s.DepartmentRepository.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if d.CompanyID == nil || !scope.CanWriteBranch(*d.CompanyID, d.BranchID) {
		return department.ErrUnauthorizedAccess
	}
	return s.DepartmentRepository.Delete(ctx, id)
}

// AddDepartmentMember implements MasterService.
func (s *MasterServiceImpl) AddDepartmentMember(ctx context.Context, scope user.Scope, req department.AddMemberRequest) (department.MembershipResponse, error) {
	if err := req.Validate(); err != nil {
		return department.MembershipResponse{}, err
	}

	d, err := s.DepartmentRepository.GetByID(ctx, req.DepartmentID)
	if err != nil {
		return department.MembershipResponse{}, err
	}
	if d.CompanyID == nil || !scope.CanWriteBranch(*d.CompanyID, d.BranchID) {
		return department.MembershipResponse{}, department.ErrUnauthorizedAccess
	}

	target, err := s.UserRepository.GetByID(ctx, req.UserID)
	if err != nil {
		return department.MembershipResponse{}, err
	}
	if target.CompanyID == nil || *target.CompanyID != *d.CompanyID {
		return department.MembershipResponse{}, department.ErrUnauthorizedAccess
	}

	active, err := s.DepartmentRepository.HasActiveMembership(ctx, req.DepartmentID, req.UserID)
	if err != nil {
		return department.MembershipResponse{}, err
	}
	if active {
		return department.MembershipResponse{}, department.ErrAlreadyMember
	}

	m, err := s.DepartmentRepository.AddMember(ctx, department.Membership{
		UserID:       req.UserID,
		DepartmentID: req.DepartmentID,
		Position:     req.Position,
	})
	if err != nil {
		return department.MembershipResponse{}, err
	}

	return department.ToMembershipResponse(m), nil
}

// RemoveDepartmentMember implements MasterService. The membership row is kept
// with its end date for history.
func (s *MasterServiceImpl) RemoveDepartmentMember(ctx context.Context, scope user.Scope, departmentID string, userID string) error {
	d, err := s.DepartmentRepository.GetByID(ctx, departmentID)
	if err != nil {
		return err
	}
	if d.CompanyID == nil || !scope.CanWriteBranch(*d.CompanyID, d.BranchID) {
		return department.ErrUnauthorizedAccess
	}
	return s.DepartmentRepository.EndMembership(ctx, departmentID, userID)
}

// ListDepartmentMembers implements MasterService.
func (s *MasterServiceImpl) ListDepartmentMembers(ctx context.Context, scope user.Scope, departmentID string) ([]department.MembershipResponse, error) {
	d, err := s.DepartmentRepository.GetByID(ctx, departmentID)
	if err != nil {
		return nil, err
	}
	if d.CompanyID == nil || !scope.AllowsBranch(*d.CompanyID, d.BranchID) {
		return nil, department.ErrUnauthorizedAccess
	}

	members, err := s.DepartmentRepository.ListMembers(ctx, departmentID)
	if err != nil {
		return nil, err
	}

	responses := make([]department.MembershipResponse, 0, len(members))
	for _, m := range members {
		responses = append(responses, department.ToMembershipResponse(m))
	}
	return responses, nil
}
