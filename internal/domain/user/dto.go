package user

import (
	"github.com/attendly/attendance-backend-go/internal/pkg/validator"
)

// UserResponse represents the response structure for a user.
type UserResponse struct {
	ID           string  `json:"id"`
	CompanyID    *string `json:"company_id,omitempty"`
	BranchID     *string `json:"branch_id,omitempty"`
	Email        string  `json:"email"`
	FullName     string  `json:"full_name"`
	Role         string  `json:"role"`
	EmployeeCode *string `json:"employee_code,omitempty"`
	PhoneNumber  *string `json:"phone_number,omitempty"`
	IsActive     bool    `json:"is_active"`
	CompanyName  *string `json:"company_name,omitempty"`
	BranchName   *string `json:"branch_name,omitempty"`
}

func ToResponse(u User) UserResponse {
	return UserResponse{
		ID:           u.ID,
		CompanyID:    u.CompanyID,
		BranchID:     u.BranchID,
		Email:        u.Email,
		FullName:     u.FullName,
		Role:         string(u.Role),
		EmployeeCode: u.EmployeeCode,
		PhoneNumber:  u.PhoneNumber,
		IsActive:     u.IsActive,
		CompanyName:  u.CompanyName,
		BranchName:   u.BranchName,
	}
}

// CreateEmployeeRequest represents the request structure for creating a user
// inside the acting user's company.
type CreateEmployeeRequest struct {
	CompanyID    string  `json:"-"` // From scope
	BranchID     *string `json:"branch_id,omitempty"`
	Email        string  `json:"email"`
	Password     string  `json:"password"`
	FullName     string  `json:"full_name"`
	Role         string  `json:"role"`
	EmployeeCode *string `json:"employee_code,omitempty"`
	PhoneNumber  *string `json:"phone_number,omitempty"`
}

func (r *CreateEmployeeRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Email) {
		errs = append(errs, validator.ValidationError{Field: "email", Message: "email is required"})
	} else if !validator.IsValidEmail(r.Email) {
		errs = append(errs, validator.ValidationError{Field: "email", Message: "invalid email format"})
	}

	if len(r.Password) < 8 {
		errs = append(errs, validator.ValidationError{Field: "password", Message: "password must be at least 8 characters"})
	}

	if validator.IsEmpty(r.FullName) {
		errs = append(errs, validator.ValidationError{Field: "full_name", Message: "full_name is required"})
	}
	if len(r.FullName) > 150 {
		errs = append(errs, validator.ValidationError{Field: "full_name", Message: "full_name must not exceed 150 characters"})
	}

	if !IsValidRole(Role(r.Role)) {
		errs = append(errs, validator.ValidationError{Field: "role", Message: "role must be one of SUPER_ADMIN, COMPANY_MANAGER, HR_EMPLOYEE, EMPLOYEE"})
	}
	if Role(r.Role) == RoleHREmployee && (r.BranchID == nil || validator.IsEmpty(*r.BranchID)) {
		errs = append(errs, validator.ValidationError{Field: "branch_id", Message: "branch_id is required for HR_EMPLOYEE"})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// UpdateUserRequest represents the request structure for updating a user.
type UpdateUserRequest struct {
	ID           string  `json:"id"`
	CompanyID    string  `json:"-"` // From scope
	BranchID     *string `json:"branch_id,omitempty"`
	FullName     *string `json:"full_name,omitempty"`
	Role         *string `json:"role,omitempty"`
	EmployeeCode *string `json:"employee_code,omitempty"`
	PhoneNumber  *string `json:"phone_number,omitempty"`
	IsActive     *bool   `json:"is_active,omitempty"`
}

func (r *UpdateUserRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.ID) {
		errs = append(errs, validator.ValidationError{Field: "id", Message: "id is required"})
	}

	if r.FullName != nil {
		if validator.IsEmpty(*r.FullName) {
			errs = append(errs, validator.ValidationError{Field: "full_name", Message: "full_name must not be empty"})
		}
		if len(*r.FullName) > 150 {
			errs = append(errs, validator.ValidationError{Field: "full_name", Message: "full_name must not exceed 150 characters"})
		}
	}

	if r.Role != nil && !IsValidRole(Role(*r.Role)) {
		errs = append(errs, validator.ValidationError{Field: "role", Message: "invalid role"})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}
