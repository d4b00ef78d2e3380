package branch

import (
	"github.com/attendly/attendance-backend-go/internal/pkg/validator"
)

// BranchResponse represents the response structure for a branch.
type BranchResponse struct {
	ID              string   `json:"id"`
	CompanyID       string   `json:"company_id"`
	Name            string   `json:"name"`
	Code            string   `json:"code"`
	Address         *string  `json:"address,omitempty"`
	PhoneNumber     *string  `json:"phone_number,omitempty"`
	Email           *string  `json:"email,omitempty"`
	ManagerUserID   *string  `json:"manager_user_id,omitempty"`
	Latitude        *float64 `json:"latitude,omitempty"`
	Longitude       *float64 `json:"longitude,omitempty"`
	IsActive        bool     `json:"is_active"`
	DepartmentCount *int     `json:"department_count,omitempty"`
	EmployeeCount   *int     `json:"employee_count,omitempty"`
}

func ToResponse(b Branch) BranchResponse {
	return BranchResponse{
		ID:              b.ID,
		CompanyID:       b.CompanyID,
		Name:            b.Name,
		Code:            b.Code,
		Address:         b.Address,
		PhoneNumber:     b.PhoneNumber,
		Email:           b.Email,
		ManagerUserID:   b.ManagerUserID,
		Latitude:        b.Latitude,
		Longitude:       b.Longitude,
		IsActive:        b.IsActive,
		DepartmentCount: b.DepartmentCount,
		EmployeeCount:   b.EmployeeCount,
	}
}

// CreateBranchRequest represents the request structure for creating a branch.
type CreateBranchRequest struct {
	CompanyID     string   `json:"-"` // From scope
	Name          string   `json:"name"`
	Code          string   `json:"code"`
	Address       *string  `json:"address,omitempty"`
	PhoneNumber   *string  `json:"phone_number,omitempty"`
	Email         *string  `json:"email,omitempty"`
	ManagerUserID *string  `json:"manager_user_id,omitempty"`
	Latitude      *float64 `json:"latitude,omitempty"`
	Longitude     *float64 `json:"longitude,omitempty"`
}

func (r *CreateBranchRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Name) {
		errs = append(errs, validator.ValidationError{Field: "name", Message: "name is required"})
	}
	if len(r.Name) > 255 {
		errs = append(errs, validator.ValidationError{Field: "name", Message: "name must not exceed 255 characters"})
	}
	if !validator.IsValidOrgCode(r.Code) {
		errs = append(errs, validator.ValidationError{Field: "code", Message: "code must be 2-20 characters of A-Z, 0-9 or dash"})
	}
	if r.Email != nil && !validator.IsValidEmail(*r.Email) {
		errs = append(errs, validator.ValidationError{Field: "email", Message: "invalid email format"})
	}
	if r.Latitude != nil && !validator.IsValidLatitude(*r.Latitude) {
		errs = append(errs, validator.ValidationError{Field: "latitude", Message: "latitude must be between -90 and 90"})
	}
	if r.Longitude != nil && !validator.IsValidLongitude(*r.Longitude) {
		errs = append(errs, validator.ValidationError{Field: "longitude", Message: "longitude must be between -180 and 180"})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// UpdateBranchRequest represents the request structure for updating a branch.
type UpdateBranchRequest struct {
	ID            string   `json:"id"`
	CompanyID     string   `json:"-"` // From scope
	Name          *string  `json:"name,omitempty"`
	Code          *string  `json:"code,omitempty"`
	Address       *string  `json:"address,omitempty"`
	PhoneNumber   *string  `json:"phone_number,omitempty"`
	Email         *string  `json:"email,omitempty"`
	ManagerUserID *string  `json:"manager_user_id,omitempty"`
	Latitude      *float64 `json:"latitude,omitempty"`
	Longitude     *float64 `json:"longitude,omitempty"`
	IsActive      *bool    `json:"is_active,omitempty"`
}

func (r *UpdateBranchRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.ID) {
		errs = append(errs, validator.ValidationError{Field: "id", Message: "id is required"})
	}
	if r.Name != nil && validator.IsEmpty(*r.Name) {
		errs = append(errs, validator.ValidationError{Field: "name", Message: "name must not be empty"})
	}
	if r.Code != nil && !validator.IsValidOrgCode(*r.Code) {
		errs = append(errs, validator.ValidationError{Field: "code", Message: "code must be 2-20 characters of A-Z, 0-9 or dash"})
	}
	if r.Latitude != nil && !validator.IsValidLatitude(*r.Latitude) {
		errs = append(errs, validator.ValidationError{Field: "latitude", Message: "latitude must be between -90 and 90"})
	}
	if r.Longitude != nil && !validator.IsValidLongitude(*r.Longitude) {
		errs = append(errs, validator.ValidationError{Field: "longitude", Message: "longitude must be between -180 and 180"})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}
