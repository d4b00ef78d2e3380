package company

import (
	"github.com/attendly/attendance-backend-go/internal/pkg/validator"
)

// CompanyResponse represents the response structure for a company.
type CompanyResponse struct {
	ID               string  `json:"id"`
	Name             string  `json:"name"`
	OwnerUserID      *string `json:"owner_user_id,omitempty"`
	Description      string  `json:"description,omitempty"`
	Website          *string `json:"website,omitempty"`
	PhoneNumber      *string `json:"phone_number,omitempty"`
	Email            *string `json:"email,omitempty"`
	Address          *string `json:"address,omitempty"`
	SubscriptionPlan string  `json:"subscription_plan"`
	MaxEmployees     int     `json:"max_employees"`
	IsActive         bool    `json:"is_active"`
	EmployeeCount    *int    `json:"employee_count,omitempty"`
	BranchCount      *int    `json:"branch_count,omitempty"`
}

func ToResponse(c Company) CompanyResponse {
	return CompanyResponse{
		ID:               c.ID,
		Name:             c.Name,
		OwnerUserID:      c.OwnerUserID,
		Description:      c.Description,
		Website:          c.Website,
		PhoneNumber:      c.PhoneNumber,
		Email:            c.Email,
		Address:          c.Address,
		SubscriptionPlan: c.SubscriptionPlan,
		MaxEmployees:     c.MaxEmployees,
		IsActive:         c.IsActive,
		EmployeeCount:    c.EmployeeCount,
		BranchCount:      c.BranchCount,
	}
}

// CreateCompanyRequest represents the request structure for creating a
// company. Super admin only.
type CreateCompanyRequest struct {
	Name             string  `json:"name"`
	OwnerUserID      *string `json:"owner_user_id,omitempty"`
	Description      string  `json:"description,omitempty"`
	Website          *string `json:"website,omitempty"`
	Email            *string `json:"email,omitempty"`
	Address          *string `json:"address,omitempty"`
	SubscriptionPlan *string `json:"subscription_plan,omitempty"`
	MaxEmployees     *int    `json:"max_employees,omitempty"`
}

func (r *CreateCompanyRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Name) {
		errs = append(errs, validator.ValidationError{Field: "name", Message: "name is required"})
	}
	if len(r.Name) > 255 {
		errs = append(errs, validator.ValidationError{Field: "name", Message: "name must not exceed 255 characters"})
	}
	if r.Email != nil && !validator.IsValidEmail(*r.Email) {
		errs = append(errs, validator.ValidationError{Field: "email", Message: "invalid email format"})
	}
	if r.MaxEmployees != nil && *r.MaxEmployees < 1 {
		errs = append(errs, validator.ValidationError{Field: "max_employees", Message: "max_employees must be at least 1"})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// UpdateCompanyRequest represents the request structure for updating a
// company.
type UpdateCompanyRequest struct {
	ID               string  `json:"id"`
	OwnerUserID      *string `json:"-"` // Set during signup only
	Name             *string `json:"name,omitempty"`
	Description      *string `json:"description,omitempty"`
	Website          *string `json:"website,omitempty"`
	PhoneNumber      *string `json:"phone_number,omitempty"`
	Email            *string `json:"email,omitempty"`
	Address          *string `json:"address,omitempty"`
	SubscriptionPlan *string `json:"subscription_plan,omitempty"`
	MaxEmployees     *int    `json:"max_employees,omitempty"`
	IsActive         *bool   `json:"is_active,omitempty"`
}

func (r *UpdateCompanyRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.ID) {
		errs = append(errs, validator.ValidationError{Field: "id", Message: "id is required"})
	}
	if r.Name != nil {
		if validator.IsEmpty(*r.Name) {
			errs = append(errs, validator.ValidationError{Field: "name", Message: "name must not be empty"})
		}
		if len(*r.Name) > 255 {
			errs = append(errs, validator.ValidationError{Field: "name", Message: "name must not exceed 255 characters"})
		}
	}
	if r.Email != nil && !validator.IsValidEmail(*r.Email) {
		errs = append(errs, validator.ValidationError{Field: "email", Message: "invalid email format"})
	}
	if r.MaxEmployees != nil && *r.MaxEmployees < 1 {
		errs = append(errs, validator.ValidationError{Field: "max_employees", Message: "max_employees must be at least 1"})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}
