package department

import (
	"time"

	"github.com/attendly/attendance-backend-go/internal/pkg/validator"
)

// DepartmentResponse represents the response structure for a department.
type DepartmentResponse struct {
	ID          string  `json:"id"`
	BranchID    string  `json:"branch_id"`
	BranchName  *string `json:"branch_name,omitempty"`
	Name        string  `json:"name"`
	Code        string  `json:"code"`
	Description string  `json:"description,omitempty"`
	HeadUserID  *string `json:"head_user_id,omitempty"`
	IsActive    bool    `json:"is_active"`
	MemberCount *int    `json:"member_count,omitempty"`
}

func ToResponse(d Department) DepartmentResponse {
	return DepartmentResponse{
		ID:          d.ID,
		BranchID:    d.BranchID,
		BranchName:  d.BranchName,
		Name:        d.Name,
		Code:        d.Code,
		Description: d.Description,
		HeadUserID:  d.HeadUserID,
		IsActive:    d.IsActive,
		MemberCount: d.MemberCount,
	}
}

// CreateDepartmentRequest represents the request structure for creating a
// department.
type CreateDepartmentRequest struct {
	BranchID    string  `json:"branch_id"`
	Name        string  `json:"name"`
	Code        string  `json:"code"`
	Description string  `json:"description,omitempty"`
	HeadUserID  *string `json:"head_user_id,omitempty"`
}

func (r *CreateDepartmentRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.BranchID) {
		errs = append(errs, validator.ValidationError{Field: "branch_id", Message: "branch_id is required"})
	}
	if validator.IsEmpty(r.Name) {
		errs = append(errs, validator.ValidationError{Field: "name", Message: "name is required"})
	}
	if len(r.Name) > 255 {
		errs = append(errs, validator.ValidationError{Field: "name", Message: "name must not exceed 255 characters"})
	}
	if !validator.IsValidOrgCode(r.Code) {
		errs = append(errs, validator.ValidationError{Field: "code", Message: "code must be 2-20 characters of A-Z, 0-9 or dash"})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// UpdateDepartmentRequest represents the request structure for updating a
// department.
type UpdateDepartmentRequest struct {
	ID          string  `json:"id"`
	Name        *string `json:"name,omitempty"`
	Code        *string `json:"code,omitempty"`
	Description *string `json:"description,omitempty"`
	HeadUserID  *string `json:"head_user_id,omitempty"`
	IsActive    *bool   `json:"is_active,omitempty"`
}

func (r *UpdateDepartmentRequest) Validate() error {
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

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// MembershipResponse represents the response structure for a department
// membership.
type MembershipResponse struct {
	ID             string  `json:"id"`
	UserID         string  `json:"user_id"`
	UserName       *string `json:"user_name,omitempty"`
	UserEmail      *string `json:"user_email,omitempty"`
	DepartmentID   string  `json:"department_id"`
	DepartmentName *string `json:"department_name,omitempty"`
	Position       string  `json:"position,omitempty"`
	IsActive       bool    `json:"is_active"`
	JoinedAt       string  `json:"joined_at"`
	LeftAt         *string `json:"left_at,omitempty"`
}

func ToMembershipResponse(m Membership) MembershipResponse {
	resp := MembershipResponse{
		ID:             m.ID,
		UserID:         m.UserID,
		UserName:       m.UserName,
		UserEmail:      m.UserEmail,
		DepartmentID:   m.DepartmentID,
		DepartmentName: m.DepartmentName,
		Position:       m.Position,
		IsActive:       m.IsActive,
		JoinedAt:       m.JoinedAt.Format(time.RFC3339),
	}
	if m.LeftAt != nil {
		v := m.LeftAt.Format(time.RFC3339)
		resp.LeftAt = &v
	}
	return resp
}

// AddMemberRequest represents the request structure for adding an employee to
// a department.
type AddMemberRequest struct {
	DepartmentID string `json:"-"` // From URL
	UserID       string `json:"user_id"`
	Position     string `json:"position,omitempty"`
}

func (r *AddMemberRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.UserID) {
		errs = append(errs, validator.ValidationError{Field: "user_id", Message: "user_id is required"})
	}
	if len(r.Position) > 100 {
		errs = append(errs, validator.ValidationError{Field: "position", Message: "position must not exceed 100 characters"})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}
