package user

import "errors"

var (
	ErrUserNotFound             = errors.New("user not found")
	ErrUserEmailExists          = errors.New("email already registered")
	ErrEmployeeCodeExists       = errors.New("employee code already used in this company")
	ErrInvalidEmailFormat       = errors.New("invalid email format")
	ErrInvalidPasswordLength    = errors.New("password must be at least 8 characters")
	ErrInvalidRole              = errors.New("invalid role")
	ErrAccessDenied             = errors.New("access denied for this scope")
	ErrAdminAccessRequired      = errors.New("super admin access required")
	ErrManagerAccessRequired    = errors.New("company manager access required")
	ErrHRAccessRequired         = errors.New("hr access required")
	ErrCompanyIDRequired        = errors.New("company ID is required")
	ErrBranchIDRequired         = errors.New("branch ID is required for hr employees")
	ErrEmployeeLimitReached     = errors.New("company employee limit reached")
	ErrUpdatedAtBeforeCreatedAt = errors.New("updated_at cannot be before created_at")
)
