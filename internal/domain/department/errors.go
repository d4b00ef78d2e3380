package department

import "errors"

var (
	ErrDepartmentNotFound   = errors.New("department not found")
	ErrDepartmentCodeExists = errors.New("department code already used in this branch")
	ErrMembershipNotFound   = errors.New("department membership not found")
	ErrAlreadyMember        = errors.New("employee already has an active membership in this department")
	ErrUnauthorizedAccess   = errors.New("unauthorized access to department")
)
