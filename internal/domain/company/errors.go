package company

import "errors"

var (
	ErrCompanyNotFound    = errors.New("company not found")
	ErrCompanyNameExists  = errors.New("company with this name already exists")
	ErrCompanyInactive    = errors.New("company is inactive")
	ErrUnauthorizedAccess = errors.New("unauthorized access to company")
)
