package branch

import "errors"

var (
	ErrBranchNotFound     = errors.New("branch not found")
	ErrBranchCodeExists   = errors.New("branch code already used in this company")
	ErrBranchNameExists   = errors.New("branch with this name already exists")
	ErrUnauthorizedAccess = errors.New("unauthorized access to branch")
)
