package user

// ScopeFromClaims rebuilds the access scope from decoded JWT claims. Missing
// or malformed claims degrade to the most restrictive shape rather than
// widening access.
func ScopeFromClaims(claims map[string]interface{}) (Scope, error) {
	userID, ok := claims["user_id"].(string)
	if !ok || userID == "" {
		return Scope{}, ErrAccessDenied
	}

	roleStr, ok := claims["role"].(string)
	if !ok || !IsValidRole(Role(roleStr)) {
		return Scope{}, ErrInvalidRole
	}

	scope := Scope{
		UserID: userID,
		Role:   Role(roleStr),
	}

	if companyID, ok := claims["company_id"].(string); ok && companyID != "" {
		scope.CompanyID = &companyID
	}
	if branchID, ok := claims["branch_id"].(string); ok && branchID != "" {
		scope.BranchID = &branchID
	}

	// Non-admin roles without a company cannot see tenant data at all.
	if scope.Role != RoleSuperAdmin && scope.CompanyID == nil {
		return Scope{}, ErrCompanyIDRequired
	}
	if scope.Role == RoleHREmployee && scope.BranchID == nil {
		return Scope{}, ErrBranchIDRequired
	}

	return scope, nil
}
