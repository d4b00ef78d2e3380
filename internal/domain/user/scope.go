package user

// Scope is the resolved access boundary of an acting user. It is computed
// once per request from the JWT claims and passed explicitly into services
// and repositories; nothing below the handler layer reads ambient request
// state.
//
// The filter methods return pointers so repositories can translate them
// directly into optional WHERE clauses: a nil filter means unrestricted.
type Scope struct {
	UserID    string
	Role      Role
	CompanyID *string
	BranchID  *string
}

// NewScope resolves the access scope for a user per their single role.
func NewScope(u User) Scope {
	return Scope{
		UserID:    u.ID,
		Role:      u.Role,
		CompanyID: u.CompanyID,
		BranchID:  u.BranchID,
	}
}

// CompanyFilter returns the company ID that company-level queries must be
// restricted to, or nil when the scope is unrestricted.
func (s Scope) CompanyFilter() *string {
	if s.Role == RoleSuperAdmin {
		return nil
	}
	return s.CompanyID
}

// BranchFilter returns the branch ID that branch-level queries must be
// restricted to, or nil when the scope covers every branch of the company.
func (s Scope) BranchFilter() *string {
	if s.Role == RoleHREmployee {
		return s.BranchID
	}
	return nil
}

// SelfOnly reports whether the scope is limited to the acting user's own
// records.
func (s Scope) SelfOnly() bool {
	return s.Role == RoleEmployee
}

// AllowsCompany reports whether records of the given company are visible.
func (s Scope) AllowsCompany(companyID string) bool {
	if s.Role == RoleSuperAdmin {
		return true
	}
	return s.CompanyID != nil && *s.CompanyID == companyID
}

// AllowsBranch reports whether records of the given branch are visible. The
// branch is identified by its own ID plus the company that owns it, so the
// transitive company bound always applies.
func (s Scope) AllowsBranch(companyID, branchID string) bool {
	if !s.AllowsCompany(companyID) {
		return false
	}
	if s.Role == RoleHREmployee {
		return s.BranchID != nil && *s.BranchID == branchID
	}
	return s.Role != RoleEmployee
}

// AllowsUser reports whether the target user's records are visible.
func (s Scope) AllowsUser(target User) bool {
	switch s.Role {
	case RoleSuperAdmin:
		return true
	case RoleCompanyManager:
		return s.CompanyID != nil && target.CompanyID != nil && *s.CompanyID == *target.CompanyID
	case RoleHREmployee:
		if s.CompanyID == nil || target.CompanyID == nil || *s.CompanyID != *target.CompanyID {
			return false
		}
		if target.ID == s.UserID {
			return true
		}
		return s.BranchID != nil && target.BranchID != nil && *s.BranchID == *target.BranchID
	default:
		return target.ID == s.UserID
	}
}

// CanWriteCompany reports whether the scope may modify the given company.
func (s Scope) CanWriteCompany(companyID string) bool {
	switch s.Role {
	case RoleSuperAdmin:
		return true
	case RoleCompanyManager:
		return s.AllowsCompany(companyID)
	default:
		return false
	}
}

// CanWriteBranch reports whether the scope may modify records under the
// given branch (departments, memberships, attendance groups, periods).
func (s Scope) CanWriteBranch(companyID, branchID string) bool {
	switch s.Role {
	case RoleSuperAdmin, RoleCompanyManager:
		return s.AllowsCompany(companyID)
	case RoleHREmployee:
		return s.AllowsBranch(companyID, branchID)
	default:
		return false
	}
}
