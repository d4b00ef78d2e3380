package user

import "time"

type Role string

const (
	RoleSuperAdmin     Role = "SUPER_ADMIN"     // Platform administrator - full access
	RoleCompanyManager Role = "COMPANY_MANAGER" // Manages one company and all its branches
	RoleHREmployee     Role = "HR_EMPLOYEE"     // Manages one assigned branch
	RoleEmployee       Role = "EMPLOYEE"        // Regular employee
)

// ValidRoles lists every role a user can be assigned.
var ValidRoles = []Role{RoleSuperAdmin, RoleCompanyManager, RoleHREmployee, RoleEmployee}

func IsValidRole(r Role) bool {
	for _, role := range ValidRoles {
		if r == role {
			return true
		}
	}
	return false
}

type User struct {
	ID           string
	CompanyID    *string
	BranchID     *string // Assigned branch, set for HR_EMPLOYEE
	Email        string
	PasswordHash *string
	FullName     string
	Role         Role
	EmployeeCode *string
	PhoneNumber  *string
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time

	// DTO / Join
	CompanyName *string
	BranchName  *string
}

func (u *User) IsSuperAdmin() bool {
	return u.Role == RoleSuperAdmin
}

func (u *User) IsCompanyManager() bool {
	return u.Role == RoleCompanyManager
}

func (u *User) IsHREmployee() bool {
	return u.Role == RoleHREmployee
}

// CanManageCompany checks if user can manage company-level records
func (u *User) CanManageCompany() bool {
	return u.Role == RoleSuperAdmin || u.Role == RoleCompanyManager
}

// CanManageHR checks if user can manage employees and attendance setup
func (u *User) CanManageHR() bool {
	return u.Role == RoleSuperAdmin || u.Role == RoleCompanyManager || u.Role == RoleHREmployee
}
