package user

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func strPtr(s string) *string { return &s }

func TestScopeSuperAdminUnrestricted(t *testing.T) {
	scope := Scope{UserID: "admin-1", Role: RoleSuperAdmin}

	assert.Nil(t, scope.CompanyFilter())
	assert.Nil(t, scope.BranchFilter())
	assert.False(t, scope.SelfOnly())
	assert.True(t, scope.AllowsCompany("any-company"))
	assert.True(t, scope.AllowsBranch("any-company", "any-branch"))
	assert.True(t, scope.CanWriteCompany("any-company"))
	assert.True(t, scope.AllowsUser(User{ID: "someone-else"}))
}

func TestScopeCompanyManagerBoundedByCompany(t *testing.T) {
	scope := Scope{
		UserID:    "mgr-1",
		Role:      RoleCompanyManager,
		CompanyID: strPtr("company-a"),
	}

	assert.Equal(t, "company-a", *scope.CompanyFilter())
	assert.Nil(t, scope.BranchFilter())

	assert.True(t, scope.AllowsCompany("company-a"))
	assert.False(t, scope.AllowsCompany("company-b"))

	// Every branch of the own company, no branch of others.
	assert.True(t, scope.AllowsBranch("company-a", "branch-1"))
	assert.True(t, scope.AllowsBranch("company-a", "branch-2"))
	assert.False(t, scope.AllowsBranch("company-b", "branch-3"))

	assert.True(t, scope.AllowsUser(User{ID: "emp-1", CompanyID: strPtr("company-a")}))
	assert.False(t, scope.AllowsUser(User{ID: "emp-2", CompanyID: strPtr("company-b")}))
	assert.False(t, scope.AllowsUser(User{ID: "emp-3"}))

	assert.True(t, scope.CanWriteCompany("company-a"))
	assert.False(t, scope.CanWriteCompany("company-b"))
}

func TestScopeHREmployeeBoundedByBranch(t *testing.T) {
	scope := Scope{
		UserID:    "hr-1",
		Role:      RoleHREmployee,
		CompanyID: strPtr("company-a"),
		BranchID:  strPtr("branch-1"),
	}

	assert.Equal(t, "company-a", *scope.CompanyFilter())
	assert.Equal(t, "branch-1", *scope.BranchFilter())

	assert.True(t, scope.AllowsBranch("company-a", "branch-1"))
	assert.False(t, scope.AllowsBranch("company-a", "branch-2"))
	assert.False(t, scope.AllowsBranch("company-b", "branch-1"))

	// Employees of the assigned branch only, plus self.
	sameBranch := User{ID: "emp-1", CompanyID: strPtr("company-a"), BranchID: strPtr("branch-1")}
	otherBranch := User{ID: "emp-2", CompanyID: strPtr("company-a"), BranchID: strPtr("branch-2")}
	otherCompany := User{ID: "emp-3", CompanyID: strPtr("company-b"), BranchID: strPtr("branch-1")}
	self := User{ID: "hr-1", CompanyID: strPtr("company-a")}

	assert.True(t, scope.AllowsUser(sameBranch))
	assert.False(t, scope.AllowsUser(otherBranch))
	assert.False(t, scope.AllowsUser(otherCompany))
	assert.True(t, scope.AllowsUser(self))

	assert.True(t, scope.CanWriteBranch("company-a", "branch-1"))
	assert.False(t, scope.CanWriteBranch("company-a", "branch-2"))
	assert.False(t, scope.CanWriteCompany("company-a"))
}

func TestScopeEmployeeSelfOnly(t *testing.T) {
	scope := Scope{
		UserID:    "emp-1",
		Role:      RoleEmployee,
		CompanyID: strPtr("company-a"),
	}

	assert.True(t, scope.SelfOnly())
	assert.True(t, scope.AllowsUser(User{ID: "emp-1", CompanyID: strPtr("company-a")}))
	assert.False(t, scope.AllowsUser(User{ID: "emp-2", CompanyID: strPtr("company-a")}))
	assert.False(t, scope.AllowsBranch("company-a", "branch-1"))
	assert.False(t, scope.CanWriteCompany("company-a"))
	assert.False(t, scope.CanWriteBranch("company-a", "branch-1"))
}

func TestScopeFromClaims(t *testing.T) {
	t.Run("manager claims", func(t *testing.T) {
		scope, err := ScopeFromClaims(map[string]interface{}{
			"user_id":    "mgr-1",
			"role":       "COMPANY_MANAGER",
			"company_id": "company-a",
		})
		assert.NoError(t, err)
		assert.Equal(t, RoleCompanyManager, scope.Role)
		assert.Equal(t, "company-a", *scope.CompanyID)
	})

	t.Run("missing user id", func(t *testing.T) {
		_, err := ScopeFromClaims(map[string]interface{}{"role": "EMPLOYEE"})
		assert.ErrorIs(t, err, ErrAccessDenied)
	})

	t.Run("unknown role", func(t *testing.T) {
		_, err := ScopeFromClaims(map[string]interface{}{
			"user_id": "u-1",
			"role":    "INTERN",
		})
		assert.ErrorIs(t, err, ErrInvalidRole)
	})

	t.Run("employee without company", func(t *testing.T) {
		_, err := ScopeFromClaims(map[string]interface{}{
			"user_id": "u-1",
			"role":    "EMPLOYEE",
		})
		assert.ErrorIs(t, err, ErrCompanyIDRequired)
	})

	t.Run("hr without branch", func(t *testing.T) {
		_, err := ScopeFromClaims(map[string]interface{}{
			"user_id":    "u-1",
			"role":       "HR_EMPLOYEE",
			"company_id": "company-a",
		})
		assert.ErrorIs(t, err, ErrBranchIDRequired)
	})
}

func TestHasPermission(t *testing.T) {
	assert.True(t, HasPermission(RoleSuperAdmin, PermissionPlatformAdmin))
	assert.True(t, HasPermission(RoleCompanyManager, PermissionEmployeeManage))
	assert.True(t, HasPermission(RoleHREmployee, PermissionReportsView))
	assert.False(t, HasPermission(RoleEmployee, PermissionReportsView))
	assert.False(t, HasPermission(RoleEmployee, PermissionAttendanceViewAll))
	assert.True(t, HasPermission(RoleEmployee, PermissionAttendanceCheckIn))
	assert.False(t, HasPermission(Role("UNKNOWN"), PermissionViewOwnProfile))
}
