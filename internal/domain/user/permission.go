package user

type Permission string

const (
	// Self Management
	PermissionViewOwnProfile Permission = "profile.view_own"
	PermissionEditOwnProfile Permission = "profile.edit_own"

	// Attendance
	PermissionAttendanceCheckIn Permission = "attendance.check_in"
	PermissionAttendanceViewOwn Permission = "attendance.view_own"
	PermissionAttendanceViewAll Permission = "attendance.view_all"
	PermissionAttendanceManage  Permission = "attendance.manage" // groups and periods

	// Employee Management
	PermissionEmployeeViewAll Permission = "employee.view_all"
	PermissionEmployeeManage  Permission = "employee.manage"

	// Tenant Hierarchy
	PermissionCompanyView   Permission = "company.view"
	PermissionCompanyManage Permission = "company.manage"
	PermissionBranchManage  Permission = "branch.manage"

	// Reports
	PermissionReportsView Permission = "reports.view"

	// Platform
	PermissionPlatformAdmin Permission = "platform.admin"
)

// RolePermissions maps roles to their permissions
var RolePermissions = map[Role][]Permission{
	RoleSuperAdmin: {
		PermissionViewOwnProfile,
		PermissionEditOwnProfile,
		PermissionAttendanceCheckIn,
		PermissionAttendanceViewOwn,
		PermissionAttendanceViewAll,
		PermissionAttendanceManage,
		PermissionEmployeeViewAll,
		PermissionEmployeeManage,
		PermissionCompanyView,
		PermissionCompanyManage,
		PermissionBranchManage,
		PermissionReportsView,
		PermissionPlatformAdmin,
	},
	RoleCompanyManager: {
		PermissionViewOwnProfile,
		PermissionEditOwnProfile,
		PermissionAttendanceCheckIn,
		PermissionAttendanceViewOwn,
		PermissionAttendanceViewAll,
		PermissionAttendanceManage,
		PermissionEmployeeViewAll,
		PermissionEmployeeManage,
		PermissionCompanyView,
		PermissionCompanyManage,
		PermissionBranchManage,
		PermissionReportsView,
	},
	RoleHREmployee: {
		// Scoped to the assigned branch by the access scope; the permission
		// only gates the route.
		PermissionViewOwnProfile,
		PermissionEditOwnProfile,
		PermissionAttendanceCheckIn,
		PermissionAttendanceViewOwn,
		PermissionAttendanceViewAll,
		PermissionAttendanceManage,
		PermissionEmployeeViewAll,
		PermissionEmployeeManage,
		PermissionCompanyView,
		PermissionReportsView,
	},
	RoleEmployee: {
		PermissionViewOwnProfile,
		PermissionEditOwnProfile,
		PermissionAttendanceCheckIn,
		PermissionAttendanceViewOwn,
	},
}

// HasPermission checks if a role has a specific permission
func HasPermission(role Role, permission Permission) bool {
	permissions, exists := RolePermissions[role]
	if !exists {
		return false
	}

	for _, p := range permissions {
		if p == permission {
			return true
		}
	}

	return false
}
