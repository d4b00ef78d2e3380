package response

import (
	"errors"
	"net/http"

	"github.com/attendly/attendance-backend-go/internal/domain/attendance"
	"github.com/attendly/attendance-backend-go/internal/domain/auth"
	"github.com/attendly/attendance-backend-go/internal/domain/branch"
	"github.com/attendly/attendance-backend-go/internal/domain/company"
	"github.com/attendly/attendance-backend-go/internal/domain/department"
	"github.com/attendly/attendance-backend-go/internal/domain/user"
	"github.com/attendly/attendance-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	// Auth domain errors
	switch {
	case errors.Is(err, auth.ErrInvalidCredentials):
		Unauthorized(w, err.Error())
	case errors.Is(err, auth.ErrInvalidToken):
		Unauthorized(w, "Invalid token")
	case errors.Is(err, auth.ErrTokenExpired):
		Unauthorized(w, "Token expired")
	case errors.Is(err, auth.ErrRefreshTokenRevoked):
		Unauthorized(w, "Refresh token revoked")
	case errors.Is(err, auth.ErrUserInactive):
		Forbidden(w, "User account is inactive")

	// User domain errors
	case errors.Is(err, user.ErrUserNotFound):
		NotFound(w, "User not found")
	case errors.Is(err, user.ErrUserEmailExists):
		Conflict(w, "Email already registered")
	case errors.Is(err, user.ErrEmployeeCodeExists):
		Conflict(w, "Employee code already used in this company")
	case errors.Is(err, user.ErrEmployeeLimitReached):
		Conflict(w, "Company employee limit reached")
	case errors.Is(err, user.ErrAccessDenied),
		errors.Is(err, user.ErrAdminAccessRequired),
		errors.Is(err, user.ErrManagerAccessRequired),
		errors.Is(err, user.ErrHRAccessRequired):
		Forbidden(w, err.Error())
	case errors.Is(err, user.ErrInvalidRole),
		errors.Is(err, user.ErrCompanyIDRequired),
		errors.Is(err, user.ErrBranchIDRequired):
		BadRequest(w, err.Error(), nil)

	// Company domain errors
	case errors.Is(err, company.ErrCompanyNotFound):
		NotFound(w, "Company not found")
	case errors.Is(err, company.ErrCompanyNameExists):
		Conflict(w, "Company with this name already exists")
	case errors.Is(err, company.ErrUnauthorizedAccess):
		Forbidden(w, "Unauthorized access to company")

	// Branch domain errors
	case errors.Is(err, branch.ErrBranchNotFound):
		NotFound(w, "Branch not found")
	case errors.Is(err, branch.ErrBranchCodeExists):
		Conflict(w, "Branch code already used in this company")
	case errors.Is(err, branch.ErrUnauthorizedAccess):
		Forbidden(w, "Unauthorized access to branch")

	// Department domain errors
	case errors.Is(err, department.ErrDepartmentNotFound):
		NotFound(w, "Department not found")
	case errors.Is(err, department.ErrDepartmentCodeExists):
		Conflict(w, "Department code already used in this branch")
	case errors.Is(err, department.ErrMembershipNotFound):
		NotFound(w, "Department membership not found")
	case errors.Is(err, department.ErrAlreadyMember):
		Conflict(w, "Employee already has an active membership in this department")
	case errors.Is(err, department.ErrUnauthorizedAccess):
		Forbidden(w, "Unauthorized access to department")

	// Attendance domain errors
	case errors.Is(err, attendance.ErrGroupNotFound):
		NotFound(w, "Attendance group not found")
	case errors.Is(err, attendance.ErrPeriodNotFound):
		NotFound(w, "Period not found")
	case errors.Is(err, attendance.ErrCheckInNotFound):
		NotFound(w, "Check-in not found")
	case errors.Is(err, attendance.ErrSummaryNotFound):
		NotFound(w, "Attendance summary not found")
	case errors.Is(err, attendance.ErrGroupInactive):
		Conflict(w, "Attendance group is inactive")
	case errors.Is(err, attendance.ErrNotGroupMember):
		Forbidden(w, "Employee is not a member of this attendance group")
	case errors.Is(err, attendance.ErrAlreadyMember):
		Conflict(w, "Employee is already a member of this attendance group")
	case errors.Is(err, attendance.ErrAlreadyCheckedIn):
		Conflict(w, "Already checked in today for this group")
	case errors.Is(err, attendance.ErrNoOpenCheckIn):
		Conflict(w, "No open check-in found for today")
	case errors.Is(err, attendance.ErrGroupHasCheckIns):
		Conflict(w, "Attendance group has recorded check-ins and cannot be deleted")
	case errors.Is(err, attendance.ErrInvalidRadius),
		errors.Is(err, attendance.ErrEndBeforeStart):
		BadRequest(w, err.Error(), nil)
	case errors.Is(err, attendance.ErrUnauthorizedGroup),
		errors.Is(err, attendance.ErrUnauthorizedCheckIn):
		Forbidden(w, err.Error())

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
