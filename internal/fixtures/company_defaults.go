package fixtures

import (
	"time"

	"github.com/attendly/attendance-backend-go/internal/domain/attendance"
	"github.com/attendly/attendance-backend-go/internal/domain/branch"
	"github.com/attendly/attendance-backend-go/internal/domain/department"
)

func strPtr(s string) *string { return &s }

// GetDefaultBranch returns the headquarters branch created for every new
// company at signup.
func GetDefaultBranch(companyID string, companyName string) branch.Branch {
	return branch.Branch{
		CompanyID: companyID,
		Name:      "Headquarters",
		Code:      "HQ",
		Address:   strPtr(companyName + " - Main Office"),
	}
}

// GetDefaultDepartments returns standard organizational units for a new
// branch.
func GetDefaultDepartments(branchID string) []department.Department {
	return []department.Department{
		{BranchID: branchID, Name: "General Affairs", Code: "GA"},
		{BranchID: branchID, Name: "Human Resources", Code: "HR"},
		{BranchID: branchID, Name: "Engineering", Code: "ENG"},
		{BranchID: branchID, Name: "Finance", Code: "FIN"},
	}
}

// GetDefaultGroup returns an office attendance group anchored at the given
// coordinates.
func GetDefaultGroup(companyID string, branchID *string, lat, lon float64) attendance.Group {
	return attendance.Group{
		CompanyID:    companyID,
		BranchID:     branchID,
		Name:         "Main Office",
		Description:  "Default office check-in location",
		Latitude:     lat,
		Longitude:    lon,
		RadiusMeters: 100,
	}
}

// GetDefaultPeriods returns standard shifts for a new attendance group
// (Mon-Fri office hours plus a night shift).
func GetDefaultPeriods(groupID string) []attendance.Period {
	return []attendance.Period{
		{
			GroupID:                groupID,
			Name:                   "Office Hours",
			StartTime:              time.Date(0, 1, 1, 9, 0, 0, 0, time.UTC),
			EndTime:                time.Date(0, 1, 1, 17, 0, 0, 0, time.UTC),
			Weekdays:               "1,2,3,4,5",
			LateGraceMinutes:       15,
			EarlyLeaveGraceMinutes: 15,
		},
		{
			GroupID:                groupID,
			Name:                   "Night Shift",
			StartTime:              time.Date(0, 1, 1, 22, 0, 0, 0, time.UTC),
			EndTime:                time.Date(0, 1, 1, 23, 59, 0, 0, time.UTC),
			Weekdays:               "1,2,3,4,5",
			LateGraceMinutes:       15,
			EarlyLeaveGraceMinutes: 0,
		},
	}
}
