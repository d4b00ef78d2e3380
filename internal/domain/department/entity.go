package department

import "time"

// Department is an organizational unit within a branch.
type Department struct {
	ID          string
	BranchID    string
	Name        string
	Code        string
	Description string
	HeadUserID  *string
	IsActive    bool
	CreatedAt   time.Time
	UpdatedAt   time.Time

	// DTO / Join
	CompanyID   *string
	BranchName  *string
	MemberCount *int
}

// Membership is a time-ranged record of an employee belonging to a
// department. At most one membership per employee-department pair is active
// at a time.
type Membership struct {
	ID           string
	UserID       string
	DepartmentID string
	Position     string
	IsActive     bool
	JoinedAt     time.Time
	LeftAt       *time.Time

	// DTO / Join
	UserName       *string
	UserEmail      *string
	DepartmentName *string
}
