package branch

import "time"

// Branch is a physical location of a company; it owns departments and
// attendance groups.
type Branch struct {
	ID            string
	CompanyID     string
	Name          string
	Code          string
	Address       *string
	PhoneNumber   *string
	Email         *string
	ManagerUserID *string
	Latitude      *float64
	Longitude     *float64
	IsActive      bool
	CreatedAt     time.Time
	UpdatedAt     time.Time

	// DTO / Join
	DepartmentCount *int
	EmployeeCount   *int
}

// HasCoordinates checks if the branch carries geographic reference fields.
func (b Branch) HasCoordinates() bool {
	return b.Latitude != nil && b.Longitude != nil
}
