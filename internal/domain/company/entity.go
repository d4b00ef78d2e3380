package company

import "time"

// Company is the tenant root; everything else is transitively owned by it.
type Company struct {
	ID               string
	Name             string
	OwnerUserID      *string
	Description      string
	Website          *string
	PhoneNumber      *string
	Email            *string
	Address          *string
	SubscriptionPlan string
	MaxEmployees     int
	IsActive         bool
	CreatedAt        time.Time
	UpdatedAt        time.Time

	// DTO / Join
	EmployeeCount *int
	BranchCount   *int
}

// CanAddEmployee checks the subscription employee limit.
func (c Company) CanAddEmployee(currentEmployees int) bool {
	return currentEmployees < c.MaxEmployees
}
