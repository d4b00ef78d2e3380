package attendance

import (
	"context"
	"time"
)

type GroupRepository interface {
	Create(ctx context.Context, g Group) (Group, error)
	GetByID(ctx context.Context, id string) (Group, error)
	ListByCompanyID(ctx context.Context, companyID string, branchID *string) ([]Group, error)
	ListForUser(ctx context.Context, userID string) ([]Group, error)
	Update(ctx context.Context, req UpdateGroupRequest) error
	Delete(ctx context.Context, id string, companyID string) error

	AssignMember(ctx context.Context, groupID string, userID string) (GroupMember, error)
	RemoveMember(ctx context.Context, groupID string, userID string) error
	ListMembers(ctx context.Context, groupID string) ([]GroupMember, error)
	IsActiveMember(ctx context.Context, groupID string, userID string) (bool, error)
}

type PeriodRepository interface {
	Create(ctx context.Context, p Period) (Period, error)
	GetByID(ctx context.Context, id string) (Period, error)
	ListByGroupID(ctx context.Context, groupID string) ([]Period, error)
	Update(ctx context.Context, req UpdatePeriodRequest) error
	Delete(ctx context.Context, id string) error
}

type CheckInRepository interface {
	Create(ctx context.Context, c CheckIn) (CheckIn, error)
	GetByID(ctx context.Context, id string) (CheckIn, error)
	HasCheckInOn(ctx context.Context, userID string, groupID string, date time.Time, typ CheckInType) (bool, error)
	ListForUser(ctx context.Context, userID string, from time.Time, to time.Time) ([]CheckIn, error)
	ListByCompanyID(ctx context.Context, companyID string, branchID *string, filter ListCheckInsFilter) ([]CheckIn, int64, error)
}

type SummaryRepository interface {
	GetByUserGroupDate(ctx context.Context, userID string, groupID string, date time.Time) (Summary, error)
	Upsert(ctx context.Context, s Summary) (Summary, error)
	ListForUser(ctx context.Context, userID string, from time.Time, to time.Time) ([]Summary, error)
}
