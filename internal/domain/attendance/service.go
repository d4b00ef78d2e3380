package attendance

import (
	"context"

	"github.com/attendly/attendance-backend-go/internal/domain/user"
)

type AttendanceService interface {
	// Check-in flow
	CheckIn(ctx context.Context, scope user.Scope, req CheckInRequest) (CheckInResponse, error)
	CheckOut(ctx context.Context, scope user.Scope, req CheckInRequest) (CheckInResponse, error)
	History(ctx context.Context, scope user.Scope, filter HistoryFilter) ([]CheckInResponse, []SummaryResponse, error)
	List(ctx context.Context, scope user.Scope, filter ListCheckInsFilter) ([]CheckInResponse, int64, error)

	// Group management
	CreateGroup(ctx context.Context, scope user.Scope, req CreateGroupRequest) (GroupResponse, error)
	GetGroup(ctx context.Context, scope user.Scope, id string) (GroupResponse, error)
	ListGroups(ctx context.Context, scope user.Scope) ([]GroupResponse, error)
	ListMyGroups(ctx context.Context, scope user.Scope) ([]GroupResponse, error)
	UpdateGroup(ctx context.Context, scope user.Scope, req UpdateGroupRequest) error
	DeleteGroup(ctx context.Context, scope user.Scope, id string) error

	// Membership management
	AssignMember(ctx context.Context, scope user.Scope, req AssignMemberRequest) (GroupMember, error)
	RemoveMember(ctx context.Context, scope user.Scope, groupID string, userID string) error
	ListMembers(ctx context.Context, scope user.Scope, groupID string) ([]GroupMember, error)

	// Period management
	CreatePeriod(ctx context.Context, scope user.Scope, req CreatePeriodRequest) (PeriodResponse, error)
	ListPeriods(ctx context.Context, scope user.Scope, groupID string) ([]PeriodResponse, error)
	UpdatePeriod(ctx context.Context, scope user.Scope, req UpdatePeriodRequest) error
	DeletePeriod(ctx context.Context, scope user.Scope, id string) error
}
