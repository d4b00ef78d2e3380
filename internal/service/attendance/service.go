package attendance

import (
	"context"
	"fmt"
	"time"

	"github.com/attendly/attendance-backend-go/internal/domain/attendance"
	"github.com/attendly/attendance-backend-go/internal/domain/user"
	"github.com/attendly/attendance-backend-go/internal/pkg/database"
	"github.com/attendly/attendance-backend-go/internal/repository/postgresql"
	"github.com/jackc/pgx/v5"
)

type AttendanceServiceImpl struct {
	db *database.DB
	attendance.GroupRepository
	attendance.PeriodRepository
	attendance.CheckInRepository
	attendance.SummaryRepository
	user.UserRepository

	now  func() time.Time
	inTx func(ctx context.Context, fn func(ctx context.Context) error) error
}

func NewAttendanceService(
	db *database.DB,
	groupRepository attendance.GroupRepository,
	periodRepository attendance.PeriodRepository,
	checkInRepository attendance.CheckInRepository,
	summaryRepository attendance.SummaryRepository,
	userRepository user.UserRepository,
) attendance.AttendanceService {
	return &AttendanceServiceImpl{
		db:                db,
		GroupRepository:   groupRepository,
		PeriodRepository:  periodRepository,
		CheckInRepository: checkInRepository,
		SummaryRepository: summaryRepository,
		UserRepository:    userRepository,
		now:               time.Now,
		inTx: func(ctx context.Context, fn func(ctx context.Context) error) error {
			return postgresql.WithTransaction(ctx, db, func(tx pgx.Tx) error {
				return fn(postgresql.WithTxContext(ctx, tx))
			})
		},
	}
}

// CheckIn implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) CheckIn(ctx context.Context, scope user.Scope, req attendance.CheckInRequest) (attendance.CheckInResponse, error) {
	return s.record(ctx, scope, req, attendance.TypeIn)
}

// CheckOut implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) CheckOut(ctx context.Context, scope user.Scope, req attendance.CheckInRequest) (attendance.CheckInResponse, error) {
	return s.record(ctx, scope, req, attendance.TypeOut)
}

// record runs the shared check-in/check-out flow: membership check, location
// and period validation, duplicate guard, then the insert plus daily summary
// upsert in one transaction. Invalid location or time is recorded as a status
// on the row, not rejected.
func (s *AttendanceServiceImpl) record(ctx context.Context, scope user.Scope, req attendance.CheckInRequest, typ attendance.CheckInType) (attendance.CheckInResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.CheckInResponse{}, err
	}

	group, err := s.GroupRepository.GetByID(ctx, req.GroupID)
	if err != nil {
		return attendance.CheckInResponse{}, err
	}
	if !group.IsActive {
		return attendance.CheckInResponse{}, attendance.ErrGroupInactive
	}
	if !scope.AllowsCompany(group.CompanyID) {
		return attendance.CheckInResponse{}, attendance.ErrUnauthorizedGroup
	}

	member, err := s.GroupRepository.IsActiveMember(ctx, req.GroupID, scope.UserID)
	if err != nil {
		return attendance.CheckInResponse{}, err
	}
	if !member {
		return attendance.CheckInResponse{}, attendance.ErrNotGroupMember
	}

	now := s.now()

	if typ == attendance.TypeOut {
		// A check-out needs a valid check-in earlier the same day.
		hasIn, err := s.CheckInRepository.HasCheckInOn(ctx, scope.UserID, req.GroupID, now, attendance.TypeIn)
		if err != nil {
			return attendance.CheckInResponse{}, err
		}
		if !hasIn {
			return attendance.CheckInResponse{}, attendance.ErrNoOpenCheckIn
		}
	}

	duplicate, err := s.CheckInRepository.HasCheckInOn(ctx, scope.UserID, req.GroupID, now, typ)
	if err != nil {
		return attendance.CheckInResponse{}, err
	}
	if duplicate {
		return attendance.CheckInResponse{}, attendance.ErrAlreadyCheckedIn
	}

	periods, err := s.PeriodRepository.ListByGroupID(ctx, req.GroupID)
	if err != nil {
		return attendance.CheckInResponse{}, err
	}

	result := attendance.Validate(group, periods, typ, req.Latitude, req.Longitude, now)

	checkIn := attendance.CheckIn{
		UserID:         scope.UserID,
		GroupID:        req.GroupID,
		Type:           typ,
		RecordedAt:     now,
		Latitude:       req.Latitude,
		Longitude:      req.Longitude,
		DistanceMeters: result.DistanceMeters,
		Status:         result.Status,
		Notes:          req.Notes,
		IPAddress:      req.IPAddress,
		UserAgent:      req.UserAgent,
	}
	if result.Period != nil {
		checkIn.PeriodID = &result.Period.ID
	}

	var created attendance.CheckIn
	err = s.inTx(ctx, func(txCtx context.Context) error {
		created, err = s.CheckInRepository.Create(txCtx, checkIn)
		if err != nil {
			return err
		}

		// Invalid records never touch the daily summary.
		if !result.Status.IsValid() {
			return nil
		}

		return s.foldIntoSummary(txCtx, created, now)
	})
	if err != nil {
		return attendance.CheckInResponse{}, err
	}

	return attendance.ToCheckInResponse(created), nil
}

// foldIntoSummary updates the per-day aggregate for the user and group.
func (s *AttendanceServiceImpl) foldIntoSummary(ctx context.Context, c attendance.CheckIn, now time.Time) error {
	date := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	summary := attendance.Summary{
		UserID:        c.UserID,
		GroupID:       c.GroupID,
		Date:          date,
		TotalCheckIns: 1,
	}

	switch c.Type {
	case attendance.TypeIn:
		summary.FirstIn = &c.RecordedAt
		summary.IsPresent = true
		summary.IsLate = c.Status == attendance.StatusLate
	case attendance.TypeOut:
		summary.LastOut = &c.RecordedAt
	}

	existing, err := s.SummaryRepository.GetByUserGroupDate(ctx, c.UserID, c.GroupID, date)
	if err != nil && err != attendance.ErrSummaryNotFound {
		return err
	}
	if err == nil {
		// Carry forward the other endpoint so worked minutes stay current.
		if summary.FirstIn == nil {
			summary.FirstIn = existing.FirstIn
		}
		if summary.LastOut == nil {
			summary.LastOut = existing.LastOut
		}
		summary.IsPresent = summary.IsPresent || existing.IsPresent
		summary.IsLate = summary.IsLate || existing.IsLate
	}
	if summary.FirstIn != nil && summary.LastOut != nil && summary.LastOut.After(*summary.FirstIn) {
		summary.TotalMinutes = int(summary.LastOut.Sub(*summary.FirstIn).Minutes())
	}

	if _, err := s.SummaryRepository.Upsert(ctx, summary); err != nil {
		return fmt.Errorf("failed to update daily summary: %w", err)
	}
	return nil
}

// History implements attendance.AttendanceService. Employees read their own
// records only.
func (s *AttendanceServiceImpl) History(ctx context.Context, scope user.Scope, filter attendance.HistoryFilter) ([]attendance.CheckInResponse, []attendance.SummaryResponse, error) {
	checkins, err := s.CheckInRepository.ListForUser(ctx, scope.UserID, filter.StartDate, filter.EndDate)
	if err != nil {
		return nil, nil, err
	}
	summaries, err := s.SummaryRepository.ListForUser(ctx, scope.UserID, filter.StartDate, filter.EndDate)
	if err != nil {
		return nil, nil, err
	}

	checkInResponses := make([]attendance.CheckInResponse, 0, len(checkins))
	for _, c := range checkins {
		checkInResponses = append(checkInResponses, attendance.ToCheckInResponse(c))
	}
	summaryResponses := make([]attendance.SummaryResponse, 0, len(summaries))
	for _, sum := range summaries {
		summaryResponses = append(summaryResponses, attendance.ToSummaryResponse(sum))
	}
	return checkInResponses, summaryResponses, nil
}

// List implements attendance.AttendanceService. Management listing across the
// scoped company or branch.
func (s *AttendanceServiceImpl) List(ctx context.Context, scope user.Scope, filter attendance.ListCheckInsFilter) ([]attendance.CheckInResponse, int64, error) {
	if scope.SelfOnly() {
		return nil, 0, attendance.ErrUnauthorizedCheckIn
	}
	if scope.CompanyID == nil {
		return nil, 0, user.ErrCompanyIDRequired
	}
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 || filter.Limit > 100 {
		filter.Limit = 20
	}

	checkins, total, err := s.CheckInRepository.ListByCompanyID(ctx, *scope.CompanyID, scope.BranchFilter(), filter)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]attendance.CheckInResponse, 0, len(checkins))
	for _, c := range checkins {
		responses = append(responses, attendance.ToCheckInResponse(c))
	}
	return responses, total, nil
}

// CreateGroup implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) CreateGroup(ctx context.Context, scope user.Scope, req attendance.CreateGroupRequest) (attendance.GroupResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.GroupResponse{}, err
	}
	if scope.Role == user.RoleHREmployee {
		// HR groups are pinned to the HR's own branch.
		if req.BranchID == nil || scope.BranchID == nil || *req.BranchID != *scope.BranchID {
			return attendance.GroupResponse{}, attendance.ErrUnauthorizedGroup
		}
	} else if !scope.CanWriteCompany(req.CompanyID) {
		return attendance.GroupResponse{}, attendance.ErrUnauthorizedGroup
	}

	created, err := s.GroupRepository.Create(ctx, attendance.Group{
		CompanyID:    req.CompanyID,
		BranchID:     req.BranchID,
		Name:         req.Name,
		Description:  req.Description,
		Latitude:     req.Latitude,
		Longitude:    req.Longitude,
		RadiusMeters: req.RadiusMeters,
	})
	if err != nil {
		return attendance.GroupResponse{}, err
	}

	return attendance.ToGroupResponse(created), nil
}

// GetGroup implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) GetGroup(ctx context.Context, scope user.Scope, id string) (attendance.GroupResponse, error) {
	group, err := s.GroupRepository.GetByID(ctx, id)
	if err != nil {
		return attendance.GroupResponse{}, err
	}
	if err := s.canReadGroup(ctx, scope, group); err != nil {
		return attendance.GroupResponse{}, err
	}

	return attendance.ToGroupResponse(group), nil
}

// canReadGroup checks read access to a group. Members can always see groups
// they belong to.
func (s *AttendanceServiceImpl) canReadGroup(ctx context.Context, scope user.Scope, group attendance.Group) error {
	if !scope.AllowsCompany(group.CompanyID) {
		return attendance.ErrUnauthorizedGroup
	}
	if scope.SelfOnly() || (scope.Role == user.RoleHREmployee && group.BranchID != nil && !scope.AllowsBranch(group.CompanyID, *group.BranchID)) {
		member, err := s.GroupRepository.IsActiveMember(ctx, group.ID, scope.UserID)
		if err != nil {
			return err
		}
		if !member {
			return attendance.ErrUnauthorizedGroup
		}
	}
	return nil
}

// ListGroups implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) ListGroups(ctx context.Context, scope user.Scope) ([]attendance.GroupResponse, error) {
	if scope.SelfOnly() {
		return s.ListMyGroups(ctx, scope)
	}
	if scope.CompanyID == nil {
		return nil, user.ErrCompanyIDRequired
	}

	groups, err := s.GroupRepository.ListByCompanyID(ctx, *scope.CompanyID, scope.BranchFilter())
	if err != nil {
		return nil, err
	}

	responses := make([]attendance.GroupResponse, 0, len(groups))
	for _, g := range groups {
		responses = append(responses, attendance.ToGroupResponse(g))
	}
	return responses, nil
}

// ListMyGroups implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) ListMyGroups(ctx context.Context, scope user.Scope) ([]attendance.GroupResponse, error) {
	groups, err := s.GroupRepository.ListForUser(ctx, scope.UserID)
	if err != nil {
		return nil, err
	}

	responses := make([]attendance.GroupResponse, 0, len(groups))
	for _, g := range groups {
		responses = append(responses, attendance.ToGroupResponse(g))
	}
	return responses, nil
}

// UpdateGroup implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) UpdateGroup(ctx context.Context, scope user.Scope, req attendance.UpdateGroupRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}

	group, err := s.GroupRepository.GetByID(ctx, req.ID)
	if err != nil {
		return err
	}
	if err := s.canWriteGroup(scope, group); err != nil {
		return err
	}
	req.CompanyID = group.CompanyID

	return s.GroupRepository.Update(ctx, req)
}

func (s *AttendanceServiceImpl) canWriteGroup(scope user.Scope, group attendance.Group) error {
	if scope.Role == user.RoleHREmployee {
		if group.BranchID == nil || !scope.AllowsBranch(group.CompanyID, *group.BranchID) {
			return attendance.ErrUnauthorizedGroup
		}
		return nil
	}
	if !scope.CanWriteCompany(group.CompanyID) {
		return attendance.ErrUnauthorizedGroup
	}
	return nil
}

// DeleteGroup implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) DeleteGroup(ctx context.Context, scope user.Scope, id string) error {
	group, err := s.GroupRepository.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.canWriteGroup(scope, group); err != nil {
		return err
	}

	return s.GroupRepository.Delete(ctx, id, group.CompanyID)
}

// AssignMember implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) AssignMember(ctx context.Context, scope user.Scope, req attendance.AssignMemberRequest) (attendance.GroupMember, error) {
	if err := req.Validate(); err != nil {
		return attendance.GroupMember{}, err
	}

	group, err := s.GroupRepository.GetByID(ctx, req.GroupID)
	if err != nil {
		return attendance.GroupMember{}, err
	}
	if err := s.canWriteGroup(scope, group); err != nil {
		return attendance.GroupMember{}, err
	}

	target, err := s.UserRepository.GetByID(ctx, req.UserID)
	if err != nil {
		return attendance.GroupMember{}, err
	}
	if target.CompanyID == nil || *target.CompanyID != group.CompanyID {
		return attendance.GroupMember{}, attendance.ErrUnauthorizedGroup
	}

	member, err := s.GroupRepository.IsActiveMember(ctx, req.GroupID, req.UserID)
	if err != nil {
		return attendance.GroupMember{}, err
	}
	if member {
		return attendance.GroupMember{}, attendance.ErrAlreadyMember
	}

	return s.GroupRepository.AssignMember(ctx, req.GroupID, req.UserID)
}

// RemoveMember implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) RemoveMember(ctx context.Context, scope user.Scope, groupID string, userID string) error {
	group, err := s.GroupRepository.GetByID(ctx, groupID)
	if err != nil {
		return err
	}
	if err := s.canWriteGroup(scope, group); err != nil {
		return err
	}

	return s.GroupRepository.RemoveMember(ctx, groupID, userID)
}

// ListMembers implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) ListMembers(ctx context.Context, scope user.Scope, groupID string) ([]attendance.GroupMember, error) {
	group, err := s.GroupRepository.GetByID(ctx, groupID)
	if err != nil {
		return nil, err
	}
	if err := s.canReadGroup(ctx, scope, group); err != nil {
		return nil, err
	}
	if scope.SelfOnly() {
		return nil, attendance.ErrUnauthorizedGroup
	}

	return s.GroupRepository.ListMembers(ctx, groupID)
}

// CreatePeriod implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) CreatePeriod(ctx context.Context, scope user.Scope, req attendance.CreatePeriodRequest) (attendance.PeriodResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.PeriodResponse{}, err
	}

	group, err := s.GroupRepository.GetByID(ctx, req.GroupID)
	if err != nil {
		return attendance.PeriodResponse{}, err
	}
	if err := s.canWriteGroup(scope, group); err != nil {
		return attendance.PeriodResponse{}, err
	}

	start, _ := time.Parse("15:04", req.StartTime)
	end, _ := time.Parse("15:04", req.EndTime)
	if !end.After(start) {
		return attendance.PeriodResponse{}, attendance.ErrEndBeforeStart
	}

	created, err := s.PeriodRepository.Create(ctx, attendance.Period{
		GroupID:                req.GroupID,
		Name:                   req.Name,
		StartTime:              start,
		EndTime:                end,
		Weekdays:               req.Weekdays,
		LateGraceMinutes:       req.LateGraceMinutes,
		EarlyLeaveGraceMinutes: req.EarlyLeaveGraceMinutes,
	})
	if err != nil {
		return attendance.PeriodResponse{}, err
	}

	return attendance.ToPeriodResponse(created), nil
}

// ListPeriods implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) ListPeriods(ctx context.Context, scope user.Scope, groupID string) ([]attendance.PeriodResponse, error) {
	group, err := s.GroupRepository.GetByID(ctx, groupID)
	if err != nil {
		return nil, err
	}
	if err := s.canReadGroup(ctx, scope, group); err != nil {
		return nil, err
	}

	periods, err := s.PeriodRepository.ListByGroupID(ctx, groupID)
	if err != nil {
		return nil, err
	}

	responses := make([]attendance.PeriodResponse, 0, len(periods))
	for _, p := range periods {
		responses = append(responses, attendance.ToPeriodResponse(p))
	}
	return responses, nil
}

// UpdatePeriod implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) UpdatePeriod(ctx context.Context, scope user.Scope, req attendance.UpdatePeriodRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}

	period, err := s.PeriodRepository.GetByID(ctx, req.ID)
	if err != nil {
		return err
	}
	group, err := s.GroupRepository.GetByID(ctx, period.GroupID)
	if err != nil {
		return err
	}
	if err := s.canWriteGroup(scope, group); err != nil {
		return err
	}

	start := period.StartTime
	end := period.EndTime
	if req.StartTime != nil {
		start, _ = time.Parse("15:04", *req.StartTime)
	}
	if req.EndTime != nil {
		end, _ = time.Parse("15:04", *req.EndTime)
	}
	if !end.After(start) {
		return attendance.ErrEndBeforeStart
	}

	return s.PeriodRepository.Update(ctx, req)
}

// DeletePeriod implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) DeletePeriod(ctx context.Context, scope user.Scope, id string) error {
	period, err := s.PeriodRepository.GetByID(ctx, id)
	if err != nil {
		return err
	}
	group, err := s.GroupRepository.GetByID(ctx, period.GroupID)
	if err != nil {
		return err
	}
	if err := s.canWriteGroup(scope, group); err != nil {
		return err
	}

	return s.PeriodRepository.Delete(ctx, id)
}
