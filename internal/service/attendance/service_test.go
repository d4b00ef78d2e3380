package attendance

import (
	"context"
	"testing"
	"time"

	"github.com/attendly/attendance-backend-go/internal/domain/attendance"
	"github.com/attendly/attendance-backend-go/internal/domain/user"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeGroupRepo struct {
	attendance.GroupRepository
	groups  map[string]attendance.Group
	members map[string]bool // groupID + "|" + userID
}

func (f *fakeGroupRepo) GetByID(_ context.Context, id string) (attendance.Group, error) {
	g, ok := f.groups[id]
	if !ok {
		return attendance.Group{}, attendance.ErrGroupNotFound
	}
	return g, nil
}

func (f *fakeGroupRepo) IsActiveMember(_ context.Context, groupID string, userID string) (bool, error) {
	return f.members[groupID+"|"+userID], nil
}

type fakePeriodRepo struct {
	attendance.PeriodRepository
	periods map[string][]attendance.Period
}

func (f *fakePeriodRepo) ListByGroupID(_ context.Context, groupID string) ([]attendance.Period, error) {
	return f.periods[groupID], nil
}

type fakeCheckInRepo struct {
	attendance.CheckInRepository
	created []attendance.CheckIn
}

func (f *fakeCheckInRepo) Create(_ context.Context, c attendance.CheckIn) (attendance.CheckIn, error) {
	c.ID = "checkin-" + string(rune('1'+len(f.created)))
	f.created = append(f.created, c)
	return c, nil
}

func (f *fakeCheckInRepo) HasCheckInOn(_ context.Context, userID string, groupID string, date time.Time, typ attendance.CheckInType) (bool, error) {
	for _, c := range f.created {
		if c.UserID == userID && c.GroupID == groupID && c.Type == typ &&
			c.RecordedAt.Format("2006-01-02") == date.Format("2006-01-02") && c.Status.IsValid() {
			return true, nil
		}
	}
	return false, nil
}

type fakeSummaryRepo struct {
	attendance.SummaryRepository
	byKey map[string]attendance.Summary
}

func summaryKey(userID, groupID string, date time.Time) string {
	return userID + "|" + groupID + "|" + date.Format("2006-01-02")
}

func (f *fakeSummaryRepo) GetByUserGroupDate(_ context.Context, userID string, groupID string, date time.Time) (attendance.Summary, error) {
	s, ok := f.byKey[summaryKey(userID, groupID, date)]
	if !ok {
		return attendance.Summary{}, attendance.ErrSummaryNotFound
	}
	return s, nil
}

func (f *fakeSummaryRepo) Upsert(_ context.Context, s attendance.Summary) (attendance.Summary, error) {
	key := summaryKey(s.UserID, s.GroupID, s.Date)
	if existing, ok := f.byKey[key]; ok {
		s.TotalCheckIns = existing.TotalCheckIns + 1
	}
	f.byKey[key] = s
	return s, nil
}

func newTestService(groups *fakeGroupRepo, periods *fakePeriodRepo, checkins *fakeCheckInRepo, summaries *fakeSummaryRepo, now time.Time) *AttendanceServiceImpl {
	return &AttendanceServiceImpl{
		GroupRepository:   groups,
		PeriodRepository:  periods,
		CheckInRepository: checkins,
		SummaryRepository: summaries,
		now:               func() time.Time { return now },
		inTx: func(ctx context.Context, fn func(ctx context.Context) error) error {
			return fn(ctx)
		},
	}
}

func officeFixture() (*fakeGroupRepo, *fakePeriodRepo, *fakeCheckInRepo, *fakeSummaryRepo) {
	groups := &fakeGroupRepo{
		groups: map[string]attendance.Group{
			"g1": {
				ID:           "g1",
				CompanyID:    "c1",
				Name:         "Main Office",
				Latitude:     40.0,
				Longitude:    -73.0,
				RadiusMeters: 100,
				IsActive:     true,
			},
		},
		members: map[string]bool{"g1|u1": true},
	}
	start, _ := time.Parse("15:04", "09:00")
	end, _ := time.Parse("15:04", "17:00")
	periods := &fakePeriodRepo{
		periods: map[string][]attendance.Period{
			"g1": {{
				ID:                     "p1",
				GroupID:                "g1",
				Name:                   "Office Hours",
				StartTime:              start,
				EndTime:                end,
				Weekdays:               "1,2,3,4,5",
				LateGraceMinutes:       10,
				EarlyLeaveGraceMinutes: 15,
				IsActive:               true,
			}},
		},
	}
	checkins := &fakeCheckInRepo{}
	summaries := &fakeSummaryRepo{byKey: map[string]attendance.Summary{}}
	return groups, periods, checkins, summaries
}

func employeeScope() user.Scope {
	companyID := "c1"
	return user.Scope{UserID: "u1", Role: user.RoleEmployee, CompanyID: &companyID}
}

// Monday 2024-01-15.
func mondayAt(hour, minute int) time.Time {
	return time.Date(2024, 1, 15, hour, minute, 0, 0, time.UTC)
}

func TestCheckIn(t *testing.T) {
	t.Run("on time inside radius", func(t *testing.T) {
		groups, periods, checkins, summaries := officeFixture()
		svc := newTestService(groups, periods, checkins, summaries, mondayAt(9, 8))

		resp, err := svc.CheckIn(context.Background(), employeeScope(), attendance.CheckInRequest{
			GroupID:  "g1",
			Latitude: 40.0005, Longitude: -73.0,
		})
		require.NoError(t, err)
		assert.Equal(t, string(attendance.StatusOnTime), resp.Status)
		assert.InDelta(t, 55.6, resp.DistanceMeters, 1.0)
		require.NotNil(t, resp.PeriodID)
		assert.Equal(t, "p1", *resp.PeriodID)

		summary, err := summaries.GetByUserGroupDate(context.Background(), "u1", "g1", mondayAt(0, 0))
		require.NoError(t, err)
		assert.True(t, summary.IsPresent)
		assert.False(t, summary.IsLate)
		require.NotNil(t, summary.FirstIn)
	})

	t.Run("late after grace", func(t *testing.T) {
		groups, periods, checkins, summaries := officeFixture()
		svc := newTestService(groups, periods, checkins, summaries, mondayAt(9, 15))

		resp, err := svc.CheckIn(context.Background(), employeeScope(), attendance.CheckInRequest{
			GroupID:  "g1",
			Latitude: 40.0, Longitude: -73.0,
		})
		require.NoError(t, err)
		assert.Equal(t, string(attendance.StatusLate), resp.Status)

		summary, err := summaries.GetByUserGroupDate(context.Background(), "u1", "g1", mondayAt(0, 0))
		require.NoError(t, err)
		assert.True(t, summary.IsLate)
	})

	t.Run("outside radius records invalid location", func(t *testing.T) {
		groups, periods, checkins, summaries := officeFixture()
		svc := newTestService(groups, periods, checkins, summaries, mondayAt(9, 0))

		resp, err := svc.CheckIn(context.Background(), employeeScope(), attendance.CheckInRequest{
			GroupID:  "g1",
			Latitude: 40.0015, Longitude: -73.0,
		})
		require.NoError(t, err)
		assert.Equal(t, string(attendance.StatusInvalidLocation), resp.Status)
		assert.Nil(t, resp.PeriodID)

		// Invalid attempts never reach the daily summary.
		_, err = summaries.GetByUserGroupDate(context.Background(), "u1", "g1", mondayAt(0, 0))
		assert.ErrorIs(t, err, attendance.ErrSummaryNotFound)
	})

	t.Run("unscheduled time records invalid time", func(t *testing.T) {
		groups, periods, checkins, summaries := officeFixture()
		svc := newTestService(groups, periods, checkins, summaries, mondayAt(22, 0))

		resp, err := svc.CheckIn(context.Background(), employeeScope(), attendance.CheckInRequest{
			GroupID:  "g1",
			Latitude: 40.0, Longitude: -73.0,
		})
		require.NoError(t, err)
		assert.Equal(t, string(attendance.StatusInvalidTime), resp.Status)
		assert.Nil(t, resp.PeriodID)
	})

	t.Run("duplicate check-in rejected", func(t *testing.T) {
		groups, periods, checkins, summaries := officeFixture()
		svc := newTestService(groups, periods, checkins, summaries, mondayAt(9, 0))

		req := attendance.CheckInRequest{GroupID: "g1", Latitude: 40.0, Longitude: -73.0}
		_, err := svc.CheckIn(context.Background(), employeeScope(), req)
		require.NoError(t, err)

		_, err = svc.CheckIn(context.Background(), employeeScope(), req)
		assert.ErrorIs(t, err, attendance.ErrAlreadyCheckedIn)
	})

	t.Run("invalid attempt does not burn the day", func(t *testing.T) {
		groups, periods, checkins, summaries := officeFixture()
		svc := newTestService(groups, periods, checkins, summaries, mondayAt(9, 0))

		_, err := svc.CheckIn(context.Background(), employeeScope(), attendance.CheckInRequest{
			GroupID:  "g1",
			Latitude: 40.0015, Longitude: -73.0,
		})
		require.NoError(t, err)

		resp, err := svc.CheckIn(context.Background(), employeeScope(), attendance.CheckInRequest{
			GroupID:  "g1",
			Latitude: 40.0, Longitude: -73.0,
		})
		require.NoError(t, err)
		assert.Equal(t, string(attendance.StatusOnTime), resp.Status)
	})

	t.Run("non member rejected", func(t *testing.T) {
		groups, periods, checkins, summaries := officeFixture()
		svc := newTestService(groups, periods, checkins, summaries, mondayAt(9, 0))

		companyID := "c1"
		outsider := user.Scope{UserID: "u2", Role: user.RoleEmployee, CompanyID: &companyID}
		_, err := svc.CheckIn(context.Background(), outsider, attendance.CheckInRequest{
			GroupID:  "g1",
			Latitude: 40.0, Longitude: -73.0,
		})
		assert.ErrorIs(t, err, attendance.ErrNotGroupMember)
	})

	t.Run("inactive group rejected", func(t *testing.T) {
		groups, periods, checkins, summaries := officeFixture()
		g := groups.groups["g1"]
		g.IsActive = false
		groups.groups["g1"] = g
		svc := newTestService(groups, periods, checkins, summaries, mondayAt(9, 0))

		_, err := svc.CheckIn(context.Background(), employeeScope(), attendance.CheckInRequest{
			GroupID:  "g1",
			Latitude: 40.0, Longitude: -73.0,
		})
		assert.ErrorIs(t, err, attendance.ErrGroupInactive)
	})

	t.Run("unknown group", func(t *testing.T) {
		groups, periods, checkins, summaries := officeFixture()
		svc := newTestService(groups, periods, checkins, summaries, mondayAt(9, 0))

		_, err := svc.CheckIn(context.Background(), employeeScope(), attendance.CheckInRequest{
			GroupID:  "missing",
			Latitude: 40.0, Longitude: -73.0,
		})
		assert.ErrorIs(t, err, attendance.ErrGroupNotFound)
	})
}

func TestCheckOut(t *testing.T) {
	t.Run("requires open check-in", func(t *testing.T) {
		groups, periods, checkins, summaries := officeFixture()
		svc := newTestService(groups, periods, checkins, summaries, mondayAt(17, 0))

		_, err := svc.CheckOut(context.Background(), employeeScope(), attendance.CheckInRequest{
			GroupID:  "g1",
			Latitude: 40.0, Longitude: -73.0,
		})
		assert.ErrorIs(t, err, attendance.ErrNoOpenCheckIn)
	})

	t.Run("on time check-out computes worked minutes", func(t *testing.T) {
		groups, periods, checkins, summaries := officeFixture()
		svc := newTestService(groups, periods, checkins, summaries, mondayAt(9, 0))

		req := attendance.CheckInRequest{GroupID: "g1", Latitude: 40.0, Longitude: -73.0}
		_, err := svc.CheckIn(context.Background(), employeeScope(), req)
		require.NoError(t, err)

		svc.now = func() time.Time { return mondayAt(17, 0) }
		resp, err := svc.CheckOut(context.Background(), employeeScope(), req)
		require.NoError(t, err)
		assert.Equal(t, string(attendance.StatusOnTime), resp.Status)

		summary, err := summaries.GetByUserGroupDate(context.Background(), "u1", "g1", mondayAt(0, 0))
		require.NoError(t, err)
		require.NotNil(t, summary.LastOut)
		assert.Equal(t, 8*60, summary.TotalMinutes)
	})

	t.Run("early leave before grace", func(t *testing.T) {
		groups, periods, checkins, summaries := officeFixture()
		svc := newTestService(groups, periods, checkins, summaries, mondayAt(9, 0))

		req := attendance.CheckInRequest{GroupID: "g1", Latitude: 40.0, Longitude: -73.0}
		_, err := svc.CheckIn(context.Background(), employeeScope(), req)
		require.NoError(t, err)

		svc.now = func() time.Time { return mondayAt(16, 44) }
		resp, err := svc.CheckOut(context.Background(), employeeScope(), req)
		require.NoError(t, err)
		assert.Equal(t, string(attendance.StatusEarly), resp.Status)
	})
}
