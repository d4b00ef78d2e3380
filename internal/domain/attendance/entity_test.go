package attendance

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func timeOfDay(hour, minute int) time.Time {
	return time.Date(0, 1, 1, hour, minute, 0, 0, time.UTC)
}

// Monday 2024-01-15.
func mondayAt(hour, minute int) time.Time {
	return time.Date(2024, 1, 15, hour, minute, 0, 0, time.UTC)
}

func officeShift() Period {
	return Period{
		ID:                     "period-1",
		GroupID:                "group-1",
		Name:                   "Office Hours",
		StartTime:              timeOfDay(9, 0),
		EndTime:                timeOfDay(17, 0),
		Weekdays:               "1,2,3,4,5",
		LateGraceMinutes:       10,
		EarlyLeaveGraceMinutes: 15,
		IsActive:               true,
	}
}

func mainOffice() Group {
	return Group{
		ID:           "group-1",
		CompanyID:    "company-1",
		Name:         "Main Office",
		Latitude:     40.0000,
		Longitude:    -73.0000,
		RadiusMeters: 100,
		IsActive:     true,
	}
}

func TestGroupWithinRadius(t *testing.T) {
	group := mainOffice()

	// ~55m north of center.
	assert.True(t, group.WithinRadius(40.0005, -73.0000))
	// ~167m north of center.
	assert.False(t, group.WithinRadius(40.0015, -73.0000))
	// Exactly at center.
	assert.True(t, group.WithinRadius(40.0000, -73.0000))
}

func TestPeriodAppliesOn(t *testing.T) {
	period := officeShift()

	monday := time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC)
	saturday := time.Date(2024, 1, 20, 10, 0, 0, 0, time.UTC)
	sunday := time.Date(2024, 1, 21, 10, 0, 0, 0, time.UTC)

	assert.True(t, period.AppliesOn(monday))
	assert.False(t, period.AppliesOn(saturday))
	assert.False(t, period.AppliesOn(sunday))

	weekend := period
	weekend.Weekdays = "6,7"
	assert.True(t, weekend.AppliesOn(saturday))
	assert.True(t, weekend.AppliesOn(sunday))
	assert.False(t, weekend.AppliesOn(monday))
}

func TestPeriodContainsTime(t *testing.T) {
	period := officeShift()

	cases := []struct {
		name string
		ts   time.Time
		want bool
	}{
		{"well inside", mondayAt(12, 0), true},
		{"at start", mondayAt(9, 0), true},
		{"within leading grace", mondayAt(8, 50), true},
		{"before leading grace", mondayAt(8, 49), false},
		{"at end", mondayAt(17, 0), true},
		{"within trailing grace", mondayAt(17, 15), true},
		{"after trailing grace", mondayAt(17, 16), false},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			assert.Equal(t, c.want, period.ContainsTime(c.ts))
		})
	}
}

func TestPeriodClassifyCheckIn(t *testing.T) {
	period := officeShift()

	cases := []struct {
		name string
		ts   time.Time
		want CheckInStatus
	}{
		{"eight past nine is on time", mondayAt(9, 8), StatusOnTime},
		{"quarter past nine is late", mondayAt(9, 15), StatusLate},
		{"exactly at grace boundary is on time", mondayAt(9, 10), StatusOnTime},
		{"one past the grace boundary is late", mondayAt(9, 11), StatusLate},
		{"before start is early", mondayAt(8, 55), StatusEarly},
		{"at start is on time", mondayAt(9, 0), StatusOnTime},
		{"at end is late", mondayAt(17, 0), StatusLate},
		{"after end is invalid time", mondayAt(17, 1), StatusInvalidTime},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			assert.Equal(t, c.want, period.ClassifyCheckIn(c.ts))
		})
	}
}

func TestPeriodClassifyCheckOut(t *testing.T) {
	period := officeShift()

	assert.Equal(t, StatusOnTime, period.ClassifyCheckOut(mondayAt(17, 0)))
	assert.Equal(t, StatusOnTime, period.ClassifyCheckOut(mondayAt(18, 0)))
	// Grace boundary inclusive: 15 minutes before end still counts.
	assert.Equal(t, StatusOnTime, period.ClassifyCheckOut(mondayAt(16, 45)))
	assert.Equal(t, StatusEarly, period.ClassifyCheckOut(mondayAt(16, 44)))
}

func TestMatchPeriod(t *testing.T) {
	morning := officeShift()
	evening := officeShift()
	evening.ID = "period-2"
	evening.Name = "Evening Shift"
	evening.StartTime = timeOfDay(18, 0)
	evening.EndTime = timeOfDay(23, 0)
	periods := []Period{morning, evening}

	matched := MatchPeriod(periods, mondayAt(10, 0))
	if assert.NotNil(t, matched) {
		assert.Equal(t, "period-1", matched.ID)
	}

	matched = MatchPeriod(periods, mondayAt(19, 0))
	if assert.NotNil(t, matched) {
		assert.Equal(t, "period-2", matched.ID)
	}

	// Between shifts, outside any extended window.
	assert.Nil(t, MatchPeriod(periods, mondayAt(17, 30)))

	// Inactive periods never match.
	inactive := morning
	inactive.IsActive = false
	assert.Nil(t, MatchPeriod([]Period{inactive}, mondayAt(10, 0)))
}

func TestValidate(t *testing.T) {
	group := mainOffice()
	periods := []Period{officeShift()}

	t.Run("valid on time check-in", func(t *testing.T) {
		result := Validate(group, periods, TypeIn, 40.0005, -73.0000, mondayAt(9, 8))
		assert.Equal(t, StatusOnTime, result.Status)
		assert.NotNil(t, result.Period)
		assert.InDelta(t, 55.6, result.DistanceMeters, 1)
	})

	t.Run("late check-in", func(t *testing.T) {
		result := Validate(group, periods, TypeIn, 40.0000, -73.0000, mondayAt(9, 15))
		assert.Equal(t, StatusLate, result.Status)
	})

	t.Run("outside radius wins over time", func(t *testing.T) {
		result := Validate(group, periods, TypeIn, 40.0015, -73.0000, mondayAt(9, 8))
		assert.Equal(t, StatusInvalidLocation, result.Status)
		assert.Nil(t, result.Period)
		assert.InDelta(t, 166.8, result.DistanceMeters, 1)
	})

	t.Run("unscheduled weekday", func(t *testing.T) {
		saturday := time.Date(2024, 1, 20, 9, 8, 0, 0, time.UTC)
		result := Validate(group, periods, TypeIn, 40.0000, -73.0000, saturday)
		assert.Equal(t, StatusInvalidTime, result.Status)
		assert.Nil(t, result.Period)
	})

	t.Run("early check-out", func(t *testing.T) {
		result := Validate(group, periods, TypeOut, 40.0000, -73.0000, mondayAt(15, 0))
		assert.Equal(t, StatusEarly, result.Status)
	})

	t.Run("check-out at end", func(t *testing.T) {
		result := Validate(group, periods, TypeOut, 40.0000, -73.0000, mondayAt(17, 5))
		assert.Equal(t, StatusOnTime, result.Status)
	})
}

func TestStatusIsValid(t *testing.T) {
	assert.True(t, StatusOnTime.IsValid())
	assert.True(t, StatusLate.IsValid())
	assert.True(t, StatusEarly.IsValid())
	assert.False(t, StatusInvalidLocation.IsValid())
	assert.False(t, StatusInvalidTime.IsValid())
}
