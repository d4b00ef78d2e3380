package attendance

import (
	"strconv"
	"strings"
	"time"

	"github.com/attendly/attendance-backend-go/internal/pkg/utils"
)

type CheckInType string

const (
	TypeIn  CheckInType = "IN"
	TypeOut CheckInType = "OUT"
)

type CheckInStatus string

const (
	StatusOnTime          CheckInStatus = "ON_TIME"
	StatusLate            CheckInStatus = "LATE"
	StatusEarly           CheckInStatus = "EARLY"
	StatusInvalidLocation CheckInStatus = "INVALID_LOCATION"
	StatusInvalidTime     CheckInStatus = "INVALID_TIME"
)

// IsValid reports whether a status counts as a valid attendance record.
func (s CheckInStatus) IsValid() bool {
	return s != StatusInvalidLocation && s != StatusInvalidTime
}

// Group is a geofenced check-in location owned by a company, optionally tied
// to a branch.
type Group struct {
	ID           string
	CompanyID    string
	BranchID     *string
	Name         string
	Description  string
	Latitude     float64
	Longitude    float64
	RadiusMeters int
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time

	// DTO / Join
	BranchName  *string
	MemberCount *int
}

// DistanceFrom returns the distance in meters from the group's registered
// center to the given coordinates.
func (g Group) DistanceFrom(lat, lon float64) float64 {
	return utils.CalculateHaversineDistance(g.Latitude, g.Longitude, lat, lon)
}

// WithinRadius reports whether the given coordinates fall inside the group's
// configured radius.
func (g Group) WithinRadius(lat, lon float64) bool {
	return g.DistanceFrom(lat, lon) <= float64(g.RadiusMeters)
}

// GroupMember records an employee's assignment to an attendance group.
type GroupMember struct {
	ID         string
	GroupID    string
	UserID     string
	IsActive   bool
	AssignedAt time.Time
	RemovedAt  *time.Time

	// DTO / Join
	UserName  *string
	UserEmail *string
}

// Period is a recurring scheduled time window (shift) with grace tolerances.
// StartTime and EndTime carry only the wall-clock part; Weekdays is a
// comma-separated ISO weekday list (1=Monday .. 7=Sunday).
type Period struct {
	ID                     string
	GroupID                string
	Name                   string
	StartTime              time.Time
	EndTime                time.Time
	Weekdays               string
	LateGraceMinutes       int
	EarlyLeaveGraceMinutes int
	IsActive               bool
	CreatedAt              time.Time
	UpdatedAt              time.Time
}

// WeekdayList returns the weekday set as ISO weekday integers.
func (p Period) WeekdayList() []int {
	var days []int
	for _, part := range strings.Split(p.Weekdays, ",") {
		day, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil {
			continue
		}
		days = append(days, day)
	}
	return days
}

// AppliesOn reports whether the period covers the weekday of ts.
func (p Period) AppliesOn(ts time.Time) bool {
	isoWeekday := int(ts.Weekday())
	if isoWeekday == 0 {
		isoWeekday = 7 // time.Sunday is 0, ISO Sunday is 7
	}
	for _, day := range p.WeekdayList() {
		if day == isoWeekday {
			return true
		}
	}
	return false
}

func minutesOfDay(t time.Time) int {
	return t.Hour()*60 + t.Minute()
}

// ContainsTime reports whether ts falls inside the period's window extended
// by the grace tolerances on both ends.
func (p Period) ContainsTime(ts time.Time) bool {
	m := minutesOfDay(ts)
	earliest := minutesOfDay(p.StartTime) - p.LateGraceMinutes
	latest := minutesOfDay(p.EndTime) + p.EarlyLeaveGraceMinutes
	return m >= earliest && m <= latest
}

// ClassifyCheckIn derives the status of a check-in at ts against the period
// boundaries. A check-in exactly at the grace boundary still counts as on
// time.
func (p Period) ClassifyCheckIn(ts time.Time) CheckInStatus {
	m := minutesOfDay(ts)
	start := minutesOfDay(p.StartTime)
	end := minutesOfDay(p.EndTime)

	switch {
	case m < start:
		return StatusEarly
	case m <= start+p.LateGraceMinutes:
		return StatusOnTime
	case m <= end:
		return StatusLate
	default:
		return StatusInvalidTime
	}
}

// ClassifyCheckOut derives the status of a check-out at ts. Leaving earlier
// than the grace tolerance before the period end is an early leave; anything
// later is on time.
func (p Period) ClassifyCheckOut(ts time.Time) CheckInStatus {
	m := minutesOfDay(ts)
	end := minutesOfDay(p.EndTime)

	if m < end-p.EarlyLeaveGraceMinutes {
		return StatusEarly
	}
	return StatusOnTime
}

// MatchPeriod selects the first active period whose weekday set and extended
// time window contain ts. Periods are expected in start-time order; nil means
// the timestamp is unscheduled.
func MatchPeriod(periods []Period, ts time.Time) *Period {
	for i := range periods {
		p := periods[i]
		if !p.IsActive {
			continue
		}
		if p.AppliesOn(ts) && p.ContainsTime(ts) {
			return &p
		}
	}
	return nil
}

// ValidationResult is the outcome of validating one check-in attempt.
type ValidationResult struct {
	DistanceMeters float64
	Period         *Period
	Status         CheckInStatus
}

// Validate runs the check-in validation pipeline: distance against the
// group's radius first, then period matching, then status derivation from the
// matched period's boundaries. Failure modes are purely classificatory.
func Validate(g Group, periods []Period, typ CheckInType, lat, lon float64, ts time.Time) ValidationResult {
	distance := g.DistanceFrom(lat, lon)

	if distance > float64(g.RadiusMeters) {
		return ValidationResult{DistanceMeters: distance, Status: StatusInvalidLocation}
	}

	period := MatchPeriod(periods, ts)
	if period == nil {
		return ValidationResult{DistanceMeters: distance, Status: StatusInvalidTime}
	}

	status := period.ClassifyCheckIn(ts)
	if typ == TypeOut {
		status = period.ClassifyCheckOut(ts)
	}

	return ValidationResult{DistanceMeters: distance, Period: period, Status: status}
}

// CheckIn is a single recorded check-in or check-out.
type CheckIn struct {
	ID             string
	UserID         string
	GroupID        string
	PeriodID       *string
	Type           CheckInType
	RecordedAt     time.Time
	Latitude       float64
	Longitude      float64
	DistanceMeters float64
	Status         CheckInStatus
	Notes          string
	IPAddress      *string
	UserAgent      *string
	CreatedAt      time.Time

	// DTO / Join
	UserName  *string
	GroupName *string
}

// Summary aggregates one employee's check-ins for one day in one group.
type Summary struct {
	ID            string
	UserID        string
	GroupID       string
	Date          time.Time
	FirstIn       *time.Time
	LastOut       *time.Time
	TotalMinutes  int
	TotalCheckIns int
	IsPresent     bool
	IsLate        bool
	CreatedAt     time.Time
	UpdatedAt     time.Time

	// DTO / Join
	UserName *string
}
