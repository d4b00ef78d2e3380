package attendance

import (
	"time"

	"github.com/attendly/attendance-backend-go/internal/pkg/validator"
)

// GroupResponse represents the response structure for an attendance group.
type GroupResponse struct {
	ID           string  `json:"id"`
	CompanyID    string  `json:"company_id"`
	BranchID     *string `json:"branch_id,omitempty"`
	BranchName   *string `json:"branch_name,omitempty"`
	Name         string  `json:"name"`
	Description  string  `json:"description,omitempty"`
	Latitude     float64 `json:"latitude"`
	Longitude    float64 `json:"longitude"`
	RadiusMeters int     `json:"radius_meters"`
	IsActive     bool    `json:"is_active"`
	MemberCount  *int    `json:"member_count,omitempty"`
}

func ToGroupResponse(g Group) GroupResponse {
	return GroupResponse{
		ID:           g.ID,
		CompanyID:    g.CompanyID,
		BranchID:     g.BranchID,
		BranchName:   g.BranchName,
		Name:         g.Name,
		Description:  g.Description,
		Latitude:     g.Latitude,
		Longitude:    g.Longitude,
		RadiusMeters: g.RadiusMeters,
		IsActive:     g.IsActive,
		MemberCount:  g.MemberCount,
	}
}

// CreateGroupRequest represents the request structure for creating an
// attendance group.
type CreateGroupRequest struct {
	CompanyID    string  `json:"-"` // From scope
	BranchID     *string `json:"branch_id,omitempty"`
	Name         string  `json:"name"`
	Description  string  `json:"description,omitempty"`
	Latitude     float64 `json:"latitude"`
	Longitude    float64 `json:"longitude"`
	RadiusMeters int     `json:"radius_meters"`
}

func (r *CreateGroupRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Name) {
		errs = append(errs, validator.ValidationError{Field: "name", Message: "name is required"})
	}
	if len(r.Name) > 100 {
		errs = append(errs, validator.ValidationError{Field: "name", Message: "name must not exceed 100 characters"})
	}
	if !validator.IsValidLatitude(r.Latitude) {
		errs = append(errs, validator.ValidationError{Field: "latitude", Message: "latitude must be between -90 and 90"})
	}
	if !validator.IsValidLongitude(r.Longitude) {
		errs = append(errs, validator.ValidationError{Field: "longitude", Message: "longitude must be between -180 and 180"})
	}
	if r.RadiusMeters < 10 || r.RadiusMeters > 5000 {
		errs = append(errs, validator.ValidationError{Field: "radius_meters", Message: "radius_meters must be between 10 and 5000"})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// UpdateGroupRequest represents the request structure for updating an
// attendance group.
type UpdateGroupRequest struct {
	ID           string   `json:"id"`
	CompanyID    string   `json:"-"` // From scope
	Name         *string  `json:"name,omitempty"`
	Description  *string  `json:"description,omitempty"`
	Latitude     *float64 `json:"latitude,omitempty"`
	Longitude    *float64 `json:"longitude,omitempty"`
	RadiusMeters *int     `json:"radius_meters,omitempty"`
	IsActive     *bool    `json:"is_active,omitempty"`
}

func (r *UpdateGroupRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.ID) {
		errs = append(errs, validator.ValidationError{Field: "id", Message: "id is required"})
	}
	if r.Name != nil && validator.IsEmpty(*r.Name) {
		errs = append(errs, validator.ValidationError{Field: "name", Message: "name must not be empty"})
	}
	if r.Latitude != nil && !validator.IsValidLatitude(*r.Latitude) {
		errs = append(errs, validator.ValidationError{Field: "latitude", Message: "latitude must be between -90 and 90"})
	}
	if r.Longitude != nil && !validator.IsValidLongitude(*r.Longitude) {
		errs = append(errs, validator.ValidationError{Field: "longitude", Message: "longitude must be between -180 and 180"})
	}
	if r.RadiusMeters != nil && (*r.RadiusMeters < 10 || *r.RadiusMeters > 5000) {
		errs = append(errs, validator.ValidationError{Field: "radius_meters", Message: "radius_meters must be between 10 and 5000"})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// PeriodResponse represents the response structure for a period.
type PeriodResponse struct {
	ID                     string `json:"id"`
	GroupID                string `json:"group_id"`
	Name                   string `json:"name"`
	StartTime              string `json:"start_time"`
	EndTime                string `json:"end_time"`
	Weekdays               string `json:"weekdays"`
	LateGraceMinutes       int    `json:"late_grace_minutes"`
	EarlyLeaveGraceMinutes int    `json:"early_leave_grace_minutes"`
	IsActive               bool   `json:"is_active"`
}

func ToPeriodResponse(p Period) PeriodResponse {
	return PeriodResponse{
		ID:                     p.ID,
		GroupID:                p.GroupID,
		Name:                   p.Name,
		StartTime:              p.StartTime.Format("15:04"),
		EndTime:                p.EndTime.Format("15:04"),
		Weekdays:               p.Weekdays,
		LateGraceMinutes:       p.LateGraceMinutes,
		EarlyLeaveGraceMinutes: p.EarlyLeaveGraceMinutes,
		IsActive:               p.IsActive,
	}
}

// CreatePeriodRequest represents the request structure for creating a period.
type CreatePeriodRequest struct {
	GroupID                string `json:"group_id"`
	Name                   string `json:"name"`
	StartTime              string `json:"start_time"` // "HH:MM"
	EndTime                string `json:"end_time"`   // "HH:MM"
	Weekdays               string `json:"weekdays"`   // "1,2,3,4,5"
	LateGraceMinutes       int    `json:"late_grace_minutes"`
	EarlyLeaveGraceMinutes int    `json:"early_leave_grace_minutes"`
}

func (r *CreatePeriodRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.GroupID) {
		errs = append(errs, validator.ValidationError{Field: "group_id", Message: "group_id is required"})
	}
	if validator.IsEmpty(r.Name) {
		errs = append(errs, validator.ValidationError{Field: "name", Message: "name is required"})
	}
	if !validator.IsValidTimeOfDay(r.StartTime) {
		errs = append(errs, validator.ValidationError{Field: "start_time", Message: "start_time must be in HH:MM format"})
	}
	if !validator.IsValidTimeOfDay(r.EndTime) {
		errs = append(errs, validator.ValidationError{Field: "end_time", Message: "end_time must be in HH:MM format"})
	}
	if !validator.IsValidWeekdaySet(r.Weekdays) {
		errs = append(errs, validator.ValidationError{Field: "weekdays", Message: "weekdays must be a comma-separated list of 1-7"})
	}
	if r.LateGraceMinutes < 0 || r.LateGraceMinutes > 240 {
		errs = append(errs, validator.ValidationError{Field: "late_grace_minutes", Message: "late_grace_minutes must be between 0 and 240"})
	}
	if r.EarlyLeaveGraceMinutes < 0 || r.EarlyLeaveGraceMinutes > 240 {
		errs = append(errs, validator.ValidationError{Field: "early_leave_grace_minutes", Message: "early_leave_grace_minutes must be between 0 and 240"})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// UpdatePeriodRequest represents the request structure for updating a period.
type UpdatePeriodRequest struct {
	ID                     string  `json:"id"`
	Name                   *string `json:"name,omitempty"`
	StartTime              *string `json:"start_time,omitempty"`
	EndTime                *string `json:"end_time,omitempty"`
	Weekdays               *string `json:"weekdays,omitempty"`
	LateGraceMinutes       *int    `json:"late_grace_minutes,omitempty"`
	EarlyLeaveGraceMinutes *int    `json:"early_leave_grace_minutes,omitempty"`
	IsActive               *bool   `json:"is_active,omitempty"`
}

func (r *UpdatePeriodRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.ID) {
		errs = append(errs, validator.ValidationError{Field: "id", Message: "id is required"})
	}
	if r.StartTime != nil && !validator.IsValidTimeOfDay(*r.StartTime) {
		errs = append(errs, validator.ValidationError{Field: "start_time", Message: "start_time must be in HH:MM format"})
	}
	if r.EndTime != nil && !validator.IsValidTimeOfDay(*r.EndTime) {
		errs = append(errs, validator.ValidationError{Field: "end_time", Message: "end_time must be in HH:MM format"})
	}
	if r.Weekdays != nil && !validator.IsValidWeekdaySet(*r.Weekdays) {
		errs = append(errs, validator.ValidationError{Field: "weekdays", Message: "weekdays must be a comma-separated list of 1-7"})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// CheckInRequest represents the request structure for a check-in or
// check-out submission. IPAddress and UserAgent are filled by the handler.
type CheckInRequest struct {
	GroupID   string  `json:"group_id"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Notes     string  `json:"notes,omitempty"`
	IPAddress *string `json:"-"`
	UserAgent *string `json:"-"`
}

func (r *CheckInRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.GroupID) {
		errs = append(errs, validator.ValidationError{Field: "group_id", Message: "group_id is required"})
	}
	if !validator.IsValidLatitude(r.Latitude) {
		errs = append(errs, validator.ValidationError{Field: "latitude", Message: "latitude must be between -90 and 90"})
	}
	if !validator.IsValidLongitude(r.Longitude) {
		errs = append(errs, validator.ValidationError{Field: "longitude", Message: "longitude must be between -180 and 180"})
	}
	if len(r.Notes) > 500 {
		errs = append(errs, validator.ValidationError{Field: "notes", Message: "notes must not exceed 500 characters"})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// CheckInResponse represents the response structure for a recorded check-in.
type CheckInResponse struct {
	ID             string  `json:"id"`
	UserID         string  `json:"user_id"`
	UserName       *string `json:"user_name,omitempty"`
	GroupID        string  `json:"group_id"`
	GroupName      *string `json:"group_name,omitempty"`
	PeriodID       *string `json:"period_id,omitempty"`
	Type           string  `json:"type"`
	RecordedAt     string  `json:"recorded_at"`
	Latitude       float64 `json:"latitude"`
	Longitude      float64 `json:"longitude"`
	DistanceMeters float64 `json:"distance_meters"`
	Status         string  `json:"status"`
	Notes          string  `json:"notes,omitempty"`
}

func ToCheckInResponse(c CheckIn) CheckInResponse {
	return CheckInResponse{
		ID:             c.ID,
		UserID:         c.UserID,
		UserName:       c.UserName,
		GroupID:        c.GroupID,
		GroupName:      c.GroupName,
		PeriodID:       c.PeriodID,
		Type:           string(c.Type),
		RecordedAt:     c.RecordedAt.Format(time.RFC3339),
		Latitude:       c.Latitude,
		Longitude:      c.Longitude,
		DistanceMeters: c.DistanceMeters,
		Status:         string(c.Status),
		Notes:          c.Notes,
	}
}

// SummaryResponse represents the response structure for a daily summary.
type SummaryResponse struct {
	ID            string  `json:"id"`
	UserID        string  `json:"user_id"`
	UserName      *string `json:"user_name,omitempty"`
	GroupID       string  `json:"group_id"`
	Date          string  `json:"date"`
	FirstIn       *string `json:"first_in,omitempty"`
	LastOut       *string `json:"last_out,omitempty"`
	TotalMinutes  int     `json:"total_minutes"`
	TotalCheckIns int     `json:"total_checkins"`
	IsPresent     bool    `json:"is_present"`
	IsLate        bool    `json:"is_late"`
}

func ToSummaryResponse(s Summary) SummaryResponse {
	resp := SummaryResponse{
		ID:            s.ID,
		UserID:        s.UserID,
		UserName:      s.UserName,
		GroupID:       s.GroupID,
		Date:          s.Date.Format("2006-01-02"),
		TotalMinutes:  s.TotalMinutes,
		TotalCheckIns: s.TotalCheckIns,
		IsPresent:     s.IsPresent,
		IsLate:        s.IsLate,
	}
	if s.FirstIn != nil {
		v := s.FirstIn.Format(time.RFC3339)
		resp.FirstIn = &v
	}
	if s.LastOut != nil {
		v := s.LastOut.Format(time.RFC3339)
		resp.LastOut = &v
	}
	return resp
}

// ListCheckInsFilter narrows scoped check-in listings.
type ListCheckInsFilter struct {
	UserID  *string
	GroupID *string
	Type    *CheckInType
	Date    *time.Time
	Page    int
	Limit   int
}

// HistoryFilter narrows an employee's own attendance history.
type HistoryFilter struct {
	StartDate time.Time
	EndDate   time.Time
}

// AssignMemberRequest represents the request structure for assigning an
// employee to an attendance group.
type AssignMemberRequest struct {
	GroupID string `json:"-"` // From URL
	UserID  string `json:"user_id"`
}

func (r *AssignMemberRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.UserID) {
		errs = append(errs, validator.ValidationError{Field: "user_id", Message: "user_id is required"})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}
