package attendance

import "errors"

var (
	ErrGroupNotFound       = errors.New("attendance group not found")
	ErrGroupInactive       = errors.New("attendance group is inactive")
	ErrPeriodNotFound      = errors.New("period not found")
	ErrCheckInNotFound     = errors.New("check-in not found")
	ErrNotGroupMember      = errors.New("employee is not a member of this attendance group")
	ErrAlreadyMember       = errors.New("employee is already an active member of this attendance group")
	ErrAlreadyCheckedIn    = errors.New("already checked in today for this group")
	ErrNoOpenCheckIn       = errors.New("no open check-in found for today")
	ErrSummaryNotFound     = errors.New("attendance summary not found")
	ErrGroupHasCheckIns    = errors.New("attendance group has recorded check-ins and cannot be deleted")
	ErrInvalidRadius       = errors.New("radius must be between 10 and 5000 meters")
	ErrEndBeforeStart      = errors.New("period end time must be after start time")
	ErrUnauthorizedGroup   = errors.New("unauthorized access to attendance group")
	ErrUnauthorizedCheckIn = errors.New("unauthorized access to check-in records")
)
