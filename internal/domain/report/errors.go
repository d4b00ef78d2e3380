package report

import "errors"

var (
	ErrNoReportData = errors.New("no attendance data for the requested period")
)
