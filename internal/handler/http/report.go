package http

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/attendly/attendance-backend-go/internal/domain/report"
	"github.com/attendly/attendance-backend-go/internal/handler/http/response"
)

type ReportHandler interface {
	Attendance(w http.ResponseWriter, r *http.Request)
	AttendanceCSV(w http.ResponseWriter, r *http.Request)
}

type ReportHandlerImpl struct {
	reportService report.ReportService
}

func NewReportHandler(reportService report.ReportService) ReportHandler {
	return &ReportHandlerImpl{reportService: reportService}
}

// Attendance implements ReportHandler.
func (h *ReportHandlerImpl) Attendance(w http.ResponseWriter, r *http.Request) {
	scope, err := scopeFromRequest(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	req := reportRequestFromQuery(r)

	data, err := h.reportService.GenerateAttendanceReport(r.Context(), scope, req)
	if err != nil {
		slog.Error("Attendance report service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Success(w, data)
}

// AttendanceCSV implements ReportHandler. Streams the report as a CSV
// download.
func (h *ReportHandlerImpl) AttendanceCSV(w http.ResponseWriter, r *http.Request) {
	scope, err := scopeFromRequest(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	req := reportRequestFromQuery(r)
	if err := req.Validate(); err != nil {
		// Validate before touching headers so errors still go out as JSON.
		response.HandleError(w, err)
		return
	}

	filename := fmt.Sprintf("attendance_%s_%s.csv", req.StartDate, req.EndDate)
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))

	if err := h.reportService.WriteAttendanceCSV(r.Context(), scope, req, w); err != nil {
		slog.Error("Attendance CSV service error", "error", err)
	}
}

func reportRequestFromQuery(r *http.Request) report.AttendanceReportRequest {
	q := r.URL.Query()

	req := report.AttendanceReportRequest{
		StartDate: q.Get("start_date"),
		EndDate:   q.Get("end_date"),
	}
	if v := q.Get("department_id"); v != "" {
		req.DepartmentID = &v
	}
	if v := q.Get("employee_id"); v != "" {
		req.EmployeeID = &v
	}
	return req
}
