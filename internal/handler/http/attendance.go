package http

import (
	"context"
	"encoding/json"
	"log/slog"
	"math"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/attendly/attendance-backend-go/internal/domain/attendance"
	"github.com/attendly/attendance-backend-go/internal/domain/user"
	"github.com/attendly/attendance-backend-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type AttendanceHandler interface {
	CheckIn(w http.ResponseWriter, r *http.Request)
	CheckOut(w http.ResponseWriter, r *http.Request)
	History(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)

	CreateGroup(w http.ResponseWriter, r *http.Request)
	GetGroup(w http.ResponseWriter, r *http.Request)
	ListGroups(w http.ResponseWriter, r *http.Request)
	ListMyGroups(w http.ResponseWriter, r *http.Request)
	UpdateGroup(w http.ResponseWriter, r *http.Request)
	DeleteGroup(w http.ResponseWriter, r *http.Request)

	AssignMember(w http.ResponseWriter, r *http.Request)
	RemoveMember(w http.ResponseWriter, r *http.Request)
	ListMembers(w http.ResponseWriter, r *http.Request)

	CreatePeriod(w http.ResponseWriter, r *http.Request)
	ListPeriods(w http.ResponseWriter, r *http.Request)
	UpdatePeriod(w http.ResponseWriter, r *http.Request)
	DeletePeriod(w http.ResponseWriter, r *http.Request)
}

type AttendanceHandlerImpl struct {
	attendanceService attendance.AttendanceService
}

func NewAttendanceHandler(attendanceService attendance.AttendanceService) AttendanceHandler {
	return &AttendanceHandlerImpl{attendanceService: attendanceService}
}

// CheckIn implements AttendanceHandler.
func (h *AttendanceHandlerImpl) CheckIn(w http.ResponseWriter, r *http.Request) {
	h.record(w, r, h.attendanceService.CheckIn, "Checked in successfully")
}

// CheckOut implements AttendanceHandler.
func (h *AttendanceHandlerImpl) CheckOut(w http.ResponseWriter, r *http.Request) {
	h.record(w, r, h.attendanceService.CheckOut, "Checked out successfully")
}

func (h *AttendanceHandlerImpl) record(
	w http.ResponseWriter,
	r *http.Request,
	fn func(ctx context.Context, scope user.Scope, req attendance.CheckInRequest) (attendance.CheckInResponse, error),
	message string,
) {
	scope, err := scopeFromRequest(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	var req attendance.CheckInRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Check-in decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	if ip := clientIP(r); ip != "" {
		req.IPAddress = &ip
	}
	if ua := r.UserAgent(); ua != "" {
		req.UserAgent = &ua
	}

	checkIn, err := fn(r.Context(), scope, req)
	if err != nil {
		slog.Error("Check-in service error", "error", err, "group_id", req.GroupID)
		response.HandleError(w, err)
		return
	}

	response.Created(w, message, checkIn)
}

// History implements AttendanceHandler. The acting user's own records.
func (h *AttendanceHandlerImpl) History(w http.ResponseWriter, r *http.Request) {
	scope, err := scopeFromRequest(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	filter := historyFilterFromQuery(r)

	checkIns, summaries, err := h.attendanceService.History(r.Context(), scope, filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, map[string]interface{}{
		"checkins":  checkIns,
		"summaries": summaries,
	})
}

// List implements AttendanceHandler. Company-wide check-in listing for
// managers and HR.
func (h *AttendanceHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	scope, err := scopeFromRequest(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	filter := listCheckInsFilterFromQuery(r)

	checkIns, total, err := h.attendanceService.List(r.Context(), scope, filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMeta(w, checkIns, &response.Meta{
		Page:       filter.Page,
		Limit:      filter.Limit,
		TotalItems: total,
		TotalPages: int(math.Ceil(float64(total) / float64(filter.Limit))),
	})
}

// CreateGroup implements AttendanceHandler.
func (h *AttendanceHandlerImpl) CreateGroup(w http.ResponseWriter, r *http.Request) {
	scope, err := scopeFromRequest(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	var req attendance.CreateGroupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Create group decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	if scope.CompanyID != nil {
		req.CompanyID = *scope.CompanyID
	}

	created, err := h.attendanceService.CreateGroup(r.Context(), scope, req)
	if err != nil {
		slog.Error("Create group service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Attendance group created successfully", created)
}

// GetGroup implements AttendanceHandler.
func (h *AttendanceHandlerImpl) GetGroup(w http.ResponseWriter, r *http.Request) {
	scope, err := scopeFromRequest(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	group, err := h.attendanceService.GetGroup(r.Context(), scope, chi.URLParam(r, "groupID"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, group)
}

// ListGroups implements AttendanceHandler.
func (h *AttendanceHandlerImpl) ListGroups(w http.ResponseWriter, r *http.Request) {
	scope, err := scopeFromRequest(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	groups, err := h.attendanceService.ListGroups(r.Context(), scope)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, groups)
}

// ListMyGroups implements AttendanceHandler. Groups the acting user is an
// active member of.
func (h *AttendanceHandlerImpl) ListMyGroups(w http.ResponseWriter, r *http.Request) {
	scope, err := scopeFromRequest(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	groups, err := h.attendanceService.ListMyGroups(r.Context(), scope)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, groups)
}

// UpdateGroup implements AttendanceHandler.
func (h *AttendanceHandlerImpl) UpdateGroup(w http.ResponseWriter, r *http.Request) {
	scope, err := scopeFromRequest(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	var req attendance.UpdateGroupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Update group decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.ID = chi.URLParam(r, "groupID")
	if scope.CompanyID != nil {
		req.CompanyID = *scope.CompanyID
	}

	if err := h.attendanceService.UpdateGroup(r.Context(), scope, req); err != nil {
		slog.Error("Update group service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Attendance group updated successfully", nil)
}

// DeleteGroup implements AttendanceHandler.
func (h *AttendanceHandlerImpl) DeleteGroup(w http.ResponseWriter, r *http.Request) {
	scope, err := scopeFromRequest(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	if err := h.attendanceService.DeleteGroup(r.Context(), scope, chi.URLParam(r, "groupID")); err != nil {
		slog.Error("Delete group service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Attendance group deleted successfully", nil)
}

// AssignMember implements AttendanceHandler.
func (h *AttendanceHandlerImpl) AssignMember(w http.ResponseWriter, r *http.Request) {
	scope, err := scopeFromRequest(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	var req attendance.AssignMemberRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Assign member decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.GroupID = chi.URLParam(r, "groupID")

	member, err := h.attendanceService.AssignMember(r.Context(), scope, req)
	if err != nil {
		slog.Error("Assign member service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Member assigned successfully", member)
}

// RemoveMember implements AttendanceHandler.
func (h *AttendanceHandlerImpl) RemoveMember(w http.ResponseWriter, r *http.Request) {
	scope, err := scopeFromRequest(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	groupID := chi.URLParam(r, "groupID")
	userID := chi.URLParam(r, "userID")

	if err := h.attendanceService.RemoveMember(r.Context(), scope, groupID, userID); err != nil {
		slog.Error("Remove member service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Member removed successfully", nil)
}

// ListMembers implements AttendanceHandler.
func (h *AttendanceHandlerImpl) ListMembers(w http.ResponseWriter, r *http.Request) {
	scope, err := scopeFromRequest(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	members, err := h.attendanceService.ListMembers(r.Context(), scope, chi.URLParam(r, "groupID"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, members)
}

// CreatePeriod implements AttendanceHandler.
func (h *AttendanceHandlerImpl) CreatePeriod(w http.ResponseWriter, r *http.Request) {
	scope, err := scopeFromRequest(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	var req attendance.CreatePeriodRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Create period decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.GroupID = chi.URLParam(r, "groupID")

	created, err := h.attendanceService.CreatePeriod(r.Context(), scope, req)
	if err != nil {
		slog.Error("Create period service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Period created successfully", created)
}

// ListPeriods implements AttendanceHandler.
func (h *AttendanceHandlerImpl) ListPeriods(w http.ResponseWriter, r *http.Request) {
	scope, err := scopeFromRequest(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	periods, err := h.attendanceService.ListPeriods(r.Context(), scope, chi.URLParam(r, "groupID"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, periods)
}

// UpdatePeriod implements AttendanceHandler.
func (h *AttendanceHandlerImpl) UpdatePeriod(w http.ResponseWriter, r *http.Request) {
	scope, err := scopeFromRequest(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	var req attendance.UpdatePeriodRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Update period decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.ID = chi.URLParam(r, "periodID")

	if err := h.attendanceService.UpdatePeriod(r.Context(), scope, req); err != nil {
		slog.Error("Update period service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Period updated successfully", nil)
}

// DeletePeriod implements AttendanceHandler.
func (h *AttendanceHandlerImpl) DeletePeriod(w http.ResponseWriter, r *http.Request) {
	scope, err := scopeFromRequest(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	if err := h.attendanceService.DeletePeriod(r.Context(), scope, chi.URLParam(r, "periodID")); err != nil {
		slog.Error("Delete period service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Period deleted successfully", nil)
}

func historyFilterFromQuery(r *http.Request) attendance.HistoryFilter {
	q := r.URL.Query()

	end := time.Now()
	start := end.AddDate(0, 0, -30)
	if v, err := time.Parse("2006-01-02", q.Get("start_date")); err == nil {
		start = v
	}
	if v, err := time.Parse("2006-01-02", q.Get("end_date")); err == nil {
		end = v
	}

	return attendance.HistoryFilter{StartDate: start, EndDate: end}
}

func listCheckInsFilterFromQuery(r *http.Request) attendance.ListCheckInsFilter {
	q := r.URL.Query()

	var filter attendance.ListCheckInsFilter
	if v := q.Get("user_id"); v != "" {
		filter.UserID = &v
	}
	if v := q.Get("group_id"); v != "" {
		filter.GroupID = &v
	}
	if v := q.Get("type"); v != "" {
		t := attendance.CheckInType(v)
		filter.Type = &t
	}
	if v, err := time.Parse("2006-01-02", q.Get("date")); err == nil {
		filter.Date = &v
	}

	filter.Page, _ = strconv.Atoi(q.Get("page"))
	filter.Limit, _ = strconv.Atoi(q.Get("limit"))
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 || filter.Limit > 100 {
		filter.Limit = 20
	}

	return filter
}

// clientIP prefers the first X-Forwarded-For hop when running behind a
// proxy, falling back to the socket peer address.
func clientIP(r *http.Request) string {
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		parts := strings.Split(fwd, ",")
		return strings.TrimSpace(parts[0])
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
