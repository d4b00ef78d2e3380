package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/attendly/attendance-backend-go/internal/domain/branch"
	"github.com/attendly/attendance-backend-go/internal/domain/department"
	"github.com/attendly/attendance-backend-go/internal/domain/user"
	"github.com/attendly/attendance-backend-go/internal/handler/http/response"
	"github.com/attendly/attendance-backend-go/internal/service/master"
	"github.com/go-chi/chi/v5"
)

// MasterHandler exposes branch, department and membership management.
type MasterHandler interface {
	CreateBranch(w http.ResponseWriter, r *http.Request)
	GetBranch(w http.ResponseWriter, r *http.Request)
	ListBranches(w http.ResponseWriter, r *http.Request)
	UpdateBranch(w http.ResponseWriter, r *http.Request)
	DeleteBranch(w http.ResponseWriter, r *http.Request)

	CreateDepartment(w http.ResponseWriter, r *http.Request)
	GetDepartment(w http.ResponseWriter, r *http.Request)
	ListDepartments(w http.ResponseWriter, r *http.Request)
	UpdateDepartment(w http.ResponseWriter, r *http.Request)
	DeleteDepartment(w http.ResponseWriter, r *http.Request)

	AddDepartmentMember(w http.ResponseWriter, r *http.Request)
	RemoveDepartmentMember(w http.ResponseWriter, r *http.Request)
	ListDepartmentMembers(w http.ResponseWriter, r *http.Request)
}

type MasterHandlerImpl struct {
	masterService master.MasterService
}

func NewMasterHandler(masterService master.MasterService) MasterHandler {
	return &MasterHandlerImpl{masterService: masterService}
}

// CreateBranch implements MasterHandler.
func (h *MasterHandlerImpl) CreateBranch(w http.ResponseWriter, r *http.Request) {
	scope, err := scopeFromRequest(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	var req branch.CreateBranchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Create branch decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	if scope.CompanyID != nil {
		req.CompanyID = *scope.CompanyID
	}

	created, err := h.masterService.CreateBranch(r.Context(), scope, req)
	if err != nil {
		slog.Error("Create branch service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Branch created successfully", created)
}

// GetBranch implements MasterHandler.
func (h *MasterHandlerImpl) GetBranch(w http.ResponseWriter, r *http.Request) {
	scope, err := scopeFromRequest(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	branchResponse, err := h.masterService.GetBranch(r.Context(), scope, chi.URLParam(r, "branchID"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, branchResponse)
}

// ListBranches implements MasterHandler.
func (h *MasterHandlerImpl) ListBranches(w http.ResponseWriter, r *http.Request) {
	scope, err := scopeFromRequest(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	branches, err := h.masterService.ListBranches(r.Context(), scope)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, branches)
}

// UpdateBranch implements MasterHandler.
func (h *MasterHandlerImpl) UpdateBranch(w http.ResponseWriter, r *http.Request) {
	scope, err := scopeFromRequest(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	var req branch.UpdateBranchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Update branch decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.ID = chi.URLParam(r, "branchID")
	if scope.CompanyID != nil {
		req.CompanyID = *scope.CompanyID
	}

	if err := h.masterService.UpdateBranch(r.Context(), scope, req); err != nil {
		slog.Error("Update branch service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Branch updated successfully", nil)
}

// DeleteBranch implements MasterHandler.
func (h *MasterHandlerImpl) DeleteBranch(w http.ResponseWriter, r *http.Request) {
	scope, err := scopeFromRequest(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	if err := h.masterService.DeleteBranch(r.Context(), scope, chi.URLParam(r, "branchID")); err != nil {
		slog.Error("Delete branch service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Branch deleted successfully", nil)
}

// CreateDepartment implements MasterHandler.
func (h *MasterHandlerImpl) CreateDepartment(w http.ResponseWriter, r *http.Request) {
	scope, err := scopeFromRequest(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	var req department.CreateDepartmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Create department decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	created, err := h.masterService.CreateDepartment(r.Context(), scope, req)
	if err != nil {
		slog.Error("Create department service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Department created successfully", created)
}

// GetDepartment implements MasterHandler.
func (h *MasterHandlerImpl) GetDepartment(w http.ResponseWriter, r *http.Request) {
	scope, err := scopeFromRequest(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	departmentResponse, err := h.masterService.GetDepartment(r.Context(), scope, chi.URLParam(r, "departmentID"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, departmentResponse)
}

// ListDepartments implements MasterHandler.
func (h *MasterHandlerImpl) ListDepartments(w http.ResponseWriter, r *http.Request) {
	scope, err := scopeFromRequest(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	var branchID *string
	if v := r.URL.Query().Get("branch_id"); v != "" {
		branchID = &v
	}

	departments, err := h.masterService.ListDepartments(r.Context(), scope, branchID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, departments)
}

// UpdateDepartment implements MasterHandler.
func (h *MasterHandlerImpl) UpdateDepartment(w http.ResponseWriter, r *http.Request) {
	scope, err := scopeFromRequest(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	var req department.UpdateDepartmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Update department decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.ID = chi.URLParam(r, "departmentID")

	if err := h.masterService.UpdateDepartment(r.Context(), scope, req); err != nil {
		slog.Error("Update department service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Department updated successfully", nil)
}

// DeleteDepartment implements MasterHandler.
func (h *MasterHandlerImpl) DeleteDepartment(w http.ResponseWriter, r *http.Request) {
	scope, err := scopeFromRequest(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	if err := h.masterService.DeleteDepartment(r.Context(), scope, chi.URLParam(r, "departmentID")); err != nil {
		slog.Error("Delete department service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Department deleted successfully", nil)
}

// AddDepartmentMember implements MasterHandler.
func (h *MasterHandlerImpl) AddDepartmentMember(w http.ResponseWriter, r *http.Request) {
	scope, err := scopeFromRequest(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	var req department.AddMemberRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Add department member decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.DepartmentID = chi.URLParam(r, "departmentID")

	membership, err := h.masterService.AddDepartmentMember(r.Context(), scope, req)
	if err != nil {
		slog.Error("Add department member service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Member added successfully", membership)
}

// RemoveDepartmentMember implements MasterHandler.
func (h *MasterHandlerImpl) RemoveDepartmentMember(w http.ResponseWriter, r *http.Request) {
	scope, err := scopeFromRequest(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	departmentID := chi.URLParam(r, "departmentID")
	userID := chi.URLParam(r, "userID")
	if userID == "" {
		response.HandleError(w, user.ErrUserNotFound)
		return
	}

	if err := h.masterService.RemoveDepartmentMember(r.Context(), scope, departmentID, userID); err != nil {
		slog.Error("Remove department member service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Member removed successfully", nil)
}

// ListDepartmentMembers implements MasterHandler.
func (h *MasterHandlerImpl) ListDepartmentMembers(w http.ResponseWriter, r *http.Request) {
	scope, err := scopeFromRequest(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	members, err := h.masterService.ListDepartmentMembers(r.Context(), scope, chi.URLParam(r, "departmentID"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, members)
}
