package http

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/dayflow-hr/hrms-backend-go/internal/domain/employee"
	"github.com/dayflow-hr/hrms-backend-go/internal/domain/user"
	"github.com/dayflow-hr/hrms-backend-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type EmployeeHandler interface {
	List(w http.ResponseWriter, r *http.Request)
	Team(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	UpdateProfile(w http.ResponseWriter, r *http.Request)
	UpdateSalary(w http.ResponseWriter, r *http.Request)
	UploadAvatar(w http.ResponseWriter, r *http.Request)
}

type employeeHandlerImpl struct {
	employeeService employee.EmployeeService
}

func NewEmployeeHandler(employeeService employee.EmployeeService) EmployeeHandler {
	return &employeeHandlerImpl{
		employeeService: employeeService,
	}
}

// List implements EmployeeHandler.
func (h *employeeHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	req := user.ListEmployeesRequest{
		Search:     r.URL.Query().Get("search"),
		Department: r.URL.Query().Get("department"),
	}

	employees, err := h.employeeService.ListEmployees(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessList(w, user.NewUserResponses(employees))
}

// Team implements EmployeeHandler.
func (h *employeeHandlerImpl) Team(w http.ResponseWriter, r *http.Request) {
	session, ok := currentSession(w, r)
	if !ok {
		return
	}

	team, err := h.employeeService.ListTeam(r.Context(), session.UserID, user.ListEmployeesRequest{
		Search:     r.URL.Query().Get("search"),
		Department: r.URL.Query().Get("department"),
	})
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, employee.NewTeamResponse(team))
}

// Get implements EmployeeHandler. Employees may only read their own record.
func (h *employeeHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	session, ok := currentSession(w, r)
	if !ok {
		return
	}

	found, err := h.employeeService.GetEmployee(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}
	if found.ID != session.UserID && !session.Can(user.PermissionEmployeeViewAll) {
		response.HandleError(w, user.ErrInsufficientPermissions)
		return
	}

	response.Success(w, user.NewUserResponse(found))
}

// UpdateProfile implements EmployeeHandler.
func (h *employeeHandlerImpl) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	session, ok := currentSession(w, r)
	if !ok {
		return
	}

	var req user.UpdateProfileRequest
	if !decodeJSON(w, r, &req, false) {
		return
	}

	updated, err := h.employeeService.UpdateProfile(r.Context(), session.UserID, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Profile updated", user.NewUserResponse(updated))
}

// UpdateSalary implements EmployeeHandler.
func (h *employeeHandlerImpl) UpdateSalary(w http.ResponseWriter, r *http.Request) {
	var req user.UpdateSalaryRequest
	if !decodeJSON(w, r, &req, false) {
		return
	}

	updated, err := h.employeeService.UpdateSalary(r.Context(), chi.URLParam(r, "id"), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Salary updated", user.NewUserResponse(updated))
}

// UploadAvatar implements EmployeeHandler.
func (h *employeeHandlerImpl) UploadAvatar(w http.ResponseWriter, r *http.Request) {
	session, ok := currentSession(w, r)
	if !ok {
		return
	}

	if err := r.ParseMultipartForm(5 << 20); err != nil {
		slog.Error("Failed to parse multipart form", "error", err)
		response.BadRequest(w, "Failed to parse form data", nil)
		return
	}

	file, fileHeader, err := r.FormFile("avatar")
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			response.HandleError(w, employee.ErrFileRequired)
			return
		}
		slog.Error("Failed to get file from form", "error", err)
		response.BadRequest(w, "Failed to read uploaded file", nil)
		return
	}
	defer file.Close()

	updated, err := h.employeeService.UploadAvatar(r.Context(), employee.UploadAvatarRequest{
		UserID:   session.UserID,
		File:     file,
		Filename: fileHeader.Filename,
	})
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Avatar updated", user.NewUserResponse(updated))
}
