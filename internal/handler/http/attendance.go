package http

import (
	"net/http"
	"time"

	"github.com/dayflow-hr/hrms-backend-go/internal/domain/attendance"
	"github.com/dayflow-hr/hrms-backend-go/internal/domain/user"
	"github.com/dayflow-hr/hrms-backend-go/internal/handler/http/response"
	"github.com/dayflow-hr/hrms-backend-go/internal/pkg/validator"
)

type AttendanceHandler interface {
	CheckIn(w http.ResponseWriter, r *http.Request)
	CheckOut(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	Today(w http.ResponseWriter, r *http.Request)
	Stats(w http.ResponseWriter, r *http.Request)
}

type attendanceHandlerImpl struct {
	attendanceService attendance.AttendanceService
}

func NewAttendanceHandler(attendanceService attendance.AttendanceService) AttendanceHandler {
	return &attendanceHandlerImpl{
		attendanceService: attendanceService,
	}
}

// CheckIn implements AttendanceHandler.
func (h *attendanceHandlerImpl) CheckIn(w http.ResponseWriter, r *http.Request) {
	session, ok := currentSession(w, r)
	if !ok {
		return
	}

	result, err := h.attendanceService.CheckIn(r.Context(), session.EmployeeID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Check in successful", attendance.NewAttendanceResponse(result))
}

// CheckOut implements AttendanceHandler.
func (h *attendanceHandlerImpl) CheckOut(w http.ResponseWriter, r *http.Request) {
	session, ok := currentSession(w, r)
	if !ok {
		return
	}

	result, err := h.attendanceService.CheckOut(r.Context(), session.EmployeeID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Check out successful", attendance.NewAttendanceResponse(result))
}

// List implements AttendanceHandler. Without attendance.view_all the
// listing is limited to the caller's own records.
func (h *attendanceHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	session, ok := currentSession(w, r)
	if !ok {
		return
	}

	q := r.URL.Query()
	filter := attendance.ListFilter{
		EmployeeID: q.Get("employee_id"),
		From:       q.Get("from"),
		To:         q.Get("to"),
		Status:     attendance.Status(q.Get("status")),
	}
	if filter.Status != "" && !filter.Status.Valid() {
		response.HandleError(w, validator.ValidationErrors{{Field: "status", Message: "unknown attendance status"}})
		return
	}
	if !session.Can(user.PermissionAttendanceViewAll) {
		filter.EmployeeID = session.EmployeeID
	}

	records, err := h.attendanceService.List(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessList(w, attendance.NewAttendanceResponses(records))
}

// Today implements AttendanceHandler.
func (h *attendanceHandlerImpl) Today(w http.ResponseWriter, r *http.Request) {
	session, ok := currentSession(w, r)
	if !ok {
		return
	}

	record, err := h.attendanceService.Today(r.Context(), session.EmployeeID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, attendance.NewAttendanceResponse(record))
}

// Stats implements AttendanceHandler.
func (h *attendanceHandlerImpl) Stats(w http.ResponseWriter, r *http.Request) {
	session, ok := currentSession(w, r)
	if !ok {
		return
	}

	now := time.Now()
	year, err := getIntQueryParam(r, "year", now.Year())
	if err != nil {
		response.BadRequest(w, "year must be a number", nil)
		return
	}
	month, err := getIntQueryParam(r, "month", int(now.Month()))
	if err != nil {
		response.BadRequest(w, "month must be a number", nil)
		return
	}

	employeeID := session.EmployeeID
	if requested := r.URL.Query().Get("employee_id"); requested != "" && session.Can(user.PermissionAttendanceViewAll) {
		employeeID = requested
	}

	stats, err := h.attendanceService.StatsForMonth(r.Context(), employeeID, year, month)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, stats)
}
