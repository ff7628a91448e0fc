package response

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/dayflow-hr/hrms-backend-go/internal/domain/approval"
	"github.com/dayflow-hr/hrms-backend-go/internal/domain/attendance"
	"github.com/dayflow-hr/hrms-backend-go/internal/domain/auth"
	"github.com/dayflow-hr/hrms-backend-go/internal/domain/dashboard"
	"github.com/dayflow-hr/hrms-backend-go/internal/domain/employee"
	"github.com/dayflow-hr/hrms-backend-go/internal/domain/leave"
	"github.com/dayflow-hr/hrms-backend-go/internal/domain/payroll"
	"github.com/dayflow-hr/hrms-backend-go/internal/domain/record"
	"github.com/dayflow-hr/hrms-backend-go/internal/domain/user"
	"github.com/dayflow-hr/hrms-backend-go/internal/pkg/validator"
	"github.com/dayflow-hr/hrms-backend-go/internal/service/file"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Auth domain errors
	case errors.Is(err, auth.ErrInvalidCredentials):
		Unauthorized(w, err.Error())
	case errors.Is(err, auth.ErrSessionNotFound), errors.Is(err, auth.ErrUnauthenticated):
		Unauthorized(w, err.Error())
	case errors.Is(err, auth.ErrAccountNotApproved):
		Forbidden(w, err.Error())
	case errors.Is(err, auth.ErrEmailExists):
		Conflict(w, err.Error())

	// User domain errors
	case errors.Is(err, user.ErrUserNotFound):
		NotFound(w, "Employee not found")
	case errors.Is(err, user.ErrUserEmailExists), errors.Is(err, user.ErrEmployeeIDExists):
		Conflict(w, err.Error())
	case errors.Is(err, user.ErrInvalidSalary), errors.Is(err, approval.ErrInvalidSalary):
		BadRequest(w, err.Error(), nil)
	case errors.Is(err, user.ErrAdminPrivilegeRequired), errors.Is(err, user.ErrInsufficientPermissions):
		Forbidden(w, err.Error())

	// Attendance domain errors
	case errors.Is(err, attendance.ErrAlreadyCheckedIn),
		errors.Is(err, attendance.ErrNotCheckedIn),
		errors.Is(err, attendance.ErrAlreadyCheckedOut),
		errors.Is(err, attendance.ErrAttendanceExists):
		Conflict(w, err.Error())
	case errors.Is(err, attendance.ErrAttendanceNotFound):
		NotFound(w, "Attendance record not found")
	case errors.Is(err, attendance.ErrInvalidPeriod), errors.Is(err, attendance.ErrInvalidDate):
		BadRequest(w, err.Error(), nil)

	// Leave and approval workflow errors
	case errors.Is(err, leave.ErrLeaveRequestNotFound):
		NotFound(w, "Leave request not found")
	case errors.Is(err, approval.ErrSalaryRequestNotFound):
		NotFound(w, "Salary request not found")
	case errors.Is(err, leave.ErrAlreadyDecided), errors.Is(err, approval.ErrAccountAlreadyApproved):
		Conflict(w, err.Error())
	case errors.Is(err, leave.ErrInvalidRange),
		errors.Is(err, leave.ErrInvalidDate),
		errors.Is(err, leave.ErrInvalidLeaveType),
		errors.Is(err, leave.ErrCommentRequired):
		BadRequest(w, err.Error(), nil)
	case errors.Is(err, leave.ErrNotRequestOwner), errors.Is(err, approval.ErrCannotRejectAdmin):
		Forbidden(w, err.Error())

	// Payroll domain errors
	case errors.Is(err, payroll.ErrPayrollRecordNotFound):
		NotFound(w, "Payroll record not found")
	case errors.Is(err, payroll.ErrPayrollExists), errors.Is(err, payroll.ErrInvalidTransition):
		Conflict(w, err.Error())
	case errors.Is(err, payroll.ErrInvalidPeriod),
		errors.Is(err, payroll.ErrNegativeAmount),
		errors.Is(err, payroll.ErrEmployeeHasNoBaseSalary):
		BadRequest(w, err.Error(), nil)

	// Dashboard
	case errors.Is(err, dashboard.ErrInvalidMonth):
		BadRequest(w, err.Error(), nil)

	// Uploads
	case errors.Is(err, employee.ErrFileRequired), errors.Is(err, file.ErrInvalidFileType):
		BadRequest(w, err.Error(), nil)
	case errors.Is(err, file.ErrFileTooLarge):
		writeJSON(w, http.StatusRequestEntityTooLarge, Response{
			Success: false,
			Error:   &ErrorDetail{Code: "PAYLOAD_TOO_LARGE", Message: err.Error()},
		})

	// Record store errors
	case errors.Is(err, record.ErrVersionConflict):
		Conflict(w, "The record was changed by another request, reload and retry")
	case errors.Is(err, record.ErrCorruptCollection):
		slog.Error("corrupt collection", "error", err)
		InternalServerError(w, "Stored data could not be read")

	default:
		slog.Error("unhandled error", "error", err)
		InternalServerError(w, "An unexpected error occurred")
	}
}
