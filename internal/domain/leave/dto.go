package leave

import (
	"fmt"
	"time"

	"github.com/dayflow-hr/hrms-backend-go/internal/pkg/validator"
)

// SubmitLeaveRequest is the body of POST /leaves. UserID lets an admin file
// on behalf of an employee code; employees always file for themselves.
type SubmitLeaveRequest struct {
	UserID    string `json:"user_id,omitempty"`
	LeaveType string `json:"leave_type,omitempty"`
	StartDate string `json:"start_date" validate:"notblank"`
	EndDate   string `json:"end_date" validate:"notblank"`
	Reason    string `json:"reason" validate:"notblank,max=1000"`
}

// Validate reports blank fields, malformed dates, unknown types and an end
// date before the start date. The error matches ErrInvalidRange and carries
// the field details as validator.ValidationErrors.
func (r *SubmitLeaveRequest) Validate() error {
	errs := validator.Struct(r)
	if r.LeaveType != "" && !Type(r.LeaveType).Valid() {
		errs = append(errs, validator.ValidationError{Field: "leave_type", Message: "unknown leave type"})
	}
	errs = append(errs, validateRange(r.StartDate, r.EndDate)...)
	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", ErrInvalidRange, errs)
	}
	return nil
}

func (r *SubmitLeaveRequest) Type() Type {
	if r.LeaveType == "" {
		return TypePaid
	}
	return Type(r.LeaveType)
}

type UpdateDatesRequest struct {
	StartDate string `json:"start_date" validate:"notblank"`
	EndDate   string `json:"end_date" validate:"notblank"`
}

func (r *UpdateDatesRequest) Validate() error {
	errs := validator.Struct(r)
	errs = append(errs, validateRange(r.StartDate, r.EndDate)...)
	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", ErrInvalidRange, errs)
	}
	return nil
}

func validateRange(start, end string) validator.ValidationErrors {
	var errs validator.ValidationErrors
	s, okStart := validator.IsValidDate(start)
	e, okEnd := validator.IsValidDate(end)
	if start != "" && !okStart {
		errs = append(errs, validator.ValidationError{Field: "start_date", Message: "must be a date in YYYY-MM-DD format"})
	}
	if end != "" && !okEnd {
		errs = append(errs, validator.ValidationError{Field: "end_date", Message: "must be a date in YYYY-MM-DD format"})
	}
	if okStart && okEnd && e.Before(s) {
		errs = append(errs, validator.ValidationError{Field: "end_date", Message: "end_date must not be before start_date"})
	}
	return errs
}

// DecisionRequest is the body of approve and reject calls.
type DecisionRequest struct {
	Comment *string `json:"comment,omitempty" validate:"omitnil,max=1000"`
}

func (r *DecisionRequest) Validate() error {
	return validator.Struct(r).Err()
}

type ListLeaveRequest struct {
	Status     string
	Search     string
	EmployeeID string
}

func (r *ListLeaveRequest) Validate() error {
	if r.Status != "" && !Status(r.Status).Valid() {
		return validator.ValidationErrors{{Field: "status", Message: "must be one of: Pending Approved Rejected"}}
	}
	return nil
}

type LeaveRequestResponse struct {
	ID           string  `json:"id"`
	EmployeeID   string  `json:"employee_id"`
	EmployeeName string  `json:"employee_name,omitempty"`
	LeaveType    string  `json:"leave_type"`
	StartDate    string  `json:"start_date"`
	EndDate      string  `json:"end_date"`
	Days         int     `json:"days"`
	Reason       string  `json:"reason"`
	Status       string  `json:"status"`
	AdminComment *string `json:"admin_comment,omitempty"`
	CreatedAt    string  `json:"created_at"`
	UpdatedAt    string  `json:"updated_at"`
}

func NewLeaveRequestResponse(r LeaveRequest, employeeName string) LeaveRequestResponse {
	days, _ := DaysRequested(r.StartDate, r.EndDate)
	return LeaveRequestResponse{
		ID:           r.ID,
		EmployeeID:   r.EmployeeID,
		EmployeeName: employeeName,
		LeaveType:    string(r.Type),
		StartDate:    r.StartDate,
		EndDate:      r.EndDate,
		Days:         days,
		Reason:       r.Remarks,
		Status:       string(r.Status),
		AdminComment: r.AdminComment,
		CreatedAt:    r.CreatedAt.Format(time.RFC3339),
		UpdatedAt:    r.UpdatedAt.Format(time.RFC3339),
	}
}
