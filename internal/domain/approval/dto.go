package approval

import (
	"time"

	"github.com/dayflow-hr/hrms-backend-go/internal/pkg/validator"
)

type ApproveAccountRequest struct {
	Salary *int64 `json:"salary,omitempty" validate:"omitnil,gt=0"`
}

func (r *ApproveAccountRequest) Validate() error {
	return validator.Struct(r).Err()
}

type SubmitSalaryRequest struct {
	RequestedAmount int64    `json:"requested_amount" validate:"gt=0"`
	Reason          string   `json:"reason" validate:"notblank,max=1000"`
	OvertimeHours   *float64 `json:"overtime_hours,omitempty" validate:"omitnil,gte=0"`
}

func (r *SubmitSalaryRequest) Validate() error {
	return validator.Struct(r).Err()
}

type ListSalaryRequest struct {
	Status     string
	EmployeeID string
}

type SalaryRequestResponse struct {
	ID              string   `json:"id"`
	EmployeeID      string   `json:"employee_id"`
	EmployeeName    string   `json:"employee_name,omitempty"`
	RequestedAmount int64    `json:"requested_amount"`
	CurrentAmount   int64    `json:"current_amount"`
	Reason          string   `json:"reason"`
	OvertimeHours   *float64 `json:"overtime_hours,omitempty"`
	Status          string   `json:"status"`
	AdminComment    *string  `json:"admin_comment,omitempty"`
	CreatedAt       string   `json:"created_at"`
}

func NewSalaryRequestResponse(r SalaryRequest, employeeName string) SalaryRequestResponse {
	return SalaryRequestResponse{
		ID:              r.ID,
		EmployeeID:      r.EmployeeID,
		EmployeeName:    employeeName,
		RequestedAmount: r.RequestedAmount,
		CurrentAmount:   r.CurrentAmount,
		Reason:          r.Reason,
		OvertimeHours:   r.OvertimeHours,
		Status:          string(r.Status),
		AdminComment:    r.AdminComment,
		CreatedAt:       r.CreatedAt.Format(time.RFC3339),
	}
}
