package approval

import (
	"time"

	"github.com/dayflow-hr/hrms-backend-go/internal/domain/leave"
)

// SalaryRequest is an employee's petition for a new salary. It follows the
// same Pending -> Approved | Rejected workflow as leave requests.
type SalaryRequest struct {
	ID              string       `json:"id"`
	EmployeeID      string       `json:"employeeId"`
	RequestedAmount int64        `json:"requestedAmount"`
	CurrentAmount   int64        `json:"currentAmount"`
	Reason          string       `json:"reason"`
	OvertimeHours   *float64     `json:"overtimeHours,omitempty"`
	Status          leave.Status `json:"status"`
	AdminComment    *string      `json:"adminComments,omitempty"`
	DecidedBy       *string      `json:"decidedBy,omitempty"`
	CreatedAt       time.Time    `json:"createdAt"`
	UpdatedAt       time.Time    `json:"updatedAt"`

	Version int64 `json:"-"`
}

func (r *SalaryRequest) Decide(to leave.Status, comment *string, decidedBy string, now time.Time) error {
	if !leave.CanTransition(r.Status, to) {
		return ErrAlreadyDecided
	}
	r.Status = to
	r.AdminComment = comment
	r.DecidedBy = &decidedBy
	r.UpdatedAt = now
	return nil
}
