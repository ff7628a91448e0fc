package leave

import (
	"math"
	"time"
)

type Type string

const (
	TypePaid   Type = "Paid Leave"
	TypeSick   Type = "Sick Leave"
	TypeUnpaid Type = "Unpaid Leave"
	TypeCasual Type = "Casual Leave"
)

var Types = []Type{TypePaid, TypeSick, TypeUnpaid, TypeCasual}

func (t Type) Valid() bool {
	for _, known := range Types {
		if t == known {
			return true
		}
	}
	return false
}

// Status is the three-state decision workflow shared by leave and salary
// requests. Pending is the only non-terminal state.
type Status string

const (
	StatusPending  Status = "Pending"
	StatusApproved Status = "Approved"
	StatusRejected Status = "Rejected"
)

func (s Status) Valid() bool {
	return s == StatusPending || s == StatusApproved || s == StatusRejected
}

func (s Status) IsTerminal() bool {
	return s == StatusApproved || s == StatusRejected
}

// CanTransition allows only Pending -> Approved and Pending -> Rejected.
func CanTransition(from, to Status) bool {
	return from == StatusPending && to.IsTerminal()
}

const DefaultApprovalComment = "Approved by admin"

const DateLayout = "2006-01-02"

type LeaveRequest struct {
	ID           string    `json:"id"`
	EmployeeID   string    `json:"employeeId"`
	Type         Type      `json:"leaveType"`
	StartDate    string    `json:"startDate"`
	EndDate      string    `json:"endDate"`
	Remarks      string    `json:"remarks"`
	Status       Status    `json:"status"`
	AdminComment *string   `json:"adminComments,omitempty"`
	DecidedBy    *string   `json:"decidedBy,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`

	Version int64 `json:"-"`
}

// Decide moves a pending request to a terminal status.
func (r *LeaveRequest) Decide(to Status, comment *string, decidedBy string, now time.Time) error {
	if !CanTransition(r.Status, to) {
		return ErrAlreadyDecided
	}
	r.Status = to
	r.AdminComment = comment
	r.DecidedBy = &decidedBy
	r.UpdatedAt = now
	return nil
}

// Covers reports whether date (YYYY-MM-DD) lies within the requested range.
func (r *LeaveRequest) Covers(date string) bool {
	return r.StartDate <= date && date <= r.EndDate
}

// DaysRequested counts calendar days between start and end inclusive:
// ceil(|end - start| in days) + 1.
func DaysRequested(start, end string) (int, error) {
	s, err := time.Parse(DateLayout, start)
	if err != nil {
		return 0, ErrInvalidDate
	}
	e, err := time.Parse(DateLayout, end)
	if err != nil {
		return 0, ErrInvalidDate
	}
	days := math.Abs(e.Sub(s).Hours()) / 24
	return int(math.Ceil(days)) + 1, nil
}
