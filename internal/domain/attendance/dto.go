package attendance

import (
	"time"
)

type AttendanceResponse struct {
	ID          string   `json:"id"`
	EmployeeID  string   `json:"employee_id"`
	Date        string   `json:"date"`
	CheckIn     *string  `json:"check_in,omitempty"`
	CheckOut    *string  `json:"check_out,omitempty"`
	Status      string   `json:"status"`
	HoursWorked *float64 `json:"hours_worked,omitempty"`
}

func NewAttendanceResponse(a Attendance) AttendanceResponse {
	return AttendanceResponse{
		ID:          a.ID,
		EmployeeID:  a.EmployeeID,
		Date:        a.Date,
		CheckIn:     formatTime(a.CheckIn),
		CheckOut:    formatTime(a.CheckOut),
		Status:      string(a.Status),
		HoursWorked: a.HoursWorked,
	}
}

func NewAttendanceResponses(records []Attendance) []AttendanceResponse {
	out := make([]AttendanceResponse, 0, len(records))
	for _, a := range records {
		out = append(out, NewAttendanceResponse(a))
	}
	return out
}

func formatTime(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(time.RFC3339)
	return &s
}

// MonthStats aggregates one employee's records for one calendar month.
type MonthStats struct {
	EmployeeID  string  `json:"employee_id"`
	Year        int     `json:"year"`
	Month       int     `json:"month"`
	PresentDays int     `json:"present_days"`
	LateDays    int     `json:"late_days"`
	AbsentDays  int     `json:"absent_days"`
	HalfDays    int     `json:"half_days"`
	LeaveDays   int     `json:"leave_days"`
	TotalHours  float64 `json:"total_hours"`
}
