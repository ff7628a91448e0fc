package attendance

import (
	"math"
	"time"
)

type Status string

const (
	StatusPresent Status = "Present"
	StatusAbsent  Status = "Absent"
	StatusHalfDay Status = "Half-day"
	StatusLate    Status = "Late"
	StatusLeave   Status = "Leave"
)

func (s Status) Valid() bool {
	switch s {
	case StatusPresent, StatusAbsent, StatusHalfDay, StatusLate, StatusLeave:
		return true
	}
	return false
}

// Attendance is the single record of one employee on one calendar date.
// Date uses the YYYY-MM-DD layout.
type Attendance struct {
	ID          string     `json:"id"`
	EmployeeID  string     `json:"employeeId"`
	Date        string     `json:"date"`
	CheckIn     *time.Time `json:"checkIn,omitempty"`
	CheckOut    *time.Time `json:"checkOut,omitempty"`
	Status      Status     `json:"status"`
	HoursWorked *float64   `json:"hoursWorked,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`

	Version int64 `json:"-"`
}

// RecordID is the storage id of the (employee, date) record. Using a
// composite id lets the store reject a second record for the same day.
func RecordID(employeeID, date string) string {
	return employeeID + "_" + date
}

// IsOpen reports a check-in without a check-out.
func (a *Attendance) IsOpen() bool {
	return a.CheckIn != nil && a.CheckOut == nil
}

// HoursBetween returns the fractional hours from in to out rounded to two
// decimals. A reversed interval yields zero.
func HoursBetween(in, out time.Time) float64 {
	d := out.Sub(in)
	if d <= 0 {
		return 0
	}
	return math.Round(d.Hours()*100) / 100
}

// Policy classifies check-ins. LateAfter is the wall-clock offset from local
// midnight after which a check-in counts as late.
type Policy struct {
	LateAfter time.Duration
	Location  *time.Location
}

func (p Policy) location() *time.Location {
	if p.Location == nil {
		return time.UTC
	}
	return p.Location
}

// Classify returns Late for a check-in strictly after the cutoff, Present
// otherwise.
func (p Policy) Classify(checkIn time.Time) Status {
	local := checkIn.In(p.location())
	midnight := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, p.location())
	if local.Sub(midnight) > p.LateAfter {
		return StatusLate
	}
	return StatusPresent
}

// DateOf returns the local calendar date of t.
func (p Policy) DateOf(t time.Time) string {
	return t.In(p.location()).Format(DateLayout)
}

// ClockOf returns the local HH:MM wall-clock time of t.
func (p Policy) ClockOf(t time.Time) string {
	return t.In(p.location()).Format("15:04")
}

const DateLayout = "2006-01-02"
