package attendance

import (
	"context"
)

// AttendanceService defines business logic for attendance operations
type AttendanceService interface {
	// CheckIn opens today's record for the employee.
	CheckIn(ctx context.Context, employeeID string) (Attendance, error)

	// CheckOut closes today's open record and fills hoursWorked.
	CheckOut(ctx context.Context, employeeID string) (Attendance, error)

	Today(ctx context.Context, employeeID string) (Attendance, error)

	List(ctx context.Context, filter ListFilter) ([]Attendance, error)

	StatsForMonth(ctx context.Context, employeeID string, year, month int) (MonthStats, error)

	// MarkAbsent fills in records for approved employees who have none on
	// date. It returns the number of records written.
	MarkAbsent(ctx context.Context, date string) (int, error)
}
