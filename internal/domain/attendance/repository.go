package attendance

import "context"

// ListFilter narrows a listing. From and To are inclusive YYYY-MM-DD bounds.
type ListFilter struct {
	EmployeeID string
	From       string
	To         string
	Status     Status
}

type AttendanceRepository interface {
	// Create fails with ErrAttendanceExists when the employee already has a
	// record on that date.
	Create(ctx context.Context, a Attendance) (Attendance, error)
	Update(ctx context.Context, a Attendance) (Attendance, error)
	GetByEmployeeAndDate(ctx context.Context, employeeID, date string) (Attendance, error)
	// List returns matching records, newest date first.
	List(ctx context.Context, filter ListFilter) ([]Attendance, error)
}
