package leave

import "context"

type ListFilter struct {
	EmployeeID string
	Status     Status
}

type LeaveRequestRepository interface {
	Create(ctx context.Context, r LeaveRequest) (LeaveRequest, error)
	Update(ctx context.Context, r LeaveRequest) (LeaveRequest, error)
	GetByID(ctx context.Context, id string) (LeaveRequest, error)
	// List returns matching requests, most recently created first.
	List(ctx context.Context, filter ListFilter) ([]LeaveRequest, error)
}
