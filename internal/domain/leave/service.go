package leave

import "context"

type LeaveService interface {
	Submit(ctx context.Context, employeeID string, req SubmitLeaveRequest) (LeaveRequest, error)
	// Approve uses DefaultApprovalComment when comment is nil or blank.
	Approve(ctx context.Context, id string, comment *string, decidedBy string) (LeaveRequest, error)
	// Reject requires a non-blank comment.
	Reject(ctx context.Context, id string, comment string, decidedBy string) (LeaveRequest, error)
	UpdateDates(ctx context.Context, employeeID, id string, req UpdateDatesRequest) (LeaveRequest, error)
	Get(ctx context.Context, id string) (LeaveRequestResponse, error)
	List(ctx context.Context, req ListLeaveRequest) ([]LeaveRequestResponse, error)
}
