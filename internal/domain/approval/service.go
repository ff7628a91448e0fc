package approval

import (
	"context"

	"github.com/dayflow-hr/hrms-backend-go/internal/domain/user"
)

// ApprovalService is the admin gate for new accounts and salary changes.
type ApprovalService interface {
	ListPendingAccounts(ctx context.Context) ([]user.User, error)
	// ApproveAccount sets the approval flag and, when overrideSalary is
	// non-nil, replaces the salary.
	ApproveAccount(ctx context.Context, userID string, overrideSalary *int64) (user.User, error)
	// RejectAccount deletes an unapproved account outright.
	RejectAccount(ctx context.Context, userID string) error

	SubmitSalaryRequest(ctx context.Context, employeeID string, req SubmitSalaryRequest) (SalaryRequest, error)
	ListSalaryRequests(ctx context.Context, filter ListFilter) ([]SalaryRequestResponse, error)
	// ApproveSalaryRequest copies the requested amount onto the user.
	ApproveSalaryRequest(ctx context.Context, id string, comment *string, decidedBy string) (SalaryRequest, error)
	RejectSalaryRequest(ctx context.Context, id string, comment *string, decidedBy string) (SalaryRequest, error)
}
