package employee

import (
	"context"

	"github.com/dayflow-hr/hrms-backend-go/internal/domain/user"
)

// EmployeeService is the employee directory built on the user records.
type EmployeeService interface {
	// ListEmployees lists approved and pending staff, filtered by name or
	// code substring and department.
	ListEmployees(ctx context.Context, req user.ListEmployeesRequest) ([]user.User, error)

	// ListTeam lists the approved employees other than the caller.
	// Department counts cover the whole team before filtering.
	ListTeam(ctx context.Context, userID string, req user.ListEmployeesRequest) (Team, error)

	// GetEmployee accepts either the user id or the employee code.
	GetEmployee(ctx context.Context, idOrCode string) (user.User, error)

	// UpdateProfile edits the caller's own contact and name fields.
	UpdateProfile(ctx context.Context, userID string, req user.UpdateProfileRequest) (user.User, error)

	// UpdateSalary sets the salary directly (admin only).
	UpdateSalary(ctx context.Context, idOrCode string, req user.UpdateSalaryRequest) (user.User, error)

	// UploadAvatar stores a new profile picture and replaces the old one.
	UploadAvatar(ctx context.Context, req UploadAvatarRequest) (user.User, error)
}
