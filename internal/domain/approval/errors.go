package approval

import (
	"errors"

	"github.com/dayflow-hr/hrms-backend-go/internal/domain/leave"
)

var (
	ErrSalaryRequestNotFound  = errors.New("salary request not found")
	ErrAccountAlreadyApproved = errors.New("account is already approved")
	ErrCannotRejectAdmin      = errors.New("admin accounts cannot be rejected")
	ErrInvalidSalary          = errors.New("salary must be greater than zero")

	// ErrAlreadyDecided is shared with the leave workflow.
	ErrAlreadyDecided = leave.ErrAlreadyDecided
)
