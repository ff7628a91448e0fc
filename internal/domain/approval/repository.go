package approval

import (
	"context"

	"github.com/dayflow-hr/hrms-backend-go/internal/domain/leave"
)

type ListFilter struct {
	EmployeeID string
	Status     leave.Status
}

type SalaryRequestRepository interface {
	Create(ctx context.Context, r SalaryRequest) (SalaryRequest, error)
	Update(ctx context.Context, r SalaryRequest) (SalaryRequest, error)
	GetByID(ctx context.Context, id string) (SalaryRequest, error)
	// List returns matching requests, most recently created first.
	List(ctx context.Context, filter ListFilter) ([]SalaryRequest, error)
}
