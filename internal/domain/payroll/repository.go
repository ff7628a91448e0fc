package payroll

import (
	"context"
	"time"

	"github.com/dayflow-hr/hrms-backend-go/internal/domain/user"
)

type ListFilter struct {
	Month      string
	EmployeeID string
	Status     PayrollStatus
}

type PayrollRepository interface {
	Create(ctx context.Context, r PayrollRecord) (PayrollRecord, error)
	Update(ctx context.Context, r PayrollRecord) (PayrollRecord, error)
	GetByID(ctx context.Context, id string) (PayrollRecord, error)
	// List returns matching records ordered by month desc, then employee.
	List(ctx context.Context, filter ListFilter) ([]PayrollRecord, error)
}

// AdjustmentSource supplies overtime, incentives and deductions for a
// projection when the caller gives none.
type AdjustmentSource interface {
	Adjustments(ctx context.Context, u user.User, month time.Time) (Adjustments, error)
	Name() string
}
