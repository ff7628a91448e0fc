package payroll

import (
	"time"

	"github.com/dayflow-hr/hrms-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

type GenerateRequest struct {
	EmployeeID string           `json:"employee_id" validate:"notblank"`
	Month      string           `json:"month" validate:"month"`
	BaseSalary *decimal.Decimal `json:"base_salary,omitempty"`
	Allowances decimal.Decimal  `json:"allowances"`
	Deductions decimal.Decimal  `json:"deductions"`
}

func (r *GenerateRequest) Validate() error {
	errs := validator.Struct(r)
	if r.BaseSalary != nil && r.BaseSalary.IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "base_salary", Message: "must not be negative"})
	}
	if r.Allowances.IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "allowances", Message: "must not be negative"})
	}
	if r.Deductions.IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "deductions", Message: "must not be negative"})
	}
	return errs.Err()
}

type ListPayrollRequest struct {
	Month      string
	EmployeeID string
	Status     string
}

func (r *ListPayrollRequest) Validate() error {
	var errs validator.ValidationErrors
	if r.Month != "" {
		if _, ok := validator.IsValidMonth(r.Month); !ok {
			errs = append(errs, validator.ValidationError{Field: "month", Message: "must be a month in YYYY-MM format"})
		}
	}
	if r.Status != "" && !PayrollStatus(r.Status).Valid() {
		errs = append(errs, validator.ValidationError{Field: "status", Message: "must be one of: pending processed paid"})
	}
	return errs.Err()
}

func (r *ListPayrollRequest) Filter() ListFilter {
	return ListFilter{Month: r.Month, EmployeeID: r.EmployeeID, Status: PayrollStatus(r.Status)}
}

type PayrollRecordResponse struct {
	ID          string          `json:"id"`
	EmployeeID  string          `json:"employee_id"`
	Month       string          `json:"month"`
	BaseSalary  decimal.Decimal `json:"base_salary"`
	Allowances  decimal.Decimal `json:"allowances"`
	Deductions  decimal.Decimal `json:"deductions"`
	NetSalary   decimal.Decimal `json:"net_salary"`
	Status      string          `json:"status"`
	ProcessedAt *string         `json:"processed_at,omitempty"`
	PaidAt      *string         `json:"paid_at,omitempty"`
	CreatedAt   string          `json:"created_at"`
}

func NewPayrollRecordResponse(r PayrollRecord) PayrollRecordResponse {
	return PayrollRecordResponse{
		ID:          r.ID,
		EmployeeID:  r.EmployeeID,
		Month:       r.Month,
		BaseSalary:  r.BaseSalary,
		Allowances:  r.Allowances,
		Deductions:  r.Deductions,
		NetSalary:   r.NetSalary,
		Status:      string(r.Status),
		ProcessedAt: formatTime(r.ProcessedAt),
		PaidAt:      formatTime(r.PaidAt),
		CreatedAt:   r.CreatedAt.Format(time.RFC3339),
	}
}

func NewPayrollRecordResponses(records []PayrollRecord) []PayrollRecordResponse {
	out := make([]PayrollRecordResponse, 0, len(records))
	for _, r := range records {
		out = append(out, NewPayrollRecordResponse(r))
	}
	return out
}

type ProjectionResponse struct {
	EmployeeID string          `json:"employee_id"`
	Month      string          `json:"month"`
	BaseSalary decimal.Decimal `json:"base_salary"`
	Overtime   decimal.Decimal `json:"overtime"`
	Incentives decimal.Decimal `json:"incentives"`
	Deductions decimal.Decimal `json:"deductions"`
	NetSalary  decimal.Decimal `json:"net_salary"`
	Source     string          `json:"source"`
}

func NewProjectionResponse(p Projection) ProjectionResponse {
	return ProjectionResponse(p)
}

// Summary totals one month of persisted records.
type Summary struct {
	Month     string          `json:"month"`
	Records   int             `json:"records"`
	TotalNet  decimal.Decimal `json:"total_net"`
	Pending   int             `json:"pending"`
	Processed int             `json:"processed"`
	Paid      int             `json:"paid"`
}

func formatTime(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(time.RFC3339)
	return &s
}
