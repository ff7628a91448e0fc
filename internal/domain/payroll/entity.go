package payroll

import (
	"time"

	"github.com/shopspring/decimal"
)

// PayrollStatus enum
type PayrollStatus string

const (
	PayrollStatusPending   PayrollStatus = "pending"
	PayrollStatusProcessed PayrollStatus = "processed"
	PayrollStatusPaid      PayrollStatus = "paid"
)

func (s PayrollStatus) Valid() bool {
	return s == PayrollStatusPending || s == PayrollStatusProcessed || s == PayrollStatusPaid
}

// Next returns the only status s may advance to.
func (s PayrollStatus) Next() (PayrollStatus, bool) {
	switch s {
	case PayrollStatusPending:
		return PayrollStatusProcessed, true
	case PayrollStatusProcessed:
		return PayrollStatusPaid, true
	}
	return "", false
}

const MonthLayout = "2006-01"

// PayrollRecord - persisted payroll for one employee and month
type PayrollRecord struct {
	ID          string          `json:"id"`
	EmployeeID  string          `json:"employeeId"`
	Month       string          `json:"month"`
	BaseSalary  decimal.Decimal `json:"baseSalary"`
	Allowances  decimal.Decimal `json:"allowances"`
	Deductions  decimal.Decimal `json:"deductions"`
	NetSalary   decimal.Decimal `json:"netSalary"`
	Status      PayrollStatus   `json:"status"`
	ProcessedAt *time.Time      `json:"processedAt,omitempty"`
	PaidAt      *time.Time      `json:"paidAt,omitempty"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`

	Version int64 `json:"-"`
}

// RecordID is one id per employee and month, so a second Generate for the
// same period collides in the store.
func RecordID(employeeID, month string) string {
	return "payroll-" + employeeID + "-" + month
}

// Advance moves the record one step along pending -> processed -> paid.
func (r *PayrollRecord) Advance(now time.Time) error {
	next, ok := r.Status.Next()
	if !ok {
		return ErrInvalidTransition
	}
	r.Status = next
	r.UpdatedAt = now
	switch next {
	case PayrollStatusProcessed:
		r.ProcessedAt = &now
	case PayrollStatusPaid:
		r.PaidAt = &now
	}
	return nil
}

// ComputeNet is base + additions - deductions.
func ComputeNet(base, additions, deductions decimal.Decimal) decimal.Decimal {
	return base.Add(additions).Sub(deductions)
}

// Adjustments are the variable parts of a projected payslip.
type Adjustments struct {
	Overtime   decimal.Decimal
	Incentives decimal.Decimal
	Deductions decimal.Decimal
}

func (a Adjustments) Additions() decimal.Decimal {
	return a.Overtime.Add(a.Incentives)
}

const (
	SourceManual = "manual"
	SourcePolicy = "policy"
	SourceDemo   = "demo"
)

// Projection is a payslip computed on demand and never stored.
type Projection struct {
	EmployeeID string
	Month      string
	BaseSalary decimal.Decimal
	Overtime   decimal.Decimal
	Incentives decimal.Decimal
	Deductions decimal.Decimal
	NetSalary  decimal.Decimal
	Source     string
}

func NewProjection(employeeID, month string, base decimal.Decimal, adj Adjustments, source string) Projection {
	return Projection{
		EmployeeID: employeeID,
		Month:      month,
		BaseSalary: base,
		Overtime:   adj.Overtime,
		Incentives: adj.Incentives,
		Deductions: adj.Deductions,
		NetSalary:  ComputeNet(base, adj.Additions(), adj.Deductions),
		Source:     source,
	}
}
