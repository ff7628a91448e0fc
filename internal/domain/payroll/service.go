package payroll

import (
	"context"
	"io"
)

type PayrollService interface {
	// Project computes an unsaved payslip. Non-nil adj overrides the
	// configured adjustment source.
	Project(ctx context.Context, employeeID, month string, adj *Adjustments) (Projection, error)
	// ProjectRecent projects the last n months, newest first.
	ProjectRecent(ctx context.Context, employeeID string, n int) ([]Projection, error)

	Generate(ctx context.Context, req GenerateRequest) (PayrollRecord, error)
	Advance(ctx context.Context, id string) (PayrollRecord, error)
	Get(ctx context.Context, id string) (PayrollRecord, error)
	List(ctx context.Context, filter ListFilter) ([]PayrollRecord, error)
	Summary(ctx context.Context, month string) (Summary, error)
	// ExportRegister writes the month's records as an xlsx workbook.
	ExportRegister(ctx context.Context, month string, w io.Writer) error
}
