package payroll

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/dayflow-hr/hrms-backend-go/internal/domain/payroll"
	"github.com/dayflow-hr/hrms-backend-go/internal/domain/user"
	"github.com/dayflow-hr/hrms-backend-go/internal/pkg/sse"
	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

const maxRecentMonths = 24

type PayrollServiceImpl struct {
	payroll.PayrollRepository
	users  user.UserRepository
	source payroll.AdjustmentSource
	hub    *sse.Hub
	now    func() time.Time
}

func NewPayrollService(
	payrollRepository payroll.PayrollRepository,
	userRepository user.UserRepository,
	source payroll.AdjustmentSource,
	hub *sse.Hub,
) payroll.PayrollService {
	return &PayrollServiceImpl{
		PayrollRepository: payrollRepository,
		users:             userRepository,
		source:            source,
		hub:               hub,
		now:               time.Now,
	}
}

func parseMonth(month string) (time.Time, error) {
	t, err := time.Parse(payroll.MonthLayout, month)
	if err != nil {
		return time.Time{}, payroll.ErrInvalidPeriod
	}
	return t, nil
}

// ========== PROJECTION ==========

// Project implements payroll.PayrollService.
func (s *PayrollServiceImpl) Project(ctx context.Context, employeeID, month string, adj *payroll.Adjustments) (payroll.Projection, error) {
	period, err := parseMonth(month)
	if err != nil {
		return payroll.Projection{}, err
	}

	u, err := s.users.GetByEmployeeID(ctx, employeeID)
	if err != nil {
		return payroll.Projection{}, err
	}
	return s.project(ctx, u, period, adj)
}

func (s *PayrollServiceImpl) project(ctx context.Context, u user.User, period time.Time, adj *payroll.Adjustments) (payroll.Projection, error) {
	base := decimal.NewFromInt(u.Salary)
	month := period.Format(payroll.MonthLayout)

	if adj != nil {
		if adj.Overtime.IsNegative() || adj.Incentives.IsNegative() || adj.Deductions.IsNegative() {
			return payroll.Projection{}, payroll.ErrNegativeAmount
		}
		return payroll.NewProjection(u.EmployeeID, month, base, *adj, payroll.SourceManual), nil
	}

	computed, err := s.source.Adjustments(ctx, u, period)
	if err != nil {
		return payroll.Projection{}, fmt.Errorf("failed to compute adjustments: %w", err)
	}
	return payroll.NewProjection(u.EmployeeID, month, base, computed, s.source.Name()), nil
}

// ProjectRecent implements payroll.PayrollService.
func (s *PayrollServiceImpl) ProjectRecent(ctx context.Context, employeeID string, n int) ([]payroll.Projection, error) {
	if n < 1 || n > maxRecentMonths {
		return nil, payroll.ErrInvalidPeriod
	}

	u, err := s.users.GetByEmployeeID(ctx, employeeID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	current := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	out := make([]payroll.Projection, 0, n)
	for i := 0; i < n; i++ {
		p, err := s.project(ctx, u, current.AddDate(0, -i, 0), nil)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, nil
}

// ========== PERSISTED RECORDS ==========

// Generate implements payroll.PayrollService.
func (s *PayrollServiceImpl) Generate(ctx context.Context, req payroll.GenerateRequest) (payroll.PayrollRecord, error) {
	if err := req.Validate(); err != nil {
		return payroll.PayrollRecord{}, err
	}

	u, err := s.users.GetByEmployeeID(ctx, req.EmployeeID)
	if err != nil {
		return payroll.PayrollRecord{}, err
	}

	base := decimal.NewFromInt(u.Salary)
	if req.BaseSalary != nil {
		base = *req.BaseSalary
	}
	if !base.IsPositive() {
		return payroll.PayrollRecord{}, payroll.ErrEmployeeHasNoBaseSalary
	}

	now := s.now()
	record := payroll.PayrollRecord{
		ID:         payroll.RecordID(u.EmployeeID, req.Month),
		EmployeeID: u.EmployeeID,
		Month:      req.Month,
		BaseSalary: base,
		Allowances: req.Allowances,
		Deductions: req.Deductions,
		NetSalary:  payroll.ComputeNet(base, req.Allowances, req.Deductions),
		Status:     payroll.PayrollStatusPending,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	created, err := s.PayrollRepository.Create(ctx, record)
	if err != nil {
		return payroll.PayrollRecord{}, err
	}

	slog.Info("payroll generated", "payroll_id", created.ID, "employee_id", created.EmployeeID, "net_salary", created.NetSalary.String())
	return created, nil
}

// Advance implements payroll.PayrollService.
func (s *PayrollServiceImpl) Advance(ctx context.Context, id string) (payroll.PayrollRecord, error) {
	record, err := s.PayrollRepository.GetByID(ctx, id)
	if err != nil {
		return payroll.PayrollRecord{}, err
	}

	from := record.Status
	if err := record.Advance(s.now()); err != nil {
		return payroll.PayrollRecord{}, err
	}

	updated, err := s.PayrollRepository.Update(ctx, record)
	if err != nil {
		return payroll.PayrollRecord{}, fmt.Errorf("failed to update payroll record: %w", err)
	}

	slog.Info("payroll advanced", "payroll_id", id, "from", from, "to", updated.Status)

	if u, err := s.users.GetByEmployeeID(ctx, updated.EmployeeID); err == nil {
		s.hub.Publish(u.ID, sse.Event{
			Event: sse.EventPayrollAdvanced,
			Data:  payroll.NewPayrollRecordResponse(updated),
		})
	}
	return updated, nil
}

// Get implements payroll.PayrollService.
func (s *PayrollServiceImpl) Get(ctx context.Context, id string) (payroll.PayrollRecord, error) {
	return s.PayrollRepository.GetByID(ctx, id)
}

// List implements payroll.PayrollService.
func (s *PayrollServiceImpl) List(ctx context.Context, filter payroll.ListFilter) ([]payroll.PayrollRecord, error) {
	if filter.Month != "" {
		if _, err := parseMonth(filter.Month); err != nil {
			return nil, err
		}
	}
	return s.PayrollRepository.List(ctx, filter)
}

// Summary implements payroll.PayrollService.
func (s *PayrollServiceImpl) Summary(ctx context.Context, month string) (payroll.Summary, error) {
	if _, err := parseMonth(month); err != nil {
		return payroll.Summary{}, err
	}

	records, err := s.PayrollRepository.List(ctx, payroll.ListFilter{Month: month})
	if err != nil {
		return payroll.Summary{}, fmt.Errorf("failed to list payroll records: %w", err)
	}

	summary := payroll.Summary{Month: month, Records: len(records), TotalNet: decimal.Zero}
	for _, r := range records {
		summary.TotalNet = summary.TotalNet.Add(r.NetSalary)
		switch r.Status {
		case payroll.PayrollStatusPending:
			summary.Pending++
		case payroll.PayrollStatusProcessed:
			summary.Processed++
		case payroll.PayrollStatusPaid:
			summary.Paid++
		}
	}
	return summary, nil
}

// ========== EXPORT ==========

var registerHeader = []interface{}{
	"Employee ID", "Name", "Department", "Month",
	"Base Salary", "Allowances", "Deductions", "Net Salary", "Status",
}

// ExportRegister implements payroll.PayrollService.
func (s *PayrollServiceImpl) ExportRegister(ctx context.Context, month string, w io.Writer) error {
	if _, err := parseMonth(month); err != nil {
		return err
	}

	records, err := s.PayrollRepository.List(ctx, payroll.ListFilter{Month: month})
	if err != nil {
		return fmt.Errorf("failed to list payroll records: %w", err)
	}

	f := excelize.NewFile()
	defer func() {
		if err := f.Close(); err != nil {
			slog.Error("failed to close workbook", "error", err)
		}
	}()

	sheet := "Payroll " + month
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return fmt.Errorf("failed to name sheet: %w", err)
	}
	if err := f.SetSheetRow(sheet, "A1", &registerHeader); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	total := decimal.Zero
	for i, r := range records {
		name, department := "", ""
		if u, err := s.users.GetByEmployeeID(ctx, r.EmployeeID); err == nil {
			name, department = u.FullName(), u.Department
		}

		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		row := []interface{}{
			r.EmployeeID, name, department, r.Month,
			r.BaseSalary.InexactFloat64(),
			r.Allowances.InexactFloat64(),
			r.Deductions.InexactFloat64(),
			r.NetSalary.InexactFloat64(),
			string(r.Status),
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("failed to write row %d: %w", i+2, err)
		}
		total = total.Add(r.NetSalary)
	}

	totalCell, err := excelize.CoordinatesToCellName(7, len(records)+2)
	if err != nil {
		return err
	}
	totalRow := []interface{}{"Total", total.InexactFloat64()}
	if err := f.SetSheetRow(sheet, totalCell, &totalRow); err != nil {
		return fmt.Errorf("failed to write total: %w", err)
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}
