package payroll

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/dayflow-hr/hrms-backend-go/internal/domain/attendance"
	"github.com/dayflow-hr/hrms-backend-go/internal/domain/payroll"
	"github.com/dayflow-hr/hrms-backend-go/internal/domain/user"
	"github.com/dayflow-hr/hrms-backend-go/internal/pkg/sse"
	"github.com/dayflow-hr/hrms-backend-go/internal/repository/memory"
	"github.com/dayflow-hr/hrms-backend-go/internal/repository/recordstore"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

type fixture struct {
	svc        *PayrollServiceImpl
	attendance attendance.AttendanceRepository
	hub        *sse.Hub
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := memory.NewStore()
	users := recordstore.NewUserRepository(store)
	attendanceRepo := recordstore.NewAttendanceRepository(store)

	ctx := context.Background()
	for _, u := range []user.User{
		{ID: "u-2", EmployeeID: "EMP002", Email: "jane@dayflow.com", FirstName: "Jane", LastName: "Doe", Department: "QA and Testing", Role: user.RoleEmployee, Salary: 176000, AccountApproved: true},
		{ID: "u-3", EmployeeID: "EMP003", Email: "raj@dayflow.com", FirstName: "Raj", Role: user.RoleEmployee, Salary: 70000, AccountApproved: true},
		{ID: "u-4", EmployeeID: "EMP004", Email: "zero@dayflow.com", FirstName: "Zero", Role: user.RoleEmployee},
	} {
		_, err := users.Create(ctx, u)
		require.NoError(t, err)
	}

	hub := sse.NewHub()
	svc := NewPayrollService(
		recordstore.NewPayrollRepository(store),
		users,
		NewPolicyAdjustments(attendanceRepo, 8, 22, 1.5),
		hub,
	).(*PayrollServiceImpl)
	svc.now = func() time.Time { return time.Date(2025, 3, 15, 10, 0, 0, 0, time.UTC) }
	return &fixture{svc: svc, attendance: attendanceRepo, hub: hub}
}

func addWorkday(t *testing.T, repo attendance.AttendanceRepository, employeeID, date string, hours float64) {
	t.Helper()
	_, err := repo.Create(context.Background(), attendance.Attendance{
		EmployeeID:  employeeID,
		Date:        date,
		Status:      attendance.StatusPresent,
		HoursWorked: &hours,
	})
	require.NoError(t, err)
}

func TestPayrollService_ProjectWithPolicyOvertime(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	addWorkday(t, f.attendance, "EMP002", "2025-03-03", 10)
	addWorkday(t, f.attendance, "EMP002", "2025-03-04", 9.5)
	addWorkday(t, f.attendance, "EMP002", "2025-03-05", 6)
	addWorkday(t, f.attendance, "EMP002", "2025-02-28", 12)

	p, err := f.svc.Project(ctx, "EMP002", "2025-03", nil)
	require.NoError(t, err)
	assert.Equal(t, payroll.SourcePolicy, p.Source)
	assert.Equal(t, "5250", p.Overtime.String())
	assert.True(t, p.Incentives.IsZero())
	assert.True(t, p.Deductions.IsZero())
	assert.Equal(t, "181250", p.NetSalary.String())
}

func TestPayrollService_ProjectWithCallerAdjustments(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	p, err := f.svc.Project(ctx, "EMP003", "2025-03", &payroll.Adjustments{
		Overtime:   decimal.NewFromInt(300),
		Incentives: decimal.NewFromInt(200),
		Deductions: decimal.NewFromInt(150),
	})
	require.NoError(t, err)
	assert.Equal(t, payroll.SourceManual, p.Source)
	assert.Equal(t, "70350", p.NetSalary.String())

	_, err = f.svc.Project(ctx, "EMP003", "2025-03", &payroll.Adjustments{Deductions: decimal.NewFromInt(-1)})
	assert.ErrorIs(t, err, payroll.ErrNegativeAmount)

	_, err = f.svc.Project(ctx, "EMP003", "March", nil)
	assert.ErrorIs(t, err, payroll.ErrInvalidPeriod)

	_, err = f.svc.Project(ctx, "EMP404", "2025-03", nil)
	assert.ErrorIs(t, err, user.ErrUserNotFound)
}

func TestPayrollService_ProjectRecent(t *testing.T) {
	f := newFixture(t)

	recent, err := f.svc.ProjectRecent(context.Background(), "EMP003", 3)
	require.NoError(t, err)
	require.Len(t, recent, 3)
	assert.Equal(t, "2025-03", recent[0].Month)
	assert.Equal(t, "2025-02", recent[1].Month)
	assert.Equal(t, "2025-01", recent[2].Month)

	_, err = f.svc.ProjectRecent(context.Background(), "EMP003", 0)
	assert.ErrorIs(t, err, payroll.ErrInvalidPeriod)
}

func TestPayrollService_GenerateAndAdvance(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	events, cleanup := f.hub.Subscribe("u-3")
	defer cleanup()

	base := decimal.NewFromInt(70000)
	rec, err := f.svc.Generate(ctx, payroll.GenerateRequest{
		EmployeeID: "EMP003",
		Month:      "2025-03",
		BaseSalary: &base,
		Allowances: decimal.NewFromInt(500),
		Deductions: decimal.NewFromInt(150),
	})
	require.NoError(t, err)
	assert.Equal(t, "payroll-EMP003-2025-03", rec.ID)
	assert.Equal(t, "70350", rec.NetSalary.String())
	assert.Equal(t, payroll.PayrollStatusPending, rec.Status)

	_, err = f.svc.Generate(ctx, payroll.GenerateRequest{EmployeeID: "EMP003", Month: "2025-03"})
	assert.ErrorIs(t, err, payroll.ErrPayrollExists)

	rec, err = f.svc.Advance(ctx, rec.ID)
	require.NoError(t, err)
	assert.Equal(t, payroll.PayrollStatusProcessed, rec.Status)
	assert.NotNil(t, rec.ProcessedAt)
	assert.Len(t, events, 1)

	rec, err = f.svc.Advance(ctx, rec.ID)
	require.NoError(t, err)
	assert.Equal(t, payroll.PayrollStatusPaid, rec.Status)
	assert.NotNil(t, rec.PaidAt)

	_, err = f.svc.Advance(ctx, rec.ID)
	assert.ErrorIs(t, err, payroll.ErrInvalidTransition)

	_, err = f.svc.Advance(ctx, "payroll-missing")
	assert.ErrorIs(t, err, payroll.ErrPayrollRecordNotFound)
}

func TestPayrollService_GenerateDefaultsToUserSalary(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	rec, err := f.svc.Generate(ctx, payroll.GenerateRequest{EmployeeID: "EMP002", Month: "2025-02", Deductions: decimal.NewFromInt(1000)})
	require.NoError(t, err)
	assert.Equal(t, "176000", rec.BaseSalary.String())
	assert.Equal(t, "175000", rec.NetSalary.String())

	_, err = f.svc.Generate(ctx, payroll.GenerateRequest{EmployeeID: "EMP004", Month: "2025-02"})
	assert.ErrorIs(t, err, payroll.ErrEmployeeHasNoBaseSalary)

	_, err = f.svc.Generate(ctx, payroll.GenerateRequest{EmployeeID: "EMP002", Month: "2025-13"})
	assert.Error(t, err)

	_, err = f.svc.Generate(ctx, payroll.GenerateRequest{EmployeeID: "EMP002", Month: "2025-04", Allowances: decimal.NewFromInt(-5)})
	assert.Error(t, err)
}

func TestPayrollService_SummaryAndList(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	for _, id := range []string{"EMP002", "EMP003"} {
		_, err := f.svc.Generate(ctx, payroll.GenerateRequest{EmployeeID: id, Month: "2025-03"})
		require.NoError(t, err)
	}
	_, err := f.svc.Generate(ctx, payroll.GenerateRequest{EmployeeID: "EMP003", Month: "2025-02"})
	require.NoError(t, err)
	_, err = f.svc.Advance(ctx, payroll.RecordID("EMP002", "2025-03"))
	require.NoError(t, err)

	summary, err := f.svc.Summary(ctx, "2025-03")
	require.NoError(t, err)
	assert.Equal(t, 2, summary.Records)
	assert.Equal(t, 1, summary.Pending)
	assert.Equal(t, 1, summary.Processed)
	assert.Equal(t, "246000", summary.TotalNet.String())

	records, err := f.svc.List(ctx, payroll.ListFilter{EmployeeID: "EMP003"})
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "2025-03", records[0].Month)

	_, err = f.svc.Summary(ctx, "03-2025")
	assert.ErrorIs(t, err, payroll.ErrInvalidPeriod)
}

func TestPayrollService_ExportRegister(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	for _, id := range []string{"EMP002", "EMP003"} {
		_, err := f.svc.Generate(ctx, payroll.GenerateRequest{EmployeeID: id, Month: "2025-03"})
		require.NoError(t, err)
	}

	var buf bytes.Buffer
	require.NoError(t, f.svc.ExportRegister(ctx, "2025-03", &buf))

	wb, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer wb.Close()

	rows, err := wb.GetRows("Payroll 2025-03")
	require.NoError(t, err)
	require.Len(t, rows, 4)
	assert.Equal(t, "Employee ID", rows[0][0])
	assert.Equal(t, "EMP002", rows[1][0])
	assert.Equal(t, "Jane Doe", rows[1][1])
	assert.Equal(t, "176000", rows[1][7])
	assert.Equal(t, "Total", rows[3][6])
	assert.Equal(t, "246000", rows[3][7])
}

func TestDemoAdjustments_Ranges(t *testing.T) {
	demo := NewDemoAdjustments(42)
	for i := 0; i < 50; i++ {
		adj, err := demo.Adjustments(context.Background(), user.User{}, time.Now())
		require.NoError(t, err)
		assert.True(t, adj.Overtime.GreaterThanOrEqual(decimal.Zero) && adj.Overtime.LessThan(decimal.NewFromInt(500)))
		assert.True(t, adj.Incentives.GreaterThanOrEqual(decimal.Zero) && adj.Incentives.LessThan(decimal.NewFromInt(1000)))
		assert.True(t, adj.Deductions.GreaterThanOrEqual(decimal.NewFromInt(100)) && adj.Deductions.LessThan(decimal.NewFromInt(300)))
	}
	assert.Equal(t, payroll.SourceDemo, demo.Name())
}

func TestPolicyAdjustments_HourlyRate(t *testing.T) {
	p := NewPolicyAdjustments(nil, 8, 22, 1.5)
	assert.Equal(t, "1000", p.HourlyRate(176000).String())

	zero := NewPolicyAdjustments(nil, 0, 22, 1.5)
	assert.True(t, zero.HourlyRate(176000).IsZero())
}
