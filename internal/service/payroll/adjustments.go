package payroll

import (
	"context"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/dayflow-hr/hrms-backend-go/internal/domain/attendance"
	"github.com/dayflow-hr/hrms-backend-go/internal/domain/payroll"
	"github.com/dayflow-hr/hrms-backend-go/internal/domain/user"
	"github.com/shopspring/decimal"
)

// PolicyAdjustments pays overtime for hours worked beyond the standard day.
// Incentives and deductions are left at zero.
type PolicyAdjustments struct {
	attendance          attendance.AttendanceRepository
	standardDailyHours  decimal.Decimal
	workingDaysPerMonth decimal.Decimal
	overtimeMultiplier  decimal.Decimal
}

func NewPolicyAdjustments(attendanceRepository attendance.AttendanceRepository, standardDailyHours float64, workingDaysPerMonth int, overtimeMultiplier float64) *PolicyAdjustments {
	return &PolicyAdjustments{
		attendance:          attendanceRepository,
		standardDailyHours:  decimal.NewFromFloat(standardDailyHours),
		workingDaysPerMonth: decimal.NewFromInt(int64(workingDaysPerMonth)),
		overtimeMultiplier:  decimal.NewFromFloat(overtimeMultiplier),
	}
}

func (p *PolicyAdjustments) Name() string { return payroll.SourcePolicy }

// HourlyRate is salary / (working days * standard hours).
func (p *PolicyAdjustments) HourlyRate(salary int64) decimal.Decimal {
	hours := p.workingDaysPerMonth.Mul(p.standardDailyHours)
	if !hours.IsPositive() {
		return decimal.Zero
	}
	return decimal.NewFromInt(salary).Div(hours)
}

func (p *PolicyAdjustments) Adjustments(ctx context.Context, u user.User, month time.Time) (payroll.Adjustments, error) {
	first := time.Date(month.Year(), month.Month(), 1, 0, 0, 0, 0, time.UTC)
	last := first.AddDate(0, 1, -1)

	records, err := p.attendance.List(ctx, attendance.ListFilter{
		EmployeeID: u.EmployeeID,
		From:       first.Format(attendance.DateLayout),
		To:         last.Format(attendance.DateLayout),
	})
	if err != nil {
		return payroll.Adjustments{}, fmt.Errorf("failed to list attendance: %w", err)
	}

	extra := decimal.Zero
	for _, r := range records {
		if r.HoursWorked == nil {
			continue
		}
		over := decimal.NewFromFloat(*r.HoursWorked).Sub(p.standardDailyHours)
		if over.IsPositive() {
			extra = extra.Add(over)
		}
	}

	overtime := p.HourlyRate(u.Salary).Mul(extra).Mul(p.overtimeMultiplier).Round(2)
	return payroll.Adjustments{
		Overtime:   overtime,
		Incentives: decimal.Zero,
		Deductions: decimal.Zero,
	}, nil
}

// DemoAdjustments produces placeholder figures for demos: overtime in
// [0,500), incentives in [0,1000) and deductions in [100,300).
type DemoAdjustments struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewDemoAdjustments seeds the generator. A zero seed uses the clock.
func NewDemoAdjustments(seed int64) *DemoAdjustments {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &DemoAdjustments{rng: rand.New(rand.NewSource(seed))}
}

func (d *DemoAdjustments) Name() string { return payroll.SourceDemo }

func (d *DemoAdjustments) Adjustments(ctx context.Context, u user.User, month time.Time) (payroll.Adjustments, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	return payroll.Adjustments{
		Overtime:   decimal.NewFromInt(d.rng.Int63n(500)),
		Incentives: decimal.NewFromInt(d.rng.Int63n(1000)),
		Deductions: decimal.NewFromInt(100 + d.rng.Int63n(200)),
	}, nil
}
