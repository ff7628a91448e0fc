package attendance

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/dayflow-hr/hrms-backend-go/internal/domain/attendance"
	"github.com/dayflow-hr/hrms-backend-go/internal/domain/leave"
	"github.com/dayflow-hr/hrms-backend-go/internal/domain/user"
)

type AttendanceServiceImpl struct {
	attendance.AttendanceRepository
	users  user.UserRepository
	leaves leave.LeaveRequestRepository
	policy attendance.Policy
	now    func() time.Time
}

func NewAttendanceService(
	attendanceRepository attendance.AttendanceRepository,
	userRepository user.UserRepository,
	leaveRepository leave.LeaveRequestRepository,
	policy attendance.Policy,
) attendance.AttendanceService {
	return &AttendanceServiceImpl{
		AttendanceRepository: attendanceRepository,
		users:                userRepository,
		leaves:               leaveRepository,
		policy:               policy,
		now:                  time.Now,
	}
}

// CheckIn implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) CheckIn(ctx context.Context, employeeID string) (attendance.Attendance, error) {
	if _, err := s.users.GetByEmployeeID(ctx, employeeID); err != nil {
		return attendance.Attendance{}, err
	}

	now := s.now()
	date := s.policy.DateOf(now)
	record := attendance.Attendance{
		ID:         attendance.RecordID(employeeID, date),
		EmployeeID: employeeID,
		Date:       date,
		CheckIn:    &now,
		Status:     s.policy.Classify(now),
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	created, err := s.AttendanceRepository.Create(ctx, record)
	if err != nil {
		if errors.Is(err, attendance.ErrAttendanceExists) {
			return attendance.Attendance{}, attendance.ErrAlreadyCheckedIn
		}
		return attendance.Attendance{}, fmt.Errorf("failed to create attendance: %w", err)
	}

	slog.Info("employee checked in", "employee_id", employeeID, "date", date, "status", created.Status)
	return created, nil
}

// CheckOut implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) CheckOut(ctx context.Context, employeeID string) (attendance.Attendance, error) {
	now := s.now()
	date := s.policy.DateOf(now)

	record, err := s.AttendanceRepository.GetByEmployeeAndDate(ctx, employeeID, date)
	if err != nil {
		if errors.Is(err, attendance.ErrAttendanceNotFound) {
			return attendance.Attendance{}, attendance.ErrNotCheckedIn
		}
		return attendance.Attendance{}, fmt.Errorf("failed to get today's attendance: %w", err)
	}

	if record.CheckOut != nil {
		return attendance.Attendance{}, attendance.ErrAlreadyCheckedOut
	}
	if record.CheckIn == nil {
		return attendance.Attendance{}, attendance.ErrNotCheckedIn
	}

	hours := attendance.HoursBetween(*record.CheckIn, now)
	record.CheckOut = &now
	record.HoursWorked = &hours
	record.UpdatedAt = now

	updated, err := s.AttendanceRepository.Update(ctx, record)
	if err != nil {
		return attendance.Attendance{}, fmt.Errorf("failed to update attendance: %w", err)
	}

	slog.Info("employee checked out", "employee_id", employeeID, "date", date, "hours_worked", hours)
	return updated, nil
}

// Today implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) Today(ctx context.Context, employeeID string) (attendance.Attendance, error) {
	return s.AttendanceRepository.GetByEmployeeAndDate(ctx, employeeID, s.policy.DateOf(s.now()))
}

// List implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) List(ctx context.Context, filter attendance.ListFilter) ([]attendance.Attendance, error) {
	if filter.From != "" {
		if _, err := time.Parse(attendance.DateLayout, filter.From); err != nil {
			return nil, attendance.ErrInvalidDate
		}
	}
	if filter.To != "" {
		if _, err := time.Parse(attendance.DateLayout, filter.To); err != nil {
			return nil, attendance.ErrInvalidDate
		}
	}
	return s.AttendanceRepository.List(ctx, filter)
}

// StatsForMonth implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) StatsForMonth(ctx context.Context, employeeID string, year, month int) (attendance.MonthStats, error) {
	if month < 1 || month > 12 || year < 1 {
		return attendance.MonthStats{}, attendance.ErrInvalidPeriod
	}

	first := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	last := first.AddDate(0, 1, -1)

	records, err := s.AttendanceRepository.List(ctx, attendance.ListFilter{
		EmployeeID: employeeID,
		From:       first.Format(attendance.DateLayout),
		To:         last.Format(attendance.DateLayout),
	})
	if err != nil {
		return attendance.MonthStats{}, fmt.Errorf("failed to list attendance: %w", err)
	}

	stats := attendance.MonthStats{EmployeeID: employeeID, Year: year, Month: month}
	for _, r := range records {
		switch r.Status {
		case attendance.StatusPresent:
			stats.PresentDays++
		case attendance.StatusLate:
			stats.LateDays++
		case attendance.StatusAbsent:
			stats.AbsentDays++
		case attendance.StatusHalfDay:
			stats.HalfDays++
		case attendance.StatusLeave:
			stats.LeaveDays++
		}
		if r.HoursWorked != nil {
			stats.TotalHours += *r.HoursWorked
		}
	}
	stats.TotalHours = math.Round(stats.TotalHours*100) / 100
	return stats, nil
}

// MarkAbsent implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) MarkAbsent(ctx context.Context, date string) (int, error) {
	day, err := time.Parse(attendance.DateLayout, date)
	if err != nil {
		return 0, attendance.ErrInvalidDate
	}
	if date >= s.policy.DateOf(s.now()) {
		// The day is still open for check-ins.
		return 0, attendance.ErrInvalidDate
	}
	if day.Weekday() == time.Saturday || day.Weekday() == time.Sunday {
		return 0, nil
	}

	approved := true
	employees, err := s.users.List(ctx, user.ListFilter{Role: user.RoleEmployee, Approved: &approved})
	if err != nil {
		return 0, fmt.Errorf("failed to list employees: %w", err)
	}

	leaves, err := s.leaves.List(ctx, leave.ListFilter{Status: leave.StatusApproved})
	if err != nil {
		return 0, fmt.Errorf("failed to list approved leaves: %w", err)
	}
	onLeave := make(map[string]bool)
	for _, l := range leaves {
		if l.Covers(date) {
			onLeave[l.EmployeeID] = true
		}
	}

	now := s.now()
	written := 0
	for _, e := range employees {
		if e.JoinDate != "" && e.JoinDate > date {
			continue
		}

		status := attendance.StatusAbsent
		if onLeave[e.EmployeeID] {
			status = attendance.StatusLeave
		}

		_, err := s.AttendanceRepository.Create(ctx, attendance.Attendance{
			ID:         attendance.RecordID(e.EmployeeID, date),
			EmployeeID: e.EmployeeID,
			Date:       date,
			Status:     status,
			CreatedAt:  now,
			UpdatedAt:  now,
		})
		if errors.Is(err, attendance.ErrAttendanceExists) {
			continue
		}
		if err != nil {
			return written, fmt.Errorf("failed to mark %s for %s: %w", status, e.EmployeeID, err)
		}
		written++
	}

	slog.Info("absent sweep finished", "date", date, "records_written", written)
	return written, nil
}
