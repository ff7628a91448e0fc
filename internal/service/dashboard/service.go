package dashboard

import (
	"context"
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/dayflow-hr/hrms-backend-go/internal/domain/attendance"
	"github.com/dayflow-hr/hrms-backend-go/internal/domain/dashboard"
	"github.com/dayflow-hr/hrms-backend-go/internal/domain/leave"
	"github.com/dayflow-hr/hrms-backend-go/internal/domain/user"
	"github.com/dayflow-hr/hrms-backend-go/internal/pkg/sse"
	"golang.org/x/sync/errgroup"
)

const (
	latestRecordLimit   = 10
	recentEmployeeLimit = 5
	newEmployeeDays     = 30
)

type DashboardServiceImpl struct {
	users      user.UserRepository
	attendance attendance.AttendanceRepository
	leaves     leave.LeaveRequestRepository
	hub        *sse.Hub
	policy     attendance.Policy
	now        func() time.Time
}

func NewDashboardService(
	userRepository user.UserRepository,
	attendanceRepository attendance.AttendanceRepository,
	leaveRepository leave.LeaveRequestRepository,
	hub *sse.Hub,
	policy attendance.Policy,
) dashboard.DashboardService {
	return &DashboardServiceImpl{
		users:      userRepository,
		attendance: attendanceRepository,
		leaves:     leaveRepository,
		hub:        hub,
		policy:     policy,
		now:        time.Now,
	}
}

// GetDashboard loads users, attendance and pending leaves in parallel and
// aggregates them in memory.
func (s *DashboardServiceImpl) GetDashboard(ctx context.Context, month string) (*dashboard.DashboardResponse, error) {
	now := s.now()
	today := s.policy.DateOf(now)
	if month == "" {
		month = today[:len("2006-01")]
	}
	first, err := time.Parse("2006-01", month)
	if err != nil {
		return nil, dashboard.ErrInvalidMonth
	}
	last := first.AddDate(0, 1, -1)

	var (
		users         []user.User
		monthRecords  []attendance.Attendance
		todayRecords  []attendance.Attendance
		pendingLeaves []leave.LeaveRequest
	)

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		var err error
		users, err = s.users.List(gCtx, user.ListFilter{})
		if err != nil {
			return fmt.Errorf("failed to list users: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		var err error
		monthRecords, err = s.attendance.List(gCtx, attendance.ListFilter{
			From: first.Format(attendance.DateLayout),
			To:   last.Format(attendance.DateLayout),
		})
		if err != nil {
			return fmt.Errorf("failed to list monthly attendance: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		var err error
		todayRecords, err = s.attendance.List(gCtx, attendance.ListFilter{From: today, To: today})
		if err != nil {
			return fmt.Errorf("failed to list today's attendance: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		var err error
		pendingLeaves, err = s.leaves.List(gCtx, leave.ListFilter{Status: leave.StatusPending})
		if err != nil {
			return fmt.Errorf("failed to list pending leaves: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	var approved, pending []user.User
	names := make(map[string]string, len(users))
	for _, u := range users {
		names[u.EmployeeID] = u.FullName()
		if u.Role != user.RoleEmployee {
			continue
		}
		if u.AccountApproved {
			approved = append(approved, u)
		} else {
			pending = append(pending, u)
		}
	}

	return &dashboard.DashboardResponse{
		EmployeeSummary:   s.employeeSummary(approved, pending, now),
		AttendanceStats:   dailyStats(approved, todayRecords, today),
		MonthlyAttendance: s.monthlyAttendance(monthRecords, names, month),
		PendingLeaves:     int64(len(pendingLeaves)),
		Departments:       user.CountByDepartment(approved),
		RecentEmployees:   recentEmployees(approved),
		LiveConnections:   s.hub.TotalSubscribers(),
	}, nil
}

func (s *DashboardServiceImpl) employeeSummary(approved, pending []user.User, now time.Time) dashboard.EmployeeSummaryResponse {
	cutoff := s.policy.DateOf(now.AddDate(0, 0, -newEmployeeDays))
	summary := dashboard.EmployeeSummaryResponse{
		TotalEmployee:   int64(len(approved)),
		PendingApproval: int64(len(pending)),
		UpdatedAt:       now.Format(time.RFC3339),
	}
	for _, u := range approved {
		summary.TotalPayroll += u.Salary
		joined := u.JoinDate
		if joined == "" {
			joined = s.policy.DateOf(u.CreatedAt)
		}
		if joined >= cutoff {
			summary.NewEmployee++
		}
	}
	return summary
}

func dailyStats(approved []user.User, records []attendance.Attendance, date string) dashboard.AttendanceStatsResponse {
	codes := make(map[string]struct{}, len(approved))
	for _, u := range approved {
		codes[u.EmployeeID] = struct{}{}
	}

	stats := dashboard.AttendanceStatsResponse{Total: int64(len(approved)), Date: date}
	for _, r := range records {
		if _, ok := codes[r.EmployeeID]; !ok {
			continue
		}
		switch r.Status {
		case attendance.StatusPresent:
			stats.OnTime++
		case attendance.StatusLate:
			stats.Late++
		case attendance.StatusHalfDay:
			stats.HalfDay++
		case attendance.StatusLeave:
			stats.OnLeave++
		}
	}
	stats.Absent = max(stats.Total-stats.OnTime-stats.Late-stats.HalfDay-stats.OnLeave, 0)

	stats.PresentPercent = percent(stats.OnTime+stats.Late, stats.Total)
	stats.OnTimePercent = percent(stats.OnTime, stats.Total)
	stats.LatePercent = percent(stats.Late, stats.Total)
	stats.AbsentPercent = percent(stats.Absent, stats.Total)
	return stats
}

// monthlyAttendance expects records newest date first.
func (s *DashboardServiceImpl) monthlyAttendance(records []attendance.Attendance, names map[string]string, month string) dashboard.MonthlyAttendanceResponse {
	resp := dashboard.MonthlyAttendanceResponse{
		Records: make([]dashboard.AttendanceRecordItem, 0, min(len(records), latestRecordLimit)),
		Month:   month,
	}
	for i, r := range records {
		switch r.Status {
		case attendance.StatusPresent:
			resp.OnTime++
		case attendance.StatusLate:
			resp.Late++
		case attendance.StatusHalfDay:
			resp.HalfDay++
		case attendance.StatusLeave:
			resp.OnLeave++
		case attendance.StatusAbsent:
			resp.Absent++
		}

		if i < latestRecordLimit {
			item := dashboard.AttendanceRecordItem{
				No:           i + 1,
				EmployeeID:   r.EmployeeID,
				EmployeeName: names[r.EmployeeID],
				Date:         r.Date,
				Status:       string(r.Status),
			}
			if r.CheckIn != nil {
				clock := s.policy.ClockOf(*r.CheckIn)
				item.CheckIn = &clock
			}
			resp.Records = append(resp.Records, item)
		}
	}
	resp.AttendanceRate = percent(resp.OnTime+resp.Late, int64(len(records)))
	return resp
}

func recentEmployees(approved []user.User) []user.UserResponse {
	sorted := make([]user.User, len(approved))
	copy(sorted, approved)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].CreatedAt.After(sorted[j].CreatedAt)
	})
	if len(sorted) > recentEmployeeLimit {
		sorted = sorted[:recentEmployeeLimit]
	}
	return user.NewUserResponses(sorted)
}

func percent(n, total int64) float64 {
	if total == 0 {
		return 0
	}
	return math.Round(float64(n)/float64(total)*10000) / 100
}
