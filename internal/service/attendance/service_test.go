package attendance

import (
	"context"
	"testing"
	"time"

	"github.com/dayflow-hr/hrms-backend-go/internal/domain/attendance"
	"github.com/dayflow-hr/hrms-backend-go/internal/domain/leave"
	"github.com/dayflow-hr/hrms-backend-go/internal/domain/user"
	"github.com/dayflow-hr/hrms-backend-go/internal/repository/memory"
	"github.com/dayflow-hr/hrms-backend-go/internal/repository/recordstore"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	svc    *AttendanceServiceImpl
	users  user.UserRepository
	leaves leave.LeaveRequestRepository
	clock  time.Time
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := memory.NewStore()
	f := &fixture{
		users:  recordstore.NewUserRepository(store),
		leaves: recordstore.NewLeaveRequestRepository(store),
		// Monday
		clock: time.Date(2025, 3, 10, 8, 45, 0, 0, time.UTC),
	}
	svc := NewAttendanceService(
		recordstore.NewAttendanceRepository(store),
		f.users,
		f.leaves,
		attendance.Policy{LateAfter: 9 * time.Hour, Location: time.UTC},
	).(*AttendanceServiceImpl)
	svc.now = func() time.Time { return f.clock }
	f.svc = svc

	ctx := context.Background()
	for i, code := range []string{"EMP002", "EMP003"} {
		_, err := f.users.Create(ctx, user.User{
			ID:              code,
			EmployeeID:      code,
			Email:           code + "@dayflow.com",
			Role:            user.RoleEmployee,
			AccountApproved: true,
			JoinDate:        "2024-01-0" + string(rune('1'+i)),
		})
		require.NoError(t, err)
	}
	_, err := f.users.Create(ctx, user.User{ID: "EMP004", EmployeeID: "EMP004", Email: "pending@dayflow.com", Role: user.RoleEmployee})
	require.NoError(t, err)
	return f
}

func TestAttendanceService_CheckInCheckOut(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	rec, err := f.svc.CheckIn(ctx, "EMP002")
	require.NoError(t, err)
	assert.Equal(t, "EMP002_2025-03-10", rec.ID)
	assert.Equal(t, "2025-03-10", rec.Date)
	assert.Equal(t, attendance.StatusPresent, rec.Status)
	assert.True(t, rec.IsOpen())

	_, err = f.svc.CheckIn(ctx, "EMP002")
	assert.ErrorIs(t, err, attendance.ErrAlreadyCheckedIn)

	f.clock = f.clock.Add(8*time.Hour + 20*time.Minute)
	rec, err = f.svc.CheckOut(ctx, "EMP002")
	require.NoError(t, err)
	require.NotNil(t, rec.HoursWorked)
	assert.Equal(t, 8.33, *rec.HoursWorked)
	assert.False(t, rec.IsOpen())

	_, err = f.svc.CheckOut(ctx, "EMP002")
	assert.ErrorIs(t, err, attendance.ErrAlreadyCheckedOut)

	today, err := f.svc.Today(ctx, "EMP002")
	require.NoError(t, err)
	assert.NotNil(t, today.CheckOut)
}

func TestAttendanceService_CheckInAfterCutoffIsLate(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	f.clock = time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	rec, err := f.svc.CheckIn(ctx, "EMP002")
	require.NoError(t, err)
	assert.Equal(t, attendance.StatusPresent, rec.Status, "exactly at the cutoff is on time")

	f.clock = time.Date(2025, 3, 10, 9, 0, 1, 0, time.UTC)
	rec, err = f.svc.CheckIn(ctx, "EMP003")
	require.NoError(t, err)
	assert.Equal(t, attendance.StatusLate, rec.Status)
}

func TestAttendanceService_CheckOutWithoutCheckIn(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	_, err := f.svc.CheckOut(ctx, "EMP002")
	assert.ErrorIs(t, err, attendance.ErrNotCheckedIn)

	_, err = f.svc.CheckIn(ctx, "EMP999")
	assert.ErrorIs(t, err, user.ErrUserNotFound)
}

func TestAttendanceService_StatsForMonth(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	days := []struct {
		day   int
		hour  int
		hours time.Duration
	}{
		{3, 8, 8 * time.Hour},
		{4, 10, 7*time.Hour + 30*time.Minute},
		{5, 8, 9 * time.Hour},
	}
	for _, d := range days {
		f.clock = time.Date(2025, 3, d.day, d.hour, 0, 0, 0, time.UTC)
		_, err := f.svc.CheckIn(ctx, "EMP002")
		require.NoError(t, err)
		f.clock = f.clock.Add(d.hours)
		_, err = f.svc.CheckOut(ctx, "EMP002")
		require.NoError(t, err)
	}

	f.clock = time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	n, err := f.svc.MarkAbsent(ctx, "2025-03-06")
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	stats, err := f.svc.StatsForMonth(ctx, "EMP002", 2025, 3)
	require.NoError(t, err)
	assert.Equal(t, 2, stats.PresentDays)
	assert.Equal(t, 1, stats.LateDays)
	assert.Equal(t, 1, stats.AbsentDays)
	assert.Equal(t, 24.5, stats.TotalHours)

	empty, err := f.svc.StatsForMonth(ctx, "EMP002", 2025, 2)
	require.NoError(t, err)
	assert.Zero(t, empty.PresentDays)
	assert.Zero(t, empty.TotalHours)

	_, err = f.svc.StatsForMonth(ctx, "EMP002", 2025, 13)
	assert.ErrorIs(t, err, attendance.ErrInvalidPeriod)
	_, err = f.svc.StatsForMonth(ctx, "EMP002", 2025, 0)
	assert.ErrorIs(t, err, attendance.ErrInvalidPeriod)
}

func TestAttendanceService_MarkAbsent(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	_, err := f.leaves.Create(ctx, leave.LeaveRequest{
		ID:         "leave-1",
		EmployeeID: "EMP003",
		Type:       leave.TypeSick,
		StartDate:  "2025-03-06",
		EndDate:    "2025-03-07",
		Status:     leave.StatusApproved,
	})
	require.NoError(t, err)

	f.clock = time.Date(2025, 3, 6, 8, 0, 0, 0, time.UTC)
	_, err = f.svc.CheckIn(ctx, "EMP002")
	require.NoError(t, err)

	f.clock = time.Date(2025, 3, 10, 8, 0, 0, 0, time.UTC)
	n, err := f.svc.MarkAbsent(ctx, "2025-03-06")
	require.NoError(t, err)
	assert.Equal(t, 1, n, "only the employee without a record is filled in")

	rec, err := f.svc.List(ctx, attendance.ListFilter{EmployeeID: "EMP003", From: "2025-03-06", To: "2025-03-06"})
	require.NoError(t, err)
	require.Len(t, rec, 1)
	assert.Equal(t, attendance.StatusLeave, rec[0].Status)

	n, err = f.svc.MarkAbsent(ctx, "2025-03-06")
	require.NoError(t, err)
	assert.Zero(t, n, "sweep is idempotent")

	n, err = f.svc.MarkAbsent(ctx, "2025-03-08")
	require.NoError(t, err)
	assert.Zero(t, n, "weekends are skipped")

	_, err = f.svc.MarkAbsent(ctx, "2025-03-10")
	assert.ErrorIs(t, err, attendance.ErrInvalidDate)

	_, err = f.svc.MarkAbsent(ctx, "06-03-2025")
	assert.ErrorIs(t, err, attendance.ErrInvalidDate)

	pending, err := f.svc.List(ctx, attendance.ListFilter{EmployeeID: "EMP004"})
	require.NoError(t, err)
	assert.Empty(t, pending, "unapproved accounts are not swept")
}

func TestAttendanceService_ListRejectsBadDates(t *testing.T) {
	f := newFixture(t)
	_, err := f.svc.List(context.Background(), attendance.ListFilter{From: "yesterday"})
	assert.ErrorIs(t, err, attendance.ErrInvalidDate)
}
