package seed

import (
	"context"
	"testing"
	"time"

	"github.com/dayflow-hr/hrms-backend-go/internal/config"
	"github.com/dayflow-hr/hrms-backend-go/internal/domain/attendance"
	"github.com/dayflow-hr/hrms-backend-go/internal/domain/user"
	"github.com/dayflow-hr/hrms-backend-go/internal/repository/memory"
	"github.com/dayflow-hr/hrms-backend-go/internal/repository/recordstore"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func testFixtures() *config.Fixtures {
	return &config.Fixtures{
		AttendanceDays: 7,
		Users: []config.FixtureUser{
			{EmployeeID: "EMP001", Email: "admin@dayflow.com", Password: "admin123", Role: "admin", FirstName: "Sarah", Salary: 120000, Approved: true},
			{EmployeeID: "EMP002", Email: "john.smith@dayflow.com", Password: "password123", Role: "employee", FirstName: "John", Salary: 95000, Approved: true, JoinDate: "2020-01-01"},
			{EmployeeID: "EMP003", Email: "new@dayflow.com", Password: "password123", Role: "employee", FirstName: "New"},
		},
	}
}

func TestSeeder_Run(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	users := recordstore.NewUserRepository(store)
	attendanceRepo := recordstore.NewAttendanceRepository(store)

	seeder := NewSeeder(users, attendanceRepo, attendance.Policy{LateAfter: 9 * time.Hour, Location: time.UTC})
	seeder.bcryptCost = bcrypt.MinCost
	// Monday
	seeder.now = func() time.Time { return time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC) }

	res, err := seeder.Run(ctx, testFixtures())
	require.NoError(t, err)
	assert.Equal(t, 3, res.Users)
	// Mar 3..7 are the weekdays in the previous seven days.
	assert.Equal(t, 5, res.Attendance)

	admin, err := users.GetByEmail(ctx, "admin@dayflow.com")
	require.NoError(t, err)
	assert.Equal(t, user.RoleAdmin, admin.Role)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte("admin123")))

	pending, err := users.GetByEmployeeID(ctx, "EMP003")
	require.NoError(t, err)
	assert.False(t, pending.AccountApproved)
	assert.Equal(t, user.StartingSalary, pending.Salary)

	records, err := attendanceRepo.List(ctx, attendance.ListFilter{EmployeeID: "EMP002"})
	require.NoError(t, err)
	require.Len(t, records, 5)
	late := 0
	for _, r := range records {
		require.NotNil(t, r.HoursWorked)
		if r.Status == attendance.StatusLate {
			late++
		}
	}
	assert.Equal(t, 1, late)

	again, err := seeder.Run(ctx, testFixtures())
	require.NoError(t, err)
	assert.True(t, again.Skipped)
}
