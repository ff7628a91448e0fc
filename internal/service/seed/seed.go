// Package seed loads demo fixtures into an empty store.
package seed

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/dayflow-hr/hrms-backend-go/internal/config"
	"github.com/dayflow-hr/hrms-backend-go/internal/domain/attendance"
	"github.com/dayflow-hr/hrms-backend-go/internal/domain/user"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// Result counts what a run wrote.
type Result struct {
	Users      int
	Attendance int
	Skipped    bool
}

type Seeder struct {
	users      user.UserRepository
	attendance attendance.AttendanceRepository
	policy     attendance.Policy
	bcryptCost int
	now        func() time.Time
}

func NewSeeder(userRepository user.UserRepository, attendanceRepository attendance.AttendanceRepository, policy attendance.Policy) *Seeder {
	return &Seeder{
		users:      userRepository,
		attendance: attendanceRepository,
		policy:     policy,
		bcryptCost: bcrypt.DefaultCost,
		now:        time.Now,
	}
}

// Run writes the fixtures when the user collection is empty and does nothing
// otherwise.
func (s *Seeder) Run(ctx context.Context, f *config.Fixtures) (Result, error) {
	existing, err := s.users.List(ctx, user.ListFilter{})
	if err != nil {
		return Result{}, fmt.Errorf("failed to list users: %w", err)
	}
	if len(existing) > 0 {
		slog.Info("store already has users, skipping fixtures", "users", len(existing))
		return Result{Skipped: true}, nil
	}

	var res Result
	created := make([]user.User, 0, len(f.Users))
	for _, fu := range f.Users {
		u, err := s.createUser(ctx, fu)
		if err != nil {
			return res, err
		}
		created = append(created, u)
		res.Users++
	}

	for i, u := range created {
		if u.Role != user.RoleEmployee || !u.AccountApproved {
			continue
		}
		n, err := s.seedAttendance(ctx, u, i, f.AttendanceDays)
		if err != nil {
			return res, err
		}
		res.Attendance += n
	}

	slog.Info("fixtures loaded", "users", res.Users, "attendance", res.Attendance)
	return res, nil
}

func (s *Seeder) createUser(ctx context.Context, fu config.FixtureUser) (user.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(fu.Password), s.bcryptCost)
	if err != nil {
		return user.User{}, fmt.Errorf("failed to hash password for %s: %w", fu.Email, err)
	}

	now := s.now()
	u := user.User{
		ID:              uuid.Must(uuid.NewV7()).String(),
		EmployeeID:      fu.EmployeeID,
		Email:           fu.Email,
		PasswordHash:    string(hash),
		Role:            user.Role(fu.Role),
		FirstName:       fu.FirstName,
		LastName:        fu.LastName,
		Department:      fu.Department,
		Designation:     fu.Designation,
		JoinDate:        fu.JoinDate,
		Phone:           fu.Phone,
		Address:         fu.Address,
		Salary:          fu.Salary,
		AccountApproved: fu.Approved,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if u.Salary <= 0 {
		u.Salary = user.StartingSalary
	}

	created, err := s.users.Create(ctx, u)
	if err != nil {
		return user.User{}, fmt.Errorf("failed to create fixture user %s: %w", fu.Email, err)
	}
	return created, nil
}

// seedAttendance writes closed records for the past weekdays. Every fifth
// working day is a late arrival, staggered by offset.
func (s *Seeder) seedAttendance(ctx context.Context, u user.User, offset, days int) (int, error) {
	loc := s.policy.Location
	if loc == nil {
		loc = time.UTC
	}
	today := s.now().In(loc)
	midnight := time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, loc)

	written := 0
	workday := offset
	for i := days; i >= 1; i-- {
		day := midnight.AddDate(0, 0, -i)
		if day.Weekday() == time.Saturday || day.Weekday() == time.Sunday {
			continue
		}
		date := day.Format(attendance.DateLayout)
		if u.JoinDate != "" && date < u.JoinDate {
			continue
		}

		workday++
		checkIn := day.Add(9 * time.Hour)
		if workday%5 == 0 {
			checkIn = checkIn.Add(20 * time.Minute)
		}
		checkOut := day.Add(18 * time.Hour)
		hours := attendance.HoursBetween(checkIn, checkOut)

		_, err := s.attendance.Create(ctx, attendance.Attendance{
			ID:          attendance.RecordID(u.EmployeeID, date),
			EmployeeID:  u.EmployeeID,
			Date:        date,
			CheckIn:     &checkIn,
			CheckOut:    &checkOut,
			Status:      s.policy.Classify(checkIn),
			HoursWorked: &hours,
			CreatedAt:   checkIn,
			UpdatedAt:   checkOut,
		})
		if errors.Is(err, attendance.ErrAttendanceExists) {
			continue
		}
		if err != nil {
			return written, fmt.Errorf("failed to seed attendance for %s: %w", u.EmployeeID, err)
		}
		written++
	}
	return written, nil
}
