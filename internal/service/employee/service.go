package employee

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/dayflow-hr/hrms-backend-go/internal/domain/employee"
	"github.com/dayflow-hr/hrms-backend-go/internal/domain/user"
	"github.com/dayflow-hr/hrms-backend-go/internal/pkg/validator"
	"github.com/dayflow-hr/hrms-backend-go/internal/service/file"
)

type EmployeeServiceImpl struct {
	user.UserRepository
	fileService file.FileService
	now         func() time.Time
}

func NewEmployeeService(userRepository user.UserRepository, fileService file.FileService) employee.EmployeeService {
	return &EmployeeServiceImpl{
		UserRepository: userRepository,
		fileService:    fileService,
		now:            time.Now,
	}
}

func (s *EmployeeServiceImpl) lookup(ctx context.Context, idOrCode string) (user.User, error) {
	if validator.IsValidEmployeeCode(idOrCode) {
		return s.UserRepository.GetByEmployeeID(ctx, idOrCode)
	}
	return s.UserRepository.GetByID(ctx, idOrCode)
}

// ListEmployees implements employee.EmployeeService.
func (s *EmployeeServiceImpl) ListEmployees(ctx context.Context, req user.ListEmployeesRequest) ([]user.User, error) {
	users, err := s.UserRepository.List(ctx, user.ListFilter{
		Search:     req.Search,
		Department: req.Department,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list employees: %w", err)
	}
	return users, nil
}

// ListTeam implements employee.EmployeeService.
func (s *EmployeeServiceImpl) ListTeam(ctx context.Context, userID string, req user.ListEmployeesRequest) (employee.Team, error) {
	approved := true
	employees, err := s.UserRepository.List(ctx, user.ListFilter{Role: user.RoleEmployee, Approved: &approved})
	if err != nil {
		return employee.Team{}, fmt.Errorf("failed to list team: %w", err)
	}

	team := make([]user.User, 0, len(employees))
	for _, u := range employees {
		if u.ID != userID {
			team = append(team, u)
		}
	}

	members := make([]user.User, 0, len(team))
	for _, u := range team {
		if req.Department != "" && u.Department != req.Department {
			continue
		}
		if !u.Matches(req.Search) {
			continue
		}
		members = append(members, u)
	}

	return employee.Team{
		Members:     members,
		Departments: user.CountByDepartment(team),
	}, nil
}

// GetEmployee implements employee.EmployeeService.
func (s *EmployeeServiceImpl) GetEmployee(ctx context.Context, idOrCode string) (user.User, error) {
	return s.lookup(ctx, idOrCode)
}

// UpdateProfile implements employee.EmployeeService.
func (s *EmployeeServiceImpl) UpdateProfile(ctx context.Context, userID string, req user.UpdateProfileRequest) (user.User, error) {
	if err := req.Validate(); err != nil {
		return user.User{}, err
	}

	u, err := s.UserRepository.GetByID(ctx, userID)
	if err != nil {
		return user.User{}, err
	}

	if req.FirstName != nil {
		u.FirstName = strings.TrimSpace(*req.FirstName)
	}
	if req.LastName != nil {
		u.LastName = strings.TrimSpace(*req.LastName)
	}
	if req.Phone != nil {
		u.Phone = strings.TrimSpace(*req.Phone)
	}
	if req.Address != nil {
		u.Address = strings.TrimSpace(*req.Address)
	}
	u.UpdatedAt = s.now()

	updated, err := s.UserRepository.Update(ctx, u)
	if err != nil {
		return user.User{}, fmt.Errorf("failed to update profile: %w", err)
	}
	return updated, nil
}

// UpdateSalary implements employee.EmployeeService.
func (s *EmployeeServiceImpl) UpdateSalary(ctx context.Context, idOrCode string, req user.UpdateSalaryRequest) (user.User, error) {
	if req.Salary <= 0 {
		return user.User{}, user.ErrInvalidSalary
	}

	u, err := s.lookup(ctx, idOrCode)
	if err != nil {
		return user.User{}, err
	}

	previous := u.Salary
	u.Salary = req.Salary
	u.UpdatedAt = s.now()

	updated, err := s.UserRepository.Update(ctx, u)
	if err != nil {
		return user.User{}, fmt.Errorf("failed to update salary: %w", err)
	}

	slog.Info("salary updated", "employee_id", updated.EmployeeID, "from", previous, "to", updated.Salary)
	return updated, nil
}

// UploadAvatar implements employee.EmployeeService.
func (s *EmployeeServiceImpl) UploadAvatar(ctx context.Context, req employee.UploadAvatarRequest) (user.User, error) {
	if err := req.Validate(); err != nil {
		return user.User{}, err
	}

	u, err := s.UserRepository.GetByID(ctx, req.UserID)
	if err != nil {
		return user.User{}, err
	}

	avatarURL, err := s.fileService.UploadAvatar(ctx, u.EmployeeID, req.File, req.Filename)
	if err != nil {
		return user.User{}, err
	}

	previous := u.ProfilePicture
	u.ProfilePicture = &avatarURL
	u.UpdatedAt = s.now()

	updated, err := s.UserRepository.Update(ctx, u)
	if err != nil {
		_ = s.fileService.DeleteByURL(ctx, avatarURL)
		return user.User{}, fmt.Errorf("failed to update avatar URL: %w", err)
	}

	if previous != nil {
		if err := s.fileService.DeleteByURL(ctx, *previous); err != nil {
			slog.Warn("failed to delete previous avatar", "employee_id", u.EmployeeID, "url", *previous, "error", err)
		}
	}
	return updated, nil
}
