package approval

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/dayflow-hr/hrms-backend-go/internal/domain/approval"
	"github.com/dayflow-hr/hrms-backend-go/internal/domain/leave"
	"github.com/dayflow-hr/hrms-backend-go/internal/domain/record"
	"github.com/dayflow-hr/hrms-backend-go/internal/domain/user"
	"github.com/dayflow-hr/hrms-backend-go/internal/pkg/sse"
	"github.com/dayflow-hr/hrms-backend-go/internal/pkg/validator"
	"github.com/google/uuid"
)

const salaryApplyAttempts = 3

type ApprovalServiceImpl struct {
	approval.SalaryRequestRepository
	users user.UserRepository
	hub   *sse.Hub
	now   func() time.Time
}

func NewApprovalService(salaryRequestRepository approval.SalaryRequestRepository, userRepository user.UserRepository, hub *sse.Hub) approval.ApprovalService {
	return &ApprovalServiceImpl{
		SalaryRequestRepository: salaryRequestRepository,
		users:                   userRepository,
		hub:                     hub,
		now:                     time.Now,
	}
}

// ========== ACCOUNTS ==========

// ListPendingAccounts implements approval.ApprovalService.
func (s *ApprovalServiceImpl) ListPendingAccounts(ctx context.Context) ([]user.User, error) {
	approved := false
	pending, err := s.users.List(ctx, user.ListFilter{Role: user.RoleEmployee, Approved: &approved})
	if err != nil {
		return nil, fmt.Errorf("failed to list pending accounts: %w", err)
	}
	return pending, nil
}

// ApproveAccount implements approval.ApprovalService.
func (s *ApprovalServiceImpl) ApproveAccount(ctx context.Context, userID string, overrideSalary *int64) (user.User, error) {
	if overrideSalary != nil && *overrideSalary <= 0 {
		return user.User{}, approval.ErrInvalidSalary
	}

	u, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return user.User{}, err
	}
	if u.AccountApproved {
		return user.User{}, approval.ErrAccountAlreadyApproved
	}

	u.AccountApproved = true
	if overrideSalary != nil {
		u.Salary = *overrideSalary
	}
	u.UpdatedAt = s.now()

	updated, err := s.users.Update(ctx, u)
	if err != nil {
		return user.User{}, fmt.Errorf("failed to approve account: %w", err)
	}

	slog.Info("account approved", "user_id", userID, "employee_id", updated.EmployeeID, "salary", updated.Salary)
	s.hub.Publish(updated.ID, sse.Event{Event: sse.EventAccountApproved, Data: user.NewUserResponse(updated)})
	return updated, nil
}

// RejectAccount implements approval.ApprovalService.
func (s *ApprovalServiceImpl) RejectAccount(ctx context.Context, userID string) error {
	u, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	if u.IsAdmin() {
		return approval.ErrCannotRejectAdmin
	}
	if u.AccountApproved {
		return approval.ErrAccountAlreadyApproved
	}

	if err := s.users.Delete(ctx, userID); err != nil {
		return fmt.Errorf("failed to delete account: %w", err)
	}

	slog.Info("account rejected", "user_id", userID, "employee_id", u.EmployeeID)
	return nil
}

// ========== SALARY REQUESTS ==========

// SubmitSalaryRequest implements approval.ApprovalService.
func (s *ApprovalServiceImpl) SubmitSalaryRequest(ctx context.Context, employeeID string, req approval.SubmitSalaryRequest) (approval.SalaryRequest, error) {
	if err := req.Validate(); err != nil {
		return approval.SalaryRequest{}, err
	}

	u, err := s.users.GetByEmployeeID(ctx, employeeID)
	if err != nil {
		return approval.SalaryRequest{}, err
	}

	now := s.now()
	created, err := s.SalaryRequestRepository.Create(ctx, approval.SalaryRequest{
		ID:              uuid.Must(uuid.NewV7()).String(),
		EmployeeID:      u.EmployeeID,
		RequestedAmount: req.RequestedAmount,
		CurrentAmount:   u.Salary,
		Reason:          strings.TrimSpace(req.Reason),
		OvertimeHours:   req.OvertimeHours,
		Status:          leave.StatusPending,
		CreatedAt:       now,
		UpdatedAt:       now,
	})
	if err != nil {
		return approval.SalaryRequest{}, fmt.Errorf("failed to create salary request: %w", err)
	}

	slog.Info("salary request submitted", "request_id", created.ID, "employee_id", employeeID, "requested_amount", created.RequestedAmount)
	s.notifyAdmins(ctx, sse.Event{
		Event: sse.EventSalaryRequestSubmitted,
		Data:  approval.NewSalaryRequestResponse(created, u.FullName()),
	})
	return created, nil
}

// ListSalaryRequests implements approval.ApprovalService.
func (s *ApprovalServiceImpl) ListSalaryRequests(ctx context.Context, filter approval.ListFilter) ([]approval.SalaryRequestResponse, error) {
	if filter.Status != "" && !filter.Status.Valid() {
		return nil, validator.ValidationErrors{{Field: "status", Message: "must be one of: Pending Approved Rejected"}}
	}

	requests, err := s.SalaryRequestRepository.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list salary requests: %w", err)
	}

	names := make(map[string]string)
	out := make([]approval.SalaryRequestResponse, 0, len(requests))
	for _, r := range requests {
		name, ok := names[r.EmployeeID]
		if !ok {
			if u, err := s.users.GetByEmployeeID(ctx, r.EmployeeID); err == nil {
				name = u.FullName()
			} else if !errors.Is(err, user.ErrUserNotFound) {
				return nil, fmt.Errorf("failed to get requester: %w", err)
			}
			names[r.EmployeeID] = name
		}
		out = append(out, approval.NewSalaryRequestResponse(r, name))
	}
	return out, nil
}

// ApproveSalaryRequest implements approval.ApprovalService.
func (s *ApprovalServiceImpl) ApproveSalaryRequest(ctx context.Context, id string, comment *string, decidedBy string) (approval.SalaryRequest, error) {
	request, err := s.SalaryRequestRepository.GetByID(ctx, id)
	if err != nil {
		return approval.SalaryRequest{}, err
	}
	if request.Status != leave.StatusPending {
		return approval.SalaryRequest{}, approval.ErrAlreadyDecided
	}
	if _, err := s.users.GetByEmployeeID(ctx, request.EmployeeID); err != nil {
		return approval.SalaryRequest{}, err
	}

	decided := request
	if err := decided.Decide(leave.StatusApproved, trimComment(comment), decidedBy, s.now()); err != nil {
		return approval.SalaryRequest{}, err
	}
	// Claim the request before touching the salary.
	claimed, err := s.SalaryRequestRepository.Update(ctx, decided)
	if err != nil {
		return approval.SalaryRequest{}, fmt.Errorf("failed to update salary request: %w", err)
	}

	u, err := s.applySalary(ctx, claimed.EmployeeID, claimed.RequestedAmount, claimed.UpdatedAt)
	if err != nil {
		request.Version = claimed.Version
		if _, reopenErr := s.SalaryRequestRepository.Update(ctx, request); reopenErr != nil {
			slog.Error("failed to reopen salary request", "request_id", id, "error", reopenErr)
			return approval.SalaryRequest{}, fmt.Errorf("failed to apply salary: %w", errors.Join(err, reopenErr))
		}
		return approval.SalaryRequest{}, fmt.Errorf("failed to apply salary: %w", err)
	}

	slog.Info("salary request approved", "request_id", id, "employee_id", u.EmployeeID, "salary", u.Salary)
	s.publishDecision(u.ID, claimed, u.FullName())
	return claimed, nil
}

// applySalary writes amount onto the employee, re-reading the user when a
// concurrent edit bumped its version.
func (s *ApprovalServiceImpl) applySalary(ctx context.Context, employeeID string, amount int64, at time.Time) (user.User, error) {
	var err error
	for attempt := 0; attempt < salaryApplyAttempts; attempt++ {
		var u user.User
		u, err = s.users.GetByEmployeeID(ctx, employeeID)
		if err != nil {
			return user.User{}, err
		}
		u.Salary = amount
		u.UpdatedAt = at

		var updated user.User
		updated, err = s.users.Update(ctx, u)
		if err == nil {
			return updated, nil
		}
		if !errors.Is(err, record.ErrVersionConflict) {
			return user.User{}, err
		}
	}
	return user.User{}, err
}

// RejectSalaryRequest implements approval.ApprovalService.
func (s *ApprovalServiceImpl) RejectSalaryRequest(ctx context.Context, id string, comment *string, decidedBy string) (approval.SalaryRequest, error) {
	request, err := s.SalaryRequestRepository.GetByID(ctx, id)
	if err != nil {
		return approval.SalaryRequest{}, err
	}

	if err := request.Decide(leave.StatusRejected, trimComment(comment), decidedBy, s.now()); err != nil {
		return approval.SalaryRequest{}, err
	}
	updated, err := s.SalaryRequestRepository.Update(ctx, request)
	if err != nil {
		return approval.SalaryRequest{}, fmt.Errorf("failed to update salary request: %w", err)
	}

	slog.Info("salary request rejected", "request_id", id, "employee_id", updated.EmployeeID)
	if u, err := s.users.GetByEmployeeID(ctx, updated.EmployeeID); err == nil {
		s.publishDecision(u.ID, updated, u.FullName())
	}
	return updated, nil
}

func (s *ApprovalServiceImpl) publishDecision(userID string, r approval.SalaryRequest, name string) {
	s.hub.Publish(userID, sse.Event{
		Event: sse.EventSalaryRequestDecided,
		Data:  approval.NewSalaryRequestResponse(r, name),
	})
}

func (s *ApprovalServiceImpl) notifyAdmins(ctx context.Context, event sse.Event) {
	admins, err := s.users.List(ctx, user.ListFilter{Role: user.RoleAdmin})
	if err != nil {
		slog.Warn("failed to list admins for notification", "event", event.Event, "error", err)
		return
	}
	ids := make([]string, 0, len(admins))
	for _, a := range admins {
		ids = append(ids, a.ID)
	}
	s.hub.PublishToMany(ids, event)
}

func trimComment(comment *string) *string {
	if comment == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*comment)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
