package leave

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/dayflow-hr/hrms-backend-go/internal/domain/leave"
	"github.com/dayflow-hr/hrms-backend-go/internal/domain/user"
	"github.com/dayflow-hr/hrms-backend-go/internal/pkg/sse"
	"github.com/google/uuid"
)

type LeaveServiceImpl struct {
	leave.LeaveRequestRepository
	users user.UserRepository
	hub   *sse.Hub
	now   func() time.Time
}

func NewLeaveService(leaveRepository leave.LeaveRequestRepository, userRepository user.UserRepository, hub *sse.Hub) leave.LeaveService {
	return &LeaveServiceImpl{
		LeaveRequestRepository: leaveRepository,
		users:                  userRepository,
		hub:                    hub,
		now:                    time.Now,
	}
}

// Submit implements leave.LeaveService.
func (s *LeaveServiceImpl) Submit(ctx context.Context, employeeID string, req leave.SubmitLeaveRequest) (leave.LeaveRequest, error) {
	if err := req.Validate(); err != nil {
		return leave.LeaveRequest{}, err
	}

	requester, err := s.users.GetByEmployeeID(ctx, employeeID)
	if err != nil {
		return leave.LeaveRequest{}, err
	}

	now := s.now()
	request := leave.LeaveRequest{
		ID:         uuid.Must(uuid.NewV7()).String(),
		EmployeeID: employeeID,
		Type:       req.Type(),
		StartDate:  req.StartDate,
		EndDate:    req.EndDate,
		Remarks:    strings.TrimSpace(req.Reason),
		Status:     leave.StatusPending,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	created, err := s.LeaveRequestRepository.Create(ctx, request)
	if err != nil {
		return leave.LeaveRequest{}, fmt.Errorf("failed to create leave request: %w", err)
	}

	slog.Info("leave request submitted", "leave_id", created.ID, "employee_id", employeeID, "type", created.Type)
	s.notifyAdmins(ctx, sse.Event{
		Event: sse.EventLeaveSubmitted,
		Data:  leave.NewLeaveRequestResponse(created, requester.FullName()),
	})
	return created, nil
}

// notifyAdmins pushes event to every admin with an open stream. Failures are
// logged only; the request is already stored.
func (s *LeaveServiceImpl) notifyAdmins(ctx context.Context, event sse.Event) {
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

// Approve implements leave.LeaveService.
func (s *LeaveServiceImpl) Approve(ctx context.Context, id string, comment *string, decidedBy string) (leave.LeaveRequest, error) {
	text := leave.DefaultApprovalComment
	if comment != nil && strings.TrimSpace(*comment) != "" {
		text = strings.TrimSpace(*comment)
	}
	return s.decide(ctx, id, leave.StatusApproved, text, decidedBy)
}

// Reject implements leave.LeaveService.
func (s *LeaveServiceImpl) Reject(ctx context.Context, id string, comment string, decidedBy string) (leave.LeaveRequest, error) {
	comment = strings.TrimSpace(comment)
	if comment == "" {
		return leave.LeaveRequest{}, leave.ErrCommentRequired
	}
	return s.decide(ctx, id, leave.StatusRejected, comment, decidedBy)
}

func (s *LeaveServiceImpl) decide(ctx context.Context, id string, to leave.Status, comment, decidedBy string) (leave.LeaveRequest, error) {
	request, err := s.LeaveRequestRepository.GetByID(ctx, id)
	if err != nil {
		return leave.LeaveRequest{}, err
	}

	if err := request.Decide(to, &comment, decidedBy, s.now()); err != nil {
		return leave.LeaveRequest{}, err
	}

	updated, err := s.LeaveRequestRepository.Update(ctx, request)
	if err != nil {
		return leave.LeaveRequest{}, fmt.Errorf("failed to update leave request: %w", err)
	}

	slog.Info("leave request decided", "leave_id", id, "status", to, "decided_by", decidedBy)

	if requester, err := s.users.GetByEmployeeID(ctx, updated.EmployeeID); err == nil {
		s.hub.Publish(requester.ID, sse.Event{
			Event: sse.EventLeaveDecided,
			Data:  leave.NewLeaveRequestResponse(updated, requester.FullName()),
		})
	}
	return updated, nil
}

// UpdateDates implements leave.LeaveService.
func (s *LeaveServiceImpl) UpdateDates(ctx context.Context, employeeID, id string, req leave.UpdateDatesRequest) (leave.LeaveRequest, error) {
	if err := req.Validate(); err != nil {
		return leave.LeaveRequest{}, err
	}

	request, err := s.LeaveRequestRepository.GetByID(ctx, id)
	if err != nil {
		return leave.LeaveRequest{}, err
	}
	if request.EmployeeID != employeeID {
		return leave.LeaveRequest{}, leave.ErrNotRequestOwner
	}
	if request.Status != leave.StatusPending {
		return leave.LeaveRequest{}, leave.ErrAlreadyDecided
	}

	request.StartDate = req.StartDate
	request.EndDate = req.EndDate
	request.UpdatedAt = s.now()

	updated, err := s.LeaveRequestRepository.Update(ctx, request)
	if err != nil {
		return leave.LeaveRequest{}, fmt.Errorf("failed to update leave request: %w", err)
	}
	return updated, nil
}

// Get implements leave.LeaveService.
func (s *LeaveServiceImpl) Get(ctx context.Context, id string) (leave.LeaveRequestResponse, error) {
	request, err := s.LeaveRequestRepository.GetByID(ctx, id)
	if err != nil {
		return leave.LeaveRequestResponse{}, err
	}

	name := ""
	if u, err := s.users.GetByEmployeeID(ctx, request.EmployeeID); err == nil {
		name = u.FullName()
	} else if !errors.Is(err, user.ErrUserNotFound) {
		return leave.LeaveRequestResponse{}, fmt.Errorf("failed to get requester: %w", err)
	}
	return leave.NewLeaveRequestResponse(request, name), nil
}

// List implements leave.LeaveService.
func (s *LeaveServiceImpl) List(ctx context.Context, req leave.ListLeaveRequest) ([]leave.LeaveRequestResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	requests, err := s.LeaveRequestRepository.List(ctx, leave.ListFilter{
		EmployeeID: req.EmployeeID,
		Status:     leave.Status(req.Status),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list leave requests: %w", err)
	}

	users, err := s.users.List(ctx, user.ListFilter{})
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	byCode := make(map[string]user.User, len(users))
	for _, u := range users {
		byCode[u.EmployeeID] = u
	}

	search := strings.ToLower(strings.TrimSpace(req.Search))
	out := make([]leave.LeaveRequestResponse, 0, len(requests))
	for _, r := range requests {
		u, known := byCode[r.EmployeeID]
		if search != "" {
			if known && !u.Matches(search) {
				continue
			}
			if !known && !strings.Contains(strings.ToLower(r.EmployeeID), search) {
				continue
			}
		}
		out = append(out, leave.NewLeaveRequestResponse(r, u.FullName()))
	}
	return out, nil
}
