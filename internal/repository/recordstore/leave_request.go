package recordstore

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/dayflow-hr/hrms-backend-go/internal/domain/leave"
	"github.com/dayflow-hr/hrms-backend-go/internal/domain/record"
)

type leaveRequestRepositoryImpl struct {
	store record.Store
}

func NewLeaveRequestRepository(store record.Store) leave.LeaveRequestRepository {
	return &leaveRequestRepositoryImpl{store: store}
}

func setLeaveVersion(r *leave.LeaveRequest, v int64) { r.Version = v }

func (r *leaveRequestRepositoryImpl) Create(ctx context.Context, req leave.LeaveRequest) (leave.LeaveRequest, error) {
	doc, err := encode(req.ID, 0, req)
	if err != nil {
		return leave.LeaveRequest{}, err
	}
	stored, err := r.store.Upsert(ctx, record.LeaveRequests, doc)
	if err != nil {
		return leave.LeaveRequest{}, fmt.Errorf("failed to create leave request: %w", err)
	}
	req.Version = stored.Version
	return req, nil
}

func (r *leaveRequestRepositoryImpl) Update(ctx context.Context, req leave.LeaveRequest) (leave.LeaveRequest, error) {
	doc, err := encode(req.ID, req.Version, req)
	if err != nil {
		return leave.LeaveRequest{}, err
	}
	stored, err := r.store.Upsert(ctx, record.LeaveRequests, doc)
	if err != nil {
		if errors.Is(err, record.ErrNotFound) {
			return leave.LeaveRequest{}, leave.ErrLeaveRequestNotFound
		}
		return leave.LeaveRequest{}, err
	}
	req.Version = stored.Version
	return req, nil
}

func (r *leaveRequestRepositoryImpl) GetByID(ctx context.Context, id string) (leave.LeaveRequest, error) {
	doc, err := r.store.Find(ctx, record.LeaveRequests, id)
	if err != nil {
		if errors.Is(err, record.ErrNotFound) {
			return leave.LeaveRequest{}, leave.ErrLeaveRequestNotFound
		}
		return leave.LeaveRequest{}, err
	}
	return decode(record.LeaveRequests, doc, setLeaveVersion)
}

func (r *leaveRequestRepositoryImpl) List(ctx context.Context, filter leave.ListFilter) ([]leave.LeaveRequest, error) {
	docs, err := r.store.List(ctx, record.LeaveRequests)
	if err != nil {
		return nil, err
	}
	all, err := decodeAll(record.LeaveRequests, docs, setLeaveVersion)
	if err != nil {
		return nil, err
	}

	out := make([]leave.LeaveRequest, 0, len(all))
	for _, req := range all {
		if filter.EmployeeID != "" && req.EmployeeID != filter.EmployeeID {
			continue
		}
		if filter.Status != "" && req.Status != filter.Status {
			continue
		}
		out = append(out, req)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}
