package recordstore

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/dayflow-hr/hrms-backend-go/internal/domain/approval"
	"github.com/dayflow-hr/hrms-backend-go/internal/domain/record"
)

type salaryRequestRepositoryImpl struct {
	store record.Store
}

func NewSalaryRequestRepository(store record.Store) approval.SalaryRequestRepository {
	return &salaryRequestRepositoryImpl{store: store}
}

func setSalaryRequestVersion(r *approval.SalaryRequest, v int64) { r.Version = v }

func (r *salaryRequestRepositoryImpl) Create(ctx context.Context, req approval.SalaryRequest) (approval.SalaryRequest, error) {
	doc, err := encode(req.ID, 0, req)
	if err != nil {
		return approval.SalaryRequest{}, err
	}
	stored, err := r.store.Upsert(ctx, record.SalaryRequests, doc)
	if err != nil {
		return approval.SalaryRequest{}, fmt.Errorf("failed to create salary request: %w", err)
	}
	req.Version = stored.Version
	return req, nil
}

func (r *salaryRequestRepositoryImpl) Update(ctx context.Context, req approval.SalaryRequest) (approval.SalaryRequest, error) {
	doc, err := encode(req.ID, req.Version, req)
	if err != nil {
		return approval.SalaryRequest{}, err
	}
	stored, err := r.store.Upsert(ctx, record.SalaryRequests, doc)
	if err != nil {
		if errors.Is(err, record.ErrNotFound) {
			return approval.SalaryRequest{}, approval.ErrSalaryRequestNotFound
		}
		return approval.SalaryRequest{}, err
	}
	req.Version = stored.Version
	return req, nil
}

func (r *salaryRequestRepositoryImpl) GetByID(ctx context.Context, id string) (approval.SalaryRequest, error) {
	doc, err := r.store.Find(ctx, record.SalaryRequests, id)
	if err != nil {
		if errors.Is(err, record.ErrNotFound) {
			return approval.SalaryRequest{}, approval.ErrSalaryRequestNotFound
		}
		return approval.SalaryRequest{}, err
	}
	return decode(record.SalaryRequests, doc, setSalaryRequestVersion)
}

func (r *salaryRequestRepositoryImpl) List(ctx context.Context, filter approval.ListFilter) ([]approval.SalaryRequest, error) {
	docs, err := r.store.List(ctx, record.SalaryRequests)
	if err != nil {
		return nil, err
	}
	all, err := decodeAll(record.SalaryRequests, docs, setSalaryRequestVersion)
	if err != nil {
		return nil, err
	}

	out := make([]approval.SalaryRequest, 0, len(all))
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
