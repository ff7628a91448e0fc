package recordstore

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/dayflow-hr/hrms-backend-go/internal/domain/payroll"
	"github.com/dayflow-hr/hrms-backend-go/internal/domain/record"
)

type payrollRepositoryImpl struct {
	store record.Store
}

func NewPayrollRepository(store record.Store) payroll.PayrollRepository {
	return &payrollRepositoryImpl{store: store}
}

func setPayrollVersion(p *payroll.PayrollRecord, v int64) { p.Version = v }

func (r *payrollRepositoryImpl) Create(ctx context.Context, p payroll.PayrollRecord) (payroll.PayrollRecord, error) {
	if p.ID == "" {
		p.ID = payroll.RecordID(p.EmployeeID, p.Month)
	}
	doc, err := encode(p.ID, 0, p)
	if err != nil {
		return payroll.PayrollRecord{}, err
	}
	stored, err := r.store.Upsert(ctx, record.Payroll, doc)
	if err != nil {
		if errors.Is(err, record.ErrDuplicateID) {
			return payroll.PayrollRecord{}, payroll.ErrPayrollExists
		}
		return payroll.PayrollRecord{}, fmt.Errorf("failed to create payroll record: %w", err)
	}
	p.Version = stored.Version
	return p, nil
}

func (r *payrollRepositoryImpl) Update(ctx context.Context, p payroll.PayrollRecord) (payroll.PayrollRecord, error) {
	doc, err := encode(p.ID, p.Version, p)
	if err != nil {
		return payroll.PayrollRecord{}, err
	}
	stored, err := r.store.Upsert(ctx, record.Payroll, doc)
	if err != nil {
		if errors.Is(err, record.ErrNotFound) {
			return payroll.PayrollRecord{}, payroll.ErrPayrollRecordNotFound
		}
		return payroll.PayrollRecord{}, err
	}
	p.Version = stored.Version
	return p, nil
}

func (r *payrollRepositoryImpl) GetByID(ctx context.Context, id string) (payroll.PayrollRecord, error) {
	doc, err := r.store.Find(ctx, record.Payroll, id)
	if err != nil {
		if errors.Is(err, record.ErrNotFound) {
			return payroll.PayrollRecord{}, payroll.ErrPayrollRecordNotFound
		}
		return payroll.PayrollRecord{}, err
	}
	return decode(record.Payroll, doc, setPayrollVersion)
}

func (r *payrollRepositoryImpl) List(ctx context.Context, filter payroll.ListFilter) ([]payroll.PayrollRecord, error) {
	docs, err := r.store.List(ctx, record.Payroll)
	if err != nil {
		return nil, err
	}
	all, err := decodeAll(record.Payroll, docs, setPayrollVersion)
	if err != nil {
		return nil, err
	}

	out := make([]payroll.PayrollRecord, 0, len(all))
	for _, p := range all {
		if filter.Month != "" && p.Month != filter.Month {
			continue
		}
		if filter.EmployeeID != "" && p.EmployeeID != filter.EmployeeID {
			continue
		}
		if filter.Status != "" && p.Status != filter.Status {
			continue
		}
		out = append(out, p)
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Month != out[j].Month {
			return out[i].Month > out[j].Month
		}
		return out[i].EmployeeID < out[j].EmployeeID
	})
	return out, nil
}
