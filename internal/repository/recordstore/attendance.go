package recordstore

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/dayflow-hr/hrms-backend-go/internal/domain/attendance"
	"github.com/dayflow-hr/hrms-backend-go/internal/domain/record"
)

type attendanceRepositoryImpl struct {
	store record.Store
}

func NewAttendanceRepository(store record.Store) attendance.AttendanceRepository {
	return &attendanceRepositoryImpl{store: store}
}

func setAttendanceVersion(a *attendance.Attendance, v int64) { a.Version = v }

func (r *attendanceRepositoryImpl) Create(ctx context.Context, a attendance.Attendance) (attendance.Attendance, error) {
	if a.ID == "" {
		a.ID = attendance.RecordID(a.EmployeeID, a.Date)
	}
	// legacy records may use a different id for the same day
	if _, err := r.scan(ctx, a.EmployeeID, a.Date); err == nil {
		return attendance.Attendance{}, attendance.ErrAttendanceExists
	} else if !errors.Is(err, attendance.ErrAttendanceNotFound) {
		return attendance.Attendance{}, err
	}

	doc, err := encode(a.ID, 0, a)
	if err != nil {
		return attendance.Attendance{}, err
	}
	stored, err := r.store.Upsert(ctx, record.Attendance, doc)
	if err != nil {
		if errors.Is(err, record.ErrDuplicateID) {
			return attendance.Attendance{}, attendance.ErrAttendanceExists
		}
		return attendance.Attendance{}, fmt.Errorf("failed to create attendance: %w", err)
	}
	a.Version = stored.Version
	return a, nil
}

func (r *attendanceRepositoryImpl) Update(ctx context.Context, a attendance.Attendance) (attendance.Attendance, error) {
	doc, err := encode(a.ID, a.Version, a)
	if err != nil {
		return attendance.Attendance{}, err
	}
	stored, err := r.store.Upsert(ctx, record.Attendance, doc)
	if err != nil {
		if errors.Is(err, record.ErrNotFound) {
			return attendance.Attendance{}, attendance.ErrAttendanceNotFound
		}
		return attendance.Attendance{}, err
	}
	a.Version = stored.Version
	return a, nil
}

func (r *attendanceRepositoryImpl) GetByEmployeeAndDate(ctx context.Context, employeeID, date string) (attendance.Attendance, error) {
	doc, err := r.store.Find(ctx, record.Attendance, attendance.RecordID(employeeID, date))
	if err == nil {
		return decode(record.Attendance, doc, setAttendanceVersion)
	}
	if !errors.Is(err, record.ErrNotFound) {
		return attendance.Attendance{}, err
	}
	return r.scan(ctx, employeeID, date)
}

func (r *attendanceRepositoryImpl) scan(ctx context.Context, employeeID, date string) (attendance.Attendance, error) {
	records, err := r.List(ctx, attendance.ListFilter{EmployeeID: employeeID, From: date, To: date})
	if err != nil {
		return attendance.Attendance{}, err
	}
	if len(records) == 0 {
		return attendance.Attendance{}, attendance.ErrAttendanceNotFound
	}
	return records[0], nil
}

func (r *attendanceRepositoryImpl) List(ctx context.Context, filter attendance.ListFilter) ([]attendance.Attendance, error) {
	docs, err := r.store.List(ctx, record.Attendance)
	if err != nil {
		return nil, err
	}
	all, err := decodeAll(record.Attendance, docs, setAttendanceVersion)
	if err != nil {
		return nil, err
	}

	out := make([]attendance.Attendance, 0, len(all))
	for _, a := range all {
		if filter.EmployeeID != "" && a.EmployeeID != filter.EmployeeID {
			continue
		}
		if filter.From != "" && a.Date < filter.From {
			continue
		}
		if filter.To != "" && a.Date > filter.To {
			continue
		}
		if filter.Status != "" && a.Status != filter.Status {
			continue
		}
		out = append(out, a)
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Date != out[j].Date {
			return out[i].Date > out[j].Date
		}
		return out[i].EmployeeID < out[j].EmployeeID
	})
	return out, nil
}
