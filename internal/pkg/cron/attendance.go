package cron

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/dayflow-hr/hrms-backend-go/internal/domain/attendance"
)

type AttendanceJobs struct {
	attendanceService attendance.AttendanceService
	location          *time.Location
	now               func() time.Time
}

func NewAttendanceJobs(attendanceService attendance.AttendanceService, loc *time.Location) *AttendanceJobs {
	if loc == nil {
		loc = time.UTC
	}
	return &AttendanceJobs{
		attendanceService: attendanceService,
		location:          loc,
		now:               time.Now,
	}
}

func (j *AttendanceJobs) RegisterJobs(scheduler *Scheduler, absentSweepSpec string) error {
	return scheduler.AddJob("mark_absent_employees", absentSweepSpec, j.MarkAbsentEmployees)
}

// MarkAbsentEmployees closes out yesterday: every approved employee without
// a record gets Absent, or Leave when an approved leave covers the day.
func (j *AttendanceJobs) MarkAbsentEmployees(ctx context.Context) error {
	yesterday := j.now().In(j.location).AddDate(0, 0, -1).Format(attendance.DateLayout)

	slog.Info("Cron: Starting mark absent job", "date", yesterday)

	written, err := j.attendanceService.MarkAbsent(ctx, yesterday)
	if err != nil {
		return fmt.Errorf("failed to mark absent employees for %s: %w", yesterday, err)
	}

	slog.Info("Cron: Mark absent job completed", "date", yesterday, "records_written", written)
	return nil
}
