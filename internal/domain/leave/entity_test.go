package leave

import (
	"errors"
	"testing"
	"time"

	"github.com/dayflow-hr/hrms-backend-go/internal/pkg/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDaysRequested(t *testing.T) {
	tests := []struct {
		start, end string
		want       int
	}{
		{"2025-03-10", "2025-03-12", 3},
		{"2025-03-10", "2025-03-10", 1},
		{"2025-03-12", "2025-03-10", 3},
		{"2024-02-28", "2024-03-01", 3},
	}
	for _, tt := range tests {
		got, err := DaysRequested(tt.start, tt.end)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got, "%s..%s", tt.start, tt.end)
	}

	_, err := DaysRequested("10/03/2025", "2025-03-12")
	assert.ErrorIs(t, err, ErrInvalidDate)
}

func TestCanTransition(t *testing.T) {
	assert.True(t, CanTransition(StatusPending, StatusApproved))
	assert.True(t, CanTransition(StatusPending, StatusRejected))
	assert.False(t, CanTransition(StatusApproved, StatusRejected))
	assert.False(t, CanTransition(StatusRejected, StatusApproved))
	assert.False(t, CanTransition(StatusApproved, StatusApproved))
	assert.False(t, CanTransition(StatusPending, StatusPending))
}

func TestLeaveRequest_Decide(t *testing.T) {
	now := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	r := LeaveRequest{Status: StatusPending}
	comment := "enjoy"

	require.NoError(t, r.Decide(StatusApproved, &comment, "admin-1", now))
	assert.Equal(t, StatusApproved, r.Status)
	assert.Equal(t, now, r.UpdatedAt)
	assert.Equal(t, "admin-1", *r.DecidedBy)

	assert.ErrorIs(t, r.Decide(StatusApproved, nil, "admin-1", now), ErrAlreadyDecided)
}

func TestLeaveRequest_Covers(t *testing.T) {
	r := LeaveRequest{StartDate: "2025-03-10", EndDate: "2025-03-12"}
	assert.True(t, r.Covers("2025-03-10"))
	assert.True(t, r.Covers("2025-03-12"))
	assert.False(t, r.Covers("2025-03-13"))
	assert.False(t, r.Covers("2025-03-09"))
}

func TestSubmitLeaveRequest_Validate(t *testing.T) {
	ok := SubmitLeaveRequest{LeaveType: "Sick Leave", StartDate: "2025-03-10", EndDate: "2025-03-12", Reason: "flu"}
	assert.NoError(t, ok.Validate())

	tests := []struct {
		name  string
		req   SubmitLeaveRequest
		field string
	}{
		{"blank reason", SubmitLeaveRequest{StartDate: "2025-03-10", EndDate: "2025-03-12", Reason: " "}, "reason"},
		{"blank start", SubmitLeaveRequest{EndDate: "2025-03-12", Reason: "x"}, "start_date"},
		{"reversed", SubmitLeaveRequest{StartDate: "2025-03-12", EndDate: "2025-03-10", Reason: "x"}, "end_date"},
		{"bad type", SubmitLeaveRequest{LeaveType: "Vacation", StartDate: "2025-03-10", EndDate: "2025-03-10", Reason: "x"}, "leave_type"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.req.Validate()
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidRange)

			var verrs validator.ValidationErrors
			require.True(t, errors.As(err, &verrs))
			assert.Contains(t, verrs.ToMap(), tt.field)
		})
	}
}

func TestSubmitLeaveRequest_DefaultType(t *testing.T) {
	assert.Equal(t, TypePaid, (&SubmitLeaveRequest{}).Type())
	assert.Equal(t, TypeCasual, (&SubmitLeaveRequest{LeaveType: "Casual Leave"}).Type())
}
