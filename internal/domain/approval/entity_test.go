package approval

import (
	"testing"
	"time"

	"github.com/dayflow-hr/hrms-backend-go/internal/domain/leave"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSalaryRequest_Decide(t *testing.T) {
	now := time.Now()
	r := SalaryRequest{Status: leave.StatusPending}

	require.NoError(t, r.Decide(leave.StatusRejected, nil, "admin-1", now))
	assert.Equal(t, leave.StatusRejected, r.Status)

	err := r.Decide(leave.StatusApproved, nil, "admin-1", now)
	assert.ErrorIs(t, err, ErrAlreadyDecided)
	assert.ErrorIs(t, err, leave.ErrAlreadyDecided)
}

func TestSubmitSalaryRequest_Validate(t *testing.T) {
	hours := 12.5
	assert.NoError(t, (&SubmitSalaryRequest{RequestedAmount: 60000, Reason: "promotion", OvertimeHours: &hours}).Validate())

	negative := -1.0
	err := (&SubmitSalaryRequest{RequestedAmount: 0, Reason: " ", OvertimeHours: &negative}).Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "requested_amount")
	assert.Contains(t, err.Error(), "reason")
	assert.Contains(t, err.Error(), "overtime_hours")
}
