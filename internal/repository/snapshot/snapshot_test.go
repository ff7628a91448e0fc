package snapshot

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/dayflow-hr/hrms-backend-go/internal/domain/record"
	"github.com/dayflow-hr/hrms-backend-go/internal/repository/memory"
	"github.com/dayflow-hr/hrms-backend-go/internal/repository/recordstore"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fakeHash(p string) (string, error) { return "hashed:" + p, nil }

const legacyDump = `{
  "dayflow_users": "[{\"id\":\"admin-001\",\"employeeId\":\"EMP001\",\"email\":\"admin@dayflow.com\",\"password\":\"admin123\",\"role\":\"admin\",\"firstName\":\"Sarah\",\"salary\":120000,\"accountApproved\":true,\"createdAt\":\"2020-01-15T00:00:00Z\"}]",
  "dayflow_attendance": [
    {"id": "att-emp-002-2025-03-03", "employeeId": "EMP002", "date": "2025-03-03", "checkIn": "09:00", "checkOut": "18:00", "status": "Present", "hoursWorked": 9}
  ],
  "dayflow_leave_requests": "not json",
  "dayflow_payroll": [],
  "something_else": 1
}`

func TestImport_LegacyDump(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()

	report, err := Import(ctx, store, strings.NewReader(legacyDump), Options{HashPassword: fakeHash, Location: time.UTC})
	require.NoError(t, err)

	assert.True(t, report.Failed())
	assert.ErrorIs(t, report[record.LeaveRequests], record.ErrCorruptCollection)
	assert.NoError(t, report[record.Users])
	assert.NoError(t, report[record.Attendance])
	assert.NoError(t, report[record.Payroll])
	_, listed := report[record.SalaryRequests]
	assert.False(t, listed)

	users := recordstore.NewUserRepository(store)
	admin, err := users.GetByEmail(ctx, "admin@dayflow.com")
	require.NoError(t, err)
	assert.Equal(t, "hashed:admin123", admin.PasswordHash)
	assert.Equal(t, int64(120000), admin.Salary)
	assert.Equal(t, int64(1), admin.Version)

	attendance, err := recordstore.NewAttendanceRepository(store).GetByEmployeeAndDate(ctx, "EMP002", "2025-03-03")
	require.NoError(t, err)
	require.NotNil(t, attendance.CheckIn)
	assert.Equal(t, time.Date(2025, 3, 3, 9, 0, 0, 0, time.UTC), attendance.CheckIn.UTC())
}

func TestImport_RejectsBrokenInput(t *testing.T) {
	ctx := context.Background()

	_, err := Import(ctx, memory.NewStore(), strings.NewReader("[1,2"), Options{})
	assert.Error(t, err)

	report, err := Import(ctx, memory.NewStore(), strings.NewReader(`{"dayflow_users":[{"email":"x@y.z"}]}`), Options{})
	require.NoError(t, err)
	assert.ErrorIs(t, report[record.Users], record.ErrCorruptCollection)

	report, err = Import(ctx, memory.NewStore(), strings.NewReader(`{"dayflow_users":[{"id":"u-1","password":"p"}]}`), Options{})
	require.NoError(t, err)
	assert.ErrorIs(t, report[record.Users], record.ErrCorruptCollection)
}

func TestExport_RoundTrip(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	_, err := Import(ctx, store, strings.NewReader(legacyDump), Options{HashPassword: fakeHash})
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, Export(ctx, store, &buf))

	var out map[string][]map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &out))
	assert.Len(t, out, len(record.Collections()))
	require.Len(t, out[string(record.Users)], 1)
	assert.Equal(t, "hashed:admin123", out[string(record.Users)][0]["passwordHash"])
	assert.NotContains(t, out[string(record.Users)][0], "password")
	assert.Empty(t, out[string(record.SalaryRequests)])

	again := memory.NewStore()
	report, err := Import(ctx, again, bytes.NewReader(buf.Bytes()), Options{})
	require.NoError(t, err)
	assert.False(t, report.Failed())
}
