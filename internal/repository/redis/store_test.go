package redis

import (
	"context"
	"encoding/json"
	"sync"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/dayflow-hr/hrms-backend-go/internal/domain/record"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T, prefix string) (*miniredis.Miniredis, *Store) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	return mr, NewStore(rdb, prefix)
}

func TestStore_RoundTripKeepsOrder(t *testing.T) {
	ctx := context.Background()
	_, s := newTestStore(t, "")

	in := []record.Document{
		{ID: "u2", Data: json.RawMessage(`{"employeeId":"EMP002"}`)},
		{ID: "u1", Data: json.RawMessage(`{"employeeId":"EMP001"}`)},
	}
	require.NoError(t, s.Replace(ctx, record.Users, in))

	out, err := s.List(ctx, record.Users)
	require.NoError(t, err)
	require.Len(t, out, 2)
	assert.Equal(t, "u2", out[0].ID)
	assert.Equal(t, "u1", out[1].ID)
	assert.JSONEq(t, `{"employeeId":"EMP001"}`, string(out[1].Data))
}

func TestStore_UsesNamespacedKey(t *testing.T) {
	ctx := context.Background()
	mr, s := newTestStore(t, "hr:")

	_, err := s.Upsert(ctx, record.LeaveRequests, record.Document{ID: "l1", Data: json.RawMessage(`{}`)})
	require.NoError(t, err)

	assert.True(t, mr.Exists("hr:dayflow_leave_requests"))
	assert.False(t, mr.Exists("dayflow_leave_requests"))
}

func TestStore_CorruptCollectionIsIsolated(t *testing.T) {
	ctx := context.Background()
	mr, s := newTestStore(t, "")

	require.NoError(t, mr.Set("dayflow_attendance", "not json"))
	require.NoError(t, s.Replace(ctx, record.Users, []record.Document{{ID: "u1", Data: json.RawMessage(`{}`)}}))

	_, err := s.List(ctx, record.Attendance)
	assert.ErrorIs(t, err, record.ErrCorruptCollection)

	_, err = s.Upsert(ctx, record.Attendance, record.Document{ID: "a1", Data: json.RawMessage(`{}`)})
	assert.ErrorIs(t, err, record.ErrCorruptCollection)

	users, err := s.List(ctx, record.Users)
	require.NoError(t, err)
	assert.Len(t, users, 1)
}

func TestStore_UpsertAndDelete(t *testing.T) {
	ctx := context.Background()
	_, s := newTestStore(t, "")

	created, err := s.Upsert(ctx, record.SalaryRequests, record.Document{ID: "s1", Data: json.RawMessage(`{"status":"Pending"}`)})
	require.NoError(t, err)
	assert.Equal(t, int64(1), created.Version)

	created.Data = json.RawMessage(`{"status":"Approved"}`)
	updated, err := s.Upsert(ctx, record.SalaryRequests, created)
	require.NoError(t, err)
	assert.Equal(t, int64(2), updated.Version)

	_, err = s.Upsert(ctx, record.SalaryRequests, created)
	assert.ErrorIs(t, err, record.ErrVersionConflict)

	found, err := s.Find(ctx, record.SalaryRequests, "s1")
	require.NoError(t, err)
	assert.JSONEq(t, `{"status":"Approved"}`, string(found.Data))

	require.NoError(t, s.Delete(ctx, record.SalaryRequests, "s1"))
	assert.ErrorIs(t, s.Delete(ctx, record.SalaryRequests, "s1"), record.ErrNotFound)
	_, err = s.Find(ctx, record.SalaryRequests, "s1")
	assert.ErrorIs(t, err, record.ErrNotFound)
}

func TestStore_ConcurrentInsertsAllLand(t *testing.T) {
	ctx := context.Background()
	_, s := newTestStore(t, "")

	var wg sync.WaitGroup
	ids := []string{"a", "b", "c", "d", "e"}
	errs := make([]error, len(ids))
	for i, id := range ids {
		wg.Add(1)
		go func(i int, id string) {
			defer wg.Done()
			_, errs[i] = s.Upsert(ctx, record.Payroll, record.Document{ID: id, Data: json.RawMessage(`{}`)})
		}(i, id)
	}
	wg.Wait()

	out, err := s.List(ctx, record.Payroll)
	require.NoError(t, err)

	landed := 0
	for _, e := range errs {
		if e == nil {
			landed++
		}
	}
	assert.Equal(t, landed, len(out))
}
