package postgresql

import (
	"context"
	"encoding/json"
	"errors"
	"regexp"
	"testing"

	"github.com/dayflow-hr/hrms-backend-go/internal/domain/record"
	"github.com/dayflow-hr/hrms-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
	pgxmock "github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMockStore(t *testing.T) (pgxmock.PgxPoolIface, record.Store) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)
	return mock, NewRecordStore(database.New(mock))
}

func TestRecordStore_List(t *testing.T) {
	mock, store := newMockStore(t)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, version, data")).
		WithArgs("dayflow_users").
		WillReturnRows(pgxmock.NewRows([]string{"id", "version", "data"}).
			AddRow("u1", int64(1), []byte(`{"email":"a@dayflow.com"}`)).
			AddRow("u2", int64(4), []byte(`{"email":"b@dayflow.com"}`)))

	docs, err := store.List(context.Background(), record.Users)
	require.NoError(t, err)
	require.Len(t, docs, 2)
	assert.Equal(t, "u1", docs[0].ID)
	assert.Equal(t, int64(4), docs[1].Version)
	assert.JSONEq(t, `{"email":"b@dayflow.com"}`, string(docs[1].Data))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRecordStore_ReplaceRunsInTransaction(t *testing.T) {
	mock, store := newMockStore(t)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM records WHERE collection = $1")).
		WithArgs("dayflow_payroll").
		WillReturnResult(pgxmock.NewResult("DELETE", 3))
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO records (collection, id, version, data)")).
		WithArgs("dayflow_payroll", "p1", int64(1), []byte(`{"netSalary":"70350"}`)).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mock.ExpectCommit()

	err := store.Replace(context.Background(), record.Payroll, []record.Document{
		{ID: "p1", Data: json.RawMessage(`{"netSalary":"70350"}`)},
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRecordStore_ReplaceRollsBackOnInsertError(t *testing.T) {
	mock, store := newMockStore(t)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM records")).
		WithArgs("dayflow_payroll").
		WillReturnResult(pgxmock.NewResult("DELETE", 0))
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO records")).
		WithArgs("dayflow_payroll", "p1", int64(1), []byte(`{}`)).
		WillReturnError(errors.New("disk full"))
	mock.ExpectRollback()

	err := store.Replace(context.Background(), record.Payroll, []record.Document{{ID: "p1", Data: json.RawMessage(`{}`)}})
	assert.ErrorContains(t, err, "disk full")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRecordStore_FindNotFound(t *testing.T) {
	mock, store := newMockStore(t)

	mock.ExpectQuery(regexp.QuoteMeta("WHERE collection = $1 AND id = $2")).
		WithArgs("dayflow_users", "missing").
		WillReturnError(pgx.ErrNoRows)

	_, err := store.Find(context.Background(), record.Users, "missing")
	assert.ErrorIs(t, err, record.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRecordStore_UpsertInsert(t *testing.T) {
	mock, store := newMockStore(t)

	mock.ExpectQuery(regexp.QuoteMeta("ON CONFLICT (collection, id) DO NOTHING")).
		WithArgs("dayflow_attendance", "EMP002_2025-03-10", []byte(`{}`)).
		WillReturnRows(pgxmock.NewRows([]string{"version"}).AddRow(int64(1)))

	doc, err := store.Upsert(context.Background(), record.Attendance, record.Document{ID: "EMP002_2025-03-10", Data: json.RawMessage(`{}`)})
	require.NoError(t, err)
	assert.Equal(t, int64(1), doc.Version)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRecordStore_UpsertInsertDuplicate(t *testing.T) {
	mock, store := newMockStore(t)

	mock.ExpectQuery(regexp.QuoteMeta("ON CONFLICT (collection, id) DO NOTHING")).
		WithArgs("dayflow_attendance", "EMP002_2025-03-10", []byte(`{}`)).
		WillReturnError(pgx.ErrNoRows)

	_, err := store.Upsert(context.Background(), record.Attendance, record.Document{ID: "EMP002_2025-03-10", Data: json.RawMessage(`{}`)})
	assert.ErrorIs(t, err, record.ErrDuplicateID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRecordStore_UpsertUpdate(t *testing.T) {
	mock, store := newMockStore(t)

	mock.ExpectQuery(regexp.QuoteMeta("UPDATE records")).
		WithArgs("dayflow_leave_requests", "l1", int64(2), []byte(`{"status":"Approved"}`)).
		WillReturnRows(pgxmock.NewRows([]string{"version"}).AddRow(int64(3)))

	doc, err := store.Upsert(context.Background(), record.LeaveRequests, record.Document{
		ID: "l1", Version: 2, Data: json.RawMessage(`{"status":"Approved"}`),
	})
	require.NoError(t, err)
	assert.Equal(t, int64(3), doc.Version)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRecordStore_UpsertStaleVersion(t *testing.T) {
	tests := []struct {
		name    string
		exists  bool
		wantErr error
	}{
		{name: "row changed underneath", exists: true, wantErr: record.ErrVersionConflict},
		{name: "row deleted", exists: false, wantErr: record.ErrNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock, store := newMockStore(t)

			mock.ExpectQuery(regexp.QuoteMeta("UPDATE records")).
				WithArgs("dayflow_leave_requests", "l1", int64(1), []byte(`{}`)).
				WillReturnError(pgx.ErrNoRows)
			mock.ExpectQuery(regexp.QuoteMeta("SELECT EXISTS")).
				WithArgs("dayflow_leave_requests", "l1").
				WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(tt.exists))

			_, err := store.Upsert(context.Background(), record.LeaveRequests, record.Document{
				ID: "l1", Version: 1, Data: json.RawMessage(`{}`),
			})
			assert.ErrorIs(t, err, tt.wantErr)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestRecordStore_Delete(t *testing.T) {
	mock, store := newMockStore(t)

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM records WHERE collection = $1 AND id = $2")).
		WithArgs("dayflow_users", "u1").
		WillReturnResult(pgxmock.NewResult("DELETE", 1))
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM records WHERE collection = $1 AND id = $2")).
		WithArgs("dayflow_users", "u1").
		WillReturnResult(pgxmock.NewResult("DELETE", 0))

	require.NoError(t, store.Delete(context.Background(), record.Users, "u1"))
	assert.ErrorIs(t, store.Delete(context.Background(), record.Users, "u1"), record.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRecordStore_RejectsUnknownCollection(t *testing.T) {
	_, store := newMockStore(t)

	_, err := store.List(context.Background(), record.Collection("dayflow_user"))
	assert.ErrorIs(t, err, record.ErrUnknownCollection)
}
