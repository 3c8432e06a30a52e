package dbmetrics

import (
	"context"
	"database/sql"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordedQuery struct {
	operation string
	err       error
}

type fakeRecorder struct {
	mu      sync.Mutex
	queries []recordedQuery
}

func (r *fakeRecorder) RecordDBQuery(operation string, err error, _ time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.queries = append(r.queries, recordedQuery{operation: operation, err: err})
}

func (r *fakeRecorder) SetDBStats(sql.DBStats) {}

func (r *fakeRecorder) operations() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	ops := make([]string, 0, len(r.queries))
	for _, q := range r.queries {
		ops = append(ops, q.operation)
	}
	return ops
}

func newWrapped(t *testing.T) (*DB, sqlmock.Sqlmock, *fakeRecorder) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	rec := &fakeRecorder{}
	return Wrap(db, rec), mock, rec
}

func TestDB_RecordsOperations(t *testing.T) {
	db, mock, rec := newWrapped(t)
	ctx := context.Background()

	mock.ExpectPing()
	mock.ExpectExec("UPDATE appointments").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery("SELECT id FROM appointments").WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))

	require.NoError(t, db.PingContext(ctx))
	_, err := db.ExecContext(ctx, "UPDATE appointments SET status = $1", "confirmed")
	require.NoError(t, err)
	rows, err := db.QueryContext(ctx, "SELECT id FROM appointments")
	require.NoError(t, err)
	require.NoError(t, rows.Close())

	assert.Equal(t, []string{"ping", "exec", "query"}, rec.operations())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTx_OperationsArePrefixed(t *testing.T) {
	db, mock, rec := newWrapped(t)
	ctx := context.Background()

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO appointments").WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectQuery("SELECT id FROM appointments").WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))
	mock.ExpectCommit()

	tx, err := db.BeginTx(ctx, nil)
	require.NoError(t, err)

	_, err = tx.ExecContext(ctx, "INSERT INTO appointments (status) VALUES ($1)", "pending")
	require.NoError(t, err)
	rows, err := tx.QueryContext(ctx, "SELECT id FROM appointments")
	require.NoError(t, err)
	require.NoError(t, rows.Close())
	require.NoError(t, tx.Commit())

	assert.Equal(t, []string{"begin", "tx_exec", "tx_query", "commit"}, rec.operations())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTx_RollbackAfterCommitIsNil(t *testing.T) {
	db, mock, rec := newWrapped(t)
	ctx := context.Background()

	mock.ExpectBegin()
	mock.ExpectCommit()

	tx, err := db.BeginTx(ctx, nil)
	require.NoError(t, err)
	require.NoError(t, tx.Commit())

	// повторный Rollback после Commit получает sql.ErrTxDone и не считается ошибкой
	assert.NoError(t, tx.Rollback())

	require.Len(t, rec.queries, 3)
	assert.Equal(t, "rollback", rec.queries[2].operation)
	assert.NoError(t, rec.queries[2].err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTx_RollbackErrorIsRecorded(t *testing.T) {
	db, mock, rec := newWrapped(t)
	ctx := context.Background()

	mock.ExpectBegin()
	mock.ExpectRollback().WillReturnError(errors.New("connection lost"))

	tx, err := db.BeginTx(ctx, nil)
	require.NoError(t, err)

	assert.Error(t, tx.Rollback())
	require.Len(t, rec.queries, 2)
	assert.Equal(t, "rollback", rec.queries[1].operation)
	assert.Error(t, rec.queries[1].err)
}

func TestDB_BeginErrorIsRecorded(t *testing.T) {
	db, mock, rec := newWrapped(t)

	mock.ExpectBegin().WillReturnError(errors.New("too many connections"))

	tx, err := db.BeginTx(context.Background(), nil)
	assert.Error(t, err)
	assert.Nil(t, tx)
	assert.Equal(t, []string{"begin"}, rec.operations())
}

func TestDB_NilRecorderPassesThrough(t *testing.T) {
	raw, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = raw.Close() })

	db := Wrap(raw, nil)
	mock.ExpectExec("DELETE").WillReturnResult(sqlmock.NewResult(0, 0))

	_, err = db.ExecContext(context.Background(), "DELETE FROM appointments")
	assert.NoError(t, err)
}

func TestGetExecutor_PrefersTxFromContext(t *testing.T) {
	db, mock, _ := newWrapped(t)
	mock.ExpectBegin()

	tx, err := db.BeginTx(context.Background(), nil)
	require.NoError(t, err)

	assert.Same(t, db, GetExecutor(context.Background(), db))
	assert.Equal(t, tx, GetExecutor(WithTx(context.Background(), tx), db))
}
