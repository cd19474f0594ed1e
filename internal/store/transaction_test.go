package store_test

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mochi-hq/mochi-api/internal/store"
)

// txRecorder is a minimal database/sql driver that records transaction
// outcomes so commit and rollback behavior can be asserted without a
// real database.
type txRecorder struct {
	commits   atomic.Int32
	rollbacks atomic.Int32
}

func (d *txRecorder) Open(name string) (driver.Conn, error) {
	return &txRecorderConn{driver: d}, nil
}

type txRecorderConn struct {
	driver *txRecorder
}

func (c *txRecorderConn) Prepare(query string) (driver.Stmt, error) {
	return nil, errors.New("statements not supported")
}

func (c *txRecorderConn) Close() error { return nil }

func (c *txRecorderConn) Begin() (driver.Tx, error) {
	return &txRecorderTx{driver: c.driver}, nil
}

type txRecorderTx struct {
	driver *txRecorder
}

func (t *txRecorderTx) Commit() error {
	t.driver.commits.Add(1)
	return nil
}

func (t *txRecorderTx) Rollback() error {
	t.driver.rollbacks.Add(1)
	return nil
}

func newRecordedDB(t *testing.T, name string) (*sql.DB, *txRecorder) {
	t.Helper()
	recorder := &txRecorder{}
	sql.Register(name, recorder)
	db, err := sql.Open(name, "")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db, recorder
}

func TestRunInTransactionCommitsOnSuccess(t *testing.T) {
	db, recorder := newRecordedDB(t, "txrecorder-commit")

	var ran bool
	err := store.RunInTransaction(context.Background(), db, func(ctx context.Context, tx *sql.Tx) error {
		ran = true
		return nil
	})

	require.NoError(t, err)
	assert.True(t, ran)
	assert.Equal(t, int32(1), recorder.commits.Load())
	assert.Equal(t, int32(0), recorder.rollbacks.Load())
}

func TestRunInTransactionRollsBackOnError(t *testing.T) {
	db, recorder := newRecordedDB(t, "txrecorder-rollback")

	boom := errors.New("constraint violated")
	err := store.RunInTransaction(context.Background(), db, func(ctx context.Context, tx *sql.Tx) error {
		return boom
	})

	assert.ErrorIs(t, err, boom)
	assert.Equal(t, int32(0), recorder.commits.Load())
	assert.Equal(t, int32(1), recorder.rollbacks.Load())
}

func TestRunInTransactionRollsBackOnPanic(t *testing.T) {
	db, recorder := newRecordedDB(t, "txrecorder-panic")

	assert.Panics(t, func() {
		_ = store.RunInTransaction(context.Background(), db, func(ctx context.Context, tx *sql.Tx) error {
			panic("worker died")
		})
	})

	assert.Equal(t, int32(0), recorder.commits.Load())
	assert.Equal(t, int32(1), recorder.rollbacks.Load())
}
