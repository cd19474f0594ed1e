package postgres_test

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mochi-hq/mochi-api/internal/domain"
	"github.com/mochi-hq/mochi-api/internal/platform/postgres"
	"github.com/mochi-hq/mochi-api/internal/store"
)

// fakeResult implements sql.Result for stubbed Exec calls.
type fakeResult struct {
	rowsAffected int64
}

func (r fakeResult) LastInsertId() (int64, error) { return 0, nil }
func (r fakeResult) RowsAffected() (int64, error) { return r.rowsAffected, nil }

// stubDB implements store.DBTX with canned Exec outcomes. Query paths
// are covered by the database integration tests.
type stubDB struct {
	execErr    error
	execResult sql.Result
}

func (s *stubDB) ExecContext(
	ctx context.Context,
	query string,
	args ...any,
) (sql.Result, error) {
	if s.execErr != nil {
		return nil, s.execErr
	}
	return s.execResult, nil
}

func (s *stubDB) PrepareContext(ctx context.Context, query string) (*sql.Stmt, error) {
	return nil, errors.New("not supported")
}

func (s *stubDB) QueryContext(
	ctx context.Context,
	query string,
	args ...any,
) (*sql.Rows, error) {
	return nil, errors.New("not supported")
}

func (s *stubDB) QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row {
	return nil
}

func TestLinkGenericLogicErrorMapping(t *testing.T) {
	t.Parallel()

	cardID := uuid.New()
	logicID := uuid.New()

	t.Run("unique violation maps to already linked", func(t *testing.T) {
		t.Parallel()

		db := &stubDB{execErr: &pgconn.PgError{Code: "23505"}}
		cardStore := postgres.NewPostgresCardStore(db, nil)

		_, err := cardStore.LinkGenericLogic(context.Background(), cardID, logicID)
		require.Error(t, err)
		assert.ErrorIs(t, err, store.ErrLogicAlreadyLinked)
		assert.Equal(t, domain.ConditionWithID(logicID), store.ConditionOf(err))
	})

	t.Run("foreign key violation maps to card not exists", func(t *testing.T) {
		t.Parallel()

		db := &stubDB{execErr: &pgconn.PgError{Code: "23503"}}
		cardStore := postgres.NewPostgresCardStore(db, nil)

		_, err := cardStore.LinkGenericLogic(context.Background(), cardID, logicID)
		require.Error(t, err)
		assert.ErrorIs(t, err, store.ErrCardNotExists)
		assert.Equal(t, domain.ConditionWithID(cardID), store.ConditionOf(err))
	})

	t.Run("other driver errors become persist errors", func(t *testing.T) {
		t.Parallel()

		driverErr := errors.New("connection reset")
		db := &stubDB{execErr: driverErr}
		cardStore := postgres.NewPostgresCardStore(db, nil)

		_, err := cardStore.LinkGenericLogic(context.Background(), cardID, logicID)
		require.Error(t, err)

		var persistErr *store.PersistError
		require.ErrorAs(t, err, &persistErr)
		assert.Equal(t, store.OpLinkLogic, persistErr.Op)
		assert.ErrorIs(t, err, driverErr)
	})

	t.Run("success returns the card id", func(t *testing.T) {
		t.Parallel()

		db := &stubDB{execResult: fakeResult{rowsAffected: 1}}
		cardStore := postgres.NewPostgresCardStore(db, nil)

		got, err := cardStore.LinkGenericLogic(context.Background(), cardID, logicID)
		require.NoError(t, err)
		assert.Equal(t, cardID, got)
	})
}

func TestUnlinkGenericLogicErrorMapping(t *testing.T) {
	t.Parallel()

	cardID := uuid.New()
	logicID := uuid.New()

	t.Run("zero rows affected maps to link not found", func(t *testing.T) {
		t.Parallel()

		db := &stubDB{execResult: fakeResult{rowsAffected: 0}}
		cardStore := postgres.NewPostgresCardStore(db, nil)

		_, err := cardStore.UnlinkGenericLogic(context.Background(), cardID, logicID)
		require.Error(t, err)
		assert.ErrorIs(t, err, store.ErrLinkNotFound)
		assert.Equal(
			t,
			domain.ConditionWithIDs([]uuid.UUID{cardID, logicID}),
			store.ConditionOf(err),
		)
	})

	t.Run("success returns the card id", func(t *testing.T) {
		t.Parallel()

		db := &stubDB{execResult: fakeResult{rowsAffected: 1}}
		cardStore := postgres.NewPostgresCardStore(db, nil)

		got, err := cardStore.UnlinkGenericLogic(context.Background(), cardID, logicID)
		require.NoError(t, err)
		assert.Equal(t, cardID, got)
	})
}

func TestDeleteErrorMapping(t *testing.T) {
	t.Parallel()

	id := uuid.New()

	t.Run("zero rows affected maps to card not found", func(t *testing.T) {
		t.Parallel()

		db := &stubDB{execResult: fakeResult{rowsAffected: 0}}
		cardStore := postgres.NewPostgresCardStore(db, nil)

		err := cardStore.Delete(context.Background(), id)
		require.Error(t, err)
		assert.ErrorIs(t, err, store.ErrCardNotFound)
	})

	t.Run("driver failure becomes a persist error", func(t *testing.T) {
		t.Parallel()

		db := &stubDB{execErr: errors.New("disk full")}
		cardStore := postgres.NewPostgresCardStore(db, nil)

		err := cardStore.Delete(context.Background(), id)
		require.Error(t, err)

		var persistErr *store.PersistError
		require.ErrorAs(t, err, &persistErr)
		assert.Equal(t, store.OpDeleteCard, persistErr.Op)
	})
}

func TestCreateValidatesCard(t *testing.T) {
	t.Parallel()

	db := &stubDB{execResult: fakeResult{rowsAffected: 1}}
	cardStore := postgres.NewPostgresCardStore(db, nil)

	err := cardStore.Create(context.Background(), &domain.Card{ID: uuid.New(), Name: ""})
	assert.ErrorIs(t, err, domain.ErrValidation)
}
