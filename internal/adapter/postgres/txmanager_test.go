package postgres

import (
	"context"
	"errors"
	"testing"

	pgxmock "github.com/pashagolub/pgxmock/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMockPool(t *testing.T) pgxmock.PgxPoolIface {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)
	return mock
}

func TestRunInTx_Commit(t *testing.T) {
	t.Parallel()

	mock := newMockPool(t)
	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE documents`).WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	mock.ExpectCommit()

	tm := NewTxManager(mock)
	err := tm.RunInTx(context.Background(), func(ctx context.Context) error {
		_, err := QuerierFromCtx(ctx, mock).Exec(ctx, `UPDATE documents SET status = 'analyzed'`)
		return err
	})

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRunInTx_RollbackOnError(t *testing.T) {
	t.Parallel()

	mock := newMockPool(t)
	mock.ExpectBegin()
	mock.ExpectRollback()

	sentinel := errors.New("apply failed")
	tm := NewTxManager(mock)
	err := tm.RunInTx(context.Background(), func(ctx context.Context) error {
		return sentinel
	})

	require.ErrorIs(t, err, sentinel)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRunInTx_RollbackOnPanic(t *testing.T) {
	t.Parallel()

	mock := newMockPool(t)
	mock.ExpectBegin()
	mock.ExpectRollback()

	tm := NewTxManager(mock)
	assert.Panics(t, func() {
		_ = tm.RunInTx(context.Background(), func(ctx context.Context) error {
			panic("boom")
		})
	})
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRunInTx_NestedReusesOuter(t *testing.T) {
	t.Parallel()

	mock := newMockPool(t)
	mock.ExpectBegin()
	mock.ExpectCommit()

	tm := NewTxManager(mock)
	err := tm.RunInTx(context.Background(), func(ctx context.Context) error {
		outer := QuerierFromCtx(ctx, mock)
		return tm.RunInTx(ctx, func(inner context.Context) error {
			if QuerierFromCtx(inner, mock) != outer {
				return errors.New("nested call opened a new transaction")
			}
			return nil
		})
	})

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestQuerierFromCtx_FallsBackWithoutTx(t *testing.T) {
	t.Parallel()

	mock := newMockPool(t)
	assert.Equal(t, Querier(mock), QuerierFromCtx(context.Background(), mock))
}
