package document

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	pgxmock "github.com/pashagolub/pgxmock/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heartmarshall/writemate-backend/internal/adapter/postgres/testhelper"
	"github.com/heartmarshall/writemate-backend/internal/domain"
)

func newMock(t *testing.T) pgxmock.PgxPoolIface {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)
	return mock
}

func docRow(id, sessionID uuid.UUID, title string, updated time.Time) []any {
	return []any{id, sessionID, title, "", "", 0, "draft", updated, updated}
}

func ptr[T any](v T) *T { return &v }

func TestRepo_ListBySession(t *testing.T) {
	t.Parallel()

	mock := newMock(t)
	sessionID := uuid.New()
	now := time.Now()
	rows := pgxmock.NewRows(columns).
		AddRow(docRow(uuid.New(), sessionID, "newest", now)...).
		AddRow(docRow(uuid.New(), sessionID, "older", now.Add(-time.Hour))...)
	mock.ExpectQuery(`SELECT .+ FROM documents WHERE session_id = \$1 ORDER BY updated_at DESC`).
		WithArgs(sessionID).
		WillReturnRows(rows)

	docs, err := New(mock).ListBySession(context.Background(), sessionID)

	require.NoError(t, err)
	require.Len(t, docs, 2)
	assert.Equal(t, "newest", docs[0].Title)
	assert.Equal(t, domain.DocumentStatusDraft, docs[1].Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepo_GetByID_OtherSessionIsNotFound(t *testing.T) {
	t.Parallel()

	mock := newMock(t)
	mock.ExpectQuery(`FROM documents WHERE id = \$1 AND session_id = \$2`).
		WithArgs(pgxmock.AnyArg(), pgxmock.AnyArg()).
		WillReturnError(pgx.ErrNoRows)

	_, err := New(mock).GetByID(context.Background(), uuid.New(), uuid.New())

	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepo_Update_OnlySetsProvidedFields(t *testing.T) {
	t.Parallel()

	mock := newMock(t)
	sessionID, id := uuid.New(), uuid.New()
	now := time.Now()
	mock.ExpectQuery(`UPDATE documents SET title = \$1, updated_at = now\(\) WHERE id = \$2 AND session_id = \$3 RETURNING`).
		WithArgs("Renamed", id, sessionID).
		WillReturnRows(pgxmock.NewRows(columns).AddRow(docRow(id, sessionID, "Renamed", now)...))

	doc, err := New(mock).Update(context.Background(), sessionID, id, domain.DocumentUpdate{Title: ptr("Renamed")})

	require.NoError(t, err)
	assert.Equal(t, "Renamed", doc.Title)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepo_Update_Empty(t *testing.T) {
	t.Parallel()

	mock := newMock(t)

	_, err := New(mock).Update(context.Background(), uuid.New(), uuid.New(), domain.DocumentUpdate{})

	assert.ErrorIs(t, err, domain.ErrValidation)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepo_Delete_Missing(t *testing.T) {
	t.Parallel()

	mock := newMock(t)
	mock.ExpectExec(`DELETE FROM documents`).
		WithArgs(pgxmock.AnyArg(), pgxmock.AnyArg()).
		WillReturnResult(pgxmock.NewResult("DELETE", 0))

	err := New(mock).Delete(context.Background(), uuid.New(), uuid.New())

	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// ---------------------------------------------------------------------------
// Integration
// ---------------------------------------------------------------------------

func TestRepo_Lifecycle_Integration(t *testing.T) {
	pool := testhelper.SetupTestDB(t)
	repo := New(pool)
	ctx := context.Background()
	sessionID := testhelper.SeedSession(t, pool)

	first, err := repo.Create(ctx, sessionID, "First")
	require.NoError(t, err)
	assert.Equal(t, domain.DocumentStatusDraft, first.Status)
	assert.Equal(t, 0, first.WordCount)

	second, err := repo.Create(ctx, sessionID, "Second")
	require.NoError(t, err)

	// Touching the first document moves it to the front.
	time.Sleep(5 * time.Millisecond)
	updated, err := repo.Update(ctx, sessionID, first.ID, domain.DocumentUpdate{
		Content:   ptr("hello there world"),
		WordCount: ptr(3),
		Status:    ptr(domain.DocumentStatusAnalyzed),
	})
	require.NoError(t, err)
	assert.Equal(t, "First", updated.Title)
	assert.Equal(t, 3, updated.WordCount)
	assert.True(t, updated.UpdatedAt.After(first.UpdatedAt))

	docs, err := repo.ListBySession(ctx, sessionID)
	require.NoError(t, err)
	require.Len(t, docs, 2)
	assert.Equal(t, first.ID, docs[0].ID)
	assert.Equal(t, second.ID, docs[1].ID)

	other := testhelper.SeedSession(t, pool)
	_, err = repo.GetByID(ctx, other, first.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	require.NoError(t, repo.Delete(ctx, sessionID, second.ID))
	assert.ErrorIs(t, repo.Delete(ctx, sessionID, second.ID), domain.ErrNotFound)
}
