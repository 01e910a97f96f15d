// Package document implements the Document repository using PostgreSQL.
package document

import (
	"context"
	"fmt"
	"strings"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/google/uuid"

	"github.com/heartmarshall/writemate-backend/internal/adapter/postgres"
	"github.com/heartmarshall/writemate-backend/internal/domain"
)

// Repo provides document persistence backed by PostgreSQL. Every query is
// scoped by session; a document of another session reads as not found.
type Repo struct {
	db postgres.Querier
}

// New creates a new document repository.
func New(db postgres.Querier) *Repo {
	return &Repo{db: db}
}

var columns = []string{
	"id", "session_id", "title", "content", "content_html", "word_count", "status", "created_at", "updated_at",
}

type row struct {
	ID          uuid.UUID `db:"id"`
	SessionID   uuid.UUID `db:"session_id"`
	Title       string    `db:"title"`
	Content     string    `db:"content"`
	ContentHTML string    `db:"content_html"`
	WordCount   int       `db:"word_count"`
	Status      string    `db:"status"`
	CreatedAt   time.Time `db:"created_at"`
	UpdatedAt   time.Time `db:"updated_at"`
}

// ---------------------------------------------------------------------------
// Read operations
// ---------------------------------------------------------------------------

// GetByID returns a document of the session.
func (r *Repo) GetByID(ctx context.Context, sessionID, id uuid.UUID) (*domain.Document, error) {
	query, args, err := postgres.Builder.
		Select(columns...).
		From("documents").
		Where(sq.Eq{"id": id, "session_id": sessionID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get document: %w", err)
	}

	var dst row
	if err := pgxscan.Get(ctx, postgres.QuerierFromCtx(ctx, r.db), &dst, query, args...); err != nil {
		return nil, postgres.MapError(err, "document", id)
	}
	doc := toDomain(dst)
	return &doc, nil
}

// ListBySession returns the session's documents, most recently touched first.
func (r *Repo) ListBySession(ctx context.Context, sessionID uuid.UUID) ([]domain.Document, error) {
	query, args, err := postgres.Builder.
		Select(columns...).
		From("documents").
		Where(sq.Eq{"session_id": sessionID}).
		OrderBy("updated_at DESC", "id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list documents: %w", err)
	}

	var rows []row
	if err := pgxscan.Select(ctx, postgres.QuerierFromCtx(ctx, r.db), &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list documents: %w", err)
	}

	docs := make([]domain.Document, len(rows))
	for i, rw := range rows {
		docs[i] = toDomain(rw)
	}
	return docs, nil
}

// ---------------------------------------------------------------------------
// Write operations
// ---------------------------------------------------------------------------

// Create inserts an empty draft document with the given title.
func (r *Repo) Create(ctx context.Context, sessionID uuid.UUID, title string) (*domain.Document, error) {
	query, args, err := postgres.Builder.
		Insert("documents").
		Columns("session_id", "title", "content", "content_html", "word_count", "status").
		Values(sessionID, title, "", "", 0, string(domain.DocumentStatusDraft)).
		Suffix("RETURNING " + returning()).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build create document: %w", err)
	}

	var dst row
	if err := pgxscan.Get(ctx, postgres.QuerierFromCtx(ctx, r.db), &dst, query, args...); err != nil {
		return nil, postgres.MapError(err, "document", uuid.Nil)
	}
	doc := toDomain(dst)
	return &doc, nil
}

// Update applies a partial update, stamps updated_at and returns the stored row.
func (r *Repo) Update(ctx context.Context, sessionID, id uuid.UUID, upd domain.DocumentUpdate) (*domain.Document, error) {
	if upd.IsEmpty() {
		return nil, domain.NewValidationError("update", "no fields to update")
	}

	b := postgres.Builder.Update("documents")
	if upd.Title != nil {
		b = b.Set("title", *upd.Title)
	}
	if upd.Content != nil {
		b = b.Set("content", *upd.Content)
	}
	if upd.ContentHTML != nil {
		b = b.Set("content_html", *upd.ContentHTML)
	}
	if upd.WordCount != nil {
		b = b.Set("word_count", *upd.WordCount)
	}
	if upd.Status != nil {
		b = b.Set("status", string(*upd.Status))
	}

	query, args, err := b.
		Set("updated_at", sq.Expr("now()")).
		Where(sq.Eq{"id": id, "session_id": sessionID}).
		Suffix("RETURNING " + returning()).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build update document: %w", err)
	}

	var dst row
	if err := pgxscan.Get(ctx, postgres.QuerierFromCtx(ctx, r.db), &dst, query, args...); err != nil {
		return nil, postgres.MapError(err, "document", id)
	}
	doc := toDomain(dst)
	return &doc, nil
}

const deleteSQL = `DELETE FROM documents WHERE id = $1 AND session_id = $2`

// Delete removes a document; its annotations and metrics cascade.
func (r *Repo) Delete(ctx context.Context, sessionID, id uuid.UUID) error {
	tag, err := postgres.QuerierFromCtx(ctx, r.db).Exec(ctx, deleteSQL, id, sessionID)
	if err != nil {
		return postgres.MapError(err, "document", id)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("document %s: %w", id, domain.ErrNotFound)
	}
	return nil
}

// ---------------------------------------------------------------------------
// Mapping helpers
// ---------------------------------------------------------------------------

func returning() string {
	return strings.Join(columns, ", ")
}

func toDomain(r row) domain.Document {
	return domain.Document{
		ID:          r.ID,
		SessionID:   r.SessionID,
		Title:       r.Title,
		Content:     r.Content,
		ContentHTML: r.ContentHTML,
		WordCount:   r.WordCount,
		Status:      domain.DocumentStatus(r.Status),
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
}
