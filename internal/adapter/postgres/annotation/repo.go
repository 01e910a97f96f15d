// Package annotation implements the feedback Annotation repository using PostgreSQL.
package annotation

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

// Repo provides annotation persistence backed by PostgreSQL.
type Repo struct {
	db postgres.Querier
}

// New creates a new annotation repository.
func New(db postgres.Querier) *Repo {
	return &Repo{db: db}
}

var columns = []string{
	"id", "document_id", "start_offset", "end_offset", "category", "severity", "message",
	"suggestion", "rewritten_version", "principle", "is_dismissed", "created_at",
}

type row struct {
	ID               uuid.UUID `db:"id"`
	DocumentID       uuid.UUID `db:"document_id"`
	StartOffset      int       `db:"start_offset"`
	EndOffset        int       `db:"end_offset"`
	Category         string    `db:"category"`
	Severity         string    `db:"severity"`
	Message          string    `db:"message"`
	Suggestion       *string   `db:"suggestion"`
	RewrittenVersion *string   `db:"rewritten_version"`
	Principle        *string   `db:"principle"`
	IsDismissed      bool      `db:"is_dismissed"`
	CreatedAt        time.Time `db:"created_at"`
}

// ---------------------------------------------------------------------------
// Read operations
// ---------------------------------------------------------------------------

// ListActive returns the non-dismissed annotations of a document ordered by
// start offset.
func (r *Repo) ListActive(ctx context.Context, documentID uuid.UUID) ([]domain.Annotation, error) {
	query, args, err := postgres.Builder.
		Select(columns...).
		From("annotations").
		Where(sq.Eq{"document_id": documentID, "is_dismissed": false}).
		OrderBy("start_offset ASC", "end_offset ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list annotations: %w", err)
	}

	var rows []row
	if err := pgxscan.Select(ctx, postgres.QuerierFromCtx(ctx, r.db), &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list annotations: %w", err)
	}

	out := make([]domain.Annotation, len(rows))
	for i, rw := range rows {
		out[i] = toDomain(rw)
	}
	return out, nil
}

// ---------------------------------------------------------------------------
// Write operations
// ---------------------------------------------------------------------------

// CreateBatch inserts annotations for a document in one statement.
func (r *Repo) CreateBatch(ctx context.Context, documentID uuid.UUID, items []domain.Annotation) ([]domain.Annotation, error) {
	if len(items) == 0 {
		return []domain.Annotation{}, nil
	}

	b := postgres.Builder.
		Insert("annotations").
		Columns("document_id", "start_offset", "end_offset", "category", "severity", "message",
			"suggestion", "rewritten_version", "principle")
	for _, a := range items {
		b = b.Values(documentID, a.StartOffset, a.EndOffset, a.Category, string(a.Severity), a.Message,
			a.Suggestion, a.RewrittenVersion, a.Principle)
	}

	query, args, err := b.Suffix("RETURNING " + strings.Join(columns, ", ")).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build create annotations: %w", err)
	}

	var rows []row
	if err := pgxscan.Select(ctx, postgres.QuerierFromCtx(ctx, r.db), &rows, query, args...); err != nil {
		return nil, postgres.MapError(err, "annotations for document", documentID)
	}

	out := make([]domain.Annotation, len(rows))
	for i, rw := range rows {
		out[i] = toDomain(rw)
	}
	return out, nil
}

const dismissSQL = `
UPDATE annotations a
SET is_dismissed = true
FROM documents d
WHERE a.id = $1 AND a.document_id = d.id AND d.session_id = $2`

// Dismiss soft-deletes an annotation. Dismissing twice is not an error.
// Returns domain.ErrNotFound if the annotation does not belong to the session.
func (r *Repo) Dismiss(ctx context.Context, sessionID, id uuid.UUID) error {
	tag, err := postgres.QuerierFromCtx(ctx, r.db).Exec(ctx, dismissSQL, id, sessionID)
	if err != nil {
		return postgres.MapError(err, "annotation", id)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("annotation %s: %w", id, domain.ErrNotFound)
	}
	return nil
}

const deleteByDocumentSQL = `DELETE FROM annotations WHERE document_id = $1`

// DeleteByDocument hard-deletes every annotation of a document and returns
// how many rows were removed.
func (r *Repo) DeleteByDocument(ctx context.Context, documentID uuid.UUID) (int64, error) {
	tag, err := postgres.QuerierFromCtx(ctx, r.db).Exec(ctx, deleteByDocumentSQL, documentID)
	if err != nil {
		return 0, postgres.MapError(err, "annotations for document", documentID)
	}
	return tag.RowsAffected(), nil
}

const deleteDismissedSQL = `DELETE FROM annotations WHERE is_dismissed AND created_at < $1`

// DeleteDismissedBefore purges dismissed annotations created before threshold.
func (r *Repo) DeleteDismissedBefore(ctx context.Context, threshold time.Time) (int64, error) {
	tag, err := postgres.QuerierFromCtx(ctx, r.db).Exec(ctx, deleteDismissedSQL, threshold)
	if err != nil {
		return 0, fmt.Errorf("delete dismissed annotations: %w", err)
	}
	return tag.RowsAffected(), nil
}

func toDomain(r row) domain.Annotation {
	return domain.Annotation{
		ID:               r.ID,
		DocumentID:       r.DocumentID,
		StartOffset:      r.StartOffset,
		EndOffset:        r.EndOffset,
		Category:         r.Category,
		Severity:         domain.Severity(r.Severity),
		Message:          r.Message,
		Suggestion:       r.Suggestion,
		RewrittenVersion: r.RewrittenVersion,
		Principle:        r.Principle,
		IsDismissed:      r.IsDismissed,
		CreatedAt:        r.CreatedAt,
	}
}
