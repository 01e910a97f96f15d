// Package progress implements persistence of progress metrics, writing
// patterns and analysis history using PostgreSQL.
package progress

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

// Repo provides progress persistence backed by PostgreSQL.
type Repo struct {
	db postgres.Querier
}

// New creates a new progress repository.
func New(db postgres.Querier) *Repo {
	return &Repo{db: db}
}

var metricColumns = []string{
	"id", "document_id", "session_id", "grammar_score", "clarity_score", "vocabulary_score", "overall_score", "created_at",
}

var patternColumns = []string{
	"id", "session_id", "pattern_type", "description", "occurrence_count", "last_occurrence_at", "is_mastered",
}

type metricRow struct {
	ID              uuid.UUID `db:"id"`
	DocumentID      uuid.UUID `db:"document_id"`
	SessionID       uuid.UUID `db:"session_id"`
	GrammarScore    float64   `db:"grammar_score"`
	ClarityScore    float64   `db:"clarity_score"`
	VocabularyScore float64   `db:"vocabulary_score"`
	OverallScore    float64   `db:"overall_score"`
	CreatedAt       time.Time `db:"created_at"`
}

type patternRow struct {
	ID               uuid.UUID `db:"id"`
	SessionID        uuid.UUID `db:"session_id"`
	PatternType      string    `db:"pattern_type"`
	Description      string    `db:"description"`
	OccurrenceCount  int       `db:"occurrence_count"`
	LastOccurrenceAt time.Time `db:"last_occurrence_at"`
	IsMastered       bool      `db:"is_mastered"`
}

// ---------------------------------------------------------------------------
// Metrics
// ---------------------------------------------------------------------------

// ListMetrics returns the session's metrics oldest first.
func (r *Repo) ListMetrics(ctx context.Context, sessionID uuid.UUID) ([]domain.ProgressMetric, error) {
	query, args, err := postgres.Builder.
		Select(metricColumns...).
		From("progress_metrics").
		Where(sq.Eq{"session_id": sessionID}).
		OrderBy("created_at ASC", "id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list metrics: %w", err)
	}

	var rows []metricRow
	if err := pgxscan.Select(ctx, postgres.QuerierFromCtx(ctx, r.db), &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list progress_metrics: %w", err)
	}

	out := make([]domain.ProgressMetric, len(rows))
	for i, rw := range rows {
		out[i] = toDomainMetric(rw)
	}
	return out, nil
}

// CreateMetric records one scoring snapshot.
func (r *Repo) CreateMetric(ctx context.Context, m domain.ProgressMetric) (*domain.ProgressMetric, error) {
	query, args, err := postgres.Builder.
		Insert("progress_metrics").
		Columns("document_id", "session_id", "grammar_score", "clarity_score", "vocabulary_score", "overall_score").
		Values(m.DocumentID, m.SessionID, m.GrammarScore, m.ClarityScore, m.VocabularyScore, m.OverallScore).
		Suffix("RETURNING " + joinColumns(metricColumns)).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build create metric: %w", err)
	}

	var dst metricRow
	if err := pgxscan.Get(ctx, postgres.QuerierFromCtx(ctx, r.db), &dst, query, args...); err != nil {
		return nil, postgres.MapError(err, "progress_metric for document", m.DocumentID)
	}
	out := toDomainMetric(dst)
	return &out, nil
}

// ---------------------------------------------------------------------------
// Patterns
// ---------------------------------------------------------------------------

// ListPatterns returns the session's patterns, most frequent first.
func (r *Repo) ListPatterns(ctx context.Context, sessionID uuid.UUID) ([]domain.WritingPattern, error) {
	query, args, err := postgres.Builder.
		Select(patternColumns...).
		From("writing_patterns").
		Where(sq.Eq{"session_id": sessionID}).
		OrderBy("occurrence_count DESC", "last_occurrence_at DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list patterns: %w", err)
	}

	var rows []patternRow
	if err := pgxscan.Select(ctx, postgres.QuerierFromCtx(ctx, r.db), &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list writing_patterns: %w", err)
	}

	out := make([]domain.WritingPattern, len(rows))
	for i, rw := range rows {
		out[i] = toDomainPattern(rw)
	}
	return out, nil
}

// UpsertPattern records one occurrence of a pattern. A known pattern type has
// its occurrence count incremented and last occurrence stamped.
func (r *Repo) UpsertPattern(ctx context.Context, sessionID uuid.UUID, p domain.DetectedPattern) (*domain.WritingPattern, error) {
	query, args, err := postgres.Builder.
		Insert("writing_patterns").
		Columns("session_id", "pattern_type", "description", "occurrence_count", "last_occurrence_at").
		Values(sessionID, domain.NormalizeText(p.PatternType), p.Description, 1, sq.Expr("now()")).
		Suffix(`ON CONFLICT (session_id, pattern_type) DO UPDATE SET
			occurrence_count = writing_patterns.occurrence_count + 1,
			last_occurrence_at = now(),
			description = EXCLUDED.description
			RETURNING ` + joinColumns(patternColumns)).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build upsert pattern: %w", err)
	}

	var dst patternRow
	if err := pgxscan.Get(ctx, postgres.QuerierFromCtx(ctx, r.db), &dst, query, args...); err != nil {
		return nil, postgres.MapError(err, "writing_pattern for session", sessionID)
	}
	out := toDomainPattern(dst)
	return &out, nil
}

// ---------------------------------------------------------------------------
// History
// ---------------------------------------------------------------------------

const recordAnalysisSQL = `
INSERT INTO analysis_history (document_id, session_id, summary, raw_response)
VALUES ($1, $2, $3, $4)`

// RecordAnalysis keeps the raw analysis response for later inspection.
func (r *Repo) RecordAnalysis(ctx context.Context, sessionID, documentID uuid.UUID, summary string, raw []byte) error {
	var payload any
	if len(raw) > 0 {
		payload = string(raw)
	}
	_, err := postgres.QuerierFromCtx(ctx, r.db).Exec(ctx, recordAnalysisSQL, documentID, sessionID, summary, payload)
	if err != nil {
		return postgres.MapError(err, "analysis_history for document", documentID)
	}
	return nil
}

// ---------------------------------------------------------------------------
// Mapping helpers
// ---------------------------------------------------------------------------

func joinColumns(cols []string) string {
	return strings.Join(cols, ", ")
}

func toDomainMetric(r metricRow) domain.ProgressMetric {
	return domain.ProgressMetric{
		ID:              r.ID,
		DocumentID:      r.DocumentID,
		SessionID:       r.SessionID,
		GrammarScore:    r.GrammarScore,
		ClarityScore:    r.ClarityScore,
		VocabularyScore: r.VocabularyScore,
		OverallScore:    r.OverallScore,
		CreatedAt:       r.CreatedAt,
	}
}

func toDomainPattern(r patternRow) domain.WritingPattern {
	return domain.WritingPattern{
		ID:               r.ID,
		SessionID:        r.SessionID,
		PatternType:      r.PatternType,
		Description:      r.Description,
		OccurrenceCount:  r.OccurrenceCount,
		LastOccurrenceAt: r.LastOccurrenceAt,
		IsMastered:       r.IsMastered,
	}
}
