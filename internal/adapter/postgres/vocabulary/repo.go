// Package vocabulary implements the vocabulary bank repository using PostgreSQL.
package vocabulary

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

// Repo provides vocabulary persistence backed by PostgreSQL.
type Repo struct {
	db postgres.Querier
}

// New creates a new vocabulary repository.
func New(db postgres.Querier) *Repo {
	return &Repo{db: db}
}

var columns = []string{
	"id", "session_id", "word", "word_normalized", "definition", "part_of_speech",
	"example_sentence", "is_learned", "review_count", "created_at",
}

type row struct {
	ID              uuid.UUID `db:"id"`
	SessionID       uuid.UUID `db:"session_id"`
	Word            string    `db:"word"`
	WordNormalized  string    `db:"word_normalized"`
	Definition      string    `db:"definition"`
	PartOfSpeech    string    `db:"part_of_speech"`
	ExampleSentence *string   `db:"example_sentence"`
	IsLearned       bool      `db:"is_learned"`
	ReviewCount     int       `db:"review_count"`
	CreatedAt       time.Time `db:"created_at"`
}

var returning = "RETURNING " + strings.Join(columns, ", ")

// ListBySession returns the bank, newest first.
func (r *Repo) ListBySession(ctx context.Context, sessionID uuid.UUID) ([]domain.VocabularyWord, error) {
	query, args, err := postgres.Builder.
		Select(columns...).
		From("vocabulary_words").
		Where(sq.Eq{"session_id": sessionID}).
		OrderBy("created_at DESC", "id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list vocabulary: %w", err)
	}

	var rows []row
	if err := pgxscan.Select(ctx, postgres.QuerierFromCtx(ctx, r.db), &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list vocabulary_words: %w", err)
	}

	out := make([]domain.VocabularyWord, len(rows))
	for i, rw := range rows {
		out[i] = toDomain(rw)
	}
	return out, nil
}

// Create inserts a word. A word already in the session's bank yields
// domain.ErrAlreadyExists.
func (r *Repo) Create(ctx context.Context, w domain.VocabularyWord) (*domain.VocabularyWord, error) {
	query, args, err := postgres.Builder.
		Insert("vocabulary_words").
		Columns("session_id", "word", "word_normalized", "definition", "part_of_speech", "example_sentence").
		Values(w.SessionID, w.Word, domain.NormalizeText(w.Word), w.Definition, w.PartOfSpeech, w.ExampleSentence).
		Suffix(returning).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build create word: %w", err)
	}

	var dst row
	if err := pgxscan.Get(ctx, postgres.QuerierFromCtx(ctx, r.db), &dst, query, args...); err != nil {
		return nil, postgres.MapError(err, "vocabulary_word for session", w.SessionID)
	}
	out := toDomain(dst)
	return &out, nil
}

// Update applies a partial update to a word of the session.
func (r *Repo) Update(ctx context.Context, sessionID, id uuid.UUID, upd domain.VocabularyUpdate) (*domain.VocabularyWord, error) {
	if upd.IsEmpty() {
		return nil, domain.NewValidationError("update", "no fields to update")
	}

	b := postgres.Builder.Update("vocabulary_words")
	if upd.Definition != nil {
		b = b.Set("definition", *upd.Definition)
	}
	if upd.PartOfSpeech != nil {
		b = b.Set("part_of_speech", *upd.PartOfSpeech)
	}
	if upd.ExampleSentence != nil {
		b = b.Set("example_sentence", *upd.ExampleSentence)
	}
	if upd.IsLearned != nil {
		b = b.Set("is_learned", *upd.IsLearned)
	}

	return r.updateOne(ctx, id, b.Where(sq.Eq{"id": id, "session_id": sessionID}))
}

// IncrementReviewCount bumps review_count by one.
func (r *Repo) IncrementReviewCount(ctx context.Context, sessionID, id uuid.UUID) (*domain.VocabularyWord, error) {
	b := postgres.Builder.Update("vocabulary_words").
		Set("review_count", sq.Expr("review_count + 1")).
		Where(sq.Eq{"id": id, "session_id": sessionID})
	return r.updateOne(ctx, id, b)
}

func (r *Repo) updateOne(ctx context.Context, id uuid.UUID, b sq.UpdateBuilder) (*domain.VocabularyWord, error) {
	query, args, err := b.Suffix(returning).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build update word: %w", err)
	}

	var dst row
	if err := pgxscan.Get(ctx, postgres.QuerierFromCtx(ctx, r.db), &dst, query, args...); err != nil {
		return nil, postgres.MapError(err, "vocabulary_word", id)
	}
	out := toDomain(dst)
	return &out, nil
}

const deleteSQL = `DELETE FROM vocabulary_words WHERE id = $1 AND session_id = $2`

// Delete removes a word from the bank.
func (r *Repo) Delete(ctx context.Context, sessionID, id uuid.UUID) error {
	tag, err := postgres.QuerierFromCtx(ctx, r.db).Exec(ctx, deleteSQL, id, sessionID)
	if err != nil {
		return postgres.MapError(err, "vocabulary_word", id)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("vocabulary_word %s: %w", id, domain.ErrNotFound)
	}
	return nil
}

func toDomain(r row) domain.VocabularyWord {
	return domain.VocabularyWord{
		ID:              r.ID,
		SessionID:       r.SessionID,
		Word:            r.Word,
		WordNormalized:  r.WordNormalized,
		Definition:      r.Definition,
		PartOfSpeech:    r.PartOfSpeech,
		ExampleSentence: r.ExampleSentence,
		IsLearned:       r.IsLearned,
		ReviewCount:     r.ReviewCount,
		CreatedAt:       r.CreatedAt,
	}
}
