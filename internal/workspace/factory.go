package workspace

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"

	"github.com/heartmarshall/writemate-backend/internal/domain"
	"github.com/heartmarshall/writemate-backend/internal/editor"
	"github.com/heartmarshall/writemate-backend/internal/service/document"
	"github.com/heartmarshall/writemate-backend/internal/service/progress"
	"github.com/heartmarshall/writemate-backend/internal/service/session"
	"github.com/heartmarshall/writemate-backend/internal/service/vocabulary"
)

type SessionRepo interface {
	Create(ctx context.Context) (*domain.Session, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Session, error)
	Touch(ctx context.Context, id uuid.UUID) error
	GetPersona(ctx context.Context, sessionID uuid.UUID) (*domain.Persona, error)
	CreatePersona(ctx context.Context, p domain.Persona) (*domain.Persona, error)
	UpdatePersona(ctx context.Context, p domain.Persona) (*domain.Persona, error)
}

type DocumentRepo interface {
	GetByID(ctx context.Context, sessionID, id uuid.UUID) (*domain.Document, error)
	ListBySession(ctx context.Context, sessionID uuid.UUID) ([]domain.Document, error)
	Create(ctx context.Context, sessionID uuid.UUID, title string) (*domain.Document, error)
	Update(ctx context.Context, sessionID, id uuid.UUID, upd domain.DocumentUpdate) (*domain.Document, error)
	Delete(ctx context.Context, sessionID, id uuid.UUID) error
}

type AnnotationRepo interface {
	ListActive(ctx context.Context, documentID uuid.UUID) ([]domain.Annotation, error)
	CreateBatch(ctx context.Context, documentID uuid.UUID, items []domain.Annotation) ([]domain.Annotation, error)
	Dismiss(ctx context.Context, sessionID, id uuid.UUID) error
	DeleteByDocument(ctx context.Context, documentID uuid.UUID) (int64, error)
}

type ProgressRepo interface {
	ListMetrics(ctx context.Context, sessionID uuid.UUID) ([]domain.ProgressMetric, error)
	ListPatterns(ctx context.Context, sessionID uuid.UUID) ([]domain.WritingPattern, error)
	CreateMetric(ctx context.Context, m domain.ProgressMetric) (*domain.ProgressMetric, error)
	UpsertPattern(ctx context.Context, sessionID uuid.UUID, p domain.DetectedPattern) (*domain.WritingPattern, error)
	RecordAnalysis(ctx context.Context, sessionID, documentID uuid.UUID, summary string, raw []byte) error
}

type VocabularyRepo interface {
	ListBySession(ctx context.Context, sessionID uuid.UUID) ([]domain.VocabularyWord, error)
	Create(ctx context.Context, w domain.VocabularyWord) (*domain.VocabularyWord, error)
	Update(ctx context.Context, sessionID, id uuid.UUID, upd domain.VocabularyUpdate) (*domain.VocabularyWord, error)
	IncrementReviewCount(ctx context.Context, sessionID, id uuid.UUID) (*domain.VocabularyWord, error)
	Delete(ctx context.Context, sessionID, id uuid.UUID) error
}

type TxManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// LocalStorage is the per-device key/value storage that remembers the session.
type LocalStorage interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}

// Analyzer is the remote analysis service.
type Analyzer interface {
	AnalyzeDocument(ctx context.Context, req domain.AnalysisRequest) (*domain.AnalysisResult, error)
	QuickCheck(ctx context.Context, content string) (*domain.QuickCheckResult, error)
	ExtractVocabulary(ctx context.Context, content string) ([]domain.VocabularySuggestion, error)
	CompareProgress(ctx context.Context, sessionID uuid.UUID) (*domain.ProgressComparison, error)
}

// Factory builds workspaces from the shared adapters.
type Factory struct {
	Sessions    SessionRepo
	Documents   DocumentRepo
	Annotations AnnotationRepo
	Progress    ProgressRepo
	Vocabulary  VocabularyRepo
	Tx          TxManager
	Analysis    Analyzer

	// Storage returns the local storage of one device.
	Storage func(clientID uuid.UUID) LocalStorage

	Editor editor.Config
	Clock  clockwork.Clock
	Log    *slog.Logger

	// BaseCtx bounds background saves. Defaults to context.Background.
	BaseCtx context.Context
}

// Build wires the stores of one device and restores its session.
func (f *Factory) Build(ctx context.Context, clientID uuid.UUID) (*Workspace, error) {
	log := f.Log.With(slog.String("client_id", clientID.String()))
	baseCtx := f.BaseCtx
	if baseCtx == nil {
		baseCtx = context.Background()
	}

	sess := session.NewService(log, f.Sessions, f.Storage(clientID))
	docs := document.NewService(log, f.Documents, f.Annotations, f.Progress, f.Tx, sess)
	vocab := vocabulary.NewService(log, f.Vocabulary, f.Analysis, sess)
	prog := progress.NewService(log, f.Progress, f.Documents, f.Analysis, sess)

	ws := newWorkspace(clientID, log, sess, docs, vocab, prog, func() *editor.Editor {
		return editor.New(baseCtx, f.Editor, docs, f.Analysis, f.Clock, log)
	})

	if err := sess.RefreshSession(ctx); err != nil {
		return nil, fmt.Errorf("restore session: %w", err)
	}
	return ws, nil
}
