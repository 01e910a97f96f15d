// Package document is the document store: the session's documents, the
// current document and its active annotations.
package document

import (
	"context"
	"log/slog"
	"slices"
	"sync"

	"github.com/google/uuid"

	"github.com/heartmarshall/writemate-backend/internal/domain"
	"github.com/heartmarshall/writemate-backend/pkg/observer"
)

type documentRepo interface {
	GetByID(ctx context.Context, sessionID, id uuid.UUID) (*domain.Document, error)
	ListBySession(ctx context.Context, sessionID uuid.UUID) ([]domain.Document, error)
	Create(ctx context.Context, sessionID uuid.UUID, title string) (*domain.Document, error)
	Update(ctx context.Context, sessionID, id uuid.UUID, upd domain.DocumentUpdate) (*domain.Document, error)
	Delete(ctx context.Context, sessionID, id uuid.UUID) error
}

type annotationRepo interface {
	ListActive(ctx context.Context, documentID uuid.UUID) ([]domain.Annotation, error)
	CreateBatch(ctx context.Context, documentID uuid.UUID, items []domain.Annotation) ([]domain.Annotation, error)
	Dismiss(ctx context.Context, sessionID, id uuid.UUID) error
	DeleteByDocument(ctx context.Context, documentID uuid.UUID) (int64, error)
}

type progressRepo interface {
	CreateMetric(ctx context.Context, m domain.ProgressMetric) (*domain.ProgressMetric, error)
	UpsertPattern(ctx context.Context, sessionID uuid.UUID, p domain.DetectedPattern) (*domain.WritingPattern, error)
	RecordAnalysis(ctx context.Context, sessionID, documentID uuid.UUID, summary string, raw []byte) error
}

type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

type sessionSource interface {
	SessionID() (uuid.UUID, bool)
}

// Snapshot is the published state of the store. Version grows with every
// notification, so a subscriber can drop snapshots that arrive out of order.
// AnnotationsVersion changes whenever the annotation set is replaced or
// shrinks.
type Snapshot struct {
	Version            uint64
	Documents          []domain.Document
	Current            *domain.Document
	Annotations        []domain.Annotation
	AnnotationsVersion uint64
	Loading            bool
}

// Service holds the document state of one session.
type Service struct {
	docs        documentRepo
	annotations annotationRepo
	progress    progressRepo
	tx          txManager
	session     sessionSource
	log         *slog.Logger

	mu         sync.RWMutex
	documents  []domain.Document
	current    *domain.Document
	active     []domain.Annotation
	annVersion uint64
	version    uint64
	loading    bool

	subject observer.Subject[Snapshot]
}

// NewService creates a document store.
func NewService(
	log *slog.Logger,
	docs documentRepo,
	annotations annotationRepo,
	progress progressRepo,
	tx txManager,
	session sessionSource,
) *Service {
	return &Service{
		docs:        docs,
		annotations: annotations,
		progress:    progress,
		tx:          tx,
		session:     session,
		log:         log.With("service", "document"),
	}
}

// Snapshot returns a copy of the current state.
func (s *Service) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshotLocked()
}

func (s *Service) snapshotLocked() Snapshot {
	snap := Snapshot{
		Version:            s.version,
		Documents:          slices.Clone(s.documents),
		Annotations:        slices.Clone(s.active),
		AnnotationsVersion: s.annVersion,
		Loading:            s.loading,
	}
	if snap.Documents == nil {
		snap.Documents = []domain.Document{}
	}
	if snap.Annotations == nil {
		snap.Annotations = []domain.Annotation{}
	}
	if s.current != nil {
		d := *s.current
		snap.Current = &d
	}
	return snap
}

// Subscribe registers fn to receive a snapshot after every mutation.
func (s *Service) Subscribe(fn func(Snapshot)) (unsubscribe func()) {
	return s.subject.Subscribe(fn)
}

// notify publishes outside the lock. The version is stamped together with
// the state it describes.
func (s *Service) notify() {
	s.mu.Lock()
	s.version++
	snap := s.snapshotLocked()
	s.mu.Unlock()
	s.subject.Notify(snap)
}

func (s *Service) sessionID() (uuid.UUID, error) {
	id, ok := s.session.SessionID()
	if !ok {
		return uuid.Nil, domain.ErrNoSession
	}
	return id, nil
}

// replaceLocked swaps the list entry and the current document for doc.
func (s *Service) replaceLocked(doc domain.Document) {
	for i := range s.documents {
		if s.documents[i].ID == doc.ID {
			s.documents[i] = doc
		}
	}
	if s.current != nil && s.current.ID == doc.ID {
		d := doc
		s.current = &d
	}
}

// setAnnotationsLocked replaces the active annotation set.
func (s *Service) setAnnotationsLocked(items []domain.Annotation) {
	s.active = items
	s.annVersion++
}
