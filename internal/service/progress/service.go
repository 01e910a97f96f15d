// Package progress is the progress store: score history, recurring writing
// patterns and the dashboard figures derived from them.
package progress

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/heartmarshall/writemate-backend/internal/domain"
	"github.com/heartmarshall/writemate-backend/pkg/observer"
)

type progressRepo interface {
	ListMetrics(ctx context.Context, sessionID uuid.UUID) ([]domain.ProgressMetric, error)
	ListPatterns(ctx context.Context, sessionID uuid.UUID) ([]domain.WritingPattern, error)
}

type documentLister interface {
	ListBySession(ctx context.Context, sessionID uuid.UUID) ([]domain.Document, error)
}

type comparer interface {
	CompareProgress(ctx context.Context, sessionID uuid.UUID) (*domain.ProgressComparison, error)
}

type sessionSource interface {
	SessionID() (uuid.UUID, bool)
}

// Snapshot is the published state of the store.
type Snapshot struct {
	Metrics          []domain.ProgressMetric
	ActivePatterns   []domain.WritingPattern
	MasteredPatterns []domain.WritingPattern
	Documents        []domain.Document
	Loading          bool
}

// Service holds the progress state of one session.
type Service struct {
	repo     progressRepo
	docs     documentLister
	comparer comparer
	session  sessionSource
	log      *slog.Logger
	now      func() time.Time

	mu       sync.RWMutex
	metrics  []domain.ProgressMetric
	active   []domain.WritingPattern
	mastered []domain.WritingPattern
	docList  []domain.Document
	loading  bool

	subject observer.Subject[Snapshot]
}

// NewService creates a progress store.
func NewService(log *slog.Logger, repo progressRepo, docs documentLister, comparer comparer, session sessionSource) *Service {
	return &Service{
		repo:     repo,
		docs:     docs,
		comparer: comparer,
		session:  session,
		log:      log.With("service", "progress"),
		now:      time.Now,
	}
}

// Snapshot returns a copy of the current state.
func (s *Service) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return Snapshot{
		Metrics:          nonNil(slices.Clone(s.metrics)),
		ActivePatterns:   nonNil(slices.Clone(s.active)),
		MasteredPatterns: nonNil(slices.Clone(s.mastered)),
		Documents:        nonNil(slices.Clone(s.docList)),
		Loading:          s.loading,
	}
}

// Subscribe registers fn to receive a snapshot after every mutation.
func (s *Service) Subscribe(fn func(Snapshot)) (unsubscribe func()) {
	return s.subject.Subscribe(fn)
}

// FetchMetrics loads the score history, oldest first.
func (s *Service) FetchMetrics(ctx context.Context) ([]domain.ProgressMetric, error) {
	sessionID, err := s.sessionID()
	if err != nil {
		return nil, err
	}

	s.setLoading(true)
	metrics, err := s.repo.ListMetrics(ctx, sessionID)
	s.setLoading(false)
	if err != nil {
		return nil, fmt.Errorf("list metrics: %w", err)
	}

	s.mu.Lock()
	s.metrics = metrics
	s.mu.Unlock()

	s.notify()
	return slices.Clone(metrics), nil
}

// FetchPatterns loads the patterns, most frequent first, and partitions
// them into active and mastered.
func (s *Service) FetchPatterns(ctx context.Context) error {
	sessionID, err := s.sessionID()
	if err != nil {
		return err
	}

	patterns, err := s.repo.ListPatterns(ctx, sessionID)
	if err != nil {
		return fmt.Errorf("list patterns: %w", err)
	}

	s.mu.Lock()
	s.active, s.mastered = partitionPatterns(patterns)
	s.mu.Unlock()

	s.notify()
	return nil
}

// Refresh reloads metrics, patterns and documents concurrently.
func (s *Service) Refresh(ctx context.Context) error {
	sessionID, err := s.sessionID()
	if err != nil {
		return err
	}

	s.setLoading(true)
	defer s.setLoading(false)

	var (
		metrics  []domain.ProgressMetric
		patterns []domain.WritingPattern
		docs     []domain.Document
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		if metrics, err = s.repo.ListMetrics(gctx, sessionID); err != nil {
			return fmt.Errorf("list metrics: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		if patterns, err = s.repo.ListPatterns(gctx, sessionID); err != nil {
			return fmt.Errorf("list patterns: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		if docs, err = s.docs.ListBySession(gctx, sessionID); err != nil {
			return fmt.Errorf("list documents: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return err
	}

	s.mu.Lock()
	s.metrics = metrics
	s.active, s.mastered = partitionPatterns(patterns)
	s.docList = docs
	s.loading = false
	s.mu.Unlock()

	s.notify()
	return nil
}

// GetAverageScores returns the rounded mean of each score over the loaded
// metrics, or zeros when there are none.
func (s *Service) GetAverageScores() AverageScores {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return averageScores(s.metrics)
}

// GetImprovement returns the overall score of the latest metric minus that
// of the first, rounded. It is 0 with fewer than two metrics.
func (s *Service) GetImprovement() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return improvement(s.metrics)
}

// CompareProgress asks the analysis service to compare the session's history.
func (s *Service) CompareProgress(ctx context.Context) (*domain.ProgressComparison, error) {
	sessionID, err := s.sessionID()
	if err != nil {
		return nil, err
	}
	return s.comparer.CompareProgress(ctx, sessionID)
}

func (s *Service) sessionID() (uuid.UUID, error) {
	id, ok := s.session.SessionID()
	if !ok {
		return uuid.Nil, domain.ErrNoSession
	}
	return id, nil
}

func (s *Service) setLoading(v bool) {
	s.mu.Lock()
	s.loading = v
	s.mu.Unlock()
}

func (s *Service) notify() {
	s.subject.Notify(s.Snapshot())
}

func partitionPatterns(patterns []domain.WritingPattern) (active, mastered []domain.WritingPattern) {
	active = make([]domain.WritingPattern, 0, len(patterns))
	mastered = make([]domain.WritingPattern, 0)
	for _, p := range patterns {
		if p.IsMastered {
			mastered = append(mastered, p)
		} else {
			active = append(active, p)
		}
	}
	return active, mastered
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
