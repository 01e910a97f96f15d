package progress

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heartmarshall/writemate-backend/internal/domain"
)

//go:generate moq -out progress_repo_mock_test.go -pkg progress . progressRepo
//go:generate moq -out document_lister_mock_test.go -pkg progress . documentLister
//go:generate moq -out comparer_mock_test.go -pkg progress . comparer
//go:generate moq -out session_source_mock_test.go -pkg progress . sessionSource

func newTestService(repo *progressRepoMock, docs *documentListerMock, cmp *comparerMock) (*Service, uuid.UUID) {
	sessionID := uuid.New()
	session := &sessionSourceMock{SessionIDFunc: func() (uuid.UUID, bool) { return sessionID, true }}
	return NewService(slog.New(slog.NewTextHandler(io.Discard, nil)), repo, docs, cmp, session), sessionID
}

func TestFetchPatterns_Partitions(t *testing.T) {
	t.Parallel()

	repo := &progressRepoMock{
		ListPatternsFunc: func(ctx context.Context, sessionID uuid.UUID) ([]domain.WritingPattern, error) {
			return []domain.WritingPattern{
				{PatternType: "comma splice", OccurrenceCount: 5},
				{PatternType: "passive voice", OccurrenceCount: 3, IsMastered: true},
				{PatternType: "run-on", OccurrenceCount: 1},
			}, nil
		},
	}
	svc, _ := newTestService(repo, &documentListerMock{}, &comparerMock{})

	require.NoError(t, svc.FetchPatterns(context.Background()))

	snap := svc.Snapshot()
	require.Len(t, snap.ActivePatterns, 2)
	assert.Equal(t, "comma splice", snap.ActivePatterns[0].PatternType)
	require.Len(t, snap.MasteredPatterns, 1)
	assert.Equal(t, "passive voice", snap.MasteredPatterns[0].PatternType)
}

func TestFetchMetrics_Averages(t *testing.T) {
	t.Parallel()

	repo := &progressRepoMock{
		ListMetricsFunc: func(ctx context.Context, sessionID uuid.UUID) ([]domain.ProgressMetric, error) {
			return []domain.ProgressMetric{metric(80, 60, 40, 50), metric(60, 80, 60, 80)}, nil
		},
	}
	svc, _ := newTestService(repo, &documentListerMock{}, &comparerMock{})

	assert.Equal(t, AverageScores{}, svc.GetAverageScores())

	_, err := svc.FetchMetrics(context.Background())
	require.NoError(t, err)

	assert.Equal(t, AverageScores{Grammar: 70, Clarity: 70, Voice: 50, Overall: 65}, svc.GetAverageScores())
	assert.Equal(t, 30, svc.GetImprovement())
}

func TestRefresh_LoadsConcurrentlyAndBuildsDashboard(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 5, 10, 12, 0, 0, 0, time.UTC)
	repo := &progressRepoMock{
		ListMetricsFunc: func(ctx context.Context, sessionID uuid.UUID) ([]domain.ProgressMetric, error) {
			m := make([]domain.ProgressMetric, 4)
			for i := range m {
				m[i] = metric(70, 70, 70, 70)
				m[i].CreatedAt = now.AddDate(0, 0, -1)
			}
			return m, nil
		},
		ListPatternsFunc: func(ctx context.Context, sessionID uuid.UUID) ([]domain.WritingPattern, error) {
			return nil, nil
		},
	}
	latest := domain.Document{ID: uuid.New(), WordCount: 120, CreatedAt: now.AddDate(0, 0, -2), UpdatedAt: now}
	docs := &documentListerMock{
		ListBySessionFunc: func(ctx context.Context, sessionID uuid.UUID) ([]domain.Document, error) {
			return []domain.Document{
				latest,
				{ID: uuid.New(), WordCount: 30, CreatedAt: now.AddDate(0, 0, -9), UpdatedAt: now.AddDate(0, 0, -9)},
			}, nil
		},
	}
	svc, _ := newTestService(repo, docs, &comparerMock{})
	svc.now = func() time.Time { return now }

	require.NoError(t, svc.Refresh(context.Background()))
	d := svc.Dashboard()

	assert.Equal(t, 2, d.Level)
	assert.Equal(t, 100, d.CurrentXP)
	assert.Equal(t, 300, d.RequiredXP)
	assert.Equal(t, 150, d.TotalWords)
	assert.Equal(t, 2, d.TotalDocuments)
	assert.Equal(t, 3, d.CurrentStreak)
	require.NotNil(t, d.LatestDocument)
	assert.Equal(t, latest.ID, d.LatestDocument.ID)
	assert.False(t, svc.Snapshot().Loading)
}

func TestRefresh_PropagatesError(t *testing.T) {
	t.Parallel()

	boom := errors.New("boom")
	repo := &progressRepoMock{
		ListMetricsFunc: func(ctx context.Context, sessionID uuid.UUID) ([]domain.ProgressMetric, error) {
			return nil, boom
		},
		ListPatternsFunc: func(ctx context.Context, sessionID uuid.UUID) ([]domain.WritingPattern, error) {
			return nil, nil
		},
	}
	docs := &documentListerMock{
		ListBySessionFunc: func(ctx context.Context, sessionID uuid.UUID) ([]domain.Document, error) {
			return nil, nil
		},
	}
	svc, _ := newTestService(repo, docs, &comparerMock{})

	assert.ErrorIs(t, svc.Refresh(context.Background()), boom)
	assert.False(t, svc.Snapshot().Loading)
}

func TestCompareProgress(t *testing.T) {
	t.Parallel()

	cmp := &comparerMock{
		CompareProgressFunc: func(ctx context.Context, sessionID uuid.UUID) (*domain.ProgressComparison, error) {
			return &domain.ProgressComparison{Improvement: 4}, nil
		},
	}
	svc, sessionID := newTestService(&progressRepoMock{}, &documentListerMock{}, cmp)

	got, err := svc.CompareProgress(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 4.0, got.Improvement)
	assert.Equal(t, sessionID, cmp.CompareProgressCalls()[0].SessionID)
}
