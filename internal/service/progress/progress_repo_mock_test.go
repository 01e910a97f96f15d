package progress

import (
	"context"
	"github.com/google/uuid"
	"github.com/heartmarshall/writemate-backend/internal/domain"
	"sync"
)

var _ progressRepo = &progressRepoMock{}

type progressRepoMock struct {
	ListMetricsFunc  func(ctx context.Context, sessionID uuid.UUID) ([]domain.ProgressMetric, error)
	ListPatternsFunc func(ctx context.Context, sessionID uuid.UUID) ([]domain.WritingPattern, error)

	calls struct {
		ListMetrics  []struct {
			Ctx       context.Context
			SessionID uuid.UUID
		}
		ListPatterns []struct {
			Ctx       context.Context
			SessionID uuid.UUID
		}
	}
	lockListMetrics  sync.RWMutex
	lockListPatterns sync.RWMutex
}

func (mock *progressRepoMock) ListMetrics(ctx context.Context, sessionID uuid.UUID) ([]domain.ProgressMetric, error) {
	if mock.ListMetricsFunc == nil {
		panic("progressRepoMock.ListMetricsFunc: method is nil but progressRepo.ListMetrics was just called")
	}
	callInfo := struct {
		Ctx       context.Context
		SessionID uuid.UUID
	}{Ctx: ctx, SessionID: sessionID}
	mock.lockListMetrics.Lock()
	mock.calls.ListMetrics = append(mock.calls.ListMetrics, callInfo)
	mock.lockListMetrics.Unlock()
	return mock.ListMetricsFunc(ctx, sessionID)
}

func (mock *progressRepoMock) ListMetricsCalls() []struct {
	Ctx       context.Context
	SessionID uuid.UUID
} {
	mock.lockListMetrics.RLock()
	calls := mock.calls.ListMetrics
	mock.lockListMetrics.RUnlock()
	return calls
}

func (mock *progressRepoMock) ListPatterns(ctx context.Context, sessionID uuid.UUID) ([]domain.WritingPattern, error) {
	if mock.ListPatternsFunc == nil {
		panic("progressRepoMock.ListPatternsFunc: method is nil but progressRepo.ListPatterns was just called")
	}
	callInfo := struct {
		Ctx       context.Context
		SessionID uuid.UUID
	}{Ctx: ctx, SessionID: sessionID}
	mock.lockListPatterns.Lock()
	mock.calls.ListPatterns = append(mock.calls.ListPatterns, callInfo)
	mock.lockListPatterns.Unlock()
	return mock.ListPatternsFunc(ctx, sessionID)
}

func (mock *progressRepoMock) ListPatternsCalls() []struct {
	Ctx       context.Context
	SessionID uuid.UUID
} {
	mock.lockListPatterns.RLock()
	calls := mock.calls.ListPatterns
	mock.lockListPatterns.RUnlock()
	return calls
}
