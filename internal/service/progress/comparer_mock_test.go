package progress

import (
	"context"
	"github.com/google/uuid"
	"github.com/heartmarshall/writemate-backend/internal/domain"
	"sync"
)

var _ comparer = &comparerMock{}

type comparerMock struct {
	CompareProgressFunc func(ctx context.Context, sessionID uuid.UUID) (*domain.ProgressComparison, error)

	calls struct {
		CompareProgress []struct {
			Ctx       context.Context
			SessionID uuid.UUID
		}
	}
	lockCompareProgress sync.RWMutex
}

func (mock *comparerMock) CompareProgress(ctx context.Context, sessionID uuid.UUID) (*domain.ProgressComparison, error) {
	if mock.CompareProgressFunc == nil {
		panic("comparerMock.CompareProgressFunc: method is nil but comparer.CompareProgress was just called")
	}
	callInfo := struct {
		Ctx       context.Context
		SessionID uuid.UUID
	}{Ctx: ctx, SessionID: sessionID}
	mock.lockCompareProgress.Lock()
	mock.calls.CompareProgress = append(mock.calls.CompareProgress, callInfo)
	mock.lockCompareProgress.Unlock()
	return mock.CompareProgressFunc(ctx, sessionID)
}

func (mock *comparerMock) CompareProgressCalls() []struct {
	Ctx       context.Context
	SessionID uuid.UUID
} {
	mock.lockCompareProgress.RLock()
	calls := mock.calls.CompareProgress
	mock.lockCompareProgress.RUnlock()
	return calls
}
