package progress

import (
	"context"
	"github.com/google/uuid"
	"github.com/heartmarshall/writemate-backend/internal/domain"
	"sync"
)

var _ documentLister = &documentListerMock{}

type documentListerMock struct {
	ListBySessionFunc func(ctx context.Context, sessionID uuid.UUID) ([]domain.Document, error)

	calls struct {
		ListBySession []struct {
			Ctx       context.Context
			SessionID uuid.UUID
		}
	}
	lockListBySession sync.RWMutex
}

func (mock *documentListerMock) ListBySession(ctx context.Context, sessionID uuid.UUID) ([]domain.Document, error) {
	if mock.ListBySessionFunc == nil {
		panic("documentListerMock.ListBySessionFunc: method is nil but documentLister.ListBySession was just called")
	}
	callInfo := struct {
		Ctx       context.Context
		SessionID uuid.UUID
	}{Ctx: ctx, SessionID: sessionID}
	mock.lockListBySession.Lock()
	mock.calls.ListBySession = append(mock.calls.ListBySession, callInfo)
	mock.lockListBySession.Unlock()
	return mock.ListBySessionFunc(ctx, sessionID)
}

func (mock *documentListerMock) ListBySessionCalls() []struct {
	Ctx       context.Context
	SessionID uuid.UUID
} {
	mock.lockListBySession.RLock()
	calls := mock.calls.ListBySession
	mock.lockListBySession.RUnlock()
	return calls
}
