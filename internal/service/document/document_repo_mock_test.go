package document

import (
	"context"
	"github.com/google/uuid"
	"github.com/heartmarshall/writemate-backend/internal/domain"
	"sync"
)

var _ documentRepo = &documentRepoMock{}

type documentRepoMock struct {
	CreateFunc        func(ctx context.Context, sessionID uuid.UUID, title string) (*domain.Document, error)
	DeleteFunc        func(ctx context.Context, sessionID uuid.UUID, id uuid.UUID) error
	GetByIDFunc       func(ctx context.Context, sessionID uuid.UUID, id uuid.UUID) (*domain.Document, error)
	ListBySessionFunc func(ctx context.Context, sessionID uuid.UUID) ([]domain.Document, error)
	UpdateFunc        func(ctx context.Context, sessionID uuid.UUID, id uuid.UUID, upd domain.DocumentUpdate) (*domain.Document, error)

	calls struct {
		Create        []struct {
			Ctx       context.Context
			SessionID uuid.UUID
			Title     string
		}
		Delete        []struct {
			Ctx       context.Context
			SessionID uuid.UUID
			ID        uuid.UUID
		}
		GetByID       []struct {
			Ctx       context.Context
			SessionID uuid.UUID
			ID        uuid.UUID
		}
		ListBySession []struct {
			Ctx       context.Context
			SessionID uuid.UUID
		}
		Update        []struct {
			Ctx       context.Context
			SessionID uuid.UUID
			ID        uuid.UUID
			Upd       domain.DocumentUpdate
		}
	}
	lockCreate        sync.RWMutex
	lockDelete        sync.RWMutex
	lockGetByID       sync.RWMutex
	lockListBySession sync.RWMutex
	lockUpdate        sync.RWMutex
}

func (mock *documentRepoMock) Create(ctx context.Context, sessionID uuid.UUID, title string) (*domain.Document, error) {
	if mock.CreateFunc == nil {
		panic("documentRepoMock.CreateFunc: method is nil but documentRepo.Create was just called")
	}
	callInfo := struct {
		Ctx       context.Context
		SessionID uuid.UUID
		Title     string
	}{Ctx: ctx, SessionID: sessionID, Title: title}
	mock.lockCreate.Lock()
	mock.calls.Create = append(mock.calls.Create, callInfo)
	mock.lockCreate.Unlock()
	return mock.CreateFunc(ctx, sessionID, title)
}

func (mock *documentRepoMock) CreateCalls() []struct {
	Ctx       context.Context
	SessionID uuid.UUID
	Title     string
} {
	mock.lockCreate.RLock()
	calls := mock.calls.Create
	mock.lockCreate.RUnlock()
	return calls
}

func (mock *documentRepoMock) Delete(ctx context.Context, sessionID uuid.UUID, id uuid.UUID) error {
	if mock.DeleteFunc == nil {
		panic("documentRepoMock.DeleteFunc: method is nil but documentRepo.Delete was just called")
	}
	callInfo := struct {
		Ctx       context.Context
		SessionID uuid.UUID
		ID        uuid.UUID
	}{Ctx: ctx, SessionID: sessionID, ID: id}
	mock.lockDelete.Lock()
	mock.calls.Delete = append(mock.calls.Delete, callInfo)
	mock.lockDelete.Unlock()
	return mock.DeleteFunc(ctx, sessionID, id)
}

func (mock *documentRepoMock) DeleteCalls() []struct {
	Ctx       context.Context
	SessionID uuid.UUID
	ID        uuid.UUID
} {
	mock.lockDelete.RLock()
	calls := mock.calls.Delete
	mock.lockDelete.RUnlock()
	return calls
}

func (mock *documentRepoMock) GetByID(ctx context.Context, sessionID uuid.UUID, id uuid.UUID) (*domain.Document, error) {
	if mock.GetByIDFunc == nil {
		panic("documentRepoMock.GetByIDFunc: method is nil but documentRepo.GetByID was just called")
	}
	callInfo := struct {
		Ctx       context.Context
		SessionID uuid.UUID
		ID        uuid.UUID
	}{Ctx: ctx, SessionID: sessionID, ID: id}
	mock.lockGetByID.Lock()
	mock.calls.GetByID = append(mock.calls.GetByID, callInfo)
	mock.lockGetByID.Unlock()
	return mock.GetByIDFunc(ctx, sessionID, id)
}

func (mock *documentRepoMock) GetByIDCalls() []struct {
	Ctx       context.Context
	SessionID uuid.UUID
	ID        uuid.UUID
} {
	mock.lockGetByID.RLock()
	calls := mock.calls.GetByID
	mock.lockGetByID.RUnlock()
	return calls
}

func (mock *documentRepoMock) ListBySession(ctx context.Context, sessionID uuid.UUID) ([]domain.Document, error) {
	if mock.ListBySessionFunc == nil {
		panic("documentRepoMock.ListBySessionFunc: method is nil but documentRepo.ListBySession was just called")
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

func (mock *documentRepoMock) ListBySessionCalls() []struct {
	Ctx       context.Context
	SessionID uuid.UUID
} {
	mock.lockListBySession.RLock()
	calls := mock.calls.ListBySession
	mock.lockListBySession.RUnlock()
	return calls
}

func (mock *documentRepoMock) Update(ctx context.Context, sessionID uuid.UUID, id uuid.UUID, upd domain.DocumentUpdate) (*domain.Document, error) {
	if mock.UpdateFunc == nil {
		panic("documentRepoMock.UpdateFunc: method is nil but documentRepo.Update was just called")
	}
	callInfo := struct {
		Ctx       context.Context
		SessionID uuid.UUID
		ID        uuid.UUID
		Upd       domain.DocumentUpdate
	}{Ctx: ctx, SessionID: sessionID, ID: id, Upd: upd}
	mock.lockUpdate.Lock()
	mock.calls.Update = append(mock.calls.Update, callInfo)
	mock.lockUpdate.Unlock()
	return mock.UpdateFunc(ctx, sessionID, id, upd)
}

func (mock *documentRepoMock) UpdateCalls() []struct {
	Ctx       context.Context
	SessionID uuid.UUID
	ID        uuid.UUID
	Upd       domain.DocumentUpdate
} {
	mock.lockUpdate.RLock()
	calls := mock.calls.Update
	mock.lockUpdate.RUnlock()
	return calls
}
