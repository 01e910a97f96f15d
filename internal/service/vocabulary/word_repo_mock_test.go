package vocabulary

import (
	"context"
	"github.com/google/uuid"
	"github.com/heartmarshall/writemate-backend/internal/domain"
	"sync"
)

var _ wordRepo = &wordRepoMock{}

type wordRepoMock struct {
	CreateFunc               func(ctx context.Context, w domain.VocabularyWord) (*domain.VocabularyWord, error)
	DeleteFunc               func(ctx context.Context, sessionID uuid.UUID, id uuid.UUID) error
	IncrementReviewCountFunc func(ctx context.Context, sessionID uuid.UUID, id uuid.UUID) (*domain.VocabularyWord, error)
	ListBySessionFunc        func(ctx context.Context, sessionID uuid.UUID) ([]domain.VocabularyWord, error)
	UpdateFunc               func(ctx context.Context, sessionID uuid.UUID, id uuid.UUID, upd domain.VocabularyUpdate) (*domain.VocabularyWord, error)

	calls struct {
		Create               []struct {
			Ctx context.Context
			W   domain.VocabularyWord
		}
		Delete               []struct {
			Ctx       context.Context
			SessionID uuid.UUID
			ID        uuid.UUID
		}
		IncrementReviewCount []struct {
			Ctx       context.Context
			SessionID uuid.UUID
			ID        uuid.UUID
		}
		ListBySession        []struct {
			Ctx       context.Context
			SessionID uuid.UUID
		}
		Update               []struct {
			Ctx       context.Context
			SessionID uuid.UUID
			ID        uuid.UUID
			Upd       domain.VocabularyUpdate
		}
	}
	lockCreate               sync.RWMutex
	lockDelete               sync.RWMutex
	lockIncrementReviewCount sync.RWMutex
	lockListBySession        sync.RWMutex
	lockUpdate               sync.RWMutex
}

func (mock *wordRepoMock) Create(ctx context.Context, w domain.VocabularyWord) (*domain.VocabularyWord, error) {
	if mock.CreateFunc == nil {
		panic("wordRepoMock.CreateFunc: method is nil but wordRepo.Create was just called")
	}
	callInfo := struct {
		Ctx context.Context
		W   domain.VocabularyWord
	}{Ctx: ctx, W: w}
	mock.lockCreate.Lock()
	mock.calls.Create = append(mock.calls.Create, callInfo)
	mock.lockCreate.Unlock()
	return mock.CreateFunc(ctx, w)
}

func (mock *wordRepoMock) CreateCalls() []struct {
	Ctx context.Context
	W   domain.VocabularyWord
} {
	mock.lockCreate.RLock()
	calls := mock.calls.Create
	mock.lockCreate.RUnlock()
	return calls
}

func (mock *wordRepoMock) Delete(ctx context.Context, sessionID uuid.UUID, id uuid.UUID) error {
	if mock.DeleteFunc == nil {
		panic("wordRepoMock.DeleteFunc: method is nil but wordRepo.Delete was just called")
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

func (mock *wordRepoMock) DeleteCalls() []struct {
	Ctx       context.Context
	SessionID uuid.UUID
	ID        uuid.UUID
} {
	mock.lockDelete.RLock()
	calls := mock.calls.Delete
	mock.lockDelete.RUnlock()
	return calls
}

func (mock *wordRepoMock) IncrementReviewCount(ctx context.Context, sessionID uuid.UUID, id uuid.UUID) (*domain.VocabularyWord, error) {
	if mock.IncrementReviewCountFunc == nil {
		panic("wordRepoMock.IncrementReviewCountFunc: method is nil but wordRepo.IncrementReviewCount was just called")
	}
	callInfo := struct {
		Ctx       context.Context
		SessionID uuid.UUID
		ID        uuid.UUID
	}{Ctx: ctx, SessionID: sessionID, ID: id}
	mock.lockIncrementReviewCount.Lock()
	mock.calls.IncrementReviewCount = append(mock.calls.IncrementReviewCount, callInfo)
	mock.lockIncrementReviewCount.Unlock()
	return mock.IncrementReviewCountFunc(ctx, sessionID, id)
}

func (mock *wordRepoMock) IncrementReviewCountCalls() []struct {
	Ctx       context.Context
	SessionID uuid.UUID
	ID        uuid.UUID
} {
	mock.lockIncrementReviewCount.RLock()
	calls := mock.calls.IncrementReviewCount
	mock.lockIncrementReviewCount.RUnlock()
	return calls
}

func (mock *wordRepoMock) ListBySession(ctx context.Context, sessionID uuid.UUID) ([]domain.VocabularyWord, error) {
	if mock.ListBySessionFunc == nil {
		panic("wordRepoMock.ListBySessionFunc: method is nil but wordRepo.ListBySession was just called")
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

func (mock *wordRepoMock) ListBySessionCalls() []struct {
	Ctx       context.Context
	SessionID uuid.UUID
} {
	mock.lockListBySession.RLock()
	calls := mock.calls.ListBySession
	mock.lockListBySession.RUnlock()
	return calls
}

func (mock *wordRepoMock) Update(ctx context.Context, sessionID uuid.UUID, id uuid.UUID, upd domain.VocabularyUpdate) (*domain.VocabularyWord, error) {
	if mock.UpdateFunc == nil {
		panic("wordRepoMock.UpdateFunc: method is nil but wordRepo.Update was just called")
	}
	callInfo := struct {
		Ctx       context.Context
		SessionID uuid.UUID
		ID        uuid.UUID
		Upd       domain.VocabularyUpdate
	}{Ctx: ctx, SessionID: sessionID, ID: id, Upd: upd}
	mock.lockUpdate.Lock()
	mock.calls.Update = append(mock.calls.Update, callInfo)
	mock.lockUpdate.Unlock()
	return mock.UpdateFunc(ctx, sessionID, id, upd)
}

func (mock *wordRepoMock) UpdateCalls() []struct {
	Ctx       context.Context
	SessionID uuid.UUID
	ID        uuid.UUID
	Upd       domain.VocabularyUpdate
} {
	mock.lockUpdate.RLock()
	calls := mock.calls.Update
	mock.lockUpdate.RUnlock()
	return calls
}
