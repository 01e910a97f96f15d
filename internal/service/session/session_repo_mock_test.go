package session

import (
	"context"
	"github.com/google/uuid"
	"github.com/heartmarshall/writemate-backend/internal/domain"
	"sync"
)

var _ sessionRepo = &sessionRepoMock{}

type sessionRepoMock struct {
	CreateFunc        func(ctx context.Context) (*domain.Session, error)
	CreatePersonaFunc func(ctx context.Context, p domain.Persona) (*domain.Persona, error)
	GetByIDFunc       func(ctx context.Context, id uuid.UUID) (*domain.Session, error)
	GetPersonaFunc    func(ctx context.Context, sessionID uuid.UUID) (*domain.Persona, error)
	TouchFunc         func(ctx context.Context, id uuid.UUID) error
	UpdatePersonaFunc func(ctx context.Context, p domain.Persona) (*domain.Persona, error)

	calls struct {
		Create        []struct {
			Ctx context.Context
		}
		CreatePersona []struct {
			Ctx context.Context
			P   domain.Persona
		}
		GetByID       []struct {
			Ctx context.Context
			ID  uuid.UUID
		}
		GetPersona    []struct {
			Ctx       context.Context
			SessionID uuid.UUID
		}
		Touch         []struct {
			Ctx context.Context
			ID  uuid.UUID
		}
		UpdatePersona []struct {
			Ctx context.Context
			P   domain.Persona
		}
	}
	lockCreate        sync.RWMutex
	lockCreatePersona sync.RWMutex
	lockGetByID       sync.RWMutex
	lockGetPersona    sync.RWMutex
	lockTouch         sync.RWMutex
	lockUpdatePersona sync.RWMutex
}

func (mock *sessionRepoMock) Create(ctx context.Context) (*domain.Session, error) {
	if mock.CreateFunc == nil {
		panic("sessionRepoMock.CreateFunc: method is nil but sessionRepo.Create was just called")
	}
	callInfo := struct {
		Ctx context.Context
	}{Ctx: ctx}
	mock.lockCreate.Lock()
	mock.calls.Create = append(mock.calls.Create, callInfo)
	mock.lockCreate.Unlock()
	return mock.CreateFunc(ctx)
}

func (mock *sessionRepoMock) CreateCalls() []struct {
	Ctx context.Context
} {
	mock.lockCreate.RLock()
	calls := mock.calls.Create
	mock.lockCreate.RUnlock()
	return calls
}

func (mock *sessionRepoMock) CreatePersona(ctx context.Context, p domain.Persona) (*domain.Persona, error) {
	if mock.CreatePersonaFunc == nil {
		panic("sessionRepoMock.CreatePersonaFunc: method is nil but sessionRepo.CreatePersona was just called")
	}
	callInfo := struct {
		Ctx context.Context
		P   domain.Persona
	}{Ctx: ctx, P: p}
	mock.lockCreatePersona.Lock()
	mock.calls.CreatePersona = append(mock.calls.CreatePersona, callInfo)
	mock.lockCreatePersona.Unlock()
	return mock.CreatePersonaFunc(ctx, p)
}

func (mock *sessionRepoMock) CreatePersonaCalls() []struct {
	Ctx context.Context
	P   domain.Persona
} {
	mock.lockCreatePersona.RLock()
	calls := mock.calls.CreatePersona
	mock.lockCreatePersona.RUnlock()
	return calls
}

func (mock *sessionRepoMock) GetByID(ctx context.Context, id uuid.UUID) (*domain.Session, error) {
	if mock.GetByIDFunc == nil {
		panic("sessionRepoMock.GetByIDFunc: method is nil but sessionRepo.GetByID was just called")
	}
	callInfo := struct {
		Ctx context.Context
		ID  uuid.UUID
	}{Ctx: ctx, ID: id}
	mock.lockGetByID.Lock()
	mock.calls.GetByID = append(mock.calls.GetByID, callInfo)
	mock.lockGetByID.Unlock()
	return mock.GetByIDFunc(ctx, id)
}

func (mock *sessionRepoMock) GetByIDCalls() []struct {
	Ctx context.Context
	ID  uuid.UUID
} {
	mock.lockGetByID.RLock()
	calls := mock.calls.GetByID
	mock.lockGetByID.RUnlock()
	return calls
}

func (mock *sessionRepoMock) GetPersona(ctx context.Context, sessionID uuid.UUID) (*domain.Persona, error) {
	if mock.GetPersonaFunc == nil {
		panic("sessionRepoMock.GetPersonaFunc: method is nil but sessionRepo.GetPersona was just called")
	}
	callInfo := struct {
		Ctx       context.Context
		SessionID uuid.UUID
	}{Ctx: ctx, SessionID: sessionID}
	mock.lockGetPersona.Lock()
	mock.calls.GetPersona = append(mock.calls.GetPersona, callInfo)
	mock.lockGetPersona.Unlock()
	return mock.GetPersonaFunc(ctx, sessionID)
}

func (mock *sessionRepoMock) GetPersonaCalls() []struct {
	Ctx       context.Context
	SessionID uuid.UUID
} {
	mock.lockGetPersona.RLock()
	calls := mock.calls.GetPersona
	mock.lockGetPersona.RUnlock()
	return calls
}

func (mock *sessionRepoMock) Touch(ctx context.Context, id uuid.UUID) error {
	if mock.TouchFunc == nil {
		panic("sessionRepoMock.TouchFunc: method is nil but sessionRepo.Touch was just called")
	}
	callInfo := struct {
		Ctx context.Context
		ID  uuid.UUID
	}{Ctx: ctx, ID: id}
	mock.lockTouch.Lock()
	mock.calls.Touch = append(mock.calls.Touch, callInfo)
	mock.lockTouch.Unlock()
	return mock.TouchFunc(ctx, id)
}

func (mock *sessionRepoMock) TouchCalls() []struct {
	Ctx context.Context
	ID  uuid.UUID
} {
	mock.lockTouch.RLock()
	calls := mock.calls.Touch
	mock.lockTouch.RUnlock()
	return calls
}

func (mock *sessionRepoMock) UpdatePersona(ctx context.Context, p domain.Persona) (*domain.Persona, error) {
	if mock.UpdatePersonaFunc == nil {
		panic("sessionRepoMock.UpdatePersonaFunc: method is nil but sessionRepo.UpdatePersona was just called")
	}
	callInfo := struct {
		Ctx context.Context
		P   domain.Persona
	}{Ctx: ctx, P: p}
	mock.lockUpdatePersona.Lock()
	mock.calls.UpdatePersona = append(mock.calls.UpdatePersona, callInfo)
	mock.lockUpdatePersona.Unlock()
	return mock.UpdatePersonaFunc(ctx, p)
}

func (mock *sessionRepoMock) UpdatePersonaCalls() []struct {
	Ctx context.Context
	P   domain.Persona
} {
	mock.lockUpdatePersona.RLock()
	calls := mock.calls.UpdatePersona
	mock.lockUpdatePersona.RUnlock()
	return calls
}
