package session

import (
	"context"
	"sync"
)

var _ localStorage = &localStorageMock{}

type localStorageMock struct {
	DeleteFunc func(ctx context.Context, key string) error
	GetFunc    func(ctx context.Context, key string) (string, bool, error)
	SetFunc    func(ctx context.Context, key string, value string) error

	calls struct {
		Delete []struct {
			Ctx context.Context
			Key string
		}
		Get    []struct {
			Ctx context.Context
			Key string
		}
		Set    []struct {
			Ctx   context.Context
			Key   string
			Value string
		}
	}
	lockDelete sync.RWMutex
	lockGet    sync.RWMutex
	lockSet    sync.RWMutex
}

func (mock *localStorageMock) Delete(ctx context.Context, key string) error {
	if mock.DeleteFunc == nil {
		panic("localStorageMock.DeleteFunc: method is nil but localStorage.Delete was just called")
	}
	callInfo := struct {
		Ctx context.Context
		Key string
	}{Ctx: ctx, Key: key}
	mock.lockDelete.Lock()
	mock.calls.Delete = append(mock.calls.Delete, callInfo)
	mock.lockDelete.Unlock()
	return mock.DeleteFunc(ctx, key)
}

func (mock *localStorageMock) DeleteCalls() []struct {
	Ctx context.Context
	Key string
} {
	mock.lockDelete.RLock()
	calls := mock.calls.Delete
	mock.lockDelete.RUnlock()
	return calls
}

func (mock *localStorageMock) Get(ctx context.Context, key string) (string, bool, error) {
	if mock.GetFunc == nil {
		panic("localStorageMock.GetFunc: method is nil but localStorage.Get was just called")
	}
	callInfo := struct {
		Ctx context.Context
		Key string
	}{Ctx: ctx, Key: key}
	mock.lockGet.Lock()
	mock.calls.Get = append(mock.calls.Get, callInfo)
	mock.lockGet.Unlock()
	return mock.GetFunc(ctx, key)
}

func (mock *localStorageMock) GetCalls() []struct {
	Ctx context.Context
	Key string
} {
	mock.lockGet.RLock()
	calls := mock.calls.Get
	mock.lockGet.RUnlock()
	return calls
}

func (mock *localStorageMock) Set(ctx context.Context, key string, value string) error {
	if mock.SetFunc == nil {
		panic("localStorageMock.SetFunc: method is nil but localStorage.Set was just called")
	}
	callInfo := struct {
		Ctx   context.Context
		Key   string
		Value string
	}{Ctx: ctx, Key: key, Value: value}
	mock.lockSet.Lock()
	mock.calls.Set = append(mock.calls.Set, callInfo)
	mock.lockSet.Unlock()
	return mock.SetFunc(ctx, key, value)
}

func (mock *localStorageMock) SetCalls() []struct {
	Ctx   context.Context
	Key   string
	Value string
} {
	mock.lockSet.RLock()
	calls := mock.calls.Set
	mock.lockSet.RUnlock()
	return calls
}
