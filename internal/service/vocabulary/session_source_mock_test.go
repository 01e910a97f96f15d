package vocabulary

import (
	"github.com/google/uuid"
	"sync"
)

var _ sessionSource = &sessionSourceMock{}

type sessionSourceMock struct {
	SessionIDFunc func() (uuid.UUID, bool)

	calls struct {
		SessionID []struct{}
	}
	lockSessionID sync.RWMutex
}

func (mock *sessionSourceMock) SessionID() (uuid.UUID, bool) {
	if mock.SessionIDFunc == nil {
		panic("sessionSourceMock.SessionIDFunc: method is nil but sessionSource.SessionID was just called")
	}
	callInfo := struct{}{}
	mock.lockSessionID.Lock()
	mock.calls.SessionID = append(mock.calls.SessionID, callInfo)
	mock.lockSessionID.Unlock()
	return mock.SessionIDFunc()
}

func (mock *sessionSourceMock) SessionIDCalls() []struct{} {
	mock.lockSessionID.RLock()
	calls := mock.calls.SessionID
	mock.lockSessionID.RUnlock()
	return calls
}
