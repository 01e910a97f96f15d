package middleware

import (
	"github.com/google/uuid"
	"sync"
)

var _ clientTokens = &clientTokensMock{}

type clientTokensMock struct {
	IssueFunc    func() (uuid.UUID, string, error)
	ValidateFunc func(token string) (uuid.UUID, error)

	calls struct {
		Issue    []struct{}
		Validate []struct {
			Token string
		}
	}
	lockIssue    sync.RWMutex
	lockValidate sync.RWMutex
}

func (mock *clientTokensMock) Issue() (uuid.UUID, string, error) {
	if mock.IssueFunc == nil {
		panic("clientTokensMock.IssueFunc: method is nil but clientTokens.Issue was just called")
	}
	callInfo := struct{}{}
	mock.lockIssue.Lock()
	mock.calls.Issue = append(mock.calls.Issue, callInfo)
	mock.lockIssue.Unlock()
	return mock.IssueFunc()
}

func (mock *clientTokensMock) IssueCalls() []struct{} {
	mock.lockIssue.RLock()
	calls := mock.calls.Issue
	mock.lockIssue.RUnlock()
	return calls
}

func (mock *clientTokensMock) Validate(token string) (uuid.UUID, error) {
	if mock.ValidateFunc == nil {
		panic("clientTokensMock.ValidateFunc: method is nil but clientTokens.Validate was just called")
	}
	callInfo := struct {
		Token string
	}{Token: token}
	mock.lockValidate.Lock()
	mock.calls.Validate = append(mock.calls.Validate, callInfo)
	mock.lockValidate.Unlock()
	return mock.ValidateFunc(token)
}

func (mock *clientTokensMock) ValidateCalls() []struct {
	Token string
} {
	mock.lockValidate.RLock()
	calls := mock.calls.Validate
	mock.lockValidate.RUnlock()
	return calls
}
