package document

import (
	"context"
	"github.com/google/uuid"
	"github.com/heartmarshall/writemate-backend/internal/domain"
	"sync"
)

var _ annotationRepo = &annotationRepoMock{}

type annotationRepoMock struct {
	CreateBatchFunc      func(ctx context.Context, documentID uuid.UUID, items []domain.Annotation) ([]domain.Annotation, error)
	DeleteByDocumentFunc func(ctx context.Context, documentID uuid.UUID) (int64, error)
	DismissFunc          func(ctx context.Context, sessionID uuid.UUID, id uuid.UUID) error
	ListActiveFunc       func(ctx context.Context, documentID uuid.UUID) ([]domain.Annotation, error)

	calls struct {
		CreateBatch      []struct {
			Ctx        context.Context
			DocumentID uuid.UUID
			Items      []domain.Annotation
		}
		DeleteByDocument []struct {
			Ctx        context.Context
			DocumentID uuid.UUID
		}
		Dismiss          []struct {
			Ctx       context.Context
			SessionID uuid.UUID
			ID        uuid.UUID
		}
		ListActive       []struct {
			Ctx        context.Context
			DocumentID uuid.UUID
		}
	}
	lockCreateBatch      sync.RWMutex
	lockDeleteByDocument sync.RWMutex
	lockDismiss          sync.RWMutex
	lockListActive       sync.RWMutex
}

func (mock *annotationRepoMock) CreateBatch(ctx context.Context, documentID uuid.UUID, items []domain.Annotation) ([]domain.Annotation, error) {
	if mock.CreateBatchFunc == nil {
		panic("annotationRepoMock.CreateBatchFunc: method is nil but annotationRepo.CreateBatch was just called")
	}
	callInfo := struct {
		Ctx        context.Context
		DocumentID uuid.UUID
		Items      []domain.Annotation
	}{Ctx: ctx, DocumentID: documentID, Items: items}
	mock.lockCreateBatch.Lock()
	mock.calls.CreateBatch = append(mock.calls.CreateBatch, callInfo)
	mock.lockCreateBatch.Unlock()
	return mock.CreateBatchFunc(ctx, documentID, items)
}

func (mock *annotationRepoMock) CreateBatchCalls() []struct {
	Ctx        context.Context
	DocumentID uuid.UUID
	Items      []domain.Annotation
} {
	mock.lockCreateBatch.RLock()
	calls := mock.calls.CreateBatch
	mock.lockCreateBatch.RUnlock()
	return calls
}

func (mock *annotationRepoMock) DeleteByDocument(ctx context.Context, documentID uuid.UUID) (int64, error) {
	if mock.DeleteByDocumentFunc == nil {
		panic("annotationRepoMock.DeleteByDocumentFunc: method is nil but annotationRepo.DeleteByDocument was just called")
	}
	callInfo := struct {
		Ctx        context.Context
		DocumentID uuid.UUID
	}{Ctx: ctx, DocumentID: documentID}
	mock.lockDeleteByDocument.Lock()
	mock.calls.DeleteByDocument = append(mock.calls.DeleteByDocument, callInfo)
	mock.lockDeleteByDocument.Unlock()
	return mock.DeleteByDocumentFunc(ctx, documentID)
}

func (mock *annotationRepoMock) DeleteByDocumentCalls() []struct {
	Ctx        context.Context
	DocumentID uuid.UUID
} {
	mock.lockDeleteByDocument.RLock()
	calls := mock.calls.DeleteByDocument
	mock.lockDeleteByDocument.RUnlock()
	return calls
}

func (mock *annotationRepoMock) Dismiss(ctx context.Context, sessionID uuid.UUID, id uuid.UUID) error {
	if mock.DismissFunc == nil {
		panic("annotationRepoMock.DismissFunc: method is nil but annotationRepo.Dismiss was just called")
	}
	callInfo := struct {
		Ctx       context.Context
		SessionID uuid.UUID
		ID        uuid.UUID
	}{Ctx: ctx, SessionID: sessionID, ID: id}
	mock.lockDismiss.Lock()
	mock.calls.Dismiss = append(mock.calls.Dismiss, callInfo)
	mock.lockDismiss.Unlock()
	return mock.DismissFunc(ctx, sessionID, id)
}

func (mock *annotationRepoMock) DismissCalls() []struct {
	Ctx       context.Context
	SessionID uuid.UUID
	ID        uuid.UUID
} {
	mock.lockDismiss.RLock()
	calls := mock.calls.Dismiss
	mock.lockDismiss.RUnlock()
	return calls
}

func (mock *annotationRepoMock) ListActive(ctx context.Context, documentID uuid.UUID) ([]domain.Annotation, error) {
	if mock.ListActiveFunc == nil {
		panic("annotationRepoMock.ListActiveFunc: method is nil but annotationRepo.ListActive was just called")
	}
	callInfo := struct {
		Ctx        context.Context
		DocumentID uuid.UUID
	}{Ctx: ctx, DocumentID: documentID}
	mock.lockListActive.Lock()
	mock.calls.ListActive = append(mock.calls.ListActive, callInfo)
	mock.lockListActive.Unlock()
	return mock.ListActiveFunc(ctx, documentID)
}

func (mock *annotationRepoMock) ListActiveCalls() []struct {
	Ctx        context.Context
	DocumentID uuid.UUID
} {
	mock.lockListActive.RLock()
	calls := mock.calls.ListActive
	mock.lockListActive.RUnlock()
	return calls
}
