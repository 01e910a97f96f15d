package editor

import (
	"context"
	"github.com/heartmarshall/writemate-backend/internal/domain"
	"sync"
)

var _ analyzer = &analyzerMock{}

type analyzerMock struct {
	AnalyzeDocumentFunc func(ctx context.Context, req domain.AnalysisRequest) (*domain.AnalysisResult, error)
	QuickCheckFunc      func(ctx context.Context, content string) (*domain.QuickCheckResult, error)

	calls struct {
		AnalyzeDocument []struct {
			Ctx context.Context
			Req domain.AnalysisRequest
		}
		QuickCheck      []struct {
			Ctx     context.Context
			Content string
		}
	}
	lockAnalyzeDocument sync.RWMutex
	lockQuickCheck      sync.RWMutex
}

func (mock *analyzerMock) AnalyzeDocument(ctx context.Context, req domain.AnalysisRequest) (*domain.AnalysisResult, error) {
	if mock.AnalyzeDocumentFunc == nil {
		panic("analyzerMock.AnalyzeDocumentFunc: method is nil but analyzer.AnalyzeDocument was just called")
	}
	callInfo := struct {
		Ctx context.Context
		Req domain.AnalysisRequest
	}{Ctx: ctx, Req: req}
	mock.lockAnalyzeDocument.Lock()
	mock.calls.AnalyzeDocument = append(mock.calls.AnalyzeDocument, callInfo)
	mock.lockAnalyzeDocument.Unlock()
	return mock.AnalyzeDocumentFunc(ctx, req)
}

func (mock *analyzerMock) AnalyzeDocumentCalls() []struct {
	Ctx context.Context
	Req domain.AnalysisRequest
} {
	mock.lockAnalyzeDocument.RLock()
	calls := mock.calls.AnalyzeDocument
	mock.lockAnalyzeDocument.RUnlock()
	return calls
}

func (mock *analyzerMock) QuickCheck(ctx context.Context, content string) (*domain.QuickCheckResult, error) {
	if mock.QuickCheckFunc == nil {
		panic("analyzerMock.QuickCheckFunc: method is nil but analyzer.QuickCheck was just called")
	}
	callInfo := struct {
		Ctx     context.Context
		Content string
	}{Ctx: ctx, Content: content}
	mock.lockQuickCheck.Lock()
	mock.calls.QuickCheck = append(mock.calls.QuickCheck, callInfo)
	mock.lockQuickCheck.Unlock()
	return mock.QuickCheckFunc(ctx, content)
}

func (mock *analyzerMock) QuickCheckCalls() []struct {
	Ctx     context.Context
	Content string
} {
	mock.lockQuickCheck.RLock()
	calls := mock.calls.QuickCheck
	mock.lockQuickCheck.RUnlock()
	return calls
}
