package vocabulary

import (
	"context"
	"github.com/heartmarshall/writemate-backend/internal/domain"
	"sync"
)

var _ extractor = &extractorMock{}

type extractorMock struct {
	ExtractVocabularyFunc func(ctx context.Context, content string) ([]domain.VocabularySuggestion, error)

	calls struct {
		ExtractVocabulary []struct {
			Ctx     context.Context
			Content string
		}
	}
	lockExtractVocabulary sync.RWMutex
}

func (mock *extractorMock) ExtractVocabulary(ctx context.Context, content string) ([]domain.VocabularySuggestion, error) {
	if mock.ExtractVocabularyFunc == nil {
		panic("extractorMock.ExtractVocabularyFunc: method is nil but extractor.ExtractVocabulary was just called")
	}
	callInfo := struct {
		Ctx     context.Context
		Content string
	}{Ctx: ctx, Content: content}
	mock.lockExtractVocabulary.Lock()
	mock.calls.ExtractVocabulary = append(mock.calls.ExtractVocabulary, callInfo)
	mock.lockExtractVocabulary.Unlock()
	return mock.ExtractVocabularyFunc(ctx, content)
}

func (mock *extractorMock) ExtractVocabularyCalls() []struct {
	Ctx     context.Context
	Content string
} {
	mock.lockExtractVocabulary.RLock()
	calls := mock.calls.ExtractVocabulary
	mock.lockExtractVocabulary.RUnlock()
	return calls
}
