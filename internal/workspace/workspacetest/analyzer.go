package workspacetest

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/heartmarshall/writemate-backend/internal/domain"
)

// Analyzer answers analysis calls from its func fields. A nil field yields an
// empty successful result.
type Analyzer struct {
	AnalyzeFunc    func(ctx context.Context, req domain.AnalysisRequest) (*domain.AnalysisResult, error)
	QuickCheckFunc func(ctx context.Context, content string) (*domain.QuickCheckResult, error)
	ExtractFunc    func(ctx context.Context, content string) ([]domain.VocabularySuggestion, error)
	CompareFunc    func(ctx context.Context, sessionID uuid.UUID) (*domain.ProgressComparison, error)

	mu       sync.Mutex
	requests []domain.AnalysisRequest
}

func (a *Analyzer) AnalyzeDocument(ctx context.Context, req domain.AnalysisRequest) (*domain.AnalysisResult, error) {
	a.mu.Lock()
	a.requests = append(a.requests, req)
	a.mu.Unlock()
	if a.AnalyzeFunc != nil {
		return a.AnalyzeFunc(ctx, req)
	}
	return &domain.AnalysisResult{Content: req.Content}, nil
}

func (a *Analyzer) QuickCheck(ctx context.Context, content string) (*domain.QuickCheckResult, error) {
	if a.QuickCheckFunc != nil {
		return a.QuickCheckFunc(ctx, content)
	}
	return &domain.QuickCheckResult{}, nil
}

func (a *Analyzer) ExtractVocabulary(ctx context.Context, content string) ([]domain.VocabularySuggestion, error) {
	if a.ExtractFunc != nil {
		return a.ExtractFunc(ctx, content)
	}
	return nil, nil
}

func (a *Analyzer) CompareProgress(ctx context.Context, sessionID uuid.UUID) (*domain.ProgressComparison, error) {
	if a.CompareFunc != nil {
		return a.CompareFunc(ctx, sessionID)
	}
	return &domain.ProgressComparison{}, nil
}

// Requests returns the analysis requests received so far.
func (a *Analyzer) Requests() []domain.AnalysisRequest {
	a.mu.Lock()
	defer a.mu.Unlock()
	return append([]domain.AnalysisRequest(nil), a.requests...)
}
