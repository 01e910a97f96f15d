package document

import (
	"context"
	"github.com/google/uuid"
	"github.com/heartmarshall/writemate-backend/internal/domain"
	"sync"
)

var _ progressRepo = &progressRepoMock{}

type progressRepoMock struct {
	CreateMetricFunc   func(ctx context.Context, m domain.ProgressMetric) (*domain.ProgressMetric, error)
	RecordAnalysisFunc func(ctx context.Context, sessionID uuid.UUID, documentID uuid.UUID, summary string, raw []byte) error
	UpsertPatternFunc  func(ctx context.Context, sessionID uuid.UUID, p domain.DetectedPattern) (*domain.WritingPattern, error)

	calls struct {
		CreateMetric   []struct {
			Ctx context.Context
			M   domain.ProgressMetric
		}
		RecordAnalysis []struct {
			Ctx        context.Context
			SessionID  uuid.UUID
			DocumentID uuid.UUID
			Summary    string
			Raw        []byte
		}
		UpsertPattern  []struct {
			Ctx       context.Context
			SessionID uuid.UUID
			P         domain.DetectedPattern
		}
	}
	lockCreateMetric   sync.RWMutex
	lockRecordAnalysis sync.RWMutex
	lockUpsertPattern  sync.RWMutex
}

func (mock *progressRepoMock) CreateMetric(ctx context.Context, m domain.ProgressMetric) (*domain.ProgressMetric, error) {
	if mock.CreateMetricFunc == nil {
		panic("progressRepoMock.CreateMetricFunc: method is nil but progressRepo.CreateMetric was just called")
	}
	callInfo := struct {
		Ctx context.Context
		M   domain.ProgressMetric
	}{Ctx: ctx, M: m}
	mock.lockCreateMetric.Lock()
	mock.calls.CreateMetric = append(mock.calls.CreateMetric, callInfo)
	mock.lockCreateMetric.Unlock()
	return mock.CreateMetricFunc(ctx, m)
}

func (mock *progressRepoMock) CreateMetricCalls() []struct {
	Ctx context.Context
	M   domain.ProgressMetric
} {
	mock.lockCreateMetric.RLock()
	calls := mock.calls.CreateMetric
	mock.lockCreateMetric.RUnlock()
	return calls
}

func (mock *progressRepoMock) RecordAnalysis(ctx context.Context, sessionID uuid.UUID, documentID uuid.UUID, summary string, raw []byte) error {
	if mock.RecordAnalysisFunc == nil {
		panic("progressRepoMock.RecordAnalysisFunc: method is nil but progressRepo.RecordAnalysis was just called")
	}
	callInfo := struct {
		Ctx        context.Context
		SessionID  uuid.UUID
		DocumentID uuid.UUID
		Summary    string
		Raw        []byte
	}{Ctx: ctx, SessionID: sessionID, DocumentID: documentID, Summary: summary, Raw: raw}
	mock.lockRecordAnalysis.Lock()
	mock.calls.RecordAnalysis = append(mock.calls.RecordAnalysis, callInfo)
	mock.lockRecordAnalysis.Unlock()
	return mock.RecordAnalysisFunc(ctx, sessionID, documentID, summary, raw)
}

func (mock *progressRepoMock) RecordAnalysisCalls() []struct {
	Ctx        context.Context
	SessionID  uuid.UUID
	DocumentID uuid.UUID
	Summary    string
	Raw        []byte
} {
	mock.lockRecordAnalysis.RLock()
	calls := mock.calls.RecordAnalysis
	mock.lockRecordAnalysis.RUnlock()
	return calls
}

func (mock *progressRepoMock) UpsertPattern(ctx context.Context, sessionID uuid.UUID, p domain.DetectedPattern) (*domain.WritingPattern, error) {
	if mock.UpsertPatternFunc == nil {
		panic("progressRepoMock.UpsertPatternFunc: method is nil but progressRepo.UpsertPattern was just called")
	}
	callInfo := struct {
		Ctx       context.Context
		SessionID uuid.UUID
		P         domain.DetectedPattern
	}{Ctx: ctx, SessionID: sessionID, P: p}
	mock.lockUpsertPattern.Lock()
	mock.calls.UpsertPattern = append(mock.calls.UpsertPattern, callInfo)
	mock.lockUpsertPattern.Unlock()
	return mock.UpsertPatternFunc(ctx, sessionID, p)
}

func (mock *progressRepoMock) UpsertPatternCalls() []struct {
	Ctx       context.Context
	SessionID uuid.UUID
	P         domain.DetectedPattern
} {
	mock.lockUpsertPattern.RLock()
	calls := mock.calls.UpsertPattern
	mock.lockUpsertPattern.RUnlock()
	return calls
}
