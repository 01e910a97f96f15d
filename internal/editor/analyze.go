package editor

import (
	"context"
	"errors"
	"log/slog"

	"github.com/google/uuid"

	"github.com/heartmarshall/writemate-backend/internal/domain"
)

const genericAnalysisError = "Analysis failed. Please try again."

// AnalyzeOptions carries the writer context sent with an analysis.
type AnalyzeOptions struct {
	Persona            *domain.Persona
	HistoricalPatterns []string
}

// humanized is implemented by errors that carry a message fit for the writer
// and a diagnostic for the logs.
type humanized interface {
	UserMessage() string
	Diagnostic() string
}

func (e *Editor) canAnalyzeLocked() bool {
	return e.doc != nil &&
		e.analysisState != AnalysisAnalyzing &&
		domain.CountWords(e.content) >= e.cfg.MinAnalyzeWords
}

// CanAnalyze reports whether the analyze action is enabled.
func (e *Editor) CanAnalyze() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.canAnalyzeLocked()
}

// Analyze saves pending edits, sends the document for analysis and applies
// the result. It cannot be cancelled once the request is sent.
func (e *Editor) Analyze(ctx context.Context, opts AnalyzeOptions) (*domain.AnalysisResult, error) {
	e.mu.Lock()
	switch {
	case e.doc == nil:
		e.mu.Unlock()
		return nil, ErrNoDocument
	case e.analysisState == AnalysisAnalyzing:
		e.mu.Unlock()
		return nil, ErrAnalysisInFlight
	case domain.CountWords(e.content) < e.cfg.MinAnalyzeWords:
		e.mu.Unlock()
		return nil, domain.NewValidationError("content", "write at least a few sentences before analyzing")
	}
	id := e.doc.ID
	prev := e.analysisState
	e.analysisState = AnalysisAnalyzing
	e.analysisErr = ""
	e.mu.Unlock()

	if err := e.Flush(ctx); err != nil {
		e.finishAnalysis(id, prev, "Your latest changes could not be saved. Please try again.")
		return nil, err
	}

	e.mu.Lock()
	content := e.lastSaved.content
	e.mu.Unlock()

	// Detached so a client disconnect does not abandon a running analysis.
	actx := context.WithoutCancel(ctx)
	result, err := e.analyzer.AnalyzeDocument(actx, domain.AnalysisRequest{
		DocumentID:         id,
		Content:            content,
		Persona:            opts.Persona,
		HistoricalPatterns: opts.HistoricalPatterns,
	})
	if err != nil {
		e.finishAnalysis(id, AnalysisReady, e.humanize(err))
		return nil, err
	}

	if _, err := e.docs.ApplyAnalysis(actx, id, *result); err != nil {
		e.log.Error("apply analysis", slog.String("document_id", id.String()), slog.String("error", err.Error()))
		e.finishAnalysis(id, AnalysisReady, genericAnalysisError)
		return nil, err
	}

	e.mu.Lock()
	if e.doc != nil && e.doc.ID == id {
		e.analysisState = AnalysisAnnotated
		scores := result.Scores
		e.lastScores = &scores
		e.lastSummary = result.Summary
	}
	e.mu.Unlock()
	return result, nil
}

func (e *Editor) finishAnalysis(id uuid.UUID, state AnalysisState, msg string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.doc == nil || e.doc.ID != id {
		return
	}
	if e.analysisState == AnalysisAnalyzing {
		e.analysisState = state
	}
	e.analysisErr = msg
}

func (e *Editor) humanize(err error) string {
	var h humanized
	if errors.As(err, &h) {
		e.log.Error("analysis request failed", slog.String("diagnostic", h.Diagnostic()))
		return h.UserMessage()
	}
	e.log.Error("analysis request failed", slog.String("error", err.Error()))
	return genericAnalysisError
}

// QuickCheck runs a lightweight check of the current text. Nothing is stored.
func (e *Editor) QuickCheck(ctx context.Context) (*domain.QuickCheckResult, error) {
	e.mu.Lock()
	if e.doc == nil {
		e.mu.Unlock()
		return nil, ErrNoDocument
	}
	content := e.content
	e.mu.Unlock()

	res, err := e.analyzer.QuickCheck(ctx, content)
	if err != nil {
		return nil, err
	}
	return res, nil
}
