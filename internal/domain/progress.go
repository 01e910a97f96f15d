package domain

import (
	"time"

	"github.com/google/uuid"
)

// ProgressMetric is one scoring snapshot, created per completed analysis.
type ProgressMetric struct {
	ID              uuid.UUID
	DocumentID      uuid.UUID
	SessionID       uuid.UUID
	GrammarScore    float64
	ClarityScore    float64
	VocabularyScore float64
	OverallScore    float64
	CreatedAt       time.Time
}

// WritingPattern is a recurring category of mistake tracked across a session.
type WritingPattern struct {
	ID               uuid.UUID
	SessionID        uuid.UUID
	PatternType      string
	Description      string
	OccurrenceCount  int
	LastOccurrenceAt time.Time
	IsMastered       bool
}

// Scores are the four category scores returned by an analysis (0-100).
type Scores struct {
	Grammar float64 `json:"grammar"`
	Clarity float64 `json:"clarity"`
	Voice   float64 `json:"voice"`
	Overall float64 `json:"overall"`
}

// DetectedPattern is a pattern reported by one analysis run.
type DetectedPattern struct {
	PatternType string
	Description string
}

// AnalysisResult is the part of an analysis response that gets persisted.
type AnalysisResult struct {
	Content     string
	Annotations []Annotation
	Scores      Scores
	Patterns    []DetectedPattern
	Summary     string
	RawResponse []byte

	VocabularySuggestions []VocabularySuggestion
}

// ProgressComparison is the analysis service's view of a session's trend.
type ProgressComparison struct {
	Improvement   float64  `json:"improvement"`
	AreasImproved []string `json:"areas_improved"`
	AreasToFocus  []string `json:"areas_to_focus"`
}
