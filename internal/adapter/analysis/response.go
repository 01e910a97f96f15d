package analysis

import (
	"github.com/google/uuid"

	"github.com/heartmarshall/writemate-backend/internal/domain"
)

// ---------------------------------------------------------------------------
// Requests
// ---------------------------------------------------------------------------

type apiPersona struct {
	Goals           []string `json:"goals"`
	ExperienceLevel string   `json:"experience_level"`
	FocusAreas      []string `json:"focus_areas"`
	PreferredTone   string   `json:"preferred_tone"`
}

type analyzeRequest struct {
	DocumentID         uuid.UUID   `json:"document_id"`
	Content            string      `json:"content"`
	Persona            *apiPersona `json:"persona,omitempty"`
	HistoricalPatterns []string    `json:"historical_patterns,omitempty"`
}

type contentRequest struct {
	Content string `json:"content"`
}

type compareRequest struct {
	SessionID uuid.UUID `json:"session_id"`
}

// ---------------------------------------------------------------------------
// Responses
// ---------------------------------------------------------------------------

type apiAnnotation struct {
	StartOffset      int     `json:"start_offset"`
	EndOffset        int     `json:"end_offset"`
	Category         string  `json:"category"`
	Severity         string  `json:"severity"`
	Message          string  `json:"message"`
	Suggestion       *string `json:"suggestion"`
	RewrittenVersion *string `json:"rewritten_version"`
	Principle        *string `json:"principle"`
}

type apiPattern struct {
	PatternType string `json:"pattern_type"`
	Description string `json:"description"`
}

type analyzeResponse struct {
	Annotations           []apiAnnotation               `json:"annotations"`
	Scores                domain.Scores                 `json:"scores"`
	Patterns              []apiPattern                  `json:"patterns"`
	VocabularySuggestions []domain.VocabularySuggestion `json:"vocabulary_suggestions"`
	Summary               string                        `json:"summary"`
}

func toAPIPersona(p *domain.Persona) *apiPersona {
	if p == nil {
		return nil
	}
	return &apiPersona{
		Goals:           nonNil(p.Goals),
		ExperienceLevel: p.ExperienceLevel.String(),
		FocusAreas:      nonNil(p.FocusAreas),
		PreferredTone:   p.PreferredTone.String(),
	}
}

// mapAnalyzeResponse converts the wire response. Unknown severities are
// downgraded to info so that a single odd item does not fail the analysis.
func mapAnalyzeResponse(content string, resp analyzeResponse, raw []byte) *domain.AnalysisResult {
	out := &domain.AnalysisResult{
		Content:               content,
		Annotations:           make([]domain.Annotation, 0, len(resp.Annotations)),
		Scores:                resp.Scores,
		Patterns:              make([]domain.DetectedPattern, 0, len(resp.Patterns)),
		Summary:               resp.Summary,
		RawResponse:           raw,
		VocabularySuggestions: resp.VocabularySuggestions,
	}

	for _, a := range resp.Annotations {
		sev := domain.Severity(a.Severity)
		if !sev.IsValid() {
			sev = domain.SeverityInfo
		}
		out.Annotations = append(out.Annotations, domain.Annotation{
			StartOffset:      a.StartOffset,
			EndOffset:        a.EndOffset,
			Category:         a.Category,
			Severity:         sev,
			Message:          a.Message,
			Suggestion:       a.Suggestion,
			RewrittenVersion: a.RewrittenVersion,
			Principle:        a.Principle,
		})
	}
	for _, p := range resp.Patterns {
		out.Patterns = append(out.Patterns, domain.DetectedPattern{
			PatternType: p.PatternType,
			Description: p.Description,
		})
	}
	return out
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
