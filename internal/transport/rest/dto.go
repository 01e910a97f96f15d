package rest

import (
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/writemate-backend/internal/domain"
	"github.com/heartmarshall/writemate-backend/internal/editor"
	"github.com/heartmarshall/writemate-backend/internal/service/progress"
	"github.com/heartmarshall/writemate-backend/internal/service/session"
)

type sessionResponse struct {
	SessionID              *uuid.UUID       `json:"session_id"`
	Persona                *personaResponse `json:"persona"`
	HasCompletedOnboarding bool             `json:"has_completed_onboarding"`
}

type personaResponse struct {
	ID              uuid.UUID `json:"id"`
	Goals           []string  `json:"goals"`
	ExperienceLevel string    `json:"experience_level"`
	FocusAreas      []string  `json:"focus_areas"`
	PreferredTone   string    `json:"preferred_tone"`
	UpdatedAt       time.Time `json:"updated_at"`
}

type documentResponse struct {
	ID          uuid.UUID `json:"id"`
	Title       string    `json:"title"`
	Content     string    `json:"content"`
	ContentHTML string    `json:"content_html"`
	WordCount   int       `json:"word_count"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type annotationResponse struct {
	ID               uuid.UUID `json:"id"`
	DocumentID       uuid.UUID `json:"document_id"`
	StartOffset      int       `json:"start_offset"`
	EndOffset        int       `json:"end_offset"`
	Category         string    `json:"category"`
	Severity         string    `json:"severity"`
	Message          string    `json:"message"`
	Suggestion       *string   `json:"suggestion,omitempty"`
	RewrittenVersion *string   `json:"rewritten_version,omitempty"`
	Principle        *string   `json:"principle,omitempty"`
}

type wordResponse struct {
	ID              uuid.UUID `json:"id"`
	Word            string    `json:"word"`
	Definition      string    `json:"definition"`
	PartOfSpeech    string    `json:"part_of_speech"`
	ExampleSentence *string   `json:"example_sentence"`
	IsLearned       bool      `json:"is_learned"`
	ReviewCount     int       `json:"review_count"`
	CreatedAt       time.Time `json:"created_at"`
}

type patternResponse struct {
	PatternType      string    `json:"pattern_type"`
	Description      string    `json:"description"`
	OccurrenceCount  int       `json:"occurrence_count"`
	LastOccurrenceAt time.Time `json:"last_occurrence_at"`
	IsMastered       bool      `json:"is_mastered"`
}

type editorResponse struct {
	Document           *documentResponse        `json:"document"`
	Content            string                   `json:"content"`
	ContentHTML        string                   `json:"content_html"`
	Marks              []editor.Mark            `json:"marks"`
	WordCount          int                      `json:"word_count"`
	SaveState          editor.SaveState         `json:"save_state"`
	SaveError          string                   `json:"save_error,omitempty"`
	AnalysisState      editor.AnalysisState     `json:"analysis_state"`
	AnalysisError      string                   `json:"analysis_error,omitempty"`
	CanAnalyze         bool                     `json:"can_analyze"`
	Scores             *domain.Scores           `json:"scores,omitempty"`
	Summary            string                   `json:"summary,omitempty"`
	Annotations        []annotationResponse     `json:"annotations"`
	Overlay            []editor.Decoration      `json:"overlay"`
	Selection          editor.Selection         `json:"selection"`
	ScrollTarget       *int                     `json:"scroll_target,omitempty"`
	SelectedAnnotation *uuid.UUID               `json:"selected_annotation,omitempty"`
	ActiveMarks        map[editor.MarkKind]bool `json:"active_marks,omitempty"`
}

type dashboardResponse struct {
	AverageScores    progress.AverageScores `json:"average_scores"`
	Improvement      int                    `json:"improvement"`
	CurrentStreak    int                    `json:"current_streak"`
	Level            int                    `json:"level"`
	CurrentXP        int                    `json:"current_xp"`
	RequiredXP       int                    `json:"required_xp"`
	TotalWords       int                    `json:"total_words"`
	TotalDocuments   int                    `json:"total_documents"`
	AnalyzedCount    int                    `json:"analyzed_count"`
	LatestDocument   *documentResponse      `json:"latest_document"`
	ActivePatterns   []patternResponse      `json:"active_patterns"`
	MasteredPatterns []patternResponse      `json:"mastered_patterns"`
	ActiveDays       []string               `json:"active_days"`
}

func toSessionResponse(s session.Snapshot) sessionResponse {
	resp := sessionResponse{SessionID: s.SessionID, HasCompletedOnboarding: s.HasCompletedOnboarding}
	if s.Persona != nil {
		p := toPersonaResponse(s.Persona)
		resp.Persona = &p
	}
	return resp
}

func toPersonaResponse(p *domain.Persona) personaResponse {
	return personaResponse{
		ID:              p.ID,
		Goals:           nonNil(p.Goals),
		ExperienceLevel: p.ExperienceLevel.String(),
		FocusAreas:      nonNil(p.FocusAreas),
		PreferredTone:   p.PreferredTone.String(),
		UpdatedAt:       p.UpdatedAt,
	}
}

func toDocumentResponse(d *domain.Document) *documentResponse {
	if d == nil {
		return nil
	}
	return &documentResponse{
		ID:          d.ID,
		Title:       d.Title,
		Content:     d.Content,
		ContentHTML: d.ContentHTML,
		WordCount:   d.WordCount,
		Status:      string(d.Status),
		CreatedAt:   d.CreatedAt,
		UpdatedAt:   d.UpdatedAt,
	}
}

func toDocumentList(docs []domain.Document) []documentResponse {
	out := make([]documentResponse, len(docs))
	for i := range docs {
		out[i] = *toDocumentResponse(&docs[i])
	}
	return out
}

func toAnnotationList(items []domain.Annotation) []annotationResponse {
	out := make([]annotationResponse, len(items))
	for i, a := range items {
		out[i] = annotationResponse{
			ID:               a.ID,
			DocumentID:       a.DocumentID,
			StartOffset:      a.StartOffset,
			EndOffset:        a.EndOffset,
			Category:         a.Category,
			Severity:         string(a.Severity),
			Message:          a.Message,
			Suggestion:       a.Suggestion,
			RewrittenVersion: a.RewrittenVersion,
			Principle:        a.Principle,
		}
	}
	return out
}

func toWordResponse(w *domain.VocabularyWord) wordResponse {
	return wordResponse{
		ID:              w.ID,
		Word:            w.Word,
		Definition:      w.Definition,
		PartOfSpeech:    w.PartOfSpeech,
		ExampleSentence: w.ExampleSentence,
		IsLearned:       w.IsLearned,
		ReviewCount:     w.ReviewCount,
		CreatedAt:       w.CreatedAt,
	}
}

func toWordList(words []domain.VocabularyWord) []wordResponse {
	out := make([]wordResponse, len(words))
	for i := range words {
		out[i] = toWordResponse(&words[i])
	}
	return out
}

func toPatternList(patterns []domain.WritingPattern) []patternResponse {
	out := make([]patternResponse, len(patterns))
	for i, p := range patterns {
		out[i] = patternResponse{
			PatternType:      p.PatternType,
			Description:      p.Description,
			OccurrenceCount:  p.OccurrenceCount,
			LastOccurrenceAt: p.LastOccurrenceAt,
			IsMastered:       p.IsMastered,
		}
	}
	return out
}

func toEditorResponse(st editor.State) editorResponse {
	return editorResponse{
		Document:           toDocumentResponse(st.Document),
		Content:            st.Content,
		ContentHTML:        st.ContentHTML,
		Marks:              nonNil(st.Marks),
		WordCount:          st.WordCount,
		SaveState:          st.SaveState,
		SaveError:          st.SaveError,
		AnalysisState:      st.AnalysisState,
		AnalysisError:      st.AnalysisError,
		CanAnalyze:         st.CanAnalyze,
		Scores:             st.Scores,
		Summary:            st.Summary,
		Annotations:        toAnnotationList(st.Annotations),
		Overlay:            nonNil(st.Overlay),
		Selection:          st.Selection,
		ScrollTarget:       st.ScrollTarget,
		SelectedAnnotation: st.SelectedAnnotation,
	}
}

func toDashboardResponse(d progress.Dashboard) dashboardResponse {
	days := make([]string, len(d.ActiveDays))
	for i, day := range d.ActiveDays {
		days[i] = day.Format(time.DateOnly)
	}
	return dashboardResponse{
		AverageScores:    d.AverageScores,
		Improvement:      d.Improvement,
		CurrentStreak:    d.CurrentStreak,
		Level:            d.Level,
		CurrentXP:        d.CurrentXP,
		RequiredXP:       d.RequiredXP,
		TotalWords:       d.TotalWords,
		TotalDocuments:   d.TotalDocuments,
		AnalyzedCount:    d.AnalyzedCount,
		LatestDocument:   toDocumentResponse(d.LatestDocument),
		ActivePatterns:   toPatternList(d.ActivePatterns),
		MasteredPatterns: toPatternList(d.MasteredPatterns),
		ActiveDays:       days,
	}
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
