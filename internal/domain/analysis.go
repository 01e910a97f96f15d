package domain

import "github.com/google/uuid"

// AnalysisRequest is what gets sent for a full analysis.
type AnalysisRequest struct {
	DocumentID         uuid.UUID
	Content            string
	Persona            *Persona
	HistoricalPatterns []string
}

// VocabularySuggestion is a word the analysis recommends adding to the bank.
type VocabularySuggestion struct {
	Word            string  `json:"word"`
	Definition      string  `json:"definition"`
	PartOfSpeech    string  `json:"part_of_speech"`
	ExampleSentence string  `json:"example_sentence"`
	Replaces        *string `json:"replaces,omitempty"`
}

// QuickCheckIssue is one finding of a quick check.
type QuickCheckIssue struct {
	Message  string   `json:"message"`
	Severity Severity `json:"severity"`
}

// QuickCheckResult is a lightweight analysis without persisted annotations.
type QuickCheckResult struct {
	HasIssues bool              `json:"has_issues"`
	Issues    []QuickCheckIssue `json:"issues"`
}
