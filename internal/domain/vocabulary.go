package domain

import (
	"time"

	"github.com/google/uuid"
)

// VocabularyWord is an entry in a session's personal vocabulary bank.
type VocabularyWord struct {
	ID              uuid.UUID
	SessionID       uuid.UUID
	Word            string
	WordNormalized  string
	Definition      string
	PartOfSpeech    string
	ExampleSentence *string
	IsLearned       bool
	ReviewCount     int
	CreatedAt       time.Time
}

// VocabularyUpdate is a partial update of a word. Nil fields are left untouched.
type VocabularyUpdate struct {
	Definition      *string
	PartOfSpeech    *string
	ExampleSentence *string
	IsLearned       *bool
}

// IsEmpty reports whether the update changes nothing.
func (u VocabularyUpdate) IsEmpty() bool {
	return u.Definition == nil && u.PartOfSpeech == nil && u.ExampleSentence == nil && u.IsLearned == nil
}
