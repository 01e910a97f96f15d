package vocabulary

import (
	"strings"

	"github.com/heartmarshall/writemate-backend/internal/domain"
)

// AddWordInput holds the parameters for adding a word.
type AddWordInput struct {
	Word            string
	Definition      string
	PartOfSpeech    string
	ExampleSentence *string
}

// Validate checks all fields and collects all errors.
func (i AddWordInput) Validate() error {
	var errs domain.ValidationError

	word := strings.TrimSpace(i.Word)
	if word == "" {
		errs.Add("word", "required")
	}
	if len([]rune(word)) > 100 {
		errs.Add("word", "max 100 characters")
	}
	if strings.TrimSpace(i.Definition) == "" {
		errs.Add("definition", "required")
	}
	if strings.TrimSpace(i.PartOfSpeech) == "" {
		errs.Add("part_of_speech", "required")
	}

	return errs.Err()
}

// UpdateWordInput holds a partial update. The word itself cannot change.
type UpdateWordInput struct {
	Definition      *string
	PartOfSpeech    *string
	ExampleSentence *string // nil = don't change
	IsLearned       *bool
}

// Validate checks all fields and collects all errors.
func (i UpdateWordInput) Validate() error {
	var errs domain.ValidationError

	if i.Definition == nil && i.PartOfSpeech == nil && i.ExampleSentence == nil && i.IsLearned == nil {
		errs.Add("input", "at least one field must be provided")
	}
	if i.Definition != nil && strings.TrimSpace(*i.Definition) == "" {
		errs.Add("definition", "required")
	}
	if i.PartOfSpeech != nil && strings.TrimSpace(*i.PartOfSpeech) == "" {
		errs.Add("part_of_speech", "required")
	}

	return errs.Err()
}
