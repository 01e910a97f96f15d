// Package vocabulary is the vocabulary store: the session's personal word bank.
package vocabulary

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/heartmarshall/writemate-backend/internal/domain"
	"github.com/heartmarshall/writemate-backend/pkg/observer"
)

// ErrDuplicateWord is returned when the word is already in the session's bank.
// Its message is shown to users as is. It matches domain.ErrAlreadyExists.
var ErrDuplicateWord error = duplicateWordError{}

type duplicateWordError struct{}

func (duplicateWordError) Error() string { return "This word is already in your vocabulary bank" }
func (duplicateWordError) Unwrap() error { return domain.ErrAlreadyExists }

type wordRepo interface {
	ListBySession(ctx context.Context, sessionID uuid.UUID) ([]domain.VocabularyWord, error)
	Create(ctx context.Context, w domain.VocabularyWord) (*domain.VocabularyWord, error)
	Update(ctx context.Context, sessionID, id uuid.UUID, upd domain.VocabularyUpdate) (*domain.VocabularyWord, error)
	IncrementReviewCount(ctx context.Context, sessionID, id uuid.UUID) (*domain.VocabularyWord, error)
	Delete(ctx context.Context, sessionID, id uuid.UUID) error
}

type extractor interface {
	ExtractVocabulary(ctx context.Context, content string) ([]domain.VocabularySuggestion, error)
}

type sessionSource interface {
	SessionID() (uuid.UUID, bool)
}

// Snapshot is the published state of the store.
type Snapshot struct {
	Words   []domain.VocabularyWord
	Loading bool
}

// Learned returns the learned partition.
func (s Snapshot) Learned() []domain.VocabularyWord {
	return partition(s.Words, true)
}

// Unlearned returns the words still being learned.
func (s Snapshot) Unlearned() []domain.VocabularyWord {
	return partition(s.Words, false)
}

// Service holds the vocabulary bank of one session.
type Service struct {
	words     wordRepo
	extractor extractor
	session   sessionSource
	log       *slog.Logger

	mu      sync.RWMutex
	bank    []domain.VocabularyWord
	loading bool

	subject observer.Subject[Snapshot]
}

// NewService creates a vocabulary store.
func NewService(log *slog.Logger, words wordRepo, extractor extractor, session sessionSource) *Service {
	return &Service{
		words:     words,
		extractor: extractor,
		session:   session,
		log:       log.With("service", "vocabulary"),
	}
}

// Snapshot returns a copy of the current state.
func (s *Service) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	words := slices.Clone(s.bank)
	if words == nil {
		words = []domain.VocabularyWord{}
	}
	return Snapshot{Words: words, Loading: s.loading}
}

// Subscribe registers fn to receive a snapshot after every mutation.
func (s *Service) Subscribe(fn func(Snapshot)) (unsubscribe func()) {
	return s.subject.Subscribe(fn)
}

// Learned returns the learned words.
func (s *Service) Learned() []domain.VocabularyWord { return s.Snapshot().Learned() }

// Unlearned returns the words not yet learned.
func (s *Service) Unlearned() []domain.VocabularyWord { return s.Snapshot().Unlearned() }

// FetchWords loads the bank, newest first.
func (s *Service) FetchWords(ctx context.Context) ([]domain.VocabularyWord, error) {
	sessionID, err := s.sessionID()
	if err != nil {
		return nil, err
	}

	s.setLoading(true)
	words, err := s.words.ListBySession(ctx, sessionID)
	s.setLoading(false)
	if err != nil {
		return nil, fmt.Errorf("list words: %w", err)
	}

	s.mu.Lock()
	s.bank = words
	s.mu.Unlock()

	s.notify()
	return slices.Clone(words), nil
}

// AddWord inserts a word and prepends it to the bank.
func (s *Service) AddWord(ctx context.Context, input AddWordInput) (*domain.VocabularyWord, error) {
	sessionID, err := s.sessionID()
	if err != nil {
		return nil, err
	}
	if err := input.Validate(); err != nil {
		return nil, err
	}

	w, err := s.words.Create(ctx, domain.VocabularyWord{
		SessionID:       sessionID,
		Word:            strings.TrimSpace(input.Word),
		Definition:      strings.TrimSpace(input.Definition),
		PartOfSpeech:    strings.TrimSpace(input.PartOfSpeech),
		ExampleSentence: trimOrNil(input.ExampleSentence),
	})
	if err != nil {
		if errors.Is(err, domain.ErrAlreadyExists) {
			return nil, ErrDuplicateWord
		}
		return nil, fmt.Errorf("add word: %w", err)
	}

	s.mu.Lock()
	s.bank = append([]domain.VocabularyWord{*w}, s.bank...)
	s.mu.Unlock()

	s.log.InfoContext(ctx, "word added", slog.String("word_id", w.ID.String()))
	s.notify()

	out := *w
	return &out, nil
}

// UpdateWord applies a partial update.
func (s *Service) UpdateWord(ctx context.Context, id uuid.UUID, input UpdateWordInput) (*domain.VocabularyWord, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}
	return s.mutate(ctx, id, func(ctx context.Context, sessionID uuid.UUID) (*domain.VocabularyWord, error) {
		return s.words.Update(ctx, sessionID, id, domain.VocabularyUpdate{
			Definition:      trimOrNil(input.Definition),
			PartOfSpeech:    trimOrNil(input.PartOfSpeech),
			ExampleSentence: trimOrNil(input.ExampleSentence),
			IsLearned:       input.IsLearned,
		})
	})
}

// MarkAsLearned sets the learned flag.
func (s *Service) MarkAsLearned(ctx context.Context, id uuid.UUID, learned bool) (*domain.VocabularyWord, error) {
	return s.mutate(ctx, id, func(ctx context.Context, sessionID uuid.UUID) (*domain.VocabularyWord, error) {
		return s.words.Update(ctx, sessionID, id, domain.VocabularyUpdate{IsLearned: &learned})
	})
}

// IncrementReviewCount records one review of a word.
func (s *Service) IncrementReviewCount(ctx context.Context, id uuid.UUID) (*domain.VocabularyWord, error) {
	return s.mutate(ctx, id, func(ctx context.Context, sessionID uuid.UUID) (*domain.VocabularyWord, error) {
		return s.words.IncrementReviewCount(ctx, sessionID, id)
	})
}

// DeleteWord removes a word from the bank.
func (s *Service) DeleteWord(ctx context.Context, id uuid.UUID) error {
	sessionID, err := s.sessionID()
	if err != nil {
		return err
	}
	if err := s.words.Delete(ctx, sessionID, id); err != nil {
		return fmt.Errorf("delete word: %w", err)
	}

	s.mu.Lock()
	s.bank = slices.DeleteFunc(s.bank, func(w domain.VocabularyWord) bool { return w.ID == id })
	s.mu.Unlock()

	s.notify()
	return nil
}

// ExtractSuggestions asks the analysis service for words worth learning.
func (s *Service) ExtractSuggestions(ctx context.Context, content string) ([]domain.VocabularySuggestion, error) {
	if _, err := s.sessionID(); err != nil {
		return nil, err
	}
	if strings.TrimSpace(content) == "" {
		return nil, domain.NewValidationError("content", "required")
	}
	return s.extractor.ExtractVocabulary(ctx, content)
}

func (s *Service) mutate(ctx context.Context, id uuid.UUID, fn func(context.Context, uuid.UUID) (*domain.VocabularyWord, error)) (*domain.VocabularyWord, error) {
	sessionID, err := s.sessionID()
	if err != nil {
		return nil, err
	}

	w, err := fn(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("update word %s: %w", id, err)
	}

	s.mu.Lock()
	for i := range s.bank {
		if s.bank[i].ID == w.ID {
			s.bank[i] = *w
		}
	}
	s.mu.Unlock()

	s.notify()

	out := *w
	return &out, nil
}

func (s *Service) sessionID() (uuid.UUID, error) {
	id, ok := s.session.SessionID()
	if !ok {
		return uuid.Nil, domain.ErrNoSession
	}
	return id, nil
}

func (s *Service) setLoading(v bool) {
	s.mu.Lock()
	s.loading = v
	s.mu.Unlock()
}

func (s *Service) notify() {
	s.subject.Notify(s.Snapshot())
}

func partition(words []domain.VocabularyWord, learned bool) []domain.VocabularyWord {
	out := make([]domain.VocabularyWord, 0, len(words))
	for _, w := range words {
		if w.IsLearned == learned {
			out = append(out, w)
		}
	}
	return out
}

// trimOrNil trims whitespace. Returns nil if result is empty.
func trimOrNil(s *string) *string {
	if s == nil {
		return nil
	}
	t := strings.TrimSpace(*s)
	if t == "" {
		return nil
	}
	return &t
}
