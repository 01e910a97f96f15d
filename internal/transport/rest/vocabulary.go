package rest

import (
	"log/slog"
	"net/http"

	"github.com/heartmarshall/writemate-backend/internal/domain"
	"github.com/heartmarshall/writemate-backend/internal/service/vocabulary"
)

// VocabularyHandler serves the personal vocabulary bank.
type VocabularyHandler struct {
	base
}

func NewVocabularyHandler(hub workspaceHub, logger *slog.Logger) *VocabularyHandler {
	return &VocabularyHandler{base{hub: hub, log: logger.With("handler", "vocabulary")}}
}

type addWordRequest struct {
	Word            string  `json:"word"`
	Definition      string  `json:"definition"`
	PartOfSpeech    string  `json:"part_of_speech"`
	ExampleSentence *string `json:"example_sentence"`
}

type updateWordRequest struct {
	Definition      *string `json:"definition"`
	PartOfSpeech    *string `json:"part_of_speech"`
	ExampleSentence *string `json:"example_sentence"`
	IsLearned       *bool   `json:"is_learned"`
}

type learnedRequest struct {
	Learned *bool `json:"learned"`
}

type extractRequest struct {
	Content string `json:"content"`
}

type vocabularyListResponse struct {
	Words          []wordResponse `json:"words"`
	LearnedCount   int            `json:"learned_count"`
	UnlearnedCount int            `json:"unlearned_count"`
}

// List handles GET /api/vocabulary, newest first.
func (h *VocabularyHandler) List(w http.ResponseWriter, r *http.Request) {
	ws, ok := h.workspace(w, r)
	if !ok {
		return
	}

	var words []domain.VocabularyWord
	err := ws.Run(func() error {
		var err error
		words, err = ws.Vocabulary().FetchWords(r.Context())
		return err
	})
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	snap := ws.Vocabulary().Snapshot()
	writeJSON(w, http.StatusOK, vocabularyListResponse{
		Words:          toWordList(words),
		LearnedCount:   len(snap.Learned()),
		UnlearnedCount: len(snap.Unlearned()),
	})
}

// Add handles POST /api/vocabulary.
func (h *VocabularyHandler) Add(w http.ResponseWriter, r *http.Request) {
	var req addWordRequest
	if !decodeJSON(w, r, &req, false) {
		return
	}
	ws, ok := h.workspace(w, r)
	if !ok {
		return
	}

	var word *domain.VocabularyWord
	err := ws.Run(func() error {
		var err error
		word, err = ws.Vocabulary().AddWord(r.Context(), vocabulary.AddWordInput{
			Word:            req.Word,
			Definition:      req.Definition,
			PartOfSpeech:    req.PartOfSpeech,
			ExampleSentence: req.ExampleSentence,
		})
		return err
	})
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, toWordResponse(word))
}

// Update handles PATCH /api/vocabulary/{id}.
func (h *VocabularyHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	var req updateWordRequest
	if !decodeJSON(w, r, &req, false) {
		return
	}

	h.mutate(w, r, func(svc *vocabulary.Service) (*domain.VocabularyWord, error) {
		return svc.UpdateWord(r.Context(), id, vocabulary.UpdateWordInput{
			Definition:      req.Definition,
			PartOfSpeech:    req.PartOfSpeech,
			ExampleSentence: req.ExampleSentence,
			IsLearned:       req.IsLearned,
		})
	})
}

// MarkLearned handles POST /api/vocabulary/{id}/learned. An empty body
// marks the word as learned.
func (h *VocabularyHandler) MarkLearned(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	var req learnedRequest
	if !decodeJSON(w, r, &req, true) {
		return
	}
	learned := req.Learned == nil || *req.Learned

	h.mutate(w, r, func(svc *vocabulary.Service) (*domain.VocabularyWord, error) {
		return svc.MarkAsLearned(r.Context(), id, learned)
	})
}

// Review handles POST /api/vocabulary/{id}/review.
func (h *VocabularyHandler) Review(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	h.mutate(w, r, func(svc *vocabulary.Service) (*domain.VocabularyWord, error) {
		return svc.IncrementReviewCount(r.Context(), id)
	})
}

// Delete handles DELETE /api/vocabulary/{id}.
func (h *VocabularyHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	ws, ok := h.workspace(w, r)
	if !ok {
		return
	}

	err := ws.Run(func() error {
		return ws.Vocabulary().DeleteWord(r.Context(), id)
	})
	if err != nil {
		h.handleError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Extract handles POST /api/vocabulary/extract. Without content the open
// document is used.
func (h *VocabularyHandler) Extract(w http.ResponseWriter, r *http.Request) {
	var req extractRequest
	if !decodeJSON(w, r, &req, true) {
		return
	}
	ws, ok := h.workspace(w, r)
	if !ok {
		return
	}

	suggestions, err := ws.ExtractVocabulary(r.Context(), req.Content)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"suggestions": nonNil(suggestions)})
}

func (h *VocabularyHandler) mutate(w http.ResponseWriter, r *http.Request, fn func(*vocabulary.Service) (*domain.VocabularyWord, error)) {
	ws, ok := h.workspace(w, r)
	if !ok {
		return
	}

	var word *domain.VocabularyWord
	err := ws.Run(func() error {
		var err error
		word, err = fn(ws.Vocabulary())
		return err
	})
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toWordResponse(word))
}
