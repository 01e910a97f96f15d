package document

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strings"

	"github.com/google/uuid"

	"github.com/heartmarshall/writemate-backend/internal/domain"
)

// FetchDocuments loads the session's documents, most recently updated first.
func (s *Service) FetchDocuments(ctx context.Context) ([]domain.Document, error) {
	sessionID, err := s.sessionID()
	if err != nil {
		return nil, err
	}

	s.setLoading(true)
	docs, err := s.docs.ListBySession(ctx, sessionID)
	s.setLoading(false)
	if err != nil {
		return nil, fmt.Errorf("list documents: %w", err)
	}

	s.mu.Lock()
	s.documents = docs
	s.mu.Unlock()

	s.notify()
	return slices.Clone(docs), nil
}

// CreateDocument inserts an empty document, prepends it to the list and
// makes it current. An empty title becomes domain.DefaultDocumentTitle.
func (s *Service) CreateDocument(ctx context.Context, title string) (*domain.Document, error) {
	sessionID, err := s.sessionID()
	if err != nil {
		return nil, err
	}

	title = strings.TrimSpace(title)
	if title == "" {
		title = domain.DefaultDocumentTitle
	}
	if err := validateTitle(title); err != nil {
		return nil, err
	}

	doc, err := s.docs.Create(ctx, sessionID, title)
	if err != nil {
		return nil, fmt.Errorf("create document: %w", err)
	}

	s.mu.Lock()
	s.documents = append([]domain.Document{*doc}, s.documents...)
	current := *doc
	s.current = &current
	s.setAnnotationsLocked(nil)
	s.mu.Unlock()

	s.log.InfoContext(ctx, "document created", slog.String("document_id", doc.ID.String()))
	s.notify()

	out := *doc
	return &out, nil
}

// UpdateDocument persists a partial update and replaces the list entry and
// the current document with the returned row.
func (s *Service) UpdateDocument(ctx context.Context, id uuid.UUID, upd domain.DocumentUpdate) (*domain.Document, error) {
	sessionID, err := s.sessionID()
	if err != nil {
		return nil, err
	}
	if err := validateUpdate(upd); err != nil {
		return nil, err
	}

	doc, err := s.docs.Update(ctx, sessionID, id, upd)
	if err != nil {
		return nil, fmt.Errorf("update document: %w", err)
	}

	s.mu.Lock()
	s.replaceLocked(*doc)
	s.mu.Unlock()

	s.notify()

	out := *doc
	return &out, nil
}

// DeleteDocument removes a document. If it was current, the current
// document and its annotations are cleared.
func (s *Service) DeleteDocument(ctx context.Context, id uuid.UUID) error {
	sessionID, err := s.sessionID()
	if err != nil {
		return err
	}

	if err := s.docs.Delete(ctx, sessionID, id); err != nil {
		return fmt.Errorf("delete document: %w", err)
	}

	s.mu.Lock()
	s.documents = slices.DeleteFunc(s.documents, func(d domain.Document) bool { return d.ID == id })
	if s.current != nil && s.current.ID == id {
		s.current = nil
		s.setAnnotationsLocked(nil)
	}
	s.mu.Unlock()

	s.log.InfoContext(ctx, "document deleted", slog.String("document_id", id.String()))
	s.notify()
	return nil
}

// LoadDocument fetches a document together with its active annotations and
// makes both current.
func (s *Service) LoadDocument(ctx context.Context, id uuid.UUID) (*domain.Document, error) {
	sessionID, err := s.sessionID()
	if err != nil {
		return nil, err
	}

	doc, err := s.docs.GetByID(ctx, sessionID, id)
	if err != nil {
		return nil, fmt.Errorf("get document: %w", err)
	}
	items, err := s.annotations.ListActive(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("list annotations: %w", err)
	}

	s.mu.Lock()
	current := *doc
	s.current = &current
	s.setAnnotationsLocked(items)
	s.mu.Unlock()

	s.notify()

	out := *doc
	return &out, nil
}

// GetDocument reads a document of the session without changing state.
func (s *Service) GetDocument(ctx context.Context, id uuid.UUID) (*domain.Document, error) {
	sessionID, err := s.sessionID()
	if err != nil {
		return nil, err
	}
	doc, err := s.docs.GetByID(ctx, sessionID, id)
	if err != nil {
		return nil, fmt.Errorf("get document: %w", err)
	}
	return doc, nil
}

// CloseDocument clears the current document.
func (s *Service) CloseDocument() {
	s.mu.Lock()
	changed := s.current != nil
	s.current = nil
	s.setAnnotationsLocked(nil)
	s.mu.Unlock()

	if changed {
		s.notify()
	}
}

func (s *Service) setLoading(v bool) {
	s.mu.Lock()
	s.loading = v
	s.mu.Unlock()
}

func validateTitle(title string) error {
	if len([]rune(title)) > 200 {
		return domain.NewValidationError("title", "max 200 characters")
	}
	return nil
}

func validateUpdate(upd domain.DocumentUpdate) error {
	var errs domain.ValidationError

	if upd.IsEmpty() {
		errs.Add("input", "at least one field must be provided")
	}
	if upd.Title != nil {
		title := strings.TrimSpace(*upd.Title)
		if title == "" {
			errs.Add("title", "required")
		} else if len([]rune(title)) > 200 {
			errs.Add("title", "max 200 characters")
		}
	}
	if upd.WordCount != nil && *upd.WordCount < 0 {
		errs.Add("word_count", "must not be negative")
	}
	if upd.Status != nil && !upd.Status.IsValid() {
		errs.Add("status", "must be draft or analyzed")
	}

	return errs.Err()
}
