package document

import (
	"context"
	"fmt"
	"log/slog"
	"slices"

	"github.com/google/uuid"

	"github.com/heartmarshall/writemate-backend/internal/domain"
)

// FetchAnnotations returns the active annotations of a document. They become
// the active set only when the document is the current one.
func (s *Service) FetchAnnotations(ctx context.Context, documentID uuid.UUID) ([]domain.Annotation, error) {
	if err := s.checkOwnership(ctx, documentID); err != nil {
		return nil, err
	}

	items, err := s.annotations.ListActive(ctx, documentID)
	if err != nil {
		return nil, fmt.Errorf("list annotations: %w", err)
	}

	s.mu.Lock()
	current := s.current != nil && s.current.ID == documentID
	if current {
		s.setAnnotationsLocked(items)
	}
	s.mu.Unlock()

	if current {
		s.notify()
	}
	return slices.Clone(items), nil
}

// DismissAnnotation soft-deletes an annotation and drops it from the active
// set. Dismissing an already dismissed annotation succeeds.
func (s *Service) DismissAnnotation(ctx context.Context, id uuid.UUID) error {
	sessionID, err := s.sessionID()
	if err != nil {
		return err
	}

	if err := s.annotations.Dismiss(ctx, sessionID, id); err != nil {
		return fmt.Errorf("dismiss annotation: %w", err)
	}

	s.mu.Lock()
	before := len(s.active)
	s.active = slices.DeleteFunc(s.active, func(a domain.Annotation) bool { return a.ID == id })
	if len(s.active) != before {
		s.annVersion++
	}
	s.mu.Unlock()

	s.notify()
	return nil
}

// ClearAnnotations hard-deletes all annotations of a document.
func (s *Service) ClearAnnotations(ctx context.Context, documentID uuid.UUID) error {
	if err := s.checkOwnership(ctx, documentID); err != nil {
		return err
	}

	n, err := s.annotations.DeleteByDocument(ctx, documentID)
	if err != nil {
		return fmt.Errorf("clear annotations: %w", err)
	}

	s.mu.Lock()
	if s.current != nil && s.current.ID == documentID {
		s.setAnnotationsLocked(nil)
	}
	s.mu.Unlock()

	s.log.InfoContext(ctx, "annotations cleared",
		slog.String("document_id", documentID.String()),
		slog.Int64("count", n),
	)
	s.notify()
	return nil
}

// ApplyAnalysis persists an analysis result in one transaction: the old
// annotations are replaced, a progress metric and the analysis history are
// recorded, detected patterns are upserted and the document is marked
// analyzed. Annotation ranges that do not address the analysed content are
// dropped. The current document and its annotations are then reloaded.
func (s *Service) ApplyAnalysis(ctx context.Context, documentID uuid.UUID, result domain.AnalysisResult) (*domain.Document, error) {
	sessionID, err := s.sessionID()
	if err != nil {
		return nil, err
	}

	length := domain.TextLength(result.Content)
	valid := make([]domain.Annotation, 0, len(result.Annotations))
	for _, a := range result.Annotations {
		if a.FitsWithin(length) && a.Severity.IsValid() {
			valid = append(valid, a)
		}
	}
	if dropped := len(result.Annotations) - len(valid); dropped > 0 {
		s.log.WarnContext(ctx, "dropped invalid annotations",
			slog.String("document_id", documentID.String()),
			slog.Int("dropped", dropped),
		)
	}

	var (
		doc   *domain.Document
		items []domain.Annotation
	)
	err = s.tx.RunInTx(ctx, func(ctx context.Context) error {
		if _, err := s.docs.GetByID(ctx, sessionID, documentID); err != nil {
			return fmt.Errorf("get document: %w", err)
		}
		if _, err := s.annotations.DeleteByDocument(ctx, documentID); err != nil {
			return fmt.Errorf("clear annotations: %w", err)
		}
		if len(valid) > 0 {
			if _, err := s.annotations.CreateBatch(ctx, documentID, valid); err != nil {
				return fmt.Errorf("create annotations: %w", err)
			}
		}

		_, err := s.progress.CreateMetric(ctx, domain.ProgressMetric{
			DocumentID:      documentID,
			SessionID:       sessionID,
			GrammarScore:    clampScore(result.Scores.Grammar),
			ClarityScore:    clampScore(result.Scores.Clarity),
			VocabularyScore: clampScore(result.Scores.Voice),
			OverallScore:    clampScore(result.Scores.Overall),
		})
		if err != nil {
			return fmt.Errorf("create metric: %w", err)
		}

		for _, p := range result.Patterns {
			if p.PatternType == "" {
				continue
			}
			if _, err := s.progress.UpsertPattern(ctx, sessionID, p); err != nil {
				return fmt.Errorf("upsert pattern: %w", err)
			}
		}

		if err := s.progress.RecordAnalysis(ctx, sessionID, documentID, result.Summary, result.RawResponse); err != nil {
			return fmt.Errorf("record analysis: %w", err)
		}

		status := domain.DocumentStatusAnalyzed
		doc, err = s.docs.Update(ctx, sessionID, documentID, domain.DocumentUpdate{Status: &status})
		if err != nil {
			return fmt.Errorf("mark analyzed: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("apply analysis: %w", err)
	}

	items, err = s.annotations.ListActive(ctx, documentID)
	if err != nil {
		return nil, fmt.Errorf("list annotations: %w", err)
	}

	s.mu.Lock()
	s.replaceLocked(*doc)
	if s.current != nil && s.current.ID == documentID {
		s.setAnnotationsLocked(items)
	}
	s.mu.Unlock()

	s.log.InfoContext(ctx, "analysis applied",
		slog.String("document_id", documentID.String()),
		slog.Int("annotations", len(items)),
		slog.Int("patterns", len(result.Patterns)),
	)
	s.notify()

	out := *doc
	return &out, nil
}

func (s *Service) checkOwnership(ctx context.Context, documentID uuid.UUID) error {
	sessionID, err := s.sessionID()
	if err != nil {
		return err
	}
	if _, err := s.docs.GetByID(ctx, sessionID, documentID); err != nil {
		return fmt.Errorf("get document: %w", err)
	}
	return nil
}

func clampScore(v float64) float64 {
	return max(0, min(100, v))
}
