// Package workspace keeps the per-device state of the application: the
// session, document, vocabulary and progress stores and the editor.
package workspace

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"

	"github.com/heartmarshall/writemate-backend/internal/domain"
	"github.com/heartmarshall/writemate-backend/internal/editor"
	"github.com/heartmarshall/writemate-backend/internal/service/document"
	"github.com/heartmarshall/writemate-backend/internal/service/progress"
	"github.com/heartmarshall/writemate-backend/internal/service/session"
	"github.com/heartmarshall/writemate-backend/internal/service/vocabulary"
)

// Workspace belongs to one client device. Operations that span several
// stores run under its mutex, one at a time.
type Workspace struct {
	clientID uuid.UUID
	log      *slog.Logger

	session    *session.Service
	documents  *document.Service
	vocabulary *vocabulary.Service
	progress   *progress.Service

	newEditor  func() *editor.Editor
	editorOnce sync.Once
	editor     atomic.Pointer[editor.Editor]

	mu sync.Mutex
}

func newWorkspace(
	clientID uuid.UUID,
	log *slog.Logger,
	sess *session.Service,
	docs *document.Service,
	vocab *vocabulary.Service,
	prog *progress.Service,
	newEditor func() *editor.Editor,
) *Workspace {
	return &Workspace{
		clientID:   clientID,
		log:        log,
		session:    sess,
		documents:  docs,
		vocabulary: vocab,
		progress:   prog,
		newEditor:  newEditor,
	}
}

func (w *Workspace) ClientID() uuid.UUID { return w.clientID }
func (w *Workspace) Session() *session.Service { return w.session }
func (w *Workspace) Documents() *document.Service { return w.documents }
func (w *Workspace) Vocabulary() *vocabulary.Service { return w.vocabulary }
func (w *Workspace) Progress() *progress.Service { return w.progress }

// Editor returns the editor, creating it on first use.
func (w *Workspace) Editor() *editor.Editor {
	w.editorOnce.Do(func() {
		w.editor.Store(w.newEditor())
	})
	return w.editor.Load()
}

// Run executes fn under the workspace mutex.
func (w *Workspace) Run(fn func() error) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	return fn()
}

// OpenDocument saves pending edits of the open document and opens id.
func (w *Workspace) OpenDocument(ctx context.Context, id uuid.UUID) (editor.State, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	ed := w.Editor()
	if err := ed.Flush(ctx); err != nil {
		return editor.State{}, err
	}
	if _, err := w.documents.LoadDocument(ctx, id); err != nil {
		return editor.State{}, err
	}
	return ed.State(), nil
}

// CreateDocument saves pending edits and creates a new current document.
func (w *Workspace) CreateDocument(ctx context.Context, title string) (*domain.Document, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if err := w.flushLocked(ctx); err != nil {
		return nil, err
	}
	return w.documents.CreateDocument(ctx, title)
}

// DeleteDocument removes a document. Pending edits of it are dropped.
func (w *Workspace) DeleteDocument(ctx context.Context, id uuid.UUID) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if ed := w.editor.Load(); ed != nil {
		if open, ok := ed.DocumentID(); !ok || open != id {
			if err := ed.Flush(ctx); err != nil {
				return err
			}
		}
	}
	return w.documents.DeleteDocument(ctx, id)
}

// CloseEditor saves pending edits and closes the open document.
func (w *Workspace) CloseEditor(ctx context.Context) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if err := w.flushLocked(ctx); err != nil {
		return err
	}
	w.documents.CloseDocument()
	return nil
}

// ClearSession forgets the session of this device. The open document is
// saved first.
func (w *Workspace) ClearSession(ctx context.Context) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if err := w.flushLocked(ctx); err != nil {
		w.log.WarnContext(ctx, "flush before clearing session", slog.String("error", err.Error()))
	}
	w.documents.CloseDocument()
	return w.session.ClearSession(ctx)
}

// Analyze sends the open document for analysis with the writer's persona and
// known patterns. The workspace stays usable while the request runs.
func (w *Workspace) Analyze(ctx context.Context) (*domain.AnalysisResult, error) {
	if err := w.progress.FetchPatterns(ctx); err != nil && !errors.Is(err, domain.ErrNoSession) {
		w.log.WarnContext(ctx, "load patterns for analysis", slog.String("error", err.Error()))
	}

	snap := w.progress.Snapshot()
	patterns := make([]string, 0, len(snap.ActivePatterns))
	for _, p := range snap.ActivePatterns {
		patterns = append(patterns, p.Description)
	}

	res, err := w.Editor().Analyze(ctx, editor.AnalyzeOptions{
		Persona:            w.session.Persona(),
		HistoricalPatterns: patterns,
	})
	if err != nil {
		return nil, err
	}

	if err := w.progress.Refresh(ctx); err != nil {
		w.log.WarnContext(ctx, "refresh progress after analysis", slog.String("error", err.Error()))
	}
	return res, nil
}

// ExtractVocabulary suggests words for content, or for the open document
// when content is empty.
func (w *Workspace) ExtractVocabulary(ctx context.Context, content string) ([]domain.VocabularySuggestion, error) {
	if content == "" {
		content = w.Editor().State().Content
	}
	if content == "" {
		return nil, domain.NewValidationError("content", "required")
	}
	return w.vocabulary.ExtractSuggestions(ctx, content)
}

// Dashboard reloads progress data and returns the aggregates.
func (w *Workspace) Dashboard(ctx context.Context) (progress.Dashboard, error) {
	if err := w.progress.Refresh(ctx); err != nil {
		return progress.Dashboard{}, err
	}
	return w.progress.Dashboard(), nil
}

// Flush saves pending edits of the open document.
func (w *Workspace) Flush(ctx context.Context) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.flushLocked(ctx)
}

func (w *Workspace) flushLocked(ctx context.Context) error {
	ed := w.editor.Load()
	if ed == nil {
		return nil
	}
	return ed.Flush(ctx)
}

// Close saves pending edits and stops the editor.
func (w *Workspace) Close(ctx context.Context) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	ed := w.editor.Load()
	if ed == nil {
		return nil
	}
	err := ed.Flush(ctx)
	ed.Close()
	if err != nil {
		return fmt.Errorf("flush workspace %s: %w", w.clientID, err)
	}
	return nil
}
