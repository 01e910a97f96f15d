package editor

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/heartmarshall/writemate-backend/internal/domain"
)

// SetContent replaces the plain text. Marks follow the edit.
func (e *Editor) SetContent(content string) error {
	return e.setContent(nil, content)
}

// SetContentOf is SetContent for a client that names the document it is
// editing. It fails with ErrOtherDocument once another document is open.
func (e *Editor) SetContentOf(documentID uuid.UUID, content string) error {
	return e.setContent(&documentID, content)
}

// SetHTML replaces text and marks with the parsed rich representation.
func (e *Editor) SetHTML(src string) error {
	return e.setHTML(nil, src)
}

// SetHTMLOf is SetHTML guarded like SetContentOf.
func (e *Editor) SetHTMLOf(documentID uuid.UUID, src string) error {
	return e.setHTML(&documentID, src)
}

func (e *Editor) setContent(expect *uuid.UUID, content string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if err := e.checkOpenLocked(expect); err != nil {
		return err
	}
	marks := shiftMarks(e.marks, []rune(e.content), []rune(content))
	e.applyEditLocked(content, marks)
	return nil
}

func (e *Editor) setHTML(expect *uuid.UUID, src string) error {
	text, marks, err := ParseHTML(src)
	if err != nil {
		return domain.NewValidationError("html", err.Error())
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if err := e.checkOpenLocked(expect); err != nil {
		return err
	}
	e.applyEditLocked(text, marks)
	return nil
}

func (e *Editor) checkOpenLocked(expect *uuid.UUID) error {
	switch {
	case e.doc == nil:
		return ErrNoDocument
	case expect != nil && *expect != e.doc.ID:
		return ErrOtherDocument
	}
	return nil
}

// SetTitle persists a new title right away.
func (e *Editor) SetTitle(ctx context.Context, title string) (*domain.Document, error) {
	id, ok := e.DocumentID()
	if !ok {
		return nil, ErrNoDocument
	}
	return e.docs.UpdateDocument(ctx, id, domain.DocumentUpdate{Title: &title})
}

func (e *Editor) applyEditLocked(content string, marks []Mark) {
	contentChanged := content != e.content
	e.content = content
	e.marks = marks

	if contentChanged {
		length := domain.TextLength(content)
		e.selection.From = min(e.selection.From, length)
		e.selection.To = min(e.selection.To, length)
		e.rebuildOverlayLocked()
	}

	if (saved{content: content, html: RenderHTML(content, marks)}) == e.lastSaved {
		e.debounce.Cancel()
		if e.saveState == SaveDirty {
			e.saveState = SaveIdle
		}
		return
	}

	if e.saveState != SaveSaving {
		e.saveState = SaveDirty
	}
	e.saveRetries = 0
	e.debounce.Arm(e.cfg.SaveDebounce, e.autosave)
}

func (e *Editor) autosave() {
	// Failures are recorded on the editor and retried.
	_ = e.save(e.baseCtx)
}

// Flush saves pending edits now, dropping the save timer.
func (e *Editor) Flush(ctx context.Context) error {
	e.debounce.Cancel()
	return e.save(ctx)
}

// save persists the current text. Saves never overlap; a save started while
// another is running waits and then writes the newer text.
func (e *Editor) save(ctx context.Context) error {
	e.saveMu.Lock()
	defer e.saveMu.Unlock()

	e.mu.Lock()
	if e.doc == nil {
		e.mu.Unlock()
		return nil
	}
	id := e.doc.ID
	pending := saved{content: e.content, html: RenderHTML(e.content, e.marks)}
	if pending == e.lastSaved {
		e.saveState = SaveIdle
		e.mu.Unlock()
		return nil
	}
	e.saveState = SaveSaving
	e.mu.Unlock()

	wordCount := domain.CountWords(pending.content)
	_, err := e.docs.UpdateDocument(ctx, id, domain.DocumentUpdate{
		Content:     &pending.content,
		ContentHTML: &pending.html,
		WordCount:   &wordCount,
	})

	e.mu.Lock()
	defer e.mu.Unlock()

	if e.doc == nil || e.doc.ID != id {
		if err != nil {
			return fmt.Errorf("save document: %w", err)
		}
		return nil
	}

	if err != nil {
		e.saveState = SaveDirty
		e.saveErr = err
		e.log.Error("save failed",
			slog.String("document_id", id.String()),
			slog.Int("retry", e.saveRetries),
			slog.String("error", err.Error()),
		)
		if !e.debounce.Pending() && e.saveRetries < e.cfg.MaxSaveRetries {
			e.saveRetries++
			e.debounce.Arm(e.cfg.SaveRetryDelay, e.autosave)
		}
		return fmt.Errorf("save document: %w", err)
	}

	e.lastSaved = pending
	e.saveErr = nil
	e.saveRetries = 0
	if e.content == pending.content && RenderHTML(e.content, e.marks) == pending.html {
		e.saveState = SaveIdle
		return nil
	}
	e.saveState = SaveDirty
	if !e.debounce.Pending() {
		e.debounce.Arm(e.cfg.SaveDebounce, e.autosave)
	}
	return nil
}

// ToggleMark applies kind over the selection, or removes it when it already
// covers the whole selection. It returns the pressed state afterwards.
func (e *Editor) ToggleMark(kind MarkKind, sel Selection) (map[MarkKind]bool, error) {
	if !kind.IsValid() {
		return nil, domain.NewValidationError("kind", "must be one of: bold, italic, underline, highlight")
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if e.doc == nil {
		return nil, ErrNoDocument
	}
	length := domain.TextLength(e.content)
	if err := sel.validate(length); err != nil {
		return nil, err
	}
	e.selection = sel
	if sel.From < sel.To {
		e.applyEditLocked(e.content, toggleMark(e.marks, kind, sel, length))
	}
	return activeMarks(e.marks, sel), nil
}

// ActiveMarks reports which toolbar buttons are pressed for sel.
func (e *Editor) ActiveMarks(sel Selection) (map[MarkKind]bool, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if err := sel.validate(domain.TextLength(e.content)); err != nil {
		return nil, err
	}
	return activeMarks(e.marks, sel), nil
}

func activeMarks(marks []Mark, sel Selection) map[MarkKind]bool {
	out := make(map[MarkKind]bool, len(markKinds))
	for _, kind := range markKinds {
		out[kind] = isActive(marks, kind, sel)
	}
	return out
}
