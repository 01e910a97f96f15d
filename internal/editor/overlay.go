package editor

import (
	"github.com/google/uuid"

	"github.com/heartmarshall/writemate-backend/internal/domain"
)

// rebuildOverlayLocked recomputes decorations from scratch. Annotations of
// other documents and ranges outside the text are skipped.
func (e *Editor) rebuildOverlayLocked() {
	e.overlay = e.overlay[:0]
	if e.doc == nil {
		return
	}
	length := domain.TextLength(e.content)
	for _, a := range e.annotations {
		if a.DocumentID != e.doc.ID || !a.FitsWithin(length) {
			continue
		}
		e.overlay = append(e.overlay, Decoration{
			AnnotationID: a.ID,
			From:         a.StartOffset,
			To:           a.EndOffset,
			Category:     a.Category,
			Severity:     a.Severity,
		})
	}

	if e.selected != nil && !e.decorated(*e.selected) {
		e.selected = nil
	}
}

func (e *Editor) decorated(id uuid.UUID) bool {
	for _, d := range e.overlay {
		if d.AnnotationID == id {
			return true
		}
	}
	return false
}

// Click selects the innermost decoration containing offset. It reports false
// when the click hits no decoration and should be handled as plain editing.
func (e *Editor) Click(offset int) (uuid.UUID, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()

	best := -1
	for i, d := range e.overlay {
		if offset < d.From || offset >= d.To {
			continue
		}
		if best < 0 || d.To-d.From < e.overlay[best].To-e.overlay[best].From {
			best = i
		}
	}
	if best < 0 {
		return uuid.Nil, false
	}
	id := e.overlay[best].AnnotationID
	e.selected = &id
	return id, true
}

// SelectAnnotation selects the annotated text and scrolls to it.
func (e *Editor) SelectAnnotation(id uuid.UUID) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	for _, d := range e.overlay {
		if d.AnnotationID != id {
			continue
		}
		e.selection = Selection{From: d.From, To: d.To}
		from := d.From
		e.scrollTarget = &from
		e.selected = &id
		return nil
	}
	return domain.ErrNotFound
}

// SetSelection records the caret or range reported by the client.
func (e *Editor) SetSelection(sel Selection) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if err := sel.validate(domain.TextLength(e.content)); err != nil {
		return err
	}
	e.selection = sel
	e.scrollTarget = nil
	return nil
}

// Overlay returns a copy of the current decorations.
func (e *Editor) Overlay() []Decoration {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make([]Decoration, len(e.overlay))
	copy(out, e.overlay)
	return out
}
