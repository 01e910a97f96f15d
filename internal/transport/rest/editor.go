package rest

import (
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/heartmarshall/writemate-backend/internal/domain"
	"github.com/heartmarshall/writemate-backend/internal/editor"
)

// EditorHandler serves the open document of a device: editing, formatting,
// the annotation overlay and analysis.
type EditorHandler struct {
	base
}

func NewEditorHandler(hub workspaceHub, logger *slog.Logger) *EditorHandler {
	return &EditorHandler{base{hub: hub, log: logger.With("handler", "editor")}}
}

type openRequest struct {
	DocumentID uuid.UUID `json:"document_id"`
}

// contentRequest carries either plain text or editor HTML, never both.
// DocumentID, when set, must be the open document.
type contentRequest struct {
	DocumentID *uuid.UUID `json:"document_id"`
	Content    *string    `json:"content"`
	HTML       *string    `json:"html"`
}

type titleRequest struct {
	Title string `json:"title"`
}

type clickRequest struct {
	Offset int `json:"offset"`
}

type selectRequest struct {
	AnnotationID *uuid.UUID `json:"annotation_id"`
	From         *int       `json:"from"`
	To           *int       `json:"to"`
}

type formatRequest struct {
	Kind editor.MarkKind `json:"kind"`
	From int             `json:"from"`
	To   int             `json:"to"`
}

type clickResponse struct {
	AnnotationID *uuid.UUID     `json:"annotation_id"`
	Editor       editorResponse `json:"editor"`
}

type analyzeResponse struct {
	Editor                editorResponse                `json:"editor"`
	VocabularySuggestions []domain.VocabularySuggestion `json:"vocabulary_suggestions"`
}

// Open handles POST /api/editor/open.
func (h *EditorHandler) Open(w http.ResponseWriter, r *http.Request) {
	var req openRequest
	if !decodeJSON(w, r, &req, false) {
		return
	}
	if req.DocumentID == uuid.Nil {
		h.handleError(w, r, domain.NewValidationError("document_id", "required"))
		return
	}
	ws, ok := h.workspace(w, r)
	if !ok {
		return
	}

	st, err := ws.OpenDocument(r.Context(), req.DocumentID)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toEditorResponse(st))
}

// Get handles GET /api/editor.
func (h *EditorHandler) Get(w http.ResponseWriter, r *http.Request) {
	ws, ok := h.workspace(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, toEditorResponse(ws.Editor().State()))
}

// SetContent handles PUT /api/editor/content. The save is debounced.
func (h *EditorHandler) SetContent(w http.ResponseWriter, r *http.Request) {
	var req contentRequest
	if !decodeJSON(w, r, &req, false) {
		return
	}
	if (req.Content == nil) == (req.HTML == nil) {
		h.handleError(w, r, domain.NewValidationError("content", "exactly one of content or html is required"))
		return
	}
	ws, ok := h.workspace(w, r)
	if !ok {
		return
	}

	ed := ws.Editor()
	var err error
	switch {
	case req.DocumentID != nil && req.HTML != nil:
		err = ed.SetHTMLOf(*req.DocumentID, *req.HTML)
	case req.DocumentID != nil:
		err = ed.SetContentOf(*req.DocumentID, *req.Content)
	case req.HTML != nil:
		err = ed.SetHTML(*req.HTML)
	default:
		err = ed.SetContent(*req.Content)
	}
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toEditorResponse(ed.State()))
}

// SetTitle handles PATCH /api/editor/title. Titles are saved immediately.
func (h *EditorHandler) SetTitle(w http.ResponseWriter, r *http.Request) {
	var req titleRequest
	if !decodeJSON(w, r, &req, false) {
		return
	}
	ws, ok := h.workspace(w, r)
	if !ok {
		return
	}

	err := ws.Run(func() error {
		_, err := ws.Editor().SetTitle(r.Context(), req.Title)
		return err
	})
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toEditorResponse(ws.Editor().State()))
}

// Flush handles POST /api/editor/flush.
func (h *EditorHandler) Flush(w http.ResponseWriter, r *http.Request) {
	ws, ok := h.workspace(w, r)
	if !ok {
		return
	}
	if err := ws.Flush(r.Context()); err != nil {
		h.handleError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toEditorResponse(ws.Editor().State()))
}

// Click handles POST /api/editor/click. A hit selects the innermost
// annotation under the offset.
func (h *EditorHandler) Click(w http.ResponseWriter, r *http.Request) {
	var req clickRequest
	if !decodeJSON(w, r, &req, false) {
		return
	}
	ws, ok := h.workspace(w, r)
	if !ok {
		return
	}

	var resp clickResponse
	if id, hit := ws.Editor().Click(req.Offset); hit {
		resp.AnnotationID = &id
	}
	resp.Editor = toEditorResponse(ws.Editor().State())
	writeJSON(w, http.StatusOK, resp)
}

// Select handles POST /api/editor/select: either an annotation from the
// feedback panel or a text selection.
func (h *EditorHandler) Select(w http.ResponseWriter, r *http.Request) {
	var req selectRequest
	if !decodeJSON(w, r, &req, false) {
		return
	}
	ws, ok := h.workspace(w, r)
	if !ok {
		return
	}
	ed := ws.Editor()

	var (
		active map[editor.MarkKind]bool
		err    error
	)
	switch {
	case req.AnnotationID != nil:
		err = ed.SelectAnnotation(*req.AnnotationID)
	case req.From != nil && req.To != nil:
		sel := editor.Selection{From: *req.From, To: *req.To}
		if err = ed.SetSelection(sel); err == nil {
			active, err = ed.ActiveMarks(sel)
		}
	default:
		err = domain.NewValidationError("selection", "annotation_id or from and to are required")
	}
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	resp := toEditorResponse(ed.State())
	resp.ActiveMarks = active
	writeJSON(w, http.StatusOK, resp)
}

// Format handles POST /api/editor/format, toggling one mark over a range.
func (h *EditorHandler) Format(w http.ResponseWriter, r *http.Request) {
	var req formatRequest
	if !decodeJSON(w, r, &req, false) {
		return
	}
	ws, ok := h.workspace(w, r)
	if !ok {
		return
	}

	active, err := ws.Editor().ToggleMark(req.Kind, editor.Selection{From: req.From, To: req.To})
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	resp := toEditorResponse(ws.Editor().State())
	resp.ActiveMarks = active
	writeJSON(w, http.StatusOK, resp)
}

// Analyze handles POST /api/editor/analyze. The request blocks until the
// analysis is applied; a failed analysis leaves the editor usable.
func (h *EditorHandler) Analyze(w http.ResponseWriter, r *http.Request) {
	ws, ok := h.workspace(w, r)
	if !ok {
		return
	}

	res, err := ws.Analyze(r.Context())
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, analyzeResponse{
		Editor:                toEditorResponse(ws.Editor().State()),
		VocabularySuggestions: nonNil(res.VocabularySuggestions),
	})
}

// QuickCheck handles POST /api/editor/quick-check.
func (h *EditorHandler) QuickCheck(w http.ResponseWriter, r *http.Request) {
	ws, ok := h.workspace(w, r)
	if !ok {
		return
	}

	res, err := ws.Editor().QuickCheck(r.Context())
	if err != nil {
		h.handleError(w, r, err)
		return
	}
	res.Issues = nonNil(res.Issues)

	writeJSON(w, http.StatusOK, res)
}

// Close handles POST /api/editor/close.
func (h *EditorHandler) Close(w http.ResponseWriter, r *http.Request) {
	ws, ok := h.workspace(w, r)
	if !ok {
		return
	}
	if err := ws.CloseEditor(r.Context()); err != nil {
		h.handleError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
