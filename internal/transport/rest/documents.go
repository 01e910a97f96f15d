package rest

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/heartmarshall/writemate-backend/internal/domain"
)

var errOpenInEditor = fmt.Errorf("%w: document is open in the editor, edit its content there", domain.ErrConflict)

// DocumentHandler serves the document library and annotations.
type DocumentHandler struct {
	base
}

func NewDocumentHandler(hub workspaceHub, logger *slog.Logger) *DocumentHandler {
	return &DocumentHandler{base{hub: hub, log: logger.With("handler", "documents")}}
}

type createDocumentRequest struct {
	Title string `json:"title"`
}

type updateDocumentRequest struct {
	Title       *string `json:"title"`
	Content     *string `json:"content"`
	ContentHTML *string `json:"content_html"`
}

// List handles GET /api/documents, most recently updated first.
func (h *DocumentHandler) List(w http.ResponseWriter, r *http.Request) {
	ws, ok := h.workspace(w, r)
	if !ok {
		return
	}

	var docs []domain.Document
	err := ws.Run(func() error {
		var err error
		docs, err = ws.Documents().FetchDocuments(r.Context())
		return err
	})
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"documents": toDocumentList(docs)})
}

// Create handles POST /api/documents. The new document becomes the open one.
func (h *DocumentHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createDocumentRequest
	if !decodeJSON(w, r, &req, true) {
		return
	}
	ws, ok := h.workspace(w, r)
	if !ok {
		return
	}

	doc, err := ws.CreateDocument(r.Context(), req.Title)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, toDocumentResponse(doc))
}

// Get handles GET /api/documents/{id}.
func (h *DocumentHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	ws, ok := h.workspace(w, r)
	if !ok {
		return
	}

	doc, err := ws.Documents().GetDocument(r.Context(), id)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toDocumentResponse(doc))
}

// Update handles PATCH /api/documents/{id}. Content of the document open in
// the editor must go through the editor instead.
func (h *DocumentHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	var req updateDocumentRequest
	if !decodeJSON(w, r, &req, false) {
		return
	}
	ws, ok := h.workspace(w, r)
	if !ok {
		return
	}

	upd := domain.DocumentUpdate{Title: req.Title, Content: req.Content, ContentHTML: req.ContentHTML}
	if req.Content != nil {
		words := domain.CountWords(*req.Content)
		upd.WordCount = &words
	}

	var doc *domain.Document
	err := ws.Run(func() error {
		if openID, open := ws.Editor().DocumentID(); open && openID == id && (req.Content != nil || req.ContentHTML != nil) {
			return errOpenInEditor
		}
		var err error
		doc, err = ws.Documents().UpdateDocument(r.Context(), id, upd)
		return err
	})
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toDocumentResponse(doc))
}

// Delete handles DELETE /api/documents/{id}.
func (h *DocumentHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	ws, ok := h.workspace(w, r)
	if !ok {
		return
	}

	if err := ws.DeleteDocument(r.Context(), id); err != nil {
		h.handleError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ListAnnotations handles GET /api/documents/{id}/annotations.
func (h *DocumentHandler) ListAnnotations(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	ws, ok := h.workspace(w, r)
	if !ok {
		return
	}

	var items []domain.Annotation
	err := ws.Run(func() error {
		var err error
		items, err = ws.Documents().FetchAnnotations(r.Context(), id)
		return err
	})
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"annotations": toAnnotationList(items)})
}

// ClearAnnotations handles DELETE /api/documents/{id}/annotations.
func (h *DocumentHandler) ClearAnnotations(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	ws, ok := h.workspace(w, r)
	if !ok {
		return
	}

	err := ws.Run(func() error {
		return ws.Documents().ClearAnnotations(r.Context(), id)
	})
	if err != nil {
		h.handleError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// DismissAnnotation handles POST /api/annotations/{id}/dismiss.
func (h *DocumentHandler) DismissAnnotation(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	ws, ok := h.workspace(w, r)
	if !ok {
		return
	}

	err := ws.Run(func() error {
		return ws.Documents().DismissAnnotation(r.Context(), id)
	})
	if err != nil {
		h.handleError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
