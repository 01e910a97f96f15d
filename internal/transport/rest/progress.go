package rest

import (
	"log/slog"
	"net/http"
)

// ProgressHandler serves the progress dashboard.
type ProgressHandler struct {
	base
}

func NewProgressHandler(hub workspaceHub, logger *slog.Logger) *ProgressHandler {
	return &ProgressHandler{base{hub: hub, log: logger.With("handler", "progress")}}
}

// Dashboard handles GET /api/progress.
func (h *ProgressHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	ws, ok := h.workspace(w, r)
	if !ok {
		return
	}

	dash, err := ws.Dashboard(r.Context())
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toDashboardResponse(dash))
}

// Compare handles GET /api/progress/compare, the analysis service's view of
// the session's trend.
func (h *ProgressHandler) Compare(w http.ResponseWriter, r *http.Request) {
	ws, ok := h.workspace(w, r)
	if !ok {
		return
	}

	cmp, err := ws.Progress().CompareProgress(r.Context())
	if err != nil {
		h.handleError(w, r, err)
		return
	}
	cmp.AreasImproved = nonNil(cmp.AreasImproved)
	cmp.AreasToFocus = nonNil(cmp.AreasToFocus)

	writeJSON(w, http.StatusOK, cmp)
}
