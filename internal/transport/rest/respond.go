package rest

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/heartmarshall/writemate-backend/internal/workspace"
	"github.com/heartmarshall/writemate-backend/pkg/ctxutil"
)

const maxBodyBytes = 1 << 20

// workspaceHub resolves the workspace of a client device.
type workspaceHub interface {
	Get(ctx context.Context, clientID uuid.UUID) (*workspace.Workspace, error)
}

// base is embedded by every handler that works on a device workspace.
type base struct {
	hub workspaceHub
	log *slog.Logger
}

func (b *base) workspace(w http.ResponseWriter, r *http.Request) (*workspace.Workspace, bool) {
	clientID, ok := ctxutil.ClientIDFromCtx(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "missing client identity")
		return nil, false
	}
	ws, err := b.hub.Get(r.Context(), clientID)
	if err != nil {
		b.handleError(w, r, err)
		return nil, false
	}
	return ws, true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Error: message})
}

// decodeJSON reads the request body into dst. An empty body leaves dst
// untouched when allowEmpty is set.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any, allowEmpty bool) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	err := dec.Decode(dst)
	if err == nil || (allowEmpty && errors.Is(err, io.EOF)) {
		return true
	}

	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		writeError(w, http.StatusRequestEntityTooLarge, "request body too large")
		return false
	}
	writeError(w, http.StatusBadRequest, "invalid request body")
	return false
}

func pathID(w http.ResponseWriter, r *http.Request, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, name))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid "+name)
		return uuid.Nil, false
	}
	return id, true
}
