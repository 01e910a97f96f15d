package rest

import (
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/heartmarshall/writemate-backend/internal/domain"
	"github.com/heartmarshall/writemate-backend/internal/service/session"
)

// SessionHandler serves the anonymous session and the writer persona.
type SessionHandler struct {
	base
}

func NewSessionHandler(hub workspaceHub, logger *slog.Logger) *SessionHandler {
	return &SessionHandler{base{hub: hub, log: logger.With("handler", "session")}}
}

type personaRequest struct {
	SessionID       *uuid.UUID `json:"session_id"`
	Goals           []string   `json:"goals"`
	ExperienceLevel string     `json:"experience_level"`
	FocusAreas      []string   `json:"focus_areas"`
	PreferredTone   string     `json:"preferred_tone"`
}

// Create handles POST /api/session. A device that already has a session
// gets a fresh one.
func (h *SessionHandler) Create(w http.ResponseWriter, r *http.Request) {
	ws, ok := h.workspace(w, r)
	if !ok {
		return
	}

	err := ws.Run(func() error {
		_, err := ws.Session().CreateSession(r.Context())
		return err
	})
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, toSessionResponse(ws.Session().Snapshot()))
}

// Get handles GET /api/session.
func (h *SessionHandler) Get(w http.ResponseWriter, r *http.Request) {
	ws, ok := h.workspace(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, toSessionResponse(ws.Session().Snapshot()))
}

// UpdatePersona handles PUT /api/session/persona.
func (h *SessionHandler) UpdatePersona(w http.ResponseWriter, r *http.Request) {
	var req personaRequest
	if !decodeJSON(w, r, &req, false) {
		return
	}
	ws, ok := h.workspace(w, r)
	if !ok {
		return
	}

	var persona *domain.Persona
	err := ws.Run(func() error {
		var err error
		persona, err = ws.Session().UpdatePersona(r.Context(), session.PersonaInput{
			Goals:           req.Goals,
			ExperienceLevel: domain.ExperienceLevel(req.ExperienceLevel),
			FocusAreas:      req.FocusAreas,
			PreferredTone:   domain.Tone(req.PreferredTone),
		}, req.SessionID)
		return err
	})
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toPersonaResponse(persona))
}

// Clear handles DELETE /api/session. Stored data stays in place; the device
// only forgets which session it belonged to.
func (h *SessionHandler) Clear(w http.ResponseWriter, r *http.Request) {
	ws, ok := h.workspace(w, r)
	if !ok {
		return
	}
	if err := ws.ClearSession(r.Context()); err != nil {
		h.handleError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
