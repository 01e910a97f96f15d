package rest

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/heartmarshall/writemate-backend/internal/adapter/analysis"
	"github.com/heartmarshall/writemate-backend/internal/domain"
	"github.com/heartmarshall/writemate-backend/internal/editor"
	"github.com/heartmarshall/writemate-backend/internal/service/vocabulary"
)

type errorResponse struct {
	Error          string          `json:"error"`
	Fields         []fieldResponse `json:"fields,omitempty"`
	AnalysisStatus int             `json:"analysis_status,omitempty"`
}

type fieldResponse struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (b *base) handleError(w http.ResponseWriter, r *http.Request, err error) {
	var (
		verr   *domain.ValidationError
		apiErr *analysis.APIError
	)
	switch {
	case errors.As(err, &verr):
		fields := make([]fieldResponse, len(verr.Errors))
		for i, fe := range verr.Errors {
			fields[i] = fieldResponse{Field: fe.Field, Message: fe.Message}
		}
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: verr.Error(), Fields: fields})
	case errors.Is(err, domain.ErrNoSession):
		writeError(w, http.StatusPreconditionFailed, "no session: create one first")
	case errors.Is(err, editor.ErrNoDocument):
		writeError(w, http.StatusConflict, "no document is open")
	case errors.Is(err, editor.ErrAnalysisInFlight):
		writeError(w, http.StatusConflict, "analysis already in progress")
	case errors.Is(err, vocabulary.ErrDuplicateWord):
		writeError(w, http.StatusConflict, vocabulary.ErrDuplicateWord.Error())
	case errors.Is(err, domain.ErrConflict):
		writeError(w, http.StatusConflict, err.Error())
	case errors.Is(err, domain.ErrAlreadyExists):
		writeError(w, http.StatusConflict, "already exists")
	case errors.Is(err, domain.ErrNotFound):
		writeError(w, http.StatusNotFound, "not found")
	case errors.As(err, &apiErr):
		b.log.ErrorContext(r.Context(), "analysis request failed", slog.String("diagnostic", apiErr.Diagnostic()))
		writeJSON(w, http.StatusBadGateway, errorResponse{Error: apiErr.UserMessage(), AnalysisStatus: apiErr.Status})
	default:
		b.log.ErrorContext(r.Context(), "internal error", slog.String("error", err.Error()))
		writeError(w, http.StatusInternalServerError, "internal server error")
	}
}
