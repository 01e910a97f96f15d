package middleware

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/writemate-backend/pkg/ctxutil"
)

// ClientTokenHeader carries the device token in both directions.
const ClientTokenHeader = "X-Client-Token"

type clientTokens interface {
	Issue() (uuid.UUID, string, error)
	Validate(token string) (uuid.UUID, error)
}

// ClientIdentity resolves the device making the request. The token is read
// from the X-Client-Token header, then from the cookie. Requests without a
// valid token get a new identity, returned in the header and the cookie.
func ClientIdentity(tokens clientTokens, cookieName string, ttl time.Duration, logger *slog.Logger) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := r.Header.Get(ClientTokenHeader)
			if token == "" {
				if c, err := r.Cookie(cookieName); err == nil {
					token = c.Value
				}
			}

			if token != "" {
				clientID, err := tokens.Validate(token)
				if err == nil {
					recordClient(r.Context(), clientID)
					next.ServeHTTP(w, r.WithContext(ctxutil.WithClientID(r.Context(), clientID)))
					return
				}
				logger.DebugContext(r.Context(), "client token rejected", slog.String("error", err.Error()))
			}

			clientID, token, err := tokens.Issue()
			if err != nil {
				logger.ErrorContext(r.Context(), "issue client token", slog.String("error", err.Error()))
				writeError(w, http.StatusInternalServerError, "internal error")
				return
			}

			recordClient(r.Context(), clientID)
			w.Header().Set(ClientTokenHeader, token)
			http.SetCookie(w, &http.Cookie{
				Name:     cookieName,
				Value:    token,
				Path:     "/",
				MaxAge:   int(ttl.Seconds()),
				HttpOnly: true,
				Secure:   r.TLS != nil,
				SameSite: http.SameSiteLaxMode,
			})
			next.ServeHTTP(w, r.WithContext(ctxutil.WithClientID(r.Context(), clientID)))
		})
	}
}
