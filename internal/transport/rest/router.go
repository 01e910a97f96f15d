package rest

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/heartmarshall/writemate-backend/internal/config"
	"github.com/heartmarshall/writemate-backend/internal/transport/middleware"
)

type clientTokens interface {
	Issue() (uuid.UUID, string, error)
	Validate(token string) (uuid.UUID, error)
}

// RouterDeps is everything the HTTP surface is built from.
type RouterDeps struct {
	Hub         workspaceHub
	Tokens      clientTokens
	RateLimiter *middleware.RateLimiter
	Health      *HealthHandler

	Client    config.ClientConfig
	CORS      config.CORSConfig
	RateLimit config.RateLimitConfig

	Log *slog.Logger
}

// NewRouter mounts the health endpoints at the root and the device API under /api.
// Only /api requests get a client identity.
func NewRouter(d RouterDeps) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(d.Log))
	r.Use(middleware.Recovery(d.Log))
	r.Use(middleware.CORS(d.CORS))

	r.Get("/live", d.Health.Live)
	r.Get("/ready", d.Health.Ready)
	r.Get("/health", d.Health.Health)

	sessions := NewSessionHandler(d.Hub, d.Log)
	documents := NewDocumentHandler(d.Hub, d.Log)
	editor := NewEditorHandler(d.Hub, d.Log)
	vocab := NewVocabularyHandler(d.Hub, d.Log)
	progress := NewProgressHandler(d.Hub, d.Log)

	analyzeLimit := d.RateLimiter.Limit(d.RateLimit.AnalyzePerMinute)

	r.Route("/api", func(r chi.Router) {
		r.Use(middleware.ClientIdentity(d.Tokens, d.Client.CookieName, d.Client.TokenTTL, d.Log))

		r.Route("/session", func(r chi.Router) {
			r.Post("/", sessions.Create)
			r.Get("/", sessions.Get)
			r.Delete("/", sessions.Clear)
			r.Put("/persona", sessions.UpdatePersona)
		})

		r.Route("/documents", func(r chi.Router) {
			r.Get("/", documents.List)
			r.Post("/", documents.Create)
			r.Get("/{id}", documents.Get)
			r.Patch("/{id}", documents.Update)
			r.Delete("/{id}", documents.Delete)
			r.Get("/{id}/annotations", documents.ListAnnotations)
			r.Delete("/{id}/annotations", documents.ClearAnnotations)
		})
		r.Post("/annotations/{id}/dismiss", documents.DismissAnnotation)

		r.Route("/editor", func(r chi.Router) {
			r.Get("/", editor.Get)
			r.Post("/open", editor.Open)
			r.Put("/content", editor.SetContent)
			r.Patch("/title", editor.SetTitle)
			r.Post("/flush", editor.Flush)
			r.Post("/click", editor.Click)
			r.Post("/select", editor.Select)
			r.Post("/format", editor.Format)
			r.With(analyzeLimit).Post("/analyze", editor.Analyze)
			r.With(analyzeLimit).Post("/quick-check", editor.QuickCheck)
			r.Post("/close", editor.Close)
		})

		r.Route("/vocabulary", func(r chi.Router) {
			r.Get("/", vocab.List)
			r.Post("/", vocab.Add)
			r.With(analyzeLimit).Post("/extract", vocab.Extract)
			r.Patch("/{id}", vocab.Update)
			r.Delete("/{id}", vocab.Delete)
			r.Post("/{id}/learned", vocab.MarkLearned)
			r.Post("/{id}/review", vocab.Review)
		})

		r.Route("/progress", func(r chi.Router) {
			r.Get("/", progress.Dashboard)
			r.Get("/compare", progress.Compare)
		})
	})

	return r
}
