package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"golang.org/x/sync/errgroup"

	"github.com/heartmarshall/writemate-backend/internal/adapter/analysis"
	"github.com/heartmarshall/writemate-backend/internal/adapter/postgres"
	annotationrepo "github.com/heartmarshall/writemate-backend/internal/adapter/postgres/annotation"
	documentrepo "github.com/heartmarshall/writemate-backend/internal/adapter/postgres/document"
	progressrepo "github.com/heartmarshall/writemate-backend/internal/adapter/postgres/progress"
	sessionrepo "github.com/heartmarshall/writemate-backend/internal/adapter/postgres/session"
	vocabularyrepo "github.com/heartmarshall/writemate-backend/internal/adapter/postgres/vocabulary"
	"github.com/heartmarshall/writemate-backend/internal/adapter/redis/identity"
	"github.com/heartmarshall/writemate-backend/internal/auth"
	"github.com/heartmarshall/writemate-backend/internal/config"
	"github.com/heartmarshall/writemate-backend/internal/editor"
	"github.com/heartmarshall/writemate-backend/internal/transport/middleware"
	"github.com/heartmarshall/writemate-backend/internal/transport/rest"
	"github.com/heartmarshall/writemate-backend/internal/workspace"
	"github.com/heartmarshall/writemate-backend/migrations"
)

// Run is the application entry point. It wires the adapters, the workspace
// hub and the HTTP server, and blocks until ctx is cancelled. Shutdown stops
// the server first, then flushes every workspace, then closes the pool.
func Run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := NewLogger(cfg.Log)
	logger.Info("starting application",
		slog.String("version", BuildVersion()),
		slog.String("log_level", cfg.Log.Level),
	)

	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		return err
	}
	defer pool.Close()

	if cfg.Database.MigrateOnStart {
		if err := postgres.Migrate(ctx, pool, migrations.FS, logger); err != nil {
			return err
		}
	}

	rdb, err := identity.NewClient(ctx, cfg.Redis)
	if err != nil {
		return err
	}
	defer rdb.Close()
	identities := identity.New(rdb, cfg.Redis.KeyPrefix)

	clock := clockwork.NewRealClock()

	factory := &workspace.Factory{
		Sessions:    sessionrepo.New(pool),
		Documents:   documentrepo.New(pool),
		Annotations: annotationrepo.New(pool),
		Progress:    progressrepo.New(pool),
		Vocabulary:  vocabularyrepo.New(pool),
		Tx:          postgres.NewTxManager(pool),
		Analysis:    analysis.NewClient(cfg.Analysis.BaseURL, cfg.Analysis.Timeout, logger),
		Storage: func(clientID uuid.UUID) workspace.LocalStorage {
			return identities.For(clientID)
		},
		Editor: editor.Config{
			SaveDebounce:    cfg.Editor.SaveDebounce,
			SaveRetryDelay:  cfg.Editor.SaveRetryDelay,
			MaxSaveRetries:  cfg.Editor.MaxSaveRetries,
			MinAnalyzeWords: cfg.Editor.MinAnalyzeWords,
		},
		Clock: clock,
		Log:   logger,
		// Autosaves must outlive the signal that starts shutdown.
		BaseCtx: context.WithoutCancel(ctx),
	}
	hub := workspace.NewHub(factory.Build, clock, cfg.Workspace.IdleTTL, logger)

	limiter := middleware.NewRateLimiter(clock, cfg.RateLimit.CleanupInterval)
	defer limiter.Stop()

	router := rest.NewRouter(rest.RouterDeps{
		Hub:         hub,
		Tokens:      auth.NewClientTokens(cfg.Client.TokenSecret, cfg.Client.TokenIssuer, cfg.Client.TokenTTL),
		RateLimiter: limiter,
		Health: rest.NewHealthHandler(map[string]rest.Pinger{
			"database": pool,
			"redis":    identities,
		}, BuildVersion()),
		Client:    cfg.Client,
		CORS:      cfg.CORS,
		RateLimit: cfg.RateLimit,
		Log:       logger,
	})

	srv := &http.Server{
		Addr:              net.JoinHostPort(cfg.Server.Host, strconv.Itoa(cfg.Server.Port)),
		Handler:           router,
		ReadTimeout:       cfg.Server.ReadTimeout,
		ReadHeaderTimeout: cfg.Server.ReadTimeout,
		WriteTimeout:      cfg.Server.WriteTimeout,
		IdleTimeout:       cfg.Server.IdleTimeout,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		hub.Run(gctx, cfg.Workspace.SweepInterval)
		return nil
	})

	g.Go(func() error {
		logger.Info("http server listening", slog.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("serve http: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), cfg.Server.ShutdownTimeout)
		defer cancel()

		var errs []error
		if err := srv.Shutdown(shutdownCtx); err != nil {
			errs = append(errs, fmt.Errorf("shutdown http: %w", err))
		}
		if err := hub.Close(shutdownCtx); err != nil {
			errs = append(errs, fmt.Errorf("close workspaces: %w", err))
		}
		return errors.Join(errs...)
	})

	if err := g.Wait(); err != nil {
		logger.Error("stopped with error", slog.String("error", err.Error()))
		return err
	}
	logger.Info("stopped")
	return nil
}
