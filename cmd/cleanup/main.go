// Command cleanup purges dismissed annotations older than the configured
// retention period. It runs from an external scheduler and exits.
//
// Exit codes: 0 = success, 1 = error.
package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/heartmarshall/writemate-backend/internal/adapter/postgres"
	"github.com/heartmarshall/writemate-backend/internal/adapter/postgres/annotation"
	"github.com/heartmarshall/writemate-backend/internal/app"
	"github.com/heartmarshall/writemate-backend/internal/config"
)

type dismissedPurger interface {
	DeleteDismissedBefore(ctx context.Context, threshold time.Time) (int64, error)
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logger := app.NewLogger(cfg.Log)
	cfg.Database.ApplicationName = "writemate-cleanup"

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		logger.Error("connect to database", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer pool.Close()

	if err := purge(ctx, annotation.New(pool), time.Now(), cfg.Cleanup.DismissedRetentionDays, logger); err != nil {
		logger.Error("purge failed", slog.String("error", err.Error()))
		pool.Close()
		os.Exit(1)
	}
}

// purge deletes annotations dismissed more than retentionDays before now.
func purge(ctx context.Context, repo dismissedPurger, now time.Time, retentionDays int, logger *slog.Logger) error {
	if retentionDays < 1 {
		return fmt.Errorf("retention must be at least one day, got %d", retentionDays)
	}
	threshold := now.AddDate(0, 0, -retentionDays)

	deleted, err := repo.DeleteDismissedBefore(ctx, threshold)
	if err != nil {
		return fmt.Errorf("purge dismissed annotations before %s: %w", threshold.Format(time.RFC3339), err)
	}

	logger.Info("dismissed annotations purged",
		slog.Int64("deleted", deleted),
		slog.Time("threshold", threshold),
	)
	return nil
}
