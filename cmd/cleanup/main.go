// Command cleanup removes pending registrations that aged past the record
// TTL. It is intended to run from cron as a backstop for the opportunistic
// cleanup performed during registration intake.
package main

import (
	"context"
	"log/slog"
	"os"
	"time"

	"shopsmart/config"
	"shopsmart/internal/infra/persistence/postgres"

	pgLib "github.com/slighter12/go-lib/database/postgres"
	"gorm.io/gorm"
)

const runTimeout = 2 * time.Minute

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	cfg, err := config.New()
	if err != nil {
		logger.Error("Failed to load config", slog.Any("error", err))
		os.Exit(1)
	}

	db, err := pgLib.New(cfg.Postgres)
	if err != nil {
		logger.Error("Failed to connect to PostgreSQL", slog.Any("error", err))
		os.Exit(1)
	}
	db = db.Session(&gorm.Session{SkipDefaultTransaction: true})

	ctx, cancel := context.WithTimeout(context.Background(), runTimeout)
	defer cancel()

	threshold := time.Now().Add(-cfg.RecordTTL())
	repo := postgres.NewPendingRegistrationRepository(db)

	deleted, err := repo.DeleteExpired(ctx, threshold)
	if err != nil {
		logger.Error("Cleanup failed", slog.Any("error", err))
		os.Exit(1)
	}

	logger.Info("Cleanup finished",
		slog.Int64("deleted", deleted),
		slog.Time("olderThan", threshold),
	)
}
