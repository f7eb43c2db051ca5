package app

import (
	"context"
	"embed"
	"fmt"
	"sort"

	"vcardqr/pkg/logger"
	"vcardqr/pkg/postgres"
)

//go:embed migrations/*.sql
var migrationFiles embed.FS

// Migrate applies the embedded SQL files in name order, once each,
// recording applied names in the migrations table.
func Migrate(ctx context.Context, pg *postgres.Postgres, l logger.Interface) error {
	_, err := pg.Pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS migrations (
			name       TEXT PRIMARY KEY,
			applied_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`)
	if err != nil {
		return fmt.Errorf("app - Migrate - create migrations table: %w", err)
	}

	entries, err := migrationFiles.ReadDir("migrations")
	if err != nil {
		return fmt.Errorf("app - Migrate - migrationFiles.ReadDir: %w", err)
	}

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		names = append(names, entry.Name())
	}
	sort.Strings(names)

	for _, name := range names {
		var applied bool

		err = pg.Pool.QueryRow(ctx,
			"SELECT EXISTS (SELECT 1 FROM migrations WHERE name = $1)", name).Scan(&applied)
		if err != nil {
			return fmt.Errorf("app - Migrate - check %s: %w", name, err)
		}
		if applied {
			continue
		}

		sql, err := migrationFiles.ReadFile("migrations/" + name)
		if err != nil {
			return fmt.Errorf("app - Migrate - migrationFiles.ReadFile: %w", err)
		}

		tx, err := pg.Pool.Begin(ctx)
		if err != nil {
			return fmt.Errorf("app - Migrate - pg.Pool.Begin: %w", err)
		}

		if _, err = tx.Exec(ctx, string(sql)); err != nil {
			_ = tx.Rollback(ctx)
			return fmt.Errorf("app - Migrate - apply %s: %w", name, err)
		}

		if _, err = tx.Exec(ctx, "INSERT INTO migrations (name) VALUES ($1)", name); err != nil {
			_ = tx.Rollback(ctx)
			return fmt.Errorf("app - Migrate - record %s: %w", name, err)
		}

		if err = tx.Commit(ctx); err != nil {
			return fmt.Errorf("app - Migrate - commit %s: %w", name, err)
		}

		l.Info("applied migration %s", name)
	}

	return nil
}
