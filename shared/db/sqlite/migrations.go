package sqlite

import (
	"context"
	"database/sql"
	"fmt"
)

type migration struct {
	version int
	name    string
	up      string
}

// migrations is applied in order; a version is never edited once released.
var migrations = []migration{
	{
		version: 1,
		name:    "create_media_cache_table",
		up: `
			CREATE TABLE IF NOT EXISTS media_cache (
				id INTEGER PRIMARY KEY,
				source_url TEXT NOT NULL,
				expires_at INTEGER,
				fetched_at TIMESTAMP NOT NULL
			);

			CREATE INDEX IF NOT EXISTS idx_media_cache_expires_at
			ON media_cache(expires_at)
			WHERE expires_at IS NOT NULL;
		`,
	},
	{
		version: 2,
		name:    "create_contact_messages_table",
		up: `
			CREATE TABLE IF NOT EXISTS contact_messages (
				id INTEGER PRIMARY KEY AUTOINCREMENT,
				email TEXT NOT NULL,
				body TEXT NOT NULL,
				created_at TIMESTAMP NOT NULL
			);

			CREATE INDEX IF NOT EXISTS idx_contact_messages_created_at
			ON contact_messages(created_at DESC);
		`,
	},
}

func runMigrations(ctx context.Context, conn *sql.DB) error {
	// Create migrations tracking table
	_, err := conn.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			name TEXT NOT NULL,
			applied_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("failed to create schema_migrations table: %w", err)
	}

	// Get current schema version
	currentVersion := 0
	err = conn.QueryRowContext(ctx, "SELECT COALESCE(MAX(version), 0) FROM schema_migrations").Scan(&currentVersion)
	if err != nil {
		return fmt.Errorf("failed to get current schema version: %w", err)
	}

	for _, m := range migrations {
		if m.version <= currentVersion {
			continue
		}
		if err := applyMigration(ctx, conn, m); err != nil {
			return err
		}
	}
	return nil
}

func applyMigration(ctx context.Context, conn *sql.DB, m migration) error {
	tx, err := conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction for migration %d: %w", m.version, err)
	}

	if _, err := tx.ExecContext(ctx, m.up); err != nil {
		tx.Rollback()
		return fmt.Errorf("failed to execute migration %d (%s): %w", m.version, m.name, err)
	}

	// Record the migration in the same transaction as its schema change
	if _, err := tx.ExecContext(ctx, "INSERT INTO schema_migrations (version, name) VALUES (?, ?)", m.version, m.name); err != nil {
		tx.Rollback()
		return fmt.Errorf("failed to record migration %d: %w", m.version, err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit migration %d: %w", m.version, err)
	}
	return nil
}
