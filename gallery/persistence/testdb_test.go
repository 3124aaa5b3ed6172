package persistence

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/dfryer1193/wpgallery/shared/db/sqlite"
)

// setupTestDB returns a migrated database that is closed when the test ends.
func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()
	database := sqlite.NewSQLiteDB(sqlite.NewSQLiteConfig(filepath.Join(t.TempDir(), "test.db")))
	if err := database.Connect(context.Background()); err != nil {
		t.Fatalf("Failed to open database: %v", err)
	}
	t.Cleanup(func() { database.Close() })
	return database.DB()
}
