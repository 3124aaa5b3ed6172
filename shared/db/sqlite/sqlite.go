package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"net/url"

	"github.com/dfryer1193/wpgallery/shared/db"
	_ "modernc.org/sqlite"
)

const defaultPath = "./gallery.db"

type SQLiteConfig struct {
	Path string
}

// NewSQLiteConfig returns a config for path, falling back to ./gallery.db.
func NewSQLiteConfig(path string) *SQLiteConfig {
	if path == "" {
		path = defaultPath
	}
	return &SQLiteConfig{Path: path}
}

// SQLiteDB implements db.Database on top of modernc.org/sqlite.
type SQLiteDB struct {
	dbPath string
	db     *sql.DB
}

func NewSQLiteDB(cfg *SQLiteConfig) *SQLiteDB {
	return &SQLiteDB{dbPath: cfg.Path}
}

// connPragmas are applied by the driver to every pooled connection, not just
// the first one.
var connPragmas = []string{
	"busy_timeout(5000)",  // wait for a competing writer instead of failing with SQLITE_BUSY
	"foreign_keys(1)",     // enforce foreign key constraints
	"journal_mode(WAL)",   // readers don't block the writer
	"synchronous(NORMAL)", // safe with WAL, fewer fsyncs
}

// dsn builds the driver DSN for path. Write transactions take the write lock
// when they begin, so concurrent cache writers queue on busy_timeout instead
// of failing when a read lock is upgraded.
func dsn(path string) string {
	params := url.Values{}
	for _, p := range connPragmas {
		params.Add("_pragma", p)
	}
	params.Set("_txlock", "immediate")
	return path + "?" + params.Encode()
}

// Connect opens the database and runs pending migrations.
func (s *SQLiteDB) Connect(ctx context.Context) error {
	if s.db != nil {
		return fmt.Errorf("database already connected")
	}

	conn, err := sql.Open("sqlite", dsn(s.dbPath))
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}

	// Test the connection
	if err := conn.PingContext(ctx); err != nil {
		conn.Close()
		return fmt.Errorf("failed to ping database: %w", err)
	}

	if err := runMigrations(ctx, conn); err != nil {
		conn.Close()
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	s.db = conn
	return nil
}

func (s *SQLiteDB) Close() error {
	if s.db == nil {
		return nil
	}

	err := s.db.Close()
	s.db = nil
	return err
}

func (s *SQLiteDB) DB() *sql.DB {
	return s.db
}

var _ db.Database = (*SQLiteDB)(nil)
