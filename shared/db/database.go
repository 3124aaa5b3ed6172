package db

import (
	"context"
	"database/sql"
)

// Database is a connectable SQL store.
type Database interface {
	Connect(ctx context.Context) error
	Close() error
	DB() *sql.DB
}
