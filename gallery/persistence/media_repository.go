package persistence

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/dfryer1193/wpgallery/gallery/domain"
	"github.com/dfryer1193/wpgallery/shared/db"
)

var _ domain.MediaCache = (*SQLiteMediaRepository)(nil)

// SQLiteMediaRepository implements domain.MediaCache using SQLite
type SQLiteMediaRepository struct {
	db  *sql.DB
	now func() time.Time
}

// NewMediaRepository creates a new SQLiteMediaRepository from a standard sql.DB
func NewMediaRepository(sqlDB *sql.DB) *SQLiteMediaRepository {
	return &SQLiteMediaRepository{
		db:  sqlDB,
		now: time.Now,
	}
}

const upsertMediaQuery = `
	INSERT INTO media_cache (id, source_url, expires_at, fetched_at)
	VALUES (?, ?, ?, ?)
	ON CONFLICT(id) DO UPDATE SET
		source_url = excluded.source_url,
		expires_at = excluded.expires_at,
		fetched_at = excluded.fetched_at
`

const pruneMediaQuery = `
	DELETE FROM media_cache
	WHERE expires_at IS NOT NULL AND expires_at <= ?
`

// SaveMedia stores m and drops entries that have expired. A ttl of zero never expires.
func (r *SQLiteMediaRepository) SaveMedia(ctx context.Context, m *domain.Media, ttl time.Duration) error {
	if m == nil {
		return fmt.Errorf("media cannot be nil")
	}
	if m.ID <= 0 {
		return fmt.Errorf("media id must be positive, got %d", m.ID)
	}

	now := r.now().UTC()
	// NULL expires_at means the entry never expires
	var expiresAt any
	if ttl > 0 {
		expiresAt = now.Add(ttl).Unix()
	}

	return db.RunInTransaction(ctx, r.db, func(txCtx context.Context) error {
		executor := db.GetExecutor(txCtx, r.db)

		if _, err := executor.ExecContext(txCtx, upsertMediaQuery, m.ID, m.SourceURL, expiresAt, now); err != nil {
			return fmt.Errorf("failed to upsert media %d: %w", m.ID, err)
		}

		// Drop every expired row, not only this id
		if _, err := executor.ExecContext(txCtx, pruneMediaQuery, now.Unix()); err != nil {
			return fmt.Errorf("failed to prune expired media: %w", err)
		}
		return nil
	})
}

const getMediaQuery = `
	SELECT id, source_url
	FROM media_cache
	WHERE id = ? AND (expires_at IS NULL OR expires_at > ?)
`

// GetMedia returns the cached media for id, or domain.ErrCacheMiss.
func (r *SQLiteMediaRepository) GetMedia(ctx context.Context, id int) (*domain.Media, error) {
	m := &domain.Media{}
	err := db.GetExecutor(ctx, r.db).
		QueryRowContext(ctx, getMediaQuery, id, r.now().UTC().Unix()).
		Scan(&m.ID, &m.SourceURL)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrCacheMiss
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get media %d: %w", id, err)
	}
	return m, nil
}

const deleteMediaQuery = `DELETE FROM media_cache WHERE id = ?`

// DeleteMedia removes id from the cache. Deleting an absent id is not an error.
func (r *SQLiteMediaRepository) DeleteMedia(ctx context.Context, id int) error {
	if _, err := db.GetExecutor(ctx, r.db).ExecContext(ctx, deleteMediaQuery, id); err != nil {
		return fmt.Errorf("failed to delete media %d: %w", id, err)
	}
	return nil
}
