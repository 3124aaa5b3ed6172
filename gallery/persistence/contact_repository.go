package persistence

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/dfryer1193/wpgallery/gallery/domain"
	"github.com/dfryer1193/wpgallery/shared/db"
)

var _ domain.ContactRepository = (*SQLiteContactRepository)(nil)

// SQLiteContactRepository implements domain.ContactRepository using SQLite
type SQLiteContactRepository struct {
	db *sql.DB
}

func NewContactRepository(sqlDB *sql.DB) *SQLiteContactRepository {
	return &SQLiteContactRepository{db: sqlDB}
}

const insertContactMessageQuery = `
	INSERT INTO contact_messages (email, body, created_at)
	VALUES (?, ?, ?)
`

// SaveMessage inserts m and sets its ID. A zero CreatedAt is set to now.
func (r *SQLiteContactRepository) SaveMessage(ctx context.Context, m *domain.ContactMessage) error {
	if m == nil {
		return fmt.Errorf("contact message cannot be nil")
	}
	if m.CreatedAt.IsZero() {
		m.CreatedAt = time.Now().UTC()
	}

	res, err := db.GetExecutor(ctx, r.db).ExecContext(ctx, insertContactMessageQuery, m.Email, m.Body, m.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert contact message: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to read contact message id: %w", err)
	}
	m.ID = id
	return nil
}

const listContactMessagesQuery = `
	SELECT id, email, body, created_at
	FROM contact_messages
	ORDER BY created_at DESC, id DESC
	LIMIT ? OFFSET ?
`

// ListMessages returns messages newest first.
func (r *SQLiteContactRepository) ListMessages(ctx context.Context, limit, offset int) ([]*domain.ContactMessage, error) {
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	rows, err := r.db.QueryContext(ctx, listContactMessagesQuery, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list contact messages: %w", err)
	}
	defer rows.Close()

	messages := make([]*domain.ContactMessage, 0)
	for rows.Next() {
		m := &domain.ContactMessage{}
		if err := rows.Scan(&m.ID, &m.Email, &m.Body, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan contact message row: %w", err)
		}
		messages = append(messages, m)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating contact message rows: %w", err)
	}
	return messages, nil
}
