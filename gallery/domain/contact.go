package domain

import (
	"context"
	"time"
)

// ContactMessage is a query sent through the contact form.
type ContactMessage struct {
	ID        int64
	Email     string
	Body      string
	CreatedAt time.Time
}

type ContactRepository interface {
	SaveMessage(ctx context.Context, m *ContactMessage) error
	ListMessages(ctx context.Context, limit int, offset int) ([]*ContactMessage, error)
}
