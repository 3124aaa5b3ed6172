package domain

import (
	"context"
	"time"
)

// ContentSource defines access to the remote content API.
// This allows the gallery to be decoupled from a specific backend.
type ContentSource interface {
	ListPosts(ctx context.Context, q PostQuery) (*PostPage, error)
	GetMedia(ctx context.Context, id int) (*Media, error)
}

// MediaCache stores resolved media so repeated renders skip the media endpoint.
type MediaCache interface {
	// GetMedia returns ErrCacheMiss when nothing usable is stored for id
	GetMedia(ctx context.Context, id int) (*Media, error)

	SaveMedia(ctx context.Context, m *Media, ttl time.Duration) error

	DeleteMedia(ctx context.Context, id int) error
}
