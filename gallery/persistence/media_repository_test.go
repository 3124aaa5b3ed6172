package persistence

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/dfryer1193/wpgallery/gallery/domain"
	"golang.org/x/sync/errgroup"
)

func TestMediaRepository_SaveAndGet(t *testing.T) {
	repo := NewMediaRepository(setupTestDB(t))
	ctx := context.Background()

	if err := repo.SaveMedia(ctx, &domain.Media{ID: 7, SourceURL: "http://x/a.jpg"}, time.Hour); err != nil {
		t.Fatalf("SaveMedia() error = %v", err)
	}
	if err := repo.SaveMedia(ctx, &domain.Media{ID: 7, SourceURL: "http://x/b.jpg"}, time.Hour); err != nil {
		t.Fatalf("SaveMedia() update error = %v", err)
	}

	got, err := repo.GetMedia(ctx, 7)
	if err != nil {
		t.Fatalf("GetMedia() error = %v", err)
	}
	if got.SourceURL != "http://x/b.jpg" {
		t.Errorf("SourceURL = %q, want %q", got.SourceURL, "http://x/b.jpg")
	}
}

func TestMediaRepository_Miss(t *testing.T) {
	repo := NewMediaRepository(setupTestDB(t))

	_, err := repo.GetMedia(context.Background(), 99)
	if !errors.Is(err, domain.ErrCacheMiss) {
		t.Errorf("GetMedia() error = %v, want ErrCacheMiss", err)
	}
}

func TestMediaRepository_Expiry(t *testing.T) {
	repo := NewMediaRepository(setupTestDB(t))
	ctx := context.Background()

	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	repo.now = func() time.Time { return now }

	if err := repo.SaveMedia(ctx, &domain.Media{ID: 1, SourceURL: "short.jpg"}, time.Minute); err != nil {
		t.Fatalf("SaveMedia() error = %v", err)
	}
	if err := repo.SaveMedia(ctx, &domain.Media{ID: 2, SourceURL: "forever.jpg"}, 0); err != nil {
		t.Fatalf("SaveMedia() error = %v", err)
	}

	if _, err := repo.GetMedia(ctx, 1); err != nil {
		t.Fatalf("GetMedia() before expiry error = %v", err)
	}

	now = now.Add(2 * time.Minute)

	if _, err := repo.GetMedia(ctx, 1); !errors.Is(err, domain.ErrCacheMiss) {
		t.Errorf("GetMedia() after expiry error = %v, want ErrCacheMiss", err)
	}
	if got, err := repo.GetMedia(ctx, 2); err != nil || got.SourceURL != "forever.jpg" {
		t.Errorf("GetMedia() without ttl = %v, %v", got, err)
	}

	// saving anything prunes expired rows
	if err := repo.SaveMedia(ctx, &domain.Media{ID: 3, SourceURL: "c.jpg"}, time.Hour); err != nil {
		t.Fatalf("SaveMedia() error = %v", err)
	}
	var count int
	if err := repo.db.QueryRow("SELECT COUNT(*) FROM media_cache WHERE id = 1").Scan(&count); err != nil {
		t.Fatalf("count query error = %v", err)
	}
	if count != 0 {
		t.Errorf("expired row still present")
	}
}

func TestMediaRepository_Delete(t *testing.T) {
	repo := NewMediaRepository(setupTestDB(t))
	ctx := context.Background()

	if err := repo.SaveMedia(ctx, &domain.Media{ID: 4, SourceURL: "d.jpg"}, 0); err != nil {
		t.Fatalf("SaveMedia() error = %v", err)
	}
	if err := repo.DeleteMedia(ctx, 4); err != nil {
		t.Fatalf("DeleteMedia() error = %v", err)
	}
	if _, err := repo.GetMedia(ctx, 4); !errors.Is(err, domain.ErrCacheMiss) {
		t.Errorf("GetMedia() after delete error = %v, want ErrCacheMiss", err)
	}
	if err := repo.DeleteMedia(ctx, 4); err != nil {
		t.Errorf("DeleteMedia() of absent id error = %v", err)
	}
}

func TestMediaRepository_SaveValidation(t *testing.T) {
	repo := NewMediaRepository(setupTestDB(t))
	ctx := context.Background()

	tests := []struct {
		name  string
		media *domain.Media
	}{
		{name: "nil media", media: nil},
		{name: "zero id", media: &domain.Media{SourceURL: "x.jpg"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := repo.SaveMedia(ctx, tt.media, time.Hour); err == nil {
				t.Error("SaveMedia() expected error")
			}
		})
	}
}

func TestMediaRepository_ConcurrentSaves(t *testing.T) {
	repo := NewMediaRepository(setupTestDB(t))
	ctx := context.Background()

	var g errgroup.Group
	g.SetLimit(6)
	for i := 1; i <= 120; i++ {
		g.Go(func() error {
			m := &domain.Media{ID: i, SourceURL: fmt.Sprintf("http://x/%d.jpg", i)}
			if err := repo.SaveMedia(ctx, m, time.Hour); err != nil {
				return err
			}
			_, err := repo.GetMedia(ctx, i)
			return err
		})
	}
	if err := g.Wait(); err != nil {
		t.Fatalf("concurrent SaveMedia() error = %v", err)
	}

	got, err := repo.GetMedia(ctx, 120)
	if err != nil {
		t.Fatalf("GetMedia() error = %v", err)
	}
	if got.SourceURL != "http://x/120.jpg" {
		t.Errorf("SourceURL = %q, want %q", got.SourceURL, "http://x/120.jpg")
	}
}
