package application

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/dfryer1193/wpgallery/gallery/domain"
)

var errFake = errors.New("fake failure")

// fakeSource is an in-memory domain.ContentSource that records every call.
type fakeSource struct {
	mu sync.Mutex

	listFn func(ctx context.Context, q domain.PostQuery) (*domain.PostPage, error)
	media  map[int]string
	// mediaErr lists media ids whose lookup fails
	mediaErr map[int]bool
	// mediaDelay slows down individual media lookups
	mediaDelay map[int]time.Duration

	queries    []domain.PostQuery
	mediaCalls []int
}

func newFakeSource(page *domain.PostPage) *fakeSource {
	return &fakeSource{
		listFn: func(context.Context, domain.PostQuery) (*domain.PostPage, error) {
			return page, nil
		},
		media:      map[int]string{},
		mediaErr:   map[int]bool{},
		mediaDelay: map[int]time.Duration{},
	}
}

func (f *fakeSource) ListPosts(ctx context.Context, q domain.PostQuery) (*domain.PostPage, error) {
	f.mu.Lock()
	f.queries = append(f.queries, q)
	fn := f.listFn
	f.mu.Unlock()
	return fn(ctx, q)
}

func (f *fakeSource) GetMedia(ctx context.Context, id int) (*domain.Media, error) {
	f.mu.Lock()
	f.mediaCalls = append(f.mediaCalls, id)
	delay := f.mediaDelay[id]
	fail := f.mediaErr[id]
	url := f.media[id]
	f.mu.Unlock()

	if delay > 0 {
		time.Sleep(delay)
	}
	if fail {
		return nil, &domain.HTTPError{Op: "getting media", StatusCode: 500}
	}
	return &domain.Media{ID: id, SourceURL: url}, nil
}

func (f *fakeSource) lastQuery() domain.PostQuery {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.queries[len(f.queries)-1]
}

func (f *fakeSource) mediaCallCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.mediaCalls)
}

// fakeCache is an in-memory domain.MediaCache.
type fakeCache struct {
	mu      sync.Mutex
	entries map[int]*domain.Media
	getErr  error
}

func newFakeCache() *fakeCache {
	return &fakeCache{entries: map[int]*domain.Media{}}
}

func (c *fakeCache) GetMedia(ctx context.Context, id int) (*domain.Media, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.getErr != nil {
		return nil, c.getErr
	}
	m, ok := c.entries[id]
	if !ok {
		return nil, domain.ErrCacheMiss
	}
	return m, nil
}

func (c *fakeCache) SaveMedia(ctx context.Context, m *domain.Media, ttl time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[m.ID] = m
	return nil
}

func (c *fakeCache) DeleteMedia(ctx context.Context, id int) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, id)
	return nil
}

// fakeContactRepo is an in-memory domain.ContactRepository.
type fakeContactRepo struct {
	saved   []*domain.ContactMessage
	saveErr error
}

func (r *fakeContactRepo) SaveMessage(ctx context.Context, m *domain.ContactMessage) error {
	if r.saveErr != nil {
		return r.saveErr
	}
	m.ID = int64(len(r.saved) + 1)
	r.saved = append(r.saved, m)
	return nil
}

func (r *fakeContactRepo) ListMessages(ctx context.Context, limit, offset int) ([]*domain.ContactMessage, error) {
	return r.saved, nil
}

func post(id int, title string, media int) domain.Post {
	return domain.Post{
		ID:            id,
		Title:         domain.RenderedText{Rendered: title},
		Link:          "http://site.test/?p=" + title,
		FeaturedMedia: media,
	}
}
