package wordpress

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/dfryer1193/wpgallery/gallery/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_PostsURL(t *testing.T) {
	c := NewClient(nil, "http://example.test/wp-json/wp/v2/", time.Second)

	tests := []struct {
		name string
		q    domain.PostQuery
		want string
	}{
		{
			name: "first page without search",
			q:    domain.PostQuery{Page: 1, PerPage: 6},
			want: "http://example.test/wp-json/wp/v2/posts?per_page=6&page=1",
		},
		{
			name: "search is appended last",
			q:    domain.PostQuery{Page: 2, PerPage: 6, Search: "garden"},
			want: "http://example.test/wp-json/wp/v2/posts?per_page=6&page=2&search=garden",
		},
		{
			name: "search is url encoded",
			q:    domain.PostQuery{Page: 1, PerPage: 6, Search: "rock & roll"},
			want: "http://example.test/wp-json/wp/v2/posts?per_page=6&page=1&search=rock%20%26%20roll",
		},
		{
			name: "blank search is dropped",
			q:    domain.PostQuery{Page: 3, PerPage: 6, Search: "   "},
			want: "http://example.test/wp-json/wp/v2/posts?per_page=6&page=3",
		},
		{
			name: "defaults for zero values",
			q:    domain.PostQuery{},
			want: "http://example.test/wp-json/wp/v2/posts?per_page=6&page=1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, c.PostsURL(tt.q))
		})
	}
}

func TestClient_ListPosts(t *testing.T) {
	var gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		assert.Equal(t, "/posts", r.URL.Path)
		w.Header().Set("X-WP-TotalPages", "4")
		w.Header().Set("X-WP-Total", "22")
		w.Write([]byte(`[
			{"id": 1, "title": {"rendered": "One"}, "link": "http://x/1", "featured_media": 10},
			{"id": 2, "title": {"rendered": "Two"}, "link": "http://x/2", "featured_media": 0}
		]`))
	}))
	defer srv.Close()

	c := NewClient(srv.Client(), srv.URL, 0)
	page, err := c.ListPosts(context.Background(), domain.PostQuery{Page: 2, PerPage: 6, Search: "garden"})
	require.NoError(t, err)

	assert.Equal(t, "per_page=6&page=2&search=garden", gotQuery)
	assert.Equal(t, 4, page.TotalPages)
	assert.Equal(t, 22, page.Total)
	require.Len(t, page.Posts, 2)
	assert.Equal(t, "One", page.Posts[0].Title.Rendered)
	assert.Equal(t, 10, page.Posts[0].FeaturedMedia)
	assert.Equal(t, 0, page.Posts[1].FeaturedMedia)
}

func TestClient_ListPosts_MissingTotalPages(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	c := NewClient(srv.Client(), srv.URL, 0)
	page, err := c.ListPosts(context.Background(), domain.PostQuery{Page: 1})
	require.NoError(t, err)
	assert.Empty(t, page.Posts)
	assert.Equal(t, 0, page.TotalPages)
}

func TestClient_ListPosts_Errors(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
		want    error
	}{
		{
			name: "non-2xx status",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusBadRequest)
				w.Write([]byte(`{"code":"rest_post_invalid_page_number","message":"The page number requested is larger than the number of pages available."}`))
			},
			want: domain.ErrHTTPStatus,
		},
		{
			name: "malformed body",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(`{not json`))
			},
			want: domain.ErrDecode,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(tt.handler)
			defer srv.Close()

			c := NewClient(srv.Client(), srv.URL, 0)
			_, err := c.ListPosts(context.Background(), domain.PostQuery{Page: 9})
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.want), "got %v", err)
		})
	}
}

func TestClient_StatusErrorCarriesMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"code":"rest_post_invalid_id","message":"Invalid post ID."}`))
	}))
	defer srv.Close()

	c := NewClient(srv.Client(), srv.URL, 0)
	_, err := c.GetMedia(context.Background(), 5)

	var httpErr *domain.HTTPError
	require.True(t, errors.As(err, &httpErr))
	assert.Equal(t, http.StatusNotFound, httpErr.StatusCode)
	assert.Equal(t, "Invalid post ID.", httpErr.Message)
}

func TestClient_NetworkFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	c := NewClient(nil, url, time.Second)
	_, err := c.ListPosts(context.Background(), domain.PostQuery{Page: 1})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrNetwork), "got %v", err)
}

func TestClient_Timeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	}))
	defer srv.Close()

	tests := []struct {
		name       string
		httpClient *http.Client
	}{
		{name: "default client", httpClient: nil},
		{name: "client without timeout", httpClient: &http.Client{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewClient(tt.httpClient, srv.URL, 50*time.Millisecond)

			start := time.Now()
			_, err := c.ListPosts(context.Background(), domain.PostQuery{Page: 1})
			require.Error(t, err)
			assert.True(t, errors.Is(err, domain.ErrNetwork), "got %v", err)
			assert.Less(t, time.Since(start), time.Second)
		})
	}
}

func TestNewClient_TimeoutPrecedence(t *testing.T) {
	shared := &http.Client{}
	c := NewClient(shared, "http://example.test", 3*time.Second)
	assert.Equal(t, 3*time.Second, c.httpClient.Timeout)
	assert.Zero(t, shared.Timeout, "caller's client must not be modified")

	own := &http.Client{Timeout: time.Minute}
	c = NewClient(own, "http://example.test", 3*time.Second)
	assert.Same(t, own, c.httpClient)
	assert.Equal(t, time.Minute, c.httpClient.Timeout)

	c = NewClient(shared, "http://example.test", 0)
	assert.Same(t, shared, c.httpClient)
}

func TestClient_GetMedia(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.True(t, strings.HasSuffix(r.URL.Path, "/media/42"))
		w.Write([]byte(`{"source_url": "http://x/uploads/cat.jpg"}`))
	}))
	defer srv.Close()

	c := NewClient(srv.Client(), srv.URL, 0)
	media, err := c.GetMedia(context.Background(), 42)
	require.NoError(t, err)
	assert.Equal(t, 42, media.ID)
	assert.Equal(t, "http://x/uploads/cat.jpg", media.SourceURL)
}
