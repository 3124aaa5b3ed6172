package wordpress

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/dfryer1193/wpgallery/gallery/domain"
)

const (
	// DefaultPerPage is the gallery page size.
	DefaultPerPage = 6

	headerTotalPages = "X-WP-TotalPages"
	headerTotal      = "X-WP-Total"

	maxErrorBody = 4 << 10
)

var _ domain.ContentSource = (*Client)(nil)

// Client is an implementation of domain.ContentSource for the WordPress REST API (wp/v2).
type Client struct {
	httpClient *http.Client
	baseURL    string
}

// NewClient creates a Client rooted at baseURL, e.g. http://localhost/wordpress/wp-json/wp/v2.
// A nil httpClient gets a client with the given timeout. A client without a
// timeout of its own is copied and given timeout.
func NewClient(httpClient *http.Client, baseURL string, timeout time.Duration) *Client {
	switch {
	case httpClient == nil:
		httpClient = &http.Client{Timeout: timeout}
	case httpClient.Timeout == 0 && timeout > 0:
		withTimeout := *httpClient
		withTimeout.Timeout = timeout
		httpClient = &withTimeout
	}
	return &Client{
		httpClient: httpClient,
		baseURL:    strings.TrimRight(baseURL, "/"),
	}
}

// BaseURL returns the API root the client talks to.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// PostsURL builds the posts listing URL. Parameters keep the order
// per_page, page, search.
func (c *Client) PostsURL(q domain.PostQuery) string {
	perPage := q.PerPage
	if perPage <= 0 {
		perPage = DefaultPerPage
	}
	page := q.Page
	if page < 1 {
		page = 1
	}

	u := fmt.Sprintf("%s/posts?per_page=%d&page=%d", c.baseURL, perPage, page)
	if search := strings.TrimSpace(q.Search); search != "" {
		u += "&search=" + encodeQueryComponent(search)
	}
	return u
}

// MediaURL builds the URL of a single media resource.
func (c *Client) MediaURL(id int) string {
	return fmt.Sprintf("%s/media/%d", c.baseURL, id)
}

// ListPosts fetches one page of posts along with the pagination headers.
func (c *Client) ListPosts(ctx context.Context, q domain.PostQuery) (*domain.PostPage, error) {
	op := fmt.Sprintf("listing posts page %d", q.Page)

	var posts []domain.Post
	header, err := c.getJSON(ctx, op, c.PostsURL(q), &posts)
	if err != nil {
		return nil, err
	}

	return &domain.PostPage{
		Posts:      posts,
		TotalPages: headerInt(header, headerTotalPages),
		Total:      headerInt(header, headerTotal),
	}, nil
}

// GetMedia fetches a single media resource by id.
func (c *Client) GetMedia(ctx context.Context, id int) (*domain.Media, error) {
	op := fmt.Sprintf("getting media %d", id)

	media := &domain.Media{}
	if _, err := c.getJSON(ctx, op, c.MediaURL(id), media); err != nil {
		return nil, err
	}
	if media.ID == 0 {
		media.ID = id
	}
	return media, nil
}

func (c *Client) getJSON(ctx context.Context, op string, rawURL string, dest any) (http.Header, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("wordpress: %s: building request: %w", op, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, handleWordPressError(op, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, handleWordPressError(op, statusError(op, resp))
	}

	if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
		return nil, handleWordPressError(op, fmt.Errorf("%w: %v", domain.ErrDecode, err))
	}
	return resp.Header, nil
}

// apiError is the error envelope WordPress returns with non-2xx responses.
type apiError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func statusError(op string, resp *http.Response) error {
	httpErr := &domain.HTTPError{Op: op, StatusCode: resp.StatusCode}

	body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	var apiErr apiError
	if json.Unmarshal(body, &apiErr) == nil && apiErr.Message != "" {
		httpErr.Message = apiErr.Message
	}
	return httpErr
}

// handleWordPressError classifies an error from a request into the domain taxonomy.
func handleWordPressError(op string, err error) error {
	if err == nil {
		return nil
	}

	var httpErr *domain.HTTPError
	if errors.As(err, &httpErr) {
		return fmt.Errorf("wordpress: %w", httpErr)
	}
	if errors.Is(err, domain.ErrDecode) {
		return fmt.Errorf("wordpress: %s: %w", op, err)
	}

	return fmt.Errorf("wordpress: %s: %w: %v", op, domain.ErrNetwork, err)
}

// headerInt parses an integer header, returning 0 when missing or malformed.
func headerInt(h http.Header, key string) int {
	v, err := strconv.Atoi(strings.TrimSpace(h.Get(key)))
	if err != nil || v < 0 {
		return 0
	}
	return v
}

// encodeQueryComponent escapes s the way browsers' encodeURIComponent does
// for the characters that matter here: spaces become %20, not '+'.
func encodeQueryComponent(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}
