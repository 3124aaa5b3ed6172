package domain

// RenderedText mirrors the WordPress `{ "rendered": "..." }` envelope.
type RenderedText struct {
	Rendered string `json:"rendered"`
}

// Post is a content item as returned by the posts endpoint.
// FeaturedMedia is 0 when the post has no featured image.
type Post struct {
	ID            int          `json:"id"`
	Title         RenderedText `json:"title"`
	Link          string       `json:"link"`
	FeaturedMedia int          `json:"featured_media"`
}

// Media is the subset of a media resource the gallery needs.
type Media struct {
	ID        int    `json:"id"`
	SourceURL string `json:"source_url"`
}

// PostQuery describes one request against the posts endpoint.
type PostQuery struct {
	Page    int
	PerPage int
	Search  string
}

// PostPage is one page of posts plus the pagination headers that came with it.
type PostPage struct {
	Posts      []Post
	TotalPages int
	Total      int
}

// GalleryItem is the render-ready form of a Post. It has no identity beyond
// the render that produced it.
type GalleryItem struct {
	Title string `json:"title"`
	Link  string `json:"link"`
	Image string `json:"image"`
}
