package application

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/dfryer1193/wpgallery/gallery/domain"
	"github.com/rs/zerolog/log"
)

// DefaultFallbackImage is shown for posts without a usable featured image.
const DefaultFallbackImage = "default-image.jpg"

// MediaResolver turns posts into gallery items, looking up featured images
// through an optional cache before asking the content source.
type MediaResolver struct {
	source        domain.ContentSource
	cache         domain.MediaCache
	cacheTTL      time.Duration
	fallbackImage string
}

// NewMediaResolver creates a resolver. cache may be nil.
func NewMediaResolver(source domain.ContentSource, cache domain.MediaCache, cacheTTL time.Duration, fallbackImage string) *MediaResolver {
	if fallbackImage == "" {
		fallbackImage = DefaultFallbackImage
	}
	return &MediaResolver{
		source:        source,
		cache:         cache,
		cacheTTL:      cacheTTL,
		fallbackImage: fallbackImage,
	}
}

// ResolveGalleryItem builds the gallery item for post. Image failures are
// logged and degrade to the fallback image; they never fail the item.
func (r *MediaResolver) ResolveGalleryItem(ctx context.Context, post domain.Post) domain.GalleryItem {
	image := r.featuredImage(ctx, post.FeaturedMedia)
	if image == "" {
		image = r.fallbackImage
	}

	return domain.GalleryItem{
		Title: plainTitle(post.Title.Rendered),
		Link:  post.Link,
		Image: image,
	}
}

func (r *MediaResolver) featuredImage(ctx context.Context, mediaID int) string {
	if mediaID <= 0 {
		return ""
	}

	if r.cache != nil {
		m, err := r.cache.GetMedia(ctx, mediaID)
		if err == nil {
			return m.SourceURL
		}
		if !errors.Is(err, domain.ErrCacheMiss) {
			log.Warn().Err(err).Int("media_id", mediaID).Msg("Media cache lookup failed")
		}
	}

	m, err := r.source.GetMedia(ctx, mediaID)
	if err != nil {
		log.Error().Err(err).Int("media_id", mediaID).Msg("Error fetching image")
		return ""
	}
	if strings.TrimSpace(m.SourceURL) == "" {
		log.Warn().Int("media_id", mediaID).Msg("Media has no source_url")
		return ""
	}

	if m.ID == 0 {
		m.ID = mediaID
	}
	if r.cache != nil {
		if err := r.cache.SaveMedia(ctx, m, r.cacheTTL); err != nil {
			log.Warn().Err(err).Int("media_id", mediaID).Msg("Failed to cache media")
		}
	}
	return m.SourceURL
}
