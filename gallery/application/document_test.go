package application

import (
	"testing"

	"github.com/dfryer1193/wpgallery/gallery/domain"
	"github.com/stretchr/testify/assert"
)

func TestDocument_Initial(t *testing.T) {
	snap := NewDocument().Snapshot()

	assert.True(t, snap.PrevDisabled)
	assert.True(t, snap.NextDisabled)
	assert.True(t, snap.SectionVisible(domain.SectionHome))
	assert.False(t, snap.SectionVisible(domain.SectionNews))
	assert.Empty(t, snap.SearchBanner())
}

func TestDocument_RenderReplacesContent(t *testing.T) {
	doc := NewDocument()
	assert.True(t, doc.GalleryEmpty())

	doc.RenderMessage("Sin resultados")
	assert.False(t, doc.GalleryEmpty())

	items := []domain.GalleryItem{{Title: "a"}, {Title: "b"}}
	doc.RenderGallery(items)
	items[0].Title = "mutated"

	snap := doc.Snapshot()
	assert.Empty(t, snap.Message)
	assert.Equal(t, "a", snap.Items[0].Title, "document keeps its own copy")

	snap.Items[1].Title = "mutated"
	assert.Equal(t, "b", doc.Snapshot().Items[1].Title, "snapshot is a copy")
}

func TestDocument_SearchBanner(t *testing.T) {
	doc := NewDocument()
	doc.ShowSearchResults("garden")
	assert.Equal(t, "Resultados de búsqueda para: garden.", doc.Snapshot().SearchBanner())

	doc.HideSearchResults()
	assert.Empty(t, doc.Snapshot().SearchBanner())
}
