package application

import (
	"fmt"
	"sync"

	"github.com/dfryer1193/wpgallery/gallery/domain"
)

// searchResultsFormat is the banner text shown above filtered results.
const searchResultsFormat = "Resultados de búsqueda para: %s."

var _ domain.View = (*Document)(nil)

// Document is the in-memory state of one rendered page: what each element of
// the page template shows. It is safe for concurrent use.
type Document struct {
	mu sync.RWMutex

	spinner        bool
	items          []domain.GalleryItem
	message        string
	prevDisabled   bool
	nextDisabled   bool
	searchQuery    string
	searchResults  bool
	searchModal    bool
	visibleSection string
}

// NewDocument returns a page showing the home section, with an empty gallery
// and both pagination controls disabled.
func NewDocument() *Document {
	return &Document{
		prevDisabled:   true,
		nextDisabled:   true,
		visibleSection: domain.SectionHome,
	}
}

// Snapshot is a point-in-time copy of a Document, suitable for templates.
type Snapshot struct {
	SpinnerVisible  bool
	Items           []domain.GalleryItem
	Message         string
	PrevDisabled    bool
	NextDisabled    bool
	SearchQuery     string
	SearchResults   bool
	SearchModalOpen bool
	Section         string
}

// SectionVisible reports whether the named section is displayed.
func (s Snapshot) SectionVisible(name string) bool {
	return s.Section == name
}

// SearchBanner is the text of the search-results banner, empty when hidden.
func (s Snapshot) SearchBanner() string {
	if !s.SearchResults {
		return ""
	}
	return fmt.Sprintf(searchResultsFormat, s.SearchQuery)
}

func (d *Document) Snapshot() Snapshot {
	d.mu.RLock()
	defer d.mu.RUnlock()

	items := make([]domain.GalleryItem, len(d.items))
	copy(items, d.items)

	return Snapshot{
		SpinnerVisible:  d.spinner,
		Items:           items,
		Message:         d.message,
		PrevDisabled:    d.prevDisabled,
		NextDisabled:    d.nextDisabled,
		SearchQuery:     d.searchQuery,
		SearchResults:   d.searchResults,
		SearchModalOpen: d.searchModal,
		Section:         d.visibleSection,
	}
}

func (d *Document) ShowSpinner() {
	d.mu.Lock()
	d.spinner = true
	d.mu.Unlock()
}

func (d *Document) HideSpinner() {
	d.mu.Lock()
	d.spinner = false
	d.mu.Unlock()
}

func (d *Document) RenderGallery(items []domain.GalleryItem) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.items = make([]domain.GalleryItem, len(items))
	copy(d.items, items)
	d.message = ""
}

func (d *Document) RenderMessage(msg string) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.items = nil
	d.message = msg
}

// GalleryEmpty reports whether the gallery has never been filled.
func (d *Document) GalleryEmpty() bool {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return len(d.items) == 0 && d.message == ""
}

func (d *Document) SetPagination(prevDisabled, nextDisabled bool) {
	d.mu.Lock()
	d.prevDisabled = prevDisabled
	d.nextDisabled = nextDisabled
	d.mu.Unlock()
}

func (d *Document) ShowSearchResults(query string) {
	d.mu.Lock()
	d.searchQuery = query
	d.searchResults = true
	d.mu.Unlock()
}

func (d *Document) HideSearchResults() {
	d.mu.Lock()
	d.searchQuery = ""
	d.searchResults = false
	d.mu.Unlock()
}

func (d *Document) SetSearchModal(open bool) {
	d.mu.Lock()
	d.searchModal = open
	d.mu.Unlock()
}

func (d *Document) ShowSection(name string) {
	d.mu.Lock()
	d.visibleSection = name
	d.mu.Unlock()
}
