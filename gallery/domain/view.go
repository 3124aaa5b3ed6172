package domain

// Section names of the site. Each maps to a `section-<name>` container.
const (
	SectionHome     = "home"
	SectionAbout    = "about"
	SectionServices = "services"
	SectionNews     = "news"
	SectionContact  = "contact"
)

// Sections lists every section in menu order.
var Sections = []string{SectionHome, SectionAbout, SectionServices, SectionNews, SectionContact}

// IsSection reports whether name is a known section.
func IsSection(name string) bool {
	for _, s := range Sections {
		if s == name {
			return true
		}
	}
	return false
}

// View is the page surface the gallery controller drives. The controller
// never creates page elements; it only toggles and fills the ones a View
// exposes.
type View interface {
	ShowSpinner()
	HideSpinner()

	// RenderGallery replaces the gallery content with items, in order.
	RenderGallery(items []GalleryItem)
	// RenderMessage replaces the gallery content with a single message.
	RenderMessage(msg string)
	GalleryEmpty() bool

	SetPagination(prevDisabled, nextDisabled bool)

	ShowSearchResults(query string)
	HideSearchResults()
	SetSearchModal(open bool)

	ShowSection(name string)
}
